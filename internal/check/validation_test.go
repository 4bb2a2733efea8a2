package check

import (
	"context"
	"path/filepath"
	"testing"
)

func TestValidateConfigShapeAcceptsDefault(t *testing.T) {
	c := NewChecker(testConfig())
	result := c.validateConfigShape()

	if !result.Valid {
		t.Fatalf("expected valid, got error: %v", result.Error)
	}
}

func TestValidateConfigShapeRejectsEmptyClaimSearchURL(t *testing.T) {
	cfg := testConfig()
	cfg.Services.ClaimSearchURL = ""

	c := NewChecker(cfg)
	result := c.validateConfigShape()

	if result.Valid {
		t.Fatal("expected invalid for empty claim_search_url")
	}
}

func TestValidateConfigShapeWarnsOnEmptyDomainLists(t *testing.T) {
	cfg := testConfig()
	cfg.Pipeline.FactcheckerURLs = nil
	cfg.Pipeline.SocialMediaURLs = nil

	c := NewChecker(cfg)
	result := c.validateConfigShape()

	if !result.Valid {
		t.Fatalf("empty domain lists should still be valid: %v", result.Error)
	}
	if len(result.Warnings) < 2 {
		t.Errorf("expected warnings for both empty lists, got %v", result.Warnings)
	}
}

func TestValidateConfigShapeWarnsOnPartialBasicAuth(t *testing.T) {
	cfg := testConfig()
	cfg.Services.ClaimSearchAuth.User = "alice"

	c := NewChecker(cfg)
	result := c.validateConfigShape()

	found := false
	for _, w := range result.Warnings {
		if w == "services.claim_search_auth has a user or password set but not both: basic auth will not be sent" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a partial basic-auth warning, got %v", result.Warnings)
	}
}

func TestValidateCacheWithNoBackendConfiguredWarns(t *testing.T) {
	cfg := testConfig()
	cfg.Cache.RedisAddr = ""
	cfg.Cache.SQLitePath = ""

	c := NewChecker(cfg)
	result := c.validateCache(context.Background())

	if !result.Valid {
		t.Fatalf("no backend configured should still be valid: %v", result.Error)
	}
	if len(result.Warnings) == 0 {
		t.Error("expected a warning about the volatile cache")
	}
}

func TestValidateCacheWithWritableSQLiteDir(t *testing.T) {
	cfg := testConfig()
	cfg.Cache.SQLitePath = filepath.Join(t.TempDir(), "cache.db")

	c := NewChecker(cfg)
	result := c.validateCache(context.Background())

	if !result.Valid {
		t.Fatalf("expected valid, got error: %v", result.Error)
	}
}

func TestValidateCacheWithRedisUnreachableFails(t *testing.T) {
	cfg := testConfig()
	cfg.Cache.RedisAddr = "127.0.0.1:1" // nothing listens here

	c := NewChecker(cfg)
	result := c.validateCache(context.Background())

	if result.Valid {
		t.Fatal("expected invalid for unreachable redis")
	}
}

func TestCheckWritableRejectsNonexistentDir(t *testing.T) {
	if err := checkWritable("/does/not/exist/credserve-doctor"); err == nil {
		t.Error("expected an error for a nonexistent directory")
	}
}
