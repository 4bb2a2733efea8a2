package check

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/coinform/credserve/internal/config"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Services.ClaimSearchURL = "http://localhost:8070/test/api/v1/claim/internal-search"
	cfg.Services.WorthinessURL = ""
	cfg.Services.MisinfoMeURL = ""
	cfg.Cache.SQLitePath = ""
	return cfg
}

func TestNewChecker(t *testing.T) {
	cfg := testConfig()
	c := NewChecker(cfg)
	if c == nil {
		t.Fatal("NewChecker returned nil")
	}
	if c.cfg != cfg {
		t.Error("NewChecker did not retain the given config")
	}
	if c.report == nil {
		t.Error("report should be initialized")
	}
}

func TestRunNonInteractiveSucceedsOnDefaultConfig(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()
	cfg := testConfig()
	cfg.Services.ClaimSearchURL = srv.URL // the required service must answer

	c := NewChecker(cfg)
	result := c.RunNonInteractive(context.Background())

	if !result.Success {
		t.Errorf("expected success, got errors: %v", result.Errors)
	}
}

func TestRunNonInteractiveFailsOnInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Services.ClaimSearchURL = ""

	c := NewChecker(cfg)
	result := c.RunNonInteractive(context.Background())

	if result.Success {
		t.Fatal("expected failure for empty claim_search_url")
	}
	if len(result.Errors) == 0 {
		t.Error("expected at least one error")
	}
	if len(result.Suggestions) == 0 {
		t.Error("expected a suggestion pointing at the fix")
	}
}

func TestRunNonInteractiveWarnsOnUnreachableOptionalService(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()
	cfg := testConfig()
	cfg.Services.ClaimSearchURL = srv.URL // the required service must answer
	cfg.Services.WorthinessURL = "http://127.0.0.1:1" // nothing listens here

	c := NewChecker(cfg)
	result := c.RunNonInteractive(context.Background())

	if !result.Success {
		t.Errorf("an unreachable optional service should warn, not fail: %v", result.Errors)
	}
	if len(result.Warnings) == 0 {
		t.Error("expected at least one warning")
	}
}

func TestDirExists(t *testing.T) {
	if !dirExists(t.TempDir()) {
		t.Error("dirExists should report true for an existing directory")
	}
	if dirExists("/does/not/exist/credserve-doctor") {
		t.Error("dirExists should report false for a missing directory")
	}
}

func TestPrintCheckResultDoesNotPanic(t *testing.T) {
	PrintCheckResult(&CheckResult{
		Success:     false,
		Errors:      []string{"boom"},
		Warnings:    []string{"careful"},
		Suggestions: []string{"fix it"},
	})
}
