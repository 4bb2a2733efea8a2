package check

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/redis/go-redis/v9"

	"github.com/coinform/credserve/internal/config"
)

// ValidationResult reports whether a section of the loaded configuration
// is sound enough to build a Pipeline from.
type ValidationResult struct {
	Section  string
	Valid    bool
	Error    error
	Warnings []string
}

// validateConfigShape runs config.Validate and layers on advisory
// warnings for settings that are legal but probably a mistake: an empty
// fact-checker/social-media domain list, or a CORS whitelist that will
// reject every browser request.
func (c *Checker) validateConfigShape() ValidationResult {
	result := ValidationResult{Section: "configuration"}

	if appErr := config.Validate(c.cfg); appErr != nil {
		result.Error = appErr
		return result
	}
	result.Valid = true

	if len(c.cfg.Pipeline.FactcheckerURLs) == 0 {
		result.Warnings = append(result.Warnings, "pipeline.factchecker_urls is empty: no site gets the fact-checker confidence penalty")
	}
	if len(c.cfg.Pipeline.SocialMediaURLs) == 0 {
		result.Warnings = append(result.Warnings, "pipeline.social_media_urls is empty: article sites are checked against the built-in twitter/facebook/instagram list only")
	}
	if c.cfg.Pipeline.MaxConcurrency == 0 {
		result.Warnings = append(result.Warnings, "pipeline.max_concurrency is 0: per-match website lookups use the default pool of 8 workers")
	}
	if len(c.cfg.Server.CORSOrigins) == 0 {
		result.Warnings = append(result.Warnings, "server.cors_origins is empty: browser-based clients will be rejected")
	}
	if c.cfg.Services.WorthinessURL == "" {
		result.Warnings = append(result.Warnings, "services.worthiness_url is unset: check-worthiness pre-filtering is disabled")
	}
	if c.cfg.Services.MisinfoMeURL == "" {
		result.Warnings = append(result.Warnings, "services.misinfome_url is unset: website reviews fall back to a neutral default")
	}
	if auth := c.cfg.Services.ClaimSearchAuth; (auth.User == "") != (auth.Password == "") {
		result.Warnings = append(result.Warnings, "services.claim_search_auth has a user or password set but not both: basic auth is sent with the other half empty")
	}

	return result
}

// validateCache checks that the configured cache backend is actually
// reachable: a Redis ping, or a writable directory for the SQLite file.
// Neither failure is fatal to Run, since shared.Init falls back to an
// in-process cache, but it's worth surfacing.
func (c *Checker) validateCache(ctx context.Context) ValidationResult {
	result := ValidationResult{Section: "cache backend"}

	switch {
	case c.cfg.Cache.RedisAddr != "":
		client := redis.NewClient(&redis.Options{
			Addr:     c.cfg.Cache.RedisAddr,
			Password: c.cfg.Cache.RedisPassword,
			DB:       c.cfg.Cache.RedisDB,
		})
		defer client.Close()
		if err := client.Ping(ctx).Err(); err != nil {
			result.Error = fmt.Errorf("redis at %s: %w", c.cfg.Cache.RedisAddr, err)
			return result
		}
		result.Valid = true
	case c.cfg.Cache.SQLitePath != "":
		dir := filepath.Dir(c.cfg.Cache.SQLitePath)
		if err := checkWritable(dir); err != nil {
			result.Error = err
			return result
		}
		result.Valid = true
	default:
		result.Valid = true
		result.Warnings = append(result.Warnings, "no redis_addr or sqlite_path configured: cache does not survive a restart")
	}

	return result
}

// checkWritable verifies dir accepts a throwaway file, the way a real
// SQLite open would need to.
func checkWritable(dir string) error {
	probe := filepath.Join(dir, ".credserve-doctor-probe")
	f, err := os.Create(probe)
	if err != nil {
		return fmt.Errorf("directory %s is not writable: %w", dir, err)
	}
	f.Close()
	return os.Remove(probe)
}

// printValidationResult prints a single ValidationResult inline.
func printValidationResult(result ValidationResult) {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)

	if result.Valid {
		green.Printf("  ✓ %s\n", result.Section)
	} else {
		red.Printf("  ✗ %s: %v\n", result.Section, result.Error)
	}
	for _, w := range result.Warnings {
		yellow.Printf("    └─ %s\n", w)
	}
}
