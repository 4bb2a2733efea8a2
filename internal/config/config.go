// Package config provides configuration management for the application.
// It supports YAML configuration files with environment variable overrides.
package config

import (
	"os"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/coinform/credserve/consts"
	"github.com/coinform/credserve/pkg/errors"
	"github.com/coinform/credserve/pkg/logger"
	"github.com/coinform/credserve/pkg/telemetry"
)

// Default configuration values
const (
	defaultServerPort          = 8091
	defaultConfThreshold       = 0.7
	defaultUnrelatedFactor     = 0.9
	defaultDiscussFactor       = 0.9
	defaultFactcheckerPenalty  = 0.5
	defaultMaxConcurrency      = 8
	defaultDomainCredCacheTTL  = 6 * 3600
	defaultOTLPEndpoint        = "localhost:4317"
	defaultPrometheusPort      = 9090
)

// Config represents the complete application configuration.
type Config struct {
	Server    ServerConfig     `yaml:"server"`
	Services  ServicesConfig   `yaml:"services"`
	Pipeline  PipelineConfig   `yaml:"pipeline"`
	Cache     CacheConfig      `yaml:"cache"`
	Logging   logger.Config    `yaml:"logging"`
	Telemetry telemetry.Config `yaml:"telemetry"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host        string   `yaml:"host"`
	Port        int      `yaml:"port"`
	Debug       bool     `yaml:"debug"`
	CORSOrigins []string `yaml:"cors_origins"` // Allowed CORS origins whitelist
}

// Address returns the server address string.
func (c *ServerConfig) Address() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

// BasicAuthConfig holds optional HTTP basic-auth credentials for an
// external service call.
type BasicAuthConfig struct {
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// Enabled reports whether credentials were actually configured.
func (a BasicAuthConfig) Enabled() bool {
	return a.User != "" || a.Password != ""
}

// ServicesConfig holds the base URLs (and, where the service requires it,
// credentials) of every external analytic service the pipeline calls out
// to: semantic claim similarity search, check-worthiness prediction, and
// MisinfoMe website/source credibility.
type ServicesConfig struct {
	// ClaimSearchURL is the claim similarity search endpoint, e.g.
	// "http://localhost:8070/test/api/v1/claim/internal-search". It doubles
	// as both the similarity/stance lookup and the bot-descriptor source.
	ClaimSearchURL string          `yaml:"claim_search_url"`
	ClaimSearchAuth BasicAuthConfig `yaml:"claim_search_auth"`
	// WorthinessURL is the check-worthiness predictor's base URL, e.g.
	// "http://localhost:8090".
	WorthinessURL string `yaml:"worthiness_url"`
	// MisinfoMeURL is the MisinfoMe source/website credibility service's
	// base URL, e.g. "https://socsem.kmi.open.ac.uk/misinfo".
	MisinfoMeURL string `yaml:"misinfome_url"`
}

// PipelineConfig holds the tunables the credibility review pipeline needs,
// mirroring the config keys the original pipeline reads out of its cfg
// dict (acred_pred_claim_search_url, sentence_similarity_unrelated_factor,
// sentence_similarity_discuss_factor,
// factchecker_website_to_qclaim_confidence_penalty_factor,
// worthiness_review, acred_factchecker_urls).
type PipelineConfig struct {
	// ConfThreshold is the minimum confidence a rating needs before it is
	// described as anything other than "not verifiable".
	ConfThreshold float64 `yaml:"confidence_threshold"`
	// UnrelatedFactor and DiscussFactor damp a similarity score when the
	// stance detector reports the sentences as unrelated or merely
	// discussing the same topic rather than agreeing or disagreeing.
	UnrelatedFactor float64 `yaml:"sentence_similarity_unrelated_factor"`
	DiscussFactor   float64 `yaml:"sentence_similarity_discuss_factor"`
	// FactcheckerPenaltyFactor reduces a fact-checking website's domain
	// credibility confidence, so its own ClaimReviews take precedence over
	// its general reputation.
	FactcheckerPenaltyFactor float64 `yaml:"factchecker_website_to_qclaim_confidence_penalty_factor"`
	// FactcheckerURLs lists domains of known fact-checking organizations.
	FactcheckerURLs []string `yaml:"factchecker_urls"`
	// SocialMediaURLs lists domains treated as social-media platforms,
	// whose own-site credibility is reduced rather than trusted directly.
	SocialMediaURLs []string `yaml:"social_media_urls"`
	// WorthinessReviewEnabled gates the check-worthiness pre-filter. When
	// false every sentence is treated as factual, matching the source's
	// `rev_worth = cfg.get('worthiness_review', False)` default.
	WorthinessReviewEnabled bool `yaml:"worthiness_review"`
	// MaxConcurrency bounds the worker pool fanning out per-match website
	// credibility lookups.
	MaxConcurrency int `yaml:"max_concurrency"`
}

// CacheConfig selects the domain-credibility cache backend (bot
// descriptors are not cached). At most one of RedisAddr or SQLitePath
// should be set; an in-process map is used when neither is. TTLSeconds is
// not read: the website credibility client caches entries for a fixed 6h.
type CacheConfig struct {
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
	SQLitePath    string `yaml:"sqlite_path"`
	TTLSeconds    int    `yaml:"ttl_seconds"`
}

// Default returns a default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:  "0.0.0.0",
			Port:  defaultServerPort,
			Debug: false,
			CORSOrigins: []string{
				"http://localhost:8091",
				"http://localhost:8092",
			},
		},
		Services: ServicesConfig{
			ClaimSearchURL: "http://localhost:8070/test/api/v1/claim/internal-search",
			WorthinessURL:  "http://localhost:8090",
			MisinfoMeURL:   "https://socsem.kmi.open.ac.uk/misinfo",
		},
		Pipeline: PipelineConfig{
			ConfThreshold:            defaultConfThreshold,
			UnrelatedFactor:          defaultUnrelatedFactor,
			DiscussFactor:            defaultDiscussFactor,
			FactcheckerPenaltyFactor: defaultFactcheckerPenalty,
			WorthinessReviewEnabled:  false,
			MaxConcurrency:           defaultMaxConcurrency,
		},
		Cache: CacheConfig{
			TTLSeconds: defaultDomainCredCacheTTL,
		},
		Logging: logger.Config{
			Level:      "info",
			Format:     "text", // Default to human-readable text format instead of JSON
			File:       "",
			MaxSize:    100, // Max 100MB per log file
			MaxAge:     7,   // Retain logs for 7 days
			MaxBackups: 5,   // Keep 5 backup files
			Compress:   false,
		},
		Telemetry: telemetry.Config{
			Enabled:     false,
			ServiceName: consts.ServiceName,
			OTLP: telemetry.OTLPConfig{
				Enabled:  false,
				Endpoint: defaultOTLPEndpoint,
				Insecure: true,
			},
			Prometheus: telemetry.PrometheusConfig{
				Enabled: false,
				Port:    defaultPrometheusPort,
			},
		},
	}
}

// Load loads configuration from a YAML file with environment variable
// expansion.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	expanded := expandEnvVars(string(data))

	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// expandEnvVars replaces ${VAR_NAME} patterns with environment variable
// values. Only matches ${VAR_NAME} format (not $VAR_NAME) to avoid
// conflicts with special characters in config values.
func expandEnvVars(content string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(content, func(match string) string {
		varName := match[2 : len(match)-1]

		// Support default values: ${VAR_NAME:-default}
		parts := strings.SplitN(varName, ":-", 2)
		varName = parts[0]

		if value := os.Getenv(varName); value != "" {
			return value
		}

		if len(parts) > 1 {
			return parts[1]
		}

		return ""
	})
}

// Validate reports whether cfg is well-formed enough to build the
// pipeline's external service clients from.
func Validate(cfg *Config) *errors.AppError {
	if strings.TrimSpace(cfg.Services.ClaimSearchURL) == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "services.claim_search_url cannot be empty")
	}
	if cfg.Pipeline.ConfThreshold < 0 || cfg.Pipeline.ConfThreshold > 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "pipeline.confidence_threshold must be in [0, 1]")
	}
	if cfg.Pipeline.MaxConcurrency < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "pipeline.max_concurrency cannot be negative")
	}
	if cfg.Cache.RedisAddr != "" && cfg.Cache.SQLitePath != "" {
		return errors.New(errors.ErrCodeInvalidConfig, "cache: set only one of redis_addr or sqlite_path")
	}
	return nil
}
