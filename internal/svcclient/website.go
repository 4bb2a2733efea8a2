package svcclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/coinform/credserve/internal/cache"
	"github.com/coinform/credserve/pkg/logger"
)

// domainCredCacheTTLSeconds mirrors the Python lru_cache's intent (memoize
// indefinitely for the process lifetime) with an actual expiry, per
// "stale entries acceptable but never permanently wrong".
const domainCredCacheTTLSeconds = 6 * 3600

// WebsiteCredibilityClient fetches per-domain source credibility from the
// MisinfoMe service, memoizing results in cache.
type WebsiteCredibilityClient struct {
	sourceCredURL string
	doer          httpDoer
	breaker       *gobreaker.CircuitBreaker
	cache         cache.Cache
}

// NewWebsiteCredibilityClient builds a client against misinfomeURL (e.g.
// "https://socsem.kmi.open.ac.uk/misinfo"), memoizing lookups in c.
func NewWebsiteCredibilityClient(misinfomeURL string, c cache.Cache) *WebsiteCredibilityClient {
	if c == nil {
		c = cache.NopCache{}
	}
	return &WebsiteCredibilityClient{
		sourceCredURL: misinfomeURL + "/api/credibility/sources/",
		doer:          &http.Client{Timeout: 10 * time.Second},
		breaker:       newBreaker("website-credibility"),
		cache:         c,
	}
}

// DomainCredibility returns the raw MisinfoMe source-credibility document
// for domain, as a legacy DomainCredibility shape (item_assessed/value/
// confidence/assessments). Results are cached by domain.
func (c *WebsiteCredibilityClient) DomainCredibility(ctx context.Context, domain string) (map[string]interface{}, error) {
	cacheKey := "domaincred:" + domain
	if cached, ok := c.cache.Get(ctx, cacheKey); ok {
		var out map[string]interface{}
		if err := json.Unmarshal([]byte(cached), &out); err == nil {
			return out, nil
		}
	}

	var out map[string]interface{}
	url := fmt.Sprintf("%s?source=%s", c.sourceCredURL, domain)
	if err := getJSON(ctx, c.doer, c.breaker, url, &out, nil); err != nil {
		logger.Warn("svcclient: misinfome domain credibility lookup failed", zap.String("domain", domain), zap.Error(err))
		return nil, err
	}

	if encoded, err := json.Marshal(out); err == nil {
		if err := c.cache.Set(ctx, cacheKey, string(encoded), domainCredCacheTTLSeconds); err != nil {
			logger.Warn("svcclient: failed to cache domain credibility", zap.String("domain", domain), zap.Error(err))
		}
	}
	return out, nil
}
