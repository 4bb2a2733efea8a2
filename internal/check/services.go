package check

import (
	"context"
	"net/http"
	"time"
)

// reachabilityTimeout bounds how long a single service probe may take
// before it is reported unreachable.
const reachabilityTimeout = 5 * time.Second

// ServiceCheckResult reports whether a configured external service
// answered at all. A non-2xx status still counts as reachable: doctor
// cares whether the host is up, not whether the exact endpoint exists.
type ServiceCheckResult struct {
	Name       string
	URL        string
	Required   bool
	Configured bool
	Reachable  bool
	Error      error
}

// checkServices probes every configured external service URL. Services
// left blank in the config are reported as not configured rather than
// unreachable, since the pipeline already degrades gracefully without
// them (see shared.Init).
func (c *Checker) checkServices(ctx context.Context) []ServiceCheckResult {
	candidates := []struct {
		name     string
		url      string
		required bool
	}{
		{"claim search", c.cfg.Services.ClaimSearchURL, true},
		{"check-worthiness", c.cfg.Services.WorthinessURL, false},
		{"MisinfoMe website credibility", c.cfg.Services.MisinfoMeURL, false},
	}

	results := make([]ServiceCheckResult, 0, len(candidates))
	for _, cand := range candidates {
		result := ServiceCheckResult{Name: cand.name, URL: cand.url, Required: cand.required}
		if cand.url == "" {
			results = append(results, result)
			continue
		}
		result.Configured = true
		result.Reachable, result.Error = probe(ctx, cand.url)
		results = append(results, result)
	}
	return results
}

// probe reports whether url accepted a connection and returned some HTTP
// response within reachabilityTimeout. Any status code counts as reachable;
// only a transport-level failure (refused connection, DNS failure, timeout)
// is treated as unreachable.
func probe(ctx context.Context, url string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, reachabilityTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false, err
	}
	client := &http.Client{Timeout: reachabilityTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	return true, nil
}
