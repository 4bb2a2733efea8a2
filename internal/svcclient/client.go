// Package svcclient wraps the external analytic services the reviewer tree
// calls out to (claim similarity/stance search, check-worthiness
// prediction, MisinfoMe source credibility). Every outbound call goes
// through a circuit breaker: once a service is failing, the breaker trips
// and callers get the documented empty-result fallback immediately rather
// than piling up retries against a service that is already down.
package svcclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/coinform/credserve/pkg/errors"
	"github.com/coinform/credserve/pkg/logger"
)

// BasicAuth holds optional HTTP basic-auth credentials for an external
// service call.
type BasicAuth struct {
	User     string
	Password string
}

// httpDoer is the minimal surface client.go needs from *http.Client,
// narrowed so tests can substitute a fake transport.
type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// newBreaker builds a circuit breaker for a named external service: it
// trips after 5 consecutive failures and probes again after 30 seconds,
// matching the "absorb locally, degrade gracefully, no retry logic" rule
// every reviewer in this tree follows for its sub-calls.
func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    0,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("svcclient: circuit breaker state change",
				zap.String("breaker", name), zap.String("from", from.String()), zap.String("to", to.String()))
		},
	})
}

// postJSON POSTs body as JSON to url (through breaker) and decodes the JSON
// response into out. auth, if non-nil, is applied as HTTP basic auth.
func postJSON(ctx context.Context, doer httpDoer, breaker *gobreaker.CircuitBreaker, url string, body, out interface{}, auth *BasicAuth) error {
	_, err := breaker.Execute(func() (interface{}, error) {
		return nil, doJSON(ctx, doer, http.MethodPost, url, body, out, auth)
	})
	if err != nil {
		return wrapServiceError(url, err)
	}
	return nil
}

// getJSON GETs url (through breaker) and decodes the JSON response into out.
func getJSON(ctx context.Context, doer httpDoer, breaker *gobreaker.CircuitBreaker, url string, out interface{}, auth *BasicAuth) error {
	_, err := breaker.Execute(func() (interface{}, error) {
		return nil, doJSON(ctx, doer, http.MethodGet, url, nil, out, auth)
	})
	if err != nil {
		return wrapServiceError(url, err)
	}
	return nil
}

func doJSON(ctx context.Context, doer httpDoer, method, url string, body, out interface{}, auth *BasicAuth) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("svcclient: marshal request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("svcclient: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != nil {
		req.SetBasicAuth(auth.User, auth.Password)
	}

	resp, err := doer.Do(req)
	if err != nil {
		return fmt.Errorf("svcclient: %s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("svcclient: %s %s: status %d", method, url, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("svcclient: %s %s: decode response: %w", method, url, err)
	}
	return nil
}

func wrapServiceError(url string, err error) error {
	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		return errors.Wrap(errors.ErrCodeCircuitOpen, fmt.Sprintf("circuit open for %s", url), err)
	}
	return errors.Wrap(errors.ErrCodeServiceUnavailable, fmt.Sprintf("call to %s failed", url), err)
}
