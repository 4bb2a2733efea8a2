package check

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCheckServicesReportsConfiguredAndReachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.Services.ClaimSearchURL = srv.URL
	cfg.Services.WorthinessURL = ""
	cfg.Services.MisinfoMeURL = ""

	c := NewChecker(cfg)
	results := c.checkServices(context.Background())

	var claimSearch *ServiceCheckResult
	for i := range results {
		if results[i].Name == "claim search" {
			claimSearch = &results[i]
		}
	}
	if claimSearch == nil {
		t.Fatal("expected a claim search result")
	}
	if !claimSearch.Configured || !claimSearch.Reachable {
		t.Errorf("claim search = %+v, want configured and reachable", claimSearch)
	}
}

func TestCheckServicesReportsUnconfiguredAsNotConfigured(t *testing.T) {
	cfg := testConfig()
	cfg.Services.ClaimSearchURL = "http://localhost:9" // still required, but unreachable
	cfg.Services.WorthinessURL = ""
	cfg.Services.MisinfoMeURL = ""

	c := NewChecker(cfg)
	results := c.checkServices(context.Background())

	for _, r := range results {
		if r.Name == "check-worthiness" && r.Configured {
			t.Error("check-worthiness should be reported as not configured when its URL is blank")
		}
	}
}

func TestProbeUnreachableHostReturnsFalse(t *testing.T) {
	ok, err := probe(context.Background(), "http://127.0.0.1:1")
	if ok {
		t.Error("expected probe of an unreachable host to return false")
	}
	if err == nil {
		t.Error("expected an error describing the failure")
	}
}
