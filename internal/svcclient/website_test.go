package svcclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/coinform/credserve/internal/cache"
)

func TestDomainCredibilityFetchesAndCaches(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"credibility":{"value":0.5,"confidence":0.8},"assessments":[]}`))
	}))
	defer srv.Close()

	c := NewWebsiteCredibilityClient(srv.URL, cache.NewMemoryCache())
	ctx := context.Background()

	out, err := c.DomainCredibility(ctx, "example.com")
	if err != nil {
		t.Fatalf("DomainCredibility: %v", err)
	}
	if out["credibility"] == nil {
		t.Errorf("missing credibility field in %v", out)
	}

	if _, err := c.DomainCredibility(ctx, "example.com"); err != nil {
		t.Fatalf("DomainCredibility (cached): %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (second lookup should hit cache)", calls)
	}
}

func TestDomainCredibilityWithoutCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"credibility":{"value":0.5,"confidence":0.8},"assessments":[]}`))
	}))
	defer srv.Close()

	c := NewWebsiteCredibilityClient(srv.URL, nil)
	if _, err := c.DomainCredibility(context.Background(), "example.com"); err != nil {
		t.Fatalf("DomainCredibility: %v", err)
	}
}
