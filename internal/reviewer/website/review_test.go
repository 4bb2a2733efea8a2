package website

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/coinform/credserve/internal/svcclient"
)

func TestMisinfoMeSourceCredReviewerDeterministicWithinWeek(t *testing.T) {
	now := time.Date(2026, 7, 30, 12, 0, 0, 0, time.UTC)
	a := MisinfoMeSourceCredReviewer(now)
	b := MisinfoMeSourceCredReviewer(now.Add(2 * time.Hour))
	if a["softwareVersion"] != b["softwareVersion"] {
		t.Errorf("softwareVersion should be stable within the same day: %v != %v", a["softwareVersion"], b["softwareVersion"])
	}
}

func TestFromDomainCredibilityBuildsReview(t *testing.T) {
	now := time.Date(2026, 7, 30, 12, 0, 0, 0, time.UTC)
	domCred := map[string]interface{}{
		"itemReviewed": "www.example.com",
		"credibility": map[string]interface{}{
			"value":      0.8,
			"confidence": 0.9,
		},
		"assessments": []interface{}{
			map[string]interface{}{"origin": map[string]interface{}{"name": "Rater1", "homepage": "http://rater1.example"}},
		},
	}
	out, err := FromDomainCredibility(domCred, 0.5, now)
	if err != nil {
		t.Fatalf("FromDomainCredibility: %v", err)
	}
	if out["@type"] != "WebSiteCredReview" {
		t.Errorf("@type = %v", out["@type"])
	}
	rr, ok := out["reviewRating"].(map[string]interface{})
	if !ok {
		t.Fatalf("reviewRating has unexpected type %T", out["reviewRating"])
	}
	if rr["ratingValue"] != 0.8 {
		t.Errorf("ratingValue = %v, want 0.8", rr["ratingValue"])
	}
}

func TestExampleRatersMarkdownCounts(t *testing.T) {
	none := exampleRatersMarkdown(nil)
	if none != " (missing data about raters)" {
		t.Errorf("exampleRatersMarkdown(nil) = %q", none)
	}
	one := exampleRatersMarkdown([]interface{}{
		map[string]interface{}{"origin": map[string]interface{}{"name": "A", "homepage": "http://a"}},
	})
	if one != " ([A](http://a))" {
		t.Errorf("exampleRatersMarkdown(1) = %q", one)
	}
}

func TestPenaliseCredibilityHalvesConfidence(t *testing.T) {
	domCred := map[string]interface{}{
		"credibility": map[string]interface{}{"confidence": 0.8},
	}
	out := PenaliseCredibility(domCred)
	cred := out["credibility"].(map[string]interface{})
	if cred["confidence"] != 0.4 {
		t.Errorf("confidence = %v, want 0.4", cred["confidence"])
	}
}

func TestDefaultDomainCredibilityIsZeroConfidence(t *testing.T) {
	out := DefaultDomainCredibility("example.com", "no data")
	cred := out["credibility"].(map[string]interface{})
	if cred["confidence"] != 0.0 {
		t.Errorf("confidence = %v, want 0.0", cred["confidence"])
	}
}

func TestReviewWebsiteUsesClientResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"itemReviewed":"example.com","credibility":{"value":0.7,"confidence":0.6},"assessments":[]}`))
	}))
	defer srv.Close()

	client := svcclient.NewWebsiteCredibilityClient(srv.URL, nil)
	now := time.Date(2026, 7, 30, 12, 0, 0, 0, time.UTC)
	out, err := ReviewWebsite(context.Background(), client, "example.com", 0.5, now)
	if err != nil {
		t.Fatalf("ReviewWebsite: %v", err)
	}
	rr := out["reviewRating"].(map[string]interface{})
	if rr["ratingValue"] != 0.7 {
		t.Errorf("ratingValue = %v, want 0.7", rr["ratingValue"])
	}
}

func TestReviewWebsiteDegradesOnClientFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := svcclient.NewWebsiteCredibilityClient(srv.URL, nil)
	now := time.Date(2026, 7, 30, 12, 0, 0, 0, time.UTC)
	out, err := ReviewWebsite(context.Background(), client, "example.com", 0.5, now)
	if err != nil {
		t.Fatalf("ReviewWebsite: %v", err)
	}
	rr := out["reviewRating"].(map[string]interface{})
	if rr["confidence"] != 0.0 {
		t.Errorf("confidence = %v, want 0.0 (default fallback)", rr["confidence"])
	}
}
