package credibility

import (
	"testing"

	"github.com/coinform/credserve/internal/item"
)

func TestAggregateDBSentSubReviewsNoClaimReview(t *testing.T) {
	dbSentence := item.Item{"text": "the earth is round", "@type": "Sentence"}
	webSiteCred := item.Item{
		"itemReviewed": item.Item{"name": "example.com"},
		"text":         "seems credible",
		"reviewRating": item.Item{
			"@type":       "AggregateRating",
			"ratingValue": 0.6,
			"confidence":  0.8,
			"reviewCount": 1,
			"ratingCount": 1,
		},
	}
	out, err := AggregateDBSentSubReviews(dbSentence, nil, webSiteCred, 0.5, 0.5, nil, nil)
	if err != nil {
		t.Fatalf("AggregateDBSentSubReviews: %v", err)
	}
	if out["@type"] != "DBSentCredReview" {
		t.Errorf("@type = %v", out["@type"])
	}
	rr := out["reviewRating"].(item.Item)
	if rr["ratingValue"] != 0.6 {
		t.Errorf("ratingValue = %v, want 0.6", rr["ratingValue"])
	}
}

func TestWebsiteCredRevAsQClaimCredRatingNilIsZeroConfidence(t *testing.T) {
	out, err := websiteCredRevAsQClaimCredRating(nil, 0.5, nil)
	if err != nil {
		t.Fatalf("websiteCredRevAsQClaimCredRating: %v", err)
	}
	if out["confidence"] != 0.0 {
		t.Errorf("confidence = %v, want 0.0", out["confidence"])
	}
}

// Matches the Python original's own factchecker unit test: snopes.com is a
// factchecker exactly when it appears in the configured acred_factchecker_urls
// list, regardless of what its display name says.
func TestWebsiteCredRevAsQClaimCredRatingPenalisesFactchecker(t *testing.T) {
	websiteCredRev := item.Item{
		"itemReviewed": item.Item{"name": "Snopes", "url": "https://snopes.com/fact-check/some-claim"},
		"reviewRating": item.Item{"confidence": 0.8, "ratingValue": 0.5},
	}
	out, err := websiteCredRevAsQClaimCredRating(websiteCredRev, 0.5, []string{"https://snopes.com/"})
	if err != nil {
		t.Fatalf("websiteCredRevAsQClaimCredRating: %v", err)
	}
	if out["confidence"] != 0.4 {
		t.Errorf("confidence = %v, want 0.4 (penalised)", out["confidence"])
	}
}

func TestWebsiteCredRevAsQClaimCredRatingDoesNotPenaliseUnlistedSite(t *testing.T) {
	websiteCredRev := item.Item{
		"itemReviewed": item.Item{"name": "Example", "url": "https://example.com/article"},
		"reviewRating": item.Item{"confidence": 0.8, "ratingValue": 0.5},
	}
	out, err := websiteCredRevAsQClaimCredRating(websiteCredRev, 0.5, []string{"https://snopes.com/"})
	if err != nil {
		t.Fatalf("websiteCredRevAsQClaimCredRating: %v", err)
	}
	if out["confidence"] != 0.8 {
		t.Errorf("confidence = %v, want 0.8 (unpenalised)", out["confidence"])
	}
}

func TestIsByFactcheckerMatchesConfiguredURLList(t *testing.T) {
	websiteCredRev := item.Item{
		"itemReviewed": item.Item{"name": "Snopes", "url": "https://snopes.com/fact-check/some-claim"},
	}
	if !IsByFactchecker(websiteCredRev, []string{"https://snopes.com/"}) {
		t.Error("expected snopes.com to match the configured factchecker URL list")
	}
}

func TestIsByFactcheckerEmptyListNeverMatches(t *testing.T) {
	websiteCredRev := item.Item{
		"itemReviewed": item.Item{"name": "Snopes", "url": "https://snopes.com/fact-check/some-claim"},
	}
	if IsByFactchecker(websiteCredRev, nil) {
		t.Error("expected an empty factchecker URL list to never match")
	}
}

func TestMdLinkToDocVariants(t *testing.T) {
	if got := mdLinkToDoc(item.Item{"url": "http://a", "domain": "a.com"}); got != "[a.com](http://a)" {
		t.Errorf("mdLinkToDoc = %q", got)
	}
	if got := mdLinkToDoc(item.Item{"url": "http://a"}); got != "[this page](http://a)" {
		t.Errorf("mdLinkToDoc = %q", got)
	}
	if got := mdLinkToDoc(item.Item{}); got != "" {
		t.Errorf("mdLinkToDoc = %q, want empty", got)
	}
}
