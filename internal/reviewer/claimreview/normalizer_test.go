package claimreview

import (
	"strings"
	"testing"

	"github.com/coinform/credserve/internal/item"
)

func sampleClaimReview(altName string, val, worst, best interface{}) item.Item {
	cr := item.Item{
		"@type":         "ClaimReview",
		"url":           "https://example.com/factcheck/1",
		"claimReviewed": "the earth is flat",
		"author": item.Item{
			"name": "Example Fact Checkers",
			"url":  "https://example.com",
		},
		"reviewRating": item.Item{
			"@type": "Rating",
		},
	}
	rr := cr["reviewRating"].(item.Item)
	if altName != "" {
		rr["alternateName"] = altName
	}
	if val != nil {
		rr["ratingValue"] = val
	}
	if worst != nil {
		rr["worstRating"] = worst
	}
	if best != nil {
		rr["bestRating"] = best
	}
	return cr
}

func TestNormaliseRejectsNonClaimReview(t *testing.T) {
	_, err := Normalise(item.Item{"@type": "Article"}, 0.5)
	if err == nil {
		t.Fatal("expected error for non-ClaimReview item")
	}
}

func TestNormaliseFalseVerdictYieldsNegativeOne(t *testing.T) {
	cr := sampleClaimReview("False", nil, nil, nil)
	out, err := Normalise(cr, 0.5)
	if err != nil {
		t.Fatalf("Normalise: %v", err)
	}
	rr := out["reviewRating"].(item.Item)
	if rr["ratingValue"].(float64) != -1.0 {
		t.Errorf("ratingValue = %v, want -1.0", rr["ratingValue"])
	}
}

func TestNormaliseTrueVerdictYieldsOne(t *testing.T) {
	cr := sampleClaimReview("True", nil, nil, nil)
	out, err := Normalise(cr, 0.5)
	if err != nil {
		t.Fatalf("Normalise: %v", err)
	}
	rr := out["reviewRating"].(item.Item)
	if rr["ratingValue"].(float64) != 1.0 {
		t.Errorf("ratingValue = %v, want 1.0", rr["ratingValue"])
	}
}

func TestNormaliseMixedVerdictIsZero(t *testing.T) {
	cr := sampleClaimReview("Mixture", nil, nil, nil)
	out, err := Normalise(cr, 0.5)
	if err != nil {
		t.Fatalf("Normalise: %v", err)
	}
	rr := out["reviewRating"].(item.Item)
	if rr["ratingValue"].(float64) != 0.0 {
		t.Errorf("ratingValue = %v, want 0.0", rr["ratingValue"])
	}
}

func TestNormaliseUnknownVerdictStringIsZeroConfidence(t *testing.T) {
	value, confidence, matched := classifyVerdict("some nonsense verdict never seen before")
	if matched {
		t.Fatalf("unexpected match: value=%v confidence=%v", value, confidence)
	}
}

func TestClassifyVerdictPrefixSuffixRules(t *testing.T) {
	cases := []struct {
		altName string
		want    float64
	}{
		{"wrong. the claim is incorrect", -1.0},
		{"misleading - missing context", -0.5},
		{"unsubstantiated. no evidence found", 0.0},
		{"true but incomplete", 0.5},
		{"accurate.", 1.0},
	}
	for _, c := range cases {
		got, _, matched := classifyVerdict(c.altName)
		if !matched {
			t.Errorf("classifyVerdict(%q): no match", c.altName)
			continue
		}
		if got != c.want {
			t.Errorf("classifyVerdict(%q) = %v, want %v", c.altName, got, c.want)
		}
	}
}

func TestNormalisedRatingValueScalesToCredibilityAxis(t *testing.T) {
	r := item.Item{"ratingValue": 5.0, "worstRating": 1.0, "bestRating": 5.0}
	out := normalisedRatingValue(r, item.Item{})
	if out["ratingValue"].(float64) != 1.0 {
		t.Errorf("ratingValue = %v, want 1.0", out["ratingValue"])
	}
	if out["confidence"].(float64) != 0.85 {
		t.Errorf("confidence = %v, want 0.85", out["confidence"])
	}
}

func TestNormalisedRatingValueMidRange(t *testing.T) {
	r := item.Item{"ratingValue": 3.0, "worstRating": 1.0, "bestRating": 5.0}
	out := normalisedRatingValue(r, item.Item{})
	if out["ratingValue"].(float64) != 0.0 {
		t.Errorf("ratingValue = %v, want 0.0", out["ratingValue"])
	}
}

func TestNormalisedRatingValueMissingIsZeroConfidence(t *testing.T) {
	out := normalisedRatingValue(item.Item{}, item.Item{})
	if out["confidence"].(float64) != 0.0 {
		t.Errorf("confidence = %v, want 0.0", out["confidence"])
	}
}

func TestNormalisedRatingValueOutOfRangeIsZeroConfidence(t *testing.T) {
	r := item.Item{"ratingValue": 10.0, "worstRating": 1.0, "bestRating": 5.0}
	out := normalisedRatingValue(r, item.Item{})
	if out["confidence"].(float64) != 0.0 {
		t.Errorf("confidence = %v, want 0.0", out["confidence"])
	}
}

func TestBotInfoHasStableIdentifier(t *testing.T) {
	a := BotInfo()
	b := BotInfo()
	idA, _ := a["identifier"].(string)
	idB, _ := b["identifier"].(string)
	if idA == "" {
		t.Fatal("expected non-empty identifier")
	}
	if idA != idB {
		t.Errorf("botInfo identifier not deterministic: %q != %q", idA, idB)
	}
}

func TestNormaliseProducesBasedOnOriginalAndSubRatings(t *testing.T) {
	cr := sampleClaimReview("False", 1.0, 1.0, 5.0)
	out, err := Normalise(cr, 0.5)
	if err != nil {
		t.Fatalf("Normalise: %v", err)
	}
	basedOn, ok := out["isBasedOn"].([]interface{})
	if !ok || len(basedOn) < 2 {
		t.Fatalf("isBasedOn = %v, want at least the original review plus sub ratings", out["isBasedOn"])
	}
	text, _ := out["text"].(string)
	if !strings.Contains(text, "flat") {
		t.Errorf("text = %q, expected to mention the claim", text)
	}
}
