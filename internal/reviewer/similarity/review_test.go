package similarity

import (
	"testing"

	"github.com/coinform/credserve/internal/item"
)

func TestSimilarSentAsReviewBuildsUnipolarReview(t *testing.T) {
	simSent := map[string]interface{}{"sentence": "the sky is blue", "similarity": 0.95}
	simResult := map[string]interface{}{
		"q_claim":     "is the sky blue",
		"simReviewer": map[string]interface{}{"@type": "SemSentSimReviewer"},
	}
	out, err := SimilarSentAsReview(simSent, simResult, nil)
	if err != nil {
		t.Fatalf("SimilarSentAsReview: %v", err)
	}
	if out["@type"] != "SentSimilarityReview" {
		t.Errorf("@type = %v", out["@type"])
	}
	rr := out["reviewRating"].(item.Item)
	if rr["ratingValue"] != 0.95 {
		t.Errorf("ratingValue = %v, want 0.95", rr["ratingValue"])
	}
}

func TestAggregatePolarSimilarityNilStanceReturnsSimReview(t *testing.T) {
	simReview := item.Item{"@type": "SentSimilarityReview"}
	out, err := AggregatePolarSimilarity(simReview, nil, 0, 0)
	if err != nil {
		t.Fatalf("AggregatePolarSimilarity: %v", err)
	}
	if out["@type"] != "SentSimilarityReview" {
		t.Errorf("expected passthrough of simReview, got %v", out)
	}
}

func TestAggregatePolarSimilarityAgree(t *testing.T) {
	simReview := item.Item{
		"reviewRating": item.Item{"ratingValue": 0.9},
		"itemReviewed": item.Item{
			"sentA": item.Item{"text": "a"},
			"sentB": item.Item{"text": "b"},
		},
		"author": item.Item{"@type": "SemSentSimReviewer"},
	}
	stanceReview := item.Item{
		"reviewRating": item.Item{"ratingValue": "agree", "confidence": 0.8},
		"author":       item.Item{"@type": "SentStanceReviewer"},
	}
	out, err := AggregatePolarSimilarity(simReview, stanceReview, 0, 0)
	if err != nil {
		t.Fatalf("AggregatePolarSimilarity: %v", err)
	}
	rr := out["reviewRating"].(item.Item)
	if rr["ratingValue"] != 0.9 {
		t.Errorf("ratingValue = %v, want 0.9 (sim > stanceConf keeps sim)", rr["ratingValue"])
	}
}

func TestAggregatePolarSimilarityDisagree(t *testing.T) {
	simReview := item.Item{
		"reviewRating": item.Item{"ratingValue": 0.9},
		"itemReviewed": item.Item{
			"sentA": item.Item{"text": "a"},
			"sentB": item.Item{"text": "b"},
		},
		"author": item.Item{},
	}
	stanceReview := item.Item{
		"reviewRating": item.Item{"ratingValue": "disagree", "confidence": 0.8},
		"author":       item.Item{},
	}
	out, err := AggregatePolarSimilarity(simReview, stanceReview, 0, 0)
	if err != nil {
		t.Fatalf("AggregatePolarSimilarity: %v", err)
	}
	rr := out["reviewRating"].(item.Item)
	if rr["ratingValue"] != -0.9 {
		t.Errorf("ratingValue = %v, want -0.9", rr["ratingValue"])
	}
}

func TestCalcAggPolarSimUnrelatedDampens(t *testing.T) {
	sim, factor := 0.8, 0.9
	got, err := calcAggPolarSim(sim, "unrelated", 0.5, factor, 0.9)
	if err != nil {
		t.Fatalf("calcAggPolarSim: %v", err)
	}
	want := sim * factor
	if got != want {
		t.Errorf("calcAggPolarSim = %v, want %v", got, want)
	}
}

func TestCalcAggPolarSimRejectsOutOfRange(t *testing.T) {
	if _, err := calcAggPolarSim(1.5, "unrelated", 0.5, 0.9, 0.9); err == nil {
		t.Fatal("expected error for sim out of range")
	}
}

func TestSimilarSentAsPolarReviewWithStance(t *testing.T) {
	simSent := map[string]interface{}{
		"sentence":                "the sky is blue",
		"similarity":              0.9,
		"sent_stance":             "agree",
		"sent_stance_confidence":  0.8,
	}
	simResult := map[string]interface{}{
		"q_claim":        "is the sky blue",
		"simReviewer":    map[string]interface{}{"@type": "SemSentSimReviewer"},
		"stanceReviewer": map[string]interface{}{"@type": "SentStanceReviewer"},
	}
	out, err := SimilarSentAsPolarReview(simSent, simResult, nil, 0.9, 0.9)
	if err != nil {
		t.Fatalf("SimilarSentAsPolarReview: %v", err)
	}
	if out["@type"] != "SentPolarSimilarityReview" {
		t.Errorf("@type = %v", out["@type"])
	}
	rr := out["reviewRating"].(item.Item)
	if rr["ratingValue"] != 0.9 {
		t.Errorf("ratingValue = %v, want 0.9 (agree, sim > stanceConf)", rr["ratingValue"])
	}
}

func TestSimilarSentAsPolarReviewWithoutStanceDegrades(t *testing.T) {
	simSent := map[string]interface{}{"sentence": "the sky is blue", "similarity": 0.9}
	simResult := map[string]interface{}{
		"q_claim":     "is the sky blue",
		"simReviewer": map[string]interface{}{"@type": "SemSentSimReviewer"},
	}
	out, err := SimilarSentAsPolarReview(simSent, simResult, nil, 0.9, 0.9)
	if err != nil {
		t.Fatalf("SimilarSentAsPolarReview: %v", err)
	}
	if out["@type"] != "SentSimilarityReview" {
		t.Errorf("@type = %v, want plain SentSimilarityReview passthrough when no stance present", out["@type"])
	}
}
