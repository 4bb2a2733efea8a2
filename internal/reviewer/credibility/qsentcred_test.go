package credibility

import (
	"testing"

	"github.com/coinform/credserve/internal/item"
)

func TestAggregateQSentSubReviewsProjectsPolarity(t *testing.T) {
	polarSimReview := item.Item{
		"headline": "agrees with",
		"itemReviewed": item.Item{
			"sentA": item.Item{"text": "query sentence"},
			"sentB": item.Item{"text": "db sentence"},
		},
		"reviewRating": item.Item{"ratingValue": 0.8},
	}
	dbSentCredReview := item.Item{
		"itemReviewed": item.Item{"text": "db sentence"},
		"reviewRating": item.Item{
			"ratingValue":       0.5,
			"confidence":        0.9,
			"ratingExplanation": "seems credible",
		},
	}
	out, err := AggregateQSentSubReviews(polarSimReview, dbSentCredReview, 0.5)
	if err != nil {
		t.Fatalf("AggregateQSentSubReviews: %v", err)
	}
	rr := out["reviewRating"].(item.Item)
	if rr["ratingValue"] != 0.5 {
		t.Errorf("ratingValue = %v, want 0.5 (positive polarity * dbCredVal)", rr["ratingValue"])
	}
	dbConf, sim := 0.9, 0.8
	wantConf := dbConf * sim
	if rr["confidence"] != wantConf {
		t.Errorf("confidence = %v, want %v", rr["confidence"], wantConf)
	}
}

func TestAggregateQSentSubReviewsNegativePolarity(t *testing.T) {
	polarSimReview := item.Item{
		"headline": "disagrees with",
		"itemReviewed": item.Item{
			"sentA": item.Item{"text": "query sentence"},
			"sentB": item.Item{"text": "db sentence"},
		},
		"reviewRating": item.Item{"ratingValue": -0.8},
	}
	dbSentCredReview := item.Item{
		"itemReviewed": item.Item{"text": "db sentence"},
		"reviewRating": item.Item{
			"ratingValue": 0.5,
			"confidence":  0.9,
		},
	}
	out, err := AggregateQSentSubReviews(polarSimReview, dbSentCredReview, 0.5)
	if err != nil {
		t.Fatalf("AggregateQSentSubReviews: %v", err)
	}
	rr := out["reviewRating"].(item.Item)
	if rr["ratingValue"] != -0.5 {
		t.Errorf("ratingValue = %v, want -0.5", rr["ratingValue"])
	}
}

func TestAggregateQSentSubReviewsMismatchedSentencesErrors(t *testing.T) {
	polarSimReview := item.Item{
		"itemReviewed": item.Item{
			"sentA": item.Item{"text": "query sentence"},
			"sentB": item.Item{"text": "other db sentence"},
		},
		"reviewRating": item.Item{"ratingValue": 0.8},
	}
	dbSentCredReview := item.Item{
		"itemReviewed": item.Item{"text": "db sentence"},
		"reviewRating": item.Item{"ratingValue": 0.5, "confidence": 0.9},
	}
	if _, err := AggregateQSentSubReviews(polarSimReview, dbSentCredReview, 0.5); err == nil {
		t.Fatal("expected error for mismatched sentences")
	}
}
