package credibility

import (
	"testing"

	"github.com/coinform/credserve/internal/item"
)

func sampleTweet() item.Item {
	return item.Item{
		"@type": "Tweet",
		"url":   "http://twitter.com/x/status/1",
		"text":  "the sky is falling",
	}
}

func TestMarkdownRefForTweet(t *testing.T) {
	got := MarkdownRefForTweet(sampleTweet())
	want := "[the tweet](http://twitter.com/x/status/1)"
	if got != want {
		t.Errorf("MarkdownRefForTweet = %q, want %q", got, want)
	}
}

func TestMarkdownRefForTweetMissingURL(t *testing.T) {
	got := MarkdownRefForTweet(item.Item{})
	want := "[the tweet]((tweet url missing))"
	if got != want {
		t.Errorf("MarkdownRefForTweet = %q, want %q", got, want)
	}
}

func TestAggregateTweetSubReviewsNoSubReviews(t *testing.T) {
	out, err := AggregateTweetSubReviews(nil, sampleTweet(), item.Item{"@type": "TweetCredReviewer"}, 0.7)
	if err != nil {
		t.Fatalf("AggregateTweetSubReviews: %v", err)
	}
	rr := out["reviewRating"].(item.Item)
	if rr["confidence"] != 0.0 {
		t.Errorf("confidence = %v, want 0.0", rr["confidence"])
	}
}

func TestAggregateTweetSubReviewsAllBelowConfidence(t *testing.T) {
	subReviews := []item.Item{
		{
			"text":         "weak signal",
			"reviewRating": item.Item{"ratingValue": 0.2, "confidence": 0.1},
		},
	}
	out, err := AggregateTweetSubReviews(subReviews, sampleTweet(), item.Item{"@type": "TweetCredReviewer"}, 0.7)
	if err != nil {
		t.Fatalf("AggregateTweetSubReviews: %v", err)
	}
	rr := out["reviewRating"].(item.Item)
	if rr["confidence"] != 0.0 {
		t.Errorf("confidence = %v, want 0.0 (all sub-reviews below threshold)", rr["confidence"])
	}
}

func TestAggregateTweetSubReviewsPicksLeastCredible(t *testing.T) {
	subReviews := []item.Item{
		{
			"text":         "sentence one seems credible",
			"reviewRating": item.Item{"ratingValue": 0.9, "confidence": 0.9},
		},
		{
			"text":         "sentence two seems false",
			"reviewRating": item.Item{"ratingValue": -0.7, "confidence": 0.8},
		},
	}
	out, err := AggregateTweetSubReviews(subReviews, sampleTweet(), item.Item{"@type": "TweetCredReviewer"}, 0.7)
	if err != nil {
		t.Fatalf("AggregateTweetSubReviews: %v", err)
	}
	rr := out["reviewRating"].(item.Item)
	if rr["ratingValue"] != -0.7 {
		t.Errorf("ratingValue = %v, want -0.7 (least credible above threshold)", rr["ratingValue"])
	}
	if out["@type"] != "TweetCredReview" {
		t.Errorf("@type = %v", out["@type"])
	}
}
