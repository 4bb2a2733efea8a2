// Package rating provides the small selector and aggregation functions
// reviewers use to reduce a list of sub-ratings or sub-reviews into a
// single result: pick the most confident one, pick the least credible one
// among those confident enough, and roll up review/rating counts.
package rating

import (
	"sort"

	"github.com/coinform/credserve/internal/item"
)

// confidenceOf reads rating["confidence"], defaulting to -1.0 (so an
// uncollected confidence never outranks one that is actually present but
// zero).
func confidenceOf(rating item.Item) float64 {
	return floatOr(rating["confidence"], -1.0)
}

// reviewRatingConfidenceOf reads review["reviewRating"]["confidence"].
func reviewRatingConfidenceOf(review item.Item) float64 {
	rr, ok := review["reviewRating"].(item.Item)
	if !ok {
		return -1.0
	}
	return floatOr(rr["confidence"], -1.0)
}

func floatOr(v interface{}, def float64) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return def
	}
}

// SelectMostConfidentRating returns the rating with the highest confidence,
// or nil if ratings is empty. Ties keep the first-encountered maximum, the
// same as a stable sort by confidence descending.
func SelectMostConfidentRating(ratings []item.Item) item.Item {
	if len(ratings) == 0 {
		return nil
	}
	sorted := make([]item.Item, len(ratings))
	copy(sorted, ratings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return confidenceOf(sorted[i]) > confidenceOf(sorted[j])
	})
	return sorted[0]
}

// SelectMostConfidentReview returns the review whose reviewRating has the
// highest confidence, or nil if reviews is empty.
func SelectMostConfidentReview(reviews []item.Item) item.Item {
	if len(reviews) == 0 {
		return nil
	}
	sorted := make([]item.Item, len(reviews))
	copy(sorted, reviews)
	sort.SliceStable(sorted, func(i, j int) bool {
		return reviewRatingConfidenceOf(sorted[i]) > reviewRatingConfidenceOf(sorted[j])
	})
	return sorted[0]
}

// FilterReviewsByMinConfidence returns the subset of reviews whose
// reviewRating.confidence is >= threshold. A review with no confidence
// value at all is treated as confidence 0.0, so it only passes a
// non-positive threshold.
func FilterReviewsByMinConfidence(reviews []item.Item, threshold float64) []item.Item {
	out := make([]item.Item, 0, len(reviews))
	for _, r := range reviews {
		rr, _ := r["reviewRating"].(item.Item)
		conf := floatOr(rr["confidence"], 0.0)
		if conf >= threshold {
			out = append(out, r)
		}
	}
	return out
}

// SelectLeastCredible returns the review with the lowest reviewRating.ratingValue
// among reviews, or nil if reviews is empty. Used after
// FilterReviewsByMinConfidence to pick the most pessimistic of the
// sufficiently-confident sub-reviews.
func SelectLeastCredible(reviews []item.Item) item.Item {
	if len(reviews) == 0 {
		return nil
	}
	sorted := make([]item.Item, len(reviews))
	copy(sorted, reviews)
	sort.SliceStable(sorted, func(i, j int) bool {
		ri, _ := sorted[i]["reviewRating"].(item.Item)
		rj, _ := sorted[j]["reviewRating"].(item.Item)
		return floatOr(ri["ratingValue"], 0.0) < floatOr(rj["ratingValue"], 0.0)
	})
	return sorted[0]
}

// TotalReviewCount sums the reviewCount field across ratings, treating a
// missing reviewCount as 0.
func TotalReviewCount(ratings []item.Item) int {
	total := 0
	for _, r := range ratings {
		total += intOr(r["reviewCount"], 0)
	}
	return total
}

// TotalRatingCount sums ratingCount across ratings, counting each
// sub-rating's own ratingCount plus one for the sub-rating itself.
func TotalRatingCount(ratings []item.Item) int {
	total := 0
	for _, r := range ratings {
		total += intOr(r["ratingCount"], 0) + 1
	}
	return total
}

func intOr(v interface{}, def int) int {
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	default:
		return def
	}
}
