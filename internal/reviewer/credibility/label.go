// Package credibility implements the credibility reviewers that sit at the
// top of the review tree: DB/query-sentence credibility, article and tweet
// aggregation, and the RatingLabel helper that the ClaimReview normalizer
// and the website reviewer also use.
package credibility

import "fmt"

// DefaultConfidenceThreshold is the minimum confidence a credibility rating
// needs before RatingLabel will describe it as anything other than "not
// verifiable".
const DefaultConfidenceThreshold = 0.7

// RatingLabel converts a credibility rating (ratingValue in [-1, 1],
// confidence in [0, 1]) into a short descriptive label. A rating below
// confThreshold is reported as "not verifiable" regardless of its value.
func RatingLabel(ratingValue, confidence, confThreshold float64) (string, error) {
	if confidence < confThreshold {
		return "not verifiable", nil
	}
	if ratingValue < -1.0 || ratingValue > 1.0 {
		return "", fmt.Errorf("credibility: RatingLabel: ratingValue %v out of range [-1, 1]", ratingValue)
	}
	switch {
	case ratingValue >= 0.5:
		return "credible", nil
	case ratingValue >= 0.25:
		return "mostly credible", nil
	case ratingValue >= -0.25:
		return "uncertain", nil
	case ratingValue >= -0.5:
		return "mostly not credible", nil
	default:
		return "not credible", nil
	}
}
