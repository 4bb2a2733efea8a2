// Package stance turns a raw stance-detection result for a sentence pair
// into a SentStanceReview item.
package stance

import (
	"fmt"

	"github.com/coinform/credserve/internal/isodate"
	"github.com/coinform/credserve/internal/item"
)

const ciContext = "http://coinform.eu"

// SimilarSentAsReview converts a single similar-sentence match returned by
// the similarity service into a SentStanceReview, or returns nil, nil when
// the match carries no stance verdict at all (the service only attaches a
// stance when it ran a stance model over the pair).
func SimilarSentAsReview(simSent, simResult map[string]interface{}, dbSentAppearance []interface{}) (item.Item, error) {
	stanceVal, ok := simSent["sent_stance"]
	if !ok || stanceVal == nil {
		return nil, nil
	}

	qSent, _ := simResult["q_claim"].(string)
	dbSent, _ := simSent["sentence"].(string)
	sentPair, err := item.AsDBQSentPair(dbSent, qSent, dbSentAppearance)
	if err != nil {
		return nil, err
	}

	dateCreated, _ := simResult["dateCreated"].(string)
	if dateCreated == "" {
		dateCreated = isodate.NowUTCTimestamp()
	}

	return item.Item{
		"@context":       ciContext,
		"@type":          "SentStanceReview",
		"additionalType": []string{"StanceReview", "Review"},
		"reviewAspect":   "stance",
		"itemReviewed":   sentPair,
		"reviewRating": item.Item{
			"@type":             "Rating",
			"reviewAspect":      "stance",
			"ratingValue":       stanceVal,
			"confidence":        simSent["sent_stance_confidence"],
			"ratingExplanation": fmt.Sprintf("Sentence `dbSent` **%v** `qSent`.", stanceVal),
		},
		"dateCreated": dateCreated,
		"author":      simResult["stanceReviewer"],
	}, nil
}
