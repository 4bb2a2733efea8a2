// Package similarity (continued: review construction) turns raw
// similarity-service results into SentSimilarityReview and
// SentPolarSimilarityReview items, the latter combining a similarity score
// with a stance verdict into a single signed "polar similarity".
package similarity

import (
	"fmt"

	"github.com/coinform/credserve/internal/bot"
	"github.com/coinform/credserve/internal/identity"
	"github.com/coinform/credserve/internal/isodate"
	"github.com/coinform/credserve/internal/item"
	"github.com/coinform/credserve/internal/rating"
	"github.com/coinform/credserve/internal/reviewer/stance"
)

const (
	ciContext           = "http://coinform.eu"
	reviewerVersion     = "0.1.0"
	reviewerDateCreated = "2020-03-27T22:54:00Z"
)

// SimilarSentAsReview converts a single similar-sentence match into a plain
// (unipolar) SentSimilarityReview.
func SimilarSentAsReview(simSent, simResult map[string]interface{}, dbSentAppearance []interface{}) (item.Item, error) {
	qSent, _ := simResult["q_claim"].(string)
	dbSent, _ := simSent["sentence"].(string)
	sentPair, err := item.AsDBQSentPair(dbSent, qSent, dbSentAppearance)
	if err != nil {
		return nil, err
	}

	simVal, _ := simSent["similarity"].(float64)

	dateCreated, _ := simResult["dateCreated"].(string)
	if dateCreated == "" {
		dateCreated = isodate.NowUTCTimestamp()
	}

	return item.Item{
		"@context":     ciContext,
		"@type":        "SentSimilarityReview",
		"itemReviewed": sentPair,
		"headline":     ClaimRelStr(simVal, ""),
		"reviewRating": item.Item{
			"@type":        "Rating",
			"reviewAspect": "similarity",
			"ratingValue":  simVal,
		},
		"dateCreated": dateCreated,
		"author":      simResult["simReviewer"],
	}, nil
}

// SimilarSentAsPolarReview converts a single similar-sentence match into a
// SentPolarSimilarityReview by building its two sub-reviews (plain
// similarity, and stance) and combining them. stance.SimilarSentAsReview
// returns (nil, nil) when the match carries no stance verdict, in which
// case AggregatePolarSimilarity degrades to the plain similarity review.
func SimilarSentAsPolarReview(simSent, simResult map[string]interface{}, dbSentAppearance []interface{}, unrelatedFactor, discussFactor float64) (item.Item, error) {
	simReview, err := SimilarSentAsReview(simSent, simResult, dbSentAppearance)
	if err != nil {
		return nil, err
	}
	stanceReview, err := stance.SimilarSentAsReview(simSent, simResult, dbSentAppearance)
	if err != nil {
		return nil, err
	}
	return AggregatePolarSimilarity(simReview, stanceReview, unrelatedFactor, discussFactor)
}

// PolarityReviewerBotInfo describes the composite bot that produces
// SentPolarSimilarityReviews out of a similarity sub-bot and a stance
// sub-bot.
func PolarityReviewerBotInfo(subBots []interface{}) item.Item {
	result := item.Item{
		"@context":             ciContext,
		"@type":                "SentPolarityReviewer",
		"name":                 "ESI Sentence Polarity Reviewer",
		"description":          "Estimates the polar similarity between two sentences",
		"additionalType":       []string{"SoftwareApplication", "Bot"},
		"softwareVersion":      reviewerVersion,
		"dateCreated":          reviewerDateCreated,
		"url":                  fmt.Sprintf("%s/bot/SentencePolarSimilarityReviewer/%s", ciContext, reviewerVersion),
		"applicationSuite":     "Co-inform",
		"author":               bot.ESILabOrganization(),
		"isBasedOn":            subBots,
		"launchConfiguration": item.Item{},
	}
	identKeys := []string{"@type", "name", "dateCreated", "softwareVersion", "isBasedOn", "launchConfiguration"}
	selected := item.Item{}
	for _, k := range identKeys {
		if v, ok := result[k]; ok {
			selected[k] = v
		}
	}
	result["identifier"] = identity.HashDict(selected)
	return result
}

// AggregatePolarSimilarity combines a unipolar similarity review and a
// stance review into a SentPolarSimilarityReview. simReview is required; a
// nil simReview is an error.
// A nil stanceReview degrades gracefully to returning simReview unchanged,
// matching the source behavior of treating stance detection as optional.
func AggregatePolarSimilarity(simReview, stanceReview item.Item, unrelatedFactor, discussFactor float64) (item.Item, error) {
	if simReview == nil {
		return nil, fmt.Errorf("similarity: AggregatePolarSimilarity: simReview is required")
	}
	if stanceReview == nil {
		return simReview, nil
	}

	simRating, _ := simReview["reviewRating"].(item.Item)
	sim, _ := simRating["ratingValue"].(float64)

	stanceRating, _ := stanceReview["reviewRating"].(item.Item)
	stance, ok := stanceRating["ratingValue"].(string)
	if !ok || stance == "" {
		stance = "unrelated"
	}
	stanceConf, ok := stanceRating["confidence"].(float64)
	if !ok {
		stanceConf = 0.5
	}

	sentPair, _ := simReview["itemReviewed"].(item.Item)
	aggSim, err := calcAggPolarSim(sim, stance, stanceConf, unrelatedFactor, discussFactor)
	if err != nil {
		return nil, err
	}

	subReviews := []item.Item{simReview, stanceReview}
	subRatings := []item.Item{simRating, stanceRating}

	headline := ClaimRelStr(sim, stance)
	sentA, _ := sentPair["sentA"].(item.Item)
	sentB, _ := sentPair["sentB"].(item.Item)
	explanation := fmt.Sprintf("Sentence `%v` %s `%v`", sentA["text"], headline, sentB["text"])

	subBots := []interface{}{simReview["author"], stanceReview["author"]}

	return item.Item{
		"@context":       ciContext,
		"@type":          "SentPolarSimilarityReview",
		"additionalType": []string{"SimilarityReview", "Review"},
		"itemReviewed":   sentPair,
		"headline":       headline,
		"reviewAspect":   "polarSimilarity",
		"reviewBody":     explanation,
		"reviewRating": item.Item{
			"@type":             "AggregateRating",
			"reviewAspect":      "polarSimilarity",
			"ratingValue":       aggSim,
			"confidence":        stanceConf,
			"reviewCount":       len(subReviews),
			"ratingCount":       rating.TotalRatingCount(subRatings),
			"ratingExplanation": explanation,
		},
		"isBasedOn":   []interface{}{simReview, stanceReview},
		"dateCreated": isodate.NowUTCTimestamp(),
		"author":      PolarityReviewerBotInfo(subBots),
	}, nil
}

// calcAggPolarSim folds a unipolar similarity score and a stance verdict
// into a single signed polarity value in [-1, 1]:
//   - agree: keeps (or boosts confidence toward) a positive polarity
//   - disagree: mirrors the same boost but negative
//   - unrelated/discuss: damps the similarity by a configurable factor
func calcAggPolarSim(sim float64, stance string, stanceConf, unrelatedFactor, discussFactor float64) (float64, error) {
	if sim < 0.0 || sim > 1.0 {
		return 0, fmt.Errorf("similarity: calcAggPolarSim: sim %v out of [0,1]", sim)
	}
	if stanceConf < 0.0 || stanceConf > 1.0 {
		return 0, fmt.Errorf("similarity: calcAggPolarSim: stanceConf %v out of [0,1]", stanceConf)
	}
	switch stance {
	case "agree":
		if sim > stanceConf {
			return sim, nil
		}
		return (stanceConf + sim) / 2.0, nil
	case "disagree":
		if sim > stanceConf {
			return -sim, nil
		}
		return -(stanceConf + sim) / 2.0, nil
	case "unrelated":
		if unrelatedFactor == 0 {
			unrelatedFactor = 0.9
		}
		return sim * unrelatedFactor, nil
	default: // discuss
		if discussFactor == 0 {
			discussFactor = 0.9
		}
		return sim * discussFactor, nil
	}
}
