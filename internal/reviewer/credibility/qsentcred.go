package credibility

import (
	"fmt"
	"math"

	"github.com/coinform/credserve/internal/bot"
	"github.com/coinform/credserve/internal/identity"
	"github.com/coinform/credserve/internal/isodate"
	"github.com/coinform/credserve/internal/item"
	"github.com/coinform/credserve/internal/rating"
)

const (
	qSentReviewerVersion     = "0.1.0"
	qSentReviewerDateCreated = "2020-03-27T22:54:00Z"
)

// QSentCredReviewerBotInfo describes the bot that estimates a query
// sentence's credibility from its polar similarity to an already-rated
// sentence in the database.
func QSentCredReviewerBotInfo(subBots []interface{}) item.Item {
	result := item.Item{
		"@context":             ciContext,
		"@type":                "QSentCredReviewer",
		"name":                 "ESI Query Sentence Credibility Reviewer",
		"description":          "Estimates the credibility of a sentence based on its polar similarity with a sentence in the Co-inform database for which a credibility can be estimated",
		"additionalType":       []string{"SoftwareApplication", "Bot"},
		"author":               bot.ESILabOrganization(),
		"softwareVersion":      qSentReviewerVersion,
		"dateCreated":          qSentReviewerDateCreated,
		"url":                  fmt.Sprintf("%s/bot/QSentenceCredReviewer/%s", ciContext, qSentReviewerVersion),
		"applicationSuite":     "Co-inform",
		"isBasedOn":            subBots,
		"launchConfiguration":  item.Item{},
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

// AggregateQSentSubReviews combines a polar similarity review between a
// query sentence and a DB sentence with the DB sentence's own credibility
// review, projecting the DB sentence's credibility onto the query sentence
// scaled by how (positively or negatively) similar the two are.
func AggregateQSentSubReviews(polarSimReview, dbSentCredReview item.Item, confThreshold float64) (item.Item, error) {
	dbRating, _ := dbSentCredReview["reviewRating"].(item.Item)
	dbCredVal, _ := dbRating["ratingValue"].(float64)
	if dbCredVal < -1.0 || dbCredVal > 1.0 {
		return nil, fmt.Errorf("credibility: AggregateQSentSubReviews: dbSent ratingValue %v out of [-1,1]", dbCredVal)
	}
	dbSentReviewed, _ := dbSentCredReview["itemReviewed"].(item.Item)
	dbSentText, _ := dbSentReviewed["text"].(string)

	simRating, _ := polarSimReview["reviewRating"].(item.Item)
	aggSim, _ := simRating["ratingValue"].(float64)

	itemReviewed, _ := polarSimReview["itemReviewed"].(item.Item)
	sentA, _ := itemReviewed["sentA"].(item.Item)
	sentB, _ := itemReviewed["sentB"].(item.Item)
	qSent, _ := sentA["text"].(string)
	dbSentText2, _ := sentB["text"].(string)
	if dbSentText != dbSentText2 {
		return nil, fmt.Errorf("credibility: AggregateQSentSubReviews: dbSent mismatch %q != %q", dbSentText, dbSentText2)
	}

	dbConfidence, _ := dbRating["confidence"].(float64)
	aggCredConf := dbConfidence * math.Abs(aggSim)
	if aggCredConf < 0.0 || aggCredConf > 1.0 {
		return nil, fmt.Errorf("credibility: AggregateQSentSubReviews: confidence %v out of [0,1]", aggCredConf)
	}
	simPolarity := 1.0
	if aggSim < 0 {
		simPolarity = -1.0
	}

	isBasedOn := []interface{}{polarSimReview, dbSentCredReview}
	subRatings := []item.Item{simRating, dbRating}

	dbLabel, err := RatingLabel(dbCredVal, dbConfidence, confThreshold)
	if err != nil {
		return nil, err
	}
	dbExplanation, _ := dbRating["ratingExplanation"].(string)
	headline, _ := polarSimReview["headline"].(string)
	explanation := fmt.Sprintf("*%s*:\n\n * `%s`\nthat seems *%s* %s", headline, dbSentText, dbLabel, dbExplanation)

	revRating := item.Item{
		"@context":       ciContext,
		"@type":          "AggregateRating",
		"additionalType": []string{"Rating"},
		"reviewAspect":   "credibility",
		"reviewCount":    rating.TotalReviewCount(subRatings) + len(isBasedOn),
		"ratingCount":    rating.TotalRatingCount(subRatings),
		"ratingValue":    simPolarity * dbCredVal,
		"confidence":     aggCredConf,
		"ratingExplanation": explanation,
	}

	qSentItem, err := item.AsSentence(qSent, nil)
	if err != nil {
		return nil, err
	}

	revLabel, err := RatingLabel(simPolarity*dbCredVal, aggCredConf, confThreshold)
	if err != nil {
		return nil, err
	}

	return item.Item{
		"@context":       ciContext,
		"@type":          "QSentCredReview",
		"additionalType": []string{"CredibilityReview", "Review"},
		"itemReviewed":   qSentItem,
		"text":           fmt.Sprintf("Sentence `%s` seems *%s* as it %s", qSent, revLabel, explanation),
		"dateCreated":    isodate.NowUTCTimestamp(),
		"author":         QSentCredReviewerBotInfo(nil),
		"reviewAspect":   "credibility",
		"reviewRating":   revRating,
		"isBasedOn":      isBasedOn,
	}, nil
}
