package credibility

import (
	"fmt"
	"sort"

	"github.com/coinform/credserve/internal/bot"
	"github.com/coinform/credserve/internal/identity"
	"github.com/coinform/credserve/internal/isodate"
	"github.com/coinform/credserve/internal/item"
	"github.com/coinform/credserve/internal/rating"
)

const (
	aggQSentReviewerVersion     = "0.1.1"
	aggQSentReviewerDateCreated = "2020-03-19T15:09:00Z"
)

// AggQSentCredReviewerBotInfo describes the top-level bot that reviews a
// query sentence's credibility by comparing it to semantically similar
// sentences already in the database.
func AggQSentCredReviewerBotInfo(subBots []interface{}, claimSearchURL string) item.Item {
	result := item.Item{
		"@context":             ciContext,
		"@type":                "AggQSentCredReviewer",
		"additionalType":       []string{"Bot", "SoftwareApplication"},
		"name":                 "ESI Aggregate Query Sentence Credibility Reviewer",
		"description":          "Reviews the credibility of a query sentence by comparing it to semantically similar sentences in the Co-inform DB and the credibility of those.",
		"author":               bot.ESILabOrganization(),
		"dateCreated":          aggQSentReviewerDateCreated,
		"softwareVersion":      aggQSentReviewerVersion,
		"isBasedOn":            subBots,
		"launchConfiguration": item.Item{
			"acred_pred_claim_search_url": claimSearchURL,
		},
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

func baseAggQSentCredReview(author item.Item) item.Item {
	return item.Item{
		"@context":       ciContext,
		"@type":          "AggQSentCredReview",
		"additionalType": []string{"CredibilityReview", "Review"},
		"dateCreated":    isodate.NowUTCTimestamp(),
		"author":         author,
	}
}

// DefaultRating is the zero-confidence rating used when a query sentence
// has no close matches in the database at all.
func DefaultRating() item.Item {
	return item.Item{
		"@type":             "Rating",
		"reviewAspect":       "credibility",
		"ratingValue":        0.0,
		"confidence":         0.0,
		"ratingExplanation": "has no (close) matches in the Co-inform database, so we cannot assess its credibility.",
	}
}

// NoVerifiableRating is the zero-confidence rating used for sentences the
// check-worthiness reviewer judged not worth fact-checking at all.
func NoVerifiableRating() item.Item {
	return item.Item{
		"@type":             "Rating",
		"reviewAspect":       "credibility",
		"ratingValue":        0.0,
		"confidence":         0.0,
		"ratingExplanation": "doesn't seem to be a factual statement, or doesn't seem worth checking.",
	}
}

// RestoreOrder re-sorts reviews to match the order of the original input
// sentences, keyed by itemReviewed.text, after factual and non-factual
// sentences were reviewed down separate paths and need re-interleaving.
func RestoreOrder(items []item.Item, revs []item.Item) ([]item.Item, error) {
	if len(items) != len(revs) {
		return nil, fmt.Errorf("credibility: RestoreOrder: len(items)=%d != len(revs)=%d", len(items), len(revs))
	}
	text2i := make(map[string]int, len(items))
	for i, it := range items {
		text, _ := it["text"].(string)
		text2i[text] = i
	}
	ordered := make([]item.Item, len(revs))
	copy(ordered, revs)
	sort.SliceStable(ordered, func(a, b int) bool {
		ra, _ := ordered[a]["itemReviewed"].(item.Item)
		rb, _ := ordered[b]["itemReviewed"].(item.Item)
		ta, _ := ra["text"].(string)
		tb, _ := rb["text"].(string)
		return text2i[ta] < text2i[tb]
	})
	return ordered, nil
}

// AsNonVerifiableReview wraps a sentence the worthiness reviewer flagged as
// unworthy into an AggQSentCredReview carrying the fixed "not verifiable"
// rating, rather than running it through the similarity-based pipeline.
func AsNonVerifiableReview(nfsItem item.Item, worthReview item.Item, author item.Item) item.Item {
	rat := NoVerifiableRating()
	text, _ := nfsItem["text"].(string)
	result := baseAggQSentCredReview(author)
	result["itemReviewed"] = nfsItem
	result["text"] = fmt.Sprintf("Sentence `%s` seems *not verifiable* as it %s", text, rat["ratingExplanation"])
	result["reviewRating"] = rat
	if worthReview != nil {
		result["isBasedOn"] = []interface{}{worthReview}
	} else {
		result["isBasedOn"] = []interface{}{}
	}
	return result
}

// ClaimSimResultAsAggQSentCredReview converts a batched claim-similarity
// result for a single query sentence (plus its optional check-worthiness
// review) into an AggQSentCredReview, selecting the most confident
// per-match QSentCredReview as the aggregate's rating.
func ClaimSimResultAsAggQSentCredReview(qSent string, qSentCredReviews []item.Item, worthReview item.Item, author item.Item, confThreshold float64) (item.Item, error) {
	itemReviewed, err := item.AsSentence(qSent, nil)
	if err != nil {
		return nil, err
	}

	if len(qSentCredReviews) == 0 {
		rat := DefaultRating()
		result := baseAggQSentCredReview(author)
		result["itemReviewed"] = itemReviewed
		text, _ := itemReviewed["text"].(string)
		result["text"] = fmt.Sprintf("Sentence `%s` seems *not verifiable* as it %s", text, rat["ratingExplanation"])
		result["reviewRating"] = rat
		if worthReview != nil {
			result["isBasedOn"] = []interface{}{worthReview}
		} else {
			result["isBasedOn"] = []interface{}{}
		}
		return result, nil
	}

	var subRatings []item.Item
	for _, qscr := range qSentCredReviews {
		if rr, ok := qscr["reviewRating"].(item.Item); ok {
			subRatings = append(subRatings, rr)
		}
	}
	if worthReview != nil {
		if rr, ok := worthReview["reviewRating"].(item.Item); ok {
			subRatings = append(subRatings, rr)
		}
	}

	topReview := rating.SelectMostConfidentReview(qSentCredReviews)
	topRating, _ := topReview["reviewRating"].(item.Item)
	ratingValue, _ := topRating["ratingValue"].(float64)
	confidence, _ := topRating["confidence"].(float64)
	explanation, _ := topRating["ratingExplanation"].(string)

	extraReviews := len(qSentCredReviews)
	if worthReview != nil {
		extraReviews++
	}
	reviewRating := item.Item{
		"@type":             "AggregateRating",
		"reviewAspect":      "credibility",
		"ratingValue":       ratingValue,
		"confidence":        confidence,
		"ratingExplanation": explanation,
		"ratingCount":       rating.TotalRatingCount(subRatings),
		"reviewCount":       rating.TotalReviewCount(subRatings) + extraReviews,
	}
	selected := item.Item{}
	for _, k := range []string{"@type", "reviewAspect", "ratingValue", "confidence", "ratingExplanation"} {
		if v, ok := reviewRating[k]; ok {
			selected[k] = v
		}
	}
	reviewRating["identifier"] = identity.HashDict(selected)

	label, err := RatingLabel(ratingValue, confidence, confThreshold)
	if err != nil {
		return nil, err
	}

	text, _ := itemReviewed["text"].(string)
	if text == "" {
		text = "??"
	}

	isBasedOn := make([]interface{}, 0, len(qSentCredReviews)+1)
	for _, r := range qSentCredReviews {
		isBasedOn = append(isBasedOn, r)
	}
	if worthReview != nil {
		isBasedOn = append(isBasedOn, worthReview)
	}

	result := baseAggQSentCredReview(author)
	result["itemReviewed"] = itemReviewed
	result["text"] = fmt.Sprintf("Sentence `%s` seems *%s* as it %s", text, label, explanation)
	result["reviewRating"] = reviewRating
	result["isBasedOn"] = isBasedOn
	return result, nil
}
