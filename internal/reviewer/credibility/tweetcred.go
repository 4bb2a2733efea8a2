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
	tweetReviewerVersion     = "0.1.0"
	tweetReviewerDateCreated = "2020-04-02T18:00:00Z"
)

// TweetCredReviewerBotInfo describes the bot that reviews a tweet's
// credibility by reviewing the sentences in the tweet and the documents
// it links to.
func TweetCredReviewerBotInfo(subBots []interface{}) item.Item {
	result := item.Item{
		"@context":       ciContext,
		"@type":          "TweetCredReviewer",
		"additionalType": []string{"SoftwareApplication", "Bot"},
		"name":           "ESI Tweet Credibility Reviewer",
		"description":    "Reviews the credibility of a tweet by reviewing the sentences in the tweet and the (textual) documents linked by the tweet",
		"author":         bot.ESILabOrganization(),
		"dateCreated":    tweetReviewerDateCreated,
		"softwareVersion": tweetReviewerVersion,
		"isBasedOn":       subBots,
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

// MarkdownRefForTweet builds a short markdown reference to the tweet being
// reviewed, used in the explanation text of AggregateTweetSubReviews.
func MarkdownRefForTweet(tweet item.Item) string {
	url, ok := tweet["url"].(string)
	if !ok || url == "" {
		url = "(tweet url missing)"
	}
	return fmt.Sprintf("[the tweet](%s)", url)
}

// AggregateTweetSubReviews combines the credibility reviews of a tweet's
// sentences and the documents it links to into a single TweetCredReview,
// taking the least credible sub-review above the confidence threshold as
// representative of the whole tweet.
func AggregateTweetSubReviews(subReviews []item.Item, tweet item.Item, author item.Item, confThreshold float64) (item.Item, error) {
	tweetRef := MarkdownRefForTweet(tweet)
	isBasedOn := make([]interface{}, len(subReviews))
	for i, sr := range subReviews {
		isBasedOn[i] = sr
	}
	partial := item.Item{
		"@context":     ciContext,
		"@type":        "TweetCredReview",
		"itemReviewed": tweet,
		"isBasedOn":    isBasedOn,
		"dateCreated":  isodate.NowUTCTimestamp(),
		"author":       author,
	}

	var subRatings []item.Item
	for _, sr := range subReviews {
		if rr, ok := sr["reviewRating"].(item.Item); ok {
			subRatings = append(subRatings, rr)
		}
	}

	confSubRevs := rating.FilterReviewsByMinConfidence(subReviews, confThreshold)
	ignoSubRevs := reviewsBelowConfidence(subReviews, confThreshold)

	if len(confSubRevs) == 0 {
		var msg string
		var revRating item.Item
		if len(subReviews) == 0 {
			msg = "we could not extract (or assess credibility of) its sentences or linked documents"
			revRating = item.Item{
				"@type":             "Rating",
				"ratingValue":       0.0,
				"confidence":        0.0,
				"reviewAspect":      "credibility",
				"ratingExplanation": msg,
			}
		} else {
			msg = fmt.Sprintf("we could not assess the credibility of its %d sentences or linked documents.", len(subReviews))
			if len(ignoSubRevs) > 0 {
				text, _ := ignoSubRevs[0]["text"].(string)
				msg += fmt.Sprintf("\nFor example:\n * %s", text)
			}
			revRating = item.Item{
				"@type":             "AggregateRating",
				"ratingValue":       0.0,
				"confidence":        0.0,
				"reviewAspect":      "credibility",
				"ratingExplanation": msg,
				"ratingCount":       rating.TotalRatingCount(subRatings),
				"reviewCount":       rating.TotalReviewCount(subRatings) + len(subReviews),
			}
		}
		label, err := RatingLabel(0.0, 0.0, confThreshold)
		if err != nil {
			return nil, err
		}
		partial["text"] = fmt.Sprintf("%s seems *%s* as %s", tweetRef, label, msg)
		partial["reviewRating"] = revRating
		return partial, nil
	}

	subRevsByVal := make([]item.Item, len(confSubRevs))
	copy(subRevsByVal, confSubRevs)
	sort.SliceStable(subRevsByVal, func(a, b int) bool {
		ra, _ := subRevsByVal[a]["reviewRating"].(item.Item)
		rb, _ := subRevsByVal[b]["reviewRating"].(item.Item)
		return floatOrZero(ra["ratingValue"]) < floatOrZero(rb["ratingValue"])
	})
	leastCredRev := subRevsByVal[0]
	leastCredText, _ := leastCredRev["text"].(string)
	if leastCredText == "" {
		leastCredText = "(missing explanation for part)"
	}
	msg := fmt.Sprintf("based on its least credible part:\n%s", leastCredText)

	leastCredRating, _ := leastCredRev["reviewRating"].(item.Item)
	revRating := item.Item{
		"@type":             "AggregateRating",
		"reviewAspect":      "credibility",
		"ratingValue":       floatOrZero(leastCredRating["ratingValue"]),
		"confidence":        floatOrZero(leastCredRating["confidence"]),
		"ratingExplanation": msg,
		"ratingCount":       rating.TotalRatingCount(subRatings),
		"reviewCount":       rating.TotalReviewCount(subRatings) + len(subReviews),
	}
	label, err := RatingLabel(floatOrZero(revRating["ratingValue"]), floatOrZero(revRating["confidence"]), confThreshold)
	if err != nil {
		return nil, err
	}

	combined := make([]interface{}, 0, len(subRevsByVal)+len(ignoSubRevs))
	for _, r := range subRevsByVal {
		combined = append(combined, r)
	}
	for _, r := range ignoSubRevs {
		combined = append(combined, r)
	}
	partial["isBasedOn"] = combined
	partial["text"] = fmt.Sprintf("%s seems *%s* %s", tweetRef, label, msg)
	partial["reviewRating"] = revRating
	return partial, nil
}
