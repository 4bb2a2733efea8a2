package credibility

import (
	"fmt"

	"github.com/coinform/credserve/internal/bot"
	"github.com/coinform/credserve/internal/identity"
	"github.com/coinform/credserve/internal/isodate"
	"github.com/coinform/credserve/internal/item"
	"github.com/coinform/credserve/internal/rating"
)

const (
	ciContext                 = "http://coinform.eu"
	dbSentReviewerVersion     = "0.1.0"
	dbSentReviewerDateCreated = "2020-03-20T20:03:00Z"
)

// DBSentCredReviewerBotInfo describes the bot that aggregates a normalised
// ClaimReview and a WebSite credibility review into a single credibility
// assessment for a sentence already present in the pipeline's own database.
func DBSentCredReviewerBotInfo(subBots []interface{}, factcheckerPenaltyFactor float64, factcheckerURLs []string) item.Item {
	launchConfig := item.Item{
		"factchecker_website_to_qclaim_confidence_penalty_factor": factcheckerPenaltyFactor,
		"acred_factchecker_urls":                                  toInterfaceSlice(factcheckerURLs),
	}
	result := item.Item{
		"@context":             ciContext,
		"@type":                "DBSentCredReviewer",
		"name":                 "ESI DB Sentence Credibility Reviewer",
		"description":          "Estimates the credibility of a sentence in the Co-inform DB based on known ClaimReviews or websites where the sentence has been published.",
		"additionalType":       []string{"SoftwareApplication", "Bot"},
		"author":               bot.ESILabOrganization(),
		"dateCreated":          dbSentReviewerDateCreated,
		"softwareVersion":      dbSentReviewerVersion,
		"url":                  fmt.Sprintf("%s/bot/DBSentCredReviewer/%s", ciContext, dbSentReviewerVersion),
		"applicationSuite":     "Co-inform",
		"isBasedOn":            subBots,
		"launchConfiguration":  launchConfig,
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

func toInterfaceSlice(ss []string) []interface{} {
	out := make([]interface{}, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

// AggregateDBSentSubReviews combines a DB sentence, an optional normalised
// ClaimReview, and a WebSite credibility review into a DBSentCredReview.
// claimReview and webSiteCred may be nil when not available. factcheckerURLs
// names the fact-checking organizations whose own domain credibility gets
// penalised before it's compared against a ClaimReview's rating.
func AggregateDBSentSubReviews(dbSentence, normalisedClaimReview, webSiteCred item.Item, confThreshold, factcheckerPenaltyFactor float64, factcheckerURLs []string, subBots []interface{}) (item.Item, error) {
	if normalisedClaimReview == nil {
		normalisedClaimReview = item.Item{}
	}

	nWebSiteRating, err := websiteCredRevAsQClaimCredRating(webSiteCred, factcheckerPenaltyFactor, factcheckerURLs)
	if err != nil {
		return nil, err
	}

	var subRatings []item.Item
	subRatings = append(subRatings, nWebSiteRating)
	if cr, ok := normalisedClaimReview["reviewRating"].(item.Item); ok {
		subRatings = append(subRatings, cr)
	}

	selRating := rating.SelectMostConfidentRating(subRatings)
	if selRating == nil {
		selRating = item.Item{}
	}

	var isBasedOn []interface{}
	if webSiteCred != nil {
		isBasedOn = append(isBasedOn, webSiteCred)
	}
	if len(normalisedClaimReview) > 0 {
		isBasedOn = append(isBasedOn, normalisedClaimReview)
	}

	reviewCount := rating.TotalReviewCount(subRatings) + len(isBasedOn)
	ratingCount := rating.TotalRatingCount(subRatings)

	appearances, _ := dbSentence["appearance"].([]interface{})
	var linkToDoc string
	if len(appearances) > 0 {
		if doc, ok := appearances[0].(item.Item); ok {
			linkToDoc = mdLinkToDoc(doc)
		}
	}

	ratingValue, _ := selRating["ratingValue"].(float64)
	confidence, _ := selRating["confidence"].(float64)
	explanation, _ := selRating["ratingExplanation"].(string)

	revRating := item.Item{
		"@type":             "AggregateRating",
		"reviewAspect":      "credibility",
		"reviewCount":       reviewCount,
		"ratingCount":       ratingCount,
		"ratingValue":       ratingValue,
		"confidence":        confidence,
		"ratingExplanation": explanation,
	}

	label, err := RatingLabel(ratingValue, confidence, confThreshold)
	if err != nil {
		return nil, err
	}

	text, _ := dbSentence["text"].(string)
	if text == "" {
		text = "??"
	}
	docClause := ""
	if linkToDoc != "" {
		docClause = fmt.Sprintf(", in %s, ", linkToDoc)
	}

	return item.Item{
		"@context":       ciContext,
		"@type":          "DBSentCredReview",
		"additionalType": []string{"CredibilityReview", "Review"},
		"itemReviewed":   dbSentence,
		"text":           fmt.Sprintf("Sentence `%s` %sseems *%s* %s", text, docClause, label, explanation),
		"reviewRating":   revRating,
		"reviewAspect":   "credibility",
		"isBasedOn":      isBasedOn,
		"dateCreated":    isodate.NowUTCTimestamp(),
		"author":         DBSentCredReviewerBotInfo(subBots, factcheckerPenaltyFactor, nil),
	}, nil
}

func mdLinkToDoc(article item.Item) string {
	url, _ := article["url"].(string)
	site, _ := article["domain"].(string)
	switch {
	case url != "" && site != "":
		return fmt.Sprintf("[%s](%s)", site, url)
	case url != "":
		return fmt.Sprintf("[this page](%s)", url)
	default:
		return ""
	}
}

// websiteCredRevAsQClaimCredRating reinterprets a WebSiteCredReview as a
// Rating directly comparable to a normalised ClaimReview's rating, applying
// the fact-checker confidence penalty when the site being reviewed is
// itself a fact-checking organization.
func websiteCredRevAsQClaimCredRating(websiteCredRev item.Item, factcheckerPenaltyFactor float64, factcheckerURLs []string) (item.Item, error) {
	if websiteCredRev == nil {
		return item.Item{
			"@type":        "AggregateRating",
			"reviewAspect": "credibility",
			"reviewCount":  0,
			"ratingCount":  0,
			"ratingValue":  0.0,
			"confidence":   0.0,
		}, nil
	}
	rr, _ := websiteCredRev["reviewRating"].(item.Item)
	reviewCount, _ := rr["reviewCount"].(int)
	ratingCount, _ := rr["ratingCount"].(int)
	ratingValue, _ := rr["ratingValue"].(float64)
	confidence, _ := rr["confidence"].(float64)

	siteName := ""
	if reviewed, ok := websiteCredRev["itemReviewed"].(item.Item); ok {
		siteName, _ = reviewed["name"].(string)
	}
	siteText, _ := websiteCredRev["text"].(string)
	if siteText == "" {
		siteText = "(Explanation for website credibility missing)"
	}

	result := item.Item{
		"@type":        "AggregateRating",
		"reviewAspect": "credibility",
		"reviewCount":  reviewCount,
		"ratingCount":  ratingCount,
		"ratingValue":  ratingValue,
		"dateCreated":  isodate.NowUTCTimestamp(),
	}

	if IsByFactchecker(websiteCredRev, factcheckerURLs) {
		result["confidence"] = confidence * factcheckerPenaltyFactor
		result["ratingExplanation"] = fmt.Sprintf(
			"as it was published in site `%s`. %s However, the site is a factchecker so it publishes sentences with different credibility values.",
			siteName, siteText)
	} else {
		result["confidence"] = confidence
		result["ratingExplanation"] = fmt.Sprintf("as it was published on site `%s`. %s", siteName, siteText)
	}
	return result, nil
}

// IsByFactchecker reports whether a WebSiteCredReview concerns a site
// matching one of factcheckerURLs: by netloc first, falling back to URL
// prefix and then plain domain comparison, the same precedence
// IsSocialMediaPlatform uses for social media domains.
func IsByFactchecker(websiteCredRev item.Item, factcheckerURLs []string) bool {
	if len(factcheckerURLs) == 0 {
		return false
	}
	reviewed, ok := websiteCredRev["itemReviewed"].(item.Item)
	if !ok {
		return false
	}
	return IsSocialMediaPlatform(reviewed, factcheckerURLs)
}
