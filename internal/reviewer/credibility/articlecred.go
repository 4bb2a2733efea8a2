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
	articleReviewerVersion     = "0.1.1"
	articleReviewerDateCreated = "2020-04-01T17:02:00Z"
)

var defaultSocmediaURLs = []string{
	"http://twitter.com",
	"http://facebook.com",
	"http://instagram.com",
}

// ArticleCredReviewerBotInfo describes the top-level bot that reviews an
// article's credibility by combining the credibility of the site it was
// published on with the credibility of the claims it makes.
func ArticleCredReviewerBotInfo(subBots []interface{}, confThreshold float64, maxClaimsInDoc int) item.Item {
	result := item.Item{
		"@context":       ciContext,
		"@type":          "ArticleCredReviewer",
		"additionalType": []string{"Bot", "SoftwareApplication"},
		"name":           "ESI Article Credibility Reviewer",
		"description":    "Reviews the credibility of an article by (i) detecting relevant claims in it (ii) getting credibility reviews for the claims and (iii) getting a credibility review for the site(s) that published the article.",
		"author":         bot.ESILabOrganization(),
		"dateCreated":    articleReviewerDateCreated,
		"softwareVersion": articleReviewerVersion,
		"isBasedOn":       subBots,
		"launchConfiguration": item.Item{},
		"taskConfiguration": item.Item{
			"cred_conf_threshold": confThreshold,
			"max_claims_in_doc":   maxClaimsInDoc,
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

func baseArticleCredReview(author item.Item) item.Item {
	return item.Item{
		"@context":       ciContext,
		"@type":          "ArticleCredReview",
		"additionalType": []string{"CredibilityReview", "Review"},
		"dateCreated":    isodate.NowUTCTimestamp(),
		"author":         author,
	}
}

// MarkdownRefForArticle builds a short markdown reference to an article,
// used in the explanation text of the reviews built in this file.
func MarkdownRefForArticle(article item.Item) string {
	typ, _ := article["@type"].(string)
	if typ == "" {
		typ = "Article"
	}
	title, ok := article["headline"].(string)
	if !ok || title == "" {
		title, ok = article["title"].(string)
		if !ok || title == "" {
			title = "Missing title"
		}
	}
	url, _ := article["url"].(string)
	return fmt.Sprintf("%s \"[%s](%s)\"", typ, title, url)
}

// IsSocialMediaPlatform reports whether webSite matches one of the known
// social media domains (by netloc, falling back to URL prefix matching).
func IsSocialMediaPlatform(webSite item.Item, socmediaURLs []string) bool {
	if webSite == nil {
		return false
	}
	if len(socmediaURLs) == 0 {
		socmediaURLs = defaultSocmediaURLs
	}
	url, _ := webSite["url"].(string)
	domain, _ := webSite["name"].(string)

	var netlocs []string
	for _, u := range socmediaURLs {
		if nl := item.DomainFromURL(u); nl != "" {
			netlocs = append(netlocs, nl)
		}
	}

	if urlNetloc := item.DomainFromURL(url); urlNetloc != "" {
		for _, nl := range netlocs {
			if urlNetloc == nl {
				return true
			}
		}
		return false
	}
	if url != "" {
		for _, u := range socmediaURLs {
			if len(url) >= len(u) && url[:len(u)] == u {
				return true
			}
		}
		return false
	}
	if domain == "" {
		return false
	}
	for _, nl := range netlocs {
		if domain == nl {
			return true
		}
	}
	return false
}

// ReduceConfidenceForSocialMedia sets a WebSiteCredReview's confidence to 0.2 when
// the reviewed site is a social media platform, since content there can be
// published by anyone regardless of the platform's own reputation.
func ReduceConfidenceForSocialMedia(webSiteCredReview item.Item, socmediaURLs []string) item.Item {
	reviewed, _ := webSiteCredReview["itemReviewed"].(item.Item)
	if !IsSocialMediaPlatform(reviewed, socmediaURLs) {
		return webSiteCredReview
	}
	rr, ok := webSiteCredReview["reviewRating"].(item.Item)
	if !ok {
		return webSiteCredReview
	}
	rr["confidence"] = 0.2
	webSiteCredReview["reviewRating"] = rr
	return webSiteCredReview
}

// AggregateSubReviews combines an article's WebSiteCredReview (the site it
// was published on) and its content credibility review (the aggregated
// credibility of the claims found in it) into a single AggregateRating,
// preferring content credibility when it is confident enough, falling back
// to the site's reputation otherwise.
func AggregateSubReviews(webSiteCredReview, contentCredReview item.Item, article item.Item, confThreshold, websiteConfFactor, websiteCredThresholdPenalise float64) (item.Item, error) {
	contentRating, _ := contentCredReview["reviewRating"].(item.Item)
	domcredRating, _ := webSiteCredReview["reviewRating"].(item.Item)
	contentConf := floatOrZero(contentRating["confidence"])
	domcredConf := floatOrZero(domcredRating["confidence"])

	var credVal, credConf float64
	var explanation string

	switch {
	case contentConf >= confThreshold:
		credVal = floatOrZero(contentRating["ratingValue"])
		credConf = contentConf
		explanation, _ = contentRating["ratingExplanation"].(string)
		if domcredConf >= confThreshold {
			siteReviewed, _ := webSiteCredReview["itemReviewed"].(item.Item)
			siteName := nameOrURL(siteReviewed)
			siteText, _ := webSiteCredReview["text"].(string)
			if siteText == "" {
				siteText = "(Explanation for site credibility missing)"
			}
			explanation += fmt.Sprintf("\nTake into account that it appeared in website `%s`. %s", siteName, siteText)
		}
	case domcredConf >= confThreshold:
		credVal = floatOrZero(domcredRating["ratingValue"])
		if websiteConfFactor == 0 {
			websiteConfFactor = 0.9
		}
		if websiteCredThresholdPenalise == 0 {
			websiteCredThresholdPenalise = 0.2
		}
		if credVal >= websiteCredThresholdPenalise {
			credConf = domcredConf * websiteConfFactor
		} else {
			credConf = domcredConf
		}
		siteReviewed, _ := webSiteCredReview["itemReviewed"].(item.Item)
		siteName := nameOrURL(siteReviewed)
		siteText, _ := webSiteCredReview["text"].(string)
		if siteText == "" {
			siteText = "(Explanation for site credibility missing)"
		}
		explanation = fmt.Sprintf("as it appeared in website `%s`. %s", siteName, siteText)
	default:
		credVal = 0.0
		credConf = 0.0
		explanation = "we have insufficient credibility signals from text and website analyses."
		contentExpl, _ := contentCredReview["text"].(string)
		websiteExpl, _ := webSiteCredReview["text"].(string)
		if contentExpl != "" || websiteExpl != "" {
			explanation += "In case it is useful, we include the **weak** credibility signals we found:"
			if contentExpl != "" {
				explanation += fmt.Sprintf("\n * %s", contentExpl)
			}
			if websiteExpl != "" {
				explanation += fmt.Sprintf("\n * %s", websiteExpl)
			}
		}
	}

	subRatings := []item.Item{domcredRating, contentRating}
	return item.Item{
		"@type":             "AggregateRating",
		"reviewAspect":      "credibility",
		"ratingValue":       credVal,
		"confidence":        credConf,
		"ratingExplanation": explanation,
		"ratingCount":       rating.TotalRatingCount(subRatings),
		"reviewCount":       rating.TotalReviewCount(subRatings) + 2,
	}, nil
}

// ReviewArticle builds the top-level ArticleCredReview for an article from
// its already-computed site and content credibility sub-reviews.
func ReviewArticle(article, webSiteCredReview, contentCredReview item.Item, author item.Item, confThreshold, websiteConfFactor, websiteCredThresholdPenalise float64) (item.Item, error) {
	aggRating, err := AggregateSubReviews(webSiteCredReview, contentCredReview, article, confThreshold, websiteConfFactor, websiteCredThresholdPenalise)
	if err != nil {
		return nil, err
	}
	ratingValue := floatOrZero(aggRating["ratingValue"])
	confidence := floatOrZero(aggRating["confidence"])
	label, err := RatingLabel(ratingValue, confidence, confThreshold)
	if err != nil {
		return nil, err
	}
	explanation, _ := aggRating["ratingExplanation"].(string)
	if explanation == "" {
		explanation = "(missing explanation)"
	}

	result := baseArticleCredReview(author)
	result["itemReviewed"] = article
	result["text"] = fmt.Sprintf("%s seems *%s* %s", MarkdownRefForArticle(article), label, explanation)
	result["reviewRating"] = aggRating
	result["isBasedOn"] = []interface{}{webSiteCredReview, contentCredReview}
	return result, nil
}

// AggregateSentReviews combines the per-sentence credibility reviews found
// in an article (in practice a list of AggQSentCredReviews) into a single
// ArticleCredReview, taking the least credible sentence above the
// confidence threshold as representative of the whole article.
func AggregateSentReviews(sentReviews []item.Item, article item.Item, author item.Item, confThreshold float64) (item.Item, error) {
	doc := MarkdownRefForArticle(article)
	partial := baseArticleCredReview(author)
	partial["itemReviewed"] = article
	isBasedOn := make([]interface{}, len(sentReviews))
	for i, sr := range sentReviews {
		isBasedOn[i] = sr
	}
	partial["isBasedOn"] = isBasedOn

	if len(sentReviews) == 0 {
		explanation := "we could not find any relevant claims in it."
		partial["text"] = fmt.Sprintf("%s is *not verifiable* as %s", doc, explanation)
		partial["reviewRating"] = item.Item{
			"@type":             "Rating",
			"reviewAspect":      "credibility",
			"ratingValue":       0.0,
			"confidence":        0.0,
			"ratingExplanation": explanation,
		}
		return partial, nil
	}

	var subRatings []item.Item
	for _, sr := range sentReviews {
		if rr, ok := sr["reviewRating"].(item.Item); ok {
			subRatings = append(subRatings, rr)
		}
	}

	confSubRevs := rating.FilterReviewsByMinConfidence(sentReviews, confThreshold)
	ignoSubRevs := reviewsBelowConfidence(sentReviews, confThreshold)

	if len(confSubRevs) == 0 {
		msg := fmt.Sprintf("we could not assess credibility of %d of its sentences with sufficient confidence.", len(sentReviews))
		if len(ignoSubRevs) > 0 {
			text, _ := ignoSubRevs[0]["text"].(string)
			msg += fmt.Sprintf(" An example: %s ", text)
		}
		partial["text"] = fmt.Sprintf("%s is *not verifiable* as %s.", doc, msg)
		partial["reviewRating"] = item.Item{
			"@type":             "AggregateRating",
			"reviewAspect":      "credibility",
			"ratingValue":       0.0,
			"confidence":        0.0,
			"ratingExplanation": msg,
			"ratingCount":       rating.TotalRatingCount(subRatings),
			"reviewCount":       rating.TotalReviewCount(subRatings) + len(sentReviews),
		}
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
	leastCredRating, _ := leastCredRev["reviewRating"].(item.Item)
	leastCredReviewed, _ := leastCredRev["itemReviewed"].(item.Item)
	leastCredText, _ := leastCredReviewed["text"].(string)
	if leastCredText == "" {
		leastCredText = "(missing sentence)"
	}
	leastCredExpl, _ := leastCredRating["ratingExplanation"].(string)
	if leastCredExpl == "" {
		leastCredExpl = "(missing explanation)"
	}
	msg := fmt.Sprintf("like its least credible Sentence `%s` which %s", leastCredText, leastCredExpl)

	revRating := item.Item{
		"@type":             "AggregateRating",
		"reviewAspect":      "credibility",
		"ratingValue":       floatOrZero(leastCredRating["ratingValue"]),
		"confidence":        floatOrZero(leastCredRating["confidence"]),
		"ratingExplanation": msg,
		"ratingCount":       rating.TotalRatingCount(subRatings),
		"reviewCount":       rating.TotalReviewCount(subRatings) + len(sentReviews),
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
	partial["text"] = fmt.Sprintf("%s is *%s* %s", doc, label, msg)
	partial["reviewRating"] = revRating
	return partial, nil
}

func reviewsBelowConfidence(reviews []item.Item, threshold float64) []item.Item {
	var below []item.Item
	for _, r := range reviews {
		rr, _ := r["reviewRating"].(item.Item)
		if floatOrZero(rr["confidence"]) < threshold {
			below = append(below, r)
		}
	}
	return below
}

func floatOrZero(v interface{}) float64 {
	f, _ := v.(float64)
	return f
}

func nameOrURL(site item.Item) string {
	if site == nil {
		return "(missing)"
	}
	if name, ok := site["name"].(string); ok && name != "" {
		return name
	}
	if url, ok := site["url"].(string); ok && url != "" {
		return url
	}
	return "(missing)"
}
