// Package claimreview normalizes an external ClaimReview (schema.org) into
// a NormalisedClaimReview whose rating sits on this pipeline's common
// [-1, 1] credibility axis, so every other reviewer can treat a
// fact-checker's verdict the same way it treats any other sub-rating.
package claimreview

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/coinform/credserve/internal/bot"
	"github.com/coinform/credserve/internal/identity"
	"github.com/coinform/credserve/internal/isodate"
	"github.com/coinform/credserve/internal/item"
	"github.com/coinform/credserve/internal/rating"
	"github.com/coinform/credserve/internal/reviewer/credibility"
)

const (
	version     = "0.1.2"
	dateCreated = "2020-06-05T13:23:00Z"
	ciContext   = "http://coinform.eu"
)

// Normalise converts an external ClaimReview item into a NormalisedClaimReview.
func Normalise(claimReview item.Item, confThreshold float64) (item.Item, error) {
	if claimReview == nil {
		return nil, nil
	}
	if !item.IsClaimReview(claimReview) {
		return nil, fmt.Errorf("claimreview: Normalise: not a ClaimReview")
	}

	subRatings := normalisedRatings(claimReview)
	mostConfident := rating.SelectMostConfidentRating(subRatings)

	var aggRating item.Item
	if mostConfident == nil {
		aggRating = item.Item{
			"@type":             "AggregateRating",
			"reviewAspect":      "credibility",
			"reviewCount":       1,
			"ratingCount":       len(subRatings),
			"ratingValue":       0.0,
			"confidence":        0.0,
			"ratingExplanation": fmt.Sprintf("Failed to interpret original [review](%s)", urlOf(claimReview, "missing_url")),
		}
	} else {
		aggRating = item.Item{}
		for k, v := range mostConfident {
			aggRating[k] = v
		}
		aggRating["@type"] = "AggregateRating"
		aggRating["reviewCount"] = 1
		aggRating["ratingCount"] = len(subRatings)
	}

	ratingValue, _ := aggRating["ratingValue"].(float64)
	confidence, _ := aggRating["confidence"].(float64)
	label, err := credibility.RatingLabel(ratingValue, confidence, confThreshold)
	if err != nil {
		return nil, err
	}
	explanation, _ := aggRating["ratingExplanation"].(string)
	if explanation == "" {
		explanation = "(missing explanation)"
	}

	author := BotInfo()
	isBasedOn := make([]interface{}, 0, len(subRatings)+1)
	isBasedOn = append(isBasedOn, claimReview)
	for _, r := range subRatings {
		isBasedOn = append(isBasedOn, r)
	}

	claimReviewed, _ := claimReview["claimReviewed"]

	return item.Item{
		"@context":       ciContext,
		"@type":          "NormalisedClaimReview",
		"additionalType": []string{"ClaimReview", "Review"},
		"author":         author,
		"text":           fmt.Sprintf("Claim `%v` is *%s* %s", claimReviewed, label, explanation),
		"claimReviewed":  claimReviewed,
		"dateCreated":    isodate.NowUTCTimestamp(),
		"isBasedOn":      isBasedOn,
		"reviewAspect":   "credibility",
		"reviewRating":   aggRating,
	}, nil
}

// BotInfo describes the ClaimReview normalizer bot itself, used both as
// this package's own review author and as a sub-bot descriptor for
// reviewers that aggregate a normalised ClaimReview into a larger review.
func BotInfo() item.Item {
	result := item.Item{
		"@context":             ciContext,
		"@type":                "ClaimReviewNormalizer",
		"name":                 "ESI ClaimReview Credibility Normalizer",
		"description":          "Analyses the alternateName and numerical rating value for a ClaimReview and tries to convert that into a normalised credibility rating",
		"additionalType":       []string{"SoftwareApplication", "Bot"},
		"author":               bot.ESILabOrganization(),
		"dateCreated":          dateCreated,
		"softwareVersion":      version,
		"url":                  fmt.Sprintf("%s/bot/ClaimReviewNormalizer/%s", ciContext, version),
		"applicationSuite":     "Co-inform",
		"isBasedOn":           []interface{}{},
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

func normalisedRatings(claimReview item.Item) []item.Item {
	ratingField, _ := claimReview["reviewRating"].(item.Item)
	if ratingField == nil {
		ratingField = item.Item{}
	}

	var results []item.Item
	if fromAltName := reviewAltNameAsAccuracy(ratingField, claimReview); fromAltName != nil {
		results = append(results, fromAltName)
	}
	if fromVal := normalisedRatingValue(ratingField, claimReview); fromVal != nil {
		results = append(results, fromVal)
	}
	return results
}

func normalisedRatingValue(r item.Item, claimReview item.Item) item.Item {
	ratingVal, hasVal := toFloat(r["ratingValue"])
	if !hasVal {
		return item.Item{
			"@type":        "Rating",
			"reviewAspect": "credibility",
			"ratingValue":  0.0,
			"confidence":   0.0,
			"ratingExplanation": fmt.Sprintf(
				"Failed to normalise numeric rating in original [ClaimReview](%s) by [%s](%s)",
				urlOf(claimReview, "missingUrl"), authorName(claimReview), authorURL(claimReview)),
		}
	}

	worst, ok := toFloat(r["worstRating"])
	if !ok {
		worst = 1
	}
	best, ok := toFloat(r["bestRating"])
	if !ok {
		best = 5
	}
	if worst >= best || ratingVal < worst || ratingVal > best {
		return item.Item{
			"@type":        "Rating",
			"reviewAspect": "credibility",
			"ratingValue":  0.0,
			"confidence":   0.0,
			"ratingExplanation": fmt.Sprintf(
				"Failed to normalise numeric rating in original [ClaimReview](%s) by [%s](%s)",
				urlOf(claimReview, "missingUrl"), authorName(claimReview), authorURL(claimReview)),
		}
	}

	norm := (ratingVal - worst) / (best - worst)
	cred := (norm * 2.0) - 1.0
	return item.Item{
		"@type":        "Rating",
		"reviewAspect": "credibility",
		"ratingValue":  cred,
		"confidence":   0.85,
		"ratingExplanation": fmt.Sprintf(
			"Based on a [fact-check](%s) by [%s](%s) with normalised numeric ratingValue %v in range [%v-%v]",
			urlOf(claimReview, "missingUrl"), authorName(claimReview), authorURL(claimReview), ratingVal, worst, best),
		"description": "Normalised accuracy from original rating value (and range)",
	}
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func urlOf(claimReview item.Item, def string) string {
	if u, ok := claimReview["url"].(string); ok && u != "" {
		return u
	}
	return def
}

func authorName(claimReview item.Item) string {
	author, _ := claimReview["author"].(item.Item)
	if name, ok := author["name"].(string); ok && name != "" {
		return name
	}
	url, _ := author["url"].(string)
	name := domainFromURL(url)
	name = strings.TrimPrefix(name, "www.")
	name = strings.TrimSuffix(name, ".com")
	if name == "" {
		return "unknown author"
	}
	return name
}

func authorURL(claimReview item.Item) string {
	author, _ := claimReview["author"].(item.Item)
	if u, ok := author["url"].(string); ok && u != "" {
		return u
	}
	return "unknownUrl"
}

// domainFromURL returns rawURL's host via item.DomainFromURL.
func domainFromURL(rawURL string) string {
	return item.DomainFromURL(rawURL)
}

func reviewAltNameAsAccuracy(r item.Item, claimReview item.Item) item.Item {
	altNameRaw, ok := r["alternateName"]
	if !ok || altNameRaw == nil {
		return item.Item{
			"@type":        "Rating",
			"reviewAspect": "credibility",
			"ratingValue":  0.0,
			"confidence":   0.0,
			"ratingExplanation": fmt.Sprintf(
				"Based on [fact-check](%s) by [%s](%s) with no textual rating",
				urlOf(claimReview, "missingUrl"), authorName(claimReview), authorURL(claimReview)),
		}
	}
	altName, ok := altNameRaw.(string)
	if !ok {
		return nil
	}
	altName = strings.ToLower(strings.TrimSpace(altName))
	altName = strings.TrimSuffix(altName, ".")

	value, confidence, matched := classifyVerdict(altName)
	if matched {
		return item.Item{
			"@type":        "Rating",
			"reviewAspect": "credibility",
			"ratingValue":  value,
			"confidence":   confidence,
			"ratingExplanation": fmt.Sprintf(
				"based on [fact-check](%s) by [%s](%s) with textual claim-review rating '%s'",
				urlOf(claimReview, "missingUrl"), authorName(claimReview), authorURL(claimReview), altName),
		}
	}
	return item.Item{
		"@type":        "Rating",
		"reviewAspect": "credibility",
		"ratingValue":  0.0,
		"confidence":   0.0,
		"ratingExplanation": fmt.Sprintf(
			"based on [fact-check](%s) by [%s](%s) with unknown accuracy for textual claim-review rating '%s'",
			urlOf(claimReview, "missingUrl"), authorName(claimReview), authorURL(claimReview), altName),
	}
}

// falseVerdicts, misleadingVerdicts, mixedVerdicts, mostlyTrueVerdicts and
// trueVerdicts are the closed dictionary of exact textual ClaimReview
// verdicts this pipeline knows how to map onto a numeric credibility value.
// Prefix/suffix variants of the same verdicts are matched separately in
// classifyVerdict, mirroring the original phrase-by-phrase dispatch.
var falseVerdicts = map[string]bool{
	"false": true, "inaccurate": true,
	"falso": true, "faux": true, "keliru": true,
	"фейк": true, // fake in Russian
	"not true": true, "fake": true, "fake news": true,
	"incorrect": true, "wrong": true,
	"misleading/false":     true,
	"pants on fire":        true,
	"pants on fire!":       true,
	"four pinocchios":      true,
	"false and misleading": true,
	"false , misleading":   true,
	"false, misleading":    true,
	"misleading , false":   true,
	"lie":                  true,
	"yalan":                true, // turkish for lie
	"forgery":              true,
	"still wrong":          true,
	"claim wrong":          true,
	"not legit (false)":    true,
	"not true (album)":     true,
	"science says not possible": true,
}

var misleadingVerdicts = map[string]bool{
	"misleading": true, "exaggerated": true, "partial error": true, "error": true,
	"mostly false": true, "three pinocchios": true, "mainly false": true,
	"this is misleading": true,
	"sesat":              true, // indonesian?
	"this is exaggerated":       true,
	"contradicts past remarks":  true,
	"most of it is not true":    true,
	"partially false":           true,
	"partly false":              true,
	"distorts the facts":        true,
	"distortion":                true,
	"short on truth":            true,
	"not the official statistic": true,
	"conspiracy theory":          true,
	"misinformation / conspiracy theory": true,
	"spins the facts":                    true,
	"false headline":                     true,
	"unlikely":                           true,
	"science doesn't support claim":      true,
}

var mixedVerdicts = map[string]bool{
	"half true": true, "half-truths": true, "two pinocchios": true,
	"half truth": true,
	"maybe":      true, "not exactly": true, "unproven": true,
	"unverified": true, "the accuracy is mixed": true,
	"mixed": true, "mixture": true, "other": true,
	"this lacks evidence": true, "not proven": true, "needs more context": true,
	"needs context": true, "partial": true, "partially correct": true,
	"no evidence": true, "not the whole story": true, "partly true": true,
	"we may never know": true, "partially true , misleading": true,
	"partially true": true, "true but": true,
	"misses the mark": true, "insufficient evidence": true,
	"this is unproven": true, "unsupported": true, "anecdote": true,
	"in dispute": true, "analysis": true, "lacks solid numbers": true,
}

var mostlyTrueVerdicts = map[string]bool{
	"one pinocchio": true, "mostly true": true, "it could": true,
	"mostly right":       true,
	"most legal experts agree": true, "largely accurate": true,
	"it's complicated": true, "semi-correct": true, "no sign of bias": true,
}

var trueVerdicts = map[string]bool{
	"true": true, "accurate": true, "genuine": true, "correct": true,
	"benar": true, // indonesian for correct
}

// classifyVerdict maps a lowercased, trailing-period-stripped ClaimReview
// alternateName verdict onto a credibility value and confidence. Returns
// matched=false when the verdict isn't recognized at all.
func classifyVerdict(altName string) (value, confidence float64, matched bool) {
	switch {
	case falseVerdicts[altName]:
		return -1.0, 1.0, true
	case strings.HasPrefix(altName, "wrong."):
		return -1.0, 1.0, true
	case strings.HasPrefix(altName, "wrong,"):
		return -1.0, 1.0, true
	case strings.HasPrefix(altName, "wrong -"):
		return -1.0, 1.0, true
	case strings.HasPrefix(altName, "false -"):
		return -1.0, 1.0, true
	case strings.HasPrefix(altName, "no, "):
		return -1.0, 1.0, true
	case strings.HasPrefix(altName, "no! "):
		return -1.0, 1.0, true
	case strings.HasPrefix(altName, "certainly not! "):
		return -1.0, 1.0, true
	case strings.HasSuffix(altName, "rating: false"):
		return -1.0, 1.0, true

	case misleadingVerdicts[altName]:
		return -0.5, 1.0, true
	case strings.HasPrefix(altName, "misleading -"):
		return -0.5, 1.0, true
	case strings.HasSuffix(altName, "rating: false heading"):
		return -0.5, 1.0, true
	case strings.HasSuffix(altName, "debunked "):
		return -0.5, 1.0, true

	case mixedVerdicts[altName]:
		return 0.0, 1.0, true
	case strings.HasPrefix(altName, "unsubstantiated."):
		return 0.0, 1.0, true
	case strings.HasSuffix(altName, "rating: mixture"):
		return 0.0, 1.0, true

	case mostlyTrueVerdicts[altName]:
		return 0.5, 1.0, true
	case strings.HasPrefix(altName, "true but "):
		return 0.5, 1.0, true
	case strings.HasPrefix(altName, "somewhat true "):
		return 0.5, 1.0, true

	case trueVerdicts[altName]:
		return 1.0, 1.0, true
	case strings.HasPrefix(altName, "accurate."):
		return 1.0, 1.0, true

	case altName == "explanatory":
		return 0.0, 0.75, true

	default:
		return 0, 0, false
	}
}
