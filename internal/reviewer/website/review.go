// Package website implements the WebSite credibility reviewer, built on top
// of externally-sourced domain credibility assessments (the MisinfoMe
// source-credibility service).
package website

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/coinform/credserve/internal/identity"
	"github.com/coinform/credserve/internal/isodate"
	"github.com/coinform/credserve/internal/item"
	"github.com/coinform/credserve/internal/reviewer/credibility"
	"github.com/coinform/credserve/internal/svcclient"
	"github.com/coinform/credserve/pkg/logger"
)

const (
	ciContext    = "http://coinform.eu"
	misinfomeURL = "https://socsem.kmi.open.ac.uk/misinfo"
)

// MisinfoMeSourceCredReviewer describes the external bot this reviewer
// delegates to. Since the service is not controlled by this pipeline, its
// results may change at any time, so its softwareVersion is pinned to the
// start of the current ISO week rather than a fixed release number.
func MisinfoMeSourceCredReviewer(now time.Time) item.Item {
	weekStart := startOfISOWeekUTC(now)
	result := item.Item{
		"@context":        ciContext,
		"@type":           "MisinfoMeSourceCredReviewer",
		"softwareVersion": weekStart,
		"additionalType":  []string{"SoftwareApplication", "Bot"},
		"url":             misinfomeURL,
		"applicationSuite": "MisinfoMe",
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

func startOfISOWeekUTC(t time.Time) string {
	t = t.UTC()
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday as end of ISO week
	}
	monday := t.AddDate(0, 0, -(weekday - 1))
	monday = time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, time.UTC)
	return isodate.AsUTCTimestamp(monday)
}

// FromDomainCredibility converts the legacy DomainCredibility shape
// (item_assessed/value/confidence/assessments) returned by the
// credibility service into a WebSiteCredReview.
func FromDomainCredibility(domCred map[string]interface{}, confThreshold float64, now time.Time) (item.Item, error) {
	domainURL, _ := domCred["itemReviewed"].(string)
	if domainURL == "" {
		if legacy, ok := domCred["credibility"].(map[string]interface{}); ok {
			domainURL, _ = legacy["item_assessed"].(string)
		}
	}
	if domainURL == "" {
		domainURL = "missing_website"
	}
	itemReviewed, err := item.StrAsWebsite(domainURL)
	if err != nil {
		return nil, err
	}

	cred, _ := domCred["credibility"].(map[string]interface{})
	ratingVal := floatField(cred, "value", 0.0)
	confidence := floatField(cred, "confidence", 0.5)

	assessments, _ := domCred["assessments"].([]interface{})
	explanation := fmt.Sprintf("based on %d review(s) by external rater(s)%s", len(assessments), exampleRatersMarkdown(assessments))

	label, err := credibility.RatingLabel(ratingVal, confidence, confThreshold)
	if err != nil {
		return nil, err
	}
	name, _ := itemReviewed["name"].(string)
	if name == "" {
		name = "??"
	}

	dateCreated, _ := domCred["dateCreated"].(string)
	if dateCreated == "" {
		dateCreated = isodate.NowUTCTimestamp()
	}

	return item.Item{
		"@context":       ciContext,
		"@type":          "WebSiteCredReview",
		"additionalType": []string{"CredibilityReview", "Review"},
		"itemReviewed":   itemReviewed,
		"text":           fmt.Sprintf("Site `%s` seems *%s* %s", name, label, explanation),
		"author":         MisinfoMeSourceCredReviewer(now),
		"reviewRating": item.Item{
			"@type":             "AggregateRating",
			"reviewAspect":      "credibility",
			"ratingValue":       ratingVal,
			"confidence":        confidence,
			"ratingExplanation": explanation,
			"reviewCount":       len(assessments),
			"ratingCount":       len(assessments),
		},
		"dateCreated":           dateCreated,
		"reviewAspect":          "credibility",
		"isBasedOn":             []interface{}{},
		"isBasedOn_assessments": assessments,
	}, nil
}

// ReviewWebsite fetches domain's credibility through client and converts it
// into a WebSiteCredReview. A lookup failure degrades to
// DefaultDomainCredibility rather than propagating the error, since a
// missing external signal is itself a meaningful (zero-confidence) review.
func ReviewWebsite(ctx context.Context, client *svcclient.WebsiteCredibilityClient, domain string, confThreshold float64, now time.Time) (item.Item, error) {
	domCred, err := client.DomainCredibility(ctx, domain)
	if err != nil {
		logger.Warn("website reviewer: domain credibility lookup failed, using default", zap.String("domain", domain), zap.Error(err))
		domCred = DefaultDomainCredibility(domain, fmt.Sprintf("could not reach credibility service for %s", domain))
	}
	if domCred["itemReviewed"] == nil {
		domCred["itemReviewed"] = domain
	}
	return FromDomainCredibility(domCred, confThreshold, now)
}

func exampleRatersMarkdown(assessments []interface{}) string {
	var links []string
	for _, a := range assessments {
		am, ok := a.(map[string]interface{})
		if !ok {
			continue
		}
		origin, ok := am["origin"].(map[string]interface{})
		if !ok {
			continue
		}
		name, _ := origin["name"].(string)
		homepage, _ := origin["homepage"].(string)
		if name == "" {
			continue
		}
		links = append(links, fmt.Sprintf("[%s](%s)", name, homepage))
	}
	switch len(links) {
	case 0:
		return " (missing data about raters)"
	case 1:
		return fmt.Sprintf(" (%s)", links[0])
	case 2:
		return fmt.Sprintf(" (%s)", strings.Join(links, " or "))
	default:
		return fmt.Sprintf(" (e.g. %s)", strings.Join(links[:2], " or "))
	}
}

// PenaliseCredibility halves a domain credibility's confidence in place,
// used when the site is itself a fact-checker: its domain credibility
// should take a back seat to its own ClaimReviews rather than compete with
// them at full confidence.
func PenaliseCredibility(domCred map[string]interface{}) map[string]interface{} {
	cred, _ := domCred["credibility"].(map[string]interface{})
	if cred == nil {
		return domCred
	}
	orig := floatField(cred, "confidence", 0.0)
	cred["confidence"] = orig * 0.5
	cred["explanation"] = "Domain credibility for a factchecker should be mixed. Reduced from standard confidence."
	return domCred
}

// DefaultDomainCredibility is the zero-confidence fallback used when the
// external credibility service has nothing for a domain, or fails.
func DefaultDomainCredibility(domain, explanation string) map[string]interface{} {
	return map[string]interface{}{
		"credibility": map[string]interface{}{
			"@context":      ciContext,
			"@type":         "DomainCredibility",
			"item_assessed": domain,
			"value":         0.0,
			"confidence":    0.0,
			"explanation":   explanation,
		},
		"assessments": []interface{}{},
	}
}

func floatField(m map[string]interface{}, key string, def float64) float64 {
	if m == nil {
		return def
	}
	switch v := m[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return def
	}
}
