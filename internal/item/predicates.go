// Package item provides the generic schema.org-like item representation
// shared by the identity engine and every reviewer: an item is a
// map[string]interface{} carrying at least an "@type" field, nested inside
// plain JSON values (string, float64, bool, nil, []interface{}, further
// items).
//
// Reviewer packages build items through the typed constructors in this
// package (AsSentence, StrAsWebsite, ...) rather than populating maps by
// hand, but the wire/identity representation stays map[string]interface{}
// throughout - the review graph is inherently heterogeneous (any item can
// nest any other item type under any key) and forcing that through
// compile-time struct fields would need as much reflection as the map
// already gives for free.
package item

import (
	"net/url"
)

// Item is the generic representation of one schema.org-like data item.
type Item = map[string]interface{}

// IsDict reports whether v is a map, i.e. it could be an Item.
func IsDict(v interface{}) bool {
	_, ok := v.(map[string]interface{})
	return ok
}

// IsItem reports whether v is a map carrying an "@type" field.
func IsItem(v interface{}) bool {
	m, ok := v.(map[string]interface{})
	if !ok {
		return false
	}
	_, hasType := m["@type"]
	return hasType
}

// typeOf returns d["@type"] as a string, or "" if absent/not a string.
func typeOf(d Item) string {
	t, _ := d["@type"].(string)
	return t
}

// IsTweetDoc reports whether d is a Tweet or SocialMediaPosting.
func IsTweetDoc(d Item) bool {
	t := typeOf(d)
	return t == "Tweet" || t == "SocialMediaPosting"
}

// IsArticleDoc reports whether d is an Article or Webpage.
func IsArticleDoc(d Item) bool {
	t := typeOf(d)
	return t == "Article" || t == "Webpage"
}

// IsCreativeWork reports whether d is a CreativeWork or one of its common
// subtypes.
func IsCreativeWork(d Item) bool {
	if !IsItem(d) {
		return false
	}
	switch typeOf(d) {
	case "CreativeWork", "Article", "Webpage", "Tweet", "SocialMediaPosting":
		return true
	default:
		return false
	}
}

// IsSentence reports whether doc is a Sentence or Claim.
func IsSentence(doc Item) bool {
	if !IsItem(doc) {
		return false
	}
	t := typeOf(doc)
	return t == "Sentence" || t == "Claim"
}

// IsSentencePair reports whether doc is a SentencePair.
func IsSentencePair(doc Item) bool {
	return IsItem(doc) && typeOf(doc) == "SentencePair"
}

// IsWebsite reports whether d is a WebSite.
func IsWebsite(d Item) bool {
	return IsItem(d) && typeOf(d) == "WebSite"
}

// IsRating reports whether d is a Rating, AggregateRating or schema:Rating.
func IsRating(d Item) bool {
	if !IsItem(d) {
		return false
	}
	switch typeOf(d) {
	case "Rating", "AggregateRating", "schema:Rating":
		return true
	default:
		return false
	}
}

// IsReview reports whether d is a Review, either directly or via
// additionalType.
func IsReview(d Item) bool {
	if !IsItem(d) {
		return false
	}
	if typeOf(d) == "Review" {
		return true
	}
	for _, t := range additionalTypes(d) {
		if t == "Review" {
			return true
		}
	}
	return false
}

// IsClaimReview reports whether d is a ClaimReview or schema:ClaimReview.
func IsClaimReview(d Item) bool {
	if !IsItem(d) {
		return false
	}
	t := typeOf(d)
	return t == "ClaimReview" || t == "schema:ClaimReview"
}

// IsSimilarSent reports whether d is a SimilarSent.
func IsSimilarSent(d Item) bool {
	return IsItem(d) && typeOf(d) == "SimilarSent"
}

// IsWebSiteCredReview reports whether d is a WebSiteCredReview.
func IsWebSiteCredReview(d Item) bool {
	return IsItem(d) && typeOf(d) == "WebSiteCredReview"
}

func additionalTypes(d Item) []string {
	v, ok := d["additionalType"]
	if !ok {
		return nil
	}
	switch t := v.(type) {
	case []string:
		return t
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// IsURL reports whether s parses as an absolute URL with both a scheme and a
// host.
func IsURL(s string) bool {
	parsed, err := url.Parse(s)
	if err != nil {
		return false
	}
	return parsed.Scheme != "" && parsed.Host != ""
}

// ItemMatchesType reports whether d's declared type or any of its
// additionalTypes intersects qtypes.
func ItemMatchesType(d Item, qtypes []string) bool {
	dtypes := append([]string{}, additionalTypes(d)...)
	t := typeOf(d)
	if t == "" {
		t = "Thing"
	}
	dtypes = append(dtypes, t)

	want := make(map[string]struct{}, len(qtypes))
	for _, q := range qtypes {
		want[q] = struct{}{}
	}
	for _, dt := range dtypes {
		if _, ok := want[dt]; ok {
			return true
		}
	}
	return false
}

// Empty reports whether s is empty (mirrors content.empty; a missing/None
// value is represented in Go by the caller passing "").
func Empty(s string) bool {
	return len(s) == 0
}
