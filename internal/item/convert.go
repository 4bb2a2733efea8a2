package item

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/coinform/credserve/internal/identity"
)

const ciContext = "http://coinform.eu"

// AsSentence wraps a raw string into a new Sentence item. appearance lists
// the URLs or CreativeWork items the sentence was found in.
func AsSentence(s string, appearance []interface{}) (Item, error) {
	for _, a := range appearance {
		switch v := a.(type) {
		case string:
			if !IsURL(v) {
				return nil, fmt.Errorf("item: AsSentence: appearance %q is not a URL", v)
			}
		case Item:
			if !IsCreativeWork(v) {
				return nil, fmt.Errorf("item: AsSentence: appearance item is not a CreativeWork")
			}
		default:
			return nil, fmt.Errorf("item: AsSentence: appearance entries must be a URL string or CreativeWork item")
		}
	}

	if appearance == nil {
		appearance = []interface{}{}
	}
	return Item{
		"@context":       ciContext,
		"@type":          "Sentence",
		"identifier":     identity.CalcStrHash(s),
		"text":           s,
		"additionalType": []string{"CreativeWork"},
		"description":    "A single sentence, possibly appearing in some larger document",
		"appearance":     appearance,
	}, nil
}

// AsDBQSentPair builds a SentencePair item pairing a query sentence against
// a sentence already in the credibility database.
func AsDBQSentPair(dbSent, qSent string, dbSentAppearance []interface{}) (Item, error) {
	sentA, err := AsSentence(qSent, nil)
	if err != nil {
		return nil, err
	}
	sentB, err := AsSentence(dbSent, dbSentAppearance)
	if err != nil {
		return nil, err
	}

	pair := []string{qSent, dbSent}
	sort.Strings(pair)
	text := strings.Join(pair, " <sep> ")
	ident := identity.CalcStrHash(text)

	return Item{
		"@context":       ciContext,
		"@type":          "SentencePair",
		"identifier":     ident,
		"url":            fmt.Sprintf("%s/sentencepair?querySentence=%s&sentenceInDB=%s", ciContext, url.QueryEscape(qSent), url.QueryEscape(dbSent)),
		"additionalType": []string{"ItemPair", "CreativeWork"},
		"description":    "CreativeWork consisting of exactly two sentences",
		"sentA":          sentA,
		"roleA":          "querySentence",
		"sentB":          sentB,
		"roleB":          "sentenceInDB",
		"text":           text,
	}, nil
}

// StrAsWebsite converts a URL or bare domain name string into a WebSite
// item. Unlike most items, a WebSite's identifier is its url value itself,
// not a content hash - the url already uniquely names the site.
func StrAsWebsite(s string) (Item, error) {
	if s == "" {
		return nil, fmt.Errorf("item: StrAsWebsite: empty input")
	}

	var siteURL, domain string
	if IsURL(s) {
		parsed, err := url.Parse(s)
		if err != nil {
			return nil, err
		}
		siteURL = fmt.Sprintf("%s://%s/", parsed.Scheme, parsed.Host)
		domain = DomainFromURL(siteURL)
	} else {
		domain = s
		siteURL = fmt.Sprintf("http://%s/", domain)
		if !IsURL(siteURL) {
			return nil, fmt.Errorf("item: StrAsWebsite: invalid domain %q", domain)
		}
	}

	return Item{
		"@type":      "WebSite",
		"url":        siteURL,
		"identifier": siteURL,
		"name":       domain,
	}, nil
}

// TryFixURL repairs the common malformed-scheme-separator case
// (http:/example.com/a/b) and returns url unchanged if it already parses or
// can't be fixed this way.
func TryFixURL(rawURL string) string {
	if IsURL(rawURL) {
		return rawURL
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	if parsed.Scheme != "" && parsed.Host == "" && strings.HasPrefix(parsed.Path, "/") {
		fixed := fmt.Sprintf("%s:/%s", parsed.Scheme, parsed.Path)
		if parsed.RawQuery != "" {
			fixed = fmt.Sprintf("%s?%s", fixed, parsed.RawQuery)
		}
		return fixed
	}
	return rawURL
}

// DomainFromURL returns the netloc (host) portion of rawURL. Archive.org
// wrapper URLs are unwrapped to the domain of the page they captured.
func DomainFromURL(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	if parsed.Host == "web.archive.org" {
		if idx := strings.Index(parsed.Path, "http"); idx >= 0 {
			realURL := parsed.Path[idx:]
			return DomainFromURL(TryFixURL(realURL))
		}
	}
	return parsed.Host
}
