// Package config provides configuration management for the application.
package config

import (
	"strings"

	"golang.org/x/text/language"
)

// LanguageConfig validates and normalizes the language tags carried on
// matched sentences (the lang_orig field reported by the similarity
// search service), so a malformed or unrecognised tag degrades to a
// known-good value instead of propagating garbage into a review item.
type LanguageConfig struct {
	tag language.Tag
}

// ParseLanguage parses and validates an ISO language tag. If the tag is
// empty or fails to parse, it defaults to English rather than erroring,
// since a sentence's inLanguage field is descriptive metadata, not
// something worth failing a review over.
func ParseLanguage(langTag string) (*LanguageConfig, error) {
	var tag language.Tag
	var err error

	if langTag == "" {
		tag = language.English
	} else {
		tag, err = language.Parse(langTag)
		if err != nil {
			tag, err = language.Parse(strings.ToLower(langTag))
			if err != nil {
				tag = language.English
			}
		}
	}

	return &LanguageConfig{tag: tag}, nil
}

// Tag returns the underlying language tag.
func (lc *LanguageConfig) Tag() language.Tag {
	return lc.tag
}

// String returns the language tag as a string (e.g., "en", "zh-CN").
func (lc *LanguageConfig) String() string {
	return lc.tag.String()
}

// DisplayName returns the base subtag of the language (e.g., "en", "zh").
func (lc *LanguageConfig) DisplayName() string {
	base, _ := lc.tag.Base()
	return base.String()
}

// ValidLanguageCodes returns a list of commonly supported language codes.
func ValidLanguageCodes() []string {
	return []string{
		"en",    // English
		"zh-cn", // Simplified Chinese
		"zh-tw", // Traditional Chinese
		"ja",    // Japanese
		"ko",    // Korean
		"fr",    // French
		"de",    // German
		"es",    // Spanish
		"pt",    // Portuguese
		"ru",    // Russian
		"ar",    // Arabic
		"it",    // Italian
		"nl",    // Dutch
		"pl",    // Polish
		"tr",    // Turkish
		"vi",    // Vietnamese
		"th",    // Thai
		"id",    // Indonesian
	}
}

// NormalizeLangOrig validates a sentence's reported source language. A
// blank value stays the empty string (unknown); a non-blank tag that cannot
// be parsed falls back to English, as in ParseLanguage.
func NormalizeLangOrig(langOrig string) string {
	if strings.TrimSpace(langOrig) == "" {
		return ""
	}
	lc, _ := ParseLanguage(langOrig)
	return lc.String()
}
