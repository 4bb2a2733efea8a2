// Package engine fans a batch of query sentences out to the similarity,
// stance, check-worthiness and website-credibility services concurrently
// and assembles the resulting per-sentence credibility reviews, mirroring
// the single-sentence reviewers in internal/reviewer/credibility but at
// batch scale.
package engine

import "github.com/coinform/credserve/internal/config"

// Config holds the tunables the review pipeline needs, mirroring the
// config keys the original Python pipeline reads out of its cfg dict
// (acred_pred_claim_search_url, sentence_similarity_unrelated_factor,
// sentence_similarity_discuss_factor, factchecker_website_to_qclaim_confidence_penalty_factor,
// worthiness_review, acred_factchecker_urls).
type Config struct {
	// ConfThreshold is the minimum confidence a rating needs before it is
	// described as anything other than "not verifiable".
	ConfThreshold float64
	// UnrelatedFactor and DiscussFactor damp a similarity score when the
	// stance detector reports the sentences as unrelated or merely
	// discussing the same topic rather than agreeing or disagreeing.
	UnrelatedFactor float64
	DiscussFactor   float64
	// FactcheckerPenaltyFactor reduces a fact-checking website's domain
	// credibility confidence, so its own ClaimReviews take precedence
	// over its general reputation.
	FactcheckerPenaltyFactor float64
	// FactcheckerURLs lists domains of known fact-checking organizations.
	FactcheckerURLs []string
	// SocialMediaURLs lists domains treated as social-media platforms for
	// article/website review's confidence-reduction rule.
	SocialMediaURLs []string
	// ClaimSearchURL is recorded in the top-level reviewer bot's
	// launchConfiguration for provenance.
	ClaimSearchURL string
	// WorthinessReviewEnabled gates the check-worthiness pre-filter. When
	// false every sentence is treated as factual, matching the source's
	// `rev_worth = cfg.get('worthiness_review', False)` default.
	WorthinessReviewEnabled bool
	// MaxConcurrency bounds the worker pool fanning out per-match website
	// credibility lookups. Zero selects a small sane default.
	MaxConcurrency int
	// ArticleWebsiteConfFactor and ArticleWebsiteCredThresholdPenalise tune
	// how much an article's own content credibility defers to its
	// publishing site's reputation, per §6's
	// article_from_website_conf_factor/_cred_threshold_penalise.
	ArticleWebsiteConfFactor           float64
	ArticleWebsiteCredThresholdPenalise float64
	// MaxClaimsInDoc bounds how many sentences of a webpage are reviewed
	// for claim credibility.
	MaxClaimsInDoc int
}

// DefaultConfig returns the tunables used when the caller configures none
// explicitly.
func DefaultConfig() Config {
	return Config{
		ConfThreshold:                       0.7,
		UnrelatedFactor:                     0.9,
		DiscussFactor:                       0.9,
		FactcheckerPenaltyFactor:            0.5,
		ClaimSearchURL:                      "http://localhost:8070/test/api/v1/claim/internal-search",
		WorthinessReviewEnabled:             false,
		MaxConcurrency:                      8,
		ArticleWebsiteConfFactor:            0.9,
		ArticleWebsiteCredThresholdPenalise: 0.2,
		MaxClaimsInDoc:                      5,
	}
}

// ConfigFromPipeline builds engine.Config from a loaded application
// configuration's pipeline/services sections, so the composition root has
// a single place translating the on-disk config shape into what the
// coordinator actually needs.
func ConfigFromPipeline(p config.PipelineConfig, claimSearchURL string) Config {
	return Config{
		ConfThreshold:                       orDefault(p.ConfThreshold, 0.7),
		UnrelatedFactor:                     orDefault(p.UnrelatedFactor, 0.9),
		DiscussFactor:                       orDefault(p.DiscussFactor, 0.9),
		FactcheckerPenaltyFactor:            orDefault(p.FactcheckerPenaltyFactor, 0.5),
		FactcheckerURLs:                     p.FactcheckerURLs,
		SocialMediaURLs:                     p.SocialMediaURLs,
		ClaimSearchURL:                      claimSearchURL,
		WorthinessReviewEnabled:             p.WorthinessReviewEnabled,
		MaxConcurrency:                      p.MaxConcurrency,
		ArticleWebsiteConfFactor:            0.9,
		ArticleWebsiteCredThresholdPenalise: 0.2,
		MaxClaimsInDoc:                      5,
	}
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

func (c Config) maxWorkers() int {
	if c.MaxConcurrency <= 0 {
		return 8
	}
	return c.MaxConcurrency
}
