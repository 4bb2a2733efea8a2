package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/coinform/credserve/internal/config"
	"github.com/coinform/credserve/internal/item"
	"github.com/coinform/credserve/internal/reviewer/claimreview"
	"github.com/coinform/credserve/internal/reviewer/credibility"
	"github.com/coinform/credserve/internal/reviewer/similarity"
	"github.com/coinform/credserve/internal/reviewer/website"
	"github.com/coinform/credserve/internal/reviewer/worthiness"
	"github.com/coinform/credserve/internal/svcclient"
	"github.com/coinform/credserve/pkg/logger"
)

// Coordinator reviews batches of query sentences, grounded on
// aggqsent_credrev.review's orchestration: an optional check-worthiness
// pre-filter, a single batched claim-similarity search, and a per-match
// credibility aggregation that may call out to the website credibility
// service. The per-match fan-out runs on a bounded worker pool; there is no
// retry loop anywhere in this path, matching the rest of the pipeline's
// "absorb locally, degrade gracefully" error handling.
type Coordinator struct {
	cfg        Config
	similarity *svcclient.SimilarityClient
	worthiness *svcclient.WorthinessClient
	website    *svcclient.WebsiteCredibilityClient
	now        func() time.Time
}

// NewCoordinator builds a Coordinator. Any of the clients may be nil if the
// corresponding review step should be skipped entirely (e.g. no worthiness
// service configured means every sentence is treated as factual).
func NewCoordinator(cfg Config, sim *svcclient.SimilarityClient, worth *svcclient.WorthinessClient, web *svcclient.WebsiteCredibilityClient) *Coordinator {
	return &Coordinator{
		cfg:        cfg,
		similarity: sim,
		worthiness: worth,
		website:    web,
		now:        time.Now,
	}
}

// ReviewQuerySentences reviews a batch of raw sentence strings and returns
// one AggQSentCredReview per input sentence, in the same order as texts.
// worthinessOverride, when non-nil, replaces the server-wide
// WorthinessReviewEnabled setting for this call only, mirroring the
// original's per-request reviewCheckWorthiness parameter.
func (c *Coordinator) ReviewQuerySentences(ctx context.Context, texts []string, worthinessOverride *bool) ([]item.Item, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	worthinessEnabled := c.cfg.WorthinessReviewEnabled
	if worthinessOverride != nil {
		worthinessEnabled = *worthinessOverride
	}

	sentItems := make([]item.Item, len(texts))
	for i, t := range texts {
		si, err := item.AsSentence(t, nil)
		if err != nil {
			return nil, err
		}
		sentItems[i] = si
	}

	worthReviews := make([]item.Item, len(texts))
	factual := make([]bool, len(texts))
	for i := range factual {
		factual[i] = true // absent worthiness review means "assume factual"
	}

	if worthinessEnabled && c.worthiness != nil {
		preds := c.worthiness.PredictSentWorthiness(ctx, texts)
		if len(preds) == len(texts) {
			reviewerBot, err := c.worthiness.ReviewerBotInfo(ctx)
			if err != nil {
				logger.Warn("engine: worthiness reviewer bot descriptor unavailable", zap.Error(err))
				reviewerBot = item.Item{}
			}
			for i, pred := range preds {
				rev, err := worthiness.BuildReview(pred, reviewerBot)
				if err != nil {
					return nil, err
				}
				worthReviews[i] = rev
				factual[i] = worthiness.WorthVal(pred.Label) == "worthy"
			}
		}
		// A degraded (empty or mismatched) prediction batch leaves every
		// sentence factual, per the same fallback the source uses when
		// worthiness_review is disabled.
	}

	var factualTexts []string
	var factualIdx []int
	for i, isFactual := range factual {
		if isFactual {
			factualTexts = append(factualTexts, texts[i])
			factualIdx = append(factualIdx, i)
		}
	}

	var claimsimResults []item.Item
	if c.similarity != nil {
		claimsimResults = c.similarity.FindRelatedSentences(ctx, factualTexts)
	}

	reviews := make([]item.Item, len(texts))

	dbSentBot := credibility.DBSentCredReviewerBotInfo(
		[]interface{}{website.MisinfoMeSourceCredReviewer(c.now()), claimreview.BotInfo()},
		c.cfg.FactcheckerPenaltyFactor, c.cfg.FactcheckerURLs)
	qSentBot := credibility.QSentCredReviewerBotInfo([]interface{}{dbSentBot, similarity.PolarityReviewerBotInfo(nil)})
	aggBot := credibility.AggQSentCredReviewerBotInfo([]interface{}{dbSentBot, qSentBot}, c.cfg.ClaimSearchURL)

	jobs := c.buildRelsentJobs(factualIdx, factualTexts, claimsimResults)
	qSentReviewsBySent := c.runRelsentJobs(ctx, jobs)

	for j, idx := range factualIdx {
		var claimSimResult map[string]interface{}
		if j < len(claimsimResults) {
			claimSimResult = claimsimResults[j]
		}
		qSent := ""
		if claimSimResult != nil {
			qSent, _ = claimSimResult["q_claim"].(string)
		}
		if qSent == "" {
			qSent = texts[idx]
		}
		rev, err := credibility.ClaimSimResultAsAggQSentCredReview(
			qSent, qSentReviewsBySent[j], worthReviews[idx], aggBot, c.cfg.ConfThreshold)
		if err != nil {
			return nil, err
		}
		reviews[idx] = rev
	}

	for i, isFactual := range factual {
		if !isFactual {
			reviews[i] = credibility.AsNonVerifiableReview(sentItems[i], worthReviews[i], aggBot)
		}
	}

	return credibility.RestoreOrder(sentItems, reviews)
}

type relsentJob struct {
	sentPos        int // index into factualIdx/factualTexts, not the original batch
	simSent        map[string]interface{}
	claimSimResult map[string]interface{}
}

func (c *Coordinator) buildRelsentJobs(factualIdx []int, factualTexts []string, claimsimResults []item.Item) []relsentJob {
	var jobs []relsentJob
	for pos := range factualIdx {
		if pos >= len(claimsimResults) {
			continue
		}
		csr := claimsimResults[pos]
		if csr == nil {
			continue
		}
		results, _ := csr["results"].([]interface{})
		for _, r := range results {
			simSent, ok := r.(map[string]interface{})
			if !ok {
				continue
			}
			jobs = append(jobs, relsentJob{sentPos: pos, simSent: simSent, claimSimResult: csr})
		}
	}
	return jobs
}

// runRelsentJobs fans jobs out over a fixed worker pool and groups the
// resulting QSentCredReviews back by their originating sentence position.
// A job that errors is dropped rather than failing the whole batch: one bad
// match should not sink every related sentence's review.
func (c *Coordinator) runRelsentJobs(ctx context.Context, jobs []relsentJob) map[int][]item.Item {
	grouped := make(map[int][]item.Item)
	if len(jobs) == 0 {
		return grouped
	}

	results := make([]item.Item, len(jobs))
	jobCh := make(chan int, len(jobs))
	var wg sync.WaitGroup

	workers := c.cfg.maxWorkers()
	if workers > len(jobs) {
		workers = len(jobs)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobCh {
				select {
				case <-ctx.Done():
					return
				default:
				}
				job := jobs[idx]
				rev, err := c.buildQSentCredReview(ctx, job.simSent, job.claimSimResult)
				if err != nil {
					logger.Warn("engine: dropping related-sentence match", zap.Error(err))
					continue
				}
				results[idx] = rev
			}
		}()
	}
	for i := range jobs {
		jobCh <- i
	}
	close(jobCh)
	wg.Wait()

	for i, job := range jobs {
		if results[i] != nil {
			grouped[job.sentPos] = append(grouped[job.sentPos], results[i])
		}
	}
	return grouped
}

func (c *Coordinator) buildQSentCredReview(ctx context.Context, simSent, claimSimResult map[string]interface{}) (item.Item, error) {
	polarSimReview, err := similarity.SimilarSentAsPolarReview(simSent, claimSimResult, nil, c.cfg.UnrelatedFactor, c.cfg.DiscussFactor)
	if err != nil {
		return nil, err
	}
	dbSentCredReview, err := c.buildDBSentCredReview(ctx, simSent)
	if err != nil {
		return nil, err
	}
	return credibility.AggregateQSentSubReviews(polarSimReview, dbSentCredReview, c.cfg.ConfThreshold)
}

func (c *Coordinator) buildDBSentCredReview(ctx context.Context, simSent map[string]interface{}) (item.Item, error) {
	dbSentence, err := buildDBSentence(simSent)
	if err != nil {
		return nil, err
	}

	var normalisedClaimReview item.Item
	if cr, ok := simSent["claimReview"].(map[string]interface{}); ok {
		normalisedClaimReview, err = claimreview.Normalise(item.Item(cr), c.cfg.ConfThreshold)
		if err != nil {
			return nil, err
		}
	}

	webSiteCred, err := c.resolveWebSiteCredReview(ctx, simSent)
	if err != nil {
		return nil, err
	}

	subBots := []interface{}{website.MisinfoMeSourceCredReviewer(c.now()), claimreview.BotInfo()}
	return credibility.AggregateDBSentSubReviews(dbSentence, normalisedClaimReview, webSiteCred, c.cfg.ConfThreshold, c.cfg.FactcheckerPenaltyFactor, c.cfg.FactcheckerURLs, subBots)
}

// buildDBSentence reconstructs the Sentence-in-document item a claim-search
// match describes, so the aggregated review can link back to where the
// matched sentence was published.
func buildDBSentence(simSent map[string]interface{}) (item.Item, error) {
	sentenceText, _ := simSent["sentence"].(string)
	docURL, _ := simSent["doc_url"].(string)

	var appearance []interface{}
	if docURL != "" {
		domain, _ := simSent["domain"].(string)
		lang, _ := simSent["lang_orig"].(string)
		lang = config.NormalizeLangOrig(lang)
		published, _ := simSent["published_date"].(string)
		article := item.Item{
			"@type":         "Article",
			"url":           docURL,
			"publisher":     domain,
			"inLanguage":    lang,
			"datePublished": published,
		}
		if content, ok := simSent["doc_content"].(string); ok {
			article["text"] = content
		}
		appearance = []interface{}{article}
	}
	return item.AsSentence(sentenceText, appearance)
}

// resolveWebSiteCredReview builds a WebSiteCredReview for the domain a
// match was published on, preferring an already-embedded domain_credibility
// (the claim-search service's own enrichment) over a fresh lookup.
func (c *Coordinator) resolveWebSiteCredReview(ctx context.Context, simSent map[string]interface{}) (item.Item, error) {
	if domCred, ok := simSent["domain_credibility"].(map[string]interface{}); ok {
		return website.FromDomainCredibility(domCred, c.cfg.ConfThreshold, c.now())
	}

	domain, _ := simSent["domain"].(string)
	if domain == "" {
		if docURL, ok := simSent["doc_url"].(string); ok {
			domain = item.DomainFromURL(docURL)
		}
	}
	if domain == "" {
		return nil, fmt.Errorf("engine: resolveWebSiteCredReview: match carries neither domain_credibility, domain, nor doc_url")
	}
	return c.reviewWebsiteByDomain(ctx, domain)
}

// reviewWebsiteByDomain builds a WebSiteCredReview for domain, falling back
// to a zero-confidence default when no website credibility service is
// configured at all.
func (c *Coordinator) reviewWebsiteByDomain(ctx context.Context, domain string) (item.Item, error) {
	if c.website == nil {
		return website.FromDomainCredibility(website.DefaultDomainCredibility(domain, "no website credibility service configured"), c.cfg.ConfThreshold, c.now())
	}
	return website.ReviewWebsite(ctx, c.website, domain, c.cfg.ConfThreshold, c.now())
}

// FindRelatedSentences exposes the raw §4.4 similarity lookup for the
// /claim/search and /claim/internal-search endpoints, which return the
// similarity service's matches directly rather than a credibility review.
func (c *Coordinator) FindRelatedSentences(ctx context.Context, sents []string) []item.Item {
	if c.similarity == nil {
		return []item.Item{}
	}
	return c.similarity.FindRelatedSentences(ctx, sents)
}

// ReviewWebsite reviews the credibility of the site hosting rawURL (or,
// if rawURL is itself a bare domain, of that domain), grounded on
// website_credrev.review's per-URL dispatch.
func (c *Coordinator) ReviewWebsite(ctx context.Context, rawURL string) (item.Item, error) {
	domain := item.DomainFromURL(rawURL)
	if domain == "" {
		domain = rawURL
	}
	if domain == "" {
		return nil, fmt.Errorf("engine: ReviewWebsite: empty url")
	}
	return c.reviewWebsiteByDomain(ctx, domain)
}

// ReviewArticle reviews an already-analysed article's credibility,
// grounded on article_credrev.review (§4.10): a domain sub-review
// (confidence-capped when the domain is a known social-media platform),
// a content sub-review over up to MaxClaimsInDoc of the article's
// extracted sentences, aggregated per §4.11.
func (c *Coordinator) ReviewArticle(ctx context.Context, article item.Item) (item.Item, error) {
	domain, _ := article["domain"].(string)
	if domain == "" {
		if docURL, ok := article["url"].(string); ok {
			domain = item.DomainFromURL(docURL)
		}
	}

	var webSiteCred item.Item
	var err error
	if domain != "" {
		webSiteCred, err = c.reviewWebsiteByDomain(ctx, domain)
		if err != nil {
			return nil, err
		}
		webSiteCred = credibility.ReduceConfidenceForSocialMedia(webSiteCred, c.cfg.SocialMediaURLs)
	} else {
		webSiteCred, err = website.FromDomainCredibility(website.DefaultDomainCredibility("unknown", "article carries no domain or url"), c.cfg.ConfThreshold, c.now())
		if err != nil {
			return nil, err
		}
	}

	claims := extractedSentences(article, c.cfg.MaxClaimsInDoc)
	sentReviews, err := c.ReviewQuerySentences(ctx, claims, nil)
	if err != nil {
		return nil, err
	}

	author := credibility.ArticleCredReviewerBotInfo(
		[]interface{}{website.MisinfoMeSourceCredReviewer(c.now())}, c.cfg.ConfThreshold, c.cfg.MaxClaimsInDoc)
	contentCred, err := credibility.AggregateSentReviews(sentReviews, article, author, c.cfg.ConfThreshold)
	if err != nil {
		return nil, err
	}

	return credibility.ReviewArticle(article, webSiteCred, contentCred, author,
		c.cfg.ConfThreshold, c.cfg.ArticleWebsiteConfFactor, c.cfg.ArticleWebsiteCredThresholdPenalise)
}

// extractedSentences returns up to max of article's pre-extracted claim
// sentences (claims_content, from the external scraper+analyser). When
// absent, it falls back to a naive split of the article's own text/content
// field: this service does not scrape or run claim extraction itself, so
// an un-analysed article degrades to this best-effort substitute rather
// than failing the review outright.
func extractedSentences(article item.Item, max int) []string {
	var out []string
	if raw, ok := article["claims_content"].([]interface{}); ok {
		for _, c := range raw {
			if s, ok := c.(string); ok {
				out = append(out, s)
			}
		}
	} else if raw, ok := article["claims_content"].([]string); ok {
		out = append(out, raw...)
	}
	if len(out) == 0 {
		text, _ := article["content"].(string)
		if text == "" {
			text, _ = article["text"].(string)
		}
		out = splitSentences(text)
	}
	if max > 0 && len(out) > max {
		out = out[:max]
	}
	return out
}

// ReviewTweet reviews a tweet's credibility, grounded on tweet_credrev's
// review_tweet (§4.12): the tweet's own sentences and any linked articles
// are each reviewed independently and folded into one TweetCredReview.
func (c *Coordinator) ReviewTweet(ctx context.Context, tweet item.Item) (item.Item, error) {
	text, _ := tweet["text"].(string)
	if text == "" {
		text, _ = tweet["content"].(string)
	}
	sentences := splitSentences(text)

	subReviews, err := c.ReviewQuerySentences(ctx, sentences, nil)
	if err != nil {
		return nil, err
	}

	for _, linkedURL := range stringList(tweet["urls"]) {
		articleRev, err := c.ReviewArticle(ctx, item.Item{"@type": "Article", "url": linkedURL})
		if err != nil {
			logger.Warn("engine: dropping linked-article review for tweet", zap.String("url", linkedURL), zap.Error(err))
			continue
		}
		subReviews = append(subReviews, articleRev)
	}

	author := credibility.TweetCredReviewerBotInfo([]interface{}{
		website.MisinfoMeSourceCredReviewer(c.now()),
	})
	return credibility.AggregateTweetSubReviews(subReviews, tweet, author, c.cfg.ConfThreshold)
}

func stringList(v interface{}) []string {
	switch vv := v.(type) {
	case []string:
		return vv
	case []interface{}:
		out := make([]string, 0, len(vv))
		for _, e := range vv {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// splitSentences is a naive sentence boundary splitter (on '.', '!', '?')
// used where no dedicated sentence-detection service is configured.
func splitSentences(text string) []string {
	var out []string
	start := 0
	for i, r := range text {
		if r == '.' || r == '!' || r == '?' {
			s := strings.TrimSpace(text[start : i+1])
			if s != "" {
				out = append(out, s)
			}
			start = i + 1
		}
	}
	if rest := strings.TrimSpace(text[start:]); rest != "" {
		out = append(out, rest)
	}
	return out
}
