package svcclient

import (
	"context"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/coinform/credserve/internal/item"
	"github.com/coinform/credserve/pkg/logger"
)

// SimilarityClient finds semantically similar sentences (with stance) for a
// batch of query sentences, and exposes the bot descriptors of the
// underlying similarity/stance models so reviewers can cite them as
// isBasedOn sub-bots.
type SimilarityClient struct {
	url     string
	auth    *BasicAuth
	doer    httpDoer
	breaker *gobreaker.CircuitBreaker
}

// NewSimilarityClient builds a client against claimSearchURL (the claim
// search endpoint, e.g. ".../claim/internal-search").
func NewSimilarityClient(claimSearchURL string, auth *BasicAuth) *SimilarityClient {
	return &SimilarityClient{
		url:     claimSearchURL,
		auth:    auth,
		doer:    &http.Client{Timeout: 10 * time.Second},
		breaker: newBreaker("similarity"),
	}
}

type claimSearchRequest struct {
	Claims []string `json:"claims"`
}

type claimSearchResponse struct {
	Results []map[string]interface{} `json:"results"`
	Bots    map[string]interface{}   `json:"bots"`
}

// FindRelatedSentences retrieves a SemanticClaimSimilarityResult for each
// query sentence in sents, aligned with the input. On any failure it logs
// and returns an empty slice rather than an error, matching the degrade
// gracefully / no-retry contract for this call.
func (c *SimilarityClient) FindRelatedSentences(ctx context.Context, sents []string) []item.Item {
	if len(sents) == 0 {
		return nil
	}
	var resp claimSearchResponse
	if err := postJSON(ctx, c.doer, c.breaker, c.url, claimSearchRequest{Claims: sents}, &resp, c.auth); err != nil {
		logger.Warn("svcclient: find related sentences failed", zap.Error(err))
		return []item.Item{}
	}
	out := make([]item.Item, len(resp.Results))
	for i, r := range resp.Results {
		out[i] = item.Item(r)
	}
	return out
}

// BotDescriptors fetches the bot descriptors for the similarity reviewer
// and the stance predictor it is based on, via the same claim search
// endpoint (requested with an empty claim list).
func (c *SimilarityClient) BotDescriptors(ctx context.Context) (simReviewer, stancePredictor item.Item, err error) {
	var resp claimSearchResponse
	if err := postJSON(ctx, c.doer, c.breaker, c.url, claimSearchRequest{}, &resp, c.auth); err != nil {
		return nil, nil, err
	}
	if sr, ok := resp.Bots["simReviewer"].(map[string]interface{}); ok {
		simReviewer = item.Item(sr)
	}
	if sp, ok := resp.Bots["stancePred"].(map[string]interface{}); ok {
		stancePredictor = item.Item(sp)
	}
	return simReviewer, stancePredictor, nil
}
