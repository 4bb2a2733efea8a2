package svcclient

import (
	"context"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/coinform/credserve/internal/item"
	"github.com/coinform/credserve/internal/reviewer/worthiness"
	"github.com/coinform/credserve/pkg/logger"
)

// WorthinessClient predicts whether sentences are worth fact-checking.
type WorthinessClient struct {
	baseURL string
	doer    httpDoer
	breaker *gobreaker.CircuitBreaker
}

// NewWorthinessClient builds a client against baseURL (the worthiness
// checker service root, e.g. "http://localhost:8090").
func NewWorthinessClient(baseURL string) *WorthinessClient {
	return &WorthinessClient{
		baseURL: baseURL,
		doer:    &http.Client{Timeout: 10 * time.Second},
		breaker: newBreaker("worthiness"),
	}
}

type predictWorthinessRequest struct {
	Sentences []string `json:"sentences"`
}

type worthinessCheckedSentences struct {
	PredictedLabels        []string  `json:"predicted_labels"`
	PredictionConfidences   []float64 `json:"prediction_confidences"`
	SentenceIDs             []string  `json:"sentence_ids"`
	Sentences               []string  `json:"sentences"`
}

type predictWorthinessResponse struct {
	WorthinessCheckedSentences worthinessCheckedSentences `json:"worthiness_checked_sentences"`
}

// PredictSentWorthiness predicts check-worthiness for each sentence. On
// failure it logs and returns an empty slice rather than an error; callers
// should fall back to treating the batch as factual/worthy by default,
// matching the pipeline's own missing-review default.
func (c *WorthinessClient) PredictSentWorthiness(ctx context.Context, sentences []string) []worthiness.Prediction {
	if len(sentences) == 0 {
		return nil
	}
	var resp predictWorthinessResponse
	url := c.baseURL + "/predict_worthiness"
	if err := postJSON(ctx, c.doer, c.breaker, url, predictWorthinessRequest{Sentences: sentences}, &resp, nil); err != nil {
		logger.Warn("svcclient: predict worthiness failed", zap.Error(err))
		return []worthiness.Prediction{}
	}
	wcs := resp.WorthinessCheckedSentences
	return worthiness.MapPredictions(wcs.PredictedLabels, wcs.PredictionConfidences, wcs.SentenceIDs, wcs.Sentences)
}

// ReviewerBotInfo fetches the SentCheckWorthinessReviewer bot descriptor.
func (c *WorthinessClient) ReviewerBotInfo(ctx context.Context) (item.Item, error) {
	var out map[string]interface{}
	url := c.baseURL + "/worthiness_predictor"
	if err := getJSON(ctx, c.doer, c.breaker, url, &out, nil); err != nil {
		return nil, err
	}
	return item.Item(out), nil
}
