package svcclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPredictSentWorthinessParsesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"worthiness_checked_sentences":{
			"predicted_labels":["CFS","NFS"],
			"prediction_confidences":[0.9,0.6],
			"sentence_ids":["1","2"],
			"sentences":["the earth is round","buy now"]
		}}`))
	}))
	defer srv.Close()

	c := NewWorthinessClient(srv.URL)
	preds := c.PredictSentWorthiness(context.Background(), []string{"the earth is round", "buy now"})
	if len(preds) != 2 {
		t.Fatalf("len(preds) = %d, want 2", len(preds))
	}
	if preds[0].Label != "CFS" || preds[1].Label != "NFS" {
		t.Errorf("preds = %+v", preds)
	}
}

func TestPredictSentWorthinessEmptyInput(t *testing.T) {
	c := NewWorthinessClient("http://unused.invalid")
	preds := c.PredictSentWorthiness(context.Background(), nil)
	if preds != nil {
		t.Errorf("preds = %v, want nil for empty input", preds)
	}
}

func TestPredictSentWorthinessDegradesOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewWorthinessClient(srv.URL)
	preds := c.PredictSentWorthiness(context.Background(), []string{"x"})
	if preds == nil || len(preds) != 0 {
		t.Errorf("preds = %v, want empty non-nil slice", preds)
	}
}
