// Package worthiness turns raw check-worthiness model predictions into
// SentCheckWorthinessReview items.
package worthiness

import (
	"fmt"

	"github.com/coinform/credserve/internal/identity"
	"github.com/coinform/credserve/internal/isodate"
	"github.com/coinform/credserve/internal/item"
)

const ciContext = "http://coinform.eu"

var identKeys = []string{"@type", "dateCreated", "author", "itemReviewed", "reviewRating"}

// Prediction is a single check-worthiness model prediction for one sentence,
// already decoded from the worthiness service's batched response shape
// (parallel predicted_labels/prediction_confidences/sentence_ids/sentences
// arrays zipped together).
type Prediction struct {
	Label      string // raw model label, e.g. "CFS"
	Confidence float64
	Sentence   string
	ID         string
}

// MapPredictions zips a batched worthiness-service response into one
// Prediction per sentence.
func MapPredictions(labels []string, confidences []float64, sentenceIDs, sentences []string) []Prediction {
	n := len(labels)
	preds := make([]Prediction, 0, n)
	for i := 0; i < n; i++ {
		preds = append(preds, Prediction{
			Label:      labels[i],
			Confidence: confidences[i],
			Sentence:   sentences[i],
			ID:         sentenceIDs[i],
		})
	}
	return preds
}

// WorthVal maps the model's raw two-class label onto the reviewer's
// human-readable rating value. CFS ("check-factual-statement") is the only
// label that means the sentence is worth checking.
func WorthVal(label string) string {
	if label == "CFS" {
		return "worthy"
	}
	return "unworthy"
}

// BuildReview converts a single prediction into a SentCheckWorthinessReview,
// computing its content-addressable identifier over the review's ident keys.
func BuildReview(pred Prediction, reviewer item.Item) (item.Item, error) {
	ratingValue := WorthVal(pred.Label)
	reviewed, err := item.AsSentence(pred.Sentence, nil)
	if err != nil {
		return nil, err
	}

	result := item.Item{
		"@context":       ciContext,
		"@type":          "SentCheckWorthinessReview",
		"additionalType": []string{"CheckWorthinessReview", "Review"},
		"reviewAspect":   "checkworthiness",
		"itemReviewed":   reviewed,
		"reviewRating": item.Item{
			"@type":             "Rating",
			"reviewAspect":      "checkworthiness",
			"ratingValue":       ratingValue,
			"confidence":        pred.Confidence,
			"ratingExplanation": ratingExplanation(ratingValue, pred.Sentence),
		},
		"dateCreated": isodate.NowUTCTimestamp(),
		"author":      reviewer,
	}

	selected := item.Item{}
	for _, k := range identKeys {
		if v, ok := result[k]; ok {
			selected[k] = v
		}
	}
	result["identifier"] = identity.HashDict(selected)
	return result, nil
}

func ratingExplanation(ratingValue, sentence string) string {
	if ratingValue == "worthy" {
		return fmt.Sprintf("Sentence **%s** seems like a factual sentence worth checking.", sentence)
	}
	return fmt.Sprintf("Sentence **%s** seems like it's not a factual statement; and if it is, it doesn't seem worth checking.", sentence)
}
