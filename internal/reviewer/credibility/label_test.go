package credibility

import "testing"

func TestRatingLabelBelowConfidenceThreshold(t *testing.T) {
	got, err := RatingLabel(1.0, 0.5, DefaultConfidenceThreshold)
	if err != nil {
		t.Fatalf("RatingLabel() error = %v", err)
	}
	if got != "not verifiable" {
		t.Errorf("RatingLabel() = %q, want \"not verifiable\"", got)
	}
}

func TestRatingLabelBuckets(t *testing.T) {
	cases := []struct {
		val  float64
		want string
	}{
		{1.0, "credible"},
		{0.5, "credible"},
		{0.3, "mostly credible"},
		{0.0, "uncertain"},
		{-0.3, "mostly not credible"},
		{-1.0, "not credible"},
	}
	for _, c := range cases {
		got, err := RatingLabel(c.val, 1.0, DefaultConfidenceThreshold)
		if err != nil {
			t.Fatalf("RatingLabel(%v) error = %v", c.val, err)
		}
		if got != c.want {
			t.Errorf("RatingLabel(%v) = %q, want %q", c.val, got, c.want)
		}
	}
}

func TestRatingLabelRejectsOutOfRange(t *testing.T) {
	if _, err := RatingLabel(1.5, 1.0, DefaultConfidenceThreshold); err == nil {
		t.Error("RatingLabel() error = nil, want error for out-of-range ratingValue")
	}
}
