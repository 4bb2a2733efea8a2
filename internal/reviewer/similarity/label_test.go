package similarity

import "testing"

func TestSimilarityStrBuckets(t *testing.T) {
	cases := []struct {
		val  float64
		want string
	}{
		{0.95, "very similar"},
		{0.8, "similar"},
		{0.65, "vaguely related"},
		{0.1, "not so similar"},
	}
	for _, c := range cases {
		if got := SimilarityStr(c.val); got != c.want {
			t.Errorf("SimilarityStr(%v) = %q, want %q", c.val, got, c.want)
		}
	}
}

func TestClaimRelStrNoStance(t *testing.T) {
	got := ClaimRelStr(0.95, "")
	want := "is very similar to"
	if got != want {
		t.Errorf("ClaimRelStr() = %q, want %q", got, want)
	}
}

func TestClaimRelStrAgreeDisagree(t *testing.T) {
	if got := ClaimRelStr(0.5, "agree"); got != "agrees with" {
		t.Errorf("ClaimRelStr(agree) = %q", got)
	}
	if got := ClaimRelStr(0.5, "disagree"); got != "disagrees with" {
		t.Errorf("ClaimRelStr(disagree) = %q", got)
	}
}

func TestClaimRelStrUnrelated(t *testing.T) {
	if got := ClaimRelStr(0.5, "unrelated"); got != "is similar(?) but unrelated to" {
		t.Errorf("ClaimRelStr(unrelated) = %q", got)
	}
}

func TestClaimRelStrDiscuss(t *testing.T) {
	got := ClaimRelStr(0.8, "discuss")
	want := "is similar to and discussed by"
	if got != want {
		t.Errorf("ClaimRelStr(discuss) = %q, want %q", got, want)
	}
}
