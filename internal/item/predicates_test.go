package item

import "testing"

func TestIsItem(t *testing.T) {
	if !IsItem(Item{"@type": "Sentence"}) {
		t.Error("IsItem() = false for a map with @type")
	}
	if IsItem(Item{"text": "no type"}) {
		t.Error("IsItem() = true for a map without @type")
	}
	if IsItem("not a map") {
		t.Error("IsItem() = true for a non-map value")
	}
}

func TestIsTweetDoc(t *testing.T) {
	if !IsTweetDoc(Item{"@type": "Tweet"}) {
		t.Error("IsTweetDoc() = false for Tweet")
	}
	if !IsTweetDoc(Item{"@type": "SocialMediaPosting"}) {
		t.Error("IsTweetDoc() = false for SocialMediaPosting")
	}
	if IsTweetDoc(Item{"@type": "Article"}) {
		t.Error("IsTweetDoc() = true for Article")
	}
}

func TestIsArticleDoc(t *testing.T) {
	if !IsArticleDoc(Item{"@type": "Article"}) {
		t.Error("IsArticleDoc() = false for Article")
	}
	if !IsArticleDoc(Item{"@type": "Webpage"}) {
		t.Error("IsArticleDoc() = false for Webpage")
	}
}

func TestIsSentence(t *testing.T) {
	if !IsSentence(Item{"@type": "Sentence"}) {
		t.Error("IsSentence() = false for Sentence")
	}
	if !IsSentence(Item{"@type": "Claim"}) {
		t.Error("IsSentence() = false for Claim")
	}
	if IsSentence(Item{"@type": "Article"}) {
		t.Error("IsSentence() = true for Article")
	}
}

func TestIsRating(t *testing.T) {
	for _, ty := range []string{"Rating", "AggregateRating", "schema:Rating"} {
		if !IsRating(Item{"@type": ty}) {
			t.Errorf("IsRating() = false for %s", ty)
		}
	}
	if IsRating(Item{"@type": "Review"}) {
		t.Error("IsRating() = true for Review")
	}
}

func TestIsReviewViaAdditionalType(t *testing.T) {
	d := Item{"@type": "DBSentCredReview", "additionalType": []string{"CredibilityReview", "Review"}}
	if !IsReview(d) {
		t.Error("IsReview() = false for item with Review in additionalType")
	}
}

func TestIsReviewDirect(t *testing.T) {
	if !IsReview(Item{"@type": "Review"}) {
		t.Error("IsReview() = false for @type Review")
	}
}

func TestIsReviewFalse(t *testing.T) {
	if IsReview(Item{"@type": "Sentence"}) {
		t.Error("IsReview() = true for Sentence")
	}
}

func TestIsClaimReview(t *testing.T) {
	if !IsClaimReview(Item{"@type": "ClaimReview"}) {
		t.Error("IsClaimReview() = false for ClaimReview")
	}
	if !IsClaimReview(Item{"@type": "schema:ClaimReview"}) {
		t.Error("IsClaimReview() = false for schema:ClaimReview")
	}
}

func TestIsURL(t *testing.T) {
	cases := map[string]bool{
		"https://example.com/a":  true,
		"http://example.com":     true,
		"example.com":            false,
		"":                       false,
		"not a url at all here":  false,
		"ftp://files.example.com": true,
	}
	for in, want := range cases {
		if got := IsURL(in); got != want {
			t.Errorf("IsURL(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestItemMatchesType(t *testing.T) {
	d := Item{"@type": "DBSentCredReview", "additionalType": []string{"CredibilityReview", "Review"}}
	if !ItemMatchesType(d, []string{"Review"}) {
		t.Error("ItemMatchesType() = false, want true via additionalType")
	}
	if !ItemMatchesType(d, []string{"DBSentCredReview"}) {
		t.Error("ItemMatchesType() = false, want true via @type")
	}
	if ItemMatchesType(d, []string{"Sentence"}) {
		t.Error("ItemMatchesType() = true, want false")
	}
}

func TestEmpty(t *testing.T) {
	if !Empty("") {
		t.Error("Empty(\"\") = false")
	}
	if Empty("x") {
		t.Error("Empty(\"x\") = true")
	}
}
