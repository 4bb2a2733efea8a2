package item

import "testing"

func TestAsSentenceWrapsText(t *testing.T) {
	s, err := AsSentence("the sky is blue", nil)
	if err != nil {
		t.Fatalf("AsSentence() error = %v", err)
	}
	if s["@type"] != "Sentence" {
		t.Errorf("AsSentence() @type = %v, want Sentence", s["@type"])
	}
	if s["text"] != "the sky is blue" {
		t.Errorf("AsSentence() text = %v", s["text"])
	}
	if s["identifier"] == "" || s["identifier"] == nil {
		t.Error("AsSentence() did not assign an identifier")
	}
}

func TestAsSentenceDeterministicIdentifier(t *testing.T) {
	a, err := AsSentence("the sky is blue", nil)
	if err != nil {
		t.Fatalf("AsSentence() error = %v", err)
	}
	b, err := AsSentence("the sky is blue", nil)
	if err != nil {
		t.Fatalf("AsSentence() error = %v", err)
	}
	if a["identifier"] != b["identifier"] {
		t.Error("AsSentence() identifier is not deterministic for identical text")
	}
}

func TestAsSentenceRejectsBadAppearance(t *testing.T) {
	if _, err := AsSentence("x", []interface{}{"not a url"}); err == nil {
		t.Error("AsSentence() error = nil, want error for non-URL appearance entry")
	}
}

func TestAsDBQSentPairOrdersTextAlphabetically(t *testing.T) {
	p1, err := AsDBQSentPair("b sentence", "a sentence", nil)
	if err != nil {
		t.Fatalf("AsDBQSentPair() error = %v", err)
	}
	p2, err := AsDBQSentPair("a sentence", "b sentence", nil)
	if err != nil {
		t.Fatalf("AsDBQSentPair() error = %v", err)
	}
	if p1["identifier"] != p2["identifier"] {
		t.Error("AsDBQSentPair() identifier should be the same regardless of argument order")
	}
	if p1["text"] != p2["text"] {
		t.Error("AsDBQSentPair() text should be the same regardless of argument order")
	}
}

func TestStrAsWebsiteFromURL(t *testing.T) {
	w, err := StrAsWebsite("https://example.com/some/path")
	if err != nil {
		t.Fatalf("StrAsWebsite() error = %v", err)
	}
	if w["@type"] != "WebSite" {
		t.Errorf("StrAsWebsite() @type = %v", w["@type"])
	}
	if w["name"] != "example.com" {
		t.Errorf("StrAsWebsite() name = %v, want example.com", w["name"])
	}
	if w["identifier"] != w["url"] {
		t.Error("StrAsWebsite() identifier should equal url")
	}
}

func TestStrAsWebsiteFromDomain(t *testing.T) {
	w, err := StrAsWebsite("example.com")
	if err != nil {
		t.Fatalf("StrAsWebsite() error = %v", err)
	}
	if w["url"] != "http://example.com/" {
		t.Errorf("StrAsWebsite() url = %v", w["url"])
	}
	if w["name"] != "example.com" {
		t.Errorf("StrAsWebsite() name = %v", w["name"])
	}
}

func TestStrAsWebsiteRejectsEmpty(t *testing.T) {
	if _, err := StrAsWebsite(""); err == nil {
		t.Error("StrAsWebsite() error = nil, want error for empty input")
	}
}

func TestTryFixURLRepairsBadScheme(t *testing.T) {
	got := TryFixURL("http:/example.com/a/b")
	want := "http://example.com/a/b"
	if got != want {
		t.Errorf("TryFixURL() = %q, want %q", got, want)
	}
}

func TestTryFixURLLeavesValidURLAlone(t *testing.T) {
	u := "https://example.com/a/b"
	if got := TryFixURL(u); got != u {
		t.Errorf("TryFixURL() = %q, want unchanged %q", got, u)
	}
}

func TestDomainFromURL(t *testing.T) {
	got := DomainFromURL("https://example.com/a/b?x=1")
	if got != "example.com" {
		t.Errorf("DomainFromURL() = %q, want example.com", got)
	}
}

func TestDomainFromURLUnwrapsArchiveOrg(t *testing.T) {
	got := DomainFromURL("https://web.archive.org/web/20200101000000/https://example.com/a")
	if got != "example.com" {
		t.Errorf("DomainFromURL() = %q, want example.com", got)
	}
}

func TestDomainFromURLEmpty(t *testing.T) {
	if got := DomainFromURL(""); got != "" {
		t.Errorf("DomainFromURL(\"\") = %q, want empty", got)
	}
}
