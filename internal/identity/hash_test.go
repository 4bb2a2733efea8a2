package identity

import (
	"strings"
	"testing"
)

func TestCalcStrHashDeterministic(t *testing.T) {
	a := CalcStrHash("the sky is blue")
	b := CalcStrHash("the sky is blue")
	if a != b {
		t.Errorf("CalcStrHash() not deterministic: %q != %q", a, b)
	}
}

func TestCalcStrHashDiffersOnContent(t *testing.T) {
	a := CalcStrHash("the sky is blue")
	b := CalcStrHash("the sky is red")
	if a == b {
		t.Error("CalcStrHash() produced the same hash for different strings")
	}
}

func TestCalcStrHashNoPadding(t *testing.T) {
	h := CalcStrHash("x")
	for _, c := range h {
		if c == '=' {
			t.Errorf("CalcStrHash() = %q, want no '=' padding", h)
		}
	}
}

func TestCalcStrHashURLSafe(t *testing.T) {
	h := CalcStrHash("some text with / and + unsafe chars if not encoded properly")
	for _, c := range h {
		if c == '/' || c == '+' {
			t.Errorf("CalcStrHash() = %q, contains non-urlsafe character %q", h, c)
		}
	}
}

func TestHashDictDeterministic(t *testing.T) {
	d1 := map[string]interface{}{"b": 1.0, "a": "x"}
	d2 := map[string]interface{}{"a": "x", "b": 1.0}
	if HashDict(d1) != HashDict(d2) {
		t.Error("HashDict() should be order-independent over keys")
	}
}

func TestHashDictDiffersOnContent(t *testing.T) {
	d1 := map[string]interface{}{"a": "x"}
	d2 := map[string]interface{}{"a": "y"}
	if HashDict(d1) == HashDict(d2) {
		t.Error("HashDict() produced the same hash for different content")
	}
}

func TestWritePyJSONMatchesPythonSeparators(t *testing.T) {
	var b strings.Builder
	writePyJSON(&b, map[string]interface{}{"a": 1.0, "b": "x"})
	got := b.String()
	want := `{"a": 1, "b": "x"}`
	if got != want {
		t.Errorf("writePyJSON() = %q, want %q", got, want)
	}
}

func TestWritePyJSONNestedArray(t *testing.T) {
	var b strings.Builder
	writePyJSON(&b, map[string]interface{}{"xs": []interface{}{1.0, 2.0, 3.0}})
	got := b.String()
	want := `{"xs": [1, 2, 3]}`
	if got != want {
		t.Errorf("writePyJSON() = %q, want %q", got, want)
	}
}

func TestWritePyJSONEscapesUnicode(t *testing.T) {
	var b strings.Builder
	writePyJSON(&b, "café")
	got := b.String()
	want := "\"caf\\u00e9\""
	if got != want {
		t.Errorf("writePyJSON() = %q, want %q", got, want)
	}
}
