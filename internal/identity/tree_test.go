package identity

import (
	"testing"

	"github.com/coinform/credserve/internal/registry"
)

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	r := registry.New()
	if err := registry.RegisterDefaults(r); err != nil {
		t.Fatalf("registry.RegisterDefaults() error = %v", err)
	}
	return r
}

func TestEnsureIdentAssignsMissingIdentifier(t *testing.T) {
	r := testRegistry(t)
	sent := Item{"@type": "Sentence", "text": "the sky is blue"}

	out, err := EnsureIdent(sent, r)
	if err != nil {
		t.Fatalf("EnsureIdent() error = %v", err)
	}
	got := out.(Item)
	if _, ok := got["identifier"]; !ok {
		t.Error("EnsureIdent() did not assign an identifier")
	}
}

func TestEnsureIdentIsIdempotent(t *testing.T) {
	r := testRegistry(t)
	sent := Item{"@type": "Sentence", "text": "the sky is blue"}

	out1, err := EnsureIdent(sent, r)
	if err != nil {
		t.Fatalf("EnsureIdent() error = %v", err)
	}
	out2, err := EnsureIdent(out1, r)
	if err != nil {
		t.Fatalf("EnsureIdent() second pass error = %v", err)
	}

	id1 := out1.(Item)["identifier"]
	id2 := out2.(Item)["identifier"]
	if id1 != id2 {
		t.Errorf("EnsureIdent() not idempotent: %v != %v", id1, id2)
	}
}

func TestEnsureIdentPreservesExistingIdentifier(t *testing.T) {
	r := testRegistry(t)
	sent := Item{"@type": "Sentence", "text": "x", "identifier": "keep-me"}

	out, err := EnsureIdent(sent, r)
	if err != nil {
		t.Fatalf("EnsureIdent() error = %v", err)
	}
	if out.(Item)["identifier"] != "keep-me" {
		t.Errorf("EnsureIdent() overwrote an existing identifier")
	}
}

func TestEnsureIdentSkipsNoIdentTypes(t *testing.T) {
	r := testRegistry(t)
	cw := Item{"@type": "CreativeWork", "name": "untyped thing"}

	out, err := EnsureIdent(cw, r)
	if err != nil {
		t.Fatalf("EnsureIdent() error = %v", err)
	}
	if _, ok := out.(Item)["identifier"]; ok {
		t.Error("EnsureIdent() assigned an identifier to a no-ident type")
	}
}

func TestEnsureIdentRecursesIntoNestedItems(t *testing.T) {
	r := testRegistry(t)
	tree := Item{
		"@type": "AggQSentCredReview",
		"itemReviewed": Item{
			"@type": "Sentence",
			"text":  "nested sentence",
		},
	}

	out, err := EnsureIdent(tree, r)
	if err != nil {
		t.Fatalf("EnsureIdent() error = %v", err)
	}
	nested := out.(Item)["itemReviewed"].(Item)
	if _, ok := nested["identifier"]; !ok {
		t.Error("EnsureIdent() did not assign an identifier to a nested item")
	}
}

func TestCalcIdentifierDeterministic(t *testing.T) {
	r := testRegistry(t)
	sent := Item{"@type": "Sentence", "text": "the sky is blue"}

	id1, err := CalcIdentifier(sent, r)
	if err != nil {
		t.Fatalf("CalcIdentifier() error = %v", err)
	}
	id2, err := CalcIdentifier(sent, r)
	if err != nil {
		t.Fatalf("CalcIdentifier() error = %v", err)
	}
	if id1 != id2 {
		t.Errorf("CalcIdentifier() not deterministic: %q != %q", id1, id2)
	}
}

func TestCalcIdentifierRejectsExisting(t *testing.T) {
	r := testRegistry(t)
	sent := Item{"@type": "Sentence", "text": "x", "identifier": "already-set"}
	if _, err := CalcIdentifier(sent, r); err == nil {
		t.Error("CalcIdentifier() error = nil, want error for item with existing identifier")
	}
}

func TestCalcItemURLSynthesizesFromTemplate(t *testing.T) {
	r := testRegistry(t)
	sent := Item{"@type": "Sentence", "text": "x", "identifier": "abc123"}

	u, err := CalcItemURL(sent, r)
	if err != nil {
		t.Fatalf("CalcItemURL() error = %v", err)
	}
	want := "http://coinform.eu/sentence/abc123"
	if u != want {
		t.Errorf("CalcItemURL() = %q, want %q", u, want)
	}
}

func TestCalcItemURLEmptyForNoTemplate(t *testing.T) {
	r := testRegistry(t)
	cr := Item{"@type": "schema:ClaimReview", "url": "https://example.com/review"}

	u, err := CalcItemURL(cr, r)
	if err != nil {
		t.Fatalf("CalcItemURL() error = %v", err)
	}
	if u != "" {
		t.Errorf("CalcItemURL() = %q, want empty", u)
	}
}

func TestItemWithRefsReplacesNestedItems(t *testing.T) {
	r := testRegistry(t)
	tree := Item{
		"@type": "AggQSentCredReview",
		"itemReviewed": Item{
			"@type":      "Sentence",
			"text":       "x",
			"identifier": "sent-1",
		},
	}

	out, err := ItemWithRefs(tree, r)
	if err != nil {
		t.Fatalf("ItemWithRefs() error = %v", err)
	}
	got := out.(Item)["itemReviewed"]
	if got != "sent-1" {
		t.Errorf("ItemWithRefs() itemReviewed = %v, want the identifier string", got)
	}
}

func TestItemWithRefsErrorsOnMissingIdentifier(t *testing.T) {
	r := testRegistry(t)
	tree := Item{
		"@type":        "AggQSentCredReview",
		"itemReviewed": Item{"@type": "Sentence", "text": "x"},
	}
	if _, err := ItemWithRefs(tree, r); err == nil {
		t.Error("ItemWithRefs() error = nil, want error for nested item with no identifier")
	}
}

func TestIndexIdentTreeFlattensNestedItems(t *testing.T) {
	r := testRegistry(t)
	tree := Item{
		"@type": "AggQSentCredReview",
		"itemReviewed": Item{
			"@type": "Sentence",
			"text":  "x",
		},
	}

	identTree, err := EnsureIdent(tree, r)
	if err != nil {
		t.Fatalf("EnsureIdent() error = %v", err)
	}

	idx, err := IndexIdentTree(identTree, nil, false)
	if err != nil {
		t.Fatalf("IndexIdentTree() error = %v", err)
	}

	rootID := identTree.(Item)["identifier"].(string)
	nestedID := identTree.(Item)["itemReviewed"].(Item)["identifier"].(string)

	if _, ok := idx[rootID]; !ok {
		t.Error("IndexIdentTree() missing root item")
	}
	if _, ok := idx[nestedID]; !ok {
		t.Error("IndexIdentTree() missing nested item")
	}
}

func TestIndexIdentTreeRespectsCompositeRels(t *testing.T) {
	r := testRegistry(t)
	tree := Item{
		"@type": "AggQSentCredReview",
		"itemReviewed": Item{
			"@type": "Sentence",
			"text":  "x",
		},
	}
	identTree, err := EnsureIdent(tree, r)
	if err != nil {
		t.Fatalf("EnsureIdent() error = %v", err)
	}

	idx, err := IndexIdentTree(identTree, map[string]bool{"itemReviewed": true}, false)
	if err != nil {
		t.Fatalf("IndexIdentTree() error = %v", err)
	}

	nestedID := identTree.(Item)["itemReviewed"].(Item)["identifier"].(string)
	if _, ok := idx[nestedID]; ok {
		t.Error("IndexIdentTree() indexed a composite-rel nested item that should have been skipped")
	}
}

func TestTrimTreeDeletesAtDepthZero(t *testing.T) {
	tree := Item{
		"@type": "Sentence",
		"text":  "x",
		"appearance": Item{
			"@type": "Article",
			"url":   "https://example.com",
		},
	}
	out, err := TrimTree(tree, "appearance", 0)
	if err != nil {
		t.Fatalf("TrimTree() error = %v", err)
	}
	if _, ok := out.(Item)["appearance"]; ok {
		t.Error("TrimTree() depth 0 did not delete the property")
	}
}

func TestTrimTreeLeavesUnrelatedPropertiesAlone(t *testing.T) {
	tree := Item{"@type": "Sentence", "text": "x"}
	out, err := TrimTree(tree, "appearance", 0)
	if err != nil {
		t.Fatalf("TrimTree() error = %v", err)
	}
	if out.(Item)["text"] != "x" {
		t.Error("TrimTree() modified an item that doesn't have the trimmed property")
	}
}

func TestTrimTreeRejectsNegativeDepth(t *testing.T) {
	tree := Item{"@type": "Sentence", "text": "x"}
	if _, err := TrimTree(tree, "appearance", -1); err == nil {
		t.Error("TrimTree() error = nil, want error for negative depth")
	}
}

func TestBuildIndexTypeHistoSortsDescending(t *testing.T) {
	idx := map[string]Item{
		"a": {"@type": "Sentence"},
		"b": {"@type": "Sentence"},
		"c": {"@type": "Article"},
	}
	histo := BuildIndexTypeHisto(idx)
	if len(histo) != 2 || histo[0].Type != "Sentence" || histo[0].Count != 2 {
		t.Errorf("BuildIndexTypeHisto() = %+v", histo)
	}
}

func TestPartitionIdentIndexRest(t *testing.T) {
	idx := map[string]Item{
		"a": {"@type": "Sentence"},
		"b": {"@type": "Article"},
	}
	parts := PartitionIdentIndex(idx, []string{"sentences"}, map[string][]string{
		"sentences": {"Sentence"},
	})
	if _, ok := parts["sentences"]["a"]; !ok {
		t.Error("PartitionIdentIndex() did not place Sentence into its partition")
	}
	if _, ok := parts["_rest"]["b"]; !ok {
		t.Error("PartitionIdentIndex() did not place unmatched item into _rest")
	}
}

func TestGetItemIdentifiersPrefersIdentifierOverURL(t *testing.T) {
	item := Item{"@type": "Sentence", "identifier": "ident-1", "url": "https://example.com"}
	ids := GetItemIdentifiers(item)
	if len(ids) == 0 || ids[0] != "ident-1" {
		t.Errorf("GetItemIdentifiers() = %v, want identifier first", ids)
	}
}

func TestHasIdentifier(t *testing.T) {
	if HasIdentifier(Item{"@type": "Sentence"}) {
		t.Error("HasIdentifier() = true for item with no identifying field")
	}
	if !HasIdentifier(Item{"@type": "Sentence", "url": "https://example.com"}) {
		t.Error("HasIdentifier() = false for item with a url")
	}
}
