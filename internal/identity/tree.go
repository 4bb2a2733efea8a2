package identity

import (
	"fmt"
	"sort"

	"github.com/coinform/credserve/internal/registry"
)

// Item is the generic nested-map representation the identity engine walks.
// It mirrors internal/item.Item; kept as a separate alias so this package
// never has to import internal/item (which itself depends on this package
// for CalcStrHash), avoiding an import cycle.
type Item = map[string]interface{}

// noIdentTypes lists @type values that never get a synthesized identifier -
// they're either too generic (Thing, CreativeWork) or carry their identity
// some other way already (ClaimReview always has its own external url).
var noIdentTypes = map[string]bool{
	"MediaObject":         true,
	"Timing":              true,
	"schema:Language":     true,
	"Thing":               true,
	"schema:CreativeWork": true,
	"CreativeWork":        true,
	"nif:String":          true,
	"schema:Rating":       true,
	"schema:ClaimReview":  true,
	"ClaimReview":         true,
}

// noURLTypes extends noIdentTypes with types that never get a synthesized
// url either.
var noURLTypes = func() map[string]bool {
	m := make(map[string]bool, len(noIdentTypes)+2)
	for k := range noIdentTypes {
		m[k] = true
	}
	m["Dataset"] = true
	m["SentencePair"] = true
	return m
}()

func isDict(v interface{}) (Item, bool) {
	m, ok := v.(map[string]interface{})
	return m, ok
}

func isItem(v interface{}) (Item, bool) {
	m, ok := isDict(v)
	if !ok {
		return nil, false
	}
	if _, hasType := m["@type"]; !hasType {
		return nil, false
	}
	return m, true
}

func typeOf(d Item) string {
	t, _ := d["@type"].(string)
	return t
}

// GetItemIdentifiers returns item's identifying values in priority order:
// identifier, then @id, then url. Order matters - identifier is always
// preferred when more than one is present.
func GetItemIdentifiers(item Item) []string {
	var ids []string
	for _, key := range []string{"identifier", "@id", "url"} {
		if v, ok := item[key]; ok {
			if s, ok := v.(string); ok {
				ids = append(ids, s)
			}
		}
	}
	return ids
}

// HasIdentifier reports whether item carries any identifying field.
func HasIdentifier(item Item) bool {
	return len(GetItemIdentifiers(item)) > 0
}

// selectKeys returns the subset of item restricted to keys, in the order
// keys are given, dropping any key item doesn't have.
func selectKeys(item Item, keys []string) Item {
	out := make(Item, len(keys))
	for _, k := range keys {
		if v, ok := item[k]; ok {
			out[k] = v
		}
	}
	return out
}

// EnsureIdent returns a deep copy of tree where every item (and nested
// item) has an "identifier" field, computing one via CalcIdentifier for any
// item that lacks one and isn't in noIdentTypes.
func EnsureIdent(tree interface{}, r *registry.Registry) (interface{}, error) {
	switch v := tree.(type) {
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, it := range v {
			sub, err := EnsureIdent(it, r)
			if err != nil {
				return nil, err
			}
			out[i] = sub
		}
		return out, nil
	case map[string]interface{}:
		result := make(Item, len(v))
		for k, val := range v {
			sub, err := EnsureIdent(val, r)
			if err != nil {
				return nil, err
			}
			result[k] = sub
		}
		if _, ok := isItem(result); ok {
			if _, has := v["identifier"]; has {
				return result, nil
			}
			if noIdentTypes[typeOf(result)] {
				return result, nil
			}
			ident, err := CalcIdentifier(result, r)
			if err != nil {
				return nil, err
			}
			result["identifier"] = ident
			return result, nil
		}
		return result, nil
	default:
		return tree, nil
	}
}

// EnsureURL returns a deep copy of tree where every item that isn't in
// noURLTypes and doesn't already have a url field gets one synthesized from
// its registered route template.
func EnsureURL(tree interface{}, r *registry.Registry) (interface{}, error) {
	switch v := tree.(type) {
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, it := range v {
			sub, err := EnsureURL(it, r)
			if err != nil {
				return nil, err
			}
			out[i] = sub
		}
		return out, nil
	case map[string]interface{}:
		result := make(Item, len(v))
		for k, val := range v {
			sub, err := EnsureURL(val, r)
			if err != nil {
				return nil, err
			}
			result[k] = sub
		}
		if _, ok := isItem(result); ok {
			if _, has := v["url"]; has {
				return result, nil
			}
			if noURLTypes[typeOf(result)] {
				return result, nil
			}
			u, err := CalcItemURL(result, r)
			if err != nil {
				return nil, err
			}
			if u != "" {
				result["url"] = u
			}
			return result, nil
		}
		return result, nil
	default:
		return tree, nil
	}
}

// CalcIdentifier computes item's identifier from the registered ident_keys
// for its type. item must not already carry an identifier, and any nested
// item reachable through those keys must already carry one (EnsureIdent
// guarantees this by recursing depth-first before computing a parent's id).
func CalcIdentifier(item Item, r *registry.Registry) (string, error) {
	if _, has := item["identifier"]; has {
		return "", fmt.Errorf("identity: CalcIdentifier: item already has an identifier")
	}
	keys, ok := r.IdentKeys(typeOf(item))
	if !ok {
		return "", fmt.Errorf("identity: CalcIdentifier: type %q is not registered", typeOf(item))
	}
	toID, err := ItemWithRefs(selectKeys(item, keys), r)
	if err != nil {
		return "", err
	}
	toIDMap, ok := toID.(Item)
	if !ok {
		return "", fmt.Errorf("identity: CalcIdentifier: unexpected non-map result")
	}
	return HashDict(toIDMap), nil
}

// CalcItemURL computes item's url from its registered route template, or
// returns "" if the type has no route template (it's expected to already
// carry an external url).
func CalcItemURL(item Item, r *registry.Registry) (string, error) {
	tmpl, ok := r.RouteTemplate(typeOf(item))
	if !ok {
		return "", fmt.Errorf("identity: CalcItemURL: type %q is not registered", typeOf(item))
	}
	if tmpl == "" {
		return "", nil
	}
	return ciContext + formatRouteTemplate(tmpl, item), nil
}

const ciContext = "http://coinform.eu"

// formatRouteTemplate substitutes {field} placeholders in tmpl with the
// corresponding string value of item[field] - the Go equivalent of Python's
// str.format(**item).
func formatRouteTemplate(tmpl string, item Item) string {
	var out []byte
	i := 0
	for i < len(tmpl) {
		if tmpl[i] == '{' {
			end := i + 1
			for end < len(tmpl) && tmpl[end] != '}' {
				end++
			}
			if end < len(tmpl) {
				field := tmpl[i+1 : end]
				out = append(out, []byte(fmt.Sprintf("%v", item[field]))...)
				i = end + 1
				continue
			}
		}
		out = append(out, tmpl[i])
		i++
	}
	return string(out)
}

// ItemWithRefs returns a copy of item where every nested item value (as
// identified by the registry's itemref_keys, but detected structurally here
// by checking each value for an @type) is replaced by its first identifier,
// rather than the full expanded item.
func ItemWithRefs(item interface{}, r *registry.Registry) (interface{}, error) {
	m, ok := isDict(item)
	if !ok {
		return item, nil
	}
	result := make(Item, len(m))
	for k, v := range m {
		ref, err := valueAsRef(v, r)
		if err != nil {
			return nil, err
		}
		result[k] = ref
	}
	return result, nil
}

func valueAsRef(v interface{}, r *registry.Registry) (interface{}, error) {
	if arr, ok := v.([]interface{}); ok {
		out := make([]interface{}, len(arr))
		for i, sv := range arr {
			ref, err := valueAsRef(sv, r)
			if err != nil {
				return nil, err
			}
			out[i] = ref
		}
		return out, nil
	}
	if sub, ok := isItem(v); ok && !noIdentTypes[typeOf(sub)] {
		ids := GetItemIdentifiers(sub)
		if len(ids) == 0 {
			return nil, fmt.Errorf("identity: ItemWithRefs: nested item of type %q has no identifier", typeOf(sub))
		}
		return ids[0], nil
	}
	if sub, ok := isDict(v); ok {
		out := make(Item, len(sub))
		for k, sv := range sub {
			out[k] = sv
		}
		return out, nil
	}
	return v, nil
}

// ItemAndLinks splits item into a copy with every nested item replaced by
// nothing (dropped from the returned map) plus the list of {source, target,
// rel} links those nested items represent. compositeRels names keys whose
// values should never be decomposed into links (e.g. a field that legitimately
// holds an embedded, non-referential sub-document).
func ItemAndLinks(item Item, r *registry.Registry, compositeRels map[string]bool) (Item, []Link, error) {
	srcIDs := GetItemIdentifiers(item)
	if len(srcIDs) == 0 {
		return nil, nil, fmt.Errorf("identity: ItemAndLinks: item has no identifier")
	}
	srcID := srcIDs[0]

	out := make(Item, len(item))
	var links []Link
	for k, v := range item {
		if compositeRels[k] {
			out[k] = v
			continue
		}
		subLinks, isRef, err := valueAsLinks(v, srcID, k, r)
		if err != nil {
			return nil, nil, err
		}
		if isRef {
			links = append(links, subLinks...)
		} else {
			out[k] = v
		}
	}
	return out, links, nil
}

// Link is one edge in a decomposed item graph.
type Link struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Rel    string `json:"rel"`
}

func valueAsLinks(v interface{}, srcID, rel string, r *registry.Registry) ([]Link, bool, error) {
	if arr, ok := v.([]interface{}); ok {
		var links []Link
		any := false
		for _, sv := range arr {
			subLinks, isRef, err := valueAsLinks(sv, srcID, rel, r)
			if err != nil {
				return nil, false, err
			}
			if isRef {
				any = true
				links = append(links, subLinks...)
			}
		}
		return links, any, nil
	}
	if sub, ok := isItem(v); ok && !noIdentTypes[typeOf(sub)] {
		ids := GetItemIdentifiers(sub)
		if len(ids) == 0 {
			return nil, false, fmt.Errorf("identity: ItemAndLinks: nested item of type %q has no identifier", typeOf(sub))
		}
		return []Link{{Source: srcID, Target: ids[0], Rel: rel}}, true, nil
	}
	return nil, false, nil
}

// IndexIdentTree recursively walks tree, collecting every identifiable item
// (and sub-item) into a flat map of identifier -> item. compositeRels names
// keys whose values should not be recursed into. When uniqueIDIndex is true,
// only the first identifier of each item is used as an index key instead of
// every identifying field.
func IndexIdentTree(tree interface{}, compositeRels map[string]bool, uniqueIDIndex bool) (map[string]Item, error) {
	switch v := tree.(type) {
	case []interface{}:
		result := map[string]Item{}
		for _, it := range v {
			sub, err := IndexIdentTree(it, compositeRels, uniqueIDIndex)
			if err != nil {
				return nil, err
			}
			result = indexMerge(result, sub)
		}
		return result, nil
	case map[string]interface{}:
		result := map[string]Item{}
		for k, val := range v {
			if compositeRels[k] {
				continue
			}
			sub, err := IndexIdentTree(val, compositeRels, uniqueIDIndex)
			if err != nil {
				return nil, err
			}
			result = indexMerge(result, sub)
		}
		if _, ok := isItem(v); ok && !noIdentTypes[typeOf(v)] {
			ids := GetItemIdentifiers(v)
			if len(ids) == 0 {
				return nil, fmt.Errorf("identity: IndexIdentTree: cannot index an item without identifiers (type %q)", typeOf(v))
			}
			if uniqueIDIndex {
				ids = ids[:1]
			}
			for _, id := range ids {
				result = indexMerge(result, map[string]Item{id: v})
			}
		}
		return result, nil
	default:
		return map[string]Item{}, nil
	}
}

func indexMerge(a, b map[string]Item) map[string]Item {
	result := make(map[string]Item, len(a)+len(b))
	for k, v := range a {
		result[k] = v
	}
	for k, v := range b {
		if existing, dup := result[k]; dup {
			merged := make(Item, len(existing)+len(v))
			for kk, vv := range existing {
				merged[kk] = vv
			}
			for kk, vv := range v {
				merged[kk] = vv
			}
			result[k] = merged
		} else {
			result[k] = v
		}
	}
	return result
}

// TrimTree recursively removes prop at the given depth from every item in
// tree: depth 0 deletes prop wherever found, depth N recurses N levels into
// prop's value first. tree may be a single item or a list of items.
func TrimTree(tree interface{}, prop string, depth int) (interface{}, error) {
	if depth < 0 {
		return nil, fmt.Errorf("identity: TrimTree: depth %d must be non-negative", depth)
	}
	if arr, ok := tree.([]interface{}); ok {
		out := make([]interface{}, len(arr))
		for i, sub := range arr {
			trimmed, err := TrimTree(sub, prop, depth)
			if err != nil {
				return nil, err
			}
			out[i] = trimmed
		}
		return out, nil
	}
	m, ok := isItem(tree)
	if !ok {
		return tree, nil
	}
	if _, has := m[prop]; !has {
		return tree, nil
	}

	result := make(Item, len(m))
	for k, v := range m {
		result[k] = v
	}
	if depth == 0 {
		delete(result, prop)
		return result, nil
	}
	trimmed, err := TrimTree(result[prop], prop, depth-1)
	if err != nil {
		return nil, err
	}
	result[prop] = trimmed
	return result, nil
}

// BuildIndexTypeHisto returns a count of @type values across identIndex,
// sorted by descending count.
func BuildIndexTypeHisto(identIndex map[string]Item) []TypeCount {
	counts := map[string]int{}
	for _, v := range identIndex {
		t := typeOf(v)
		if t != "" {
			counts[t]++
		}
	}
	out := make([]TypeCount, 0, len(counts))
	for t, c := range counts {
		out = append(out, TypeCount{Type: t, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Type < out[j].Type
	})
	return out
}

// TypeCount is one entry of a BuildIndexTypeHisto result.
type TypeCount struct {
	Type  string
	Count int
}

// FilterIdentIndexByType returns the subset of identIndex whose items match
// any of qtypes.
func FilterIdentIndexByType(identIndex map[string]Item, qtypes []string) map[string]Item {
	out := map[string]Item{}
	for k, v := range identIndex {
		if _, ok := isItem(v); ok && itemMatchesType(v, qtypes) {
			out[k] = v
		}
	}
	return out
}

// PartitionIdentIndex splits identIndex into labeled partitions per
// partitionTypes (label -> list of @type names), with anything matching no
// partition going to the reserved "_rest" label. An item matching more than
// one partition's types goes to the first label encountered, in the
// iteration order of labels given.
func PartitionIdentIndex(identIndex map[string]Item, labels []string, partitionTypes map[string][]string) map[string]map[string]Item {
	result := make(map[string]map[string]Item, len(labels)+1)
	for _, l := range labels {
		result[l] = map[string]Item{}
	}
	result["_rest"] = map[string]Item{}

	for ident, it := range identIndex {
		if _, ok := isItem(it); !ok {
			continue
		}
		placed := false
		for _, l := range labels {
			if itemMatchesType(it, partitionTypes[l]) {
				result[l][ident] = it
				placed = true
				break
			}
		}
		if !placed {
			result["_rest"][ident] = it
		}
	}
	return result
}

func itemMatchesType(d Item, qtypes []string) bool {
	want := make(map[string]bool, len(qtypes))
	for _, q := range qtypes {
		want[q] = true
	}
	if want[typeOf(d)] {
		return true
	}
	if at, ok := d["additionalType"].([]string); ok {
		for _, t := range at {
			if want[t] {
				return true
			}
		}
	}
	if at, ok := d["additionalType"].([]interface{}); ok {
		for _, t := range at {
			if s, ok := t.(string); ok && want[s] {
				return true
			}
		}
	}
	return false
}

// NormaliseNestedItem converts tree into a flat identifier -> item index
// plus a "mainItem" entry naming the root's main identifier.
func NormaliseNestedItem(tree Item, r *registry.Registry, compositeRels map[string]bool) (map[string]interface{}, error) {
	identTree, err := EnsureIdent(tree, r)
	if err != nil {
		return nil, err
	}
	identTreeMap := identTree.(Item)
	index, err := IndexIdentTree(identTreeMap, compositeRels, false)
	if err != nil {
		return nil, err
	}

	result := make(map[string]interface{}, len(index)+1)
	for k, v := range index {
		withRefs, err := ItemWithRefs(v, r)
		if err != nil {
			return nil, err
		}
		result[k] = withRefs
	}
	ids := GetItemIdentifiers(identTreeMap)
	if len(ids) == 0 {
		return nil, fmt.Errorf("identity: NormaliseNestedItem: root item has no identifier")
	}
	result["mainItem"] = ids[0]
	return result, nil
}

// Graph is the node/link decomposition of a nested item tree, produced by
// NestedItemAsGraph.
type Graph struct {
	Context  string                   `json:"@context"`
	Type     string                   `json:"@type"`
	Nodes    []map[string]interface{} `json:"nodes"`
	Links    []Link                   `json:"links"`
	MainNode string                   `json:"mainNode"`
}

// NestedItemAsGraph converts tree into a deduplicated node/link graph: every
// distinct sub-item becomes one node, and every item-valued field becomes a
// link instead of a nested, repeated copy.
func NestedItemAsGraph(tree Item, r *registry.Registry, compositeRels map[string]bool, ensureURLs bool) (*Graph, error) {
	identTree, err := EnsureIdent(tree, r)
	if err != nil {
		return nil, err
	}
	identTreeMap := identTree.(Item)
	index, err := IndexIdentTree(identTreeMap, compositeRels, true)
	if err != nil {
		return nil, err
	}

	nodes := make([]map[string]interface{}, 0, len(index))
	var links []Link
	for _, v := range index {
		node, nodeLinks, err := ItemAndLinks(v, r, compositeRels)
		if err != nil {
			return nil, err
		}
		if ensureURLs {
			withURL, err := EnsureURL(node, r)
			if err != nil {
				return nil, err
			}
			node = withURL.(Item)
		}
		nodes = append(nodes, node)
		links = append(links, nodeLinks...)
	}

	ids := GetItemIdentifiers(identTreeMap)
	if len(ids) == 0 {
		return nil, fmt.Errorf("identity: NestedItemAsGraph: root item has no identifier")
	}

	return &Graph{
		Context:  ciContext,
		Type:     "Graph",
		Nodes:    nodes,
		Links:    links,
		MainNode: ids[0],
	}, nil
}
