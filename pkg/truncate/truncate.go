// FILE: pkg/truncate/truncate.go
// PURPOSE: Budget-constrained JSON truncation that keeps whole, query-relevant items

package truncate

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// maxDiscoveryDepth bounds how far below the root the item array is searched.
const maxDiscoveryDepth = 2

// ArrayWrapperKeys are tried, in order, before any other array-valued key.
var ArrayWrapperKeys = []string{
	"data", "results", "items", "products", "restaurants", "menu", "dishes",
	"menu_items", "listings", "options", "addresses", "slots", "cart_items",
}

// SearchableFields are matched against query terms when scoring items.
var SearchableFields = []string{
	"name", "title", "brand", "description", "category", "cuisine", "cuisines",
	"locality", "area", "areaName", "tags", "itemType", "type",
	"info.name", "info.cuisines", "info.locality", "info.areaName",
}

// SmartTruncateJSONContent shrinks jsonText to at most maxChars bytes. When
// the document holds an item array, whole items are kept in query-relevance
// order and written back in their original order so the output stays valid
// JSON of the same shape. Anything else falls back to a prefix cut.
func SmartTruncateJSONContent(jsonText string, queryTerms []string, maxChars int) string {
	if maxChars <= 0 {
		return ""
	}
	if len(jsonText) <= maxChars {
		return jsonText
	}
	if !gjson.Valid(jsonText) {
		return PrefixSlice(jsonText, maxChars)
	}

	terms := normalizeTerms(queryTerms)
	for _, c := range discoverArrays(jsonText) {
		if out, ok := packInto(jsonText, c, terms, maxChars); ok {
			return out
		}
	}
	return PrefixSlice(jsonText, maxChars)
}

// packInto rewrites the array at c.path with the best-ranked items that fit.
// It reports false when not even one item fits under maxChars.
func packInto(doc string, c candidate, terms []string, maxChars int) (string, bool) {
	if len(c.items) == 0 {
		return "", false
	}
	base, err := replaceArray(doc, c.path, "[]")
	if err != nil {
		return "", false
	}
	selected := pack(c.items, rankItems(c.items, terms), maxChars-len(base))
	if len(selected) == 0 {
		return "", false
	}

	raws := make([]string, len(selected))
	for i, idx := range selected {
		raws[i] = c.items[idx].Raw
	}
	out, err := replaceArray(doc, c.path, "["+strings.Join(raws, ",")+"]")
	if err != nil || len(out) > maxChars {
		return "", false
	}
	return out, true
}

// PrefixSlice cuts s to at most maxBytes without splitting a UTF-8 rune.
func PrefixSlice(s string, maxBytes int) string {
	if maxBytes <= 0 {
		return ""
	}
	if len(s) <= maxBytes {
		return s
	}
	cut := maxBytes
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// ============================================================
// ARRAY DISCOVERY
// ============================================================

type candidate struct {
	path  string
	items []gjson.Result
}

// discoverArrays lists the arrays that may hold the items, most likely
// first: the root itself, wrapper keys at the top level, wrapper keys one
// level down (data.items), then any array of objects at either depth. The
// empty path means the root is the array.
func discoverArrays(doc string) []candidate {
	root := gjson.Parse(doc)
	if root.IsArray() {
		return []candidate{{path: "", items: root.Array()}}
	}
	if !root.IsObject() {
		return nil
	}

	var (
		out  []candidate
		seen = make(map[string]bool)
	)
	add := func(path string, v gjson.Result) {
		if !seen[path] {
			seen[path] = true
			out = append(out, candidate{path: path, items: v.Array()})
		}
	}

	var nested []nestedObject
	for _, key := range ArrayWrapperKeys {
		if v := root.Get(escapeKey(key)); v.IsArray() {
			add(joinPath("", key), v)
		} else if v.IsObject() {
			nested = append(nested, nestedObject{joinPath("", key), v})
		}
	}
	root.ForEach(func(key, value gjson.Result) bool {
		if value.IsObject() && !isWrapperKey(key.String()) {
			nested = append(nested, nestedObject{joinPath("", key.String()), value})
		}
		return true
	})
	if maxDiscoveryDepth > 1 {
		for _, n := range nested {
			for _, key := range ArrayWrapperKeys {
				if v := n.value.Get(escapeKey(key)); v.IsArray() {
					add(joinPath(n.path, key), v)
				}
			}
		}
	}

	root.ForEach(func(key, value gjson.Result) bool {
		if isObjectArray(value) {
			add(joinPath("", key.String()), value)
		}
		return true
	})
	if maxDiscoveryDepth > 1 {
		for _, n := range nested {
			n.value.ForEach(func(key, value gjson.Result) bool {
				if isObjectArray(value) {
					add(joinPath(n.path, key.String()), value)
				}
				return true
			})
		}
	}
	return out
}

type nestedObject struct {
	path  string
	value gjson.Result
}

func isWrapperKey(key string) bool {
	for _, k := range ArrayWrapperKeys {
		if k == key {
			return true
		}
	}
	return false
}

func isObjectArray(v gjson.Result) bool {
	if !v.IsArray() {
		return false
	}
	arr := v.Array()
	if len(arr) == 0 {
		return false
	}
	for _, el := range arr {
		if !el.IsObject() {
			return false
		}
	}
	return true
}

func replaceArray(doc, path, raw string) (string, error) {
	if path == "" {
		return raw, nil
	}
	return sjson.SetRaw(doc, path, raw)
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return escapeKey(key)
	}
	return prefix + "." + escapeKey(key)
}

var pathEscaper = strings.NewReplacer(`\`, `\\`, ".", `\.`, "*", `\*`, "?", `\?`, "|", `\|`, "#", `\#`, "@", `\@`)

// escapeKey quotes gjson/sjson path metacharacters in a literal key.
func escapeKey(key string) string {
	return pathEscaper.Replace(key)
}

// ============================================================
// SCORING AND PACKING
// ============================================================

func normalizeTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// ItemScore counts occurrences of terms across the searchable fields of one
// raw JSON item.
func ItemScore(item gjson.Result, terms []string) int {
	if len(terms) == 0 || !item.IsObject() {
		return 0
	}
	var sb strings.Builder
	for _, field := range SearchableFields {
		v := item.Get(field)
		switch {
		case !v.Exists():
			continue
		case v.IsArray():
			for _, el := range v.Array() {
				sb.WriteString(el.String())
				sb.WriteByte(' ')
			}
		default:
			sb.WriteString(v.String())
			sb.WriteByte(' ')
		}
	}
	text := strings.ToLower(sb.String())

	score := 0
	for _, t := range terms {
		score += strings.Count(text, t)
	}
	return score
}

// rankItems returns item indices by descending score; ties keep input order.
func rankItems(items []gjson.Result, terms []string) []int {
	scores := make([]int, len(items))
	order := make([]int, len(items))
	for i, it := range items {
		scores[i] = ItemScore(it, terms)
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		if scores[order[a]] != scores[order[b]] {
			return scores[order[a]] > scores[order[b]]
		}
		return order[a] < order[b]
	})
	return order
}

// pack greedily admits items in rank order while they fit budget, skipping
// any that would overflow it. The result is in original order.
func pack(items []gjson.Result, order []int, budget int) []int {
	var selected []int
	used := 0
	for _, idx := range order {
		cost := len(items[idx].Raw)
		if len(selected) > 0 {
			cost++ // comma
		}
		if used+cost > budget {
			continue
		}
		used += cost
		selected = append(selected, idx)
	}
	sort.Ints(selected)
	return selected
}
