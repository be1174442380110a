// FILE: pkg/unwrap/unwrap.go
// PURPOSE: Turn raw tool-result content into plain decoded values

package unwrap

import (
	"encoding/json"
	"strings"

	"ai-shopping-be/pkg/jsonval"
)

// MaxDepth bounds how many wrapper keys ExtractPayload descends through.
const MaxDepth = 2

// WrapperKeys are envelope fields descended through, in priority order.
var WrapperKeys = []string{
	"data", "results", "items", "products", "restaurants", "menu", "dishes",
	"addresses", "cart", "cart_items", "slots", "menu_items", "menu_categories",
	"listings", "options",
}

// categoryItemKeys hold the nested item list of a menu category.
var categoryItemKeys = []string{"items", "dishes", "itemCards", "products"}

// TextBlock is an MCP-style content block.
type TextBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Content converts raw tool content into a decoded value. JSON strings and
// text-block arrays are parsed; structured values pass through untouched.
// Parse failures return the original string.
func Content(raw any) any {
	switch v := raw.(type) {
	case string:
		return parseText(v)
	case []TextBlock:
		parts := make([]string, 0, len(v))
		for _, b := range v {
			if b.Type == "text" {
				parts = append(parts, b.Text)
			}
		}
		return parseText(strings.Join(parts, "\n"))
	case []any:
		if text, ok := joinTextBlocks(v); ok {
			return parseText(text)
		}
		return v
	}
	return raw
}

// Payload unwraps content and then extracts the inner payload.
func Payload(raw any) any {
	return ExtractPayload(Content(raw), 0)
}

// ExtractPayload descends through known wrapper keys until it reaches an
// array, a value with no wrapper key, or MaxDepth.
func ExtractPayload(value any, depth int) any {
	if arr, ok := value.([]any); ok {
		if flat, ok := flattenCategories(arr); ok {
			return flat
		}
		return arr
	}

	obj, ok := jsonval.AsMap(value)
	if !ok {
		return value
	}

	if cats, ok := obj["categories"].([]any); ok {
		if flat, ok := flattenCategories(cats); ok {
			return flat
		}
	}

	if depth >= MaxDepth {
		return value
	}

	for _, key := range WrapperKeys {
		inner, ok := obj[key]
		if !ok || inner == nil {
			continue
		}
		return ExtractPayload(inner, depth+1)
	}
	return value
}

func parseText(text string) any {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return text
	}
	var out any
	if err := json.Unmarshal([]byte(trimmed), &out); err != nil {
		return text
	}
	return out
}

// joinTextBlocks concatenates the text of a content-block array. It reports
// false unless every element is a typed block and at least one is text.
func joinTextBlocks(arr []any) (string, bool) {
	if len(arr) == 0 {
		return "", false
	}
	parts := make([]string, 0, len(arr))
	for _, el := range arr {
		block, ok := jsonval.AsMap(el)
		if !ok {
			return "", false
		}
		typ, ok := block["type"].(string)
		if !ok {
			return "", false
		}
		if typ != "text" {
			continue
		}
		text, ok := block["text"].(string)
		if !ok {
			return "", false
		}
		parts = append(parts, text)
	}
	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, "\n"), true
}

// flattenCategories turns [{name, items:[...]}, ...] into one item list.
// Every element must look like a category for the flattening to apply.
func flattenCategories(arr []any) ([]any, bool) {
	if len(arr) == 0 {
		return nil, false
	}
	var flat []any
	for _, el := range arr {
		cat, ok := jsonval.AsMap(el)
		if !ok {
			return nil, false
		}
		items, ok := categoryItems(cat)
		if !ok {
			return nil, false
		}
		label := jsonval.FirstString(cat, "name", "title", "category")
		for _, it := range items {
			item, ok := jsonval.AsMap(unwrapCard(it))
			if !ok {
				continue
			}
			if label != "" {
				if _, has := item["category"]; !has {
					item = withKey(item, "category", label)
				}
			}
			flat = append(flat, item)
		}
	}
	return flat, true
}

// notCategoryKeys mark objects that own a nested list but are listings or
// orders themselves.
var notCategoryKeys = []string{
	"price", "defaultPrice", "variations", "cuisine", "cuisines", "rating",
	"avgRating", "locality", "address", "total", "subtotal", "order_id", "orderId",
}

func categoryItems(cat map[string]any) ([]any, bool) {
	if jsonval.HasAny(cat, notCategoryKeys...) {
		return nil, false
	}
	for _, key := range categoryItemKeys {
		if items, ok := cat[key].([]any); ok {
			return items, true
		}
	}
	return nil, false
}

// unwrapCard lifts {card:{info:{...}}} down to the info object.
func unwrapCard(v any) any {
	obj, ok := jsonval.AsMap(v)
	if !ok {
		return v
	}
	if info, ok := jsonval.Lookup(obj, "card", "info"); ok {
		if m, ok := jsonval.AsMap(info); ok {
			return m
		}
	}
	return v
}

// withKey copies obj so the caller's value is never mutated.
func withKey(obj map[string]any, key string, value any) map[string]any {
	out := make(map[string]any, len(obj)+1)
	for k, v := range obj {
		out[k] = v
	}
	out[key] = value
	return out
}
