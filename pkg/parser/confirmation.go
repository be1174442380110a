// FILE: pkg/parser/confirmation.go
// PURPOSE: Order/booking confirmation and catch-all info card parsers

package parser

import (
	"regexp"
	"strings"
	"unicode"

	"ai-shopping-be/pkg/jsonval"
	"ai-shopping-be/pkg/model"
)

var (
	orderToolPattern   = regexp.MustCompile(`(?i)(order|place|checkout|submit)`)
	bookingToolPattern = regexp.MustCompile(`(?i)(book|reserve)`)

	referenceKeys = []string{
		"order_id", "orderId", "booking_id", "bookingId", "reservation_id", "reservationId",
		"reference_id", "referenceId", "confirmation_number", "confirmationNumber", "id",
	}
	confirmationTotalKeys = []string{"total", "grand_total", "grandTotal", "order_total", "orderTotal", "amount", "total_amount", "to_pay"}
	confirmationUsed      = map[string]bool{"message": true, "msg": true, "status": true, "state": true, "success": true, "order": true, "booking": true}

	// MaxInfoEntries caps catch-all info cards and confirmation details.
	MaxInfoEntries = 20
)

// ConfirmationType resolves the confirmation variant from the tool name.
// Order patterns win when both match.
func ConfirmationType(toolName string) (model.ResultType, bool) {
	switch {
	case orderToolPattern.MatchString(toolName):
		return model.TypeOrderPlaced, true
	case bookingToolPattern.MatchString(toolName):
		return model.TypeBookingConfirmed, true
	}
	return "", false
}

// Confirmation parses a confirmation payload for toolName. Explicit failures
// (success:false) decline so the status parser can report them.
func Confirmation(toolName string, data any) (model.ResultType, *model.Confirmation) {
	typ, ok := ConfirmationType(toolName)
	if !ok {
		return "", nil
	}

	if s, ok := jsonval.AsText(data); ok {
		return typ, &model.Confirmation{Message: s}
	}

	obj, ok := jsonval.AsMap(data)
	if !ok {
		if arr := jsonval.ToArray(data); len(arr) > 0 {
			obj, ok = jsonval.AsMap(arr[0])
		}
		if !ok {
			return "", nil
		}
	}
	if b, ok := obj["success"].(bool); ok && !b {
		return "", nil
	}
	if inner, ok := jsonval.AsMap(obj["order"]); ok {
		obj = mergeShallow(obj, inner)
	} else if inner, ok := jsonval.AsMap(obj["booking"]); ok {
		obj = mergeShallow(obj, inner)
	}

	c := &model.Confirmation{
		ReferenceID: jsonval.FirstString(obj, referenceKeys...),
		Status:      jsonval.FirstText(obj, "status", "state"),
		Total:       optional(firstAmount([]map[string]any{obj}, confirmationTotalKeys)),
	}
	if _, msg := statusMessage(obj); msg != "" {
		c.Message = NormalizeMessage(msg)
	}

	used := map[string]bool{}
	for k := range confirmationUsed {
		used[k] = true
	}
	for _, k := range append(append([]string{}, referenceKeys...), confirmationTotalKeys...) {
		used[k] = true
	}
	c.Details = infoEntries(obj, used, MaxStatusDetails)
	return typ, c
}

// Info turns any non-empty object into a titled key/value card.
func Info(payload any) *model.InfoCard {
	obj, ok := jsonval.AsMap(payload)
	if !ok || len(obj) == 0 {
		return nil
	}

	title := "Details"
	used := map[string]bool{}
	for _, key := range []string{"name", "title", "label"} {
		if s, ok := jsonval.AsText(obj[key]); ok {
			title = s
			used[key] = true
			break
		}
	}

	entries := infoEntries(obj, used, MaxInfoEntries)
	if len(entries) == 0 && title == "Details" {
		return nil
	}
	return &model.InfoCard{Title: title, Entries: entries}
}

func infoEntries(obj map[string]any, skip map[string]bool, max int) []model.ParsedInfoEntry {
	var out []model.ParsedInfoEntry
	for _, key := range sortedKeys(obj) {
		if len(out) >= max {
			break
		}
		v := obj[key]
		if skip[key] || jsonval.IsEmpty(v) {
			continue
		}
		value := jsonval.Compact(v, 200)
		if value == "" {
			continue
		}
		out = append(out, model.ParsedInfoEntry{Key: Humanize(key), Value: value})
	}
	return out
}

// Humanize renders camelCase and snake_case keys as Title Case words.
func Humanize(key string) string {
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}
	runes := []rune(key)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || r == '.' || unicode.IsSpace(r):
			flush()
			continue
		case unicode.IsUpper(r) && i > 0 && (unicode.IsLower(runes[i-1]) ||
			(i+1 < len(runes) && unicode.IsLower(runes[i+1]) && unicode.IsUpper(runes[i-1]))):
			flush()
		}
		cur = append(cur, r)
	}
	flush()

	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

func mergeShallow(outer, inner map[string]any) map[string]any {
	out := make(map[string]any, len(outer)+len(inner))
	for k, v := range outer {
		out[k] = v
	}
	for k, v := range inner {
		if _, exists := out[k]; !exists {
			out[k] = v
		}
	}
	return out
}
