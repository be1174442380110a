// FILE: pkg/parser/status.go
// PURPOSE: Generic success/failure status parser with user-safe messages

package parser

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/tidwall/gjson"

	"ai-shopping-be/pkg/jsonval"
	"ai-shopping-be/pkg/model"
)

const (
	// MaxStatusMessage is the rune cap applied to status messages.
	MaxStatusMessage = 180
	// MaxStatusDetails caps the leftover fields kept as details.
	MaxStatusDetails = 6

	BusyMessage  = "The service is busy right now. Please try again in a moment."
	ErrorMessage = "Something went wrong on our side. Please try again."
)

var (
	// Bare status codes only count in an error context: after status/code/
	// error/http, or alone at the start followed by a separator or JSON body.
	overloadPattern    = regexp.MustCompile(`(?i)overload|rate.?limit|too many requests|quota exceeded|at capacity|(?:status|code|error|http)\s*:?\s*429\b|^\s*429\s*(?:$|[:{-])`)
	serverErrorPattern = regexp.MustCompile(`(?i)internal server error|bad gateway|service unavailable|gateway time-?out|timed out|\btimeout\b|(?:status|code|error|http)\s*:?\s*5\d\d\b|^\s*5\d\d\s*(?:$|[:{-])`)

	messageKeys       = []string{"message", "msg", "error_message", "errorMessage", "detail", "error"}
	statusReserved    = map[string]bool{"success": true, "message": true, "status": true}
	embeddedJSONPaths = []string{"error.message", "message", "error"}
)

// Status parses success/failure acknowledgements. It requires either a
// boolean success field or a non-empty message.
func Status(payload any) *model.ParsedStatus {
	obj, ok := jsonval.AsMap(payload)
	if !ok {
		return nil
	}

	success, hasSuccess := obj["success"].(bool)
	msgKey, message := statusMessage(obj)
	if !hasSuccess && message == "" {
		return nil
	}

	if !hasSuccess {
		switch s := obj["status"].(type) {
		case bool:
			success = s
		case string:
			switch strings.ToLower(strings.TrimSpace(s)) {
			case "success", "ok":
				success = true
			}
		default:
			success = !jsonval.HasAny(obj, "error", "errors")
		}
	}

	if message == "" {
		if success {
			message = "Done"
		} else {
			message = "The request could not be completed."
		}
	}

	return &model.ParsedStatus{
		Success: success,
		Message: NormalizeMessage(message),
		Details: statusDetails(obj, msgKey),
	}
}

func statusMessage(obj map[string]any) (string, string) {
	for _, key := range messageKeys {
		v, ok := obj[key]
		if !ok || v == nil {
			continue
		}
		if s, ok := jsonval.AsText(v); ok {
			return key, s
		}
		if m, ok := jsonval.AsMap(v); ok {
			if s := jsonval.FirstText(m, "message", "msg", "detail"); s != "" {
				return key, s
			}
		}
	}
	return "", ""
}

// NormalizeMessage unwraps embedded JSON errors, rewrites overload and
// server-failure signatures, and clips the result.
func NormalizeMessage(message string) string {
	message = strings.TrimSpace(unwrapEmbeddedJSON(message))
	switch {
	case overloadPattern.MatchString(message):
		return BusyMessage
	case serverErrorPattern.MatchString(message):
		return ErrorMessage
	}
	if utf8.RuneCountInString(message) > MaxStatusMessage {
		r := []rune(message)
		return string(r[:MaxStatusMessage-3]) + "..."
	}
	return message
}

// unwrapEmbeddedJSON pulls error.message or message out of text such as
// `429 {"error":{"message":"Overloaded"}}`.
func unwrapEmbeddedJSON(message string) string {
	start := strings.IndexAny(message, "{")
	if start < 0 {
		return message
	}
	doc := message[start:]
	if end := strings.LastIndex(doc, "}"); end >= 0 {
		doc = doc[:end+1]
	}
	if !gjson.Valid(doc) {
		return message
	}
	for _, path := range embeddedJSONPaths {
		if r := gjson.Get(doc, path); r.Type == gjson.String && strings.TrimSpace(r.Str) != "" {
			return r.Str
		}
	}
	return message
}

func statusDetails(obj map[string]any, msgKey string) map[string]string {
	details := make(map[string]string)
	for _, key := range sortedKeys(obj) {
		if len(details) >= MaxStatusDetails {
			break
		}
		if statusReserved[key] || key == msgKey {
			continue
		}
		if s := jsonval.Compact(obj[key], 120); s != "" && obj[key] != nil {
			details[key] = s
		}
	}
	if len(details) == 0 {
		return nil
	}
	return details
}
