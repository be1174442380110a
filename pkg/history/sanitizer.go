// FILE: pkg/history/sanitizer.go
// PURPOSE: Shrinks oversized tool results in conversation history before it is resent

package history

import (
	"strings"

	"ai-shopping-be/pkg/relevance"
	"ai-shopping-be/pkg/truncate"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"

	BlockText       = "text"
	BlockToolUse    = "tool_use"
	BlockToolResult = "tool_result"
)

// ContentBlock is one block of a conversation message. Content holds the
// text of a tool_result block.
type ContentBlock struct {
	Type      string         `json:"type" validate:"required,oneof=text tool_use tool_result"`
	Text      string         `json:"text,omitempty"`
	ID        string         `json:"id,omitempty"`
	Name      string         `json:"name,omitempty"`
	Input     map[string]any `json:"input,omitempty"`
	ToolUseID string         `json:"tool_use_id,omitempty"`
	Content   string         `json:"content,omitempty"`
	IsError   bool           `json:"is_error,omitempty"`
}

type Message struct {
	Role    string         `json:"role" validate:"required,oneof=user assistant"`
	Content []ContentBlock `json:"content" validate:"dive"`
}

type Logger interface {
	Debug(module, message string, details map[string]interface{})
}

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}

// Sanitizer truncates tool results against the latest user request.
type Sanitizer struct {
	logger Logger
}

func NewSanitizer(logger Logger) *Sanitizer {
	if logger == nil {
		logger = nopLogger{}
	}
	return &Sanitizer{logger: logger}
}

// Sanitize returns a copy of messages where every tool_result longer than
// maxToolResultChars has been passed through the smart truncator. The input
// slice and its blocks are left untouched.
func (s *Sanitizer) Sanitize(messages []Message, maxToolResultChars int) []Message {
	terms := relevance.Tokenize(LatestUserText(messages))

	out := make([]Message, len(messages))
	truncated := 0
	for i, msg := range messages {
		out[i] = Message{Role: msg.Role, Content: make([]ContentBlock, len(msg.Content))}
		copy(out[i].Content, msg.Content)

		for j := range out[i].Content {
			block := &out[i].Content[j]
			if block.Type != BlockToolResult || len(block.Content) <= maxToolResultChars {
				continue
			}
			before := len(block.Content)
			block.Content = truncate.SmartTruncateJSONContent(block.Content, terms, maxToolResultChars)
			truncated++
			s.logger.Debug("HISTORY", "Tool result truncated", map[string]interface{}{
				"tool_use_id": block.ToolUseID,
				"before":      before,
				"after":       len(block.Content),
			})
		}
	}

	if truncated > 0 {
		s.logger.Debug("HISTORY", "History sanitized", map[string]interface{}{
			"messages":  len(messages),
			"truncated": truncated,
			"terms":     terms,
		})
	}
	return out
}

// LatestUserText returns the text of the most recent user message that
// carries text. Messages holding only tool results are skipped.
func LatestUserText(messages []Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role != RoleUser {
			continue
		}
		var parts []string
		for _, b := range messages[i].Content {
			if b.Type == BlockText && strings.TrimSpace(b.Text) != "" {
				parts = append(parts, b.Text)
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, "\n")
		}
	}
	return ""
}
