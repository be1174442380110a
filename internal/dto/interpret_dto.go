package dto

import (
	"ai-shopping-be/pkg/history"
	"ai-shopping-be/pkg/model"
	"ai-shopping-be/pkg/variants"

	"github.com/google/uuid"
)

// RenderContextRequest is the per-turn context the caller knows about. Strict
// constraints are extracted server-side from LatestUserQuery.
type RenderContextRequest struct {
	LatestUserQuery  string `json:"latest_user_query"`
	LockedRestaurant string `json:"locked_restaurant"`
	Mode             string `json:"mode" validate:"omitempty,oneof=discover menu cart confirm"`
	AllowBroadening  bool   `json:"allow_broadening"`
}

type ParseRequest struct {
	ToolName   string                `json:"tool_name" validate:"required"`
	Content    any                   `json:"content" validate:"required"`
	VerticalId string                `json:"vertical_id" validate:"required"`
	ToolInput  map[string]any        `json:"tool_input"`
	Context    *RenderContextRequest `json:"context" validate:"omitempty"`
}

type ParseResponse struct {
	Id     uuid.UUID              `json:"id"` // content identity, stable across identical requests
	Cached bool                   `json:"cached"`
	Result model.ParsedToolResult `json:"result"`
}

type TruncateRequest struct {
	JsonText   string   `json:"json_text" validate:"required"`
	QueryTerms []string `json:"query_terms"`
	MaxChars   int      `json:"max_chars" validate:"omitempty,min=1"`
}

type TruncateResponse struct {
	Text           string `json:"text"`
	OriginalLength int    `json:"original_length"`
	Length         int    `json:"length"`
	Truncated      bool   `json:"truncated"`
}

type RerankRequest struct {
	VerticalId       string                   `json:"vertical_id" validate:"required"`
	Query            string                   `json:"query"`
	Kind             string                   `json:"kind" validate:"required,oneof=restaurants menu products"`
	Restaurants      []model.ParsedRestaurant `json:"restaurants"`
	Products         []model.ParsedProduct    `json:"products"`
	LockedRestaurant string                   `json:"locked_restaurant"`
	Mode             string                   `json:"mode" validate:"omitempty,oneof=discover menu cart confirm"`
	AllowBroadening  bool                     `json:"allow_broadening"`
}

type RerankResponse struct {
	Restaurants          []model.ParsedRestaurant        `json:"restaurants,omitempty"`
	Products             []model.ParsedProduct           `json:"products,omitempty"`
	RequireBroadenPrompt bool                            `json:"require_broaden_prompt"`
	ActiveFilters        []string                        `json:"active_filters,omitempty"`
	Constraints          *model.StrictConstraintSnapshot `json:"constraints,omitempty"`
	Debug                *model.RelevanceDebug           `json:"debug,omitempty"`
}

type VariantsRequest struct {
	Text string `json:"text" validate:"required"`
}

type VariantsResponse = variants.Result

type SanitizeRequest struct {
	Messages []history.Message `json:"messages" validate:"required,dive"`
	MaxChars int               `json:"max_chars" validate:"omitempty,min=1"`
}

type SanitizeResponse struct {
	Messages  []history.Message `json:"messages"`
	Truncated int               `json:"truncated"`
}
