package model

// Vertical ids the relevance engine distinguishes. Any other id is treated
// as a generic catalogue.
const (
	VerticalFood    = "food"
	VerticalDining  = "dining"
	VerticalGrocery = "grocery"
)

// Render modes of a conversation turn.
const (
	ModeDiscover = "discover"
	ModeMenu     = "menu"
	ModeCart     = "cart"
	ModeConfirm  = "confirm"
)

// Diet values.
const (
	DietVeg    = "veg"
	DietNonVeg = "non_veg"
	DietVegan  = "vegan"
)

// StrictConstraintSnapshot holds constraints extracted from the latest user
// message. It is rebuilt every turn.
type StrictConstraintSnapshot struct {
	Cuisines        []string `json:"cuisines,omitempty"`
	Vibes           []string `json:"vibes,omitempty"`
	Areas           []string `json:"areas,omitempty"`
	Dishes          []string `json:"dishes,omitempty"`
	Diet            string   `json:"diet,omitempty" validate:"omitempty,oneof=veg non_veg vegan"`
	Spicy           bool     `json:"spicy,omitempty"`
	BudgetMax       *float64 `json:"budgetMax,omitempty" validate:"omitempty,gt=0"`
	PartySize       *int     `json:"partySize,omitempty" validate:"omitempty,gt=0"`
	TimeHints       []string `json:"timeHints,omitempty"`
	MaxDeliveryMins *int     `json:"maxDeliveryMins,omitempty" validate:"omitempty,gt=0"`
}

// IsEmpty reports whether no constraint was extracted.
func (s *StrictConstraintSnapshot) IsEmpty() bool {
	if s == nil {
		return true
	}
	return len(s.Cuisines) == 0 && len(s.Vibes) == 0 && len(s.Areas) == 0 &&
		len(s.Dishes) == 0 && s.Diet == "" && !s.Spicy && s.BudgetMax == nil &&
		s.PartySize == nil && len(s.TimeHints) == 0 && s.MaxDeliveryMins == nil
}

// ToolRenderContext is the per-turn context threaded through parsing and
// reranking.
type ToolRenderContext struct {
	VerticalID                string                    `json:"verticalId" validate:"required"`
	LatestUserQuery           string                    `json:"latestUserQuery"`
	LockedRestaurant          string                    `json:"lockedRestaurant,omitempty"`
	Mode                      string                    `json:"mode" validate:"omitempty,oneof=discover menu cart confirm"`
	StrictConstraints         *StrictConstraintSnapshot `json:"strictConstraints,omitempty" validate:"omitempty"`
	AllowConstraintBroadening bool                      `json:"allowConstraintBroadening"`
}
