package model

// ResultType is the discriminant of ParsedToolResult.
type ResultType string

const (
	TypeProducts         ResultType = "products"
	TypeRestaurants      ResultType = "restaurants"
	TypeTimeSlots        ResultType = "time_slots"
	TypeAddresses        ResultType = "addresses"
	TypeCart             ResultType = "cart"
	TypeOrderPlaced      ResultType = "order_placed"
	TypeBookingConfirmed ResultType = "booking_confirmed"
	TypeStatus           ResultType = "status"
	TypeInfo             ResultType = "info"
	TypeRaw              ResultType = "raw"
)

// ParsedToolResult is a tagged union: Type selects which payload field is set.
type ParsedToolResult struct {
	Type ResultType `json:"type"`

	Products     []ParsedProduct    `json:"products,omitempty"`
	Restaurants  []ParsedRestaurant `json:"restaurants,omitempty"`
	Slots        []ParsedTimeSlot   `json:"slots,omitempty"`
	Addresses    []ParsedAddress    `json:"addresses,omitempty"`
	Cart         *CartState         `json:"cart,omitempty"`
	Confirmation *Confirmation      `json:"confirmation,omitempty"`
	Status       *ParsedStatus      `json:"status,omitempty"`
	Info         *InfoCard          `json:"info,omitempty"`
	Raw          any                `json:"content,omitempty"`

	// Set on list variants when strict filtering removed every candidate.
	RequireBroadenPrompt bool     `json:"requireBroadenPrompt,omitempty"`
	ActiveFilters        []string `json:"activeFilters,omitempty"`

	Debug *RelevanceDebug `json:"debug,omitempty"`
}

// RelevanceDebug records which relevance strategy touched a result.
type RelevanceDebug struct {
	Strategy       string   `json:"strategy"`
	AppliedKeys    []string `json:"appliedKeys,omitempty"`
	CandidateCount int      `json:"candidateCount"`
	ReturnedCount  int      `json:"returnedCount"`
	Broadened      bool     `json:"broadened,omitempty"`
	LockScoped     bool     `json:"lockScoped,omitempty"`
}

func NewProducts(items []ParsedProduct) ParsedToolResult {
	return ParsedToolResult{Type: TypeProducts, Products: items}
}

func NewRestaurants(items []ParsedRestaurant) ParsedToolResult {
	return ParsedToolResult{Type: TypeRestaurants, Restaurants: items}
}

func NewTimeSlots(slots []ParsedTimeSlot) ParsedToolResult {
	return ParsedToolResult{Type: TypeTimeSlots, Slots: slots}
}

func NewAddresses(addresses []ParsedAddress) ParsedToolResult {
	return ParsedToolResult{Type: TypeAddresses, Addresses: addresses}
}

func NewCart(cart *CartState) ParsedToolResult {
	return ParsedToolResult{Type: TypeCart, Cart: cart}
}

// NewConfirmation builds either an order_placed or booking_confirmed result.
func NewConfirmation(t ResultType, c *Confirmation) ParsedToolResult {
	return ParsedToolResult{Type: t, Confirmation: c}
}

func NewStatus(s *ParsedStatus) ParsedToolResult {
	return ParsedToolResult{Type: TypeStatus, Status: s}
}

func NewInfo(card *InfoCard) ParsedToolResult {
	return ParsedToolResult{Type: TypeInfo, Info: card}
}

// NewRaw wraps content the pipeline could not interpret. It never fails.
func NewRaw(content any) ParsedToolResult {
	return ParsedToolResult{Type: TypeRaw, Raw: content}
}

// Len returns the number of list entries for list variants.
func (r ParsedToolResult) Len() int {
	switch r.Type {
	case TypeProducts:
		return len(r.Products)
	case TypeRestaurants:
		return len(r.Restaurants)
	case TypeTimeSlots:
		return len(r.Slots)
	case TypeAddresses:
		return len(r.Addresses)
	case TypeCart:
		if r.Cart != nil {
			return len(r.Cart.Items)
		}
	}
	return 0
}
