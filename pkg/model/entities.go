package model

import (
	"regexp"
	"strconv"
)

// ParsedProduct is one purchasable item. Multi-variation source items expand
// into several products with ids suffixed "-var-N".
type ParsedProduct struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       *float64 `json:"price,omitempty"`
	MRP         *float64 `json:"mrp,omitempty"`
	Image       string   `json:"image,omitempty"`
	Brand       string   `json:"brand,omitempty"`
	Quantity    string   `json:"quantity,omitempty"`
	Available   bool     `json:"available"`
	Description string   `json:"description,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`

	GroupLabel     string `json:"groupLabel,omitempty"`
	GroupKey       string `json:"groupKey,omitempty"`
	SourceQuery    string `json:"sourceQuery,omitempty"`
	ItemType       string `json:"itemType,omitempty"`
	RestaurantName string `json:"restaurantName,omitempty"`
}

// ParsedRestaurant is one restaurant/outlet listing.
type ParsedRestaurant struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Cuisine      string   `json:"cuisine,omitempty"`
	Rating       *float64 `json:"rating,omitempty"`
	PriceForTwo  *float64 `json:"priceForTwo,omitempty"`
	DeliveryTime string   `json:"deliveryTime,omitempty"`
	Image        string   `json:"image,omitempty"`
	Address      string   `json:"address,omitempty"`
	Locality     string   `json:"locality,omitempty"`
	Offers       []string `json:"offers,omitempty"`
	Tags         []string `json:"tags,omitempty"`
}

var minutesPattern = regexp.MustCompile(`(\d{1,3})`)

// DeliveryMinutes parses the leading minute count out of DeliveryTime
// ("25-30 mins" yields 25).
func (r ParsedRestaurant) DeliveryMinutes() (int, bool) {
	m := minutesPattern.FindString(r.DeliveryTime)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParsedTimeSlot is a bookable time. SlotID/SlotToken/RestaurantID are
// carried through for the booking call that follows.
type ParsedTimeSlot struct {
	Time         string `json:"time"`
	Available    bool   `json:"available"`
	SlotID       string `json:"slotId,omitempty"`
	SlotToken    string `json:"slotToken,omitempty"`
	RestaurantID string `json:"restaurantId,omitempty"`
}

type ParsedAddress struct {
	ID      string   `json:"id"`
	Label   string   `json:"label"`
	Address string   `json:"address"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
}

type CartItem struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Price    *float64 `json:"price,omitempty"`
	Quantity int      `json:"quantity"`
	Image    string   `json:"image,omitempty"`
}

// CartState aggregates cart items with the resolved bill.
type CartState struct {
	Items       []CartItem `json:"items"`
	Subtotal    float64    `json:"subtotal"`
	DeliveryFee float64    `json:"deliveryFee"`
	Total       float64    `json:"total"`
}

// Confirmation is the payload of order_placed / booking_confirmed results.
type Confirmation struct {
	ReferenceID string            `json:"referenceId,omitempty"`
	Message     string            `json:"message,omitempty"`
	Status      string            `json:"status,omitempty"`
	Total       *float64          `json:"total,omitempty"`
	Details     []ParsedInfoEntry `json:"details,omitempty"`
}

type ParsedStatus struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

type ParsedInfoEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// InfoCard is the catch-all rendering of an arbitrary object.
type InfoCard struct {
	Title   string            `json:"title"`
	Entries []ParsedInfoEntry `json:"entries"`
}
