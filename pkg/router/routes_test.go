package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchRoute(t *testing.T) {
	tests := []struct {
		tool string
		want Route
	}{
		{"get_cart", RouteCart},
		{"add_to_basket", RouteCart},
		{"update_cart", RouteCart},
		{"checkout_cart", RouteConfirmation},
		{"submit_cart_order", RouteConfirmation},
		{"create_order", RouteConfirmation},
		{"placeOrder", RouteConfirmation},
		{"create_booking", RouteConfirmation},
		{"book_restaurant", RouteConfirmation},
		{"reserve_table", RouteConfirmation},
		{"order_food", RouteConfirmation},
		{"track_order", RouteNone},
		{"get_order_status", RouteNone},
		{"get_booking_details", RouteNone},
		{"list_bookings", RouteSearch},
		{"search_bookable_restaurants", RouteSearch},
		{"get_saved_addresses", RouteAddress},
		{"list_delivery_locations", RouteAddress},
		{"place_order", RouteConfirmation},
		{"book_table", RouteConfirmation},
		{"make_reservation", RouteConfirmation},
		{"get_available_slots", RouteSlots},
		{"check_availability", RouteSlots},
		{"search_restaurants", RouteSearch},
		{"get_restaurant_menu", RouteSearch},
		{"get_product_details", RouteSearch},
		{"recommend_dishes", RouteSearch},
		{"store_hours", RouteNone},
	}
	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchRoute(tt.tool))
		})
	}
}

func TestInferSignals(t *testing.T) {
	payload := []any{
		map[string]any{"name": "Paneer Butter Masala", "rating": 4.3},
		map[string]any{"name": "Veg Thali", "isVeg": true},
	}
	s := InferSignals(payload)
	assert.False(t, s.StrongRestaurant)
	assert.True(t, s.WeakRestaurant)
	assert.True(t, s.Product)
	assert.True(t, s.Menu) // isVeg contains "veg"
	assert.True(t, s.DishName)

	assert.Equal(t, Signals{}, InferSignals("plain"))
}

func TestInferSignals_SamplesFirstFive(t *testing.T) {
	var payload []any
	for i := 0; i < 5; i++ {
		payload = append(payload, map[string]any{"name": "x"})
	}
	payload = append(payload, map[string]any{"name": "y", "cuisine": "Thai"})
	assert.False(t, InferSignals(payload).StrongRestaurant)
}

func TestResolvePreference(t *testing.T) {
	tests := []struct {
		name string
		tool string
		s    Signals
		want Preference
	}{
		{"menu tool", "get_menu", Signals{StrongRestaurant: true}, PreferProducts},
		{"menu keys", "search", Signals{StrongRestaurant: true, Menu: true}, PreferProducts},
		{"product keys only", "search", Signals{Product: true}, PreferProducts},
		{"product and strong", "search", Signals{Product: true, StrongRestaurant: true}, PreferRestaurants},
		{"rating on generic tool", "search", Signals{WeakRestaurant: true}, PreferProducts},
		{"rating on restaurant tool", "search_restaurants", Signals{WeakRestaurant: true}, PreferRestaurants},
		{"rating with dish names", "search_restaurants", Signals{WeakRestaurant: true, DishName: true}, PreferProducts},
		{"strong only", "search", Signals{StrongRestaurant: true}, PreferRestaurants},
		{"nothing", "search", Signals{}, PreferUndecided},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolvePreference(tt.tool, tt.s))
		})
	}
}
