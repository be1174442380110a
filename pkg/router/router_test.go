package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-shopping-be/pkg/model"
	"ai-shopping-be/pkg/relevance"
)

type recordingLogger struct {
	panicOnDebug bool
	warnings     []string
}

func (l *recordingLogger) Debug(module, message string, details map[string]interface{}) {
	if l.panicOnDebug {
		panic("logger exploded")
	}
}

func (l *recordingLogger) Warn(module, message string, details map[string]interface{}) {
	l.warnings = append(l.warnings, message)
}

func TestParse_DiningRestaurantSearch(t *testing.T) {
	raw := `{"restaurants":[{"name":"Saffron Table","cuisine":"Indian","rating":4.5}]}`

	got := ParseToolResult("search_restaurants", raw, model.VerticalDining, nil, nil)

	require.Equal(t, model.TypeRestaurants, got.Type)
	require.Len(t, got.Restaurants, 1)
	r := got.Restaurants[0]
	assert.Equal(t, "0", r.ID)
	assert.Equal(t, "Saffron Table", r.Name)
	assert.Equal(t, "Indian", r.Cuisine)
	require.NotNil(t, r.Rating)
	assert.Equal(t, 4.5, *r.Rating)
}

func TestParse_GrocerySearchYieldsProducts(t *testing.T) {
	raw := []any{map[string]any{
		"type": "text",
		"text": `{"data":{"products":[{"name":"Amul Butter","price":56},{"name":"Bread","price":40}]}}`,
	}}

	got := ParseToolResult("search_products", raw, model.VerticalGrocery, map[string]any{"query": "butter"}, nil)

	require.Equal(t, model.TypeProducts, got.Type)
	require.Len(t, got.Products, 2)
	assert.Equal(t, "Amul Butter", got.Products[0].Name)
	assert.Equal(t, "butter", got.Products[0].SourceQuery)
	assert.Equal(t, "butter", got.Products[1].SourceQuery)
}

func TestParse_MenuToolWithRatingsStaysProducts(t *testing.T) {
	raw := map[string]any{"items": []any{
		map[string]any{"name": "Paneer Tikka", "rating": 4.4, "price": 260.0},
		map[string]any{"name": "Chicken Biryani", "rating": 4.7, "price": 320.0},
	}}

	got := ParseToolResult("get_restaurant_menu", raw, model.VerticalFood, map[string]any{"restaurant_name": "Meghana Foods"}, nil)

	require.Equal(t, model.TypeProducts, got.Type)
	require.Len(t, got.Products, 2)
	assert.Equal(t, "Meghana Foods", got.Products[0].RestaurantName)
}

func TestParse_CartWithLineItems(t *testing.T) {
	raw := `{"cart":{"items":[{"name":"Milk","price":55,"quantity":2}]},
		"lineItems":[{"label":"Item Total","value":"₹110"},{"label":"To Pay","value":"₹110"}]}`

	got := ParseToolResult("get_cart", raw, model.VerticalGrocery, nil, nil)

	require.Equal(t, model.TypeCart, got.Type)
	require.NotNil(t, got.Cart)
	assert.Equal(t, 110.0, got.Cart.Subtotal)
	assert.Equal(t, 0.0, got.Cart.DeliveryFee)
	assert.Equal(t, 110.0, got.Cart.Total)
	require.Len(t, got.Cart.Items, 1)
	assert.Equal(t, 2, got.Cart.Items[0].Quantity)
}

func TestParse_StatusWithEmbeddedCart(t *testing.T) {
	raw := map[string]any{
		"success": true,
		"message": "Item added",
		"cart": map[string]any{
			"items": []any{map[string]any{"name": "Eggs", "price": 90.0, "quantity": 1.0}},
		},
	}

	got := ParseToolResult("update_item", raw, model.VerticalGrocery, nil, nil)

	require.Equal(t, model.TypeCart, got.Type)
	require.Len(t, got.Cart.Items, 1)
	assert.Equal(t, 90.0, got.Cart.Total)
}

func TestParse_RoutedResults(t *testing.T) {
	t.Run("addresses", func(t *testing.T) {
		raw := map[string]any{"addresses": []any{
			map[string]any{"id": "a1", "label": "Home", "address": "12 MG Road"},
		}}
		got := ParseToolResult("get_saved_addresses", raw, model.VerticalFood, nil, nil)
		require.Equal(t, model.TypeAddresses, got.Type)
		assert.Equal(t, "Home", got.Addresses[0].Label)
	})

	t.Run("slots", func(t *testing.T) {
		raw := map[string]any{"slots": []any{"7:00 PM", "7:30 PM"}}
		got := ParseToolResult("get_available_slots", raw, model.VerticalDining, nil, nil)
		require.Equal(t, model.TypeTimeSlots, got.Type)
		assert.Len(t, got.Slots, 2)
	})

	t.Run("order confirmation", func(t *testing.T) {
		raw := map[string]any{"success": true, "order_id": "ORD-9", "message": "Order placed"}
		got := ParseToolResult("place_order", raw, model.VerticalFood, nil, nil)
		require.Equal(t, model.TypeOrderPlaced, got.Type)
		assert.Equal(t, "ORD-9", got.Confirmation.ReferenceID)
	})

	t.Run("confirmation tool names", func(t *testing.T) {
		raw := map[string]any{"order_id": "A1", "booking_id": "B1", "status": "confirmed"}
		tests := []struct {
			tool string
			want model.ResultType
		}{
			{"create_order", model.TypeOrderPlaced},
			{"submit_cart_order", model.TypeOrderPlaced},
			{"place_order", model.TypeOrderPlaced},
			{"create_booking", model.TypeBookingConfirmed},
			{"book_restaurant", model.TypeBookingConfirmed},
			{"reserve_table", model.TypeBookingConfirmed},
		}
		for _, tt := range tests {
			got := ParseToolResult(tt.tool, raw, model.VerticalDining, nil, nil)
			require.Equal(t, tt.want, got.Type, tt.tool)
			assert.Equal(t, "A1", got.Confirmation.ReferenceID, tt.tool)
			assert.Equal(t, "confirmed", got.Confirmation.Status, tt.tool)
		}
	})

	t.Run("failed order falls back to status", func(t *testing.T) {
		raw := map[string]any{"success": false, "message": "Payment declined"}
		got := ParseToolResult("place_order", raw, model.VerticalFood, nil, nil)
		require.Equal(t, model.TypeStatus, got.Type)
		assert.False(t, got.Status.Success)
		assert.Equal(t, "Payment declined", got.Status.Message)
	})

	t.Run("unknown tool object becomes info", func(t *testing.T) {
		raw := map[string]any{"name": "Store hours", "open": "9am", "close": "11pm"}
		got := ParseToolResult("store_hours", raw, model.VerticalGrocery, nil, nil)
		require.Equal(t, model.TypeInfo, got.Type)
		assert.Equal(t, "Store hours", got.Info.Title)
	})

	t.Run("plain text is raw", func(t *testing.T) {
		got := ParseToolResult("ping", "pong", model.VerticalGrocery, nil, nil)
		assert.Equal(t, model.TypeRaw, got.Type)
		assert.Equal(t, "pong", got.Raw)
	})
}

func TestParse_PanicDegradesToRaw(t *testing.T) {
	logger := &recordingLogger{panicOnDebug: true}
	r := New(WithLogger(logger))

	got := r.Parse(Request{ToolName: "search_products", Content: `[{"name":"Milk","price":50}]`})

	assert.Equal(t, model.TypeRaw, got.Type)
	assert.Equal(t, `[{"name":"Milk","price":50}]`, got.Raw)
	assert.Len(t, logger.warnings, 1)
}

func TestParse_RelevanceFlag(t *testing.T) {
	raw := map[string]any{"restaurants": []any{
		map[string]any{"name": "Olive Bistro", "cuisine": "Italian", "rating": 4.2},
		map[string]any{"name": "Mainland China", "cuisine": "Chinese", "rating": 4.6},
	}}
	rc := relevance.BuildRenderContext(model.VerticalDining, "thai food", "", "")

	off := New().Parse(Request{ToolName: "search_restaurants", Content: raw, VerticalID: model.VerticalDining, Context: rc})
	assert.Len(t, off.Restaurants, 2)
	assert.False(t, off.RequireBroadenPrompt)
	assert.Nil(t, off.Debug)

	on := New(WithRelevance(true)).Parse(Request{ToolName: "search_restaurants", Content: raw, VerticalID: model.VerticalDining, Context: rc})
	assert.Empty(t, on.Restaurants)
	assert.True(t, on.RequireBroadenPrompt)
	assert.Equal(t, []string{"cuisine: thai"}, on.ActiveFilters)
}

func TestParse_WithGazetteer(t *testing.T) {
	gz := &relevance.Gazetteer{
		Cuisines: []relevance.Alias{{Canonical: "peranakan", Terms: []string{"nyonya"}}},
	}
	r := New(WithRelevance(true), WithGazetteer(gz))
	raw := map[string]any{"restaurants": []any{
		map[string]any{"name": "Baba House", "cuisine": "Nyonya", "rating": 4.1},
		map[string]any{"name": "Olive Bistro", "cuisine": "Italian", "rating": 4.5},
	}}
	rc := r.Relevance().BuildRenderContext(model.VerticalDining, "peranakan", "", "")

	got := r.Parse(Request{ToolName: "search_restaurants", Content: raw, VerticalID: model.VerticalDining, Context: rc})
	require.Len(t, got.Restaurants, 1)
	assert.Equal(t, "Baba House", got.Restaurants[0].Name)
	assert.False(t, got.RequireBroadenPrompt)
}
