package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-shopping-be/pkg/model"
)

func TestRestaurants_IndicatorGate(t *testing.T) {
	assert.Nil(t, Restaurants([]any{map[string]any{"name": "X", "price": 100.0}}))

	got := Restaurants([]any{map[string]any{"name": "X", "rating": 4.5}})
	require.Len(t, got, 1)
	assert.Equal(t, "0", got[0].ID)
	assert.Equal(t, 4.5, *got[0].Rating)
}

func TestRestaurants_Fields(t *testing.T) {
	in := []any{map[string]any{
		"id":          "r1",
		"name":        "Truffles",
		"cuisines":    []any{"American", "Burgers"},
		"avgRating":   "4.3",
		"costForTwo":  "₹450 for two",
		"sla":         map[string]any{"deliveryTime": 28.0},
		"areaName":    "Koramangala",
		"offers":      []any{"20% off", map[string]any{"title": "Free delivery"}, map[string]any{"x": 1.0}},
		"highlights":  []any{"Rooftop"},
		"image":       "https://img/x.png",
		"description": "ignored",
	}}

	got := Restaurants(in)
	require.Len(t, got, 1)
	r := got[0]
	assert.Equal(t, "r1", r.ID)
	assert.Equal(t, "American, Burgers", r.Cuisine)
	assert.Equal(t, 4.3, *r.Rating)
	assert.Equal(t, 450.0, *r.PriceForTwo)
	assert.Equal(t, "28 mins", r.DeliveryTime)
	assert.Equal(t, "Koramangala", r.Locality)
	assert.Equal(t, []string{"20% off", "Free delivery"}, r.Offers)
	assert.Equal(t, []string{"Rooftop"}, r.Tags)
}

func TestRestaurants_NestedInfo(t *testing.T) {
	in := []any{map[string]any{"info": map[string]any{"name": "Empire", "locality": "Indiranagar"}}}
	got := Restaurants(in)
	require.Len(t, got, 1)
	assert.Equal(t, "Empire", got[0].Name)
}

func TestTimeSlots(t *testing.T) {
	got := TimeSlots([]any{
		"7:00 PM",
		map[string]any{"start_time": "8:00 PM", "slotId": "s2", "slotToken": "tok", "restaurantId": 42.0, "status": "full"},
		map[string]any{"foo": "bar"},
	})
	require.Len(t, got, 2)
	assert.Equal(t, model.ParsedTimeSlot{Time: "7:00 PM", Available: true}, got[0])
	assert.Equal(t, "8:00 PM", got[1].Time)
	assert.False(t, got[1].Available)
	assert.Equal(t, "s2", got[1].SlotID)
	assert.Equal(t, "tok", got[1].SlotToken)
	assert.Equal(t, "42", got[1].RestaurantID)

	assert.Nil(t, TimeSlots([]any{map[string]any{"foo": "bar"}}))
}

func TestAddresses(t *testing.T) {
	got := Addresses([]any{
		map[string]any{"id": "a1", "annotation": "Work", "formatted_address": "12 MG Road", "lat": 12.97, "lng": 77.59},
		map[string]any{"address": "221B Baker Street"},
		map[string]any{"label": "Empty"},
	})
	require.Len(t, got, 2)
	assert.Equal(t, "Work", got[0].Label)
	assert.Equal(t, "12 MG Road", got[0].Address)
	assert.Equal(t, 12.97, *got[0].Lat)
	assert.Equal(t, "Address", got[1].Label)
	assert.Equal(t, "1", got[1].ID)
}

func TestCart(t *testing.T) {
	t.Run("line items override computed sum", func(t *testing.T) {
		in := map[string]any{
			"items": []any{map[string]any{"name": "Milk", "price": 55.0, "quantity": 2.0}},
			"lineItems": []any{
				map[string]any{"label": "Item Total", "value": "₹110"},
				map[string]any{"label": "To Pay", "value": "₹110"},
			},
		}
		got := Cart(in)
		require.NotNil(t, got)
		assert.Equal(t, 110.0, got.Subtotal)
		assert.Equal(t, 0.0, got.DeliveryFee)
		assert.Equal(t, 110.0, got.Total)
		require.Len(t, got.Items, 1)
		assert.Equal(t, 2, got.Items[0].Quantity)
	})

	t.Run("to pay wins over computed sum", func(t *testing.T) {
		in := map[string]any{
			"items": []any{map[string]any{"name": "Milk", "price": 55.0}},
			"billBreakdown": []any{
				map[string]any{"label": "Delivery Fee", "value": "FREE"},
				map[string]any{"label": "Grand Total", "value": 49.0},
			},
		}
		got := Cart(in)
		require.NotNil(t, got)
		assert.Equal(t, 55.0, got.Subtotal)
		assert.Equal(t, 0.0, got.DeliveryFee)
		assert.Equal(t, 49.0, got.Total)
	})

	t.Run("fractional quantities round to whole units", func(t *testing.T) {
		in := map[string]any{"items": []any{
			map[string]any{"name": "Tomatoes", "price": 40.0, "quantity": 0.5},
			map[string]any{"name": "Onions", "price": 30.0, "quantity": 2.6},
		}}
		got := Cart(in)
		require.NotNil(t, got)
		require.Len(t, got.Items, 2)
		assert.Equal(t, 1, got.Items[0].Quantity)
		assert.Equal(t, 3, got.Items[1].Quantity)
		assert.Equal(t, 130.0, got.Subtotal)
	})

	t.Run("computed total is subtotal plus delivery", func(t *testing.T) {
		in := map[string]any{
			"cart": map[string]any{
				"items":       []any{map[string]any{"name": "Eggs", "price": 80.0, "qty": 1.0}},
				"deliveryFee": 30.0,
			},
		}
		got := Cart(in)
		require.NotNil(t, got)
		assert.Equal(t, 80.0, got.Subtotal)
		assert.Equal(t, 30.0, got.DeliveryFee)
		assert.Equal(t, 110.0, got.Total)
	})

	t.Run("totals read from the nested context first", func(t *testing.T) {
		in := map[string]any{
			"total": 999.0,
			"data": map[string]any{
				"cart": map[string]any{
					"items": []any{map[string]any{"name": "Tea", "price": 20.0}},
					"total": 25.0,
				},
			},
		}
		got := Cart(in)
		require.NotNil(t, got)
		assert.Equal(t, 25.0, got.Total)
	})

	t.Run("empty cart is valid", func(t *testing.T) {
		got := Cart(map[string]any{"items": []any{}})
		require.NotNil(t, got)
		assert.Empty(t, got.Items)
		assert.Equal(t, 0.0, got.Total)
	})

	t.Run("missing items declines", func(t *testing.T) {
		assert.Nil(t, Cart(map[string]any{"total": 10.0}))
	})
}

func TestStatus(t *testing.T) {
	t.Run("success with details", func(t *testing.T) {
		got := Status(map[string]any{"success": true, "message": "Added", "itemId": "x1"})
		require.NotNil(t, got)
		assert.True(t, got.Success)
		assert.Equal(t, "Added", got.Message)
		assert.Equal(t, map[string]string{"itemId": "x1"}, got.Details)
	})

	t.Run("status string inference", func(t *testing.T) {
		got := Status(map[string]any{"status": "OK", "message": "fine"})
		require.NotNil(t, got)
		assert.True(t, got.Success)

		got = Status(map[string]any{"status": "failed", "message": "nope"})
		require.NotNil(t, got)
		assert.False(t, got.Success)
	})

	t.Run("status alone is not enough", func(t *testing.T) {
		assert.Nil(t, Status(map[string]any{"status": "ok"}))
		assert.Nil(t, Status([]any{map[string]any{"success": true}}))
	})

	t.Run("embedded json error is unwrapped", func(t *testing.T) {
		got := Status(map[string]any{"success": false, "message": `400 {"error":{"message":"Invalid address id"}}`})
		require.NotNil(t, got)
		assert.Equal(t, "Invalid address id", got.Message)
	})

	t.Run("overload is rewritten", func(t *testing.T) {
		got := Status(map[string]any{"success": false, "message": `529 {"type":"error","error":{"type":"overloaded_error","message":"Overloaded"}}`})
		assert.Equal(t, BusyMessage, got.Message)
	})

	t.Run("server error is rewritten", func(t *testing.T) {
		got := Status(map[string]any{"error": "upstream request timed out"})
		require.NotNil(t, got)
		assert.False(t, got.Success)
		assert.Equal(t, ErrorMessage, got.Message)
	})

	t.Run("quantities that look like status codes are kept", func(t *testing.T) {
		for _, msg := range []string{"500 grams of paneer added to cart", "Added 429 g rice", "Order of 500 items saved"} {
			got := Status(map[string]any{"success": true, "message": msg})
			require.NotNil(t, got)
			assert.Equal(t, msg, got.Message)
		}
	})

	t.Run("status codes in error context are rewritten", func(t *testing.T) {
		tests := []struct {
			in   string
			want string
		}{
			{"HTTP 503", ErrorMessage},
			{"status: 500", ErrorMessage},
			{"502 - upstream failed", ErrorMessage},
			{"error code 429", BusyMessage},
			{"429", BusyMessage},
		}
		for _, tt := range tests {
			assert.Equal(t, tt.want, NormalizeMessage(tt.in), tt.in)
		}
	})

	t.Run("long messages are clipped", func(t *testing.T) {
		long := make([]rune, 300)
		for i := range long {
			long[i] = 'a'
		}
		got := Status(map[string]any{"success": true, "message": string(long)})
		assert.Len(t, []rune(got.Message), MaxStatusMessage)
		assert.True(t, len(got.Message) > 3 && got.Message[len(got.Message)-3:] == "...")
	})

	t.Run("details are capped", func(t *testing.T) {
		in := map[string]any{"success": true}
		for _, k := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
			in[k] = k
		}
		got := Status(in)
		assert.Len(t, got.Details, MaxStatusDetails)
		assert.NotContains(t, got.Details, "h")
	})
}

func TestConfirmation(t *testing.T) {
	typ, c := Confirmation("place_order", map[string]any{"order_id": "OD-1", "total": 230.0, "message": "Order placed", "eta": "30 mins"})
	require.NotNil(t, c)
	assert.Equal(t, model.TypeOrderPlaced, typ)
	assert.Equal(t, "OD-1", c.ReferenceID)
	assert.Equal(t, 230.0, *c.Total)
	assert.Equal(t, "Order placed", c.Message)
	assert.Equal(t, []model.ParsedInfoEntry{{Key: "Eta", Value: "30 mins"}}, c.Details)

	typ, c = Confirmation("book_table", map[string]any{"booking_id": 77.0})
	require.NotNil(t, c)
	assert.Equal(t, model.TypeBookingConfirmed, typ)
	assert.Equal(t, "77", c.ReferenceID)

	// Both patterns match; order wins.
	typ, _ = Confirmation("submit_booking", map[string]any{"id": "x"})
	assert.Equal(t, model.TypeOrderPlaced, typ)

	_, c = Confirmation("place_order", map[string]any{"success": false, "message": "Cart empty"})
	assert.Nil(t, c)

	_, c = Confirmation("get_menu", map[string]any{"id": "x"})
	assert.Nil(t, c)
}

func TestInfo(t *testing.T) {
	got := Info(map[string]any{"name": "Store", "openingHours": "9-9", "is_open": true, "empty": ""})
	require.NotNil(t, got)
	assert.Equal(t, "Store", got.Title)
	assert.Equal(t, []model.ParsedInfoEntry{
		{Key: "Is Open", Value: "true"},
		{Key: "Opening Hours", Value: "9-9"},
	}, got.Entries)

	got = Info(map[string]any{"foo": 1.0})
	require.NotNil(t, got)
	assert.Equal(t, "Details", got.Title)

	assert.Nil(t, Info(map[string]any{}))
	assert.Nil(t, Info([]any{map[string]any{"a": 1.0}}))
}

func TestHumanize(t *testing.T) {
	tests := map[string]string{
		"deliveryTime": "Delivery Time",
		"order_id":     "Order Id",
		"HTTPStatus":   "HTTP Status",
		"name":         "Name",
		"slot-token":   "Slot Token",
	}
	for in, want := range tests {
		assert.Equal(t, want, Humanize(in), in)
	}
}

func TestDetectShape(t *testing.T) {
	tests := []struct {
		name    string
		payload any
		want    model.ResultType
	}{
		{"time strings", []any{"7:30 PM", "8 pm"}, model.TypeTimeSlots},
		{"plain strings", []any{"hello"}, model.TypeRaw},
		{"slot objects", []any{map[string]any{"slotId": "1", "time": "7pm"}}, model.TypeTimeSlots},
		{"addresses", []any{map[string]any{"address": "MG Road", "label": "Home"}}, model.TypeAddresses},
		{"restaurants", []any{map[string]any{"name": "A", "cuisine": "Thai"}}, model.TypeRestaurants},
		{"products", []any{map[string]any{"name": "A", "price": 10.0}}, model.TypeProducts},
		{"rated only", []any{map[string]any{"name": "A", "rating": 4.0}}, model.TypeRestaurants},
		{"cart", map[string]any{"items": []any{}, "subtotal": 0.0}, model.TypeCart},
		{"nothing", map[string]any{"success": true}, model.TypeRaw},
		{"empty", []any{}, model.TypeRaw},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectShape(tt.payload))
		})
	}
}
