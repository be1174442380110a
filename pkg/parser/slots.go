// FILE: pkg/parser/slots.go
// PURPOSE: Time slot and address parsers

package parser

import (
	"strconv"
	"strings"

	"ai-shopping-be/pkg/jsonval"
	"ai-shopping-be/pkg/model"
)

var (
	slotTimeKeys  = []string{"time", "slot", "label", "start_time", "startTime", "display_time", "displayTime"}
	slotIDKeys    = []string{"slotId", "slot_id", "id"}
	slotTokenKeys = []string{"slotToken", "slot_token", "token", "bookingToken", "booking_token"}
	restIDKeys    = []string{"restaurantId", "restaurant_id", "outletId", "outlet_id", "venueId"}
)

// TimeSlots accepts bare time strings (always available) or slot objects.
func TimeSlots(payload any) []model.ParsedTimeSlot {
	items := jsonval.ToArray(payload)
	if len(items) == 0 {
		return nil
	}

	var out []model.ParsedTimeSlot
	for _, el := range items {
		if s, ok := jsonval.AsText(el); ok {
			out = append(out, model.ParsedTimeSlot{Time: s, Available: true})
			continue
		}
		obj, ok := jsonval.AsMap(el)
		if !ok {
			continue
		}
		t := jsonval.FirstString(obj, slotTimeKeys...)
		if t == "" {
			continue
		}
		out = append(out, model.ParsedTimeSlot{
			Time:         t,
			Available:    slotAvailable(obj),
			SlotID:       jsonval.FirstString(obj, slotIDKeys...),
			SlotToken:    jsonval.FirstString(obj, slotTokenKeys...),
			RestaurantID: jsonval.FirstString(obj, restIDKeys...),
		})
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func slotAvailable(obj map[string]any) bool {
	if b, ok := jsonval.FirstBool(obj, "available", "isAvailable", "is_available", "bookable"); ok {
		return b
	}
	switch strings.ToLower(jsonval.FirstText(obj, "status", "state")) {
	case "full", "booked", "unavailable", "sold_out", "closed":
		return false
	}
	if n, ok := jsonval.FirstNumber(obj, "remaining", "seats_left", "seatsLeft"); ok {
		return n > 0
	}
	return true
}

var (
	addressTextKeys  = []string{"address", "full_address", "fullAddress", "formatted_address", "formattedAddress", "address_line", "addressLine", "display_address"}
	addressLabelKeys = []string{"label", "type", "tag", "annotation", "category"}
	latKeys          = []string{"lat", "latitude", "location.lat", "geo.lat"}
	lngKeys          = []string{"lng", "lon", "longitude", "location.lng", "geo.lng"}
)

// Addresses requires a resolvable address text per element.
func Addresses(payload any) []model.ParsedAddress {
	items := jsonval.ToArray(payload)
	if len(items) == 0 {
		return nil
	}

	var out []model.ParsedAddress
	for i, el := range items {
		obj, ok := jsonval.AsMap(el)
		if !ok {
			continue
		}
		text := addressText(obj)
		if text == "" {
			continue
		}
		label := jsonval.FirstText(obj, addressLabelKeys...)
		if label == "" {
			label = "Address"
		}
		id := jsonval.FirstString(obj, "id", "address_id", "addressId", "_id")
		if id == "" {
			id = strconv.Itoa(i)
		}
		out = append(out, model.ParsedAddress{
			ID:      id,
			Label:   label,
			Address: text,
			Lat:     optional(jsonval.FirstNumber(obj, latKeys...)),
			Lng:     optional(jsonval.FirstNumber(obj, lngKeys...)),
		})
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func addressText(obj map[string]any) string {
	if s := jsonval.FirstText(obj, addressTextKeys...); s != "" {
		return s
	}
	// Structured addresses: join the populated line fields.
	var parts []string
	for _, key := range []string{"line1", "line2", "street", "locality", "city", "pincode", "zip"} {
		if s := jsonval.FirstString(obj, key); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) >= 2 {
		return strings.Join(parts, ", ")
	}
	return ""
}
