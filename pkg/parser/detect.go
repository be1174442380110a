// FILE: pkg/parser/detect.go
// PURPOSE: Key-presence shape detection used when tool names are inconclusive

package parser

import (
	"regexp"

	"ai-shopping-be/pkg/jsonval"
	"ai-shopping-be/pkg/model"
)

var timeLike = regexp.MustCompile(`(?i)^\s*\d{1,2}(:\d{2})?\s*(am|pm)?\s*(-\s*\d{1,2}(:\d{2})?\s*(am|pm)?)?\s*$`)

// Key sets consulted by DetectShape, in the order they are checked.
var (
	detectCartKeys       = []string{"subtotal", "sub_total", "cart_total", "lineItems", "billBreakdown", "deliveryFee", "delivery_fee", "total"}
	detectSlotKeys       = []string{"slot", "start_time", "startTime", "slotId", "slot_id", "slotToken"}
	detectRestaurantKeys = []string{
		"cuisine", "cuisines", "locality", "priceForTwo", "price_for_two", "costForTwo",
		"cost_for_two", "deliveryTime", "delivery_time", "sla", "areaName", "feeDetails",
	}
	detectAddressKeys = []string{"label", "type", "tag", "annotation", "category", "lat", "latitude", "id"}
	detectProductKeys = []string{
		"price", "mrp", "offer_price", "offerPrice", "selling_price", "variations", "variants",
		"isVeg", "in_stock", "inStock", "brand", "sku", "quantity",
	}
)

// DetectShape guesses a result type from the first payload item. It returns
// TypeRaw when nothing matches.
func DetectShape(payload any) model.ResultType {
	if obj, ok := jsonval.AsMap(payload); ok {
		if _, ok := firstList(obj, cartItemListKeys); ok && jsonval.HasAny(obj, detectCartKeys...) {
			return model.TypeCart
		}
	}

	items := jsonval.ToArray(payload)
	if len(items) == 0 {
		return model.TypeRaw
	}

	if s, ok := jsonval.AsText(items[0]); ok {
		if timeLike.MatchString(s) {
			return model.TypeTimeSlots
		}
		return model.TypeRaw
	}

	first, ok := jsonval.AsMap(items[0])
	if !ok {
		return model.TypeRaw
	}
	named := jsonval.FirstString(first, nameKeys...) != ""

	switch {
	case jsonval.HasAny(first, detectSlotKeys...) || (!named && jsonval.HasAny(first, "time")):
		return model.TypeTimeSlots
	case jsonval.HasAny(first, addressTextKeys...) && !jsonval.HasAny(first, detectRestaurantKeys...) &&
		jsonval.HasAny(first, detectAddressKeys...):
		return model.TypeAddresses
	case named && jsonval.HasAny(first, detectRestaurantKeys...):
		return model.TypeRestaurants
	case named && (jsonval.HasAny(first, detectProductKeys...) || jsonval.HasAny(first, priceKeys...)):
		return model.TypeProducts
	case named && jsonval.HasAny(first, RestaurantIndicators...):
		return model.TypeRestaurants
	case named && len(items) > 1:
		return model.TypeProducts
	}
	return model.TypeRaw
}

// ParseAs runs the parser for t. It reports false when the parser declines.
func ParseAs(t model.ResultType, payload any) (model.ParsedToolResult, bool) {
	switch t {
	case model.TypeProducts:
		if p := Products(payload); p != nil {
			return model.NewProducts(p), true
		}
	case model.TypeRestaurants:
		if r := Restaurants(payload); r != nil {
			return model.NewRestaurants(r), true
		}
	case model.TypeTimeSlots:
		if s := TimeSlots(payload); s != nil {
			return model.NewTimeSlots(s), true
		}
	case model.TypeAddresses:
		if a := Addresses(payload); a != nil {
			return model.NewAddresses(a), true
		}
	case model.TypeCart:
		if c := Cart(payload); c != nil {
			return model.NewCart(c), true
		}
	case model.TypeStatus:
		if s := Status(payload); s != nil {
			return model.NewStatus(s), true
		}
	case model.TypeInfo:
		if i := Info(payload); i != nil {
			return model.NewInfo(i), true
		}
	}
	return model.ParsedToolResult{}, false
}
