// FILE: pkg/parser/restaurants.go
// PURPOSE: Normalize restaurant/outlet listings into ParsedRestaurant

package parser

import (
	"strings"

	"ai-shopping-be/pkg/jsonval"
	"ai-shopping-be/pkg/model"
)

// RestaurantIndicators mark an object as a restaurant listing. A name alone
// never qualifies since menu items carry names too.
var RestaurantIndicators = []string{
	"cuisine", "cuisines", "rating", "avgRating", "avg_rating", "aggregate_rating",
	"priceForTwo", "price_for_two", "costForTwo", "cost_for_two", "costForTwoMessage",
	"locality", "address", "deliveryTime", "delivery_time", "areaName", "area_name",
	"sla", "feeDetails", "totalRatings", "totalRatingsString",
}

var (
	cuisineKeys     = []string{"cuisine", "cuisines", "cuisine_type", "cuisineType"}
	priceForTwoKeys = []string{
		"priceForTwo", "price_for_two", "costForTwo", "cost_for_two", "costForTwoMessage",
		"average_cost_for_two", "avgCostForTwo",
	}
	deliveryKeys = []string{
		"deliveryTime", "delivery_time", "sla.deliveryTime", "sla.slaString", "eta", "delivery_eta",
	}
	localityKeys = []string{"locality", "areaName", "area_name", "area", "neighbourhood", "neighborhood"}
	addressKeys  = []string{"address", "full_address", "formatted_address", "address_line", "addressLine"}
	offerKeys    = []string{"offers", "aggregatedDiscountInfo.descriptionList", "discounts", "deals"}
	tagKeys      = []string{"tags", "highlights", "ambience", "features", "badges"}
)

// Restaurants parses every named element carrying at least one restaurant
// indicator. It returns nil when no element qualifies.
func Restaurants(payload any) []model.ParsedRestaurant {
	items := jsonval.ToArray(payload)
	if len(items) == 0 {
		return nil
	}

	var out []model.ParsedRestaurant
	for i, el := range items {
		obj, ok := jsonval.AsMap(el)
		if !ok {
			continue
		}
		// Swiggy-style listings nest the outlet under info.
		if info, ok := jsonval.AsMap(obj["info"]); ok && jsonval.FirstString(obj, "name") == "" {
			obj = info
		}
		name := jsonval.FirstString(obj, nameKeys...)
		if name == "" || !jsonval.HasAny(obj, RestaurantIndicators...) {
			continue
		}
		out = append(out, model.ParsedRestaurant{
			ID:           resolveID(obj, i),
			Name:         name,
			Cuisine:      resolveCuisine(obj),
			Rating:       optional(resolveRating(obj)),
			PriceForTwo:  optional(jsonval.FirstNumber(obj, priceForTwoKeys...)),
			DeliveryTime: resolveDeliveryTime(obj),
			Image:        resolveImage(obj),
			Address:      resolveAddressText(obj),
			Locality:     jsonval.FirstText(obj, localityKeys...),
			Offers:       stringList(obj, offerKeys, "title", "description", "header", "text"),
			Tags:         stringList(obj, tagKeys, "name", "label", "title"),
		})
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func resolveCuisine(obj map[string]any) string {
	for _, key := range cuisineKeys {
		switch v := obj[key].(type) {
		case []any:
			parts := make([]string, 0, len(v))
			for _, c := range v {
				if s, ok := jsonval.AsText(c); ok {
					parts = append(parts, s)
				}
			}
			if len(parts) > 0 {
				return strings.Join(parts, ", ")
			}
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		}
	}
	return ""
}

func resolveDeliveryTime(obj map[string]any) string {
	for _, key := range deliveryKeys {
		v, ok := jsonval.Lookup(obj, strings.Split(key, ".")...)
		if !ok {
			continue
		}
		switch t := v.(type) {
		case float64:
			return jsonval.FormatNumber(t) + " mins"
		case int:
			return jsonval.FormatNumber(float64(t)) + " mins"
		case string:
			if s := strings.TrimSpace(t); s != "" {
				return s
			}
		}
	}
	return ""
}

func resolveAddressText(obj map[string]any) string {
	for _, key := range addressKeys {
		switch v := obj[key].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case map[string]any:
			if s := jsonval.FirstText(v, "full", "formatted", "line1", "address", "street"); s != "" {
				return s
			}
		}
	}
	return ""
}

// stringList collects strings from the first list-valued key. Object
// elements contribute the first of textKeys they carry.
func stringList(obj map[string]any, keys []string, textKeys ...string) []string {
	for _, key := range keys {
		v, ok := jsonval.Lookup(obj, strings.Split(key, ".")...)
		if !ok {
			continue
		}
		if s, ok := jsonval.AsText(v); ok {
			return []string{s}
		}
		arr, ok := v.([]any)
		if !ok {
			continue
		}
		var out []string
		for _, el := range arr {
			if s, ok := jsonval.AsText(el); ok {
				out = append(out, s)
				continue
			}
			if m, ok := jsonval.AsMap(el); ok {
				if s := jsonval.FirstText(m, textKeys...); s != "" {
					out = append(out, s)
				}
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}
