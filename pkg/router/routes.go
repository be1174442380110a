package router

import (
	"regexp"
	"strings"

	"ai-shopping-be/pkg/jsonval"
	"ai-shopping-be/pkg/parser"
)

// Route is the parser family a tool name points at.
type Route string

const (
	RouteNone         Route = ""
	RouteCart         Route = "cart"
	RouteAddress      Route = "address"
	RouteConfirmation Route = "confirmation"
	RouteSlots        Route = "slots"
	RouteSearch       Route = "search"
)

type routeRule struct {
	route   Route
	pattern *regexp.Regexp
}

// routeTable is checked top to bottom; the first matching pattern wins.
// Committing verbs (place, submit, create, book, reserve) outrank the cart
// and search families so submit_cart_order or book_restaurant confirm.
var routeTable = []routeRule{
	{RouteConfirmation, regexp.MustCompile(`(?i)(^|[^a-z])((place|submit|create|confirm|complete)[a-z_]*(order|booking|reservation)|checkout|book_?(a_)?(table|slot|reservation|restaurant)|book($|[^a-z])|make_?(booking|reservation)|reserve)`)},
	{RouteCart, regexp.MustCompile(`(?i)(cart|basket|bag)`)},
	{RouteAddress, regexp.MustCompile(`(?i)(address|saved_?locations?|delivery_?locations?)`)},
	{RouteSlots, regexp.MustCompile(`(?i)(slot|availability|available_times|time_?slots)`)},
	{RouteSearch, regexp.MustCompile(`(?i)(search|find|discover|browse|menu|list|recommend|suggest|get_.*(product|restaurant|item|dish|cuisine))`)},
}

// readOnlyToolPattern marks lookups that mention an order or booking
// without committing one (get_order_status, track_order).
var readOnlyToolPattern = regexp.MustCompile(`(?i)(^|[^a-z])(get|fetch|track|view|check|show)|status|history|details`)

// MatchRoute resolves toolName against the route table. Names no rule
// claims still route to confirmation when they carry an order or booking
// verb and are not read-only lookups.
func MatchRoute(toolName string) Route {
	for _, rule := range routeTable {
		if rule.pattern.MatchString(toolName) {
			return rule.route
		}
	}
	if _, ok := parser.ConfirmationType(toolName); ok && !readOnlyToolPattern.MatchString(toolName) {
		return RouteConfirmation
	}
	return RouteNone
}

// ============================================================
// PAYLOAD SIGNALS
// ============================================================

// signalSampleSize bounds how many payload items are inspected.
const signalSampleSize = 5

var (
	strongRestaurantKeys = []string{
		"cuisine", "cuisines", "locality", "priceForTwo", "price_for_two", "costForTwo",
		"cost_for_two", "deliveryTime", "delivery_time", "sla", "areaName", "area_name",
		"feeDetails", "totalRatings", "totalRatingsString",
	}
	weakRestaurantKeys = []string{"rating", "avgRating", "avg_rating", "aggregate_rating"}
	productSignalKeys  = []string{
		"price", "mrp", "variations", "variants", "isVeg", "is_veg", "offer_price", "offerPrice",
		"selling_price", "sellingPrice", "defaultPrice", "in_stock", "inStock", "itemType",
		"item_type", "addons", "brand", "sku",
	}
	menuKeyFragments = []string{"menu", "dish", "veg", "addon", "variant"}

	dishNamePattern       = regexp.MustCompile(`(?i)\b(paneer|biryani|pizza|burger|dosa|idli|vada|noodles|fried rice|pasta|sandwich|rolls?|momos?|tikka|curry|masala|naan|roti|thali|kebab|shawarma|wrap|salad|soup|cake|ice cream|fries|manchurian|dal|chicken|mutton|fish|prawn|lassi|shake)\b`)
	menuToolPattern       = regexp.MustCompile(`(?i)(menu|dish|item|food_item|product)`)
	restaurantToolPattern = regexp.MustCompile(`(?i)(restaurant|outlet|place|venue|eatery|dining)`)
)

// Signals summarizes which key families appear in the sampled items.
type Signals struct {
	StrongRestaurant bool
	WeakRestaurant   bool
	Product          bool
	Menu             bool
	DishName         bool
}

// InferSignals samples up to the first five object items of payload.
func InferSignals(payload any) Signals {
	var s Signals
	items := jsonval.ToArray(payload)
	if len(items) > signalSampleSize {
		items = items[:signalSampleSize]
	}
	for _, el := range items {
		obj, ok := jsonval.AsMap(el)
		if !ok {
			continue
		}
		s.StrongRestaurant = s.StrongRestaurant || jsonval.HasAny(obj, strongRestaurantKeys...)
		s.WeakRestaurant = s.WeakRestaurant || jsonval.HasAny(obj, weakRestaurantKeys...)
		s.Product = s.Product || jsonval.HasAny(obj, productSignalKeys...)
		s.Menu = s.Menu || hasMenuKey(obj)
		if name := jsonval.FirstText(obj, "name", "title"); name != "" && dishNamePattern.MatchString(name) {
			s.DishName = true
		}
	}
	return s
}

func hasMenuKey(obj map[string]any) bool {
	for key := range obj {
		lower := strings.ToLower(key)
		for _, frag := range menuKeyFragments {
			if strings.Contains(lower, frag) {
				return true
			}
		}
	}
	return false
}

// Preference is the parse order chosen for a search-like tool.
type Preference int

const (
	PreferUndecided Preference = iota
	PreferProducts
	PreferRestaurants
)

// ResolvePreference decides between product and restaurant parsing. Rating
// alone is ambiguous, so it only points at restaurants on a tool whose name
// says restaurant discovery and whose items do not read like dishes.
func ResolvePreference(toolName string, s Signals) Preference {
	toolMenu := menuToolPattern.MatchString(toolName)
	toolRestaurant := restaurantToolPattern.MatchString(toolName)

	preferProducts := toolMenu ||
		s.Menu ||
		(s.Product && !s.StrongRestaurant) ||
		(s.WeakRestaurant && !s.StrongRestaurant && (!toolRestaurant || s.DishName))
	if preferProducts {
		return PreferProducts
	}
	if s.StrongRestaurant || (s.WeakRestaurant && toolRestaurant) {
		return PreferRestaurants
	}
	return PreferUndecided
}
