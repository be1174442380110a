// FILE: pkg/parser/fields.go
// PURPOSE: Field-name fallback chains shared by the shape parsers

package parser

import (
	"regexp"
	"strconv"
	"strings"

	"ai-shopping-be/pkg/jsonval"
)

// Ordered fallback chains. Earlier keys win.
var (
	nameKeys = []string{
		"name", "title", "product_name", "productName", "display_name", "displayName",
		"item_name", "itemName", "dish_name", "dishName",
	}
	idKeys = []string{
		"id", "product_id", "productId", "item_id", "itemId", "sku", "sku_id", "skuId",
		"variant_id", "variantId", "spin", "_id",
	}
	priceKeys = []string{
		"price", "offer_price", "offerPrice", "selling_price", "sellingPrice",
		"sale_price", "salePrice", "final_price", "finalPrice", "discounted_price",
		"discountedPrice", "defaultPrice", "default_price", "base_price", "basePrice",
		"unit_price", "unitPrice", "store_price", "storePrice",
	}
	priceObjectKeys = []string{
		"offerPrice", "offer_price", "sellingPrice", "selling_price", "value", "amount", "price",
	}
	mrpKeys = []string{
		"mrp", "MRP", "max_price", "maxPrice", "marked_price", "markedPrice",
		"original_price", "originalPrice", "list_price", "listPrice", "strike_price", "strikePrice",
	}
	availableKeys = []string{
		"available", "isAvailable", "is_available", "in_stock", "inStock", "instock",
		"availability", "is_in_stock", "inventory.in_stock", "inventory.inStock",
	}
	unavailableKeys = []string{"out_of_stock", "outOfStock", "sold_out", "soldOut", "isSoldOut"}
	imageKeys       = []string{
		"image", "image_url", "imageUrl", "img", "thumbnail", "thumbnail_url", "photo",
		"imageId", "cloudinaryImageId",
	}
	descriptionKeys = []string{"description", "desc", "details", "subtitle", "short_description"}
	brandKeys       = []string{"brand", "brand_name", "brandName", "manufacturer"}
	quantityKeys    = []string{
		"quantity_description", "quantityDescription", "pack_size", "packSize", "weight",
		"net_quantity", "netQuantity", "unit", "size", "quantity", "variant_label",
	}
	groupKeys          = []string{"groupLabel", "category", "category_name", "categoryName", "group", "section"}
	sourceQueryKeys    = []string{"sourceQuery", "source_query", "search_query", "query"}
	restaurantNameKeys = []string{
		"restaurantName", "restaurant_name", "restaurant.name", "outlet_name", "outletName", "store_name", "storeName",
	}
	ratingKeys = []string{
		"rating", "avgRating", "avg_rating", "aggregate_rating", "rating.rating",
		"rating.aggregate_rating", "ratings.aggregatedRating.rating", "avgRatingString",
	}
	variationKeys = []string{"variations", "variants"}
)

var priceishKey = regexp.MustCompile(`(?i)price|cost|amount|mrp`)

// resolvePrice walks the price chain for a single source object.
func resolvePrice(obj map[string]any) (float64, bool) {
	for _, key := range priceKeys {
		v, ok := obj[key]
		if !ok || v == nil {
			continue
		}
		if f, ok := numberOrPriceObject(v); ok {
			return f, true
		}
	}

	if vars := variationList(obj); len(vars) > 0 {
		if first, ok := jsonval.AsMap(vars[0]); ok {
			if f, ok := jsonval.FirstNumber(first, "price.offerPrice", "price.offer_price", "price.mrp"); ok {
				return f, true
			}
			if f, ok := resolvePriceShallow(first); ok {
				return f, true
			}
		}
	}

	if f, ok := jsonval.FirstNumber(obj, "amount", "cost"); ok {
		return f, true
	}

	return scanPriceishKeys(obj)
}

// resolvePriceShallow is resolvePrice without the variation and scan steps,
// used for variation objects themselves.
func resolvePriceShallow(obj map[string]any) (float64, bool) {
	for _, key := range priceKeys {
		if v, ok := obj[key]; ok && v != nil {
			if f, ok := numberOrPriceObject(v); ok {
				return f, true
			}
		}
	}
	return jsonval.FirstNumber(obj, "amount", "cost")
}

func resolveMRP(obj map[string]any) (float64, bool) {
	if f, ok := jsonval.FirstNumber(obj, mrpKeys...); ok {
		return f, true
	}
	if f, ok := jsonval.FirstNumber(obj, "price.mrp", "price.MRP", "price.original"); ok {
		return f, true
	}
	if vars := variationList(obj); len(vars) > 0 {
		if first, ok := jsonval.AsMap(vars[0]); ok {
			return jsonval.FirstNumber(first, "price.mrp", "mrp")
		}
	}
	return 0, false
}

func numberOrPriceObject(v any) (float64, bool) {
	if m, ok := jsonval.AsMap(v); ok {
		return jsonval.FirstNumber(m, priceObjectKeys...)
	}
	return jsonval.AsNumber(v)
}

// scanPriceishKeys is the last resort: any key mentioning price/cost/amount/mrp
// holding a number. Keys are visited in sorted order for determinism.
func scanPriceishKeys(obj map[string]any) (float64, bool) {
	for _, key := range sortedKeys(obj) {
		if !priceishKey.MatchString(key) {
			continue
		}
		if f, ok := numberOrPriceObject(obj[key]); ok {
			return f, true
		}
	}
	return 0, false
}

func resolveAvailable(obj map[string]any) bool {
	for _, key := range availableKeys {
		v, ok := jsonval.Lookup(obj, strings.Split(key, ".")...)
		if !ok {
			continue
		}
		if b, ok := jsonval.AsBool(v); ok {
			return b
		}
		if s, ok := v.(string); ok {
			switch strings.ToLower(strings.TrimSpace(s)) {
			case "in_stock", "instock", "available", "in stock":
				return true
			case "out_of_stock", "outofstock", "unavailable", "sold_out", "out of stock":
				return false
			}
		}
	}
	if b, ok := jsonval.FirstBool(obj, unavailableKeys...); ok {
		return !b
	}
	return true
}

func resolveItemType(obj map[string]any) string {
	if s := jsonval.FirstText(obj, "itemType", "item_type"); s != "" {
		return strings.ToLower(s)
	}
	if b, ok := jsonval.FirstBool(obj, "isVeg", "is_veg", "veg"); ok {
		if b {
			return "veg"
		}
		return "non_veg"
	}
	switch strings.ToUpper(jsonval.FirstText(obj, "vegClassifier", "veg_classifier", "dietary")) {
	case "VEG", "VEGETARIAN":
		return "veg"
	case "NONVEG", "NON_VEG", "NON-VEG":
		return "non_veg"
	case "VEGAN":
		return "vegan"
	}
	return ""
}

func resolveImage(obj map[string]any) string {
	if s := jsonval.FirstText(obj, imageKeys...); s != "" {
		return s
	}
	if imgs, ok := obj["images"].([]any); ok && len(imgs) > 0 {
		if s, ok := jsonval.AsText(imgs[0]); ok {
			return s
		}
		if m, ok := jsonval.AsMap(imgs[0]); ok {
			return jsonval.FirstText(m, "url", "src", "image")
		}
	}
	return ""
}

func resolveRating(obj map[string]any) (float64, bool) {
	return jsonval.FirstNumber(obj, ratingKeys...)
}

func variationList(obj map[string]any) []any {
	for _, key := range variationKeys {
		if arr, ok := obj[key].([]any); ok && len(arr) > 0 {
			return arr
		}
	}
	return nil
}

func resolveID(obj map[string]any, index int) string {
	if s := jsonval.FirstString(obj, idKeys...); s != "" {
		return s
	}
	return strconv.Itoa(index)
}

// groupKeyOf slugs a group label ("Cold Drinks" -> "cold-drinks").
func groupKeyOf(label string) string {
	return jsonval.Slug(label)
}

func optional(f float64, ok bool) *float64 {
	if !ok {
		return nil
	}
	return jsonval.Float(f)
}
