// FILE: pkg/parser/products.go
// PURPOSE: Normalize product and menu-item listings into ParsedProduct

package parser

import (
	"fmt"
	"sort"

	"ai-shopping-be/pkg/jsonval"
	"ai-shopping-be/pkg/model"
)

// Paise amounts arrive as integers above this threshold.
const paiseThreshold = 1000

// Products parses every element carrying a resolvable name. Items with more
// than one variation expand into one product per variation. It returns nil
// when no element qualifies.
func Products(payload any) []model.ParsedProduct {
	items := jsonval.ToArray(payload)
	if len(items) == 0 {
		return nil
	}

	var out []model.ParsedProduct
	for i, el := range items {
		obj, ok := jsonval.AsMap(el)
		if !ok {
			continue
		}
		name := jsonval.FirstString(obj, nameKeys...)
		if name == "" {
			continue
		}
		out = append(out, expandProduct(obj, name, i)...)
	}
	if len(out) == 0 {
		return nil
	}

	if allPaise(out) {
		for i := range out {
			out[i].Price = jsonval.Float(*out[i].Price / 100)
			if out[i].MRP != nil {
				out[i].MRP = jsonval.Float(*out[i].MRP / 100)
			}
		}
	}
	return out
}

func expandProduct(obj map[string]any, name string, index int) []model.ParsedProduct {
	base := baseProduct(obj, name, index)

	vars := variationList(obj)
	if len(vars) <= 1 {
		return []model.ParsedProduct{base}
	}

	out := make([]model.ParsedProduct, 0, len(vars))
	for n, v := range vars {
		p := base
		p.ID = fmt.Sprintf("%s-var-%d", base.ID, n)

		vobj, ok := jsonval.AsMap(v)
		if !ok {
			if label, ok := jsonval.AsText(v); ok {
				p.Quantity = label
			}
			out = append(out, p)
			continue
		}

		if label := jsonval.FirstString(vobj, "name", "label", "title", "quantity", "size", "weight"); label != "" {
			p.Quantity = label
		}
		if f, ok := jsonval.FirstNumber(vobj, "price.offerPrice", "price.offer_price"); ok {
			p.Price = jsonval.Float(f)
		} else if f, ok := resolvePriceShallow(vobj); ok {
			p.Price = jsonval.Float(f)
		}
		if f, ok := jsonval.FirstNumber(vobj, "price.mrp", "mrp"); ok {
			p.MRP = jsonval.Float(f)
		}
		if jsonval.HasAny(vobj, availableKeys...) || jsonval.HasAny(vobj, unavailableKeys...) {
			p.Available = resolveAvailable(vobj)
		}
		if img := resolveImage(vobj); img != "" {
			p.Image = img
		}
		out = append(out, p)
	}
	return out
}

func baseProduct(obj map[string]any, name string, index int) model.ParsedProduct {
	group := jsonval.FirstString(obj, groupKeys...)
	p := model.ParsedProduct{
		ID:             resolveID(obj, index),
		Name:           name,
		Price:          optional(resolvePrice(obj)),
		MRP:            optional(resolveMRP(obj)),
		Image:          resolveImage(obj),
		Brand:          jsonval.FirstText(obj, brandKeys...),
		Quantity:       jsonval.FirstText(obj, quantityKeys...),
		Available:      resolveAvailable(obj),
		Description:    jsonval.FirstText(obj, descriptionKeys...),
		Rating:         optional(resolveRating(obj)),
		GroupLabel:     group,
		GroupKey:       jsonval.FirstString(obj, "groupKey", "group_key"),
		SourceQuery:    jsonval.FirstText(obj, sourceQueryKeys...),
		ItemType:       resolveItemType(obj),
		RestaurantName: jsonval.FirstText(obj, restaurantNameKeys...),
	}
	if p.GroupKey == "" && group != "" {
		p.GroupKey = groupKeyOf(group)
	}
	return p
}

// allPaise reports whether every product has an integral price above the
// paise threshold. A single fractional or small price disables conversion.
func allPaise(products []model.ParsedProduct) bool {
	seen := false
	for _, p := range products {
		if p.Price == nil {
			continue
		}
		if !jsonval.IsInteger(*p.Price) || *p.Price <= paiseThreshold {
			return false
		}
		seen = true
	}
	return seen
}

func sortedKeys(obj map[string]any) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
