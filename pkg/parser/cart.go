// FILE: pkg/parser/cart.go
// PURPOSE: Cart parser with bill resolution from line items, fields or sums

package parser

import (
	"math"
	"strconv"
	"strings"

	"ai-shopping-be/pkg/jsonval"
	"ai-shopping-be/pkg/model"
)

var (
	cartItemListKeys = []string{"items", "cart_items", "cartItems"}
	subtotalKeys     = []string{"subtotal", "sub_total", "subTotal", "item_total", "itemTotal", "items_total", "itemsTotal"}
	deliveryFeeKeys  = []string{"delivery_fee", "deliveryFee", "delivery_charge", "deliveryCharge", "delivery_charges", "deliveryCharges", "delivery"}
	totalKeys        = []string{"total", "grand_total", "grandTotal", "to_pay", "toPay", "total_amount", "totalAmount", "order_total", "orderTotal", "final_total"}
	breakdownKeys    = []string{"lineItems", "line_items", "billBreakdown", "bill_breakdown", "billDetails", "bill_details"}
	quantityNumKeys  = []string{"quantity", "qty", "count", "units"}
)

// cartContexts lists the nesting levels searched for the item array.
var cartContexts = [][]string{
	nil,
	{"cart"},
	{"data"},
	{"data", "cart"},
}

// Cart parses cart state. An empty item array is a valid empty cart; a
// missing item array declines.
func Cart(payload any) *model.CartState {
	if arr, ok := payload.([]any); ok {
		items := cartItems(arr)
		if items == nil {
			return nil
		}
		sub := computedSubtotal(items)
		return &model.CartState{Items: items, Subtotal: sub, Total: sub}
	}

	obj, ok := jsonval.AsMap(payload)
	if !ok {
		return nil
	}

	var (
		ctx    map[string]any
		found  []any
		nested bool
	)
	for _, path := range cartContexts {
		c := obj
		if len(path) > 0 {
			v, ok := jsonval.Lookup(obj, path...)
			if !ok {
				continue
			}
			if c, ok = jsonval.AsMap(v); !ok {
				continue
			}
		}
		if list, ok := firstList(c, cartItemListKeys); ok {
			ctx, found, nested = c, list, len(path) > 0
			break
		}
	}
	if ctx == nil {
		return nil
	}

	items := cartItems(found)
	if items == nil {
		items = []model.CartItem{}
	}

	scopes := []map[string]any{ctx}
	if nested {
		scopes = append(scopes, obj)
	}

	subtotal, hasSub := firstAmount(scopes, subtotalKeys)
	delivery, _ := firstAmount(scopes, deliveryFeeKeys)
	total, hasTotal := firstAmount(scopes, totalKeys)

	bill := readBreakdown(scopes)
	if bill.hasSubtotal {
		subtotal, hasSub = bill.subtotal, true
	}
	if bill.hasDelivery {
		delivery = bill.delivery
	}
	if bill.hasTotal {
		total, hasTotal = bill.total, true
	}

	if !hasSub {
		subtotal = computedSubtotal(items)
	}
	if !hasTotal {
		total = subtotal + delivery
	}

	return &model.CartState{
		Items:       items,
		Subtotal:    subtotal,
		DeliveryFee: delivery,
		Total:       total,
	}
}

// cartItems returns nil only when list itself is not a usable item array.
func cartItems(list []any) []model.CartItem {
	out := make([]model.CartItem, 0, len(list))
	for i, el := range list {
		obj, ok := jsonval.AsMap(el)
		if !ok {
			continue
		}
		name := jsonval.FirstString(obj, nameKeys...)
		if name == "" {
			continue
		}
		// Fractional quantities (0.5 kg) round to whole units, never below one.
		qty := 1
		if n, ok := jsonval.FirstNumber(obj, quantityNumKeys...); ok && n > 0 {
			qty = max(1, int(math.Round(n)))
		}
		id := jsonval.FirstString(obj, idKeys...)
		if id == "" {
			id = strconv.Itoa(i)
		}
		out = append(out, model.CartItem{
			ID:       id,
			Name:     name,
			Price:    optional(resolvePriceShallow(obj)),
			Quantity: qty,
			Image:    resolveImage(obj),
		})
	}
	if len(list) > 0 && len(out) == 0 {
		return nil
	}
	return out
}

func computedSubtotal(items []model.CartItem) float64 {
	var sum float64
	for _, it := range items {
		if it.Price != nil {
			sum += *it.Price * float64(it.Quantity)
		}
	}
	return sum
}

type billLines struct {
	subtotal, delivery, total          float64
	hasSubtotal, hasDelivery, hasTotal bool
}

// readBreakdown scans {label, value} bill rows by label substring.
func readBreakdown(scopes []map[string]any) billLines {
	var bill billLines
	for _, scope := range scopes {
		rows, ok := firstList(scope, breakdownKeys)
		if !ok {
			continue
		}
		for _, row := range rows {
			obj, ok := jsonval.AsMap(row)
			if !ok {
				continue
			}
			label := strings.ToLower(jsonval.FirstText(obj, "label", "title", "name", "key"))
			if label == "" {
				continue
			}
			raw, _ := jsonval.Lookup(obj, "value")
			if raw == nil {
				raw, _ = jsonval.Lookup(obj, "amount")
			}
			value, ok := billValue(raw)
			if !ok {
				continue
			}
			switch {
			case containsAny(label, "to pay", "grand total", "final total"):
				bill.total, bill.hasTotal = value, true
			case containsAny(label, "item total", "subtotal", "sub total"):
				bill.subtotal, bill.hasSubtotal = value, true
			case strings.Contains(label, "delivery"):
				bill.delivery, bill.hasDelivery = value, true
			}
		}
		return bill
	}
	return bill
}

func billValue(v any) (float64, bool) {
	if s, ok := v.(string); ok && strings.EqualFold(strings.TrimSpace(s), "free") {
		return 0, true
	}
	return numberOrPriceObject(v)
}

func firstAmount(scopes []map[string]any, keys []string) (float64, bool) {
	for _, scope := range scopes {
		for _, key := range keys {
			v, ok := scope[key]
			if !ok || v == nil {
				continue
			}
			if f, ok := billValue(v); ok {
				return f, true
			}
		}
	}
	return 0, false
}

func firstList(obj map[string]any, keys []string) ([]any, bool) {
	for _, key := range keys {
		if list, ok := obj[key].([]any); ok {
			return list, true
		}
	}
	return nil, false
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
