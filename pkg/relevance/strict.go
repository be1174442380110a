// FILE: pkg/relevance/strict.go
// PURPOSE: Strict-first filtering and ranking with a broaden-prompt outcome

package relevance

import (
	"fmt"
	"sort"
	"strings"

	"ai-shopping-be/pkg/jsonval"
	"ai-shopping-be/pkg/model"
)

// Display caps per vertical.
const (
	FoodDisplayCap    = 12
	DiningDisplayCap  = 10
	DefaultDisplayCap = 20
)

// Dimension weights added to an item's score when it satisfies a constraint.
const (
	weightCuisine  = 3.0
	weightDish     = 2.5
	weightArea     = 2.0
	weightBudget   = 1.5
	weightVibe     = 1.5
	weightDelivery = 1.0
	weightDiet     = 1.0
	weightSpicy    = 1.0
)

// DisplayCap returns the maximum list length shown for vertical.
func DisplayCap(vertical string) int {
	switch vertical {
	case model.VerticalFood:
		return FoodDisplayCap
	case model.VerticalDining:
		return DiningDisplayCap
	}
	return DefaultDisplayCap
}

// Outcome is the result of a strict-first pass.
type Outcome[T any] struct {
	Items                []T
	RequireBroadenPrompt bool
	ActiveFilters        []string
	Debug                model.RelevanceDebug
}

// dimension is one strict filter. active reports whether the query asked for
// it; hasData whether an item carries data for it at all.
type dimension[T any] struct {
	key      string
	weight   float64
	active   func(c *model.StrictConstraintSnapshot) bool
	hasData  func(item T) bool
	match    func(item T, c *model.StrictConstraintSnapshot) bool
	describe func(c *model.StrictConstraintSnapshot) string
}

// profile binds the dimensions of one item type with its text and bonus.
type profile[T any] struct {
	name       string
	dimensions []dimension[T]
	text       func(item T) string
	bonus      func(item T) float64
}

type strictRequest struct {
	query       string
	constraints *model.StrictConstraintSnapshot
	broaden     bool
	cap         int
}

// strictFirst filters items on every applicable dimension, emits a broaden
// prompt when nothing survives and broadening was not requested, and
// otherwise ranks the survivors (or the full set as a relaxed fallback).
func strictFirst[T any](items []T, req strictRequest, p profile[T]) Outcome[T] {
	c := req.constraints
	if c == nil {
		c = &model.StrictConstraintSnapshot{}
	}

	applied := applicable(items, c, p.dimensions)
	keys := make([]string, len(applied))
	for i, d := range applied {
		keys[i] = d.key
	}
	debug := model.RelevanceDebug{
		Strategy:       p.name,
		AppliedKeys:    keys,
		CandidateCount: len(items),
	}

	terms := Tokenize(req.query)
	if len(terms) == 0 && len(applied) == 0 {
		out := capItems(items, req.cap)
		debug.Strategy = p.name + ":passthrough"
		debug.ReturnedCount = len(out)
		return Outcome[T]{Items: out, Debug: debug}
	}

	strict := make([]T, 0, len(items))
	for _, it := range items {
		if matchesAll(it, c, applied) {
			strict = append(strict, it)
		}
	}

	if len(strict) == 0 && len(applied) > 0 && !req.broaden {
		debug.ReturnedCount = 0
		return Outcome[T]{
			Items:                []T{},
			RequireBroadenPrompt: true,
			ActiveFilters:        describeFilters(c, applied),
			Debug:                debug,
		}
	}

	pool := strict
	if len(pool) == 0 {
		pool = items
		debug.Broadened = len(applied) > 0
	}

	scored := make([]scoredItem[T], len(pool))
	for i, it := range pool {
		s := float64(countTerms(p.text(it), terms))
		for _, d := range applied {
			if d.match(it, c) {
				s += d.weight
			}
		}
		if p.bonus != nil {
			s += p.bonus(it)
		}
		scored[i] = scoredItem[T]{item: it, score: s, index: i}
	}
	sortScored(scored)

	out := make([]T, 0, len(scored))
	for _, s := range scored {
		out = append(out, s.item)
	}
	out = capItems(out, req.cap)
	debug.ReturnedCount = len(out)

	var filters []string
	if len(strict) > 0 {
		filters = describeFilters(c, applied)
	}
	return Outcome[T]{Items: out, ActiveFilters: filters, Debug: debug}
}

// applicable keeps dimensions the query asked for and at least one item
// carries data for.
func applicable[T any](items []T, c *model.StrictConstraintSnapshot, dims []dimension[T]) []dimension[T] {
	var out []dimension[T]
	for _, d := range dims {
		if !d.active(c) {
			continue
		}
		for _, it := range items {
			if d.hasData(it) {
				out = append(out, d)
				break
			}
		}
	}
	return out
}

func matchesAll[T any](item T, c *model.StrictConstraintSnapshot, dims []dimension[T]) bool {
	for _, d := range dims {
		if !d.match(item, c) {
			return false
		}
	}
	return true
}

func describeFilters[T any](c *model.StrictConstraintSnapshot, dims []dimension[T]) []string {
	out := make([]string, 0, len(dims))
	for _, d := range dims {
		out = append(out, d.describe(c))
	}
	return out
}

type scoredItem[T any] struct {
	item  T
	score float64
	index int
}

// sortScored orders by score descending with the original index as an
// explicit tiebreak.
func sortScored[T any](items []scoredItem[T]) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].score != items[j].score {
			return items[i].score > items[j].score
		}
		return items[i].index < items[j].index
	})
}

func capItems[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit:limit]
	}
	return items
}

// ============================================================
// RESTAURANT DIMENSIONS
// ============================================================

func restaurantText(r model.ParsedRestaurant) string {
	parts := []string{r.Name, r.Cuisine, r.Locality, r.Address}
	parts = append(parts, r.Tags...)
	parts = append(parts, r.Offers...)
	return Normalize(strings.Join(parts, " "))
}

func restaurantBonus(r model.ParsedRestaurant) float64 {
	b := ratingBonus(r.Rating)
	if len(r.Offers) > 0 {
		b += 0.2
	}
	return b
}

func ratingBonus(rating *float64) float64 {
	switch {
	case rating == nil:
		return 0
	case *rating >= 4.5:
		return 0.6
	case *rating >= 4.0:
		return 0.3
	}
	return 0
}

func restaurantProfile(gz *Gazetteer) profile[model.ParsedRestaurant] {
	return profile[model.ParsedRestaurant]{
		name:  "strict:restaurants",
		text:  restaurantText,
		bonus: restaurantBonus,
		dimensions: []dimension[model.ParsedRestaurant]{
			{
				key:     "cuisine",
				weight:  weightCuisine,
				active:  func(c *model.StrictConstraintSnapshot) bool { return len(c.Cuisines) > 0 },
				hasData: func(r model.ParsedRestaurant) bool { return strings.TrimSpace(r.Cuisine) != "" },
				match: func(r model.ParsedRestaurant, c *model.StrictConstraintSnapshot) bool {
					text := Normalize(r.Cuisine + " " + r.Name)
					for _, cuisine := range c.Cuisines {
						if containsAnyPhrase(text, gz.CuisineTerms(cuisine)) {
							return true
						}
					}
					return false
				},
				describe: func(c *model.StrictConstraintSnapshot) string {
					return "cuisine: " + strings.Join(c.Cuisines, ", ")
				},
			},
			{
				key:     "area",
				weight:  weightArea,
				active:  func(c *model.StrictConstraintSnapshot) bool { return len(c.Areas) > 0 },
				hasData: func(r model.ParsedRestaurant) bool { return r.Locality != "" || r.Address != "" },
				match: func(r model.ParsedRestaurant, c *model.StrictConstraintSnapshot) bool {
					return containsAnyPhrase(Normalize(r.Locality+" "+r.Address), c.Areas)
				},
				describe: func(c *model.StrictConstraintSnapshot) string {
					return "area: " + strings.Join(c.Areas, ", ")
				},
			},
			{
				key:     "budget",
				weight:  weightBudget,
				active:  func(c *model.StrictConstraintSnapshot) bool { return c.BudgetMax != nil },
				hasData: func(r model.ParsedRestaurant) bool { return r.PriceForTwo != nil },
				match: func(r model.ParsedRestaurant, c *model.StrictConstraintSnapshot) bool {
					return r.PriceForTwo != nil && *r.PriceForTwo <= *c.BudgetMax
				},
				describe: describeBudget,
			},
			{
				key:     "vibe",
				weight:  weightVibe,
				active:  func(c *model.StrictConstraintSnapshot) bool { return len(c.Vibes) > 0 },
				hasData: func(r model.ParsedRestaurant) bool { return len(r.Tags) > 0 },
				match: func(r model.ParsedRestaurant, c *model.StrictConstraintSnapshot) bool {
					text := Normalize(strings.Join(r.Tags, " ") + " " + r.Name)
					for _, v := range c.Vibes {
						if containsAnyPhrase(text, gz.VibeTerms(v)) {
							return true
						}
					}
					return false
				},
				describe: func(c *model.StrictConstraintSnapshot) string {
					return "vibe: " + strings.Join(c.Vibes, ", ")
				},
			},
			{
				key:    "delivery",
				weight: weightDelivery,
				active: func(c *model.StrictConstraintSnapshot) bool { return c.MaxDeliveryMins != nil },
				hasData: func(r model.ParsedRestaurant) bool {
					_, ok := r.DeliveryMinutes()
					return ok
				},
				match: func(r model.ParsedRestaurant, c *model.StrictConstraintSnapshot) bool {
					mins, ok := r.DeliveryMinutes()
					return ok && mins <= *c.MaxDeliveryMins
				},
				describe: func(c *model.StrictConstraintSnapshot) string {
					return fmt.Sprintf("delivery: under %d mins", *c.MaxDeliveryMins)
				},
			},
		},
	}
}

// ============================================================
// MENU DIMENSIONS
// ============================================================

func productText(p model.ParsedProduct) string {
	return Normalize(strings.Join([]string{
		p.Name, p.Brand, p.Description, p.GroupLabel, p.Quantity, p.RestaurantName,
	}, " "))
}

func productBonus(p model.ParsedProduct) float64 {
	b := ratingBonus(p.Rating)
	if p.Available {
		b += 0.1
	}
	return b
}

func menuProfile() profile[model.ParsedProduct] {
	return profile[model.ParsedProduct]{
		name:  "strict:menu",
		text:  productText,
		bonus: productBonus,
		dimensions: []dimension[model.ParsedProduct]{
			{
				key:     "dish",
				weight:  weightDish,
				active:  func(c *model.StrictConstraintSnapshot) bool { return len(c.Dishes) > 0 },
				hasData: func(p model.ParsedProduct) bool { return p.Name != "" },
				match: func(p model.ParsedProduct, c *model.StrictConstraintSnapshot) bool {
					return containsAnyPhrase(Normalize(p.Name+" "+p.Description+" "+p.GroupLabel), c.Dishes)
				},
				describe: func(c *model.StrictConstraintSnapshot) string {
					return "dish: " + strings.Join(c.Dishes, ", ")
				},
			},
			{
				key:     "diet",
				weight:  weightDiet,
				active:  func(c *model.StrictConstraintSnapshot) bool { return c.Diet != "" },
				hasData: func(p model.ParsedProduct) bool { return p.ItemType != "" },
				match: func(p model.ParsedProduct, c *model.StrictConstraintSnapshot) bool {
					return dietMatches(p.ItemType, c.Diet)
				},
				describe: func(c *model.StrictConstraintSnapshot) string {
					return "diet: " + strings.ReplaceAll(c.Diet, "_", "-")
				},
			},
			{
				key:     "spicy",
				weight:  weightSpicy,
				active:  func(c *model.StrictConstraintSnapshot) bool { return c.Spicy },
				hasData: func(p model.ParsedProduct) bool { return spicyPattern.MatchString(productText(p)) },
				match: func(p model.ParsedProduct, _ *model.StrictConstraintSnapshot) bool {
					return spicyPattern.MatchString(productText(p))
				},
				describe: func(*model.StrictConstraintSnapshot) string { return "spicy" },
			},
			{
				key:     "budget",
				weight:  weightBudget,
				active:  func(c *model.StrictConstraintSnapshot) bool { return c.BudgetMax != nil },
				hasData: func(p model.ParsedProduct) bool { return p.Price != nil },
				match: func(p model.ParsedProduct, c *model.StrictConstraintSnapshot) bool {
					return p.Price != nil && *p.Price <= *c.BudgetMax
				},
				describe: describeBudget,
			},
		},
	}
}

// dietMatches treats vegan items as satisfying a veg request.
func dietMatches(itemType, diet string) bool {
	t := strings.ReplaceAll(strings.ToLower(itemType), "-", "_")
	switch diet {
	case model.DietVeg:
		return t == model.DietVeg || t == model.DietVegan
	case model.DietVegan:
		return t == model.DietVegan
	case model.DietNonVeg:
		return t == model.DietNonVeg || t == "nonveg"
	}
	return true
}

func describeBudget(c *model.StrictConstraintSnapshot) string {
	return "budget: under ₹" + jsonval.FormatNumber(*c.BudgetMax)
}
