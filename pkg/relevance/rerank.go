// FILE: pkg/relevance/rerank.go
// PURPOSE: Entry points that pick a relevance strategy per vertical

package relevance

import (
	"strings"

	"ai-shopping-be/pkg/model"
)

// Engine runs extraction and reranking against one Gazetteer, so cuisine
// and vibe matching use the same tables as constraint extraction.
type Engine struct {
	gz        *Gazetteer
	extractor *Extractor
}

// NewEngine binds an Engine to gz; nil selects DefaultGazetteer.
func NewEngine(gz *Gazetteer) *Engine {
	if gz == nil {
		gz = DefaultGazetteer
	}
	return &Engine{gz: gz, extractor: NewExtractor(gz)}
}

// DefaultEngine backs the package-level helpers.
var DefaultEngine = NewEngine(DefaultGazetteer)

// ============================================================
// STRICT-FIRST ENTRY POINTS
// ============================================================

// RerankRestaurants applies the strict-first model to a restaurant list.
func RerankRestaurants(items []model.ParsedRestaurant, rc *model.ToolRenderContext) Outcome[model.ParsedRestaurant] {
	return DefaultEngine.RerankRestaurants(items, rc)
}

func (e *Engine) RerankRestaurants(items []model.ParsedRestaurant, rc *model.ToolRenderContext) Outcome[model.ParsedRestaurant] {
	return strictFirst(items, e.requestFor(rc), restaurantProfile(e.gz))
}

// RerankMenuItems applies the strict-first model to menu items. In food menu
// mode with a locked restaurant the candidates are scoped to it first.
func RerankMenuItems(items []model.ParsedProduct, rc *model.ToolRenderContext) Outcome[model.ParsedProduct] {
	return DefaultEngine.RerankMenuItems(items, rc)
}

func (e *Engine) RerankMenuItems(items []model.ParsedProduct, rc *model.ToolRenderContext) Outcome[model.ParsedProduct] {
	scoped, locked := items, false
	if rc != nil && rc.VerticalID == model.VerticalFood && rc.Mode == model.ModeMenu {
		scoped, locked = ScopeToRestaurant(items, rc.LockedRestaurant)
	}
	out := strictFirst(scoped, e.requestFor(rc), menuProfile())
	out.Debug.LockScoped = locked
	return out
}

func (e *Engine) requestFor(rc *model.ToolRenderContext) strictRequest {
	if rc == nil {
		return strictRequest{cap: DefaultDisplayCap}
	}
	c := rc.StrictConstraints
	if c == nil {
		c = e.extractor.For(rc.VerticalID, rc.LatestUserQuery)
	}
	return strictRequest{
		query:       rc.LatestUserQuery,
		constraints: c,
		broaden:     rc.AllowConstraintBroadening || WantsBroaden(rc.LatestUserQuery),
		cap:         DisplayCap(rc.VerticalID),
	}
}

// ScopeToRestaurant keeps items whose RestaurantName matches locked. It
// falls back to the full list when no item carries a restaurant name or
// none match, and reports whether scoping was applied.
func ScopeToRestaurant(items []model.ParsedProduct, locked string) ([]model.ParsedProduct, bool) {
	want := Normalize(locked)
	if want == "" {
		return items, false
	}

	var scoped []model.ParsedProduct
	tagged := false
	for _, it := range items {
		name := Normalize(it.RestaurantName)
		if name == "" {
			continue
		}
		tagged = true
		if strings.Contains(name, want) || strings.Contains(want, name) {
			scoped = append(scoped, it)
		}
	}
	if !tagged || len(scoped) == 0 {
		return items, false
	}
	return scoped, true
}

// ============================================================
// GENERIC QUERY-OVERLAP RANKING
// ============================================================

// RankByOverlap reorders items by how many query terms appear in their text,
// plus bonus. It never filters; an empty query keeps the input order.
func RankByOverlap[T any](items []T, query string, text func(T) string, bonus func(T) float64) []T {
	terms := Tokenize(query)
	if len(terms) == 0 || len(items) < 2 {
		return items
	}
	scored := make([]scoredItem[T], len(items))
	for i, it := range items {
		s := float64(countTerms(text(it), terms))
		if bonus != nil {
			s += bonus(it)
		}
		scored[i] = scoredItem[T]{item: it, score: s, index: i}
	}
	sortScored(scored)

	out := make([]T, len(scored))
	for i, s := range scored {
		out[i] = s.item
	}
	return out
}

func RankProductsByOverlap(items []model.ParsedProduct, query string) []model.ParsedProduct {
	return RankByOverlap(items, query, productText, productBonus)
}

func RankRestaurantsByOverlap(items []model.ParsedRestaurant, query string) []model.ParsedRestaurant {
	return RankByOverlap(items, query, restaurantText, func(r model.ParsedRestaurant) float64 {
		return ratingBonus(r.Rating)
	})
}

// ============================================================
// RESULT POST-PROCESSING
// ============================================================

// Apply reranks the list variants of result for rc. Food and dining use the
// strict-first model; other verticals get query-overlap ordering. Non-list
// results pass through untouched.
func Apply(result model.ParsedToolResult, rc *model.ToolRenderContext) model.ParsedToolResult {
	return DefaultEngine.Apply(result, rc)
}

func (e *Engine) Apply(result model.ParsedToolResult, rc *model.ToolRenderContext) model.ParsedToolResult {
	if rc == nil {
		return result
	}
	strict := rc.VerticalID == model.VerticalFood || rc.VerticalID == model.VerticalDining

	switch result.Type {
	case model.TypeRestaurants:
		if !strict {
			before := len(result.Restaurants)
			result.Restaurants = RankRestaurantsByOverlap(result.Restaurants, rc.LatestUserQuery)
			result.Debug = overlapDebug(before, len(result.Restaurants))
			return result
		}
		out := e.RerankRestaurants(result.Restaurants, rc)
		result.Restaurants = out.Items
		result.RequireBroadenPrompt = out.RequireBroadenPrompt
		result.ActiveFilters = out.ActiveFilters
		result.Debug = &out.Debug

	case model.TypeProducts:
		if !strict {
			before := len(result.Products)
			result.Products = RankProductsByOverlap(result.Products, rc.LatestUserQuery)
			result.Debug = overlapDebug(before, len(result.Products))
			return result
		}
		out := e.RerankMenuItems(result.Products, rc)
		result.Products = out.Items
		result.RequireBroadenPrompt = out.RequireBroadenPrompt
		result.ActiveFilters = out.ActiveFilters
		result.Debug = &out.Debug
	}
	return result
}

func overlapDebug(candidates, returned int) *model.RelevanceDebug {
	return &model.RelevanceDebug{Strategy: "overlap", CandidateCount: candidates, ReturnedCount: returned}
}

// BuildRenderContext assembles the per-turn context from the latest user
// message, extracting strict constraints for the vertical.
func BuildRenderContext(vertical, query, lockedRestaurant, mode string) *model.ToolRenderContext {
	return DefaultEngine.BuildRenderContext(vertical, query, lockedRestaurant, mode)
}

func (e *Engine) BuildRenderContext(vertical, query, lockedRestaurant, mode string) *model.ToolRenderContext {
	if mode == "" {
		mode = model.ModeDiscover
	}
	return &model.ToolRenderContext{
		VerticalID:                vertical,
		LatestUserQuery:           query,
		LockedRestaurant:          lockedRestaurant,
		Mode:                      mode,
		StrictConstraints:         e.extractor.For(vertical, query),
		AllowConstraintBroadening: WantsBroaden(query),
	}
}
