// FILE: pkg/router/router.go
// PURPOSE: Orchestrates unwrapping, shape parsing and relevance for tool results

package router

import (
	"fmt"

	"ai-shopping-be/pkg/jsonval"
	"ai-shopping-be/pkg/model"
	"ai-shopping-be/pkg/parser"
	"ai-shopping-be/pkg/relevance"
	"ai-shopping-be/pkg/unwrap"
)

// Logger is the subset of the application logger the router writes to.
type Logger interface {
	Debug(module, message string, details map[string]interface{})
	Warn(module, message string, details map[string]interface{})
}

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}

// Request is one tool result to interpret.
type Request struct {
	ToolName   string
	Content    any
	VerticalID string
	ToolInput  map[string]any
	Context    *model.ToolRenderContext
}

// Router turns raw tool results into ParsedToolResult values.
type Router struct {
	relevance bool
	engine    *relevance.Engine
	logger    Logger
}

type Option func(*Router)

// WithRelevance toggles reranking of list results. It is off by default.
func WithRelevance(enabled bool) Option {
	return func(r *Router) { r.relevance = enabled }
}

// WithGazetteer swaps the tables used for constraint extraction and
// cuisine/vibe matching during reranking.
func WithGazetteer(gz *relevance.Gazetteer) Option {
	return func(r *Router) { r.engine = relevance.NewEngine(gz) }
}

func WithLogger(l Logger) Option {
	return func(r *Router) {
		if l != nil {
			r.logger = l
		}
	}
}

func New(opts ...Option) *Router {
	r := &Router{engine: relevance.DefaultEngine, logger: nopLogger{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Relevance returns the engine used to rerank results and build render
// contexts, so callers extract constraints with the same tables.
func (r *Router) Relevance() *relevance.Engine {
	return r.engine
}

// RelevanceEnabled reports whether list results are reranked.
func (r *Router) RelevanceEnabled() bool {
	return r.relevance
}

var defaultRouter = New()

// ParseToolResult interprets a tool result with the default router
// (relevance off).
func ParseToolResult(toolName string, content any, verticalID string, toolInput map[string]any, rc *model.ToolRenderContext) model.ParsedToolResult {
	return defaultRouter.Parse(Request{
		ToolName:   toolName,
		Content:    content,
		VerticalID: verticalID,
		ToolInput:  toolInput,
		Context:    rc,
	})
}

// Parse never fails: a panic anywhere in the pipeline degrades to a raw
// result carrying the original content.
func (r *Router) Parse(req Request) (result model.ParsedToolResult) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Warn("ROUTER", "Tool result parsing panicked, returning raw content", map[string]interface{}{
				"tool":  req.ToolName,
				"panic": fmt.Sprint(rec),
			})
			result = model.NewRaw(req.Content)
		}
	}()

	result = r.interpret(req)
	annotate(&result, req.ToolInput)

	if r.relevance && req.Context != nil {
		result = r.engine.Apply(result, req.Context)
	}

	r.logger.Debug("ROUTER", "Tool result parsed", map[string]interface{}{
		"tool":  req.ToolName,
		"type":  string(result.Type),
		"count": result.Len(),
	})
	return result
}

func (r *Router) interpret(req Request) model.ParsedToolResult {
	data := unwrap.Content(req.Content)
	payload := unwrap.ExtractPayload(data, 0)

	switch MatchRoute(req.ToolName) {
	case RouteCart:
		// Totals live beside the items, so try before extraction strips them.
		if c := parser.Cart(data); c != nil {
			return model.NewCart(c)
		}
		if c := parser.Cart(payload); c != nil {
			return model.NewCart(c)
		}
	case RouteAddress:
		if a := parser.Addresses(payload); a != nil {
			return model.NewAddresses(a)
		}
	case RouteConfirmation:
		if typ, c := parser.Confirmation(req.ToolName, data); c != nil {
			return model.NewConfirmation(typ, c)
		}
	case RouteSlots:
		if s := parser.TimeSlots(payload); s != nil {
			return model.NewTimeSlots(s)
		}
	case RouteSearch:
		if res, ok := r.parseSearch(req, payload); ok {
			return res
		}
	}

	if isStatusLike(data) {
		if obj, _ := jsonval.AsMap(data); obj != nil {
			if _, hasCart := jsonval.AsMap(obj["cart"]); hasCart {
				if c := parser.Cart(data); c != nil {
					return model.NewCart(c)
				}
			}
		}
	}

	if shape := parser.DetectShape(payload); shape != model.TypeRaw {
		if res, ok := parser.ParseAs(shape, payload); ok {
			return res
		}
	}

	for _, v := range []any{data, payload} {
		if s := parser.Status(v); s != nil {
			return model.NewStatus(s)
		}
	}
	for _, v := range []any{data, payload} {
		if info := parser.Info(v); info != nil {
			return model.NewInfo(info)
		}
	}
	return model.NewRaw(req.Content)
}

// parseSearch tries products and restaurants in the order the payload
// signals suggest.
func (r *Router) parseSearch(req Request, payload any) (model.ParsedToolResult, bool) {
	pref := ResolvePreference(req.ToolName, InferSignals(payload))
	if pref == PreferUndecided {
		pref = PreferProducts
		if req.VerticalID == model.VerticalDining {
			pref = PreferRestaurants
		}
	}

	order := []model.ResultType{model.TypeProducts, model.TypeRestaurants}
	if pref == PreferRestaurants {
		order = []model.ResultType{model.TypeRestaurants, model.TypeProducts}
	}
	for _, t := range order {
		if res, ok := parser.ParseAs(t, payload); ok {
			return res, true
		}
	}
	return model.ParsedToolResult{}, false
}

func isStatusLike(v any) bool {
	obj, ok := jsonval.AsMap(v)
	if !ok {
		return false
	}
	_, hasSuccess := obj["success"]
	_, hasMessage := obj["message"]
	return hasSuccess || hasMessage
}

// annotate fills product metadata the payload omits from the tool input:
// the search query and the restaurant a menu was fetched for.
func annotate(result *model.ParsedToolResult, toolInput map[string]any) {
	if result.Type != model.TypeProducts || len(toolInput) == 0 {
		return
	}
	query := jsonval.FirstText(toolInput, "query", "search_query", "q", "keyword")
	restaurant := jsonval.FirstText(toolInput, "restaurant_name", "restaurantName", "outlet_name")
	if query == "" && restaurant == "" {
		return
	}
	for i := range result.Products {
		p := &result.Products[i]
		if p.SourceQuery == "" {
			p.SourceQuery = query
		}
		if p.RestaurantName == "" {
			p.RestaurantName = restaurant
		}
	}
}
