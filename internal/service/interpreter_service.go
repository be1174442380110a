// FILE: internal/service/interpreter_service.go
package service

import (
	"context"
	"encoding/json"
	"fmt"

	"ai-shopping-be/internal/dto"
	"ai-shopping-be/internal/pkg/logger"
	"ai-shopping-be/internal/pkg/serverutils"
	"ai-shopping-be/internal/repository/memory"
	"ai-shopping-be/pkg/history"
	"ai-shopping-be/pkg/model"
	"ai-shopping-be/pkg/relevance"
	"ai-shopping-be/pkg/router"
	"ai-shopping-be/pkg/truncate"
	"ai-shopping-be/pkg/variants"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// parseNamespace scopes content-identity keys of parse requests.
var parseNamespace = uuid.MustParse("3f0c6a52-8d1e-4b7a-9c2f-51e4d7a8b903")

var tracer = otel.Tracer("ai-shopping-be/interpreter")

type IInterpreterService interface {
	Parse(ctx context.Context, req *dto.ParseRequest) (*dto.ParseResponse, error)
	Truncate(ctx context.Context, req *dto.TruncateRequest) (*dto.TruncateResponse, error)
	Rerank(ctx context.Context, req *dto.RerankRequest) (*dto.RerankResponse, error)
	Variants(ctx context.Context, req *dto.VariantsRequest) (*dto.VariantsResponse, error)
	Sanitize(ctx context.Context, req *dto.SanitizeRequest) (*dto.SanitizeResponse, error)
}

type interpreterService struct {
	router          *router.Router
	sanitizer       *history.Sanitizer
	cache           *memory.ResultCache
	logger          logger.ILogger
	defaultMaxChars int
}

func NewInterpreterService(
	r *router.Router,
	sanitizer *history.Sanitizer,
	cache *memory.ResultCache,
	logger logger.ILogger,
	defaultMaxChars int,
) IInterpreterService {
	return &interpreterService{
		router:          r,
		sanitizer:       sanitizer,
		cache:           cache,
		logger:          logger,
		defaultMaxChars: defaultMaxChars,
	}
}

func (s *interpreterService) Parse(ctx context.Context, req *dto.ParseRequest) (*dto.ParseResponse, error) {
	_, span := tracer.Start(ctx, "interpreter.parse")
	defer span.End()
	span.SetAttributes(attribute.String("tool.name", req.ToolName), attribute.String("vertical.id", req.VerticalId))

	key, err := s.contentKey(req)
	if err != nil {
		return nil, fmt.Errorf("failed to derive content key: %w", err)
	}

	if cached, ok := s.cache.Get(key); ok {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return &dto.ParseResponse{Id: key, Cached: true, Result: cached}, nil
	}

	rc := renderContext(s.router.Relevance(), req.VerticalId, req.Context)
	if rc != nil {
		if err := serverutils.ValidateRequest(rc); err != nil {
			return nil, err
		}
	}

	result := s.router.Parse(router.Request{
		ToolName:   req.ToolName,
		Content:    req.Content,
		VerticalID: req.VerticalId,
		ToolInput:  req.ToolInput,
		Context:    rc,
	})
	s.cache.Save(key, result)

	span.SetAttributes(attribute.String("result.type", string(result.Type)), attribute.Int("result.count", result.Len()))
	s.logger.Info("INTERPRETER", "Tool result parsed", map[string]interface{}{
		"id":    key.String(),
		"tool":  req.ToolName,
		"type":  string(result.Type),
		"count": result.Len(),
	})
	return &dto.ParseResponse{Id: key, Result: result}, nil
}

// contentKey hashes everything that influences the parse. Map keys marshal
// sorted, so equal requests always produce the same key.
func (s *interpreterService) contentKey(req *dto.ParseRequest) (uuid.UUID, error) {
	payload, err := json.Marshal(struct {
		Tool      string                    `json:"t"`
		Content   any                       `json:"c"`
		Vertical  string                    `json:"v"`
		Input     map[string]any            `json:"i"`
		Context   *dto.RenderContextRequest `json:"x"`
		Relevance bool                      `json:"r"`
	}{req.ToolName, req.Content, req.VerticalId, req.ToolInput, req.Context, s.router.RelevanceEnabled()})
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.NewSHA1(parseNamespace, payload), nil
}

func renderContext(engine *relevance.Engine, vertical string, rc *dto.RenderContextRequest) *model.ToolRenderContext {
	if rc == nil {
		return nil
	}
	out := engine.BuildRenderContext(vertical, rc.LatestUserQuery, rc.LockedRestaurant, rc.Mode)
	out.AllowConstraintBroadening = out.AllowConstraintBroadening || rc.AllowBroadening
	return out
}

func (s *interpreterService) Truncate(ctx context.Context, req *dto.TruncateRequest) (*dto.TruncateResponse, error) {
	_, span := tracer.Start(ctx, "interpreter.truncate")
	defer span.End()

	maxChars := req.MaxChars
	if maxChars <= 0 {
		maxChars = s.defaultMaxChars
	}
	text := truncate.SmartTruncateJSONContent(req.JsonText, req.QueryTerms, maxChars)

	res := &dto.TruncateResponse{
		Text:           text,
		OriginalLength: len(req.JsonText),
		Length:         len(text),
		Truncated:      text != req.JsonText,
	}
	if res.Truncated {
		s.logger.Debug("INTERPRETER", "JSON content truncated", map[string]interface{}{
			"before":    res.OriginalLength,
			"after":     res.Length,
			"max_chars": maxChars,
		})
	}
	return res, nil
}

func (s *interpreterService) Rerank(ctx context.Context, req *dto.RerankRequest) (*dto.RerankResponse, error) {
	_, span := tracer.Start(ctx, "interpreter.rerank")
	defer span.End()

	mode := req.Mode
	if mode == "" && req.Kind == "menu" {
		mode = model.ModeMenu
	}
	engine := s.router.Relevance()
	rc := engine.BuildRenderContext(req.VerticalId, req.Query, req.LockedRestaurant, mode)
	rc.AllowConstraintBroadening = rc.AllowConstraintBroadening || req.AllowBroadening
	if err := serverutils.ValidateRequest(rc); err != nil {
		return nil, err
	}

	var in model.ParsedToolResult
	switch req.Kind {
	case "restaurants":
		in = model.NewRestaurants(req.Restaurants)
	case "menu", "products":
		in = model.NewProducts(req.Products)
	default:
		return nil, fmt.Errorf("unsupported rerank kind %q", req.Kind)
	}

	out := engine.Apply(in, rc)
	span.SetAttributes(attribute.Int("result.count", out.Len()), attribute.Bool("broaden.prompt", out.RequireBroadenPrompt))
	return &dto.RerankResponse{
		Restaurants:          out.Restaurants,
		Products:             out.Products,
		RequireBroadenPrompt: out.RequireBroadenPrompt,
		ActiveFilters:        out.ActiveFilters,
		Constraints:          rc.StrictConstraints,
		Debug:                out.Debug,
	}, nil
}

func (s *interpreterService) Variants(ctx context.Context, req *dto.VariantsRequest) (*dto.VariantsResponse, error) {
	res := variants.ParseVariantsFromText(req.Text)
	return &res, nil
}

func (s *interpreterService) Sanitize(ctx context.Context, req *dto.SanitizeRequest) (*dto.SanitizeResponse, error) {
	_, span := tracer.Start(ctx, "interpreter.sanitize")
	defer span.End()

	maxChars := req.MaxChars
	if maxChars <= 0 {
		maxChars = s.defaultMaxChars
	}
	out := s.sanitizer.Sanitize(req.Messages, maxChars)

	truncated := 0
	for i := range out {
		for j := range out[i].Content {
			if out[i].Content[j].Content != req.Messages[i].Content[j].Content {
				truncated++
			}
		}
	}
	span.SetAttributes(attribute.Int("truncated", truncated))
	return &dto.SanitizeResponse{Messages: out, Truncated: truncated}, nil
}
