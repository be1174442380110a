package bootstrap

import (
	"ai-shopping-be/internal/config"
	"ai-shopping-be/internal/controller"
	"ai-shopping-be/internal/pkg/logger"
	"ai-shopping-be/internal/repository/memory"
	"ai-shopping-be/internal/service"
	"ai-shopping-be/pkg/history"
	"ai-shopping-be/pkg/router"
)

type Container struct {
	// Controllers
	InterpretController controller.IInterpretController

	// Shared infrastructure (exposed for main.go and health checks)
	Logger      logger.ILogger
	ResultCache *memory.ResultCache
}

func NewContainer(cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	return NewContainerWithLogger(cfg, sysLogger)
}

// NewContainerWithLogger wires the graph around an existing logger.
func NewContainerWithLogger(cfg *config.Config, sysLogger logger.ILogger) *Container {
	// 1. Stores
	resultCache := memory.NewResultCache(cfg.Interpret.ParseCacheTTL, cfg.Interpret.ParseCacheClean)

	// 2. Core pipeline
	toolRouter := router.New(
		router.WithRelevance(cfg.Interpret.RelevanceEnabled),
		router.WithLogger(sysLogger),
	)
	sanitizer := history.NewSanitizer(sysLogger)

	// 3. Services
	interpreterService := service.NewInterpreterService(
		toolRouter,
		sanitizer,
		resultCache,
		sysLogger,
		cfg.Interpret.TruncateMaxChars,
	)

	// 4. Controllers
	return &Container{
		InterpretController: controller.NewInterpretController(interpreterService),
		Logger:              sysLogger,
		ResultCache:         resultCache,
	}
}
