//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"github.com/google/wire"
	"go.uber.org/zap"

	"consolidator-backend/application/ports"
	querybus "consolidator-backend/application/queries/bus"
	domainconfig "consolidator-backend/domain/config"
	"consolidator-backend/infrastructure/config"
	"consolidator-backend/pkg/auth"
	"consolidator-backend/pkg/extensions"
	"consolidator-backend/pkg/observability"
)

// Container holds all application dependencies
type Container struct {
	Config         *config.Config
	AnalysisConfig *domainconfig.AnalysisConfig
	Logger         *zap.Logger
	RecordStore    ports.RecordStore
	Reporter       ports.Reporter
	EventPublisher ports.EventPublisher
	QueryBus       *querybus.QueryBus
	Cache          ports.Cache
	Metrics        *observability.Metrics
	Tracer         *observability.Tracer
	RateLimiter    *auth.DistributedRateLimiter
	Hooks          *extensions.HookManager
}

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideEventBridgeClient,
	ProvideCloudWatchClient,
	ProvideAnalysisConfig,
	ProvideTextAnalyzer,
	ProvideFieldExtractor,
	ProvideRecordBuilder,
	ProvideConvergenceDetector,
	ProvideConnectionScorer,
	ProvideSuggestionRanker,
	ProvideLayoutGenerator,
	ProvideRecordStore,
	ProvideEventPublisher,
	ProvideReporter,
	ProvideMetrics,
	ProvideTracer,
	ProvideDistributedRateLimiter,
	ProvideQueryBus,
	ProvideInMemoryCache,
	ProvideHookManager,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
