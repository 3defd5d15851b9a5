package di

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"

	"consolidator-backend/application/ports"
	"consolidator-backend/application/queries"
	querybus "consolidator-backend/application/queries/bus"
	queries_handlers "consolidator-backend/application/queries/handlers"
	domainconfig "consolidator-backend/domain/config"
	"consolidator-backend/domain/services"
	"consolidator-backend/infrastructure/config"
	"consolidator-backend/infrastructure/messaging"
	"consolidator-backend/infrastructure/messaging/eventbridge"
	"consolidator-backend/infrastructure/persistence/dynamodb"
	"consolidator-backend/pkg/auth"
	"consolidator-backend/pkg/extensions"
	"consolidator-backend/pkg/observability"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var logger *zap.Logger
	var err error

	if cfg.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}

	if err != nil {
		return nil, err
	}

	return logger, nil
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideAnalysisConfig selects the analysis tuning profile for the environment
func ProvideAnalysisConfig(cfg *config.Config) *domainconfig.AnalysisConfig {
	return domainconfig.LoadAnalysisConfig(cfg.Environment)
}

// ProvideTextAnalyzer creates the text analyzer
func ProvideTextAnalyzer() services.TextAnalyzer {
	return services.NewDefaultTextAnalyzer()
}

// ProvideFieldExtractor creates the payload field extractor
func ProvideFieldExtractor(analysisCfg *domainconfig.AnalysisConfig, analyzer services.TextAnalyzer, logger *zap.Logger) services.FieldExtractor {
	return services.NewDefaultFieldExtractor(analysisCfg, analyzer, logger)
}

// ProvideRecordBuilder creates the record builder
func ProvideRecordBuilder(extractor services.FieldExtractor, logger *zap.Logger) services.RecordBuilder {
	return services.NewDefaultRecordBuilder(extractor, logger)
}

// ProvideConvergenceDetector creates the convergence detector
func ProvideConvergenceDetector(analysisCfg *domainconfig.AnalysisConfig) services.ConvergenceDetector {
	return services.NewDefaultConvergenceDetector(analysisCfg)
}

// ProvideConnectionScorer creates the pairwise connection scorer
func ProvideConnectionScorer(analysisCfg *domainconfig.AnalysisConfig) services.ConnectionScorer {
	return services.NewDefaultConnectionScorer(analysisCfg)
}

// ProvideSuggestionRanker creates the suggestion ranker
func ProvideSuggestionRanker(analysisCfg *domainconfig.AnalysisConfig, scorer services.ConnectionScorer, logger *zap.Logger) services.SuggestionRanker {
	return services.NewDefaultSuggestionRanker(analysisCfg, scorer, logger)
}

// ProvideLayoutGenerator creates the layout generator
func ProvideLayoutGenerator(analysisCfg *domainconfig.AnalysisConfig) services.LayoutGenerator {
	return services.NewDefaultLayoutGenerator(analysisCfg)
}

// ProvideRecordStore creates the DynamoDB-backed record store
func ProvideRecordStore(
	client *awsdynamodb.Client,
	cfg *config.Config,
	analysisCfg *domainconfig.AnalysisConfig,
	builder services.RecordBuilder,
	cache ports.Cache,
	logger *zap.Logger,
) ports.RecordStore {
	return dynamodb.NewRecordStore(
		client,
		cfg.DynamoDBTable,
		analysisCfg,
		builder,
		cache,
		logger,
	)
}

// ProvideEventPublisher creates the EventBridge publisher
func ProvideEventPublisher(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventPublisher {
	return eventbridge.NewPublisher(client, cfg.EventBusName, logger)
}

// ProvideReporter selects the failure reporter. Development runs report to
// the structured log; everything else goes to EventBridge.
func ProvideReporter(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.Reporter {
	if cfg.IsDevelopment() || cfg.EventBusName == "" {
		return messaging.NewLogReporter(logger)
	}
	return eventbridge.NewPublisher(client, cfg.EventBusName, logger)
}

// ProvideMetrics creates metrics instance
func ProvideMetrics(client *awscloudwatch.Client, cfg *config.Config) *observability.Metrics {
	namespace := fmt.Sprintf("Consolidator/%s", cfg.Environment)
	return observability.NewMetrics(namespace, client)
}

// ProvideTracer creates the X-Ray tracer
func ProvideTracer() *observability.Tracer {
	return observability.NewTracer("consolidator")
}

// ProvideDistributedRateLimiter creates a distributed rate limiter
func ProvideDistributedRateLimiter(client *awsdynamodb.Client, cfg *config.Config) *auth.DistributedRateLimiter {
	return auth.NewDistributedRateLimiter(
		client,
		cfg.DynamoDBTable,
		100,           // 100 requests
		1*time.Minute, // per minute
		"API",         // key prefix for API rate limiting
	)
}

// QueryHandlerAdapter adapts specific query handlers to the generic interface
type QueryHandlerAdapter struct {
	handler func(context.Context, querybus.Query) (interface{}, error)
}

func (a *QueryHandlerAdapter) Handle(ctx context.Context, query querybus.Query) (interface{}, error) {
	return a.handler(ctx, query)
}

// ProvideQueryBus creates a query bus with registered handlers. Analysis
// queries are wrapped with signature caching and metrics.
func ProvideQueryBus(
	store ports.RecordStore,
	detector services.ConvergenceDetector,
	ranker services.SuggestionRanker,
	layout services.LayoutGenerator,
	reporter ports.Reporter,
	cache ports.Cache,
	analysisCfg *domainconfig.AnalysisConfig,
	metrics *observability.Metrics,
	hooks *extensions.HookManager,
	logger *zap.Logger,
) *querybus.QueryBus {
	queryBus := querybus.NewQueryBus()

	caching := querybus.NewCachingMiddleware(cache, int(analysisCfg.CacheTTL.Seconds()))
	metricsMw := querybus.NewMetricsMiddleware(&metricsAdapter{metrics})
	hooksMw := querybus.NewHooksMiddleware(hooks)

	wrap := func(handler querybus.QueryHandler) querybus.QueryHandler {
		return hooksMw.Wrap(metricsMw.Wrap(caching.Wrap(handler)))
	}

	// Register AnalyzeGraphQuery handler
	analyzeGraphHandler := queries_handlers.NewAnalyzeGraphHandler(store, detector, ranker, layout, reporter, logger)
	queryBus.Register(queries.AnalyzeGraphQuery{}, wrap(&QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			analyzeQuery, ok := query.(queries.AnalyzeGraphQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return analyzeGraphHandler.Handle(ctx, analyzeQuery)
		},
	}))

	// Register AnalyzeClustersQuery handler
	analyzeClustersHandler := queries_handlers.NewAnalyzeClustersHandler(store, detector, logger)
	queryBus.Register(queries.AnalyzeClustersQuery{}, wrap(&QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			clustersQuery, ok := query.(queries.AnalyzeClustersQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return analyzeClustersHandler.Handle(ctx, clustersQuery)
		},
	}))

	// Register ListCollectionsQuery handler; the registry listing is cheap,
	// so it skips the caching layer
	listCollectionsHandler := queries_handlers.NewListCollectionsHandler(store, logger)
	queryBus.Register(queries.ListCollectionsQuery{}, hooksMw.Wrap(metricsMw.Wrap(&QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			listQuery, ok := query.(queries.ListCollectionsQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return listCollectionsHandler.Handle(ctx, listQuery)
		},
	})))

	return queryBus
}

// ProvideInMemoryCache creates a simple in-memory cache
// In production, this would be Redis or similar
func ProvideInMemoryCache() ports.Cache {
	return NewInMemoryCache()
}

// ProvideHookManager creates the extension hook registry
func ProvideHookManager() *extensions.HookManager {
	return extensions.NewHookManager()
}

// metricsAdapter adapts observability.Metrics to the query bus interface
type metricsAdapter struct {
	metrics *observability.Metrics
}

func (a *metricsAdapter) StartTimer(metric, label string) querybus.Timer {
	return a.metrics.StartTimer(metric, label)
}

func (a *metricsAdapter) Increment(metric, label string) {
	a.metrics.Increment(metric, label)
}
