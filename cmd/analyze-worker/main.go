// Package main implements the Lambda worker that runs analysis passes in
// the background. It is triggered by EventBridge when a collection changes,
// or invoked directly with an analysis request.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	awsevents "github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"consolidator-backend/application/ports"
	"consolidator-backend/application/queries"
	querybus "consolidator-backend/application/queries/bus"
	domainevents "consolidator-backend/domain/events"
	"consolidator-backend/infrastructure/config"
	"consolidator-backend/infrastructure/di"
)

// Global dependencies for Lambda performance optimization
var (
	queryBus  *querybus.QueryBus
	publisher ports.EventPublisher
)

func init() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	container, err := di.InitializeContainer(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize dependency container: %v", err)
	}

	queryBus = container.QueryBus
	publisher = container.EventPublisher

	log.Println("Analyze-worker initialized successfully")
}

// AnalysisRequest represents the input for a background analysis pass
type AnalysisRequest struct {
	Collection string `json:"collection"`
	Limit      int    `json:"limit,omitempty"`
}

// AnalysisSummary is the condensed worker result
type AnalysisSummary struct {
	Collection      string `json:"collection"`
	RecordCount     int    `json:"record_count"`
	SuggestionCount int    `json:"suggestion_count"`
	ClusterCount    int    `json:"cluster_count"`
	Comparisons     int    `json:"comparisons"`
	DurationMs      int64  `json:"duration_ms"`
}

// runAnalysis executes one analysis pass and returns a summary
func runAnalysis(ctx context.Context, request AnalysisRequest) (*AnalysisSummary, error) {
	if request.Collection == "" {
		return nil, fmt.Errorf("collection is required")
	}

	log.Printf("Running analysis pass for collection %s", request.Collection)

	result, err := queryBus.Ask(ctx, queries.AnalyzeGraphQuery{
		Collection: request.Collection,
		Limit:      request.Limit,
	})
	if err != nil {
		return nil, err
	}

	graphData, ok := result.(*queries.GraphData)
	if !ok {
		return nil, fmt.Errorf("unexpected result type %T", result)
	}

	summary := &AnalysisSummary{
		Collection:      request.Collection,
		RecordCount:     graphData.Stats.RecordCount,
		SuggestionCount: graphData.Stats.SuggestionCount,
		ClusterCount:    graphData.Stats.ClusterCount,
		Comparisons:     graphData.Stats.Comparisons,
		DurationMs:      graphData.Stats.DurationMs,
	}

	log.Printf("Analysis of %s completed: %d records, %d suggestions, %d clusters",
		summary.Collection, summary.RecordCount, summary.SuggestionCount, summary.ClusterCount)

	if publisher != nil {
		completed := domainevents.NewAnalysisCompleted(
			summary.Collection,
			summary.RecordCount,
			summary.SuggestionCount,
			summary.ClusterCount,
			summary.Comparisons,
			time.Duration(summary.DurationMs)*time.Millisecond,
			time.Now(),
		)
		if err := publisher.Publish(ctx, completed); err != nil {
			log.Printf("Failed to publish completion event: %v", err)
		}
	}

	return summary, nil
}

// handler is the main Lambda handler for different invocation types
func handler(ctx context.Context, event json.RawMessage) error {
	// Try to parse as EventBridge event (async invocation)
	var cloudWatchEvent awsevents.CloudWatchEvent
	if err := json.Unmarshal(event, &cloudWatchEvent); err == nil && cloudWatchEvent.DetailType != "" {
		if cloudWatchEvent.DetailType == "collection.updated" {
			var detail struct {
				Collection string `json:"collection"`
				Limit      int    `json:"limit"`
			}
			if err := json.Unmarshal(cloudWatchEvent.Detail, &detail); err != nil {
				return fmt.Errorf("failed to parse collection.updated event: %w", err)
			}

			_, err := runAnalysis(ctx, AnalysisRequest{
				Collection: detail.Collection,
				Limit:      detail.Limit,
			})
			return err
		}

		log.Printf("Ignoring event with detail type %s", cloudWatchEvent.DetailType)
		return nil
	}

	// Try to parse as direct invocation
	var request AnalysisRequest
	if err := json.Unmarshal(event, &request); err == nil && request.Collection != "" {
		_, err := runAnalysis(ctx, request)
		return err
	}

	return fmt.Errorf("unable to parse event")
}

func main() {
	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		log.Println("Starting analyze-worker Lambda")
		lambda.Start(handler)
		return
	}

	// Local testing mode
	log.Println("Running in local test mode")

	collection := os.Getenv("COLLECTION")
	if collection == "" {
		collection = "default"
	}

	summary, err := runAnalysis(context.Background(), AnalysisRequest{Collection: collection})
	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}

	summaryJSON, _ := json.MarshalIndent(summary, "", "  ")
	log.Printf("Summary:\n%s", summaryJSON)
}
