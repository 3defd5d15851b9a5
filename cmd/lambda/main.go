package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"consolidator-backend/infrastructure/config"
	"consolidator-backend/infrastructure/di"
	"consolidator-backend/interfaces/http/rest"
)

// Global variables for Lambda lifecycle management
var (
	// chiLambda wraps the Chi router for AWS Lambda integration
	chiLambda *chiadapter.ChiLambdaV2

	// container holds the dependency injection container
	container *di.Container

	// coldStart tracks whether this is a cold start invocation
	coldStart = true

	// coldStartTime records when the cold start began
	coldStartTime time.Time
)

// init runs during cold start
func init() {
	coldStartTime = time.Now()
	log.Println("Lambda cold start initiated")

	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	container, err = di.InitializeContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}

	router := rest.NewRouter(
		container.QueryBus,
		container.RecordStore,
		container.Tracer,
		container.Logger,
	)

	handler := router.Setup()

	// Create Lambda adapter - need to type assert to *chi.Mux
	chiRouter, ok := handler.(*chi.Mux)
	if !ok {
		log.Fatal("Failed to cast handler to chi.Mux")
	}
	chiLambda = chiadapter.NewV2(chiRouter)

	log.Printf("Lambda cold start completed in %v", time.Since(coldStartTime))
}

// Handler is the Lambda function handler
func Handler(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	if container != nil && container.Logger != nil {
		container.Logger.Debug("Lambda received request",
			zap.String("path", req.RequestContext.HTTP.Path),
			zap.String("method", req.RequestContext.HTTP.Method),
			zap.String("request_id", req.RequestContext.RequestID),
		)
	}

	// The in-memory limiters inside the router reset on every cold start, so
	// Lambda enforces the shared DynamoDB-backed limit here instead.
	sourceIP := req.RequestContext.HTTP.SourceIP
	if container != nil && container.RateLimiter != nil && sourceIP != "" {
		allowed, rlErr := container.RateLimiter.Allow(ctx, sourceIP)
		if rlErr != nil && container.Logger != nil {
			container.Logger.Warn("rate limiter degraded", zap.Error(rlErr))
		}
		if !allowed {
			return events.APIGatewayV2HTTPResponse{
				StatusCode: 429,
				Headers:    map[string]string{"Content-Type": "application/json"},
				Body:       `{"error":true,"message":"Rate limit exceeded","code":429}`,
			}, nil
		}
	}

	// API Gateway's JWT authorizer has already validated the token before
	// this function runs; mark the request so the router's auth middleware
	// trusts the forwarded identity headers.
	if req.Headers == nil {
		req.Headers = make(map[string]string)
	}

	authHeader := req.Headers["authorization"]
	if authHeader == "" {
		authHeader = req.Headers["Authorization"]
	}

	_, hasAmznTrace := req.Headers["x-amzn-trace-id"]
	if hasAmznTrace || !strings.HasPrefix(authHeader, "Bearer ") {
		req.Headers["X-API-Gateway-Authorized"] = "true"
	}

	proxyResp, err := chiLambda.ProxyWithContextV2(ctx, req)

	if proxyResp.Headers == nil {
		proxyResp.Headers = make(map[string]string)
	}

	if coldStart {
		proxyResp.Headers["X-Cold-Start"] = "true"
		proxyResp.Headers["X-Cold-Start-Duration"] = time.Since(coldStartTime).String()
		coldStart = false
	} else {
		proxyResp.Headers["X-Cold-Start"] = "false"
	}

	if req.RequestContext.RequestID != "" {
		proxyResp.Headers["X-Request-ID"] = req.RequestContext.RequestID
	}

	if container != nil && container.RateLimiter != nil && sourceIP != "" {
		if hdrErr := container.RateLimiter.SetHeaders(ctx, sourceIP, proxyResp.Headers); hdrErr != nil && container.Logger != nil {
			container.Logger.Debug("rate limit headers unavailable", zap.Error(hdrErr))
		}
	}

	if container != nil && container.Logger != nil && proxyResp.StatusCode >= 400 {
		container.Logger.Error("Lambda error response",
			zap.String("path", req.RequestContext.HTTP.Path),
			zap.Int("status_code", proxyResp.StatusCode),
			zap.String("body", proxyResp.Body),
		)
	}

	return proxyResp, err
}

// main is the entry point for the Lambda function
func main() {
	lambda.Start(Handler)
}
