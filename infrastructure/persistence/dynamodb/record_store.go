package dynamodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"consolidator-backend/application/ports"
	"consolidator-backend/domain/config"
	"consolidator-backend/domain/core/entities"
	"consolidator-backend/domain/services"
	pkgerrors "consolidator-backend/pkg/errors"
)

const (
	registryPK       = "COLLECTIONS"
	collectionPrefix = "COLLECTION#"
	recordPrefix     = "RECORD#"
)

// RecordStore implements the RecordStore port using DynamoDB. One physical
// table holds everything: a registry partition lists the collections, and
// each collection partitions its records under COLLECTION#<name>.
type RecordStore struct {
	client    *dynamodb.Client
	tableName string
	config    *config.AnalysisConfig
	builder   services.RecordBuilder
	cache     ports.Cache
	logger    *zap.Logger
}

// NewRecordStore creates a new DynamoDB-backed record store
func NewRecordStore(
	client *dynamodb.Client,
	tableName string,
	cfg *config.AnalysisConfig,
	builder services.RecordBuilder,
	cache ports.Cache,
	logger *zap.Logger,
) ports.RecordStore {
	if cfg == nil {
		cfg = config.DefaultAnalysisConfig()
	}
	if builder == nil {
		builder = services.NewDefaultRecordBuilder(nil, logger)
	}

	return &RecordStore{
		client:    client,
		tableName: tableName,
		config:    cfg,
		builder:   builder,
		cache:     cache,
		logger:    logger,
	}
}

// recordItem represents the DynamoDB item structure for a record fragment
type recordItem struct {
	PK         string                 `dynamodbav:"PK"`
	SK         string                 `dynamodbav:"SK"`
	EntityType string                 `dynamodbav:"EntityType"`
	RecordID   string                 `dynamodbav:"RecordID"`
	Payload    map[string]interface{} `dynamodbav:"Payload"`
}

// registryItem represents the DynamoDB item structure for a registry entry
type registryItem struct {
	PK         string `dynamodbav:"PK"`
	SK         string `dynamodbav:"SK"`
	EntityType string `dynamodbav:"EntityType"`
	Name       string `dynamodbav:"Name"`
}

// Ping verifies the table is reachable
func (s *RecordStore) Ping(ctx context.Context) error {
	input := &dynamodb.DescribeTableInput{
		TableName: aws.String(s.tableName),
	}

	if _, err := s.client.DescribeTable(ctx, input); err != nil {
		s.logger.Error("record store unreachable",
			zap.String("table", s.tableName),
			zap.Error(err),
		)
		return pkgerrors.NewConnectivityError(s.tableName, err)
	}
	return nil
}

// ListCollections returns all registered collection names
func (s *RecordStore) ListCollections(ctx context.Context) ([]string, error) {
	expr, err := partitionQuery(registryPK, collectionPrefix)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0)

	var startKey map[string]types.AttributeValue
	for {
		input := &dynamodb.QueryInput{
			TableName:                 aws.String(s.tableName),
			KeyConditionExpression:    expr.KeyCondition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         startKey,
		}

		result, err := s.client.Query(ctx, input)
		if err != nil {
			return nil, s.connectivity("list collections", err)
		}

		for _, raw := range result.Items {
			var item registryItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				s.logger.Warn("failed to unmarshal registry item", zap.Error(err))
				continue
			}
			names = append(names, item.Name)
		}

		if result.LastEvaluatedKey == nil {
			break
		}
		startKey = result.LastEvaluatedKey
	}

	return names, nil
}

// CollectionExists checks the registry for a collection entry
func (s *RecordStore) CollectionExists(ctx context.Context, collection string) (bool, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: registryPK},
			"SK": &types.AttributeValueMemberS{Value: collectionPrefix + collection},
		},
	}

	result, err := s.client.GetItem(ctx, input)
	if err != nil {
		return false, s.connectivity("collection existence check", err)
	}
	return len(result.Item) > 0, nil
}

// FetchRecords pages through a collection until completion or the
// configured maximum, merging fragments of one logical file. Successful
// results are cached by query signature; errors are never cached and no
// placeholder data is ever substituted.
func (s *RecordStore) FetchRecords(ctx context.Context, collection string, limit int) ([]*entities.Record, error) {
	if limit <= 0 || limit > s.config.MaxFetchItems {
		limit = s.config.MaxFetchItems
	}

	cacheKey := fmt.Sprintf("fetch:%s:%d", collection, limit)
	if s.cache != nil {
		if cached, found := s.cache.Get(ctx, cacheKey); found {
			if records, ok := cached.([]*entities.Record); ok {
				s.logger.Debug("record fetch served from cache",
					zap.String("collection", collection))
				return records, nil
			}
		}
	}

	exists, err := s.CollectionExists(ctx, collection)
	if err != nil {
		return nil, err
	}
	if !exists {
		available, listErr := s.ListCollections(ctx)
		if listErr != nil {
			s.logger.Warn("failed to list alternatives for missing collection",
				zap.Error(listErr))
		}
		return nil, pkgerrors.NewCollectionNotFoundError(collection, available)
	}

	expr, err := partitionQuery(collectionPrefix+collection, recordPrefix)
	if err != nil {
		return nil, err
	}

	payloads := make([]map[string]interface{}, 0, limit)
	var startKey map[string]types.AttributeValue
	for len(payloads) < limit {
		pageSize := int32(s.config.FetchPageSize)
		if remaining := limit - len(payloads); remaining < s.config.FetchPageSize {
			pageSize = int32(remaining)
		}

		input := &dynamodb.QueryInput{
			TableName:                 aws.String(s.tableName),
			KeyConditionExpression:    expr.KeyCondition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			Limit:                     aws.Int32(pageSize),
			ExclusiveStartKey:         startKey,
		}

		result, err := s.client.Query(ctx, input)
		if err != nil {
			return nil, s.connectivity("record fetch", err)
		}

		for _, raw := range result.Items {
			var item recordItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				s.logger.Warn("failed to unmarshal record item, skipping",
					zap.String("collection", collection),
					zap.Error(err))
				continue
			}
			if item.Payload == nil {
				item.Payload = map[string]interface{}{}
			}
			if _, ok := item.Payload["id"]; !ok {
				item.Payload["id"] = item.RecordID
			}
			payloads = append(payloads, item.Payload)
		}

		if result.LastEvaluatedKey == nil {
			break
		}
		startKey = result.LastEvaluatedKey
	}

	// An existing partition with zero record items is its own condition;
	// it is never cached and never collapsed into an empty batch here.
	if len(payloads) == 0 {
		return nil, pkgerrors.NewEmptyCollectionError(collection)
	}

	records := s.builder.Build(payloads)

	s.logger.Debug("records fetched",
		zap.String("collection", collection),
		zap.Int("fragments", len(payloads)),
		zap.Int("records", len(records)),
	)

	if s.cache != nil {
		ttl := int(s.config.CacheTTL.Seconds())
		if err := s.cache.Set(ctx, cacheKey, records, ttl); err != nil {
			s.logger.Warn("failed to cache fetch result", zap.Error(err))
		}
	}

	return records, nil
}

// partitionQuery builds the key condition for a prefix scan of one partition
func partitionQuery(pk, skPrefix string) (expression.Expression, error) {
	keyCond := expression.Key("PK").Equal(expression.Value(pk)).
		And(expression.Key("SK").BeginsWith(skPrefix))

	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return expression.Expression{}, pkgerrors.NewInternalError(fmt.Sprintf("build query expression: %v", err))
	}
	return expr, nil
}

// connectivity wraps store-level failures, distinguishing caller timeouts
func (s *RecordStore) connectivity(operation string, err error) error {
	s.logger.Error(operation+" failed",
		zap.String("table", s.tableName),
		zap.Error(err),
	)
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return pkgerrors.NewTimeoutError(operation).WithCause(err)
	}
	return pkgerrors.NewConnectivityError(s.tableName, err)
}
