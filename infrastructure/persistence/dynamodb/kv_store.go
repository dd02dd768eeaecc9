// Package dynamodb provides the DynamoDB-backed key/value store that
// holds publish drafts between sessions.
package dynamodb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Single-table layout: PK = DRAFT#<owner>, SK = FIELD#<key>, one item
// per draft field.
const (
	pkPrefix = "DRAFT#"
	skPrefix = "FIELD#"
)

// ddbDraftItem represents one stored draft field.
type ddbDraftItem struct {
	PK        string `dynamodbav:"PK"`
	SK        string `dynamodbav:"SK"`
	Value     string `dynamodbav:"Value"`
	UpdatedAt string `dynamodbav:"UpdatedAt"`
	TTL       int64  `dynamodbav:"TTL,omitempty"`
}

// KVStore implements ports.KeyValueStore on a DynamoDB table.
type KVStore struct {
	client    *dynamodb.Client
	tableName string
	ttl       time.Duration
}

// NewKVStore creates a DynamoDB key/value store. A zero ttl keeps items
// forever.
func NewKVStore(client *dynamodb.Client, tableName string, ttl time.Duration) *KVStore {
	return &KVStore{client: client, tableName: tableName, ttl: ttl}
}

func (s *KVStore) Get(ctx context.Context, owner, key string) (string, bool, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: pkPrefix + owner},
			"SK": &types.AttributeValueMemberS{Value: skPrefix + key},
		},
	})
	if err != nil {
		return "", false, fmt.Errorf("failed to get draft field: %w", err)
	}
	if result.Item == nil {
		return "", false, nil
	}

	var item ddbDraftItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return "", false, fmt.Errorf("failed to unmarshal draft field: %w", err)
	}
	return item.Value, true, nil
}

func (s *KVStore) Put(ctx context.Context, owner, key, value string) error {
	item := ddbDraftItem{
		PK:        pkPrefix + owner,
		SK:        skPrefix + key,
		Value:     value,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if s.ttl > 0 {
		item.TTL = time.Now().Add(s.ttl).Unix()
	}

	itemMap, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal draft field: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      itemMap,
	})
	if err != nil {
		return fmt.Errorf("failed to put draft field: %w", err)
	}
	return nil
}

// DeleteOwner queries every field item under the owner's partition and
// removes them in batches of 25, the BatchWriteItem limit.
func (s *KVStore) DeleteOwner(ctx context.Context, owner string) error {
	keyCond := expression.Key("PK").Equal(expression.Value(pkPrefix + owner)).
		And(expression.Key("SK").BeginsWith(skPrefix))
	expr, err := expression.NewBuilder().
		WithKeyCondition(keyCond).
		WithProjection(expression.NamesList(expression.Name("PK"), expression.Name("SK"))).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build draft query: %w", err)
	}

	var writeReqs []types.WriteRequest
	var lastKey map[string]types.AttributeValue
	for {
		result, err := s.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(s.tableName),
			KeyConditionExpression:    expr.KeyCondition(),
			ProjectionExpression:      expr.Projection(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         lastKey,
		})
		if err != nil {
			return fmt.Errorf("failed to query draft fields: %w", err)
		}
		for _, item := range result.Items {
			writeReqs = append(writeReqs, types.WriteRequest{
				DeleteRequest: &types.DeleteRequest{
					Key: map[string]types.AttributeValue{
						"PK": item["PK"],
						"SK": item["SK"],
					},
				},
			})
		}
		if result.LastEvaluatedKey == nil {
			break
		}
		lastKey = result.LastEvaluatedKey
	}

	for start := 0; start < len(writeReqs); start += 25 {
		end := start + 25
		if end > len(writeReqs) {
			end = len(writeReqs)
		}
		_, err := s.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{
				s.tableName: writeReqs[start:end],
			},
		})
		if err != nil {
			return fmt.Errorf("failed to delete draft fields: %w", err)
		}
	}
	return nil
}
