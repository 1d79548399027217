/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"

	"github.com/suparena/docstore/config"
	"github.com/suparena/docstore/datastore"
	"github.com/suparena/docstore/datastore/internal/token"
	docerrors "github.com/suparena/docstore/errors"
	"github.com/suparena/docstore/registry"
	"github.com/suparena/docstore/storagemodels"
)

// Attribute names of the table's primary key.
const (
	PartitionKey = "PK"
	SortKey      = "SK"
)

// API is the subset of the DynamoDB client used by Conn.
type API interface {
	Query(ctx context.Context, params *sdk.QueryInput, optFns ...func(*sdk.Options)) (*sdk.QueryOutput, error)
	GetItem(ctx context.Context, params *sdk.GetItemInput, optFns ...func(*sdk.Options)) (*sdk.GetItemOutput, error)
	PutItem(ctx context.Context, params *sdk.PutItemInput, optFns ...func(*sdk.Options)) (*sdk.PutItemOutput, error)
}

// Conn implements datastore.Conn on a single DynamoDB table. Every collection
// is one partition: PK holds the collection name and SK the document key.
type Conn struct {
	client    API
	tableName string
	logger    *zap.Logger
}

var _ datastore.Conn = (*Conn)(nil)

// Option configures a Conn.
type Option func(*Conn)

// WithLogger sets the connection logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Conn) {
		c.logger = logger
	}
}

func init() {
	registry.RegisterBackend(config.BackendDynamoDB, func(ctx context.Context, cfg config.Config, logger *zap.Logger) (datastore.Conn, error) {
		return Open(ctx, cfg.DynamoDB, WithLogger(logger))
	})
}

// NewDynamoDBClient initializes a DynamoDB client. Static credentials are used
// when both keys are set, the default credential chain otherwise.
func NewDynamoDBClient(ctx context.Context, cfg config.DynamoDBConfig) (*sdk.Client, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, docerrors.NewConnectionError("load AWS configuration", err)
	}

	return sdk.NewFromConfig(awsCfg, func(o *sdk.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}), nil
}

// Open creates a client from cfg and returns a Conn on cfg.Table.
func Open(ctx context.Context, cfg config.DynamoDBConfig, opts ...Option) (*Conn, error) {
	client, err := NewDynamoDBClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	conn := NewConn(client, cfg.Table, opts...)
	conn.logger.Info("DynamoDB connection ready",
		zap.String("table", cfg.Table),
		zap.String("region", cfg.Region),
	)
	return conn, nil
}

// NewConn returns a Conn on tableName using an existing client.
func NewConn(client API, tableName string, opts ...Option) *Conn {
	c := &Conn{
		client:    client,
		tableName: tableName,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	return c
}

// Query returns the first batch of a collection, in sort key order.
func (c *Conn) Query(ctx context.Context, collection string, batchSize int) (*storagemodels.Batch, error) {
	return c.query(ctx, collection, batchSize, nil, "query")
}

// NextBatch resumes a collection listing after the key recorded in continuation.
func (c *Conn) NextBatch(ctx context.Context, continuation string) (*storagemodels.Batch, error) {
	cont, err := token.Decode(continuation)
	if err != nil {
		return nil, docerrors.NewQueryError("", "next batch", err)
	}
	return c.query(ctx, cont.Collection, cont.BatchSize, primaryKey(cont.Collection, cont.After), "next batch")
}

func (c *Conn) query(ctx context.Context, collection string, batchSize int, startKey map[string]types.AttributeValue, op string) (*storagemodels.Batch, error) {
	out, err := c.client.Query(ctx, &sdk.QueryInput{
		TableName:              &c.tableName,
		KeyConditionExpression: aws.String("#pk = :pk"),
		ExpressionAttributeNames: map[string]string{
			"#pk": PartitionKey,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: collection},
		},
		Limit:             aws.Int32(int32(batchSize)),
		ExclusiveStartKey: startKey,
		ConsistentRead:    aws.Bool(true),
	})
	if err != nil {
		return nil, classify(collection, op, err)
	}

	batch := &storagemodels.Batch{
		Documents: make([]storagemodels.RawDocument, 0, len(out.Items)),
	}
	for _, it := range out.Items {
		batch.Documents = append(batch.Documents, item(it))
	}

	if len(out.LastEvaluatedKey) > 0 {
		var after string
		if err := attributevalue.Unmarshal(out.LastEvaluatedKey[SortKey], &after); err != nil {
			return nil, docerrors.NewQueryError(collection, op, fmt.Errorf("unreadable LastEvaluatedKey: %w", err))
		}
		batch.Continuation = token.Encode(token.Continuation{
			Collection: collection,
			After:      after,
			BatchSize:  batchSize,
		})
	}
	return batch, nil
}

// CreateDocument stores doc under key. Without overwrite the put is
// conditional on the key being absent.
func (c *Conn) CreateDocument(ctx context.Context, collection, key string, doc any, overwrite bool) error {
	av, err := marshalDocument(collection, key, doc)
	if err != nil {
		return docerrors.NewQueryError(collection, "create", err)
	}

	input := &sdk.PutItemInput{
		TableName: &c.tableName,
		Item:      av,
	}
	if !overwrite {
		input.ConditionExpression = aws.String("attribute_not_exists(#pk)")
		input.ExpressionAttributeNames = map[string]string{"#pk": PartitionKey}
	}

	_, err = c.client.PutItem(ctx, input)
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return docerrors.NewDuplicateKeyError(collection, key)
		}
		return classify(collection, "create", err)
	}
	return nil
}

// ReplaceDocument overwrites the whole item stored under key, on condition
// that it exists.
func (c *Conn) ReplaceDocument(ctx context.Context, collection, key string, doc any) error {
	av, err := marshalDocument(collection, key, doc)
	if err != nil {
		return docerrors.NewQueryError(collection, "replace", err)
	}

	_, err = c.client.PutItem(ctx, &sdk.PutItemInput{
		TableName:                &c.tableName,
		Item:                     av,
		ConditionExpression:      aws.String("attribute_exists(#pk)"),
		ExpressionAttributeNames: map[string]string{"#pk": PartitionKey},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return docerrors.NewNotFoundError(collection, key)
		}
		return classify(collection, "replace", err)
	}
	return nil
}

// ReadDocument loads the item stored under key.
func (c *Conn) ReadDocument(ctx context.Context, collection, key string) (storagemodels.RawDocument, error) {
	out, err := c.client.GetItem(ctx, &sdk.GetItemInput{
		TableName:      &c.tableName,
		Key:            primaryKey(collection, key),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, classify(collection, "read", err)
	}
	if out.Item == nil {
		return nil, docerrors.NewNotFoundError(collection, key)
	}
	return item(out.Item), nil
}

// Close is a no-op; the SDK client holds no resources that need releasing.
func (c *Conn) Close() error {
	return nil
}

// item is a raw DynamoDB item carrying the table's key attributes.
type item map[string]types.AttributeValue

// Decode unmarshals the item into v, leaving out the key attributes.
func (it item) Decode(v any) error {
	doc := make(map[string]types.AttributeValue, len(it))
	for k, val := range it {
		if k == PartitionKey || k == SortKey {
			continue
		}
		doc[k] = val
	}
	return attributevalue.UnmarshalMap(doc, v)
}

func primaryKey(collection, key string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		PartitionKey: &types.AttributeValueMemberS{Value: collection},
		SortKey:      &types.AttributeValueMemberS{Value: key},
	}
}

func marshalDocument(collection, key string, doc any) (map[string]types.AttributeValue, error) {
	av, err := attributevalue.MarshalMap(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	for k, v := range primaryKey(collection, key) {
		av[k] = v
	}
	return av, nil
}

// classify maps an SDK error onto the docstore error kinds. Errors the service
// answered with are query errors; anything that never got an answer is a
// connection error.
func classify(collection, op string, err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return docerrors.NewQueryError(collection, op, err)
	}
	return docerrors.NewConnectionError(op, err)
}
