/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeClient is an in-memory stand-in for the DynamoDB API covering the
// calls and expressions Conn issues.
type fakeClient struct {
	mu    sync.Mutex
	items map[string]map[string]map[string]types.AttributeValue // PK -> SK -> item

	queries     []*sdk.QueryInput
	failQueryAt int
	queryErr    error
	putErr      error
	getErr      error
}

func newFakeClient() *fakeClient {
	return &fakeClient{items: make(map[string]map[string]map[string]types.AttributeValue)}
}

func stringValue(av types.AttributeValue) string {
	if s, ok := av.(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}

func (f *fakeClient) Query(ctx context.Context, in *sdk.QueryInput, optFns ...func(*sdk.Options)) (*sdk.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.queries = append(f.queries, in)
	if f.queryErr != nil && len(f.queries) == f.failQueryAt {
		return nil, f.queryErr
	}

	pk := stringValue(in.ExpressionAttributeValues[":pk"])
	partition := f.items[pk]
	sks := make([]string, 0, len(partition))
	for sk := range partition {
		sks = append(sks, sk)
	}
	sort.Strings(sks)

	start := 0
	if in.ExclusiveStartKey != nil {
		after := stringValue(in.ExclusiveStartKey[SortKey])
		start = sort.Search(len(sks), func(i int) bool { return sks[i] > after })
	}

	limit := len(sks)
	if in.Limit != nil {
		limit = int(*in.Limit)
	}

	out := &sdk.QueryOutput{}
	for _, sk := range sks[start:] {
		if len(out.Items) == limit {
			break
		}
		out.Items = append(out.Items, partition[sk])
	}
	// like DynamoDB, a full page always carries a LastEvaluatedKey
	if len(out.Items) == limit && limit > 0 {
		last := out.Items[len(out.Items)-1]
		out.LastEvaluatedKey = map[string]types.AttributeValue{
			PartitionKey: last[PartitionKey],
			SortKey:      last[SortKey],
		}
	}
	out.Count = int32(len(out.Items))
	return out, nil
}

func (f *fakeClient) GetItem(ctx context.Context, in *sdk.GetItemInput, optFns ...func(*sdk.Options)) (*sdk.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getErr != nil {
		return nil, f.getErr
	}
	pk := stringValue(in.Key[PartitionKey])
	sk := stringValue(in.Key[SortKey])
	return &sdk.GetItemOutput{Item: f.items[pk][sk]}, nil
}

func (f *fakeClient) PutItem(ctx context.Context, in *sdk.PutItemInput, optFns ...func(*sdk.Options)) (*sdk.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.putErr != nil {
		return nil, f.putErr
	}

	pk := stringValue(in.Item[PartitionKey])
	sk := stringValue(in.Item[SortKey])
	_, exists := f.items[pk][sk]

	if in.ConditionExpression != nil {
		cond := *in.ConditionExpression
		failed := (strings.HasPrefix(cond, "attribute_not_exists") && exists) ||
			(strings.HasPrefix(cond, "attribute_exists") && !exists)
		if failed {
			return nil, &types.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")}
		}
	}

	if f.items[pk] == nil {
		f.items[pk] = make(map[string]map[string]types.AttributeValue)
	}
	f.items[pk][sk] = in.Item
	return &sdk.PutItemOutput{}, nil
}
