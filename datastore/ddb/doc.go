/*
Package ddb provides a DynamoDB implementation of the datastore.Conn interface.

All collections share one table in a single-table layout:

	PK  (partition key, S)  the collection name, e.g. "players"
	SK  (sort key, S)       the document key,    e.g. "player-0042"

Documents are marshaled with attributevalue, so struct fields follow the
`dynamodbav` tags of the entity type. The PK and SK attributes are injected
on write and stripped again on read; entity types must not use those names
for their own fields.

Key Features:

Listing:
A collection is one partition, listed with a Query on PK in sort key order.
Each batch is a page of Limit items; the LastEvaluatedKey of a page becomes
the opaque continuation handed back to docstore.

Conditional writes:
Inserts put with attribute_not_exists(PK), replacements with
attribute_exists(PK). A failed condition is reported as ErrDuplicateKey or
ErrNotFound respectively.

Errors:
Service errors (any smithy.APIError) map to ErrQuery, failures that never
reached the service map to ErrConnection.

Usage:

	conn, err := ddb.Open(ctx, config.DynamoDBConfig{
	    Region: "us-east-1",
	    Table:  "documents",
	}, ddb.WithLogger(logger))

	players := docstore.NewCollection[Player](conn)
*/
package ddb
