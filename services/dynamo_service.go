package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Every collection is keyed by a single partition attribute; composite
// identities (pair+event, user+event) are encoded into the id string.
const partitionKey = "id"

// versionAttr backs the optimistic-locking loop in Mutate.
const versionAttr = "version"

// mutateMaxAttempts bounds the optimistic-lock retry loop. Contention
// beyond this surfaces as ErrStoreUnavailable.
const mutateMaxAttempts = 5

// DynamoStore implements DocumentStore on DynamoDB.
type DynamoStore struct {
	Client *dynamodb.Client
}

// InitializeDynamoDBClient initializes the DynamoDB client
func InitializeDynamoDBClient() *dynamodb.Client {
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		log.Fatalf("Failed to load AWS config: %v", err)
	}
	return dynamodb.NewFromConfig(cfg)
}

func keyFor(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		partitionKey: &types.AttributeValueMemberS{Value: id},
	}
}

// Get retrieves a document by collection and id
func (ds *DynamoStore) Get(ctx context.Context, collection, id string) (Document, error) {
	output, err := ds.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(collection),
		Key:       keyFor(id),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get item from '%s': %v", ErrStoreUnavailable, collection, err)
	}
	if output.Item == nil {
		return nil, fmt.Errorf("item '%s' in '%s': %w", id, collection, ErrNotFound)
	}
	return output.Item, nil
}

// Put marshals and writes a document, overwriting any existing one
func (ds *DynamoStore) Put(ctx context.Context, collection, id string, item interface{}) error {
	doc, err := marshalDocument(item)
	if err != nil {
		return err
	}
	doc[partitionKey] = &types.AttributeValueMemberS{Value: id}
	_, err = ds.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(collection),
		Item:      doc,
	})
	if err != nil {
		return fmt.Errorf("%w: failed to put item in '%s': %v", ErrStoreUnavailable, collection, err)
	}
	return nil
}

// Delete removes a document; absent ids are a no-op
func (ds *DynamoStore) Delete(ctx context.Context, collection, id string) error {
	_, err := ds.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(collection),
		Key:       keyFor(id),
	})
	if err != nil {
		return fmt.Errorf("%w: failed to delete item from '%s': %v", ErrStoreUnavailable, collection, err)
	}
	return nil
}

// Query scans a collection with a FilterExpression built from the
// query's conditions, then orders client-side. The scan is the
// superset read; semantic narrowing stays with the calling service.
func (ds *DynamoStore) Query(ctx context.Context, q Query) ([]Document, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(q.Collection),
	}

	if len(q.Conditions) > 0 {
		filterExpression := ""
		expressionNames := map[string]string{}
		expressionValues := map[string]types.AttributeValue{}
		for i, cond := range q.Conditions {
			placeholder := fmt.Sprintf("#f%d", i)
			expressionNames[placeholder] = cond.Field

			valueRefs := ""
			for j, value := range cond.AnyOf {
				ref := fmt.Sprintf(":v%d_%d", i, j)
				expressionValues[ref] = &types.AttributeValueMemberS{Value: value}
				if j > 0 {
					valueRefs += ", "
				}
				valueRefs += ref
			}

			clause := ""
			if len(cond.AnyOf) == 1 {
				clause = fmt.Sprintf("%s = %s", placeholder, valueRefs)
			} else {
				clause = fmt.Sprintf("%s IN (%s)", placeholder, valueRefs)
			}
			if i > 0 {
				filterExpression += " AND "
			}
			filterExpression += clause
		}
		input.FilterExpression = aws.String(filterExpression)
		input.ExpressionAttributeNames = expressionNames
		input.ExpressionAttributeValues = expressionValues
	}

	var results []Document
	paginator := dynamodb.NewScanPaginator(ds.Client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to scan '%s': %v", ErrStoreUnavailable, q.Collection, err)
		}
		for _, item := range page.Items {
			results = append(results, item)
		}
	}

	sortDocuments(results, q.OrderBy)
	return results, nil
}

// Mutate runs an optimistic-locking read-modify-write on a single
// document: read, apply fn, write conditioned on the version read.
// A lost race retries with a fresh read.
func (ds *DynamoStore) Mutate(ctx context.Context, collection, id string, fn func(Document) (Document, error)) error {
	for attempt := 0; attempt < mutateMaxAttempts; attempt++ {
		output, err := ds.Client.GetItem(ctx, &dynamodb.GetItemInput{
			TableName: aws.String(collection),
			Key:       keyFor(id),
		})
		if err != nil {
			return fmt.Errorf("%w: failed to read item for mutate in '%s': %v", ErrStoreUnavailable, collection, err)
		}

		var current Document
		currentVersion := int64(0)
		if output.Item != nil {
			current = output.Item
			if attr, ok := current[versionAttr].(*types.AttributeValueMemberN); ok {
				currentVersion, _ = strconv.ParseInt(attr.Value, 10, 64)
			}
		}

		updated, err := fn(copyDocument(current))
		if err != nil {
			return err
		}
		if updated == nil {
			return nil
		}

		updated[partitionKey] = &types.AttributeValueMemberS{Value: id}
		updated[versionAttr] = &types.AttributeValueMemberN{Value: strconv.FormatInt(currentVersion+1, 10)}

		expression, names, values := mutateCondition(current, currentVersion)
		input := &dynamodb.PutItemInput{
			TableName:                 aws.String(collection),
			Item:                      updated,
			ConditionExpression:       aws.String(expression),
			ExpressionAttributeNames:  names,
			ExpressionAttributeValues: values,
		}

		_, err = ds.Client.PutItem(ctx, input)
		if err == nil {
			return nil
		}
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			log.Printf("Mutate on '%s' id '%s' lost a race, retrying (attempt %d)", collection, id, attempt+1)
			continue
		}
		return fmt.Errorf("%w: failed to write mutated item in '%s': %v", ErrStoreUnavailable, collection, err)
	}
	return fmt.Errorf("%w: mutate on '%s' id '%s' exhausted %d attempts", ErrStoreUnavailable, collection, id, mutateMaxAttempts)
}

// mutateCondition builds the write condition matching the state the
// document was read in. Plain Put never stamps a version attribute, and
// DynamoDB evaluates a comparison against an absent attribute as false,
// so an unversioned document must condition on the attribute still
// being absent rather than on a version equality that can never hold.
func mutateCondition(current Document, version int64) (string, map[string]string, map[string]types.AttributeValue) {
	if current == nil {
		return "attribute_not_exists(#pk)", map[string]string{"#pk": partitionKey}, nil
	}
	if _, ok := current[versionAttr]; !ok {
		return "attribute_not_exists(#ver)", map[string]string{"#ver": versionAttr}, nil
	}
	return "#ver = :ver", map[string]string{"#ver": versionAttr}, map[string]types.AttributeValue{
		":ver": &types.AttributeValueMemberN{Value: strconv.FormatInt(version, 10)},
	}
}
