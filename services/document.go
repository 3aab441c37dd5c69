package services

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
)

// marshalDocument converts an entity into its storable attribute-value
// form. Marshal failures are programming errors, not store outages, so
// they surface as ErrInvalidArgument.
func marshalDocument(item interface{}) (Document, error) {
	doc, err := attributevalue.MarshalMap(item)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal item: %v", ErrInvalidArgument, err)
	}
	return doc, nil
}

// copyDocument shallow-copies a document so mutate callbacks cannot
// alias store-held state. Attribute values themselves are never
// modified in place.
func copyDocument(doc Document) Document {
	if doc == nil {
		return nil
	}
	out := make(Document, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}
