package services

import (
	"context"
	"fmt"

	"eventfriend_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
)

// UserIdentity is the minimal identity record the auth provider owns.
type UserIdentity struct {
	DisplayName string `dynamodbav:"displayName" json:"displayName"`
	Email       string `dynamodbav:"email" json:"email"`
}

// IdentityProvider resolves a user id to its auth-layer identity. It
// is only consulted as a fallback profile source when no domain
// profile record exists.
type IdentityProvider interface {
	GetUserIdentity(ctx context.Context, uid string) (*UserIdentity, error)
}

// DirectoryIdentityProvider reads the identity directory collection
// the auth layer maintains in the same store.
type DirectoryIdentityProvider struct {
	Store DocumentStore
}

// GetUserIdentity looks up a directory entry by user id
func (p *DirectoryIdentityProvider) GetUserIdentity(ctx context.Context, uid string) (*UserIdentity, error) {
	doc, err := p.Store.Get(ctx, models.IdentitiesTable, uid)
	if err != nil {
		return nil, err
	}
	var identity UserIdentity
	if err := attributevalue.UnmarshalMap(doc, &identity); err != nil {
		return nil, fmt.Errorf("failed to parse identity for '%s': %w", uid, err)
	}
	return &identity, nil
}
