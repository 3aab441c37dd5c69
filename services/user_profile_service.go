package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"eventfriend_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
)

type UserProfileService struct {
	Store DocumentStore
	// Identity is the fallback profile source; optional.
	Identity IdentityProvider
}

// AddUserProfile adds a new user profile to the store
func (ups *UserProfileService) AddUserProfile(ctx context.Context, profile models.UserProfile) (*models.UserProfile, error) {
	if profile.UserID == "" || profile.Email == "" {
		return nil, fmt.Errorf("%w: userId and email are required", ErrInvalidArgument)
	}
	if profile.Preferences == nil {
		profile.SetMainPreferences(models.Preferences{})
	}
	if err := ups.Store.Put(ctx, models.UsersTable, profile.UserID, profile); err != nil {
		return nil, err
	}
	log.Printf("Created profile for user %s", profile.UserID)
	return &profile, nil
}

// GetUserProfile retrieves a user profile by ID. When no profile
// record exists but the identity provider knows the user, a degraded
// profile carrying only name and email is returned. That fallback is
// documented behavior, not an error.
func (ups *UserProfileService) GetUserProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	doc, err := ups.Store.Get(ctx, models.UsersTable, userID)
	if err == nil {
		var profile models.UserProfile
		if err := attributevalue.UnmarshalMap(doc, &profile); err != nil {
			return nil, fmt.Errorf("failed to parse profile for '%s': %w", userID, err)
		}
		return &profile, nil
	}
	if !errors.Is(err, ErrNotFound) || ups.Identity == nil {
		return nil, err
	}

	identity, idErr := ups.Identity.GetUserIdentity(ctx, userID)
	if idErr != nil {
		// Neither source knows the user; surface the original miss.
		return nil, err
	}
	log.Printf("No profile record for %s, serving degraded identity fallback", userID)
	return &models.UserProfile{
		UserID: userID,
		Name:   identity.DisplayName,
		Email:  identity.Email,
	}, nil
}

// UpdateUserProfile applies an allow-listed partial update. Empty and
// nil fields are no-ops; identity fields are not updatable at all.
// Last write wins across concurrent updaters.
func (ups *UserProfileService) UpdateUserProfile(ctx context.Context, userID string, input models.UpdateProfileInput) (*models.UserProfile, error) {
	var updated models.UserProfile
	err := ups.Store.Mutate(ctx, models.UsersTable, userID, func(doc Document) (Document, error) {
		if doc == nil {
			return nil, fmt.Errorf("user '%s': %w", userID, ErrNotFound)
		}
		var profile models.UserProfile
		if err := attributevalue.UnmarshalMap(doc, &profile); err != nil {
			return nil, fmt.Errorf("failed to parse profile for '%s': %w", userID, err)
		}

		if input.Name != "" {
			profile.Name = input.Name
		}
		if input.Bio != "" {
			profile.Bio = input.Bio
		}
		if input.City != "" {
			profile.City = input.City
		}
		if input.ProfilePhotoRef != "" {
			profile.ProfilePhotoRef = input.ProfilePhotoRef
		}
		if input.Interests != nil {
			profile.Interests = input.Interests
		}

		updated = profile
		return marshalDocument(profile)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// UpdatePreferences applies a partial update to the owned preferences
// sub-record. Absent or falsy fields leave the prior value unchanged;
// distance must be explicit to change and may not be negative.
func (ups *UserProfileService) UpdatePreferences(ctx context.Context, userID string, update models.PreferencesUpdate) (*models.Preferences, error) {
	if update.Distance != nil && *update.Distance < 0 {
		return nil, fmt.Errorf("%w: distance must be non-negative", ErrInvalidArgument)
	}

	var updated models.Preferences
	err := ups.Store.Mutate(ctx, models.UsersTable, userID, func(doc Document) (Document, error) {
		if doc == nil {
			return nil, fmt.Errorf("user '%s': %w", userID, ErrNotFound)
		}
		var profile models.UserProfile
		if err := attributevalue.UnmarshalMap(doc, &profile); err != nil {
			return nil, fmt.Errorf("failed to parse profile for '%s': %w", userID, err)
		}

		prefs := profile.MainPreferences()
		if len(update.EventTypes) > 0 {
			prefs.EventTypes = update.EventTypes
		}
		if update.AgeRange != "" {
			prefs.AgeRange = update.AgeRange
		}
		if update.Distance != nil {
			prefs.Distance = *update.Distance
		}
		profile.SetMainPreferences(prefs)

		updated = prefs
		return marshalDocument(profile)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteUserProfile removes a user profile and, with it, the owned
// preferences sub-record.
func (ups *UserProfileService) DeleteUserProfile(ctx context.Context, userID string) error {
	return ups.Store.Delete(ctx, models.UsersTable, userID)
}
