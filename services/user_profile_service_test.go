package services

import (
	"context"
	"errors"
	"testing"

	"eventfriend_server/models"
)

func TestAddUserProfile(t *testing.T) {
	ctx := context.Background()
	ups := &UserProfileService{Store: NewMemoryStore()}

	t.Run("requires userId and email", func(t *testing.T) {
		if _, err := ups.AddUserProfile(ctx, models.UserProfile{UserID: "u1"}); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("got %v, want ErrInvalidArgument", err)
		}
	})

	t.Run("stores and reads back the profile", func(t *testing.T) {
		created, err := ups.AddUserProfile(ctx, models.UserProfile{
			UserID: "u1", Name: "Ada", Email: "ada@example.com",
			City: "Atlanta", Interests: []string{"music", "art"},
		})
		if err != nil {
			t.Fatalf("add: %v", err)
		}
		if created.MainPreferences().Distance != 0 {
			t.Fatalf("unexpected default preferences: %+v", created.MainPreferences())
		}

		got, err := ups.GetUserProfile(ctx, "u1")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.Name != "Ada" || got.City != "Atlanta" || len(got.Interests) != 2 {
			t.Fatalf("round trip lost fields: %+v", got)
		}
	})
}

func TestGetUserProfileFallback(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	identity := &DirectoryIdentityProvider{Store: store}
	ups := &UserProfileService{Store: store, Identity: identity}

	t.Run("unknown everywhere is not found", func(t *testing.T) {
		if _, err := ups.GetUserProfile(ctx, "ghost"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("got %v, want ErrNotFound", err)
		}
	})

	t.Run("serves a degraded profile from the identity directory", func(t *testing.T) {
		if err := store.Put(ctx, models.IdentitiesTable, "u9", UserIdentity{
			DisplayName: "Niko", Email: "niko@example.com",
		}); err != nil {
			t.Fatalf("seed identity: %v", err)
		}

		profile, err := ups.GetUserProfile(ctx, "u9")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if profile.Name != "Niko" || profile.Email != "niko@example.com" {
			t.Fatalf("got %+v", profile)
		}
		if profile.Bio != "" || len(profile.Interests) != 0 {
			t.Fatalf("degraded profile carries unexpected fields: %+v", profile)
		}
	})
}

func TestUpdateUserProfile(t *testing.T) {
	ctx := context.Background()
	ups := &UserProfileService{Store: NewMemoryStore()}

	if _, err := ups.AddUserProfile(ctx, models.UserProfile{
		UserID: "u1", Name: "Ada", Email: "ada@example.com", Bio: "hello",
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	t.Run("unknown user is not found", func(t *testing.T) {
		if _, err := ups.UpdateUserProfile(ctx, "ghost", models.UpdateProfileInput{Name: "x"}); !errors.Is(err, ErrNotFound) {
			t.Fatalf("got %v, want ErrNotFound", err)
		}
	})

	t.Run("empty fields keep prior values", func(t *testing.T) {
		updated, err := ups.UpdateUserProfile(ctx, "u1", models.UpdateProfileInput{City: "Decatur"})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if updated.City != "Decatur" {
			t.Fatalf("city not applied: %+v", updated)
		}
		if updated.Name != "Ada" || updated.Bio != "hello" {
			t.Fatalf("untouched fields changed: %+v", updated)
		}
		// Identity stays what it was; there is no input field for it.
		if updated.Email != "ada@example.com" {
			t.Fatalf("email changed: %q", updated.Email)
		}
	})

	t.Run("interests replace wholesale when provided", func(t *testing.T) {
		updated, err := ups.UpdateUserProfile(ctx, "u1", models.UpdateProfileInput{Interests: []string{"tech"}})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if len(updated.Interests) != 1 || updated.Interests[0] != "tech" {
			t.Fatalf("got interests %v", updated.Interests)
		}
	})
}

func TestUpdatePreferences(t *testing.T) {
	ctx := context.Background()
	ups := &UserProfileService{Store: NewMemoryStore()}

	if _, err := ups.AddUserProfile(ctx, models.UserProfile{
		UserID: "u1", Email: "u1@example.com",
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	distance := 25
	if _, err := ups.UpdatePreferences(ctx, "u1", models.PreferencesUpdate{
		EventTypes: []string{"music", "sports"},
		AgeRange:   "25-35",
		Distance:   &distance,
	}); err != nil {
		t.Fatalf("initial update: %v", err)
	}

	t.Run("absent fields are no-ops", func(t *testing.T) {
		prefs, err := ups.UpdatePreferences(ctx, "u1", models.PreferencesUpdate{AgeRange: "30-40"})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if prefs.AgeRange != "30-40" {
			t.Fatalf("ageRange not applied: %+v", prefs)
		}
		if len(prefs.EventTypes) != 2 || prefs.Distance != 25 {
			t.Fatalf("absent fields were clobbered: %+v", prefs)
		}
	})

	t.Run("explicit zero distance applies", func(t *testing.T) {
		zero := 0
		prefs, err := ups.UpdatePreferences(ctx, "u1", models.PreferencesUpdate{Distance: &zero})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if prefs.Distance != 0 {
			t.Fatalf("got distance %d, want 0", prefs.Distance)
		}
	})

	t.Run("negative distance is invalid", func(t *testing.T) {
		negative := -5
		if _, err := ups.UpdatePreferences(ctx, "u1", models.PreferencesUpdate{Distance: &negative}); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("got %v, want ErrInvalidArgument", err)
		}
	})

	t.Run("unknown user is not found", func(t *testing.T) {
		if _, err := ups.UpdatePreferences(ctx, "ghost", models.PreferencesUpdate{AgeRange: "20-30"}); !errors.Is(err, ErrNotFound) {
			t.Fatalf("got %v, want ErrNotFound", err)
		}
	})
}

func TestDeleteUserProfile(t *testing.T) {
	ctx := context.Background()
	ups := &UserProfileService{Store: NewMemoryStore()}

	if _, err := ups.AddUserProfile(ctx, models.UserProfile{UserID: "u1", Email: "u1@example.com"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := ups.DeleteUserProfile(ctx, "u1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := ups.GetUserProfile(ctx, "u1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound after delete", err)
	}
}
