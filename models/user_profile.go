package models

// PreferencesDocName is the well-known key the owned preferences
// sub-record is nested under on the user document.
const PreferencesDocName = "main"

// UserProfile defines the structure for user profiles
type UserProfile struct {
	UserID          string                 `dynamodbav:"userId" json:"userId"`
	Name            string                 `dynamodbav:"name,omitempty" json:"name,omitempty"`
	Email           string                 `dynamodbav:"email,omitempty" json:"email,omitempty"`
	Bio             string                 `dynamodbav:"bio,omitempty" json:"bio,omitempty"`
	City            string                 `dynamodbav:"city,omitempty" json:"city,omitempty"`
	ProfilePhotoRef string                 `dynamodbav:"profilePhotoRef,omitempty" json:"profilePhotoRef,omitempty"`
	Interests       []string               `dynamodbav:"interests,omitempty" json:"interests,omitempty"`
	Preferences     map[string]Preferences `dynamodbav:"preferences,omitempty" json:"preferences,omitempty"`
}

// MainPreferences returns the owned preferences sub-record, zero-valued
// when the user never set any.
func (p *UserProfile) MainPreferences() Preferences {
	return p.Preferences[PreferencesDocName]
}

// SetMainPreferences replaces the owned preferences sub-record.
func (p *UserProfile) SetMainPreferences(prefs Preferences) {
	if p.Preferences == nil {
		p.Preferences = map[string]Preferences{}
	}
	p.Preferences[PreferencesDocName] = prefs
}

// Preferences is the per-user search preferences sub-record
type Preferences struct {
	EventTypes []string `dynamodbav:"eventTypes,omitempty" json:"eventTypes,omitempty"`
	AgeRange   string   `dynamodbav:"ageRange,omitempty" json:"ageRange,omitempty"`
	Distance   int      `dynamodbav:"distance,omitempty" json:"distance,omitempty"`
}

// UpdateProfileInput enumerates the profile fields a user may change.
// Identity fields (userId, email) are deliberately absent. Empty/nil
// fields leave the stored value untouched.
type UpdateProfileInput struct {
	Name            string   `json:"name,omitempty"`
	Bio             string   `json:"bio,omitempty"`
	City            string   `json:"city,omitempty"`
	ProfilePhotoRef string   `json:"profilePhotoRef,omitempty"`
	Interests       []string `json:"interests,omitempty"`
}

// PreferencesUpdate is a partial preferences update. Nil/empty fields
// keep the prior value; Distance uses a pointer so zero is only applied
// when explicitly sent.
type PreferencesUpdate struct {
	EventTypes []string `json:"eventTypes,omitempty"`
	AgeRange   string   `json:"ageRange,omitempty"`
	Distance   *int     `json:"distance,omitempty"`
}

// UsersTable is the collection name for user profiles
const UsersTable = "Users"

// IdentitiesTable is the auth directory collection maintained by the
// identity provider; read-only from this service.
const IdentitiesTable = "Identities"
