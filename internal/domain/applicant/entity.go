package applicant

import "time"

// Applicant mirrors an identity-provider user. ExternalID is the provider key
// and never changes once stored.
type Applicant struct {
	ID              int64
	ExternalID      string
	Name            string
	Email           *string
	ProfilePhotoURL *string
	ResumeURL       *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Upsert carries provider-sourced fields. Nil fields keep the stored value.
type Upsert struct {
	ExternalID      string
	Name            *string
	Email           *string
	ProfilePhotoURL *string
	ResumeURL       *string
}
