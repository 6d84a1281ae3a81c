package applicant

import (
	"encoding/json"
	"fmt"
	"strings"

	"job-portal/internal/domain/applicant"
)

const (
	EventUserCreated = "user.created"
	EventUserUpdated = "user.updated"
	EventUserDeleted = "user.deleted"
)

type Event struct {
	Type string    `json:"type"`
	Data EventUser `json:"data"`
}

type EventUser struct {
	ID                    string         `json:"id"`
	FullName              *string        `json:"full_name"`
	FirstName             *string        `json:"first_name"`
	LastName              *string        `json:"last_name"`
	EmailAddresses        []EventAddress `json:"email_addresses"`
	PrimaryEmailAddressID *string        `json:"primary_email_address_id"`
	ProfileImageURL       *string        `json:"profile_image_url"`
	ImageURL              *string        `json:"image_url"`
}

type EventAddress struct {
	ID           string `json:"id"`
	EmailAddress string `json:"email_address"`
}

func ParseEvent(payload []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(payload, &ev); err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if ev.Type == "" {
		return Event{}, fmt.Errorf("%w: missing type", ErrInvalidPayload)
	}
	if strings.HasPrefix(ev.Type, "user.") && strings.TrimSpace(ev.Data.ID) == "" {
		return Event{}, fmt.Errorf("%w: missing user id", ErrInvalidPayload)
	}
	return ev, nil
}

// Name prefers full_name and falls back to first and last name.
func (u EventUser) Name() *string {
	if v := nonBlank(u.FullName); v != nil {
		return v
	}
	var parts []string
	if v := nonBlank(u.FirstName); v != nil {
		parts = append(parts, *v)
	}
	if v := nonBlank(u.LastName); v != nil {
		parts = append(parts, *v)
	}
	if len(parts) == 0 {
		return nil
	}
	name := strings.Join(parts, " ")
	return &name
}

// Email picks the primary address when it is listed, else the first one.
func (u EventUser) Email() *string {
	if len(u.EmailAddresses) == 0 {
		return nil
	}
	chosen := u.EmailAddresses[0].EmailAddress
	if u.PrimaryEmailAddressID != nil {
		for _, a := range u.EmailAddresses {
			if a.ID == *u.PrimaryEmailAddressID {
				chosen = a.EmailAddress
				break
			}
		}
	}
	return nonBlank(&chosen)
}

func (u EventUser) PhotoURL() *string {
	if v := nonBlank(u.ProfileImageURL); v != nil {
		return v
	}
	return nonBlank(u.ImageURL)
}

func (u EventUser) upsert() applicant.Upsert {
	return applicant.Upsert{
		ExternalID:      u.ID,
		Name:            u.Name(),
		Email:           u.Email(),
		ProfilePhotoURL: u.PhotoURL(),
	}
}
