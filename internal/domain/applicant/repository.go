package applicant

import (
	"context"
	"errors"
)

var (
	ErrNotFound       = errors.New("applicant not found")
	ErrEmailDuplicate = errors.New("applicant email already registered")
)

type Repository interface {
	// Upsert inserts or updates by ExternalID in one statement.
	Upsert(ctx context.Context, in Upsert) (Applicant, error)
	// GetOrCreate returns the row for externalID, inserting an empty one if absent.
	GetOrCreate(ctx context.Context, externalID string) (Applicant, error)
	GetByExternalID(ctx context.Context, externalID string) (Applicant, error)
	DeleteByExternalID(ctx context.Context, externalID string) (bool, error)
}
