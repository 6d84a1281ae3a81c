package job

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("job not found")

type Repository interface {
	Create(ctx context.Context, j Job) (Job, error)
	GetByID(ctx context.Context, id int64) (Job, error)
	Update(ctx context.Context, j Job) (Job, error)
	SetVisibility(ctx context.Context, id int64, visible bool) error
	Delete(ctx context.Context, id int64) error

	ListByCompany(ctx context.Context, companyID int64) ([]Listing, error)
	ListAll(ctx context.Context) ([]Listing, error)
	ListVisible(ctx context.Context) ([]Listing, error)
	GetVisible(ctx context.Context, id int64) (Listing, error)

	DistinctCategories(ctx context.Context) ([]string, error)
	DistinctLocations(ctx context.Context) ([]string, error)
}
