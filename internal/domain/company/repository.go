package company

import (
	"context"
	"errors"
)

var (
	ErrNotFound       = errors.New("company not found")
	ErrEmailDuplicate = errors.New("company email already registered")
)

type Repository interface {
	Create(ctx context.Context, c Company) (Company, error)
	GetByID(ctx context.Context, id int64) (Company, error)
	GetByEmail(ctx context.Context, email string) (Company, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, c Company) (Company, error)
	Delete(ctx context.Context, id int64) error
	ListWithJobCounts(ctx context.Context) ([]Summary, error)
}
