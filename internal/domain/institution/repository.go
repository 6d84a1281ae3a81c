package institution

import (
	"context"
	"errors"
)

var (
	ErrNotFound       = errors.New("institution not found")
	ErrEmailDuplicate = errors.New("institution email already registered")
)

type Repository interface {
	Create(ctx context.Context, i Institution) (Institution, error)
	GetByID(ctx context.Context, id int64) (Institution, error)
	GetByEmail(ctx context.Context, email string) (Institution, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, i Institution) (Institution, error)
}
