// Package seeder inserts bootstrap rows after migrations have run.
package seeder

import (
	"context"

	"job-portal/internal/database"
)

// Seeder reports how many rows it inserted; zero means the data was already
// present.
type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) (int64, error)
}
