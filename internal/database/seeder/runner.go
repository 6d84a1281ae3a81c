package seeder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"job-portal/internal/database"

	"go.uber.org/zap"
)

var errNilDB = errors.New("seeder: nil db")

// Runner applies seeders in order and stops at the first failure.
type Runner struct {
	Seeders []Seeder
	Logger  *zap.Logger
}

// Run returns the total number of inserted rows.
func (r Runner) Run(ctx context.Context, db database.DB) (int64, error) {
	if db == nil {
		return 0, errNilDB
	}
	log := r.Logger
	if log == nil {
		log = zap.NewNop()
	}

	var total int64
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		start := time.Now()
		n, err := s.Run(ctx, db)
		if err != nil {
			return total, fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		total += n
		if n == 0 {
			log.Info("seed skipped, rows already present", zap.String("seeder", s.Name()))
			continue
		}
		log.Info("seed applied",
			zap.String("seeder", s.Name()),
			zap.Int64("rows", n),
			zap.Duration("took", time.Since(start)),
		)
	}
	return total, nil
}
