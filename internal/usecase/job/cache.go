package job

import (
	"context"
	"time"
)

// LookupCache stores the public distinct-value lists. A nil cache disables
// caching.
type LookupCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

const (
	CategoriesKey = "jobs:lookup:categories"
	LocationsKey  = "jobs:lookup:locations"
)
