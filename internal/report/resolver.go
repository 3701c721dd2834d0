package report

import (
	"context"
	"fmt"

	"mensa-cli/internal/openmensa"
)

// Directory is the part of the canteen directory the resolver needs.
type Directory interface {
	CanteenByID(ctx context.Context, id int) (*openmensa.Canteen, error)
	CanteensByLocation(ctx context.Context, query string) ([]openmensa.Canteen, error)
	CanteensByIDs(ctx context.Context, ids []int) ([]openmensa.Canteen, error)
}

// Resolver turns a Selection into the ordered list of canteens to
// report on.
type Resolver struct {
	dir      Directory
	defaults []int
}

// NewResolver creates a Resolver backed by the given directory. The
// defaults are the configured canteen ids used when no selector is
// given.
func NewResolver(dir Directory, defaults []int) *Resolver {
	return &Resolver{dir: dir, defaults: defaults}
}

// Resolve executes exactly one lookup strategy for the selection. An
// id that matches no canteen is a NotFoundError; an empty location
// result is a valid empty report, not an error.
func (r *Resolver) Resolve(ctx context.Context, sel Selection) ([]openmensa.Canteen, error) {
	switch s := sel.(type) {
	case ByID:
		canteen, err := r.dir.CanteenByID(ctx, s.ID)
		if err != nil {
			return nil, fmt.Errorf("looking up canteen %d: %w", s.ID, err)
		}
		if canteen == nil {
			return nil, &NotFoundError{ID: s.ID}
		}
		return []openmensa.Canteen{*canteen}, nil

	case ByLocation:
		canteens, err := r.dir.CanteensByLocation(ctx, s.Query)
		if err != nil {
			return nil, fmt.Errorf("looking up canteens near %q: %w", s.Query, err)
		}
		return canteens, nil

	case Defaults:
		canteens, err := r.dir.CanteensByIDs(ctx, r.defaults)
		if err != nil {
			return nil, fmt.Errorf("looking up default canteens: %w", err)
		}
		return canteens, nil

	default:
		return nil, fmt.Errorf("unknown selection type %T", sel)
	}
}
