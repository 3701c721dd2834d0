// Package report implements the canteen resolution and meal reporting
// pipeline: selection handling, date normalization, canteen resolution
// and sequential per-canteen table rendering.
package report

import "errors"

// ErrConflictingSelectors is returned when both a canteen id and a
// location query are supplied for the same invocation.
var ErrConflictingSelectors = errors.New("use either a canteen id or a location, not both")

// Selection says which canteens a report should cover. Exactly one
// concrete variant is active per invocation.
type Selection interface {
	isSelection()
}

// ByID selects a single canteen by its OpenMensa id.
type ByID struct {
	ID int
}

// ByLocation selects every canteen matching a free-text location query.
type ByLocation struct {
	Query string
}

// Defaults selects the configured default canteen ids.
type Defaults struct{}

func (ByID) isSelection()       {}
func (ByLocation) isSelection() {}
func (Defaults) isSelection()   {}

// ParseSelection builds a Selection from the CLI inputs. A zero id
// means no id was given, an empty location means no query was given;
// supplying both at once is a conflict and fails before any lookup.
func ParseSelection(id int, location string) (Selection, error) {
	switch {
	case id != 0 && location != "":
		return nil, ErrConflictingSelectors
	case id != 0:
		return ByID{ID: id}, nil
	case location != "":
		return ByLocation{Query: location}, nil
	default:
		return Defaults{}, nil
	}
}
