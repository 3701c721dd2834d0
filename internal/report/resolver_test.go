package report

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"mensa-cli/internal/openmensa"
)

// stubDirectory counts calls so tests can assert which lookup strategy
// ran, if any.
type stubDirectory struct {
	canteen  *openmensa.Canteen
	canteens []openmensa.Canteen
	err      error

	byIDCalls       int
	byLocationCalls int
	byIDsCalls      int
	gotIDs          []int
}

func (s *stubDirectory) CanteenByID(_ context.Context, _ int) (*openmensa.Canteen, error) {
	s.byIDCalls++
	return s.canteen, s.err
}

func (s *stubDirectory) CanteensByLocation(_ context.Context, _ string) ([]openmensa.Canteen, error) {
	s.byLocationCalls++
	return s.canteens, s.err
}

func (s *stubDirectory) CanteensByIDs(_ context.Context, ids []int) ([]openmensa.Canteen, error) {
	s.byIDsCalls++
	s.gotIDs = ids
	return s.canteens, s.err
}

func TestParseSelectionConflict(t *testing.T) {
	dir := &stubDirectory{}

	_, err := ParseSelection(42, "aachen")
	require.ErrorIs(t, err, ErrConflictingSelectors)

	// The conflict fails before resolution, so no collaborator runs.
	require.Zero(t, dir.byIDCalls)
	require.Zero(t, dir.byLocationCalls)
	require.Zero(t, dir.byIDsCalls)
}

func TestParseSelectionVariants(t *testing.T) {
	sel, err := ParseSelection(42, "")
	require.NoError(t, err)
	require.Equal(t, ByID{ID: 42}, sel)

	sel, err = ParseSelection(0, "aachen")
	require.NoError(t, err)
	require.Equal(t, ByLocation{Query: "aachen"}, sel)

	sel, err = ParseSelection(0, "")
	require.NoError(t, err)
	require.Equal(t, Defaults{}, sel)
}

func TestResolveByID(t *testing.T) {
	dir := &stubDirectory{canteen: &openmensa.Canteen{ID: 42, Name: "Mensa Academica"}}
	resolver := NewResolver(dir, nil)

	canteens, err := resolver.Resolve(context.Background(), ByID{ID: 42})
	require.NoError(t, err)
	require.Len(t, canteens, 1)
	require.Equal(t, "Mensa Academica", canteens[0].Name)
	require.Equal(t, 1, dir.byIDCalls)
	require.Zero(t, dir.byLocationCalls)
	require.Zero(t, dir.byIDsCalls)
}

func TestResolveByIDNotFound(t *testing.T) {
	dir := &stubDirectory{}
	resolver := NewResolver(dir, nil)

	_, err := resolver.Resolve(context.Background(), ByID{ID: 7})

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, 7, notFound.ID)
}

func TestResolveByIDLookupError(t *testing.T) {
	cause := errors.New("connection refused")
	dir := &stubDirectory{err: cause}
	resolver := NewResolver(dir, nil)

	_, err := resolver.Resolve(context.Background(), ByID{ID: 7})
	require.ErrorIs(t, err, cause)
}

func TestResolveByLocationEmptyIsNotAnError(t *testing.T) {
	dir := &stubDirectory{}
	resolver := NewResolver(dir, nil)

	canteens, err := resolver.Resolve(context.Background(), ByLocation{Query: "nowhere"})
	require.NoError(t, err)
	require.Empty(t, canteens)
	require.Equal(t, 1, dir.byLocationCalls)
}

func TestResolveDefaults(t *testing.T) {
	dir := &stubDirectory{canteens: []openmensa.Canteen{{ID: 1}, {ID: 2}}}
	resolver := NewResolver(dir, []int{1, 2})

	canteens, err := resolver.Resolve(context.Background(), Defaults{})
	require.NoError(t, err)
	require.Len(t, canteens, 2)
	require.Equal(t, []int{1, 2}, dir.gotIDs)
	require.Equal(t, 1, dir.byIDsCalls)
	require.Zero(t, dir.byIDCalls)
}
