package sqlite_test

import (
	"context"
	"testing"

	"github.com/eward/timekeep/internal/domain/project"
	"github.com/eward/timekeep/internal/sqlite"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestEmptyDatabase(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	doc, err := store.Load(ctx)
	require.NoError(t, err)
	require.Zero(t, doc.Len())
}

func TestRoundTripPreservesOrder(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	doc := project.NewDocument()
	writing := project.New()
	writing.Total = 150.5
	writing.Days.Add("2025-03-10", 90)
	writing.Days.Add("2025-03-08", 60.5)
	doc.Put("zeta", project.New())
	doc.Put("writing", writing)
	doc.Put("alpha", project.New())

	require.NoError(t, store.Save(ctx, doc))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"zeta", "writing", "alpha"}, loaded.Names())

	proj, ok := loaded.Get("writing")
	require.True(t, ok)
	require.Equal(t, 150.5, proj.Total)
	require.Equal(t, []string{"2025-03-10", "2025-03-08"}, proj.Days.Dates())
	require.Equal(t, 60.5, proj.Days.Get("2025-03-08"))
}

func TestTrackingStateSurvives(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	doc := project.NewDocument()
	proj := project.New()
	proj.Active = true
	proj.Start = 1741600000.25
	doc.Put("writing", proj)
	require.NoError(t, store.Save(ctx, doc))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	got, _ := loaded.Get("writing")
	require.True(t, got.Active)
	require.Equal(t, 1741600000.25, got.Start)
}

func TestSaveReplacesEverything(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	doc := project.NewDocument()
	writing := project.New()
	writing.Days.Add("2025-03-10", 90)
	doc.Put("writing", writing)
	doc.Put("reading", project.New())
	require.NoError(t, store.Save(ctx, doc))

	doc.Delete("writing")
	require.NoError(t, store.Save(ctx, doc))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"reading"}, loaded.Names())
	_, ok := loaded.Get("writing")
	require.False(t, ok)
}
