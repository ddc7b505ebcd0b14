package tracker_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/eward/timekeep/internal/domain/project"
	"github.com/eward/timekeep/internal/domain/tracker"
	"github.com/eward/timekeep/internal/export"
	"github.com/eward/timekeep/internal/jsonfile"
	"github.com/eward/timekeep/internal/storage"
	"github.com/eward/timekeep/internal/storage/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// testClock is a settable clock for pinning session boundaries.
type testClock struct {
	t time.Time
}

func (c *testClock) now() time.Time {
	return c.t
}

func (c *testClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newTestService(t *testing.T) (*tracker.Service, *jsonfile.Store, *testClock) {
	t.Helper()

	store, err := jsonfile.New(filepath.Join(t.TempDir(), "projects.json"))
	require.NoError(t, err)

	clk := &testClock{t: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	exporter := export.NewCSV(t.TempDir())
	svc := tracker.NewService(store, exporter, nil, tracker.WithClock(clk.now))
	return svc, store, clk
}

func TestServiceCreateStartStop(t *testing.T) {
	ctx := context.Background()
	svc, store, clk := newTestService(t)

	require.NoError(t, svc.Create(ctx, "writing"))
	require.NoError(t, svc.Start(ctx, "writing"))

	clk.advance(90 * time.Second)
	res, err := svc.Stop(ctx, "writing")
	require.NoError(t, err)
	require.Equal(t, "1 minute 30 seconds", res.Session)
	require.Equal(t, "1 minute 30 seconds", res.Today)
	require.InDelta(t, 90, res.SessionSeconds, 0.001)

	doc, err := store.Load(ctx)
	require.NoError(t, err)
	proj, ok := doc.Get("writing")
	require.True(t, ok)
	require.False(t, proj.Active)
	require.InDelta(t, 90, proj.Total, 0.001)
	require.InDelta(t, 90, proj.Days.Get("2025-03-10"), 0.001)
}

func TestServiceCreateDuplicate(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	require.NoError(t, svc.Create(ctx, "writing"))
	err := svc.Create(ctx, "writing")
	require.ErrorIs(t, err, project.ErrAlreadyExists)
}

func TestServiceCreateBlankName(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	require.ErrorIs(t, svc.Create(ctx, ""), project.ErrInvalidInput)
	require.ErrorIs(t, svc.Create(ctx, "   "), project.ErrInvalidInput)
}

func TestServiceDoubleStartKeepsSession(t *testing.T) {
	ctx := context.Background()
	svc, store, clk := newTestService(t)

	require.NoError(t, svc.Create(ctx, "writing"))
	require.NoError(t, svc.Start(ctx, "writing"))

	before, err := store.Load(ctx)
	require.NoError(t, err)
	orig, _ := before.Get("writing")

	clk.advance(30 * time.Second)
	err = svc.Start(ctx, "writing")
	require.ErrorIs(t, err, project.ErrAlreadyTracking)

	after, err := store.Load(ctx)
	require.NoError(t, err)
	proj, _ := after.Get("writing")
	require.Equal(t, orig.Start, proj.Start)
	require.Equal(t, orig.Total, proj.Total)
	require.True(t, proj.Active)

	// The untouched session still accumulates from the original start.
	clk.advance(60 * time.Second)
	res, err := svc.Stop(ctx, "writing")
	require.NoError(t, err)
	require.InDelta(t, 90, res.SessionSeconds, 0.001)
}

func TestServiceStopWithoutTracking(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	require.NoError(t, svc.Create(ctx, "writing"))
	_, err := svc.Stop(ctx, "writing")
	require.ErrorIs(t, err, project.ErrNotTracking)
}

func TestServiceNotFound(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	require.ErrorIs(t, svc.Start(ctx, "ghost"), project.ErrNotFound)
	require.ErrorIs(t, svc.Delete(ctx, "ghost"), project.ErrNotFound)
	_, err := svc.Stop(ctx, "ghost")
	require.ErrorIs(t, err, project.ErrNotFound)
	_, err = svc.Detail(ctx, "ghost")
	require.ErrorIs(t, err, project.ErrNotFound)
}

func TestServiceListSurvivors(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	for _, name := range []string{"alpha", "beta", "gamma", "delta"} {
		require.NoError(t, svc.Create(ctx, name))
	}
	require.NoError(t, svc.Delete(ctx, "beta"))
	require.NoError(t, svc.Delete(ctx, "delta"))

	names, err := svc.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"alpha", "gamma"}, names)

	// Reads don't change the answer.
	names, err = svc.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"alpha", "gamma"}, names)
}

func TestServiceListEmpty(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	names, err := svc.List(ctx)
	require.NoError(t, err)
	require.Empty(t, names)
}

func TestServiceConservation(t *testing.T) {
	ctx := context.Background()
	svc, store, clk := newTestService(t)

	require.NoError(t, svc.Create(ctx, "writing"))

	sessions := []time.Duration{
		42 * time.Second,
		17 * time.Minute,
		3 * time.Second,
		26 * time.Hour, // spans midnight; credited wholly to the stop day
	}
	for _, d := range sessions {
		require.NoError(t, svc.Start(ctx, "writing"))
		clk.advance(d)
		_, err := svc.Stop(ctx, "writing")
		require.NoError(t, err)
		clk.advance(5 * time.Minute)
	}

	doc, err := store.Load(ctx)
	require.NoError(t, err)
	proj, _ := doc.Get("writing")
	require.InDelta(t, proj.Total, proj.Days.Sum(), 0.001)
}

func TestServiceDeleteActiveProject(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	require.NoError(t, svc.Create(ctx, "writing"))
	require.NoError(t, svc.Start(ctx, "writing"))
	require.NoError(t, svc.Delete(ctx, "writing"))

	names, err := svc.List(ctx)
	require.NoError(t, err)
	require.Empty(t, names)
}

func TestServiceDetailWindowWithGaps(t *testing.T) {
	ctx := context.Background()
	svc, store, clk := newTestService(t)

	// Entries on today and today-3 only; the other five days are absent.
	doc := project.NewDocument()
	proj := project.New()
	proj.Days.Add(project.DayFor(clk.t.AddDate(0, 0, -3)), 120)
	proj.Days.Add(project.DayFor(clk.t), 60)
	proj.Days.Add(project.DayFor(clk.t.AddDate(0, 0, -9)), 999) // outside the window
	proj.Total = 1179
	doc.Put("writing", proj)
	require.NoError(t, store.Save(ctx, doc))

	res, err := svc.Detail(ctx, "writing")
	require.NoError(t, err)
	require.InDelta(t, 180, res.WindowSeconds, 0.001)
	require.Equal(t, "3 minutes", res.Window)
}

func TestServiceExport(t *testing.T) {
	ctx := context.Background()
	svc, _, clk := newTestService(t)

	require.NoError(t, svc.Create(ctx, "writing"))
	require.NoError(t, svc.Create(ctx, "reading"))
	require.NoError(t, svc.Start(ctx, "writing"))
	clk.advance(time.Minute)
	_, err := svc.Stop(ctx, "writing")
	require.NoError(t, err)

	res, err := svc.Export(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, res.Projects)
	require.NotEmpty(t, res.Dest)
}

func TestServiceSurfacesCorruptStore(t *testing.T) {
	ctx := context.Background()

	store := &mocks.Store{}
	store.On("Load", mock.Anything).Return(nil, storage.ErrCorrupt)

	svc := tracker.NewService(store, export.NewCSV(t.TempDir()), nil)
	require.ErrorIs(t, svc.Create(ctx, "writing"), storage.ErrCorrupt)
	_, err := svc.List(ctx)
	require.ErrorIs(t, err, storage.ErrCorrupt)
}

func TestServiceSaveFailurePropagates(t *testing.T) {
	ctx := context.Background()

	store := &mocks.Store{}
	store.On("Load", mock.Anything).Return(project.NewDocument(), nil)
	store.On("Save", mock.Anything, mock.Anything).Return(storage.ErrCorrupt)

	svc := tracker.NewService(store, export.NewCSV(t.TempDir()), nil)
	require.ErrorIs(t, svc.Create(ctx, "writing"), storage.ErrCorrupt)
}
