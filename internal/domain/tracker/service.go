package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/eward/timekeep/internal/domain/project"
)

// detailWindowDays is the size of the rolling window reported by Detail,
// counting back from and including today.
const detailWindowDays = 7

// Service implements the time-tracking command surface. Every command is a
// full load, in-memory mutation and full save of the project document,
// serialized by a single-writer lock: the persisted layout has no
// incremental update path, so overlapping read-modify-write cycles would
// lose updates without it.
type Service struct {
	mu       sync.Mutex
	store    Store
	exporter Exporter
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the service clock, used by tests to pin session
// boundaries.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a new tracker service.
func NewService(store Store, exporter Exporter, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Service{
		store:    store,
		exporter: exporter,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StopResult holds the outcome of a completed session.
type StopResult struct {
	// SessionSeconds is the elapsed time of the session just closed.
	SessionSeconds float64
	// Session is SessionSeconds rendered for speech. Empty when the
	// session closed within the same second it started.
	Session string
	// TodaySeconds is the accumulated time for the stop day, including
	// this session.
	TodaySeconds float64
	// Today is TodaySeconds rendered for speech.
	Today string
}

// DetailResult holds a project's rolling-window total.
type DetailResult struct {
	// WindowSeconds is the time accumulated over the last seven calendar
	// days, today included.
	WindowSeconds float64
	// Window is WindowSeconds rendered for speech.
	Window string
}

// ExportResult describes a completed export.
type ExportResult struct {
	Projects int
	Dest     string
}

// Create adds a new idle project. Returns project.ErrAlreadyExists when the
// name is already taken.
func (s *Service) Create(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return project.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading projects: %w", err)
	}
	if _, ok := doc.Get(name); ok {
		return fmt.Errorf("%q: %w", name, project.ErrAlreadyExists)
	}
	doc.Put(name, project.New())
	if err := s.store.Save(ctx, doc); err != nil {
		return fmt.Errorf("saving projects: %w", err)
	}

	s.logger.Info("project created", "project", name)
	return nil
}

// Delete removes a project regardless of tracking state. Returns
// project.ErrNotFound when absent.
func (s *Service) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading projects: %w", err)
	}
	if !doc.Delete(name) {
		return fmt.Errorf("%q: %w", name, project.ErrNotFound)
	}
	if err := s.store.Save(ctx, doc); err != nil {
		return fmt.Errorf("saving projects: %w", err)
	}

	s.logger.Info("project deleted", "project", name)
	return nil
}

// Start opens a tracking session. Starting an already-tracked project
// returns project.ErrAlreadyTracking and leaves the open session untouched.
func (s *Service) Start(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading projects: %w", err)
	}
	proj, ok := doc.Get(name)
	if !ok {
		return fmt.Errorf("%q: %w", name, project.ErrNotFound)
	}
	if proj.Active {
		return fmt.Errorf("%q: %w", name, project.ErrAlreadyTracking)
	}

	proj.Start = epochSeconds(s.now())
	proj.Active = true
	if err := s.store.Save(ctx, doc); err != nil {
		return fmt.Errorf("saving projects: %w", err)
	}

	s.logger.Info("tracking started", "project", name)
	return nil
}

// Stop closes the open session, attributing the elapsed time to the
// cumulative total and to today's day bucket. Returns
// project.ErrNotTracking when no session is open.
func (s *Service) Stop(ctx context.Context, name string) (*StopResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading projects: %w", err)
	}
	proj, ok := doc.Get(name)
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, project.ErrNotFound)
	}
	if !proj.Active {
		return nil, fmt.Errorf("%q: %w", name, project.ErrNotTracking)
	}

	now := s.now()
	elapsed := epochSeconds(now) - proj.Start
	if elapsed < 0 {
		elapsed = 0
	}

	proj.Total += elapsed
	today := proj.Days.Add(project.DayFor(now), elapsed)
	proj.Active = false

	if err := s.store.Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("saving projects: %w", err)
	}

	s.logger.Info("tracking stopped", "project", name, "elapsed_seconds", elapsed)
	return &StopResult{
		SessionSeconds: elapsed,
		Session:        FormatDuration(elapsed),
		TodaySeconds:   today,
		Today:          FormatDuration(today),
	}, nil
}

// List returns all project names in insertion order.
func (s *Service) List(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading projects: %w", err)
	}
	return doc.Names(), nil
}

// Detail sums a project's day buckets over the last seven calendar days,
// today included. Days with no entry contribute zero.
func (s *Service) Detail(ctx context.Context, name string) (*DetailResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading projects: %w", err)
	}
	proj, ok := doc.Get(name)
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, project.ErrNotFound)
	}

	now := s.now()
	var total float64
	for i := 0; i < detailWindowDays; i++ {
		total += proj.Days.Get(project.DayFor(now.AddDate(0, 0, -i)))
	}

	return &DetailResult{
		WindowSeconds: total,
		Window:        FormatDuration(total),
	}, nil
}

// Export writes every project's recorded time through the configured
// exporter and reports the destination.
func (s *Service) Export(ctx context.Context) (*ExportResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading projects: %w", err)
	}
	dest, err := s.exporter.Export(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("exporting projects: %w", err)
	}

	s.logger.Info("projects exported", "projects", doc.Len(), "dest", dest)
	return &ExportResult{Projects: doc.Len(), Dest: dest}, nil
}

func epochSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}
