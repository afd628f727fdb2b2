// Package store owns the in-memory task collection. It is the only place the
// collection is mutated, and every mutation is written through a Persister
// before the call returns.
package store

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sandeepkv93/taskcal/internal/model"
)

var ErrEmptyTitle = errors.New("store: task title is required")

// Persister receives the full collection after every mutation.
type Persister interface {
	Save(ctx context.Context, tasks []model.Task) error
}

// PersistenceError reports that a mutation was applied in memory but could
// not be written.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("store: %s: save failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

type Store struct {
	tasks     []model.Task
	lastID    int64
	persister Persister
	now       func() time.Time
	logger    zerolog.Logger
}

// New seeds a store with an already loaded collection. A nil persister makes
// the store memory-only.
func New(persister Persister, initial []model.Task, opts ...Option) *Store {
	s := &Store{
		tasks:     slices.Clone(initial),
		persister: persister,
		now:       time.Now,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	for _, t := range s.tasks {
		s.lastID = max(s.lastID, t.ID)
	}
	return s
}

type CreateInput struct {
	Title     string
	Category  model.Category
	Priority  model.Priority
	DueDate   *model.Date
	StartTime *model.Clock
	EndTime   *model.Clock
}

func (s *Store) Create(ctx context.Context, in CreateInput) (model.Task, error) {
	if strings.TrimSpace(in.Title) == "" {
		return model.Task{}, ErrEmptyTitle
	}
	now := s.now()
	today := model.DateOf(now)

	task := model.Task{
		ID:        s.nextID(now),
		Title:     in.Title,
		Category:  model.CategoryDaily,
		Priority:  model.PriorityMedium,
		Status:    model.StatusPending,
		DueDate:   today,
		CreatedAt: today,
		StartTime: model.DefaultStartTime,
		EndTime:   model.DefaultEndTime,
	}
	if in.Category != "" {
		if !in.Category.IsValid() {
			return model.Task{}, fmt.Errorf("%w: %q", model.ErrInvalidCategory, in.Category)
		}
		task.Category = in.Category
	}
	if in.Priority != "" {
		if !in.Priority.IsValid() {
			return model.Task{}, fmt.Errorf("%w: %q", model.ErrInvalidPriority, in.Priority)
		}
		task.Priority = in.Priority
	}
	if in.DueDate != nil && !in.DueDate.IsZero() {
		task.DueDate = *in.DueDate
	}
	if in.StartTime != nil {
		task.StartTime = *in.StartTime
	}
	if in.EndTime != nil {
		task.EndTime = *in.EndTime
	}
	task.Duration = model.DurationMinutes(task.StartTime, task.EndTime)

	s.tasks = append(s.tasks, task)
	s.lastID = task.ID
	s.logger.Debug().
		Int64("task_id", task.ID).
		Str("due", task.DueDate.String()).
		Msg("created task")
	return task, s.persist(ctx, "create")
}

func (s *Store) SetStatus(ctx context.Context, id int64, status model.Status) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: %q", model.ErrInvalidStatus, status)
	}
	idx := s.indexOf(id)
	if idx < 0 {
		return nil
	}
	s.tasks[idx].Status = status
	s.logger.Debug().
		Int64("task_id", id).
		Str("status", string(status)).
		Msg("updated task status")
	return s.persist(ctx, "set status")
}

func (s *Store) ToggleStatus(ctx context.Context, id int64) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return nil
	}
	return s.SetStatus(ctx, id, s.tasks[idx].Status.Toggle())
}

// SetProgress clamps value into [0,100].
func (s *Store) SetProgress(ctx context.Context, id int64, value int) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return nil
	}
	s.tasks[idx].Progress = model.ClampProgress(value)
	s.logger.Debug().
		Int64("task_id", id).
		Int("progress", s.tasks[idx].Progress).
		Msg("updated task progress")
	return s.persist(ctx, "set progress")
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return nil
	}
	s.tasks = slices.Delete(s.tasks, idx, idx+1)
	s.logger.Debug().
		Int64("task_id", id).
		Msg("deleted task")
	return s.persist(ctx, "delete")
}

func (s *Store) Get(id int64) (model.Task, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return model.Task{}, false
	}
	return s.tasks[idx], true
}

// All returns a copy of the collection in creation order.
func (s *Store) All() []model.Task {
	return slices.Clone(s.tasks)
}

func (s *Store) Len() int {
	return len(s.tasks)
}

// Search yields tasks whose title contains term, ignoring case. The sequence
// reads the live collection each time it is ranged over.
func (s *Store) Search(term string) iter.Seq[model.Task] {
	needle := strings.ToLower(term)
	return func(yield func(model.Task) bool) {
		for _, t := range s.tasks {
			if needle != "" && !strings.Contains(strings.ToLower(t.Title), needle) {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}

// CompletionRate is the rounded percentage of done tasks, 0 for an empty store.
func (s *Store) CompletionRate() int {
	return CompletionRate(s.tasks)
}

func CompletionRate(tasks []model.Task) int {
	if len(tasks) == 0 {
		return 0
	}
	done := 0
	for _, t := range tasks {
		if t.Done() {
			done++
		}
	}
	return int(math.Round(float64(done) / float64(len(tasks)) * 100))
}

func (s *Store) indexOf(id int64) int {
	return slices.IndexFunc(s.tasks, func(t model.Task) bool { return t.ID == id })
}

func (s *Store) nextID(now time.Time) int64 {
	return max(now.UnixMilli(), s.lastID+1)
}

func (s *Store) persist(ctx context.Context, op string) error {
	if s.persister == nil {
		return nil
	}
	if err := s.persister.Save(ctx, s.All()); err != nil {
		s.logger.Warn().
			Err(err).
			Str("op", op).
			Int("tasks", len(s.tasks)).
			Msg("failed to persist tasks")
		return &PersistenceError{Op: op, Err: err}
	}
	return nil
}
