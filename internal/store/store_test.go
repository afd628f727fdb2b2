package store

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/sandeepkv93/taskcal/internal/model"
)

type recordingPersister struct {
	saves [][]model.Task
	err   error
}

func (p *recordingPersister) Save(_ context.Context, tasks []model.Task) error {
	p.saves = append(p.saves, tasks)
	return p.err
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTestStore(t *testing.T) (*Store, *recordingPersister) {
	t.Helper()
	p := &recordingPersister{}
	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	return New(p, nil, WithClock(fixedClock(now))), p
}

func ptr[T any](v T) *T { return &v }

func TestCreateAppliesDefaultsAndPersists(t *testing.T) {
	s, p := newTestStore(t)
	ctx := context.Background()

	task, err := s.Create(ctx, CreateInput{Title: "Write report"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if task.Category != model.CategoryDaily || task.Priority != model.PriorityMedium || task.Status != model.StatusPending {
		t.Fatalf("unexpected defaults: %+v", task)
	}
	if task.DueDate.String() != "2024-03-01" || task.CreatedAt.String() != "2024-03-01" {
		t.Fatalf("expected due/created to default to today: %+v", task)
	}
	if task.StartTime.String() != "09:00" || task.EndTime.String() != "10:00" || task.Duration != 60 {
		t.Fatalf("unexpected time defaults: %+v", task)
	}
	if task.Progress != 0 {
		t.Fatalf("expected progress 0, got %d", task.Progress)
	}
	if err := task.Validate(); err != nil {
		t.Fatalf("created task invalid: %v", err)
	}
	if s.Len() != 1 || len(p.saves) != 1 || len(p.saves[0]) != 1 {
		t.Fatalf("expected one task and one save, got len=%d saves=%d", s.Len(), len(p.saves))
	}
}

func TestCreateBuyMilkScenario(t *testing.T) {
	s, _ := newTestStore(t)
	due := model.NewDate(2024, 3, 15)
	task, err := s.Create(context.Background(), CreateInput{
		Title:     "Buy milk",
		Category:  model.CategoryDaily,
		Priority:  model.PriorityMedium,
		DueDate:   &due,
		StartTime: ptr(model.Clock{Hour: 9}),
		EndTime:   ptr(model.Clock{Hour: 9, Minute: 30}),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if task.Duration != 30 {
		t.Fatalf("expected duration 30, got %d", task.Duration)
	}
	if task.DueDate != due {
		t.Fatalf("unexpected due date %s", task.DueDate)
	}
}

func TestCreateDurationIsZeroWhenEndBeforeStart(t *testing.T) {
	s, _ := newTestStore(t)
	task, err := s.Create(context.Background(), CreateInput{
		Title:     "Night shift",
		StartTime: ptr(model.Clock{Hour: 22}),
		EndTime:   ptr(model.Clock{Hour: 6}),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if task.Duration != 0 {
		t.Fatalf("expected duration 0, got %d", task.Duration)
	}
}

func TestCreateRejectsBlankTitle(t *testing.T) {
	s, p := newTestStore(t)
	for _, title := range []string{"", "   ", "\t\n"} {
		_, err := s.Create(context.Background(), CreateInput{Title: title})
		if !errors.Is(err, ErrEmptyTitle) {
			t.Fatalf("title %q: expected ErrEmptyTitle, got %v", title, err)
		}
	}
	if s.Len() != 0 || len(p.saves) != 0 {
		t.Fatalf("blank titles must not change the store: len=%d saves=%d", s.Len(), len(p.saves))
	}
}

func TestCreateAssignsUniqueIncreasingIDs(t *testing.T) {
	s, _ := newTestStore(t)
	seen := make(map[int64]bool)
	var last int64
	for i := 0; i < 5; i++ {
		task, err := s.Create(context.Background(), CreateInput{Title: "same millisecond"})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if seen[task.ID] || task.ID <= last {
			t.Fatalf("id %d reused or not increasing (last %d)", task.ID, last)
		}
		seen[task.ID] = true
		last = task.ID
	}
}

func TestNewSeedsIDsFromInitialCollection(t *testing.T) {
	initial := []model.Task{{ID: 9_999_999_999_999, Title: "future"}}
	s := New(nil, initial, WithClock(fixedClock(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))))
	task, err := s.Create(context.Background(), CreateInput{Title: "next"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if task.ID != 10_000_000_000_000 {
		t.Fatalf("expected id after seeded max, got %d", task.ID)
	}
}

func TestSetStatusAndCompletionRate(t *testing.T) {
	s, p := newTestStore(t)
	ctx := context.Background()
	if s.CompletionRate() != 0 {
		t.Fatalf("empty store should report 0, got %d", s.CompletionRate())
	}

	due := model.NewDate(2024, 3, 15)
	a, _ := s.Create(ctx, CreateInput{Title: "a", DueDate: &due})
	b, _ := s.Create(ctx, CreateInput{Title: "b", DueDate: &due})

	if err := s.SetStatus(ctx, a.ID, model.StatusDone); err != nil {
		t.Fatalf("set status: %v", err)
	}
	if s.CompletionRate() != 50 {
		t.Fatalf("expected 50, got %d", s.CompletionRate())
	}
	got, _ := s.Get(a.ID)
	if got.Status != model.StatusDone || got.Title != "a" || got.DueDate != due {
		t.Fatalf("set status must only replace status: %+v", got)
	}

	if err := s.ToggleStatus(ctx, b.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if s.CompletionRate() != 100 {
		t.Fatalf("expected 100, got %d", s.CompletionRate())
	}
	if len(p.saves) != 4 {
		t.Fatalf("expected a save per mutation, got %d", len(p.saves))
	}
}

func TestCompletionRateRounds(t *testing.T) {
	tasks := []model.Task{
		{ID: 1, Status: model.StatusDone},
		{ID: 2, Status: model.StatusPending},
		{ID: 3, Status: model.StatusPending},
	}
	if got := CompletionRate(tasks); got != 33 {
		t.Fatalf("expected 33, got %d", got)
	}
	tasks[1].Status = model.StatusDone
	if got := CompletionRate(tasks); got != 67 {
		t.Fatalf("expected 67, got %d", got)
	}
}

func TestSetStatusRejectsUnknownStatus(t *testing.T) {
	s, _ := newTestStore(t)
	task, _ := s.Create(context.Background(), CreateInput{Title: "a"})
	err := s.SetStatus(context.Background(), task.ID, model.Status("blocked"))
	if !errors.Is(err, model.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestSetProgressClamps(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	task, _ := s.Create(ctx, CreateInput{Title: "a"})

	cases := map[int]int{40: 40, -10: 0, 150: 100}
	for in, want := range cases {
		if err := s.SetProgress(ctx, task.ID, in); err != nil {
			t.Fatalf("set progress: %v", err)
		}
		got, _ := s.Get(task.ID)
		if got.Progress != want {
			t.Fatalf("SetProgress(%d) stored %d, want %d", in, got.Progress, want)
		}
		if got.Status != model.StatusPending {
			t.Fatal("progress must not change status")
		}
	}
}

func TestUnknownIDIsIdempotentNoOp(t *testing.T) {
	s, p := newTestStore(t)
	ctx := context.Background()
	task, _ := s.Create(ctx, CreateInput{Title: "keep"})
	before := s.All()
	saves := len(p.saves)

	if err := s.SetStatus(ctx, 42, model.StatusDone); err != nil {
		t.Fatalf("set status unknown: %v", err)
	}
	if err := s.ToggleStatus(ctx, 42); err != nil {
		t.Fatalf("toggle unknown: %v", err)
	}
	if err := s.SetProgress(ctx, 42, 80); err != nil {
		t.Fatalf("set progress unknown: %v", err)
	}
	if err := s.Delete(ctx, 42); err != nil {
		t.Fatalf("delete unknown: %v", err)
	}
	if !slices.Equal(before, s.All()) {
		t.Fatalf("collection changed: %+v", s.All())
	}
	if len(p.saves) != saves {
		t.Fatalf("no-op operations must not persist, got %d extra saves", len(p.saves)-saves)
	}

	if err := s.Delete(ctx, task.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(ctx, task.ID); err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("expected empty store, got %d", s.Len())
	}
}

func TestSearchIsCaseInsensitiveAndRestartable(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	for _, title := range []string{"Buy Milk", "milk tea", "Call mom"} {
		if _, err := s.Create(ctx, CreateInput{Title: title}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	seq := s.Search("MILK")
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("expected 2 matches twice, got %d and %d", len(first), len(second))
	}
	if first[0].Title != "Buy Milk" || first[1].Title != "milk tea" {
		t.Fatalf("unexpected order: %+v", first)
	}
	if all := slices.Collect(s.Search("")); len(all) != 3 {
		t.Fatalf("empty term should match all, got %d", len(all))
	}
	if none := slices.Collect(s.Search("bread")); len(none) != 0 {
		t.Fatalf("expected no matches, got %d", len(none))
	}
}

func TestPersistenceFailureIsSurfaced(t *testing.T) {
	p := &recordingPersister{err: errors.New("disk full")}
	s := New(p, nil)
	task, err := s.Create(context.Background(), CreateInput{Title: "a"})

	var perr *PersistenceError
	if !errors.As(err, &perr) {
		t.Fatalf("expected PersistenceError, got %v", err)
	}
	if perr.Op != "create" || perr.Err.Error() != "disk full" {
		t.Fatalf("unexpected persistence error: %+v", perr)
	}
	if _, ok := s.Get(task.ID); !ok {
		t.Fatal("in-memory state should keep the mutation after a failed save")
	}
}
