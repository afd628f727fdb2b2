package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/sandeepkv93/taskcal/internal/model"
)

// StorageKey names the single blob holding the task collection.
const StorageKey = "taskcal.tasks"

// Adapter serializes the whole task collection into one blob.
type Adapter struct {
	blobs  BlobStore
	key    string
	logger zerolog.Logger
}

func NewAdapter(blobs BlobStore, logger zerolog.Logger) *Adapter {
	return &Adapter{blobs: blobs, key: StorageKey, logger: logger}
}

// Load never fails: a missing, unreadable or undecodable payload yields an
// empty collection, and individual bad records are skipped.
func (a *Adapter) Load(ctx context.Context) []model.Task {
	raw, err := a.blobs.Get(ctx, a.key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			a.logger.Warn().Err(err).Str("key", a.key).Msg("failed to read tasks, starting empty")
		}
		return []model.Task{}
	}
	tasks, err := DecodeTasks(raw, a.logger)
	if err != nil {
		a.logger.Warn().Err(err).Str("key", a.key).Msg("stored tasks are malformed, starting empty")
		return []model.Task{}
	}
	a.logger.Info().Int("tasks", len(tasks)).Msg("loaded tasks")
	return tasks
}

func (a *Adapter) Save(ctx context.Context, tasks []model.Task) error {
	payload, err := EncodeTasks(tasks)
	if err != nil {
		return err
	}
	if err := a.blobs.Put(ctx, a.key, payload); err != nil {
		return fmt.Errorf("storage: save tasks: %w", err)
	}
	return nil
}

func EncodeTasks(tasks []model.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []model.Task{}
	}
	payload, err := json.Marshal(tasks)
	if err != nil {
		return nil, fmt.Errorf("storage: encode tasks: %w", err)
	}
	return payload, nil
}

// DecodeTasks parses a JSON array of task records. Only a payload that is not
// an array at all is an error; records that cannot be normalised or that
// repeat an earlier id are logged and dropped.
func DecodeTasks(raw []byte, logger zerolog.Logger) ([]model.Task, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return []model.Task{}, nil
	}
	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("storage: decode tasks: %w", err)
	}
	out := make([]model.Task, 0, len(records))
	seen := make(map[int64]bool, len(records))
	for i, rec := range records {
		task, err := decodeRecord(rec)
		if err != nil {
			logger.Warn().Err(err).Int("index", i).Msg("dropping stored task")
			continue
		}
		if seen[task.ID] {
			logger.Warn().Int64("task_id", task.ID).Int("index", i).Msg("dropping duplicate task id")
			continue
		}
		seen[task.ID] = true
		out = append(out, task)
	}
	return out, nil
}

// wireTask accepts both the current field set and records written by the
// older browser build, which stored the title under "task", used Japanese
// enum literals and sometimes wrote progress as a string.
type wireTask struct {
	ID        json.Number     `json:"id"`
	Title     string          `json:"title"`
	Task      string          `json:"task"`
	Category  string          `json:"category"`
	Priority  string          `json:"priority"`
	Status    string          `json:"status"`
	DueDate   string          `json:"dueDate"`
	CreatedAt string          `json:"createdAt"`
	StartTime string          `json:"startTime"`
	EndTime   string          `json:"endTime"`
	Duration  *int            `json:"duration"`
	Progress  json.RawMessage `json:"progress"`
}

func decodeRecord(raw json.RawMessage) (model.Task, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var w wireTask
	if err := dec.Decode(&w); err != nil {
		return model.Task{}, fmt.Errorf("storage: decode record: %w", err)
	}

	id, err := strconv.ParseInt(w.ID.String(), 10, 64)
	if err != nil {
		return model.Task{}, fmt.Errorf("storage: invalid id %q", w.ID)
	}
	task := model.Task{
		ID:        id,
		Title:     w.Title,
		Category:  model.CategoryDaily,
		Priority:  model.PriorityMedium,
		Status:    model.StatusPending,
		StartTime: model.DefaultStartTime,
		EndTime:   model.DefaultEndTime,
	}
	if strings.TrimSpace(task.Title) == "" {
		task.Title = w.Task
	}
	if w.Category != "" {
		if task.Category, err = model.ParseCategory(w.Category); err != nil {
			return model.Task{}, err
		}
	}
	if w.Priority != "" {
		if task.Priority, err = model.ParsePriority(w.Priority); err != nil {
			return model.Task{}, err
		}
	}
	if w.Status != "" {
		if task.Status, err = model.ParseStatus(w.Status); err != nil {
			return model.Task{}, err
		}
	}
	if task.DueDate, err = model.ParseDate(w.DueDate); err != nil {
		return model.Task{}, err
	}
	task.CreatedAt = task.DueDate
	if w.CreatedAt != "" {
		if task.CreatedAt, err = model.ParseDate(w.CreatedAt); err != nil {
			return model.Task{}, err
		}
	}
	if w.StartTime != "" {
		if task.StartTime, err = model.ParseClock(w.StartTime); err != nil {
			return model.Task{}, err
		}
	}
	if w.EndTime != "" {
		if task.EndTime, err = model.ParseClock(w.EndTime); err != nil {
			return model.Task{}, err
		}
	}
	if w.Duration != nil {
		task.Duration = max(0, *w.Duration)
	} else {
		task.Duration = model.DurationMinutes(task.StartTime, task.EndTime)
	}
	if task.Progress, err = decodeProgress(w.Progress); err != nil {
		return model.Task{}, err
	}

	if err := task.Validate(); err != nil {
		return model.Task{}, err
	}
	return task, nil
}

func decodeProgress(raw json.RawMessage) (int, error) {
	text := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	if text == "" || text == "null" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", model.ErrInvalidProgress, text)
	}
	return model.ClampProgress(int(v)), nil
}
