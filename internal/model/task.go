package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidCategory = errors.New("model: invalid task category")
	ErrInvalidPriority = errors.New("model: invalid task priority")
	ErrInvalidStatus   = errors.New("model: invalid task status")
	ErrInvalidProgress = errors.New("model: task progress out of range")
)

const (
	MinProgress = 0
	MaxProgress = 100
)

type Category string

const (
	CategoryDaily   Category = "daily"
	CategoryWeekly  Category = "weekly"
	CategoryMonthly Category = "monthly"
	CategoryYearly  Category = "yearly"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryDaily, CategoryWeekly, CategoryMonthly, CategoryYearly}

func (c Category) IsValid() bool {
	switch c {
	case CategoryDaily, CategoryWeekly, CategoryMonthly, CategoryYearly:
		return true
	default:
		return false
	}
}

func ParseCategory(raw string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "daily", "日々":
		return CategoryDaily, nil
	case "weekly", "週間":
		return CategoryWeekly, nil
	case "monthly", "月間":
		return CategoryMonthly, nil
	case "yearly", "年間":
		return CategoryYearly, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, raw)
	}
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

func ParsePriority(raw string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "low", "低":
		return PriorityLow, nil
	case "medium", "中":
		return PriorityMedium, nil
	case "high", "高":
		return PriorityHigh, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPriority, raw)
	}
}

type Status string

const (
	StatusPending Status = "pending"
	StatusDone    Status = "done"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusDone:
		return true
	default:
		return false
	}
}

func ParseStatus(raw string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pending", "未完了":
		return StatusPending, nil
	case "done", "完了":
		return StatusDone, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
}

// Toggle flips between pending and done.
func (s Status) Toggle() Status {
	if s == StatusDone {
		return StatusPending
	}
	return StatusDone
}

type Task struct {
	ID        int64    `json:"id"`
	Title     string   `json:"title"`
	Category  Category `json:"category"`
	Priority  Priority `json:"priority"`
	Status    Status   `json:"status"`
	DueDate   Date     `json:"dueDate"`
	CreatedAt Date     `json:"createdAt"`
	StartTime Clock    `json:"startTime"`
	EndTime   Clock    `json:"endTime"`
	Duration  int      `json:"duration"`
	Progress  int      `json:"progress"`
}

func (t Task) Done() bool {
	return t.Status == StatusDone
}

func (t Task) Validate() error {
	if t.ID <= 0 {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("model: task title is required")
	}
	if !t.Category.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, t.Category)
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}
	if !t.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, t.Status)
	}
	if t.Progress < MinProgress || t.Progress > MaxProgress {
		return fmt.Errorf("%w: %d", ErrInvalidProgress, t.Progress)
	}
	if t.DueDate.IsZero() {
		return errors.New("model: task due_date is required")
	}
	if t.CreatedAt.IsZero() {
		return errors.New("model: task created_at is required")
	}
	if t.Duration < 0 {
		return errors.New("model: task duration must not be negative")
	}
	return nil
}

// ClampProgress pins v into the allowed progress range.
func ClampProgress(v int) int {
	return max(MinProgress, min(MaxProgress, v))
}
