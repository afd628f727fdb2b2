package model

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func validTask() Task {
	return Task{
		ID:        1710460800000,
		Title:     "Buy milk",
		Category:  CategoryDaily,
		Priority:  PriorityMedium,
		Status:    StatusPending,
		DueDate:   NewDate(2024, 3, 15),
		CreatedAt: NewDate(2024, 3, 1),
		StartTime: Clock{Hour: 9},
		EndTime:   Clock{Hour: 9, Minute: 30},
		Duration:  30,
	}
}

func TestTaskValidateSuccess(t *testing.T) {
	if err := validTask().Validate(); err != nil {
		t.Fatalf("expected valid task, got error: %v", err)
	}
}

func TestTaskValidateRequiresTitle(t *testing.T) {
	task := validTask()
	task.Title = "   "
	err := task.Validate()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Error() != "model: task title is required" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTaskValidateInvalidEnums(t *testing.T) {
	task := validTask()
	task.Category = Category("hourly")
	if err := task.Validate(); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got: %v", err)
	}

	task.Category = CategoryWeekly
	task.Priority = Priority("urgent")
	if err := task.Validate(); !errors.Is(err, ErrInvalidPriority) {
		t.Fatalf("expected ErrInvalidPriority, got: %v", err)
	}

	task.Priority = PriorityHigh
	task.Status = Status("archived")
	if err := task.Validate(); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got: %v", err)
	}

	task.Status = StatusDone
	task.Progress = 101
	if err := task.Validate(); !errors.Is(err, ErrInvalidProgress) {
		t.Fatalf("expected ErrInvalidProgress, got: %v", err)
	}
}

func TestParseEnumsAcceptLegacyLiterals(t *testing.T) {
	cases := []struct {
		raw  string
		want Category
	}{
		{"daily", CategoryDaily},
		{"Weekly", CategoryWeekly},
		{"月間", CategoryMonthly},
		{"年間", CategoryYearly},
	}
	for _, tc := range cases {
		got, err := ParseCategory(tc.raw)
		if err != nil || got != tc.want {
			t.Fatalf("ParseCategory(%q) = %q, %v; want %q", tc.raw, got, err, tc.want)
		}
	}

	if p, err := ParsePriority("高"); err != nil || p != PriorityHigh {
		t.Fatalf("ParsePriority(高) = %q, %v", p, err)
	}
	if s, err := ParseStatus("完了"); err != nil || s != StatusDone {
		t.Fatalf("ParseStatus(完了) = %q, %v", s, err)
	}
	if _, err := ParseStatus("maybe"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestStatusToggle(t *testing.T) {
	if StatusPending.Toggle() != StatusDone || StatusDone.Toggle() != StatusPending {
		t.Fatal("toggle should flip pending and done")
	}
}

func TestClampProgress(t *testing.T) {
	cases := map[int]int{-5: 0, 0: 0, 42: 42, 100: 100, 250: 100}
	for in, want := range cases {
		if got := ClampProgress(in); got != want {
			t.Fatalf("ClampProgress(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestTaskJSONFieldNames(t *testing.T) {
	raw, err := json.Marshal(validTask())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	out := string(raw)
	for _, field := range []string{
		`"id":1710460800000`, `"title":"Buy milk"`, `"category":"daily"`,
		`"priority":"medium"`, `"status":"pending"`, `"dueDate":"2024-03-15"`,
		`"createdAt":"2024-03-01"`, `"startTime":"09:00"`, `"endTime":"09:30"`,
		`"duration":30`, `"progress":0`,
	} {
		if !strings.Contains(out, field) {
			t.Fatalf("expected %s in %s", field, out)
		}
	}
}
