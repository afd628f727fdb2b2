package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sandeepkv93/taskcal/internal/calendar"
	"github.com/sandeepkv93/taskcal/internal/model"
)

const cellWidth = 14

var weekdayHeaders = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

type MonthData struct {
	Title      string
	Cells      []calendar.Cell
	Today      model.Date
	SelectedID int64
}

type WeekData struct {
	Title      string
	Days       []model.Date
	Tasks      []model.Task
	Today      model.Date
	SelectedID int64
}

type DayData struct {
	Title      string
	Slots      []calendar.HourSlot
	Unslotted  []model.Task
	SelectedID int64
}

func taskMarker(t model.Task, selectedID int64) string {
	cursor := " "
	if t.ID == selectedID {
		cursor = ">"
	}
	check := "·"
	if t.Done() {
		check = "✓"
	}
	return cursor + check
}

func taskLabel(t model.Task, width int) string {
	label := truncate(t.Title, width)
	if t.Done() {
		return doneStyle.Render(label)
	}
	return label
}

func RenderMonth(data MonthData) string {
	var b strings.Builder
	b.WriteString(data.Title + "\n")

	col := lipgloss.NewStyle().Width(cellWidth)
	header := make([]string, len(weekdayHeaders))
	for i, h := range weekdayHeaders {
		header[i] = col.Render(mutedStyle.Render(h))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, header...) + "\n")

	for row := 0; row*calendar.DaysPerWeek < len(data.Cells); row++ {
		start := row * calendar.DaysPerWeek
		end := min(start+calendar.DaysPerWeek, len(data.Cells))
		rendered := make([]string, 0, calendar.DaysPerWeek)
		for _, cell := range data.Cells[start:end] {
			rendered = append(rendered, col.Render(renderMonthCell(cell, data.Today, data.SelectedID)))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderMonthCell(cell calendar.Cell, today model.Date, selectedID int64) string {
	day := fmt.Sprintf("%2d", cell.Date.Day)
	switch {
	case cell.Date == today:
		day = todayStyle.Render(day + "*")
	case !cell.InReferenceMonth:
		day = mutedStyle.Render(day)
	}
	lines := []string{day}
	shown, more := calendar.Preview(cell.Tasks)
	for _, t := range shown {
		lines = append(lines, taskMarker(t, selectedID)+taskLabel(t, cellWidth-3))
	}
	if more > 0 {
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("  +%d more", more)))
	}
	for len(lines) < calendar.MonthCellTaskCap+2 {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func RenderWeek(data WeekData) string {
	col := lipgloss.NewStyle().Width(cellWidth + 2)
	columns := make([]string, 0, len(data.Days))
	for i, d := range data.Days {
		head := fmt.Sprintf("%s %02d/%02d", weekdayHeaders[i%len(weekdayHeaders)], int(d.Month), d.Day)
		if d == data.Today {
			head = todayStyle.Render(head)
		}
		lines := []string{head}
		due := calendar.TasksOn(d, data.Tasks)
		if len(due) == 0 {
			lines = append(lines, mutedStyle.Render("  -"))
		}
		for _, t := range due {
			lines = append(lines, taskMarker(t, data.SelectedID)+t.StartTime.String())
			lines = append(lines, "  "+taskLabel(t, cellWidth-1))
		}
		columns = append(columns, col.Render(strings.Join(lines, "\n")))
	}
	return data.Title + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

func RenderDay(data DayData) string {
	var b strings.Builder
	b.WriteString(data.Title + "\n")
	for _, slot := range data.Slots {
		hour := fmt.Sprintf("%02d:00 │", slot.Hour)
		if len(slot.Tasks) == 0 {
			b.WriteString(mutedStyle.Render(hour) + "\n")
			continue
		}
		for i, t := range slot.Tasks {
			prefix := hour
			if i > 0 {
				prefix = "      │"
			}
			b.WriteString(fmt.Sprintf("%s%s %s-%s %s [%s] %d%%\n",
				prefix, taskMarker(t, data.SelectedID), t.StartTime, t.EndTime,
				taskLabel(t, 40), t.Priority, t.Progress))
		}
	}
	if len(data.Unslotted) > 0 {
		b.WriteString(mutedStyle.Render("outside 07:00-20:59:") + "\n")
		for _, t := range data.Unslotted {
			b.WriteString(fmt.Sprintf("      │%s %s %s\n", taskMarker(t, data.SelectedID), t.StartTime, taskLabel(t, 40)))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
