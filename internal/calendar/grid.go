// Package calendar projects a task collection onto month, week and day grids
// and holds the view state that picks which grid is shown.
package calendar

import (
	"cmp"
	"slices"
	"time"

	"github.com/sandeepkv93/taskcal/internal/model"
)

const (
	GridCells        = 42
	DaysPerWeek      = 7
	FirstHour        = 7
	LastHour         = 20
	MonthCellTaskCap = 3
)

type Cell struct {
	Date             model.Date
	InReferenceMonth bool
	Tasks            []model.Task
}

type HourSlot struct {
	Hour  int
	Tasks []model.Task
}

// MonthGrid always returns six full Sunday-first weeks. The leading cells
// belong to the previous month and the trailing ones to the next.
func MonthGrid(ref model.Date) []Cell {
	first := ref.FirstOfMonth()
	start := first.AddDays(-int(first.Weekday()))
	cells := make([]Cell, GridCells)
	for i := range cells {
		d := start.AddDays(i)
		cells[i] = Cell{
			Date:             d,
			InReferenceMonth: d.Year == ref.Year && d.Month == ref.Month,
		}
	}
	return cells
}

// WeekGrid returns Sunday through Saturday of the week containing ref.
func WeekGrid(ref model.Date) []model.Date {
	start := ref.AddDays(-int(ref.Weekday()))
	days := make([]model.Date, DaysPerWeek)
	for i := range days {
		days[i] = start.AddDays(i)
	}
	return days
}

// DayHourSlots buckets the tasks due on ref by start hour. Tasks starting
// before FirstHour or after LastHour have no slot.
func DayHourSlots(ref model.Date, tasks []model.Task) []HourSlot {
	due := TasksOn(ref, tasks)
	slots := make([]HourSlot, 0, LastHour-FirstHour+1)
	for hour := FirstHour; hour <= LastHour; hour++ {
		slot := HourSlot{Hour: hour}
		for _, t := range due {
			if t.StartTime.Hour == hour {
				slot.Tasks = append(slot.Tasks, t)
			}
		}
		slots = append(slots, slot)
	}
	return slots
}

// TasksOn returns the tasks due on date, ordered by start time. Ties keep
// collection order.
func TasksOn(date model.Date, tasks []model.Task) []model.Task {
	var out []model.Task
	for _, t := range tasks {
		if t.DueDate == date {
			out = append(out, t)
		}
	}
	slices.SortStableFunc(out, func(a, b model.Task) int {
		return cmp.Compare(a.StartTime.Minutes(), b.StartTime.Minutes())
	})
	return out
}

// Annotate fills each cell with its tasks in place and returns cells.
func Annotate(cells []Cell, tasks []model.Task) []Cell {
	for i := range cells {
		cells[i].Tasks = TasksOn(cells[i].Date, tasks)
	}
	return cells
}

// Preview truncates a cell's tasks to MonthCellTaskCap and reports how many
// were left out.
func Preview(tasks []model.Task) ([]model.Task, int) {
	if len(tasks) <= MonthCellTaskCap {
		return tasks, 0
	}
	return tasks[:MonthCellTaskCap], len(tasks) - MonthCellTaskCap
}

// WeekOfMonth is the 1-based week number used in week headers, ceil(day/7).
func WeekOfMonth(ref model.Date) int {
	return (ref.Day + DaysPerWeek - 1) / DaysPerWeek
}

// MonthTitle formats ref as "March 2024".
func MonthTitle(ref model.Date) string {
	return ref.Time().Format("January 2006")
}

func IsWeekend(d model.Date) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
