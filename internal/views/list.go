package views

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/sandeepkv93/taskcal/internal/model"
)

type ListData struct {
	Title      string
	Tasks      []model.Task
	SelectedID int64
	Bar        progress.Model
}

type StatsData struct {
	Total          int
	Done           int
	CompletionRate int
	Bar            progress.Model
}

var (
	pendingBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	doneBarStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	priorityStyles  = map[model.Priority]lipgloss.Style{
		model.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		model.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		model.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	}
)

// GroupByCategory buckets tasks in model.Categories order, keeping the input
// order inside each bucket.
func GroupByCategory(tasks []model.Task) map[model.Category][]model.Task {
	out := make(map[model.Category][]model.Task, len(model.Categories))
	for _, t := range tasks {
		out[t.Category] = append(out[t.Category], t)
	}
	return out
}

func RenderList(data ListData) string {
	var b strings.Builder
	b.WriteString(data.Title + "\n")
	if len(data.Tasks) == 0 {
		b.WriteString(mutedStyle.Render("(no tasks)"))
		return b.String()
	}
	groups := GroupByCategory(data.Tasks)
	for _, c := range model.Categories {
		items := groups[c]
		b.WriteString(fmt.Sprintf("\n%s (%d):\n", c, len(items)))
		if len(items) == 0 {
			b.WriteString(mutedStyle.Render("  (none)") + "\n")
			continue
		}
		for _, t := range items {
			pri := priorityStyles[t.Priority].Render(fmt.Sprintf("[%s]", t.Priority))
			b.WriteString(fmt.Sprintf("%s %s %s due:%s %s-%s (%dm)\n",
				taskMarker(t, data.SelectedID), taskLabel(t, 32), pri,
				t.DueDate, t.StartTime, t.EndTime, t.Duration))
			b.WriteString(fmt.Sprintf("    %s %3d%%\n", data.Bar.ViewAs(float64(t.Progress)/100), t.Progress))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func RenderStats(data StatsData) string {
	return fmt.Sprintf("tasks: %d | done: %d | completion: %d%%\n%s",
		data.Total, data.Done, data.CompletionRate,
		data.Bar.ViewAs(float64(data.CompletionRate)/100))
}

// RenderCategoryChart draws one stacked bar per category, pending below done.
func RenderCategoryChart(tasks []model.Task, width, height int) string {
	width = max(width, 20)
	height = max(height, 6)
	chart := barchart.New(width, height)

	groups := GroupByCategory(tasks)
	bars := make([]barchart.BarData, 0, len(model.Categories))
	for _, c := range model.Categories {
		pending, done := 0, 0
		for _, t := range groups[c] {
			if t.Done() {
				done++
			} else {
				pending++
			}
		}
		bars = append(bars, barchart.BarData{
			Label: string(c),
			Values: []barchart.BarValue{
				{Name: "pending", Value: float64(pending), Style: pendingBarStyle},
				{Name: "done", Value: float64(done), Style: doneBarStyle},
			},
		})
	}
	chart.PushAll(bars)
	chart.Draw()
	return chart.View()
}
