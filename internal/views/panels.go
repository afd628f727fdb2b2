package views

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/taskcal/internal/model"
)

type HelpPanelData struct {
	Mode     string
	Bindings []string
	HelpView string
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help (%s):\n%s\n\n%s",
		strings.ToLower(data.Mode),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

func RenderCommandPalette(active bool, inputView string) string {
	if !active {
		return ""
	}
	return "command: " + inputView + "\n" +
		mutedStyle.Render("add <title> [cat:] [pri:] [due:] [at:HH:MM-HH:MM] | done/undo/delete <id> | progress <id> <n> | view | goto | today | search | export")
}

func RenderSearch(active bool, inputView, term string) string {
	switch {
	case active:
		return "search: " + inputView
	case term != "":
		return fmt.Sprintf("search: %q (/ to edit, esc clears)", term)
	default:
		return ""
	}
}

func RenderForm(title, formView string) string {
	return headerStyle.Render(title) + "\n\n" + formView
}

// TaskMarkdown describes a task for the detail pane.
func TaskMarkdown(t model.Task) string {
	status := "pending"
	if t.Done() {
		status = "done"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", t.Title)
	fmt.Fprintf(&b, "- **id**: %d\n", t.ID)
	fmt.Fprintf(&b, "- **status**: %s\n", status)
	fmt.Fprintf(&b, "- **category**: %s\n", t.Category)
	fmt.Fprintf(&b, "- **priority**: %s\n", t.Priority)
	fmt.Fprintf(&b, "- **due**: %s %s-%s (%d min)\n", t.DueDate, t.StartTime, t.EndTime, t.Duration)
	fmt.Fprintf(&b, "- **progress**: %d%%\n", t.Progress)
	fmt.Fprintf(&b, "- **created**: %s\n", t.CreatedAt)
	return b.String()
}

func RenderTaskDetail(t *model.Task) string {
	if t == nil {
		return "details:\n(no selection)"
	}
	return RenderMarkdown(TaskMarkdown(*t))
}
