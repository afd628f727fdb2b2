package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/sandeepkv93/taskcal/internal/model"
)

var csvHeader = []string{"ID", "Title", "Category", "Priority", "Status", "Due", "Start", "End", "Duration (min)", "Progress", "Created"}

func ToCSV(tasks []model.Task, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(csvHeader); err != nil {
		return err
	}

	for _, t := range tasks {
		row := []string{
			strconv.FormatInt(t.ID, 10),
			t.Title,
			string(t.Category),
			string(t.Priority),
			string(t.Status),
			t.DueDate.String(),
			t.StartTime.String(),
			t.EndTime.String(),
			strconv.Itoa(t.Duration),
			strconv.Itoa(t.Progress),
			t.CreatedAt.String(),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
