package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sandeepkv93/taskcal/internal/model"
	"github.com/sandeepkv93/taskcal/internal/store"
)

type jsonExport struct {
	ExportedAt     string       `json:"exported_at"`
	Count          int          `json:"count"`
	CompletionRate int          `json:"completion_rate"`
	Tasks          []model.Task `json:"tasks"`
}

func ToJSON(tasks []model.Task, path string, now time.Time) error {
	export := jsonExport{
		ExportedAt:     now.UTC().Format(time.RFC3339),
		Count:          len(tasks),
		CompletionRate: store.CompletionRate(tasks),
		Tasks:          tasks,
	}
	if export.Tasks == nil {
		export.Tasks = []model.Task{}
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
