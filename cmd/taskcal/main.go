package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskcal/internal/app"
	"github.com/sandeepkv93/taskcal/internal/update"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "taskcal failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := app.ReadConfig()
	if err != nil {
		return err
	}

	logger, logCloser, err := app.NewLogger(cfg)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	a, err := app.Open(context.Background(), cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	opts := []tea.ProgramOption{}
	if cfg.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	program := tea.NewProgram(update.NewModel(a.Store, update.Options{Mode: cfg.View(), Logger: logger}), opts...)
	if _, err := program.Run(); err != nil {
		logger.Error().Err(err).Msg("program exited with error")
		return err
	}
	logger.Info().Int("tasks", a.Store.Len()).Msg("taskcal exited")
	return nil
}
