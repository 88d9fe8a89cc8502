// main is the entry point of the terminal front-end for the roster.
//
// It reads the same configuration as the HTTP API and works on the same
// SQLite file and key, so both front-ends see the same roster.
//
//	go run ./cmd/roster-tui --config=config/local.yaml
//
// With --memory the roster lives in memory only and is lost on exit.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aanand-mishra/student-roster/internal/config"
	"github.com/aanand-mishra/student-roster/internal/roster"
	"github.com/aanand-mishra/student-roster/internal/storage"
	"github.com/aanand-mishra/student-roster/internal/storage/memory"
	"github.com/aanand-mishra/student-roster/internal/storage/sqlite"
	"github.com/aanand-mishra/student-roster/internal/tui"
)

func main() {
	inMemory := flag.Bool("memory", false, "Keep the roster in memory instead of the SQLite file")
	flag.Parse()

	cfg := config.MustLoad()

	// The terminal belongs to the UI, so logs go to a file.
	logFile, err := os.OpenFile(cfg.TUI.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot open log file: %s\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	slog.SetDefault(setupLogger(cfg.Env, logFile))

	var store storage.Storage
	if *inMemory {
		store = memory.New()
		slog.Info("using in-memory storage")
	} else {
		db, err := sqlite.New(cfg)
		if err != nil {
			slog.Error("failed to initialise storage", slog.String("error", err.Error()))
			fmt.Fprintf(os.Stderr, "failed to initialise storage: %s\n", err)
			os.Exit(1)
		}
		defer db.Close()
		store = db
	}

	view := roster.New(store, roster.WithKey(cfg.StorageKey))
	if _, err := tea.NewProgram(tui.New(view), tea.WithAltScreen()).Run(); err != nil {
		slog.Error("ui exited with an error", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}

// setupLogger mirrors the API's logger selection, writing to w.
func setupLogger(env string, w *os.File) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	case "staging":
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	default:
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
