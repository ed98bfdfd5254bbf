package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"medtrack/internal/adherence"
	"medtrack/internal/config"
	"medtrack/internal/db"
	"medtrack/internal/logger"
	"medtrack/internal/reminder"
	"medtrack/internal/ui"
)

// Version information set via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Handle version flag
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-v") {
		fmt.Printf("medtrack %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	cfg := config.Load(logger.L())
	if err := logger.Init(cfg.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.L()

	// Initialize the store
	database, err := db.New(cfg.DataDir, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing store: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	engine := adherence.New(database, log)
	reconciler := adherence.NewReconciler(database, log)

	// Catch any rollover that happened while the app was closed
	if _, err := reconciler.Reconcile(time.Now()); err != nil {
		log.Warn("startup day-boundary reconcile failed")
	}

	// Create and run the application
	app := ui.NewApp(database, engine)
	p := tea.NewProgram(app, tea.WithAltScreen())

	sched := reminder.New(database, engine, reconciler, ui.NewProgramNotifier(p), log)
	if err := sched.Start(cfg.ReminderSpec); err != nil {
		fmt.Fprintf(os.Stderr, "Error starting reminder scheduler: %v\n", err)
		os.Exit(1)
	}
	defer sched.Stop()

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running application: %v\n", err)
		os.Exit(1)
	}
}
