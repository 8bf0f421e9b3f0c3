package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ConnorXwolf/EnergyTracker/internal/config"
	"github.com/ConnorXwolf/EnergyTracker/internal/logx"
	"github.com/ConnorXwolf/EnergyTracker/internal/manager"
	"github.com/ConnorXwolf/EnergyTracker/internal/storage"
	"github.com/ConnorXwolf/EnergyTracker/internal/update"
	"github.com/ConnorXwolf/EnergyTracker/internal/views"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	dbPath := flag.String("db", "", "Path to database file")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "energytracker: load config: %v\n", err)
		os.Exit(1)
	}
	if *dbPath != "" {
		cfg.Database = *dbPath
	}
	if *verbose {
		cfg.Verbose = true
	}

	if err := logx.Init(cfg.Verbose, filepath.Dir(cfg.Database)); err != nil {
		fmt.Fprintf(os.Stderr, "energytracker: init logging: %v\n", err)
		os.Exit(1)
	}
	defer logx.Close()

	if err := os.MkdirAll(filepath.Dir(cfg.Database), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "energytracker: create data dir: %v\n", err)
		os.Exit(1)
	}
	repo, err := storage.OpenSQLite(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "energytracker: open database: %v\n", err)
		os.Exit(1)
	}
	defer repo.Close()

	if err := storage.MigrateUp(repo.DB()); err != nil {
		fmt.Fprintf(os.Stderr, "energytracker: migrate: %v\n", err)
		os.Exit(1)
	}
	version, err := storage.SchemaVersion(repo.DB())
	if err == nil {
		logx.Printf("database ready at %s (schema %d)", cfg.Database, version)
	}

	managers := update.Managers{
		Exercises: manager.NewExerciseManager(repo),
		Tasks:     manager.NewTaskManager(repo),
		Events:    manager.NewEventManager(repo),
		Points:    manager.NewPointsManager(repo),
	}

	seeds := make([]manager.SeedExercise, 0, len(cfg.SeedExercises))
	for _, seed := range cfg.SeedExercises {
		seeds = append(seeds, manager.SeedExercise{
			Name:        seed.Name,
			Category:    seed.Category,
			TargetValue: seed.TargetValue,
			Unit:        seed.Unit,
		})
	}
	inserted, err := managers.Exercises.SeedDefaults(context.Background(), seeds)
	if err != nil {
		fmt.Fprintf(os.Stderr, "energytracker: seed exercises: %v\n", err)
		os.Exit(1)
	}
	if inserted > 0 {
		logx.Printf("seeded %d default exercises", inserted)
	}

	views.SetAccent(cfg.UI.AccentColor)
	model := update.NewModel(managers)
	model.HelpVisible = cfg.UI.ShowHelp

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "energytracker failed: %v\n", err)
		os.Exit(1)
	}
}
