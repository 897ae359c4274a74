package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/mfbarbosa/eduplan/internal/cli"
	"github.com/mfbarbosa/eduplan/internal/generator"
	"github.com/mfbarbosa/eduplan/internal/logger"
	"github.com/mfbarbosa/eduplan/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Storage file path." type:"path" default:"~/.config/eduplan/eduplan.json"`
	Model   string `help:"Gemini model for plan generation." default:"${default_model}"`
	Debug   bool   `help:"Enable debug logging to stderr."`

	Init     cli.InitCmd     `cmd:"" help:"Initialize eduplan storage."`
	Tui      cli.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Calendar cli.CalendarCmd `cmd:"" help:"List annotated calendar days."`
	Import   cli.ImportCmd   `cmd:"" help:"Batch import annotations from pasted calendar text."`
	Clear    cli.ClearCmd    `cmd:"" help:"Delete every day annotation."`
	Plan     cli.PlanCmd     `cmd:"" help:"Generate a lesson plan for a teaching period."`
	Doctor   cli.DoctorCmd   `cmd:"" help:"Run health checks."`
	Day      struct {
		Set   cli.DaySetCmd   `cmd:"" help:"Annotate a calendar date."`
		Show  cli.DayShowCmd  `cmd:"" help:"Show a date's annotation."`
		Clear cli.DayClearCmd `cmd:"" help:"Set a date back to normal."`
	} `cmd:"" help:"Manage single day annotations."`
	Backup struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a store backup."`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore the store from a backup."`
	} `cmd:"" help:"Manage store backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("eduplan"),
		kong.Description("School calendar annotator and AI lesson planner"),
		kong.UsageOnError(),
		kong.Vars{
			"version":       "v0.1.0",
			"default_model": generator.DefaultModel,
		},
	)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(CLI.Config),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	// Determine storage type based on extension
	var store storage.Provider
	if strings.HasSuffix(CLI.Config, ".json") {
		store = storage.NewJSONStore(CLI.Config)
	} else {
		store = storage.NewSQLiteStore(CLI.Config)
	}

	appCtx := &cli.Context{
		Store: store,
		NewTextGenerator: func(ctx context.Context) (generator.TextGenerator, error) {
			return generator.NewGeminiClient(ctx, os.Getenv("GEMINI_API_KEY"), CLI.Model)
		},
	}

	err := ctx.Run(appCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
