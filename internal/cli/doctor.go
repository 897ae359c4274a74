package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/mfbarbosa/eduplan/internal/backup"
	"github.com/mfbarbosa/eduplan/internal/models"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false

	// Check 1: store reachable
	if err := ctx.Store.Load(); err != nil {
		fmt.Printf("❌ Store reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Store reachable: OK\n")

		// Check 2: settings sane (only meaningful with a loaded store)
		if err := checkSettings(ctx); err != nil {
			fmt.Printf("❌ Settings: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Settings: OK\n")
		}
	}

	// Check 3: API key present (warning only; everything but generation
	// works without it)
	if os.Getenv("GEMINI_API_KEY") == "" {
		fmt.Printf("⚠ Gemini API key: WARNING\n")
		fmt.Printf("   GEMINI_API_KEY is not set; plan generation will not work.\n")
	} else {
		fmt.Printf("✓ Gemini API key: OK\n")
	}

	// Check 4: backups present (warning only)
	if err := checkBackupsPresent(ctx); err != nil {
		fmt.Printf("⚠ Backups present: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Backups present: OK\n")
	}

	// Check 5: clock sanity
	if err := checkClock(); err != nil {
		fmt.Printf("❌ Clock: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkSettings(ctx *Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}
	if settings.ClassesPerDay < 1 {
		return fmt.Errorf("classes per day must be at least 1, got %d", settings.ClassesPerDay)
	}
	if settings.ImportYear < 2000 || settings.ImportYear > 2100 {
		return fmt.Errorf("import year looks wrong: %d", settings.ImportYear)
	}
	return nil
}

func checkBackupsPresent(ctx *Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found, consider running 'eduplan backup create'")
	}
	return nil
}

func checkClock() error {
	now := time.Now()
	if now.Year() < 2020 {
		return fmt.Errorf("system clock reports %s, which looks wrong", now.Format(models.DateFormat))
	}
	return nil
}
