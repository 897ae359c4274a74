package cli

import (
	"fmt"
	"time"

	"github.com/mfbarbosa/eduplan/internal/models"
)

type DaySetCmd struct {
	Date        string `arg:"" help:"Date to annotate (YYYY-MM-DD)."`
	Kind        string `arg:"" help:"Day kind: normal, holiday, optional, exam, event, special."`
	Description string `arg:"" optional:"" help:"Description of the event."`
}

func (c *DaySetCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	if _, err := time.Parse(models.DateFormat, c.Date); err != nil {
		return fmt.Errorf("invalid date format, use YYYY-MM-DD: %w", err)
	}

	kind, err := models.ParseDayKind(c.Kind)
	if err != nil {
		return err
	}

	if err := ctx.Store.SetDay(c.Date, kind, c.Description); err != nil {
		return err
	}

	if kind == models.DayKindNormal {
		fmt.Printf("Cleared annotation for %s\n", c.Date)
	} else {
		fmt.Printf("Annotated %s as %s\n", c.Date, kind)
	}
	return nil
}

type DayShowCmd struct {
	Date string `arg:"" help:"Date to show (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *DayShowCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	date := c.Date
	if date == "today" {
		date = time.Now().Format(models.DateFormat)
	}
	if _, err := time.Parse(models.DateFormat, date); err != nil {
		return fmt.Errorf("invalid date format, use YYYY-MM-DD or 'today': %w", err)
	}

	ann, ok, err := ctx.Store.GetDay(date)
	if err != nil {
		return err
	}

	if !ok {
		// Weekends are derived, never stored
		fmt.Printf("%s  %s\n", date, models.KindForDate(date, nil))
		return nil
	}

	fmt.Printf("%s  %s", date, ann.Kind)
	if ann.Description != "" {
		fmt.Printf("  %s", ann.Description)
	}
	fmt.Println()
	return nil
}

type DayClearCmd struct {
	Date string `arg:"" help:"Date to clear (YYYY-MM-DD)."`
}

func (c *DayClearCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	if err := ctx.Store.SetDay(c.Date, models.DayKindNormal, ""); err != nil {
		return err
	}

	fmt.Printf("Cleared annotation for %s\n", c.Date)
	return nil
}
