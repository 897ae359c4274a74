package cli

import (
	"fmt"
)

type CalendarCmd struct {
	Start string `help:"Window start (YYYY-MM-DD)." default:""`
	End   string `help:"Window end (YYYY-MM-DD)." default:""`
	Year  int    `help:"Shortcut for a whole-year window." default:"0"`
}

func (c *CalendarCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	start, end := c.Start, c.End
	if c.Year != 0 {
		start = fmt.Sprintf("%d-01-01", c.Year)
		end = fmt.Sprintf("%d-12-31", c.Year)
	}
	if start == "" || end == "" {
		settings, err := ctx.Store.GetSettings()
		if err != nil {
			return err
		}
		start = fmt.Sprintf("%d-01-01", settings.ImportYear)
		end = fmt.Sprintf("%d-12-31", settings.ImportYear)
	}

	entries, err := ctx.Store.Range(start, end)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Printf("No annotated days between %s and %s.\n", start, end)
		return nil
	}

	fmt.Printf("Annotated days from %s to %s:\n\n", start, end)
	for _, e := range entries {
		fmt.Printf("%s  %-8s  %s\n", e.Date, e.Annotation.Kind, e.Annotation.Description)
	}
	return nil
}
