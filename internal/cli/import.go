package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/mfbarbosa/eduplan/internal/importer"
)

type ImportCmd struct {
	File string `arg:"" optional:"" help:"Text file with one dated entry per line; reads stdin when omitted."`
	Year int    `help:"Target year for dd/mm dates; defaults to the configured import year." default:"0"`
}

func (c *ImportCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	var data []byte
	var err error
	if c.File != "" {
		data, err = os.ReadFile(c.File)
		if err != nil {
			return fmt.Errorf("failed to read import file: %w", err)
		}
	} else {
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
	}

	year := c.Year
	if year == 0 {
		settings, err := ctx.Store.GetSettings()
		if err != nil {
			return err
		}
		year = settings.ImportYear
	}

	entries := importer.Parse(string(data), year)
	if len(entries) == 0 {
		fmt.Println("No dated entries found, nothing imported.")
		return nil
	}

	if err := ctx.Store.UpsertDays(entries); err != nil {
		return err
	}

	fmt.Printf("Imported %d annotation(s) for %d.\n", len(entries), year)
	return nil
}
