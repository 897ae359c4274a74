package cli

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/mfbarbosa/eduplan/internal/generator"
	"github.com/mfbarbosa/eduplan/internal/planner"
)

type PlanCmd struct {
	Start    string `required:"" help:"Period start (YYYY-MM-DD)."`
	End      string `required:"" help:"Period end (YYYY-MM-DD)."`
	Content  string `required:"" help:"Content to distribute across the period."`
	Weekdays string `help:"Class weekdays, comma separated (1=Seg..5=Sex or seg,ter,...)." default:"1,2,3,4,5"`

	Subject   string `help:"Subject; defaults to the configured one."`
	Grade     string `help:"Grade; defaults to the configured one."`
	Classroom string `help:"Classroom; defaults to the configured one."`
	Term      string `help:"Term number (1º..4º); defaults to the configured one."`
	TermUnit  string `help:"Term unit (Bimestre, Trimestre, Mês, Semestre); defaults to the configured one."`
	Teacher   string `help:"Teacher name; defaults to the configured one."`
	PerDay    int    `help:"Classes per school day; defaults to the configured value." default:"0"`

	Copy bool `help:"Copy the rendered plan to the clipboard."`
}

func (c *PlanCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}

	weekdays, err := parseWeekdays(c.Weekdays)
	if err != nil {
		return err
	}

	req := generator.Request{
		Subject:       orDefault(c.Subject, settings.Subject),
		Grade:         orDefault(c.Grade, settings.Grade),
		Classroom:     orDefault(c.Classroom, settings.Classroom),
		TermNumber:    orDefault(c.Term, settings.TermNumber),
		TermUnit:      orDefault(c.TermUnit, settings.TermUnit),
		Teacher:       orDefault(c.Teacher, settings.Teacher),
		StartDate:     c.Start,
		EndDate:       c.End,
		Weekdays:      weekdays,
		ClassesPerDay: c.PerDay,
		Content:       c.Content,
	}
	if req.ClassesPerDay == 0 {
		req.ClassesPerDay = settings.ClassesPerDay
	}

	bg := context.Background()
	ai, err := ctx.NewTextGenerator(bg)
	if err != nil {
		return err
	}

	fmt.Println("Generating plan...")
	days, err := generator.New(ctx.Store, ai).Generate(bg, req)
	if err != nil {
		return err
	}

	text := planner.Render(days, planner.Header{
		Subject:    req.Subject,
		Grade:      req.Grade,
		Classroom:  req.Classroom,
		TermNumber: req.TermNumber,
		TermUnit:   req.TermUnit,
		Teacher:    req.Teacher,
	})
	fmt.Println()
	fmt.Print(text)

	if c.Copy {
		if err := clipboard.WriteAll(text); err != nil {
			return fmt.Errorf("failed to copy plan to clipboard: %w", err)
		}
		fmt.Println("Plan copied to clipboard.")
	}

	return nil
}

func orDefault(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
