// Package generator builds a lesson plan for a teaching period by handing the
// form inputs plus the annotated calendar window to a generative model and
// validating what comes back.
package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"github.com/mfbarbosa/eduplan/internal/models"
	"github.com/mfbarbosa/eduplan/internal/storage"
)

// NoEventsSentinel keeps the instruction text well-formed when the window
// holds no calendar entries.
const NoEventsSentinel = "Nenhum evento especial no período."

var (
	ErrIncompleteRequest = errors.New("start date, end date and content are required")
	ErrNoWeekdays        = errors.New("select at least one weekday")
)

// weekdayLabels maps the schedulable weekday numbers (1=Monday..5=Friday) to
// the labels used in the prompt.
var weekdayLabels = map[int]string{
	1: "Seg",
	2: "Ter",
	3: "Qua",
	4: "Qui",
	5: "Sex",
}

// TextGenerator is the capability handed to the Generator: one prompt plus a
// response schema in, schema-conformant JSON text out. Tests substitute a
// deterministic stub.
type TextGenerator interface {
	GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error)
}

// Request carries every form field of one generation run.
type Request struct {
	Subject       string
	Grade         string
	Classroom     string
	TermNumber    string
	TermUnit      string
	Teacher       string
	StartDate     string // YYYY-MM-DD
	EndDate       string // YYYY-MM-DD
	Weekdays      []int  // 1=Seg .. 5=Sex
	ClassesPerDay int
	Content       string
}

type Generator struct {
	store storage.Provider
	ai    TextGenerator
}

func New(store storage.Provider, ai TextGenerator) *Generator {
	return &Generator{
		store: store,
		ai:    ai,
	}
}

// Validate checks the request preconditions. It is called by Generate before
// any external work, so a failing request never reaches the model and never
// touches any state.
func Validate(req Request) error {
	if req.StartDate == "" || req.EndDate == "" || strings.TrimSpace(req.Content) == "" {
		return ErrIncompleteRequest
	}
	if len(req.Weekdays) == 0 {
		return ErrNoWeekdays
	}
	return nil
}

// Generate produces a fresh plan for the request. The calendar window is
// read once up front; store edits made while the call is in flight do not
// affect it. On any transport or decode failure the caller keeps its
// previous plan.
func (g *Generator) Generate(ctx context.Context, req Request) ([]models.SchoolDay, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}

	events, err := g.store.Range(req.StartDate, req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to read calendar window: %w", err)
	}

	return GenerateFromEvents(ctx, g.ai, req, events)
}

// GenerateFromEvents produces a plan from an already-captured calendar
// window. Callers that run the model call on another goroutine snapshot the
// window first and hand it in, so the call never touches the store.
func GenerateFromEvents(ctx context.Context, ai TextGenerator, req Request, events []storage.DatedAnnotation) ([]models.SchoolDay, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}

	text, err := ai.GenerateJSON(ctx, BuildPrompt(req, events), ResponseSchema())
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}

	return decodePlan(text)
}

// BuildPrompt composes the natural-language instruction embedding the form
// fields, the rendered calendar window and the scheduling constraint rules.
func BuildPrompt(req Request, events []storage.DatedAnnotation) string {
	var days []string
	for _, wd := range req.Weekdays {
		if label, ok := weekdayLabels[wd]; ok {
			days = append(days, label)
		}
	}

	calendar := RenderEvents(events)

	return fmt.Sprintf(`
Você é um assistente de planejamento escolar.
Crie um planejamento de aulas para a disciplina de %s, para a turma %s %s, no %s %s.
O professor é %s.
O período do planejamento é de %s até %s.
As aulas ocorrem nos seguintes dias da semana: %s.
São %d aula(s) por dia de aula.
O conteúdo a ser abordado é:
%s

Abaixo estão os eventos do calendário escolar (feriados, provas, eventos, pontos facultativos) que ocorrem neste período:
%s

Regras importantes:
1. Distribua o conteúdo de forma lógica entre as datas.
2. Respeite os dias da semana informados e a quantidade de aulas por dia.
3. Não inclua finais de semana ou dias fora dos dias da semana informados.
4. LEIA OS EVENTOS DO CALENDÁRIO ACIMA. Se houver um feriado (holiday) ou ponto facultativo (optional) em um dia de aula, NÃO coloque conteúdo normal neste dia. Você pode pular o dia ou marcá-lo com o título do feriado/evento e deixar as aulas vazias ou com o tema do evento.
5. Se houver prova (exam) no dia, reserve as aulas para a prova e revisão, não avance com conteúdo novo.
`,
		req.Subject, req.Grade, req.Classroom, req.TermNumber, req.TermUnit,
		req.Teacher, req.StartDate, req.EndDate, strings.Join(days, ", "),
		req.ClassesPerDay, req.Content, calendar)
}

// RenderEvents renders the calendar window one entry per line as
// "date: kind - description", or the no-events sentinel for an empty window.
func RenderEvents(events []storage.DatedAnnotation) string {
	if len(events) == 0 {
		return NoEventsSentinel
	}

	lines := make([]string, 0, len(events))
	for _, e := range events {
		lines = append(lines, fmt.Sprintf("%s: %s - %s", e.Date, e.Annotation.Kind, e.Annotation.Description))
	}
	return strings.Join(lines, "\n")
}

// ResponseSchema declares the structured output the model must produce: an
// ordered array of day objects, each with date, special title and an ordered
// array of class objects. Every field is required.
func ResponseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"date":         {Type: genai.TypeString, Description: "Data no formato YYYY-MM-DD"},
				"specialTitle": {Type: genai.TypeString, Description: "Título especial se houver, ou vazio"},
				"classes": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"label": {Type: genai.TypeString, Description: "Ex: Aula 1"},
							"title": {Type: genai.TypeString, Description: "Título da aula"},
							"theme": {Type: genai.TypeString, Description: "Tema ou atividade"},
						},
						Required: []string{"label", "title", "theme"},
					},
				},
			},
			Required: []string{"date", "specialTitle", "classes"},
		},
	}
}

type generatedClass struct {
	Label string `json:"label"`
	Title string `json:"title"`
	Theme string `json:"theme"`
}

type generatedDay struct {
	Date         string           `json:"date"`
	SpecialTitle string           `json:"specialTitle"`
	Classes      []generatedClass `json:"classes"`
}

// decodePlan maps the model's JSON text into school days. Empty or missing
// response text decodes as an empty plan. Ids are never taken from the
// model; every day and slot gets a fresh one.
func decodePlan(text string) ([]models.SchoolDay, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return []models.SchoolDay{}, nil
	}

	var decoded []generatedDay
	if err := json.Unmarshal([]byte(text), &decoded); err != nil {
		return nil, fmt.Errorf("failed to decode generated plan: %w", err)
	}

	days := make([]models.SchoolDay, 0, len(decoded))
	for _, d := range decoded {
		day := models.SchoolDay{
			ID:           uuid.NewString(),
			Date:         d.Date,
			SpecialTitle: d.SpecialTitle,
			Classes:      make([]models.ClassSlot, 0, len(d.Classes)),
		}
		for _, c := range d.Classes {
			day.Classes = append(day.Classes, models.ClassSlot{
				ID:    uuid.NewString(),
				Label: c.Label,
				Title: c.Title,
				Theme: c.Theme,
			})
		}
		days = append(days, day)
	}

	return days, nil
}
