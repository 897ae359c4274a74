package generator

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"google.golang.org/genai"

	"github.com/mfbarbosa/eduplan/internal/models"
	"github.com/mfbarbosa/eduplan/internal/storage"
)

// stubTextGenerator records calls and plays back a canned response.
type stubTextGenerator struct {
	calls    int
	prompt   string
	response string
	err      error
}

func (s *stubTextGenerator) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	s.calls++
	s.prompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func newTestStore(t *testing.T) storage.Provider {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "eduplan.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return store
}

func validRequest() Request {
	return Request{
		Subject:       "Geografia",
		Grade:         "6° ano",
		Classroom:     "B",
		TermNumber:    "1º",
		TermUnit:      "Bimestre",
		Teacher:       "Carlos",
		StartDate:     "2026-07-13",
		EndDate:       "2026-07-17",
		Weekdays:      []int{1, 3, 5},
		ClassesPerDay: 2,
		Content:       "Clima e vegetação do Brasil",
	}
}

func TestGenerate_EmptyContentNeverCallsModel(t *testing.T) {
	stub := &stubTextGenerator{}
	gen := New(newTestStore(t), stub)

	req := validRequest()
	req.Content = "   "

	_, err := gen.Generate(context.Background(), req)
	if !errors.Is(err, ErrIncompleteRequest) {
		t.Fatalf("expected ErrIncompleteRequest, got %v", err)
	}
	if stub.calls != 0 {
		t.Errorf("model was called %d times for an invalid request", stub.calls)
	}
}

func TestGenerate_NoWeekdaysNeverCallsModel(t *testing.T) {
	stub := &stubTextGenerator{}
	gen := New(newTestStore(t), stub)

	req := validRequest()
	req.Weekdays = nil

	_, err := gen.Generate(context.Background(), req)
	if !errors.Is(err, ErrNoWeekdays) {
		t.Fatalf("expected ErrNoWeekdays, got %v", err)
	}
	if stub.calls != 0 {
		t.Errorf("model was called %d times for an invalid request", stub.calls)
	}
}

func TestGenerate_DecodesPlanWithFreshIDs(t *testing.T) {
	stub := &stubTextGenerator{
		response: `[{"date":"2026-07-14","specialTitle":"","classes":[{"label":"Aula 1","title":"Clima tropical","theme":"Zonas climáticas"}]}]`,
	}
	gen := New(newTestStore(t), stub)

	days, err := gen.Generate(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if stub.calls != 1 {
		t.Fatalf("model called %d times, want 1", stub.calls)
	}
	if len(days) != 1 {
		t.Fatalf("got %d days, want 1", len(days))
	}

	day := days[0]
	if day.ID == "" {
		t.Error("day must get a fresh id")
	}
	if day.Date != "2026-07-14" || day.SpecialTitle != "" {
		t.Errorf("day fields not preserved: %+v", day)
	}
	if len(day.Classes) != 1 {
		t.Fatalf("got %d slots, want 1", len(day.Classes))
	}
	c := day.Classes[0]
	if c.ID == "" {
		t.Error("slot must get a fresh id")
	}
	if c.ID == day.ID {
		t.Error("slot id must differ from day id")
	}
	if c.Label != "Aula 1" || c.Title != "Clima tropical" || c.Theme != "Zonas climáticas" {
		t.Errorf("slot fields not preserved: %+v", c)
	}
}

func TestGenerate_EmptyResponseTextYieldsEmptyPlan(t *testing.T) {
	stub := &stubTextGenerator{response: ""}
	gen := New(newTestStore(t), stub)

	days, err := gen.Generate(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(days) != 0 {
		t.Errorf("got %d days, want 0", len(days))
	}
}

func TestGenerate_TransportErrorPropagates(t *testing.T) {
	stub := &stubTextGenerator{err: errors.New("quota exceeded")}
	gen := New(newTestStore(t), stub)

	if _, err := gen.Generate(context.Background(), validRequest()); err == nil {
		t.Fatal("expected error from failing model call")
	}
}

func TestGenerate_MalformedResponseFails(t *testing.T) {
	stub := &stubTextGenerator{response: `{"not":"an array"}`}
	gen := New(newTestStore(t), stub)

	if _, err := gen.Generate(context.Background(), validRequest()); err == nil {
		t.Fatal("expected decode error for non-array response")
	}
}

func TestBuildPrompt_EmbedsCalendarWindow(t *testing.T) {
	store := newTestStore(t)
	if err := store.SetDay("2026-07-15", models.DayKindHoliday, "Aniversário da cidade"); err != nil {
		t.Fatalf("SetDay failed: %v", err)
	}
	stub := &stubTextGenerator{response: "[]"}
	gen := New(store, stub)

	if _, err := gen.Generate(context.Background(), validRequest()); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if !strings.Contains(stub.prompt, "2026-07-15: holiday - Aniversário da cidade") {
		t.Errorf("prompt missing calendar entry:\n%s", stub.prompt)
	}
	if !strings.Contains(stub.prompt, "Seg, Qua, Sex") {
		t.Errorf("prompt missing weekday labels:\n%s", stub.prompt)
	}
	if !strings.Contains(stub.prompt, "Clima e vegetação do Brasil") {
		t.Errorf("prompt missing content:\n%s", stub.prompt)
	}
}

// gatedTextGenerator blocks inside the model call until released, so a test
// can interleave store edits with an in-flight generation.
type gatedTextGenerator struct {
	started chan struct{}
	release chan struct{}
	prompt  string
}

func (g *gatedTextGenerator) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	g.prompt = prompt
	close(g.started)
	<-g.release
	return "[]", nil
}

func TestGenerateFromEvents_InFlightCallIgnoresStoreEdits(t *testing.T) {
	store := newTestStore(t)
	if err := store.SetDay("2026-07-14", models.DayKindHoliday, "Recesso"); err != nil {
		t.Fatalf("SetDay failed: %v", err)
	}

	req := validRequest()
	events, err := store.Range(req.StartDate, req.EndDate)
	if err != nil {
		t.Fatalf("Range failed: %v", err)
	}

	stub := &gatedTextGenerator{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}

	done := make(chan error, 1)
	go func() {
		_, err := GenerateFromEvents(context.Background(), stub, req, events)
		done <- err
	}()

	// Edit the store while the call is blocked inside the model
	<-stub.started
	if err := store.SetDay("2026-07-16", models.DayKindExam, "Prova surpresa"); err != nil {
		t.Fatalf("SetDay failed: %v", err)
	}
	close(stub.release)

	if err := <-done; err != nil {
		t.Fatalf("GenerateFromEvents failed: %v", err)
	}

	if !strings.Contains(stub.prompt, "2026-07-14: holiday - Recesso") {
		t.Errorf("prompt missing captured window entry:\n%s", stub.prompt)
	}
	if strings.Contains(stub.prompt, "2026-07-16") {
		t.Errorf("prompt picked up a store edit made mid-flight:\n%s", stub.prompt)
	}
}

func TestBuildPrompt_NoEventsSentinel(t *testing.T) {
	prompt := BuildPrompt(validRequest(), nil)

	if !strings.Contains(prompt, NoEventsSentinel) {
		t.Errorf("prompt missing no-events sentinel:\n%s", prompt)
	}
}

func TestRenderEvents(t *testing.T) {
	events := []storage.DatedAnnotation{
		{Date: "2026-04-21", Annotation: models.DayAnnotation{Kind: models.DayKindHoliday, Description: "Tiradentes"}},
		{Date: "2026-04-23", Annotation: models.DayAnnotation{Kind: models.DayKindExam, Description: "Avaliação"}},
	}

	got := RenderEvents(events)
	want := "2026-04-21: holiday - Tiradentes\n2026-04-23: exam - Avaliação"
	if got != want {
		t.Errorf("RenderEvents = %q, want %q", got, want)
	}
}

func TestResponseSchema_Shape(t *testing.T) {
	schema := ResponseSchema()

	if schema.Type != genai.TypeArray {
		t.Fatalf("root type = %v, want array", schema.Type)
	}
	day := schema.Items
	if day == nil || day.Type != genai.TypeObject {
		t.Fatal("items must be an object schema")
	}
	for _, field := range []string{"date", "specialTitle", "classes"} {
		if _, ok := day.Properties[field]; !ok {
			t.Errorf("day schema missing field %q", field)
		}
	}
	classes := day.Properties["classes"]
	if classes.Type != genai.TypeArray || classes.Items == nil {
		t.Fatal("classes must be an array of objects")
	}
	for _, field := range []string{"label", "title", "theme"} {
		if _, ok := classes.Items.Properties[field]; !ok {
			t.Errorf("class schema missing field %q", field)
		}
	}
}
