package models

// ClassSlot is one scheduled teaching unit within a school day. Slot order
// inside a day is the presentation order.
type ClassSlot struct {
	ID    string `json:"id"`
	Label string `json:"label"` // e.g. "Aula 1"
	Title string `json:"title"`
	Theme string `json:"theme"`
}

// SchoolDay is one dated entry of a lesson plan. An empty Date means the day
// has not been scheduled yet.
type SchoolDay struct {
	ID           string      `json:"id"`
	Date         string      `json:"date"` // YYYY-MM-DD format
	SpecialTitle string      `json:"special_title"`
	Classes      []ClassSlot `json:"classes"`
}
