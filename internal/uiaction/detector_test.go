package uiaction_test

import (
	"testing"

	"github.com/attendai/attendai/internal/models"
	"github.com/attendai/attendai/internal/uiaction"
)

func TestDetectReorder(t *testing.T) {
	action, confirmation, ok := uiaction.Detect("move company to front")
	if !ok {
		t.Fatal("expected a UI action")
	}
	if action.Type != models.ActionReorderColumn {
		t.Errorf("type = %s, want reorder_column", action.Type)
	}
	if action.Column != "company_name" {
		t.Errorf("column = %q, want company_name", action.Column)
	}
	if action.Position == nil || *action.Position != 0 {
		t.Errorf("position = %v, want 0", action.Position)
	}
	if confirmation == "" {
		t.Error("expected a confirmation string")
	}
}

func TestDetectGrammar(t *testing.T) {
	tests := []struct {
		utterance string
		want      models.UIAction
	}{
		{"move status after company", models.UIAction{
			Type: models.ActionReorderColumn, Column: "registration_status", AfterColumn: "company_name",
		}},
		{"put arrival before departure", models.UIAction{
			Type: models.ActionReorderColumn, Column: "arrival_date", BeforeColumn: "departure_date",
		}},
		{"sort by country descending", models.UIAction{
			Type: models.ActionSort, Column: "country", Direction: "desc",
		}},
		{"sort by name", models.UIAction{
			Type: models.ActionSort, Column: "full_name", Direction: "asc",
		}},
		{"sort by registration_date descending", models.UIAction{
			Type: models.ActionSort, Column: "registration_date", Direction: "desc",
		}},
		{"filter status to confirmed", models.UIAction{
			Type: models.ActionFilter, Column: "registration_status", Value: "confirmed",
		}},
		{"clear the filter on company", models.UIAction{
			Type: models.ActionClearFilter, Column: "company_name",
		}},
		{"clear all filters", models.UIAction{
			Type: models.ActionClearFilter,
		}},
		{"clear sort", models.UIAction{
			Type: models.ActionClearSort,
		}},
		{"reset columns", models.UIAction{
			Type: models.ActionResetColumns,
		}},
		{"remove the hotel column", models.UIAction{
			Type: models.ActionRemoveColumn, Column: "hotel_name",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.utterance, func(t *testing.T) {
			got, _, ok := uiaction.Detect(tt.utterance)
			if !ok {
				t.Fatalf("Detect(%q) found no action", tt.utterance)
			}
			if got.Type != tt.want.Type {
				t.Errorf("type = %s, want %s", got.Type, tt.want.Type)
			}
			if got.Column != tt.want.Column {
				t.Errorf("column = %q, want %q", got.Column, tt.want.Column)
			}
			if got.Direction != tt.want.Direction {
				t.Errorf("direction = %q, want %q", got.Direction, tt.want.Direction)
			}
			if got.Value != tt.want.Value {
				t.Errorf("value = %q, want %q", got.Value, tt.want.Value)
			}
			if got.AfterColumn != tt.want.AfterColumn || got.BeforeColumn != tt.want.BeforeColumn {
				t.Errorf("relative = (%q,%q), want (%q,%q)",
					got.AfterColumn, got.BeforeColumn, tt.want.AfterColumn, tt.want.BeforeColumn)
			}
		})
	}
}

// Free-text questions must fall through to the query pipeline even when they
// mention sorting or filtering.
func TestDetectIgnoresQuestions(t *testing.T) {
	questions := []string{
		"How many unique companies are represented?",
		"which attendees sorted out their travel",
		"can you show attendees by country",
		"what filters does the data support",
		"sort out the duplicate records in the data",
		"order attendees into groups by country",
	}
	for _, q := range questions {
		if action, _, ok := uiaction.Detect(q); ok {
			t.Errorf("Detect(%q) = %+v, want no action", q, action)
		}
	}
}

func TestNormalizeColumnFallback(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"company", "company_name"},
		{"the status column", "registration_status"},
		{"badge color", "badge_color"}, // unknown: whitespace → underscore
		{"Arrival Date", "arrival_date"},
	}
	for _, tt := range tests {
		if got := uiaction.NormalizeColumn(tt.in); got != tt.want {
			t.Errorf("NormalizeColumn(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
