package models

// UIActionType enumerates the closed set of recognized UI commands.
type UIActionType string

const (
	ActionReorderColumn UIActionType = "reorder_column"
	ActionFilter        UIActionType = "filter"
	ActionClearFilter   UIActionType = "clear_filter"
	ActionSort          UIActionType = "sort"
	ActionClearSort     UIActionType = "clear_sort"
	ActionResetColumns  UIActionType = "reset_columns"
	ActionRemoveColumn  UIActionType = "remove_column"
)

// UIAction is a structured command derived directly from the question's
// phrasing. Detection bypasses the query pipeline entirely.
// Field usage per type:
//
//	reorder_column: Column + exactly one of Position/AfterColumn/BeforeColumn
//	filter:         Column, Value
//	clear_filter:   Column optional (empty clears all filters)
//	sort:           Column, Direction ("asc"|"desc")
//	clear_sort, reset_columns: no fields
//	remove_column:  Column
type UIAction struct {
	Type         UIActionType `json:"type"`
	Column       string       `json:"column,omitempty"`
	Position     *int         `json:"position,omitempty"`
	AfterColumn  string       `json:"after_column,omitempty"`
	BeforeColumn string       `json:"before_column,omitempty"`
	Value        string       `json:"value,omitempty"`
	Direction    string       `json:"direction,omitempty"`
}
