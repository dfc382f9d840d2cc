package storage

import "time"

// GridSnapshot is the persisted property set of a named grid.
type GridSnapshot struct {
	Name            string
	DayCount        int
	GridOffset      int
	MinEnabledIndex int
	MaxEnabledIndex int
	SelectedDay     int
	UpdatedAt       time.Time
}

// Selection is one recorded day pick. Day is 1-based.
type Selection struct {
	ID         int64
	Day        int
	Source     string
	SelectedAt time.Time
}

type SelectionListFilter struct {
	Source string
	Limit  int
	Offset int
}
