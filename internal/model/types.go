// Package model defines shared data structures.
package model

import "time"

// Config defines picker settings.
type Config struct {
	Locale    string
	Min       time.Time
	Max       time.Time
	Initial   time.Time
	Format    string
	NoHistory bool
}

// HistoryConfig defines filters for history output.
type HistoryConfig struct {
	Since *time.Time
	Last  int
}

// PickRecord captures a confirmed date pick.
type PickRecord struct {
	ID       int64
	PickedAt time.Time
	Date     time.Time
	Locale   string
	MinDate  time.Time
	MaxDate  time.Time
}

// MonthCount aggregates picks by the calendar month they landed in.
type MonthCount struct {
	Year  int
	Month int
	Count int
}
