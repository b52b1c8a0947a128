package models

import "time"

// Exam is immutable reference data.
type Exam struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Date     time.Time `json:"date"`
	Duration string    `json:"duration"`
}
