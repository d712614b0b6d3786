package models

import "time"

// JournalEntry is one row of the append-only action log. Its ID is the
// global serial.
type JournalEntry struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string    `gorm:"not null;index" json:"name"`
	Version       *string   `json:"version"`
	Action        string    `gorm:"not null" json:"action"`
	SubmittedDate time.Time `gorm:"not null;index" json:"submitted_date"`
	SubmittedBy   *string   `json:"submitted_by"`
}

func (JournalEntry) TableName() string { return "journals" }
