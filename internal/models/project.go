package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project is the root of the index: releases and files hang off it.
type Project struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string    `gorm:"not null" json:"name"`
	NormalizedName string    `gorm:"not null;uniqueIndex" json:"normalized_name"`
	CreatedAt      time.Time `json:"created_at"`
	// LastSerial is the id of the newest journal entry affecting this project.
	LastSerial int64     `gorm:"not null;default:0;index" json:"last_serial"`
	Releases   []Release `json:"-"`
	Roles      []Role    `json:"-"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
