package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// File is a distribution uploaded for a release.
type File struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ReleaseID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_release_files_release_filename" json:"release_id"`
	Filename         string    `gorm:"not null;uniqueIndex:idx_release_files_release_filename" json:"filename"`
	PackageType      string    `gorm:"not null" json:"packagetype"`
	PythonVersion    string    `json:"python_version"`
	RequiresPython   *string   `json:"requires_python"`
	Size             int64     `gorm:"not null" json:"size"`
	Path             string    `gorm:"not null" json:"path"`
	MD5Digest        string    `gorm:"column:md5_digest;not null" json:"md5_digest"`
	SHA256Digest     string    `gorm:"column:sha256_digest;not null" json:"sha256_digest"`
	Blake2b256Digest string    `gorm:"column:blake2_256_digest" json:"blake2_256_digest"`
	HasSignature     bool      `gorm:"not null;default:false" json:"has_signature"`
	CommentText      *string   `json:"comment_text"`
	UploadTime       time.Time `gorm:"not null" json:"upload_time"`
}

func (File) TableName() string { return "release_files" }

func (f *File) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
