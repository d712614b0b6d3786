package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Release is one version of a project.
type Release struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_releases_project_version" json:"project_id"`
	Version          string    `gorm:"not null;uniqueIndex:idx_releases_project_version" json:"version"`
	CanonicalVersion string    `gorm:"not null;index" json:"canonical_version"`
	// IsPrerelease is nullable in the store; NULL ranks after both true and false.
	IsPrerelease *bool `json:"is_prerelease"`
	// PypiOrdering ranks releases of one project, higher is newer.
	PypiOrdering int `gorm:"column:_pypi_ordering;not null;default:0" json:"pypi_ordering"`

	Summary                string         `json:"summary"`
	Description            string         `gorm:"type:text" json:"description"`
	DescriptionContentType *string        `json:"description_content_type"`
	Author                 string         `json:"author"`
	AuthorEmail            string         `json:"author_email"`
	Maintainer             string         `json:"maintainer"`
	MaintainerEmail        string         `json:"maintainer_email"`
	License                string         `json:"license"`
	Keywords               string         `json:"keywords"`
	Platform               string         `json:"platform"`
	HomePage               string         `json:"home_page"`
	DownloadURL            string         `json:"download_url"`
	RequiresPython         *string        `json:"requires_python"`
	Classifiers            datatypes.JSON `json:"classifiers"`
	RequiresDist           datatypes.JSON `json:"requires_dist"`
	ProjectURLs            datatypes.JSON `gorm:"column:project_urls" json:"project_urls"`
	Created                time.Time      `gorm:"not null" json:"created"`

	Project *Project `json:"-"`
	Files   []File   `json:"-"`
}

func (r *Release) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.CanonicalVersion == "" {
		r.CanonicalVersion = r.Version
	}
	return nil
}
