package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pkgindex/legacy-api/internal/models"
	appErr "github.com/pkgindex/legacy-api/pkg/errors"
)

type ReleaseRepository interface {
	// ListWithFiles loads every release of a project with its files,
	// newest pypi ordering first and files by filename.
	ListWithFiles(ctx context.Context, projectID uuid.UUID) ([]models.Release, error)
}

type releaseRepository struct {
	db *gorm.DB
}

func NewReleaseRepository(db *gorm.DB) ReleaseRepository {
	return &releaseRepository{db: db}
}

func (r *releaseRepository) ListWithFiles(ctx context.Context, projectID uuid.UUID) ([]models.Release, error) {
	var out []models.Release
	err := r.db.WithContext(ctx).
		Preload("Files", func(db *gorm.DB) *gorm.DB { return db.Order(byteOrder(db, "filename") + " ASC") }).
		Where("project_id = ?", projectID).
		Order("_pypi_ordering DESC").
		Find(&out).Error
	if err != nil {
		return nil, appErr.Unavailable(err, "list releases failed")
	}
	return out, nil
}
