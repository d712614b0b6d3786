package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/pkgindex/legacy-api/internal/models"
	appErr "github.com/pkgindex/legacy-api/pkg/errors"
)

type ProjectRepository interface {
	BaseRepository[models.Project]
	GetByNormalizedName(ctx context.Context, normalized string, dest *models.Project) error
	// List returns one window of the filtered projects ordered by normalized name.
	List(ctx context.Context, filter SerialFilter, offset, limit int) ([]models.Project, error)
	CountFiltered(ctx context.Context, filter SerialFilter) (int64, error)
}

type projectRepository struct {
	BaseRepository[models.Project]
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{BaseRepository: NewBaseRepository[models.Project](db, "project"), db: db}
}

func (r *projectRepository) GetByNormalizedName(ctx context.Context, normalized string, dest *models.Project) error {
	if err := r.db.WithContext(ctx).Where("normalized_name = ?", normalized).First(dest).Error; err != nil {
		return translate(err, "project not found", "get project failed")
	}
	return nil
}

func (r *projectRepository) List(ctx context.Context, filter SerialFilter, offset, limit int) ([]models.Project, error) {
	var out []models.Project
	err := r.db.WithContext(ctx).
		Scopes(filter.Scope()).
		Order(byteOrder(r.db, "normalized_name") + " ASC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, appErr.Unavailable(err, "list projects failed")
	}
	return out, nil
}

func (r *projectRepository) CountFiltered(ctx context.Context, filter SerialFilter) (int64, error) {
	return r.Count(ctx, filter.Scope())
}
