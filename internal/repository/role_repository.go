package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pkgindex/legacy-api/internal/models"
	appErr "github.com/pkgindex/legacy-api/pkg/errors"
)

// ProjectRole is a role on one project, keyed by the holder's username.
type ProjectRole struct {
	RoleName string
	Username string
}

// UserRole is a role held by one user, keyed by project name.
type UserRole struct {
	RoleName    string
	ProjectName string
}

type RoleRepository interface {
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]ProjectRole, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]UserRole, error)
}

type roleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]ProjectRole, error) {
	out := []ProjectRole{}
	err := r.db.WithContext(ctx).
		Model(&models.Role{}).
		Select("roles.role_name AS role_name, users.username AS username").
		Joins("JOIN users ON users.id = roles.user_id").
		Where("roles.project_id = ?", projectID).
		Order("roles.role_name DESC").
		Order(byteOrder(r.db, "users.username") + " ASC").
		Scan(&out).Error
	if err != nil {
		return nil, appErr.Unavailable(err, "list project roles failed")
	}
	return out, nil
}

func (r *roleRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]UserRole, error) {
	out := []UserRole{}
	err := r.db.WithContext(ctx).
		Model(&models.Role{}).
		Select("roles.role_name AS role_name, projects.name AS project_name").
		Joins("JOIN projects ON projects.id = roles.project_id").
		Where("roles.user_id = ?", userID).
		Order("roles.role_name DESC").
		Order(byteOrder(r.db, "projects.normalized_name") + " ASC").
		Scan(&out).Error
	if err != nil {
		return nil, appErr.Unavailable(err, "list user roles failed")
	}
	return out, nil
}
