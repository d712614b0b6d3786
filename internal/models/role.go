package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role grants a user a named role (Owner, Maintainer) on a project.
type Role struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_roles_user_project_role" json:"user_id"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_roles_user_project_role" json:"project_id"`
	RoleName  string    `gorm:"not null;uniqueIndex:idx_roles_user_project_role" json:"role_name"`

	User    *User    `json:"-"`
	Project *Project `json:"-"`
}

func (r *Role) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
