package services

import (
	"context"

	"github.com/pkgindex/legacy-api/internal/models"
	"github.com/pkgindex/legacy-api/internal/names"
	"github.com/pkgindex/legacy-api/internal/repository"
)

// RoleLister reports who holds which role on which project.
type RoleLister interface {
	ProjectRoles(ctx context.Context, name string) ([]ProjectRoleView, error)
	UserProjects(ctx context.Context, username string) ([]UserProjectView, error)
}

type ProjectRoleView struct {
	Role     string `json:"role"`
	Username string `json:"username"`
}

type UserProjectView struct {
	Role    string `json:"role"`
	Project string `json:"project"`
}

type roleLister struct {
	projects repository.ProjectRepository
	users    repository.UserRepository
	roles    repository.RoleRepository
}

func NewRoleLister(projects repository.ProjectRepository, users repository.UserRepository, roles repository.RoleRepository) RoleLister {
	return &roleLister{projects: projects, users: users, roles: roles}
}

var _ RoleLister = (*roleLister)(nil)

func (s *roleLister) ProjectRoles(ctx context.Context, name string) ([]ProjectRoleView, error) {
	var p models.Project
	if err := s.projects.GetByNormalizedName(ctx, names.Normalize(name), &p); err != nil {
		return nil, err
	}
	rows, err := s.roles.ListByProject(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	out := make([]ProjectRoleView, 0, len(rows))
	for _, r := range rows {
		out = append(out, ProjectRoleView{Role: r.RoleName, Username: r.Username})
	}
	return out, nil
}

func (s *roleLister) UserProjects(ctx context.Context, username string) ([]UserProjectView, error) {
	var u models.User
	if err := s.users.GetByUsername(ctx, username, &u); err != nil {
		return nil, err
	}
	rows, err := s.roles.ListByUser(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	out := make([]UserProjectView, 0, len(rows))
	for _, r := range rows {
		out = append(out, UserProjectView{Role: r.RoleName, Project: r.ProjectName})
	}
	return out, nil
}
