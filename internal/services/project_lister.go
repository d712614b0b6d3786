package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/pkgindex/legacy-api/internal/models"
	"github.com/pkgindex/legacy-api/internal/names"
	"github.com/pkgindex/legacy-api/internal/ordering"
	"github.com/pkgindex/legacy-api/internal/repository"
	"github.com/pkgindex/legacy-api/internal/urls"
	appErr "github.com/pkgindex/legacy-api/pkg/errors"
	"github.com/pkgindex/legacy-api/pkg/logger"
)

// DefaultPageSize is the project listing page size when none is configured.
const DefaultPageSize = 100

// ProjectLister enumerates projects by normalized name, optionally
// restricted by serial, one page at a time.
type ProjectLister interface {
	List(ctx context.Context, input ListProjectsInput) (*ProjectPage, error)
	Get(ctx context.Context, name string) (*ProjectSummary, error)
}

// ListProjectsInput selects one page of projects. SerialSince and Serial
// combine with AND. Page is 1-based.
type ListProjectsInput struct {
	SerialSince *int64
	Serial      *int64
	Page        int
}

// ProjectSummary is one row of the project listing.
type ProjectSummary struct {
	Name       string `json:"name"`
	Serial     int64  `json:"serial"`
	ProjectURL string `json:"project_url"`
}

// ProjectPage is one page of the listing. NextPage and PreviousPage are
// nil when there is no such page.
type ProjectPage struct {
	Projects     []ProjectSummary
	NextPage     *int
	PreviousPage *int
}

type projectLister struct {
	projects repository.ProjectRepository
	urls     *urls.Builder
	pageSize int
}

func NewProjectLister(projects repository.ProjectRepository, builder *urls.Builder, pageSize int) ProjectLister {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &projectLister{projects: projects, urls: builder, pageSize: pageSize}
}

var _ ProjectLister = (*projectLister)(nil)

func (s *projectLister) List(ctx context.Context, input ListProjectsInput) (*ProjectPage, error) {
	page := input.Page
	if page == 0 {
		page = 1
	}
	if page < 1 {
		return nil, appErr.Invalid("page must be a positive integer")
	}
	filter := repository.SerialFilter{Since: input.SerialSince, Exact: input.Serial}
	logger.From(ctx).Debug("list projects", zap.Int("page", page), zap.Int64p("serial_since", input.SerialSince), zap.Int64p("serial", input.Serial))

	total, err := s.projects.CountFiltered(ctx, filter)
	if err != nil {
		return nil, err
	}

	size := int64(s.pageSize)
	lastPage := int((total + size - 1) / size)
	out := &ProjectPage{Projects: []ProjectSummary{}}
	if page < lastPage {
		next := page + 1
		out.NextPage = &next
	}
	if page > 1 && lastPage >= 1 {
		prev := min(page-1, lastPage)
		out.PreviousPage = &prev
	}
	if page > lastPage {
		return out, nil
	}

	rows, err := s.projects.List(ctx, filter, (page-1)*s.pageSize, s.pageSize)
	if err != nil {
		return nil, err
	}
	ordering.SortProjects(rows)
	for _, p := range rows {
		out.Projects = append(out.Projects, s.summary(p))
	}
	return out, nil
}

func (s *projectLister) Get(ctx context.Context, name string) (*ProjectSummary, error) {
	var p models.Project
	if err := s.projects.GetByNormalizedName(ctx, names.Normalize(name), &p); err != nil {
		return nil, err
	}
	sum := s.summary(p)
	return &sum, nil
}

func (s *projectLister) summary(p models.Project) ProjectSummary {
	return ProjectSummary{
		Name:       p.NormalizedName,
		Serial:     p.LastSerial,
		ProjectURL: s.urls.Project(urls.ProjectDetail, p.Name),
	}
}
