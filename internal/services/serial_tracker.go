package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/pkgindex/legacy-api/internal/models"
	"github.com/pkgindex/legacy-api/internal/names"
	"github.com/pkgindex/legacy-api/internal/repository"
	"github.com/pkgindex/legacy-api/pkg/logger"
)

// SerialTracker answers which serial a project, or the whole index, is at.
// Serials are only ever written by the publishing side, in the same
// transaction as the journal entry that caused them.
type SerialTracker interface {
	// ProjectSerial returns the last_serial of the named project.
	ProjectSerial(ctx context.Context, name string) (int64, error)
	// IndexSerial returns the highest journal id, the index watermark.
	IndexSerial(ctx context.Context) (int64, error)
}

type serialTracker struct {
	projects repository.ProjectRepository
	journal  repository.JournalRepository
}

func NewSerialTracker(projects repository.ProjectRepository, journal repository.JournalRepository) SerialTracker {
	return &serialTracker{projects: projects, journal: journal}
}

var _ SerialTracker = (*serialTracker)(nil)

func (s *serialTracker) ProjectSerial(ctx context.Context, name string) (int64, error) {
	var p models.Project
	if err := s.projects.GetByNormalizedName(ctx, names.Normalize(name), &p); err != nil {
		return 0, err
	}
	return p.LastSerial, nil
}

func (s *serialTracker) IndexSerial(ctx context.Context) (int64, error) {
	serial, err := s.journal.MaxSerial(ctx)
	if err != nil {
		logger.From(ctx).Error("read index serial failed", zap.Error(err))
		return 0, err
	}
	return serial, nil
}
