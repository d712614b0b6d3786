package api

import (
	"gorm.io/gorm"

	"github.com/pkgindex/legacy-api/internal/api/handlers"
	"github.com/pkgindex/legacy-api/internal/repository"
	"github.com/pkgindex/legacy-api/internal/services"
	"github.com/pkgindex/legacy-api/internal/urls"
)

// NewDependencies wires repositories, services and handlers over db.
func NewDependencies(db *gorm.DB, builder *urls.Builder, pageSize int) Dependencies {
	projects := repository.NewProjectRepository(db)
	journal := repository.NewJournalRepository(db)
	serials := services.NewSerialTracker(projects, journal)
	roles := services.NewRoleLister(projects, repository.NewUserRepository(db), repository.NewRoleRepository(db))

	return Dependencies{
		DB:              db,
		ProjectsHandler: handlers.NewProjectsHandler(services.NewProjectLister(projects, builder, pageSize), roles, builder),
		LegacyHandler:   handlers.NewLegacyHandler(services.NewReleaseAggregator(projects, repository.NewReleaseRepository(db), builder), serials),
		JournalHandler:  handlers.NewJournalHandler(services.NewJournalReader(journal, serials, builder)),
		UsersHandler:    handlers.NewUsersHandler(roles),
	}
}
