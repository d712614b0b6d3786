package services

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/pkgindex/legacy-api/internal/models"
	"github.com/pkgindex/legacy-api/internal/names"
	"github.com/pkgindex/legacy-api/internal/ordering"
	"github.com/pkgindex/legacy-api/internal/repository"
	"github.com/pkgindex/legacy-api/internal/urls"
	appErr "github.com/pkgindex/legacy-api/pkg/errors"
	"github.com/pkgindex/legacy-api/pkg/logger"
)

const (
	uploadTimeLayout = "2006-01-02T15:04:05"
	iso8601Layout    = "2006-01-02T15:04:05.000000Z"
)

// ReleaseAggregator builds the legacy release document of a project.
type ReleaseAggregator interface {
	// Project renders the project around its canonical release.
	Project(ctx context.Context, name string) (*LegacyProject, error)
	// Release renders the project around the given version.
	Release(ctx context.Context, name, version string) (*LegacyProject, error)
}

type releaseAggregator struct {
	projects repository.ProjectRepository
	releases repository.ReleaseRepository
	urls     *urls.Builder
}

func NewReleaseAggregator(projects repository.ProjectRepository, releases repository.ReleaseRepository, builder *urls.Builder) ReleaseAggregator {
	return &releaseAggregator{projects: projects, releases: releases, urls: builder}
}

var _ ReleaseAggregator = (*releaseAggregator)(nil)

func (s *releaseAggregator) Project(ctx context.Context, name string) (*LegacyProject, error) {
	p, releases, err := s.load(ctx, name)
	if err != nil {
		return nil, err
	}
	current, ok := ordering.CanonicalRelease(releases)
	if !ok {
		logger.From(ctx).Info("project has no canonical release", zap.String("project", p.NormalizedName))
		return nil, appErr.NotFound("project %q has no releases", p.Name)
	}
	return s.assemble(p, current, releases)
}

func (s *releaseAggregator) Release(ctx context.Context, name, version string) (*LegacyProject, error) {
	p, releases, err := s.load(ctx, name)
	if err != nil {
		return nil, err
	}
	for _, r := range releases {
		if r.Version == version {
			return s.assemble(p, r, releases)
		}
	}
	return nil, appErr.NotFound("release %s %s not found", p.Name, version)
}

// load fetches the project and all of its releases with files in one pass,
// ordered newest release first and files by name.
func (s *releaseAggregator) load(ctx context.Context, name string) (*models.Project, []models.Release, error) {
	var p models.Project
	if err := s.projects.GetByNormalizedName(ctx, names.Normalize(name), &p); err != nil {
		return nil, nil, err
	}
	releases, err := s.releases.ListWithFiles(ctx, p.ID)
	if err != nil {
		logger.From(ctx).Error("load releases failed", zap.String("project", p.NormalizedName), zap.Error(err))
		return nil, nil, err
	}
	ordering.SortReleaseFiles(releases)
	return &p, releases, nil
}

func (s *releaseAggregator) assemble(p *models.Project, current models.Release, releases []models.Release) (*LegacyProject, error) {
	// releases arrive newest first
	byVersion := NewReleaseFiles(len(releases))
	for _, r := range releases {
		files := make([]FileDescriptor, 0, len(r.Files))
		for _, f := range r.Files {
			files = append(files, s.describe(f))
		}
		byVersion.Add(r.Version, files)
	}

	info, err := s.info(p, current)
	if err != nil {
		return nil, err
	}
	return &LegacyProject{
		Info:       info,
		LastSerial: p.LastSerial,
		Releases:   byVersion,
		URLs:       byVersion.Get(current.Version),
	}, nil
}

func (s *releaseAggregator) info(p *models.Project, r models.Release) (LegacyInfo, error) {
	classifiers := []string{}
	if err := decodeJSON(r.Classifiers, &classifiers); err != nil {
		return LegacyInfo{}, appErr.Wrap(err, appErr.CodeInternal, "decode classifiers failed")
	}
	var requiresDist []string
	if err := decodeJSON(r.RequiresDist, &requiresDist); err != nil {
		return LegacyInfo{}, appErr.Wrap(err, appErr.CodeInternal, "decode requires_dist failed")
	}
	if len(requiresDist) == 0 {
		requiresDist = nil
	}
	var projectURLs map[string]string
	if err := decodeJSON(r.ProjectURLs, &projectURLs); err != nil {
		return LegacyInfo{}, appErr.Wrap(err, appErr.CodeInternal, "decode project_urls failed")
	}
	if len(projectURLs) == 0 {
		projectURLs = nil
	}

	projectPage := s.urls.Project(urls.ProjectPage, p.Name)
	return LegacyInfo{
		Author:                 r.Author,
		AuthorEmail:            r.AuthorEmail,
		Classifiers:            classifiers,
		Description:            r.Description,
		DescriptionContentType: r.DescriptionContentType,
		DownloadURL:            r.DownloadURL,
		Downloads:              Downloads{LastDay: legacyDownloads, LastMonth: legacyDownloads, LastWeek: legacyDownloads},
		HomePage:               r.HomePage,
		Keywords:               r.Keywords,
		License:                r.License,
		Maintainer:             r.Maintainer,
		MaintainerEmail:        r.MaintainerEmail,
		Name:                   p.Name,
		PackageURL:             projectPage,
		Platform:               r.Platform,
		ProjectURL:             projectPage,
		ProjectURLs:            projectURLs,
		ReleaseURL:             s.urls.Release(urls.ReleasePage, p.Name, r.Version),
		RequiresDist:           requiresDist,
		RequiresPython:         r.RequiresPython,
		Summary:                r.Summary,
		Version:                r.Version,
	}, nil
}

func (s *releaseAggregator) describe(f models.File) FileDescriptor {
	uploaded := f.UploadTime.UTC()
	return FileDescriptor{
		CommentText: f.CommentText,
		Digests: Digests{
			Blake2b256: f.Blake2b256Digest,
			MD5:        f.MD5Digest,
			SHA256:     f.SHA256Digest,
		},
		Downloads:         legacyDownloads,
		Filename:          f.Filename,
		HasSig:            f.HasSignature,
		MD5Digest:         f.MD5Digest,
		PackageType:       f.PackageType,
		PythonVersion:     f.PythonVersion,
		RequiresPython:    f.RequiresPython,
		Size:              f.Size,
		UploadTime:        uploaded.Format(uploadTimeLayout),
		UploadTimeISO8601: uploaded.Format(iso8601Layout),
		URL:               s.urls.File(f.Path),
	}
}

// decodeJSON leaves dest untouched for empty or null columns.
func decodeJSON(raw datatypes.JSON, dest any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return json.Unmarshal(raw, dest)
}
