// Package ordering defines the canonical orderings of projects, releases
// and files. Everything here is pure; repositories may ask the database for
// the same order but callers must not rely on it.
package ordering

import (
	"cmp"
	"slices"

	"github.com/pkgindex/legacy-api/internal/models"
)

// CompareProjects orders projects by normalized name, ascending.
func CompareProjects(a, b models.Project) int {
	return cmp.Compare(a.NormalizedName, b.NormalizedName)
}

// prereleaseRank sorts false before true before NULL.
func prereleaseRank(p *bool) int {
	switch {
	case p == nil:
		return 2
	case *p:
		return 1
	default:
		return 0
	}
}

// CompareCanonical ranks candidates for a project's current release:
// prerelease flag ascending with NULL last, then pypi ordering descending.
// The smallest element is the canonical release.
func CompareCanonical(a, b models.Release) int {
	if c := cmp.Compare(prereleaseRank(a.IsPrerelease), prereleaseRank(b.IsPrerelease)); c != 0 {
		return c
	}
	return cmp.Compare(b.PypiOrdering, a.PypiOrdering)
}

// CanonicalRelease picks the release a project's summary represents.
// It reports false when releases is empty.
func CanonicalRelease(releases []models.Release) (models.Release, bool) {
	if len(releases) == 0 {
		return models.Release{}, false
	}
	return slices.MinFunc(releases, CompareCanonical), true
}

// CompareReleases orders releases newest first by pypi ordering.
func CompareReleases(a, b models.Release) int {
	return cmp.Compare(b.PypiOrdering, a.PypiOrdering)
}

// CompareFiles orders files by filename, ascending.
func CompareFiles(a, b models.File) int {
	return cmp.Compare(a.Filename, b.Filename)
}

// SortProjects sorts projects in place.
func SortProjects(projects []models.Project) {
	slices.SortStableFunc(projects, CompareProjects)
}

// SortReleaseFiles sorts releases newest first and each release's files by
// filename, in place.
func SortReleaseFiles(releases []models.Release) {
	slices.SortStableFunc(releases, CompareReleases)
	for i := range releases {
		slices.SortStableFunc(releases[i].Files, CompareFiles)
	}
}
