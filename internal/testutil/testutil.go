// Package testutil builds throwaway index databases for tests.
package testutil

import (
	"encoding/json"
	"testing"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/pkgindex/legacy-api/internal/models"
	"github.com/pkgindex/legacy-api/internal/names"
)

// Epoch is the fixture clock's starting point.
var Epoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// SetupTestDB returns an in-memory SQLite database with the full schema.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Discard,
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	// every connection to :memory: is a new database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

// Fixture inserts index rows the way the publishing side would. The clock
// advances one minute per journal entry.
type Fixture struct {
	t   *testing.T
	DB  *gorm.DB
	Now time.Time
}

// NewFixture returns a Fixture over a fresh test database.
func NewFixture(t *testing.T) *Fixture {
	t.Helper()
	return &Fixture{t: t, DB: SetupTestDB(t), Now: Epoch}
}

func (f *Fixture) tick() time.Time {
	f.Now = f.Now.Add(time.Minute)
	return f.Now
}

// Project creates a project and journals its creation.
func (f *Fixture) Project(name string) *models.Project {
	f.t.Helper()
	p := &models.Project{Name: name, NormalizedName: names.Normalize(name), CreatedAt: f.Now}
	if err := f.DB.Create(p).Error; err != nil {
		f.t.Fatalf("Failed to create project %s: %v", name, err)
	}
	f.Journal(p, nil, "create")
	return p
}

// ReleaseOption customizes a fixture release.
type ReleaseOption func(*models.Release)

// Prerelease sets the release's prerelease flag; nil stores NULL.
func Prerelease(v *bool) ReleaseOption {
	return func(r *models.Release) { r.IsPrerelease = v }
}

// Summary sets the release summary.
func Summary(s string) ReleaseOption {
	return func(r *models.Release) { r.Summary = s }
}

// RequiresDist stores the given requirement strings; no arguments stores
// an empty list rather than NULL.
func RequiresDist(reqs ...string) ReleaseOption {
	if reqs == nil {
		reqs = []string{}
	}
	return func(r *models.Release) { r.RequiresDist = mustJSON(reqs) }
}

// Classifiers stores the given trove classifiers.
func Classifiers(cs ...string) ReleaseOption {
	return func(r *models.Release) { r.Classifiers = mustJSON(cs) }
}

// ProjectURLs stores labelled project URLs.
func ProjectURLs(urls map[string]string) ReleaseOption {
	return func(r *models.Release) { r.ProjectURLs = mustJSON(urls) }
}

// Release creates a release of p and journals it as a new release.
func (f *Fixture) Release(p *models.Project, version string, ordering int, opts ...ReleaseOption) *models.Release {
	f.t.Helper()
	final := false
	r := &models.Release{
		ProjectID:    p.ID,
		Version:      version,
		PypiOrdering: ordering,
		IsPrerelease: &final,
		Author:       "Jane Doe",
		AuthorEmail:  "jane@example.org",
		License:      "MIT",
		Created:      f.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if err := f.DB.Create(r).Error; err != nil {
		f.t.Fatalf("Failed to create release %s %s: %v", p.Name, version, err)
	}
	f.Journal(p, &version, "new release")
	return r
}

// File uploads a distribution to r and journals the upload.
func (f *Fixture) File(p *models.Project, r *models.Release, filename, packageType string) *models.File {
	f.t.Helper()
	file := &models.File{
		ReleaseID:        r.ID,
		Filename:         filename,
		PackageType:      packageType,
		PythonVersion:    "source",
		Size:             int64(1000 + len(filename)),
		Path:             "ab/cd/" + filename,
		MD5Digest:        "d41d8cd98f00b204e9800998ecf8427e",
		SHA256Digest:     "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		Blake2b256Digest: "0e5751c026e543b2e8ab2eb06099daa1d1e5df47778f7787faab45cdf12fe3a8",
		UploadTime:       f.Now,
	}
	if packageType == "bdist_wheel" {
		file.PythonVersion = "py3"
	}
	if err := f.DB.Create(file).Error; err != nil {
		f.t.Fatalf("Failed to create file %s: %v", filename, err)
	}
	f.Journal(p, &r.Version, "add "+packageType+" file "+filename)
	return file
}

// User creates an account.
func (f *Fixture) User(username string) *models.User {
	f.t.Helper()
	u := &models.User{Username: username, Name: username, CreatedAt: f.Now}
	if err := f.DB.Create(u).Error; err != nil {
		f.t.Fatalf("Failed to create user %s: %v", username, err)
	}
	return u
}

// Role grants u a role on p and journals it.
func (f *Fixture) Role(p *models.Project, u *models.User, role string) {
	f.t.Helper()
	if err := f.DB.Create(&models.Role{UserID: u.ID, ProjectID: p.ID, RoleName: role}).Error; err != nil {
		f.t.Fatalf("Failed to grant %s on %s: %v", role, p.Name, err)
	}
	f.Journal(p, nil, "add "+role+" "+u.Username)
}

// Journal appends an entry for p and bumps p's last_serial to its id in the
// same transaction.
func (f *Fixture) Journal(p *models.Project, version *string, action string) models.JournalEntry {
	f.t.Helper()
	entry := models.JournalEntry{
		Name:          p.Name,
		Version:       version,
		Action:        action,
		SubmittedDate: f.tick(),
	}
	err := f.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		return tx.Model(&models.Project{}).Where("id = ?", p.ID).Update("last_serial", entry.ID).Error
	})
	if err != nil {
		f.t.Fatalf("Failed to journal %q for %s: %v", action, p.Name, err)
	}
	p.LastSerial = entry.ID
	return entry
}

func mustJSON(v any) datatypes.JSON {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return datatypes.JSON(b)
}

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool { return &b }
