package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/pkgindex/legacy-api/internal/models"
	"github.com/pkgindex/legacy-api/internal/testutil"
	appErr "github.com/pkgindex/legacy-api/pkg/errors"
)

func int64Ptr(v int64) *int64 { return &v }

func seedProjects(t *testing.T) (*testutil.Fixture, map[string]*models.Project) {
	t.Helper()
	f := testutil.NewFixture(t)
	out := map[string]*models.Project{}
	for _, name := range []string{"Zope.Interface", "requests", "Foo-Bar", "django"} {
		out[name] = f.Project(name)
	}
	return f, out
}

func normalizedNames(ps []models.Project) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.NormalizedName)
	}
	return out
}

func TestProjectListOrdersByNormalizedName(t *testing.T) {
	f, _ := seedProjects(t)
	repo := NewProjectRepository(f.DB)

	got, err := repo.List(context.Background(), SerialFilter{}, 0, 100)
	require.NoError(t, err)
	assert.Equal(t, []string{"django", "foo-bar", "requests", "zope-interface"}, normalizedNames(got))
}

func TestProjectListByteOrder(t *testing.T) {
	f := testutil.NewFixture(t)
	for _, name := range []string{"ab", "a-c", "alpha", "ae"} {
		f.Project(name)
	}
	repo := NewProjectRepository(f.DB)

	got, err := repo.List(context.Background(), SerialFilter{}, 0, 100)
	require.NoError(t, err)
	assert.Equal(t, []string{"a-c", "ab", "ae", "alpha"}, normalizedNames(got))
}

func TestByteOrderCollation(t *testing.T) {
	assert.Equal(t, "normalized_name", byteOrder(testutil.SetupTestDB(t), "normalized_name"))

	pg := &gorm.DB{Config: &gorm.Config{Dialector: postgres.New(postgres.Config{})}}
	assert.Equal(t, `users.username COLLATE "C"`, byteOrder(pg, "users.username"))
}

func TestProjectListWindow(t *testing.T) {
	f, _ := seedProjects(t)
	repo := NewProjectRepository(f.DB)

	got, err := repo.List(context.Background(), SerialFilter{}, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"foo-bar", "requests"}, normalizedNames(got))

	got, err = repo.List(context.Background(), SerialFilter{}, 10, 2)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestProjectSerialFilters(t *testing.T) {
	f, ps := seedProjects(t)
	repo := NewProjectRepository(f.DB)
	ctx := context.Background()

	// projects were created in order, so serials are 1..4
	requests := ps["requests"]
	require.EqualValues(t, 2, requests.LastSerial)

	tests := []struct {
		name   string
		filter SerialFilter
		want   []string
	}{
		{name: "none", filter: SerialFilter{}, want: []string{"django", "foo-bar", "requests", "zope-interface"}},
		{name: "since inclusive", filter: SerialFilter{Since: int64Ptr(3)}, want: []string{"django", "foo-bar"}},
		{name: "since past max", filter: SerialFilter{Since: int64Ptr(99)}, want: []string{}},
		{name: "exact", filter: SerialFilter{Exact: int64Ptr(2)}, want: []string{"requests"}},
		{name: "both", filter: SerialFilter{Since: int64Ptr(2), Exact: int64Ptr(4)}, want: []string{"django"}},
		{name: "both disjoint", filter: SerialFilter{Since: int64Ptr(3), Exact: int64Ptr(1)}, want: []string{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := repo.List(ctx, tc.filter, 0, 100)
			require.NoError(t, err)
			assert.Equal(t, tc.want, normalizedNames(got))

			n, err := repo.CountFiltered(ctx, tc.filter)
			require.NoError(t, err)
			assert.EqualValues(t, len(tc.want), n)

			for _, p := range got {
				if tc.filter.Since != nil {
					assert.GreaterOrEqual(t, p.LastSerial, *tc.filter.Since)
				}
				if tc.filter.Exact != nil {
					assert.Equal(t, *tc.filter.Exact, p.LastSerial)
				}
			}
		})
	}
}

func TestProjectGetByNormalizedName(t *testing.T) {
	f, ps := seedProjects(t)
	repo := NewProjectRepository(f.DB)

	var p models.Project
	require.NoError(t, repo.GetByNormalizedName(context.Background(), "foo-bar", &p))
	assert.Equal(t, ps["Foo-Bar"].ID, p.ID)
	assert.Equal(t, "Foo-Bar", p.Name)

	err := repo.GetByNormalizedName(context.Background(), "missing", &p)
	assert.True(t, appErr.IsCode(err, appErr.CodeNotFound))
}

func TestReleaseListWithFiles(t *testing.T) {
	f := testutil.NewFixture(t)
	p := f.Project("Foo-Bar")
	r1 := f.Release(p, "1.0.0", 10)
	f.File(p, r1, "foo_bar-1.0.0.tar.gz", "sdist")
	f.File(p, r1, "foo_bar-1.0.0-py3-none-any.whl", "bdist_wheel")
	f.Release(p, "1.1.0b1", 20, testutil.Prerelease(testutil.BoolPtr(true)))
	other := f.Project("other")
	f.Release(other, "9.9", 1)

	releases, err := NewReleaseRepository(f.DB).ListWithFiles(context.Background(), p.ID)
	require.NoError(t, err)
	require.Len(t, releases, 2)

	assert.Equal(t, "1.1.0b1", releases[0].Version)
	assert.Empty(t, releases[0].Files)
	require.NotNil(t, releases[0].IsPrerelease)
	assert.True(t, *releases[0].IsPrerelease)

	assert.Equal(t, "1.0.0", releases[1].Version)
	require.Len(t, releases[1].Files, 2)
	assert.Equal(t, "foo_bar-1.0.0-py3-none-any.whl", releases[1].Files[0].Filename)
	assert.Equal(t, "foo_bar-1.0.0.tar.gz", releases[1].Files[1].Filename)
}

func TestJournalWindows(t *testing.T) {
	f := testutil.NewFixture(t)
	a := f.Project("alpha")
	b := f.Project("beta")
	f.Release(a, "1.0", 1)
	f.Release(b, "2.0", 1)
	f.Journal(a, nil, "remove")
	repo := NewJournalRepository(f.DB)
	ctx := context.Background()

	t.Run("since timestamp is exclusive and ascending", func(t *testing.T) {
		// entry 2 was submitted at Epoch+2m
		got, err := repo.Since(ctx, testutil.Epoch.Add(2*time.Minute), 5000)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.EqualValues(t, []int64{3, 4, 5}, ids(got))
		for _, e := range got {
			assert.True(t, e.SubmittedDate.After(testutil.Epoch.Add(2*time.Minute)))
		}
	})

	t.Run("since timestamp honours the cap", func(t *testing.T) {
		got, err := repo.Since(ctx, testutil.Epoch, 2)
		require.NoError(t, err)
		assert.EqualValues(t, []int64{1, 2}, ids(got))
	})

	t.Run("since serial", func(t *testing.T) {
		got, err := repo.SinceSerial(ctx, 3, 5000)
		require.NoError(t, err)
		assert.EqualValues(t, []int64{4, 5}, ids(got))
		require.NotNil(t, got[0].Version)
		assert.Equal(t, "2.0", *got[0].Version)
		assert.Nil(t, got[1].Version)
	})

	t.Run("recent is newest first", func(t *testing.T) {
		got, err := repo.Recent(ctx, 3)
		require.NoError(t, err)
		assert.EqualValues(t, []int64{5, 4, 3}, ids(got))
	})

	t.Run("max serial", func(t *testing.T) {
		max, err := repo.MaxSerial(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 5, max)
	})
}

func TestJournalMaxSerialEmpty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	max, err := NewJournalRepository(db).MaxSerial(context.Background())
	require.NoError(t, err)
	assert.Zero(t, max)
}

func TestLastSerialNonDecreasing(t *testing.T) {
	f := testutil.NewFixture(t)
	p := f.Project("alpha")
	repo := NewProjectRepository(f.DB)

	prev := int64(0)
	for i, action := range []string{"new release", "add sdist file", "add Owner alice", "remove"} {
		f.Journal(p, nil, action)
		var got models.Project
		require.NoError(t, repo.GetByNormalizedName(context.Background(), "alpha", &got))
		assert.GreaterOrEqual(t, got.LastSerial, prev, "after entry %d", i)
		prev = got.LastSerial
	}
}

func TestRoles(t *testing.T) {
	f := testutil.NewFixture(t)
	p := f.Project("Foo-Bar")
	q := f.Project("bar")
	alice := f.User("alice")
	bob := f.User("bob")
	f.Role(p, bob, "Owner")
	f.Role(p, alice, "Maintainer")
	f.Role(p, alice, "Owner")
	f.Role(q, alice, "Owner")
	repo := NewRoleRepository(f.DB)
	ctx := context.Background()

	roles, err := repo.ListByProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []ProjectRole{
		{RoleName: "Owner", Username: "alice"},
		{RoleName: "Owner", Username: "bob"},
		{RoleName: "Maintainer", Username: "alice"},
	}, roles)

	held, err := repo.ListByUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []UserRole{
		{RoleName: "Owner", ProjectName: "bar"},
		{RoleName: "Owner", ProjectName: "Foo-Bar"},
		{RoleName: "Maintainer", ProjectName: "Foo-Bar"},
	}, held)

	none, err := repo.ListByUser(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, none)

	var u models.User
	require.NoError(t, NewUserRepository(f.DB).GetByUsername(ctx, "bob", &u))
	assert.Equal(t, bob.ID, u.ID)
	err = NewUserRepository(f.DB).GetByUsername(ctx, "carol", &u)
	assert.True(t, appErr.IsCode(err, appErr.CodeNotFound))
}

func ids(entries []models.JournalEntry) []int64 {
	out := make([]int64, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}
