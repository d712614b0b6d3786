package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	appErr "github.com/pkgindex/legacy-api/pkg/errors"
)

// BaseRepository defines the scoped count shared by single-model repositories.
type BaseRepository[T any] interface {
	Count(ctx context.Context, scopes ...func(*gorm.DB) *gorm.DB) (int64, error)
}

type baseRepository[T any] struct {
	db   *gorm.DB
	noun string
}

func NewBaseRepository[T any](db *gorm.DB, noun string) BaseRepository[T] {
	return &baseRepository[T]{db: db, noun: noun}
}

func (r *baseRepository[T]) Count(ctx context.Context, scopes ...func(*gorm.DB) *gorm.DB) (int64, error) {
	var t T
	var n int64
	if err := r.db.WithContext(ctx).Model(&t).Scopes(scopes...).Count(&n).Error; err != nil {
		return 0, appErr.Unavailable(err, "count "+r.noun+" failed")
	}
	return n, nil
}

// byteOrder orders column by byte value so database pages agree with
// ordering.CompareProjects. PostgreSQL otherwise sorts by the database's
// collation, which may skip punctuation such as '-'.
func byteOrder(db *gorm.DB, column string) string {
	if db.Dialector.Name() == "postgres" {
		return column + ` COLLATE "C"`
	}
	return column
}

// translate maps gorm's not-found sentinel to a NotFound error and
// everything else to StoreUnavailable.
func translate(err error, notFound, failed string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return appErr.New(appErr.CodeNotFound, notFound)
	}
	return appErr.Unavailable(err, failed)
}
