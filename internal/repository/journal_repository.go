package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/pkgindex/legacy-api/internal/models"
	appErr "github.com/pkgindex/legacy-api/pkg/errors"
)

type JournalRepository interface {
	// Since returns entries submitted strictly after t, oldest first.
	Since(ctx context.Context, t time.Time, limit int) ([]models.JournalEntry, error)
	// SinceSerial returns entries with id greater than serial, oldest first.
	SinceSerial(ctx context.Context, serial int64, limit int) ([]models.JournalEntry, error)
	// Recent returns the newest entries, newest first.
	Recent(ctx context.Context, limit int) ([]models.JournalEntry, error)
	// MaxSerial returns the highest journal id, 0 for an empty journal.
	MaxSerial(ctx context.Context) (int64, error)
}

type journalRepository struct {
	db *gorm.DB
}

func NewJournalRepository(db *gorm.DB) JournalRepository {
	return &journalRepository{db: db}
}

func (r *journalRepository) Since(ctx context.Context, t time.Time, limit int) ([]models.JournalEntry, error) {
	var out []models.JournalEntry
	err := r.db.WithContext(ctx).
		Where("submitted_date > ?", t.UTC()).
		Order("id ASC").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, appErr.Unavailable(err, "list journal since timestamp failed")
	}
	return out, nil
}

func (r *journalRepository) SinceSerial(ctx context.Context, serial int64, limit int) ([]models.JournalEntry, error) {
	var out []models.JournalEntry
	err := r.db.WithContext(ctx).
		Where("id > ?", serial).
		Order("id ASC").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, appErr.Unavailable(err, "list journal since serial failed")
	}
	return out, nil
}

func (r *journalRepository) Recent(ctx context.Context, limit int) ([]models.JournalEntry, error) {
	var out []models.JournalEntry
	err := r.db.WithContext(ctx).
		Order("submitted_date DESC").
		Order("id DESC").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, appErr.Unavailable(err, "list recent journal failed")
	}
	return out, nil
}

func (r *journalRepository) MaxSerial(ctx context.Context) (int64, error) {
	var max int64
	err := r.db.WithContext(ctx).
		Model(&models.JournalEntry{}).
		Select("COALESCE(MAX(id), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, appErr.Unavailable(err, "get latest serial failed")
	}
	return max, nil
}
