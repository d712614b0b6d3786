package services

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/pkgindex/legacy-api/internal/models"
	"github.com/pkgindex/legacy-api/internal/repository"
	"github.com/pkgindex/legacy-api/internal/urls"
	"github.com/pkgindex/legacy-api/pkg/logger"
)

const (
	// MaxReplayEntries caps one replay window; callers page by the last
	// serial or timestamp they saw.
	MaxReplayEntries = 5000
	// RecentEntries is the size of the newest-first window.
	RecentEntries = 1000
)

// JournalReader windows the append-only journal. Replay windows are oldest
// first; the recent window is newest first.
type JournalReader interface {
	Since(ctx context.Context, since time.Time) ([]JournalEvent, error)
	SinceSerial(ctx context.Context, serial int64) ([]JournalEvent, error)
	Recent(ctx context.Context) ([]JournalEvent, error)
	Latest(ctx context.Context) (*LatestSerial, error)
}

// JournalEvent is one journal entry as rendered to clients.
type JournalEvent struct {
	Name      string  `json:"name"`
	Version   *string `json:"version"`
	Timestamp int64   `json:"timestamp"`
	Action    string  `json:"action"`
	Serial    int64   `json:"serial"`
}

// LatestSerial is the index watermark and the listing of projects at it.
type LatestSerial struct {
	LastSerial int64  `json:"last_serial"`
	ProjectURL string `json:"project_url"`
}

type journalReader struct {
	journal repository.JournalRepository
	serials SerialTracker
	urls    *urls.Builder
}

func NewJournalReader(journal repository.JournalRepository, serials SerialTracker, builder *urls.Builder) JournalReader {
	return &journalReader{journal: journal, serials: serials, urls: builder}
}

var _ JournalReader = (*journalReader)(nil)

func (s *journalReader) Since(ctx context.Context, since time.Time) ([]JournalEvent, error) {
	rows, err := s.journal.Since(ctx, since, MaxReplayEntries)
	if err != nil {
		return nil, err
	}
	logger.From(ctx).Debug("journal since timestamp", zap.Time("since", since), zap.Int("entries", len(rows)))
	return events(rows), nil
}

func (s *journalReader) SinceSerial(ctx context.Context, serial int64) ([]JournalEvent, error) {
	rows, err := s.journal.SinceSerial(ctx, serial, MaxReplayEntries)
	if err != nil {
		return nil, err
	}
	logger.From(ctx).Debug("journal since serial", zap.Int64("serial", serial), zap.Int("entries", len(rows)))
	return events(rows), nil
}

func (s *journalReader) Recent(ctx context.Context) ([]JournalEvent, error) {
	rows, err := s.journal.Recent(ctx, RecentEntries)
	if err != nil {
		return nil, err
	}
	return events(rows), nil
}

func (s *journalReader) Latest(ctx context.Context) (*LatestSerial, error) {
	serial, err := s.serials.IndexSerial(ctx)
	if err != nil {
		return nil, err
	}
	q := url.Values{"serial_since": {strconv.FormatInt(serial, 10)}}
	return &LatestSerial{
		LastSerial: serial,
		ProjectURL: s.urls.Route(urls.Projects, nil) + "?" + q.Encode(),
	}, nil
}

func events(rows []models.JournalEntry) []JournalEvent {
	out := make([]JournalEvent, 0, len(rows))
	for _, e := range rows {
		out = append(out, JournalEvent{
			Name:      e.Name,
			Version:   e.Version,
			Timestamp: e.SubmittedDate.UTC().Unix(),
			Action:    e.Action,
			Serial:    e.ID,
		})
	}
	return out
}
