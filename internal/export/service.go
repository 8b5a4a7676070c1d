// internal/export/service.go

package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/imadgeboyega/dating-insights-backend/internal/assessment"
	"github.com/imadgeboyega/dating-insights-backend/internal/journal"
)

var (
	ErrInvalidExportName = errors.New("invalid export name")
	ErrExportNotFound    = errors.New("export not found")
)

// FormatVersion is bumped whenever the document layout changes
const FormatVersion = 1

// JournalSource supplies a user's dates and contacts
type JournalSource interface {
	ListDates(ctx context.Context, userID uuid.UUID, filter journal.DateFilter) ([]*journal.Date, error)
	ListContacts(ctx context.Context, userID uuid.UUID, filter journal.ContactFilter) ([]*journal.Contact, error)
}

// AssessmentSource supplies a user's stored assessments
type AssessmentSource interface {
	Raw(ctx context.Context, userID uuid.UUID) ([]*assessment.Assessment, error)
}

// BurnoutReader reads the current burnout level
type BurnoutReader interface {
	BurnoutLevel(ctx context.Context, userID uuid.UUID) (int, error)
}

// Document is the exported journal
type Document struct {
	Version      int                      `json:"version"`
	ExportedAt   time.Time                `json:"exportedAt"`
	BurnoutLevel int                      `json:"burnoutLevel"`
	Dates        []*journal.Date          `json:"dates"`
	Contacts     []*journal.Contact       `json:"contacts"`
	Assessments  []*assessment.Assessment `json:"assessments"`
}

// Result describes a written export
type Result struct {
	URL        string    `json:"url"`
	Key        string    `json:"key"`
	ExportedAt time.Time `json:"exportedAt"`
	Dates      int       `json:"dates"`
	Contacts   int       `json:"contacts"`
}

// Service defines the export service interface
type Service interface {
	Export(ctx context.Context, userID uuid.UUID) (*Result, error)
	// Open reads back one of the user's exports by file name
	Open(ctx context.Context, userID uuid.UUID, name string) (io.ReadCloser, error)
	// Discard removes one of the user's exports by file name
	Discard(ctx context.Context, userID uuid.UUID, name string) error
}

type service struct {
	journal     JournalSource
	assessments AssessmentSource
	burnout     BurnoutReader
	store       Store
	now         func() time.Time
}

// NewService creates a new export service
func NewService(journal JournalSource, assessments AssessmentSource, burnout BurnoutReader, store Store) Service {
	return &service{
		journal:     journal,
		assessments: assessments,
		burnout:     burnout,
		store:       store,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Export snapshots the user's journal as JSON and stores it
func (s *service) Export(ctx context.Context, userID uuid.UUID) (*Result, error) {
	doc, err := s.collect(ctx, userID)
	if err != nil {
		return nil, err
	}

	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}

	key := fmt.Sprintf("%s/%s_%d.json", userID, uuid.New(), doc.ExportedAt.Unix())
	url, err := s.store.Put(ctx, key, "application/json", body)
	if err != nil {
		exportsFailed.Inc()
		return nil, err
	}

	RecordExport(len(body))
	return &Result{
		URL:        url,
		Key:        key,
		ExportedAt: doc.ExportedAt,
		Dates:      len(doc.Dates),
		Contacts:   len(doc.Contacts),
	}, nil
}

func (s *service) Open(ctx context.Context, userID uuid.UUID, name string) (io.ReadCloser, error) {
	key, err := userKey(userID, name)
	if err != nil {
		return nil, err
	}
	return s.store.Open(ctx, key)
}

func (s *service) Discard(ctx context.Context, userID uuid.UUID, name string) error {
	key, err := userKey(userID, name)
	if err != nil {
		return err
	}
	return s.store.Delete(ctx, key)
}

// userKey confines a client-supplied file name to the user's own prefix
func userKey(userID uuid.UUID, name string) (string, error) {
	if name == "" || path.Base(name) != name || path.Ext(name) != ".json" {
		return "", ErrInvalidExportName
	}
	return path.Join(userID.String(), name), nil
}

func (s *service) collect(ctx context.Context, userID uuid.UUID) (*Document, error) {
	dates, err := s.journal.ListDates(ctx, userID, journal.DateFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load dates: %w", err)
	}
	contacts, err := s.journal.ListContacts(ctx, userID, journal.ContactFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load contacts: %w", err)
	}
	assessments, err := s.assessments.Raw(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load assessments: %w", err)
	}
	burnout, err := s.burnout.BurnoutLevel(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load burnout level: %w", err)
	}

	return &Document{
		Version:      FormatVersion,
		ExportedAt:   s.now(),
		BurnoutLevel: burnout,
		Dates:        dates,
		Contacts:     contacts,
		Assessments:  assessments,
	}, nil
}
