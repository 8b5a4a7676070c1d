// internal/journal/service.go

package journal

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/imadgeboyega/dating-insights-backend/internal/insights"
)

var (
	ErrDateNotFound    = errors.New("date not found")
	ErrContactNotFound = errors.New("contact not found")
	ErrContactExists   = errors.New("contact with this name already exists")
	ErrContactHasDates = errors.New("cannot delete contact with associated dates")
	ErrContactRequired = errors.New("contact name or ID is required")
)

type Service interface {
	// Dates
	CreateDate(ctx context.Context, userID uuid.UUID, req *CreateDateRequest) (*Date, error)
	ListDates(ctx context.Context, userID uuid.UUID, filter DateFilter) ([]*Date, error)
	GetDate(ctx context.Context, userID, id uuid.UUID) (*Date, error)
	UpdateDate(ctx context.Context, userID, id uuid.UUID, req *UpdateDateRequest) (*Date, error)
	DeleteDate(ctx context.Context, userID, id uuid.UUID) error

	// History feeds the insight engine
	History(ctx context.Context, userID uuid.UUID) ([]insights.Date, error)
	CompletedHistory(ctx context.Context, userID uuid.UUID) ([]insights.Date, error)

	// Contacts
	CreateContact(ctx context.Context, userID uuid.UUID, req *CreateContactRequest) (*Contact, error)
	ListContacts(ctx context.Context, userID uuid.UUID, filter ContactFilter) ([]*Contact, error)
	GetContact(ctx context.Context, userID, id uuid.UUID) (*ContactDetail, error)
	UpdateContact(ctx context.Context, userID, id uuid.UUID, req *UpdateContactRequest) (*Contact, error)
	DeleteContact(ctx context.Context, userID, id uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// CreateDate logs a date. The contact is taken by id, or found or created by
// name. The date number, contact status and burnout bump are settled in the
// same transaction.
func (s *service) CreateDate(ctx context.Context, userID uuid.UUID, req *CreateDateRequest) (*Date, error) {
	name := strings.TrimSpace(req.ContactName)
	if req.ContactID == nil && name == "" {
		return nil, ErrContactRequired
	}

	status := req.Status
	if status == "" {
		status = insights.StatusUpcoming
	}

	date := &Date{
		ID:               uuid.New(),
		UserID:           userID,
		DateTime:         req.DateTime,
		Location:         req.Location,
		Notes:            req.Notes,
		Activities:       nonNil(req.Activities),
		RedFlags:         nonNil(req.RedFlags),
		Rating:           req.Rating,
		Status:           status,
		FollowUpReminder: req.FollowUpReminder,
	}

	var contactCreated, bumped bool
	err := s.repo.RunInTx(ctx, func(tx TxRepository) error {
		var (
			contact *Contact
			err     error
		)
		if req.ContactID != nil {
			contact, err = tx.LockContact(ctx, userID, *req.ContactID)
		} else {
			contact, contactCreated, err = tx.LockOrCreateContact(ctx, userID, name)
		}
		if err != nil {
			return err
		}

		prior, err := tx.CountContactDates(ctx, contact.ID)
		if err != nil {
			return err
		}

		date.ContactID = contact.ID
		date.ContactName = contact.Name
		date.DateNumber = prior + 1
		date.IsNewNumber = req.IsNewNumber || date.DateNumber == 1

		if err := tx.InsertDate(ctx, date); err != nil {
			return err
		}
		if !completedRated(date) {
			return nil
		}
		bumped, err = settleCompletion(ctx, tx, userID, contact.ID, contact.Status, date, true)
		return err
	})
	if err != nil {
		return nil, err
	}

	if contactCreated {
		RecordContactCreated()
	}
	if bumped {
		RecordBurnoutBump()
	}
	RecordDateLogged(date)
	return date, nil
}

// settleCompletion re-derives the contact status from the contact's most
// recent completed, rated date, which need not be the date just written. When
// bump is set and date is a completed low rating, burnout is incremented. It
// reports whether burnout was bumped.
func settleCompletion(ctx context.Context, tx TxRepository, userID, contactID uuid.UUID, current string, date *Date, bump bool) (bool, error) {
	latest, err := tx.LatestRatedDate(ctx, contactID)
	if err != nil {
		return false, err
	}
	if latest != nil {
		if next := insights.ContactStatus(current, latest.Insight()); next != current {
			if err := tx.SetContactStatus(ctx, contactID, next); err != nil {
				return false, err
			}
		}
	}

	if !bump || !completedRated(date) || *date.Rating >= insights.BurnoutBumpBelow {
		return false, nil
	}
	if err := tx.BumpBurnout(ctx, userID); err != nil {
		return false, err
	}
	return true, nil
}

func completedRated(date *Date) bool {
	return date.Status == insights.StatusCompleted && date.Rating != nil
}

func (s *service) ListDates(ctx context.Context, userID uuid.UUID, filter DateFilter) ([]*Date, error) {
	return s.repo.ListDates(ctx, userID, filter)
}

func (s *service) GetDate(ctx context.Context, userID, id uuid.UUID) (*Date, error) {
	return s.repo.GetDate(ctx, userID, id)
}

// UpdateDate applies a partial update. Any change to whether the date is
// completed and rated, or to its rating, recomputes the contact status;
// burnout is only bumped on the transition to completed.
func (s *service) UpdateDate(ctx context.Context, userID, id uuid.UUID, req *UpdateDateRequest) (*Date, error) {
	var (
		updated *Date
		bumped  bool
	)
	err := s.repo.RunInTx(ctx, func(tx TxRepository) error {
		date, err := tx.LockDate(ctx, userID, id)
		if err != nil {
			return err
		}

		contact, err := tx.LockContact(ctx, userID, date.ContactID)
		if err != nil {
			return err
		}

		wasCompleted := date.Status == insights.StatusCompleted
		wasSettled := completedRated(date)
		oldRating := date.Rating
		applyDateUpdate(date, req)

		if err := tx.UpdateDate(ctx, date); err != nil {
			return err
		}

		newlyCompleted := !wasCompleted && date.Status == insights.StatusCompleted
		if wasSettled != completedRated(date) || (wasSettled && !sameRating(oldRating, date.Rating)) {
			if bumped, err = settleCompletion(ctx, tx, userID, contact.ID, contact.Status, date, newlyCompleted); err != nil {
				return err
			}
		}

		updated = date
		return nil
	})
	if err != nil {
		return nil, err
	}
	if bumped {
		RecordBurnoutBump()
	}
	return updated, nil
}

func applyDateUpdate(date *Date, req *UpdateDateRequest) {
	if req.DateTime != nil {
		date.DateTime = *req.DateTime
	}
	if req.Location != nil {
		date.Location = *req.Location
	}
	if req.Notes != nil {
		date.Notes = *req.Notes
	}
	if req.Activities != nil {
		date.Activities = req.Activities
	}
	if req.RedFlags != nil {
		date.RedFlags = req.RedFlags
	}
	if req.Rating != nil {
		rating := *req.Rating
		date.Rating = &rating
	}
	if req.Status != nil {
		date.Status = *req.Status
	}
	if req.IsNewNumber != nil {
		date.IsNewNumber = *req.IsNewNumber
	}
	if req.FollowUpReminder != nil {
		date.FollowUpReminder = req.FollowUpReminder
	}
}

func sameRating(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (s *service) DeleteDate(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.DeleteDate(ctx, userID, id)
}

// History returns every date of the user, oldest first.
func (s *service) History(ctx context.Context, userID uuid.UUID) ([]insights.Date, error) {
	dates, err := s.repo.ListDates(ctx, userID, DateFilter{})
	if err != nil {
		return nil, err
	}
	return insights.SortedByTime(InsightDates(dates)), nil
}

// CompletedHistory returns the completed, rated dates, oldest first.
func (s *service) CompletedHistory(ctx context.Context, userID uuid.UUID) ([]insights.Date, error) {
	dates, err := s.repo.ListDates(ctx, userID, DateFilter{Status: insights.StatusCompleted})
	if err != nil {
		return nil, err
	}
	return insights.SortedByTime(insights.CompletedRated(InsightDates(dates))), nil
}

func (s *service) CreateContact(ctx context.Context, userID uuid.UUID, req *CreateContactRequest) (*Contact, error) {
	contact := &Contact{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        strings.TrimSpace(req.Name),
		PhoneNumber: req.PhoneNumber,
		Status:      insights.ContactNew,
		Tags:        nonNil(req.Tags),
		Notes:       req.Notes,
	}
	if contact.Name == "" {
		return nil, ErrContactRequired
	}

	if err := s.repo.CreateContact(ctx, contact); err != nil {
		return nil, err
	}
	RecordContactCreated()
	return contact, nil
}

func (s *service) ListContacts(ctx context.Context, userID uuid.UUID, filter ContactFilter) ([]*Contact, error) {
	return s.repo.ListContacts(ctx, userID, filter)
}

// GetContact returns the contact with its dates. The average is recomputed
// from those dates so both views agree.
func (s *service) GetContact(ctx context.Context, userID, id uuid.UUID) (*ContactDetail, error) {
	contact, err := s.repo.GetContact(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	dates, err := s.repo.ListContactDates(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	contact.AvgRating = insights.ContactAverage(InsightDates(dates))
	contact.DateCount = len(dates)

	return &ContactDetail{Contact: contact, Dates: dates}, nil
}

func (s *service) UpdateContact(ctx context.Context, userID, id uuid.UUID, req *UpdateContactRequest) (*Contact, error) {
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrContactRequired
		}
		req.Name = &name
	}

	if err := s.repo.UpdateContact(ctx, userID, id, req); err != nil {
		return nil, err
	}
	return s.repo.GetContact(ctx, userID, id)
}

func (s *service) DeleteContact(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.DeleteContact(ctx, userID, id)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
