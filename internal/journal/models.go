// internal/journal/models.go
// Logged dates and the contacts they were with

package journal

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/imadgeboyega/dating-insights-backend/internal/insights"
)

// Date is one logged date. Rating is nil until the date has been rated.
type Date struct {
	ID               uuid.UUID      `json:"id" db:"id"`
	UserID           uuid.UUID      `json:"-" db:"user_id"`
	ContactID        uuid.UUID      `json:"contactId" db:"contact_id"`
	ContactName      string         `json:"contactName" db:"contact_name"`
	DateTime         time.Time      `json:"dateTime" db:"date_time"`
	Location         string         `json:"location" db:"location"`
	Notes            string         `json:"notes" db:"notes"`
	Activities       pq.StringArray `json:"activities" db:"activities"`
	RedFlags         pq.StringArray `json:"redFlags" db:"red_flags"`
	Rating           *int           `json:"rating" db:"rating"`
	Status           string         `json:"status" db:"status"`
	DateNumber       int            `json:"dateNumber" db:"date_number"`
	IsNewNumber      bool           `json:"isNewNumber" db:"is_new_number"`
	FollowUpReminder *time.Time     `json:"followUpReminder,omitempty" db:"follow_up_reminder"`
	CreatedAt        time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time      `json:"updatedAt" db:"updated_at"`
}

// Insight converts the record to the engine's view.
func (d *Date) Insight() insights.Date {
	out := insights.Date{
		Time:        d.DateTime,
		Activities:  d.Activities,
		RedFlags:    d.RedFlags,
		DateNumber:  d.DateNumber,
		IsNewNumber: d.IsNewNumber,
		Status:      d.Status,
		CreatedAt:   d.CreatedAt,
	}
	if d.Rating != nil {
		out.Rating = *d.Rating
	}
	return out
}

// InsightDates converts a list of records, keeping order.
func InsightDates(dates []*Date) []insights.Date {
	out := make([]insights.Date, len(dates))
	for i, d := range dates {
		out[i] = d.Insight()
	}
	return out
}

// Contact is a person the user has dated or plans to date. AvgRating,
// DateCount and LastDateAt are derived from the contact's dates on read.
type Contact struct {
	ID          uuid.UUID      `json:"id" db:"id"`
	UserID      uuid.UUID      `json:"-" db:"user_id"`
	Name        string         `json:"name" db:"name"`
	PhoneNumber string         `json:"phoneNumber" db:"phone_number"`
	Status      string         `json:"status" db:"status"`
	Tags        pq.StringArray `json:"tags" db:"tags"`
	Notes       string         `json:"notes" db:"notes"`
	AvgRating   float64        `json:"avgRating" db:"avg_rating"`
	DateCount   int            `json:"dateCount" db:"date_count"`
	LastDateAt  *time.Time     `json:"lastDateAt,omitempty" db:"last_date_at"`
	CreatedAt   time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time      `json:"updatedAt" db:"updated_at"`
}

// ContactDetail is a contact together with its dates, newest first.
type ContactDetail struct {
	*Contact
	Dates []*Date `json:"dates"`
}
