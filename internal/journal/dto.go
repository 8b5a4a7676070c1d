// internal/journal/dto.go
package journal

import (
	"time"

	"github.com/google/uuid"
)

// DTOs for API requests

type CreateDateRequest struct {
	ContactID        *uuid.UUID `json:"contactId"`
	ContactName      string     `json:"contactName" validate:"omitempty,max=100"`
	DateTime         time.Time  `json:"dateTime" validate:"required"`
	Location         string     `json:"location" validate:"max=255"`
	Notes            string     `json:"notes" validate:"max=5000"`
	Activities       []string   `json:"activities" validate:"max=20,dive,required,max=50"`
	RedFlags         []string   `json:"redFlags" validate:"max=20,dive,required,max=100"`
	Rating           *int       `json:"rating" validate:"omitempty,min=1,max=10"`
	Status           string     `json:"status" validate:"omitempty,oneof=upcoming completed cancelled"`
	IsNewNumber      bool       `json:"isNewNumber"`
	FollowUpReminder *time.Time `json:"followUpReminder"`
}

// UpdateDateRequest is a partial update; nil fields are left unchanged.
type UpdateDateRequest struct {
	DateTime         *time.Time `json:"dateTime"`
	Location         *string    `json:"location" validate:"omitempty,max=255"`
	Notes            *string    `json:"notes" validate:"omitempty,max=5000"`
	Activities       []string   `json:"activities" validate:"omitempty,max=20,dive,required,max=50"`
	RedFlags         []string   `json:"redFlags" validate:"omitempty,max=20,dive,required,max=100"`
	Rating           *int       `json:"rating" validate:"omitempty,min=1,max=10"`
	Status           *string    `json:"status" validate:"omitempty,oneof=upcoming completed cancelled"`
	IsNewNumber      *bool      `json:"isNewNumber"`
	FollowUpReminder *time.Time `json:"followUpReminder"`
}

// DateFilter narrows a date listing. Zero values mean no filter.
type DateFilter struct {
	Status    string
	StartDate *time.Time
	EndDate   *time.Time
}

type CreateContactRequest struct {
	Name        string   `json:"name" validate:"required,max=100"`
	PhoneNumber string   `json:"phoneNumber" validate:"max=32"`
	Tags        []string `json:"tags" validate:"max=20,dive,required,max=50"`
	Notes       string   `json:"notes" validate:"max=5000"`
}

// UpdateContactRequest is a partial update; nil fields are left unchanged.
type UpdateContactRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=100"`
	PhoneNumber *string  `json:"phoneNumber" validate:"omitempty,max=32"`
	Status      *string  `json:"status" validate:"omitempty,oneof=new interested repeat ghosted"`
	Tags        []string `json:"tags" validate:"omitempty,max=20,dive,required,max=50"`
	Notes       *string  `json:"notes" validate:"omitempty,max=5000"`
}

// ContactFilter narrows a contact listing. Zero values mean no filter.
type ContactFilter struct {
	Status string
	Tag    string
	Search string
}
