package domain

import (
	"context"
	"fmt"
	"time"
)

// Application is an applicant's view of one booked cell. It is a projection
// computed from the grid at query time, never stored on its own, so deleting
// an interview invalidates its applications by construction.
type Application struct {
	ID            string            `json:"id"`
	InterviewID   string            `json:"interview_id"`
	InterviewName string            `json:"interview_name"`
	Interviewer   string            `json:"interviewer"`
	Date          string            `json:"date"`
	Slot          string            `json:"slot"`
	Status        ApplicationStatus `json:"status"`
}

// NewApplication projects a booked cell into an Application at the given
// instant. The ID is the composite cell address; the cell is the identity.
func NewApplication(b *BookedSlot, now time.Time) *Application {
	return &Application{
		ID:            fmt.Sprintf("%s:%s:%s", b.InterviewID, b.Date, b.Label),
		InterviewID:   b.InterviewID,
		InterviewName: b.InterviewName,
		Interviewer:   b.Interviewer,
		Date:          b.Date,
		Slot:          b.Label,
		Status:        ApplicationStatusAt(b.Date, b.Missed, now),
	}
}

// AvailableInterview is the applicant-facing listing entry: an interview
// with at least one free cell, exposing free cells only.
type AvailableInterview struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	FromDate      string              `json:"from_date"`
	ToDate        string              `json:"to_date"`
	Interviewer   string              `json:"interviewer"`
	FreeSlots     map[string][]string `json:"free_slots"`
	FreeSlotCount int                 `json:"free_slot_count"`
}

// ApplicantService defines the applicant-facing business logic, including
// the booking gateway.
type ApplicantService interface {
	ListAvailable(ctx context.Context) ([]*AvailableInterview, error)
	// BookSlot atomically claims a free cell. Exactly one of any set of
	// concurrent claims on the same cell succeeds; losers get ErrSlotTaken.
	BookSlot(ctx context.Context, interviewID, date, label, applicantID string) error
	MyApplications(ctx context.Context, applicantID string) ([]*Application, ApplicationStats, error)
	// GetApplication returns one of the applicant's own applications by its
	// composite ID, or ErrNotFound for unknown IDs and other people's bookings.
	GetApplication(ctx context.Context, applicantID, applicationID string) (*Application, error)
}
