package domain

import (
	"context"
	"io"
	"regexp"
	"sort"
	"time"
)

// DateLayout is the calendar-date format used throughout the domain.
// ISO dates in this layout compare correctly as plain strings.
const DateLayout = "2006-01-02"

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidEmail reports whether s is a syntactically plausible email address.
func ValidEmail(s string) bool { return emailRegex.MatchString(s) }

// Candidate is one invited {name, email} pair. The candidate list is
// immutable after interview creation; an invitation is not a booking.
type Candidate struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Valid reports whether the candidate has a name and a plausible email.
func (c Candidate) Valid() bool {
	return c.Name != "" && ValidEmail(c.Email)
}

// Slot is one addressable (date, label) cell of interviewer availability.
// Applicant nil means the cell is free. Missed is set only by an explicit
// interviewer transition, never derived from dates.
type Slot struct {
	Date      string  `json:"date"`
	Label     string  `json:"label"`
	Applicant *string `json:"applicant"`
	Missed    bool    `json:"missed,omitempty"`
}

// Free reports whether the cell has no assignment.
func (s Slot) Free() bool { return s.Applicant == nil }

// Interview represents one published availability window. Slots is the
// sparse grid: only cells explicitly selected at creation are present, in
// (date, label) order.
type Interview struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	FromDate   string      `json:"from_date"`
	ToDate     string      `json:"to_date"`
	Slots      []Slot      `json:"slots"`
	Candidates []Candidate `json:"candidates,omitempty"`
	CreatedBy  string      `json:"created_by"`
	CreatedAt  time.Time   `json:"created_at"`
}

// NewInterview returns a new Interview. ID is set by the repository on create.
func NewInterview(name, fromDate, toDate, createdBy string, slots []Slot, candidates []Candidate, createdAt time.Time) *Interview {
	return &Interview{
		Name:       name,
		FromDate:   fromDate,
		ToDate:     toDate,
		Slots:      slots,
		Candidates: candidates,
		CreatedBy:  createdBy,
		CreatedAt:  createdAt,
	}
}

// StatusAt derives the interview status at the given instant.
func (iv *Interview) StatusAt(now time.Time) InterviewStatus {
	return InterviewStatusAt(iv.FromDate, iv.ToDate, now)
}

// Grid returns the date -> label -> assignment view of the slot list.
// Absent keys mean "not offered", not "offered and free".
func (iv *Interview) Grid() map[string]map[string]*string {
	grid := make(map[string]map[string]*string)
	for _, s := range iv.Slots {
		day, ok := grid[s.Date]
		if !ok {
			day = make(map[string]*string)
			grid[s.Date] = day
		}
		day[s.Label] = s.Applicant
	}
	return grid
}

// FreeSlots returns date -> sorted free labels, omitting days with no free
// cell.
func (iv *Interview) FreeSlots() map[string][]string {
	free := make(map[string][]string)
	for _, s := range iv.Slots {
		if s.Free() {
			free[s.Date] = append(free[s.Date], s.Label)
		}
	}
	for _, labels := range free {
		sort.Strings(labels)
	}
	return free
}

// HasFreeSlots reports whether at least one cell is unassigned.
func (iv *Interview) HasFreeSlots() bool {
	for _, s := range iv.Slots {
		if s.Free() {
			return true
		}
	}
	return false
}

// SlotSelection is the per-day choice of slot labels made at creation time.
// It is sparse: days and labels not listed are simply not offered.
type SlotSelection map[string][]string

// BookedSlot is one cell assigned to an applicant, joined with the fields
// of its interview that applicant-facing views denormalize.
type BookedSlot struct {
	InterviewID   string
	InterviewName string
	Interviewer   string
	Date          string
	Label         string
	Missed        bool
}

// InterviewRepository defines storage for interviews and their slot cells.
// BookSlot must be atomic: of N concurrent calls for the same free cell,
// exactly one succeeds and the rest return ErrSlotTaken.
type InterviewRepository interface {
	Create(ctx context.Context, iv *Interview) error
	GetByID(ctx context.Context, id string) (*Interview, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*Interview, error)
	ListAll(ctx context.Context) ([]*Interview, error)
	Delete(ctx context.Context, id string) error
	BookSlot(ctx context.Context, interviewID, date, label, applicantID string) error
	MarkSlotMissed(ctx context.Context, interviewID, date, label string) error
	ListSlotsByApplicant(ctx context.Context, applicantID string) ([]*BookedSlot, error)
}

// CandidateParser turns an uploaded spreadsheet into validated candidates.
type CandidateParser interface {
	Parse(r io.Reader, filename string) ([]Candidate, error)
}

// InterviewWithStats bundles an interview with its derived status and
// freshly computed slot counts for interviewer-facing listings.
type InterviewWithStats struct {
	Interview *Interview      `json:"interview"`
	Status    InterviewStatus `json:"status"`
	Stats     SlotStats       `json:"stats"`
}

// InterviewService defines the interviewer-facing business logic.
type InterviewService interface {
	ImportCandidates(ctx context.Context, r io.Reader, filename string) ([]Candidate, error)
	Create(ctx context.Context, ownerID, name, fromDate, toDate string, selection SlotSelection, candidates []Candidate) (*Interview, error)
	ListMine(ctx context.Context, ownerID string) ([]*InterviewWithStats, error)
	GetByID(ctx context.Context, id, requesterID string) (*InterviewWithStats, error)
	// Delete removes the interview. All Application projections derived from
	// it disappear with it; there is no separate cascade bookkeeping.
	Delete(ctx context.Context, id, requesterID string) error
	// MarkMissed is the explicit transition that moves a past booked slot to
	// the missed application status.
	MarkMissed(ctx context.Context, id, requesterID, date, label string) error
	Dashboard(ctx context.Context, ownerID string) (*DashboardSummary, error)
}
