package services

import (
	"context"
	"fmt"
	"io"
	"sync"

	"interviewscheduler/internal/domain"
)

// fakeInterviewRepo is an in-memory InterviewRepository for tests. BookSlot
// performs the same check-and-set the real store does, under a mutex, so
// concurrency properties can be exercised without a database.
type fakeInterviewRepo struct {
	mu     sync.Mutex
	byID   map[string]*domain.Interview
	nextID int
	err    error // if set, every method returns this error
}

func newFakeInterviewRepo() *fakeInterviewRepo {
	return &fakeInterviewRepo{
		byID:   make(map[string]*domain.Interview),
		nextID: 1,
	}
}

func (f *fakeInterviewRepo) Create(ctx context.Context, iv *domain.Interview) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	iv.ID = fmt.Sprintf("iv-%d", f.nextID)
	f.nextID++
	f.byID[iv.ID] = iv
	return nil
}

func (f *fakeInterviewRepo) GetByID(ctx context.Context, id string) (*domain.Interview, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if iv, ok := f.byID[id]; ok {
		return iv, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeInterviewRepo) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Interview, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*domain.Interview, 0)
	for _, iv := range f.byID {
		if iv.CreatedBy == ownerID {
			out = append(out, iv)
		}
	}
	return out, nil
}

func (f *fakeInterviewRepo) ListAll(ctx context.Context) ([]*domain.Interview, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*domain.Interview, 0, len(f.byID))
	for _, iv := range f.byID {
		out = append(out, iv)
	}
	return out, nil
}

func (f *fakeInterviewRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeInterviewRepo) BookSlot(ctx context.Context, interviewID, date, label, applicantID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	iv, ok := f.byID[interviewID]
	if !ok {
		return domain.ErrNotFound
	}
	for i := range iv.Slots {
		s := &iv.Slots[i]
		if s.Date != date || s.Label != label {
			continue
		}
		if s.Applicant != nil {
			return domain.ErrSlotTaken
		}
		applicant := applicantID
		s.Applicant = &applicant
		return nil
	}
	return domain.ErrNotFound
}

func (f *fakeInterviewRepo) MarkSlotMissed(ctx context.Context, interviewID, date, label string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	iv, ok := f.byID[interviewID]
	if !ok {
		return domain.ErrNotFound
	}
	for i := range iv.Slots {
		s := &iv.Slots[i]
		if s.Date != date || s.Label != label {
			continue
		}
		if s.Applicant == nil {
			return domain.ErrSlotNotMarkable
		}
		s.Missed = true
		return nil
	}
	return domain.ErrNotFound
}

func (f *fakeInterviewRepo) ListSlotsByApplicant(ctx context.Context, applicantID string) ([]*domain.BookedSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*domain.BookedSlot, 0)
	for _, iv := range f.byID {
		for _, s := range iv.Slots {
			if s.Applicant != nil && *s.Applicant == applicantID {
				out = append(out, &domain.BookedSlot{
					InterviewID:   iv.ID,
					InterviewName: iv.Name,
					Interviewer:   iv.CreatedBy,
					Date:          s.Date,
					Label:         s.Label,
					Missed:        s.Missed,
				})
			}
		}
	}
	return out, nil
}

// fakeMailer records sends.
type fakeMailer struct {
	mu   sync.Mutex
	sent []string // "to|subject"
	err  error
}

func (f *fakeMailer) Send(ctx context.Context, to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, to+"|"+subject)
	return nil
}

// fakeParser returns canned candidates or a canned error.
type fakeParser struct {
	candidates []domain.Candidate
	err        error
}

func (f *fakeParser) Parse(r io.Reader, filename string) ([]domain.Candidate, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.candidates, nil
}
