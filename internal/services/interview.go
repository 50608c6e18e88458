package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"interviewscheduler/internal/domain"
	"interviewscheduler/internal/metrics"
)

type interviewService struct {
	repo           domain.InterviewRepository
	parser         domain.CandidateParser
	mailer         domain.Mailer
	collector      metrics.Collector
	logger         *slog.Logger
	contextTimeout time.Duration
	now            func() time.Time
}

// NewInterviewService creates the interviewer-facing service.
func NewInterviewService(
	repo domain.InterviewRepository,
	parser domain.CandidateParser,
	mailer domain.Mailer,
	collector metrics.Collector,
	logger *slog.Logger,
	timeout time.Duration,
) domain.InterviewService {
	return &interviewService{
		repo:           repo,
		parser:         parser,
		mailer:         mailer,
		collector:      collector,
		logger:         logger,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *interviewService) ImportCandidates(ctx context.Context, r io.Reader, filename string) ([]domain.Candidate, error) {
	candidates, err := s.parser.Parse(r, filename)
	if err != nil {
		s.collector.RecordImportRejected()
		if errors.Is(err, domain.ErrBadFormat) || errors.Is(err, domain.ErrEmptyImport) || errors.Is(err, domain.ErrImportTooLarge) {
			return nil, err
		}
		return nil, fmt.Errorf("parse candidates: %w", err)
	}
	s.collector.RecordCandidatesImported(len(candidates))
	return candidates, nil
}

func (s *interviewService) Create(ctx context.Context, ownerID, name, fromDate, toDate string, selection domain.SlotSelection, candidates []domain.Candidate) (*domain.Interview, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if ownerID == "" {
		return nil, fmt.Errorf("%w: owner is required", domain.ErrInvalidInput)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}

	slots, err := domain.BuildSlotGrid(fromDate, toDate, selection)
	if err != nil {
		return nil, err
	}
	// The grid builder tolerates an empty selection; an interview without a
	// single offered cell does not.
	if len(slots) == 0 {
		return nil, fmt.Errorf("%w: at least one slot must be selected", domain.ErrInvalidInput)
	}
	for _, c := range candidates {
		if !c.Valid() {
			return nil, fmt.Errorf("%w: candidate %q must have a name and a valid email", domain.ErrInvalidInput, c.Email)
		}
	}

	iv := domain.NewInterview(name, fromDate, toDate, ownerID, slots, candidates, s.now())
	if err := s.repo.Create(ctx, iv); err != nil {
		return nil, fmt.Errorf("create interview: %w", err)
	}
	s.collector.RecordInterviewCreated()

	s.sendInvitations(ctx, iv)
	return iv, nil
}

// sendInvitations notifies invited candidates. Failures are logged and never
// fail the creation that triggered them.
func (s *interviewService) sendInvitations(ctx context.Context, iv *domain.Interview) {
	for _, c := range iv.Candidates {
		subject := fmt.Sprintf("Interview invitation: %s", iv.Name)
		body := fmt.Sprintf(
			"Hello %s,\n\nYou have been invited to book a slot for %q between %s and %s.\nLog in to pick a time that works for you.\n",
			c.Name, iv.Name, iv.FromDate, iv.ToDate,
		)
		if err := s.mailer.Send(ctx, c.Email, subject, body); err != nil {
			s.logger.Warn("invitation email failed", "interview_id", iv.ID, "to", c.Email, "err", err)
		}
	}
}

func (s *interviewService) ListMine(ctx context.Context, ownerID string) ([]*domain.InterviewWithStats, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	interviews, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list interviews: %w", err)
	}

	now := s.now()
	result := make([]*domain.InterviewWithStats, 0, len(interviews))
	for _, iv := range interviews {
		result = append(result, &domain.InterviewWithStats{
			Interview: iv,
			Status:    iv.StatusAt(now),
			Stats:     domain.ComputeSlotStats(iv.Slots),
		})
	}
	return result, nil
}

func (s *interviewService) GetByID(ctx context.Context, id, requesterID string) (*domain.InterviewWithStats, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	iv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get interview: %w", err)
	}
	if iv.CreatedBy != requesterID {
		return nil, domain.ErrForbidden
	}
	return &domain.InterviewWithStats{
		Interview: iv,
		Status:    iv.StatusAt(s.now()),
		Stats:     domain.ComputeSlotStats(iv.Slots),
	}, nil
}

func (s *interviewService) Delete(ctx context.Context, id, requesterID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	iv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get interview: %w", err)
	}
	if iv.CreatedBy != requesterID {
		return domain.ErrForbidden
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete interview: %w", err)
	}
	return nil
}

func (s *interviewService) MarkMissed(ctx context.Context, id, requesterID, date, label string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	iv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get interview: %w", err)
	}
	if iv.CreatedBy != requesterID {
		return domain.ErrForbidden
	}

	// A cell that was never offered is absent, whatever its date says.
	offered := false
	for _, cell := range iv.Slots {
		if cell.Date == date && cell.Label == label {
			offered = true
			break
		}
	}
	if !offered {
		return domain.ErrNotFound
	}

	// Only a booking whose date has passed can be missed.
	today := s.now().Format(domain.DateLayout)
	if date >= today {
		return domain.ErrSlotNotMarkable
	}
	if err := s.repo.MarkSlotMissed(ctx, id, date, label); err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrSlotNotMarkable) {
			return err
		}
		return fmt.Errorf("mark slot missed: %w", err)
	}
	return nil
}

func (s *interviewService) Dashboard(ctx context.Context, ownerID string) (*domain.DashboardSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	interviews, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list interviews: %w", err)
	}
	return domain.BuildDashboard(interviews, s.now()), nil
}
