package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"interviewscheduler/internal/domain"
	"interviewscheduler/internal/metrics"
)

type applicantService struct {
	repo           domain.InterviewRepository
	mailer         domain.Mailer
	collector      metrics.Collector
	logger         *slog.Logger
	contextTimeout time.Duration
	now            func() time.Time
}

// NewApplicantService creates the applicant-facing service, including the
// booking gateway.
func NewApplicantService(
	repo domain.InterviewRepository,
	mailer domain.Mailer,
	collector metrics.Collector,
	logger *slog.Logger,
	timeout time.Duration,
) domain.ApplicantService {
	return &applicantService{
		repo:           repo,
		mailer:         mailer,
		collector:      collector,
		logger:         logger,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *applicantService) ListAvailable(ctx context.Context) ([]*domain.AvailableInterview, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	interviews, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list interviews: %w", err)
	}

	now := s.now()
	available := make([]*domain.AvailableInterview, 0)
	for _, iv := range interviews {
		// Closed interviews and fully booked ones are not bookable.
		if iv.StatusAt(now) == domain.InterviewCompleted || !iv.HasFreeSlots() {
			continue
		}
		stats := domain.ComputeSlotStats(iv.Slots)
		available = append(available, &domain.AvailableInterview{
			ID:            iv.ID,
			Name:          iv.Name,
			FromDate:      iv.FromDate,
			ToDate:        iv.ToDate,
			Interviewer:   iv.CreatedBy,
			FreeSlots:     iv.FreeSlots(),
			FreeSlotCount: stats.FreeSlots,
		})
	}
	return available, nil
}

// BookSlot is the one-shot claim on a cell. Preconditions are checked
// against a read, but the claim itself is decided by the store's atomic
// conditional update, so a race between two applicants always has exactly
// one winner regardless of what either of them read.
func (s *applicantService) BookSlot(ctx context.Context, interviewID, date, label, applicantID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if applicantID == "" {
		return fmt.Errorf("%w: applicant is required", domain.ErrInvalidInput)
	}
	s.collector.RecordBookingAttempt()

	iv, err := s.repo.GetByID(ctx, interviewID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get interview: %w", err)
	}
	if iv.StatusAt(s.now()) == domain.InterviewCompleted {
		return domain.ErrInterviewClosed
	}

	if err := s.repo.BookSlot(ctx, interviewID, date, label, applicantID); err != nil {
		switch {
		case errors.Is(err, domain.ErrSlotTaken):
			s.collector.RecordBookingConflict()
			return domain.ErrSlotTaken
		case errors.Is(err, domain.ErrNotFound):
			return domain.ErrNotFound
		default:
			return fmt.Errorf("book slot: %w", err)
		}
	}
	s.collector.RecordBookingWin()

	s.sendConfirmation(ctx, iv, date, label, applicantID)
	return nil
}

// sendConfirmation emails the applicant their booked time. Best-effort; the
// booking already committed.
func (s *applicantService) sendConfirmation(ctx context.Context, iv *domain.Interview, date, label, applicantID string) {
	subject := fmt.Sprintf("Booking confirmed: %s", iv.Name)
	body := fmt.Sprintf(
		"Your interview slot for %q is confirmed.\n\nDate: %s\nTime: %s\nInterviewer: %s\n",
		iv.Name, date, label, iv.CreatedBy,
	)
	if err := s.mailer.Send(ctx, applicantID, subject, body); err != nil {
		s.logger.Warn("confirmation email failed", "interview_id", iv.ID, "to", applicantID, "err", err)
	}
}

func (s *applicantService) MyApplications(ctx context.Context, applicantID string) ([]*domain.Application, domain.ApplicationStats, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	booked, err := s.repo.ListSlotsByApplicant(ctx, applicantID)
	if err != nil {
		return nil, domain.ApplicationStats{}, fmt.Errorf("list booked slots: %w", err)
	}

	now := s.now()
	apps := make([]*domain.Application, 0, len(booked))
	for _, b := range booked {
		apps = append(apps, domain.NewApplication(b, now))
	}
	return apps, domain.ComputeApplicationStats(apps), nil
}

// GetApplication projects the applicant's bookings and picks the one with the
// requested ID. Scanning the applicant's own bookings keeps other people's
// cells unreachable without a separate ownership check.
func (s *applicantService) GetApplication(ctx context.Context, applicantID, applicationID string) (*domain.Application, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	booked, err := s.repo.ListSlotsByApplicant(ctx, applicantID)
	if err != nil {
		return nil, fmt.Errorf("list booked slots: %w", err)
	}

	now := s.now()
	for _, b := range booked {
		if app := domain.NewApplication(b, now); app.ID == applicationID {
			return app, nil
		}
	}
	return nil, domain.ErrNotFound
}
