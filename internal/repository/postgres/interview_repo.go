package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"interviewscheduler/internal/domain"
)

type interviewRepository struct {
	DB *sql.DB
}

// NewInterviewRepository returns the Postgres-backed availability store.
func NewInterviewRepository(db *sql.DB) domain.InterviewRepository {
	return &interviewRepository{DB: db}
}

// Create inserts the interview, its sparse slot grid, and its candidate list
// in one transaction.
func (r *interviewRepository) Create(ctx context.Context, iv *domain.Interview) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO interviews (name, from_date, to_date, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	if err := tx.QueryRowContext(ctx, query, iv.Name, iv.FromDate, iv.ToDate, iv.CreatedBy, iv.CreatedAt).Scan(&iv.ID); err != nil {
		return fmt.Errorf("insert interview: %w", err)
	}

	slotQuery := `
		INSERT INTO interview_slots (interview_id, slot_date, slot_label)
		VALUES ($1, $2, $3)
	`
	for _, s := range iv.Slots {
		if _, err := tx.ExecContext(ctx, slotQuery, iv.ID, s.Date, s.Label); err != nil {
			return fmt.Errorf("insert slot %s %s: %w", s.Date, s.Label, err)
		}
	}

	candidateQuery := `
		INSERT INTO interview_candidates (interview_id, name, email)
		VALUES ($1, $2, $3)
		ON CONFLICT (interview_id, email) DO NOTHING
	`
	for _, c := range iv.Candidates {
		if _, err := tx.ExecContext(ctx, candidateQuery, iv.ID, c.Name, c.Email); err != nil {
			return fmt.Errorf("insert candidate %s: %w", c.Email, err)
		}
	}

	return tx.Commit()
}

func (r *interviewRepository) GetByID(ctx context.Context, id string) (*domain.Interview, error) {
	query := `
		SELECT id, name, from_date, to_date, created_by, created_at
		FROM interviews
		WHERE id = $1
	`
	iv := &domain.Interview{}
	var fromDate, toDate time.Time
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&iv.ID, &iv.Name, &fromDate, &toDate, &iv.CreatedBy, &iv.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	iv.FromDate = fromDate.Format(domain.DateLayout)
	iv.ToDate = toDate.Format(domain.DateLayout)

	if iv.Slots, err = r.loadSlots(ctx, id); err != nil {
		return nil, err
	}
	if iv.Candidates, err = r.loadCandidates(ctx, id); err != nil {
		return nil, err
	}
	return iv, nil
}

func (r *interviewRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Interview, error) {
	query := `
		SELECT id, name, from_date, to_date, created_by, created_at
		FROM interviews
		WHERE created_by = $1
		ORDER BY created_at DESC
	`
	return r.list(ctx, query, ownerID)
}

func (r *interviewRepository) ListAll(ctx context.Context) ([]*domain.Interview, error) {
	query := `
		SELECT id, name, from_date, to_date, created_by, created_at
		FROM interviews
		ORDER BY created_at DESC
	`
	return r.list(ctx, query)
}

// list runs an interview query, then loads each grid one by one. The N+1 is
// accepted: aggregates are recomputed per request at modest scale.
func (r *interviewRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Interview, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	interviews := make([]*domain.Interview, 0)
	for rows.Next() {
		iv := &domain.Interview{}
		var fromDate, toDate time.Time
		if err := rows.Scan(&iv.ID, &iv.Name, &fromDate, &toDate, &iv.CreatedBy, &iv.CreatedAt); err != nil {
			return nil, err
		}
		iv.FromDate = fromDate.Format(domain.DateLayout)
		iv.ToDate = toDate.Format(domain.DateLayout)
		interviews = append(interviews, iv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, iv := range interviews {
		if iv.Slots, err = r.loadSlots(ctx, iv.ID); err != nil {
			return nil, err
		}
	}
	return interviews, nil
}

func (r *interviewRepository) loadSlots(ctx context.Context, interviewID string) ([]domain.Slot, error) {
	query := `
		SELECT slot_date, slot_label, applicant_id, missed
		FROM interview_slots
		WHERE interview_id = $1
		ORDER BY slot_date, slot_label
	`
	rows, err := r.DB.QueryContext(ctx, query, interviewID)
	if err != nil {
		return nil, fmt.Errorf("load slots: %w", err)
	}
	defer rows.Close()

	slots := make([]domain.Slot, 0)
	for rows.Next() {
		var s domain.Slot
		var date time.Time
		var applicant sql.NullString
		if err := rows.Scan(&date, &s.Label, &applicant, &s.Missed); err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		s.Date = date.Format(domain.DateLayout)
		if applicant.Valid {
			s.Applicant = &applicant.String
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

func (r *interviewRepository) loadCandidates(ctx context.Context, interviewID string) ([]domain.Candidate, error) {
	query := `
		SELECT name, email
		FROM interview_candidates
		WHERE interview_id = $1
		ORDER BY email
	`
	rows, err := r.DB.QueryContext(ctx, query, interviewID)
	if err != nil {
		return nil, fmt.Errorf("load candidates: %w", err)
	}
	defer rows.Close()

	candidates := make([]domain.Candidate, 0)
	for rows.Next() {
		var c domain.Candidate
		if err := rows.Scan(&c.Name, &c.Email); err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

// Delete removes the interview. Slots and candidates cascade at the schema
// level; applications are projections, so nothing else needs cleanup.
func (r *interviewRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM interviews WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// BookSlot claims a free cell with a conditional update keyed on the cell
// still being unassigned. The database resolves concurrent claims: one
// winner, everyone else sees zero rows affected.
func (r *interviewRepository) BookSlot(ctx context.Context, interviewID, date, label, applicantID string) error {
	query := `
		UPDATE interview_slots
		SET applicant_id = $4, booked_at = now()
		WHERE interview_id = $1 AND slot_date = $2 AND slot_label = $3 AND applicant_id IS NULL
	`
	result, err := r.DB.ExecContext(ctx, query, interviewID, date, label, applicantID)
	if err != nil {
		return fmt.Errorf("book slot: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("book slot rows affected: %w", err)
	}
	if rows == 1 {
		return nil
	}

	// Zero rows: either the cell was never offered or someone else holds it.
	var applicant sql.NullString
	err = r.DB.QueryRowContext(ctx,
		`SELECT applicant_id FROM interview_slots WHERE interview_id = $1 AND slot_date = $2 AND slot_label = $3`,
		interviewID, date, label,
	).Scan(&applicant)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("inspect slot: %w", err)
	}
	return domain.ErrSlotTaken
}

// MarkSlotMissed sets the missed flag on a booked cell. The caller enforces
// that the cell's date has passed.
func (r *interviewRepository) MarkSlotMissed(ctx context.Context, interviewID, date, label string) error {
	query := `
		UPDATE interview_slots
		SET missed = TRUE
		WHERE interview_id = $1 AND slot_date = $2 AND slot_label = $3 AND applicant_id IS NOT NULL
	`
	result, err := r.DB.ExecContext(ctx, query, interviewID, date, label)
	if err != nil {
		return fmt.Errorf("mark slot missed: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark slot missed rows affected: %w", err)
	}
	if rows == 1 {
		return nil
	}

	var applicant sql.NullString
	err = r.DB.QueryRowContext(ctx,
		`SELECT applicant_id FROM interview_slots WHERE interview_id = $1 AND slot_date = $2 AND slot_label = $3`,
		interviewID, date, label,
	).Scan(&applicant)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("inspect slot: %w", err)
	}
	return domain.ErrSlotNotMarkable
}

func (r *interviewRepository) ListSlotsByApplicant(ctx context.Context, applicantID string) ([]*domain.BookedSlot, error) {
	query := `
		SELECT s.interview_id, i.name, i.created_by, s.slot_date, s.slot_label, s.missed
		FROM interview_slots s
		JOIN interviews i ON i.id = s.interview_id
		WHERE s.applicant_id = $1
		ORDER BY s.slot_date, s.slot_label
	`
	rows, err := r.DB.QueryContext(ctx, query, applicantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	booked := make([]*domain.BookedSlot, 0)
	for rows.Next() {
		b := &domain.BookedSlot{}
		var date time.Time
		if err := rows.Scan(&b.InterviewID, &b.InterviewName, &b.Interviewer, &date, &b.Label, &b.Missed); err != nil {
			return nil, err
		}
		b.Date = date.Format(domain.DateLayout)
		booked = append(booked, b)
	}
	return booked, rows.Err()
}
