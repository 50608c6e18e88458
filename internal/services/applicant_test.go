package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interviewscheduler/internal/domain"
	"interviewscheduler/internal/metrics"
)

func newTestApplicantService(repo domain.InterviewRepository, mailer domain.Mailer) domain.ApplicantService {
	return NewApplicantService(repo, mailer, metrics.Nop{}, testLogger(), 5*time.Second)
}

// seedInterview creates an interview owned by hr@corp.com directly in the
// fake repo.
func seedInterview(t *testing.T, repo *fakeInterviewRepo, name, fromDate, toDate string, selection domain.SlotSelection) *domain.Interview {
	t.Helper()
	slots, err := domain.BuildSlotGrid(fromDate, toDate, selection)
	require.NoError(t, err)
	iv := domain.NewInterview(name, fromDate, toDate, "hr@corp.com", slots, nil, time.Now())
	require.NoError(t, repo.Create(context.Background(), iv))
	return iv
}

func TestApplicantService_ListAvailable(t *testing.T) {
	ctx := context.Background()
	repo := newFakeInterviewRepo()
	svc := newTestApplicantService(repo, &fakeMailer{})
	svc.(*applicantService).now = func() time.Time {
		return time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	}

	open := seedInterview(t, repo, "Backend Eng", "2024-06-10", "2024-06-12", domain.SlotSelection{
		"2024-06-11": {"09:00", "10:00"},
	})
	full := seedInterview(t, repo, "Frontend Eng", "2024-06-10", "2024-06-12", domain.SlotSelection{
		"2024-06-11": {"09:00"},
	})
	require.NoError(t, repo.BookSlot(ctx, full.ID, "2024-06-11", "09:00", "alice@x.com"))
	seedInterview(t, repo, "SRE", "2024-06-01", "2024-06-02", domain.SlotSelection{
		"2024-06-01": {"09:00"},
	})

	available, err := svc.ListAvailable(ctx)
	require.NoError(t, err)

	// Fully booked and completed interviews are filtered out.
	require.Len(t, available, 1)
	assert.Equal(t, open.ID, available[0].ID)
	assert.Equal(t, "hr@corp.com", available[0].Interviewer)
	assert.Equal(t, 2, available[0].FreeSlotCount)
	assert.Equal(t, map[string][]string{"2024-06-11": {"09:00", "10:00"}}, available[0].FreeSlots)
}

func TestApplicantService_BookSlot(t *testing.T) {
	ctx := context.Background()
	repo := newFakeInterviewRepo()
	mailer := &fakeMailer{}
	svc := newTestApplicantService(repo, mailer)
	svc.(*applicantService).now = func() time.Time {
		return time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	}

	iv := seedInterview(t, repo, "Backend Eng", "2024-06-01", "2024-06-01", domain.SlotSelection{
		"2024-06-01": {"09:00", "10:00"},
	})

	require.ErrorIs(t, svc.BookSlot(ctx, "iv-missing", "2024-06-01", "09:00", "alice@x.com"), domain.ErrNotFound)
	// A cell that was never offered is absent, not bookable.
	require.ErrorIs(t, svc.BookSlot(ctx, iv.ID, "2024-06-01", "11:00", "alice@x.com"), domain.ErrNotFound)

	require.NoError(t, svc.BookSlot(ctx, iv.ID, "2024-06-01", "09:00", "alice@x.com"))
	assert.Len(t, mailer.sent, 1)

	// The loser of the race sees a normal, typed outcome.
	require.ErrorIs(t, svc.BookSlot(ctx, iv.ID, "2024-06-01", "09:00", "bob@x.com"), domain.ErrSlotTaken)

	got, err := repo.GetByID(ctx, iv.ID)
	require.NoError(t, err)
	stats := domain.ComputeSlotStats(got.Slots)
	assert.Equal(t, 2, stats.TotalSlots)
	assert.Equal(t, 1, stats.BookedSlots)
	assert.Equal(t, 0.5, stats.BookingRate)
}

func TestApplicantService_BookSlot_ClosedInterview(t *testing.T) {
	ctx := context.Background()
	repo := newFakeInterviewRepo()
	svc := newTestApplicantService(repo, &fakeMailer{})
	svc.(*applicantService).now = func() time.Time {
		return time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)
	}

	iv := seedInterview(t, repo, "Backend Eng", "2024-06-01", "2024-06-01", domain.SlotSelection{
		"2024-06-01": {"09:00"},
	})
	require.ErrorIs(t, svc.BookSlot(ctx, iv.ID, "2024-06-01", "09:00", "alice@x.com"), domain.ErrInterviewClosed)
}

// Under N concurrent attempts on the same cell, exactly one wins and the
// cell ends up assigned to that winner.
func TestApplicantService_BookSlot_SingleWinner(t *testing.T) {
	ctx := context.Background()
	repo := newFakeInterviewRepo()
	svc := newTestApplicantService(repo, &fakeMailer{})
	svc.(*applicantService).now = func() time.Time {
		return time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	}

	iv := seedInterview(t, repo, "Backend Eng", "2024-06-01", "2024-06-01", domain.SlotSelection{
		"2024-06-01": {"09:00"},
	})

	const n = 50
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = svc.BookSlot(ctx, iv.ID, "2024-06-01", "09:00", fmt.Sprintf("applicant-%d@x.com", i))
		}(i)
	}
	wg.Wait()

	winners := 0
	winner := -1
	for i, err := range errs {
		if err == nil {
			winners++
			winner = i
		} else {
			require.ErrorIs(t, err, domain.ErrSlotTaken)
		}
	}
	require.Equal(t, 1, winners)

	got, err := repo.GetByID(ctx, iv.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Slots[0].Applicant)
	assert.Equal(t, fmt.Sprintf("applicant-%d@x.com", winner), *got.Slots[0].Applicant)
}

func TestApplicantService_MyApplications(t *testing.T) {
	ctx := context.Background()
	repo := newFakeInterviewRepo()
	svc := newTestApplicantService(repo, &fakeMailer{})
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	svc.(*applicantService).now = func() time.Time { return now }

	iv := seedInterview(t, repo, "Backend Eng", "2024-06-01", "2024-06-12", domain.SlotSelection{
		"2024-06-05": {"09:00"},
		"2024-06-11": {"10:00"},
	})
	require.NoError(t, repo.BookSlot(ctx, iv.ID, "2024-06-05", "09:00", "alice@x.com"))
	require.NoError(t, repo.BookSlot(ctx, iv.ID, "2024-06-11", "10:00", "alice@x.com"))
	require.NoError(t, repo.MarkSlotMissed(ctx, iv.ID, "2024-06-05", "09:00"))

	apps, stats, err := svc.MyApplications(ctx, "alice@x.com")
	require.NoError(t, err)
	require.Len(t, apps, 2)
	assert.Equal(t, domain.ApplicationMissed, apps[0].Status)
	assert.Equal(t, domain.ApplicationUpcoming, apps[1].Status)
	assert.Equal(t, "Backend Eng", apps[0].InterviewName)
	assert.Equal(t, domain.ApplicationStats{Total: 2, Upcoming: 1, Missed: 1}, stats)

	// Applications are projections: deleting the interview removes them.
	require.NoError(t, repo.Delete(ctx, iv.ID))
	apps, stats, err = svc.MyApplications(ctx, "alice@x.com")
	require.NoError(t, err)
	assert.Empty(t, apps)
	assert.Equal(t, domain.ApplicationStats{}, stats)
}

func TestApplicantService_GetApplication(t *testing.T) {
	ctx := context.Background()
	repo := newFakeInterviewRepo()
	svc := newTestApplicantService(repo, &fakeMailer{})
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	svc.(*applicantService).now = func() time.Time { return now }

	iv := seedInterview(t, repo, "Backend Eng", "2024-06-01", "2024-06-12", domain.SlotSelection{
		"2024-06-11": {"10:00"},
	})
	require.NoError(t, repo.BookSlot(ctx, iv.ID, "2024-06-11", "10:00", "alice@x.com"))

	apps, _, err := svc.MyApplications(ctx, "alice@x.com")
	require.NoError(t, err)
	require.Len(t, apps, 1)

	got, err := svc.GetApplication(ctx, "alice@x.com", apps[0].ID)
	require.NoError(t, err)
	assert.Equal(t, apps[0], got)
	assert.Equal(t, domain.ApplicationUpcoming, got.Status)

	_, err = svc.GetApplication(ctx, "alice@x.com", "iv-999:2024-06-11:10:00")
	require.ErrorIs(t, err, domain.ErrNotFound)

	// Another applicant cannot read alice's application.
	_, err = svc.GetApplication(ctx, "bob@x.com", apps[0].ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

// The end-to-end scenario: two slots, one booked, loser rejected, rate 0.5.
func TestBookingScenario_BackendEng(t *testing.T) {
	ctx := context.Background()
	repo := newFakeInterviewRepo()
	ivSvc := newTestInterviewService(repo, &fakeParser{}, &fakeMailer{})
	appSvc := newTestApplicantService(repo, &fakeMailer{})
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	ivSvc.(*interviewService).now = func() time.Time { return now }
	appSvc.(*applicantService).now = func() time.Time { return now }

	iv, err := ivSvc.Create(ctx, "hr@corp.com", "Backend Eng", "2024-06-01", "2024-06-01",
		domain.SlotSelection{"2024-06-01": {"09:00", "10:00"}},
		[]domain.Candidate{{Name: "Alice", Email: "alice@x.com"}, {Name: "Bob", Email: "bob@x.com"}})
	require.NoError(t, err)

	require.NoError(t, appSvc.BookSlot(ctx, iv.ID, "2024-06-01", "09:00", "alice@x.com"))
	require.ErrorIs(t, appSvc.BookSlot(ctx, iv.ID, "2024-06-01", "09:00", "bob@x.com"), domain.ErrSlotTaken)

	mine, err := ivSvc.ListMine(ctx, "hr@corp.com")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, 2, mine[0].Stats.TotalSlots)
	assert.Equal(t, 1, mine[0].Stats.BookedSlots)
	assert.Equal(t, 0.5, mine[0].Stats.BookingRate)

	apps, _, err := appSvc.MyApplications(ctx, "alice@x.com")
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, "2024-06-01", apps[0].Date)
	assert.Equal(t, "09:00", apps[0].Slot)
}
