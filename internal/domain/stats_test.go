package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeSlotStats(t *testing.T) {
	alice := "alice@x.com"

	tests := []struct {
		name  string
		slots []Slot
		want  SlotStats
	}{
		{
			name:  "empty grid has zero rate",
			slots: nil,
			want:  SlotStats{},
		},
		{
			name: "half booked",
			slots: []Slot{
				{Date: "2024-06-01", Label: "09:00", Applicant: &alice},
				{Date: "2024-06-01", Label: "10:00"},
			},
			want: SlotStats{TotalSlots: 2, BookedSlots: 1, FreeSlots: 1, BookingRate: 0.5},
		},
		{
			name: "fully booked",
			slots: []Slot{
				{Date: "2024-06-01", Label: "09:00", Applicant: &alice},
			},
			want: SlotStats{TotalSlots: 1, BookedSlots: 1, BookingRate: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeSlotStats(tt.slots)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, got.BookedSlots, got.TotalSlots)
		})
	}
}

func TestBuildDashboard(t *testing.T) {
	now := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	alice := "alice@x.com"
	bob := "bob@x.com"

	interviews := []*Interview{
		{
			ID: "iv-1", Name: "Backend Eng", FromDate: "2024-06-14", ToDate: "2024-06-16",
			Slots: []Slot{
				{Date: "2024-06-15", Label: "09:00", Applicant: &alice},
				{Date: "2024-06-15", Label: "10:00"},
				{Date: "2024-06-16", Label: "09:00", Applicant: &bob},
			},
		},
		{
			ID: "iv-2", Name: "Frontend Eng", FromDate: "2024-07-01", ToDate: "2024-07-02",
			Slots: []Slot{{Date: "2024-07-01", Label: "09:00"}},
		},
		{
			ID: "iv-3", Name: "SRE", FromDate: "2024-06-01", ToDate: "2024-06-02",
			Slots: []Slot{{Date: "2024-06-01", Label: "09:00", Applicant: &alice}},
		},
	}

	summary := BuildDashboard(interviews, now)

	assert.Equal(t, 3, summary.TotalInterviews)
	assert.Equal(t, 1, summary.Upcoming)
	assert.Equal(t, 1, summary.Ongoing)
	assert.Equal(t, 1, summary.Completed)
	assert.Equal(t, 5, summary.TotalSlots)
	assert.Equal(t, 3, summary.BookedSlots)

	require.Len(t, summary.TodayBookings, 1)
	assert.Equal(t, TodayBooking{
		InterviewID:   "iv-1",
		InterviewName: "Backend Eng",
		Slot:          "09:00",
		Applicant:     "alice@x.com",
	}, summary.TodayBookings[0])
}

func TestBuildDashboard_Empty(t *testing.T) {
	summary := BuildDashboard(nil, time.Now())
	assert.Equal(t, 0, summary.TotalInterviews)
	assert.NotNil(t, summary.TodayBookings)
}

func TestComputeApplicationStats(t *testing.T) {
	apps := []*Application{
		{Status: ApplicationUpcoming},
		{Status: ApplicationUpcoming},
		{Status: ApplicationCompleted},
		{Status: ApplicationMissed},
	}
	assert.Equal(t, ApplicationStats{Total: 4, Upcoming: 2, Completed: 1, Missed: 1}, ComputeApplicationStats(apps))
	assert.Equal(t, ApplicationStats{}, ComputeApplicationStats(nil))
}
