package domain

import "time"

// SlotStats are per-interview slot counts, always computed fresh from the
// grid on read. Nothing here is cached or incremented on write.
type SlotStats struct {
	TotalSlots  int     `json:"total_slots"`
	BookedSlots int     `json:"booked_slots"`
	FreeSlots   int     `json:"free_slots"`
	BookingRate float64 `json:"booking_rate"`
}

// ComputeSlotStats folds the slot list into counts. BookingRate is 0 for an
// empty grid, never a division error.
func ComputeSlotStats(slots []Slot) SlotStats {
	stats := SlotStats{TotalSlots: len(slots)}
	for _, s := range slots {
		if s.Free() {
			stats.FreeSlots++
		} else {
			stats.BookedSlots++
		}
	}
	if stats.TotalSlots > 0 {
		stats.BookingRate = float64(stats.BookedSlots) / float64(stats.TotalSlots)
	}
	return stats
}

// TodayBooking is one booked cell on today's date, flattened for the
// interviewer dashboard.
type TodayBooking struct {
	InterviewID   string `json:"interview_id"`
	InterviewName string `json:"interview_name"`
	Slot          string `json:"slot"`
	Applicant     string `json:"applicant"`
}

// DashboardSummary is the cross-interview rollup for one interviewer.
type DashboardSummary struct {
	TotalInterviews int            `json:"total_interviews"`
	Upcoming        int            `json:"upcoming"`
	Ongoing         int            `json:"ongoing"`
	Completed       int            `json:"completed"`
	TotalSlots      int            `json:"total_slots"`
	BookedSlots     int            `json:"booked_slots"`
	TodayBookings   []TodayBooking `json:"today_bookings"`
}

// BuildDashboard computes the interviewer rollup at the given instant.
func BuildDashboard(interviews []*Interview, now time.Time) *DashboardSummary {
	today := now.Format(DateLayout)
	summary := &DashboardSummary{
		TotalInterviews: len(interviews),
		TodayBookings:   []TodayBooking{},
	}
	for _, iv := range interviews {
		switch iv.StatusAt(now) {
		case InterviewUpcoming:
			summary.Upcoming++
		case InterviewOngoing:
			summary.Ongoing++
		case InterviewCompleted:
			summary.Completed++
		}
		for _, s := range iv.Slots {
			summary.TotalSlots++
			if s.Free() {
				continue
			}
			summary.BookedSlots++
			if s.Date == today {
				summary.TodayBookings = append(summary.TodayBookings, TodayBooking{
					InterviewID:   iv.ID,
					InterviewName: iv.Name,
					Slot:          s.Label,
					Applicant:     *s.Applicant,
				})
			}
		}
	}
	return summary
}

// ApplicationStats are one applicant's bookings counted by derived status.
type ApplicationStats struct {
	Total     int `json:"total"`
	Upcoming  int `json:"upcoming"`
	Completed int `json:"completed"`
	Missed    int `json:"missed"`
}

// ComputeApplicationStats counts applications by status.
func ComputeApplicationStats(apps []*Application) ApplicationStats {
	stats := ApplicationStats{Total: len(apps)}
	for _, a := range apps {
		switch a.Status {
		case ApplicationUpcoming:
			stats.Upcoming++
		case ApplicationCompleted:
			stats.Completed++
		case ApplicationMissed:
			stats.Missed++
		}
	}
	return stats
}
