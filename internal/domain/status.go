package domain

import "time"

// InterviewStatus is the derived lifecycle state of an interview's date range.
type InterviewStatus string

const (
	InterviewUpcoming  InterviewStatus = "upcoming"
	InterviewOngoing   InterviewStatus = "ongoing"
	InterviewCompleted InterviewStatus = "completed"
)

// ApplicationStatus is the derived state of one applicant booking.
type ApplicationStatus string

const (
	ApplicationUpcoming  ApplicationStatus = "upcoming"
	ApplicationCompleted ApplicationStatus = "completed"
	ApplicationMissed    ApplicationStatus = "missed"
)

// InterviewStatusAt derives the interview status from its inclusive date
// range. The instant's own calendar date is what counts: any instant on
// fromDate or toDate is ongoing.
func InterviewStatusAt(fromDate, toDate string, now time.Time) InterviewStatus {
	today := now.Format(DateLayout)
	switch {
	case today < fromDate:
		return InterviewUpcoming
	case today > toDate:
		return InterviewCompleted
	default:
		return InterviewOngoing
	}
}

// ApplicationStatusAt derives a booking's status. Today and future dates are
// upcoming. A past booking is completed unless it was explicitly marked
// missed; missed is never inferred from dates alone.
func ApplicationStatusAt(date string, missed bool, now time.Time) ApplicationStatus {
	today := now.Format(DateLayout)
	if date >= today {
		return ApplicationUpcoming
	}
	if missed {
		return ApplicationMissed
	}
	return ApplicationCompleted
}
