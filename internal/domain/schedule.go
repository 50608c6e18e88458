package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// BuildSlotGrid expands a date range and a per-day slot selection into the
// initial sparse grid of free cells. Every selected (date, label) pair maps
// to an unassigned Slot; unselected pairs are absent, not present-and-free.
//
// The result is deterministic: dates in calendar order, labels within a day
// in sorted catalog order, duplicates collapsed.
//
// An empty selection is not rejected here; non-emptiness is a precondition
// the interview-creation workflow checks before calling.
func BuildSlotGrid(fromDate, toDate string, selection SlotSelection) ([]Slot, error) {
	from, err := time.Parse(DateLayout, fromDate)
	if err != nil {
		return nil, fmt.Errorf("%w: from_date %q is not a valid date", ErrInvalidInput, fromDate)
	}
	to, err := time.Parse(DateLayout, toDate)
	if err != nil {
		return nil, fmt.Errorf("%w: to_date %q is not a valid date", ErrInvalidInput, toDate)
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: from_date %s is after to_date %s", ErrInvalidInput, fromDate, toDate)
	}

	dates := make([]string, 0, len(selection))
	for date := range selection {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	var slots []Slot
	for _, date := range dates {
		if _, err := time.Parse(DateLayout, date); err != nil {
			return nil, fmt.Errorf("%w: selected date %q is not a valid date", ErrInvalidInput, date)
		}
		if date < fromDate || date > toDate {
			return nil, fmt.Errorf("%w: selected date %s is outside %s..%s", ErrInvalidInput, date, fromDate, toDate)
		}
		labels := normalizeLabels(selection[date])
		if len(labels) == 0 {
			continue
		}
		for _, label := range labels {
			slots = append(slots, Slot{Date: date, Label: label})
		}
	}
	return slots, nil
}

// normalizeLabels trims, drops empties, de-duplicates, and sorts slot labels.
func normalizeLabels(labels []string) []string {
	seen := make(map[string]struct{}, len(labels))
	out := make([]string, 0, len(labels))
	for _, label := range labels {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		if _, dup := seen[label]; dup {
			continue
		}
		seen[label] = struct{}{}
		out = append(out, label)
	}
	sort.Strings(out)
	return out
}
