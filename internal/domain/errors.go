package domain

import "errors"

// Sentinel errors shared across the scheduling domain. Services pass these
// through unchanged so the delivery layer can map them to response codes.
var (
	// ErrNotFound is returned when an interview, or a (date, slot) cell that
	// was never offered, is referenced.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when the requester is not the interview owner.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidInput covers malformed creation input: bad dates, an inverted
	// date range, an empty slot selection, or invalid candidates.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSlotTaken is the expected outcome of losing a booking race. Callers
	// treat it as a normal branch, not a failure of the system.
	ErrSlotTaken = errors.New("slot already booked")

	// ErrInterviewClosed is returned when booking is attempted after the
	// interview's date range has passed.
	ErrInterviewClosed = errors.New("interview already completed")

	// ErrSlotNotMarkable is returned when a missed-mark is attempted on a
	// slot that is free or not yet in the past.
	ErrSlotNotMarkable = errors.New("slot cannot be marked missed")
)

// Candidate import failures.
var (
	// ErrBadFormat means the upload could not be parsed as tabular data at all.
	ErrBadFormat = errors.New("unrecognized spreadsheet format")

	// ErrEmptyImport means parsing succeeded but yielded zero valid rows,
	// which signals a total format mismatch rather than "no candidates".
	ErrEmptyImport = errors.New("no valid candidates in file")

	// ErrImportTooLarge means the upload exceeded the configured size cap.
	ErrImportTooLarge = errors.New("import file too large")
)
