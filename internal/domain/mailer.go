package domain

import "context"

// Mailer sends plain-text notification emails (infrastructure port).
// Sends are best-effort: services log failures and never fail the operation
// that triggered them.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
