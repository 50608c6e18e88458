package domain

import "time"

// Roles carried in the bearer token. The core trusts the verified role as
// given; issuing credentials is the identity collaborator's job.
const (
	RoleInterviewer = "INTERVIEWER"
	RoleApplicant   = "APPLICANT"
)

// TokenIssuer issues a bearer token for a user and role. Kept for the
// identity collaborator and for tests.
type TokenIssuer interface {
	Issue(userID, role string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a bearer token and returns the subject and role.
type TokenVerifier interface {
	Verify(token string) (userID, role string, err error)
}
