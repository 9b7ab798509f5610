package course

import "errors"

// Business-rule error kinds. Controllers translate these to HTTP statuses in
// one place (middleware.ServiceError); services never map to status codes
// themselves. Wrap with fmt.Errorf("...: %w", Err...) to add context.
var (
	ErrNotFound      = errors.New("resource not found")
	ErrForbidden     = errors.New("forbidden")
	ErrInvalidState  = errors.New("invalid state for this transition")
	ErrNotApproved   = errors.New("course is not approved")
	ErrNotEligible   = errors.New("learner is not eligible yet")
	ErrAlreadyIssued = errors.New("certificate already issued")
	ErrStorage       = errors.New("storage failure")
)
