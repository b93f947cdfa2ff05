package service

import "errors"

var (
	// ErrOutsideServiceArea is returned when a zip code has no market tier.
	ErrOutsideServiceArea = errors.New("outside service area")
	// ErrProjectTypeRequired is returned when an estimate is requested before a project type is chosen.
	ErrProjectTypeRequired = errors.New("project type required")
	// ErrInvalidLead is returned when a lead is missing contact details.
	ErrInvalidLead = errors.New("invalid lead")
)

// LeadError is an ErrInvalidLead carrying the code returned to the client,
// such as "email_invalid".
type LeadError struct {
	Code string
}

func (e *LeadError) Error() string { return ErrInvalidLead.Error() + ": " + e.Code }

// Is matches ErrInvalidLead.
func (e *LeadError) Is(target error) bool { return target == ErrInvalidLead }
