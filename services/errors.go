package services

import "errors"

// Domain error taxonomy. Handlers map these onto HTTP statuses: validation
// failures 400, conflicts 409, policy violations 403, missing records 404.
// Every error is terminal for its request; there is no retry logic.
var (
	// ErrValidation wraps malformed or rejected input.
	ErrValidation = errors.New("validation failed")

	// ErrSlotNotOffered rejects a booking for a datetime that is not one of
	// the candidate slots derived from the doctor's availability.
	ErrSlotNotOffered = errors.New("requested time is not an offered slot")

	// ErrAvailabilityOverlap rejects a window overlapping an existing one
	// for the same doctor and date.
	ErrAvailabilityOverlap = errors.New("time range overlaps with an existing availability")

	// ErrRescheduleLimit rejects a third reschedule attempt.
	ErrRescheduleLimit = errors.New("appointment cannot be rescheduled more than 2 times")

	// ErrNotOwner rejects access to another patient's or doctor's record.
	ErrNotOwner = errors.New("record does not belong to the caller")

	ErrNotFound = errors.New("record not found")

	// ErrUsernameTaken rejects registration with a username already in use.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrInvalidCredentials covers both unknown usernames and wrong
	// passwords so login failures do not leak which one it was.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrAccountBlocked rejects login for a blacklisted account.
	ErrAccountBlocked = errors.New("account has been blocked by the administrator")

	// ErrAlreadyCancelled rejects a repeat cancel; Cancelled is terminal.
	ErrAlreadyCancelled = errors.New("appointment is already cancelled")

	// ErrInvalidTransition rejects a status change the appointment's
	// current state does not allow.
	ErrInvalidTransition = errors.New("appointment status does not allow this action")

	// ErrTreatmentUnavailable hides treatment details until the
	// appointment is completed.
	ErrTreatmentUnavailable = errors.New("treatment details are only available for completed appointments")
)
