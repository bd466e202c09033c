package utils

import (
	"errors"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Validation errors
var (
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters long")
	ErrPasswordNotComplex = errors.New("password must include at least one uppercase letter, one lowercase letter, one digit, and one special character")
	ErrInvalidResetCode   = errors.New("invalid reset code")
)

// ValidateRegistrationInput validates the fields shared by patient
// self-registration and admin-created doctor accounts.
func ValidateRegistrationInput(username, email, password, name string) error {
	return validation.Errors{
		"username": validation.Validate(username, validation.Required, validation.Length(3, 50)),
		"email":    validation.Validate(email, validation.Required, is.Email),
		"password": validation.Validate(password, validation.Required.Error("password cannot be blank"), validation.By(validatePassword)),
		"name":     validation.Validate(name, validation.Required, validation.Length(1, 120)),
	}.Filter()
}

// ValidateAvailabilityInput checks the date and clock formats of an
// availability window. Ordering (start before end) is checked by the caller.
func ValidateAvailabilityInput(date, startTime, endTime string) error {
	return validation.Errors{
		"date":       validation.Validate(date, validation.Required, validation.Date("2006-01-02")),
		"start_time": validation.Validate(startTime, validation.Required, validation.Date("15:04")),
		"end_time":   validation.Validate(endTime, validation.Required, validation.Date("15:04")),
	}.Filter()
}

// ValidateTreatmentInput requires a diagnosis and prescriptions; notes are
// optional.
func ValidateTreatmentInput(diagnosis, prescriptions string) error {
	return validation.Errors{
		"diagnosis":     validation.Validate(diagnosis, validation.Required),
		"prescriptions": validation.Validate(prescriptions, validation.Required),
	}.Filter()
}

// ValidatePasswordReset validates the reset code and new password.
func ValidatePasswordReset(resetCode, newPassword string) error {
	return validation.Errors{
		"resetCode": validation.Validate(resetCode, validation.Required.Error("invalid reset code")),
		"password":  validation.Validate(newPassword, validation.Required, validation.By(validatePassword)),
	}.Filter()
}

// validatePassword checks the password for length and complexity.
func validatePassword(value interface{}) error {
	password, _ := value.(string)

	if len(password) < 8 {
		return ErrPasswordTooShort
	}

	var (
		lowercaseRegex = regexp.MustCompile(`[a-z]`)
		uppercaseRegex = regexp.MustCompile(`[A-Z]`)
		digitRegex     = regexp.MustCompile(`\d`)
		specialRegex   = regexp.MustCompile(`[@$!%*?&]`)
	)

	if !lowercaseRegex.MatchString(password) ||
		!uppercaseRegex.MatchString(password) ||
		!digitRegex.MatchString(password) ||
		!specialRegex.MatchString(password) {
		return ErrPasswordNotComplex
	}

	return nil
}
