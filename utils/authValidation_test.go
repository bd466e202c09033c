package utils

import "testing"

func TestValidateRegistrationInput(t *testing.T) {
	t.Parallel()

	if err := ValidateRegistrationInput("jdoe", "jdoe@example.com", "Str0ng!pass", "Jane Doe"); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}

	cases := []struct {
		name     string
		username string
		email    string
		password string
		fullName string
	}{
		{"short username", "jd", "jdoe@example.com", "Str0ng!pass", "Jane Doe"},
		{"bad email", "jdoe", "not-an-email", "Str0ng!pass", "Jane Doe"},
		{"short password", "jdoe", "jdoe@example.com", "S1!a", "Jane Doe"},
		{"password missing complexity", "jdoe", "jdoe@example.com", "alllowercase1", "Jane Doe"},
		{"missing name", "jdoe", "jdoe@example.com", "Str0ng!pass", ""},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if err := ValidateRegistrationInput(tc.username, tc.email, tc.password, tc.fullName); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestValidateAvailabilityInput(t *testing.T) {
	t.Parallel()

	if err := ValidateAvailabilityInput("2024-01-10", "09:00", "12:00"); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}

	cases := []struct {
		name             string
		date, start, end string
	}{
		{"bad date format", "10/01/2024", "09:00", "12:00"},
		{"bad start clock", "2024-01-10", "9am", "12:00"},
		{"bad end clock", "2024-01-10", "09:00", "noon"},
		{"missing date", "", "09:00", "12:00"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if err := ValidateAvailabilityInput(tc.date, tc.start, tc.end); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}
