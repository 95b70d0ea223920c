package services

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const maxNameLength = 50

var (
	contactRegex = regexp.MustCompile(`^\d{10}$`)
	emailRegex   = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@gmail\.com$`)

	upperRegex   = regexp.MustCompile(`[A-Z]`)
	lowerRegex   = regexp.MustCompile(`[a-z]`)
	digitRegex   = regexp.MustCompile(`[0-9]`)
	specialRegex = regexp.MustCompile(`[#@$&]`)
)

// ValidateCandidate checks a candidate record against the registration rules
// and returns every violated rule in a fixed order. An empty result means
// the record is valid. Password rules only apply when requirePassword is
// set; bulk imports always require one, the edit form never does.
//
// When any required field is missing, the format checks are skipped
// entirely: format errors on absent data are meaningless.
func ValidateCandidate(c CandidateUser, requirePassword bool) []string {
	var violations []string

	required := []struct {
		value   string
		message string
	}{
		{c.FirstName, "first name required"},
		{c.LastName, "last name required"},
		{c.Contact, "contact required"},
		{c.Email, "email required"},
		{c.Address, "address required"},
	}
	if requirePassword {
		required = append(required, struct {
			value   string
			message string
		}{c.Password, "password required"})
	}

	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			violations = append(violations, field.message)
		}
	}
	if len(violations) > 0 {
		return violations
	}

	if utf8.RuneCountInString(strings.TrimSpace(c.FirstName)) > maxNameLength {
		violations = append(violations, "First name max 50 chars")
	}
	if utf8.RuneCountInString(strings.TrimSpace(c.LastName)) > maxNameLength {
		violations = append(violations, "Last name max 50 chars")
	}
	if !contactRegex.MatchString(strings.TrimSpace(c.Contact)) {
		violations = append(violations, "Contact must be exactly 10 digits")
	}
	if !emailRegex.MatchString(strings.TrimSpace(c.Email)) {
		violations = append(violations, "Email must be a valid @gmail.com address")
	}
	if requirePassword && !ValidPassword(strings.TrimSpace(c.Password)) {
		violations = append(violations, "Password must be 8-12 chars with upper, lower, number and special (#, @, $, &)")
	}

	return violations
}

// ValidPassword enforces the fixed complexity rule: 8-12 characters with at
// least one uppercase letter, one lowercase letter, one digit and one of
// # @ $ &. No other punctuation counts as the special class.
func ValidPassword(password string) bool {
	length := utf8.RuneCountInString(password)
	if length < 8 || length > 12 {
		return false
	}
	return upperRegex.MatchString(password) &&
		lowerRegex.MatchString(password) &&
		digitRegex.MatchString(password) &&
		specialRegex.MatchString(password)
}
