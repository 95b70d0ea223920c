package services

import (
	"reflect"
	"testing"
)

func validCandidate() CandidateUser {
	return CandidateUser{
		FirstName: "Jane",
		LastName:  "Smith",
		Contact:   "0712345678",
		Email:     "jane.smith@gmail.com",
		Address:   "12 Main Street",
		Password:  "Passw0rd#",
	}
}

func TestValidateCandidateValid(t *testing.T) {
	t.Parallel()

	if violations := ValidateCandidate(validCandidate(), true); len(violations) != 0 {
		t.Fatalf("expected no violations, got %v", violations)
	}
}

func TestValidateCandidatePresenceShortCircuit(t *testing.T) {
	t.Parallel()

	// A missing field suppresses format checks: the bad contact format must
	// not be reported while the email is absent.
	c := validCandidate()
	c.Email = "   "
	c.Contact = "abc"

	violations := ValidateCandidate(c, true)
	want := []string{"email required"}
	if !reflect.DeepEqual(violations, want) {
		t.Fatalf("expected %v, got %v", want, violations)
	}
}

func TestValidateCandidateAllRequiredMissing(t *testing.T) {
	t.Parallel()

	violations := ValidateCandidate(CandidateUser{}, true)
	want := []string{
		"first name required",
		"last name required",
		"contact required",
		"email required",
		"address required",
		"password required",
	}
	if !reflect.DeepEqual(violations, want) {
		t.Fatalf("expected %v, got %v", want, violations)
	}
}

func TestValidateCandidateFormatAccumulation(t *testing.T) {
	t.Parallel()

	// Every format violation is reported together, in declaration order.
	c := validCandidate()
	c.Contact = "12345"
	c.Email = "jane@yahoo.com"
	c.Password = "short"

	violations := ValidateCandidate(c, true)
	want := []string{
		"Contact must be exactly 10 digits",
		"Email must be a valid @gmail.com address",
		"Password must be 8-12 chars with upper, lower, number and special (#, @, $, &)",
	}
	if !reflect.DeepEqual(violations, want) {
		t.Fatalf("expected %v, got %v", want, violations)
	}
}

func TestValidateCandidateFormats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*CandidateUser)
		want   string
	}{
		{
			name:   "first name too long",
			mutate: func(c *CandidateUser) { c.FirstName = longName(51) },
			want:   "First name max 50 chars",
		},
		{
			name:   "last name too long",
			mutate: func(c *CandidateUser) { c.LastName = longName(51) },
			want:   "Last name max 50 chars",
		},
		{
			name:   "contact too short",
			mutate: func(c *CandidateUser) { c.Contact = "071234567" },
			want:   "Contact must be exactly 10 digits",
		},
		{
			name:   "contact with letters",
			mutate: func(c *CandidateUser) { c.Contact = "07123A5678" },
			want:   "Contact must be exactly 10 digits",
		},
		{
			name:   "non-gmail email",
			mutate: func(c *CandidateUser) { c.Email = "jane@outlook.com" },
			want:   "Email must be a valid @gmail.com address",
		},
		{
			name:   "gmail lookalike domain",
			mutate: func(c *CandidateUser) { c.Email = "jane@gmail.com.evil.com" },
			want:   "Email must be a valid @gmail.com address",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := validCandidate()
			tt.mutate(&c)

			violations := ValidateCandidate(c, true)
			if len(violations) != 1 || violations[0] != tt.want {
				t.Fatalf("expected [%q], got %v", tt.want, violations)
			}
		})
	}
}

func TestValidateCandidatePasswordOptional(t *testing.T) {
	t.Parallel()

	c := validCandidate()
	c.Password = ""

	if violations := ValidateCandidate(c, false); len(violations) != 0 {
		t.Fatalf("expected no violations without password requirement, got %v", violations)
	}
}

func TestValidPassword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		password string
		want     bool
	}{
		{"Passw0rd#", true},
		{"Aa1@aaaa", true},     // exactly 8
		{"Aa1@aaaaaaaa", true}, // exactly 12
		{"Aa1@aaa", false},     // 7 chars
		{"Aa1@aaaaaaaaa", false}, // 13 chars
		{"passw0rd#", false},   // no upper
		{"PASSW0RD#", false},   // no lower
		{"Password#", false},   // no digit
		{"Passw0rd!", false},   // wrong special class
		{"Passw0rd", false},    // no special
	}

	for _, tt := range tests {
		if got := ValidPassword(tt.password); got != tt.want {
			t.Errorf("ValidPassword(%q) = %v, want %v", tt.password, got, tt.want)
		}
	}
}

func TestValidateCandidateDeterministic(t *testing.T) {
	t.Parallel()

	c := validCandidate()
	c.Contact = "nope"
	c.Email = "bad"

	first := ValidateCandidate(c, true)
	for i := 0; i < 10; i++ {
		if got := ValidateCandidate(c, true); !reflect.DeepEqual(got, first) {
			t.Fatalf("validation not deterministic: %v vs %v", got, first)
		}
	}
}

func longName(n int) string {
	runes := make([]rune, n)
	for i := range runes {
		runes[i] = 'a'
	}
	return string(runes)
}
