package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidEmail(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"user@example.com", true},
		{"a.b+c@sub.domain.io", true},
		{"", false},
		{"plainaddress", false},
		{"no-at.example.com", false},
		{"no-dot@example", false},
		{"two@@example.com", false},
		{"spa ce@example.com", false},
		{"@example.com", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidEmail(tt.in))
		})
	}
}

func TestValidPassword_AllRulesRequired(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"all rules", "Str0ng!pass", true},
		{"missing upper", "alllowercase1!", false},
		{"missing lower", "ALLUPPER1!", false},
		{"missing digit", "NoDigits!!", false},
		{"missing symbol", "NoSymbol123", false},
		{"too short", "Sh0rt!", false},
		{"exactly eight", "Abcde1!x", true},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidPassword(tt.in))
		})
	}
}

func TestCheck_SignUpForm(t *testing.T) {
	tests := []struct {
		name string
		form signUpForm
		want FieldErrors
	}{
		{"valid", signUpForm{"a@b.co", "Str0ng!pass", "Str0ng!pass"}, nil},
		{"empty", signUpForm{}, FieldErrors{"email": msgEmailRequired, "password": msgPasswordRequired}},
		{"bad email", signUpForm{"nope", "Str0ng!pass", "Str0ng!pass"}, FieldErrors{"email": msgEmailInvalid}},
		{"weak password", signUpForm{"a@b.co", "alllowercase1!", "alllowercase1!"}, FieldErrors{"password": msgPasswordPolicy}},
		{"mismatch", signUpForm{"a@b.co", "Str0ng!pass", "Str0ng!pas"}, FieldErrors{"confirm": msgPasswordMismatch}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, check(tt.form))
		})
	}
}

func TestCheck_ResetFormEnforcesFullPolicy(t *testing.T) {
	got := check(resetForm{Code: "123456", NewPassword: "longenough"})
	assert.Equal(t, FieldErrors{"newPassword": msgPasswordPolicy}, got)

	assert.Nil(t, check(resetForm{Code: "123456", NewPassword: "L0ngenough!"}))
	assert.Equal(t, FieldErrors{"code": msgCodeRequired}, check(resetForm{NewPassword: "L0ngenough!"}))
}
