package flow

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const minPasswordLength = 8

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidPassword reports whether p satisfies every password rule: at least
// eight characters with an upper-case letter, a lower-case letter, a digit
// and a symbol.
func ValidPassword(p string) bool {
	var upper, lower, digit, symbol bool
	for _, r := range p {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}
	return len([]rune(p)) >= minPasswordLength && upper && lower && digit && symbol
}

// FieldErrors maps form field names to their validation message.
type FieldErrors map[string]string

const (
	msgEmailRequired    = "Email is required."
	msgEmailInvalid     = "Enter a valid email address."
	msgPasswordRequired = "Password is required."
	msgPasswordPolicy   = "Password must be at least 8 characters and include an uppercase letter, a lowercase letter, a number and a symbol."
	msgPasswordMismatch = "Passwords do not match."
	msgCodeRequired     = "Verification code is required."
)

// PasswordHelp is shown next to every new-password field.
const PasswordHelp = msgPasswordPolicy

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func formValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			return strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		})
		_ = validate.RegisterValidation("mapmeemail", func(fl validator.FieldLevel) bool {
			return ValidEmail(fl.Field().String())
		})
		_ = validate.RegisterValidation("mapmepassword", func(fl validator.FieldLevel) bool {
			return ValidPassword(fl.Field().String())
		})
	})
	return validate
}

// check validates form and returns one message per failing field, or nil.
func check(form any) FieldErrors {
	err := formValidator().Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"form": err.Error()}
	}

	out := FieldErrors{}
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		out[fe.Field()] = fieldMessage(fe)
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		switch fe.Field() {
		case "email":
			return msgEmailRequired
		case "code":
			return msgCodeRequired
		}
		return msgPasswordRequired
	case "mapmeemail":
		return msgEmailInvalid
	case "mapmepassword":
		return msgPasswordPolicy
	case "eqfield":
		return msgPasswordMismatch
	}
	return "Invalid value."
}

type signUpForm struct {
	Email    string `form:"email" validate:"required,mapmeemail"`
	Password string `form:"password" validate:"required,mapmepassword"`
	Confirm  string `form:"confirm" validate:"eqfield=Password"`
}

type signInForm struct {
	Email    string `form:"email" validate:"required,mapmeemail"`
	Password string `form:"password" validate:"required"`
}

type forgotForm struct {
	Email string `form:"email" validate:"required,mapmeemail"`
}

type codeForm struct {
	Code string `form:"code" validate:"required"`
}

type resetForm struct {
	Code        string `form:"code" validate:"required"`
	NewPassword string `form:"newPassword" validate:"required,mapmepassword"`
}
