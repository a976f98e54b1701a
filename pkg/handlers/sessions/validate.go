package sessions

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/chris/apexfx-session/pkg/api"
)

const minPasswordLength = 8

const passwordSpecials = `!@#$%^&*(),.?":{}|<>`

var (
	ErrPasswordTooShort  = errors.New("password must be at least 8 characters")
	ErrPasswordUppercase = errors.New("password must contain at least one uppercase letter")
	ErrPasswordDigit     = errors.New("password must contain at least one number")
	ErrPasswordSpecial   = errors.New("password must contain at least one special character")
	ErrPasswordMismatch  = errors.New("passwords must match")
	ErrNameRequired      = errors.New("first name and last name are required")
)

// validateLogin applies the login form rules. The store itself accepts any
// non-empty password.
func validateLogin(req *api.LoginRequest) error {
	if utf8.RuneCountInString(req.Password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

func validateRegistration(req *api.RegisterRequest) error {
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		return ErrNameRequired
	}
	if utf8.RuneCountInString(req.Password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	if !strings.ContainsAny(req.Password, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		return ErrPasswordUppercase
	}
	if !strings.ContainsAny(req.Password, "0123456789") {
		return ErrPasswordDigit
	}
	if !strings.ContainsAny(req.Password, passwordSpecials) {
		return ErrPasswordSpecial
	}
	if req.Password != req.ConfirmPassword {
		return ErrPasswordMismatch
	}
	return nil
}
