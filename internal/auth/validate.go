package auth

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/redmonkez12/go-auth-service/internal/httputil"
)

const (
	minUsernameLength = 3
	minPasswordLength = 8
	maxEmailLength    = 254
)

// NormalizeUsername applies the canonical username form: trimmed and
// lowercased.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

func validateEmailField(email string) *httputil.FieldError {
	if email == "" {
		return &httputil.FieldError{Field: "email", Message: "email is required"}
	}
	if len(email) > maxEmailLength {
		return &httputil.FieldError{Field: "email", Message: "email is invalid"}
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return &httputil.FieldError{Field: "email", Message: "email is invalid"}
	}
	return nil
}

func validatePasswordField(field, password string) *httputil.FieldError {
	if password == "" {
		return &httputil.FieldError{Field: field, Message: fmt.Sprintf("%s is required", field)}
	}
	if len(password) < minPasswordLength {
		return &httputil.FieldError{Field: field, Message: fmt.Sprintf("%s must be at least %d characters", field, minPasswordLength)}
	}
	return nil
}

func validateRegisterRequest(req *RegisterRequest) []httputil.FieldError {
	var fieldErrors []httputil.FieldError

	req.Email = strings.TrimSpace(req.Email)
	req.Username = NormalizeUsername(req.Username)
	req.FullName = strings.TrimSpace(req.FullName)

	if fe := validateEmailField(req.Email); fe != nil {
		fieldErrors = append(fieldErrors, *fe)
	}

	if req.Username == "" {
		fieldErrors = append(fieldErrors, httputil.FieldError{Field: "username", Message: "username is required"})
	} else if len(req.Username) < minUsernameLength {
		fieldErrors = append(fieldErrors, httputil.FieldError{Field: "username", Message: fmt.Sprintf("username must be at least %d characters", minUsernameLength)})
	}

	if fe := validatePasswordField("password", req.Password); fe != nil {
		fieldErrors = append(fieldErrors, *fe)
	}

	return fieldErrors
}

func validateLoginRequest(req *LoginRequest) []httputil.FieldError {
	var fieldErrors []httputil.FieldError

	req.Email = strings.TrimSpace(req.Email)

	if fe := validateEmailField(req.Email); fe != nil {
		fieldErrors = append(fieldErrors, *fe)
	}
	if req.Password == "" {
		fieldErrors = append(fieldErrors, httputil.FieldError{Field: "password", Message: "password is required"})
	}

	return fieldErrors
}

func validateChangePasswordRequest(req *ChangePasswordRequest) []httputil.FieldError {
	var fieldErrors []httputil.FieldError

	if req.OldPassword == "" {
		fieldErrors = append(fieldErrors, httputil.FieldError{Field: "old_password", Message: "old_password is required"})
	}
	if fe := validatePasswordField("new_password", req.NewPassword); fe != nil {
		fieldErrors = append(fieldErrors, *fe)
	}

	return fieldErrors
}
