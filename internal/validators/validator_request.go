package validators

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/post-board/models"
)

const (
	maxNameLength     = 100
	maxEmailLength    = 254
	maxPasswordLength = 1024
	maxTitleLength    = 255
)

// RequestValidator validates the request bodies accepted by the API.
//
// Field names passed to Validate restrict the check to those fields; they
// use the JSON names of the request ("name", "email", "password", "title",
// "id"). With no fields every rule of the request type is applied.
type RequestValidator struct{}

// NewRequestValidator returns a [Validator] for the models.*Request types.
func NewRequestValidator() Validator {
	return &RequestValidator{}
}

func (v *RequestValidator) Validate(ctx context.Context, i any, fields ...string) error {
	var checks map[string]func() error

	switch req := i.(type) {
	case models.RegisterRequest:
		checks = map[string]func() error{
			"name":     func() error { return validateName(req.Name) },
			"email":    func() error { return validateEmail(req.Email) },
			"password": func() error { return validatePassword(req.Password) },
		}
	case models.LoginRequest:
		checks = map[string]func() error{
			"email":    func() error { return validateEmail(req.Email) },
			"password": func() error { return validatePassword(req.Password) },
		}
	case models.UpdateProfileRequest:
		if req.Name == nil && req.Email == nil {
			return ErrNoFieldsToUpdate
		}
		checks = map[string]func() error{
			"name":  optional(req.Name, validateName),
			"email": optional(req.Email, validateEmail),
		}
	case models.CreatePostRequest:
		checks = map[string]func() error{
			"title": func() error { return validateTitle(req.Title) },
		}
	case models.UpdatePostRequest:
		if req.Title == nil && req.Content == nil {
			return ErrNoFieldsToUpdate
		}
		checks = map[string]func() error{
			"id":    func() error { return validateID(req.ID) },
			"title": optional(req.Title, validateTitle),
		}
	case models.DeletePostRequest:
		checks = map[string]func() error{
			"id": func() error { return validateID(req.ID) },
		}
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, i)
	}

	return runChecks(checks, fields)
}

// knownFields fixes the order in which rules run so that joined errors
// read the same on every call.
var knownFields = []string{"id", "name", "email", "password", "title"}

func runChecks(checks map[string]func() error, fields []string) error {
	if len(fields) == 0 {
		fields = knownFields
	}

	var errs []error
	for _, field := range fields {
		if !slices.Contains(knownFields, field) {
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}

		check, ok := checks[field]
		if !ok {
			continue
		}
		if err := check(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func optional(value *string, validate func(string) error) func() error {
	return func() error {
		if value == nil {
			return nil
		}
		return validate(*value)
	}
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return ErrNameTooLong
	}
	return nil
}

// validateEmail accepts a bare address only; display names such as
// "Alice <a@x.io>" are rejected.
func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" || len(email) > maxEmailLength {
		return ErrInvalidEmail
	}

	address, err := mail.ParseAddress(email)
	if err != nil || address.Address != email || address.Name != "" {
		return ErrInvalidEmail
	}

	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	if len(password) > maxPasswordLength {
		return ErrPasswordTooLong
	}
	return nil
}

func validateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}

func validateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrEmptyID
	}
	return nil
}
