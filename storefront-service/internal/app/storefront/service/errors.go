package service

import (
	"errors"
	"strings"

	"lotusaroma/storefront-service/internal/app/storefront/entity"
)

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrUserExists         = errors.New("username already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrValidation         = errors.New("validation error")
)

// ValidationError несет ошибки по полям; errors.Is(err, ErrValidation) == true
type ValidationError struct {
	Fields []entity.FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation error: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
