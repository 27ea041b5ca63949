package forms

import (
	"fmt"

	"github.com/pkg/errors"
)

// Нарушение инварианта конструктора или проверка обязательности ответа.
// Привязана к конкретному полю, чтобы фронт показал сообщение рядом с ним.
type ValidationError struct {
	Field string `json:"field,omitempty"`
	Msg   string `json:"message"`
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%v: %v", e.Field, e.Msg)
}

func newValidationError(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{
		Field: field,
		Msg:   fmt.Sprintf(format, args...),
	}
}

func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}
