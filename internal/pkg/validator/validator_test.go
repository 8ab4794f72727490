package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/heritage-explorer/internal/pkg/errors"
)

type contactForm struct {
	Email   string `form:"email" validate:"required,email"`
	Subject string `form:"asunto" validate:"required"`
	Body    string `json:"mensaje" validate:"required"`
}

func TestFieldErrorsUseWireNames(t *testing.T) {
	err := Validate(contactForm{Email: "not-an-email"})
	require.Error(t, err)

	assert.Equal(t, []string{"email", "asunto", "mensaje"}, FieldErrors(err))
	assert.Equal(t, "email: email, asunto: required, mensaje: required", Describe(err))
}

func TestValidPasses(t *testing.T) {
	assert.NoError(t, Validate(contactForm{Email: "a@b.es", Subject: "Hola", Body: "Texto"}))
}

func TestNonValidationError(t *testing.T) {
	err := errors.New("boom")
	assert.Nil(t, FieldErrors(err))
	assert.Equal(t, "boom", Describe(err))
}

func TestCheckReturnsValidationError(t *testing.T) {
	err := Check(contactForm{Subject: "Hola", Body: "Texto"})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
	assert.Equal(t, []string{"email"}, appErr.Details["fields"])

	assert.NoError(t, Check(contactForm{Email: "a@b.es", Subject: "Hola", Body: "Texto"}))
}
