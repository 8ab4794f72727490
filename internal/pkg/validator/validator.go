package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	apperrors "github.com/heritage-explorer/internal/pkg/errors"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	// в ошибках используются имена полей формы или JSON, а не Go
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"form", "json", "query"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})
}

// Validate - валидация структуры
func Validate(s interface{}) error {
	return validate.Struct(s)
}

// Check валидирует структуру; ошибка - ErrValidation с именами полей в Details
func Check(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		return apperrors.ErrValidation.WithDetails(map[string]interface{}{
			"fields": FieldErrors(err),
			"reason": Describe(err),
		})
	}
	return nil
}

// GetValidator - получить валидатор для кастомной конфигурации
func GetValidator() *validator.Validate {
	return validate
}

// FieldErrors возвращает имена невалидных полей в порядке объявления
func FieldErrors(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, strings.ToLower(fe.Field()))
	}
	return fields
}

// Describe формирует короткое сообщение вида "email: required, asunto: required"
func Describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s: %s", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return strings.Join(parts, ", ")
}
