// Package validator envuelve go-playground/validator para validar DTOs de entrada.
package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// FieldError describe un campo que no pasó validación.
type FieldError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
	Param string `json:"param,omitempty"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// uuid4_str: válido si el string parsea como UUID (los IDs de la app son UUID v4).
	_ = v.RegisterValidation("uuid4_str", func(fl validator.FieldLevel) bool {
		s, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		_, err := uuid.Parse(s)
		return err == nil
	})
	return v
}

// Struct valida un DTO y devuelve la lista de errores de campo (nil si es válido).
func Struct(data interface{}) []FieldError {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}
	var out []FieldError
	for _, fe := range err.(validator.ValidationErrors) {
		out = append(out, FieldError{
			Field: fe.StructNamespace(),
			Tag:   fe.Tag(),
			Param: fe.Param(),
		})
	}
	return out
}

// Message arma un mensaje legible a partir de los errores de campo.
func Message(errs []FieldError) string {
	if len(errs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, fmt.Sprintf("%s (%s)", e.Field, e.Tag))
	}
	return "campos inválidos: " + strings.Join(parts, ", ")
}
