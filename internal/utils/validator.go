package utils

import (
	"errors"
	"reflect"
	"strings"

	"recipe-hub/domain"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var Validate *validator.Validate

func InitValidator() {
	if Validate != nil {
		return
	}
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	Validate = v
}

// ValidateStruct sanitizes req when it knows how, then runs every field rule.
// The result holds one entry per failing field in declaration order; it is
// empty when the request is valid.
func ValidateStruct(req any) ([]domain.FieldError, error) {
	InitValidator()
	if s, ok := req.(domain.Sanitizer); ok {
		s.Sanitize()
	}

	err := Validate.Struct(req)
	if err == nil {
		return nil, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}

	t := reflect.TypeOf(req)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	seen := make(map[string]bool, len(verrs))
	out := make([]domain.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		structField := baseField(fe.StructField())
		if seen[structField] {
			continue
		}
		seen[structField] = true

		field := baseField(fe.Field())
		out = append(out, domain.FieldError{
			Field:   field,
			Message: fieldMessage(t, structField, fe),
		})
	}
	return out, nil
}

// ValidateID parses a path identifier.
func ValidateID(raw string) (uuid.UUID, error) {
	InitValidator()
	if err := Validate.Var(raw, "required,uuid"); err != nil {
		return uuid.Nil, domain.ErrInvalidID
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.ErrInvalidID
	}
	return id, nil
}

// baseField strips the index suffix validator adds for dive errors.
func baseField(name string) string {
	if i := strings.IndexByte(name, '['); i >= 0 {
		return name[:i]
	}
	return name
}

func fieldMessage(t reflect.Type, structField string, fe validator.FieldError) string {
	if t.Kind() == reflect.Struct {
		if f, ok := t.FieldByName(structField); ok {
			if msg := f.Tag.Get("msg_" + fe.Tag()); msg != "" {
				return msg
			}
			if msg := f.Tag.Get("msg"); msg != "" {
				return msg
			}
		}
	}
	return fe.Error()
}
