// Package validate runs go-playground/validator over form structs and turns
// failures into readable, per-field messages. Validation happens before any
// request reaches the network.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/localtalent/console/internal/core/domain"
)

var (
	once     sync.Once
	instance *validator.Validate
)

// Get returns the shared validator with the marketplace tags registered:
//
//	timeslot  → one of domain.TimeSlots
//	duration  → one of domain.Durations
//	role      → a known domain.Role
//
// decimal.Decimal fields are validated as float64, so gte/lte apply to rates.
func Get() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
		v.RegisterCustomTypeFunc(func(field reflect.Value) any {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				f, _ := d.Float64()
				return f
			}
			return nil
		}, decimal.Decimal{})

		_ = v.RegisterValidation("timeslot", func(fl validator.FieldLevel) bool {
			return domain.IsTimeSlot(fl.Field().String())
		})
		_ = v.RegisterValidation("duration", func(fl validator.FieldLevel) bool {
			return domain.IsDuration(int(fl.Field().Int()))
		})
		_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
			return domain.Role(fl.Field().String()).Valid()
		})
		instance = v
	})
	return instance
}

// FieldError is one failed rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error lists every failed rule of a struct. It unwraps to domain.ErrValidation.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, "; ")
}

func (e *Error) Unwrap() error { return domain.ErrValidation }

// Struct validates s.
func Struct(s any) error {
	err := Get().Struct(s)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	out := &Error{Fields: make([]FieldError, 0, len(ve))}
	for _, fe := range ve {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Message: fieldError(fe)})
	}
	return out
}

// Fail builds an Error for a rule checked outside the validator.
func Fail(field, message string) *Error {
	return &Error{Fields: []FieldError{{Field: field, Message: message}}}
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be less than %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "timeslot":
		return field + " must be one of: " + strings.Join(domain.TimeSlots, ", ")
	case "duration":
		return field + " must be one of 1, 2, 3, 4, 6 or 8 hours"
	case "role":
		return field + " must be a known role"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
