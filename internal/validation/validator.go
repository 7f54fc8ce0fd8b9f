// Package validation checks entities against their struct tags and turns
// validator failures into field-level messages.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"training-center/internal/apperror"
)

var (
	personNamePattern = regexp.MustCompile(`^[a-zA-Z\s\-']+$`)
	levelPattern      = regexp.MustCompile(`^[a-zA-Z0-9\s\-]+$`)
	titlePattern      = regexp.MustCompile(`^[a-zA-Z0-9\s\-'.,:;!?&+#()/]+$`)
	roomNumberPattern = regexp.MustCompile(`^[a-zA-Z0-9\s\-]+$`)
	emailPattern      = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@(.+)$`)
)

// Validator wraps a configured *validator.Validate. It is safe for
// concurrent use.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(v, "notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	mustRegister(v, "personname", patternFunc(personNamePattern))
	mustRegister(v, "level", patternFunc(levelPattern))
	mustRegister(v, "title", patternFunc(titlePattern))
	mustRegister(v, "roomnumber", patternFunc(roomNumberPattern))
	mustRegister(v, "emailaddr", patternFunc(emailPattern))

	return &Validator{validate: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: register %q: %v", tag, err))
	}
}

func patternFunc(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

// IsEmail reports whether s looks like an email address.
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// Fields validates s and returns every failing field. A nil slice means s is
// valid.
func (v *Validator) Fields(s any) []apperror.FieldError {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []apperror.FieldError{{Field: "", Message: err.Error()}}
	}

	out := make([]apperror.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, apperror.FieldError{
			Field:   fe.Field(),
			Message: message(fe),
		})
	}
	return out
}

// Struct validates s and returns an aggregated VALIDATION_FAILED error.
func (v *Validator) Struct(s any) error {
	if fields := v.Fields(s); len(fields) > 0 {
		return apperror.InvalidFields(fields)
	}
	return nil
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "notblank", "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "personname":
		return field + " can only contain letters, spaces, hyphens and apostrophes"
	case "level":
		return field + " can only contain letters, numbers, spaces and hyphens"
	case "title":
		return field + " contains unsupported characters"
	case "roomnumber":
		return field + " can only contain letters, numbers, spaces and hyphens"
	case "emailaddr":
		return "Invalid email format"
	default:
		return fmt.Sprintf("%s failed on %s", field, fe.Tag())
	}
}
