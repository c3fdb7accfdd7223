package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/octa-services/plant-tracker/internal/models"
	appErrors "github.com/octa-services/plant-tracker/pkg/errors"
)

// NewTrackerValidator returns a validator with the tracker vocabulary
// registered as custom tags: line, priority, status, ddmmyyyy, engineer,
// nodelim and step. An empty engineer list accepts any non-blank name.
func NewTrackerValidator(lines, engineers []string) *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	lineSet := toSet(lines)
	engineerSet := toSet(engineers)

	_ = v.RegisterValidation("line", func(fl validator.FieldLevel) bool {
		_, ok := lineSet[fl.Field().String()]
		return ok
	})
	_ = v.RegisterValidation("priority", func(fl validator.FieldLevel) bool {
		return models.Priority(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("status", func(fl validator.FieldLevel) bool {
		return models.Status(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("ddmmyyyy", func(fl validator.FieldLevel) bool {
		_, err := models.ParseDate(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("engineer", func(fl validator.FieldLevel) bool {
		name := strings.TrimSpace(fl.Field().String())
		if len(engineerSet) == 0 {
			return name != ""
		}
		_, ok := engineerSet[name]
		return ok
	})
	_ = v.RegisterValidation("nodelim", func(fl validator.FieldLevel) bool {
		return !models.ContainsDelimiter(fl.Field().String())
	})
	_ = v.RegisterValidation("step", func(fl validator.FieldLevel) bool {
		return models.StorableStep(fl.Field().String())
	})
	return v
}

// validationError converts validator output into a ValidationError listing
// the offending fields by their JSON names.
func validationError(err error, message string) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
	}
	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		ns := fe.Namespace()
		if i := strings.Index(ns, "."); i >= 0 {
			ns = ns[i+1:]
		}
		fields = append(fields, ns)
	}
	return appErrors.Validation(message, fields...)
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			set[v] = struct{}{}
		}
	}
	return set
}
