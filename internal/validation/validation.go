// Package validation builds the shared validator with the domain's enum tags registered.
package validation

import (
	"reflect"
	"strings"

	"jobportal/internal/models"

	"github.com/go-playground/validator/v10"
)

// New returns a validator that reports JSON field names and knows the domain enum tags.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})

	mustRegister(v, "job_type", func(fl validator.FieldLevel) bool {
		return models.JobType(fl.Field().String()).Valid()
	})
	mustRegister(v, "application_status", func(fl validator.FieldLevel) bool {
		return models.ApplicationStatus(fl.Field().String()).Valid()
	})
	mustRegister(v, "account_type", func(fl validator.FieldLevel) bool {
		return models.Role(fl.Field().String()).Valid()
	})
	mustRegister(v, "gender", func(fl validator.FieldLevel) bool {
		return models.Gender(fl.Field().String()).Valid()
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic("registering validation " + tag + ": " + err.Error())
	}
}
