package model

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// phonePattern accepts an optional leading plus, a non-zero first digit and up to 15 more digits.
var phonePattern = regexp.MustCompile(`^\+?[1-9]\d{0,15}$`)

var validate = newValidator()

// newValidator builds the validator for drafts. Field names in errors are the JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		return name
	})
	mustRegister(v, "phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "status", func(fl validator.FieldLevel) bool {
		return Status(fl.Field().String()).Valid()
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// fieldLabels are the human readable names used in problem messages.
var fieldLabels = map[string]string{
	"firstName":   "first name",
	"lastName":    "last name",
	"email":       "email",
	"phone":       "phone number",
	"status":      "status",
	"lastContact": "last contact date",
}

// Validate checks the draft against the customer invariants. The last contact date must not lie
// after the calendar day of now. Call WithDefaults first if an empty status should become Lead.
func (d CustomerDraft) Validate(now time.Time) error {
	var problems []FieldProblem
	if err := validate.Struct(d); err != nil {
		var fieldErrors validator.ValidationErrors
		if !errors.As(err, &fieldErrors) {
			return err
		}
		for _, fe := range fieldErrors {
			problems = append(problems, FieldProblem{
				Field:   fe.Field(),
				Message: problemMessage(fe.Field(), fe.Tag(), fe.Param()),
			})
		}
	}
	if d.LastContact != nil && d.LastContact.After(DateOf(now)) {
		problems = append(problems, FieldProblem{
			Field:   "lastContact",
			Message: "The last contact date cannot be in the future!",
		})
	}
	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{Problems: problems}
}

func problemMessage(field, tag, param string) string {
	label := fieldLabels[field]
	if label == "" {
		label = field
	}
	switch tag {
	case "required":
		if field == "status" {
			return "Please select a status!"
		}
		return "Please input the " + label + "!"
	case "min":
		return strings.ToUpper(label[:1]) + label[1:] + " must be at least " + param + " characters long!"
	case "status":
		return "Please select a status!"
	default:
		return "Please enter a valid " + label + "!"
	}
}
