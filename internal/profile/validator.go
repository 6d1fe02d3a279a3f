package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError describes one rejected field, by its JSON name.
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return "invalid profile: " + strings.Join(msgs, "; ")
}

// Validator checks profiles against the intake schema. Safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

func (v *Validator) Validate(p Profile) error {
	err := v.validate.Struct(p)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("validate profile: %w", err)
	}

	verr := &ValidationError{}
	for _, fe := range validationErrs {
		verr.Fields = append(verr.Fields, FieldError{
			Field:   jsonFieldPath(fe.Namespace()),
			Tag:     fe.Tag(),
			Message: message(fe),
		})
	}
	return verr
}

// Decode reads a profile from JSON and validates it. A body that is not
// JSON, or carries a value of the wrong type, is reported as a
// ValidationError on the offending field.
func (v *Validator) Decode(r io.Reader) (Profile, error) {
	var p Profile
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return Profile{}, &ValidationError{Fields: []FieldError{{
				Field:   typeErr.Field,
				Tag:     "type",
				Message: fmt.Sprintf("%s has an invalid type (%s)", displayName(typeErr.Field), typeErr.Value),
			}}}
		}
		return Profile{}, &ValidationError{Fields: []FieldError{{
			Field:   "",
			Tag:     "json",
			Message: "Request body must be a JSON object",
		}}}
	}
	if err := v.Validate(p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// jsonFieldPath drops the struct name prefix: "Profile.age" -> "age".
func jsonFieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

var displayNames = map[string]string{
	"name":                "Name",
	"age":                 "Age",
	"gender":              "Gender",
	"height":              "Height",
	"weight":              "Weight",
	"fitnessGoal":         "Fitness goal",
	"fitnessLevel":        "Fitness level",
	"workoutLocation":     "Workout location",
	"dietType":            "Diet type",
	"dietaryRestrictions": "Dietary restrictions",
	"allergies":           "Allergies",
	"mealPreference":      "Meal preference",
	"medicalHistory":      "Medical history",
	"injuries":            "Injuries",
	"stressLevel":         "Stress level",
	"sleepHours":          "Sleep hours",
	"activityLevel":       "Activity level",
	"notes":               "Notes",
}

func displayName(field string) string {
	if i := strings.Index(field, "["); i >= 0 {
		field = field[:i]
	}
	if n, ok := displayNames[field]; ok {
		return n
	}
	return field
}

func message(fe validator.FieldError) string {
	name := displayName(fe.Field())
	isString := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", name, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min":
		if isString {
			return fmt.Sprintf("%s must be at least %s characters", name, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("%s must be less than %s characters", name, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", name, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid (%s)", name, fe.Tag())
	}
}
