package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var (
	messages = map[string]string{
		"required":  "{field} is required",
		"gte":       "{field} must be greater than or equal to {param}",
		"lte":       "{field} must be less than or equal to {param}",
		"oneof":     "{field} must be one of {param}",
		"max":       "{field} must be at most {param} characters",
		"min":       "{field} must be at least {param} characters",
		"email":     "{field} must be a valid email address",
		"uuid":      "{field} must be a valid identifier",
		"datetime":  "{field} must be a date in the format YYYY-MM-DD",
		"timeslot":  "{field} must be one of the available time slots",
		"eqfield":   "{field} does not match",
		"alphanum":  "{field} may only contain letters and digits",
		"notblank":  "{field} cannot be blank",
		"usernames": "{field} may only contain letters, digits and @.+-_",
	}
)

func render(valErr val.FieldError) string {
	msg, ok := messages[valErr.Tag()]
	if !ok {
		return valErr.Error()
	}

	msg = strings.ReplaceAll(msg, "{field}", valErr.Field())

	return strings.ReplaceAll(msg, "{param}", valErr.Param())
}

// fieldMessages maps every failing field to its message. The first failure
// is returned separately as the summary.
func fieldMessages(err error) (string, map[string]string) {
	var valErrors val.ValidationErrors
	if !errors.As(err, &valErrors) {
		return err.Error(), nil
	}

	fields := make(map[string]string, len(valErrors))
	summary := ""

	for _, valErr := range valErrors {
		msg := render(valErr)

		if summary == "" {
			summary = msg
		}

		if _, seen := fields[valErr.Field()]; !seen {
			fields[valErr.Field()] = msg
		}
	}

	return summary, fields
}
