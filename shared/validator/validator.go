package validator

import (
	"errors"
	"fmt"
	"maps"
	"net/http"
	"reflect"
	"regexp"
	"slices"
	"strings"

	"github.com/go-playground/form/v4"
	val "github.com/go-playground/validator/v10"

	"tonyspizza/shared/constant"
	"tonyspizza/shared/failure"
	"tonyspizza/shared/timeslot"
)

const msgNotANumber = "%s must be a whole number"

var (
	validate        *val.Validate
	decoder         = form.NewDecoder()
	usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)
)

// normalizer is implemented by form DTOs that clean their values (trimming,
// casing) after decoding and before validation.
type normalizer interface {
	Normalize()
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())

	// report errors under the name the client submitted
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range []string{"form", "json"} {
			name, _, _ := strings.Cut(field.Tag.Get(tag), ",")
			if name == "-" {
				return ""
			}

			if name != "" {
				return name
			}
		}

		return field.Name
	})

	mustRegister("timeslot", func(fl val.FieldLevel) bool {
		return timeslot.Valid(fl.Field().String())
	})

	mustRegister("notblank", func(fl val.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	mustRegister("usernames", func(fl val.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
}

func mustRegister(tag string, fn val.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// ValidateForm decodes the posted form into data by its `form` tags and
// validates it. Values that cannot be decoded into their field are reported
// on that field alongside the validation failures.
func ValidateForm(r *http.Request, data any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, constant.RequestMaxMemory)

	if err := r.ParseForm(); err != nil {
		return failure.BadRequestFromString("failed to parse form") //nolint:wrapcheck
	}

	decodeFields, err := decodeErrors(decoder.Decode(data, r.PostForm))
	if err != nil {
		return err
	}

	if n, ok := data.(normalizer); ok {
		n.Normalize()
	}

	summary, fields := "", map[string]string{}

	if err = validate.Struct(data); err != nil {
		var valFields map[string]string

		summary, valFields = fieldMessages(err)
		maps.Copy(fields, valFields)
	}

	if len(decodeFields) > 0 {
		maps.Copy(fields, decodeFields)
		summary = decodeFields[slices.Sorted(maps.Keys(decodeFields))[0]]
	}

	if len(fields) == 0 && summary == "" {
		return nil
	}

	return failure.Validation(summary, fields) //nolint:wrapcheck
}

// decodeErrors maps per-field decode failures to messages. Any other decoder
// error is a programming error and returned as is.
func decodeErrors(err error) (map[string]string, error) {
	if err == nil {
		return nil, nil
	}

	var decodeErrs form.DecodeErrors
	if !errors.As(err, &decodeErrs) {
		return nil, fmt.Errorf("failed to decode form: %w", err)
	}

	fields := make(map[string]string, len(decodeErrs))
	for field := range decodeErrs {
		fields[field] = fmt.Sprintf(msgNotANumber, field)
	}

	return fields, nil
}

func ValidateStruct[T any](data *T) error {
	return check(validate.Struct(data))
}

func check(err error) error {
	if err == nil {
		return nil
	}

	summary, fields := fieldMessages(err)

	return failure.Validation(summary, fields) //nolint:wrapcheck
}
