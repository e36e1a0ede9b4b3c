package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"

	perr "github.com/matzehuels/followgraph/pkg/errors"
	"github.com/matzehuels/followgraph/pkg/mention"
)

type validation struct {
	validate   *validator.Validate
	translator ut.Translator
}

var (
	validationOnce sync.Once
	validationSvc  *validation
)

// validatorSvc returns the shared validator, with json field names in
// messages and a "username" tag for mention-style usernames.
func validatorSvc() *validation {
	validationOnce.Do(func() {
		enLoc := en.New()
		trans, _ := ut.New(enLoc, enLoc).GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("json")
			if tag == "-" || tag == "" {
				return fld.Name
			}
			if idx := strings.Index(tag, ","); idx >= 0 {
				tag = tag[:idx]
			}
			return tag
		})
		_ = entranslations.RegisterDefaultTranslations(v, trans)

		_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return mention.IsValidUsername(strings.TrimPrefix(fl.Field().String(), "@"))
		})
		_ = v.RegisterTranslation("username", trans,
			func(t ut.Translator) error {
				return t.Add("username", "{0} must contain only letters, digits, '_' or '-'", true)
			},
			func(t ut.Translator, fe validator.FieldError) string {
				msg, _ := t.T("username", fe.Field())
				return msg
			},
		)

		validationSvc = &validation{validate: v, translator: trans}
	})
	return validationSvc
}

// parseJSON decodes a T from the request body, rejecting unknown fields and
// trailing data, then validates it. The body size is capped by limitBody.
func parseJSON[T any](r *http.Request) (T, error) {
	var zero T
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var dst T
	if err := dec.Decode(&dst); err != nil {
		if errors.Is(err, io.EOF) {
			return zero, perr.New(perr.ErrCodeInvalidFormat, "empty body")
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return zero, perr.New(perr.ErrCodeInvalidInput, "body exceeds %d bytes", tooLarge.Limit)
		}
		return zero, perr.Wrap(perr.ErrCodeInvalidFormat, err, "invalid JSON: %v", err)
	}
	if dec.More() {
		return zero, perr.New(perr.ErrCodeInvalidFormat, "unexpected trailing data")
	}

	if err := validatorSvc().validate.Struct(dst); err != nil {
		return zero, perr.Wrap(perr.ErrCodeInvalidInput, err, "%s", validationMessage(err))
	}
	return dst, nil
}

// validationMessage returns the first translated field error.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Translate(validatorSvc().translator)
	}
	return err.Error()
}
