// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/danielhkuo/quickly-survey/apperr"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// DecodeAndValidate parses the JSON body into v and checks its validate tags.
// Failures are apperr.KindValidation naming the first offending field.
func DecodeAndValidate(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	if err := render.DecodeJSON(r.Body, v); err != nil {
		return apperr.Validation(apperr.MsgInvalidBody)
	}

	if err := validate.Struct(v); err != nil {
		var fields validator.ValidationErrors
		if errors.As(err, &fields) && len(fields) > 0 {
			return apperr.Validation(apperr.MsgInvalidField, fields[0].Namespace(), fields[0].Tag())
		}
		return apperr.Validation(apperr.MsgInvalidBody)
	}
	return nil
}
