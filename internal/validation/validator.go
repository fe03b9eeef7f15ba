// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/tomtom215/allocarte/internal/indicators"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// GetValidator returns the shared validator. Field names in errors come
// from json tags.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(jsonTagName)

		//nolint:errcheck // registration only fails for an empty tag
		validate.RegisterValidation("dimension", func(fl validator.FieldLevel) bool {
			_, err := indicators.ParseDimension(fl.Field().String())
			return err == nil
		})
	})
	return validate
}

func jsonTagName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return fld.Name
	}
	return name
}

// ValidateStruct validates s and returns nil or the failed fields.
func ValidateStruct(s interface{}) *RequestValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &RequestValidationError{errors: []ValidationError{
			{field: "unknown", tag: "unknown", message: err.Error()},
		}}
	}

	out := &RequestValidationError{errors: make([]ValidationError, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.errors = append(out.errors, ValidationError{
			field:   fe.Field(),
			tag:     fe.Tag(),
			message: describe(fe),
		})
	}
	return out
}

// describe renders one failed rule as an English sentence.
func describe(fe validator.FieldError) string {
	field, param := fe.Field(), fe.Param()

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "dimension":
		return field + " must be one of: " + strings.Join(dimensionNames(), ", ")
	case "oneof":
		return field + " must be one of: " + param
	case "min", "max":
		bound := "at least "
		if fe.Tag() == "max" {
			bound = "at most "
		}
		msg := field + " must be " + bound + param
		switch fe.Kind() {
		case reflect.String:
			msg += " characters"
		case reflect.Slice:
			msg += " items"
		}
		return msg
	}
	return field + " failed " + fe.Tag() + " validation"
}

func dimensionNames() []string {
	names := make([]string, len(indicators.Dimensions))
	for i, d := range indicators.Dimensions {
		names[i] = string(d)
	}
	return names
}
