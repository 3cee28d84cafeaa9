// Playsense - Player Mood Analytics and Game Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playsense

// Package validation wraps go-playground/validator v10 behind a
// thread-safe singleton. Handlers validate decoded request structs and
// turn failures into field-level error details:
//
//	type moodRecommendRequest struct {
//	    Mood  string `json:"mood" validate:"required,oneof=calm competitive curious social focused"`
//	    Limit int    `json:"limit" validate:"min=0,max=100"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", verr.Error(), verr.Fields())
//	    return
//	}
package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError describes one failed field.
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message"`
}

// RequestValidationError is a collection of field validation failures.
type RequestValidationError struct {
	fields []FieldError
}

// Error implements the error interface with a combined message.
func (ve *RequestValidationError) Error() string {
	if len(ve.fields) == 0 {
		return "validation failed"
	}
	messages := make([]string, len(ve.fields))
	for i, f := range ve.fields {
		messages[i] = f.Message
	}
	return strings.Join(messages, "; ")
}

// Fields returns the per-field failure details for error responses.
func (ve *RequestValidationError) Fields() []FieldError {
	return ve.fields
}

// GetValidator returns the singleton validator instance. Thread-safe;
// the validator caches struct metadata across calls.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateStruct validates a struct with the singleton validator.
// Returns nil on success.
func ValidateStruct(s any) *RequestValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return &RequestValidationError{
			fields: []FieldError{{Field: "unknown", Tag: "unknown", Message: err.Error()}},
		}
	}

	fields := make([]FieldError, len(validationErrs))
	for i, fe := range validationErrs {
		fields[i] = FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Message: fieldMessage(fe),
		}
	}
	return &RequestValidationError{fields: fields}
}

// fieldMessage renders a human-readable message for one field failure.
func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}
