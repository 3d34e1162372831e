package common

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// ValidationError carries the failed checks keyed by field name.
type ValidationError struct {
	Errors map[string]string
}

// Error joins the failures in field order, e.g. "password: must be at least 3 characters long".
func (e ValidationError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+e.Errors[field])
	}

	return strings.Join(parts, ", ")
}

type Validator struct {
	Errors map[string]string
}

func NewValidator() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError keeps the first message recorded for a field.
func (v *Validator) AddError(field, message string) {
	if _, ok := v.Errors[field]; !ok {
		v.Errors[field] = message
	}
}

func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

// MinLength counts characters, not bytes.
func (v *Validator) MinLength(s string, n int) bool {
	return utf8.RuneCountInString(s) >= n
}

func (v *Validator) MaxBytes(s string, n int) bool {
	return len(s) <= n
}

func (v *Validator) ValidationError() error {
	return ValidationError{Errors: v.Errors}
}
