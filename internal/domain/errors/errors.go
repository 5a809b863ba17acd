package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalid matches every ValidationError.
var ErrInvalid = errors.New("invalid configuration")

// FieldError names one setting and what is wrong with it. Field is either a
// site.yaml path ("site.site_url") or an environment key ("NOTION_TOKEN").
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// ValidationError collects every problem found in one pass.
type ValidationError struct {
	// Scope is the command being validated, empty for the generic checks.
	Scope string
	Items []FieldError
}

func (e ValidationError) Error() string {
	head := "invalid configuration"
	if e.Scope != "" {
		head = fmt.Sprintf("invalid configuration for %s", e.Scope)
	}
	if len(e.Items) == 0 {
		return head
	}

	var b strings.Builder
	b.WriteString(head)
	b.WriteString(":")
	for _, item := range e.Items {
		b.WriteString("\n - ")
		b.WriteString(item.Error())
	}
	return b.String()
}

func (e ValidationError) Is(target error) bool {
	return target == ErrInvalid
}

func (e *ValidationError) Add(field, msg string) {
	e.Items = append(e.Items, FieldError{Field: field, Message: msg})
}

// Missing records a required setting that has no value.
func (e *ValidationError) Missing(field string) {
	e.Add(field, "missing")
}

// Err returns e, or nil when nothing was added.
func (e ValidationError) Err() error {
	if len(e.Items) == 0 {
		return nil
	}
	return e
}

// Has reports whether field was flagged.
func (e ValidationError) Has(field string) bool {
	for _, item := range e.Items {
		if item.Field == field {
			return true
		}
	}
	return false
}
