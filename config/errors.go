package config

import (
	"fmt"
	"strings"
)

// FieldError is a problem with a single configuration field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ConfigError lists every problem found in a configuration.
type ConfigError struct {
	Fields []FieldError
}

func (e *ConfigError) Error() string {
	var b strings.Builder
	b.WriteString("invalid configuration:")
	for _, f := range e.Fields {
		b.WriteString("\n- ")
		b.WriteString(f.Error())
	}
	return b.String()
}

// Add records a problem with field.
func (e *ConfigError) Add(field, format string, args ...any) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// Has reports whether a problem was recorded for field.
func (e *ConfigError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// OrNil returns e when it holds problems and nil otherwise.
func (e *ConfigError) OrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
