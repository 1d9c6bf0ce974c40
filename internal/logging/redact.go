// Package logging provides helpers for keeping personal data out of log
// output. Messages carrying user fields are formatted as
// "key=value;key=value;" pairs and passed through a Redactor before they
// reach the standard logger.
package logging

import (
	"fmt"
	"log"
	"regexp"
)

// PIIFields are the log fields whose values must never appear in the
// clear: addresses identify the user, the rest are credentials.
var PIIFields = []string{"email", "password", "session_id", "reset_token"}

const (
	// Redaction replaces the value of a filtered field.
	Redaction = "***"

	// Separator terminates each key=value pair in a log message.
	Separator = ";"
)

// FilterFields masks the values of the named fields inside a
// "key=value<separator>" formatted message. Fields not on the list pass
// through untouched.
func FilterFields(fields []string, redaction, message, separator string) string {
	for _, field := range fields {
		re := regexp.MustCompile(regexp.QuoteMeta(field) + "=[^" + separator + "]*")
		message = re.ReplaceAllString(message, field+"="+redaction)
	}
	return message
}

// Redactor writes log messages with the configured field values masked.
// The zero value is not usable; construct with NewRedactor.
type Redactor struct {
	fields   []string
	patterns []*regexp.Regexp
}

// NewRedactor creates a redactor masking the given fields. Patterns are
// compiled once here rather than per message.
func NewRedactor(fields []string) *Redactor {
	patterns := make([]*regexp.Regexp, len(fields))
	for i, field := range fields {
		patterns[i] = regexp.MustCompile(regexp.QuoteMeta(field) + "=[^" + Separator + "]*")
	}
	return &Redactor{fields: fields, patterns: patterns}
}

// Filter returns the message with all configured field values masked.
func (r *Redactor) Filter(message string) string {
	for i, re := range r.patterns {
		message = re.ReplaceAllString(message, r.fields[i]+"="+Redaction)
	}
	return message
}

// Printf formats the message, masks it, and hands it to the standard
// logger.
func (r *Redactor) Printf(format string, args ...any) {
	log.Printf("%s", r.Filter(fmt.Sprintf(format, args...)))
}
