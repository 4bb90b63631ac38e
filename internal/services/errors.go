package services

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
	ErrNotFound      = errors.New("not found")
	ErrFormat        = errors.New("format error")
	ErrNetwork       = errors.New("network error")
	ErrTransient     = errors.New("transient failure")
)

// SummaryLimit bounds the user-facing error message length in runes.
const SummaryLimit = 100

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Recoverable reports whether err is handled locally by the sync engine
// (format and network failures) instead of aborting the operation.
func Recoverable(err error) bool {
	return errors.Is(err, ErrFormat) || errors.Is(err, ErrNetwork)
}

// Summary renders err for display: the full text is meant for logs, this is
// the bounded one-line form shown to users.
func Summary(err error) string {
	if err == nil {
		return ""
	}
	return Truncate(strings.Join(strings.Fields(err.Error()), " "), SummaryLimit)
}

// Truncate shortens s to at most limit runes, appending "..." when cut.
func Truncate(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	count := 0
	for i := range s {
		if count == limit {
			return s[:i] + "..."
		}
		count++
	}
	return s
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
