// Package validation collects every rule violation of an input before reporting,
// so callers see all problems at once instead of the first one.
package validation

import (
	stderrors "errors"
	"fmt"
	"strings"

	apperrors "calculators/internal/common/errors"
)

// Error is an aggregate of one or more validation messages, in the order they were found.
type Error struct {
	messages []string
}

// NewError builds an aggregate from the given messages.
func NewError(messages ...string) *Error {
	return &Error{messages: append([]string(nil), messages...)}
}

// Messages returns a copy of the collected messages.
func (e *Error) Messages() []string {
	return append([]string(nil), e.messages...)
}

// Count returns the number of collected messages.
func (e *Error) Count() int {
	return len(e.messages)
}

// Error renders the raw message when there is exactly one, a numbered list otherwise.
func (e *Error) Error() string {
	switch len(e.messages) {
	case 0:
		return "Validation failed"
	case 1:
		return e.messages[0]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Validation failed with %d error(s):", len(e.messages))
	for i, msg := range e.messages {
		fmt.Fprintf(&b, "\n  %d. %s", i+1, msg)
	}
	return b.String()
}

// ToStandardError converts the aggregate for structured logging.
func (e *Error) ToStandardError() *apperrors.StandardError {
	stdErr := apperrors.NewValidationFailedError(e.Error(), e.Count())
	stdErr.Metadata = map[string]interface{}{"messages": e.Messages()}
	return stdErr
}

// As extracts a validation aggregate from err's chain.
func As(err error) (*Error, bool) {
	var vErr *Error
	if stderrors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}

// Collector accumulates messages. The zero value is ready to use.
type Collector struct {
	messages []string
}

// Add appends a message.
func (c *Collector) Add(msg string) {
	c.messages = append(c.messages, msg)
}

// Addf appends a formatted message.
func (c *Collector) Addf(format string, args ...interface{}) {
	c.messages = append(c.messages, fmt.Sprintf(format, args...))
}

// Check appends the formatted message when ok is false and reports ok.
func (c *Collector) Check(ok bool, format string, args ...interface{}) bool {
	if !ok {
		c.Addf(format, args...)
	}
	return ok
}

// Merge absorbs the messages of a nested aggregate. Any other non-nil error is added verbatim.
func (c *Collector) Merge(err error) {
	if err == nil {
		return
	}
	if vErr, ok := As(err); ok {
		c.messages = append(c.messages, vErr.messages...)
		return
	}
	c.Add(err.Error())
}

// Len returns the number of messages collected so far.
func (c *Collector) Len() int {
	return len(c.messages)
}

// Err returns nil when nothing was collected, otherwise the aggregate.
func (c *Collector) Err() error {
	if len(c.messages) == 0 {
		return nil
	}
	return NewError(c.messages...)
}

// Check is a single rule over a value. It returns "" when the rule holds.
type Check[T any] func(T) string

// Run evaluates every check against value and returns value unchanged when all hold.
func Run[T any](value T, checks ...Check[T]) (T, error) {
	var c Collector
	for _, check := range checks {
		if msg := check(value); msg != "" {
			c.Add(msg)
		}
	}
	if err := c.Err(); err != nil {
		var zero T
		return zero, err
	}
	return value, nil
}
