package email

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrymomot/storefront/pkg/validator"
)

// Sender delivers a single message.
type Sender interface {
	SendEmail(ctx context.Context, msg Message) error
}

// Message is an outgoing HTML email.
type Message struct {
	To       string `json:"to"`
	Subject  string `json:"subject"`
	BodyHTML string `json:"-"`
	Tag      string `json:"tag,omitempty"`
}

// Validate checks the recipient address and that subject and body are set.
func (m Message) Validate() error {
	var errs []error
	if _, err := validator.ValidateEmail(m.To); err != nil {
		errs = append(errs, fmt.Errorf("recipient: %w", err))
	}
	if strings.TrimSpace(m.Subject) == "" {
		errs = append(errs, errors.New("subject is empty"))
	}
	if strings.TrimSpace(m.BodyHTML) == "" {
		errs = append(errs, errors.New("body is empty"))
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidMessage}, errs...)...)
	}
	return nil
}
