// Package mailer forwards contact form submissions to the site owner.
package mailer

import (
	"context"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/pkg/errors"
)

// ErrNotConfigured is returned when the transport is missing credentials.
var ErrNotConfigured = errors.New("mail transport not configured")

// Message is one contact form submission.
type Message struct {
	ToEmail   string
	FromName  string
	FromEmail string
	Body      string
}

// Sender delivers a Message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

var strict = bluemonday.StrictPolicy()

const maxSanitizePasses = 8

// Sanitize reduces every field a visitor typed to plain text with no tags.
// Each pass strips tags and decodes entities; passes repeat until the text
// stops changing, so entity-encoded markup is removed like literal markup.
func Sanitize(msg Message) Message {
	clean := func(s string) string {
		return strings.TrimSpace(plainText(s))
	}
	return Message{
		ToEmail:   msg.ToEmail,
		FromName:  clean(msg.FromName),
		FromEmail: clean(msg.FromEmail),
		Body:      clean(msg.Body),
	}
}

func plainText(s string) string {
	for i := 0; i < maxSanitizePasses; i++ {
		next := html.UnescapeString(strict.Sanitize(s))
		if next == s {
			return s
		}
		s = next
	}
	// Still changing: keep the escaped form, which is safe as text and markup.
	return strict.Sanitize(s)
}
