// Package notify holds the outbound delivery provider contracts and their
// HTTP implementations. Providers are injectable handles: a nil sender means
// the channel is not configured.
package notify

import "context"

// EmailSender delivers an HTML email. Implementations report provider
// rejections as errors.
type EmailSender interface {
	Send(ctx context.Context, from, to, subject, htmlBody string) error
}

// SMSSender delivers a compact text body to a phone number. WhatsApp rides
// the same transport; only the address prefix differs, which the dispatcher
// applies before calling Send.
type SMSSender interface {
	Send(ctx context.Context, from, to, body string) error
}
