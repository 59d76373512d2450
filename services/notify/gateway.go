// File: services/notify/gateway.go
package notify

import "context"

// Template names one of the configured SMS templates.
type Template string

const (
	TemplateOTP          Template = "otp"
	TemplateConfirmation Template = "confirmation"
	TemplateReminder4h   Template = "reminder4h"
	TemplateMeetLink     Template = "meetLink"
	TemplateReminder30m  Template = "reminder30m"
)

// Gateway sends templated SMS/WhatsApp messages. Implementations never
// panic into the caller: every failure comes back as an error, and every
// outbound call carries a bounded timeout.
type Gateway interface {
	// Send delivers one templated message to a single phone.
	Send(ctx context.Context, tpl Template, phone string, vars map[string]string) error
	// SendBulk delivers the same templated message to many phones in one
	// gateway call. The call succeeds or fails as a whole.
	SendBulk(ctx context.Context, tpl Template, phones []string, vars map[string]string) error
}
