package notification

import (
	"context"
	"errors"
	"net/mail"
	"time"
)

// Channel is one notification delivery mechanism.
type Channel string

const (
	ChannelEmail    Channel = "email"
	ChannelWhatsApp Channel = "whatsapp"
	ChannelPush     Channel = "push"
)

// AllChannels lists every delivery mechanism a dispatch considers, in result order.
var AllChannels = []Channel{ChannelEmail, ChannelWhatsApp, ChannelPush}

// Outcome is the tri-state result of one (recipient, channel) delivery attempt.
type Outcome string

const (
	OutcomeSent    Outcome = "sent"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

// skip/failure reasons reported in DispatchResult.Reason
const (
	ReasonNotConfigured  = "not configured"
	ReasonMissingContact = "missing contact info"
	ReasonPreferenceOff  = "preference disabled"
	ReasonExpired        = "expired"
)

var (
	// errors
	ErrNotConfigured       = errors.New("channel not configured")
	ErrSubscriptionExpired = errors.New("push subscription expired")
	ErrMissingEvent        = errors.New("missing class event snapshot")
)

// Preferences holds a recipient's per-channel opt-in flags.
// A nil flag means unset; only an explicit false disables the channel.
type Preferences struct {
	Email    *bool `json:"email,omitempty"`
	WhatsApp *bool `json:"whatsapp,omitempty"`
	Push     *bool `json:"push,omitempty"`
}

func (p *Preferences) allows(ch Channel) bool {
	if p == nil {
		return true
	}
	var flag *bool
	switch ch {
	case ChannelEmail:
		flag = p.Email
	case ChannelWhatsApp:
		flag = p.WhatsApp
	case ChannelPush:
		flag = p.Push
	}
	return flag == nil || *flag
}

// Recipient is a notifiable party with contact data and channel preferences.
type Recipient struct {
	Name             string
	Email            string
	Phone            string
	PushSubscription string // opaque subscription JSON captured from the browser
	Preferences      *Preferences
}

func (r Recipient) contact(ch Channel) string {
	switch ch {
	case ChannelEmail:
		return r.Email
	case ChannelWhatsApp:
		return r.Phone
	case ChannelPush:
		return r.PushSubscription
	}
	return ""
}

// eligibility reports whether ch should be attempted for r;
// when not, it returns the skip reason.
func (r Recipient) eligibility(ch Channel) (string, bool) {
	if r.contact(ch) == "" {
		return ReasonMissingContact, false
	}
	if !r.Preferences.allows(ch) {
		return ReasonPreferenceOff, false
	}
	return "", true
}

// ClassEvent is an immutable snapshot of a scheduled session at the moment of dispatch.
type ClassEvent struct {
	ClassID     string
	Title       string
	Subject     string
	Board       string
	ClassName   string
	ScheduledAt time.Time
	TimeSlot    string
	Days        []string
	MeetingLink string
	Reason      string // cancellation reason; only set on cancellation events
}

func (e ClassEvent) isZero() bool {
	return e.Subject == "" && e.Title == "" && e.ScheduledAt.IsZero()
}

// DispatchResult is the outcome of one (recipient, channel) pair within a dispatch.
type DispatchResult struct {
	Recipient string  `json:"recipient"`
	Channel   Channel `json:"channel"`
	Outcome   Outcome `json:"outcome"`
	Reason    string  `json:"reason,omitempty"`
	MessageID string  `json:"message_id,omitempty"`
}

// Expired reports whether the result is a permanently invalid push destination,
// so a caller may clear the stored subscription.
func (r DispatchResult) Expired() bool {
	return r.Outcome == OutcomeFailed && r.Reason == ReasonExpired
}

type (
	PushAction struct {
		Action string `json:"action"`
		Title  string `json:"title"`
	}

	PushData struct {
		URL     string `json:"url,omitempty"`
		ClassID string `json:"classId,omitempty"`
	}

	// PushPayload is the structured notification body handed to the push service.
	PushPayload struct {
		Title   string       `json:"title"`
		Body    string       `json:"body"`
		Icon    string       `json:"icon,omitempty"`
		Badge   string       `json:"badge,omitempty"`
		Data    PushData     `json:"data,omitempty"`
		Actions []PushAction `json:"actions,omitempty"`
	}
)

// Channel sender contracts. Implementations never panic: configuration absence,
// provider failures and invalid destinations are all reported as error values
// which the dispatcher maps to per-pair outcomes.
type (
	// EmailSender delivers one email and returns the provider message id.
	EmailSender interface {
		SendEmail(ctx context.Context, to mail.Address, subject, textBody, htmlBody string) (string, error)
	}

	// WhatsAppSender delivers one WhatsApp text message and returns the provider message id.
	WhatsAppSender interface {
		SendWhatsApp(ctx context.Context, phone, body string) (string, error)
	}

	// PushSender delivers one web push notification to an opaque subscription.
	// Available reports whether the push channel is configured process-wide.
	PushSender interface {
		Available() bool
		SendPush(ctx context.Context, subscription string, payload PushPayload) (string, error)
	}
)
