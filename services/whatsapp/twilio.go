package whatsappsvc

import (
	"context"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/najahtutors/backend/core"
	"github.com/najahtutors/backend/core/notification"
)

var nonDigitRegex = regexp.MustCompile(`\D`)

type twilioSender struct {
	client      *twilio.RestClient
	from        string
	countryCode string
}

var _ notification.WhatsAppSender = (*twilioSender)(nil)

func NewTwilioSender(conf *core.Config) *twilioSender {
	svc := &twilioSender{
		from:        conf.Twilio.WhatsAppFrom,
		countryCode: conf.DefaultCountryCode,
	}
	if conf.Twilio.AccountSID != "" && conf.Twilio.AuthToken != "" {
		svc.client = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: conf.Twilio.AccountSID,
			Password: conf.Twilio.AuthToken,
		})
	}
	return svc
}

// SendWhatsApp delivers one text message and returns the provider message SID.
// Absent credentials or sender identity fail closed as channel-not-configured.
func (svc *twilioSender) SendWhatsApp(_ context.Context, phone, body string) (string, error) {
	if svc.client == nil || svc.from == "" {
		return "", notification.ErrNotConfigured
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(FormatNumber(phone, svc.countryCode))
	params.SetFrom(svc.from)
	params.SetBody(body)

	msg, err := svc.client.Api.CreateMessage(params)
	if err != nil {
		return "", errors.Wrap(err, "sending whatsapp message")
	}
	var sid string
	if msg.Sid != nil {
		sid = *msg.Sid
	}
	return sid, nil
}

// FormatNumber normalizes a phone number to the "whatsapp:+<E.164>" form the
// provider expects. A 10-digit local number gets the default country code prefixed.
func FormatNumber(phone, countryCode string) string {
	digits := nonDigitRegex.ReplaceAllString(phone, "")
	if len(digits) == 10 && countryCode != "" && !strings.HasPrefix(digits, countryCode) {
		digits = countryCode + digits
	}
	return "whatsapp:+" + digits
}
