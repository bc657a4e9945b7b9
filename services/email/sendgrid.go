package emailsvc

import (
	"context"
	"net/http"
	"net/mail"

	"github.com/pkg/errors"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/najahtutors/backend/core"
	"github.com/najahtutors/backend/core/notification"
)

var (
	host     = "https://api.sendgrid.com"
	endpoint = "/v3/mail/send"
)

type sendgridSender struct {
	key        string
	from       *sgmail.Email
	subjPrefix string
}

var _ notification.EmailSender = (*sendgridSender)(nil)

func NewSendgridSender(conf *core.Config) *sendgridSender {
	return &sendgridSender{
		key:        conf.SendgridApiKey,
		from:       sgmail.NewEmail(conf.DefaultFromEmail.Name, conf.DefaultFromEmail.Address),
		subjPrefix: "[" + conf.AppName + "] ",
	}
}

// SendEmail delivers one message and returns the provider message id.
// An absent API key fails closed as a channel-not-configured error.
func (svc sendgridSender) SendEmail(_ context.Context, to mail.Address, subject, textBody, htmlBody string) (string, error) {
	if svc.key == "" {
		return "", notification.ErrNotConfigured
	}

	req := sendgrid.GetRequest(svc.key, endpoint, host)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(svc.prepare(to, subject, textBody, htmlBody))

	res, err := sendgrid.API(req)
	if err != nil {
		return "", errors.Wrap(err, "sending email")
	}
	if res.StatusCode >= http.StatusBadRequest {
		return "", errors.Errorf("sending email - status: %d - body: %s", res.StatusCode, res.Body)
	}
	return messageID(res.Headers), nil
}

func (svc sendgridSender) prepare(to mail.Address, subject, textBody, htmlBody string) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = svc.subjPrefix + subject
	p.AddTos(sgmail.NewEmail(to.Name, to.Address))

	m := sgmail.NewV3Mail()
	m.SetFrom(svc.from)
	m.AddPersonalizations(p)
	m.AddContent(
		sgmail.NewContent("text/plain", textBody),
		sgmail.NewContent("text/html", htmlBody),
	)
	return m
}

func messageID(headers map[string][]string) string {
	if ids, ok := headers["X-Message-Id"]; ok && len(ids) > 0 {
		return ids[0]
	}
	return ""
}
