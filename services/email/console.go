package emailsvc

import (
	"context"
	"fmt"
	"log"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/najahtutors/backend/core"
	"github.com/najahtutors/backend/core/notification"
)

// SentMessage records one delivery made through the console sender.
type SentMessage struct {
	To       mail.Address
	Subject  string
	TextBody string
	HTMLBody string
}

var (
	SentMessages = make([]SentMessage, 0)
	mu           sync.Mutex
	msgCount     int
)

type consoleSender struct {
	defaultFromEmail mail.Address
	subjPrefix       string
	disableOutput    bool
}

var _ notification.EmailSender = (*consoleSender)(nil)

func NewConsoleSender(conf *core.Config) *consoleSender {
	return &consoleSender{
		defaultFromEmail: conf.DefaultFromEmail,
		subjPrefix:       "[" + conf.AppName + "] ",
	}
}

// NewConsoleSenderMock behaves like the console sender but suppresses output;
// deliveries are recorded in SentMessages for assertions.
func NewConsoleSenderMock(conf *core.Config) *consoleSender {
	svc := NewConsoleSender(conf)
	svc.disableOutput = true
	return svc
}

func (svc consoleSender) SendEmail(_ context.Context, to mail.Address, subject, textBody, htmlBody string) (string, error) {
	if !svc.disableOutput {
		body := new(strings.Builder)
		_, _ = fmt.Fprintf(body, "From: %s\r\n", svc.defaultFromEmail.String())
		_, _ = fmt.Fprintf(body, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
		_, _ = fmt.Fprintf(body, "Subject: %s\r\n", svc.subjPrefix+subject)
		_, _ = fmt.Fprintf(body, "To: %s\r\n", to.String())
		_, _ = fmt.Fprintf(body, "\r\n%s\r\n", textBody)
		log.Println(body.String())
	}

	mu.Lock()
	msgCount++
	id := fmt.Sprintf("console-%d", msgCount)
	SentMessages = append(SentMessages, SentMessage{To: to, Subject: svc.subjPrefix + subject, TextBody: textBody, HTMLBody: htmlBody})
	mu.Unlock()
	return id, nil
}

// ClearSentMessages resets the recorded deliveries between tests.
func ClearSentMessages() {
	mu.Lock()
	SentMessages = SentMessages[:0]
	mu.Unlock()
}
