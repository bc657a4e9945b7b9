package notification

import (
	"context"
	"fmt"
	"net/mail"
	"sync"

	"github.com/pkg/errors"

	"github.com/najahtutors/backend/core"
)

// Kind is the class-lifecycle event a dispatch covers.
type Kind string

const (
	KindScheduled Kind = "scheduled"
	KindCancelled Kind = "cancelled"
)

// Service fans one class-lifecycle event out to every eligible (recipient, channel)
// pair. Failures are isolated per pair: one provider error never blocks or fails
// sibling channels or sibling recipients, and no error from an individual send
// propagates past the dispatch boundary.
//
// Delivery is best-effort and fire-and-forget: no retries, no outbox, and repeated
// dispatches with identical inputs cause duplicate deliveries.
type Service struct {
	email  EmailSender
	wa     WhatsAppSender
	push   PushSender
	logger core.Logger
}

func NewService(email EmailSender, wa WhatsAppSender, push PushSender, logger core.Logger) *Service {
	return &Service{
		email:  email,
		wa:     wa,
		push:   push,
		logger: logger,
	}
}

// NotifyClassScheduled dispatches the class-scheduled notification to recipients.
// Fired on class creation and on a recipient's new enrollment.
func (svc *Service) NotifyClassScheduled(ctx context.Context, recipients []Recipient, event ClassEvent) ([]DispatchResult, error) {
	return svc.dispatch(ctx, KindScheduled, event, recipients)
}

// NotifyClassCancelled dispatches the cancellation notification to recipients.
// An empty reason renders as a generic fallback phrase.
func (svc *Service) NotifyClassCancelled(ctx context.Context, recipients []Recipient, event ClassEvent, reason string) ([]DispatchResult, error) {
	event.Reason = reason
	return svc.dispatch(ctx, KindCancelled, event, recipients)
}

// PushAvailable reports whether the push channel is configured process-wide.
func (svc *Service) PushAvailable() bool {
	return svc.push != nil && svc.push.Available()
}

// dispatch renders per-recipient messages and invokes the eligible channel senders
// concurrently, collecting one flat result entry per (recipient, channel) pair.
// It only errors on structurally invalid input; per-pair failures land in results.
func (svc *Service) dispatch(ctx context.Context, kind Kind, event ClassEvent, recipients []Recipient) ([]DispatchResult, error) {
	if event.isZero() {
		return nil, ErrMissingEvent
	}

	results := make([]DispatchResult, 0, len(recipients)*len(AllChannels))
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	collect := func(res DispatchResult) {
		mu.Lock()
		results = append(results, res)
		mu.Unlock()
	}

	for _, rec := range recipients {
		rec := rec
		msg := render(kind, event, rec.Name)
		for _, ch := range AllChannels {
			ch := ch
			if reason, ok := rec.eligibility(ch); !ok {
				collect(DispatchResult{Recipient: rec.Name, Channel: ch, Outcome: OutcomeSkipped, Reason: reason})
				continue
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				collect(svc.send(ctx, ch, rec, msg))
			}()
		}
	}
	wg.Wait()

	svc.logResults(kind, event, results)
	return results, nil
}

func (svc *Service) send(ctx context.Context, ch Channel, rec Recipient, msg messages) DispatchResult {
	var (
		id  string
		err error
	)
	switch ch {
	case ChannelEmail:
		if svc.email == nil {
			err = ErrNotConfigured
			break
		}
		to := mail.Address{Name: rec.Name, Address: rec.Email}
		id, err = svc.email.SendEmail(ctx, to, msg.emailSubject, msg.emailText, msg.emailHTML)
	case ChannelWhatsApp:
		if svc.wa == nil {
			err = ErrNotConfigured
			break
		}
		id, err = svc.wa.SendWhatsApp(ctx, rec.Phone, msg.whatsApp)
	case ChannelPush:
		if svc.push == nil {
			err = ErrNotConfigured
			break
		}
		id, err = svc.push.SendPush(ctx, rec.PushSubscription, msg.push)
	}

	res := DispatchResult{Recipient: rec.Name, Channel: ch, MessageID: id}
	switch errors.Cause(err) {
	case nil:
		res.Outcome = OutcomeSent
	case ErrNotConfigured:
		res.Outcome, res.Reason = OutcomeSkipped, ReasonNotConfigured
	case ErrSubscriptionExpired:
		res.Outcome, res.Reason = OutcomeFailed, ReasonExpired
	default:
		res.Outcome, res.Reason = OutcomeFailed, err.Error()
	}
	return res
}

// logResults records every outcome so detached callers that discard the returned
// list still get visibility into delivery.
func (svc *Service) logResults(kind Kind, event ClassEvent, results []DispatchResult) {
	if svc.logger == nil {
		return
	}
	for _, res := range results {
		msg := fmt.Sprintf("notification %s (%s): %s via %s -> %s", kind, event.Subject, res.Recipient, res.Channel, res.Outcome)
		switch res.Outcome {
		case OutcomeFailed:
			svc.logger.Warn(fmt.Sprintf("%s (%s)", msg, res.Reason))
		case OutcomeSkipped:
			svc.logger.Debug(fmt.Sprintf("%s (%s)", msg, res.Reason))
		default:
			svc.logger.Info(msg)
		}
	}
}
