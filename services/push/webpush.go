package pushsvc

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/pkg/errors"

	"github.com/najahtutors/backend/core"
	"github.com/najahtutors/backend/core/notification"
)

const defaultTTL = 60 // seconds

type webpushSender struct {
	opts      *webpush.Options // nil when VAPID keys are not configured
	publicKey string
}

var _ notification.PushSender = (*webpushSender)(nil)

func NewWebpushSender(conf *core.Config) *webpushSender {
	svc := &webpushSender{publicKey: conf.Vapid.PublicKey}
	if conf.Vapid.PublicKey != "" && conf.Vapid.PrivateKey != "" && conf.Vapid.Subject != "" {
		svc.opts = &webpush.Options{
			Subscriber:      conf.Vapid.Subject,
			VAPIDPublicKey:  conf.Vapid.PublicKey,
			VAPIDPrivateKey: conf.Vapid.PrivateKey,
			TTL:             defaultTTL,
		}
	}
	return svc
}

// Available reports whether the push channel is configured process-wide.
func (svc *webpushSender) Available() bool {
	return svc.opts != nil
}

// PublicKey returns the VAPID public key browsers need to subscribe.
func (svc *webpushSender) PublicKey() string {
	return svc.publicKey
}

// SendPush delivers one notification to an opaque subscription. A 410 from the
// push service marks the subscription permanently expired so callers can clear it.
func (svc *webpushSender) SendPush(_ context.Context, subscription string, payload notification.PushPayload) (string, error) {
	if svc.opts == nil {
		return "", notification.ErrNotConfigured
	}

	var sub webpush.Subscription
	if err := json.Unmarshal([]byte(subscription), &sub); err != nil {
		return "", errors.Wrap(err, "parsing push subscription")
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", errors.Wrap(err, "encoding push payload")
	}

	res, err := webpush.SendNotification(body, &sub, svc.opts)
	if err != nil {
		return "", errors.Wrap(err, "sending push notification")
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode == http.StatusGone {
		return "", notification.ErrSubscriptionExpired
	}
	if res.StatusCode >= http.StatusBadRequest {
		return "", errors.Errorf("sending push notification - status: %d", res.StatusCode)
	}
	return res.Header.Get("Location"), nil
}
