package push

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/google/uuid"

	"github.com/apurva-sri/Bolio-chatWeb/config"
	Push "github.com/apurva-sri/Bolio-chatWeb/internal/push/model"
	"github.com/apurva-sri/Bolio-chatWeb/pkg/logger"
)

// Notification is the payload the service worker unpacks on the client.
type Notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url,omitempty"`
}

// Sender performs the actual Web Push request. Abstracted so tests can swap
// the network out.
type Sender interface {
	Send(payload []byte, sub *Push.Subscription) (statusCode int, err error)
}

type WebPushSender struct {
	opts webpush.Options
}

func NewWebPushSender(cfg config.Push) *WebPushSender {
	return &WebPushSender{opts: webpush.Options{
		Subscriber:      cfg.Subject,
		VAPIDPublicKey:  cfg.VAPIDPublicKey,
		VAPIDPrivateKey: cfg.VAPIDPrivateKey,
		TTL:             60,
	}}
}

func (s *WebPushSender) Send(payload []byte, sub *Push.Subscription) (int, error) {
	resp, err := webpush.SendNotification(payload, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}, &s.opts)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return resp.StatusCode, nil
}

type job struct {
	userID uuid.UUID
	notif  Notification
}

// Notifier delivers notifications to offline users through Web Push. Work is
// handed off to a bounded queue consumed by a small worker pool, so a slow
// push service can never stall message fan-out. Delivery is best-effort: every
// failure is logged and swallowed.
type Notifier struct {
	repo   SubscriptionRepository
	sender Sender
	logger logger.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan job
	wg     sync.WaitGroup
}

func NewNotifier(repo SubscriptionRepository, sender Sender, logger logger.Logger, queueSize, workers int) *Notifier {
	if queueSize <= 0 {
		queueSize = 256
	}
	if workers <= 0 {
		workers = 4
	}
	n := &Notifier{
		repo:   repo,
		sender: sender,
		logger: logger,
		queue:  make(chan job, queueSize),
	}
	for i := 0; i < workers; i++ {
		n.wg.Add(1)
		go n.worker()
	}
	return n
}

// Notify enqueues without blocking. A full queue drops the notification,
// which is acceptable: push is a best-effort side channel.
func (n *Notifier) Notify(userID uuid.UUID, notif Notification) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.closed {
		return
	}
	select {
	case n.queue <- job{userID: userID, notif: notif}:
	default:
		n.logger.Warn("push queue full, dropping notification", "user_id", userID)
	}
}

// Close stops accepting work and waits for in-flight deliveries.
func (n *Notifier) Close() {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	n.closed = true
	close(n.queue)
	n.mu.Unlock()
	n.wg.Wait()
}

func (n *Notifier) worker() {
	defer n.wg.Done()
	for j := range n.queue {
		n.deliver(j)
	}
}

func (n *Notifier) deliver(j job) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	sub, err := n.repo.GetSubscription(ctx, j.userID)
	if err != nil {
		n.logger.Error("failed to load push subscription", "user_id", j.userID, "err", err)
		return
	}
	if sub == nil {
		// user never enabled push, nothing to do
		return
	}

	payload, err := json.Marshal(j.notif)
	if err != nil {
		n.logger.Error("failed to encode push payload", "user_id", j.userID, "err", err)
		return
	}

	status, err := n.sender.Send(payload, sub)
	if err != nil {
		n.logger.Warn("push delivery failed", "user_id", j.userID, "err", err)
		return
	}

	switch {
	case status == http.StatusNotFound || status == http.StatusGone:
		// expired subscription; cleanup is a maintenance task, not retried here
		n.logger.Warn("push subscription gone", "user_id", j.userID, "status", status)
	case status >= 400:
		n.logger.Warn("push endpoint rejected notification", "user_id", j.userID, "status", status)
	}
}
