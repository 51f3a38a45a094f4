// Package activity records the household activity feed and relays new
// entries to external notifiers.
package activity

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mmynk/roomieboard/internal/metrics"
	"github.com/mmynk/roomieboard/internal/models"
	"github.com/mmynk/roomieboard/internal/storage"
)

const relayTimeout = 10 * time.Second

// Notifier delivers a recorded notification outside the app.
type Notifier interface {
	Name() string
	Notify(ctx context.Context, n models.Notification) error
}

// Recorder stores notifications and relays them in the background.
type Recorder struct {
	store     storage.ActivityStore
	notifiers []Notifier
	wg        sync.WaitGroup
}

func NewRecorder(store storage.ActivityStore, notifiers ...Notifier) *Recorder {
	return &Recorder{store: store, notifiers: notifiers}
}

// Record stores a notification and starts relaying it. Relay failures are
// logged and never returned.
func (r *Recorder) Record(ctx context.Context, message string, kind models.NotificationType) (*models.Notification, error) {
	n := &models.Notification{Message: message, Type: kind}
	if err := r.store.AddNotification(ctx, n); err != nil {
		return nil, fmt.Errorf("failed to record activity: %w", err)
	}

	for _, notifier := range r.notifiers {
		r.wg.Add(1)
		go r.relay(context.WithoutCancel(ctx), notifier, *n)
	}
	return n, nil
}

func (r *Recorder) relay(ctx context.Context, notifier Notifier, n models.Notification) {
	defer r.wg.Done()

	ctx, cancel := context.WithTimeout(ctx, relayTimeout)
	defer cancel()

	if err := notifier.Notify(ctx, n); err != nil {
		metrics.IncNotificationRelay(notifier.Name(), metrics.ResultError)
		slog.Warn("Failed to relay notification",
			"notifier", notifier.Name(),
			"notification_id", n.ID,
			"error", err,
		)
		return
	}
	metrics.IncNotificationRelay(notifier.Name(), metrics.ResultSuccess)
}

// Wait blocks until in-flight relays finish.
func (r *Recorder) Wait() {
	r.wg.Wait()
}
