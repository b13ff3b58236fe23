package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"goldium/internal/models"
	"goldium/internal/pkg/chain"

	"github.com/samber/do"
)

type explorerURLer interface {
	ExplorerURL(signature string) string
}

// ServiceNotification projects tracker events into the bounded notification
// feed the UI renders. The feed is in-memory and derived; nothing here writes
// back to the ledger.
type ServiceNotification struct {
	explorer explorerURLer

	mu      sync.Mutex
	entries []*models.Notification

	limit int
	ttl   time.Duration
	now   func() time.Time
}

func NewServiceNotification(container *do.Injector) (*ServiceNotification, error) {
	explorer, err := do.Invoke[*chain.Client](container)
	if err != nil {
		return nil, err
	}

	return NewNotificationFeed(explorer, NOTIFICATION_FEED_LIMIT, NOTIFICATION_AUTO_HIDE_TTL), nil
}

func NewNotificationFeed(explorer explorerURLer, limit int, ttl time.Duration) *ServiceNotification {
	return &ServiceNotification{
		explorer: explorer,
		limit:    limit,
		ttl:      ttl,
		now:      time.Now,
	}
}

func classForStatus(status models.TransactionStatus) models.NotificationClass {
	switch status {
	case models.TxStatusConfirmed:
		return models.NotificationSuccess
	case models.TxStatusFailed:
		return models.NotificationError
	}
	return models.NotificationPending
}

func titleFor(tx *models.Transaction) string {
	action := strings.ToUpper(string(tx.Type)[:1]) + string(tx.Type)[1:]
	switch tx.Status {
	case models.TxStatusConfirmed:
		return action + " Confirmed"
	case models.TxStatusFailed:
		return action + " Failed"
	}
	return action + " Processing"
}

func messageFor(tx *models.Transaction, explorerURL string) string {
	msg := fmt.Sprintf("%g %s", tx.Amount, tx.Token)
	if tx.Status == models.TxStatusFailed {
		if tx.FailureReason != nil && *tx.FailureReason == FAILURE_REASON_STATUS_UNKNOWN {
			return fmt.Sprintf("%s - status unknown, verify on explorer: %s", msg, explorerURL)
		}
		return fmt.Sprintf("%s - check %s", msg, explorerURL)
	}
	return msg
}

// HandleEvent keeps at most one live entry per signature, updating it in place
// on status changes and inserting new signatures at the front of the feed.
func (service *ServiceNotification) HandleEvent(evt models.TransactionEvent) {
	tx := evt.Transaction
	url := service.explorer.ExplorerURL(tx.Signature)

	service.mu.Lock()
	defer service.mu.Unlock()

	for _, entry := range service.entries {
		if entry.Signature == tx.Signature {
			entry.Class = classForStatus(tx.Status)
			entry.Title = titleFor(tx)
			entry.Message = messageFor(tx, url)
			entry.AutoHide = tx.Status == models.TxStatusConfirmed
			entry.CreatedAt = service.now()
			return
		}
	}

	entry := &models.Notification{
		Signature:   tx.Signature,
		Class:       classForStatus(tx.Status),
		Title:       titleFor(tx),
		Message:     messageFor(tx, url),
		ExplorerURL: url,
		CreatedAt:   service.now(),
		AutoHide:    tx.Status == models.TxStatusConfirmed,
	}

	service.entries = append([]*models.Notification{entry}, service.entries...)
	if len(service.entries) > service.limit {
		service.entries = service.entries[:service.limit]
	}
}

// Feed returns a snapshot, most recent first.
func (service *ServiceNotification) Feed() []models.Notification {
	service.mu.Lock()
	defer service.mu.Unlock()

	out := make([]models.Notification, 0, len(service.entries))
	for _, entry := range service.entries {
		out = append(out, *entry)
	}
	return out
}

func (service *ServiceNotification) Dismiss(signature string) {
	service.mu.Lock()
	defer service.mu.Unlock()

	kept := service.entries[:0]
	for _, entry := range service.entries {
		if entry.Signature != signature {
			kept = append(kept, entry)
		}
	}
	service.entries = kept
}

// Sweep drops auto-hide entries older than the TTL. Pending and error entries
// stay until dismissed or updated.
func (service *ServiceNotification) Sweep() {
	now := service.now()

	service.mu.Lock()
	defer service.mu.Unlock()

	kept := service.entries[:0]
	for _, entry := range service.entries {
		if entry.AutoHide && now.Sub(entry.CreatedAt) >= service.ttl {
			continue
		}
		kept = append(kept, entry)
	}
	service.entries = kept
}

// Run sweeps on a fixed tick until the context is cancelled.
func (service *ServiceNotification) Run(ctx context.Context) {
	ticker := time.NewTicker(NOTIFICATION_SWEEP_TICK)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			service.Sweep()
		}
	}
}
