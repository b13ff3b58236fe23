package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"goldium/internal/models"
)

type fakeExplorer struct{}

func (fakeExplorer) ExplorerURL(signature string) string {
	return "https://solscan.io/tx/" + signature
}

func event(sig string, status models.TransactionStatus, reason string) models.TransactionEvent {
	tx := &models.Transaction{
		Signature:     sig,
		WalletAddress: "wallet",
		Type:          models.TxTypeSend,
		Amount:        2.5,
		Token:         "GOLD",
		Status:        status,
	}
	if reason != "" {
		tx.FailureReason = &reason
	}
	return models.TransactionEvent{Transaction: tx}
}

func TestFeedCapAndEviction(t *testing.T) {
	feed := NewNotificationFeed(fakeExplorer{}, 5, 10*time.Second)

	for i := 0; i < 6; i++ {
		feed.HandleEvent(event(fmt.Sprintf("sig-%d", i), models.TxStatusPending, ""))
	}

	got := feed.Feed()
	if len(got) != 5 {
		t.Fatalf("len = %d, want 5", len(got))
	}
	if got[0].Signature != "sig-5" {
		t.Fatalf("newest first, got %s", got[0].Signature)
	}
	for _, n := range got {
		if n.Signature == "sig-0" {
			t.Fatal("oldest entry should have been evicted")
		}
	}
}

func TestStatusChangeUpdatesInPlace(t *testing.T) {
	feed := NewNotificationFeed(fakeExplorer{}, 5, 10*time.Second)

	feed.HandleEvent(event("sig-a", models.TxStatusPending, ""))
	feed.HandleEvent(event("sig-a", models.TxStatusConfirmed, ""))

	got := feed.Feed()
	if len(got) != 1 {
		t.Fatalf("duplicate entry for one signature: len = %d", len(got))
	}
	if got[0].Class != models.NotificationSuccess {
		t.Fatalf("class = %s", got[0].Class)
	}
	if got[0].Title != "Send Confirmed" {
		t.Fatalf("title = %q", got[0].Title)
	}
	if !got[0].AutoHide {
		t.Fatal("confirmed notifications auto-hide")
	}
}

func TestAutoExpiry(t *testing.T) {
	feed := NewNotificationFeed(fakeExplorer{}, 5, 10*time.Second)
	clock := time.Now()
	feed.now = func() time.Time { return clock }

	feed.HandleEvent(event("sig-ok", models.TxStatusConfirmed, ""))
	feed.HandleEvent(event("sig-wait", models.TxStatusPending, ""))
	feed.HandleEvent(event("sig-bad", models.TxStatusFailed, FAILURE_REASON_STATUS_UNKNOWN))

	clock = clock.Add(9 * time.Second)
	feed.Sweep()
	if len(feed.Feed()) != 3 {
		t.Fatal("nothing should expire before the ttl")
	}

	clock = clock.Add(2 * time.Second)
	feed.Sweep()

	got := feed.Feed()
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	for _, n := range got {
		if n.Signature == "sig-ok" {
			t.Fatal("success notification should have expired")
		}
		if n.AutoHide {
			t.Fatal("pending and error entries never auto-hide")
		}
	}
}

func TestFailureMessageCarriesExplorerLink(t *testing.T) {
	feed := NewNotificationFeed(fakeExplorer{}, 5, 10*time.Second)
	feed.HandleEvent(event("sig-x", models.TxStatusFailed, FAILURE_REASON_STATUS_UNKNOWN))

	got := feed.Feed()
	if len(got) != 1 {
		t.Fatal("missing entry")
	}
	if !strings.Contains(got[0].Message, "https://solscan.io/tx/sig-x") {
		t.Fatalf("message %q lacks explorer link", got[0].Message)
	}
	if !strings.Contains(got[0].Message, "status unknown") {
		t.Fatalf("message %q should distinguish timeout from genuine failure", got[0].Message)
	}
}

func TestDismiss(t *testing.T) {
	feed := NewNotificationFeed(fakeExplorer{}, 5, 10*time.Second)
	feed.HandleEvent(event("sig-1", models.TxStatusPending, ""))
	feed.HandleEvent(event("sig-2", models.TxStatusPending, ""))

	feed.Dismiss("sig-1")

	got := feed.Feed()
	if len(got) != 1 || got[0].Signature != "sig-2" {
		t.Fatalf("unexpected feed after dismiss: %+v", got)
	}
}
