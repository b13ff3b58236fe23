package memstore

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"goldium/internal/models"
)

func TestUpsertUserIdempotent(t *testing.T) {
	ctx := context.Background()
	store := New()

	first, err := store.UpsertUser(ctx, "wallet-a")
	if err != nil {
		t.Fatal(err)
	}

	if err := store.IncrementUserStats(ctx, "wallet-a", 3, 7.5); err != nil {
		t.Fatal(err)
	}

	again, err := store.UpsertUser(ctx, "wallet-a")
	if err != nil {
		t.Fatal(err)
	}
	if !again.CreatedAt.Equal(first.CreatedAt) {
		t.Fatal("upsert must not recreate an existing user")
	}
	if again.TotalTransactions != 3 || again.TotalVolume != 7.5 {
		t.Fatalf("upsert clobbered counters: %+v", again)
	}
}

func TestGetUserNotFound(t *testing.T) {
	store := New()
	_, err := store.GetUser(context.Background(), "nobody")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("want sql.ErrNoRows, got %v", err)
	}
}

func TestConcurrentIncrementUserStats(t *testing.T) {
	ctx := context.Background()
	store := New()
	if _, err := store.UpsertUser(ctx, "whale"); err != nil {
		t.Fatal(err)
	}

	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			if err := store.IncrementUserStats(ctx, "whale", 1, 1.0); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	user, err := store.GetUser(ctx, "whale")
	if err != nil {
		t.Fatal(err)
	}
	if user.TotalTransactions != n {
		t.Fatalf("lost updates: total_transactions = %d, want %d", user.TotalTransactions, n)
	}
	if user.TotalVolume != float64(n) {
		t.Fatalf("lost updates: total_volume = %v, want %v", user.TotalVolume, float64(n))
	}
}

func TestUpdateTransactionStatusTerminal(t *testing.T) {
	ctx := context.Background()
	store := New()

	tx := &models.Transaction{
		Signature:     "sig-1",
		WalletAddress: "wallet-a",
		Type:          models.TxTypeSend,
		Amount:        5,
		Token:         "GOLD",
		Status:        models.TxStatusPending,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if err := store.PutTransaction(ctx, tx); err != nil {
		t.Fatal(err)
	}

	confirmed, transitioned, err := store.UpdateTransactionStatus(ctx, "sig-1", models.TxStatusConfirmed, nil, "")
	if err != nil {
		t.Fatal(err)
	}
	if !transitioned {
		t.Fatal("first terminal update must report a transition")
	}
	if confirmed.Status != models.TxStatusConfirmed {
		t.Fatalf("status = %s", confirmed.Status)
	}
	confirmedAt := confirmed.UpdatedAt

	// a later failed lookup must not overwrite the terminal state
	after, transitioned, err := store.UpdateTransactionStatus(ctx, "sig-1", models.TxStatusFailed, nil, "late failure")
	if err != nil {
		t.Fatal(err)
	}
	if transitioned {
		t.Fatal("terminal record reported a second transition")
	}
	if after.Status != models.TxStatusConfirmed {
		t.Fatal("terminal status changed")
	}
	if after.UpdatedAt.Before(confirmedAt) {
		t.Fatal("updated_at regressed")
	}
	if after.FailureReason != nil {
		t.Fatal("no-op transition must not attach a failure reason")
	}
}

func TestListTransactionsOrderAndLimit(t *testing.T) {
	ctx := context.Background()
	store := New()

	base := time.Now()
	for i := 0; i < 5; i++ {
		err := store.PutTransaction(ctx, &models.Transaction{
			Signature:     string(rune('a' + i)),
			WalletAddress: "wallet-a",
			Type:          models.TxTypeSend,
			Amount:        1,
			Token:         "GOLD",
			Status:        models.TxStatusPending,
			CreatedAt:     base.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	txs, err := store.ListTransactions(ctx, "wallet-a", 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(txs) != 3 {
		t.Fatalf("len = %d", len(txs))
	}
	for i := 1; i < len(txs); i++ {
		if txs[i].CreatedAt.After(txs[i-1].CreatedAt) {
			t.Fatal("not most-recent first")
		}
	}
}

func TestPruneFailedTransactions(t *testing.T) {
	ctx := context.Background()
	store := New()
	now := time.Now()

	old := &models.Transaction{Signature: "old-failed", WalletAddress: "w", Status: models.TxStatusFailed, UpdatedAt: now.Add(-31 * 24 * time.Hour)}
	confirmed := &models.Transaction{Signature: "old-confirmed", WalletAddress: "w", Status: models.TxStatusConfirmed, UpdatedAt: now.Add(-90 * 24 * time.Hour)}
	recent := &models.Transaction{Signature: "recent-failed", WalletAddress: "w", Status: models.TxStatusFailed, UpdatedAt: now.Add(-time.Hour)}
	for _, tx := range []*models.Transaction{old, confirmed, recent} {
		if err := store.PutTransaction(ctx, tx); err != nil {
			t.Fatal(err)
		}
	}

	removed, err := store.PruneFailedTransactions(ctx, now.Add(-30*24*time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if _, err := store.GetTransaction(ctx, "old-failed"); !errors.Is(err, sql.ErrNoRows) {
		t.Fatal("old failed record should be gone")
	}
	if _, err := store.GetTransaction(ctx, "old-confirmed"); err != nil {
		t.Fatal("confirmed records are retained indefinitely")
	}
	if _, err := store.GetTransaction(ctx, "recent-failed"); err != nil {
		t.Fatal("recent failed record is inside the retention window")
	}
}
