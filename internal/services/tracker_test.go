package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"goldium/internal/datastore/memstore"
	"goldium/internal/models"
)

const testWallet = "4Nd1mYvM6K1ttkVjNzqC3V8HhJVDvM8S2BqkW5e7rGp1"

type lookupFunc func(ctx context.Context, signature string) (*models.ChainStatus, error)

func (f lookupFunc) TransactionStatus(ctx context.Context, signature string) (*models.ChainStatus, error) {
	return f(ctx, signature)
}

func pendingForever(context.Context, string) (*models.ChainStatus, error) {
	return &models.ChainStatus{Status: models.TxStatusPending}, nil
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func submitReq(sig string, amount float64) SubmitRequest {
	return SubmitRequest{
		Signature:     sig,
		WalletAddress: testWallet,
		Type:          models.TxTypeSend,
		Amount:        amount,
		Token:         "GOLD",
	}
}

func TestSubmitIdempotent(t *testing.T) {
	store := memstore.New()
	tracker := NewTracker(store, lookupFunc(pendingForever), time.Millisecond, 2)
	defer tracker.Stop()

	ctx := context.Background()
	if _, err := tracker.Submit(ctx, submitReq("sig-1", 5)); err != nil {
		t.Fatal(err)
	}
	if _, err := tracker.Submit(ctx, submitReq("sig-1", 5)); err != nil {
		t.Fatalf("identical re-submission must be a no-op, got %v", err)
	}

	txs, err := store.ListTransactions(ctx, testWallet, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(txs) != 1 {
		t.Fatalf("store contains %d records, want 1", len(txs))
	}
}

func TestSubmitDuplicateConflict(t *testing.T) {
	store := memstore.New()
	tracker := NewTracker(store, lookupFunc(pendingForever), time.Millisecond, 2)
	defer tracker.Stop()

	ctx := context.Background()
	if _, err := tracker.Submit(ctx, submitReq("sig-1", 5)); err != nil {
		t.Fatal(err)
	}

	_, err := tracker.Submit(ctx, submitReq("sig-1", 9))
	if !errors.Is(err, ErrDuplicateSignature) {
		t.Fatalf("want ErrDuplicateSignature, got %v", err)
	}

	original, err := store.GetTransaction(ctx, "sig-1")
	if err != nil {
		t.Fatal(err)
	}
	if original.Amount != 5 {
		t.Fatalf("original record mutated: %+v", original)
	}
}

func TestSubmitValidation(t *testing.T) {
	store := memstore.New()
	tracker := NewTracker(store, lookupFunc(pendingForever), time.Millisecond, 2)
	defer tracker.Stop()

	ctx := context.Background()
	bad := []SubmitRequest{
		{Signature: "", WalletAddress: testWallet, Type: models.TxTypeSend, Amount: 1},
		{Signature: "s", WalletAddress: "short", Type: models.TxTypeSend, Amount: 1},
		{Signature: "s", WalletAddress: testWallet, Type: "teleport", Amount: 1},
		{Signature: "s", WalletAddress: testWallet, Type: models.TxTypeSend, Amount: 0},
		{Signature: "s", WalletAddress: testWallet, Type: models.TxTypeSend, Amount: -3},
	}
	for i, req := range bad {
		if _, err := tracker.Submit(ctx, req); err == nil {
			t.Fatalf("case %d: invalid request accepted", i)
		}
	}

	if txs, _ := store.ListTransactions(ctx, testWallet, 0); len(txs) != 0 {
		t.Fatal("rejected submissions must never be persisted")
	}
}

func TestConfirmationIncrementsStatsOnce(t *testing.T) {
	store := memstore.New()

	var calls atomic.Int64
	lookup := lookupFunc(func(ctx context.Context, sig string) (*models.ChainStatus, error) {
		if calls.Add(1) < 3 {
			return &models.ChainStatus{Status: models.TxStatusPending}, nil
		}
		slot := int64(1234)
		fee := 0.000005
		return &models.ChainStatus{Status: models.TxStatusConfirmed, Slot: &slot, Fee: &fee}, nil
	})

	tracker := NewTracker(store, lookup, time.Millisecond, 30)
	defer tracker.Stop()

	ctx := context.Background()
	if _, err := tracker.Submit(ctx, submitReq("sig-ok", 7.5)); err != nil {
		t.Fatal(err)
	}

	waitFor(t, func() bool {
		tx, err := store.GetTransaction(ctx, "sig-ok")
		return err == nil && tx.Status == models.TxStatusConfirmed
	})

	tx, err := store.GetTransaction(ctx, "sig-ok")
	if err != nil {
		t.Fatal(err)
	}
	if tx.Slot == nil || *tx.Slot != 1234 {
		t.Fatalf("confirmation detail not recorded: %+v", tx)
	}

	user, err := store.GetUser(ctx, testWallet)
	if err != nil {
		t.Fatal(err)
	}
	if user.TotalTransactions != 1 || user.TotalVolume != 7.5 {
		t.Fatalf("stats = %d/%v, want 1/7.5", user.TotalTransactions, user.TotalVolume)
	}

	// a later poll must not contribute to aggregates a second time
	status, err := tracker.PollStatus(ctx, "sig-ok")
	if err != nil {
		t.Fatal(err)
	}
	if status != models.TxStatusConfirmed {
		t.Fatalf("status = %s", status)
	}
	user, _ = store.GetUser(ctx, testWallet)
	if user.TotalTransactions != 1 {
		t.Fatal("terminal record contributed to aggregates twice")
	}
}

func TestTransientLookupErrorsAreRetried(t *testing.T) {
	store := memstore.New()

	var calls atomic.Int64
	lookup := lookupFunc(func(ctx context.Context, sig string) (*models.ChainStatus, error) {
		if calls.Add(1) < 4 {
			return nil, errors.New("connection reset")
		}
		return &models.ChainStatus{Status: models.TxStatusConfirmed}, nil
	})

	tracker := NewTracker(store, lookup, time.Millisecond, 30)
	defer tracker.Stop()

	ctx := context.Background()
	if _, err := tracker.Submit(ctx, submitReq("sig-flaky", 1)); err != nil {
		t.Fatal(err)
	}

	waitFor(t, func() bool {
		tx, err := store.GetTransaction(ctx, "sig-flaky")
		return err == nil && tx.Status == models.TxStatusConfirmed
	})
}

func TestAttemptBudgetExhaustedMarksUnknown(t *testing.T) {
	store := memstore.New()
	tracker := NewTracker(store, lookupFunc(pendingForever), time.Millisecond, 3)
	defer tracker.Stop()

	ctx := context.Background()
	if _, err := tracker.Submit(ctx, submitReq("sig-stuck", 2)); err != nil {
		t.Fatal(err)
	}

	waitFor(t, func() bool {
		tx, err := store.GetTransaction(ctx, "sig-stuck")
		return err == nil && tx.Status == models.TxStatusFailed
	})

	tx, _ := store.GetTransaction(ctx, "sig-stuck")
	if tx.FailureReason == nil || *tx.FailureReason != FAILURE_REASON_STATUS_UNKNOWN {
		t.Fatalf("timeout must be distinguishable from genuine failure: %+v", tx)
	}

	// giving up must not count toward user aggregates
	user, err := store.GetUser(ctx, testWallet)
	if err != nil {
		t.Fatal(err)
	}
	if user.TotalTransactions != 0 {
		t.Fatal("failed transaction contributed to aggregates")
	}
}

func TestCancelStopsPolling(t *testing.T) {
	store := memstore.New()

	var calls atomic.Int64
	lookup := lookupFunc(func(ctx context.Context, sig string) (*models.ChainStatus, error) {
		calls.Add(1)
		return &models.ChainStatus{Status: models.TxStatusPending}, nil
	})

	tracker := NewTracker(store, lookup, time.Millisecond, 1000)
	defer tracker.Stop()

	ctx := context.Background()
	if _, err := tracker.Submit(ctx, submitReq("sig-cancel", 1)); err != nil {
		t.Fatal(err)
	}

	waitFor(t, func() bool { return calls.Load() > 0 })
	tracker.Cancel("sig-cancel")

	settled := calls.Load()
	time.Sleep(20 * time.Millisecond)
	if calls.Load() > settled+1 {
		t.Fatal("polling continued after cancellation")
	}

	tx, err := store.GetTransaction(ctx, "sig-cancel")
	if err != nil {
		t.Fatal(err)
	}
	if tx.Status != models.TxStatusPending {
		t.Fatal("cancellation must leave the record untouched")
	}
}

func TestEventsReachSubscribers(t *testing.T) {
	store := memstore.New()
	lookup := lookupFunc(func(ctx context.Context, sig string) (*models.ChainStatus, error) {
		return &models.ChainStatus{Status: models.TxStatusConfirmed}, nil
	})

	tracker := NewTracker(store, lookup, time.Millisecond, 5)
	defer tracker.Stop()

	var mu sync.Mutex
	var events []models.TransactionEvent
	tracker.Subscribe(func(evt models.TransactionEvent) {
		mu.Lock()
		events = append(events, evt)
		mu.Unlock()
	})

	if _, err := tracker.Submit(context.Background(), submitReq("sig-evt", 3)); err != nil {
		t.Fatal(err)
	}

	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(events) >= 2
	})

	mu.Lock()
	defer mu.Unlock()
	if events[0].Transaction.Status != models.TxStatusPending {
		t.Fatalf("first event should be pending, got %s", events[0].Transaction.Status)
	}
	last := events[len(events)-1]
	if last.Transaction.Status != models.TxStatusConfirmed || last.Previous != models.TxStatusPending {
		t.Fatalf("terminal event malformed: %+v", last)
	}
}

func TestConcurrentConfirmationsKeepCounts(t *testing.T) {
	store := memstore.New()
	lookup := lookupFunc(func(ctx context.Context, sig string) (*models.ChainStatus, error) {
		return &models.ChainStatus{Status: models.TxStatusConfirmed}, nil
	})

	tracker := NewTracker(store, lookup, time.Millisecond, 5)
	defer tracker.Stop()

	ctx := context.Background()
	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			if _, err := tracker.Submit(ctx, submitReq(fmt.Sprintf("sig-%d", i), 1)); err != nil {
				t.Error(err)
			}
		}(i)
	}
	wg.Wait()

	waitFor(t, func() bool {
		user, err := store.GetUser(ctx, testWallet)
		return err == nil && user.TotalTransactions == n
	})

	user, err := store.GetUser(ctx, testWallet)
	if err != nil {
		t.Fatal(err)
	}
	if user.TotalVolume != float64(n) {
		t.Fatalf("total_volume = %v, want %v", user.TotalVolume, float64(n))
	}
}
