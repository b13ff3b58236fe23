package services

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"sync"
	"time"

	"goldium/internal/interfaces"
	"goldium/internal/models"
	"goldium/internal/pkg"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/samber/do"
)

// ServiceTracker owns the transaction lifecycle: it records submitted
// signatures as pending, polls the explorer until a terminal state is seen or
// the attempt budget runs out, and raises events on every status change.
type ServiceTracker struct {
	ledger interfaces.Ledger
	lookup interfaces.StatusLookup

	interval    time.Duration
	maxAttempts int

	mu      sync.Mutex
	watches map[string]context.CancelFunc

	subsMu sync.RWMutex
	subs   []func(models.TransactionEvent)

	rootCtx context.Context
	stop    context.CancelFunc
	wg      sync.WaitGroup
}

func NewServiceTracker(container *do.Injector) (*ServiceTracker, error) {
	ledger, err := do.Invoke[interfaces.Ledger](container)
	if err != nil {
		return nil, err
	}

	lookup, err := do.Invoke[interfaces.StatusLookup](container)
	if err != nil {
		return nil, err
	}

	return NewTracker(ledger, lookup, TRACKER_POLL_INTERVAL, TRACKER_MAX_ATTEMPTS), nil
}

func NewTracker(ledger interfaces.Ledger, lookup interfaces.StatusLookup, interval time.Duration, maxAttempts int) *ServiceTracker {
	ctx, stop := context.WithCancel(context.Background())
	return &ServiceTracker{
		ledger:      ledger,
		lookup:      lookup,
		interval:    interval,
		maxAttempts: maxAttempts,
		watches:     map[string]context.CancelFunc{},
		rootCtx:     ctx,
		stop:        stop,
	}
}

// Subscribe registers a status-change listener. Listeners run inline on the
// polling goroutine and must not block.
func (service *ServiceTracker) Subscribe(fn func(models.TransactionEvent)) {
	service.subsMu.Lock()
	defer service.subsMu.Unlock()
	service.subs = append(service.subs, fn)
}

func (service *ServiceTracker) emit(evt models.TransactionEvent) {
	service.subsMu.RLock()
	defer service.subsMu.RUnlock()
	for _, fn := range service.subs {
		fn(evt)
	}
}

type SubmitRequest struct {
	Signature     string                 `json:"signature"`
	WalletAddress string                 `json:"wallet_address"`
	Type          models.TransactionType `json:"type"`
	Amount        float64                `json:"amount"`
	Token         string                 `json:"token"`
	FromAddress   *string                `json:"from_address,omitempty"`
	ToAddress     *string                `json:"to_address,omitempty"`
}

// Submit records a pending transaction and starts its confirmation watch.
// Re-submitting an identical payload is a no-op; a payload mismatch on an
// existing signature is rejected and leaves the original untouched.
func (service *ServiceTracker) Submit(ctx context.Context, req SubmitRequest) (*models.Transaction, error) {
	if req.Signature == "" {
		return nil, errorx.Wrap(errors.New("missing signature"), errorx.Validation)
	}
	if !pkg.IsValidWalletAddress(req.WalletAddress) {
		return nil, errorx.Wrap(errors.New("invalid wallet address"), errorx.Validation)
	}
	if !req.Type.Valid() {
		return nil, errorx.Wrap(errors.New("unknown transaction type"), errorx.Validation)
	}
	if req.Amount <= 0 {
		return nil, errorx.Wrap(errors.New("amount must be positive"), errorx.Validation)
	}
	if req.Token == "" {
		req.Token = TOKEN_SYMBOL
	}

	existing, err := service.ledger.GetTransaction(ctx, req.Signature)
	if err == nil {
		if existing.Type == req.Type && existing.Amount == req.Amount {
			return existing, nil
		}
		return nil, errorx.Wrap(ErrDuplicateSignature, errorx.Invalid)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	if _, err := service.ledger.UpsertUser(ctx, req.WalletAddress); err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	now := time.Now()
	tx := &models.Transaction{
		Signature:     req.Signature,
		WalletAddress: req.WalletAddress,
		Type:          req.Type,
		Amount:        req.Amount,
		Token:         req.Token,
		Status:        models.TxStatusPending,
		FromAddress:   req.FromAddress,
		ToAddress:     req.ToAddress,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := service.ledger.PutTransaction(ctx, tx); err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	service.emit(models.TransactionEvent{Transaction: tx})
	service.watch(tx.Signature, tx.WalletAddress, tx.Amount)
	return tx, nil
}

// Record stores an already-terminal transaction (e.g. a game reward granted
// off-chain) without starting a watch. Confirmed records still feed the user
// aggregates exactly once.
func (service *ServiceTracker) Record(ctx context.Context, tx *models.Transaction) error {
	if err := service.ledger.PutTransaction(ctx, tx); err != nil {
		return errorx.Wrap(err, errorx.Service)
	}
	if tx.Status == models.TxStatusConfirmed {
		if err := service.ledger.IncrementUserStats(ctx, tx.WalletAddress, 1, tx.Amount); err != nil {
			return errorx.Wrap(err, errorx.Service)
		}
	}
	service.emit(models.TransactionEvent{Transaction: tx})
	return nil
}

func (service *ServiceTracker) watch(signature, walletAddress string, amount float64) {
	service.mu.Lock()
	defer service.mu.Unlock()

	if _, ok := service.watches[signature]; ok {
		return
	}

	ctx, cancel := context.WithCancel(service.rootCtx)
	service.watches[signature] = cancel
	service.wg.Add(1)

	go func() {
		defer service.wg.Done()
		defer service.unwatch(signature)

		ticker := time.NewTicker(service.interval)
		defer ticker.Stop()

		for attempt := 1; attempt <= service.maxAttempts; attempt++ {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			status, err := service.lookup.TransactionStatus(ctx, signature)
			if err != nil {
				// transient; the next tick retries
				continue
			}
			if !status.Status.Terminal() {
				continue
			}

			service.applyTerminal(ctx, signature, walletAddress, amount, status, "")
			return
		}

		// budget exhausted; stop waiting and surface the uncertainty
		service.applyTerminal(ctx, signature, walletAddress, amount,
			&models.ChainStatus{Status: models.TxStatusFailed}, FAILURE_REASON_STATUS_UNKNOWN)
	}()
}

func (service *ServiceTracker) unwatch(signature string) {
	service.mu.Lock()
	defer service.mu.Unlock()
	if cancel, ok := service.watches[signature]; ok {
		cancel()
		delete(service.watches, signature)
	}
}

func (service *ServiceTracker) applyTerminal(ctx context.Context, signature, walletAddress string, amount float64, status *models.ChainStatus, reason string) {
	if ctx.Err() != nil {
		return
	}

	tx, transitioned, err := service.ledger.UpdateTransactionStatus(context.WithoutCancel(ctx), signature, status.Status, status, reason)
	if err != nil {
		log.Printf("tracker: update %s failed: %v", signature, err)
		return
	}
	if !transitioned {
		return
	}

	if tx.Status == models.TxStatusConfirmed {
		if err := service.ledger.IncrementUserStats(context.WithoutCancel(ctx), walletAddress, 1, amount); err != nil {
			log.Printf("tracker: increment stats for %s failed: %v", walletAddress, err)
		}
	}

	service.emit(models.TransactionEvent{Transaction: tx, Previous: models.TxStatusPending})
}

// PollStatus performs a one-shot lookup for a signature and applies any
// terminal result it finds. A lookup failure leaves the record untouched.
func (service *ServiceTracker) PollStatus(ctx context.Context, signature string) (models.TransactionStatus, error) {
	tx, err := service.ledger.GetTransaction(ctx, signature)
	if errors.Is(err, sql.ErrNoRows) {
		return "", errorx.Wrap(errors.New("transaction not found"), errorx.NotExist)
	}
	if err != nil {
		return "", errorx.Wrap(err, errorx.Service)
	}
	if tx.Status.Terminal() {
		return tx.Status, nil
	}

	status, err := service.lookup.TransactionStatus(ctx, signature)
	if err != nil || !status.Status.Terminal() {
		return tx.Status, nil
	}

	service.applyTerminal(ctx, signature, tx.WalletAddress, tx.Amount, status, "")
	service.Cancel(signature)

	updated, err := service.ledger.GetTransaction(ctx, signature)
	if err != nil {
		return tx.Status, nil
	}
	return updated.Status, nil
}

func (service *ServiceTracker) GetTransaction(ctx context.Context, signature string) (*models.Transaction, error) {
	tx, err := service.ledger.GetTransaction(ctx, signature)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errorx.Wrap(errors.New("transaction not found"), errorx.NotExist)
	}
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	return tx, nil
}

func (service *ServiceTracker) GetHistory(ctx context.Context, walletAddress string, limit int) ([]*models.Transaction, error) {
	if limit <= 0 {
		limit = HISTORY_DEFAULT_LIMIT
	}
	if limit > HISTORY_MAX_LIMIT {
		limit = HISTORY_MAX_LIMIT
	}

	txs, err := service.ledger.ListTransactions(ctx, walletAddress, limit)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	return txs, nil
}

// Cancel stops the watch for a signature without touching the record.
func (service *ServiceTracker) Cancel(signature string) {
	service.unwatch(signature)
}

// Stop cancels every watch and waits for the polling goroutines to drain.
func (service *ServiceTracker) Stop() {
	service.stop()
	service.wg.Wait()
}
