// Package memstore is the in-memory ledger used for development and tests when
// no database is configured. Writes serialize on a single lock, which gives the
// same no-lost-update guarantee the SQL increments provide.
package memstore

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"goldium/internal/models"
)

type Store struct {
	mu           sync.RWMutex
	users        map[string]*models.User
	transactions map[string]*models.Transaction
	staking      map[string]*models.StakingRecord
	games        map[string][]*models.GameResult
}

func New() *Store {
	return &Store{
		users:        map[string]*models.User{},
		transactions: map[string]*models.Transaction{},
		staking:      map[string]*models.StakingRecord{},
		games:        map[string][]*models.GameResult{},
	}
}

func (s *Store) UpsertUser(_ context.Context, walletAddress string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user, ok := s.users[walletAddress]; ok {
		out := *user
		return &out, nil
	}

	now := time.Now()
	user := &models.User{
		WalletAddress: walletAddress,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.users[walletAddress] = user

	out := *user
	return &out, nil
}

func (s *Store) GetUser(_ context.Context, walletAddress string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[walletAddress]
	if !ok {
		return nil, sql.ErrNoRows
	}
	out := *user
	return &out, nil
}

func (s *Store) IncrementUserStats(_ context.Context, walletAddress string, txDelta int64, volumeDelta float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[walletAddress]
	if !ok {
		return sql.ErrNoRows
	}
	user.TotalTransactions += txDelta
	user.TotalVolume += volumeDelta
	user.UpdatedAt = time.Now()
	return nil
}

func (s *Store) RecordGameStats(_ context.Context, walletAddress string, score int, nftEarned bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[walletAddress]
	if !ok {
		return sql.ErrNoRows
	}
	if score > user.BestGameScore {
		user.BestGameScore = score
	}
	user.GamesPlayed++
	if nftEarned {
		user.NFTRewards++
	}
	user.UpdatedAt = time.Now()
	return nil
}

func (s *Store) IncrementLessonsCompleted(_ context.Context, walletAddress string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[walletAddress]
	if !ok {
		return sql.ErrNoRows
	}
	user.LessonsCompleted++
	user.UpdatedAt = time.Now()
	return nil
}

func (s *Store) PutTransaction(_ context.Context, tx *models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *tx
	s.transactions[tx.Signature] = &stored
	return nil
}

func (s *Store) GetTransaction(_ context.Context, signature string) (*models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tx, ok := s.transactions[signature]
	if !ok {
		return nil, sql.ErrNoRows
	}
	out := *tx
	return &out, nil
}

func (s *Store) UpdateTransactionStatus(_ context.Context, signature string, status models.TransactionStatus, detail *models.ChainStatus, reason string) (*models.Transaction, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, ok := s.transactions[signature]
	if !ok {
		return nil, false, sql.ErrNoRows
	}

	// terminal records are final; return them untouched
	if tx.Status.Terminal() {
		out := *tx
		return &out, false, nil
	}

	tx.Status = status
	tx.UpdatedAt = time.Now()
	if detail != nil {
		if detail.Slot != nil {
			slot := *detail.Slot
			tx.Slot = &slot
		}
		if detail.Fee != nil {
			fee := *detail.Fee
			tx.Fee = &fee
		}
	}
	if reason != "" {
		r := reason
		tx.FailureReason = &r
	}

	out := *tx
	return &out, true, nil
}

func (s *Store) ListTransactions(_ context.Context, walletAddress string, limit int) ([]*models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var txs []*models.Transaction
	for _, tx := range s.transactions {
		if tx.WalletAddress != walletAddress {
			continue
		}
		out := *tx
		txs = append(txs, &out)
	}

	sort.Slice(txs, func(i, j int) bool {
		return txs[i].CreatedAt.After(txs[j].CreatedAt)
	})

	if limit > 0 && len(txs) > limit {
		txs = txs[:limit]
	}
	return txs, nil
}

func (s *Store) PruneFailedTransactions(_ context.Context, before time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for sig, tx := range s.transactions {
		if tx.Status == models.TxStatusFailed && tx.UpdatedAt.Before(before) {
			delete(s.transactions, sig)
			removed++
		}
	}
	return removed, nil
}

func (s *Store) CreateStakingRecord(_ context.Context, record *models.StakingRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *record
	s.staking[record.ID] = &stored
	return nil
}

func (s *Store) GetStakingRecord(_ context.Context, id string) (*models.StakingRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.staking[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	out := *record
	return &out, nil
}

func (s *Store) ListActiveStakingRecords(_ context.Context, walletAddress string) ([]*models.StakingRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var records []*models.StakingRecord
	for _, record := range s.staking {
		if record.WalletAddress != walletAddress || !record.Active {
			continue
		}
		out := *record
		records = append(records, &out)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].StakedAt.Before(records[j].StakedAt)
	})
	return records, nil
}

func (s *Store) AddRewardsClaimed(_ context.Context, id string, amount float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.staking[id]
	if !ok {
		return sql.ErrNoRows
	}
	record.RewardsClaimed += amount
	return nil
}

func (s *Store) DeactivateStakingRecord(_ context.Context, id string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.staking[id]
	if !ok {
		return sql.ErrNoRows
	}
	record.Active = false
	record.UnstakedAt = &at
	return nil
}

func (s *Store) SumActiveStaked(_ context.Context) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total float64
	for _, record := range s.staking {
		if record.Active {
			total += record.Amount
		}
	}
	return total, nil
}

func (s *Store) CreateGameResult(_ context.Context, result *models.GameResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *result
	s.games[result.WalletAddress] = append(s.games[result.WalletAddress], &stored)
	return nil
}

func (s *Store) ListGameResults(_ context.Context, walletAddress string, limit int) ([]*models.GameResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.games[walletAddress]
	var results []*models.GameResult
	for i := len(all) - 1; i >= 0; i-- {
		out := *all[i]
		results = append(results, &out)
		if limit > 0 && len(results) == limit {
			break
		}
	}
	return results, nil
}
