package datastore

import (
	"context"
	"time"

	"goldium/internal/models"

	"github.com/uptrace/bun"
)

// BunLedger is the Postgres-backed ledger. Per-record atomicity comes from
// single-statement writes; counter updates run as in-place SQL increments.
type BunLedger struct {
	db *bun.DB
}

func NewBunLedger(db *bun.DB) *BunLedger {
	return &BunLedger{db: db}
}

func (l *BunLedger) UpsertUser(ctx context.Context, walletAddress string) (*models.User, error) {
	return UpsertUser(ctx, l.db, walletAddress)
}

func (l *BunLedger) GetUser(ctx context.Context, walletAddress string) (*models.User, error) {
	return FindUserByWallet(ctx, l.db, walletAddress)
}

func (l *BunLedger) IncrementUserStats(ctx context.Context, walletAddress string, txDelta int64, volumeDelta float64) error {
	return IncrementUserStats(ctx, l.db, walletAddress, txDelta, volumeDelta)
}

func (l *BunLedger) RecordGameStats(ctx context.Context, walletAddress string, score int, nftEarned bool) error {
	return RecordGameStats(ctx, l.db, walletAddress, score, nftEarned)
}

func (l *BunLedger) IncrementLessonsCompleted(ctx context.Context, walletAddress string) error {
	return IncrementLessonsCompleted(ctx, l.db, walletAddress)
}

func (l *BunLedger) PutTransaction(ctx context.Context, tx *models.Transaction) error {
	return InsertTransaction(ctx, l.db, tx)
}

func (l *BunLedger) GetTransaction(ctx context.Context, signature string) (*models.Transaction, error) {
	return FindTransactionBySignature(ctx, l.db, signature)
}

func (l *BunLedger) UpdateTransactionStatus(ctx context.Context, signature string, status models.TransactionStatus, detail *models.ChainStatus, reason string) (*models.Transaction, bool, error) {
	return UpdateTransactionStatus(ctx, l.db, signature, status, detail, reason)
}

func (l *BunLedger) ListTransactions(ctx context.Context, walletAddress string, limit int) ([]*models.Transaction, error) {
	return GetTransactionsByWallet(ctx, l.db, walletAddress, limit)
}

func (l *BunLedger) PruneFailedTransactions(ctx context.Context, before time.Time) (int, error) {
	return DeleteFailedTransactionsBefore(ctx, l.db, before)
}

func (l *BunLedger) CreateStakingRecord(ctx context.Context, record *models.StakingRecord) error {
	return InsertStakingRecord(ctx, l.db, record)
}

func (l *BunLedger) GetStakingRecord(ctx context.Context, id string) (*models.StakingRecord, error) {
	return FindStakingRecordByID(ctx, l.db, id)
}

func (l *BunLedger) ListActiveStakingRecords(ctx context.Context, walletAddress string) ([]*models.StakingRecord, error) {
	return GetActiveStakingRecords(ctx, l.db, walletAddress)
}

func (l *BunLedger) AddRewardsClaimed(ctx context.Context, id string, amount float64) error {
	return AddRewardsClaimed(ctx, l.db, id, amount)
}

func (l *BunLedger) DeactivateStakingRecord(ctx context.Context, id string, at time.Time) error {
	return DeactivateStakingRecord(ctx, l.db, id, at)
}

func (l *BunLedger) SumActiveStaked(ctx context.Context) (float64, error) {
	return SumActiveStaked(ctx, l.db)
}

func (l *BunLedger) CreateGameResult(ctx context.Context, result *models.GameResult) error {
	return InsertGameResult(ctx, l.db, result)
}

func (l *BunLedger) ListGameResults(ctx context.Context, walletAddress string, limit int) ([]*models.GameResult, error) {
	return GetGameResultsByWallet(ctx, l.db, walletAddress, limit)
}
