package interfaces

import (
	"context"
	"time"

	"goldium/internal/models"

	"github.com/go-redis/redis_rate/v10"
)

type Limiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) error
}

// StatusLookup resolves a signature to its confirmation state on the chain.
// Implementations query an external explorer; errors are transient and callers
// are expected to retry.
type StatusLookup interface {
	TransactionStatus(ctx context.Context, signature string) (*models.ChainStatus, error)
}

// Ledger is the keyed store behind the tracker, reward flows and analytics.
// Every write is atomic with respect to a single record; concurrent
// IncrementUserStats calls for the same wallet must not lose updates.
type Ledger interface {
	UpsertUser(ctx context.Context, walletAddress string) (*models.User, error)
	GetUser(ctx context.Context, walletAddress string) (*models.User, error)
	IncrementUserStats(ctx context.Context, walletAddress string, txDelta int64, volumeDelta float64) error
	RecordGameStats(ctx context.Context, walletAddress string, score int, nftEarned bool) error
	IncrementLessonsCompleted(ctx context.Context, walletAddress string) error

	PutTransaction(ctx context.Context, tx *models.Transaction) error
	GetTransaction(ctx context.Context, signature string) (*models.Transaction, error)
	// UpdateTransactionStatus applies a status transition. The bool reports
	// whether the record actually moved; terminal records never move again and
	// come back unchanged with false.
	UpdateTransactionStatus(ctx context.Context, signature string, status models.TransactionStatus, detail *models.ChainStatus, reason string) (*models.Transaction, bool, error)
	ListTransactions(ctx context.Context, walletAddress string, limit int) ([]*models.Transaction, error)
	PruneFailedTransactions(ctx context.Context, before time.Time) (int, error)

	CreateStakingRecord(ctx context.Context, record *models.StakingRecord) error
	GetStakingRecord(ctx context.Context, id string) (*models.StakingRecord, error)
	ListActiveStakingRecords(ctx context.Context, walletAddress string) ([]*models.StakingRecord, error)
	AddRewardsClaimed(ctx context.Context, id string, amount float64) error
	DeactivateStakingRecord(ctx context.Context, id string, at time.Time) error
	SumActiveStaked(ctx context.Context) (float64, error)

	CreateGameResult(ctx context.Context, result *models.GameResult) error
	ListGameResults(ctx context.Context, walletAddress string, limit int) ([]*models.GameResult, error)
}
