package datastore

import (
	"context"
	"time"

	"goldium/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableUser(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.User)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.User)(nil)).Index("index_users_created_at").IfNotExists().Column("created_at").Exec(ctx)
	return err
}

func UpsertUser(ctx context.Context, db *bun.DB, walletAddress string) (*models.User, error) {
	now := time.Now()
	user := &models.User{
		WalletAddress: walletAddress,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	_, err := db.NewInsert().Model(user).
		On("CONFLICT (wallet_address) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return nil, err
	}

	return FindUserByWallet(ctx, db, walletAddress)
}

func FindUserByWallet(ctx context.Context, db *bun.DB, walletAddress string) (*models.User, error) {
	var user models.User
	err := db.NewSelect().Model(&user).Where("wallet_address = ?", walletAddress).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// IncrementUserStats bumps the aggregate counters in a single statement so
// concurrent confirmations never lose updates.
func IncrementUserStats(ctx context.Context, db *bun.DB, walletAddress string, txDelta int64, volumeDelta float64) error {
	_, err := db.NewUpdate().
		Model((*models.User)(nil)).
		Set("total_transactions = total_transactions + ?", txDelta).
		Set("total_volume = total_volume + ?", volumeDelta).
		Set("updated_at = ?", time.Now()).
		Where("wallet_address = ?", walletAddress).
		Exec(ctx)
	return err
}

func RecordGameStats(ctx context.Context, db *bun.DB, walletAddress string, score int, nftEarned bool) error {
	nftDelta := 0
	if nftEarned {
		nftDelta = 1
	}

	_, err := db.NewUpdate().
		Model((*models.User)(nil)).
		Set("best_game_score = GREATEST(best_game_score, ?)", score).
		Set("games_played = games_played + 1").
		Set("nft_rewards = nft_rewards + ?", nftDelta).
		Set("updated_at = ?", time.Now()).
		Where("wallet_address = ?", walletAddress).
		Exec(ctx)
	return err
}

func IncrementLessonsCompleted(ctx context.Context, db *bun.DB, walletAddress string) error {
	_, err := db.NewUpdate().
		Model((*models.User)(nil)).
		Set("lessons_completed = lessons_completed + 1").
		Set("updated_at = ?", time.Now()).
		Where("wallet_address = ?", walletAddress).
		Exec(ctx)
	return err
}
