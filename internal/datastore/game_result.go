package datastore

import (
	"context"

	"goldium/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableGameResult(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.GameResult)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.GameResult)(nil)).Index("index_game_results_wallet").IfNotExists().Column("wallet_address").Exec(ctx)
	return err
}

func InsertGameResult(ctx context.Context, db *bun.DB, result *models.GameResult) error {
	_, err := db.NewInsert().Model(result).Exec(ctx)
	return err
}

func GetGameResultsByWallet(ctx context.Context, db *bun.DB, walletAddress string, limit int) ([]*models.GameResult, error) {
	var results []*models.GameResult
	err := db.NewSelect().Model(&results).
		Where("wallet_address = ?", walletAddress).
		Order("created_at DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return results, nil
}
