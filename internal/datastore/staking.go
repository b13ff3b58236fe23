package datastore

import (
	"context"
	"time"

	"goldium/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableStakingRecord(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.StakingRecord)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.StakingRecord)(nil)).Index("index_staking_wallet_active").IfNotExists().Column("wallet_address", "active").Exec(ctx)
	return err
}

func InsertStakingRecord(ctx context.Context, db *bun.DB, record *models.StakingRecord) error {
	_, err := db.NewInsert().Model(record).Exec(ctx)
	return err
}

func FindStakingRecordByID(ctx context.Context, db *bun.DB, id string) (*models.StakingRecord, error) {
	var record models.StakingRecord
	err := db.NewSelect().Model(&record).Where("id = ?", id).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func GetActiveStakingRecords(ctx context.Context, db *bun.DB, walletAddress string) ([]*models.StakingRecord, error) {
	var records []*models.StakingRecord
	err := db.NewSelect().Model(&records).
		Where("wallet_address = ?", walletAddress).
		Where("active = true").
		Order("staked_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func AddRewardsClaimed(ctx context.Context, db *bun.DB, id string, amount float64) error {
	_, err := db.NewUpdate().
		Model((*models.StakingRecord)(nil)).
		Set("rewards_claimed = rewards_claimed + ?", amount).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

// DeactivateStakingRecord flips the active flag on unstake. Records stay in the
// table for analytics.
func DeactivateStakingRecord(ctx context.Context, db *bun.DB, id string, at time.Time) error {
	_, err := db.NewUpdate().
		Model((*models.StakingRecord)(nil)).
		Set("active = false").
		Set("unstaked_at = ?", at).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

func SumActiveStaked(ctx context.Context, db *bun.DB) (float64, error) {
	var total float64
	err := db.NewSelect().
		Model((*models.StakingRecord)(nil)).
		ColumnExpr("COALESCE(SUM(amount), 0)").
		Where("active = true").
		Scan(ctx, &total)
	return total, err
}
