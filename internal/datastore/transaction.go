package datastore

import (
	"context"
	"database/sql"
	"time"

	"goldium/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableTransaction(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Transaction)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Transaction)(nil)).Index("index_transactions_wallet").IfNotExists().Column("wallet_address").Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Transaction)(nil)).Index("index_transactions_status").IfNotExists().Column("status").Exec(ctx)
	return err
}

func InsertTransaction(ctx context.Context, db *bun.DB, tx *models.Transaction) error {
	_, err := db.NewInsert().Model(tx).Exec(ctx)
	return err
}

func FindTransactionBySignature(ctx context.Context, db *bun.DB, signature string) (*models.Transaction, error) {
	var tx models.Transaction
	err := db.NewSelect().Model(&tx).Where("signature = ?", signature).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// UpdateTransactionStatus applies a terminal transition. The WHERE guard keeps
// the state machine monotonic: a record that already left pending is untouched
// and the stored row is returned as-is.
func UpdateTransactionStatus(ctx context.Context, db *bun.DB, signature string, status models.TransactionStatus, detail *models.ChainStatus, reason string) (*models.Transaction, bool, error) {
	q := db.NewUpdate().
		Model((*models.Transaction)(nil)).
		Set("status = ?", status).
		Set("updated_at = ?", time.Now()).
		Where("signature = ?", signature).
		Where("status = ?", models.TxStatusPending)

	if detail != nil {
		if detail.Slot != nil {
			q = q.Set("slot = ?", *detail.Slot)
		}
		if detail.Fee != nil {
			q = q.Set("fee = ?", *detail.Fee)
		}
	}
	if reason != "" {
		q = q.Set("failure_reason = ?", reason)
	}

	res, err := q.Exec(ctx)
	if err != nil {
		return nil, false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, false, err
	}

	tx, err := FindTransactionBySignature(ctx, db, signature)
	if err != nil {
		return nil, false, err
	}
	if affected == 0 && !tx.Status.Terminal() {
		return nil, false, sql.ErrNoRows
	}
	return tx, affected > 0, nil
}

func GetTransactionsByWallet(ctx context.Context, db *bun.DB, walletAddress string, limit int) ([]*models.Transaction, error) {
	var txs []*models.Transaction
	err := db.NewSelect().Model(&txs).
		Where("wallet_address = ?", walletAddress).
		Order("created_at DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return txs, nil
}

// DeleteFailedTransactionsBefore removes failed records past the retention
// horizon. Confirmed records are kept indefinitely.
func DeleteFailedTransactionsBefore(ctx context.Context, db *bun.DB, before time.Time) (int, error) {
	res, err := db.NewDelete().
		Model((*models.Transaction)(nil)).
		Where("status = ?", models.TxStatusFailed).
		Where("updated_at < ?", before).
		Exec(ctx)
	if err != nil {
		return 0, err
	}

	affected, err := res.RowsAffected()
	return int(affected), err
}
