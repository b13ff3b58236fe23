package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/google/uuid"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/samber/do"

	"goldium/internal/interfaces"
	"goldium/internal/models"
	"goldium/internal/pkg"
	"goldium/internal/pkg/rewards"
)

type ServiceStaking struct {
	container *do.Injector
	ledger    interfaces.Ledger
	rs        *redsync.Redsync
	tracker   *ServiceTracker
	now       func() time.Time
}

func NewServiceStaking(container *do.Injector) (*ServiceStaking, error) {
	ledger, err := do.Invoke[interfaces.Ledger](container)
	if err != nil {
		return nil, err
	}

	rs, err := do.Invoke[*redsync.Redsync](container)
	if err != nil {
		return nil, err
	}

	tracker, err := do.Invoke[*ServiceTracker](container)
	if err != nil {
		return nil, err
	}

	return &ServiceStaking{container, ledger, rs, tracker, time.Now}, nil
}

type StakeRequest struct {
	WalletAddress string  `json:"wallet_address"`
	Amount        float64 `json:"amount"`
	// on-chain signature of the stake transaction; generated when the
	// caller stakes through the in-app custodial flow
	Signature string `json:"signature"`
}

func (service *ServiceStaking) Stake(ctx context.Context, req StakeRequest) (*models.StakingRecord, *models.Transaction, error) {
	if !pkg.IsValidWalletAddress(req.WalletAddress) {
		return nil, nil, errorx.Wrap(errors.New("invalid wallet address"), errorx.Validation)
	}
	if req.Amount <= 0 {
		return nil, nil, errorx.Wrap(errors.New("amount must be positive"), errorx.Validation)
	}

	now := service.now()
	record := &models.StakingRecord{
		ID:            uuid.NewString(),
		WalletAddress: req.WalletAddress,
		Amount:        req.Amount,
		APY:           DEFAULT_STAKING_APY,
		LockDays:      DEFAULT_STAKING_LOCK_DAYS,
		StakedAt:      now,
		Active:        true,
	}
	if err := service.ledger.CreateStakingRecord(ctx, record); err != nil {
		return nil, nil, errorx.Wrap(err, errorx.Service)
	}

	var tx *models.Transaction
	var err error
	if req.Signature != "" {
		tx, err = service.tracker.Submit(ctx, SubmitRequest{
			Signature:     req.Signature,
			WalletAddress: req.WalletAddress,
			Type:          models.TxTypeStake,
			Amount:        req.Amount,
			Token:         TOKEN_SYMBOL,
		})
	} else {
		tx = mockTransaction(req.WalletAddress, models.TxTypeStake, req.Amount, now)
		err = service.tracker.Record(ctx, tx)
	}
	if err != nil {
		return nil, nil, err
	}

	return record, tx, nil
}

// Claim pays out the rewards accrued so far on one position. Guarded by a
// per-wallet distributed lock so two concurrent claims cannot both read the
// same rewards_claimed value.
func (service *ServiceStaking) Claim(ctx context.Context, walletAddress, recordID string) (float64, *models.Transaction, error) {
	mutex := service.rs.NewMutex(LockKeyStakeClaim(walletAddress))
	if err := mutex.TryLock(); err != nil {
		return 0, nil, errorx.Wrap(ErrStakeLock, errorx.Invalid)
	}
	//nolint:errcheck
	defer mutex.Unlock()

	record, err := service.loadOwnedRecord(ctx, walletAddress, recordID)
	if err != nil {
		return 0, nil, err
	}

	now := service.now()
	elapsed := now.Sub(record.StakedAt).Seconds()
	accrued, err := rewards.StakingReward(record.Amount, record.APY, elapsed, record.RewardsClaimed)
	if err != nil {
		return 0, nil, errorx.Wrap(err, errorx.Invalid)
	}
	if accrued <= 0 {
		return 0, nil, errorx.Wrap(errors.New("no rewards accrued yet"), errorx.Invalid)
	}

	if err := service.ledger.AddRewardsClaimed(ctx, record.ID, accrued); err != nil {
		return 0, nil, errorx.Wrap(err, errorx.Service)
	}

	tx := mockTransaction(walletAddress, models.TxTypeClaim, accrued, now)
	if err := service.tracker.Record(ctx, tx); err != nil {
		return 0, nil, err
	}

	return accrued, tx, nil
}

// Unstake closes a position after its lock window, paying back the principal
// plus any rewards not yet claimed.
func (service *ServiceStaking) Unstake(ctx context.Context, walletAddress, recordID string) (*models.Transaction, error) {
	mutex := service.rs.NewMutex(LockKeyStakeClaim(walletAddress))
	if err := mutex.TryLock(); err != nil {
		return nil, errorx.Wrap(ErrStakeLock, errorx.Invalid)
	}
	//nolint:errcheck
	defer mutex.Unlock()

	record, err := service.loadOwnedRecord(ctx, walletAddress, recordID)
	if err != nil {
		return nil, err
	}

	now := service.now()
	unlockAt := record.StakedAt.AddDate(0, 0, record.LockDays)
	if now.Before(unlockAt) {
		return nil, errorx.Wrap(fmt.Errorf("position locked until %s", unlockAt.Format(time.RFC3339)), errorx.Invalid)
	}

	elapsed := now.Sub(record.StakedAt).Seconds()
	accrued, err := rewards.StakingReward(record.Amount, record.APY, elapsed, record.RewardsClaimed)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Invalid)
	}
	if accrued > 0 {
		if err := service.ledger.AddRewardsClaimed(ctx, record.ID, accrued); err != nil {
			return nil, errorx.Wrap(err, errorx.Service)
		}
	}
	if err := service.ledger.DeactivateStakingRecord(ctx, record.ID, now); err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	tx := mockTransaction(walletAddress, models.TxTypeUnstake, record.Amount+accrued, now)
	if err := service.tracker.Record(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

func (service *ServiceStaking) Positions(ctx context.Context, walletAddress string) ([]*models.StakingRecord, error) {
	records, err := service.ledger.ListActiveStakingRecords(ctx, walletAddress)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	return records, nil
}

func (service *ServiceStaking) Pool(ctx context.Context) (*models.StakingPool, error) {
	total, err := service.ledger.SumActiveStaked(ctx)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	return &models.StakingPool{
		APY:         DEFAULT_STAKING_APY,
		LockDays:    DEFAULT_STAKING_LOCK_DAYS,
		TotalStaked: total,
		TokenSymbol: TOKEN_SYMBOL,
	}, nil
}

func (service *ServiceStaking) loadOwnedRecord(ctx context.Context, walletAddress, recordID string) (*models.StakingRecord, error) {
	record, err := service.ledger.GetStakingRecord(ctx, recordID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errorx.Wrap(errors.New("staking record not found"), errorx.NotExist)
	}
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	if record.WalletAddress != walletAddress {
		return nil, errorx.Wrap(errors.New("staking record not found"), errorx.NotExist)
	}
	if !record.Active {
		return nil, errorx.Wrap(errors.New("position already closed"), errorx.Invalid)
	}
	return record, nil
}

// mockTransaction builds a confirmed in-app transaction for custodial flows
// that settle instantly (reward payouts, instant staking).
func mockTransaction(walletAddress string, txType models.TransactionType, amount float64, at time.Time) *models.Transaction {
	signature := fmt.Sprintf("%s_%d_%s", txType, at.UnixMilli(), uuid.NewString()[:8])
	return &models.Transaction{
		Signature:     signature,
		WalletAddress: walletAddress,
		Type:          txType,
		Amount:        amount,
		Token:         TOKEN_SYMBOL,
		Status:        models.TxStatusConfirmed,
		CreatedAt:     at,
		UpdatedAt:     at,
	}
}
