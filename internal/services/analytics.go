package services

import (
	"context"
	"time"

	"github.com/samber/do"

	"goldium/internal/interfaces"
	"goldium/internal/models"
	"goldium/internal/pkg/chain"
	"goldium/internal/pkg/rewards"
)

const ANALYTICS_RECENT_LIMIT = 10

// ServiceAnalytics derives summaries straight from the ledger on every call.
// Deliberately uncached: a second aggregate store could drift from the records.
type ServiceAnalytics struct {
	ledger   interfaces.Ledger
	explorer explorerURLer
	now      func() time.Time
}

func NewServiceAnalytics(container *do.Injector) (*ServiceAnalytics, error) {
	ledger, err := do.Invoke[interfaces.Ledger](container)
	if err != nil {
		return nil, err
	}

	explorer, err := do.Invoke[*chain.Client](container)
	if err != nil {
		return nil, err
	}

	return &ServiceAnalytics{ledger, explorer, time.Now}, nil
}

func NewAnalytics(ledger interfaces.Ledger, explorer explorerURLer) *ServiceAnalytics {
	return &ServiceAnalytics{ledger: ledger, explorer: explorer, now: time.Now}
}

func (service *ServiceAnalytics) Summary(ctx context.Context, walletAddress string) (*models.AnalyticsSummary, error) {
	txs, err := service.ledger.ListTransactions(ctx, walletAddress, 0)
	if err != nil {
		return nil, err
	}

	summary := &models.AnalyticsSummary{}
	summary.TotalTransactions = len(txs)

	for _, tx := range txs {
		// volume counts every submission regardless of outcome
		summary.TotalVolume += tx.Amount
		if tx.Status == models.TxStatusConfirmed {
			summary.ConfirmedCount++
		}
		if tx.Fee != nil {
			summary.TotalFees += *tx.Fee
		}
	}
	if summary.TotalTransactions > 0 {
		summary.SuccessRate = float64(summary.ConfirmedCount) / float64(summary.TotalTransactions) * 100
		// missing fees count as zero, so the average spreads over every record
		summary.AverageFee = summary.TotalFees / float64(summary.TotalTransactions)
	}

	staking, err := service.StakingSummary(ctx, walletAddress)
	if err != nil {
		return nil, err
	}
	summary.Staking = *staking

	recent := txs
	if len(recent) > ANALYTICS_RECENT_LIMIT {
		recent = recent[:ANALYTICS_RECENT_LIMIT]
	}
	for _, tx := range recent {
		tx.ExplorerURL = service.explorer.ExplorerURL(tx.Signature)
	}
	summary.Recent = recent

	return summary, nil
}

// StakingSummary aggregates the wallet's active positions with rewards
// accrued up to now.
func (service *ServiceAnalytics) StakingSummary(ctx context.Context, walletAddress string) (*models.StakingSummary, error) {
	records, err := service.ledger.ListActiveStakingRecords(ctx, walletAddress)
	if err != nil {
		return nil, err
	}

	now := service.now()
	summary := &models.StakingSummary{}
	for _, record := range records {
		summary.TotalStaked += record.Amount

		elapsed := now.Sub(record.StakedAt).Seconds()
		accrued, err := rewards.StakingReward(record.Amount, record.APY, elapsed, record.RewardsClaimed)
		if err != nil {
			continue
		}
		summary.EstimatedRewards += accrued
	}
	summary.Value = summary.TotalStaked * TOKEN_PRICE_USD

	return summary, nil
}
