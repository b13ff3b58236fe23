package models

import (
	"time"

	"github.com/uptrace/bun"
)

type StakingRecord struct {
	bun.BaseModel  `bun:"table:staking_records"`
	ID             string     `bun:"id,pk" json:"id"`
	WalletAddress  string     `bun:"wallet_address" json:"wallet_address"`
	Amount         float64    `bun:"amount" json:"amount"`
	APY            float64    `bun:"apy" json:"apy"`
	LockDays       int        `bun:"lock_days" json:"lock_days"`
	StakedAt       time.Time  `bun:"staked_at" json:"staked_at"`
	RewardsClaimed float64    `bun:"rewards_claimed" json:"rewards_claimed"`
	Active         bool       `bun:"active" json:"active"`
	UnstakedAt     *time.Time `bun:"unstaked_at" json:"unstaked_at,omitempty"`
}

type StakingSummary struct {
	TotalStaked      float64 `json:"total_staked"`
	EstimatedRewards float64 `json:"estimated_rewards"`
	Value            float64 `json:"value"`
}

type StakingPool struct {
	APY         float64 `json:"apy"`
	LockDays    int     `json:"lock_days"`
	TotalStaked float64 `json:"total_staked"`
	TokenSymbol string  `json:"token_symbol"`
}
