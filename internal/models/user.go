package models

import (
	"time"

	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel     `bun:"table:users"`
	WalletAddress     string    `bun:"wallet_address,pk" json:"wallet_address"`
	TotalTransactions int64     `bun:"total_transactions" json:"total_transactions"`
	TotalVolume       float64   `bun:"total_volume" json:"total_volume"`
	BestGameScore     int       `bun:"best_game_score" json:"best_game_score"`
	GamesPlayed       int       `bun:"games_played" json:"games_played"`
	NFTRewards        int       `bun:"nft_rewards" json:"nft_rewards"`
	LessonsCompleted  int       `bun:"lessons_completed" json:"lessons_completed"`
	CreatedAt         time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`
	UpdatedAt         time.Time `bun:"updated_at" json:"updated_at"`
}

// WalletSession only use in middleware
type WalletSession struct {
	WalletAddress string `json:"wallet_address"`
}
