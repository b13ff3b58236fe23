package models

import (
	"time"

	"github.com/uptrace/bun"
)

type GameResult struct {
	bun.BaseModel  `bun:"table:game_results"`
	ID             string    `bun:"id,pk" json:"id"`
	WalletAddress  string    `bun:"wallet_address" json:"wallet_address"`
	Score          int       `bun:"score" json:"score"`
	TotalQuestions int       `bun:"total_questions" json:"total_questions"`
	TimeSpent      int       `bun:"time_spent" json:"time_spent"`
	Category       string    `bun:"category" json:"category"`
	RewardAmount   float64   `bun:"reward_amount" json:"reward_amount"`
	NFTEligible    bool      `bun:"nft_eligible" json:"nft_eligible"`
	RewardClaimed  bool      `bun:"reward_claimed" json:"reward_claimed"`
	NFTClaimed     bool      `bun:"nft_claimed" json:"nft_claimed"`
	CreatedAt      time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`
}

type Achievements struct {
	PerfectScore   bool `json:"perfect_score"`
	ExcellentScore bool `json:"excellent_score"`
	SpeedBonus     bool `json:"speed_bonus"`
	FirstTime      bool `json:"first_time"`
}

type Question struct {
	ID         int      `json:"id"`
	Category   string   `json:"category"`
	Prompt     string   `json:"prompt"`
	Options    []string `json:"options"`
	Answer     int      `json:"-"`
	Difficulty int      `json:"difficulty"`
}

type LeaderboardItem struct {
	WalletAddress string  `json:"wallet_address"`
	Score         float64 `json:"score"`
	Rank          int     `json:"rank"`
}
