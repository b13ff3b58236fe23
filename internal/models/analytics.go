package models

import "time"

type AnalyticsSummary struct {
	TotalTransactions int            `json:"total_transactions"`
	ConfirmedCount    int            `json:"confirmed_count"`
	TotalVolume       float64        `json:"total_volume"`
	SuccessRate       float64        `json:"success_rate"`
	TotalFees         float64        `json:"total_fees"`
	AverageFee        float64        `json:"average_fee"`
	Staking           StakingSummary `json:"staking"`
	Recent            []*Transaction `json:"recent_transactions"`
}

// ActivityItem is one entry of the public live feed of confirmed transactions.
type ActivityItem struct {
	Signature   string    `json:"signature" msgpack:"signature"`
	Type        string    `json:"type" msgpack:"type"`
	Amount      float64   `json:"amount" msgpack:"amount"`
	Token       string    `json:"token" msgpack:"token"`
	ExplorerURL string    `json:"explorer_url" msgpack:"explorer_url"`
	Timestamp   time.Time `json:"timestamp" msgpack:"timestamp"`
}
