package rewards

import (
	"math"
	"testing"
)

func TestStakingReward(t *testing.T) {
	tests := []struct {
		name    string
		staked  float64
		apy     float64
		elapsed float64
		claimed float64
		want    float64
		wantErr bool
	}{
		{name: "30 days at 12.5%", staked: 1000, apy: 12.5, elapsed: 30 * 86400, claimed: 0, want: 1000 * 0.125 * 30 * 86400 / SecondsPerYear},
		{name: "zero elapsed", staked: 1000, apy: 12.5, elapsed: 0, claimed: 0, want: 0},
		{name: "claimed subtracted", staked: 1000, apy: 12.5, elapsed: 30 * 86400, claimed: 5, want: 1000*0.125*30*86400/SecondsPerYear - 5},
		{name: "overclaimed clamps to zero", staked: 100, apy: 10, elapsed: 60, claimed: 1000, want: 0},
		{name: "negative staked", staked: -1, apy: 10, elapsed: 60, claimed: 0, wantErr: true},
		{name: "negative apy", staked: 100, apy: -10, elapsed: 60, claimed: 0, wantErr: true},
		{name: "negative elapsed", staked: 100, apy: 10, elapsed: -60, claimed: 0, wantErr: true},
		{name: "negative claimed", staked: 100, apy: 10, elapsed: 60, claimed: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := StakingReward(tt.staked, tt.apy, tt.elapsed, tt.claimed)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStakingRewardThirtyDayExample(t *testing.T) {
	got, err := StakingReward(1000, 12.5, 30*86400, 0)
	if err != nil {
		t.Fatal(err)
	}
	// 1000 * 0.125 * 30/365 ~= 10.27
	if math.Abs(got-10.273972602739725) > 1e-6 {
		t.Fatalf("got %v, want ~10.27", got)
	}
}

func TestStakingRewardMonotonicInElapsed(t *testing.T) {
	prev := -1.0
	for elapsed := 0.0; elapsed <= 400*86400; elapsed += 86400 {
		got, err := StakingReward(5000, 8, elapsed, 3)
		if err != nil {
			t.Fatal(err)
		}
		if got < prev {
			t.Fatalf("reward decreased at elapsed=%v: %v < %v", elapsed, got, prev)
		}
		prev = got
	}
}

func TestCalculateGameReward(t *testing.T) {
	tests := []struct {
		name        string
		score       int
		total       int
		wantAmount  float64
		wantNFT     bool
		wantErr     bool
	}{
		{name: "perfect", score: 10, total: 10, wantAmount: 100, wantNFT: true},
		{name: "ninety percent", score: 9, total: 10, wantAmount: 100, wantNFT: true},
		{name: "eighty percent", score: 8, total: 10, wantAmount: 50},
		{name: "sixty percent", score: 6, total: 10, wantAmount: 25},
		{name: "fifty percent", score: 5, total: 10, wantAmount: 10},
		{name: "forty percent", score: 4, total: 10, wantAmount: 10},
		{name: "below forty", score: 3, total: 10, wantAmount: 0},
		{name: "zero score", score: 0, total: 10, wantAmount: 0},
		{name: "zero questions", score: 0, total: 0, wantErr: true},
		{name: "negative score", score: -1, total: 10, wantErr: true},
		{name: "score above total", score: 11, total: 10, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculateGameReward(tt.score, tt.total)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Amount != tt.wantAmount {
				t.Fatalf("amount = %v, want %v", got.Amount, tt.wantAmount)
			}
			if got.NFTEligible != tt.wantNFT {
				t.Fatalf("nft = %v, want %v", got.NFTEligible, tt.wantNFT)
			}
		})
	}
}

func TestGameRewardTierValues(t *testing.T) {
	valid := map[float64]bool{0: true, 10: true, 25: true, 50: true, 100: true}
	for total := 1; total <= 20; total++ {
		for score := 0; score <= total; score++ {
			got, err := CalculateGameReward(score, total)
			if err != nil {
				t.Fatalf("score=%d total=%d: %v", score, total, err)
			}
			if !valid[got.Amount] {
				t.Fatalf("score=%d total=%d: amount %v not a tier value", score, total, got.Amount)
			}
			if got.NFTEligible != (got.Amount == 100) {
				t.Fatalf("score=%d total=%d: nft eligibility must track the top tier", score, total)
			}
		}
	}
}
