// Package rewards holds the reward math for staking accrual and the trivia game.
// Everything here is pure and deterministic; callers persist the results.
package rewards

import "errors"

var ErrInvalidInput = errors.New("invalid reward input")

const SecondsPerYear = 365 * 24 * 60 * 60

// StakingReward returns the amount claimable right now for a stake: linear
// (non-compounding) accrual at the record's APY minus what was already claimed.
// Never negative.
func StakingReward(stakedAmount, apyPercent, elapsedSeconds, alreadyClaimed float64) (float64, error) {
	if stakedAmount < 0 || apyPercent < 0 || elapsedSeconds < 0 || alreadyClaimed < 0 {
		return 0, ErrInvalidInput
	}

	accrued := stakedAmount * (apyPercent / 100) * (elapsedSeconds / SecondsPerYear)
	claimable := accrued - alreadyClaimed
	if claimable < 0 {
		return 0, nil
	}
	return claimable, nil
}

type GameReward struct {
	Amount      float64 `json:"amount"`
	NFTEligible bool    `json:"nft_eligible"`
}

// CalculateGameReward maps a trivia score to a token reward. Tiers are inclusive at the
// lower bound and evaluated top-down; only the top tier carries NFT eligibility.
func CalculateGameReward(score, totalQuestions int) (GameReward, error) {
	if totalQuestions <= 0 || score < 0 || score > totalQuestions {
		return GameReward{}, ErrInvalidInput
	}

	percentage := float64(score) / float64(totalQuestions) * 100

	switch {
	case percentage >= 90:
		return GameReward{Amount: 100, NFTEligible: true}, nil
	case percentage >= 80:
		return GameReward{Amount: 50}, nil
	case percentage >= 60:
		return GameReward{Amount: 25}, nil
	case percentage >= 40:
		return GameReward{Amount: 10}, nil
	}
	return GameReward{}, nil
}
