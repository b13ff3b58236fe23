package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrDuplicateSignature = errors.New("signature already tracked with a different payload")
var ErrStakeLock = errors.New("staking record locked")
var ErrGameLock = errors.New("game submission locked")

const (
	TOKEN_SYMBOL = "GOLD"

	SESSION_TTL = 7 * 24 * time.Hour

	// confirmation polling policy: 30 attempts 4 seconds apart, ~2 minutes
	TRACKER_POLL_INTERVAL = 4 * time.Second
	TRACKER_MAX_ATTEMPTS  = 30

	// tracker gives up with this reason when the attempt budget runs out;
	// the chain transaction may still confirm later out-of-band
	FAILURE_REASON_STATUS_UNKNOWN = "status unknown"

	NOTIFICATION_FEED_LIMIT    = 5
	NOTIFICATION_AUTO_HIDE_TTL = 10 * time.Second
	NOTIFICATION_SWEEP_TICK    = 1 * time.Second

	FAILED_TX_RETENTION = 30 * 24 * time.Hour

	DEFAULT_STAKING_APY       = 12.5
	DEFAULT_STAKING_LOCK_DAYS = 30

	GAME_LEADERBOARD_DEFAULT_LIMIT      = 20
	GAME_SUBMIT_RATE_LIMIT_PER_MINUTE   = 10
	HISTORY_DEFAULT_LIMIT               = 50
	HISTORY_MAX_LIMIT                   = 100

	// mock prices pending a price oracle
	TOKEN_PRICE_USD = 1.5

	CACHE_TTL_5_SECONDS = 5 * time.Second
	CACHE_TTL_1_MIN     = 1 * time.Minute
)

func LockKeyStakeClaim(walletAddress string) string {
	return fmt.Sprintf("lock:stake-claim:%s", walletAddress)
}

func LockKeyGameSubmit(walletAddress string) string {
	return fmt.Sprintf("lock:game-submit:%s", walletAddress)
}

// db
func DBKeyUser(walletAddress string) string {
	return fmt.Sprintf("users:%s", walletAddress)
}

func DBKeySwapQuote(inputMint, outputMint string, amount int64, slippageBps int) string {
	return fmt.Sprintf("swap:quote:%s:%s:%d:%d", strings.ToLower(inputMint), strings.ToLower(outputMint), amount, slippageBps)
}

func LimitKeyGameSubmit(walletAddress string) string {
	return fmt.Sprintf("limit:game-submit:%s", walletAddress)
}
