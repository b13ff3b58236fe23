package services

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/go-redsync/redsync/v4"
	"github.com/google/uuid"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/mroth/weightedrand/v2"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"

	"goldium/internal/datastore/redis_store"
	"goldium/internal/interfaces"
	"goldium/internal/models"
	"goldium/internal/pkg"
	"goldium/internal/pkg/rewards"
)

// difficulty weights for question selection, easier questions come up more
const (
	GAME_WEIGHT_EASY   = 5
	GAME_WEIGHT_MEDIUM = 3
	GAME_WEIGHT_HARD   = 2

	GAME_DEFAULT_QUESTION_COUNT = 10
	GAME_SECONDS_PER_QUESTION   = 10
)

type ServiceGame struct {
	container *do.Injector
	ledger    interfaces.Ledger
	redisDB   redis.UniversalClient
	rs        *redsync.Redsync
	limiter   interfaces.Limiter
	tracker   *ServiceTracker
	chooser   *weightedrand.Chooser[int, int]
}

func NewServiceGame(container *do.Injector) (*ServiceGame, error) {
	ledger, err := do.Invoke[interfaces.Ledger](container)
	if err != nil {
		return nil, err
	}

	redisDB, err := do.InvokeNamed[redis.UniversalClient](container, "redis-db")
	if err != nil {
		return nil, err
	}

	rs, err := do.Invoke[*redsync.Redsync](container)
	if err != nil {
		return nil, err
	}

	rateLimiter, err := do.Invoke[interfaces.Limiter](container)
	if err != nil {
		return nil, err
	}

	tracker, err := do.Invoke[*ServiceTracker](container)
	if err != nil {
		return nil, err
	}

	chooser, err := weightedrand.NewChooser(
		weightedrand.NewChoice(1, GAME_WEIGHT_EASY),
		weightedrand.NewChoice(2, GAME_WEIGHT_MEDIUM),
		weightedrand.NewChoice(3, GAME_WEIGHT_HARD),
	)
	if err != nil {
		return nil, err
	}

	return &ServiceGame{container, ledger, redisDB, rs, rateLimiter, tracker, chooser}, nil
}

// Questions draws count questions, difficulty-weighted, without repeats.
func (service *ServiceGame) Questions(count int) []*models.Question {
	if count <= 0 || count > len(questionBank) {
		count = GAME_DEFAULT_QUESTION_COUNT
	}

	byDifficulty := map[int][]*models.Question{}
	for i := range questionBank {
		q := &questionBank[i]
		byDifficulty[q.Difficulty] = append(byDifficulty[q.Difficulty], q)
	}

	picked := make([]*models.Question, 0, count)
	seen := map[int]bool{}
	for len(picked) < count {
		pool := byDifficulty[service.chooser.Pick()]
		q := pool[rand.Intn(len(pool))]
		if seen[q.ID] {
			continue
		}
		seen[q.ID] = true
		picked = append(picked, q)
	}
	return picked
}

func (service *ServiceGame) CheckAnswer(questionID, answer int) (bool, error) {
	for i := range questionBank {
		if questionBank[i].ID == questionID {
			return questionBank[i].Answer == answer, nil
		}
	}
	return false, errorx.Wrap(errors.New("question not found"), errorx.NotExist)
}

type GameSubmitRequest struct {
	WalletAddress  string `json:"wallet_address"`
	Score          int    `json:"score"`
	TotalQuestions int    `json:"total_questions"`
	TimeSpent      int    `json:"time_spent"`
	Category       string `json:"category"`
}

type GameSubmitResult struct {
	Result       *models.GameResult  `json:"result"`
	Achievements models.Achievements `json:"achievements"`
	RewardTx     *models.Transaction `json:"reward_transaction,omitempty"`
}

func (service *ServiceGame) SubmitResult(ctx context.Context, req GameSubmitRequest) (*GameSubmitResult, error) {
	if !pkg.IsValidWalletAddress(req.WalletAddress) {
		return nil, errorx.Wrap(errors.New("invalid wallet address"), errorx.Validation)
	}

	err := service.limiter.Allow(ctx, LimitKeyGameSubmit(req.WalletAddress), redis_rate.PerMinute(GAME_SUBMIT_RATE_LIMIT_PER_MINUTE))
	if err != nil {
		return nil, errorx.Wrap(err, errorx.RateLimiting)
	}

	mutex := service.rs.NewMutex(LockKeyGameSubmit(req.WalletAddress))
	if err := mutex.TryLock(); err != nil {
		return nil, errorx.Wrap(ErrGameLock, errorx.Invalid)
	}
	//nolint:errcheck
	defer mutex.Unlock()

	percentage := 0
	if req.TotalQuestions > 0 {
		percentage = req.Score * 100 / req.TotalQuestions
	}
	reward, err := rewards.CalculateGameReward(req.Score, req.TotalQuestions)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Validation)
	}

	user, err := service.ledger.UpsertUser(ctx, req.WalletAddress)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	now := time.Now()
	result := &models.GameResult{
		ID:             uuid.NewString(),
		WalletAddress:  req.WalletAddress,
		Score:          req.Score,
		TotalQuestions: req.TotalQuestions,
		TimeSpent:      req.TimeSpent,
		Category:       req.Category,
		RewardAmount:   reward.Amount,
		NFTEligible:    reward.NFTEligible,
		CreatedAt:      now,
	}

	out := &GameSubmitResult{
		Result: result,
		Achievements: models.Achievements{
			PerfectScore:   percentage == 100,
			ExcellentScore: percentage >= 80,
			SpeedBonus:     req.TotalQuestions > 0 && req.TimeSpent < req.TotalQuestions*GAME_SECONDS_PER_QUESTION,
			FirstTime:      user.GamesPlayed == 0,
		},
	}

	if reward.Amount > 0 {
		tx := mockTransaction(req.WalletAddress, models.TxTypeClaim, reward.Amount, now)
		if err := service.tracker.Record(ctx, tx); err != nil {
			return nil, err
		}
		result.RewardClaimed = true
		out.RewardTx = tx
	}

	if err := service.ledger.CreateGameResult(ctx, result); err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	if err := service.ledger.RecordGameStats(ctx, req.WalletAddress, percentage, reward.NFTEligible); err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	err = redis_store.SetGameLeaderboard(ctx, service.redisDB, &models.LeaderboardItem{
		WalletAddress: req.WalletAddress,
		Score:         float64(percentage),
	})
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	return out, nil
}

func (service *ServiceGame) Leaderboard(ctx context.Context, limit int) ([]*models.LeaderboardItem, error) {
	if limit <= 0 {
		limit = GAME_LEADERBOARD_DEFAULT_LIMIT
	}
	items, err := redis_store.GetGameLeaderboard(ctx, service.redisDB, limit)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	return items, nil
}

func (service *ServiceGame) History(ctx context.Context, walletAddress string, limit int) ([]*models.GameResult, error) {
	if limit <= 0 {
		limit = HISTORY_DEFAULT_LIMIT
	}
	results, err := service.ledger.ListGameResults(ctx, walletAddress, limit)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	return results, nil
}
