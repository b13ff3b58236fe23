package redis_store

import (
	"context"
	"fmt"
	"time"

	"goldium/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	ACTIVITY_FEED_LIMIT = 50
	ACTIVITY_FEED_TTL   = 24 * time.Hour
)

func dbKeyGameLeaderboard() string {
	return "leaderboard:trivia"
}

func dbKeyActivityFeed() string {
	return "activity:live"
}

// SetGameLeaderboard records a wallet's best trivia score in the sorted set.
// GT keeps the existing entry when the new score is lower.
func SetGameLeaderboard(ctx context.Context, client redis.UniversalClient, item *models.LeaderboardItem) error {
	return client.ZAddGT(ctx, dbKeyGameLeaderboard(), redis.Z{
		Score:  item.Score,
		Member: item.WalletAddress,
	}).Err()
}

func GetGameLeaderboard(ctx context.Context, client redis.UniversalClient, limit int) ([]*models.LeaderboardItem, error) {
	entries, err := client.ZRevRangeWithScores(ctx, dbKeyGameLeaderboard(), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	items := make([]*models.LeaderboardItem, 0, len(entries))
	for i, entry := range entries {
		wallet, ok := entry.Member.(string)
		if !ok {
			wallet = fmt.Sprint(entry.Member)
		}
		items = append(items, &models.LeaderboardItem{
			WalletAddress: wallet,
			Score:         entry.Score,
			Rank:          i + 1,
		})
	}
	return items, nil
}

// PushActivity prepends a confirmed transaction to the public live feed and
// trims it to the cap.
func PushActivity(ctx context.Context, client redis.UniversalClient, item *models.ActivityItem) error {
	b, err := msgpack.Marshal(item)
	if err != nil {
		return err
	}

	pipe := client.TxPipeline()
	pipe.LPush(ctx, dbKeyActivityFeed(), b)
	pipe.LTrim(ctx, dbKeyActivityFeed(), 0, ACTIVITY_FEED_LIMIT-1)
	pipe.Expire(ctx, dbKeyActivityFeed(), ACTIVITY_FEED_TTL)
	_, err = pipe.Exec(ctx)
	return err
}

func GetRecentActivity(ctx context.Context, client redis.UniversalClient, limit int) ([]*models.ActivityItem, error) {
	if limit <= 0 || limit > ACTIVITY_FEED_LIMIT {
		limit = ACTIVITY_FEED_LIMIT
	}

	raws, err := client.LRange(ctx, dbKeyActivityFeed(), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	items := make([]*models.ActivityItem, 0, len(raws))
	for _, raw := range raws {
		var item models.ActivityItem
		if err := msgpack.Unmarshal([]byte(raw), &item); err != nil {
			continue
		}
		items = append(items, &item)
	}
	return items, nil
}
