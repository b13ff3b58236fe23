package services

import (
	"context"
	"log"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"

	"goldium/internal/datastore/redis_store"
	"goldium/internal/models"
	"goldium/internal/pkg/chain"
)

// ServiceActivity projects confirmed transactions into the public live feed.
type ServiceActivity struct {
	redisDB  redis.UniversalClient
	explorer explorerURLer
}

func NewServiceActivity(container *do.Injector) (*ServiceActivity, error) {
	redisDB, err := do.InvokeNamed[redis.UniversalClient](container, "redis-db")
	if err != nil {
		return nil, err
	}

	explorer, err := do.Invoke[*chain.Client](container)
	if err != nil {
		return nil, err
	}

	return &ServiceActivity{redisDB, explorer}, nil
}

// HandleEvent is subscribed to the tracker. Only confirmations are public.
func (service *ServiceActivity) HandleEvent(evt models.TransactionEvent) {
	tx := evt.Transaction
	if tx == nil || tx.Status != models.TxStatusConfirmed {
		return
	}

	item := &models.ActivityItem{
		Signature:   tx.Signature,
		Type:        string(tx.Type),
		Amount:      tx.Amount,
		Token:       tx.Token,
		ExplorerURL: service.explorer.ExplorerURL(tx.Signature),
		Timestamp:   tx.UpdatedAt,
	}
	if err := redis_store.PushActivity(context.Background(), service.redisDB, item); err != nil {
		log.Printf("activity feed push failed: %v", err)
	}
}

func (service *ServiceActivity) Recent(ctx context.Context, limit int) ([]*models.ActivityItem, error) {
	items, err := redis_store.GetRecentActivity(ctx, service.redisDB, limit)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	return items, nil
}
