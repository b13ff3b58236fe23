package services

import (
	"context"
	"errors"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/samber/do"

	"goldium/internal/interfaces"
	"goldium/internal/models"
	"goldium/internal/pkg"
	"goldium/internal/pkg/caching"
)

type ServiceUser struct {
	container *do.Injector
	ledger    interfaces.Ledger
	cache     caching.Cache
}

func NewServiceUser(container *do.Injector) (*ServiceUser, error) {
	ledger, err := do.Invoke[interfaces.Ledger](container)
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	return &ServiceUser{container, ledger, cache}, nil
}

// FindOrCreateUser resolves the wallet into a user record, creating it on
// first connect. Reconnecting is a no-op for existing counters.
func (service *ServiceUser) FindOrCreateUser(ctx context.Context, walletAddress string) (*models.User, error) {
	if !pkg.IsValidWalletAddress(walletAddress) {
		return nil, errorx.Wrap(errors.New("invalid wallet address"), errorx.Validation)
	}

	user, err := service.ledger.UpsertUser(ctx, walletAddress)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	return user, nil
}

func (service *ServiceUser) FindUserByWallet(ctx context.Context, walletAddress string) (*models.User, error) {
	return caching.UseCache(ctx, service.cache, DBKeyUser(walletAddress), CACHE_TTL_1_MIN, func() (*models.User, error) {
		return service.ledger.GetUser(ctx, walletAddress)
	})
}

// CompleteLesson bumps the learning counter and returns the fresh profile.
func (service *ServiceUser) CompleteLesson(ctx context.Context, walletAddress string) (*models.User, error) {
	if err := service.ledger.IncrementLessonsCompleted(ctx, walletAddress); err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	_ = service.cache.Delete(ctx, DBKeyUser(walletAddress))

	user, err := service.ledger.GetUser(ctx, walletAddress)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	return user, nil
}

// InvalidateUser drops the cached profile after counters change.
func (service *ServiceUser) InvalidateUser(ctx context.Context, walletAddress string) {
	_ = service.cache.Delete(ctx, DBKeyUser(walletAddress))
}
