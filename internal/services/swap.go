package services

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/samber/do"

	"goldium/internal/pkg"
	"goldium/internal/pkg/aggregator"
	"goldium/internal/pkg/caching"
)

type ServiceSwap struct {
	container  *do.Injector
	aggregator *aggregator.Client
	cache      caching.Cache
}

func NewServiceSwap(container *do.Injector) (*ServiceSwap, error) {
	client, err := do.Invoke[*aggregator.Client](container)
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	return &ServiceSwap{container, client, cache}, nil
}

// Quote proxies the aggregator quote. Quotes go stale fast so the cache
// window is a few seconds, just enough to absorb UI retries.
func (service *ServiceSwap) Quote(ctx context.Context, inputMint, outputMint string, amount int64, slippageBps int) (json.RawMessage, error) {
	if inputMint == "" || outputMint == "" {
		return nil, errorx.Wrap(errors.New("input and output mints are required"), errorx.Validation)
	}
	if amount <= 0 {
		return nil, errorx.Wrap(errors.New("amount must be positive"), errorx.Validation)
	}

	key := DBKeySwapQuote(inputMint, outputMint, amount, slippageBps)
	quote, err := caching.UseCache(ctx, service.cache, key, CACHE_TTL_5_SECONDS, func() (json.RawMessage, error) {
		return service.aggregator.Quote(ctx, inputMint, outputMint, amount, slippageBps)
	})
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	return quote, nil
}

func (service *ServiceSwap) BuildTransaction(ctx context.Context, quote json.RawMessage, userAddress string) (*aggregator.SwapTransaction, error) {
	if !pkg.IsValidWalletAddress(userAddress) {
		return nil, errorx.Wrap(errors.New("invalid wallet address"), errorx.Validation)
	}
	if len(quote) == 0 {
		return nil, errorx.Wrap(errors.New("quote is required"), errorx.Validation)
	}

	tx, err := service.aggregator.SwapTransaction(ctx, quote, userAddress)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	return tx, nil
}
