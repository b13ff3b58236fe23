package handler

import (
	"goldium/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupStaking struct {
	container *do.Injector
}

func (gr *groupStaking) Stake(c echo.Context) error {
	ctx := c.Request().Context()

	session, err := ResolveSession(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var req services.StakeRequest
	if err := c.Bind(&req); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}
	req.WalletAddress = session.WalletAddress

	serviceStaking, err := do.Invoke[*services.ServiceStaking](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	record, tx, err := serviceStaking.Stake(ctx, req)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	return httpx.RestAbort(c, map[string]interface{}{
		"record":      record,
		"transaction": tx,
	}, nil)
}

func (gr *groupStaking) Claim(c echo.Context) error {
	ctx := c.Request().Context()

	session, err := ResolveSession(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceStaking, err := do.Invoke[*services.ServiceStaking](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	amount, tx, err := serviceStaking.Claim(ctx, session.WalletAddress, c.Param("id"))
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	return httpx.RestAbort(c, map[string]interface{}{
		"amount":      amount,
		"transaction": tx,
	}, nil)
}

func (gr *groupStaking) Unstake(c echo.Context) error {
	ctx := c.Request().Context()

	session, err := ResolveSession(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceStaking, err := do.Invoke[*services.ServiceStaking](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	tx, err := serviceStaking.Unstake(ctx, session.WalletAddress, c.Param("id"))
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	return httpx.RestAbort(c, map[string]interface{}{"transaction": tx}, nil)
}

func (gr *groupStaking) Positions(c echo.Context) error {
	ctx := c.Request().Context()

	session, err := ResolveSession(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceStaking, err := do.Invoke[*services.ServiceStaking](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	records, err := serviceStaking.Positions(ctx, session.WalletAddress)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	return httpx.RestAbort(c, records, nil)
}

func (gr *groupStaking) Summary(c echo.Context) error {
	ctx := c.Request().Context()

	session, err := ResolveSession(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceAnalytics, err := do.Invoke[*services.ServiceAnalytics](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	summary, err := serviceAnalytics.StakingSummary(ctx, session.WalletAddress)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	return httpx.RestAbort(c, summary, nil)
}

// Pool is public, no session required.
func (gr *groupStaking) Pool(c echo.Context) error {
	serviceStaking, err := do.Invoke[*services.ServiceStaking](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	pool, err := serviceStaking.Pool(c.Request().Context())
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	return httpx.RestAbort(c, pool, nil)
}
