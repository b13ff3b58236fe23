package handler

import (
	"encoding/json"

	"goldium/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupSwap struct {
	container *do.Injector
}

func (gr *groupSwap) Quote(c echo.Context) error {
	serviceSwap, err := do.Invoke[*services.ServiceSwap](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	quote, err := serviceSwap.Quote(
		c.Request().Context(),
		c.QueryParam("input_mint"),
		c.QueryParam("output_mint"),
		int64(queryInt(c, "amount", 0)),
		queryInt(c, "slippage_bps", 50),
	)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	return httpx.RestAbort(c, quote, nil)
}

type swapTransactionRequest struct {
	Quote json.RawMessage `json:"quote"`
}

func (gr *groupSwap) Transaction(c echo.Context) error {
	ctx := c.Request().Context()

	session, err := ResolveSession(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var req swapTransactionRequest
	if err := c.Bind(&req); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}

	serviceSwap, err := do.Invoke[*services.ServiceSwap](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	tx, err := serviceSwap.BuildTransaction(ctx, req.Quote, session.WalletAddress)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	return httpx.RestAbort(c, tx, nil)
}
