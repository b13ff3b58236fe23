package handler

import (
	"errors"

	"goldium/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupTransaction struct {
	container *do.Injector
}

var errTransactionNotFound = errors.New("transaction not found")

// Submit starts tracking a freshly sent transaction. The wallet comes from
// the session, never from the payload.
func (gr *groupTransaction) Submit(c echo.Context) error {
	ctx := c.Request().Context()

	session, err := ResolveSession(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var req services.SubmitRequest
	if err := c.Bind(&req); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}
	req.WalletAddress = session.WalletAddress

	tracker, err := do.Invoke[*services.ServiceTracker](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	tx, err := tracker.Submit(ctx, req)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	return httpx.RestAbort(c, tx, nil)
}

func (gr *groupTransaction) Show(c echo.Context) error {
	ctx := c.Request().Context()

	tracker, err := do.Invoke[*services.ServiceTracker](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	tx, err := tracker.GetTransaction(ctx, c.Param("signature"))
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	return httpx.RestAbort(c, tx, nil)
}

// Status forces one immediate poll instead of waiting for the watcher tick.
func (gr *groupTransaction) Status(c echo.Context) error {
	ctx := c.Request().Context()

	tracker, err := do.Invoke[*services.ServiceTracker](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	status, err := tracker.PollStatus(ctx, c.Param("signature"))
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	return httpx.RestAbort(c, map[string]interface{}{"status": status}, nil)
}

func (gr *groupTransaction) CancelWatch(c echo.Context) error {
	session, err := ResolveSession(c.Request().Context())
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	tracker, err := do.Invoke[*services.ServiceTracker](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	signature := c.Param("signature")
	tx, err := tracker.GetTransaction(c.Request().Context(), signature)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	if tx.WalletAddress != session.WalletAddress {
		return httpx.RestAbort(c, nil, errorx.Wrap(errTransactionNotFound, errorx.NotExist))
	}

	tracker.Cancel(signature)
	return httpx.RestAbort(c, map[string]interface{}{"cancelled": true}, nil)
}
