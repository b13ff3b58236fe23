package handler

import (
	"goldium/internal/models"
	"goldium/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupUser struct {
	container *do.Injector
}

type connectRequest struct {
	WalletAddress string `json:"wallet_address"`
}

// Connect registers the wallet and hands back a session token.
func (gr *groupUser) Connect(c echo.Context) error {
	ctx := c.Request().Context()

	var req connectRequest
	if err := c.Bind(&req); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}

	serviceUser, err := do.Invoke[*services.ServiceUser](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	user, err := serviceUser.FindOrCreateUser(ctx, req.WalletAddress)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	authentication, err := do.Invoke[*services.Authentication](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	token, err := authentication.CreateToken(&models.WalletSession{WalletAddress: user.WalletAddress})
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, map[string]interface{}{
		"token": token,
		"user":  user,
	}, nil)
}

func (gr *groupUser) Me(c echo.Context) error {
	user, err := ResolveValidUser(c.Request().Context(), gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	return httpx.RestAbort(c, user, nil)
}

func (gr *groupUser) CompleteLesson(c echo.Context) error {
	ctx := c.Request().Context()

	session, err := ResolveSession(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceUser, err := do.Invoke[*services.ServiceUser](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	user, err := serviceUser.CompleteLesson(ctx, session.WalletAddress)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	return httpx.RestAbort(c, user, nil)
}

func (gr *groupUser) Analytics(c echo.Context) error {
	ctx := c.Request().Context()

	session, err := ResolveSession(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceAnalytics, err := do.Invoke[*services.ServiceAnalytics](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	summary, err := serviceAnalytics.Summary(ctx, session.WalletAddress)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	return httpx.RestAbort(c, summary, nil)
}

func (gr *groupUser) History(c echo.Context) error {
	ctx := c.Request().Context()

	session, err := ResolveSession(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	tracker, err := do.Invoke[*services.ServiceTracker](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	txs, err := tracker.GetHistory(ctx, session.WalletAddress, queryInt(c, "limit", 0))
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	return httpx.RestAbort(c, txs, nil)
}
