package handler

import (
	"context"
	"errors"
	"strings"

	"goldium/internal/models"
	"goldium/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type ctxKey string

var ctxKeyAuthSession ctxKey = "AUTH_SESSION"

// Authn attaches the wallet session to the request context. It does NOT
// terminate unauthenticated requests; protected handlers resolve the session
// themselves and fail there.
func Authn(verifier interface {
	Validate(token string) (*models.WalletSession, error)
},
) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return next(c)
			}

			parts := strings.Split(header, "Bearer")
			if len(parts) != 2 {
				return next(c)
			}

			token := strings.TrimSpace(parts[1])
			if len(token) == 0 {
				return next(c)
			}

			session, err := verifier.Validate(token)
			if err != nil {
				// a client error, but we don't leak why validation failed
				//nolint:errcheck
				httpx.Abort(c, errorx.Wrap(errors.New("invalid access token"), errorx.Authn), -1)
				return nil
			}

			ctx := c.Request().Context()
			ctx = context.WithValue(ctx, ctxKeyAuthSession, session)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

func ResolveSession(ctx context.Context) (*models.WalletSession, error) {
	session, ok := ctx.Value(ctxKeyAuthSession).(*models.WalletSession)
	if !ok {
		return nil, errorx.Wrap(errors.New("missing session"), errorx.Authn)
	}
	return session, nil
}

func ResolveValidUser(ctx context.Context, container *do.Injector) (*models.User, error) {
	session, err := ResolveSession(ctx)
	if err != nil {
		return nil, err
	}

	serviceUser, err := do.Invoke[*services.ServiceUser](container)
	if err != nil {
		return nil, err
	}

	return serviceUser.FindOrCreateUser(ctx, session.WalletAddress)
}
