package handler

import (
	"goldium/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupNotification struct {
	container *do.Injector
}

func (gr *groupNotification) List(c echo.Context) error {
	serviceNotification, err := do.Invoke[*services.ServiceNotification](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	return httpx.RestAbort(c, serviceNotification.Feed(), nil)
}

func (gr *groupNotification) Dismiss(c echo.Context) error {
	serviceNotification, err := do.Invoke[*services.ServiceNotification](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	serviceNotification.Dismiss(c.Param("signature"))
	return httpx.RestAbort(c, map[string]interface{}{"dismissed": true}, nil)
}

type groupActivity struct {
	container *do.Injector
}

func (gr *groupActivity) Live(c echo.Context) error {
	serviceActivity, err := do.Invoke[*services.ServiceActivity](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	items, err := serviceActivity.Recent(c.Request().Context(), queryInt(c, "limit", 0))
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	return httpx.RestAbort(c, items, nil)
}
