package handler

import (
	"goldium/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupGame struct {
	container *do.Injector
}

func (gr *groupGame) Questions(c echo.Context) error {
	serviceGame, err := do.Invoke[*services.ServiceGame](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	questions := serviceGame.Questions(queryInt(c, "count", 0))
	return httpx.RestAbort(c, questions, nil)
}

type gameAnswerRequest struct {
	QuestionID int `json:"question_id"`
	Answer     int `json:"answer"`
}

type gameAnswerResult struct {
	Correct bool `json:"correct"`
}

func (gr *groupGame) Answer(c echo.Context) error {
	var req gameAnswerRequest
	if err := c.Bind(&req); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}

	serviceGame, err := do.Invoke[*services.ServiceGame](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	correct, err := serviceGame.CheckAnswer(req.QuestionID, req.Answer)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	return httpx.RestAbort(c, gameAnswerResult{Correct: correct}, nil)
}

func (gr *groupGame) Submit(c echo.Context) error {
	ctx := c.Request().Context()

	session, err := ResolveSession(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var req services.GameSubmitRequest
	if err := c.Bind(&req); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}
	req.WalletAddress = session.WalletAddress

	serviceGame, err := do.Invoke[*services.ServiceGame](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	result, err := serviceGame.SubmitResult(ctx, req)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	return httpx.RestAbort(c, result, nil)
}

func (gr *groupGame) Leaderboard(c echo.Context) error {
	serviceGame, err := do.Invoke[*services.ServiceGame](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	items, err := serviceGame.Leaderboard(c.Request().Context(), queryInt(c, "limit", 0))
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	return httpx.RestAbort(c, items, nil)
}

func (gr *groupGame) History(c echo.Context) error {
	ctx := c.Request().Context()

	session, err := ResolveSession(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceGame, err := do.Invoke[*services.ServiceGame](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	results, err := serviceGame.History(ctx, session.WalletAddress, queryInt(c, "limit", 0))
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	return httpx.RestAbort(c, results, nil)
}
