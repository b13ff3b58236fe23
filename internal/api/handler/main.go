package handler

import (
	"net/http"
	"strconv"

	"goldium/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo-contrib/pprof"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/samber/do"
)

type Config struct {
	Container *do.Injector
	Mode      string
	Origins   []string
}

func New(cfg *Config) (http.Handler, error) {
	r := echo.New()
	r.Pre(middleware.RemoveTrailingSlash())
	if cfg.Mode == "debug" {
		r.Debug = true
		pprof.Register(r)
	}

	r.JSONSerializer = httpx.SegmentJSONSerializer{}
	r.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339}\t${method}\t${uri}\t${status}\t${latency_human}\n",
	}))
	r.Use(middleware.Recover())

	r.GET("", func(c echo.Context) error {
		return c.String(http.StatusOK, "🪙")
	})

	routesAPIv1 := r.Group("/api/v1")
	{
		authentication, err := do.Invoke[*services.Authentication](cfg.Container)
		if err != nil {
			return nil, err
		}
		cors := middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     cfg.Origins,
			AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
			AllowCredentials: true,
			MaxAge:           60 * 60,
		})

		routesAPIv1.Use(cors)
		routesAPIv1.Use(Authn(authentication)) // Authn will NOT terminate unauthenticated requests.

		u := groupUser{cfg.Container}
		routesAPIv1.POST("/auth/connect", u.Connect)

		routesAPIv1User := routesAPIv1.Group("/user/me")
		{
			routesAPIv1User.GET("", u.Me)
			routesAPIv1User.GET("/analytics", u.Analytics)
			routesAPIv1User.GET("/history", u.History)
			routesAPIv1User.POST("/lessons/complete", u.CompleteLesson)
		}

		t := groupTransaction{cfg.Container}
		routesAPIv1.POST("/transactions", t.Submit)
		routesAPIv1.GET("/transaction/:signature", t.Show)
		routesAPIv1.GET("/transaction/:signature/status", t.Status)
		routesAPIv1.DELETE("/transaction/:signature/watch", t.CancelWatch)

		s := groupStaking{cfg.Container}
		routesAPIv1.GET("/staking/pool", s.Pool)
		routesAPIv1Staking := routesAPIv1.Group("/staking")
		{
			routesAPIv1Staking.POST("/stake", s.Stake)
			routesAPIv1Staking.GET("/positions", s.Positions)
			routesAPIv1Staking.GET("/summary", s.Summary)
			routesAPIv1Staking.POST("/:id/claim", s.Claim)
			routesAPIv1Staking.POST("/:id/unstake", s.Unstake)
		}

		g := groupGame{cfg.Container}
		routesAPIv1.GET("/game/questions", g.Questions)
		routesAPIv1.POST("/game/answer", g.Answer)
		routesAPIv1.POST("/game/submit", g.Submit)
		routesAPIv1.GET("/game/leaderboard", g.Leaderboard)
		routesAPIv1.GET("/game/history", g.History)

		sw := groupSwap{cfg.Container}
		routesAPIv1.GET("/swap/quote", sw.Quote)
		routesAPIv1.POST("/swap/transaction", sw.Transaction)

		n := groupNotification{cfg.Container}
		routesAPIv1.GET("/notifications", n.List)
		routesAPIv1.DELETE("/notification/:signature", n.Dismiss)

		a := groupActivity{cfg.Container}
		routesAPIv1.GET("/activity/live", a.Live)
	}

	return r, nil
}

func queryInt(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
