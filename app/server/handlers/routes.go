package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
	"net/http"
	"shinkwang-site/app/server/constants"
	"shinkwang-site/app/server/middlewares"
	"time"
)

func limitPerIP(r rate.Limit, burst int) echo.MiddlewareFunc {
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      r,
			Burst:     burst,
			ExpiresIn: 3 * time.Minute,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusForbidden, &errorMessage{Error: "Forbidden"})
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(http.StatusTooManyRequests, &errorMessage{Error: "Too many requests, please try again later"})
		},
	})
}

// Register binds every route of the site onto e.
func (a *App) Register(e *echo.Echo) {
	requireAdmin := middlewares.RequireAdmin(a.jwt, a.rdb, a.l)
	detectAdmin := middlewares.DetectAdmin(a.jwt, a.rdb, a.l)
	challengeLimit := limitPerIP(rate.Limit(constants.AdminChallengeRate), constants.AdminChallengeBurst)
	assistantLimit := limitPerIP(rate.Limit(constants.AssistantRate), constants.AssistantBurst)

	e.GET("/healthz", a.HealthCheck)

	// JSON API
	api := e.Group("/api")

	api.GET("/content", a.ContentGet)
	api.POST("/content", a.ContentUpsert, requireAdmin)

	api.POST("/admin/session", a.AdminSessionCreate, challengeLimit)
	api.GET("/admin/session", a.AdminSessionStatus, detectAdmin)
	api.DELETE("/admin/session", a.AdminSessionDelete)

	api.GET("/newcomers", a.NewcomerList, requireAdmin)
	api.POST("/newcomers", a.NewcomerCreate)
	api.PUT("/newcomers", a.NewcomerUpdate, requireAdmin)
	api.DELETE("/newcomers", a.NewcomerDelete, requireAdmin)

	api.GET("/posts", a.PostList)
	api.POST("/posts", a.PostCreate)
	api.PATCH("/posts", a.PostPatch)
	api.DELETE("/posts", a.PostDelete, requireAdmin)

	api.GET("/qt", a.QTGet)
	api.POST("/qt", a.QTSave)

	api.POST("/chat", a.Chat, assistantLimit)
	api.POST("/summary", a.Summary, assistantLimit)

	// server-rendered pages
	e.GET("/", a.PageHome, detectAdmin)
	e.GET("/worship", a.PageWorship, detectAdmin)
	e.GET("/online", a.PageOnline, detectAdmin)
	e.GET("/pastor", a.PagePastor, detectAdmin)

	e.POST("/admin/enter", a.AdminEnter, challengeLimit)
	e.POST("/admin/exit", a.AdminExit)

	// route-level middleware only: group middleware would register catch-all routes and hide 405s
	edit := e.Group("/admin/sections")

	edit.POST("/:key", a.SectionSave, requireAdmin)
	edit.POST("/:key/rows", a.SectionRowSave, requireAdmin)
	edit.POST("/:key/rows/:id/delete", a.SectionRowDelete, requireAdmin)
}
