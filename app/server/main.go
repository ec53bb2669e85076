package main

import (
	"context"
	"errors"
	"fmt"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"log"
	"net/http"
	"os"
	"os/signal"
	"shinkwang-site/app/server/apidocs"
	"shinkwang-site/app/server/assistant"
	"shinkwang-site/app/server/handlers"
	"shinkwang-site/app/server/inits"
	"shinkwang-site/app/server/jwt"
	"shinkwang-site/app/server/middlewares"
	"shinkwang-site/app/server/pages"
	"syscall"
	"time"
)

func main() {
	// load config
	cfg, err := inits.Config()
	if err != nil {
		log.Fatal(fmt.Errorf("error loading config: %w", err))
	}

	// init logger
	l, err := inits.Logger(!cfg.System.IsProd)
	if err != nil {
		log.Fatal(fmt.Errorf("error initializing logger: %w", err))
	}
	defer l.Sync()

	l.Debug("logger initialized")

	// connect database
	db, err := inits.DB(cfg.System.DBConnectionString)
	if err != nil {
		l.Fatal("error initializing DB connection", zap.Error(err))
	}

	// connect redis
	rdb, err := inits.Redis(cfg.System.RedisConnectionString)
	if err != nil {
		l.Fatal("error initializing Redis connection", zap.Error(err))
	}

	// session signing
	j, err := jwt.New(cfg.Security.SignatureSecretKey)
	if err != nil {
		l.Fatal("error initializing JWT", zap.Error(err))
	}

	// page templates
	renderer, err := pages.NewRenderer()
	if err != nil {
		l.Fatal("error parsing page templates", zap.Error(err))
	}

	// handler app
	handlerApp, err := handlers.NewApp(l, db, rdb, j, cfg, assistant.NewGemini(cfg.Assistant.Model))
	if err != nil {
		l.Fatal("error initializing handlers", zap.Error(err))
	}

	// echo server
	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.HTTPErrorHandler = handlerApp.HTTPErrorHandler
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			l.Info("request",
				zap.String("method", v.Method),
				zap.String("URI", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			)

			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.System.CORSOrigin},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// routes
	handlerApp.Register(e)

	// API docs, admin only in production
	if doc, err := apidocs.Load(context.Background()); err != nil {
		l.Error("error initializing api docs", zap.Error(err))
	} else {
		var docOpts []apidocs.Opts
		if cfg.System.IsProd {
			docOpts = append(docOpts, apidocs.WithAuthorizer(middlewares.HasSession(j, rdb)))
		}
		e.Pre(apidocs.Doc("/api", doc, docOpts...))
	}

	// start serving
	go func() {
		if err := e.Start(cfg.System.Listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Fatal("shutting down the server", zap.Error(err))
		}
	}()

	// wait for a stop signal, then drain in-flight requests
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		l.Error("shutdown error", zap.Error(err))
	}
	if err := rdb.Close(); err != nil {
		l.Error("failed to close redis", zap.Error(err))
	}
}
