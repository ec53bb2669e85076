package handlers

import (
	"fmt"
	"github.com/alexedwards/argon2id"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"shinkwang-site/app/server/assistant"
	"shinkwang-site/app/server/config"
	"shinkwang-site/app/server/content"
	"shinkwang-site/app/server/jwt"
)

type App struct {
	l   *zap.Logger         // logger
	db  *gorm.DB            // database
	rdb *redis.Client       // redis, content cache and revoked sessions
	jwt *jwt.JWT            // signs admin session tokens
	cfg *config.Config      // runtime config
	cs  *content.Store      // editable site content
	ai  assistant.Generator // chat and sermon summaries

	adminHash string // argon2id hash of the shared admin secret
}

func NewApp(l *zap.Logger, db *gorm.DB, rdb *redis.Client, j *jwt.JWT, cfg *config.Config, ai assistant.Generator) (*App, error) {
	// the plain secret is not kept around
	hash, err := argon2id.CreateHash(cfg.Security.AdminSecret, argon2id.DefaultParams)
	if err != nil {
		return nil, fmt.Errorf("hash admin secret: %w", err)
	}

	return &App{
		l:         l,
		db:        db,
		rdb:       rdb,
		jwt:       j,
		cfg:       cfg,
		cs:        content.NewStore(l.Named("content"), db, rdb),
		ai:        ai,
		adminHash: hash,
	}, nil
}
