package inits

import (
	"fmt"
	"os"
	"shinkwang-site/app/server/config"
	"shinkwang-site/app/server/constants"
	"strings"
	"time"
)

func Config() (*config.Config, error) {
	var cfg config.Config

	{
		mode, exist := os.LookupEnv("MODE")
		cfg.System.IsProd = exist && strings.HasPrefix(strings.ToLower(mode), "p")
	}

	if listen, exist := os.LookupEnv("LISTEN"); !exist {
		cfg.System.Listen = ":1323"
	} else {
		cfg.System.Listen = listen
	}

	if dbconn, exist := os.LookupEnv("DB_CONN"); !exist {
		return nil, fmt.Errorf("DB_CONN environment variable not set")
	} else {
		cfg.System.DBConnectionString = dbconn
	}

	if redisconn, exist := os.LookupEnv("REDIS_CONN"); !exist {
		return nil, fmt.Errorf("REDIS_CONN environment variable not set")
	} else {
		cfg.System.RedisConnectionString = redisconn
	}

	if origin, exist := os.LookupEnv("CORS_ORIGIN"); !exist {
		cfg.System.CORSOrigin = "*"
	} else {
		cfg.System.CORSOrigin = origin
	}

	if sigsk, exist := os.LookupEnv("SIGNATURE_SECRET_KEY"); !exist {
		return nil, fmt.Errorf("SIGNATURE_SECRET_KEY environment variable not set")
	} else {
		cfg.Security.SignatureSecretKey = sigsk
	}

	// the well-known development secret is only accepted outside production
	if secret, exist := os.LookupEnv("ADMIN_SECRET"); exist && secret != "" {
		cfg.Security.AdminSecret = secret
	} else if cfg.System.IsProd {
		return nil, fmt.Errorf("ADMIN_SECRET environment variable not set")
	} else {
		cfg.Security.AdminSecret = constants.DevAdminSecret
	}

	if ttlStr, exist := os.LookupEnv("SESSION_TTL"); !exist {
		cfg.Security.SessionTTL = constants.AuthTokenDuration
	} else if ttl, err := time.ParseDuration(ttlStr); err != nil || ttl <= 0 {
		return nil, fmt.Errorf("SESSION_TTL should be a positive duration")
	} else {
		cfg.Security.SessionTTL = ttl
	}

	if model, exist := os.LookupEnv("GEMINI_MODEL"); !exist {
		cfg.Assistant.Model = constants.DefaultAssistantModel
	} else {
		cfg.Assistant.Model = model
	}

	return &cfg, nil
}
