package config

import "time"

type Config struct {
	System struct {
		IsProd                bool   // production mode: JSON logs, no API docs
		Listen                string // listen address
		DBConnectionString    string // Postgres connection string
		RedisConnectionString string // Redis connection string
		CORSOrigin            string // allowed origin, "*" by default
	}
	Security struct {
		SignatureSecretKey string        // signs admin session tokens; rotating it ends every session
		AdminSecret        string        // shared secret that unlocks administrator mode
		SessionTTL         time.Duration // lifetime of an admin session token
	}
	Assistant struct {
		Model string // generative model name
	}
}
