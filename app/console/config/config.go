package config

import (
	"time"
)

type Config struct {
	// logging
	Debug bool

	// server
	ServerEndpoint string
	RequestTimeout time.Duration
	WatchInterval  time.Duration

	// local state file
	PrefsFile string

	// replaces the built-in chat instruction when set
	SystemInstruction string
}
