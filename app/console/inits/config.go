package inits

import (
	"errors"
	"fmt"
	"github.com/spf13/viper"
	"net/url"
	"os"
	"path/filepath"
	"shinkwang-site/app/console/config"
	"strings"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	keyDebug             = "debug"
	keyServer            = "server"
	keyTimeout           = "timeout"
	keyWatchInterval     = "watch_interval"
	keyPrefsFile         = "prefs_file"
	keySystemInstruction = "system_instruction"
)

const defaultConfigYAML = `# sgch console configuration

# Site root, without /api
server: http://localhost:1323

# Per-request timeout
timeout: 30s

# How often "watch" re-fetches site content
watch_interval: 1m

# Local state file (admin session, drafts, liked posts); relative to this directory
prefs_file: prefs.yaml

debug: false

# Replaces the built-in chat instruction when set
# system_instruction:
`

// DefaultConfigDir is $HOME/.sgch.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".sgch"
	}
	return filepath.Join(home, ".sgch")
}

// Config reads config.yaml from configDir, writing a default one on first run.
// SGCH_* environment variables override the file.
func Config(configDir string) (*config.Config, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(keyServer, "http://localhost:1323")
	v.SetDefault(keyTimeout, "30s")
	v.SetDefault(keyWatchInterval, "1m")
	v.SetDefault(keyPrefsFile, "prefs.yaml")

	v.SetEnvPrefix("SGCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg config.Config
	cfg.Debug = v.GetBool(keyDebug)

	cfg.ServerEndpoint = strings.TrimSpace(v.GetString(keyServer))
	if u, err := url.Parse(cfg.ServerEndpoint); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("server should be an absolute URL, got %q", cfg.ServerEndpoint)
	}

	if cfg.RequestTimeout = v.GetDuration(keyTimeout); cfg.RequestTimeout <= 0 {
		return nil, fmt.Errorf("timeout should be a positive duration")
	}
	if cfg.WatchInterval = v.GetDuration(keyWatchInterval); cfg.WatchInterval <= 0 {
		return nil, fmt.Errorf("watch_interval should be a positive duration")
	}

	cfg.PrefsFile = v.GetString(keyPrefsFile)
	if !filepath.IsAbs(cfg.PrefsFile) {
		cfg.PrefsFile = filepath.Join(configDir, cfg.PrefsFile)
	}

	cfg.SystemInstruction = v.GetString(keySystemInstruction)

	return &cfg, nil
}

func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
