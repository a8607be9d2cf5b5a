package config

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

const (
	DefaultConfigPath       = "config.toml"
	DefaultHTTPAddr         = ":8080"
	DefaultResourceDir      = "resources"
	DefaultUploadEndpoint   = "https://uapis.cn/api/v1/image/frombase64"
	DefaultUploadTimeoutSec = 30
	DefaultAPITimeoutSec    = 30

	apiBaseURL        = "https://api.sgroup.qq.com"
	apiSandboxBaseURL = "https://sandbox.api.sgroup.qq.com"
)

type Config struct {
	Log       LogConfig       `toml:"log"`
	Server    ServerConfig    `toml:"server"`
	QQ        QQConfig        `toml:"qq"`
	Resources ResourcesConfig `toml:"resources"`
	Upload    UploadConfig    `toml:"upload"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

type QQConfig struct {
	AppID          string `toml:"app_id" validate:"required"`
	AppSecret      string `toml:"app_secret" validate:"required"`
	Sandbox        bool   `toml:"sandbox"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// BaseURL returns the open-platform API base for the configured environment.
func (c QQConfig) BaseURL() string {
	if c.Sandbox {
		return apiSandboxBaseURL
	}
	return apiBaseURL
}

type ResourcesConfig struct {
	Dir        string `toml:"dir"`
	ReloadCron string `toml:"reload_cron"`
}

type UploadConfig struct {
	Endpoint       string `toml:"endpoint"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

var validate = validator.New()

// Validate checks the fields a connected bot process requires. Console-only
// commands do not call it, so they run without platform credentials.
func (c Config) Validate() error {
	return validate.Struct(c)
}

func Load(path string) (Config, error) {
	cfg := Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Addr: DefaultHTTPAddr,
		},
		QQ: QQConfig{
			TimeoutSeconds: DefaultAPITimeoutSec,
		},
		Resources: ResourcesConfig{
			Dir: DefaultResourceDir,
		},
		Upload: UploadConfig{
			Endpoint:       DefaultUploadEndpoint,
			TimeoutSeconds: DefaultUploadTimeoutSec,
		},
	}

	if path == "" {
		path = DefaultConfigPath
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(&cfg)
			return cfg, nil
		}
		return cfg, err
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}

	applyEnvOverrides(&cfg)
	return cfg, nil
}

// Credentials may come from the environment (a .env file loaded at startup)
// instead of config.toml, so they never land in a committed file.
func applyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("QQ_APP_ID")); v != "" {
		cfg.QQ.AppID = v
	}
	if v := strings.TrimSpace(os.Getenv("QQ_APP_SECRET")); v != "" {
		cfg.QQ.AppSecret = v
	}
}
