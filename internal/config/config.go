package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"
)

const DefaultPath = "conf/config.ini"

type Config struct {
	Addr            string
	TLSCert         string
	TLSKey          string
	ShutdownTimeout time.Duration
	AllowedOrigin   string

	RateLimit float64
	RateBurst int

	LogLevel  string
	LogFormat string

	// from the environment
	TokenKey          []byte
	TokenTTL          time.Duration
	AdminLogin        string
	AdminPasswordHash string

	BotToken       string
	BotAPIURL      string
	BotPollTimeout int
}

// Load reads the ini file at path (a missing file leaves every default in
// place), then .env, then the process environment.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	if p := os.Getenv("DUCT_CONFIG"); p != "" {
		path = p
	}
	file, err := ini.LooseLoad(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	cfg := fromFile(file)
	fromEnv(cfg)
	return cfg, nil
}

func fromFile(file *ini.File) *Config {
	server := file.Section("server")
	limits := file.Section("limits")
	logs := file.Section("log")
	auth := file.Section("auth")
	tg := file.Section("telegram")
	return &Config{
		Addr:            server.Key("addr").MustString(":8080"),
		TLSCert:         server.Key("tls_cert").String(),
		TLSKey:          server.Key("tls_key").String(),
		ShutdownTimeout: server.Key("shutdown_timeout").MustDuration(5 * time.Second),
		AllowedOrigin:   server.Key("allowed_origin").String(),

		RateLimit: limits.Key("rate").MustFloat64(5),
		RateBurst: limits.Key("burst").MustInt(10),

		LogLevel:  logs.Key("level").MustString("info"),
		LogFormat: logs.Key("format").In("text", []string{"text", "json"}),

		TokenTTL: auth.Key("token_ttl").MustDuration(30 * 24 * time.Hour),

		BotAPIURL:      tg.Key("api_url").MustString("https://api.telegram.org"),
		BotPollTimeout: tg.Key("poll_timeout").MustInt(20),
	}
}

func fromEnv(cfg *Config) {
	if addr := os.Getenv("DUCT_ADDR"); addr != "" {
		cfg.Addr = addr
	}
	cfg.TokenKey = []byte(os.Getenv("TOKEN_KEY"))
	cfg.AdminLogin = os.Getenv("ADMIN_LOGIN")
	cfg.AdminPasswordHash = os.Getenv("ADMIN_PASSWORD_HASH")
	cfg.BotToken = os.Getenv("TOKEN_BOT")
}

// TLS reports whether both a certificate and a key are configured.
func (c *Config) TLS() bool {
	return c.TLSCert != "" && c.TLSKey != ""
}

// AuthEnabled reports whether a token signing key is configured.
func (c *Config) AuthEnabled() bool {
	return len(c.TokenKey) > 0
}

// SetupLogging applies the level and format to the standard logrus logger.
func (c *Config) SetupLogging() error {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	log.SetLevel(level)
	if c.LogFormat == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return nil
}
