package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port         string `yaml:"port"`
		MaxUploadMB  int    `yaml:"max_upload_mb"`
		RateLimitMin int    `yaml:"rate_limit_per_min"`
	} `yaml:"server"`

	AI struct {
		Provider string `yaml:"provider"` // openai | gemini
		OpenAI   struct {
			APIKey  string `yaml:"api_key"`
			BaseURL string `yaml:"base_url"`
			Model   string `yaml:"model"`
			Voice   string `yaml:"tts_voice"`
		} `yaml:"openai"`
		Gemini struct {
			APIKey   string `yaml:"api_key"`
			Model    string `yaml:"model"`
			TTSModel string `yaml:"tts_model"`
		} `yaml:"gemini"`
		DocServiceURL string `yaml:"doc_service_url"`
	} `yaml:"ai"`

	Timeouts struct {
		Evaluate string `yaml:"evaluate"`
		Extract  string `yaml:"extract"`
		Report   string `yaml:"report"`
		TTS      string `yaml:"tts"`
	} `yaml:"timeouts"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Session struct {
		TTL string `yaml:"ttl"`
	} `yaml:"session"`

	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`

	S3 struct {
		Endpoint  string `yaml:"endpoint"`
		AccessKey string `yaml:"access_key"`
		SecretKey string `yaml:"secret_key"`
		Bucket    string `yaml:"bucket"`
		Region    string `yaml:"region"`
	} `yaml:"s3"`

	Telegram struct {
		AlertToken  string `yaml:"alert_token"`
		AlertChatID int64  `yaml:"alert_chat_id"`
	} `yaml:"telegram"`

	Auth struct {
		Secret         string `yaml:"secret"`
		ParentPassword string `yaml:"parent_password"`
	} `yaml:"auth"`
}

func defaults() Config {
	var c Config
	c.Server.Port = "8080"
	c.Server.MaxUploadMB = 20
	c.Server.RateLimitMin = 60
	c.AI.Provider = "openai"
	c.AI.DocServiceURL = "http://python_doc:8000/convert"
	c.Timeouts.Evaluate = "120s"
	c.Timeouts.Extract = "120s"
	c.Timeouts.Report = "60s"
	c.Timeouts.TTS = "30s"
	c.Session.TTL = "2h"
	return c
}

// Load builds the config: defaults, then the YAML file at path (optional),
// then environment variables, .env included.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, err
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("config %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	str := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	str("PORT", &c.Server.Port)
	str("AI_PROVIDER", &c.AI.Provider)
	str("OPENAI_API_KEY", &c.AI.OpenAI.APIKey)
	str("OPENAI_BASE_URL", &c.AI.OpenAI.BaseURL)
	str("OPENAI_MODEL", &c.AI.OpenAI.Model)
	str("OPENAI_TTS_VOICE", &c.AI.OpenAI.Voice)
	str("GEMINI_API_KEY", &c.AI.Gemini.APIKey)
	str("GEMINI_MODEL", &c.AI.Gemini.Model)
	str("GEMINI_TTS_MODEL", &c.AI.Gemini.TTSModel)
	str("DOC_SERVICE_URL", &c.AI.DocServiceURL)
	str("REDIS_ADDR", &c.Redis.Addr)
	str("REDIS_PASSWORD", &c.Redis.Password)
	str("SESSION_TTL", &c.Session.TTL)
	str("DATABASE_URL", &c.Postgres.URL)
	str("S3_ENDPOINT", &c.S3.Endpoint)
	str("S3_ACCESS_KEY", &c.S3.AccessKey)
	str("S3_SECRET_KEY", &c.S3.SecretKey)
	str("S3_BUCKET", &c.S3.Bucket)
	str("S3_REGION", &c.S3.Region)
	str("TELEGRAM_ALERT_TOKEN", &c.Telegram.AlertToken)
	str("AUTH_SECRET", &c.Auth.Secret)
	str("PARENT_PASSWORD", &c.Auth.ParentPassword)
	str("EVAL_TIMEOUT", &c.Timeouts.Evaluate)
	str("EXTRACT_TIMEOUT", &c.Timeouts.Extract)
	str("REPORT_TIMEOUT", &c.Timeouts.Report)
	str("TTS_TIMEOUT", &c.Timeouts.TTS)

	ints := []struct {
		key string
		dst *int
	}{
		{"REDIS_DB", &c.Redis.DB},
		{"MAX_UPLOAD_MB", &c.Server.MaxUploadMB},
		{"RATE_LIMIT_PER_MIN", &c.Server.RateLimitMin},
	}
	for _, it := range ints {
		v := os.Getenv(it.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", it.key, err)
		}
		*it.dst = n
	}

	if v := os.Getenv("TELEGRAM_ALERT_CHAT_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("TELEGRAM_ALERT_CHAT_ID: %w", err)
		}
		c.Telegram.AlertChatID = id
	}
	return nil
}

// Duration parses a duration string or returns the fallback if empty or invalid.
func Duration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	return fallback
}

func (c Config) MaxUploadBytes() int64 {
	if c.Server.MaxUploadMB <= 0 {
		return 20 << 20
	}
	return int64(c.Server.MaxUploadMB) << 20
}
