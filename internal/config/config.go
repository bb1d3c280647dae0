package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"

	applog "snapfind/internal/log"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
	Store      StoreConfig      `mapstructure:"store"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Classifier ClassifierConfig `mapstructure:"classifier"`
	Gemini     GeminiConfig     `mapstructure:"gemini"`
	History    HistoryConfig    `mapstructure:"history"`
	Image      ImageConfig      `mapstructure:"image"`
}

type ServerConfig struct {
	Port      string `mapstructure:"port"`
	BodyLimit int    `mapstructure:"body_limit"`
	Templates string `mapstructure:"templates"`
	Static    string `mapstructure:"static"`
	// analyses per IP per minute; 0 disables the limiter
	AnalyzeLimit int `mapstructure:"analyze_limit"`
}

type LogConfig struct {
	File string `mapstructure:"file"`
}

// StoreConfig picks the key/value backend: sqlite, redis or memory.
// TTL bounds how long an untouched transient sqlite row (label cache,
// hand-off slots) is kept. History rows are exempt.
type StoreConfig struct {
	Driver string        `mapstructure:"driver"`
	DSN    string        `mapstructure:"dsn"`
	TTL    time.Duration `mapstructure:"ttl"`
}

type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type ClassifierConfig struct {
	Provider string        `mapstructure:"provider"` // huggingface | gemini
	URL      string        `mapstructure:"url"`
	Token    string        `mapstructure:"token"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Cache    bool          `mapstructure:"cache"`
}

type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type HistoryConfig struct {
	Limit int `mapstructure:"limit"`
}

type ImageConfig struct {
	MaxBytes int `mapstructure:"max_bytes"`
}

// Load reads config.yaml (optional) from the working directory, then applies
// environment overrides. Missing file is fine; a malformed one is logged and
// ignored.
func Load() Config {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	cfg, err := load(v)
	if err != nil {
		applog.Warn(nil, "config.read.fail", err, nil)
	}
	applog.Info(nil, "config.loaded", map[string]any{
		"port":       cfg.Server.Port,
		"store":      cfg.Store.Driver,
		"dsn":        cfg.Store.DSN,
		"classifier": cfg.Classifier.Provider,
		"token_set":  cfg.Classifier.Token != "",
		"log_file":   cfg.Log.File,
	})
	return cfg
}

func load(v *viper.Viper) (Config, error) {
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// names kept from the original deployment
	_ = v.BindEnv("server.port", "SERVER_PORT", "PORT")
	_ = v.BindEnv("store.dsn", "STORE_DSN", "DB_DSN")
	_ = v.BindEnv("log.file", "LOG_FILE")
	_ = v.BindEnv("classifier.token", "CLASSIFIER_TOKEN", "HUGGING_FACE_TOKEN")
	_ = v.BindEnv("gemini.api_key", "GEMINI_API_KEY")

	var readErr error
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			readErr = err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return defaults(), err
	}
	return cfg, readErr
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.body_limit", 8<<20)
	v.SetDefault("server.templates", "./web/templates")
	v.SetDefault("server.static", "./web/static")
	v.SetDefault("server.analyze_limit", 20)

	v.SetDefault("log.file", "./snapfind.log")

	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.dsn", "snapfind.db")
	v.SetDefault("store.ttl", 30*24*time.Hour)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 30*24*time.Hour)

	v.SetDefault("classifier.provider", "huggingface")
	v.SetDefault("classifier.url", "https://api-inference.huggingface.co/models/google/vit-base-patch16-224")
	v.SetDefault("classifier.token", "")
	v.SetDefault("classifier.timeout", 30*time.Second)
	v.SetDefault("classifier.cache", true)

	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model", "gemini-2.5-flash")

	v.SetDefault("history.limit", 20)
	v.SetDefault("image.max_bytes", 5<<20)
}

func defaults() Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return cfg
}
