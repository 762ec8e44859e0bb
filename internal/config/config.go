package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env              string
	ListenAddr       string
	DatabaseURL      string
	DBMaxConns       int32
	DBHealthCheck    time.Duration
	RedisAddr        string
	CacheTTL         time.Duration
	CacheSize        int
	KafkaBrokers     []string
	KafkaTopic       string
	FollowupWorkers  int
	FollowupInterval time.Duration
	FollowupMinGap   time.Duration
	MaxConnections   int
	LogLevel         string
	LogFormat        string
	AssumptionsFile  string
}

// ErrNoDatabase is returned alongside a usable Config when DATABASE_URL is
// unset. Callers fall back to in-memory storage.
var ErrNoDatabase = errors.New("DATABASE_URL not set")

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_env", "development")
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("database_url", "")
	v.SetDefault("db_max_conns", 10)
	v.SetDefault("db_health_check_period", "30s")
	v.SetDefault("redis_addr", "")
	v.SetDefault("cache_ttl", "10m")
	v.SetDefault("cache_size", 10000)
	v.SetDefault("kafka_brokers", "")
	v.SetDefault("kafka_topic", "leaseflex.offers")
	v.SetDefault("followup_workers", 0)
	v.SetDefault("followup_interval", "1m")
	v.SetDefault("followup_min_gap", "24h")
	v.SetDefault("max_connections", 0)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("assumptions_file", "")
}

// Load reads configuration from the environment.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := Config{
		Env:              v.GetString("app_env"),
		ListenAddr:       v.GetString("listen_addr"),
		DatabaseURL:      v.GetString("database_url"),
		DBMaxConns:       v.GetInt32("db_max_conns"),
		DBHealthCheck:    v.GetDuration("db_health_check_period"),
		RedisAddr:        v.GetString("redis_addr"),
		CacheTTL:         v.GetDuration("cache_ttl"),
		CacheSize:        v.GetInt("cache_size"),
		KafkaBrokers:     splitList(v.GetString("kafka_brokers")),
		KafkaTopic:       v.GetString("kafka_topic"),
		FollowupWorkers:  v.GetInt("followup_workers"),
		FollowupInterval: v.GetDuration("followup_interval"),
		FollowupMinGap:   v.GetDuration("followup_min_gap"),
		MaxConnections:   v.GetInt("max_connections"),
		LogLevel:         v.GetString("log_level"),
		LogFormat:        v.GetString("log_format"),
		AssumptionsFile:  v.GetString("assumptions_file"),
	}
	if cfg.FollowupInterval <= 0 {
		cfg.FollowupInterval = time.Minute
	}
	if cfg.DatabaseURL == "" {
		// Not fatal; the server runs on the in-memory store.
		return cfg, ErrNoDatabase
	}
	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
