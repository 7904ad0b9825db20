package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"resume-matcher/internal/shared/telemetry"
)

// Config holds application configuration.
type Config struct {
	Port            string
	CORSAllowOrigin []string
	Env             string
	Debug           bool
	DatabaseURL     string
	DBPool          DBPool

	ObjectStoreType string
	LocalStoreDir   string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string

	SemanticProvider string
	SemanticModel    string
	SemanticTimeout  time.Duration
	OpenAIAPIKey     string
	GeminiAPIKey     string

	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	SemanticCacheTTL time.Duration

	MatchAutoProcess          bool
	BatchMaxPairs             int
	InsightsSeniorThreshold   int
	InsightsTargetedThreshold int
}

// DBPool holds optional connection pool overrides. Zero values keep the
// caller's defaults.
type DBPool struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
}

var defaults = map[string]any{
	"port":                        "8080",
	"cors_allow_origins":          "http://localhost:5173",
	"env":                         "dev",
	"debug":                       false,
	"object_store":                "local",
	"local_store_dir":             "./data",
	"semantic_provider":           "none",
	"semantic_timeout":            "30s",
	"redis_db":                    0,
	"semantic_cache_ttl":          "24h",
	"match_auto_process":          false,
	"batch_max_pairs":             50,
	"insights_senior_threshold":   75,
	"insights_targeted_threshold": 50,
}

// Load reads configuration from environment variables with sensible defaults.
// An optional config file is read when configFile is non-empty.
func Load(configFile ...string) Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if len(configFile) > 0 && strings.TrimSpace(configFile[0]) != "" {
		v.SetConfigFile(configFile[0])
		if err := v.ReadInConfig(); err != nil {
			telemetry.Error("config.read_failed", map[string]any{"file": configFile[0], "error": err.Error()})
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) Config {
	env := normalizeEnv(v.GetString("env"))
	dbURL := v.GetString("database_url")
	if env == "production" && dbURL == "" {
		telemetry.Error("config.database_url_missing", map[string]any{"env": env})
	}

	return Config{
		Port:            v.GetString("port"),
		CORSAllowOrigin: splitAndTrim(v.GetString("cors_allow_origins")),
		Env:             env,
		Debug:           v.GetBool("debug"),
		DatabaseURL:     dbURL,
		DBPool: DBPool{
			MaxOpenConns:    v.GetInt("db_max_open_conns"),
			MaxIdleConns:    v.GetInt("db_max_idle_conns"),
			ConnMaxLifetime: v.GetDuration("db_conn_max_lifetime"),
			ConnMaxIdleTime: v.GetDuration("db_conn_max_idle_time"),
			PingTimeout:     v.GetDuration("db_ping_timeout"),
		},

		ObjectStoreType: normalizeStoreType(v.GetString("object_store")),
		LocalStoreDir:   v.GetString("local_store_dir"),
		AWSRegion:       v.GetString("aws_region"),
		S3Bucket:        v.GetString("s3_bucket"),
		S3Prefix:        v.GetString("s3_prefix"),

		SemanticProvider: normalizeProvider(v.GetString("semantic_provider")),
		SemanticModel:    v.GetString("semantic_model"),
		SemanticTimeout:  positiveDuration(v.GetDuration("semantic_timeout"), 30*time.Second),
		OpenAIAPIKey:     v.GetString("openai_api_key"),
		GeminiAPIKey:     v.GetString("gemini_api_key"),

		RedisAddr:        v.GetString("redis_addr"),
		RedisPassword:    v.GetString("redis_password"),
		RedisDB:          v.GetInt("redis_db"),
		SemanticCacheTTL: positiveDuration(v.GetDuration("semantic_cache_ttl"), 24*time.Hour),

		MatchAutoProcess:          v.GetBool("match_auto_process"),
		BatchMaxPairs:             v.GetInt("batch_max_pairs"),
		InsightsSeniorThreshold:   v.GetInt("insights_senior_threshold"),
		InsightsTargetedThreshold: v.GetInt("insights_targeted_threshold"),
	}
}

func positiveDuration(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}

func normalizeProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "openai":
		return "openai"
	case "gemini", "google":
		return "gemini"
	default:
		return "none"
	}
}
