package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	LocalStore LocalStoreConfig
	Remote     RemoteConfig
	Sync       SyncConfig
	Gate       GateConfig
	CORS       CORSConfig
	Log        LogConfig
	Stats      StatsConfig
	Redis      RedisConfig
	Export     ExportConfig
	Metrics    MetricsConfig
}

// LocalStoreConfig locates the on-device booking document database.
type LocalStoreConfig struct {
	Path        string
	DocumentKey string
}

// RemoteConfig identifies the remote document endpoint.
type RemoteConfig struct {
	Provider  string // "npoint" or "jsonbin"
	BaseURL   string // override for tests; provider default when empty
	DocID     string
	AccessKey string
	ProbeURL  string
	Timeout   time.Duration
}

// SyncConfig tunes the push debounce and the pull poll loop.
type SyncConfig struct {
	DebounceDelay time.Duration
	PollInterval  time.Duration
}

// GateConfig governs the protected-action gate.
type GateConfig struct {
	PINHash     string
	TokenSecret string
	GraceWindow time.Duration
	Issuer      string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// StatsConfig governs the statistics endpoints and their cache.
type StatsConfig struct {
	CacheEnabled bool
	CacheTTL     time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// ExportConfig toggles CSV/PDF export endpoints.
type ExportConfig struct {
	Enabled bool
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.LocalStore = LocalStoreConfig{
		Path:        v.GetString("LOCAL_STORE_PATH"),
		DocumentKey: v.GetString("LOCAL_STORE_DOCUMENT_KEY"),
	}

	cfg.Remote = RemoteConfig{
		Provider:  strings.ToLower(v.GetString("REMOTE_PROVIDER")),
		BaseURL:   v.GetString("REMOTE_BASE_URL"),
		DocID:     v.GetString("REMOTE_DOC_ID"),
		AccessKey: v.GetString("REMOTE_ACCESS_KEY"),
		ProbeURL:  v.GetString("REMOTE_PROBE_URL"),
		Timeout:   parseDuration(v.GetString("REMOTE_TIMEOUT"), 10*time.Second),
	}

	cfg.Sync = SyncConfig{
		DebounceDelay: parseDuration(v.GetString("SYNC_DEBOUNCE_DELAY"), 1500*time.Millisecond),
		PollInterval:  parseDuration(v.GetString("SYNC_POLL_INTERVAL"), 20*time.Second),
	}

	cfg.Gate = GateConfig{
		PINHash:     v.GetString("GATE_PIN_HASH"),
		TokenSecret: v.GetString("GATE_TOKEN_SECRET"),
		GraceWindow: parseDuration(v.GetString("GATE_GRACE_WINDOW"), 5*time.Minute),
		Issuer:      v.GetString("GATE_ISSUER"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Stats = StatsConfig{
		CacheEnabled: v.GetBool("STATS_CACHE_ENABLED"),
		CacheTTL:     parseDuration(v.GetString("STATS_CACHE_TTL"), 5*time.Minute),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Export = ExportConfig{Enabled: v.GetBool("ENABLE_EXPORTS")}
	cfg.Metrics = MetricsConfig{Enabled: v.GetBool("ENABLE_METRICS")}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("LOCAL_STORE_PATH", "./data/bookings.db")
	v.SetDefault("LOCAL_STORE_DOCUMENT_KEY", "lrcBookings")

	v.SetDefault("REMOTE_PROVIDER", "npoint")
	v.SetDefault("REMOTE_BASE_URL", "")
	v.SetDefault("REMOTE_DOC_ID", "")
	v.SetDefault("REMOTE_ACCESS_KEY", "")
	v.SetDefault("REMOTE_PROBE_URL", "https://api.npoint.io")
	v.SetDefault("REMOTE_TIMEOUT", "10s")

	v.SetDefault("SYNC_DEBOUNCE_DELAY", "1500ms")
	v.SetDefault("SYNC_POLL_INTERVAL", "20s")

	// Hash of the development PIN "0000"; override in production.
	v.SetDefault("GATE_PIN_HASH", "$2a$10$1ClBYxITJnWkZGKsWVQlIuLGLGrXZAnFLceP2QHOK1C1snJQ4vDYG")
	v.SetDefault("GATE_TOKEN_SECRET", "dev_gate_secret")
	v.SetDefault("GATE_GRACE_WINDOW", "5m")
	v.SetDefault("GATE_ISSUER", "masadr2040")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("STATS_CACHE_ENABLED", false)
	v.SetDefault("STATS_CACHE_TTL", "5m")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ENABLE_EXPORTS", true)
	v.SetDefault("ENABLE_METRICS", false)
}

// Configured reports whether the remote endpoint has usable credentials.
// jsonbin needs both the document id and the master key; npoint only the id.
func (r RemoteConfig) Configured() bool {
	if r.DocID == "" || IsPlaceholder(r.DocID) {
		return false
	}
	if r.Provider == "jsonbin" && (r.AccessKey == "" || IsPlaceholder(r.AccessKey)) {
		return false
	}
	return true
}

// IsPlaceholder recognizes template credentials copied from setup docs, so
// they never count as a configured endpoint.
func IsPlaceholder(value string) bool {
	upper := strings.ToUpper(value)
	return strings.Contains(upper, "YOUR_") || strings.Contains(upper, "CHANGE_ME")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
