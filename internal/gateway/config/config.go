package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Env         string
	LogMode     string
	CORSOrigins []string
	LLM         LLMConfig
	Lead        LeadConfig
	Image       ImageConfig
	Session     SessionConfig
	Events      EventsConfig
	Tracing     TracingConfig
}

type LLMConfig struct {
	Provider          string
	APIKey            string
	FastModel         string
	DeepModel         string
	ImageModel        string
	RPS               float64
	Burst             int
	GenerationTimeout time.Duration
}

type LeadConfig struct {
	Store       string
	SQLitePath  string
	PostgresDSN string
}

// ImageConfig points at an S3-compatible bucket for persona images. When
// incomplete, images are inlined as data URLs.
type ImageConfig struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	URLExpiry time.Duration
}

func (c ImageConfig) CanUseS3() bool {
	return strings.TrimSpace(c.Endpoint) != "" &&
		strings.TrimSpace(c.AccessKey) != "" &&
		strings.TrimSpace(c.SecretKey) != "" &&
		strings.TrimSpace(c.Bucket) != ""
}

type SessionConfig struct {
	MaxEntries int
	TTL        time.Duration
}

type EventsConfig struct {
	RedisAddr    string
	RedisChannel string
}

type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	Insecure    bool
	SampleRatio float64
}

// Load reads .env (if present), command line flags and the environment.
// Environment wins over flags for PORT, matching container deployments.
func Load(args []string) (*Config, error) {
	_ = godotenv.Load()

	fs := flag.NewFlagSet("gateway", flag.ContinueOnError)
	port := fs.String("port", ":8081", "server port")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if envPort := strings.TrimSpace(os.Getenv("PORT")); envPort != "" {
		if strings.HasPrefix(envPort, ":") {
			*port = envPort
		} else {
			*port = ":" + envPort
		}
	}

	appEnv := firstNonEmpty(env("APP_ENV"), "local")
	logMode := firstNonEmpty(env("LOG_MODE"), "development")
	if strings.EqualFold(appEnv, "production") && env("LOG_MODE") == "" {
		logMode = "production"
	}

	return &Config{
		Port:        *port,
		Env:         appEnv,
		LogMode:     logMode,
		CORSOrigins: splitList(env("CORS_ALLOWED_ORIGINS")),
		LLM:         loadLLMConfig(),
		Lead:        loadLeadConfig(),
		Image:       loadImageConfig(appEnv),
		Session: SessionConfig{
			MaxEntries: intEnv("SESSION_MAX_ENTRIES", 1024),
			TTL:        durationEnv("SESSION_TTL", 2*time.Hour),
		},
		Events: EventsConfig{
			RedisAddr:    env("EVENTS_REDIS_ADDR"),
			RedisChannel: firstNonEmpty(env("EVENTS_REDIS_CHANNEL"), "questio:sessions"),
		},
		Tracing: TracingConfig{
			Enabled:     boolEnv("OTEL_ENABLED", false),
			Endpoint:    env("OTEL_EXPORTER_OTLP_ENDPOINT"),
			Insecure:    boolEnv("OTEL_EXPORTER_OTLP_INSECURE", false),
			SampleRatio: floatEnv("OTEL_SAMPLE_RATIO", 1),
		},
	}, nil
}

func loadLLMConfig() LLMConfig {
	return LLMConfig{
		Provider:          strings.ToLower(firstNonEmpty(env("LLM_PROVIDER"), "gemini")),
		APIKey:            firstNonEmpty(env("GEMINI_API_KEY"), env("GOOGLE_API_KEY")),
		FastModel:         firstNonEmpty(env("GEMINI_FAST_MODEL"), "gemini-3-flash-preview"),
		DeepModel:         firstNonEmpty(env("GEMINI_DEEP_MODEL"), "gemini-3-pro-preview"),
		ImageModel:        firstNonEmpty(env("GEMINI_IMAGE_MODEL"), "gemini-2.5-flash-image"),
		RPS:               floatEnv("LLM_RPS", 2),
		Burst:             intEnv("LLM_BURST", 3),
		GenerationTimeout: durationEnv("LLM_GENERATION_TIMEOUT", 3*time.Minute),
	}
}

func loadLeadConfig() LeadConfig {
	return LeadConfig{
		Store:       strings.ToLower(firstNonEmpty(env("LEAD_STORE"), "memory")),
		SQLitePath:  firstNonEmpty(env("LEAD_SQLITE_PATH"), "tmp/leads.db"),
		PostgresDSN: env("LEAD_PG_DSN"),
	}
}

func loadImageConfig(appEnv string) ImageConfig {
	local := strings.EqualFold(appEnv, "local")
	endpoint := env("IMAGE_S3_ENDPOINT")
	if local {
		endpoint = firstNonEmpty(endpoint, env("IMAGE_MINIO_ENDPOINT"))
	}
	return ImageConfig{
		Endpoint:  endpoint,
		Region:    firstNonEmpty(env("IMAGE_S3_REGION"), "us-east-1"),
		AccessKey: firstNonEmpty(env("IMAGE_S3_ACCESS_KEY"), env("MINIO_ROOT_USER")),
		SecretKey: firstNonEmpty(env("IMAGE_S3_SECRET_KEY"), env("MINIO_ROOT_PASSWORD")),
		Bucket:    firstNonEmpty(env("IMAGE_S3_BUCKET"), "questio-personas"),
		UseSSL:    boolEnv("IMAGE_S3_USE_SSL", !local),
		URLExpiry: durationEnv("IMAGE_URL_EXPIRY", 24*time.Hour),
	}
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func intEnv(key string, def int) int {
	v, err := strconv.Atoi(env(key))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func floatEnv(key string, def float64) float64 {
	v, err := strconv.ParseFloat(env(key), 64)
	if err != nil || v < 0 {
		return def
	}
	return v
}

func boolEnv(key string, def bool) bool {
	raw := env(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return v
}

func durationEnv(key string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(env(key))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
