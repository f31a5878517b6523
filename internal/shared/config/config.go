package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	LogLevel        string
	LogFormat       string
	CORSAllowOrigin []string
	DatabaseURL     string
	RedisAddr       string
	RedisPassword   string
	VocabCacheTTL   time.Duration
	LLMProvider     string
	LLMModel        string
	LLMBaseURL      string
	LLMAPIKey       string
	LLMTimeout      time.Duration
	Engine          EngineConfig
}

// EngineConfig carries the retrieval engine knobs. It is threaded explicitly
// through the engine entry point so scoring and timeout behavior stay
// reproducible in tests.
type EngineConfig struct {
	DefaultLimit  int
	MaxCandidates int
	RerankTopM    int
	EmptyRetry    bool
	Weights       ScoreWeights
}

// ScoreWeights are the baseline scorer weights. They must sum to 1.0.
type ScoreWeights struct {
	Rating     float64
	Popularity float64
	PriceFit   float64
	Cuisine    float64
	// PriceScale is the reference scale for the price-fit term, in currency
	// units. PopularityRef is the popularity value mapped to 1.0.
	PriceScale    float64
	PopularityRef float64
}

// DefaultWeights returns the documented baseline scorer constants.
func DefaultWeights() ScoreWeights {
	return ScoreWeights{
		Rating:        0.40,
		Popularity:    0.25,
		PriceFit:      0.20,
		Cuisine:       0.15,
		PriceScale:    2000,
		PopularityRef: 20,
	}
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	_ = godotenv.Load(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}

	return Config{
		Port:            getEnv("PORT", "8080"),
		Env:             env,
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", defaultLogFormat(env)),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		DatabaseURL:     dbURL,
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		VocabCacheTTL:   getEnvDuration("VOCAB_CACHE_TTL", 10*time.Minute),
		LLMProvider:     getEnv("LLM_PROVIDER", "groq"),
		LLMModel:        getEnv("LLM_MODEL", "llama-3.3-70b-versatile"),
		LLMBaseURL:      getEnv("LLM_BASE_URL", "https://api.groq.com/openai/v1"),
		LLMAPIKey:       getEnv("GROQ_API_KEY", ""),
		LLMTimeout:      getEnvDuration("LLM_TIMEOUT", 5*time.Second),
		Engine: EngineConfig{
			DefaultLimit:  getEnvInt("DEFAULT_RESULT_LIMIT", 10),
			MaxCandidates: getEnvInt("MAX_CANDIDATES", 50),
			RerankTopM:    getEnvInt("RERANK_TOP_M", 10),
			EmptyRetry:    getEnvBool("EMPTY_RETRY", true),
			Weights:       weightsFromEnv(),
		},
	}
}

func weightsFromEnv() ScoreWeights {
	w := DefaultWeights()
	w.Rating = getEnvFloat("SCORE_W_RATING", w.Rating)
	w.Popularity = getEnvFloat("SCORE_W_POPULARITY", w.Popularity)
	w.PriceFit = getEnvFloat("SCORE_W_PRICE_FIT", w.PriceFit)
	w.Cuisine = getEnvFloat("SCORE_W_CUISINE", w.Cuisine)
	w.PriceScale = getEnvFloat("SCORE_PRICE_SCALE", w.PriceScale)
	w.PopularityRef = getEnvFloat("SCORE_POPULARITY_REF", w.PopularityRef)
	return w
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("config %s invalid int: %v", key, err)
		return def
	}
	return val
}

func getEnvFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("config %s invalid float: %v", key, err)
		return def
	}
	return val
}

func getEnvBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("config %s invalid bool: %v", key, err)
		return def
	}
	return val
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("config %s invalid duration: %v", key, err)
		return def
	}
	return val
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

func defaultLogFormat(env string) string {
	switch env {
	case "production", "staging":
		return "json"
	default:
		return "console"
	}
}
