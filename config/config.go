package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every environment driven setting of the API server.
type Config struct {
	AppHost     string
	AppPort     string
	AppEnv      string
	FrontendURL string
	SiteBaseURL string

	DBHost     string
	DBPort     string
	DBDatabase string
	DBUsername string
	DBPassword string
	DBSSLMode  string

	// Access tokens issued by the identity provider. HS256 tokens are checked
	// against JWTSecret; RS256 tokens against the key served at PublicKeyURL.
	JWTSecret    string
	PublicKeyURL string

	AIProvider    string
	GeminiAPIKey  string
	GeminiModel   string
	OpenAIBaseURL string
	OpenAIAPIKey  string
	OpenAIModel   string
	AITimeout     time.Duration

	UnsplashAccessKey string
	ImageTimeout      time.Duration

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
	MediaBaseURL   string
	MaxUploadBytes int64

	RedisAddr             string
	RedisPassword         string
	InquiryLimitPerMinute int
}

// Load reads the .env file (when present) and the process environment.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppHost:     getEnv("APP_HOST", "0.0.0.0"),
		AppPort:     getEnv("APP_PORT", "8080"),
		AppEnv:      getEnv("APP_ENV", "development"),
		FrontendURL: getEnv("FRONTEND_URL", "*"),
		SiteBaseURL: strings.TrimRight(getEnv("SITE_BASE_URL", "https://sovatourandtravels.lovable.app"), "/"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBDatabase: getEnv("DB_DATABASE", "travel_agency"),
		DBUsername: getEnv("DB_USERNAME", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret:    os.Getenv("JWT_SECRET"),
		PublicKeyURL: os.Getenv("PUBLIC_KEY_URL"),

		AIProvider:    strings.ToLower(getEnv("AI_PROVIDER", "gemini")),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		AITimeout:     time.Duration(getEnvInt("AI_TIMEOUT_SECONDS", 60)) * time.Second,

		UnsplashAccessKey: os.Getenv("UNSPLASH_ACCESS_KEY"),
		ImageTimeout:      time.Duration(getEnvInt("IMAGE_SEARCH_TIMEOUT_SECONDS", 10)) * time.Second,

		MinioEndpoint:  os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey: os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:    getEnv("MINIO_BUCKET", "tour-images"),
		MinioUseSSL:    getEnvBool("MINIO_USE_SSL", false),
		MediaBaseURL:   strings.TrimRight(os.Getenv("MEDIA_BASE_URL"), "/"),
		MaxUploadBytes: int64(getEnvInt("MAX_UPLOAD_BYTES", 10*1024*1024)),

		RedisAddr:             os.Getenv("REDIS_ADDR"),
		RedisPassword:         os.Getenv("REDIS_PASSWORD"),
		InquiryLimitPerMinute: getEnvInt("INQUIRY_RATE_LIMIT_PER_MINUTE", 5),
	}
}

// IsProduction reports whether APP_ENV is production.
func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Address is the host:port the server listens on.
func (c Config) Address() string {
	return c.AppHost + ":" + c.AppPort
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
