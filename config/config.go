package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment Configuration
	Environment EnvironmentConfig

	// Server Configuration
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// PostgreSQL - reports, entitlements, sessions, quota
	Postgres PostgresConfig

	// Redis - rate limiting, cache assists
	Redis RedisConfig

	// MinIO - artifact storage
	MinIO MinIOConfig

	// Kafka - analysis task queue + report events
	Kafka KafkaConfig

	// JWT - authentication
	JWT       JWTConfig
	Encrypter EncrypterConfig

	// Mobile platform OAuth (code to session exchange)
	AuthPlatform AuthPlatformConfig

	// LLM agent - primary and streaming fallback
	LLM LLMConfig

	// OCR service
	OCR OCRConfig

	// Company enrichment providers
	Enrichment EnrichmentConfig

	// Business limits
	Limits LimitsConfig

	// Per-endpoint rate limits
	RateLimit RateLimitConfig
}

// EnvironmentConfig is the configuration for the deployment environment.
type EnvironmentConfig struct {
	Name string
}

// HTTPServerConfig is the configuration for the HTTP server.
type HTTPServerConfig struct {
	Host string
	Port int
	Mode string
}

// LoggerConfig is the configuration for the logger.
type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// PostgresConfig is the configuration for Postgres.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	Schema   string
}

// RedisConfig is the configuration for Redis.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// MinIOConfig is the configuration for MinIO.
type MinIOConfig struct {
	Endpoint     string
	AccessKey    string
	SecretKey    string
	UseSSL       bool
	Region       string
	BucketDocs   string
	BucketPhotos string
}

// KafkaConfig is the configuration for Kafka.
type KafkaConfig struct {
	Brokers         []string
	AnalysisTopic   string
	EventsTopic     string
	ConsumerGroupID string
}

// JWTConfig is used to sign and verify access tokens.
type JWTConfig struct {
	Issuer   string
	Audience []string
	Secret   string
	TTL      int // in seconds
}

// EncrypterConfig is the configuration for the secret encrypter.
type EncrypterConfig struct {
	Key string
}

// AuthPlatformConfig configures the mobile platform OAuth exchange.
type AuthPlatformConfig struct {
	AppID   string
	Secret  string
	BaseURL string
}

// LLMConfig configures the external agent. The request-response provider
// is primary; the streaming provider is the explicit fallback.
type LLMConfig struct {
	APIToken    string
	BotID       string
	SiteURL     string
	FallbackKey string
	FallbackURL string
}

// OCRConfig configures the OCR provider.
type OCRConfig struct {
	Endpoint string
	// QPS caps outbound calls to the provider.
	QPS float64
	// MaxImageHeight is the pixel-height threshold above which images
	// are sliced into vertical segments.
	MaxImageHeight int
}

// EnrichmentConfig configures the registry and litigation data providers.
type EnrichmentConfig struct {
	RegistryToken   string
	RegistryURL     string
	LitigationToken string
	LitigationURL   string
	TimeoutSeconds  int
}

// LimitsConfig holds the business limits recognized from the environment.
type LimitsConfig struct {
	MaxUploadBytes       int64
	MaxPhotoUploadBytes  int64
	FreeQuotaPerMonth    int
	CompanyCacheDays     int
	InvitationExpiryDays int
	RecycleRetentionDays int
}

// RateLimitConfig holds per-endpoint request ceilings (per minute).
type RateLimitConfig struct {
	PerUser     int
	CompanyScan int
	Upload      int
}

// Load loads configuration using Viper: YAML file plus environment override.
func Load() (*Config, error) {
	viper.SetConfigName("renov-config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/renov/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; environment variables only.
	}

	cfg := &Config{}

	// Environment & server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Host = viper.GetString("http_server.host")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Postgres
	cfg.Postgres.Host = viper.GetString("postgres.host")
	cfg.Postgres.Port = viper.GetInt("postgres.port")
	cfg.Postgres.User = viper.GetString("postgres.user")
	cfg.Postgres.Password = viper.GetString("postgres.password")
	cfg.Postgres.DBName = viper.GetString("postgres.dbname")
	cfg.Postgres.SSLMode = viper.GetString("postgres.sslmode")
	cfg.Postgres.Schema = viper.GetString("postgres.schema")

	// Redis
	cfg.Redis.Host = viper.GetString("redis.host")
	cfg.Redis.Port = viper.GetInt("redis.port")
	cfg.Redis.Password = viper.GetString("redis.password")
	cfg.Redis.DB = viper.GetInt("redis.db")

	// MinIO
	cfg.MinIO.Endpoint = viper.GetString("object_store.endpoint")
	cfg.MinIO.AccessKey = viper.GetString("object_store.key_id")
	cfg.MinIO.SecretKey = viper.GetString("object_store.key_secret")
	cfg.MinIO.UseSSL = viper.GetBool("object_store.use_ssl")
	cfg.MinIO.Region = viper.GetString("object_store.region")
	cfg.MinIO.BucketDocs = viper.GetString("object_store.bucket_docs")
	cfg.MinIO.BucketPhotos = viper.GetString("object_store.bucket_photos")

	// Kafka
	cfg.Kafka.Brokers = viper.GetStringSlice("kafka.brokers")
	cfg.Kafka.AnalysisTopic = viper.GetString("kafka.analysis_topic")
	cfg.Kafka.EventsTopic = viper.GetString("kafka.events_topic")
	cfg.Kafka.ConsumerGroupID = viper.GetString("kafka.consumer_group_id")

	// JWT & encrypter
	cfg.JWT.Issuer = viper.GetString("jwt.issuer")
	cfg.JWT.Audience = viper.GetStringSlice("jwt.audience")
	cfg.JWT.Secret = viper.GetString("jwt.secret")
	cfg.JWT.TTL = viper.GetInt("jwt.ttl")
	cfg.Encrypter.Key = viper.GetString("encrypter.key")

	// Platform OAuth
	cfg.AuthPlatform.AppID = viper.GetString("auth_platform.app_id")
	cfg.AuthPlatform.Secret = viper.GetString("auth_platform.secret")
	cfg.AuthPlatform.BaseURL = viper.GetString("auth_platform.base_url")

	// LLM
	cfg.LLM.APIToken = viper.GetString("llm.api_token")
	cfg.LLM.BotID = viper.GetString("llm.bot_id")
	cfg.LLM.SiteURL = viper.GetString("llm.site_url")
	cfg.LLM.FallbackKey = viper.GetString("llm.fallback_key")
	cfg.LLM.FallbackURL = viper.GetString("llm.fallback_url")

	// OCR
	cfg.OCR.Endpoint = viper.GetString("ocr.endpoint")
	cfg.OCR.QPS = viper.GetFloat64("ocr.qps")
	cfg.OCR.MaxImageHeight = viper.GetInt("ocr.max_image_height")

	// Enrichment
	cfg.Enrichment.RegistryToken = viper.GetString("enrichment.token_a")
	cfg.Enrichment.RegistryURL = viper.GetString("enrichment.registry_url")
	cfg.Enrichment.LitigationToken = viper.GetString("enrichment.token_b")
	cfg.Enrichment.LitigationURL = viper.GetString("enrichment.litigation_url")
	cfg.Enrichment.TimeoutSeconds = viper.GetInt("enrichment.timeout")

	// Limits
	cfg.Limits.MaxUploadBytes = viper.GetInt64("limits.max_upload_bytes")
	cfg.Limits.MaxPhotoUploadBytes = viper.GetInt64("limits.max_photo_upload_bytes")
	cfg.Limits.FreeQuotaPerMonth = viper.GetInt("limits.free_quota_per_month")
	cfg.Limits.CompanyCacheDays = viper.GetInt("limits.company_cache_days")
	cfg.Limits.InvitationExpiryDays = viper.GetInt("limits.invitation_expiry_days")
	cfg.Limits.RecycleRetentionDays = viper.GetInt("limits.recycle_retention_days")

	// Rate limits
	cfg.RateLimit.PerUser = viper.GetInt("rate_limit.per_user")
	cfg.RateLimit.CompanyScan = viper.GetInt("rate_limit.company_scan")
	cfg.RateLimit.Upload = viper.GetInt("rate_limit.upload")

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Environment.Name == "production" {
		if c.Postgres.Host == "" {
			return fmt.Errorf("postgres.host is required in production")
		}
		if c.JWT.Secret == "" {
			return fmt.Errorf("jwt.secret is required in production")
		}
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.host", "")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "release")
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.mode", "production")
	viper.SetDefault("logger.encoding", "json")
	viper.SetDefault("logger.color_enabled", false)

	viper.SetDefault("postgres.port", 5432)
	viper.SetDefault("postgres.sslmode", "disable")
	viper.SetDefault("postgres.schema", "renov")

	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.db", 0)

	viper.SetDefault("object_store.region", "us-east-1")
	viper.SetDefault("object_store.bucket_docs", "renov-docs")
	viper.SetDefault("object_store.bucket_photos", "renov-photos")

	viper.SetDefault("kafka.analysis_topic", "renov.analysis.tasks")
	viper.SetDefault("kafka.events_topic", "renov.report.events")
	viper.SetDefault("kafka.consumer_group_id", "renov-worker-analysis")

	viper.SetDefault("auth_platform.base_url", "https://api.weixin.qq.com")

	viper.SetDefault("jwt.issuer", "renov-srv")
	viper.SetDefault("jwt.ttl", 7*24*3600)

	viper.SetDefault("ocr.qps", 5.0)
	viper.SetDefault("ocr.max_image_height", 4000)
	viper.SetDefault("enrichment.timeout", 10)

	viper.SetDefault("limits.max_upload_bytes", int64(10<<20))
	viper.SetDefault("limits.max_photo_upload_bytes", int64(20<<20))
	viper.SetDefault("limits.free_quota_per_month", 3)
	viper.SetDefault("limits.company_cache_days", 30)
	viper.SetDefault("limits.invitation_expiry_days", 30)
	viper.SetDefault("limits.recycle_retention_days", 7)

	viper.SetDefault("rate_limit.per_user", 200)
	viper.SetDefault("rate_limit.company_scan", 10)
	viper.SetDefault("rate_limit.upload", 5)
}
