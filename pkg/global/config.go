package global

import "time"

// Catalog source kinds accepted by CATALOG_SOURCE.
const (
	SourceSeed  = "seed"
	SourceFile  = "file"
	SourceHTTP  = "http"
	SourceMongo = "mongo"
)

// Config is the process configuration assembled from the environment.
type Config struct {
	Env         string
	Port        string
	CORSOrigins []string

	// Order handoff
	WhatsAppNumber string
	CurrencySymbol string
	ShopSignature  string

	// Catalog
	CatalogSource  string
	CatalogPath    string
	CatalogURL     string
	CatalogTimeout time.Duration
	CatalogCache   time.Duration

	MongoURI      string
	MongoDatabase string

	// Redis is optional; carts fall back to process memory without it.
	RedisAddress  string
	RedisPassword string
	CartTTL       time.Duration

	ImageBaseURL     string
	ImagePlaceholder string
	ImageConcurrency int

	OrderEventBrokers []string
	OrderEventTopic   string
}

// IsProduction reports whether ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// LoadConfig reads the configuration from environment variables.
func LoadConfig() *Config {
	return &Config{
		Env:  GetEnvOrDefault("ENV", "development"),
		Port: GetEnvOrDefault("PORT", "8000"),
		CORSOrigins: GetEnvList("CORS_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
			"http://localhost:8080",
		}),

		WhatsAppNumber: GetEnvOrDefault("WHATSAPP_NUMBER", "918870144490"),
		CurrencySymbol: GetEnvOrDefault("CURRENCY_SYMBOL", "₹"),
		ShopSignature:  GetEnvOrDefault("SHOP_SIGNATURE", "Sent via Sri Enippagam Web App"),

		CatalogSource:  GetEnvOrDefault("CATALOG_SOURCE", SourceSeed),
		CatalogPath:    GetEnvOrDefault("CATALOG_PATH", "catalog.yaml"),
		CatalogURL:     GetEnvOrDefault("CATALOG_URL", ""),
		CatalogTimeout: GetEnvDuration("CATALOG_TIMEOUT", 10*time.Second),
		CatalogCache:   GetEnvDuration("CATALOG_CACHE_TTL", 5*time.Minute),

		MongoURI:      GetEnvOrDefault("MONGODB_URI", ""),
		MongoDatabase: GetEnvOrDefault("MONGODB_DATABASE", "srienippagam"),

		RedisAddress:  GetEnvOrDefault("REDIS_ADDRESS", ""),
		RedisPassword: GetEnvOrDefault("REDIS_PASSWORD", ""),
		CartTTL:       GetEnvDuration("CART_TTL", 1*time.Hour),

		ImageBaseURL:     GetEnvOrDefault("IMAGE_BASE_URL", "/assets"),
		ImagePlaceholder: GetEnvOrDefault("IMAGE_PLACEHOLDER", "/placeholder.svg"),
		ImageConcurrency: GetEnvInt("IMAGE_CONCURRENCY", 8),

		OrderEventBrokers: GetEnvList("ORDER_EVENTS_BROKERS", nil),
		OrderEventTopic:   GetEnvOrDefault("ORDER_EVENTS_TOPIC", "storefront.orders"),
	}
}
