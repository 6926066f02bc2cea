// internal/config/config.go
package config

import (
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Data       DataConfig
	Analytics  AnalyticsConfig
	Classifier ClassifierConfig
	LLM        LLMConfig
	Storage    StorageConfig
	Cache      CacheConfig
	Export     ExportConfig
	LogLevel   string
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

// DataConfig describes where the four source tables live.
type DataConfig struct {
	Dir                  string
	Source               string // local, s3 or drive
	Prefix               string // object prefix when Source is s3
	DriveFolderID        string
	DriveCredentialsJSON string
}

type AnalyticsConfig struct {
	ForecastHorizon  int
	ForecastWindow   int
	SentimentWorkers int
	ReviewMaxChars   int
}

type ClassifierConfig struct {
	BaseURL           string
	Model             string
	APIToken          string
	TimeoutSeconds    int
	RequestsPerSecond float64
}

type LLMConfig struct {
	Provider          string // groq or gemini
	BaseURL           string
	APIKey            string
	Model             string
	Temperature       float64
	MaxTokens         int
	TimeoutSeconds    int
	RequestsPerMinute int
}

// StorageConfig encapsulates the connection info for S3-compatible storage.
type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
}

type CacheConfig struct {
	Enabled            bool
	RedisURL           string
	RedisHost          string
	RedisPort          string
	RedisPassword      string
	RedisDB            int
	ChatLimitPerMinute int
}

type ExportConfig struct {
	Dir    string
	Upload bool
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		setDefaults()

		// Read from environment variables
		viper.AutomaticEnv()

		ensureDir(viper.GetString("EXPORT_DIR"))

		instance = build()
	})

	return instance
}

func setDefaults() {
	viper.SetDefault("SERVER_PORT", "8000")
	viper.SetDefault("SERVER_MODE", "debug")
	viper.SetDefault("SERVER_READ_TIMEOUT", 30)
	viper.SetDefault("SERVER_WRITE_TIMEOUT", 120)
	viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
	viper.SetDefault("LOG_LEVEL", "info")

	viper.SetDefault("DATA_DIR", "./data")
	viper.SetDefault("DATA_SOURCE", "local")
	viper.SetDefault("DATA_PREFIX", "datasets/")
	viper.SetDefault("GOOGLE_DRIVE_FOLDER_ID", "")
	viper.SetDefault("GOOGLE_DRIVE_CREDENTIALS_JSON", "")

	viper.SetDefault("ANALYTICS_FORECAST_HORIZON", 7)
	viper.SetDefault("ANALYTICS_FORECAST_WINDOW", 7)
	viper.SetDefault("ANALYTICS_SENTIMENT_WORKERS", 4)
	viper.SetDefault("ANALYTICS_REVIEW_MAX_CHARS", 512)

	viper.SetDefault("CLASSIFIER_BASE_URL", "https://api-inference.huggingface.co")
	viper.SetDefault("CLASSIFIER_MODEL", "distilbert-base-uncased-finetuned-sst-2-english")
	viper.SetDefault("HF_API_TOKEN", "")
	viper.SetDefault("CLASSIFIER_TIMEOUT_SECONDS", 20)
	viper.SetDefault("CLASSIFIER_REQUESTS_PER_SECOND", 10)

	viper.SetDefault("LLM_PROVIDER", "groq")
	viper.SetDefault("LLM_BASE_URL", "https://api.groq.com/openai/v1")
	viper.SetDefault("GROQ_API_KEY", "")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("LLM_MODEL", "")
	viper.SetDefault("LLM_TEMPERATURE", 0.7)
	viper.SetDefault("LLM_MAX_TOKENS", 500)
	viper.SetDefault("LLM_TIMEOUT_SECONDS", 60)
	viper.SetDefault("LLM_REQUESTS_PER_MINUTE", 30)

	viper.SetDefault("STORAGE_ENDPOINT", "")
	viper.SetDefault("STORAGE_ACCESS_KEY", "")
	viper.SetDefault("STORAGE_SECRET_KEY", "")
	viper.SetDefault("STORAGE_BUCKET", "")
	viper.SetDefault("STORAGE_REGION", "us-east-1")
	viper.SetDefault("STORAGE_USE_SSL", true)

	viper.SetDefault("CACHE_ENABLED", false)
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("REDIS_HOST", "127.0.0.1")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("CHAT_LIMIT_PER_MINUTE", 20)

	viper.SetDefault("EXPORT_DIR", "./data/exports")
	viper.SetDefault("EXPORT_UPLOAD", false)
}

func build() *Config {
	provider := viper.GetString("LLM_PROVIDER")
	apiKey := viper.GetString("GROQ_API_KEY")
	model := viper.GetString("LLM_MODEL")
	if provider == "gemini" {
		apiKey = viper.GetString("GEMINI_API_KEY")
		if model == "" {
			model = "gemini-2.0-flash"
		}
	} else if model == "" {
		model = "llama-3.3-70b-versatile"
	}

	return &Config{
		Server: ServerConfig{
			Port:           viper.GetString("SERVER_PORT"),
			Mode:           viper.GetString("SERVER_MODE"),
			ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
			WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
			AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
		},
		Data: DataConfig{
			Dir:                  viper.GetString("DATA_DIR"),
			Source:               viper.GetString("DATA_SOURCE"),
			Prefix:               viper.GetString("DATA_PREFIX"),
			DriveFolderID:        viper.GetString("GOOGLE_DRIVE_FOLDER_ID"),
			DriveCredentialsJSON: viper.GetString("GOOGLE_DRIVE_CREDENTIALS_JSON"),
		},
		Analytics: AnalyticsConfig{
			ForecastHorizon:  viper.GetInt("ANALYTICS_FORECAST_HORIZON"),
			ForecastWindow:   viper.GetInt("ANALYTICS_FORECAST_WINDOW"),
			SentimentWorkers: viper.GetInt("ANALYTICS_SENTIMENT_WORKERS"),
			ReviewMaxChars:   viper.GetInt("ANALYTICS_REVIEW_MAX_CHARS"),
		},
		Classifier: ClassifierConfig{
			BaseURL:           viper.GetString("CLASSIFIER_BASE_URL"),
			Model:             viper.GetString("CLASSIFIER_MODEL"),
			APIToken:          viper.GetString("HF_API_TOKEN"),
			TimeoutSeconds:    viper.GetInt("CLASSIFIER_TIMEOUT_SECONDS"),
			RequestsPerSecond: viper.GetFloat64("CLASSIFIER_REQUESTS_PER_SECOND"),
		},
		LLM: LLMConfig{
			Provider:          provider,
			BaseURL:           viper.GetString("LLM_BASE_URL"),
			APIKey:            apiKey,
			Model:             model,
			Temperature:       viper.GetFloat64("LLM_TEMPERATURE"),
			MaxTokens:         viper.GetInt("LLM_MAX_TOKENS"),
			TimeoutSeconds:    viper.GetInt("LLM_TIMEOUT_SECONDS"),
			RequestsPerMinute: viper.GetInt("LLM_REQUESTS_PER_MINUTE"),
		},
		Storage: StorageConfig{
			Endpoint:  viper.GetString("STORAGE_ENDPOINT"),
			AccessKey: viper.GetString("STORAGE_ACCESS_KEY"),
			SecretKey: viper.GetString("STORAGE_SECRET_KEY"),
			Bucket:    viper.GetString("STORAGE_BUCKET"),
			Region:    viper.GetString("STORAGE_REGION"),
			UseSSL:    viper.GetBool("STORAGE_USE_SSL"),
		},
		Cache: CacheConfig{
			Enabled:            viper.GetBool("CACHE_ENABLED"),
			RedisURL:           viper.GetString("REDIS_URL"),
			RedisHost:          viper.GetString("REDIS_HOST"),
			RedisPort:          viper.GetString("REDIS_PORT"),
			RedisPassword:      viper.GetString("REDIS_PASSWORD"),
			RedisDB:            viper.GetInt("REDIS_DB"),
			ChatLimitPerMinute: viper.GetInt("CHAT_LIMIT_PER_MINUTE"),
		},
		Export: ExportConfig{
			Dir:    viper.GetString("EXPORT_DIR"),
			Upload: viper.GetBool("EXPORT_UPLOAD"),
		},
		LogLevel: viper.GetString("LOG_LEVEL"),
	}
}

func ensureDir(dir string) {
	if dir == "" {
		return
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create directory %s: %v", dir, err)
		}
	}
}
