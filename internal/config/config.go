package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Server  ServerConfig
	MongoDB MongoDBConfig
	LLM     LLMConfig
	Export  ExportConfig
	MinIO   MinIOConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// LLMConfig selects and parameterizes the text-generation backend.
// Backend is one of "ollama", "azure", "openai" (placeholder).
type LLMConfig struct {
	Backend     string
	OllamaURL   string
	OllamaModel string
	Timeout     time.Duration
	Azure       AzureConfig
}

type AzureConfig struct {
	Endpoint   string
	APIVersion string
	Model      string
	APIKey     string
}

type ExportConfig struct {
	Dir string
}

// MinIOConfig enables report uploads to object storage when Endpoint is set.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// LoadConfig loads configuration from environment variables and .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "5000")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_ENVIRONMENT", "development")
	viper.SetDefault("MONGO_URI", "mongodb://localhost/datagenie")
	viper.SetDefault("MONGODB_DATABASE", "datagenie")
	viper.SetDefault("MONGODB_TIMEOUT", 10)
	viper.SetDefault("LLM_BACKEND", "ollama")
	viper.SetDefault("OLLAMA_URL", "http://localhost:11434/api/generate")
	viper.SetDefault("OLLAMA_MODEL", "mistral:7b-instruct")
	viper.SetDefault("LLM_TIMEOUT", 120)
	viper.SetDefault("EXPORT_DIR", ".")
	viper.SetDefault("MINIO_BUCKET", "datagenie-reports")

	cfg := &Config{
		Server: ServerConfig{
			Port:         viper.GetString("SERVER_PORT"),
			Host:         viper.GetString("SERVER_HOST"),
			Environment:  viper.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		MongoDB: MongoDBConfig{
			URI:      viper.GetString("MONGO_URI"),
			Database: viper.GetString("MONGODB_DATABASE"),
			Timeout:  time.Duration(viper.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		LLM: LLMConfig{
			Backend:     viper.GetString("LLM_BACKEND"),
			OllamaURL:   viper.GetString("OLLAMA_URL"),
			OllamaModel: viper.GetString("OLLAMA_MODEL"),
			Timeout:     time.Duration(viper.GetInt("LLM_TIMEOUT")) * time.Second,
			Azure: AzureConfig{
				Endpoint:   viper.GetString("AZURE_OPENAI_ENDPOINT"),
				APIVersion: viper.GetString("AZURE_OPENAI_VERSION"),
				Model:      viper.GetString("AZURE_OPENAI_MODEL"),
				APIKey:     os.Getenv("AZURE_OPENAI_API_KEY"),
			},
		},
		Export: ExportConfig{
			Dir: viper.GetString("EXPORT_DIR"),
		},
		MinIO: MinIOConfig{
			Endpoint:  viper.GetString("MINIO_ENDPOINT"),
			AccessKey: viper.GetString("MINIO_ACCESS_KEY"),
			SecretKey: os.Getenv("MINIO_SECRET_KEY"),
			Bucket:    viper.GetString("MINIO_BUCKET"),
			UseSSL:    viper.GetBool("MINIO_USE_SSL"),
		},
	}

	return cfg, nil
}
