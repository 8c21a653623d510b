// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter      string `mapstructure:"delimiter" yaml:"delimiter"`
		IncludeHeaders bool   `mapstructure:"include_headers" yaml:"include_headers"`
		WriteBOM       bool   `mapstructure:"write_bom" yaml:"write_bom"`
	} `mapstructure:"csv" yaml:"csv"`

	Parser struct {
		MaxHeaderRows       int     `mapstructure:"max_header_rows" yaml:"max_header_rows"`
		ConfidenceThreshold float64 `mapstructure:"confidence_threshold" yaml:"confidence_threshold"`
		FallbackEncoding    string  `mapstructure:"fallback_encoding" yaml:"fallback_encoding"`
	} `mapstructure:"parser" yaml:"parser"`

	Mapping struct {
		StorePath string `mapstructure:"store_path" yaml:"store_path"`
		AutoLearn bool   `mapstructure:"auto_learn" yaml:"auto_learn"`
	} `mapstructure:"mapping" yaml:"mapping"`

	Manufacturers []string `mapstructure:"manufacturers" yaml:"manufacturers"`

	Web struct {
		Host        string `mapstructure:"host" yaml:"host"`
		Port        int    `mapstructure:"port" yaml:"port"`
		MaxUploadMB int    `mapstructure:"max_upload_mb" yaml:"max_upload_mb"`
		UploadDir   string `mapstructure:"upload_dir" yaml:"upload_dir"`
	} `mapstructure:"web" yaml:"web"`

	AI struct {
		Enabled        bool   `mapstructure:"enabled" yaml:"enabled"`
		Model          string `mapstructure:"model" yaml:"model"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		APIKey         string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
	} `mapstructure:"ai" yaml:"ai"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.catalog-csv")
	v.AddConfigPath(".catalog-csv")
	v.AddConfigPath(".")

	// 3. Environment variables
	v.SetEnvPrefix("CATALOG")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Log the error but don't fail - continue with defaults and env vars
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// 5. The AI key always comes from the unprefixed env variable
	if err := v.BindEnv("ai.api_key", "GEMINI_API_KEY"); err != nil {
		fmt.Printf("Warning: failed to bind GEMINI_API_KEY environment variable: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// CSV output defaults
	v.SetDefault("csv.delimiter", ",")
	v.SetDefault("csv.include_headers", true)
	v.SetDefault("csv.write_bom", true)

	// Parser defaults
	v.SetDefault("parser.max_header_rows", 10)
	v.SetDefault("parser.confidence_threshold", 0.7)
	v.SetDefault("parser.fallback_encoding", "latin-1")

	// Header mapping store defaults
	v.SetDefault("mapping.store_path", "")
	v.SetDefault("mapping.auto_learn", true)

	// Extra manufacturer names beyond the built-in list
	v.SetDefault("manufacturers", []string{})

	// Web server defaults
	v.SetDefault("web.host", "0.0.0.0")
	v.SetDefault("web.port", 8080)
	v.SetDefault("web.max_upload_mb", 100)
	v.SetDefault("web.upload_dir", "")

	// AI defaults
	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.timeout_seconds", 30)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	// Validate log level
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	// Validate log format
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	// Validate CSV delimiter
	if len(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	// Validate parser settings
	if config.Parser.MaxHeaderRows < 1 {
		return fmt.Errorf("parser.max_header_rows must be at least 1, got: %d", config.Parser.MaxHeaderRows)
	}
	if config.Parser.ConfidenceThreshold < 0.0 || config.Parser.ConfidenceThreshold > 1.0 {
		return fmt.Errorf("parser.confidence_threshold must be between 0.0 and 1.0, got: %f", config.Parser.ConfidenceThreshold)
	}

	// Validate web settings
	if config.Web.Port < 1 || config.Web.Port > 65535 {
		return fmt.Errorf("web.port must be a valid port number, got: %d", config.Web.Port)
	}
	if config.Web.MaxUploadMB < 1 {
		return fmt.Errorf("web.max_upload_mb must be at least 1, got: %d", config.Web.MaxUploadMB)
	}

	// Validate AI configuration
	if config.AI.Enabled {
		if config.AI.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY required when AI is enabled")
		}
		if config.AI.TimeoutSeconds < 1 || config.AI.TimeoutSeconds > 300 {
			return fmt.Errorf("ai.timeout_seconds must be between 1 and 300, got: %d", config.AI.TimeoutSeconds)
		}
	}

	return nil
}

// ConfigureLoggingFromConfig configures logging based on the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
