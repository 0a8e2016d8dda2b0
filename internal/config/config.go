package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration. Absence of any
// credential degrades that integration to its documented fallback; it
// never prevents the process from starting.
type Config struct {
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	RentCast  RentCastConfig  `yaml:"rentcast" mapstructure:"rentcast"`
	Lusha     LushaConfig     `yaml:"lusha" mapstructure:"lusha"`
	Google    GoogleConfig    `yaml:"google" mapstructure:"google"`
	CRM       CRMConfig       `yaml:"crm" mapstructure:"crm"`
}

// ServerConfig configures the intake HTTP server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// AnthropicConfig holds the address-normalization backend settings.
type AnthropicConfig struct {
	Key   string `yaml:"key" mapstructure:"key"`
	Model string `yaml:"model" mapstructure:"model"`
}

// RentCastConfig holds the residential enrichment backend settings.
type RentCastConfig struct {
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`
	Key      string `yaml:"key" mapstructure:"key"`
}

// LushaConfig holds the commercial enrichment backend settings.
type LushaConfig struct {
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`
	Key      string `yaml:"key" mapstructure:"key"`
}

// GoogleConfig holds the document backend settings. ServiceAccountJSON
// is the raw service-account credential JSON.
type GoogleConfig struct {
	ServiceAccountJSON string `yaml:"service_account_json" mapstructure:"service_account_json"`
	DocsFolderID       string `yaml:"docs_folder_id" mapstructure:"docs_folder_id"`
}

// CRMConfig holds the LeadConnector settings. LocationID is the tenant
// identifier included in every payload.
type CRMConfig struct {
	BaseURL    string `yaml:"base_url" mapstructure:"base_url"`
	Key        string `yaml:"key" mapstructure:"key"`
	LocationID string `yaml:"location_id" mapstructure:"location_id"`
	UserID     string `yaml:"user_id" mapstructure:"user_id"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("ESTIMATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("server.port", 3000)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("crm.base_url", "https://services.leadconnectorhq.com")
	v.SetDefault("crm.location_id", "nPLGDpS1HjcAtlJurRFr")
	v.SetDefault("google.docs_folder_id", "19BYVwi40CXifgx1ATrjil6t9DmsMw59A")

	// Credential keys default to empty so env-only values survive Unmarshal.
	v.SetDefault("anthropic.key", "")
	v.SetDefault("rentcast.endpoint", "")
	v.SetDefault("rentcast.key", "")
	v.SetDefault("lusha.endpoint", "")
	v.SetDefault("lusha.key", "")
	v.SetDefault("google.service_account_json", "")
	v.SetDefault("crm.key", "")
	v.SetDefault("crm.user_id", "")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
