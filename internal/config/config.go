package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	LLM    LLMConfig    `mapstructure:"llm"`
	Search SearchConfig `mapstructure:"search"`
	Stream StreamConfig `mapstructure:"stream"`
	Store  StoreConfig  `mapstructure:"store"`
	CORS   CORSConfig   `mapstructure:"cors"`
	Log    LogConfig    `mapstructure:"log"`
}

type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	MaxHeaderBytes int           `mapstructure:"max_header_bytes"`
}

type LLMConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url"`
	Model       string        `mapstructure:"model"`
	ProjectID   string        `mapstructure:"project_id"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Temperature float32       `mapstructure:"temperature"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

type SearchConfig struct {
	Endpoint  string        `mapstructure:"endpoint"`
	UserAgent string        `mapstructure:"user_agent"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// StreamConfig controls the simulated typing pace. The lead-in delay runs
// before the first fragment of each phase; thinking streams faster than the
// response.
type StreamConfig struct {
	PhaseLeadIn   time.Duration `mapstructure:"phase_lead_in"`
	ThinkingDelay time.Duration `mapstructure:"thinking_delay"`
	ThinkingPause time.Duration `mapstructure:"thinking_pause"`
	ResponseDelay time.Duration `mapstructure:"response_delay"`
}

type StoreConfig struct {
	MongoURL string `mapstructure:"mongo_url"`
	Database string `mapstructure:"database"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	v.AutomaticEnv()
	v.SetEnvPrefix("WELLNESS")

	setDefaults(v)

	// A missing config file is fine; the service can run on defaults plus
	// environment variables alone.
	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(configPath); !os.IsNotExist(statErr) {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	// Config file first, environment second for secrets and deployment knobs.
	if cfg.LLM.APIKey == "" {
		if apiKey := os.Getenv("WATSONX_API_KEY"); apiKey != "" {
			cfg.LLM.APIKey = apiKey
		}
	}
	if cfg.LLM.BaseURL == "" {
		if url := os.Getenv("WATSONX_SERVICE_URL"); url != "" {
			cfg.LLM.BaseURL = url
		}
	}
	if cfg.LLM.ProjectID == "" {
		if projectID := os.Getenv("PROJECT_ID"); projectID != "" {
			cfg.LLM.ProjectID = projectID
		}
	}
	if cfg.Store.MongoURL == "" {
		if mongoURL := os.Getenv("MONGO_URL"); mongoURL != "" {
			cfg.Store.MongoURL = mongoURL
		}
	}
	if dbName := os.Getenv("DB_NAME"); dbName != "" && !v.InConfig("store.database") {
		cfg.Store.Database = dbName
	}
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		cfg.CORS.AllowedOrigins = strings.Split(origins, ",")
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "5m")
	v.SetDefault("server.max_header_bytes", 1<<20)

	v.SetDefault("llm.model", "openai/gpt-oss-120b")
	v.SetDefault("llm.max_tokens", 700)
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.timeout", "120s")

	v.SetDefault("search.endpoint", "https://html.duckduckgo.com/html/")
	v.SetDefault("search.user_agent", "Mozilla/5.0")
	v.SetDefault("search.timeout", "15s")

	v.SetDefault("stream.phase_lead_in", "100ms")
	v.SetDefault("stream.thinking_delay", "30ms")
	v.SetDefault("stream.thinking_pause", "200ms")
	v.SetDefault("stream.response_delay", "50ms")

	v.SetDefault("store.database", "test")

	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"*"})
	v.SetDefault("cors.allow_credentials", true)
	v.SetDefault("cors.max_age", 300)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}
