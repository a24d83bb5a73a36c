package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Logging    LoggingConfig    `mapstructure:"logging"`
	Provider   string           `mapstructure:"provider"` // Selected provider: openrouter, ollama
	OpenRouter OpenRouterConfig `mapstructure:"openrouter"`
	Ollama     OllamaConfig     `mapstructure:"ollama"`
	Reveal     RevealConfig     `mapstructure:"reveal"`
	UI         UIConfig         `mapstructure:"ui"`
	User       UserConfig       `mapstructure:"user"`
	Export     ExportConfig     `mapstructure:"export"`
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	LogFile  string `mapstructure:"log_file"`
	Preserve bool   `mapstructure:"preserve"`
	Level    string `mapstructure:"level"`
}

// OpenRouterConfig holds OpenRouter-specific configuration
type OpenRouterConfig struct {
	APIKey     string        `mapstructure:"api_key"`
	Model      string        `mapstructure:"model"`
	BaseURL    string        `mapstructure:"base_url"`
	Timeout    time.Duration `mapstructure:"-"`
	TimeoutStr string        `mapstructure:"timeout"` // For parsing string duration
}

// OllamaConfig holds Ollama-specific configuration
type OllamaConfig struct {
	URL        string        `mapstructure:"url"`
	Model      string        `mapstructure:"model"`
	Timeout    time.Duration `mapstructure:"-"`
	TimeoutStr string        `mapstructure:"timeout"` // For parsing string duration
}

// RevealConfig holds the pacing of the staged code reveal. Presentation
// constants, kept configurable on purpose.
type RevealConfig struct {
	LineDelayStr    string        `mapstructure:"line_delay"`
	SectionPauseStr string        `mapstructure:"section_pause"`
	SettleDelayStr  string        `mapstructure:"settle_delay"`
	LineDelay       time.Duration `mapstructure:"-"`
	SectionPause    time.Duration `mapstructure:"-"`
	SettleDelay     time.Duration `mapstructure:"-"`
}

// UIConfig holds presentation-layer configuration
type UIConfig struct {
	SplashDelayStr string        `mapstructure:"splash_delay"`
	SplashDelay    time.Duration `mapstructure:"-"`
}

// UserConfig holds the persisted user profile
type UserConfig struct {
	Name string `mapstructure:"name"`
}

// ExportConfig holds bundle export configuration
type ExportConfig struct {
	Directory string `mapstructure:"directory"`
}

// Global config instance
var cfg *Config

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		panic("config not initialized")
	}
	return cfg
}

// Load loads configuration from file and environment
func Load(cfgFile string) (*Config, error) {
	setDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(SettingsDir())
		viper.SetConfigType("yaml")
		viper.SetConfigName("settings")
	}

	viper.AutomaticEnv()
	bindEnvironmentVariables()

	// Config file is optional; defaults and environment cover a fresh run.
	_ = viper.ReadInConfig()

	cfg = &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := processDurations(cfg); err != nil {
		return nil, fmt.Errorf("failed to process durations: %w", err)
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("provider", "openrouter")

	viper.SetDefault("openrouter.api_key", "")
	viper.SetDefault("openrouter.model", "google/gemini-2.0-flash-001")
	viper.SetDefault("openrouter.base_url", "https://openrouter.ai/api/v1")
	viper.SetDefault("openrouter.timeout", "120s")

	viper.SetDefault("ollama.url", "http://localhost:11434")
	viper.SetDefault("ollama.model", "qwen3:latest")
	viper.SetDefault("ollama.timeout", "90s")

	viper.SetDefault("reveal.line_delay", "30ms")
	viper.SetDefault("reveal.section_pause", "500ms")
	viper.SetDefault("reveal.settle_delay", "2s")

	viper.SetDefault("ui.splash_delay", "3s")

	viper.SetDefault("user.name", "")

	viper.SetDefault("export.directory", "./weft-site")

	viper.SetDefault("logging.log_file", "system.log")
	viper.SetDefault("logging.preserve", false)
	viper.SetDefault("logging.level", "info")
}

// bindEnvironmentVariables binds specific environment variables to Viper keys
func bindEnvironmentVariables() {
	viper.BindEnv("openrouter.api_key", "WEFT_OPENROUTER_API_KEY", "OPENROUTER_API_KEY")
	viper.BindEnv("openrouter.model", "WEFT_OPENROUTER_MODEL")
	viper.BindEnv("openrouter.base_url", "WEFT_OPENROUTER_BASE_URL")
	viper.BindEnv("ollama.url", "WEFT_OLLAMA_URL")
	viper.BindEnv("ollama.model", "WEFT_OLLAMA_MODEL")
	viper.BindEnv("provider", "WEFT_PROVIDER")
	viper.BindEnv("logging.level", "WEFT_LOG_LEVEL")
}

// processDurations converts string durations to time.Duration
func processDurations(cfg *Config) error {
	entries := []struct {
		name string
		str  string
		dst  *time.Duration
		def  time.Duration
	}{
		{"openrouter.timeout", cfg.OpenRouter.TimeoutStr, &cfg.OpenRouter.Timeout, 120 * time.Second},
		{"ollama.timeout", cfg.Ollama.TimeoutStr, &cfg.Ollama.Timeout, 90 * time.Second},
		{"reveal.line_delay", cfg.Reveal.LineDelayStr, &cfg.Reveal.LineDelay, 30 * time.Millisecond},
		{"reveal.section_pause", cfg.Reveal.SectionPauseStr, &cfg.Reveal.SectionPause, 500 * time.Millisecond},
		{"reveal.settle_delay", cfg.Reveal.SettleDelayStr, &cfg.Reveal.SettleDelay, 2 * time.Second},
		{"ui.splash_delay", cfg.UI.SplashDelayStr, &cfg.UI.SplashDelay, 3 * time.Second},
	}

	for _, e := range entries {
		if e.str == "" {
			*e.dst = e.def
			continue
		}
		d, err := time.ParseDuration(e.str)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", e.name, err)
		}
		*e.dst = d
	}

	return nil
}

// ActiveModel returns the model name for the currently active provider
func (c *Config) ActiveModel() string {
	switch c.Provider {
	case "ollama":
		return c.Ollama.Model
	default:
		return c.OpenRouter.Model
	}
}

// GetConfigFileUsed returns the path to the config file being used
func GetConfigFileUsed() string {
	return viper.ConfigFileUsed()
}
