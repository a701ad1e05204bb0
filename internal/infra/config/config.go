package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	YouTube YouTubeConfig `yaml:"youtube"`
	Groq    GroqConfig    `yaml:"groq"`
	Summary SummaryConfig `yaml:"summary"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string        `yaml:"address"`
	ReadTimeout    time.Duration `yaml:"readTimeout"`
	WriteTimeout   time.Duration `yaml:"writeTimeout"`
	AllowedOrigins []string      `yaml:"allowedOrigins"`
}

// YouTubeConfig points the infra clients at the YouTube endpoints. The base
// URLs are overridable so tests can stand in fake servers.
type YouTubeConfig struct {
	OEmbedBaseURL    string        `yaml:"oembedBaseUrl"`
	InnertubeBaseURL string        `yaml:"innertubeBaseUrl"`
	MetadataTimeout  time.Duration `yaml:"metadataTimeout"`
	CaptionTimeout   time.Duration `yaml:"captionTimeout"`
	Languages        []string      `yaml:"languages"`
}

// GroqConfig contains settings for the Groq chat completion API.
type GroqConfig struct {
	APIKey      string        `yaml:"apiKey"`
	BaseURL     string        `yaml:"baseUrl"`
	Model       string        `yaml:"model"`
	Temperature float32       `yaml:"temperature"`
	MaxTokens   int           `yaml:"maxTokens"`
	Timeout     time.Duration `yaml:"timeout"`
}

// SummaryConfig defines the input limits for the summary domain.
type SummaryConfig struct {
	MaxTranscriptChars int `yaml:"maxTranscriptChars"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitAndTrim(v)
	}
	if v := os.Getenv("YOUTUBE_OEMBED_BASE_URL"); v != "" {
		cfg.YouTube.OEmbedBaseURL = v
	}
	if v := os.Getenv("YOUTUBE_INNERTUBE_BASE_URL"); v != "" {
		cfg.YouTube.InnertubeBaseURL = v
	}
	if v := os.Getenv("YOUTUBE_LANGUAGES"); v != "" {
		cfg.YouTube.Languages = splitAndTrim(v)
	}
	if v := os.Getenv("YOUTUBE_METADATA_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.YouTube.MetadataTimeout = parsed
		}
	}
	if v := os.Getenv("YOUTUBE_CAPTION_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.YouTube.CaptionTimeout = parsed
		}
	}
	if v := os.Getenv("GROQ_API_KEY"); v != "" {
		cfg.Groq.APIKey = v
	}
	if v := os.Getenv("GROQ_BASE_URL"); v != "" {
		cfg.Groq.BaseURL = v
	}
	if v := os.Getenv("GROQ_MODEL"); v != "" {
		cfg.Groq.Model = v
	}
	if v := os.Getenv("GROQ_TEMPERATURE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.Groq.Temperature = float32(parsed)
		}
	}
	if v := os.Getenv("GROQ_MAX_TOKENS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Groq.MaxTokens = parsed
		}
	}
	if v := os.Getenv("GROQ_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Groq.Timeout = parsed
		}
	}
	if v := os.Getenv("SUMMARY_MAX_TRANSCRIPT_CHARS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Summary.MaxTranscriptChars = parsed
		}
	}
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 120 * time.Second,
		},
		YouTube: YouTubeConfig{
			OEmbedBaseURL:    "https://www.youtube.com",
			InnertubeBaseURL: "https://www.youtube.com",
			MetadataTimeout:  10 * time.Second,
			CaptionTimeout:   15 * time.Second,
			Languages:        []string{"en"},
		},
		Groq: GroqConfig{
			BaseURL:     "https://api.groq.com/openai/v1",
			Model:       "llama-3.1-70b-versatile",
			Temperature: 0.3,
			MaxTokens:   1500,
			Timeout:     60 * time.Second,
		},
		Summary: SummaryConfig{
			MaxTranscriptChars: 30000,
		},
	}
}

// Validate ensures the configuration is safe to use. A missing Groq API key is
// tolerated here: the summarize operation reports it at call time instead.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if strings.TrimSpace(c.YouTube.OEmbedBaseURL) == "" {
		return errors.New("youtube.oembedBaseUrl cannot be empty")
	}
	if strings.TrimSpace(c.YouTube.InnertubeBaseURL) == "" {
		return errors.New("youtube.innertubeBaseUrl cannot be empty")
	}
	if c.YouTube.MetadataTimeout <= 0 {
		return errors.New("youtube.metadataTimeout must be positive")
	}
	if c.YouTube.CaptionTimeout <= 0 {
		return errors.New("youtube.captionTimeout must be positive")
	}
	if strings.TrimSpace(c.Groq.Model) == "" {
		return errors.New("groq.model cannot be empty")
	}
	if c.Groq.MaxTokens <= 0 {
		return errors.New("groq.maxTokens must be positive")
	}
	if c.Summary.MaxTranscriptChars <= 0 {
		return errors.New("summary.maxTranscriptChars must be positive")
	}
	return nil
}
