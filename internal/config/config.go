// Package config loads service configuration from environment variables.
//
// envconfig maps env vars onto a struct via tags, with defaults — one struct
// is the single source of truth for every knob the service has. main()
// optionally loads a .env file first (godotenv), so local development doesn't
// need a wall of exports.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Backend names accepted in SENTIMENT_BACKEND. The backend is chosen once at
// process start; there is no per-request switching.
const (
	BackendSpace       = "space"       // custom Space HTTP endpoint
	BackendHuggingFace = "huggingface" // hosted inference API
	BackendGradio      = "gradio"      // Gradio predict endpoint
	BackendScript      = "script"      // local python client script
)

// Config holds everything the server needs to start.
type Config struct {
	Port   int    `envconfig:"PORT" default:"8080"`
	DBPath string `envconfig:"DB_PATH" default:"data/chat.db"`

	// SentimentBackend selects which Analyzer implementation is wired in.
	SentimentBackend string `envconfig:"SENTIMENT_BACKEND" default:"space"`

	// Backend-specific settings. Only the ones for the selected backend are
	// consulted.
	SpaceURL   string `envconfig:"SENTIMENT_SPACE_URL" default:"https://mete1923-emotion.hf.space"`
	HFModelID  string `envconfig:"SENTIMENT_HF_MODEL_ID"`
	HFAPIToken string `envconfig:"SENTIMENT_HF_API_TOKEN"`
	GradioURL  string `envconfig:"SENTIMENT_GRADIO_URL"`
	ScriptPath string `envconfig:"SENTIMENT_SCRIPT_PATH"`
}

// Load reads the environment into a Config and validates the combination.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("config: reading environment: %w", err)
	}

	switch cfg.SentimentBackend {
	case BackendSpace, BackendHuggingFace:
		// SpaceURL has a default; the HF model falls back in the analyzer.
	case BackendGradio:
		if cfg.GradioURL == "" {
			return nil, fmt.Errorf("config: SENTIMENT_GRADIO_URL is required when SENTIMENT_BACKEND=gradio")
		}
	case BackendScript:
		if cfg.ScriptPath == "" {
			return nil, fmt.Errorf("config: SENTIMENT_SCRIPT_PATH is required when SENTIMENT_BACKEND=script")
		}
	default:
		return nil, fmt.Errorf("config: unknown SENTIMENT_BACKEND %q", cfg.SentimentBackend)
	}

	return &cfg, nil
}
