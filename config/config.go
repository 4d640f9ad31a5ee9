package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/kelseyhightower/envconfig"
)

// envPrefix namespaces environment overrides, e.g. SNAPCROP_MODEL.
const envPrefix = "snapcrop"

// Config holds runtime configuration for the crop editor and app behavior.
// Fields load from a JSON file, then environment variables override, and
// command-line flags may override again.
type Config struct {
	Debug bool `json:"debug" envconfig:"DEBUG"`

	// Crop editor parameters
	MinRegionSize int `json:"min_region_size" envconfig:"MIN_REGION_SIZE"`

	// Vision model parameters
	Model      string `json:"model" envconfig:"MODEL"`
	ServerURL  string `json:"server_url" envconfig:"SERVER_URL"`
	Prompt     string `json:"prompt" envconfig:"PROMPT"`
	SendMaxDim int    `json:"send_max_dim" envconfig:"SEND_MAX_DIM"`

	// Output parameters for committed crops
	OutputDir     string `json:"output_dir" envconfig:"OUTPUT_DIR"`
	OutputFormat  string `json:"output_format" envconfig:"OUTPUT_FORMAT"`
	OutputQuality int    `json:"output_quality" envconfig:"OUTPUT_QUALITY"`
	WebPLossless  bool   `json:"webp_lossless" envconfig:"WEBP_LOSSLESS"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:         false,
		MinRegionSize: 30,
		Model:         "minicpm-v",
		ServerURL:     "http://localhost:11434",
		Prompt:        "Describe the content of this image. Be concise.",
		SendMaxDim:    1536,
		OutputDir:     "crops",
		OutputFormat:  "png",
		OutputQuality: 90,
		WebPLossless:  false,
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	if c.MinRegionSize <= 0 {
		c.MinRegionSize = 30
	}
	if c.Model == "" {
		c.Model = "minicpm-v"
	}
	if c.ServerURL == "" {
		c.ServerURL = "http://localhost:11434"
	}
	if c.SendMaxDim < 0 {
		c.SendMaxDim = 0
	}
	switch c.OutputFormat {
	case "png", "jpg", "jpeg", "webp":
	default:
		c.OutputFormat = "png"
	}
	if c.OutputQuality < 1 || c.OutputQuality > 100 {
		c.OutputQuality = 90
	}
	if c.OutputDir == "" {
		c.OutputDir = "crops"
	}
	return nil
}

// DefaultPath returns the configuration file location under the XDG config
// home, falling back to the working directory when that is unavailable.
func DefaultPath() string {
	if path, err := xdg.ConfigFile(filepath.Join("snapcrop", "config.json")); err == nil {
		return path
	}
	return "config.json"
}

// Load attempts to read configuration from the given JSON file path and then
// applies environment overrides. If the file does not exist it returns
// defaults plus environment. On JSON error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, cfg.applyEnv()
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return cfg, err
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if err := envconfig.Process(envPrefix, c); err != nil {
		return err
	}
	_ = c.Validate()
	return nil
}

// Save writes the configuration to the given path in JSON format, creating
// parent directories as needed.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
