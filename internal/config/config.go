package config

import (
	"context"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type contextKey string

const configKey contextKey = "config"

// Config holds all application configuration
type Config struct {
	// Core settings
	OutputDir  string `yaml:"output_dir"`
	ScenesFile string `yaml:"scenes_file"`

	// Remote generation settings
	API APIConfig `yaml:"api"`

	// Animation stage settings
	Animation AnimationConfig `yaml:"animation"`

	// Ken Burns fallback settings
	Fallback FallbackConfig `yaml:"fallback"`

	// Caption overlay settings
	Caption CaptionConfig `yaml:"caption"`

	// FFmpeg settings
	FFmpeg FFmpegConfig `yaml:"ffmpeg"`
}

type APIConfig struct {
	BaseURL    string `yaml:"base_url"`
	ImageModel string `yaml:"image_model"`
	VideoModel string `yaml:"video_model"`
	// TimeoutSec bounds a single HTTP exchange, not the polling loop.
	TimeoutSec int `yaml:"timeout_sec"`
}

type AnimationConfig struct {
	Enabled bool `yaml:"enabled"`
	// PollIntervalSec is the fixed sleep between operation status checks.
	PollIntervalSec int `yaml:"poll_interval_sec"`
	// ProgressEvery logs elapsed time every Nth poll.
	ProgressEvery int `yaml:"progress_every"`
}

type FallbackConfig struct {
	Duration float64 `yaml:"duration"`
	FPS      int     `yaml:"fps"`
	Width    int     `yaml:"width"`
	Height   int     `yaml:"height"`
}

type CaptionConfig struct {
	FontSize       int      `yaml:"font_size"`
	YFraction      float64  `yaml:"y_fraction"`
	LineSpacing    int      `yaml:"line_spacing"`
	BorderWidth    int      `yaml:"border_width"`
	FontCandidates []string `yaml:"font_candidates"`
	FontFallback   string   `yaml:"font_fallback"`
}

type FFmpegConfig struct {
	Threads int    `yaml:"threads"`
	Preset  string `yaml:"preset"`
}

// Load reads configuration from file or returns defaults
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if path == "" {
		path = findConfigFile()
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes configuration to file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func defaultConfig() *Config {
	return &Config{
		OutputDir: "./output",
		API: APIConfig{
			BaseURL:    "https://generativelanguage.googleapis.com/v1beta",
			ImageModel: "imagen-4.0-generate-001",
			VideoModel: "veo-3.1-generate-preview",
			TimeoutSec: 120,
		},
		Animation: AnimationConfig{
			Enabled:         true,
			PollIntervalSec: 10,
			ProgressEvery:   6,
		},
		Fallback: FallbackConfig{
			Duration: 6.0,
			FPS:      25,
			Width:    720,
			Height:   1280,
		},
		Caption: CaptionConfig{
			FontSize:    42,
			YFraction:   0.25,
			LineSpacing: 12,
			BorderWidth: 2,
			FontCandidates: []string{
				"/System/Library/Fonts/Supplemental/Times New Roman.ttf",
				"/System/Library/Fonts/Times.ttc",
				"/System/Library/Fonts/NewYork.ttf",
				"/usr/share/fonts/truetype/dejavu/DejaVuSerif.ttf",
			},
			FontFallback: "Times",
		},
		FFmpeg: FFmpegConfig{
			Threads: 0,
			Preset:  "medium",
		},
	}
}

func findConfigFile() string {
	candidates := []string{
		"./vangen.yaml",
		"./vangen.yml",
		filepath.Join(os.Getenv("HOME"), ".vangen", "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// WithConfig stores config in context
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// FromContext retrieves config from context
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(configKey).(*Config); ok {
		return cfg
	}
	return defaultConfig()
}
