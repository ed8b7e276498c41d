package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Window struct {
	Title  string `yaml:"title"`
	Width  uint32 `yaml:"width"`
	Height uint32 `yaml:"height"`
}

type GPU struct {
	// one of primary, vulkan, metal, dx12, gl or gles
	Backend              string `yaml:"backend"`
	ForceFallbackAdapter bool   `yaml:"force_fallback_adapter"`
	LogLevel             string `yaml:"log_level"`
}

type Config struct {
	Window Window `yaml:"window"`
	GPU    GPU    `yaml:"gpu"`

	LogLevel string `yaml:"log_level"`

	// cpu or mem, empty disables profiling
	Profile string `yaml:"profile"`

	// srgb encoded rgba
	ClearColor [4]float32 `yaml:"clear_color"`
}

func Default() Config {
	return Config{
		Window: Window{
			Title:  "lmage",
			Width:  1000,
			Height: 600,
		},
		GPU: GPU{
			Backend:  "primary",
			LogLevel: "WARN",
		},
		LogLevel:   "info",
		ClearColor: [4]float32{0.1, 0.2, 0.3, 1},
	}
}

// Load reads the yaml file at path on top of the defaults.
// A missing file is not an error.
func Load(path string) (Config, error) {
	config := Default()

	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("No config file found, using defaults", slog.String("path", path))
		return config, nil
	}

	if err != nil {
		return config, fmt.Errorf("read config %q: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("parse config %q: %w", path, err)
	}

	return config, nil
}

// ApplyEnv overrides values from the environment.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if level := getenv("WGPU_LOG_LEVEL"); level != "" {
		c.GPU.LogLevel = level
	}

	if value := getenv("WGPU_FORCE_FALLBACK_ADAPTER"); value != "" {
		force, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("WGPU_FORCE_FALLBACK_ADAPTER: %w", err)
		}

		c.GPU.ForceFallbackAdapter = force
	}

	if level := getenv("LMAGE_LOG"); level != "" {
		c.LogLevel = level
	}

	return nil
}

func (c *Config) Validate() error {
	var errs []error

	if c.Window.Width == 0 || c.Window.Height == 0 {
		errs = append(errs, fmt.Errorf("window size must not be zero, got %dx%d", c.Window.Width, c.Window.Height))
	}

	switch strings.ToLower(c.GPU.Backend) {
	case "", "primary", "vulkan", "metal", "dx12", "d3d12", "gl", "opengl", "gles", "opengles", "webgpu":
	default:
		errs = append(errs, fmt.Errorf("unknown gpu backend %q", c.GPU.Backend))
	}

	switch strings.ToUpper(c.GPU.LogLevel) {
	case "", "OFF", "ERROR", "WARN", "INFO", "DEBUG", "TRACE":
	default:
		errs = append(errs, fmt.Errorf("unknown gpu log level %q", c.GPU.LogLevel))
	}

	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}

	switch c.Profile {
	case "", "cpu", "mem":
	default:
		errs = append(errs, fmt.Errorf("unknown profile %q", c.Profile))
	}

	for _, value := range c.ClearColor {
		if value < 0 || value > 1 {
			errs = append(errs, fmt.Errorf("clear color %v out of range", c.ClearColor))
			break
		}
	}

	return errors.Join(errs...)
}

func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level: %w", err)
	}

	return level, nil
}
