package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"census/internal/chart"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the server settings
type Config struct {
	Port             string `toml:"port"`
	DataPath         string `toml:"data_path"`
	DataRoot         string `toml:"data_root"`
	Container        string `toml:"container"`
	Variant          string `toml:"variant"`
	TransitionMS     int    `toml:"transition_ms"`
	ResizeDebounceMS int    `toml:"resize_debounce_ms"`
	LoadTimeoutS     int    `toml:"load_timeout_s"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Port:             "8080",
		DataPath:         "assets/data/data.csv",
		DataRoot:         ".",
		Container:        "#scatter",
		Variant:          "dual",
		TransitionMS:     1000,
		ResizeDebounceMS: 150,
		LoadTimeoutS:     30,
	}
}

// Load builds the config from defaults, then the TOML file named by
// CONFIG_FILE if set, then environment variables.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}
	if dataPath := os.Getenv("DATA_PATH"); dataPath != "" {
		cfg.DataPath = dataPath
	}
	if dataRoot := os.Getenv("DATA_ROOT"); dataRoot != "" {
		cfg.DataRoot = dataRoot
	}
	if err := envInt("TRANSITION_MS", &cfg.TransitionMS); err != nil {
		return cfg, err
	}
	if err := envInt("RESIZE_DEBOUNCE_MS", &cfg.ResizeDebounceMS); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

func envInt(key string, dst *int) error {
	s := os.Getenv(key)
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = v
	return nil
}

// Validate checks the settings are usable
func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port is required")
	}
	if c.DataPath == "" {
		return fmt.Errorf("data path is required")
	}
	if c.Container == "" {
		return fmt.Errorf("container selector is required")
	}
	if c.TransitionMS < 0 || c.ResizeDebounceMS < 0 || c.LoadTimeoutS <= 0 {
		return fmt.Errorf("durations must be non-negative and load timeout positive")
	}
	_, err := chart.ParseVariant(c.Variant)
	return err
}

// ChartOptions translates the settings into renderer options
func (c Config) ChartOptions() chart.Options {
	opts := chart.DefaultOptions()
	opts.Variant, _ = chart.ParseVariant(c.Variant)
	opts.TransitionDuration = time.Duration(c.TransitionMS) * time.Millisecond
	return opts
}

// ResizeDebounce is the quiet period before a resize remounts the chart
func (c Config) ResizeDebounce() time.Duration {
	return time.Duration(c.ResizeDebounceMS) * time.Millisecond
}

// LoadTimeout bounds the initial dataset load
func (c Config) LoadTimeout() time.Duration {
	return time.Duration(c.LoadTimeoutS) * time.Second
}
