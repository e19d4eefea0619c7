// Package config loads FlyerPipe settings from an optional json5 file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gaurav-prasanna/flyerpipe/core"
	"github.com/titanous/json5"
)

// DefaultPath is the config file read when --config is not given.
const DefaultPath = "flyerpipe.json5"

// TelemetryConfig points trace export at an OTLP/HTTP collector.
// An empty endpoint disables export.
type TelemetryConfig struct {
	Endpoint string            `json:"endpoint"`
	Headers  map[string]string `json:"headers"`
}

// Config holds all settings of a run.
type Config struct {
	BaseURL          string          `json:"base_url"`
	CategoryPath     string          `json:"category_path"`
	Output           string          `json:"output"`
	Report           string          `json:"report"`
	TimeoutSeconds   int             `json:"timeout_seconds"`
	UserAgent        string          `json:"user_agent"`
	CloudflareBypass bool            `json:"cloudflare_bypass"`
	LogFile          string          `json:"log_file"`
	Debug            bool            `json:"debug"`
	Timezone         string          `json:"timezone"`
	Selectors        core.Selectors  `json:"selectors"`
	Telemetry        TelemetryConfig `json:"telemetry"`
}

// Default returns the settings for prospektmaschine.de hypermarkets.
func Default() Config {
	return Config{
		BaseURL:        "https://www.prospektmaschine.de/",
		CategoryPath:   "hypermarkte/",
		Output:         "assets/flyers.json",
		TimeoutSeconds: 30,
		UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36",
		LogFile:        "logs/app.log",
		Timezone:       "Europe/Berlin",
		Selectors:      core.DefaultSelectors(),
	}
}

// Timeout returns the fetch timeout as time.Duration.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Location returns the timezone "today" is evaluated in.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// Validate checks the settings a run cannot do without.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	if c.Output == "" {
		return fmt.Errorf("output is required")
	}
	if c.Selectors.ShopList == "" || c.Selectors.Fragment == "" || c.Selectors.Description == "" {
		return fmt.Errorf("selectors.shop_list, selectors.fragment and selectors.description are required")
	}
	return nil
}

// Load reads the config at path on top of Default. It then reads
// <name>.local.<ext> over it when present, so machine-specific overrides stay
// out of the shared file. Only keys present in a file replace earlier values,
// including explicit false and "". Missing files are not an error.
//
// The returned slice names the files that were read, in order.
func Load(path string) (Config, []string, error) {
	cfg := Default()
	var sources []string

	for _, p := range []string{path, localName(path)} {
		found, err := readInto(p, &cfg)
		if err != nil {
			return cfg, sources, err
		}
		if found {
			sources = append(sources, p)
		}
	}
	return cfg, sources, nil
}

func readInto(path string, out *Config) (bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading config %s: %w", path, err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return false, nil
	}
	if err := json5.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return true, nil
}

// localName turns "dir/flyerpipe.json5" into "dir/flyerpipe.local.json5".
func localName(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".local" + ext
}
