package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config captures all tunable settings for the Shaarli UI driver.
type Config struct {
	Client  ClientConfig  `yaml:"client"`
	Shaarli ShaarliConfig `yaml:"shaarli"`
	Browser BrowserConfig `yaml:"browser"`
	Trace   TraceConfig   `yaml:"trace"`
}

type ClientConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	LogFile string `yaml:"log_file"`
}

// ShaarliConfig points the driver at one Shaarli instance. The URL paths
// are configuration, not protocol: the engine adapts to whatever markup it
// finds at them.
type ShaarliConfig struct {
	// Base URL of the instance (e.g., "https://links.example.com").
	BaseURL string `yaml:"base_url"`
	// Credentials for the UI login. Every run re-authenticates; no token reuse.
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	// Path of the login form (default "/login").
	LoginPath string `yaml:"login_path"`
	// Path of the two-step add-bookmark form (default "/admin/add-shaare").
	AddBookmarkPath string `yaml:"add_bookmark_path"`
}

// BrowserConfig configures how we attach to or launch Chrome for Rod.
type BrowserConfig struct {
	// Control endpoint for Rod (e.g., ws://localhost:9222). Required when launch is empty.
	DebuggerURL string `yaml:"debugger_url"`
	// Optional launch command to start Chrome (e.g., ["chrome", "--no-sandbox"]).
	Launch []string `yaml:"launch"`
	// Headless controls whether Chrome runs in headless mode (default: true).
	Headless *bool `yaml:"headless"`
	// Default navigation timeout (e.g., "15s").
	DefaultNavigationTimeout string `yaml:"default_navigation_timeout"`
	// Timeout for individual element queries and interactions (e.g., "2s").
	DefaultElementTimeout string `yaml:"default_element_timeout"`
	// Viewport width for the session (default: 1920).
	ViewportWidth int `yaml:"viewport_width"`
	// Viewport height for the session (default: 1080).
	ViewportHeight int `yaml:"viewport_height"`
}

// TraceConfig controls the JSONL workflow step trace.
type TraceConfig struct {
	Enable bool   `yaml:"enable"`
	Dir    string `yaml:"dir"`
}

// DefaultConfig provides reasonable defaults for local development.
func DefaultConfig() Config {
	return Config{
		Client: ClientConfig{
			Name:    "shaarli-driver",
			Version: "0.1.0",
			LogFile: "shaarli-driver.log",
		},
		Shaarli: ShaarliConfig{
			LoginPath:       "/login",
			AddBookmarkPath: "/admin/add-shaare",
		},
		Browser: BrowserConfig{
			DefaultNavigationTimeout: "15s",
			DefaultElementTimeout:    "2s",
			ViewportWidth:            1920,
			ViewportHeight:           1080,
		},
		Trace: TraceConfig{
			Enable: false,
			Dir:    "data/traces",
		},
	}
}

// Load reads YAML config from disk and overlays defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, errors.New("config path is required")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

// Validate ensures required fields exist so runs fail fast and deterministically.
func (c *Config) Validate() error {
	if c.Client.Name == "" {
		return errors.New("client.name is required")
	}
	if c.Shaarli.BaseURL == "" {
		return errors.New("shaarli.base_url is required")
	}
	if c.Browser.DebuggerURL == "" && len(c.Browser.Launch) == 0 {
		return errors.New("browser.debugger_url or browser.launch must be provided")
	}
	return nil
}

// Base returns the base URL without a trailing slash.
func (s ShaarliConfig) Base() string {
	return strings.TrimRight(s.BaseURL, "/")
}

// LoginURL returns the absolute URL of the login form.
func (s ShaarliConfig) LoginURL() string {
	path := s.LoginPath
	if path == "" {
		path = "/login"
	}
	return s.Base() + path
}

// AddBookmarkURL returns the absolute URL of the add-bookmark form.
func (s ShaarliConfig) AddBookmarkURL() string {
	path := s.AddBookmarkPath
	if path == "" {
		path = "/admin/add-shaare"
	}
	return s.Base() + path
}

// NavigationTimeout returns the parsed navigation timeout with a sane default.
func (b BrowserConfig) NavigationTimeout() time.Duration {
	if b.DefaultNavigationTimeout == "" {
		return 15 * time.Second
	}
	d, err := time.ParseDuration(b.DefaultNavigationTimeout)
	if err != nil {
		return 15 * time.Second
	}
	return d
}

// ElementTimeout returns the parsed element timeout with a sane default.
func (b BrowserConfig) ElementTimeout() time.Duration {
	if b.DefaultElementTimeout == "" {
		return 2 * time.Second
	}
	d, err := time.ParseDuration(b.DefaultElementTimeout)
	if err != nil {
		return 2 * time.Second
	}
	return d
}

// IsHeadless returns whether Chrome should run in headless mode (default: true).
func (b BrowserConfig) IsHeadless() bool {
	if b.Headless == nil {
		return true
	}
	return *b.Headless
}

// GetViewportWidth returns the viewport width with a sane default.
func (b BrowserConfig) GetViewportWidth() int {
	if b.ViewportWidth <= 0 {
		return 1920
	}
	return b.ViewportWidth
}

// GetViewportHeight returns the viewport height with a sane default.
func (b BrowserConfig) GetViewportHeight() int {
	if b.ViewportHeight <= 0 {
		return 1080
	}
	return b.ViewportHeight
}
