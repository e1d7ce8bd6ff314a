package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultOutput  = "Downloads"
	DefaultBaseURL = "http://www.mangareader.net"
)

type Config struct {
	Output   string        `yaml:"output"`
	BaseURL  string        `yaml:"base_url"`
	Debug    bool          `yaml:"debug"`
	Progress bool          `yaml:"progress"`
	Timeout  time.Duration `yaml:"timeout"`

	DefaultTitle string `yaml:"default_title"`
	DefaultRange string `yaml:"default_range"`
	DefaultList  string `yaml:"default_list"`

	Cookie     string `yaml:"cookie"`
	CookieFile string `yaml:"cookie_file"`
	UserAgent  string `yaml:"user_agent"`
	CFBypass   bool   `yaml:"cf_bypass"`
}

// Options carries CLI overrides. Zero values leave the config untouched,
// except NoProgress which can only switch bars off.
type Options struct {
	IgnoreConfig bool
	Debug        bool
	Output       string
	BaseURL      string
	Timeout      time.Duration
	NoProgress   bool
	DefaultTitle string
	DefaultRange string
	DefaultList  string
	Cookie       string
	CookieFile   string
	UserAgent    string
	CFBypass     bool
}

func DefaultConfig() *Config {
	return &Config{
		Output:   DefaultOutput,
		BaseURL:  DefaultBaseURL,
		Progress: true,
	}
}

func SaveYAML(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func loadYAML(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c := DefaultConfig()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}

	return c, nil
}

// LoadMerged loads the active profile (or defaults) and applies opts on
// top. The returned string says where the config came from.
func LoadMerged(opts Options) (*Config, string, error) {
	if opts.IgnoreConfig {
		cfg := DefaultConfig()
		mergeConfig(cfg, opts)
		normalizeDefaults(cfg)
		return cfg, "(ignored config)", nil
	}

	activePath, err := ActiveConfigPath()
	if err == ErrNoConfig || activePath == "" {
		cfg := DefaultConfig()
		mergeConfig(cfg, opts)
		normalizeDefaults(cfg)
		return cfg, "(default config in memory)\nRun `mangascraper config init` to create an actual config", nil
	}
	if err != nil {
		return nil, "", err
	}

	cfg, err := loadYAML(activePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config %s: %w", activePath, err)
	}

	mergeConfig(cfg, opts)
	normalizeDefaults(cfg)

	return cfg, activePath, nil
}

func mergeConfig(c *Config, o Options) {
	if o.Debug {
		c.Debug = true
	}
	if o.Output != "" {
		c.Output = o.Output
	}
	if o.BaseURL != "" {
		c.BaseURL = o.BaseURL
	}
	if o.Timeout != 0 {
		c.Timeout = o.Timeout
	}
	if o.NoProgress {
		c.Progress = false
	}
	if o.DefaultTitle != "" {
		c.DefaultTitle = o.DefaultTitle
	}
	if o.DefaultRange != "" {
		c.DefaultRange = o.DefaultRange
	}
	if o.DefaultList != "" {
		c.DefaultList = o.DefaultList
	}
	if o.Cookie != "" {
		c.Cookie = o.Cookie
	}
	if o.CookieFile != "" {
		c.CookieFile = o.CookieFile
	}
	if o.UserAgent != "" {
		c.UserAgent = o.UserAgent
	}
	if o.CFBypass {
		c.CFBypass = true
	}
}

func normalizeDefaults(c *Config) {
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout < 0 {
		c.Timeout = 0
	}
}

// Print lists the effective settings, skipping unset optional ones.
func (c *Config) Print(w io.Writer) {
	p := func(format string, args ...any) {
		_, _ = fmt.Fprintf(w, format, args...)
	}

	p(" -output: %s\n", c.Output)
	p(" -base_url: %s\n", c.BaseURL)
	p(" -progress: %t\n", c.Progress)
	if c.Timeout > 0 {
		p(" -timeout: %s\n", c.Timeout)
	}
	if c.Debug {
		p(" -debug: %t\n", c.Debug)
	}
	if c.DefaultTitle != "" {
		p(" -title: %s\n", c.DefaultTitle)
	}
	if c.DefaultRange != "" {
		p(" -range: %s\n", c.DefaultRange)
	}
	if c.DefaultList != "" {
		p(" -list: %s\n", c.DefaultList)
	}
	if c.CookieFile != "" {
		p(" -cookie_file: %s\n", c.CookieFile)
	}
	if c.UserAgent != "" {
		p(" -user_agent: %s\n", c.UserAgent)
	}
	if c.CFBypass {
		p(" -cf_bypass: %t\n", c.CFBypass)
	}
}
