package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the runtime settings of the tool.
type Config struct {
	AvailableDir string
	EnabledDir   string
	StateDir     string // route records are kept under StateDir/routes; empty disables them
	DomainSuffix string
	PortStart    int
	PortStep     int
	PortEnd      int // 0 means unbounded
	MetricsFile  string
	// ProxyMapFile is the host-to-port map rebuilt after every route change;
	// empty disables it.
	ProxyMapFile string
	Commands     Commands
}

// Commands are shell-style command lines run through the executor.
type Commands struct {
	Validate    string
	Reload      string
	IsActive    string
	ListSockets string
}

const (
	envPrefix  = "TENANTROUTER"
	configName = "config.yaml"
	systemDir  = "/etc/tenantrouter"
	userDir    = ".config/tenantrouter"
)

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		AvailableDir: "/etc/nginx/sites-available",
		EnabledDir:   "/etc/nginx/sites-enabled",
		StateDir:     "/var/lib/tenantrouter",
		DomainSuffix: "cyzor.local",
		PortStart:    6001,
		PortStep:     2,
		Commands: Commands{
			Validate:    "nginx -t",
			Reload:      "systemctl reload nginx",
			IsActive:    "systemctl is-active nginx",
			ListSockets: "ss -tln",
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := New()
	v.SetDefault("available_dir", d.AvailableDir)
	v.SetDefault("enabled_dir", d.EnabledDir)
	v.SetDefault("state_dir", d.StateDir)
	v.SetDefault("domain_suffix", d.DomainSuffix)
	v.SetDefault("port_start", d.PortStart)
	v.SetDefault("port_step", d.PortStep)
	v.SetDefault("port_end", d.PortEnd)
	v.SetDefault("metrics_file", d.MetricsFile)
	v.SetDefault("proxy_map_file", d.ProxyMapFile)
	v.SetDefault("commands.validate", d.Commands.Validate)
	v.SetDefault("commands.reload", d.Commands.Reload)
	v.SetDefault("commands.is_active", d.Commands.IsActive)
	v.SetDefault("commands.list_sockets", d.Commands.ListSockets)
}

// DefaultPaths returns the config file locations searched when no explicit
// path is given, in priority order.
func DefaultPaths() []string {
	paths := []string{filepath.Join(systemDir, configName)}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, userDir, configName))
	}
	return paths
}

// Load reads the configuration.
//
// Priority (highest to lowest):
//  1. Environment variables with TENANTROUTER_ prefix (e.g. TENANTROUTER_PORT_START)
//  2. The YAML file at path, or the first existing file from DefaultPaths
//  3. Built-in defaults
//
// An explicit path that does not exist is an error; a missing default file is not.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		for _, candidate := range DefaultPaths() {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("config file not found: %s", path)
			}
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		AvailableDir: v.GetString("available_dir"),
		EnabledDir:   v.GetString("enabled_dir"),
		StateDir:     v.GetString("state_dir"),
		DomainSuffix: v.GetString("domain_suffix"),
		PortStart:    v.GetInt("port_start"),
		PortStep:     v.GetInt("port_step"),
		PortEnd:      v.GetInt("port_end"),
		MetricsFile:  v.GetString("metrics_file"),
		ProxyMapFile: v.GetString("proxy_map_file"),
		Commands: Commands{
			Validate:    v.GetString("commands.validate"),
			Reload:      v.GetString("commands.reload"),
			IsActive:    v.GetString("commands.is_active"),
			ListSockets: v.GetString("commands.list_sockets"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the tool cannot work with.
func (c *Config) Validate() error {
	if !filepath.IsAbs(c.AvailableDir) {
		return fmt.Errorf("available_dir must be absolute: %q", c.AvailableDir)
	}
	if !filepath.IsAbs(c.EnabledDir) {
		return fmt.Errorf("enabled_dir must be absolute: %q", c.EnabledDir)
	}
	if filepath.Clean(c.AvailableDir) == filepath.Clean(c.EnabledDir) {
		return fmt.Errorf("available_dir and enabled_dir must differ")
	}
	if c.StateDir != "" && !filepath.IsAbs(c.StateDir) {
		return fmt.Errorf("state_dir must be absolute: %q", c.StateDir)
	}
	if strings.Trim(c.DomainSuffix, ".") == "" {
		return fmt.Errorf("domain_suffix cannot be empty")
	}
	if c.PortStart < 1 || c.PortStart > 65535 {
		return fmt.Errorf("port_start out of range: %d", c.PortStart)
	}
	if c.PortStep < 1 {
		return fmt.Errorf("port_step must be positive: %d", c.PortStep)
	}
	if c.PortEnd != 0 && (c.PortEnd < c.PortStart || c.PortEnd > 65535) {
		return fmt.Errorf("port_end must be 0 or between port_start and 65535: %d", c.PortEnd)
	}

	if c.ProxyMapFile != "" && !filepath.IsAbs(c.ProxyMapFile) {
		return fmt.Errorf("proxy_map_file must be absolute: %q", c.ProxyMapFile)
	}

	for _, cmd := range []struct{ key, line string }{
		{"commands.validate", c.Commands.Validate},
		{"commands.reload", c.Commands.Reload},
		{"commands.is_active", c.Commands.IsActive},
		{"commands.list_sockets", c.Commands.ListSockets},
	} {
		if strings.TrimSpace(cmd.line) == "" {
			return fmt.Errorf("%s cannot be empty", cmd.key)
		}
	}
	return nil
}

// RoutesDir returns the directory holding route records, or "" if disabled.
func (c *Config) RoutesDir() string {
	if c.StateDir == "" {
		return ""
	}
	return filepath.Join(c.StateDir, "routes")
}
