// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the config file when --config is absent.
const EnvironmentVariable = "FLUIDSPACES_CONFIG"

// Config is the complete fluidspaces configuration.
type Config struct {
	// SocketPath is the daemon's control socket.
	// Default: ${XDG_RUNTIME_DIR:-/tmp}/fluidspaces.sock
	SocketPath string `yaml:"socket_path" json:"socket_path"`

	// WM configures the window-manager connection.
	WM WMConfig `yaml:"wm" json:"wm"`

	// Picker configures how titles are chosen.
	Picker PickerConfig `yaml:"picker" json:"picker"`

	// Log configures daemon logging.
	Log LogConfig `yaml:"log" json:"log"`
}

// WMConfig configures the i3/sway IPC connection.
type WMConfig struct {
	// SocketPath overrides IPC socket discovery ($SWAYSOCK, $I3SOCK,
	// then asking the window manager binary). Empty means discover.
	SocketPath string `yaml:"socket_path" json:"socket_path"`

	// Timeout bounds each IPC request.
	// Default: 5s
	Timeout Duration `yaml:"timeout" json:"timeout"`
}

// PickerConfig configures the external picker program.
type PickerConfig struct {
	// Command is the program and its arguments. It receives the
	// choices on stdin and prints the chosen title.
	// Default: [dmenu]
	Command []string `yaml:"command" json:"command"`

	// Timeout bounds how long the user may take. Zero waits
	// indefinitely.
	Timeout Duration `yaml:"timeout" json:"timeout"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is debug, info, warn, or error.
	// Default: info
	Level string `yaml:"level" json:"level"`
}

// Duration is a time.Duration written as a Go duration string ("5s",
// "1m30s") in either file format.
type Duration time.Duration

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

// UnmarshalYAML parses a duration string.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var text string
	if err := node.Decode(&text); err != nil {
		return err
	}
	return d.parse(text)
}

// UnmarshalJSON parses a duration string.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return fmt.Errorf("duration must be a string like \"5s\": %w", err)
	}
	return d.parse(text)
}

// MarshalYAML writes d as a duration string.
func (d Duration) MarshalYAML() (any, error) {
	return d.String(), nil
}

// MarshalJSON writes d as a duration string.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) parse(text string) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		SocketPath: "${XDG_RUNTIME_DIR:-/tmp}/fluidspaces.sock",
		WM: WMConfig{
			Timeout: Duration(5 * time.Second),
		},
		Picker: PickerConfig{
			Command: []string{"dmenu"},
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads the file named by FLUIDSPACES_CONFIG, or returns the
// expanded defaults if it is unset.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		cfg := Default()
		cfg.expandVariables()
		return cfg, nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path over the
// defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	cfg.expandVariables()
	return cfg, nil
}

// loadFile decodes one file into c, choosing the format by extension.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		decoder.DisallowUnknownFields()
		return decoder.Decode(c)
	default:
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME":            os.Getenv("HOME"),
		"XDG_RUNTIME_DIR": os.Getenv("XDG_RUNTIME_DIR"),
	}

	c.SocketPath = expandVars(c.SocketPath, vars)
	c.WM.SocketPath = expandVars(c.WM.SocketPath, vars)
	for i, argument := range c.Picker.Command {
		c.Picker.Command[i] = expandVars(argument, vars)
	}
}

// varPattern matches ${VAR} and ${VAR:-default}.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// LogLevel parses Log.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("log.level %q: want debug, info, warn, or error", c.Log.Level)
	}
	return level, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.SocketPath == "" {
		errs = append(errs, errors.New("socket_path is required"))
	}
	if c.WM.Timeout < 0 {
		errs = append(errs, fmt.Errorf("wm.timeout must not be negative, got %s", c.WM.Timeout))
	}
	if len(c.Picker.Command) == 0 || c.Picker.Command[0] == "" {
		errs = append(errs, errors.New("picker.command is required"))
	}
	if c.Picker.Timeout < 0 {
		errs = append(errs, fmt.Errorf("picker.timeout must not be negative, got %s", c.Picker.Timeout))
	}
	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// EnsureSocketDir creates the control socket's parent directory if it
// does not exist.
func (c *Config) EnsureSocketDir() error {
	dir := filepath.Dir(c.SocketPath)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	return nil
}
