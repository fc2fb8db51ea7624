// Package config loads and saves the manager configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds manager configuration.
type Config struct {
	LogFile                   string            `mapstructure:"log_file"`
	JournalPath               string            `mapstructure:"journal_path"`
	Selftest                  bool              `mapstructure:"selftest"`
	AlertCommand              string            `mapstructure:"alert_command"`
	AlertURL                  string            `mapstructure:"alert_url"`
	WorkspaceAutoBackAndForth bool              `mapstructure:"workspace_auto_back_and_forth"`
	DefaultBorder             string            `mapstructure:"default_border"`
	Outputs                   []OutputConfig    `mapstructure:"outputs"`
	Workspaces                []WorkspaceConfig `mapstructure:"workspaces"`
	Bindings                  []Binding         `mapstructure:"bindings"`

	// Path is the config file the values came from, empty when running
	// on defaults alone.
	Path string `mapstructure:"-"`
}

// OutputConfig describes one display in the simulated topology.
type OutputConfig struct {
	Name   string `mapstructure:"name"`
	X      int    `mapstructure:"x"`
	Y      int    `mapstructure:"y"`
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
}

// WorkspaceConfig pins a named workspace to an output.
type WorkspaceConfig struct {
	Name   string `mapstructure:"name"`
	Output string `mapstructure:"output"`
}

// Binding maps a key chord to a command line in a given binding mode.
// The command is a full line: criteria, multiple commands, the works.
type Binding struct {
	Mode    string `mapstructure:"mode"`
	Key     string `mapstructure:"key"`
	Command string `mapstructure:"command"`
}

func setDefaults(v *viper.Viper) {
	share := filepath.Join(os.Getenv("HOME"), ".local", "share", "slate")
	v.SetDefault("log_file", filepath.Join(share, "slate.log"))
	v.SetDefault("journal_path", filepath.Join(share, "journal.db"))
	v.SetDefault("selftest", true)
	v.SetDefault("alert_command", "slate-alert")
	v.SetDefault("alert_url", "")
	v.SetDefault("workspace_auto_back_and_forth", false)
	v.SetDefault("default_border", "normal")
	v.SetDefault("outputs", []map[string]any{
		{"name": "main", "x": 0, "y": 0, "width": 160, "height": 48},
	})
	v.SetDefault("workspaces", []map[string]any{
		{"name": "1", "output": "main"},
	})
	v.SetDefault("bindings", defaultBindings())
}

func defaultBindings() []map[string]any {
	chords := []Binding{
		{"default", "alt+h", "focus left"},
		{"default", "alt+j", "focus down"},
		{"default", "alt+k", "focus up"},
		{"default", "alt+l", "focus right"},
		{"default", "alt+a", "focus parent"},
		{"default", "alt+enter", "open"},
		{"default", "alt+q", "kill"},
		{"default", "alt+f", "fullscreen"},
		{"default", "alt+v", "split v"},
		{"default", "alt+b", "split h"},
		{"default", "alt+s", "layout stacked"},
		{"default", "alt+w", "layout tabbed"},
		{"default", "alt+e", "layout default"},
		{"default", "alt+t", "floating toggle"},
		{"default", "alt+1", "workspace 1"},
		{"default", "alt+2", "workspace 2"},
		{"default", "alt+3", "workspace 3"},
		{"default", "alt+r", "mode resize"},
		{"resize", "h", "resize shrink right 5 px or 5 ppt"},
		{"resize", "j", "resize grow down 5 px or 5 ppt"},
		{"resize", "k", "resize shrink down 5 px or 5 ppt"},
		{"resize", "l", "resize grow right 5 px or 5 ppt"},
		{"resize", "esc", "mode default"},
	}
	out := make([]map[string]any, len(chords))
	for i, b := range chords {
		out[i] = map[string]any{"mode": b.Mode, "key": b.Key, "command": b.Command}
	}
	return out
}

// Load reads configuration from path, or from SLATE_CONFIG, or from the
// default search location. A missing file at the default location is
// not an error; the defaults apply.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("toml")

	if path == "" {
		path = os.Getenv("SLATE_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "slate"))
		v.SetConfigName("slate")
	}

	v.SetEnvPrefix("SLATE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Path = v.ConfigFileUsed()
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) validate() error {
	switch c.DefaultBorder {
	case "normal", "none", "1pixel":
	default:
		return fmt.Errorf("default_border %q is not normal, none or 1pixel", c.DefaultBorder)
	}
	if len(c.Outputs) == 0 {
		return errors.New("at least one output is required")
	}
	names := map[string]bool{}
	for _, o := range c.Outputs {
		if o.Name == "" {
			return errors.New("output without a name")
		}
		if o.Width <= 0 || o.Height <= 0 {
			return fmt.Errorf("output %s has a degenerate size %dx%d", o.Name, o.Width, o.Height)
		}
		if names[o.Name] {
			return fmt.Errorf("output %s configured twice", o.Name)
		}
		names[o.Name] = true
	}
	for _, w := range c.Workspaces {
		if w.Name == "" {
			return errors.New("workspace without a name")
		}
		if w.Output != "" && !names[w.Output] {
			return fmt.Errorf("workspace %s wants unknown output %s", w.Name, w.Output)
		}
	}
	for _, b := range c.Bindings {
		if b.Key == "" || b.Command == "" {
			return fmt.Errorf("binding %+v needs both a key and a command", b)
		}
	}
	return nil
}

// Save writes cfg to its source file, or to the default location when it
// was never loaded from one. The config directory is created if needed.
func Save(cfg Config) error {
	path := cfg.Path
	if path == "" {
		path = os.Getenv("SLATE_CONFIG")
	}
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "slate", "slate.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("log_file", cfg.LogFile)
	v.Set("journal_path", cfg.JournalPath)
	v.Set("selftest", cfg.Selftest)
	v.Set("alert_command", cfg.AlertCommand)
	v.Set("alert_url", cfg.AlertURL)
	v.Set("workspace_auto_back_and_forth", cfg.WorkspaceAutoBackAndForth)
	v.Set("default_border", cfg.DefaultBorder)

	outputs := make([]map[string]any, len(cfg.Outputs))
	for i, o := range cfg.Outputs {
		outputs[i] = map[string]any{"name": o.Name, "x": o.X, "y": o.Y, "width": o.Width, "height": o.Height}
	}
	v.Set("outputs", outputs)

	workspaces := make([]map[string]any, len(cfg.Workspaces))
	for i, w := range cfg.Workspaces {
		workspaces[i] = map[string]any{"name": w.Name, "output": w.Output}
	}
	v.Set("workspaces", workspaces)

	bindings := make([]map[string]any, len(cfg.Bindings))
	for i, b := range cfg.Bindings {
		bindings[i] = map[string]any{"mode": b.Mode, "key": b.Key, "command": b.Command}
	}
	v.Set("bindings", bindings)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
