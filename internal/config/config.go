package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/raphi011/rebump/internal/format"
)

// EnvConfigPath overrides the global config file location.
const EnvConfigPath = "REBUMP_CONFIG"

// Defaults for settings that have one.
const (
	DefaultMainBranch    = "main"
	DefaultRemote        = "origin"
	DefaultBaseRef       = "remote"
	DefaultCommitMessage = format.DefaultCommitMessage
	DefaultDiffStyle     = "monokai"
)

// PromptConfig holds confirmation prompt settings
type PromptConfig struct {
	Confirm bool `toml:"confirm" json:"confirm"`
}

// DiffConfig holds dry-run diff rendering settings
type DiffConfig struct {
	Style string `toml:"style" json:"style"` // chroma style name
	Color bool   `toml:"color" json:"color"` // highlight when the terminal supports it
}

// Hook is a shell command run after a branch finished.
type Hook struct {
	Command     string   `toml:"command" json:"command"`
	Description string   `toml:"description" json:"description,omitempty"`
	On          []string `toml:"on" json:"on,omitempty"` // branch outcomes this hook runs on (empty = only via --hook)
	Enabled     *bool    `toml:"enabled" json:"enabled,omitempty"`
}

// IsEnabled reports whether the hook is active. Hooks are enabled unless
// set to enabled = false, which lets a local config switch off a global hook.
func (h Hook) IsEnabled() bool {
	return h.Enabled == nil || *h.Enabled
}

// Config holds the rebump configuration
type Config struct {
	MainBranch    string          `toml:"main_branch" json:"main_branch"`
	Remote        string          `toml:"remote" json:"remote"`
	BaseRef       string          `toml:"base_ref" json:"base_ref"`
	Push          bool            `toml:"push" json:"push"`
	CommitMessage string          `toml:"commit_message" json:"commit_message"`
	Forge         string          `toml:"forge" json:"forge,omitempty"` // github or gitlab; empty detects from the remote URL
	Prompt        PromptConfig    `toml:"prompt" json:"prompt"`
	Diff          DiffConfig      `toml:"diff" json:"diff"`
	Hooks         map[string]Hook `toml:"hooks" json:"hooks,omitempty"`
}

// Default returns the default configuration
func Default() Config {
	return Config{
		MainBranch:    DefaultMainBranch,
		Remote:        DefaultRemote,
		BaseRef:       DefaultBaseRef,
		Push:          true,
		CommitMessage: DefaultCommitMessage,
		Prompt:        PromptConfig{Confirm: true},
		Diff:          DiffConfig{Style: DefaultDiffStyle, Color: true},
	}
}

// CommitMessageFor expands the commit message template.
func (c *Config) CommitMessageFor(oldValue, newValue, branch string) string {
	return format.CommitMessage(c.CommitMessage, format.MessageParams{Old: oldValue, New: newValue, Branch: branch})
}

// rawConfig mirrors Config with pointers so unset keys keep their defaults.
// Local config files reuse it, which is why every field is optional.
type rawConfig struct {
	MainBranch    string `toml:"main_branch"`
	Remote        string `toml:"remote"`
	BaseRef       string `toml:"base_ref"`
	Push          *bool  `toml:"push"`
	CommitMessage string `toml:"commit_message"`
	Forge         string `toml:"forge"`
	Prompt        struct {
		Confirm *bool `toml:"confirm"`
	} `toml:"prompt"`
	Diff struct {
		Style string `toml:"style"`
		Color *bool  `toml:"color"`
	} `toml:"diff"`
	Hooks map[string]Hook `toml:"hooks"`
}

// Path returns the global config file path.
func Path() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "rebump", "config.toml"), nil
}

// Load reads the global config.
// Returns Default() if the file doesn't exist (no error).
// Returns an error only if the file exists but is invalid.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads a global config from path, applying it over Default().
func LoadFile(path string) (Config, error) {
	raw, found, err := readRaw(path)
	if err != nil || !found {
		return Default(), err
	}

	cfg := Default()
	overlay(&cfg, raw)
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func readRaw(path string) (*rawConfig, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read config file: %w", err)
	}

	var raw rawConfig
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, false, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, false, fmt.Errorf("unknown key %q in %s", undecoded[0].String(), path)
	}
	return &raw, true, nil
}

// overlay copies every set field of raw onto cfg.
func overlay(cfg *Config, raw *rawConfig) {
	if raw.MainBranch != "" {
		cfg.MainBranch = raw.MainBranch
	}
	if raw.Remote != "" {
		cfg.Remote = raw.Remote
	}
	if raw.BaseRef != "" {
		cfg.BaseRef = raw.BaseRef
	}
	if raw.Push != nil {
		cfg.Push = *raw.Push
	}
	if raw.CommitMessage != "" {
		cfg.CommitMessage = raw.CommitMessage
	}
	if raw.Forge != "" {
		cfg.Forge = raw.Forge
	}
	if raw.Prompt.Confirm != nil {
		cfg.Prompt.Confirm = *raw.Prompt.Confirm
	}
	if raw.Diff.Style != "" {
		cfg.Diff.Style = raw.Diff.Style
	}
	if raw.Diff.Color != nil {
		cfg.Diff.Color = *raw.Diff.Color
	}
	if len(raw.Hooks) > 0 {
		cfg.Hooks = mergeHooks(cfg.Hooks, raw.Hooks)
	}
}

type ctxKey struct{}

// WithConfig attaches a config to the context.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, ctxKey{}, cfg)
}

// FromContext returns the config stored in ctx, or the defaults.
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(ctxKey{}).(*Config); ok {
		return cfg
	}
	cfg := Default()
	return &cfg
}
