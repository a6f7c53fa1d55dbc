package config

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestDefault(t *testing.T) {
	t.Parallel()
	cfg := Default()
	if cfg.MainBranch != "main" || cfg.Remote != "origin" || cfg.BaseRef != "remote" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if !cfg.Push || !cfg.Prompt.Confirm {
		t.Error("push and prompt.confirm should default to true")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	t.Parallel()
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("LoadFile(missing) = %+v, want defaults", cfg)
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, t.TempDir(), "config.toml", `
main_branch = "develop"
push = false
commit_message = "chore: {old} -> {new}"

[prompt]
confirm = false

[diff]
style = "dracula"
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.MainBranch != "develop" {
		t.Errorf("MainBranch = %q, want develop", cfg.MainBranch)
	}
	if cfg.Remote != "origin" {
		t.Errorf("Remote = %q, want default origin", cfg.Remote)
	}
	if cfg.Push {
		t.Error("Push = true, want false")
	}
	if cfg.Prompt.Confirm {
		t.Error("Prompt.Confirm = true, want false")
	}
	if cfg.Diff.Style != "dracula" || !cfg.Diff.Color {
		t.Errorf("Diff = %+v, want dracula with color", cfg.Diff)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad toml", "main_branch = ", "failed to parse"},
		{"unknown key", "mainbranch = \"x\"\n", `unknown key "mainbranch"`},
		{"bad base ref", "base_ref = \"upstream\"\n", `invalid base_ref "upstream"`},
		{"bad forge", "forge = \"bitbucket\"\n", `invalid forge "bitbucket"`},
		{"bad style", "[diff]\nstyle = \"no-such-style\"\n", "unknown diff.style"},
		{"blank main", "main_branch = \"  \"\n", "main_branch must not be empty"},
		{"bad placeholder", "commit_message = \"bump {version}\"\n", "unknown placeholder"},
		{"hook without command", "[hooks.ci]\non = [\"success\"]\n", "hooks.ci: command must not be empty"},
		{"bad hook trigger", "[hooks.ci]\ncommand = \"true\"\non = [\"merge\"]\n", `invalid hooks.ci.on value "merge"`},
		{"unknown hook key", "[hooks.ci]\ncommand = \"true\"\nrun = \"x\"\n", `unknown key "hooks.ci.run"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			path := writeConfig(t, t.TempDir(), "config.toml", tt.content)
			_, err := LoadFile(path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("LoadFile() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestPath_EnvOverride(t *testing.T) {
	t.Setenv(EnvConfigPath, "/tmp/rebump-test.toml")
	got, err := Path()
	if err != nil || got != "/tmp/rebump-test.toml" {
		t.Errorf("Path() = %q, %v", got, err)
	}
}

func TestDefaultConfigTemplate(t *testing.T) {
	t.Parallel()
	var raw rawConfig
	if _, err := toml.Decode(DefaultConfig(), &raw); err != nil {
		t.Fatalf("default template does not parse: %v", err)
	}
	cfg := Default()
	overlay(&cfg, &raw)
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("default template disagrees with Default():\n%+v\n%+v", cfg, Default())
	}

	var local rawConfig
	if _, err := toml.Decode(DefaultLocalConfig(), &local); err != nil {
		t.Fatalf("local template does not parse: %v", err)
	}
}

func TestCommitMessageFor(t *testing.T) {
	t.Parallel()
	cfg := Default()
	if got := cfg.CommitMessageFor("1.2", "1.4", "x"); got != "Update 1.2 → 1.4 in branch files" {
		t.Errorf("CommitMessageFor() = %q", got)
	}
}

func TestFromContext(t *testing.T) {
	t.Parallel()
	if got := FromContext(context.Background()); !reflect.DeepEqual(*got, Default()) {
		t.Errorf("FromContext(empty) = %+v, want defaults", got)
	}
	cfg := &Config{MainBranch: "trunk"}
	if got := FromContext(WithConfig(context.Background(), cfg)); got != cfg {
		t.Error("FromContext did not return the attached config")
	}
}

func TestFormatOptions(t *testing.T) {
	t.Parallel()
	tests := []struct {
		opts []string
		want string
	}{
		{[]string{"a"}, `"a"`},
		{[]string{"a", "b"}, `"a" or "b"`},
		{[]string{"a", "b", "c"}, `"a", "b", or "c"`},
	}
	for _, tt := range tests {
		if got := formatOptions(tt.opts); got != tt.want {
			t.Errorf("formatOptions(%v) = %q, want %q", tt.opts, got, tt.want)
		}
	}
}

func TestLoadFile_Hooks(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, t.TempDir(), "config.toml", `
[hooks.ci]
command = "gh workflow run ci.yml --ref {branch}"
description = "Trigger CI"
on = ["success"]

[hooks.off]
command = "true"
enabled = false
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	ci, ok := cfg.Hooks["ci"]
	if !ok {
		t.Fatalf("hooks = %+v, want ci", cfg.Hooks)
	}
	if ci.Description != "Trigger CI" || !reflect.DeepEqual(ci.On, []string{"success"}) {
		t.Errorf("ci hook = %+v", ci)
	}
	if _, ok := cfg.Hooks["off"]; ok {
		t.Error("disabled hook should be dropped")
	}
}
