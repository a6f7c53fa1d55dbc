package hooks

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/raphi011/rebump/internal/config"
	"github.com/raphi011/rebump/internal/processor"
)

func TestSubstitutePlaceholders(t *testing.T) {
	t.Parallel()

	hc := Context{
		Branch: "feature-branch",
		Old:    "1.2",
		New:    "1.3",
		Status: "failed",
		Reason: "checkout failed",
		Repo:   "myrepo",
		Path:   "/home/user/myrepo",
		Env:    map[string]string{"channel": "#releases", "branch": "ignored"},
	}

	tests := []struct {
		name     string
		command  string
		expected string
	}{
		{
			name:     "single placeholder",
			command:  "echo {branch}",
			expected: "echo 'feature-branch'",
		},
		{
			name:     "all static placeholders",
			command:  "{branch} {old} {new} {status} {reason} {repo} {path}",
			expected: "'feature-branch' '1.2' '1.3' 'failed' 'checkout failed' 'myrepo' '/home/user/myrepo'",
		},
		{
			name:     "no placeholders",
			command:  "echo hello",
			expected: "echo hello",
		},
		{
			name:     "repeated placeholder",
			command:  "{new} and {new}",
			expected: "'1.3' and '1.3'",
		},
		{
			name:     "arg placeholder",
			command:  "notify {channel}",
			expected: "notify '#releases'",
		},
		{
			name:     "static wins over arg",
			command:  "echo {branch}",
			expected: "echo 'feature-branch'",
		},
		{
			name:     "raw arg",
			command:  `echo "{channel:raw}"`,
			expected: `echo "#releases"`,
		},
		{
			name:     "default for missing arg",
			command:  "echo {level:-info}",
			expected: "echo 'info'",
		},
		{
			name:     "missing arg without default",
			command:  "echo {level}",
			expected: "echo ''",
		},
		{
			name:     "not a placeholder",
			command:  "jq '{a: 1}'",
			expected: "jq '{a: 1}'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := SubstitutePlaceholders(tt.command, hc); got != tt.expected {
				t.Errorf("SubstitutePlaceholders(%q) = %q, want %q", tt.command, got, tt.expected)
			}
		})
	}
}

func TestSubstitutePlaceholders_ShellEscaping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		hc       Context
		command  string
		expected string
	}{
		{
			name:     "path with spaces",
			hc:       Context{Path: "/home/user/my repo"},
			command:  "cd {path}",
			expected: "cd '/home/user/my repo'",
		},
		{
			name:     "single quote in reason",
			hc:       Context{Reason: "it's broken"},
			command:  "echo {reason}",
			expected: `echo 'it'\''s broken'`,
		},
		{
			name:     "command injection attempt",
			hc:       Context{Branch: "x; rm -rf /"},
			command:  "echo {branch}",
			expected: "echo 'x; rm -rf /'",
		},
		{
			name:     "braces in value are not expanded",
			hc:       Context{Branch: "feat-{new}", New: "1.3"},
			command:  "echo {branch}",
			expected: "echo 'feat-{new}'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := SubstitutePlaceholders(tt.command, tt.hc); got != tt.expected {
				t.Errorf("SubstitutePlaceholders(%q) = %q, want %q", tt.command, got, tt.expected)
			}
		})
	}
}

func TestSelectHooks(t *testing.T) {
	t.Parallel()

	hooks := map[string]config.Hook{
		"ci":     {Command: "ci", On: []string{"success"}},
		"alert":  {Command: "alert", On: []string{"failure"}},
		"log":    {Command: "log", On: []string{"all"}},
		"manual": {Command: "manual"},
	}

	tests := []struct {
		name     string
		hookName string
		noHook   bool
		trigger  Trigger
		want     []string
		wantErr  bool
	}{
		{name: "success", trigger: TriggerSuccess, want: []string{"ci", "log"}},
		{name: "failure", trigger: TriggerFailure, want: []string{"alert", "log"}},
		{name: "no hook", noHook: true, trigger: TriggerSuccess, want: nil},
		{name: "explicit ignores on", hookName: "manual", trigger: TriggerFailure, want: []string{"manual"}},
		{name: "explicit overrides on", hookName: "ci", trigger: TriggerFailure, want: []string{"ci"}},
		{name: "unknown", hookName: "nope", trigger: TriggerSuccess, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			matches, err := SelectHooks(hooks, tt.hookName, tt.noHook, tt.trigger)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("SelectHooks() error = %v", err)
			}
			var got []string
			for _, m := range matches {
				got = append(got, m.Name)
			}
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("SelectHooks() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSelectHooks_EmptyConfig(t *testing.T) {
	t.Parallel()
	matches, err := SelectHooks(nil, "", false, TriggerSuccess)
	if err != nil || len(matches) != 0 {
		t.Errorf("SelectHooks(nil) = %v, %v; want none", matches, err)
	}
}

func TestParseEnv(t *testing.T) {
	t.Parallel()

	got, err := ParseEnv([]string{"channel=#releases", "expr=a=b", "empty="})
	if err != nil {
		t.Fatalf("ParseEnv() error = %v", err)
	}
	if got["channel"] != "#releases" || got["expr"] != "a=b" || got["empty"] != "" {
		t.Errorf("ParseEnv() = %v", got)
	}

	for _, bad := range []string{"novalue", "=x"} {
		if _, err := ParseEnv([]string{bad}); err == nil {
			t.Errorf("ParseEnv(%q) should fail", bad)
		}
	}
}

func TestRunForEach(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	matches := []HookMatch{
		{Name: "write", Hook: config.Hook{Command: "echo {branch} {status} > out.txt", Description: "wrote file"}},
		{Name: "broken", Hook: config.Hook{Command: "exit 3"}},
	}

	var out bytes.Buffer
	RunForEach(matches, Context{Branch: "feat-a", Status: "succeeded", Path: dir}, &out)

	data, err := os.ReadFile(filepath.Join(dir, "out.txt"))
	if err != nil {
		t.Fatalf("hook did not run in Path: %v", err)
	}
	if got := strings.TrimSpace(string(data)); got != "feat-a succeeded" {
		t.Errorf("hook wrote %q", got)
	}
	for _, want := range []string{"running hook write", "wrote file", `hook "broken" failed for feat-a`} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestRunForEach_DryRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var out bytes.Buffer
	RunForEach([]HookMatch{{Name: "touch", Hook: config.Hook{Command: "touch done"}}},
		Context{Branch: "feat-a", Path: dir, DryRun: true}, &out)

	if _, err := os.Stat(filepath.Join(dir, "done")); !os.IsNotExist(err) {
		t.Error("dry run executed the hook")
	}
	if !strings.Contains(out.String(), "would run hook touch: ") {
		t.Errorf("output = %q", out.String())
	}
}

func TestObserver(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	hooks := map[string]config.Hook{
		"ok":   {Command: "echo {branch} >> ok.txt", On: []string{"success"}},
		"fail": {Command: "echo {branch} {reason} >> fail.txt", On: []string{"failure"}},
	}

	var out bytes.Buffer
	obs, err := NewObserver(hooks, "", false, Context{Path: dir, Old: "1.2", New: "1.3"}, &out)
	if err != nil {
		t.Fatalf("NewObserver() error = %v", err)
	}
	if obs.Empty() {
		t.Fatal("observer should have hooks")
	}

	obs.BranchFinished(&processor.Job{Branch: "feat-a", Status: processor.Succeeded})
	obs.BranchFinished(&processor.Job{Branch: "feat-b", Status: processor.Failed, Reason: processor.ReasonCheckout})

	read := func(name string) string {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		return strings.TrimSpace(string(data))
	}
	if got := read("ok.txt"); got != "feat-a" {
		t.Errorf("ok.txt = %q", got)
	}
	if got := read("fail.txt"); got != "feat-b checkout failed" {
		t.Errorf("fail.txt = %q", got)
	}
}

func TestNewObserver_UnknownHook(t *testing.T) {
	t.Parallel()
	if _, err := NewObserver(nil, "missing", false, Context{}, &bytes.Buffer{}); err == nil {
		t.Error("expected error for unknown hook")
	}
	obs, err := NewObserver(map[string]config.Hook{"x": {Command: "x", On: []string{"all"}}}, "", true, Context{}, &bytes.Buffer{})
	if err != nil || !obs.Empty() {
		t.Errorf("--no-hook observer = %+v, %v; want empty", obs, err)
	}
}
