package forge

import (
	"testing"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		url       string
		forgeName string
		want      string
	}{
		{name: "SSH github.com", url: "git@github.com:user/repo.git", want: "github"},
		{name: "HTTPS github.com", url: "https://github.com/user/repo.git", want: "github"},
		{name: "SSH gitlab.com", url: "git@gitlab.com:user/repo.git", want: "gitlab"},
		{name: "self-hosted gitlab subdomain", url: "https://gitlab.internal.corp/org/repo.git", want: "gitlab"},
		{name: "gitlab in path", url: "https://code.example.com/gitlab/org/repo.git", want: "gitlab"},
		{name: "unknown host defaults to github", url: "https://git.example.com/org/repo.git", want: "github"},
		{name: "explicit gitlab wins", url: "https://git.example.com/org/repo.git", forgeName: "gitlab", want: "gitlab"},
		{name: "explicit github wins", url: "git@gitlab.com:user/repo.git", forgeName: "github", want: "github"},
		{name: "empty url", url: "", want: "github"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Detect(tt.url, tt.forgeName).Name(); got != tt.want {
				t.Errorf("Detect(%q, %q) = %q, want %q", tt.url, tt.forgeName, got, tt.want)
			}
		})
	}
}

func TestByName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want string
	}{
		{"github", "github"},
		{"GitLab", "gitlab"},
		{"unknown", "github"},
	}
	for _, tt := range tests {
		if got := ByName(tt.name).Name(); got != tt.want {
			t.Errorf("ByName(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
