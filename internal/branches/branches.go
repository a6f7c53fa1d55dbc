// Package branches loads the list of branch names a run operates on.
//
// Names come either from the command line or from a file. JSON files hold an
// array of strings or an object with a "branches" array; TOML files hold a
// top-level branches array. The result is trimmed, deduplicated and keeps the
// order in which names first appear.
package branches

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrNoSource is returned when neither names nor a file were given.
var ErrNoSource = errors.New("no branches given: pass names, --branches, --branches-file or --open-prs")

// ErrBothSources is returned when names and a file were both given.
var ErrBothSources = errors.New("cannot specify both --branches and --branches-file")

// ConfigError reports an unusable branch source.
type ConfigError struct {
	Source string // file path, or "--branches"
	Err    error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("branch list %s: %v", e.Source, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Options selects where branch names come from. Exactly one field must be set.
type Options struct {
	Names []string
	File  string
}

// Load returns the ordered, unique branch names described by opts.
func Load(opts Options) ([]string, error) {
	switch {
	case len(opts.Names) == 0 && opts.File == "":
		return nil, &ConfigError{Source: "source", Err: ErrNoSource}
	case len(opts.Names) > 0 && opts.File != "":
		return nil, &ConfigError{Source: "source", Err: ErrBothSources}
	case opts.File != "":
		names, err := readFile(opts.File)
		if err != nil {
			return nil, &ConfigError{Source: opts.File, Err: err}
		}
		return normalize(opts.File, names)
	default:
		return normalize("--branches", opts.Names)
	}
}

func readFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("file does not exist")
		}
		return nil, err
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return parseTOML(data)
	}
	return parseJSON(data)
}

func parseJSON(data []byte) ([]string, error) {
	var list []string
	listErr := json.Unmarshal(data, &list)
	if listErr == nil {
		if list == nil {
			return nil, fmt.Errorf("expected an array of branch names, got null")
		}
		return list, nil
	}

	var obj struct {
		Branches *[]string `json:"branches"`
	}
	if err := json.Unmarshal(data, &obj); err != nil || obj.Branches == nil {
		return nil, fmt.Errorf("expected a JSON array of strings or an object with a \"branches\" array: %w", listErr)
	}
	return *obj.Branches, nil
}

func parseTOML(data []byte) ([]string, error) {
	var doc struct {
		Branches []string `toml:"branches"`
	}
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, fmt.Errorf("parse TOML: %w", err)
	}
	if !md.IsDefined("branches") {
		return nil, fmt.Errorf("missing top-level branches array")
	}
	return doc.Branches, nil
}

// normalize trims names, rejects empty ones and drops duplicates. Commas are
// part of a name here; the -b flag splits its own values.
func normalize(source string, raw []string) ([]string, error) {
	seen := make(map[string]bool, len(raw))
	var names []string
	for i, name := range raw {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, &ConfigError{Source: source, Err: fmt.Errorf("entry %d is empty", i+1)}
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	if len(names) == 0 {
		return nil, &ConfigError{Source: source, Err: errors.New("no branch names given")}
	}
	return names, nil
}
