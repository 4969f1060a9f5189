package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/mmr-tortoise/cat/internal/model"
)

// configDirName is the subdirectory of the user config directory that
// holds the defaults file.
const configDirName = "cat"

// candidateNames lists the recognized config file names, probed in order
// during discovery. The first one that exists wins.
var candidateNames = []string{
	"config.yaml",
	"config.yml",
	"config.json",
	"config.jsonc",
}

// File is the parsed defaults file. All fields are optional; pointer
// types distinguish "not set" from an explicit false/zero, so a config
// file can deliberately turn an option off without being mistaken for
// an absent key.
type File struct {
	// Number defaults the --number flag: annotate each output line with
	// a sequential 1-based number.
	Number *bool `json:"number" yaml:"number"`

	// ShowEnds defaults the --show-ends flag: mark each line terminator
	// with a visible '$'.
	ShowEnds *bool `json:"show-ends" yaml:"show-ends"`

	// BufferSize overrides the internal read buffer size, in bytes.
	// Must be positive when set.
	BufferSize *int `json:"buffer-size" yaml:"buffer-size"`
}

// Load reads and parses the config file at path. The format is selected
// by extension: .yaml/.yml parse as YAML, .json/.jsonc parse as JSONC
// (comments and trailing commas are stripped before decoding).
//
// Any failure — unreadable file, unknown extension, malformed content,
// invalid values — is returned as an error; callers treat it as operator
// misconfiguration, not as input state to recover from.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	var f File
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), &f); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("config file %s: unsupported extension %q (want .yaml, .yml, .json or .jsonc)", path, ext)
	}

	if err := f.validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return &f, nil
}

// validate rejects values no run could use.
func (f *File) validate() error {
	if f.BufferSize != nil && *f.BufferSize <= 0 {
		return fmt.Errorf("buffer-size must be positive, got %d", *f.BufferSize)
	}
	return nil
}

// Apply copies every set field onto opts, leaving unset fields alone.
// The buffer size is returned separately since it configures the
// resolver rather than the engine; 0 means "not set".
func (f *File) Apply(opts *model.Options) (bufferSize int) {
	if f.Number != nil {
		opts.NumberLines = *f.Number
	}
	if f.ShowEnds != nil {
		opts.ShowEnds = *f.ShowEnds
	}
	if f.BufferSize != nil {
		bufferSize = *f.BufferSize
	}
	return bufferSize
}

// Find probes the standard locations for a defaults file and returns
// the first one that exists. The search root is the platform's user
// config directory (on Linux: $XDG_CONFIG_HOME, falling back to
// ~/.config). Returns "" when no config file is present or the config
// directory cannot be determined — both mean "run with built-in
// defaults".
func Find() string {
	root, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return findIn(filepath.Join(root, configDirName))
}

// findIn returns the first candidate config file that exists under dir,
// or "" if none does. Split out from Find so tests can point discovery
// at a temp directory.
func findIn(dir string) string {
	for _, name := range candidateNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}
