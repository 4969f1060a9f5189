// Package config loads the optional defaults file for the cat CLI.
//
// A config file supplies default values for the display options and the
// read buffer size, so users who always want numbered lines (or a larger
// buffer for network filesystems) don't have to pass flags on every
// invocation. Explicitly-set command-line flags always win over config
// values.
//
// Two formats are supported, selected by file extension: YAML
// (.yaml/.yml) via gopkg.in/yaml.v3, and JSONC (.json/.jsonc) — JSON
// with comments — via github.com/tidwall/jsonc, which strips comments
// before parsing with the standard encoding/json library.
//
// Discovery looks under the user config directory (e.g.
// $XDG_CONFIG_HOME/cat/ on Linux) for config.yaml, config.yml,
// config.json, or config.jsonc, in that order. A missing config file is
// not an error; a named file that cannot be read or parsed is.
package config
