// Package grampilercfg loads the optional .grampiler.toml project config
// file, the same layered way the teacher loads its TOML-format world
// manifests (see internal/tqw): an on-disk file provides defaults, and
// anything explicitly passed on the command line overrides it.
package grampilercfg

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config mirrors the CLI's own flags (spec §6), so a project can commit a
// .grampiler.toml instead of repeating long flag invocations.
type Config struct {
	Output  string `toml:"output"`
	Lang    string `toml:"lang"`
	Cache   string `toml:"cache"`
	History string `toml:"history"`
	LL      bool   `toml:"ll"`
	LR      bool   `toml:"lr"`
}

// Load reads and unmarshals path. A missing file is not an error — it
// returns the zero Config — since the config file is always optional.
func Load(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("grampilercfg: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("grampilercfg: %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyDefaults fills in any flag value still at its zero value with the
// config file's corresponding setting. Flags explicitly set by the user
// always win; this is only ever called with flags that were left at their
// built-in default.
func (c Config) ApplyDefaults(output, lang, cache, history *string, ll, lr *bool) {
	if *output == "" && c.Output != "" {
		*output = c.Output
	}
	if *lang == "" && c.Lang != "" {
		*lang = c.Lang
	}
	if *cache == "" && c.Cache != "" {
		*cache = c.Cache
	}
	if *history == "" && c.History != "" {
		*history = c.History
	}
	if !*ll && !*lr {
		*ll = c.LL
		*lr = c.LR
	}
}
