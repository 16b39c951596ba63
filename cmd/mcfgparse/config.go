package main

import (
	"os"

	"github.com/BurntSushi/toml"
)

// config holds persistent defaults for flags the user didn't explicitly
// set on the command line. Nothing here is required; a missing --config
// flag simply means every default comes from the flag declarations
// themselves.
type config struct {
	Grammar  string `toml:"grammar"`
	Start    string `toml:"start"`
	Cache    string `toml:"cache"`
	Mode     string `toml:"mode"`
	MaxSteps int    `toml:"max_steps"`
	Debug    bool   `toml:"debug"`
}

func loadConfig(path string) (config, error) {
	var c config
	data, err := os.ReadFile(path)
	if err != nil {
		return config{}, err
	}
	if err := toml.Unmarshal(data, &c); err != nil {
		return config{}, err
	}
	return c, nil
}

// applyConfig replaces the value of any flag the user did not set explicitly
// on the command line with the corresponding non-zero config value, without
// overriding anything the user set explicitly.
func applyConfig(c config) {
	if !isFlagSet("grammar") && c.Grammar != "" {
		*grammarFile = c.Grammar
	}
	if !isFlagSet("start") && c.Start != "" {
		*startSyms = c.Start
	}
	if !isFlagSet("cache") && c.Cache != "" {
		*cacheFile = c.Cache
	}
	if !isFlagSet("recognize") && c.Mode != "" {
		*recognize = c.Mode == "recognize"
	}
	if !isFlagSet("max-steps") && c.MaxSteps != 0 {
		*maxSteps = c.MaxSteps
	}
	if !isFlagSet("debug") && c.Debug {
		*debug = c.Debug
	}
}
