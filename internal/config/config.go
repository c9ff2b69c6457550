// Package config loads blocksim's optional TOML configuration file over
// the built-in defaults; cmd/blocksim layers its CLI flag overrides on top.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config holds everything a run of the simulator or inspector needs beyond
// the fixed, spec-mandated constants (record layout, buffer capacity,
// nonce-bucket count) that are never configurable.
type Config struct {
	DataDir     string `toml:"data_dir"`
	LogFileName string `toml:"log_file_name"`
	Seed        uint32 `toml:"seed"`
	TotalBlocks uint32 `toml:"total_blocks"`
	TextDump    bool   `toml:"text_dump"`
	MetricsAddr string `toml:"metrics_addr"`
}

// Default returns the canonical configuration: seed 1234567, 30,000
// blocks, data in the current directory.
func Default() Config {
	return Config{
		DataDir:     ".",
		LogFileName: "blockchain.bin",
		Seed:        1234567,
		TotalBlocks: 30000,
		TextDump:    false,
		MetricsAddr: "",
	}
}

// Load reads a TOML config file, overlaying it onto Default(). A missing
// path is not an error — it just returns the defaults, so the simulator
// runs fine with no config file present.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}
