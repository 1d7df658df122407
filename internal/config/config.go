// Package config loads game settings from an HCL file and FAIRRPS_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// DefaultFile is the config file looked up when none is given
const DefaultFile = "fairrps.hcl"

// Config represents the complete game configuration
type Config struct {
	Game GameSettings `hcl:"game,block"`
	Log  LogSettings  `hcl:"log,block"`
	UI   UISettings   `hcl:"ui,block"`
}

// GameSettings contains the move list and commitment options
type GameSettings struct {
	Moves       []string `hcl:"moves,optional" env:"FAIRRPS_MOVES" envSeparator:","`
	BindRoundID bool     `hcl:"bind_round_id,optional" env:"FAIRRPS_BIND_ROUND_ID"`
}

// LogSettings contains logging settings
type LogSettings struct {
	Level string `hcl:"level,optional" env:"FAIRRPS_LOG_LEVEL"`
	File  string `hcl:"file,optional" env:"FAIRRPS_LOG_FILE"`
}

// UISettings contains terminal settings
type UISettings struct {
	NoColor bool `hcl:"no_color,optional" env:"FAIRRPS_NO_COLOR"`
}

// Default returns the default configuration. There is no default move
// list; moves come from the command line, the file or the environment.
func Default() *Config {
	return &Config{
		Log: LogSettings{
			Level: "warn",
		},
	}
}

// LoadFile loads configuration from an HCL file. A missing file yields the
// defaults.
func LoadFile(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	// Blocks are optional, so decode into pointers and fill in from defaults
	var raw struct {
		Game *GameSettings `hcl:"game,block"`
		Log  *LogSettings  `hcl:"log,block"`
		UI   *UISettings   `hcl:"ui,block"`
	}
	diags = gohcl.DecodeBody(file.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config := Default()
	if raw.Game != nil {
		if len(raw.Game.Moves) > 0 {
			config.Game.Moves = raw.Game.Moves
		}
		config.Game.BindRoundID = raw.Game.BindRoundID
	}
	if raw.Log != nil {
		if raw.Log.Level != "" {
			config.Log.Level = raw.Log.Level
		}
		config.Log.File = raw.Log.File
	}
	if raw.UI != nil {
		config.UI = *raw.UI
	}

	return config, nil
}

// ApplyEnv overrides settings from FAIRRPS_* environment variables.
func (c *Config) ApplyEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads filename then applies the environment.
func Load(filename string) (*Config, error) {
	config, err := LoadFile(filename)
	if err != nil {
		return nil, err
	}
	if err := config.ApplyEnv(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate validates the configuration. Move list rules are enforced when the
// move set is built so the user sees one consistent message.
func (c *Config) Validate() error {
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.Log.Level] {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}
	return nil
}
