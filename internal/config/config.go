// Package config loads the table configuration from an HCL file.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
)

// StrategyHuman seats a player driven from the console
const StrategyHuman = "human"

// Defaults applied to missing values
const (
	DefaultDecks    = 6
	DefaultDealer   = "Dealer"
	DefaultMinWager = 1
	DefaultMaxWager = 500
	DefaultBalance  = 1000
	DefaultWager    = 10
	DefaultLogLevel = "info"
)

// Config represents the complete table configuration
type Config struct {
	Table   *TableSettings `hcl:"table,block"`
	Players []PlayerConfig `hcl:"player,block"`
}

// TableSettings contains table-level configuration
type TableSettings struct {
	Decks    int    `hcl:"decks,optional"`
	Seed     int64  `hcl:"seed,optional"`
	Dealer   string `hcl:"dealer,optional"`
	MinWager int    `hcl:"min_wager,optional"`
	MaxWager int    `hcl:"max_wager,optional"`
	LogLevel string `hcl:"log_level,optional"`
	LogFile  string `hcl:"log_file,optional"`
}

// PlayerConfig defines one seat at the table
type PlayerConfig struct {
	Name     string `hcl:"name,label"`
	Balance  int    `hcl:"balance,optional"`
	Strategy string `hcl:"strategy,optional"`
	Wager    int    `hcl:"wager,optional"`
}

// Default returns the configuration used when no file is present: one
// console player at a six-deck table.
func Default() *Config {
	cfg := &Config{
		Players: []PlayerConfig{{Name: "Player"}},
	}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from an HCL file. A missing file yields Default.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source. filename is only used in diagnostics.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Encode renders the configuration, defaults included, as HCL
func (c *Config) Encode() []byte {
	f := hclwrite.NewEmptyFile()
	gohcl.EncodeIntoBody(c, f.Body())
	return f.Bytes()
}

func (c *Config) applyDefaults() {
	if c.Table == nil {
		c.Table = &TableSettings{}
	}
	t := c.Table
	if t.Decks == 0 {
		t.Decks = DefaultDecks
	}
	if t.Dealer == "" {
		t.Dealer = DefaultDealer
	}
	if t.MinWager == 0 {
		t.MinWager = DefaultMinWager
	}
	if t.MaxWager == 0 {
		t.MaxWager = DefaultMaxWager
	}
	if t.LogLevel == "" {
		t.LogLevel = DefaultLogLevel
	}

	for i := range c.Players {
		p := &c.Players[i]
		if p.Balance == 0 {
			p.Balance = DefaultBalance
		}
		if p.Strategy == "" {
			p.Strategy = StrategyHuman
		}
		if p.Wager == 0 {
			p.Wager = max(DefaultWager, t.MinWager)
		}
	}
}

// Validate validates the configuration. known reports whether a bot
// strategy name exists; the human strategy is always accepted.
func (c *Config) Validate(known func(string) bool) error {
	t := c.Table
	if t.Decks < 1 || t.Decks > 8 {
		return fmt.Errorf("invalid deck count: %d", t.Decks)
	}
	if t.MinWager < 0 {
		return fmt.Errorf("minimum wager must not be negative")
	}
	if t.MaxWager < t.MinWager {
		return fmt.Errorf("maximum wager must be at least the minimum")
	}

	if len(c.Players) == 0 {
		return fmt.Errorf("at least one player must be configured")
	}

	seen := make(map[string]bool, len(c.Players))
	for _, p := range c.Players {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return fmt.Errorf("player name must not be empty")
		}
		if strings.EqualFold(name, t.Dealer) {
			return fmt.Errorf("player %s: name is reserved for the dealer", name)
		}
		if seen[name] {
			return fmt.Errorf("player %s: duplicate name", name)
		}
		seen[name] = true

		if p.Strategy != StrategyHuman && (known == nil || !known(p.Strategy)) {
			return fmt.Errorf("player %s: invalid strategy %s", name, p.Strategy)
		}
		if p.Wager < t.MinWager || p.Wager > t.MaxWager {
			return fmt.Errorf("player %s: wager %d outside table limits %d-%d", name, p.Wager, t.MinWager, t.MaxWager)
		}
	}

	return nil
}

// HasHuman reports whether any seat is played from the console
func (c *Config) HasHuman() bool {
	for _, p := range c.Players {
		if p.Strategy == StrategyHuman {
			return true
		}
	}
	return false
}
