package game

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config holds the tunable run parameters. Everything has a sensible
// default so the zero-config path just plays the standard ruleset.
type Config struct {
	StartingMoney    int   `hcl:"starting_money,optional"`
	HandsPerRound    int   `hcl:"hands_per_round,optional"`
	DiscardsPerRound int   `hcl:"discards_per_round,optional"`
	MaxHandSize      int   `hcl:"max_hand_size,optional"`
	InterestRate     int   `hcl:"interest_rate,optional"` // $1 interest per this many dollars held
	InterestCap      int   `hcl:"interest_cap,optional"`
	RerollCost       int   `hcl:"reroll_cost,optional"`
	Seed             int64 `hcl:"seed,optional"` // 0 means non-deterministic
}

// configFile is the HCL wrapper: a single run block.
type configFile struct {
	Run *Config `hcl:"run,block"`
}

// DefaultConfig returns the standard ruleset.
func DefaultConfig() Config {
	return Config{
		StartingMoney:    0,
		HandsPerRound:    4,
		DiscardsPerRound: 4,
		MaxHandSize:      8,
		InterestRate:     5,
		InterestCap:      5,
		RerollCost:       5,
	}
}

// LoadConfig loads run configuration from an HCL file, falling back to
// defaults when the file does not exist or omits values.
func LoadConfig(filename string) (Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return cfg, nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return cfg, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var parsed configFile
	diags = gohcl.DecodeBody(file.Body, nil, &parsed)
	if diags.HasErrors() {
		return cfg, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	if parsed.Run == nil {
		return cfg, nil
	}

	applyDefaults(parsed.Run)
	return *parsed.Run, nil
}

func applyDefaults(cfg *Config) {
	def := DefaultConfig()
	if cfg.HandsPerRound == 0 {
		cfg.HandsPerRound = def.HandsPerRound
	}
	if cfg.DiscardsPerRound == 0 {
		cfg.DiscardsPerRound = def.DiscardsPerRound
	}
	if cfg.MaxHandSize == 0 {
		cfg.MaxHandSize = def.MaxHandSize
	}
	if cfg.InterestRate == 0 {
		cfg.InterestRate = def.InterestRate
	}
	if cfg.InterestCap == 0 {
		cfg.InterestCap = def.InterestCap
	}
	if cfg.RerollCost == 0 {
		cfg.RerollCost = def.RerollCost
	}
}
