package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileFallsBack(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.hcl"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "natarun.hcl")
	body := `
run {
  starting_money = 20
  hands_per_round = 6
  seed = 42
}
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.StartingMoney)
	assert.Equal(t, 6, cfg.HandsPerRound)
	assert.Equal(t, int64(42), cfg.Seed)

	// Omitted fields keep their defaults.
	def := DefaultConfig()
	assert.Equal(t, def.DiscardsPerRound, cfg.DiscardsPerRound)
	assert.Equal(t, def.MaxHandSize, cfg.MaxHandSize)
	assert.Equal(t, def.InterestRate, cfg.InterestRate)
	assert.Equal(t, def.InterestCap, cfg.InterestCap)
	assert.Equal(t, def.RerollCost, cfg.RerollCost)
}

func TestLoadConfigEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.hcl")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigBadSyntax(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.hcl")
	require.NoError(t, os.WriteFile(path, []byte("run {"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
