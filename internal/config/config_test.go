package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lox/matchsim/internal/randutil"
	"github.com/lox/matchsim/tennis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleHCL = `
match {
  sets_to_win = 3
  set_fatigue = 2.5
  seed        = 42
}

simulation {
  matches = 250
  workers = 4
  timeout = "30s"
}

server {
  port           = 9090
  point_interval = "100ms"
}

player "Serena" {
  serve_skill  = 95
  return_skill = 88
  stamina      = 97
}

player "Venus" {
  serve_skill  = 92
  return_skill = 86
  stamina      = 94
}
`

func TestParse(t *testing.T) {
	t.Parallel()

	cfg, err := Parse([]byte(sampleHCL), "match.hcl")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 3, *cfg.Match.SetsToWin)
	assert.Equal(t, 2.5, cfg.Match.SetFatigue)
	assert.Equal(t, int64(42), *cfg.Match.Seed)
	assert.Equal(t, 250, cfg.Simulation.Matches)
	assert.Equal(t, 4, cfg.Simulation.Workers)
	assert.Equal(t, "localhost:9090", cfg.ServerAddress())

	timeout, err := cfg.SimulationTimeout()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, timeout)

	interval, err := cfg.PointInterval()
	require.NoError(t, err)
	assert.Equal(t, 100*time.Millisecond, interval)

	require.Len(t, cfg.Players, 2)
	assert.Equal(t, PlayerConfig{Name: "Serena", ServeSkill: 95, ReturnSkill: 88, Stamina: 97}, cfg.Players[0])

	a, b, err := cfg.NewPlayers()
	require.NoError(t, err)
	assert.Equal(t, "Serena", a.Name())
	assert.Equal(t, "Venus", b.Name())

	m, err := tennis.NewMatch(a, b, randutil.New(*cfg.Match.Seed), cfg.MatchOptions()...)
	require.NoError(t, err)
	assert.Equal(t, 3, m.SetsToWin())
}

func TestParseAppliesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Parse([]byte(`match { seed = 7 }`), "partial.hcl")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, tennis.DefaultSetsToWin, *cfg.Match.SetsToWin)
	assert.Equal(t, int64(7), *cfg.Match.Seed)
	assert.Equal(t, 1000, cfg.Simulation.Matches)
	assert.Equal(t, "localhost:8080", cfg.ServerAddress())
	assert.Equal(t, Default().Players, cfg.Players)
}

func TestParseKeepsExplicitZeros(t *testing.T) {
	t.Parallel()

	cfg, err := Parse([]byte(`match {
  sets_to_win = 0
  seed        = 0
}`), "zeros.hcl")
	require.NoError(t, err)

	require.NotNil(t, cfg.Match.Seed)
	assert.Equal(t, int64(0), *cfg.Match.Seed, "seed 0 is a real seed")
	require.NotNil(t, cfg.Match.SetsToWin)
	assert.Equal(t, 0, *cfg.Match.SetsToWin)
	assert.ErrorContains(t, cfg.Validate(), "sets_to_win must be at least 1, got 0")

	cfg, err = Parse([]byte(`match {}`), "empty.hcl")
	require.NoError(t, err)
	assert.Nil(t, cfg.Match.Seed, "missing seed stays unset")
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte(`match {`), "broken.hcl")
	assert.ErrorContains(t, err, "failed to parse HCL file")

	_, err = Parse([]byte(`player "X" { serve_skill = 1 }`), "missing.hcl")
	assert.ErrorContains(t, err, "failed to decode HCL")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{name: "one player", mutate: func(c *Config) { c.Players = c.Players[:1] }, wantErr: "exactly two players"},
		{name: "duplicate names", mutate: func(c *Config) { c.Players[1].Name = c.Players[0].Name }, wantErr: "unique"},
		{name: "skill out of range", mutate: func(c *Config) { c.Players[0].ServeSkill = 120 }, wantErr: "serve skill"},
		{name: "no stamina", mutate: func(c *Config) { c.Players[1].Stamina = 0 }, wantErr: "stamina"},
		{name: "zero sets", mutate: func(c *Config) { *c.Match.SetsToWin = 0 }, wantErr: "sets_to_win"},
		{name: "unset sets", mutate: func(c *Config) { c.Match.SetsToWin = nil }, wantErr: "sets_to_win"},
		{name: "negative fatigue", mutate: func(c *Config) { c.Match.SetFatigue = -1 }, wantErr: "set_fatigue"},
		{name: "no matches", mutate: func(c *Config) { c.Simulation.Matches = 0 }, wantErr: "matches"},
		{name: "bad timeout", mutate: func(c *Config) { c.Simulation.Timeout = "soon" }, wantErr: "timeout"},
		{name: "bad port", mutate: func(c *Config) { c.Server.Port = 70000 }, wantErr: "port"},
		{name: "negative interval", mutate: func(c *Config) { c.Server.PointInterval = "-1s" }, wantErr: "point_interval"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	cfg, err := Load(filepath.Join(dir, "missing.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	path := filepath.Join(dir, "match.hcl")
	require.NoError(t, os.WriteFile(path, []byte(sampleHCL), 0o644))
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Serena", cfg.Players[0].Name)
}

func TestNewPlayersAreIndependent(t *testing.T) {
	t.Parallel()

	cfg := Default()
	a1, _, err := cfg.NewPlayers()
	require.NoError(t, err)
	a2, _, err := cfg.NewPlayers()
	require.NoError(t, err)

	a1.Tire(10)
	assert.NotEqual(t, a1.Stamina(), a2.Stamina())
}
