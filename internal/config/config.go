// Package config loads match settings from HCL files.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/matchsim/tennis"
)

// Config is the complete contents of a match file
type Config struct {
	Match      *MatchSettings      `hcl:"match,block"`
	Simulation *SimulationSettings `hcl:"simulation,block"`
	Server     *ServerSettings     `hcl:"server,block"`
	Players    []PlayerConfig      `hcl:"player,block"`
}

// MatchSettings controls the rules of a single match
type MatchSettings struct {
	SetsToWin  *int    `hcl:"sets_to_win,optional"`
	SetFatigue float64 `hcl:"set_fatigue,optional"`
	Seed       *int64  `hcl:"seed,optional"` // nil picks a random seed
}

// SimulationSettings controls batch runs
type SimulationSettings struct {
	Matches int    `hcl:"matches,optional"`
	Workers int    `hcl:"workers,optional"`
	Timeout string `hcl:"timeout,optional"`
}

// ServerSettings controls the spectator server
type ServerSettings struct {
	Address       string `hcl:"address,optional"`
	Port          int    `hcl:"port,optional"`
	PointInterval string `hcl:"point_interval,optional"`
	MatchInterval string `hcl:"match_interval,optional"`
}

// PlayerConfig describes one participant
type PlayerConfig struct {
	Name        string  `hcl:"name,label"`
	ServeSkill  float64 `hcl:"serve_skill"`
	ReturnSkill float64 `hcl:"return_skill"`
	Stamina     float64 `hcl:"stamina"`
}

// Default returns the classic Roger vs Rafa exhibition
func Default() *Config {
	cfg := &Config{
		Players: []PlayerConfig{
			{Name: "Roger", ServeSkill: 90, ReturnSkill: 85, Stamina: 95},
			{Name: "Rafa", ServeSkill: 85, ReturnSkill: 90, Stamina: 98},
		},
	}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from an HCL file. A missing file yields the defaults.
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
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

	if len(cfg.Players) == 0 {
		cfg.Players = Default().Players
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Match == nil {
		c.Match = &MatchSettings{}
	}
	if c.Match.SetsToWin == nil {
		n := tennis.DefaultSetsToWin
		c.Match.SetsToWin = &n
	}

	if c.Simulation == nil {
		c.Simulation = &SimulationSettings{}
	}
	if c.Simulation.Matches == 0 {
		c.Simulation.Matches = 1000
	}
	if c.Simulation.Timeout == "" {
		c.Simulation.Timeout = "5m"
	}

	if c.Server == nil {
		c.Server = &ServerSettings{}
	}
	if c.Server.Address == "" {
		c.Server.Address = "localhost"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.PointInterval == "" {
		c.Server.PointInterval = "750ms"
	}
	if c.Server.MatchInterval == "" {
		c.Server.MatchInterval = "10s"
	}
}

// Validate checks the configuration before any match is built
func (c *Config) Validate() error {
	if len(c.Players) != 2 {
		return fmt.Errorf("exactly two players must be configured, got %d", len(c.Players))
	}
	if c.Players[0].Name == c.Players[1].Name {
		return fmt.Errorf("player names must be unique, got %q twice", c.Players[0].Name)
	}
	for _, p := range c.Players {
		if _, err := p.NewPlayer(); err != nil {
			return err
		}
	}

	if c.Match.SetsToWin == nil {
		return errors.New("match: sets_to_win is not set")
	}
	if *c.Match.SetsToWin < 1 {
		return fmt.Errorf("match: sets_to_win must be at least 1, got %d", *c.Match.SetsToWin)
	}
	if c.Match.SetFatigue < 0 {
		return fmt.Errorf("match: set_fatigue cannot be negative, got %v", c.Match.SetFatigue)
	}

	if c.Simulation.Matches < 1 {
		return fmt.Errorf("simulation: matches must be positive, got %d", c.Simulation.Matches)
	}
	if c.Simulation.Workers < 0 {
		return fmt.Errorf("simulation: workers cannot be negative, got %d", c.Simulation.Workers)
	}
	if _, err := c.SimulationTimeout(); err != nil {
		return err
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server: invalid port: %d", c.Server.Port)
	}
	if _, err := c.PointInterval(); err != nil {
		return err
	}
	if _, err := c.MatchInterval(); err != nil {
		return err
	}
	return nil
}

// NewPlayer builds a fresh tennis.Player at full stamina
func (p PlayerConfig) NewPlayer() (*tennis.Player, error) {
	return tennis.NewPlayer(p.Name, p.ServeSkill, p.ReturnSkill, p.Stamina)
}

// NewPlayers builds both participants. Every match needs its own pair since
// stamina is mutated between sets.
func (c *Config) NewPlayers() (*tennis.Player, *tennis.Player, error) {
	if len(c.Players) != 2 {
		return nil, nil, fmt.Errorf("exactly two players must be configured, got %d", len(c.Players))
	}
	a, err := c.Players[0].NewPlayer()
	if err != nil {
		return nil, nil, err
	}
	b, err := c.Players[1].NewPlayer()
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

// MatchOptions translates the match block into tennis options
func (c *Config) MatchOptions() []tennis.MatchOption {
	return []tennis.MatchOption{
		tennis.WithSetsToWin(*c.Match.SetsToWin),
		tennis.WithSetFatigue(c.Match.SetFatigue),
	}
}

// SimulationTimeout parses the simulation timeout
func (c *Config) SimulationTimeout() (time.Duration, error) {
	return parseDuration("simulation: timeout", c.Simulation.Timeout)
}

// PointInterval parses the delay between points for paced presentation
func (c *Config) PointInterval() (time.Duration, error) {
	return parseDuration("server: point_interval", c.Server.PointInterval)
}

// MatchInterval parses the pause between spectator matches
func (c *Config) MatchInterval() (time.Duration, error) {
	return parseDuration("server: match_interval", c.Server.MatchInterval)
}

// ServerAddress returns the full listen address
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

func parseDuration(field, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", field, value)
	}
	return d, nil
}
