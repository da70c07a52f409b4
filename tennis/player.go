package tennis

import (
	"fmt"
	"math"
)

const (
	// MaxSkill is the upper bound for serve and return skill.
	MaxSkill = 100.0

	// RecoveryIncrement is the stamina a player regains between sets.
	RecoveryIncrement = 5.0
)

// RNG is the source of randomness for every probabilistic decision.
// *rand.Rand from math/rand/v2 satisfies it.
type RNG interface {
	Float64() float64
}

// Player holds a participant's skills and stamina. Skills and maximum
// stamina are fixed at construction; current stamina only changes through
// Recover and Tire, which the match calls between sets.
type Player struct {
	name        string
	serveSkill  float64
	returnSkill float64
	maxStamina  float64
	stamina     float64
}

// NewPlayer creates a player at full stamina.
func NewPlayer(name string, serveSkill, returnSkill, stamina float64) (*Player, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: player name is required", ErrInvalidConfig)
	}
	if err := checkSkill(name, "serve skill", serveSkill); err != nil {
		return nil, err
	}
	if err := checkSkill(name, "return skill", returnSkill); err != nil {
		return nil, err
	}
	if !(stamina > 0) || math.IsInf(stamina, 0) {
		return nil, fmt.Errorf("%w: player %s: stamina must be positive, got %v", ErrInvalidConfig, name, stamina)
	}

	return &Player{
		name:        name,
		serveSkill:  serveSkill,
		returnSkill: returnSkill,
		maxStamina:  stamina,
		stamina:     stamina,
	}, nil
}

func checkSkill(name, label string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > MaxSkill {
		return fmt.Errorf("%w: player %s: %s must be within [0, %v], got %v", ErrInvalidConfig, name, label, MaxSkill, v)
	}
	return nil
}

func (p *Player) Name() string          { return p.name }
func (p *Player) ServeSkill() float64   { return p.serveSkill }
func (p *Player) ReturnSkill() float64  { return p.returnSkill }
func (p *Player) MaxStamina() float64   { return p.maxStamina }
func (p *Player) Stamina() float64      { return p.stamina }
func (p *Player) StaminaRatio() float64 { return p.stamina / p.maxStamina }

// ServeProbability is the chance that the next serve goes in.
func (p *Player) ServeProbability() float64 {
	return p.probability(p.serveSkill)
}

// ReturnProbability is the chance that the next return is made.
func (p *Player) ReturnProbability() float64 {
	return p.probability(p.returnSkill)
}

func (p *Player) probability(skill float64) float64 {
	return clamp01(skill * p.StaminaRatio() / 100)
}

// AttemptServe draws once from rng and reports whether the serve is good.
func (p *Player) AttemptServe(rng RNG) bool {
	return rng.Float64() < p.ServeProbability()
}

// AttemptReturn draws once from rng and reports whether the ball comes back.
func (p *Player) AttemptReturn(rng RNG) bool {
	return rng.Float64() < p.ReturnProbability()
}

// Recover restores RecoveryIncrement stamina, never exceeding the maximum.
func (p *Player) Recover() {
	p.stamina = math.Min(p.maxStamina, p.stamina+RecoveryIncrement)
}

// Tire drains stamina by units, never going below zero.
func (p *Player) Tire(units float64) {
	if units <= 0 {
		return
	}
	p.stamina = math.Max(0, p.stamina-units)
}

func (p *Player) String() string {
	return fmt.Sprintf("%s (serve %.0f, return %.0f, stamina %.1f/%.1f)",
		p.name, p.serveSkill, p.returnSkill, p.stamina, p.maxStamina)
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
