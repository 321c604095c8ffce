// Package engine implements the clash combat resolver: speed scheduling,
// clash and one-sided resolution, the roll and damage pipelines, and the
// mechanic dispatch that lets pluggable effects intercept every stage.
//
// The engine is a library: it performs no I/O, owns no goroutines and is
// fully deterministic for a fixed RNG, which is what the snapshot/rewind
// seam and the tests rely on.
package engine

import (
	"math/rand"

	"github.com/librozavisim/lor-simulator/internal/game"
)

// Iteration caps guarding against pathological recycling loops. Hitting a
// cap is a silent early exit, not an error.
const (
	maxClashIterations    = 25
	maxOneSidedIterations = 20
)

// Speed-gap thresholds: at speedGapDestroy the faster side may destroy the
// slower side's first die; at speedGapDisadvantage the slower side only
// rolls with disadvantage.
const (
	speedGapDisadvantage = 4
	speedGapDestroy      = 8
)

// RNG is the randomness source for every die roll. Production code seeds a
// math/rand generator; tests substitute scripted sequences to assert exact
// outcomes.
type RNG interface {
	Intn(n int) int
}

// Engine resolves combat rounds between two teams. It is single-threaded
// by design: a round runs to completion before any external interaction.
type Engine struct {
	reg   *Registry
	rng   RNG
	round int

	// Teams for the turn in flight, set by PrepareTurn.
	left, right []*game.Unit
}

// Option configures an Engine.
type Option func(*Engine)

// WithSeed makes the engine deterministic for the given seed.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.rng = rand.New(rand.NewSource(seed)) }
}

// WithRNG substitutes the randomness source entirely.
func WithRNG(rng RNG) Option {
	return func(e *Engine) { e.rng = rng }
}

// New builds an engine around an immutable registry.
func New(reg *Registry, opts ...Option) *Engine {
	e := &Engine{reg: reg, round: 1}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return e
}

// Round returns the current round number, starting at 1.
func (e *Engine) Round() int { return e.round }

// SetRound restores the round counter when a persisted or rewound battle
// is resumed.
func (e *Engine) SetRound(n int) {
	if n < 1 {
		n = 1
	}
	e.round = n
}

// Registry exposes the injected registry for collaborators (service layer,
// scripts) that need card or mechanic lookups.
func (e *Engine) Registry() *Registry { return e.reg }

// rollRange rolls uniformly in [min, max]. A degenerate range returns min.
func (e *Engine) rollRange(min, max int) int {
	if max <= min {
		return min
	}
	return e.rng.Intn(max-min+1) + min
}

// RecalculateStats rebuilds the unit's modifier table and resource maxima
// from attributes and active mechanics. It is idempotent: calling it twice
// without a state change yields identical results, because the table is
// rebuilt from scratch every pass.
func (e *Engine) RecalculateStats(u *game.Unit) {
	mods := map[string]game.Modifier{}
	for _, am := range e.activeMechanics(u) {
		am.mech.OnCalculateStats(u, mods, am.stacks)
	}
	u.Modifiers = mods

	baseHP := 20 + u.Attribute(game.AttrEndurance)*5 + u.Level*2
	baseSP := 10 + u.Level
	baseStagger := 10 + u.Attribute(game.AttrEndurance)*2

	u.MaxHP = u.StatBonus(game.ModHPMax, baseHP)
	u.MaxSP = u.StatBonus(game.ModSPMax, baseSP)
	u.MaxStagger = u.StatBonus(game.ModStaggerMax, baseStagger)

	if u.CurrentHP > u.MaxHP {
		u.CurrentHP = u.MaxHP
	}
	if u.CurrentSP > u.MaxSP {
		u.CurrentSP = u.MaxSP
	}
	if u.CurrentStagger > u.MaxStagger {
		u.CurrentStagger = u.MaxStagger
	}
}

// InitCombat readies units for a fresh battle: full pools, recalculated
// stats, cleared transient combat state.
func (e *Engine) InitCombat(units []*game.Unit) {
	for _, u := range units {
		u.ClearCombatState()
		e.RecalculateStats(u)
		u.CurrentHP = u.MaxHP
		u.CurrentSP = u.MaxSP
		u.CurrentStagger = u.MaxStagger
	}
	for _, u := range units {
		e.triggerCombatStart(u)
	}
	e.round = 1
}

// EndCombat fires the combat-end triggers on every surviving unit.
func (e *Engine) EndCombat(units []*game.Unit) {
	for _, u := range units {
		e.triggerCombatEnd(u)
	}
}
