package engine

import "github.com/librozavisim/lor-simulator/internal/game"

// ScriptFunc is a card/die script handler. Scripts are referenced from
// content by id with free-form float params; unknown ids resolve to no-ops
// at resolution time, never errors.
type ScriptFunc func(e *Engine, ctx *RollContext, params map[string]float64)

// Registry is the immutable id->instance lookup table for mechanics, card
// definitions, weapons and script handlers. It is built once at process
// start and injected into the engine, replacing any notion of module-level
// globals. Lookups tolerate unknown ids: a missing mechanic behaves like
// "no such ability equipped".
type Registry struct {
	statuses       map[string]Mechanic
	passives       map[string]Mechanic
	talents        map[string]Mechanic
	augmentations  map[string]Mechanic
	weaponPassives map[string]Mechanic
	weapons        map[string]game.Weapon
	cards          map[string]*game.Card
	scripts        map[string]ScriptFunc
}

// RegistryBuilder accumulates registrations before the immutable build.
type RegistryBuilder struct {
	reg *Registry
}

// NewRegistryBuilder starts an empty registry.
func NewRegistryBuilder() *RegistryBuilder {
	return &RegistryBuilder{reg: &Registry{
		statuses:       map[string]Mechanic{},
		passives:       map[string]Mechanic{},
		talents:        map[string]Mechanic{},
		augmentations:  map[string]Mechanic{},
		weaponPassives: map[string]Mechanic{},
		weapons:        map[string]game.Weapon{},
		cards:          map[string]*game.Card{},
		scripts:        map[string]ScriptFunc{},
	}}
}

func (b *RegistryBuilder) AddStatus(m Mechanic) *RegistryBuilder {
	b.reg.statuses[m.ID()] = m
	return b
}

func (b *RegistryBuilder) AddPassive(m Mechanic) *RegistryBuilder {
	b.reg.passives[m.ID()] = m
	return b
}

func (b *RegistryBuilder) AddTalent(m Mechanic) *RegistryBuilder {
	b.reg.talents[m.ID()] = m
	return b
}

func (b *RegistryBuilder) AddAugmentation(m Mechanic) *RegistryBuilder {
	b.reg.augmentations[m.ID()] = m
	return b
}

func (b *RegistryBuilder) AddWeaponPassive(m Mechanic) *RegistryBuilder {
	b.reg.weaponPassives[m.ID()] = m
	return b
}

func (b *RegistryBuilder) AddWeapon(w game.Weapon) *RegistryBuilder {
	b.reg.weapons[w.ID] = w
	return b
}

func (b *RegistryBuilder) AddCard(c *game.Card) *RegistryBuilder {
	b.reg.cards[c.ID] = c
	return b
}

func (b *RegistryBuilder) AddScript(id string, fn ScriptFunc) *RegistryBuilder {
	b.reg.scripts[id] = fn
	return b
}

// Build finalizes the registry. The builder must not be reused afterwards.
func (b *RegistryBuilder) Build() *Registry {
	reg := b.reg
	b.reg = nil
	return reg
}

// Status looks up a status mechanic by id.
func (r *Registry) Status(id string) (Mechanic, bool) {
	m, ok := r.statuses[id]
	return m, ok
}

// Weapon looks up a weapon definition by id.
func (r *Registry) Weapon(id string) (game.Weapon, bool) {
	w, ok := r.weapons[id]
	return w, ok
}

// Card returns the library original for inspection.
func (r *Registry) Card(id string) (*game.Card, bool) {
	c, ok := r.cards[id]
	return c, ok
}

// CardIDs lists every registered card id.
func (r *Registry) CardIDs() []string {
	ids := make([]string, 0, len(r.cards))
	for id := range r.cards {
		ids = append(ids, id)
	}
	return ids
}

// FetchCard returns a deep clone ready for play, so in-combat mutation
// never corrupts the library. Unknown ids return nil (treated as an empty
// slot by the scheduler).
func (r *Registry) FetchCard(id string) *game.Card {
	c, ok := r.cards[id]
	if !ok {
		return nil
	}
	return c.Clone()
}

// Script resolves a script handler; unknown ids return nil.
func (r *Registry) Script(id string) ScriptFunc {
	return r.scripts[id]
}

// IsPoolStatus reports whether a status id merges stacks into one entry.
// Unknown statuses default to dated stacking.
func (r *Registry) IsPoolStatus(id string) bool {
	m, ok := r.statuses[id]
	return ok && m.IsPool()
}
