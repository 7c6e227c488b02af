// Package common declares the boundary between the battle core and its
// external collaborators: creature stats and abilities, genetics, trait
// definitions. The core calls through these interfaces and never defines
// the implementations.
package common

// Creature exposes the stat block, ability set and trait surface of a
// simulated creature. Implementations live outside the core.
//
// Named trait modifiers the core asks for (1.0 when a trait is absent):
//
//	"metabolism"      scales hunger depletion per second
//	"persistence"     scales attention commitment time
//	"distractibility" inversely scales the distraction threshold
type Creature interface {
	Name() string
	Species() string

	Attack() float64
	Defense() float64
	Speed() float64
	MaxHP() float64
	HP() float64

	// TakeDamage applies damage and returns the amount actually dealt.
	TakeDamage(amount float64) float64
	// Heal restores health and returns the amount actually restored.
	Heal(amount float64) float64

	IsMature() bool
	TypeTags() []string
	Abilities() []Ability

	HasTrait(name string) bool
	TraitModifier(name string) float64
	// CapabilityTags are the explicit behavior capabilities carried by the
	// creature's traits, e.g. "hunter", "territorial". The core maps them
	// to a movement archetype by table lookup.
	CapabilityTags() []string

	// TickStatusEffects advances timed stat modifiers by dt seconds.
	TickStatusEffects(dt float64)
}

// Ability is a single usable attack.
type Ability interface {
	Name() string
	Power() float64
	Range() float64
	Cooldown() float64
	EnergyCost() float64
	TypeTag() string

	// CanUse reports whether the ability is currently available
	// (energy, charges); the core adds its own cooldown gating on top.
	CanUse() bool
}

// Breeder produces offspring from two parents. A false return means the
// pairing yielded nothing this time; the core treats that as a no-op.
type Breeder interface {
	Breed(parent1 Creature, parent2 Creature, birthTime float64) (Creature, bool)
}

// TypeChart resolves the damage multiplier for an attack tag against a
// defender's type tags. Implementations should return 1.0 for unknown
// pairings.
type TypeChart interface {
	Effectiveness(attackTag string, defenderTags []string) float64
}

// NeutralTypeChart treats every matchup as 1.0.
type NeutralTypeChart struct{}

func (NeutralTypeChart) Effectiveness(attackTag string, defenderTags []string) float64 {
	return 1.0
}
