package spatialbattle

import (
	"github.com/battlearena/battlearena/game/common"
)

type stubAbility struct {
	name     string
	power    float64
	reach    float64
	cooldown float64
	tag      string
}

func (a stubAbility) Name() string        { return a.name }
func (a stubAbility) Power() float64      { return a.power }
func (a stubAbility) Range() float64      { return a.reach }
func (a stubAbility) Cooldown() float64   { return a.cooldown }
func (a stubAbility) EnergyCost() float64 { return 0 }
func (a stubAbility) TypeTag() string     { return a.tag }
func (a stubAbility) CanUse() bool        { return true }

type stubCreature struct {
	name    string
	species string

	attack  float64
	defense float64
	speed   float64
	maxHP   float64
	hp      float64

	mature    bool
	caps      []string
	traits    map[string]float64
	abilities []common.Ability
}

func newStubCreature(name string, species string, caps ...string) *stubCreature {
	return &stubCreature{
		name:    name,
		species: species,
		attack:  10,
		defense: 5,
		speed:   3,
		maxHP:   500,
		hp:      500,
		mature:  true,
		caps:    caps,
		abilities: []common.Ability{
			stubAbility{name: "bite", power: 2, reach: 3, cooldown: 1, tag: "normal"},
		},
	}
}

func (c *stubCreature) Name() string    { return c.name }
func (c *stubCreature) Species() string { return c.species }

func (c *stubCreature) Attack() float64  { return c.attack }
func (c *stubCreature) Defense() float64 { return c.defense }
func (c *stubCreature) Speed() float64   { return c.speed }
func (c *stubCreature) MaxHP() float64   { return c.maxHP }
func (c *stubCreature) HP() float64      { return c.hp }

func (c *stubCreature) TakeDamage(amount float64) float64 {
	if amount < 0 {
		amount = 0
	}
	if amount > c.hp {
		amount = c.hp
	}
	c.hp -= amount
	return amount
}

func (c *stubCreature) Heal(amount float64) float64 {
	if amount < 0 {
		amount = 0
	}
	if c.hp+amount > c.maxHP {
		amount = c.maxHP - c.hp
	}
	c.hp += amount
	return amount
}

func (c *stubCreature) IsMature() bool              { return c.mature }
func (c *stubCreature) TypeTags() []string          { return []string{"normal"} }
func (c *stubCreature) Abilities() []common.Ability { return c.abilities }

func (c *stubCreature) HasTrait(name string) bool {
	_, ok := c.traits[name]
	return ok
}

func (c *stubCreature) TraitModifier(name string) float64 {
	if v, ok := c.traits[name]; ok {
		return v
	}
	return 1.0
}

func (c *stubCreature) CapabilityTags() []string  { return c.caps }
func (c *stubCreature) TickStatusEffects(float64) {}

type stubBreeder struct {
	children int
}

func (b *stubBreeder) Breed(p1 common.Creature, p2 common.Creature, birthTime float64) (common.Creature, bool) {
	b.children++
	return newStubCreature("child", p1.Species()), true
}
