package spatialbattle

import (
	"github.com/bytearena/ecs"
)

func (battle *SpatialBattle) CastCombat(data interface{}) *Combat {
	return data.(*Combat)
}

// Combat holds the per-creature combat bookkeeping: the current target
// (a lookup-only reference, never extending the target's lifetime), the
// attack cooldown and the retarget hysteresis timestamps.
type Combat struct {
	target    ecs.EntityID
	hasTarget bool

	lastAttack   float64
	everAttacked bool

	lastRetarget float64
}

func NewCombat() *Combat {
	return &Combat{}
}

func (c Combat) Target() (ecs.EntityID, bool) {
	return c.target, c.hasTarget
}

func (c *Combat) SetTarget(id ecs.EntityID, now float64) {
	c.target = id
	c.hasTarget = true
	c.lastRetarget = now
}

func (c *Combat) ClearTarget() {
	var none ecs.EntityID
	c.target = none
	c.hasTarget = false
}

// CanRetarget reports whether the minimum retarget interval has elapsed.
func (c Combat) CanRetarget(now float64, interval float64) bool {
	if !c.hasTarget {
		return true
	}
	return now-c.lastRetarget >= interval
}

// CooldownElapsed reports whether the attack cooldown is over. A fresh
// combatant may attack immediately.
func (c Combat) CooldownElapsed(now float64, cooldown float64) bool {
	if !c.everAttacked {
		return true
	}
	return now-c.lastAttack >= cooldown
}

func (c *Combat) MarkAttack(now float64) {
	c.lastAttack = now
	c.everAttacked = true
}
