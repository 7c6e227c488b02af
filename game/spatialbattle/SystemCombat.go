package spatialbattle

import (
	"math"

	"github.com/battlearena/battlearena/common/utils/number"
	"github.com/battlearena/battlearena/game/common"
)

// systemCombat resolves at most one attack per agent per tick: the
// target must still be alive, distinct from the attacker, inside the
// range of a usable ability, and the attack cooldown must have elapsed.
// Invalid-state attacks are silently rejected, no event.
func systemCombat(battle *SpatialBattle) {
	for _, attacker := range battle.livingCreatures() {
		if !attacker.lifecycle.Alive() {
			// may have died earlier this tick
			continue
		}

		targetID, ok := attacker.combat.Target()
		if !ok || targetID == attacker.entity.GetID() {
			continue
		}

		defender, ok := battle.creatureByID(targetID)
		if !ok || !defender.lifecycle.Alive() {
			continue
		}

		distance := attacker.body.GetPosition().Distance(defender.body.GetPosition())

		ability, ok := usableAbility(attacker.ref.Creature, distance)
		if !ok {
			continue
		}

		if !attacker.combat.CooldownElapsed(battle.clock, ability.Cooldown()) {
			continue
		}

		attacker.combat.MarkAttack(battle.clock)

		battle.emit(Event{
			Type:      EVENT_ABILITY_USE,
			Actor:     attacker.entity.GetID(),
			ActorRef:  attacker.ref.PublicID,
			Target:    targetID,
			TargetRef: defender.ref.PublicID,
			Summary:   attacker.ref.Creature.Name() + " used " + ability.Name(),
		})

		if battle.rng.Float64() >= battle.config.HitChance {
			battle.emit(Event{
				Type:      EVENT_MISS,
				Actor:     attacker.entity.GetID(),
				ActorRef:  attacker.ref.PublicID,
				Target:    targetID,
				TargetRef: defender.ref.PublicID,
				Summary:   ability.Name() + " missed",
			})
			continue
		}

		damage, critical := battle.rollDamage(attacker.ref.Creature, defender.ref.Creature, ability)

		if critical {
			battle.emit(Event{
				Type:      EVENT_CRITICAL_HIT,
				Actor:     attacker.entity.GetID(),
				ActorRef:  attacker.ref.PublicID,
				Target:    targetID,
				TargetRef: defender.ref.PublicID,
				Summary:   "critical hit",
			})
		}

		actual := defender.ref.Creature.TakeDamage(damage)

		battle.emit(Event{
			Type:      EVENT_DAMAGE_DEALT,
			Actor:     attacker.entity.GetID(),
			ActorRef:  attacker.ref.PublicID,
			Target:    targetID,
			TargetRef: defender.ref.PublicID,
			Amount:    actual,
			Summary:   ability.Name() + " dealt " + number.FloatToStr(actual, 1) + " damage",
		})

		if defender.ref.Creature.HP() <= 0 {
			defender.lifecycle.SetDeath(battle.ticknum, DEATH_COMBAT)

			battle.emit(Event{
				Type:      EVENT_CREATURE_DEATH,
				Actor:     defender.entity.GetID(),
				ActorRef:  defender.ref.PublicID,
				Target:    attacker.entity.GetID(),
				TargetRef: attacker.ref.PublicID,
				Summary:   defender.ref.Creature.Name() + " was slain by " + attacker.ref.Creature.Name(),
			})
		}
	}
}

// usableAbility picks the first ability that is both available and in
// range; ability order is the creature's own priority.
func usableAbility(creature common.Creature, distance float64) (common.Ability, bool) {
	for _, ability := range creature.Abilities() {
		if ability.CanUse() && ability.Range() >= distance {
			return ability, true
		}
	}
	return nil, false
}

// rollDamage computes
//
//	base(power, attack, defense) x effectiveness x variance x crit
//
// floored at 1 so no multiplier combination can zero out a landed hit.
func (battle *SpatialBattle) rollDamage(attacker common.Creature, defender common.Creature, ability common.Ability) (float64, bool) {
	base := ability.Power() * (attacker.Attack() / math.Max(defender.Defense(), 1)) * 0.5

	effectiveness := battle.typeChart.Effectiveness(ability.TypeTag(), defender.TypeTags())

	spread := battle.config.VarianceMax - battle.config.VarianceMin
	variance := battle.config.VarianceMin + battle.rng.Float64()*spread

	critical := battle.rng.Float64() < battle.config.CritChance
	criticalFactor := 1.0
	if critical {
		criticalFactor = battle.config.CritMultiplier
	}

	damage := base * effectiveness * variance * criticalFactor
	if damage < 1 {
		damage = 1
	}

	return damage, critical
}
