package spatialbattle

import (
	"github.com/bytearena/ecs"

	"github.com/battlearena/battlearena/common/utils/vector"
)

// systemBreeding sweeps for eligible pairs on a fixed cooldown, not per
// tick. A pair must be same-species, both mature, healthy, well-fed and
// within breeding radius; the local density throttle keeps a fed corner
// of the arena from exploding into a crowd.
func systemBreeding(battle *SpatialBattle) {
	if battle.breeder == nil {
		return
	}

	if battle.clock-battle.lastBreedSweep < battle.config.BreedingInterval {
		return
	}
	battle.lastBreedSweep = battle.clock

	bred := make(map[ecs.EntityID]bool)

	for _, agent := range battle.livingCreatures() {
		selfID := agent.entity.GetID()

		if bred[selfID] || !battle.breedingEligible(agent) {
			continue
		}

		pos := agent.body.GetPosition()

		for _, id := range battle.creatureGrid.QueryRadius(pos, battle.config.BreedingRadius, true, selfID) {
			if bred[id] {
				continue
			}

			partner, ok := battle.creatureByID(id)
			if !ok || !battle.breedingEligible(partner) {
				continue
			}
			if partner.ref.Creature.Species() != agent.ref.Creature.Species() {
				continue
			}

			midpoint := pos.Add(partner.body.GetPosition()).MultScalar(0.5)

			crowd := battle.creatureGrid.QueryCountInRadius(midpoint, battle.config.BreedingDensityRadius)
			if crowd >= battle.config.BreedingDensityLimit {
				continue
			}

			offspring, born := battle.breeder.Breed(agent.ref.Creature, partner.ref.Creature, battle.clock)
			if !born {
				continue
			}

			jitter := vector.MakeRandomVector2(battle.rng).MultScalar(battle.rng.Float64() * battle.config.BreedingJitter)
			child := battle.AddCreature(offspring, midpoint.Add(jitter))

			childRef, _ := battle.creatureByID(child.GetID())

			battle.emit(Event{
				Type:      EVENT_CREATURE_BIRTH,
				Actor:     child.GetID(),
				ActorRef:  childRef.ref.PublicID,
				Target:    selfID,
				TargetRef: agent.ref.PublicID,
				Summary:   offspring.Name() + " was born",
			})

			bred[selfID] = true
			bred[id] = true
			break
		}
	}
}

func (battle *SpatialBattle) breedingEligible(agent creatureAspects) bool {
	creature := agent.ref.Creature

	if !agent.lifecycle.Alive() || !creature.IsMature() {
		return false
	}

	if creature.MaxHP() <= 0 || creature.HP()/creature.MaxHP() < battle.config.BreedingHealthyRatio {
		return false
	}

	return agent.hunger.WellFed()
}
