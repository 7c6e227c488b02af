package spatialbattle

import (
	"github.com/bytearena/ecs"

	"github.com/battlearena/battlearena/common/utils/vector"
	"github.com/battlearena/battlearena/game/common"
)

// AddCreature spawns a battle agent for an externally-defined creature.
// The attention machine and the behavior archetype are derived from the
// creature's traits once, here, and persist for the agent's life.
func (battle *SpatialBattle) AddCreature(creature common.Creature, position vector.Vector2) *ecs.Entity {
	position = battle.arena.ClampPosition(position)

	entity := battle.manager.NewEntity()

	maxSpeed := creature.Speed()
	if maxSpeed <= 0 {
		maxSpeed = 1.0
	}

	entity.
		AddComponent(battle.creatureComponent, NewCreatureRef(creature)).
		AddComponent(battle.physicalBodyComponent, NewPhysicalBody(
			position,
			battle.config.CreatureRadius,
			maxSpeed,
			battle.config.Acceleration,
			battle.config.Damping,
		)).
		AddComponent(battle.attentionComponent, NewAttention(
			creature.TraitModifier("persistence"),
			creature.TraitModifier("distractibility"),
		)).
		AddComponent(battle.behaviorComponent, NewBehavior(
			ArchetypeForCapabilities(creature.CapabilityTags()),
			position, // territorial home anchor
		)).
		AddComponent(battle.combatComponent, NewCombat()).
		AddComponent(battle.hungerComponent, NewHunger(
			battle.config.HungerMax,
			battle.config.HungerRate,
			battle.config.HungerSeekBelow,
			battle.config.HungerStopAbove,
		)).
		AddComponent(battle.lifecycleComponent, NewLifecycle(battle.ticknum, battle.clock))

	battle.creatureGrid.Insert(entity.GetID(), position)
	battle.spawned++

	return entity
}
