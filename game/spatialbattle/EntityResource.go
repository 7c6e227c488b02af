package spatialbattle

import (
	"github.com/bytearena/ecs"

	"github.com/battlearena/battlearena/common/utils/vector"
)

// spawnResource creates a resource entity and registers it with the
// arena, which keeps its list and grid in lockstep.
func (battle *SpatialBattle) spawnResource(position vector.Vector2) *ecs.Entity {
	position = battle.arena.ClampPosition(position)

	entity := battle.manager.NewEntity()
	resource := NewResource(position, battle.config.ResourceNutrition)

	entity.AddComponent(battle.resourceComponent, resource)
	battle.arena.AddResource(entity.GetID(), position)

	battle.emit(Event{
		Type:     EVENT_RESOURCE_SPAWNED,
		Actor:    entity.GetID(),
		ActorRef: resource.PublicID,
		Amount:   resource.Nutrition,
		Summary:  "resource spawned",
	})

	return entity
}

// consumeResource removes a resource from the arena and disposes its
// entity; false when the id went stale within the tick.
func (battle *SpatialBattle) consumeResource(id ecs.EntityID) (*Resource, bool) {
	qr := battle.getEntity(id, battle.resourceComponent)
	if qr == nil {
		return nil, false
	}

	if !battle.arena.RemoveResource(id) {
		return nil, false
	}

	resource := battle.CastResource(qr.Components[battle.resourceComponent])
	battle.manager.DisposeEntities(qr.Entity)

	return resource, true
}
