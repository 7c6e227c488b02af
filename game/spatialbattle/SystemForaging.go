package spatialbattle

// systemForaging lets each agent consume at most one resource per tick.
// Presence is re-checked through consumeResource, so two agents racing
// for the same resource within a tick resolve to one eater and one
// silent no-op.
func systemForaging(battle *SpatialBattle) {
	for _, agent := range battle.livingCreatures() {
		pos := agent.body.GetPosition()

		candidates := battle.arena.ResourcesWithin(pos, battle.config.CollectRadius)
		if len(candidates) == 0 {
			continue
		}

		resource, ok := battle.consumeResource(candidates[0])
		if !ok {
			continue
		}

		agent.hunger.Feed(resource.Nutrition)

		battle.emit(Event{
			Type:      EVENT_RESOURCE_COLLECTED,
			Actor:     agent.entity.GetID(),
			ActorRef:  agent.ref.PublicID,
			TargetRef: resource.PublicID,
			Amount:    resource.Nutrition,
			Summary:   agent.ref.Creature.Name() + " ate a resource",
		})
	}
}
