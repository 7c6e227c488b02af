package spatialbattle

// systemHunger depletes every living creature's hunger, scaled by its
// metabolic trait modifier. Hunger hitting zero kills independently of
// combat HP.
func systemHunger(battle *SpatialBattle, dt float64) {
	for _, agent := range battle.livingCreatures() {
		agent.hunger.Deplete(dt, agent.ref.Creature.TraitModifier("metabolism"))

		if !agent.hunger.Starved() {
			continue
		}

		agent.lifecycle.SetDeath(battle.ticknum, DEATH_STARVATION)

		battle.emit(Event{
			Type:     EVENT_CREATURE_DEATH,
			Actor:    agent.entity.GetID(),
			ActorRef: agent.ref.PublicID,
			Summary:  agent.ref.Creature.Name() + " starved",
		})
	}
}
