package spatialbattle

// systemStatus advances every living creature's timed stat modifiers;
// the effects themselves are defined by the external stats module.
func systemStatus(battle *SpatialBattle, dt float64) {
	for _, agent := range battle.livingCreatures() {
		agent.ref.Creature.TickStatusEffects(dt)
	}
}
