package spatialbattle

// systemMovement pops each agent's staged order, steers with the
// acceleration-limited blend, integrates, contains the body in the arena
// and applies separation plus boundary repulsion. The creature grid is
// refreshed last so every query next tick sees settled positions.
func systemMovement(battle *SpatialBattle, dt float64) {
	living := battle.livingCreatures()

	for _, agent := range living {
		if order, ok := agent.behavior.PopOrder(); ok {
			agent.body.MoveTowards(order.Goal, order.Speed, dt, order.Stopping)
		}

		agent.body.Integrate(dt)
		agent.body.SetPosition(battle.arena.ClampPosition(agent.body.GetPosition()))
	}

	// separation runs on settled positions so a pair pushes apart
	// symmetrically
	for _, agent := range living {
		self := agent.entity.GetID()
		pos := agent.body.GetPosition()
		reach := agent.body.GetRadius() * 4

		for _, id := range battle.creatureGrid.QueryRadius(pos, reach, true, self) {
			other, ok := battle.creatureByID(id)
			if !ok || !other.lifecycle.Alive() {
				continue
			}
			agent.body.ApplySeparation(other.body, battle.config.SeparationStrength)
		}

		battle.arena.ApplyBoundaryRepulsion(agent.body, battle.config.BoundaryMargin, battle.config.BoundaryStrength)

		battle.creatureGrid.Update(self, agent.body.GetPosition())
	}
}
