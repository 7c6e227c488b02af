package spatialbattle

import "github.com/bytearena/ecs"

// systemDeath disposes creatures marked dead this tick, after all other
// systems ran: events referencing them were already emitted, and the
// grid entry goes with the entity.
func systemDeath(battle *SpatialBattle) {
	var toRemove []*ecs.Entity

	for _, qr := range battle.creaturesView.Get() {
		lifecycle := battle.CastLifecycle(qr.Components[battle.lifecycleComponent])
		if lifecycle.Alive() {
			continue
		}

		battle.creatureGrid.Remove(qr.Entity.GetID())
		toRemove = append(toRemove, qr.Entity)
	}

	if len(toRemove) > 0 {
		battle.manager.DisposeEntities(toRemove...)
	}
}
