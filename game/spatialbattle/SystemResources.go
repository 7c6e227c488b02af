package spatialbattle

// systemResources spawns resources by accumulating elapsed time against
// the configured rate: one resource per full interval elapsed. The carry
// makes spawning drift-free regardless of dt granularity, unlike
// per-frame probability rolls.
func systemResources(battle *SpatialBattle, dt float64) {
	if battle.config.ResourceSpawnRate <= 0 {
		return
	}

	battle.resourceCarry += dt * battle.config.ResourceSpawnRate

	for battle.resourceCarry >= 1 {
		battle.resourceCarry -= 1
		battle.spawnResource(battle.randomPoint())
	}
}
