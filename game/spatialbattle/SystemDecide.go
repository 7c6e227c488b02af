package spatialbattle

// systemDecide runs the per-agent decision chain: perceive, arbitrate
// attention, retarget under hysteresis, and stage a movement order for
// the movement system.
func systemDecide(battle *SpatialBattle) {
	for _, agent := range battle.livingCreatures() {
		perception := battle.perceive(agent)

		focus, changed := agent.attention.EvaluateAndUpdate(
			battle.stimuli(agent, perception),
			battle.clock,
			false,
		)
		if changed {
			battle.emit(Event{
				Type:     EVENT_FOCUS_CHANGE,
				Actor:    agent.entity.GetID(),
				ActorRef: agent.ref.PublicID,
				Summary:  agent.ref.Creature.Name() + " now " + focus.String(),
			})
		}

		decision := agent.behavior.Decide(perception, battle.arena, battle.rng)

		battle.applyTargeting(agent, decision)

		agent.behavior.PushOrder(battle.focusOverride(agent, perception, decision))
	}
}

// applyTargeting enforces target retention: keep the current target
// unless it died, or the retarget interval elapsed and the candidate is
// closer by more than the configured improvement ratio.
func (battle *SpatialBattle) applyTargeting(agent creatureAspects, decision Decision) {
	self := agent.entity.GetID()

	if current, ok := agent.combat.Target(); ok {
		target, alive := battle.creatureByID(current)
		if !alive || !target.lifecycle.Alive() || current == self {
			agent.combat.ClearTarget()
		}
	}

	if !decision.HasTarget || decision.Target == self {
		return
	}

	current, ok := agent.combat.Target()
	if !ok {
		agent.combat.SetTarget(decision.Target, battle.clock)
		return
	}

	if current == decision.Target {
		return
	}

	if !agent.combat.CanRetarget(battle.clock, battle.config.RetargetInterval) {
		return
	}

	currentAspects, okCurrent := battle.creatureByID(current)
	candidateAspects, okCandidate := battle.creatureByID(decision.Target)
	if !okCurrent || !okCandidate {
		return
	}

	pos := agent.body.GetPosition()
	currentDist := pos.Distance(currentAspects.body.GetPosition())
	candidateDist := pos.Distance(candidateAspects.body.GetPosition())

	if candidateDist < currentDist*battle.config.RetargetImprovement {
		agent.combat.SetTarget(decision.Target, battle.clock)
	}
}

// focusOverride reshapes the archetype's movement goal according to the
// committed focus. The archetype keeps choosing whom to fight; the focus
// decides what the legs do.
func (battle *SpatialBattle) focusOverride(agent creatureAspects, perception Perception, decision Decision) Decision {
	pos := agent.body.GetPosition()

	switch agent.attention.Focus() {

	case FOCUS_COMBAT:
		if targetID, ok := agent.combat.Target(); ok {
			if target, alive := battle.creatureByID(targetID); alive && target.lifecycle.Alive() {
				return Decision{
					Target:    targetID,
					HasTarget: true,
					Goal:      target.body.GetPosition(),
					Stopping:  battle.engageStopping(agent),
				}
			}
		}

	case FOCUS_FLEEING:
		if enemy, ok := nearestAgent(perception.Enemies); ok {
			away := pos.Add(pos.Sub(enemy.Position).SetMag(battle.config.VisionRadius))
			return Decision{Goal: battle.arena.ClampPosition(away)}
		}

	case FOCUS_FORAGING:
		if resource, ok := nearestResource(perception.Resources); ok {
			return Decision{Goal: resource.Position}
		}

	case FOCUS_HAZARD_AVOIDANCE:
		if point, ok := battle.nearestHazardPoint(perception); ok {
			away := pos.Add(pos.Sub(point.Position).SetMag(point.Radius + battle.config.VisionRadius*0.25))
			return Decision{Goal: battle.arena.ClampPosition(away)}
		}

	case FOCUS_SOCIAL:
		if ally, ok := nearestAgent(perception.Allies); ok {
			return Decision{Goal: ally.Position, Stopping: wanderArrivalDistance}
		}
	}

	return decision
}

// engageStopping keeps an attacker from overshooting its target: stop
// just inside the best available ability range.
func (battle *SpatialBattle) engageStopping(agent creatureAspects) float64 {
	best := 0.0
	for _, ability := range agent.ref.Creature.Abilities() {
		if ability.Range() > best {
			best = ability.Range()
		}
	}

	if best <= 0 {
		return battle.config.CollectRadius
	}

	return best * 0.8
}

func (battle *SpatialBattle) nearestHazardPoint(perception Perception) (Hazard, bool) {
	if len(perception.Hazards) == 0 {
		return Hazard{}, false
	}

	nearest := perception.Hazards[0]
	nearestDist := perception.Position.Distance(nearest.Position)

	for _, hazard := range perception.Hazards[1:] {
		if d := perception.Position.Distance(hazard.Position); d < nearestDist {
			nearest = hazard
			nearestDist = d
		}
	}

	return nearest, true
}
