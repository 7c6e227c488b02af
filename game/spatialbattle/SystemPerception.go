package spatialbattle

// systemPerception support: everything one creature can see this tick,
// assembled from the creature grid, the arena's resource grid and the
// hazard index. The creature itself is excluded at the query level.
func (battle *SpatialBattle) perceive(agent creatureAspects) Perception {
	self := agent.entity.GetID()
	pos := agent.body.GetPosition()
	vision := battle.config.VisionRadius

	perception := Perception{
		Position: pos,
		HP:       agent.ref.Creature.HP(),
		MaxHP:    agent.ref.Creature.MaxHP(),
		Hazards:  battle.arena.HazardsWithin(pos, vision),
	}

	for _, id := range battle.creatureGrid.QueryRadius(pos, vision, true, self) {
		other, ok := battle.creatureByID(id)
		if !ok || !other.lifecycle.Alive() {
			continue
		}

		otherPos := other.body.GetPosition()
		perceived := PerceivedAgent{
			ID:       id,
			Position: otherPos,
			Distance: pos.Distance(otherPos),
			HP:       other.ref.Creature.HP(),
			MaxHP:    other.ref.Creature.MaxHP(),
		}

		if other.ref.Creature.Species() == agent.ref.Creature.Species() {
			perception.Allies = append(perception.Allies, perceived)
		} else {
			perception.Enemies = append(perception.Enemies, perceived)
		}
	}

	for _, id := range battle.arena.ResourcesWithin(pos, vision) {
		resourcePos, ok := battle.arena.ResourcePosition(id)
		if !ok {
			continue
		}
		perception.Resources = append(perception.Resources, PerceivedResource{
			ID:       id,
			Position: resourcePos,
			Distance: pos.Distance(resourcePos),
		})
	}

	return perception
}

const fleeingHealthRatio = 0.35

// stimuli turns a perception into the pressure map the attention machine
// arbitrates over. Urgencies grow with proximity and need.
func (battle *SpatialBattle) stimuli(agent creatureAspects, perception Perception) map[FocusKind]Stimulus {
	stimuli := map[FocusKind]Stimulus{
		FOCUS_EXPLORING: {Urgency: 1.0},
	}

	vision := battle.config.VisionRadius

	if enemy, ok := nearestAgent(perception.Enemies); ok {
		urgency := 1.0 + (1.0 - enemy.Distance/vision)

		lowHealth := perception.MaxHP > 0 && perception.HP/perception.MaxHP < fleeingHealthRatio
		if lowHealth {
			stimuli[FOCUS_FLEEING] = Stimulus{Urgency: urgency, Source: enemy.ID, Point: enemy.Position}
		} else {
			stimuli[FOCUS_COMBAT] = Stimulus{Urgency: urgency, Source: enemy.ID, Point: enemy.Position}
		}
	}

	if agent.hunger.Seeking() {
		if resource, ok := nearestResource(perception.Resources); ok {
			urgency := 1.0 + (1.0 - agent.hunger.Level()/agent.hunger.Max())
			stimuli[FOCUS_FORAGING] = Stimulus{Urgency: urgency, Source: resource.ID, Point: resource.Position}
		}
	}

	if len(perception.Hazards) > 0 {
		nearest := perception.Hazards[0]
		nearestDist := perception.Position.Distance(nearest.Position)
		for _, hazard := range perception.Hazards[1:] {
			if d := perception.Position.Distance(hazard.Position); d < nearestDist {
				nearest = hazard
				nearestDist = d
			}
		}

		danger := nearest.Radius + battle.config.VisionRadius*0.25
		if nearestDist < danger {
			stimuli[FOCUS_HAZARD_AVOIDANCE] = Stimulus{
				Urgency: 1.0 + (1.0 - nearestDist/danger),
				Point:   nearest.Position,
			}
		}
	}

	if ally, ok := nearestAgent(perception.Allies); ok {
		stimuli[FOCUS_SOCIAL] = Stimulus{Urgency: 1.0, Source: ally.ID, Point: ally.Position}
	}

	return stimuli
}
