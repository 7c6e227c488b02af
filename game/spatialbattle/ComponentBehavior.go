package spatialbattle

import (
	"math/rand"

	"github.com/bytearena/ecs"

	"github.com/battlearena/battlearena/common/utils/vector"
)

type Archetype uint8

const (
	ARCHETYPE_WANDERER Archetype = iota
	ARCHETYPE_AGGRESSIVE
	ARCHETYPE_DEFENSIVE
	ARCHETYPE_TERRITORIAL
	ARCHETYPE_CAUTIOUS
	ARCHETYPE_RECKLESS
	ARCHETYPE_SUPPORTIVE
	ARCHETYPE_HUNTER
	ARCHETYPE_FORAGER
)

func (a Archetype) String() string {
	switch a {
	case ARCHETYPE_AGGRESSIVE:
		return "aggressive"
	case ARCHETYPE_DEFENSIVE:
		return "defensive"
	case ARCHETYPE_TERRITORIAL:
		return "territorial"
	case ARCHETYPE_CAUTIOUS:
		return "cautious"
	case ARCHETYPE_RECKLESS:
		return "reckless"
	case ARCHETYPE_SUPPORTIVE:
		return "supportive"
	case ARCHETYPE_HUNTER:
		return "hunter"
	case ARCHETYPE_FORAGER:
		return "forager"
	}
	return "wanderer"
}

// capabilityArchetypes maps the explicit capability tags carried by
// traits to archetypes. Selection is a table lookup, never a substring
// search; the first matching tag in capabilityOrder wins.
var capabilityArchetypes = map[string]Archetype{
	"aggressive":  ARCHETYPE_AGGRESSIVE,
	"defensive":   ARCHETYPE_DEFENSIVE,
	"territorial": ARCHETYPE_TERRITORIAL,
	"cautious":    ARCHETYPE_CAUTIOUS,
	"reckless":    ARCHETYPE_RECKLESS,
	"supportive":  ARCHETYPE_SUPPORTIVE,
	"hunter":      ARCHETYPE_HUNTER,
	"forager":     ARCHETYPE_FORAGER,
	"wanderer":    ARCHETYPE_WANDERER,
}

var capabilityOrder = []string{
	"hunter",
	"aggressive",
	"reckless",
	"territorial",
	"defensive",
	"cautious",
	"supportive",
	"forager",
	"wanderer",
}

func ArchetypeForCapabilities(tags []string) Archetype {
	present := make(map[string]bool, len(tags))
	for _, tag := range tags {
		present[tag] = true
	}

	for _, capability := range capabilityOrder {
		if present[capability] {
			return capabilityArchetypes[capability]
		}
	}

	return ARCHETYPE_WANDERER
}

// PerceivedAgent is one creature as seen by another.
type PerceivedAgent struct {
	ID       ecs.EntityID
	Position vector.Vector2
	Distance float64
	HP       float64
	MaxHP    float64
}

// PerceivedResource is one resource as seen by a creature.
type PerceivedResource struct {
	ID       ecs.EntityID
	Position vector.Vector2
	Distance float64
}

// Perception is everything a creature can see this tick. The querying
// agent itself is never part of it, which is what guarantees the
// no-self-targeting invariant.
type Perception struct {
	Position  vector.Vector2
	HP        float64
	MaxHP     float64
	Allies    []PerceivedAgent
	Enemies   []PerceivedAgent
	Hazards   []Hazard
	Resources []PerceivedResource
}

// Decision is the output of a behavior policy: an optional target and a
// movement goal.
type Decision struct {
	Target    ecs.EntityID
	HasTarget bool
	Goal      vector.Vector2
	Speed     float64 // 0 means full speed
	Stopping  float64
}

func (battle *SpatialBattle) CastBehavior(data interface{}) *Behavior {
	return data.(*Behavior)
}

// Behavior holds an archetype policy plus the minimal state some
// archetypes carry: the wanderer's current waypoint and the
// territorial's fixed home anchor.
type Behavior struct {
	archetype Archetype

	waypoint    vector.Vector2
	hasWaypoint bool

	home vector.Vector2

	pendingOrder Decision
	hasOrder     bool
}

// PushOrder stages this tick's movement order for the movement system.
func (b *Behavior) PushOrder(order Decision) {
	b.pendingOrder = order
	b.hasOrder = true
}

// PopOrder consumes the staged order.
func (b *Behavior) PopOrder() (Decision, bool) {
	if !b.hasOrder {
		return Decision{}, false
	}
	b.hasOrder = false
	return b.pendingOrder, true
}

func NewBehavior(archetype Archetype, home vector.Vector2) *Behavior {
	return &Behavior{
		archetype: archetype,
		home:      home,
	}
}

func (b Behavior) Archetype() Archetype {
	return b.archetype
}

func (b Behavior) Home() vector.Vector2 {
	return b.home
}

const (
	wanderArrivalDistance = 2.0
	threatRadius          = 12.0
	territoryRadius       = 15.0
	cautiousHealthFloor   = 0.5
)

// Decide maps perception to a target and a movement goal for this
// archetype. The wanderer waypoint is the only mutation.
func (b *Behavior) Decide(perception Perception, arena *Arena, rng *rand.Rand) Decision {
	switch b.archetype {

	case ARCHETYPE_AGGRESSIVE:
		if enemy, ok := nearestAgent(perception.Enemies); ok {
			return Decision{Target: enemy.ID, HasTarget: true, Goal: enemy.Position}
		}

	case ARCHETYPE_RECKLESS:
		// same pursuit as aggressive, but never tempered by own health
		if enemy, ok := nearestAgent(perception.Enemies); ok {
			return Decision{Target: enemy.ID, HasTarget: true, Goal: enemy.Position, Speed: 0}
		}

	case ARCHETYPE_HUNTER:
		if prey, ok := weakestAgent(perception.Enemies); ok {
			return Decision{Target: prey.ID, HasTarget: true, Goal: prey.Position}
		}

	case ARCHETYPE_DEFENSIVE:
		if enemy, ok := nearestAgent(perception.Enemies); ok {
			if enemy.Distance < threatRadius {
				// fight back while giving ground
				retreat := perception.Position.Add(perception.Position.Sub(enemy.Position).SetMag(threatRadius))
				return Decision{Target: enemy.ID, HasTarget: true, Goal: arena.ClampPosition(retreat)}
			}
		}

	case ARCHETYPE_CAUTIOUS:
		enemy, ok := nearestAgent(perception.Enemies)
		if ok {
			healthy := perception.MaxHP > 0 && perception.HP/perception.MaxHP >= cautiousHealthFloor
			weaker := enemy.HP < perception.HP
			if healthy && weaker {
				return Decision{Target: enemy.ID, HasTarget: true, Goal: enemy.Position}
			}
			away := perception.Position.Add(perception.Position.Sub(enemy.Position).SetMag(threatRadius))
			return Decision{Goal: arena.ClampPosition(away)}
		}

	case ARCHETYPE_TERRITORIAL:
		if enemy, ok := nearestAgent(perception.Enemies); ok {
			if enemy.Position.Distance(b.home) < territoryRadius {
				return Decision{Target: enemy.ID, HasTarget: true, Goal: enemy.Position}
			}
		}
		if perception.Position.Distance(b.home) > wanderArrivalDistance {
			return Decision{Goal: b.home, Stopping: wanderArrivalDistance}
		}
		return Decision{Goal: perception.Position}

	case ARCHETYPE_SUPPORTIVE:
		if enemy, ok := nearestAgent(perception.Enemies); ok && enemy.Distance < threatRadius {
			return Decision{Target: enemy.ID, HasTarget: true, Goal: enemy.Position}
		}
		if ally, ok := weakestAgent(perception.Allies); ok {
			return Decision{Goal: ally.Position, Stopping: wanderArrivalDistance}
		}

	case ARCHETYPE_FORAGER:
		if resource, ok := nearestResource(perception.Resources); ok {
			return Decision{Goal: resource.Position}
		}
	}

	return b.wander(perception.Position, arena, rng)
}

// wander steers to a waypoint, re-rolled on arrival.
func (b *Behavior) wander(position vector.Vector2, arena *Arena, rng *rand.Rand) Decision {
	if !b.hasWaypoint || position.Distance(b.waypoint) < wanderArrivalDistance {
		b.waypoint = vector.MakeVector2(
			rng.Float64()*arena.Width(),
			rng.Float64()*arena.Height(),
		)
		b.hasWaypoint = true
	}

	return Decision{Goal: b.waypoint, Stopping: wanderArrivalDistance}
}

func nearestAgent(agents []PerceivedAgent) (PerceivedAgent, bool) {
	if len(agents) == 0 {
		return PerceivedAgent{}, false
	}

	best := agents[0]
	for _, agent := range agents[1:] {
		if agent.Distance < best.Distance {
			best = agent
		}
	}
	return best, true
}

func weakestAgent(agents []PerceivedAgent) (PerceivedAgent, bool) {
	if len(agents) == 0 {
		return PerceivedAgent{}, false
	}

	best := agents[0]
	for _, agent := range agents[1:] {
		if agent.HP < best.HP {
			best = agent
		}
	}
	return best, true
}

func nearestResource(resources []PerceivedResource) (PerceivedResource, bool) {
	if len(resources) == 0 {
		return PerceivedResource{}, false
	}

	best := resources[0]
	for _, resource := range resources[1:] {
		if resource.Distance < best.Distance {
			best = resource
		}
	}
	return best, true
}
