// Package spatialbattle is a tick-driven simulation of autonomous
// creatures in a bounded 2D arena: they move under acceleration-limited
// steering, forage, fight and breed. One external driver calls
// Update(dt); there is no internal concurrency, and parallelism across
// independent battles is safe because battles share nothing.
package spatialbattle

import (
	"math/rand"

	"github.com/bytearena/ecs"
	uuid "github.com/satori/go.uuid"

	"github.com/battlearena/battlearena/common/utils"
	"github.com/battlearena/battlearena/common/utils/vector"
	"github.com/battlearena/battlearena/game/common"
)

type SpatialBattle struct {
	config  Config
	manager *ecs.Manager

	arena        *Arena
	creatureGrid *SpatialHashGrid
	rng          *rand.Rand

	typeChart common.TypeChart
	breeder   common.Breeder

	ticknum int
	clock   float64
	spawned int
	over    bool
	winner  uuid.UUID
	hasWin  bool

	resourceCarry  float64
	lastBreedSweep float64

	log       *EventLog
	callbacks []EventCallback

	creatureComponent     *ecs.Component
	physicalBodyComponent *ecs.Component
	attentionComponent    *ecs.Component
	behaviorComponent     *ecs.Component
	combatComponent       *ecs.Component
	hungerComponent       *ecs.Component
	lifecycleComponent    *ecs.Component
	resourceComponent     *ecs.Component

	creaturesView *ecs.View
	resourcesView *ecs.View
}

// NewSpatialBattle validates config and builds an empty battle. The
// breeder may be nil (no reproduction); a nil typeChart falls back to
// neutral effectiveness.
func NewSpatialBattle(config Config, typeChart common.TypeChart, breeder common.Breeder) (*SpatialBattle, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	arena, err := NewArena(config.ArenaWidth, config.ArenaHeight, config.Hazards)
	if err != nil {
		return nil, err
	}

	if typeChart == nil {
		typeChart = common.NeutralTypeChart{}
	}

	cellSize := config.CellSize
	if cellSize <= 0 {
		cellSize = CellSizeForArena(config.ArenaWidth, config.ArenaHeight)
	}

	manager := ecs.NewManager()

	battle := &SpatialBattle{
		config:       config,
		manager:      manager,
		arena:        arena,
		creatureGrid: NewSpatialHashGrid(cellSize),
		rng:          rand.New(rand.NewSource(config.Seed)),
		typeChart:    typeChart,
		breeder:      breeder,
		log:          NewEventLog(),

		creatureComponent:     manager.NewComponent(),
		physicalBodyComponent: manager.NewComponent(),
		attentionComponent:    manager.NewComponent(),
		behaviorComponent:     manager.NewComponent(),
		combatComponent:       manager.NewComponent(),
		hungerComponent:       manager.NewComponent(),
		lifecycleComponent:    manager.NewComponent(),
		resourceComponent:     manager.NewComponent(),
	}

	battle.creaturesView = manager.CreateView(
		battle.creatureComponent,
		battle.physicalBodyComponent,
		battle.attentionComponent,
		battle.behaviorComponent,
		battle.combatComponent,
		battle.hungerComponent,
		battle.lifecycleComponent,
	)

	battle.resourcesView = manager.CreateView(
		battle.resourceComponent,
	)

	for i := 0; i < config.InitialResources; i++ {
		battle.spawnResource(battle.randomPoint())
	}

	battle.emit(Event{Type: EVENT_BATTLE_START, Summary: "battle started"})

	return battle, nil
}

func (battle *SpatialBattle) getEntity(id ecs.EntityID, tagelements ...interface{}) *ecs.QueryResult {
	return battle.manager.GetEntityByID(id, tagelements...)
}

func (battle *SpatialBattle) Arena() *Arena {
	return battle.arena
}

func (battle *SpatialBattle) Clock() float64 {
	return battle.clock
}

func (battle *SpatialBattle) Tick() int {
	return battle.ticknum
}

func (battle *SpatialBattle) IsOver() bool {
	return battle.over
}

// Winner returns the public id of the sole survivor, if the battle ended
// with one.
func (battle *SpatialBattle) Winner() (uuid.UUID, bool) {
	return battle.winner, battle.hasWin
}

func (battle *SpatialBattle) Events() []Event {
	return battle.log.Events()
}

func (battle *SpatialBattle) EventsSince(tick int) []Event {
	return battle.log.EventsSince(tick)
}

func (battle *SpatialBattle) CountEvents(t EventType) int {
	return battle.log.CountByType(t)
}

func (battle *SpatialBattle) randomPoint() vector.Vector2 {
	return vector.MakeVector2(
		battle.rng.Float64()*battle.arena.Width(),
		battle.rng.Float64()*battle.arena.Height(),
	)
}

// creatureAspects bundles every component of one creature entity.
type creatureAspects struct {
	entity    *ecs.Entity
	ref       *CreatureRef
	body      *PhysicalBody
	attention *Attention
	behavior  *Behavior
	combat    *Combat
	hunger    *Hunger
	lifecycle *Lifecycle
}

func (battle *SpatialBattle) aspectsOf(qr *ecs.QueryResult) creatureAspects {
	return creatureAspects{
		entity:    qr.Entity,
		ref:       battle.CastCreature(qr.Components[battle.creatureComponent]),
		body:      battle.CastPhysicalBody(qr.Components[battle.physicalBodyComponent]),
		attention: battle.CastAttention(qr.Components[battle.attentionComponent]),
		behavior:  battle.CastBehavior(qr.Components[battle.behaviorComponent]),
		combat:    battle.CastCombat(qr.Components[battle.combatComponent]),
		hunger:    battle.CastHunger(qr.Components[battle.hungerComponent]),
		lifecycle: battle.CastLifecycle(qr.Components[battle.lifecycleComponent]),
	}
}

// creatureByID resolves a creature entity; false when the id is stale,
// disposed or not a creature.
func (battle *SpatialBattle) creatureByID(id ecs.EntityID) (creatureAspects, bool) {
	qr := battle.getEntity(id,
		battle.creatureComponent,
		battle.physicalBodyComponent,
		battle.attentionComponent,
		battle.behaviorComponent,
		battle.combatComponent,
		battle.hungerComponent,
		battle.lifecycleComponent,
	)
	if qr == nil {
		return creatureAspects{}, false
	}
	return battle.aspectsOf(qr), true
}

func (battle *SpatialBattle) livingCreatures() []creatureAspects {
	result := make([]creatureAspects, 0, 16)
	for _, qr := range battle.creaturesView.Get() {
		aspects := battle.aspectsOf(qr)
		if aspects.lifecycle.Alive() {
			result = append(result, aspects)
		}
	}
	return result
}

// Update advances the simulation by dt seconds. Non-positive dt is
// rejected at the boundary; a finished battle stays finished. A tick
// always runs to completion.
func (battle *SpatialBattle) Update(dt float64) {
	if dt <= 0 || battle.over {
		return
	}

	battle.ticknum++
	battle.clock += dt

	if battle.checkBattleOver() {
		return
	}

	systemResources(battle, dt)
	systemHunger(battle, dt)
	systemDecide(battle)
	systemMovement(battle, dt)
	systemForaging(battle)
	systemCombat(battle)
	systemBreeding(battle)
	systemStatus(battle, dt)
	systemDeath(battle)
}

func (battle *SpatialBattle) checkBattleOver() bool {
	// a battle needs contestants to be winnable; a lone-agent sandbox
	// (foraging, exploration) just keeps running
	if battle.spawned < 2 {
		return false
	}

	living := battle.livingCreatures()
	if len(living) > 1 {
		return false
	}

	battle.over = true

	summary := "battle over: no survivors"
	event := Event{Type: EVENT_BATTLE_OVER}

	if len(living) == 1 {
		battle.winner = living[0].ref.PublicID
		battle.hasWin = true
		event.Actor = living[0].entity.GetID()
		event.ActorRef = living[0].ref.PublicID
		summary = "battle over: " + living[0].ref.Creature.Name() + " survives"
	}

	event.Summary = summary
	battle.emit(event)

	utils.Debug("spatialbattle", summary, utils.Context{
		"tick":  battle.ticknum,
		"clock": battle.clock,
	})

	return true
}
