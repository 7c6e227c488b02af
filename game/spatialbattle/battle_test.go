package spatialbattle

import (
	"math"
	"testing"

	notify "github.com/bitly/go-notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/battlearena/battlearena/common/utils/vector"
)

func quietConfig() Config {
	config := DefaultConfig()
	config.InitialResources = 0
	config.ResourceSpawnRate = 0
	config.HungerRate = 0
	return config
}

func TestTwoAggressorsCloseAndFight(t *testing.T) {
	config := quietConfig()
	config.ArenaWidth = 50
	config.ArenaHeight = 50
	config.VisionRadius = 40

	battle, err := NewSpatialBattle(config, nil, nil)
	require.NoError(t, err)

	red := battle.AddCreature(newStubCreature("red", "reds", "aggressive"), vector.MakeVector2(10, 25))
	blue := battle.AddCreature(newStubCreature("blue", "blues", "aggressive"), vector.MakeVector2(40, 25))

	for i := 0; i < 150; i++ {
		battle.Update(0.1)
	}

	assert.GreaterOrEqual(t, battle.CountEvents(EVENT_ABILITY_USE), 1)
	assert.GreaterOrEqual(t,
		battle.CountEvents(EVENT_DAMAGE_DEALT)+battle.CountEvents(EVENT_MISS), 1)

	// both converged to melee range and hold there without orbiting away
	a, ok := battle.creatureByID(red.GetID())
	require.True(t, ok)
	b, ok := battle.creatureByID(blue.GetID())
	require.True(t, ok)

	distance := a.body.GetPosition().Distance(b.body.GetPosition())
	assert.LessOrEqual(t, distance, 4.5)
}

func TestLoneForagerEatsAndKeepsRunning(t *testing.T) {
	config := quietConfig()
	config.ArenaWidth = 50
	config.ArenaHeight = 50
	config.HungerRate = 1

	battle, err := NewSpatialBattle(config, nil, nil)
	require.NoError(t, err)

	entity := battle.AddCreature(newStubCreature("muncher", "grazers", "forager"), vector.MakeVector2(10, 10))
	battle.spawnResource(vector.MakeVector2(11, 10))
	assert.Equal(t, 1, battle.CountEvents(EVENT_RESOURCE_SPAWNED))

	agent, ok := battle.creatureByID(entity.GetID())
	require.True(t, ok)
	agent.hunger.Deplete(80, 1) // level 20, below the seek watermark
	require.True(t, agent.hunger.Seeking())

	battle.Update(0.1)

	assert.Equal(t, 1, battle.CountEvents(EVENT_RESOURCE_COLLECTED))
	assert.Equal(t, 0, battle.Arena().ResourceCount())
	assert.Empty(t, battle.resourcesView.Get(), "the resource entity is disposed, not just unlisted")
	assert.Greater(t, agent.hunger.Level(), 40.0)

	// a single-agent sandbox never declares a winner
	for i := 0; i < 50; i++ {
		battle.Update(0.1)
	}
	assert.False(t, battle.IsOver())
}

func TestLoneCreatureStarvesWithoutEndingTheBattle(t *testing.T) {
	config := quietConfig()
	config.HungerRate = 50

	battle, err := NewSpatialBattle(config, nil, nil)
	require.NoError(t, err)

	battle.AddCreature(newStubCreature("famished", "grazers"), vector.MakeVector2(50, 50))

	for i := 0; i < 40; i++ {
		battle.Update(0.1)
	}

	assert.Equal(t, 1, battle.CountEvents(EVENT_CREATURE_DEATH))
	assert.Empty(t, battle.livingCreatures())
	assert.False(t, battle.IsOver())
}

func TestCreatureNeverTargetsItself(t *testing.T) {
	config := quietConfig()
	config.ArenaWidth = 60
	config.ArenaHeight = 60
	config.VisionRadius = 50

	battle, err := NewSpatialBattle(config, nil, nil)
	require.NoError(t, err)

	battle.AddCreature(newStubCreature("r1", "reds", "aggressive"), vector.MakeVector2(10, 10))
	battle.AddCreature(newStubCreature("r2", "reds", "aggressive"), vector.MakeVector2(20, 10))
	battle.AddCreature(newStubCreature("b1", "blues", "aggressive"), vector.MakeVector2(40, 40))
	battle.AddCreature(newStubCreature("b2", "blues", "hunter"), vector.MakeVector2(50, 40))

	for i := 0; i < 100; i++ {
		battle.Update(0.1)

		for _, agent := range battle.livingCreatures() {
			if target, ok := agent.combat.Target(); ok {
				assert.NotEqual(t, agent.entity.GetID(), target)
			}
		}
	}
}

func TestRetargetHonorsIntervalAndImprovement(t *testing.T) {
	config := quietConfig()
	config.VisionRadius = 50

	battle, err := NewSpatialBattle(config, nil, nil)
	require.NoError(t, err)

	slowStub := func(name string, species string, caps ...string) *stubCreature {
		creature := newStubCreature(name, species, caps...)
		creature.speed = 0.01 // hold positions effectively static
		return creature
	}

	attacker := battle.AddCreature(slowStub("attacker", "alpha", "aggressive"), vector.MakeVector2(50, 50))
	first := battle.AddCreature(slowStub("first", "prey"), vector.MakeVector2(50, 56))
	second := battle.AddCreature(slowStub("second", "prey"), vector.MakeVector2(50, 57))

	battle.Update(0.1)

	agent, ok := battle.creatureByID(attacker.GetID())
	require.True(t, ok)

	target, ok := agent.combat.Target()
	require.True(t, ok)
	require.Equal(t, first.GetID(), target, "initial lock goes to the nearest enemy")

	// teleport the other prey to distance 4, well under the 20%
	// improvement bar against the current distance of 6
	closer, ok := battle.creatureByID(second.GetID())
	require.True(t, ok)
	newPos := vector.MakeVector2(50, 46)
	closer.body.SetPosition(newPos)
	battle.creatureGrid.Update(second.GetID(), newPos)

	switchedAt := -1.0
	for i := 0; i < 40; i++ {
		battle.Update(0.1)

		if target, ok := agent.combat.Target(); ok && target == second.GetID() && switchedAt < 0 {
			switchedAt = battle.Clock()
		}
	}

	require.Greater(t, switchedAt, 0.0, "a clearly better candidate is eventually adopted")
	assert.GreaterOrEqual(t, switchedAt, 2.0, "but never before the retarget interval elapses")

	target, ok = agent.combat.Target()
	require.True(t, ok)
	assert.Equal(t, second.GetID(), target)
}

func TestBattleOverDeclaresSoleSurvivor(t *testing.T) {
	config := quietConfig()
	config.ArenaWidth = 50
	config.ArenaHeight = 50
	config.VisionRadius = 40

	battle, err := NewSpatialBattle(config, nil, nil)
	require.NoError(t, err)

	frail := newStubCreature("frail", "blues", "aggressive")
	frail.hp = 1

	strong := battle.AddCreature(newStubCreature("strong", "reds", "aggressive"), vector.MakeVector2(20, 25))
	battle.AddCreature(frail, vector.MakeVector2(24, 25))

	survivor, ok := battle.creatureByID(strong.GetID())
	require.True(t, ok)
	survivorID := survivor.ref.PublicID

	for i := 0; i < 600 && !battle.IsOver(); i++ {
		battle.Update(0.1)
	}

	require.True(t, battle.IsOver())
	assert.Equal(t, 1, battle.CountEvents(EVENT_BATTLE_OVER))

	winner, hasWinner := battle.Winner()
	require.True(t, hasWinner)
	assert.Equal(t, survivorID, winner)

	// a finished battle is inert
	tick := battle.Tick()
	events := battle.log.Len()
	battle.Update(0.1)
	assert.Equal(t, tick, battle.Tick())
	assert.Equal(t, events, battle.log.Len())
}

func TestSameSeedReplaysTheSameBattle(t *testing.T) {
	run := func() *SpatialBattle {
		config := DefaultConfig()
		config.ArenaWidth = 60
		config.ArenaHeight = 60
		config.Seed = 7
		config.InitialResources = 5
		config.VisionRadius = 50

		battle, err := NewSpatialBattle(config, nil, nil)
		require.NoError(t, err)

		battle.AddCreature(newStubCreature("red", "reds", "aggressive"), vector.MakeVector2(10, 10))
		battle.AddCreature(newStubCreature("blue", "blues", "aggressive"), vector.MakeVector2(50, 50))
		battle.AddCreature(newStubCreature("green", "greens", "forager"), vector.MakeVector2(30, 30))

		for i := 0; i < 150; i++ {
			battle.Update(0.1)
		}
		return battle
	}

	left := run()
	right := run()

	leftEvents := left.Events()
	rightEvents := right.Events()
	require.Equal(t, len(leftEvents), len(rightEvents))

	// public uuids are fresh per run; everything the rng touches must match
	for i := range leftEvents {
		assert.Equal(t, leftEvents[i].Type, rightEvents[i].Type, "event %d", i)
		assert.Equal(t, leftEvents[i].Tick, rightEvents[i].Tick, "event %d", i)
		assert.Equal(t, leftEvents[i].Amount, rightEvents[i].Amount, "event %d", i)
		assert.Equal(t, leftEvents[i].Summary, rightEvents[i].Summary, "event %d", i)
	}

	leftLiving := left.livingCreatures()
	rightLiving := right.livingCreatures()
	require.Equal(t, len(leftLiving), len(rightLiving))
	for i := range leftLiving {
		assert.Equal(t, leftLiving[i].body.GetPosition(), rightLiving[i].body.GetPosition())
	}
}

func TestBreedingProducesOffspring(t *testing.T) {
	config := quietConfig()
	config.ArenaWidth = 50
	config.ArenaHeight = 50

	breeder := &stubBreeder{}

	battle, err := NewSpatialBattle(config, nil, breeder)
	require.NoError(t, err)

	battle.AddCreature(newStubCreature("dam", "grazers"), vector.MakeVector2(20, 20))
	battle.AddCreature(newStubCreature("sire", "grazers"), vector.MakeVector2(24, 20))

	for i := 0; i < 60; i++ {
		battle.Update(0.1)
	}

	assert.GreaterOrEqual(t, breeder.children, 1)
	assert.GreaterOrEqual(t, battle.CountEvents(EVENT_CREATURE_BIRTH), 1)
	assert.GreaterOrEqual(t, len(battle.livingCreatures()), 3)
}

func TestPanickingObserverDoesNotBreakTheTick(t *testing.T) {
	config := quietConfig()
	config.ResourceSpawnRate = 10

	battle, err := NewSpatialBattle(config, nil, nil)
	require.NoError(t, err)

	battle.AddEventCallback(func(Event) {
		panic("observer gone rogue")
	})

	received := 0
	battle.AddEventCallback(func(Event) {
		received++
	})

	assert.NotPanics(t, func() {
		battle.Update(0.1)
	})

	assert.GreaterOrEqual(t, received, 1, "later observers still hear events")
	assert.GreaterOrEqual(t, battle.CountEvents(EVENT_RESOURCE_SPAWNED), 1)
}

func TestEventsSinceFiltersByTick(t *testing.T) {
	config := quietConfig()
	config.ResourceSpawnRate = 10

	battle, err := NewSpatialBattle(config, nil, nil)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		battle.Update(0.1)
	}

	recent := battle.EventsSince(3)
	assert.NotEmpty(t, recent)
	for _, event := range recent {
		assert.GreaterOrEqual(t, event.Tick, 3)
	}

	assert.Len(t, battle.EventsSince(0), len(battle.Events()))
	assert.Empty(t, battle.EventsSince(100))
}

func TestNotifyRelayMirrorsEvents(t *testing.T) {
	config := quietConfig()
	config.ResourceSpawnRate = 10

	battle, err := NewSpatialBattle(config, nil, nil)
	require.NoError(t, err)

	ch := make(chan interface{}, 64)
	notify.Start("relaytest:event", ch)
	defer notify.Stop("relaytest:event", ch)

	battle.EnableNotifyRelay("relaytest")
	battle.Update(0.1)

	select {
	case raw := <-ch:
		event, ok := raw.(Event)
		require.True(t, ok)
		assert.Equal(t, 1, event.Tick)
	default:
		t.Fatal("expected at least one relayed event")
	}
}

func TestCrowdedAlliesStayBoundedAndSettle(t *testing.T) {
	config := quietConfig()
	config.ArenaWidth = 50
	config.ArenaHeight = 50

	battle, err := NewSpatialBattle(config, nil, nil)
	require.NoError(t, err)

	one := battle.AddCreature(newStubCreature("one", "grazers"), vector.MakeVector2(25, 25))
	two := battle.AddCreature(newStubCreature("two", "grazers"), vector.MakeVector2(25.2, 25))

	for i := 0; i < 500; i++ {
		battle.Update(0.1)

		for _, agent := range battle.livingCreatures() {
			pos := agent.body.GetPosition()
			assert.False(t, math.IsNaN(pos.GetX()) || math.IsNaN(pos.GetY()))
			assert.GreaterOrEqual(t, pos.GetX(), 0.0)
			assert.LessOrEqual(t, pos.GetX(), 50.0)
			assert.GreaterOrEqual(t, pos.GetY(), 0.0)
			assert.LessOrEqual(t, pos.GetY(), 50.0)
		}
	}

	a, ok := battle.creatureByID(one.GetID())
	require.True(t, ok)
	b, ok := battle.creatureByID(two.GetID())
	require.True(t, ok)

	// separation resolved the overlap instead of letting them stack
	assert.Greater(t, a.body.GetPosition().Distance(b.body.GetPosition()), 0.0)
}
