package spatialbattle

import (
	"time"

	notify "github.com/bitly/go-notify"
	"github.com/bytearena/ecs"
	uuid "github.com/satori/go.uuid"

	"github.com/battlearena/battlearena/common/utils"
)

type EventType uint8

const (
	EVENT_BATTLE_START EventType = iota
	EVENT_ABILITY_USE
	EVENT_DAMAGE_DEALT
	EVENT_MISS
	EVENT_CRITICAL_HIT
	EVENT_CREATURE_DEATH
	EVENT_RESOURCE_SPAWNED
	EVENT_RESOURCE_COLLECTED
	EVENT_CREATURE_BIRTH
	EVENT_FOCUS_CHANGE
	EVENT_BATTLE_OVER
)

func (t EventType) String() string {
	switch t {
	case EVENT_BATTLE_START:
		return "battle_start"
	case EVENT_ABILITY_USE:
		return "ability_use"
	case EVENT_DAMAGE_DEALT:
		return "damage_dealt"
	case EVENT_MISS:
		return "miss"
	case EVENT_CRITICAL_HIT:
		return "critical_hit"
	case EVENT_CREATURE_DEATH:
		return "creature_death"
	case EVENT_RESOURCE_SPAWNED:
		return "resource_spawned"
	case EVENT_RESOURCE_COLLECTED:
		return "resource_collected"
	case EVENT_CREATURE_BIRTH:
		return "creature_birth"
	case EVENT_FOCUS_CHANGE:
		return "focus_change"
	case EVENT_BATTLE_OVER:
		return "battle_over"
	}
	return "unknown"
}

// Event is one immutable state change. Actor/Target carry both the
// entity id (valid while the entity lives) and the stable public uuid
// (valid forever, e.g. in replays).
type Event struct {
	Type EventType
	Tick int
	Time float64

	Actor     ecs.EntityID
	ActorRef  uuid.UUID
	Target    ecs.EntityID
	TargetRef uuid.UUID

	Amount  float64
	Summary string
}

// EventCallback receives every event synchronously, in emission order
// within a tick. Callbacks must not mutate the battle's collections;
// queue and act between ticks instead.
type EventCallback func(Event)

// EventLog is the append-only history of a battle.
type EventLog struct {
	entries []Event
}

func NewEventLog() *EventLog {
	return &EventLog{
		entries: make([]Event, 0, 256),
	}
}

func (l *EventLog) Append(event Event) {
	l.entries = append(l.entries, event)
}

func (l EventLog) Len() int {
	return len(l.entries)
}

// Events returns a copy of the whole log.
func (l EventLog) Events() []Event {
	return append([]Event(nil), l.entries...)
}

// EventsSince returns a copy of the events emitted at or after tick.
func (l EventLog) EventsSince(tick int) []Event {
	for i, event := range l.entries {
		if event.Tick >= tick {
			return append([]Event(nil), l.entries[i:]...)
		}
	}
	return nil
}

// CountByType tallies the log; handy for scenario assertions and
// dashboards alike.
func (l EventLog) CountByType(t EventType) int {
	count := 0
	for _, event := range l.entries {
		if event.Type == t {
			count++
		}
	}
	return count
}

// AddEventCallback subscribes an observer. Failure isolation is part of
// the contract: a panicking callback is recovered and logged, and the
// tick continues.
func (battle *SpatialBattle) AddEventCallback(callback EventCallback) {
	battle.callbacks = append(battle.callbacks, callback)
}

// EnableNotifyRelay mirrors every event onto process-wide go-notify
// topics ("<prefix>:event" and "<prefix>:event:<type>"), so loosely
// coupled consumers can pick battles up without holding a reference.
func (battle *SpatialBattle) EnableNotifyRelay(prefix string) {
	battle.AddEventCallback(func(event Event) {
		notify.PostTimeout(prefix+":event", event, time.Millisecond)
		notify.PostTimeout(prefix+":event:"+event.Type.String(), event, time.Millisecond)
	})
}

func (battle *SpatialBattle) emit(event Event) {
	event.Tick = battle.ticknum
	event.Time = battle.clock

	battle.log.Append(event)

	for _, callback := range battle.callbacks {
		battle.fanout(callback, event)
	}
}

func (battle *SpatialBattle) fanout(callback EventCallback, event Event) {
	defer func() {
		if r := recover(); r != nil {
			utils.Warn("spatialbattle: event callback panicked; continuing tick")
		}
	}()

	callback(event)
}
