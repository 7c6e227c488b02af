package spatialbattle

import (
	"github.com/bytearena/ecs"

	"github.com/battlearena/battlearena/common/utils/number"
	"github.com/battlearena/battlearena/common/utils/vector"
)

type FocusKind uint8

// Enumeration order is the documented tie-break: when two stimuli carry
// the same effective priority, the lower constant wins.
const (
	FOCUS_IDLE FocusKind = iota
	FOCUS_COMBAT
	FOCUS_FORAGING
	FOCUS_FLEEING
	FOCUS_EXPLORING
	FOCUS_SOCIAL
	FOCUS_HAZARD_AVOIDANCE
)

var focusKinds = []FocusKind{
	FOCUS_IDLE,
	FOCUS_COMBAT,
	FOCUS_FORAGING,
	FOCUS_FLEEING,
	FOCUS_EXPLORING,
	FOCUS_SOCIAL,
	FOCUS_HAZARD_AVOIDANCE,
}

func (kind FocusKind) String() string {
	switch kind {
	case FOCUS_COMBAT:
		return "combat"
	case FOCUS_FORAGING:
		return "foraging"
	case FOCUS_FLEEING:
		return "fleeing"
	case FOCUS_EXPLORING:
		return "exploring"
	case FOCUS_SOCIAL:
		return "social"
	case FOCUS_HAZARD_AVOIDANCE:
		return "hazard_avoidance"
	}
	return "idle"
}

// Stimulus is one tick's worth of sensory pressure toward a focus kind.
type Stimulus struct {
	Urgency float64        // multiplies the configured base priority
	Source  ecs.EntityID   // optional originating entity
	Point   vector.Vector2 // optional location of interest
}

type StimulusConfig struct {
	BasePriority         float64
	MinCommitment        float64 // seconds
	DistractionThreshold float64 // fraction of current priority
}

func defaultStimulusConfigs() map[FocusKind]StimulusConfig {
	return map[FocusKind]StimulusConfig{
		FOCUS_IDLE:             {BasePriority: 0.5, MinCommitment: 0, DistractionThreshold: 0},
		FOCUS_COMBAT:           {BasePriority: 6.0, MinCommitment: 2.5, DistractionThreshold: 0.3},
		FOCUS_FORAGING:         {BasePriority: 5.0, MinCommitment: 2.0, DistractionThreshold: 0.3},
		FOCUS_FLEEING:          {BasePriority: 8.0, MinCommitment: 1.5, DistractionThreshold: 0.25},
		FOCUS_EXPLORING:        {BasePriority: 2.0, MinCommitment: 3.0, DistractionThreshold: 0.4},
		FOCUS_SOCIAL:           {BasePriority: 3.0, MinCommitment: 2.0, DistractionThreshold: 0.35},
		FOCUS_HAZARD_AVOIDANCE: {BasePriority: 9.0, MinCommitment: 1.0, DistractionThreshold: 0.2},
	}
}

func (battle *SpatialBattle) CastAttention(data interface{}) *Attention {
	return data.(*Attention)
}

// Attention is a per-agent focus state machine with hysteresis: a
// dwell-time lock plus an advantage threshold keep the agent from
// re-evaluating its goal every tick.
type Attention struct {
	focus       FocusKind
	focusStart  float64
	focusSource ecs.EntityID
	focusPoint  vector.Vector2
	hasContext  bool

	configs map[FocusKind]StimulusConfig
}

// NewAttention builds the state machine from trait modifiers.
// persistence scales commitment times, distractibility inversely scales
// distraction thresholds; both results are clamped so trait stacking can
// never produce a permanently unresponsive or permanently flighty agent.
func NewAttention(persistence float64, distractibility float64) *Attention {
	configs := defaultStimulusConfigs()

	if persistence <= 0 {
		persistence = 1.0
	}
	if distractibility <= 0 {
		distractibility = 1.0
	}

	for kind, cfg := range configs {
		if kind == FOCUS_IDLE {
			continue
		}
		cfg.MinCommitment = number.Clamp(cfg.MinCommitment*persistence, 0.5, 10.0)
		cfg.DistractionThreshold = number.Clamp(cfg.DistractionThreshold/distractibility, 0.05, 0.9)
		configs[kind] = cfg
	}

	return &Attention{
		focus:   FOCUS_IDLE,
		configs: configs,
	}
}

func (att Attention) Focus() FocusKind {
	return att.focus
}

func (att Attention) FocusStart() float64 {
	return att.focusStart
}

func (att Attention) FocusSource() (ecs.EntityID, bool) {
	return att.focusSource, att.hasContext
}

func (att Attention) Config(kind FocusKind) StimulusConfig {
	return att.configs[kind]
}

// Committed reports whether the focus is still inside its dwell window.
// Informational for hosts only: EvaluateAndUpdate gates switching on the
// advantage test alone, inside the window and out.
func (att Attention) Committed(now float64) bool {
	if att.focus == FOCUS_IDLE {
		return false
	}
	return now-att.focusStart < att.configs[att.focus].MinCommitment
}

func (att Attention) effectivePriority(kind FocusKind, stimuli map[FocusKind]Stimulus) float64 {
	urgency := 1.0
	if stimulus, ok := stimuli[kind]; ok && stimulus.Urgency > 0 {
		urgency = stimulus.Urgency
	}
	return att.configs[kind].BasePriority * urgency
}

// EvaluateAndUpdate runs one decision step:
//
//  1. no stimuli, no change;
//  2. the winner is the stimulus with maximum base*urgency priority,
//     ties broken by enumeration order;
//  3. IDLE always yields to the winner;
//  4. a non-IDLE focus only yields when the winner's priority beats the
//     current one by more than currentPriority*distractionThreshold —
//     elapsing the commitment removes the dwell lock, not this
//     requirement, while force bypasses both.
//
// Returns the active focus and whether it changed.
func (att *Attention) EvaluateAndUpdate(stimuli map[FocusKind]Stimulus, now float64, force bool) (FocusKind, bool) {
	if len(stimuli) == 0 {
		return att.focus, false
	}

	winner := att.focus
	winnerPriority := -1.0

	for _, kind := range focusKinds {
		if _, ok := stimuli[kind]; !ok {
			continue
		}
		if priority := att.effectivePriority(kind, stimuli); priority > winnerPriority {
			winner = kind
			winnerPriority = priority
		}
	}

	if winnerPriority < 0 || winner == att.focus {
		return att.focus, false
	}

	// The advantage requirement outlives the dwell lock: elapsed
	// commitment never turns switching back into a free action.
	if att.focus != FOCUS_IDLE && !force && !att.beatsCurrent(winnerPriority, stimuli) {
		return att.focus, false
	}

	att.switchTo(winner, stimuli[winner], now)
	return att.focus, true
}

func (att Attention) beatsCurrent(candidatePriority float64, stimuli map[FocusKind]Stimulus) bool {
	current := att.effectivePriority(att.focus, stimuli)
	return candidatePriority > current+current*att.configs[att.focus].DistractionThreshold
}

func (att *Attention) switchTo(kind FocusKind, stimulus Stimulus, now float64) {
	att.focus = kind
	att.focusStart = now
	att.focusSource = stimulus.Source
	att.focusPoint = stimulus.Point

	var none ecs.EntityID
	att.hasContext = stimulus.Source != none || !stimulus.Point.IsNull()
}
