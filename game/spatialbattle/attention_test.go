package spatialbattle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttentionStartsIdleAndAlwaysYields(t *testing.T) {
	att := NewAttention(1, 1)

	assert.Equal(t, FOCUS_IDLE, att.Focus())

	focus, changed := att.EvaluateAndUpdate(map[FocusKind]Stimulus{
		FOCUS_EXPLORING: {Urgency: 1},
	}, 0, false)

	assert.True(t, changed)
	assert.Equal(t, FOCUS_EXPLORING, focus)
	assert.Equal(t, 0.0, att.FocusStart())
}

func TestAttentionEmptyStimuliIsNoChange(t *testing.T) {
	att := NewAttention(1, 1)

	focus, changed := att.EvaluateAndUpdate(nil, 5, false)
	assert.False(t, changed)
	assert.Equal(t, FOCUS_IDLE, focus)
}

func TestAttentionHoldsAgainstSubThresholdCompetition(t *testing.T) {
	att := NewAttention(1, 1)

	att.EvaluateAndUpdate(map[FocusKind]Stimulus{FOCUS_COMBAT: {Urgency: 1}}, 0, false)
	assert.Equal(t, FOCUS_COMBAT, att.Focus())

	// combat: base 6, threshold 0.3 -> a competitor needs > 7.8.
	// foraging at base 5 urgency 1.5 = 7.5 keeps hammering and never wins,
	// no matter how long it insists.
	for now := 0.1; now < 20; now += 0.1 {
		_, changed := att.EvaluateAndUpdate(map[FocusKind]Stimulus{
			FOCUS_COMBAT:   {Urgency: 1},
			FOCUS_FORAGING: {Urgency: 1.5},
		}, now, false)
		assert.False(t, changed)
	}

	assert.Equal(t, FOCUS_COMBAT, att.Focus())
}

func TestAttentionSwitchesOnGenuineImprovement(t *testing.T) {
	att := NewAttention(1, 1)

	att.EvaluateAndUpdate(map[FocusKind]Stimulus{FOCUS_COMBAT: {Urgency: 1}}, 0, false)

	// fleeing at base 8 urgency 1.2 = 9.6 > 6*1.3
	focus, changed := att.EvaluateAndUpdate(map[FocusKind]Stimulus{
		FOCUS_COMBAT:  {Urgency: 1},
		FOCUS_FLEEING: {Urgency: 1.2},
	}, 0.5, false)

	assert.True(t, changed)
	assert.Equal(t, FOCUS_FLEEING, focus)
	assert.Equal(t, 0.5, att.FocusStart())
}

func TestAttentionForceBypassesHysteresis(t *testing.T) {
	att := NewAttention(1, 1)

	att.EvaluateAndUpdate(map[FocusKind]Stimulus{FOCUS_COMBAT: {Urgency: 1}}, 0, false)

	// exploring at base 2 would never beat combat unforced
	focus, changed := att.EvaluateAndUpdate(map[FocusKind]Stimulus{
		FOCUS_EXPLORING: {Urgency: 1},
	}, 0.1, true)

	assert.True(t, changed)
	assert.Equal(t, FOCUS_EXPLORING, focus)
}

func TestAttentionTieBreaksByEnumerationOrder(t *testing.T) {
	att := NewAttention(1, 1)

	// equal effective priority: combat 6*1 vs foraging 5*1.2
	focus, _ := att.EvaluateAndUpdate(map[FocusKind]Stimulus{
		FOCUS_FORAGING: {Urgency: 1.2},
		FOCUS_COMBAT:   {Urgency: 1},
	}, 0, false)

	assert.Equal(t, FOCUS_COMBAT, focus)
}

func TestAttentionTraitClamping(t *testing.T) {
	// extreme trait stacking cannot escape the clamps
	stubborn := NewAttention(1000, 0.0001)
	flighty := NewAttention(0.01, 1000)

	for _, kind := range focusKinds {
		if kind == FOCUS_IDLE {
			continue
		}

		assert.LessOrEqual(t, stubborn.Config(kind).MinCommitment, 10.0)
		assert.LessOrEqual(t, stubborn.Config(kind).DistractionThreshold, 0.9)

		assert.GreaterOrEqual(t, flighty.Config(kind).MinCommitment, 0.5)
		assert.GreaterOrEqual(t, flighty.Config(kind).DistractionThreshold, 0.05)
	}
}

func TestAttentionCommitmentWindow(t *testing.T) {
	att := NewAttention(1, 1)

	att.EvaluateAndUpdate(map[FocusKind]Stimulus{FOCUS_COMBAT: {Urgency: 1}}, 0, false)

	assert.True(t, att.Committed(1.0))
	assert.False(t, att.Committed(3.0)) // combat commitment is 2.5s
}
