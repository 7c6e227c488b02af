package spatialbattle

import (
	"github.com/battlearena/battlearena/common/utils/number"
)

func (battle *SpatialBattle) CastHunger(data interface{}) *Hunger {
	return data.(*Hunger)
}

// Hunger is a clamped satiety level with two distinct watermarks: the
// agent starts seeking food below seekBelow and stops above stopAbove.
// Single-cutoff switching would thrash around the threshold, so the two
// levels form the hysteresis band.
type Hunger struct {
	level float64
	max   float64

	baseRate  float64 // depletion per second before trait scaling
	seekBelow float64
	stopAbove float64

	seeking bool
}

func NewHunger(max float64, baseRate float64, seekBelow float64, stopAbove float64) *Hunger {
	return &Hunger{
		level:     max,
		max:       max,
		baseRate:  baseRate,
		seekBelow: seekBelow,
		stopAbove: stopAbove,
	}
}

func (h Hunger) Level() float64 {
	return h.level
}

func (h Hunger) Max() float64 {
	return h.max
}

// Deplete lowers the level by baseRate*modifier*dt, never below zero.
func (h *Hunger) Deplete(dt float64, modifier float64) {
	if dt <= 0 {
		return
	}
	if modifier <= 0 {
		modifier = 1.0
	}

	h.level = number.Clamp(h.level-h.baseRate*modifier*dt, 0, h.max)
	h.updateSeeking()
}

// Feed raises the level, clamped to max.
func (h *Hunger) Feed(amount float64) {
	if amount <= 0 {
		return
	}

	h.level = number.Clamp(h.level+amount, 0, h.max)
	h.updateSeeking()
}

// Starved reports death by hunger: the level hit exactly zero.
func (h Hunger) Starved() bool {
	return h.level <= 0
}

// Seeking reports whether the agent is in food-seeking mode.
func (h Hunger) Seeking() bool {
	return h.seeking
}

// WellFed reports the level is at or above the stop watermark; used as
// the breeding gate.
func (h Hunger) WellFed() bool {
	return h.level >= h.stopAbove
}

func (h *Hunger) updateSeeking() {
	if h.seeking {
		if h.level >= h.stopAbove {
			h.seeking = false
		}
		return
	}

	if h.level < h.seekBelow {
		h.seeking = true
	}
}
