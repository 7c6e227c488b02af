package spatialbattle

import (
	bettererrors "github.com/xtuc/better-errors"

	"github.com/battlearena/battlearena/common/utils/number"
)

// Config is immutable after construction; the host tunes pacing only
// through the dt it passes to Update.
type Config struct {
	ArenaWidth  float64
	ArenaHeight float64
	Hazards     []Hazard

	// Seed feeds the battle-owned PRNG; every stochastic call (variance,
	// crits, wander waypoints, breeding jitter) draws from it, so equal
	// seeds replay equal battles.
	Seed int64

	ResourceSpawnRate float64 // resources per second
	InitialResources  int
	ResourceNutrition float64

	CellSize float64 // 0 derives from arena dimensions

	CreatureRadius     float64
	Acceleration       float64
	Damping            float64
	VisionRadius       float64
	CollectRadius      float64
	SeparationStrength float64
	BoundaryMargin     float64
	BoundaryStrength   float64

	HungerMax       float64
	HungerRate      float64 // depletion per second
	HungerSeekBelow float64
	HungerStopAbove float64

	RetargetInterval    float64
	RetargetImprovement float64 // candidate must be this fraction of current distance

	HitChance      float64
	VarianceMin    float64
	VarianceMax    float64
	CritChance     float64
	CritMultiplier float64

	BreedingInterval      float64
	BreedingRadius        float64
	BreedingJitter        float64
	BreedingHealthyRatio  float64
	BreedingDensityLimit  int
	BreedingDensityRadius float64
}

func DefaultConfig() Config {
	return Config{
		ArenaWidth:  100,
		ArenaHeight: 100,

		Seed: 1,

		ResourceSpawnRate: 0.5,
		InitialResources:  10,
		ResourceNutrition: 25,

		CreatureRadius:     0.5,
		Acceleration:       10,
		Damping:            0.98,
		VisionRadius:       25,
		CollectRadius:      1.5,
		SeparationStrength: 2.0,
		BoundaryMargin:     3.0,
		BoundaryStrength:   2.0,

		HungerMax:       100,
		HungerRate:      1.5,
		HungerSeekBelow: 30,
		HungerStopAbove: 60,

		RetargetInterval:    2.0,
		RetargetImprovement: 0.8,

		HitChance:      0.9,
		VarianceMin:    0.85,
		VarianceMax:    1.0,
		CritChance:     0.05,
		CritMultiplier: 1.5,

		BreedingInterval:      5.0,
		BreedingRadius:        8.0,
		BreedingJitter:        2.0,
		BreedingHealthyRatio:  0.75,
		BreedingDensityLimit:  6,
		BreedingDensityRadius: 12.0,
	}
}

// Validate fails fast on construction parameters no battle can run with.
func (config Config) Validate() error {
	if config.ArenaWidth <= 0 || config.ArenaHeight <= 0 {
		return bettererrors.
			New("arena must have a positive area").
			SetContext("width", number.FloatToStr(config.ArenaWidth, 2)).
			SetContext("height", number.FloatToStr(config.ArenaHeight, 2))
	}

	if config.ResourceSpawnRate < 0 {
		return bettererrors.
			New("resource spawn rate cannot be negative").
			SetContext("rate", number.FloatToStr(config.ResourceSpawnRate, 4))
	}

	if config.InitialResources < 0 {
		return bettererrors.New("initial resource count cannot be negative")
	}

	if config.HungerSeekBelow >= config.HungerStopAbove {
		return bettererrors.
			New("hunger watermarks must form a band").
			SetContext("seek_below", number.FloatToStr(config.HungerSeekBelow, 2)).
			SetContext("stop_above", number.FloatToStr(config.HungerStopAbove, 2))
	}

	if config.RetargetImprovement <= 0 || config.RetargetImprovement >= 1 {
		return bettererrors.
			New("retarget improvement must be a ratio in (0,1)").
			SetContext("ratio", number.FloatToStr(config.RetargetImprovement, 2))
	}

	return nil
}
