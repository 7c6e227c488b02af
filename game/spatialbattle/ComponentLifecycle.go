package spatialbattle

func (battle *SpatialBattle) CastLifecycle(data interface{}) *Lifecycle {
	return data.(*Lifecycle)
}

type deathCause uint8

const (
	DEATH_NONE deathCause = iota
	DEATH_COMBAT
	DEATH_STARVATION
)

func (cause deathCause) String() string {
	switch cause {
	case DEATH_COMBAT:
		return "combat"
	case DEATH_STARVATION:
		return "starvation"
	}
	return "none"
}

type Lifecycle struct {
	tickBirth int
	bornAt    float64

	dead      bool
	tickDeath int
	cause     deathCause
}

func NewLifecycle(tickBirth int, bornAt float64) *Lifecycle {
	return &Lifecycle{
		tickBirth: tickBirth,
		bornAt:    bornAt,
	}
}

func (lc Lifecycle) Alive() bool {
	return !lc.dead
}

func (lc Lifecycle) BornAt() float64 {
	return lc.bornAt
}

func (lc Lifecycle) TickBirth() int {
	return lc.tickBirth
}

func (lc Lifecycle) Cause() deathCause {
	return lc.cause
}

// SetDeath marks the creature dead once; later calls keep the first
// cause and tick.
func (lc *Lifecycle) SetDeath(tick int, cause deathCause) {
	if lc.dead {
		return
	}

	lc.dead = true
	lc.tickDeath = tick
	lc.cause = cause
}
