package spatialbattle

import (
	"math"

	"github.com/battlearena/battlearena/common/utils/vector"
)

func (battle *SpatialBattle) CastPhysicalBody(data interface{}) *PhysicalBody {
	return data.(*PhysicalBody)
}

// PhysicalBody is a steered point mass. Velocity changes are never
// instantaneous: steering blends the current velocity toward a desired
// velocity at a bounded rate, which is the anti-jitter contract the rest
// of the simulation relies on.
type PhysicalBody struct {
	position     vector.Vector2
	velocity     vector.Vector2
	radius       float64
	maxSpeed     float64
	acceleration float64 // velocity blend rate, units/s^2
	damping      float64 // per-second velocity retention factor, in (0,1]
}

func NewPhysicalBody(position vector.Vector2, radius float64, maxSpeed float64, acceleration float64, damping float64) *PhysicalBody {
	if damping <= 0 || damping > 1 {
		damping = 0.98
	}

	return &PhysicalBody{
		position:     position,
		radius:       radius,
		maxSpeed:     maxSpeed,
		acceleration: acceleration,
		damping:      damping,
	}
}

func (body PhysicalBody) GetPosition() vector.Vector2 {
	return body.position
}

func (body *PhysicalBody) SetPosition(p vector.Vector2) *PhysicalBody {
	body.position = p
	return body
}

func (body PhysicalBody) GetVelocity() vector.Vector2 {
	return body.velocity
}

func (body *PhysicalBody) SetVelocity(v vector.Vector2) *PhysicalBody {
	body.velocity = v.Limit(body.maxSpeed)
	return body
}

func (body PhysicalBody) GetRadius() float64 {
	return body.radius
}

func (body PhysicalBody) GetMaxSpeed() float64 {
	return body.maxSpeed
}

func (body *PhysicalBody) SetMaxSpeed(maxSpeed float64) *PhysicalBody {
	body.maxSpeed = maxSpeed
	return body
}

// MoveTowards blends the current velocity toward the desired velocity at
// acceleration*dt per step, clamped to maxSpeed. Inside stoppingDistance
// the desired speed shrinks linearly toward zero instead of continuing to
// push, which is what prevents oscillation at close range.
func (body *PhysicalBody) MoveTowards(target vector.Vector2, speed float64, dt float64, stoppingDistance float64) {
	if dt <= 0 {
		return
	}

	if speed <= 0 || speed > body.maxSpeed {
		speed = body.maxSpeed
	}

	offset := target.Sub(body.position)
	distance := offset.Mag()

	if stoppingDistance > 0 && distance < stoppingDistance {
		speed *= distance / stoppingDistance
	}

	desired := vector.MakeNullVector2()
	if distance > 0 {
		desired = offset.SetMag(speed)
	}

	steer := desired.Sub(body.velocity)
	maxBlend := body.acceleration * dt
	if steer.Mag() > maxBlend {
		steer = steer.SetMag(maxBlend)
	}

	body.velocity = body.velocity.Add(steer).Limit(body.maxSpeed)
}

// Integrate applies frame-rate-independent exponential velocity decay,
// then advances the position by one Euler step.
func (body *PhysicalBody) Integrate(dt float64) {
	if dt <= 0 {
		return
	}

	body.velocity = body.velocity.MultScalar(math.Pow(body.damping, dt))
	body.position = body.position.Add(body.velocity.MultScalar(dt))
}

// SeparationForce returns the velocity nudge pushing this body away from
// other, proportional to the penetration fraction of their radii. Zero
// when the bodies do not overlap or coincide exactly.
func (body PhysicalBody) SeparationForce(other *PhysicalBody, strength float64) vector.Vector2 {
	away := body.position.Sub(other.position)
	distance := away.Mag()
	radiusSum := body.radius + other.radius

	if distance >= radiusSum || distance == 0 {
		return vector.MakeNullVector2()
	}

	penetration := (radiusSum - distance) / radiusSum
	return away.SetMag(strength * penetration)
}

// ApplySeparation adds the separation force from other to the velocity.
func (body *PhysicalBody) ApplySeparation(other *PhysicalBody, strength float64) {
	force := body.SeparationForce(other, strength)
	if force.IsNull() {
		return
	}

	body.velocity = body.velocity.Add(force).Limit(body.maxSpeed)
}
