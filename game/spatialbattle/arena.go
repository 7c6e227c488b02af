package spatialbattle

import (
	"github.com/bytearena/ecs"
	"github.com/dhconnelly/rtreego"
	bettererrors "github.com/xtuc/better-errors"

	"github.com/battlearena/battlearena/common/utils"
	"github.com/battlearena/battlearena/common/utils/number"
	"github.com/battlearena/battlearena/common/utils/vector"
)

// Hazard is a static danger zone. Hazards never move, so they live in an
// R-tree built once at construction, separate from the dynamic grids.
type Hazard struct {
	Position vector.Vector2
	Radius   float64
}

func (h Hazard) Bounds() rtreego.Rect {
	rect, err := rtreego.NewRect(
		rtreego.Point{h.Position.GetX() - h.Radius, h.Position.GetY() - h.Radius},
		[]float64{h.Radius * 2, h.Radius * 2},
	)
	// NewArena rejects non-positive radii, so a bad rect here is a bug
	utils.Check(err, "hazard: degenerate bounds")
	return rect
}

// Arena is the bounded world. It owns the hazard index and the resource
// registry; the resource list and its spatial grid are kept in lockstep
// because no caller can reach the grid directly.
type Arena struct {
	width  float64
	height float64

	hazards     []Hazard
	hazardIndex *rtreego.Rtree

	resources    []ecs.EntityID
	resourceGrid *SpatialHashGrid
}

func NewArena(width float64, height float64, hazards []Hazard) (*Arena, error) {
	if width <= 0 || height <= 0 {
		return nil, bettererrors.
			New("arena must have a positive area").
			SetContext("width", number.FloatToStr(width, 2)).
			SetContext("height", number.FloatToStr(height, 2))
	}

	for _, hazard := range hazards {
		if hazard.Radius <= 0 {
			return nil, bettererrors.
				New("hazard must have a positive radius").
				SetContext("radius", number.FloatToStr(hazard.Radius, 2)).
				SetContext("position", hazard.Position.String())
		}
	}

	arena := &Arena{
		width:        width,
		height:       height,
		hazards:      append([]Hazard(nil), hazards...),
		hazardIndex:  rtreego.NewTree(2, 8, 16),
		resourceGrid: NewSpatialHashGrid(CellSizeForArena(width, height)),
	}

	for _, hazard := range arena.hazards {
		arena.hazardIndex.Insert(hazard)
	}

	return arena, nil
}

func (arena Arena) Width() float64 {
	return arena.width
}

func (arena Arena) Height() float64 {
	return arena.height
}

func (arena Arena) Contains(p vector.Vector2) bool {
	x, y := p.Get()
	return x >= 0 && x <= arena.width && y >= 0 && y <= arena.height
}

func (arena Arena) ClampPosition(p vector.Vector2) vector.Vector2 {
	return vector.MakeVector2(
		number.Clamp(p.GetX(), 0, arena.width),
		number.Clamp(p.GetY(), 0, arena.height),
	)
}

// ApplyBoundaryRepulsion adds inward velocity proportional to how deep
// the body sits inside the margin band along each edge; zero outside the
// band.
func (arena Arena) ApplyBoundaryRepulsion(body *PhysicalBody, margin float64, strength float64) {
	if margin <= 0 {
		return
	}

	pos := body.GetPosition()
	push := vector.MakeNullVector2()

	if pos.GetX() < margin {
		push = push.Add(vector.MakeVector2(strength*(margin-pos.GetX())/margin, 0))
	}
	if pos.GetX() > arena.width-margin {
		push = push.Add(vector.MakeVector2(-strength*(margin-(arena.width-pos.GetX()))/margin, 0))
	}
	if pos.GetY() < margin {
		push = push.Add(vector.MakeVector2(0, strength*(margin-pos.GetY())/margin))
	}
	if pos.GetY() > arena.height-margin {
		push = push.Add(vector.MakeVector2(0, -strength*(margin-(arena.height-pos.GetY()))/margin))
	}

	if push.IsNull() {
		return
	}

	body.SetVelocity(body.GetVelocity().Add(push))
}

// Hazards returns the static hazard list.
func (arena Arena) Hazards() []Hazard {
	return arena.hazards
}

// HazardsWithin returns the hazards whose center lies within radius of
// pos, found through the R-tree.
func (arena Arena) HazardsWithin(pos vector.Vector2, radius float64) []Hazard {
	if len(arena.hazards) == 0 || radius <= 0 {
		return nil
	}

	rect, err := rtreego.NewRect(
		rtreego.Point{pos.GetX() - radius, pos.GetY() - radius},
		[]float64{radius * 2, radius * 2},
	)
	if err != nil {
		return nil
	}

	found := arena.hazardIndex.SearchIntersect(rect)
	result := make([]Hazard, 0, len(found))

	for _, spatial := range found {
		hazard := spatial.(Hazard)
		if hazard.Position.Distance(pos) <= radius {
			result = append(result, hazard)
		}
	}

	return result
}

// AddResource registers a resource entity at pos, keeping list and grid
// in lockstep.
func (arena *Arena) AddResource(id ecs.EntityID, pos vector.Vector2) {
	if arena.resourceGrid.Contains(id) {
		arena.resourceGrid.Update(id, pos)
		return
	}

	arena.resources = append(arena.resources, id)
	arena.resourceGrid.Insert(id, pos)
}

// RemoveResource unregisters a resource from both list and grid; absent
// resources are a safe no-op. Returns whether anything was removed.
func (arena *Arena) RemoveResource(id ecs.EntityID) bool {
	if !arena.resourceGrid.Contains(id) {
		return false
	}

	arena.resourceGrid.Remove(id)

	for i, candidate := range arena.resources {
		if candidate == id {
			arena.resources = append(arena.resources[:i], arena.resources[i+1:]...)
			return true
		}
	}

	utils.Assert(false, "arena: resource list and grid out of lockstep")
	return false
}

func (arena Arena) HasResource(id ecs.EntityID) bool {
	return arena.resourceGrid.Contains(id)
}

func (arena Arena) ResourcePosition(id ecs.EntityID) (vector.Vector2, bool) {
	return arena.resourceGrid.PositionOf(id)
}

func (arena Arena) ResourceCount() int {
	return len(arena.resources)
}

func (arena Arena) ResourcesWithin(pos vector.Vector2, radius float64) []ecs.EntityID {
	return arena.resourceGrid.QueryRadius(pos, radius, true)
}

func (arena Arena) NearestResource(pos vector.Vector2, maxDistance float64) (ecs.EntityID, bool) {
	return arena.resourceGrid.QueryNearest(pos, maxDistance)
}
