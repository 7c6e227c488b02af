package spatialbattle

import (
	"math"

	"github.com/bytearena/ecs"

	"github.com/battlearena/battlearena/common/utils/number"
	"github.com/battlearena/battlearena/common/utils/vector"
)

type gridCell struct {
	x int
	y int
}

// SpatialHashGrid indexes positioned entities in uniform square cells for
// sublinear proximity queries. Every inserted entity belongs to exactly
// one cell, consistent with the last position passed to Insert/Update.
//
// All operations are total: removing or updating an absent entity is a
// no-op, never an error.
//
// Tie-breaking is deterministic: buckets preserve insertion order, and
// equidistant candidates in QueryNearest are won by the entity inserted
// first.
type SpatialHashGrid struct {
	cellSize float64

	cells   map[gridCell][]ecs.EntityID
	located map[ecs.EntityID]gridCell
	points  map[ecs.EntityID]vector.Vector2
	seq     map[ecs.EntityID]uint64
	nextseq uint64
}

const defaultCellSize = 10.0

func NewSpatialHashGrid(cellSize float64) *SpatialHashGrid {
	if cellSize <= 0 {
		cellSize = defaultCellSize
	}

	return &SpatialHashGrid{
		cellSize: cellSize,
		cells:    make(map[gridCell][]ecs.EntityID),
		located:  make(map[ecs.EntityID]gridCell),
		points:   make(map[ecs.EntityID]vector.Vector2),
		seq:      make(map[ecs.EntityID]uint64),
	}
}

// CellSizeForArena scales the cell size with the typical interaction
// radius: 10% of the smaller world dimension, clamped so a query touches
// O(1) cells without degenerating into one giant or thousands of tiny
// cells.
func CellSizeForArena(width float64, height float64) float64 {
	return number.Clamp(math.Min(width, height)*0.1, 2.0, 50.0)
}

func (grid *SpatialHashGrid) CellSize() float64 {
	return grid.cellSize
}

func (grid *SpatialHashGrid) Len() int {
	return len(grid.located)
}

func (grid *SpatialHashGrid) Contains(id ecs.EntityID) bool {
	_, ok := grid.located[id]
	return ok
}

// PositionOf returns the last position passed to Insert/Update for id.
func (grid *SpatialHashGrid) PositionOf(id ecs.EntityID) (vector.Vector2, bool) {
	p, ok := grid.points[id]
	return p, ok
}

func (grid *SpatialHashGrid) cellOf(pos vector.Vector2) gridCell {
	return gridCell{
		x: int(math.Floor(pos.GetX() / grid.cellSize)),
		y: int(math.Floor(pos.GetY() / grid.cellSize)),
	}
}

func (grid *SpatialHashGrid) Insert(id ecs.EntityID, pos vector.Vector2) {
	if _, ok := grid.located[id]; ok {
		grid.Update(id, pos)
		return
	}

	cell := grid.cellOf(pos)
	grid.cells[cell] = append(grid.cells[cell], id)
	grid.located[id] = cell
	grid.points[id] = pos
	grid.nextseq++
	grid.seq[id] = grid.nextseq
}

func (grid *SpatialHashGrid) Remove(id ecs.EntityID) {
	cell, ok := grid.located[id]
	if !ok {
		return
	}

	grid.cells[cell] = removeFromBucket(grid.cells[cell], id)
	if len(grid.cells[cell]) == 0 {
		delete(grid.cells, cell)
	}

	delete(grid.located, id)
	delete(grid.points, id)
	delete(grid.seq, id)
}

// Update relocates id between buckets only when its cell actually
// changed; absent entities are inserted.
func (grid *SpatialHashGrid) Update(id ecs.EntityID, pos vector.Vector2) {
	prev, ok := grid.located[id]
	if !ok {
		grid.Insert(id, pos)
		return
	}

	grid.points[id] = pos

	cell := grid.cellOf(pos)
	if cell == prev {
		return
	}

	grid.cells[prev] = removeFromBucket(grid.cells[prev], id)
	if len(grid.cells[prev]) == 0 {
		delete(grid.cells, prev)
	}

	grid.cells[cell] = append(grid.cells[cell], id)
	grid.located[id] = cell
}

// QueryRadius scans the bounding box of cells covering the circle around
// pos. Without exact it returns a cheap superset (cell-overlap only);
// with exact it additionally filters by true Euclidean distance <= radius.
func (grid *SpatialHashGrid) QueryRadius(pos vector.Vector2, radius float64, exact bool, exclude ...ecs.EntityID) []ecs.EntityID {
	if radius < 0 {
		return nil
	}

	var excluded map[ecs.EntityID]struct{}
	if len(exclude) > 0 {
		excluded = make(map[ecs.EntityID]struct{}, len(exclude))
		for _, id := range exclude {
			excluded[id] = struct{}{}
		}
	}

	min := grid.cellOf(vector.MakeVector2(pos.GetX()-radius, pos.GetY()-radius))
	max := grid.cellOf(vector.MakeVector2(pos.GetX()+radius, pos.GetY()+radius))

	radiusSq := radius * radius
	result := make([]ecs.EntityID, 0, 16)

	for cx := min.x; cx <= max.x; cx++ {
		for cy := min.y; cy <= max.y; cy++ {
			for _, id := range grid.cells[gridCell{cx, cy}] {
				if excluded != nil {
					if _, skip := excluded[id]; skip {
						continue
					}
				}

				if exact && grid.points[id].DistanceSq(pos) > radiusSq {
					continue
				}

				result = append(result, id)
			}
		}
	}

	return result
}

// QueryCountInRadius is the count-only variant of an exact radius query,
// for density checks such as reproduction throttling.
func (grid *SpatialHashGrid) QueryCountInRadius(pos vector.Vector2, radius float64, exclude ...ecs.EntityID) int {
	return len(grid.QueryRadius(pos, radius, true, exclude...))
}

// QueryNearest runs an expanding-ring search, starting at twice the cell
// size and doubling until a candidate qualifies or the ring exceeds
// maxDistance. An unbounded search (maxDistance <= 0) is capped at the
// farthest indexed point, so the loop terminates on any grid, including
// an empty one or one where every entry is excluded. Returns false when
// nothing qualifies.
func (grid *SpatialHashGrid) QueryNearest(pos vector.Vector2, maxDistance float64, exclude ...ecs.EntityID) (ecs.EntityID, bool) {
	var none ecs.EntityID

	if len(grid.located) == 0 {
		return none, false
	}

	if maxDistance <= 0 {
		maxDistance = grid.farthestPoint(pos)
	}

	ring := grid.cellSize * 2

	for {
		search := math.Min(ring, maxDistance)

		if best, ok := grid.nearestWithin(pos, search, exclude); ok {
			return best, true
		}

		if ring >= maxDistance {
			return none, false
		}

		ring *= 2
	}
}

// farthestPoint is the distance to the farthest indexed position, padded
// a hair so the boundary point survives the exact filter's sqrt
// round-trip.
func (grid *SpatialHashGrid) farthestPoint(pos vector.Vector2) float64 {
	farthestSq := 0.0
	for _, p := range grid.points {
		if distSq := p.DistanceSq(pos); distSq > farthestSq {
			farthestSq = distSq
		}
	}
	return math.Sqrt(farthestSq) * (1 + 1e-12)
}

func (grid *SpatialHashGrid) nearestWithin(pos vector.Vector2, radius float64, exclude []ecs.EntityID) (ecs.EntityID, bool) {
	candidates := grid.QueryRadius(pos, radius, true, exclude...)
	if len(candidates) == 0 {
		var none ecs.EntityID
		return none, false
	}

	best := candidates[0]
	bestDistSq := grid.points[best].DistanceSq(pos)

	for _, id := range candidates[1:] {
		distSq := grid.points[id].DistanceSq(pos)
		if distSq < bestDistSq || (distSq == bestDistSq && grid.seq[id] < grid.seq[best]) {
			best = id
			bestDistSq = distSq
		}
	}

	return best, true
}

func removeFromBucket(bucket []ecs.EntityID, id ecs.EntityID) []ecs.EntityID {
	for i, candidate := range bucket {
		if candidate == id {
			// compact preserving insertion order
			return append(bucket[:i], bucket[i+1:]...)
		}
	}
	return bucket
}
