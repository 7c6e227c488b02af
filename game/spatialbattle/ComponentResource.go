package spatialbattle

import (
	uuid "github.com/satori/go.uuid"

	"github.com/battlearena/battlearena/common/utils/vector"
)

func (battle *SpatialBattle) CastResource(data interface{}) *Resource {
	return data.(*Resource)
}

// Resource is a consumable food item. Position is fixed at spawn; the
// arena's grid entry mirrors it for the resource's whole life.
type Resource struct {
	Position  vector.Vector2
	Nutrition float64
	PublicID  uuid.UUID
}

func NewResource(position vector.Vector2, nutrition float64) *Resource {
	return &Resource{
		Position:  position,
		Nutrition: nutrition,
		PublicID:  uuid.NewV4(),
	}
}
