package spatialbattle

import (
	uuid "github.com/satori/go.uuid"

	"github.com/battlearena/battlearena/game/common"
)

func (battle *SpatialBattle) CastCreature(data interface{}) *CreatureRef {
	return data.(*CreatureRef)
}

// CreatureRef binds an externally-defined creature (stats, abilities,
// traits) to its battle entity. The core reads through the interface and
// never owns the creature's definition.
type CreatureRef struct {
	Creature common.Creature
	PublicID uuid.UUID
}

func NewCreatureRef(creature common.Creature) *CreatureRef {
	return &CreatureRef{
		Creature: creature,
		PublicID: uuid.NewV4(),
	}
}
