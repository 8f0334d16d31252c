package depot

import (
	"reflect"

	"github.com/TheBitDrifter/mask"
	"github.com/TheBitDrifter/table"
)

// kinds assigns every registered record type a stable row, which doubles as
// its registry bit
var kinds = table.Factory.NewSchema()

// Built-in component kinds
var (
	PositionKind = FactoryNewKind[Position]()
	VelocityKind = FactoryNewKind[Velocity]()
	ForceKind    = FactoryNewKind[Force]()
	MassKind     = FactoryNewKind[Mass]()
	SpringKind   = FactoryNewKind[Spring]()
)

// Tag is the presence bit a Kind occupies in an entity's component mask
type Tag uint32

// Mask returns a mask with only this tag marked
func (t Tag) Mask() mask.Mask {
	var m mask.Mask
	m.Mark(uint32(t))
	return m
}

// Kind identifies one component type. Kinds are created once, usually as
// package level vars, and compared by Tag.
type Kind struct {
	table.ElementType
	tag  Tag
	name string
}

// FactoryNewKind registers T and returns its Kind. Call it once per type.
func FactoryNewKind[T any]() Kind {
	elementType := table.FactoryNewElementType[T]()
	kinds.Register(elementType)
	return Kind{
		ElementType: elementType,
		tag:         Tag(kinds.RowIndexFor(elementType)),
		name:        reflect.TypeFor[T]().String(),
	}
}

func (k Kind) Tag() Tag {
	return k.tag
}

func (k Kind) Name() string {
	return k.name
}

func (k Kind) String() string {
	return k.name
}

// Kinds is a set of kinds that can be folded into a single mask
type Kinds []Kind

func (ks Kinds) Mask() mask.Mask {
	var m mask.Mask
	for _, k := range ks {
		m.Mark(uint32(k.tag))
	}
	return m
}
