package depot

import (
	"iter"

	"github.com/TheBitDrifter/mask"
)

// Buffer is a growable, contiguous block of primitive values
type Buffer[T Primitive] interface {
	Len() int
	Cap() int
	Get(index int) (T, error)
	Set(index int, value T) error
	Append(values ...T)
	InsertAt(index int, value T) error
	RemoveAt(index int) (T, error)
	RemoveValue(value T) bool
	IndexOf(value T) int
	Contains(value T) bool
	Fill(value T)
	Clear()
	Reserve(capacity int)
	Shrink()
	Snapshot() []T
	Values() iter.Seq2[int, T]
}

// SparseSet maps entity IDs in [0, Capacity()) to dense positions
type SparseSet interface {
	Add(id int) (bool, error)
	Remove(id int) bool
	Contains(id int) bool
	DenseIndexOf(id int) (int, error)
	EntityAt(index int) (int, error)
	Len() int
	Capacity() int
	Entities() iter.Seq2[int, int]
	IDs() iter.Seq[int]
	Snapshot() []int
	Clear()
}

// Registry is the entity registry managers report presence changes to. Each
// method is called exactly once per successful add or remove.
type Registry interface {
	AddComponentBit(id int, tag Tag)
	RemoveComponentBit(id int, tag Tag)
}

// MaskRegistry is a Registry that can report an entity's full component mask
type MaskRegistry interface {
	Registry
	Mask(id int) mask.Mask
	Has(id int, tag Tag) bool
	Reset(id int)
}

// Manager is the contract every component manager implements
type Manager interface {
	Kind() Kind
	Indexing() Indexing
	Add(id int) error
	Remove(id int) error
	Contains(id int) bool
	Len() int
	EntityAt(index int) (int, error)
	Entities() iter.Seq2[int, int]
	Capacity() int
	MaxCapacity() int
	MaxEntities() int
	Compact() error
	Locked() bool
	Lock()
	Unlock() error
	EnqueueRemove(id int) error
}

// VectorView is the read-only face of a vector component. Systems that only
// consume a vector take this instead of the manager.
type VectorView[T Primitive] interface {
	Kind() Kind
	Contains(id int) bool
	Len() int
	EntityAt(index int) (int, error)
	Entities() iter.Seq2[int, int]
	Vec(id int) (Vec2[T], error)
}

type Query interface {
	QueryNode
	And(items ...interface{}) QueryNode
	Or(items ...interface{}) QueryNode
	Not(items ...interface{}) QueryNode
}

type QueryNode interface {
	Evaluate(m mask.Mask) bool
}

type iCursor interface {
	Entities() iter.Seq2[int, int]
	Next() bool
}

// Cursor walks one manager's dense array, yielding the entities whose
// registry mask satisfies a query
type Cursor struct {
	// The query to filter entities, nil matches everything
	query QueryNode

	// Where entity masks are read from
	registry MaskRegistry

	// The manager whose dense array is walked
	driver Manager

	// Current iteration state
	position int
	entity   int

	initialized bool
	err         error
}
