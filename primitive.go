package depot

// Primitive is the set of fixed-width element types a Buffer can hold
type Primitive interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Vec2 is a plain two-lane value. Getters hand out copies, so a Vec2 obtained
// from a manager never aliases storage.
type Vec2[T Primitive] struct {
	X, Y T
}

// Position, Velocity and Force are the record types behind the built-in
// vector kinds
type (
	Position Vec2[float64]
	Velocity Vec2[float64]
	Force    Vec2[float64]
)

// Mass is the record type behind MassKind
type Mass float64

// Spring links two entities with a rest length and a stiffness constant
type Spring struct {
	A, B       int
	RestLength float64
	Stiffness  float64
}
