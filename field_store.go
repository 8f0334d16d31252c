package depot

// lane is the part of a field store a manager drives: sizing plus the record
// moves that keep it in step with the sparse set
type lane interface {
	Records() int
	Grow() error
	Trim(records int) error
	move(dst, src int)
	zero(key int)
}

var (
	_ lane = &VectorStore[float64]{}
	_ lane = &CompositeStore[float64]{}
)

// fieldStore interleaves width values per record in one buffer. The buffer's
// length is its capacity in slots and is always a multiple of width.
type fieldStore[T Primitive] struct {
	width      int
	maxRecords int
	slots      *buffer[T]
}

func newFieldStore[T Primitive](width, records, maxRecords int) *fieldStore[T] {
	if maxRecords <= 0 {
		maxRecords = Config.maxRecords
	}
	maxRecords = min(maxRecords, Config.maxRecords)
	records = min(max(records, 0), maxRecords)
	slots := newBuffer[T](0)
	slots.resize(records * width)
	return &fieldStore[T]{
		width:      width,
		maxRecords: maxRecords,
		slots:      slots,
	}
}

func (s *fieldStore[T]) Width() int {
	return s.width
}

// Records is the number of records the store can hold without growing
func (s *fieldStore[T]) Records() int {
	return s.slots.Len() / s.width
}

func (s *fieldStore[T]) Slots() int {
	return s.slots.Len()
}

// MaxRecords is the ceiling Grow stops at: the store's own limit or the
// global one, whichever is lower
func (s *fieldStore[T]) MaxRecords() int {
	return min(s.maxRecords, Config.maxRecords)
}

// Grow adds half the current capacity, rounded up to whole records and
// clamped to MaxRecords. It never runs implicitly.
func (s *fieldStore[T]) Grow() error {
	current := s.slots.Len()
	ceiling := s.MaxRecords() * s.width
	if current >= ceiling {
		return MaxCapacityError{Records: current / s.width}
	}
	next := max(current+(current+1)/2, current+s.width)
	next = (next + s.width - 1) / s.width * s.width
	next = min(next, ceiling)
	s.slots.resize(next)
	return nil
}

// Trim drops the last records records of capacity
func (s *fieldStore[T]) Trim(records int) error {
	slots := records * s.width
	if records < 0 || slots > s.slots.Len() {
		return TrimError{Slots: slots, Capacity: s.slots.Len()}
	}
	s.slots.resize(s.slots.Len() - slots)
	return nil
}

// Clear zeroes every record, capacity is kept
func (s *fieldStore[T]) Clear() {
	var zero T
	s.slots.Fill(zero)
}

func (s *fieldStore[T]) move(dst, src int) {
	w := s.width
	copy(s.slots.items[dst*w:dst*w+w], s.slots.items[src*w:src*w+w])
}

func (s *fieldStore[T]) zero(key int) {
	w := s.width
	clear(s.slots.items[key*w : key*w+w])
}

// VectorStore holds two interleaved lanes, x and y. Read and Write do no
// bounds or presence checks; the owning manager guarantees the key.
type VectorStore[T Primitive] struct {
	*fieldStore[T]
}

func newVectorStore[T Primitive](records, maxRecords int) *VectorStore[T] {
	return &VectorStore[T]{fieldStore: newFieldStore[T](2, records, maxRecords)}
}

func (s *VectorStore[T]) Read(key int) (T, T) {
	i := key * 2
	return s.slots.items[i], s.slots.items[i+1]
}

func (s *VectorStore[T]) Write(key int, x, y T) {
	i := key * 2
	s.slots.items[i] = x
	s.slots.items[i+1] = y
}

// CompositeStore holds Width interleaved lanes per record. Like VectorStore
// it trusts its caller with keys.
type CompositeStore[T Primitive] struct {
	*fieldStore[T]
}

func newCompositeStore[T Primitive](width, records, maxRecords int) *CompositeStore[T] {
	return &CompositeStore[T]{fieldStore: newFieldStore[T](width, records, maxRecords)}
}

func (s *CompositeStore[T]) Field(key, field int) T {
	return s.slots.items[key*s.width+field]
}

func (s *CompositeStore[T]) SetField(key, field int, value T) {
	s.slots.items[key*s.width+field] = value
}

// ReadInto copies the record at key into dst, which must hold at least Width
// values.
func (s *CompositeStore[T]) ReadInto(key int, dst []T) error {
	if len(dst) < s.width {
		return RecordSizeError{Got: len(dst), Want: s.width}
	}
	i := key * s.width
	copy(dst, s.slots.items[i:i+s.width])
	return nil
}

// View aliases the record at key. It is invalidated by Grow and Trim.
func (s *CompositeStore[T]) View(key int) []T {
	i := key * s.width
	return s.slots.items[i : i+s.width : i+s.width]
}

// Write copies the first Width values into the record at key
func (s *CompositeStore[T]) Write(key int, values ...T) {
	i := key * s.width
	copy(s.slots.items[i:i+s.width], values)
}
