package depot

import "slices"

var (
	_ Manager             = &FieldManager[float64]{}
	_ Manager             = &Vec2Manager[float64]{}
	_ VectorView[float64] = &Vec2Manager[float64]{}
)

// FieldManager stores a fixed-width record of T per entity. One generic type
// serves every kind; the kind only decides the registry bit.
type FieldManager[T Primitive] struct {
	*core
	store    *CompositeStore[T]
	defaults []T
}

func newFieldManager[T Primitive](kind Kind, width int, cfg ManagerConfig, defaults []T, opts []Option) (*FieldManager[T], error) {
	if width <= 0 {
		return nil, InvalidConfigError{Reason: "record width must be positive"}
	}
	if defaults != nil && len(defaults) != width {
		return nil, RecordSizeError{Got: len(defaults), Want: width}
	}
	c, err := newCore(kind, cfg, opts)
	if err != nil {
		return nil, err
	}
	store := newCompositeStore[T](width, cfg.InitialCapacity, c.recordLimit())
	c.lanes = []lane{store}
	c.log.Debug().
		Int("width", width).
		Int("initial_capacity", cfg.InitialCapacity).
		Int("max_capacity", cfg.MaxCapacity).
		Int("max_entities", c.maxEntities).
		Msg("created field manager")
	return &FieldManager[T]{
		core:     c,
		store:    store,
		defaults: slices.Clone(defaults),
	}, nil
}

func (m *FieldManager[T]) Width() int {
	return m.store.width
}

// Store exposes the unchecked field storage. Keys come from Key or from
// dense positions of a sparse-indexed manager.
func (m *FieldManager[T]) Store() *CompositeStore[T] {
	return m.store
}

// Add attaches the component with its default record
func (m *FieldManager[T]) Add(id int) error {
	if m.defaults == nil {
		return DefaultUnsupportedError{Kind: m.kind}
	}
	return m.AddRecord(id, m.defaults...)
}

func (m *FieldManager[T]) AddRecord(id int, values ...T) error {
	if len(values) != m.store.width {
		return RecordSizeError{Got: len(values), Want: m.store.width}
	}
	key, err := m.insert(id)
	if err != nil {
		return err
	}
	m.store.Write(key, values...)
	m.commit(id)
	return nil
}

func (m *FieldManager[T]) EnqueueAdd(id int) error {
	if m.defaults == nil {
		return DefaultUnsupportedError{Kind: m.kind}
	}
	return m.EnqueueAddRecord(id, m.defaults...)
}

// EnqueueAddRecord adds now when unlocked, otherwise once the last lock is
// released. values are copied.
func (m *FieldManager[T]) EnqueueAddRecord(id int, values ...T) error {
	if len(values) != m.store.width {
		return RecordSizeError{Got: len(values), Want: m.store.width}
	}
	record := slices.Clone(values)
	return m.enqueueAdd(id, func() error {
		return m.AddRecord(id, record...)
	})
}

func (m *FieldManager[T]) Remove(id int) error {
	return m.remove(id)
}

// Record returns a copy of the record for id
func (m *FieldManager[T]) Record(id int) ([]T, error) {
	record := make([]T, m.store.width)
	if err := m.ReadRecord(id, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (m *FieldManager[T]) ReadRecord(id int, dst []T) error {
	key, err := m.Key(id)
	if err != nil {
		return err
	}
	return m.store.ReadInto(key, dst)
}

func (m *FieldManager[T]) Field(id, field int) (T, error) {
	var zero T
	if field < 0 || field >= m.store.width {
		return zero, IndexOutOfRangeError{Index: field, Length: m.store.width}
	}
	key, err := m.Key(id)
	if err != nil {
		return zero, err
	}
	return m.store.Field(key, field), nil
}

func (m *FieldManager[T]) SetRecord(id int, values ...T) error {
	if len(values) != m.store.width {
		return RecordSizeError{Got: len(values), Want: m.store.width}
	}
	key, err := m.Key(id)
	if err != nil {
		return err
	}
	m.store.Write(key, values...)
	return nil
}

func (m *FieldManager[T]) SetField(id, field int, value T) error {
	if field < 0 || field >= m.store.width {
		return IndexOutOfRangeError{Index: field, Length: m.store.width}
	}
	key, err := m.Key(id)
	if err != nil {
		return err
	}
	m.store.SetField(key, field, value)
	return nil
}

// Vec2Manager is a FieldManager of width two with vector shaped accessors
type Vec2Manager[T Primitive] struct {
	*FieldManager[T]
	vectors *VectorStore[T]
}

func newVec2Manager[T Primitive](kind Kind, cfg ManagerConfig, defaultValue *Vec2[T], opts []Option) (*Vec2Manager[T], error) {
	var defaults []T
	if defaultValue != nil {
		defaults = []T{defaultValue.X, defaultValue.Y}
	}
	fm, err := newFieldManager(kind, 2, cfg, defaults, opts)
	if err != nil {
		return nil, err
	}
	return &Vec2Manager[T]{
		FieldManager: fm,
		vectors:      &VectorStore[T]{fieldStore: fm.store.fieldStore},
	}, nil
}

// Vectors exposes the unchecked vector storage, sharing memory with Store
func (m *Vec2Manager[T]) Vectors() *VectorStore[T] {
	return m.vectors
}

func (m *Vec2Manager[T]) AddVec(id int, v Vec2[T]) error {
	return m.AddRecord(id, v.X, v.Y)
}

func (m *Vec2Manager[T]) EnqueueAddVec(id int, v Vec2[T]) error {
	return m.EnqueueAddRecord(id, v.X, v.Y)
}

func (m *Vec2Manager[T]) Vec(id int) (Vec2[T], error) {
	key, err := m.Key(id)
	if err != nil {
		return Vec2[T]{}, err
	}
	x, y := m.vectors.Read(key)
	return Vec2[T]{X: x, Y: y}, nil
}

func (m *Vec2Manager[T]) SetVec(id int, v Vec2[T]) error {
	key, err := m.Key(id)
	if err != nil {
		return err
	}
	m.vectors.Write(key, v.X, v.Y)
	return nil
}
