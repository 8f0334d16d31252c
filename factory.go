package depot

type factory struct{}

var Factory factory

// NewSparseSet returns an empty set over the IDs [0, capacity)
func (f factory) NewSparseSet(capacity int) (SparseSet, error) {
	if capacity <= 0 {
		return nil, InvalidConfigError{Reason: "sparse set capacity must be positive"}
	}
	return newSparseSet(capacity, 0), nil
}

func (f factory) NewRegistry() MaskRegistry {
	return newRegistry(0)
}

func (f factory) NewQuery() Query {
	return newQuery()
}

// NewCursor walks driver's dense array, yielding entities whose registry mask
// satisfies query. A nil query matches every member of driver.
func (f factory) NewCursor(query QueryNode, registry MaskRegistry, driver Manager) *Cursor {
	return newCursor(query, registry, driver)
}

func (f factory) NewSpringManager(cfg ManagerConfig, opts ...Option) (*SpringManager, error) {
	return newSpringManager(cfg, opts)
}

func FactoryNewBuffer[T Primitive](capacity int) Buffer[T] {
	return newBuffer[T](capacity)
}

// FactoryNewVectorStore returns a store sized for records records that can
// grow up to maxRecords, or to the global ceiling when maxRecords <= 0
func FactoryNewVectorStore[T Primitive](records, maxRecords int) *VectorStore[T] {
	return newVectorStore[T](records, maxRecords)
}

func FactoryNewCompositeStore[T Primitive](width, records, maxRecords int) (*CompositeStore[T], error) {
	if width <= 0 {
		return nil, InvalidConfigError{Reason: "record width must be positive"}
	}
	return newCompositeStore[T](width, records, maxRecords), nil
}

// FactoryNewFieldManager returns a manager of width-wide records. A nil
// defaults makes Add fail with DefaultUnsupportedError.
func FactoryNewFieldManager[T Primitive](kind Kind, width int, cfg ManagerConfig, defaults []T, opts ...Option) (*FieldManager[T], error) {
	return newFieldManager(kind, width, cfg, defaults, opts)
}

// FactoryNewVec2Manager returns a vector manager. A nil defaultValue makes Add
// fail with DefaultUnsupportedError.
func FactoryNewVec2Manager[T Primitive](kind Kind, cfg ManagerConfig, defaultValue *Vec2[T], opts ...Option) (*Vec2Manager[T], error) {
	return newVec2Manager(kind, cfg, defaultValue, opts)
}
