package depot

import (
	"iter"

	iter_util "github.com/TheBitDrifter/util/iter"
)

var _ Manager = &SpringManager{}

const (
	springA = iota
	springB
)

const (
	springRestLength = iota
	springStiffness
)

// SpringManager keeps Spring records. The endpoint references and the
// scalar parameters live in two lanes that move together on removal.
type SpringManager struct {
	*core
	ends   *CompositeStore[int]
	params *CompositeStore[float64]
}

func newSpringManager(cfg ManagerConfig, opts []Option) (*SpringManager, error) {
	c, err := newCore(SpringKind, cfg, opts)
	if err != nil {
		return nil, err
	}
	m := &SpringManager{
		core:   c,
		ends:   newCompositeStore[int](2, cfg.InitialCapacity, c.recordLimit()),
		params: newCompositeStore[float64](2, cfg.InitialCapacity, c.recordLimit()),
	}
	c.lanes = []lane{m.ends, m.params}
	return m, nil
}

// Ends exposes the unchecked endpoint lane, records are (A, B)
func (m *SpringManager) Ends() *CompositeStore[int] {
	return m.ends
}

// Params exposes the unchecked parameter lane, records are
// (rest length, stiffness)
func (m *SpringManager) Params() *CompositeStore[float64] {
	return m.params
}

// Add always fails: a spring needs both endpoints
func (m *SpringManager) Add(id int) error {
	return DefaultUnsupportedError{Kind: m.kind}
}

func (m *SpringManager) AddSpring(id int, s Spring) error {
	if err := m.checkEndpoints(s); err != nil {
		return err
	}
	key, err := m.insert(id)
	if err != nil {
		return err
	}
	m.ends.Write(key, s.A, s.B)
	m.params.Write(key, s.RestLength, s.Stiffness)
	m.commit(id)
	return nil
}

func (m *SpringManager) EnqueueAddSpring(id int, s Spring) error {
	if err := m.checkEndpoints(s); err != nil {
		return err
	}
	return m.enqueueAdd(id, func() error {
		return m.AddSpring(id, s)
	})
}

func (m *SpringManager) Remove(id int) error {
	return m.remove(id)
}

func (m *SpringManager) Spring(id int) (Spring, error) {
	key, err := m.Key(id)
	if err != nil {
		return Spring{}, err
	}
	return Spring{
		A:          m.ends.Field(key, springA),
		B:          m.ends.Field(key, springB),
		RestLength: m.params.Field(key, springRestLength),
		Stiffness:  m.params.Field(key, springStiffness),
	}, nil
}

func (m *SpringManager) Endpoints(id int) (int, int, error) {
	key, err := m.Key(id)
	if err != nil {
		return 0, 0, err
	}
	return m.ends.Field(key, springA), m.ends.Field(key, springB), nil
}

func (m *SpringManager) SetParams(id int, restLength, stiffness float64) error {
	key, err := m.Key(id)
	if err != nil {
		return err
	}
	m.params.Write(key, restLength, stiffness)
	return nil
}

// Attached lists the spring entities with entity as either endpoint, in
// dense order
func (m *SpringManager) Attached(entity int) []int {
	return iter_util.Collect(m.attached(entity))
}

// RemoveAttached removes, or queues for removal when locked, every spring
// attached to entity. It is meant for when the endpoint itself goes away.
func (m *SpringManager) RemoveAttached(entity int) (int, error) {
	attached := m.Attached(entity)
	for i, id := range attached {
		if err := m.EnqueueRemove(id); err != nil {
			return i, err
		}
	}
	return len(attached), nil
}

func (m *SpringManager) attached(entity int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for pos, id := range m.set.Entities() {
			key := pos
			if m.indexing == DirectIndex {
				key = id
			}
			if m.ends.Field(key, springA) != entity && m.ends.Field(key, springB) != entity {
				continue
			}
			if !yield(id) {
				return
			}
		}
	}
}

// checkEndpoints bounds both endpoints by the manager's ID space
func (m *SpringManager) checkEndpoints(s Spring) error {
	for _, end := range [2]int{s.A, s.B} {
		if end < 0 || end >= m.maxCapacity {
			return EntityOutOfRangeError{Entity: end, Capacity: m.maxCapacity}
		}
	}
	return nil
}
