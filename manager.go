package depot

import (
	"iter"

	"github.com/rs/zerolog"
)

// Indexing selects how a manager keys its field storage
type Indexing int

const (
	// SparseIndex keys records by dense position, for components only some
	// entities carry
	SparseIndex Indexing = iota
	// DirectIndex keys records by entity ID, for components nearly every
	// entity carries
	DirectIndex
)

func (i Indexing) String() string {
	switch i {
	case SparseIndex:
		return "sparse"
	case DirectIndex:
		return "direct"
	}
	return "unknown"
}

type Option func(*options)

type options struct {
	indexing Indexing
	registry Registry
	logger   zerolog.Logger
}

func WithIndexing(indexing Indexing) Option {
	return func(o *options) {
		o.indexing = indexing
	}
}

// WithRegistry sets the registry notified on every add and remove. Without
// one the manager tracks presence on its own.
func WithRegistry(registry Registry) Option {
	return func(o *options) {
		o.registry = registry
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// core is the presence half every manager shares: the sparse set, the
// registry link, the deferred queue and the lanes that must move with the
// sparse set
type core struct {
	kind        Kind
	indexing    Indexing
	set         *sparseSet
	lanes       []lane
	registry    Registry
	initial     int
	maxCapacity int
	maxEntities int
	locks       int
	queue       opQueue
	log         zerolog.Logger
}

func newCore(kind Kind, cfg ManagerConfig, opts []Option) (*core, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := options{
		indexing: SparseIndex,
		logger:   Config.logger,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &core{
		kind:        kind,
		indexing:    o.indexing,
		set:         newSparseSet(cfg.MaxCapacity, cfg.InitialCapacity),
		registry:    o.registry,
		initial:     cfg.InitialCapacity,
		maxCapacity: cfg.MaxCapacity,
		maxEntities: cfg.maxEntities(),
		queue:       newOpQueue(),
		log:         o.logger.With().Str("kind", kind.Name()).Str("indexing", o.indexing.String()).Logger(),
	}, nil
}

func (c *core) Kind() Kind {
	return c.kind
}

func (c *core) Indexing() Indexing {
	return c.indexing
}

func (c *core) Contains(id int) bool {
	return c.set.Contains(id)
}

func (c *core) Len() int {
	return c.set.Len()
}

func (c *core) EntityAt(index int) (int, error) {
	return c.set.EntityAt(index)
}

// Entities yields (dense position, entity) pairs. Dense order changes after
// any removal, so positions must not be kept across one.
func (c *core) Entities() iter.Seq2[int, int] {
	return c.set.Entities()
}

// Capacity is the number of records every field lane can hold right now
func (c *core) Capacity() int {
	if len(c.lanes) == 0 {
		return 0
	}
	capacity := c.lanes[0].Records()
	for _, l := range c.lanes[1:] {
		capacity = min(capacity, l.Records())
	}
	return capacity
}

func (c *core) MaxCapacity() int {
	return c.maxCapacity
}

// MaxEntities is how many entities may hold the component at once
func (c *core) MaxEntities() int {
	return c.maxEntities
}

// recordLimit bounds field storage. Sparse keys never reach the entity
// budget, direct keys are entity IDs.
func (c *core) recordLimit() int {
	if c.indexing == SparseIndex {
		return c.maxEntities
	}
	return c.maxCapacity
}

// Key returns the field storage key for id, for use with the unchecked store
// accessors
func (c *core) Key(id int) (int, error) {
	if !c.set.Contains(id) {
		return 0, ComponentNotFoundError{Entity: id, Kind: c.kind}
	}
	return c.key(id), nil
}

func (c *core) key(id int) int {
	if c.indexing == DirectIndex {
		return id
	}
	return c.set.sparse[id]
}

func (c *core) checkAdd(id int) error {
	if c.locks > 0 {
		return LockedManagerError{Kind: c.kind}
	}
	if id < 0 || id >= c.maxCapacity {
		return EntityOutOfRangeError{Entity: id, Capacity: c.maxCapacity}
	}
	if c.set.Contains(id) {
		return ComponentExistsError{Entity: id, Kind: c.kind}
	}
	if c.set.Len() >= c.maxEntities {
		return CapacityReachedError{Kind: c.kind, Capacity: c.maxEntities}
	}
	return nil
}

// insert validates id, makes room in every lane and claims a key for it. The
// caller writes its fields at the key and then calls commit.
func (c *core) insert(id int) (int, error) {
	if err := c.checkAdd(id); err != nil {
		return 0, err
	}
	key := id
	if c.indexing == SparseIndex {
		key = c.set.Len()
	}
	if err := c.reserve(key); err != nil {
		return 0, err
	}
	c.set.Add(id)
	return key, nil
}

func (c *core) commit(id int) {
	if c.registry != nil {
		c.registry.AddComponentBit(id, c.kind.tag)
	}
}

// reserve grows lanes until key fits. Growth only changes capacity, so a
// failure here leaves the manager's contents untouched.
func (c *core) reserve(key int) error {
	for _, l := range c.lanes {
		for key >= l.Records() {
			from := l.Records()
			if err := l.Grow(); err != nil {
				return err
			}
			c.log.Debug().Int("from", from).Int("to", l.Records()).Msg("grew field storage")
		}
	}
	return nil
}

func (c *core) remove(id int) error {
	if c.locks > 0 {
		return LockedManagerError{Kind: c.kind}
	}
	if !c.set.Contains(id) {
		return ComponentNotFoundError{Entity: id, Kind: c.kind}
	}
	if c.indexing == DirectIndex {
		c.set.Remove(id)
		for _, l := range c.lanes {
			l.zero(id)
		}
	} else {
		removedPos, lastPos, _ := c.set.swapRemove(id)
		for _, l := range c.lanes {
			if removedPos != lastPos {
				l.move(removedPos, lastPos)
			}
			l.zero(lastPos)
		}
	}
	if c.registry != nil {
		c.registry.RemoveComponentBit(id, c.kind.tag)
	}
	return nil
}

// Compact trims every lane down to the records in use, but never below the
// initial capacity
func (c *core) Compact() error {
	if c.locks > 0 {
		return LockedManagerError{Kind: c.kind}
	}
	needed := c.set.Len()
	if c.indexing == DirectIndex {
		needed = 0
		for _, id := range c.set.dense.items {
			needed = max(needed, id+1)
		}
	}
	needed = max(needed, c.initial)
	for _, l := range c.lanes {
		excess := l.Records() - needed
		if excess <= 0 {
			continue
		}
		if err := l.Trim(excess); err != nil {
			return err
		}
		c.log.Debug().Int("trimmed", excess).Int("records", l.Records()).Msg("compacted field storage")
	}
	return nil
}

func (c *core) Locked() bool {
	return c.locks > 0
}

// Lock defers structural changes until the matching Unlock. Locks nest.
func (c *core) Lock() {
	c.locks++
}

// Unlock releases one lock and, once none remain, applies queued changes
func (c *core) Unlock() error {
	if c.locks == 0 {
		return nil
	}
	c.locks--
	if c.locks > 0 {
		return nil
	}
	return c.processOperationQueue()
}

// EnqueueRemove removes id now when unlocked, or once the last lock is
// released
func (c *core) EnqueueRemove(id int) error {
	if c.locks == 0 {
		return c.remove(id)
	}
	if c.queue.CancelAdd(id) && !c.set.Contains(id) {
		return nil
	}
	if !c.set.Contains(id) {
		return ComponentNotFoundError{Entity: id, Kind: c.kind}
	}
	c.queue.EnqueueRemove(id)
	return nil
}

func (c *core) enqueueAdd(id int, apply func() error) error {
	if c.locks == 0 {
		return apply()
	}
	if id < 0 || id >= c.maxCapacity {
		return EntityOutOfRangeError{Entity: id, Capacity: c.maxCapacity}
	}
	// Still present until the queued remove runs
	if c.queue.Removing(id) {
		return ComponentExistsError{Entity: id, Kind: c.kind}
	}
	c.queue.EnqueueAdd(id, apply)
	return nil
}
