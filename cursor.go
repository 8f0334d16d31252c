package depot

import "iter"

var _ iCursor = &Cursor{}

func newCursor(query QueryNode, registry MaskRegistry, driver Manager) *Cursor {
	return &Cursor{
		query:    query,
		registry: registry,
		driver:   driver,
		position: -1,
	}
}

// Next advances to the next matching entity. The driver stays locked from the
// first call until iteration ends or Reset is called, so removals made along
// the way are queued instead of reshuffling the dense array.
func (c *Cursor) Next() bool {
	if !c.initialized {
		c.initialize()
	}
	for c.position+1 < c.driver.Len() {
		c.position++
		id, err := c.driver.EntityAt(c.position)
		if err != nil {
			c.err = err
			break
		}
		if c.matches(id) {
			c.entity = id
			return true
		}
	}
	c.Reset()
	return false
}

// Entities yields (dense position, entity) pairs for every match
func (c *Cursor) Entities() iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		for c.Next() {
			if !yield(c.position, c.entity) {
				c.Reset()
				return
			}
		}
	}
}

func (c *Cursor) initialize() {
	c.driver.Lock()
	c.position = -1
	c.err = nil
	c.initialized = true
}

func (c *Cursor) matches(id int) bool {
	if c.query == nil || c.registry == nil {
		return true
	}
	return c.query.Evaluate(c.registry.Mask(id))
}

// Reset stops iteration and releases the driver, applying anything queued
// meanwhile. Errors from that are kept for Err.
func (c *Cursor) Reset() {
	if c.initialized {
		if err := c.driver.Unlock(); err != nil && c.err == nil {
			c.err = err
		}
	}
	c.position = -1
	c.entity = 0
	c.initialized = false
}

// CurrentEntity returns the dense position and ID of the current match
func (c *Cursor) CurrentEntity() (int, int) {
	return c.position, c.entity
}

// Err reports the first error seen by the last iteration
func (c *Cursor) Err() error {
	return c.err
}

// TotalMatched counts matches without moving the cursor
func (c *Cursor) TotalMatched() int {
	total := 0
	for _, id := range c.driver.Entities() {
		if c.matches(id) {
			total++
		}
	}
	return total
}
