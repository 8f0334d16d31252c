package depot

import (
	"errors"

	"github.com/rotisserie/eris"
)

type operation struct {
	typ   operationType
	id    int
	apply func() error
}

type operationType int

const (
	opNone operationType = iota
	opAdd
	opRemove
)

type opQueue struct {
	addOps        []operation
	removeOps     []operation
	pendingRemove map[int]struct{}
	pendingAdds   map[int]int
}

func newOpQueue() opQueue {
	return opQueue{
		pendingRemove: make(map[int]struct{}),
		pendingAdds:   make(map[int]int),
	}
}

func (q *opQueue) Len() int {
	return len(q.pendingAdds) + len(q.pendingRemove)
}

// EnqueueAdd queues apply for id. Callers reject adds for an entity pending
// removal first; any that get here are dropped. A second add for the same
// entity replaces the first.
func (q *opQueue) EnqueueAdd(id int, apply func() error) {
	if _, removing := q.pendingRemove[id]; removing {
		return
	}
	if existingIdx, exists := q.pendingAdds[id]; exists {
		q.addOps[existingIdx].apply = apply
		return
	}
	q.pendingAdds[id] = len(q.addOps)
	q.addOps = append(q.addOps, operation{
		typ:   opAdd,
		id:    id,
		apply: apply,
	})
}

func (q *opQueue) EnqueueRemove(id int) {
	if _, exists := q.pendingRemove[id]; exists {
		return
	}
	q.pendingRemove[id] = struct{}{}
	q.removeOps = append(q.removeOps, operation{
		typ: opRemove,
		id:  id,
	})
}

// Removing reports whether id has a queued remove
func (q *opQueue) Removing(id int) bool {
	_, exists := q.pendingRemove[id]
	return exists
}

// CancelAdd turns a queued add for id into a no-op and reports whether there
// was one
func (q *opQueue) CancelAdd(id int) bool {
	idx, exists := q.pendingAdds[id]
	if !exists {
		return false
	}
	q.addOps[idx].typ = opNone
	delete(q.pendingAdds, id)
	return true
}

func (q *opQueue) reset() {
	q.addOps = q.addOps[:0]
	q.removeOps = q.removeOps[:0]
	clear(q.pendingRemove)
	clear(q.pendingAdds)
}

// processOperationQueue applies every queued operation, even after one fails,
// and returns the failures joined
func (c *core) processOperationQueue() error {
	if len(c.queue.addOps) == 0 && len(c.queue.removeOps) == 0 {
		return nil
	}
	defer c.queue.reset()

	c.log.Debug().
		Int("adds", len(c.queue.addOps)).
		Int("removes", len(c.queue.removeOps)).
		Msg("applying deferred operations")

	var errs []error

	// Process adds first
	for _, op := range c.queue.addOps {
		if op.typ != opAdd {
			continue
		}
		if err := op.apply(); err != nil {
			errs = append(errs, eris.Wrapf(err, "failed to apply queued add for entity %d", op.id))
		}
	}

	// Process removes last
	for _, op := range c.queue.removeOps {
		if err := c.remove(op.id); err != nil {
			errs = append(errs, eris.Wrapf(err, "failed to apply queued remove for entity %d", op.id))
		}
	}

	if len(errs) > 0 {
		c.log.Debug().Int("failed", len(errs)).Msg("deferred operations failed")
	}
	return errors.Join(errs...)
}
