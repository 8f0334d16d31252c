package depot

import "iter"

var _ SparseSet = &sparseSet{}

const absent = -1

type sparseSet struct {
	sparse []int
	dense  *buffer[int]
}

func newSparseSet(capacity, initialDense int) *sparseSet {
	sparse := make([]int, capacity)
	for i := range sparse {
		sparse[i] = absent
	}
	return &sparseSet{
		sparse: sparse,
		dense:  newBuffer[int](min(initialDense, capacity)),
	}
}

func (s *sparseSet) Add(id int) (bool, error) {
	if id < 0 || id >= len(s.sparse) {
		return false, EntityOutOfRangeError{Entity: id, Capacity: len(s.sparse)}
	}
	if s.sparse[id] != absent {
		return false, nil
	}
	s.sparse[id] = s.dense.Len()
	s.dense.Append(id)
	return true, nil
}

func (s *sparseSet) Remove(id int) bool {
	_, _, ok := s.swapRemove(id)
	return ok
}

// swapRemove moves the last dense member into the slot of id and pops the
// tail. It reports the pair of positions involved so paired field storage can
// make the identical move.
func (s *sparseSet) swapRemove(id int) (removedPos, lastPos int, ok bool) {
	if !s.Contains(id) {
		return 0, 0, false
	}
	removedPos = s.sparse[id]
	lastPos = s.dense.Len() - 1
	lastID := s.dense.items[lastPos]

	s.dense.items[removedPos] = lastID
	s.sparse[lastID] = removedPos
	s.dense.pop()
	s.sparse[id] = absent
	return removedPos, lastPos, true
}

func (s *sparseSet) Contains(id int) bool {
	return id >= 0 && id < len(s.sparse) && s.sparse[id] != absent
}

func (s *sparseSet) DenseIndexOf(id int) (int, error) {
	if id < 0 || id >= len(s.sparse) {
		return 0, EntityOutOfRangeError{Entity: id, Capacity: len(s.sparse)}
	}
	if s.sparse[id] == absent {
		return 0, EntityNotFoundError{Entity: id}
	}
	return s.sparse[id], nil
}

func (s *sparseSet) EntityAt(index int) (int, error) {
	return s.dense.Get(index)
}

func (s *sparseSet) Len() int {
	return s.dense.Len()
}

func (s *sparseSet) Capacity() int {
	return len(s.sparse)
}

// Entities yields (dense position, entity) pairs in dense order. The order
// changes after any removal.
func (s *sparseSet) Entities() iter.Seq2[int, int] {
	return s.dense.Values()
}

func (s *sparseSet) IDs() iter.Seq[int] {
	return func(yield func(int) bool) {
		for _, id := range s.dense.items {
			if !yield(id) {
				return
			}
		}
	}
}

func (s *sparseSet) Snapshot() []int {
	return s.dense.Snapshot()
}

func (s *sparseSet) Clear() {
	for _, id := range s.dense.items {
		s.sparse[id] = absent
	}
	s.dense.Clear()
}
