package depot

import "github.com/TheBitDrifter/mask"

var _ MaskRegistry = &registry{}

// registry keeps one component mask per entity ID, growing on demand. Entity
// allocation stays with the caller.
type registry struct {
	masks []mask.Mask
}

func newRegistry(capacity int) *registry {
	return &registry{masks: make([]mask.Mask, 0, max(capacity, 0))}
}

func (r *registry) AddComponentBit(id int, tag Tag) {
	if id < 0 {
		return
	}
	if id >= len(r.masks) {
		r.masks = append(r.masks, make([]mask.Mask, id+1-len(r.masks))...)
	}
	r.masks[id].Mark(uint32(tag))
}

func (r *registry) RemoveComponentBit(id int, tag Tag) {
	if id < 0 || id >= len(r.masks) {
		return
	}
	r.masks[id].Unmark(uint32(tag))
}

func (r *registry) Mask(id int) mask.Mask {
	if id < 0 || id >= len(r.masks) {
		return mask.Mask{}
	}
	return r.masks[id]
}

func (r *registry) Has(id int, tag Tag) bool {
	return r.Mask(id).ContainsAll(tag.Mask())
}

func (r *registry) Reset(id int) {
	if id < 0 || id >= len(r.masks) {
		return
	}
	r.masks[id] = mask.Mask{}
}
