package depot

import (
	"github.com/TheBitDrifter/mask"
)

type Operation int

const (
	OpAnd Operation = iota
	OpOr
	OpNot
)

type compositeNode struct {
	op       Operation
	children []QueryNode
	mask     mask.Mask
}

type query struct {
	root QueryNode
}

func newQuery() Query {
	return &query{}
}

func newCompositeNode(op Operation, nodeMask mask.Mask, children []QueryNode) *compositeNode {
	return &compositeNode{
		op:       op,
		children: children,
		mask:     nodeMask,
	}
}

func (n *compositeNode) Evaluate(m mask.Mask) bool {
	switch n.op {
	case OpAnd:
		if !m.ContainsAll(n.mask) {
			return false
		}
		for _, child := range n.children {
			if !child.Evaluate(m) {
				return false
			}
		}
		return true

	case OpOr:
		if m.ContainsAny(n.mask) {
			return true
		}
		for _, child := range n.children {
			if child.Evaluate(m) {
				return true
			}
		}
		return false

	case OpNot:
		for _, child := range n.children {
			if child.Evaluate(m) {
				return false
			}
		}
		return m.ContainsNone(n.mask)
	}
	return false
}

func (q *query) And(items ...interface{}) QueryNode {
	return q.node(OpAnd, items)
}

func (q *query) Or(items ...interface{}) QueryNode {
	return q.node(OpOr, items)
}

func (q *query) Not(items ...interface{}) QueryNode {
	return q.node(OpNot, items)
}

func (q *query) node(op Operation, items []interface{}) QueryNode {
	nodeMask, children := q.processItems(items...)
	node := newCompositeNode(op, nodeMask, children)
	if q.root == nil {
		q.root = node
	}
	return node
}

// processItems accepts kinds, tags and nested nodes
func (q *query) processItems(items ...interface{}) (mask.Mask, []QueryNode) {
	var nodeMask mask.Mask
	children := make([]QueryNode, 0)

	for _, item := range items {
		switch v := item.(type) {
		case Kind:
			nodeMask.Mark(uint32(v.tag))
		case []Kind:
			for _, k := range v {
				nodeMask.Mark(uint32(k.tag))
			}
		case Kinds:
			for _, k := range v {
				nodeMask.Mark(uint32(k.tag))
			}
		case Tag:
			nodeMask.Mark(uint32(v))
		case QueryNode:
			children = append(children, v)
		}
	}

	return nodeMask, children
}

func (q *query) Evaluate(m mask.Mask) bool {
	if q.root == nil {
		return false
	}
	return q.root.Evaluate(m)
}
