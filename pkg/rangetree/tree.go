// Package rangetree nests normalized ranges into a forest.
//
// Every node's children lie entirely within its span, are ordered by start
// offset and never overlap each other. Ranges that would cross an existing
// range are rejected; the first inserted range wins.
package rangetree

import (
	"slices"

	"github.com/yaklabco/spanrender/pkg/bodyrange"
)

// Node is a range together with the ranges nested inside it.
type Node struct {
	Range    bodyrange.Range
	Children []*Node
}

// Forest is an ordered sequence of top-level nodes. Text not covered by any
// node is implicit.
type Forest []*Node

// Reason explains why a range is missing from the forest.
type Reason string

// Rejection reasons.
const (
	// ReasonCrossing marks a range that partially overlapped an existing one.
	ReasonCrossing Reason = "crossing-overlap"

	// ReasonInsideMention marks a range that fell inside a mention.
	ReasonInsideMention Reason = "inside-mention"

	// ReasonDisplacedByMention marks an existing range whose span was taken
	// over by a mention inserted later.
	ReasonDisplacedByMention Reason = "displaced-by-mention"
)

// Rejection records a range that did not make it into the forest.
type Rejection struct {
	Range  bodyrange.Range
	Reason Reason

	// Conflict is the range that caused the rejection.
	Conflict bodyrange.Range
}

// Build inserts ranges in order into an empty forest.
func Build(ranges []bodyrange.Range) (Forest, []Rejection) {
	var (
		forest   Forest
		rejected []Rejection
	)
	for _, r := range ranges {
		var rej []Rejection
		forest, rej = Insert(forest, r)
		rejected = append(rejected, rej...)
	}
	return forest, rejected
}

// Insert returns a forest with r added. The input forest is not modified.
//
// A range contained in an existing node descends into that node's children.
// A range containing one or more consecutive nodes adopts them as children.
// A range crossing a node is rejected. Mentions never take children: a
// mention covering existing nodes replaces them as a leaf, and anything
// falling inside a mention is rejected.
func Insert(forest Forest, r bodyrange.Range) (Forest, []Rejection) {
	return insert(forest, r)
}

func insert(nodes []*Node, r bodyrange.Range) ([]*Node, []Rejection) {
	first, last := -1, -1
	at := len(nodes)

	for i, n := range nodes {
		if n.Range.End() <= r.Start {
			continue
		}
		if n.Range.Start >= r.End() {
			if first < 0 {
				at = i
			}
			break
		}

		if n.Range.Contains(r) {
			if n.Range.Kind() == bodyrange.KindMention {
				return nodes, []Rejection{{Range: r, Reason: ReasonInsideMention, Conflict: n.Range}}
			}
			children, rejected := insert(n.Children, r)
			out := slices.Clone(nodes)
			out[i] = &Node{Range: n.Range, Children: children}
			return out, rejected
		}

		if !r.Contains(n.Range) {
			return nodes, []Rejection{{Range: r, Reason: ReasonCrossing, Conflict: n.Range}}
		}

		if first < 0 {
			first = i
		}
		last = i
	}

	node := &Node{Range: r}
	if first < 0 {
		out := make([]*Node, 0, len(nodes)+1)
		out = append(out, nodes[:at]...)
		out = append(out, node)
		return append(out, nodes[at:]...), nil
	}

	covered := nodes[first : last+1]
	var rejected []Rejection
	if r.Kind() == bodyrange.KindMention {
		for _, n := range covered {
			_ = Walk(Forest{n}, func(c *Node, _ int) error {
				rejected = append(rejected, Rejection{
					Range:    c.Range,
					Reason:   ReasonDisplacedByMention,
					Conflict: r,
				})
				return nil
			})
		}
	} else {
		node.Children = slices.Clone(covered)
	}

	out := make([]*Node, 0, len(nodes)-len(covered)+1)
	out = append(out, nodes[:first]...)
	out = append(out, node)
	out = append(out, nodes[last+1:]...)
	return out, rejected
}
