package rangetree

import "github.com/yaklabco/spanrender/pkg/bodyrange"

// WalkFunc is called for each node with its nesting depth (0 for top-level).
// Return a non-nil error to stop the walk.
type WalkFunc func(n *Node, depth int) error

// Walk performs a pre-order traversal of the forest.
func Walk(forest Forest, fn WalkFunc) error {
	return walk(forest, 0, fn)
}

func walk(nodes []*Node, depth int, fn WalkFunc) error {
	for _, n := range nodes {
		if err := fn(n, depth); err != nil {
			return err
		}
		if err := walk(n.Children, depth+1, fn); err != nil {
			return err
		}
	}
	return nil
}

// Ranges returns every range in the forest in pre-order.
func (f Forest) Ranges() []bodyrange.Range {
	var out []bodyrange.Range
	//nolint:errcheck,revive // callback never fails
	Walk(f, func(n *Node, _ int) error {
		out = append(out, n.Range)
		return nil
	})
	return out
}

// Len returns the number of nodes in the forest.
func (f Forest) Len() int {
	count := 0
	//nolint:errcheck,revive // callback never fails
	Walk(f, func(*Node, int) error {
		count++
		return nil
	})
	return count
}
