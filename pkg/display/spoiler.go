package display

import "strings"

// GroupContiguousSpoilers merges each run of adjacent spoiler nodes into one
// spoiler node so the run reveals as a unit. The merged node keeps the first
// node's group id and annotations; its children are the concatenation of the
// run's children. Other nodes pass through unchanged.
func GroupContiguousSpoilers(nodes []Node) []Node {
	out := make([]Node, 0, len(nodes))

	for i := 0; i < len(nodes); {
		if !nodes[i].IsSpoiler {
			out = append(out, nodes[i])
			i++
			continue
		}

		j := i + 1
		for j < len(nodes) && nodes[j].IsSpoiler && nodes[j-1].End() == nodes[j].Start {
			j++
		}
		if j-i == 1 {
			out = append(out, nodes[i])
			i = j
			continue
		}

		out = append(out, mergeSpoilers(nodes[i:j]))
		i = j
	}

	return out
}

func mergeSpoilers(run []Node) Node {
	merged := run[0]
	merged.SpoilerChildren = nil

	var text strings.Builder
	length := 0
	for _, n := range run {
		text.WriteString(n.Text)
		length += n.Length
		merged.SpoilerChildren = append(merged.SpoilerChildren, n.SpoilerChildren...)
	}

	merged.Text = text.String()
	merged.Length = length
	return merged
}
