package engine

import (
	"fmt"

	"github.com/yaklabco/spanrender/pkg/bodyrange"
	"github.com/yaklabco/spanrender/pkg/rangetree"
)

// Reason explains why an annotation was dropped.
type Reason string

// Drop reasons from every pipeline stage.
const (
	ReasonMalformed          = Reason(bodyrange.DropMalformed)
	ReasonOutOfBounds        = Reason(bodyrange.DropOutOfBounds)
	ReasonUnknownKind        = Reason(bodyrange.DropUnknownKind)
	ReasonCrossingOverlap    = Reason(rangetree.ReasonCrossing)
	ReasonInsideMention      = Reason(rangetree.ReasonInsideMention)
	ReasonDisplacedByMention = Reason(rangetree.ReasonDisplacedByMention)
)

// Dropped records an annotation missing from the output.
type Dropped struct {
	Range  bodyrange.Range `json:"range"`
	Reason Reason          `json:"reason"`

	// Conflict is the range that won, for overlap drops.
	Conflict *bodyrange.Range `json:"conflict,omitempty"`
}

func (d Dropped) String() string {
	if d.Conflict != nil {
		return fmt.Sprintf("%s: %s (conflicts with %s)", d.Range, d.Reason, *d.Conflict)
	}
	return fmt.Sprintf("%s: %s", d.Range, d.Reason)
}
