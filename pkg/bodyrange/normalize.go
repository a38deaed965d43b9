package bodyrange

import (
	"math"
	"slices"
)

// DropReason explains why a range was removed before tree construction.
type DropReason string

// Reasons reported by Normalize.
const (
	DropMalformed   DropReason = "malformed"
	DropOutOfBounds DropReason = "out-of-bounds"
	DropUnknownKind DropReason = "unknown-kind"
)

// Dropped records a range that did not survive normalization.
type Dropped struct {
	Range  Range
	Reason DropReason
}

// Normalized is the canonical, insertion-ordered range list.
type Normalized struct {
	// Ranges holds formatting and link ranges in input order, followed by
	// mention ranges in input order.
	Ranges []Range

	// Dropped holds every input range that was removed.
	Dropped []Dropped
}

// Normalize combines caller ranges into the order the tree builder expects.
//
// Malformed ranges (negative start, non-positive length, missing payload) and
// ranges starting at or beyond textLength are dropped. A range whose tail runs
// past textLength is kept unchanged, unless its end is not representable, in
// which case its length is clipped to the text. Every spoiler receives a sequential group
// id starting at 1, in the order spoilers are encountered. Mentions are
// stably moved behind all other ranges so that they are inserted last.
func Normalize(formatting, mentions, links []Range, textLength int) Normalized {
	var out Normalized

	input := make([]Range, 0, len(formatting)+len(mentions)+len(links))
	input = append(input, formatting...)
	input = append(input, links...)
	input = append(input, mentions...)

	nextGroup := 1
	for _, r := range input {
		if reason, ok := check(r, textLength); !ok {
			out.Dropped = append(out.Dropped, Dropped{Range: r, Reason: reason})
			continue
		}

		if r.Length > math.MaxInt-r.Start {
			r.Length = textLength - r.Start
		}

		if r.Kind() == KindSpoiler {
			r.Value = Spoiler{GroupID: nextGroup}
			nextGroup++
		}
		out.Ranges = append(out.Ranges, r)
	}

	slices.SortStableFunc(out.Ranges, func(a, b Range) int {
		return mentionRank(a) - mentionRank(b)
	})

	return out
}

func check(r Range, textLength int) (DropReason, bool) {
	if r.Start < 0 || r.Length <= 0 {
		return DropMalformed, false
	}

	switch v := r.Value.(type) {
	case nil:
		return DropMalformed, false
	case Format:
		if v.Kind() == KindUnknown {
			return DropUnknownKind, false
		}
	case Spoiler:
	case Mention:
		if v.TargetID == "" {
			return DropMalformed, false
		}
	case Link:
		if v.URL == "" {
			return DropMalformed, false
		}
	default:
		return DropUnknownKind, false
	}

	if r.Start >= textLength {
		return DropOutOfBounds, false
	}

	return "", true
}

func mentionRank(r Range) int {
	if r.Kind() == KindMention {
		return 1
	}
	return 0
}
