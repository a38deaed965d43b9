package bodyrange

import "encoding/json"

// rangeJSON is the flattened wire form of a Range.
type rangeJSON struct {
	Start       int    `json:"start"`
	Length      int    `json:"length"`
	Kind        string `json:"kind"`
	GroupID     int    `json:"groupId,omitempty"`
	TargetID    string `json:"targetId,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	URL         string `json:"url,omitempty"`
}

// MarshalJSON writes the range with its payload flattened next to the kind.
func (r Range) MarshalJSON() ([]byte, error) {
	out := rangeJSON{Start: r.Start, Length: r.Length, Kind: r.Kind().String()}
	switch v := r.Value.(type) {
	case Spoiler:
		out.GroupID = v.GroupID
	case Mention:
		out.TargetID = v.TargetID
		out.DisplayName = v.DisplayName
	case Link:
		out.URL = v.URL
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads the form written by MarshalJSON. An unrecognized kind
// leaves Value nil, which Normalize drops as malformed.
func (r *Range) UnmarshalJSON(data []byte) error {
	var in rangeJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	*r = Range{Start: in.Start, Length: in.Length}
	switch kind := ParseKind(in.Kind); kind {
	case KindSpoiler:
		r.Value = Spoiler{GroupID: in.GroupID}
	case KindMention:
		r.Value = Mention{TargetID: in.TargetID, DisplayName: in.DisplayName}
	case KindLink:
		r.Value = Link{URL: in.URL}
	case KindUnknown:
	default:
		r.Value = Format(kind)
	}
	return nil
}
