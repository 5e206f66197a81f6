package core

import "encoding/json"

// Sequence is either a single string or an ordered list of strings. It is
// sent as a bare JSON string or a bare JSON array depending on the variant.
// The zero value is Single("").
//
// Sequence is write-only: it appears in outgoing requests (prompts, stop
// sequences, inputs) and has no decoder.
type Sequence struct {
	values []string
	many   bool
}

// Single returns a Sequence holding one string.
func Single(s string) Sequence {
	return Sequence{values: []string{s}}
}

// Many returns a Sequence holding an ordered list. An empty list is legal.
func Many(values ...string) Sequence {
	v := make([]string, len(values))
	copy(v, values)
	return Sequence{values: v, many: true}
}

// IsMany reports whether s is the list variant.
func (s Sequence) IsMany() bool {
	return s.many
}

// Values returns a copy of the held strings.
func (s Sequence) Values() []string {
	if !s.many && len(s.values) == 0 {
		return []string{""}
	}
	v := make([]string, len(s.values))
	copy(v, s.values)
	return v
}

// MarshalJSON emits "a" for Single("a") and ["a","b"] for Many("a","b").
func (s Sequence) MarshalJSON() ([]byte, error) {
	if s.many {
		if s.values == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(s.values)
	}
	if len(s.values) == 0 {
		return json.Marshal("")
	}
	return json.Marshal(s.values[0])
}
