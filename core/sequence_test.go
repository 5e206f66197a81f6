package core

import (
	"encoding/json"
	"testing"
)

func TestSequenceMarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		seq  Sequence
		want string
	}{
		{"single", Single("a"), `"a"`},
		{"single empty", Single(""), `""`},
		{"zero value", Sequence{}, `""`},
		{"many", Many("a", "b"), `["a","b"]`},
		{"many order", Many("z", "y", "x"), `["z","y","x"]`},
		{"many one", Many("a"), `["a"]`},
		{"many empty", Many(), `[]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.seq)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Marshal() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSequenceManyCopiesInput(t *testing.T) {
	in := []string{"a", "b"}
	seq := Many(in...)
	in[0] = "mutated"

	got := seq.Values()
	if got[0] != "a" {
		t.Errorf("Values()[0] = %q, want %q", got[0], "a")
	}
	if !seq.IsMany() {
		t.Error("IsMany() = false, want true")
	}
}

func TestSequenceSingleValues(t *testing.T) {
	seq := Single("stop")
	if seq.IsMany() {
		t.Error("IsMany() = true, want false")
	}
	if v := seq.Values(); len(v) != 1 || v[0] != "stop" {
		t.Errorf("Values() = %v, want [stop]", v)
	}
}
