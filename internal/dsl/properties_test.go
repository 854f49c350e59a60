package dsl

import "testing"

func TestProperties_String(t *testing.T) {
	tests := []struct {
		name  string
		props Properties
		want  string
	}{
		{"nil", nil, ""},
		{"all empty", Props("", ""), ""},
		{"single", Props("Foo"), `"Foo"`},
		{"two values", Props("uses", "http"), `"uses" "http"`},
		{"trailing empties dropped", Props("uses", "", ""), `"uses"`},
		{"interior empty kept", Props("", "tag"), `"" "tag"`},
		{"quote and newline escaped", Props("He said \"hi\"\nBye"), `"He said \"hi\"\nBye"`},
		{"backslash untouched", Props(`C:\path`), `"C:\path"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.props.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProperties_Empty(t *testing.T) {
	if !Props().Empty() {
		t.Error("empty list should be Empty")
	}
	if !Props("", "").Empty() {
		t.Error("list of empty strings should be Empty")
	}
	if Props("", "x").Empty() {
		t.Error("list with a value should not be Empty")
	}
}

func TestProperties_StringDoesNotMutate(t *testing.T) {
	p := Props("a", "", "")
	_ = p.String()
	if len(p) != 3 {
		t.Errorf("len(p) = %d after String(), want 3", len(p))
	}
}
