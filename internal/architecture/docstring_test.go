package architecture

import "testing"

func TestDocstringToDescription(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"empty", "", ""},
		{"single line", "Does work.", "Does work."},
		{"indented two paragraphs", twoParagraphDoc, "first line\nsecond line"},
		{"relative indentation kept", "\n    a\n      b\n", "a\n  b"},
		{"whitespace-only separator line", "one\n   \ntwo", "one"},
		{"tabs", "\n\tfirst\n\tsecond\n", "first\nsecond"},
		{"unindented", "first\nsecond\n\nthird", "first\nsecond"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DocstringToDescription(tt.doc); got != tt.want {
				t.Errorf("DocstringToDescription() = %q, want %q", got, tt.want)
			}
		})
	}
}
