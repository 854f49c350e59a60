package main

import (
	"strings"
	"testing"
)

func TestFormatResponse_Text(t *testing.T) {
	got, err := FormatResponse(&RenderResponse{DSL: `a = component "A"`}, FormatText)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "a = component \"A\"\n" {
		t.Errorf("got %q", got)
	}
}

func TestFormatResponse_JSON(t *testing.T) {
	resp := &RenderResponse{DSL: "x", Elements: []string{"g"}, Components: 2}

	result, err := FormatResponse(resp, FormatJSON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{`"dsl": "x"`, `"elements": [`, `"components": 2`} {
		if !strings.Contains(result, want) {
			t.Errorf("JSON output missing %q:\n%s", want, result)
		}
	}
	if strings.Contains(result, "runIds") {
		t.Error("empty run ids should be omitted")
	}
}

func TestFormatResponse_UnsupportedFormat(t *testing.T) {
	_, err := FormatResponse(&RenderResponse{}, "xml")
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}
	if !strings.Contains(err.Error(), "unsupported format") {
		t.Errorf("error should mention unsupported format, got: %v", err)
	}
}
