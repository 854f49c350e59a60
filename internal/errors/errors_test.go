package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	cause := errors.New("underlying error")

	err := New(ConfigInvalid, "bad config", cause)

	if err.Code != ConfigInvalid {
		t.Errorf("Code = %v, want %v", err.Code, ConfigInvalid)
	}
	if err.Message != "bad config" {
		t.Errorf("Message = %q, want %q", err.Message, "bad config")
	}
	if len(err.SuggestedFixes) != 1 {
		t.Errorf("len(SuggestedFixes) = %d, want 1", len(err.SuggestedFixes))
	}
}

func TestArchError_Error(t *testing.T) {
	tests := []struct {
		err  *ArchError
		want string
	}{
		{New(ScanFailed, "Failed to scan sources", errors.New("permission denied")), "[SCAN_FAILED] Failed to scan sources: permission denied"},
		{New(TargetUndeclared, "Relation target is not declared", nil), "[TARGET_UNDECLARED] Relation target is not declared"},
	}

	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestArchError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := New(InternalError, "something went wrong", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause")
	}
	if New(ScanFailed, "no cause", nil).Unwrap() != nil {
		t.Error("Unwrap() on error without cause should return nil")
	}
}

func TestArchError_WithDetails(t *testing.T) {
	err := New(ManifestInvalid, "bad manifest", nil)
	result := err.WithDetails(map[string]string{"path": "arch.yaml"})

	if result != err {
		t.Error("WithDetails should return the same error for chaining")
	}
	if err.Details == nil {
		t.Error("Details should be set")
	}
}

func TestCodeOf(t *testing.T) {
	wrapped := fmt.Errorf("render: %w", New(CacheUnavailable, "locked", nil))
	if got := CodeOf(wrapped); got != CacheUnavailable {
		t.Errorf("CodeOf(wrapped) = %v, want %v", got, CacheUnavailable)
	}
	if got := CodeOf(errors.New("plain")); got != InternalError {
		t.Errorf("CodeOf(plain) = %v, want %v", got, InternalError)
	}
}

func TestGetSuggestedFixes(t *testing.T) {
	tests := []struct {
		code    ErrorCode
		wantLen int
	}{
		{ConfigInvalid, 1},
		{TargetUndeclared, 1},
		{ParserUnavailable, 1},
		{CacheUnavailable, 1},
		{ScanFailed, 0},
		{InternalError, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := len(GetSuggestedFixes(tt.code)); got != tt.wantLen {
				t.Errorf("GetSuggestedFixes(%v) len = %d, want %d", tt.code, got, tt.wantLen)
			}
		})
	}
}
