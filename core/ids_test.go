package core

import (
	"regexp"
	"strings"
	"testing"
)

func TestNewID(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
	}{
		{
			name:   "valid prefix",
			prefix: "msg",
		},
		{
			name:   "valid short prefix",
			prefix: "ea",
		},
		{
			name:   "uppercase prefix gets lowercased",
			prefix: "EVT",
		},
		{
			name:   "prefix with spaces gets trimmed",
			prefix: "  msg  ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewID(tt.prefix)

			// Check the format: prefix_ULID
			expectedPrefix := strings.ToLower(strings.TrimSpace(tt.prefix)) + "_"
			if !strings.HasPrefix(got, expectedPrefix) {
				t.Errorf("NewID() = %v, want prefix %v", got, expectedPrefix)
			}

			ulidPart := strings.TrimPrefix(got, expectedPrefix)
			if len(ulidPart) != 26 {
				t.Errorf("NewID() ULID part length = %v, want 26", len(ulidPart))
			}

			// Base32 characters: 0-9, A-Z excluding I, L, O, U
			ulidPattern := regexp.MustCompile(`^[0123456789ABCDEFGHJKMNPQRSTVWXYZ]{26}$`)
			if !ulidPattern.MatchString(ulidPart) {
				t.Errorf("NewID() ULID part %v does not match expected pattern", ulidPart)
			}
		})
	}
}

func TestNewIDPanic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("NewID() expected panic but got none")
		}
	}()

	NewID("   ")
}

func TestIsValidULID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want bool
	}{
		{"generated id is valid", NewID("msg"), true},
		{"empty string", "", false},
		{"missing prefix", "01G0EZ1XTM37C5X11SQTDNCTM1", false},
		{"uppercase prefix", "MSG_01G0EZ1XTM37C5X11SQTDNCTM1", false},
		{"short ulid part", "msg_01G0EZ1XTM", false},
		{"too many separators", "msg_extra_01G0EZ1XTM37C5X11SQTDNCTM1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidULID(tt.id); got != tt.want {
				t.Errorf("IsValidULID(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}
