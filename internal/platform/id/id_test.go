package id

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewIDIsLowercaseBase32UUID(t *testing.T) {
	seen := make(map[string]bool)
	for range 50 {
		id, err := NewID()
		if err != nil {
			t.Fatalf("new id: %v", err)
		}
		if len(id) != 26 || strings.ContainsAny(id, "=ABCDEFGHIJKLMNOPQRSTUVWXYZ01") {
			t.Fatalf("malformed id %q", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true

		decoded, err := encoding.DecodeString(strings.ToUpper(id))
		if err != nil {
			t.Fatalf("decode %q: %v", id, err)
		}
		u, err := uuid.FromBytes(decoded)
		if err != nil {
			t.Fatalf("uuid from %q: %v", id, err)
		}
		if u.Version() != 4 || u.Variant() != uuid.RFC4122 {
			t.Fatalf("id %q is version %d variant %v", id, u.Version(), u.Variant())
		}
	}
}

func TestValidate(t *testing.T) {
	id, err := NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	if err := Validate(id); err != nil {
		t.Fatalf("validate generated id: %v", err)
	}
	for _, bad := range []string{"", "short", strings.Repeat("1", 26)} {
		if err := Validate(bad); err == nil {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}
