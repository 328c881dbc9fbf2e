package testutil

import (
	"strings"
	"testing"
)

func TestNewTestShellID(t *testing.T) {
	a := NewTestShellID("pfx", "Outer/Sub Test")
	b := NewTestShellID("pfx", "Outer/Sub Test")
	if a == b {
		t.Fatalf("expected unique ids; got %q twice", a)
	}
	if !strings.HasPrefix(a, "pfx-Outer-_-Sub_Test-") {
		t.Fatalf("unexpected id %q", a)
	}
	if strings.ContainsAny(a, "/ ") {
		t.Fatalf("id contains separator: %q", a)
	}
}

func TestLogger(t *testing.T) {
	Logger(t).Debug("hello", "k", "v")
}
