package domain

import (
	"strings"
	"testing"
)

func TestGroupStatusValid(t *testing.T) {
	for _, s := range []GroupStatus{StatusActive, StatusSelecting, StatusMatched, StatusInactive} {
		if !s.Valid() {
			t.Errorf("%q reported invalid", s)
		}
	}
	for _, s := range []GroupStatus{"", "paused", "ACTIVE"} {
		if s.Valid() {
			t.Errorf("%q reported valid", s)
		}
	}
}

func TestValidateGroupCode(t *testing.T) {
	cases := []struct {
		code GroupCode
		ok   bool
	}{
		{"ABC123", true},
		{"ZZZZZZ", true},
		{"000000", true},
		{"", false},
		{"ABC12", false},
		{"ABC1234", false},
		{"abc123", false},
		{"ABC-12", false},
		{"ABC 12", false},
	}
	for _, tc := range cases {
		err := ValidateGroupCode(tc.code)
		if tc.ok && err != nil {
			t.Errorf("ValidateGroupCode(%q) = %v, want nil", tc.code, err)
		}
		if !tc.ok && err == nil {
			t.Errorf("ValidateGroupCode(%q) = nil, want error", tc.code)
		}
	}
}

func TestValidateGroupName(t *testing.T) {
	if err := ValidateGroupName("Friday dinner"); err != nil {
		t.Fatalf("valid name rejected: %v", err)
	}
	if err := ValidateGroupName(""); err != ErrGroupNameEmpty {
		t.Fatalf("empty name: got %v", err)
	}
	long := strings.Repeat("x", MaxGroupNameLen+1)
	if err := ValidateGroupName(long); err != ErrGroupNameTooLong {
		t.Fatalf("overlong name: got %v", err)
	}
}

func TestValidateUsername(t *testing.T) {
	if err := ValidateUsername("alice"); err != nil {
		t.Fatalf("valid username rejected: %v", err)
	}
	if err := ValidateUsername(""); err != ErrUsernameEmpty {
		t.Fatalf("empty username: got %v", err)
	}
	long := strings.Repeat("x", MaxUsernameLen+1)
	if err := ValidateUsername(long); err != ErrUsernameTooLong {
		t.Fatalf("overlong username: got %v", err)
	}
}

func TestGroupIsHost(t *testing.T) {
	g := &Group{Creator: "host"}
	if !g.IsHost("host") {
		t.Fatal("creator not recognized as host")
	}
	if g.IsHost("alice") {
		t.Fatal("non-creator recognized as host")
	}
}
