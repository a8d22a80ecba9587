package creds

import (
	"regexp"
	"strings"
	"testing"
)

func testGenerator() *Generator {
	return NewGenerator("sshmgmt", "grp", "SSHMGMTKIT_", "test-iv", "")
}

func TestUsername(t *testing.T) {
	gen := testGenerator()

	tests := []struct {
		maxLogins int32
		id        int32
		want      string
	}{
		{3, 1, "sshmgmt3x001"},
		{3, 42, "sshmgmt3x042"},
		{10, 999, "sshmgmt10x999"},
		{1, 1000, "sshmgmt1x1000"},
	}

	for _, tt := range tests {
		if got := gen.Username(tt.maxLogins, tt.id); got != tt.want {
			t.Errorf("Username(%d, %d) = %q, want %q", tt.maxLogins, tt.id, got, tt.want)
		}
	}
}

func TestUsernamePrefixAndGroup(t *testing.T) {
	gen := testGenerator()

	if got := gen.UsernamePrefix(3); got != "sshmgmt3x" {
		t.Errorf("UsernamePrefix(3) = %q, want %q", got, "sshmgmt3x")
	}
	if got := gen.Group(3); got != "grp3" {
		t.Errorf("Group(3) = %q, want %q", got, "grp3")
	}
}

func TestRandomPassword(t *testing.T) {
	gen := testGenerator()
	re := regexp.MustCompile(`^SSHMGMTKIT_\d{5}$`)

	for i := 0; i < 20; i++ {
		pass := gen.RandomPassword()
		if !re.MatchString(pass) {
			t.Fatalf("RandomPassword() = %q, want match for %s", pass, re)
		}
	}
}

func TestDerivePassword(t *testing.T) {
	gen := testGenerator()

	first := gen.DerivePassword("sshmgmt3x001")
	second := gen.DerivePassword("sshmgmt3x001")
	if first != second {
		t.Errorf("DerivePassword is not deterministic: %q vs %q", first, second)
	}

	if !strings.HasPrefix(first, "SSHMGMTKIT_") {
		t.Errorf("DerivePassword() = %q, want prefix %q", first, "SSHMGMTKIT_")
	}
	suffix := strings.TrimPrefix(first, "SSHMGMTKIT_")
	if len(suffix) != 6 {
		t.Errorf("derived suffix %q has length %d, want 6", suffix, len(suffix))
	}

	other := gen.DerivePassword("sshmgmt3x002")
	if other == first {
		t.Errorf("different usernames derived the same password %q", first)
	}

	otherIV := NewGenerator("sshmgmt", "grp", "SSHMGMTKIT_", "other-iv", "")
	if otherIV.DerivePassword("sshmgmt3x001") == first {
		t.Error("different IVs derived the same password")
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	gen := testGenerator()

	hash, err := gen.HashPassword("SSHMGMTKIT_12345")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !strings.HasPrefix(hash, "$6$") {
		t.Errorf("hash %q is not sha512-crypt", hash)
	}

	if !VerifyPassword("SSHMGMTKIT_12345", hash) {
		t.Error("VerifyPassword rejected the correct password")
	}
	if VerifyPassword("SSHMGMTKIT_54321", hash) {
		t.Error("VerifyPassword accepted a wrong password")
	}
}

func TestIsValidUsername(t *testing.T) {
	tests := []struct {
		username string
		want     bool
	}{
		{"valid_user1", true},
		{"abc", true},
		{"Operator_X", true},
		{"ab", false},
		{"1abc", false},
		{"has-dash", false},
		{"has space", false},
		{"", false},
		{"this_username_is_way_too_long", false},
	}

	for _, tt := range tests {
		if got := IsValidUsername(tt.username); got != tt.want {
			t.Errorf("IsValidUsername(%q) = %v, want %v", tt.username, got, tt.want)
		}
	}
}

func TestFormatExpDate(t *testing.T) {
	got, err := FormatExpDate("2026-01-02")
	if err != nil {
		t.Fatalf("FormatExpDate: %v", err)
	}
	if got != "2026-01-02" {
		t.Errorf("FormatExpDate = %q, want %q", got, "2026-01-02")
	}

	for _, bad := range []string{"tomorrow", "2026-13-40", "02-01-2026", ""} {
		if _, err := FormatExpDate(bad); err == nil {
			t.Errorf("FormatExpDate(%q) accepted an invalid date", bad)
		}
	}
}
