package token

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestIssueAndValidate(t *testing.T) {
	issuer := NewIssuer(testSecret)

	for _, role := range []Role{RoleNormal, RolePrivileged} {
		signed, err := issuer.Issue(role)
		if err != nil {
			t.Fatalf("Issue(%v): %v", role, err)
		}

		got, err := issuer.Validate(signed)
		if err != nil {
			t.Fatalf("Validate(%v token): %v", role, err)
		}
		if got != role {
			t.Errorf("Validate returned role %v, want %v", got, role)
		}
	}
}

func TestValidateRejectsOtherSecret(t *testing.T) {
	issuer := NewIssuer(testSecret)
	other := NewIssuer("fedcba9876543210fedcba9876543210")

	signed, err := other.Issue(RolePrivileged)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	_, err = issuer.Validate(signed)
	if err == nil {
		t.Fatal("Validate accepted a token signed with a different secret")
	}

	var invalid *InvalidError
	if !errors.As(err, &invalid) {
		t.Errorf("Validate error is %T, want *InvalidError", err)
	}
}

func TestValidateRejectsTamperedSignature(t *testing.T) {
	issuer := NewIssuer(testSecret)

	signed, err := issuer.Issue(RolePrivileged)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Flip the first byte of the signature segment.
	tampered := []byte(signed)
	pos := strings.LastIndexByte(signed, '.') + 1
	if tampered[pos] == 'A' {
		tampered[pos] = 'B'
	} else {
		tampered[pos] = 'A'
	}

	_, err = issuer.Validate(string(tampered))
	if err == nil {
		t.Fatal("Validate accepted a token with an altered signature")
	}

	var invalid *InvalidError
	if !errors.As(err, &invalid) {
		t.Errorf("Validate error is %T, want *InvalidError", err)
	}
}

func TestValidateRejectsExpired(t *testing.T) {
	issuer := NewIssuer(testSecret)

	claims := Claims{
		Role: RolePrivileged.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := issuer.Validate(signed); err == nil {
		t.Fatal("Validate accepted an expired token")
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	issuer := NewIssuer(testSecret)

	for _, bad := range []string{"", "not.a.token", "aaaa.bbbb.cccc"} {
		if _, err := issuer.Validate(bad); err == nil {
			t.Errorf("Validate(%q) accepted garbage", bad)
		}
	}
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
	}{
		{"privileged", RolePrivileged},
		{"Privileged", RolePrivileged},
		{"PRIVILEGED", RolePrivileged},
		{"normal", RoleNormal},
		{"admin", RoleNormal},
		{"", RoleNormal},
	}

	for _, tt := range tests {
		if got := ParseRole(tt.in); got != tt.want {
			t.Errorf("ParseRole(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFromHeader(t *testing.T) {
	if _, err := FromHeader(""); !errors.Is(err, ErrMissing) {
		t.Errorf("FromHeader(\"\") error = %v, want ErrMissing", err)
	}

	got, err := FromHeader("Bearer abc.def.ghi")
	if err != nil {
		t.Fatalf("FromHeader: %v", err)
	}
	if got != "abc.def.ghi" {
		t.Errorf("FromHeader = %q, want %q", got, "abc.def.ghi")
	}
}
