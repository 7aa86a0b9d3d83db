package util

import (
	"strings"
	"testing"
)

func TestDeriveAndVerifyPassword(t *testing.T) {
	hash, salt, err := DerivePassword("s3cret-pass")
	if err != nil {
		t.Fatalf("DerivePassword returned error: %v", err)
	}
	if len(hash) == 0 || len(salt) == 0 {
		t.Fatalf("expected hash and salt to be populated")
	}
	if !VerifyPassword("s3cret-pass", salt, hash) {
		t.Fatalf("expected password verification to succeed")
	}
	if VerifyPassword("wrong-pass", salt, hash) {
		t.Fatalf("expected password verification to fail for wrong password")
	}
}

func TestHashPasswordEmptyInput(t *testing.T) {
	if _, err := HashPassword("", []byte{1, 2, 3}); err == nil {
		t.Fatalf("expected error when password empty")
	}
	if _, err := HashPassword("secret", nil); err == nil {
		t.Fatalf("expected error when salt empty")
	}
}

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		password string
		valid    bool
	}{
		{"short1", false},
		{"allletters", false},
		{"12345678", false},
		{"changeMe1", true},
	}
	for _, tc := range cases {
		err := ValidatePassword(tc.password)
		if tc.valid && err != nil {
			t.Fatalf("password %q should be accepted, got %v", tc.password, err)
		}
		if !tc.valid && err == nil {
			t.Fatalf("password %q should be rejected", tc.password)
		}
	}
}

func TestGenerateTempPassword(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		password, err := GenerateTempPassword()
		if err != nil {
			t.Fatalf("GenerateTempPassword returned error: %v", err)
		}
		if len(password) != 10 {
			t.Fatalf("expected 10 characters, got %d", len(password))
		}
		for _, r := range password {
			if !strings.ContainsRune(tempPasswordAlphabet, r) {
				t.Fatalf("character %q outside the allowed alphabet", r)
			}
		}
		seen[password] = true
	}
	if len(seen) < 2 {
		t.Fatalf("generated passwords should not all collide")
	}
}
