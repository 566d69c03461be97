package utils

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("Str0ng!Pass", 4)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if hash == "Str0ng!Pass" {
		t.Fatal("hash must not equal plaintext")
	}
	if !VerifyPassword(hash, "Str0ng!Pass") {
		t.Fatal("expected correct password to verify")
	}
	if VerifyPassword(hash, "wrong-password") {
		t.Fatal("expected wrong password to fail")
	}
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	if VerifyPassword("not-a-bcrypt-hash", "whatever") {
		t.Fatal("expected malformed hash to fail verification")
	}
}

func TestCheckStrengthAcceptsGoodPassword(t *testing.T) {
	if v := CheckStrength("Str0ng!Pass"); len(v) != 0 {
		t.Fatalf("expected no violations, got %v", v)
	}
}

func TestCheckStrengthReturnsAllViolations(t *testing.T) {
	// Too short, no uppercase, no digit, no symbol: four violations at once.
	v := CheckStrength("abc")
	if len(v) != 4 {
		t.Fatalf("expected 4 violations, got %d: %v", len(v), v)
	}
}

func TestCheckStrengthRejectsCommonPasswords(t *testing.T) {
	// Passes every character-class rule but sits on the deny-list.
	v := CheckStrength("P@ssw0rd")
	if len(v) != 1 || v[0] != "password is too common" {
		t.Fatalf("expected the deny-list violation, got %v", v)
	}
}

func TestCheckStrengthRejectsOverlongPassword(t *testing.T) {
	long := make([]byte, 200)
	for i := range long {
		long[i] = 'a'
	}
	found := false
	for _, v := range CheckStrength(string(long)) {
		if v == "password must be at most 128 characters" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected max-length violation")
	}
}
