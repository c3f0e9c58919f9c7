package security

import (
	"strings"
	"testing"
)

func TestRandomStringValidation(t *testing.T) {
	t.Parallel()

	if _, err := RandomString(-1, "abc"); err == nil {
		t.Fatal("expected error for negative length")
	}
	if _, err := RandomString(1, ""); err == nil {
		t.Fatal("expected error for empty alphabet")
	}
	value, err := RandomString(0, "")
	if err != nil || value != "" {
		t.Fatalf("expected empty string for zero length, got %q, %v", value, err)
	}
}

func TestRandomStringUsesAlphabet(t *testing.T) {
	t.Parallel()

	value, err := RandomString(64, "xyz")
	if err != nil {
		t.Fatalf("RandomString returned error: %v", err)
	}
	if len(value) != 64 {
		t.Fatalf("expected length 64, got %d", len(value))
	}
	for _, char := range value {
		if !strings.ContainsRune("xyz", char) {
			t.Fatalf("value %q contains %q outside alphabet", value, char)
		}
	}
}

func TestTemporaryPasswordMixesCharacterClasses(t *testing.T) {
	t.Parallel()

	for attempt := 0; attempt < 50; attempt++ {
		password, err := TemporaryPassword(4)
		if err != nil {
			t.Fatalf("TemporaryPassword returned error: %v", err)
		}
		if len(password) != minTemporaryPasswordLength {
			t.Fatalf("expected minimum length %d, got %d", minTemporaryPasswordLength, len(password))
		}
		if !strings.ContainsAny(password, upperAlphabet) ||
			!strings.ContainsAny(password, lowerAlphabet) ||
			!strings.ContainsAny(password, digitAlphabet) {
			t.Fatalf("password %q is missing a character class", password)
		}
		for _, char := range password {
			if !strings.ContainsRune(PasswordAlphabet, char) {
				t.Fatalf("password %q contains %q outside alphabet", password, char)
			}
		}
	}
}
