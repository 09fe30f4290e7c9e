package encrypter

import (
	"errors"
	"testing"
)

func TestEncrypter(t *testing.T) {
	enc := New("test-passphrase")

	t.Run("round trip", func(t *testing.T) {
		sealed, err := enc.Encrypt("session-key-material")
		if err != nil {
			t.Fatalf("encrypt failed: %v", err)
		}
		if sealed == "session-key-material" {
			t.Fatal("ciphertext equals plaintext")
		}
		plain, err := enc.Decrypt(sealed)
		if err != nil {
			t.Fatalf("decrypt failed: %v", err)
		}
		if plain != "session-key-material" {
			t.Errorf("round trip mismatch: got %q", plain)
		}
	})

	t.Run("nonce makes output differ", func(t *testing.T) {
		a, _ := enc.Encrypt("same input")
		b, _ := enc.Encrypt("same input")
		if a == b {
			t.Error("two encryptions of the same input should differ")
		}
	})

	t.Run("wrong passphrase fails", func(t *testing.T) {
		sealed, _ := enc.Encrypt("secret")
		other := New("different-passphrase")
		if _, err := other.Decrypt(sealed); err == nil {
			t.Error("decrypt with wrong passphrase should fail")
		}
	})

	t.Run("short ciphertext", func(t *testing.T) {
		if _, err := enc.Decrypt("AAAA"); !errors.Is(err, ErrCiphertextTooShort) {
			t.Errorf("got %v, want ErrCiphertextTooShort", err)
		}
	})

	t.Run("empty passphrase", func(t *testing.T) {
		empty := New("")
		if _, err := empty.Encrypt("x"); !errors.Is(err, ErrEmptyPassphrase) {
			t.Errorf("got %v, want ErrEmptyPassphrase", err)
		}
	})
}
