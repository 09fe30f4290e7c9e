package encrypter

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

var (
	// ErrEmptyPassphrase is returned when no key material is configured.
	ErrEmptyPassphrase = errors.New("encrypter: passphrase is empty")
	// ErrCiphertextTooShort is returned for malformed ciphertext input.
	ErrCiphertextTooShort = errors.New("encrypter: ciphertext too short")
)

const (
	keyLen     = 32
	pbkdf2Iter = 10000
)

// keySalt is fixed: the derived key only needs to be stable per passphrase,
// uniqueness comes from the per-message nonce.
var keySalt = []byte("renov-srv.encrypter.v1")

type implEncrypter struct {
	passphrase string
}

func (e *implEncrypter) getGCM() (cipher.AEAD, error) {
	if e.passphrase == "" {
		return nil, ErrEmptyPassphrase
	}
	key := pbkdf2.Key([]byte(e.passphrase), keySalt, pbkdf2Iter, keyLen, sha256.New)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return gcm, nil
}

// Encrypt seals the plaintext with AES-GCM and returns base64(nonce || ciphertext).
func (e *implEncrypter) Encrypt(plaintext string) (string, error) {
	gcm, err := e.getGCM()
	if err != nil {
		return "", err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}
	sealed := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt.
func (e *implEncrypter) Decrypt(ciphertext string) (string, error) {
	gcm, err := e.getGCM()
	if err != nil {
		return "", err
	}
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("failed to decode ciphertext: %w", err)
	}
	if len(raw) < gcm.NonceSize() {
		return "", ErrCiphertextTooShort
	}
	nonce, sealed := raw[:gcm.NonceSize()], raw[gcm.NonceSize():]
	plain, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt: %w", err)
	}
	return string(plain), nil
}
