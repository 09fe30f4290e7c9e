package encrypter

// Encrypter encrypts and decrypts small secrets (platform session keys)
// before they touch the database.
type Encrypter interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// New creates an Encrypter from a passphrase. The AES key is derived, so
// the passphrase is not length-constrained.
func New(passphrase string) Encrypter {
	return &implEncrypter{passphrase: passphrase}
}
