package auth

import "golang.org/x/crypto/bcrypt"

// SecretVerifier compares a stored secret hash with a presented secret.
type SecretVerifier interface {
	// Compare returns nil when secret matches hash, or an error on mismatch.
	Compare(hash, secret string) error
}

// BcryptVerifier implements SecretVerifier using bcrypt.
type BcryptVerifier struct{}

// NewBcryptVerifier creates a new BcryptVerifier.
func NewBcryptVerifier() *BcryptVerifier {
	return &BcryptVerifier{}
}

// Compare implements the SecretVerifier interface using bcrypt.
func (v *BcryptVerifier) Compare(hash, secret string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret))
}
