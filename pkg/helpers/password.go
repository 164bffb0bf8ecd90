package helpers

import "golang.org/x/crypto/bcrypt"

// hashCost matches the original work factor of 10.
const hashCost = 10

// HashPassword hashes the plain text password using bcrypt. The salt
// is random per call, so hashing the same input twice yields two
// different strings; equality is only meaningful through
// CompareHashAndPassword.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), hashCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CompareHashAndPassword compares a bcrypt hash with a plain password
// in constant time. It returns false for any mismatch, malformed hash,
// or empty input; it never surfaces an error to the caller.
func CompareHashAndPassword(hash string, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
