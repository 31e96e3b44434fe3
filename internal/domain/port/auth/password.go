package auth

// PasswordHasher hashes and verifies account passwords.
// Plaintext passwords never leave this boundary.
type PasswordHasher interface {
	// Hash derives a storable hash from a plaintext password
	Hash(password string) (string, error)

	// Compare checks a plaintext password against a stored hash
	//
	// Possible errors:
	// - ErrInvalidCredentials: If the password does not match
	Compare(hash, password string) error
}
