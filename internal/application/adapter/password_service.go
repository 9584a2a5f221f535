// Package adapter declares the ports the use cases depend on. The integration
// layer provides the implementations.
package adapter

// PasswordService hashes and checks user passwords.
type PasswordService interface {
	HashPassword(password string) (string, error)
	// VerifyPassword returns nil when password matches hashedPassword.
	VerifyPassword(hashedPassword, password string) error
	// ValidatePasswordStrength rejects passwords below the minimum policy.
	ValidatePasswordStrength(password string) error
}
