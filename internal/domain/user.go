// Package domain contains the core data types for the spot rental API.
// This package has no dependencies beyond uuid and is imported by every other
// internal package (repo, service, handler, store).
package domain

import "github.com/google/uuid"

// User is the public projection of an account: owner of a spot, author of a
// review or renter on a booking. Accounts themselves are managed elsewhere.
type User struct {
	ID        uuid.UUID
	FirstName string
	LastName  string
}
