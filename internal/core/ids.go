package core

import "github.com/google/uuid"

// IDGenerator produces identifiers for new records.
type IDGenerator func() string

// UUIDGenerator returns random (v4) UUID strings.
func UUIDGenerator() string {
	return uuid.NewString()
}
