package utils

import "github.com/google/uuid"

// NewID returns a time-ordered UUIDv7; ids sort in creation order.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
