// Package utils holds small helpers shared by the service and session
// layers: time-ordered id generation and session JWT handling.
package utils

import "github.com/google/uuid"

// IDGenerator produces unique record ids.
type IDGenerator interface {
	Generate() string
}

type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a UUIDv7, so ids sort by creation time. It falls back to
// a random v4 if the clock source fails.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
