// uuid simple generator that allows mocking
package uuid

//go:generate mockgen -destination=mock/mock_generator.go -package=mockuuid -source=uuid.go

import (
	"strings"

	"github.com/google/uuid"
)

// Generator is an interface for generating UUIDs
type Generator interface {
	// New returns an id for a unit or encounter
	New() string

	// NewSecret returns a fresh secret for an rng context
	NewSecret() string
}

// GoogleUUIDGenerator implements the Generator interface using Google's UUID package
type GoogleUUIDGenerator struct{}

// New generates a new UUID string
func (g *GoogleUUIDGenerator) New() string {
	return uuid.New().String()
}

// NewSecret joins two random UUIDs, 244 random bits
func (g *GoogleUUIDGenerator) NewSecret() string {
	return strings.ReplaceAll(uuid.New().String()+uuid.New().String(), "-", "")
}

// NewGoogleUUIDGenerator creates a new GoogleUUIDGenerator
func NewGoogleUUIDGenerator() *GoogleUUIDGenerator {
	return &GoogleUUIDGenerator{}
}
