package manager

import (
	"fmt"

	"github.com/google/uuid"
)

// KeyGenerator produces cache keys for values registered without an
// explicit key.
type KeyGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 keys. UUIDv7 embeds a
// timestamp in the most significant bits, so anonymous registrations list
// in creation order.
//
// Stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 as a hyphenated string.
// Panics if UUID generation fails (should never happen in practice).
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// SequenceGenerator returns predictable keys ("prefix-1", "prefix-2", ...)
// for deterministic tests.
type SequenceGenerator struct {
	Prefix string
	n      int
}

// Generate returns the next key in the sequence.
func (g *SequenceGenerator) Generate() string {
	g.n++
	return fmt.Sprintf("%s-%d", g.Prefix, g.n)
}
