package content

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator allocates identifiers for pages, sections and list items.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator issues random v4 UUIDs.
type UUIDGenerator struct{}

// NewID implements IDGenerator.
func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// SequenceGenerator issues "<prefix><n>" with a monotonically increasing n.
type SequenceGenerator struct {
	Prefix string
	next   atomic.Uint64
}

// NewID implements IDGenerator.
func (g *SequenceGenerator) NewID() string {
	return g.Prefix + strconv.FormatUint(g.next.Add(1), 10)
}
