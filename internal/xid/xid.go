package xid

import (
	"fmt"

	"github.com/google/uuid"
)

// New returns a prefixed unique identifier, e.g. "prod-8f14e45f-...".
// Ids are UUIDv4 so collisions are not a practical concern even across
// restarts.
func New(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString())
}
