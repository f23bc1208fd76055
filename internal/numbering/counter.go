// Package numbering issues sequential sales-order numbers, persisting the
// last issued number so restarts never reuse one.
package numbering

import (
	"fmt"
	"strconv"
	"sync"

	"po2so/internal/storage"
)

const metadataKey = "last_so_number"

// Counter issues SO numbers in the form <prefix><n %06d>. Next is safe for
// concurrent callers: the load-increment-store over the backing store is
// serialized by a mutex.
type Counter struct {
	mu     sync.Mutex
	db     *storage.DB
	prefix string
}

func NewCounter(db *storage.DB, prefix string) *Counter {
	return &Counter{db: db, prefix: prefix}
}

func (c *Counter) Next() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	last := 0
	value, err := c.db.GetMetadata(metadataKey)
	if err != nil {
		return "", fmt.Errorf("load counter: %w", err)
	}
	if value != nil {
		parsed, err := strconv.Atoi(*value)
		if err != nil {
			return "", fmt.Errorf("corrupt counter value %q: %w", *value, err)
		}
		last = parsed
	}

	next := last + 1
	if err := c.db.SetMetadata(metadataKey, strconv.Itoa(next)); err != nil {
		return "", fmt.Errorf("persist counter: %w", err)
	}

	return fmt.Sprintf("%s%06d", c.prefix, next), nil
}
