// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mockable

import "sync"

// Clock is a monotonic block-height counter. Heights only move forward; a
// request to move the clock backwards is ignored.
// It is safe for concurrent use.
type Clock struct {
	mu     sync.RWMutex
	height uint64
}

// Set moves the clock to [height] if it is not behind the current height.
// Returns true if the clock moved.
func (c *Clock) Set(height uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if height < c.height {
		return false
	}
	c.height = height
	return true
}

// Advance moves the clock forward by [blocks], saturating at the maximum
// height, and returns the new height.
func (c *Clock) Advance(blocks uint64) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.height > ^uint64(0)-blocks {
		c.height = ^uint64(0)
	} else {
		c.height += blocks
	}
	return c.height
}

// Height returns the current height on this clock
func (c *Clock) Height() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.height
}
