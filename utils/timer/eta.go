// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package timer

import (
	"math"
	"time"
)

// EstimateETA estimates the wall-clock time until [target] is reached from
// [current], assuming one block every [blockInterval]. Heights already
// reached return zero. The estimate saturates instead of overflowing.
func EstimateETA(current, target uint64, blockInterval time.Duration) time.Duration {
	if target <= current || blockInterval <= 0 {
		return 0
	}

	blocks := target - current
	if blocks > uint64(math.MaxInt64/int64(blockInterval)) {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(blocks) * blockInterval
}
