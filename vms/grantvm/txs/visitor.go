// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

// Allow vm to execute custom logic against the underlying transaction types.
type Visitor interface {
	ClaimTx(*ClaimTx) error
	AddVestingScheduleTx(*AddVestingScheduleTx) error
	CancelAllVestingSchedulesTx(*CancelAllVestingSchedulesTx) error
	RenounceTx(*RenounceTx) error
}
