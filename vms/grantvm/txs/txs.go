// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"github.com/luxfi/ids"

	"github.com/luxfi/grantvm/vms/grantvm/schedule"
)

var (
	_ UnsignedTx = (*ClaimTx)(nil)
	_ UnsignedTx = (*AddVestingScheduleTx)(nil)
	_ UnsignedTx = (*CancelAllVestingSchedulesTx)(nil)
	_ UnsignedTx = (*RenounceTx)(nil)
)

// UnsignedTx is a grant operation without its origin.
type UnsignedTx interface {
	// Visit calls [visitor] with this transaction's concrete type
	Visit(visitor Visitor) error
}

// ClaimTx unlocks every vested amount of the caller.
type ClaimTx struct{}

func (tx *ClaimTx) Visit(visitor Visitor) error {
	return visitor.ClaimTx(tx)
}

// AddVestingScheduleTx moves the total of [Schedule] from the caller to
// [Dest] and locks it under [Schedule].
type AddVestingScheduleTx struct {
	Dest     ids.ShortID       `serialize:"true" json:"dest"`
	Schedule schedule.Schedule `serialize:"true" json:"schedule"`
}

func (tx *AddVestingScheduleTx) Visit(visitor Visitor) error {
	return visitor.AddVestingScheduleTx(tx)
}

// CancelAllVestingSchedulesTx removes every schedule of [Who] and moves the
// still locked funds to [FundsCollector].
type CancelAllVestingSchedulesTx struct {
	Who            ids.ShortID `serialize:"true" json:"who"`
	FundsCollector ids.ShortID `serialize:"true" json:"fundsCollector"`
}

func (tx *CancelAllVestingSchedulesTx) Visit(visitor Visitor) error {
	return visitor.CancelAllVestingSchedulesTx(tx)
}

// RenounceTx permanently gives up the right to cancel the schedules of [Who].
type RenounceTx struct {
	Who ids.ShortID `serialize:"true" json:"who"`
}

func (tx *RenounceTx) Visit(visitor Visitor) error {
	return visitor.RenounceTx(tx)
}
