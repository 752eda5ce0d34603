// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package locker keeps the ledger's vesting lock on an account equal to the
// amount the account's schedules still lock.
package locker

import (
	"fmt"

	"github.com/luxfi/ids"

	"github.com/luxfi/grantvm/vms/grantvm/ledger"

	safemath "github.com/luxfi/grantvm/utils/math"
)

// VestingLockID is the ledger lock every vesting restriction is held under.
var VestingLockID = ledger.LockID{'n', 'v', 'e', 's', 't', 'i', 'n', 'g'}

// Maintainer raises and lowers the vesting lock. It never moves funds.
type Maintainer struct {
	ledger ledger.Ledger
}

func NewMaintainer(l ledger.Ledger) *Maintainer {
	return &Maintainer{ledger: l}
}

// Reconcile sets the vesting lock on [addr] to exactly [lockedNow] and returns
// the amount the lock stopped covering. A zero [lockedNow] removes the lock,
// releasing all of it.
//
// Reconcile is idempotent.
func (m *Maintainer) Reconcile(addr ids.ShortID, lockedNow uint64) (uint64, error) {
	previous, err := m.ledger.Lock(VestingLockID, addr)
	if err != nil {
		return 0, fmt.Errorf("failed to read vesting lock of %s: %w", addr, err)
	}

	if lockedNow == 0 {
		if err := m.ledger.RemoveLock(VestingLockID, addr); err != nil {
			return 0, fmt.Errorf("failed to remove vesting lock of %s: %w", addr, err)
		}
		return previous, nil
	}

	if err := m.ledger.SetLock(VestingLockID, addr, lockedNow, ledger.AllReasons); err != nil {
		return 0, fmt.Errorf("failed to set vesting lock of %s: %w", addr, err)
	}
	return safemath.SatSub(previous, lockedNow), nil
}

// Locked returns the amount currently held under the vesting lock of [addr].
func (m *Maintainer) Locked(addr ids.ShortID) (uint64, error) {
	return m.ledger.Lock(VestingLockID, addr)
}
