// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package executor

import "errors"

// Every error returned by an executed tx wraps exactly one of these
// categories.
var (
	// ErrMalformed means the tx can never succeed as written.
	ErrMalformed = errors.New("malformed")
	// ErrCapacity means the target account holds too many schedules.
	ErrCapacity = errors.New("capacity exceeded")
	// ErrPolicy means the origin is not allowed to perform the tx.
	ErrPolicy = errors.New("policy violation")
	// ErrLedger means the ledger rejected a funds transfer. Resubmitting may
	// succeed once balances change.
	ErrLedger = errors.New("ledger rejected transfer")
	// ErrInvariantViolation means the stored state is inconsistent.
	ErrInvariantViolation = errors.New("invariant violation")
)

var (
	ErrVestingToSelf      = errors.New("vesting to self")
	ErrNumOverflow        = errors.New("locked amount overflows")
	ErrRenounced          = errors.New("vesting schedules renounced")
	ErrNotCancelAuthority = errors.New("origin is not a cancel authority")
)

// Category names the category [err] belongs to, or "unknown" if it belongs to
// none.
func Category(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrInvariantViolation):
		return "invariant"
	case errors.Is(err, ErrMalformed):
		return "malformed"
	case errors.Is(err, ErrCapacity):
		return "capacity"
	case errors.Is(err, ErrPolicy):
		return "policy"
	case errors.Is(err, ErrLedger):
		return "ledger"
	default:
		return "unknown"
	}
}
