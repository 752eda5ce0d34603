// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package ledger defines the balance ledger the grants protocol runs against.
//
// The grants protocol never holds funds. It moves spendable funds between
// accounts and raises or lowers a named withdrawal restriction (a lock) on
// funds an account already holds.
package ledger

import (
	"errors"

	"github.com/luxfi/ids"
)

var (
	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrLiquidityRestrictions = errors.New("account liquidity restrictions prevent withdrawal")
	ErrExistentialDeposit    = errors.New("value too low to create account")
	ErrKeepAlive             = errors.New("transfer would kill account")
	ErrBalanceOverflow       = errors.New("balance overflow")
)

// LockID names a lock so several subsystems can restrict the same account
// independently.
type LockID [8]byte

func (id LockID) String() string {
	return string(id[:])
}

// Reasons is the set of withdrawal kinds a lock restricts.
type Reasons uint8

const (
	TransactionPayment Reasons = 1 << iota
	Transfer
	Reserve
	Fee
	Tip

	AllReasons = TransactionPayment | Transfer | Reserve | Fee | Tip
)

func (r Reasons) Contains(other Reasons) bool {
	return r&other == other
}

// Existence states whether a transfer may empty the source account below the
// existential deposit and so remove it.
type Existence bool

const (
	KeepAlive  Existence = false
	AllowDeath Existence = true
)

func (e Existence) String() string {
	if e == AllowDeath {
		return "AllowDeath"
	}
	return "KeepAlive"
}

// Ledger is the balance ledger consumed by the grants protocol.
//
// Writes must land in the same atomic unit as the caller's other writes: when
// the caller aborts, every ledger mutation made since the last commit must be
// discarded with it.
type Ledger interface {
	// FreeBalance returns the spendable plus locked funds of [addr].
	FreeBalance(addr ids.ShortID) (uint64, error)

	// Transfer moves [amount] of unlocked funds from [from] to [to].
	Transfer(from, to ids.ShortID, amount uint64, existence Existence) error

	// Lock returns the amount currently held by lock [id] on [addr], or zero.
	Lock(id LockID, addr ids.ShortID) (uint64, error)

	// SetLock creates or overwrites lock [id] on [addr].
	SetLock(id LockID, addr ids.ShortID, amount uint64, reasons Reasons) error

	// RemoveLock removes lock [id] from [addr]. Removing a missing lock is a
	// no-op.
	RemoveLock(id LockID, addr ids.ShortID) error

	// Issue mints [amount] of new funds and returns the amount actually
	// minted, which is less than [amount] only if the total issuance would
	// overflow. Minted funds must be credited with ResolveCreating.
	Issue(amount uint64) (uint64, error)

	// ResolveCreating credits [amount] to [addr], creating the account if
	// needed.
	ResolveCreating(addr ids.ShortID, amount uint64) error
}
