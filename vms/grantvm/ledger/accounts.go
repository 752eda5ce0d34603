// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"fmt"
	"slices"

	"github.com/luxfi/database"
	"github.com/luxfi/database/prefixdb"
	"github.com/luxfi/ids"

	safemath "github.com/luxfi/grantvm/utils/math"
)

var (
	_ Ledger = (*Accounts)(nil)

	BalancePrefix   = []byte("balance")
	LockPrefix      = []byte("lock")
	SingletonPrefix = []byte("singleton")

	TotalIssuanceKey = []byte("total issuance")
)

type lockEntry struct {
	ID      LockID  `serialize:"true"`
	Amount  uint64  `serialize:"true"`
	Reasons Reasons `serialize:"true"`
}

type accountLocks struct {
	Locks []lockEntry `serialize:"true"`
}

// Accounts is a minimal account ledger with named balance locks, used to host
// the grants protocol on a standalone chain. Every write goes straight to the
// provided database, so wrapping it in a versiondb makes ledger writes part of
// the caller's atomic unit.
//
// Accounts whose free balance falls below the existential deposit are reaped:
// the remaining dust is burned and their locks are dropped.
type Accounts struct {
	existentialDeposit uint64

	balanceDB   database.Database
	lockDB      database.Database
	singletonDB database.Database
}

func NewAccounts(db database.Database, existentialDeposit uint64) *Accounts {
	return &Accounts{
		existentialDeposit: existentialDeposit,
		balanceDB:          prefixdb.New(BalancePrefix, db),
		lockDB:             prefixdb.New(LockPrefix, db),
		singletonDB:        prefixdb.New(SingletonPrefix, db),
	}
}

func (a *Accounts) FreeBalance(addr ids.ShortID) (uint64, error) {
	balance, err := database.GetUInt64(a.balanceDB, addr[:])
	if err == database.ErrNotFound {
		return 0, nil
	}
	return balance, err
}

// TotalIssuance returns the amount of funds in existence.
func (a *Accounts) TotalIssuance() (uint64, error) {
	issuance, err := database.GetUInt64(a.singletonDB, TotalIssuanceKey)
	if err == database.ErrNotFound {
		return 0, nil
	}
	return issuance, err
}

// Usable returns the part of the free balance of [addr] that no lock
// restricts for [reasons].
func (a *Accounts) Usable(addr ids.ShortID, reasons Reasons) (uint64, error) {
	free, err := a.FreeBalance(addr)
	if err != nil {
		return 0, err
	}
	frozen, err := a.frozen(addr, reasons)
	if err != nil {
		return 0, err
	}
	return safemath.SatSub(free, frozen), nil
}

func (a *Accounts) Transfer(from, to ids.ShortID, amount uint64, existence Existence) error {
	if amount == 0 || from == to {
		return nil
	}

	fromBalance, err := a.FreeBalance(from)
	if err != nil {
		return err
	}
	newFromBalance, err := safemath.Sub(fromBalance, amount)
	if err != nil {
		return fmt.Errorf("%w: %s has %d, needs %d", ErrInsufficientBalance, from, fromBalance, amount)
	}
	frozen, err := a.frozen(from, Transfer)
	if err != nil {
		return err
	}
	if newFromBalance < frozen {
		return fmt.Errorf("%w: %s would hold %d under a lock of %d", ErrLiquidityRestrictions, from, newFromBalance, frozen)
	}

	toBalance, err := a.FreeBalance(to)
	if err != nil {
		return err
	}
	newToBalance, err := safemath.Add(toBalance, amount)
	if err != nil {
		return ErrBalanceOverflow
	}
	if newToBalance < a.existentialDeposit {
		return fmt.Errorf("%w: %d < %d", ErrExistentialDeposit, newToBalance, a.existentialDeposit)
	}

	reap := newFromBalance < a.existentialDeposit
	if reap && existence == KeepAlive {
		return fmt.Errorf("%w: %s", ErrKeepAlive, from)
	}

	if err := database.PutUInt64(a.balanceDB, to[:], newToBalance); err != nil {
		return err
	}
	if reap {
		return a.reap(from, newFromBalance)
	}
	return database.PutUInt64(a.balanceDB, from[:], newFromBalance)
}

func (a *Accounts) Lock(id LockID, addr ids.ShortID) (uint64, error) {
	locks, err := a.getLocks(addr)
	if err != nil {
		return 0, err
	}
	for _, l := range locks {
		if l.ID == id {
			return l.Amount, nil
		}
	}
	return 0, nil
}

func (a *Accounts) SetLock(id LockID, addr ids.ShortID, amount uint64, reasons Reasons) error {
	if amount == 0 || reasons == 0 {
		return a.RemoveLock(id, addr)
	}

	locks, err := a.getLocks(addr)
	if err != nil {
		return err
	}
	entry := lockEntry{
		ID:      id,
		Amount:  amount,
		Reasons: reasons,
	}
	i := slices.IndexFunc(locks, func(l lockEntry) bool {
		return l.ID == id
	})
	if i < 0 {
		locks = append(locks, entry)
	} else {
		locks[i] = entry
	}
	return a.putLocks(addr, locks)
}

func (a *Accounts) RemoveLock(id LockID, addr ids.ShortID) error {
	locks, err := a.getLocks(addr)
	if err != nil {
		return err
	}
	remaining := slices.DeleteFunc(locks, func(l lockEntry) bool {
		return l.ID == id
	})
	if len(remaining) == len(locks) {
		return nil
	}
	return a.putLocks(addr, remaining)
}

func (a *Accounts) Issue(amount uint64) (uint64, error) {
	issuance, err := a.TotalIssuance()
	if err != nil {
		return 0, err
	}
	minted := min(amount, safemath.MaxUint[uint64]()-issuance)
	if err := database.PutUInt64(a.singletonDB, TotalIssuanceKey, issuance+minted); err != nil {
		return 0, err
	}
	return minted, nil
}

func (a *Accounts) ResolveCreating(addr ids.ShortID, amount uint64) error {
	if amount == 0 {
		return nil
	}
	balance, err := a.FreeBalance(addr)
	if err != nil {
		return err
	}
	newBalance, err := safemath.Add(balance, amount)
	if err != nil {
		return ErrBalanceOverflow
	}
	if newBalance < a.existentialDeposit {
		return fmt.Errorf("%w: %d < %d", ErrExistentialDeposit, newBalance, a.existentialDeposit)
	}
	return database.PutUInt64(a.balanceDB, addr[:], newBalance)
}

// frozen returns the largest lock on [addr] restricting [reasons]. Locks
// overlay each other rather than stack.
func (a *Accounts) frozen(addr ids.ShortID, reasons Reasons) (uint64, error) {
	locks, err := a.getLocks(addr)
	if err != nil {
		return 0, err
	}
	var frozen uint64
	for _, l := range locks {
		if l.Reasons&reasons != 0 {
			frozen = max(frozen, l.Amount)
		}
	}
	return frozen, nil
}

func (a *Accounts) reap(addr ids.ShortID, dust uint64) error {
	issuance, err := a.TotalIssuance()
	if err != nil {
		return err
	}
	if err := database.PutUInt64(a.singletonDB, TotalIssuanceKey, safemath.SatSub(issuance, dust)); err != nil {
		return err
	}
	if err := a.balanceDB.Delete(addr[:]); err != nil {
		return err
	}
	return a.lockDB.Delete(addr[:])
}

func (a *Accounts) getLocks(addr ids.ShortID) ([]lockEntry, error) {
	bytes, err := a.lockDB.Get(addr[:])
	if err == database.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var locks accountLocks
	if _, err := Codec.Unmarshal(bytes, &locks); err != nil {
		return nil, fmt.Errorf("failed to parse locks of %s: %w", addr, err)
	}
	return locks.Locks, nil
}

func (a *Accounts) putLocks(addr ids.ShortID, locks []lockEntry) error {
	if len(locks) == 0 {
		return a.lockDB.Delete(addr[:])
	}
	bytes, err := Codec.Marshal(CodecVersion, &accountLocks{Locks: locks})
	if err != nil {
		return fmt.Errorf("failed to serialize locks of %s: %w", addr, err)
	}
	return a.lockDB.Put(addr[:], bytes)
}
