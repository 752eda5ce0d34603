// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package executor

import (
	"errors"
	"fmt"

	"github.com/luxfi/ids"
	"github.com/luxfi/log"

	"github.com/luxfi/grantvm/vms/grantvm/events"
	"github.com/luxfi/grantvm/vms/grantvm/ledger"
	"github.com/luxfi/grantvm/vms/grantvm/state"
	"github.com/luxfi/grantvm/vms/grantvm/txs"

	safemath "github.com/luxfi/grantvm/utils/math"
)

var _ txs.Visitor = (*StandardTxExecutor)(nil)

// StandardTxExecutor applies a tx to the state and the ledger. Writes are not
// committed: on error the caller must abort every write made since the last
// commit.
type StandardTxExecutor struct {
	// inputs, to be filled before visitor methods are called
	*Backend
	Tx *txs.Tx

	// Height is the block height the tx executes at.
	Height uint64
}

// Execute runs [tx] at the current height of the backend's clock.
func Execute(backend *Backend, tx *txs.Tx) error {
	if tx == nil {
		return fmt.Errorf("%w: %w", ErrMalformed, txs.ErrNilTx)
	}
	if tx.Unsigned == nil {
		return fmt.Errorf("%w: %w", ErrMalformed, txs.ErrNilUnsignedTx)
	}
	return tx.Unsigned.Visit(&StandardTxExecutor{
		Backend: backend,
		Tx:      tx,
		Height:  backend.Clk.Height(),
	})
}

func (e *StandardTxExecutor) ClaimTx(*txs.ClaimTx) error {
	who, err := e.resolve()
	if err != nil {
		return err
	}

	locked, released, err := e.claim(who)
	if err != nil {
		return err
	}

	e.Events.Emit(&events.Claimed{
		Who:    who,
		Amount: released,
		Locked: locked,
	})
	e.Log.Debug("claimed vested funds",
		log.Stringer("txID", e.Tx.ID()),
		log.Stringer("who", who),
		log.Uint64("released", released),
		log.Uint64("locked", locked),
		log.Uint64("height", e.Height),
	)
	return nil
}

func (e *StandardTxExecutor) AddVestingScheduleTx(tx *txs.AddVestingScheduleTx) error {
	from, err := e.resolve()
	if err != nil {
		return err
	}
	to := tx.Dest
	if from == to {
		return fmt.Errorf("%w: %w", ErrPolicy, ErrVestingToSelf)
	}

	total, err := tx.Schedule.Verify()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	locked, err := e.lockedAt(to)
	if err != nil {
		return err
	}
	if _, err := safemath.Add(locked, total); err != nil {
		return fmt.Errorf("%w: %w: %d already locked for %s", ErrMalformed, ErrNumOverflow, locked, to)
	}

	if err := e.State.AddSchedule(to, tx.Schedule); err != nil {
		if errors.Is(err, state.ErrCapacityExceeded) {
			return fmt.Errorf("%w: %w", ErrCapacity, err)
		}
		return err
	}

	if err := e.Ledger.Transfer(from, to, total, ledger.KeepAlive); err != nil {
		return fmt.Errorf("%w: %w", ErrLedger, err)
	}

	// The new schedule may have started in the past, so the lock is set to
	// the recomputed aggregate rather than to [locked + total].
	newLocked, err := e.lockedAt(to)
	if err != nil {
		return err
	}
	if _, err := e.Locker.Reconcile(to, newLocked); err != nil {
		return err
	}

	e.Events.Emit(&events.VestingScheduleAdded{
		From:     from,
		To:       to,
		Schedule: tx.Schedule,
	})
	e.Log.Debug("added vesting schedule",
		log.Stringer("txID", e.Tx.ID()),
		log.Stringer("from", from),
		log.Stringer("to", to),
		log.Uint64("total", total),
		log.Uint64("locked", newLocked),
	)
	return nil
}

func (e *StandardTxExecutor) CancelAllVestingSchedulesTx(tx *txs.CancelAllVestingSchedulesTx) error {
	if !e.Auth.IsCancelAuthority(e.Tx.Origin) {
		return fmt.Errorf("%w: %w: %s", ErrPolicy, ErrNotCancelAuthority, e.Tx.Origin)
	}
	who := tx.Who
	renounced, err := e.State.IsRenounced(who)
	if err != nil {
		return err
	}
	if renounced {
		return fmt.Errorf("%w: %w: %s", ErrPolicy, ErrRenounced, who)
	}

	locked, _, err := e.claim(who)
	if err != nil {
		return err
	}

	free, err := e.Ledger.FreeBalance(who)
	if err != nil {
		return err
	}
	// The account may have spent funds the lock did not cover, in which
	// case only what is left is collected.
	collected := min(locked, free)

	if _, err := e.Locker.Reconcile(who, 0); err != nil {
		return err
	}
	if err := e.Ledger.Transfer(who, tx.FundsCollector, collected, ledger.AllowDeath); err != nil {
		return fmt.Errorf("%w: %w", ErrLedger, err)
	}
	if err := e.State.DeleteSchedules(who); err != nil {
		return err
	}

	e.Events.Emit(&events.VestingSchedulesCanceled{
		Who:       who,
		Collector: tx.FundsCollector,
		Collected: collected,
	})
	e.Log.Debug("canceled vesting schedules",
		log.Stringer("txID", e.Tx.ID()),
		log.Stringer("who", who),
		log.Stringer("collector", tx.FundsCollector),
		log.Uint64("locked", locked),
		log.Uint64("collected", collected),
	)
	return nil
}

func (e *StandardTxExecutor) RenounceTx(tx *txs.RenounceTx) error {
	if !e.Auth.IsCancelAuthority(e.Tx.Origin) {
		return fmt.Errorf("%w: %w: %s", ErrPolicy, ErrNotCancelAuthority, e.Tx.Origin)
	}
	if err := e.State.SetRenounced(tx.Who); err != nil {
		return err
	}

	e.Events.Emit(&events.Renounced{Who: tx.Who})
	e.Log.Debug("renounced vesting schedule cancellation",
		log.Stringer("txID", e.Tx.ID()),
		log.Stringer("who", tx.Who),
	)
	return nil
}

func (e *StandardTxExecutor) resolve() (ids.ShortID, error) {
	addr, err := e.Auth.Resolve(e.Tx.Origin)
	if err != nil {
		return ids.ShortEmpty, fmt.Errorf("%w: %w", ErrPolicy, err)
	}
	return addr, nil
}

// claim lowers the vesting lock of [who] to the amount still locked and
// removes the schedules of [who] once nothing is locked. It returns the amount
// still locked and the amount released.
func (e *StandardTxExecutor) claim(who ids.ShortID) (uint64, uint64, error) {
	locked, err := e.lockedAt(who)
	if err != nil {
		return 0, 0, err
	}
	released, err := e.Locker.Reconcile(who, locked)
	if err != nil {
		return 0, 0, err
	}
	if locked == 0 {
		if err := e.State.DeleteSchedules(who); err != nil {
			return 0, 0, err
		}
	}
	return locked, released, nil
}

func (e *StandardTxExecutor) lockedAt(addr ids.ShortID) (uint64, error) {
	locked, err := e.State.LockedAt(addr, e.Height)
	if errors.Is(err, state.ErrLockedOverflow) {
		e.Log.Error("stored vesting schedules overflow",
			log.Stringer("address", addr),
			log.Uint64("height", e.Height),
			log.Err(err),
		)
		return 0, fmt.Errorf("%w: %w", ErrInvariantViolation, err)
	}
	return locked, err
}
