// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"errors"
	"fmt"

	"github.com/luxfi/database/memdb"
	"github.com/luxfi/ids"
	"github.com/luxfi/math/set"

	"github.com/luxfi/grantvm/vms/grantvm/config"
	"github.com/luxfi/grantvm/vms/grantvm/ledger"
	"github.com/luxfi/grantvm/vms/grantvm/locker"
	"github.com/luxfi/grantvm/vms/grantvm/state"
)

var ErrIssuanceOverflow = errors.New("total issuance overflows")

// Build loads [g] into [s] and [l] as of [height]. It runs once, before any
// tx executes, and writes nothing it does not also validate: every schedule
// must verify and fit within the schedule limit.
func Build(g *Genesis, s state.Registry, l ledger.Ledger, height uint64) error {
	for i, balance := range g.Balances {
		if err := mint(l, balance.Address, balance.Amount); err != nil {
			return fmt.Errorf("balance %d: %w", i, err)
		}
	}

	grantees := set.NewSet[ids.ShortID](len(g.Vesting))
	for i, grant := range g.Vesting {
		total, err := grant.Schedule.Verify()
		if err != nil {
			return fmt.Errorf("grant %d to %s: %w", i, grant.Address, err)
		}
		if err := s.AddSchedule(grant.Address, grant.Schedule); err != nil {
			return fmt.Errorf("grant %d to %s: %w", i, grant.Address, err)
		}
		if err := mint(l, grant.Address, total); err != nil {
			return fmt.Errorf("grant %d to %s: %w", i, grant.Address, err)
		}
		grantees.Add(grant.Address)
	}

	maintainer := locker.NewMaintainer(l)
	for addr := range grantees {
		locked, err := s.LockedAt(addr, height)
		if err != nil {
			return err
		}
		if _, err := maintainer.Reconcile(addr, locked); err != nil {
			return err
		}
	}
	return nil
}

// mint credits exactly [amount] of new funds to [addr].
func mint(l ledger.Ledger, addr ids.ShortID, amount uint64) error {
	minted, err := l.Issue(amount)
	if err != nil {
		return err
	}
	if minted < amount {
		return fmt.Errorf("%w: minting %d to %s", ErrIssuanceOverflow, amount, addr)
	}
	return l.ResolveCreating(addr, minted)
}

// Verify builds [g] into a scratch state under [cfg], reporting the first
// reason the chain would fail to start from it.
func Verify(g *Genesis, cfg *config.Config) error {
	s, err := state.New(memdb.New(), cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	return Build(g, s, ledger.NewAccounts(s.LedgerDB(), cfg.ExistentialDeposit), 0)
}
