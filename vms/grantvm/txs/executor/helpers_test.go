// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package executor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/database/memdb"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"

	"github.com/luxfi/grantvm/utils/timer/mockable"
	"github.com/luxfi/grantvm/vms/grantvm/auth"
	"github.com/luxfi/grantvm/vms/grantvm/config"
	"github.com/luxfi/grantvm/vms/grantvm/events"
	"github.com/luxfi/grantvm/vms/grantvm/ledger"
	"github.com/luxfi/grantvm/vms/grantvm/locker"
	"github.com/luxfi/grantvm/vms/grantvm/schedule"
	"github.com/luxfi/grantvm/vms/grantvm/state"
	"github.com/luxfi/grantvm/vms/grantvm/txs"
)

const defaultBalance = 10_000

var (
	alice     = ids.GenerateTestShortID()
	bob       = ids.GenerateTestShortID()
	carol     = ids.GenerateTestShortID()
	authority = ids.GenerateTestShortID()

	// releases 100 every 10 blocks, 5 times, starting at height 0
	exampleSchedule = schedule.Schedule{
		Start:       0,
		Period:      10,
		PeriodCount: 5,
		PerPeriod:   100,
	}
)

type environment struct {
	clk      *mockable.Clock
	state    state.State
	accounts *ledger.Accounts
	events   *events.Buffer
	backend  *Backend
}

func newEnvironment(t *testing.T, maxSchedules uint32) *environment {
	require := require.New(t)

	cfg := config.Default
	cfg.MaxSchedules = maxSchedules
	s, err := state.New(memdb.New(), &cfg)
	require.NoError(err)

	accounts := ledger.NewAccounts(s.LedgerDB(), 1)
	for _, addr := range []ids.ShortID{alice, bob, authority} {
		minted, err := accounts.Issue(defaultBalance)
		require.NoError(err)
		require.NoError(accounts.ResolveCreating(addr, minted))
	}
	require.NoError(s.Commit())

	env := &environment{
		clk:      &mockable.Clock{},
		state:    s,
		accounts: accounts,
		events:   &events.Buffer{},
	}
	env.backend = env.newBackend(accounts)
	return env
}

func (e *environment) newBackend(l ledger.Ledger) *Backend {
	return &Backend{
		Clk:    e.clk,
		State:  e.state,
		Ledger: l,
		Locker: locker.NewMaintainer(l),
		Auth:   auth.NewCancelAuthority(authority),
		Events: e.events,
		Log:    log.NoLog{},
	}
}

// execute runs [unsigned] on behalf of [origin] and commits on success,
// aborting on failure.
func (e *environment) execute(t *testing.T, unsigned txs.UnsignedTx, origin auth.Origin) error {
	tx, err := txs.NewTx(unsigned, origin)
	require.NoError(t, err)

	if err := Execute(e.backend, tx); err != nil {
		e.state.Abort()
		e.events.Discard()
		return err
	}
	require.NoError(t, e.state.Commit())
	return nil
}

func (e *environment) requireLock(t *testing.T, addr ids.ShortID, expected uint64) {
	locked, err := e.accounts.Lock(locker.VestingLockID, addr)
	require.NoError(t, err)
	require.Equal(t, expected, locked)
}

func (e *environment) requireBalance(t *testing.T, addr ids.ShortID, expected uint64) {
	balance, err := e.accounts.FreeBalance(addr)
	require.NoError(t, err)
	require.Equal(t, expected, balance)
}

func (e *environment) requireSchedules(t *testing.T, addr ids.ShortID, expected []schedule.Schedule) {
	schedules, err := e.state.GetSchedules(addr)
	require.NoError(t, err)
	if len(expected) == 0 {
		require.Empty(t, schedules)
		return
	}
	require.Equal(t, expected, schedules)
}
