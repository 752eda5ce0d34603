// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/database/memdb"
	"github.com/luxfi/ids"

	"github.com/luxfi/grantvm/vms/grantvm/config"
	"github.com/luxfi/grantvm/vms/grantvm/ledger"
	"github.com/luxfi/grantvm/vms/grantvm/locker"
	"github.com/luxfi/grantvm/vms/grantvm/schedule"
	"github.com/luxfi/grantvm/vms/grantvm/state"
)

var testSchedule = schedule.Schedule{
	Start:       0,
	Period:      10,
	PeriodCount: 5,
	PerPeriod:   100,
}

func newTestState(t *testing.T, maxSchedules uint32) (state.State, *ledger.Accounts) {
	cfg := config.Default
	cfg.MaxSchedules = maxSchedules
	s, err := state.New(memdb.New(), &cfg)
	require.NoError(t, err)
	return s, ledger.NewAccounts(s.LedgerDB(), 1)
}

func TestParse(t *testing.T) {
	require := require.New(t)

	alice := ids.GenerateTestShortID()
	g := &Genesis{
		Balances: []Balance{{Address: alice, Amount: 10}},
		Vesting:  []Grant{{Address: alice, Schedule: testSchedule}},
	}
	genesisBytes, err := g.Bytes()
	require.NoError(err)

	parsed, err := Parse(genesisBytes)
	require.NoError(err)
	require.Equal(g, parsed)
}

func TestParseJSON(t *testing.T) {
	require := require.New(t)

	alice := ids.GenerateTestShortID()
	jsonBytes := []byte(fmt.Sprintf(`{
		"balances": [{"address": %q, "amount": 10}],
		"vesting": [{
			"address": %q,
			"schedule": {"start": 0, "period": 10, "periodCount": 5, "perPeriod": 100}
		}]
	}`, alice, alice))

	g, err := ParseJSON(jsonBytes)
	require.NoError(err)
	require.Equal(
		&Genesis{
			Balances: []Balance{{Address: alice, Amount: 10}},
			Vesting:  []Grant{{Address: alice, Schedule: testSchedule}},
		},
		g,
	)
}

func TestBuild(t *testing.T) {
	require := require.New(t)

	alice := ids.GenerateTestShortID()
	bob := ids.GenerateTestShortID()
	late := testSchedule
	late.Start = 20

	s, accounts := newTestState(t, 10)
	require.NoError(Build(&Genesis{
		Balances: []Balance{
			{Address: alice, Amount: 1_000},
			{Address: bob, Amount: 50},
		},
		Vesting: []Grant{
			{Address: bob, Schedule: testSchedule},
			{Address: bob, Schedule: late},
		},
	}, s, accounts, 10))

	balance, err := accounts.FreeBalance(alice)
	require.NoError(err)
	require.Equal(uint64(1_000), balance)

	balance, err = accounts.FreeBalance(bob)
	require.NoError(err)
	require.Equal(uint64(1_050), balance)

	locked, err := accounts.Lock(locker.VestingLockID, bob)
	require.NoError(err)
	require.Equal(uint64(400+500), locked)

	schedules, err := s.GetSchedules(bob)
	require.NoError(err)
	require.Equal([]schedule.Schedule{testSchedule, late}, schedules)

	issuance, err := accounts.TotalIssuance()
	require.NoError(err)
	require.Equal(uint64(2_050), issuance)
}

func TestBuildFailures(t *testing.T) {
	alice := ids.GenerateTestShortID()

	tests := []struct {
		name         string
		maxSchedules uint32
		genesis      *Genesis
		expectedErr  error
	}{
		{
			name:         "invalid schedule",
			maxSchedules: 10,
			genesis: &Genesis{
				Vesting: []Grant{{Address: alice, Schedule: schedule.Schedule{Period: 0, PeriodCount: 1}}},
			},
			expectedErr: schedule.ErrZeroPeriod,
		},
		{
			name:         "too many schedules",
			maxSchedules: 1,
			genesis: &Genesis{
				Vesting: []Grant{
					{Address: alice, Schedule: testSchedule},
					{Address: alice, Schedule: testSchedule},
				},
			},
			expectedErr: state.ErrCapacityExceeded,
		},
		{
			name:         "balances overflow issuance",
			maxSchedules: 10,
			genesis: &Genesis{
				Balances: []Balance{
					{Address: alice, Amount: math.MaxUint64},
					{Address: alice, Amount: 1},
				},
			},
			expectedErr: ErrIssuanceOverflow,
		},
		{
			name:         "grant overflows issuance",
			maxSchedules: 10,
			genesis: &Genesis{
				Balances: []Balance{{Address: alice, Amount: math.MaxUint64 - 100}},
				Vesting:  []Grant{{Address: alice, Schedule: testSchedule}},
			},
			expectedErr: ErrIssuanceOverflow,
		},
		{
			name:         "zero amounts",
			maxSchedules: 10,
			genesis: &Genesis{
				Balances: []Balance{{Address: alice, Amount: 0}},
				Vesting: []Grant{{Address: alice, Schedule: schedule.Schedule{
					Period:      1,
					PeriodCount: 1,
					PerPeriod:   0,
				}}},
			},
			expectedErr: nil,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s, accounts := newTestState(t, test.maxSchedules)
			err := Build(test.genesis, s, accounts, 0)
			require.ErrorIs(t, err, test.expectedErr)
		})
	}
}

func TestVerify(t *testing.T) {
	alice := ids.GenerateTestShortID()
	tooMany := config.Default
	tooMany.MaxSchedules = 1

	tests := []struct {
		name        string
		config      config.Config
		genesis     *Genesis
		expectedErr error
	}{
		{
			name:   "valid",
			config: config.Default,
			genesis: &Genesis{
				Balances: []Balance{{Address: alice, Amount: 10}},
				Vesting:  []Grant{{Address: alice, Schedule: testSchedule}},
			},
		},
		{
			name:   "over capacity",
			config: tooMany,
			genesis: &Genesis{
				Vesting: []Grant{
					{Address: alice, Schedule: testSchedule},
					{Address: alice, Schedule: testSchedule},
				},
			},
			expectedErr: state.ErrCapacityExceeded,
		},
		{
			name:   "overflowing schedule",
			config: config.Default,
			genesis: &Genesis{
				Vesting: []Grant{{Address: alice, Schedule: schedule.Schedule{
					Period:      1,
					PeriodCount: 2,
					PerPeriod:   1 << 63,
				}}},
			},
			expectedErr: schedule.ErrOverflow,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := Verify(test.genesis, &test.config)
			require.ErrorIs(t, err, test.expectedErr)
		})
	}
}
