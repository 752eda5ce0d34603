// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package grantvm

import (
	"context"
	"encoding/hex"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/database/memdb"
	"github.com/luxfi/ids"
	"github.com/luxfi/utils/json"

	"github.com/luxfi/grantvm/vms/grantvm/auth"
	"github.com/luxfi/grantvm/vms/grantvm/schedule"
	"github.com/luxfi/grantvm/vms/grantvm/txs"
	"github.com/luxfi/grantvm/vms/grantvm/txs/executor"
)

func TestServiceGetSchedules(t *testing.T) {
	require := require.New(t)

	vm := newTestVM(t, memdb.New())
	service := &Service{vm: vm}

	reply := GetSchedulesReply{}
	require.NoError(service.GetSchedules(nil, &AddressArgs{Address: bob}, &reply))
	require.Equal([]schedule.Schedule{testSchedule}, reply.Schedules)
	require.NotNil(reply.NextRelease)
	require.Equal(json.Uint64(10), *reply.NextRelease)

	require.True(vm.SetHeight(25))
	reply = GetSchedulesReply{}
	require.NoError(service.GetSchedules(nil, &AddressArgs{Address: bob}, &reply))
	require.Equal(json.Uint64(30), *reply.NextRelease)

	require.True(vm.SetHeight(50))
	reply = GetSchedulesReply{}
	require.NoError(service.GetSchedules(nil, &AddressArgs{Address: bob}, &reply))
	require.Nil(reply.NextRelease)

	reply = GetSchedulesReply{}
	require.NoError(service.GetSchedules(nil, &AddressArgs{Address: carol}, &reply))
	require.NotNil(reply.Schedules)
	require.Empty(reply.Schedules)
	require.Nil(reply.NextRelease)
}

func TestServiceBalances(t *testing.T) {
	require := require.New(t)

	vm := newTestVM(t, memdb.New())
	service := &Service{vm: vm}
	require.True(vm.SetHeight(30))

	lockedReply := GetLockedReply{}
	require.NoError(service.GetLocked(nil, &AddressArgs{Address: bob}, &lockedReply))
	require.Equal(json.Uint64(200), lockedReply.Vesting)
	require.Equal(json.Uint64(500), lockedReply.Held)

	balanceReply := GetBalanceReply{}
	require.NoError(service.GetBalance(nil, &AddressArgs{Address: bob}, &balanceReply))
	require.Equal(json.Uint64(500), balanceReply.Balance)
	require.Zero(balanceReply.Unlocked)

	heightReply := GetHeightReply{}
	require.NoError(service.GetHeight(nil, nil, &heightReply))
	require.Equal(json.Uint64(30), heightReply.Height)

	numReply := GetNumGranteesReply{}
	require.NoError(service.GetNumGrantees(nil, nil, &numReply))
	require.Equal(json.Uint64(1), numReply.NumGrantees)

	renouncedReply := IsRenouncedReply{}
	require.NoError(service.IsRenounced(nil, &AddressArgs{Address: bob}, &renouncedReply))
	require.False(renouncedReply.Renounced)
}

func TestServiceIssueTx(t *testing.T) {
	vm := newDevnetVM(t, memdb.New())
	service := &Service{vm: vm}
	require.True(t, vm.SetHeight(30))

	tx, err := txs.NewTx(&txs.ClaimTx{}, auth.SignedBy(bob))
	require.NoError(t, err)
	encoded := hex.EncodeToString(tx.Bytes())

	tests := []struct {
		name        string
		tx          string
		expectedErr error
		errContains string
	}{
		{
			name:        "missing",
			expectedErr: errMissingTx,
		},
		{
			name:        "bad hex",
			tx:          "0xzz",
			errContains: "problem decoding transaction",
		},
		{
			name:        "bad bytes",
			tx:          "0x0102",
			errContains: "couldn't parse tx",
		},
		{
			name: "prefixed",
			tx:   "0x" + encoded,
		},
		{
			name: "unprefixed",
			tx:   encoded,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require := require.New(t)

			reply := IssueTxReply{}
			err := service.IssueTx(nil, &IssueTxArgs{Tx: test.tx}, &reply)
			switch {
			case test.expectedErr != nil:
				require.ErrorIs(err, test.expectedErr)
			case test.errContains != "":
				require.ErrorContains(err, test.errContains)
			default:
				require.NoError(err)
				require.Equal(tx.ID(), reply.TxID)
			}
		})
	}

	_, unlocked, err := vm.Balance(bob)
	require.NoError(t, err)
	require.Equal(t, uint64(300), unlocked)
}

func TestServiceIssueTxRejectsRootOrigin(t *testing.T) {
	require := require.New(t)

	vm := newDevnetVM(t, memdb.New())
	service := &Service{vm: vm}

	collector := ids.GenerateTestShortID()
	tx, err := txs.NewTx(&txs.CancelAllVestingSchedulesTx{
		Who:            bob,
		FundsCollector: collector,
	}, auth.RootOrigin())
	require.NoError(err)

	reply := IssueTxReply{}
	err = service.IssueTx(nil, &IssueTxArgs{Tx: hex.EncodeToString(tx.Bytes())}, &reply)
	require.ErrorIs(err, executor.ErrPolicy)
	require.ErrorIs(err, errRootOrigin)

	balance, _, err := vm.Balance(collector)
	require.NoError(err)
	require.Zero(balance)
	schedules, err := vm.GetSchedules(bob)
	require.NoError(err)
	require.Equal([]schedule.Schedule{testSchedule}, schedules)
}

func TestServiceDevnetMethodsDisabled(t *testing.T) {
	require := require.New(t)

	vm := newTestVM(t, memdb.New())
	service := &Service{vm: vm}

	tx, err := txs.NewTx(&txs.ClaimTx{}, auth.SignedBy(bob))
	require.NoError(err)
	err = service.IssueTx(nil, &IssueTxArgs{Tx: hex.EncodeToString(tx.Bytes())}, &IssueTxReply{})
	require.ErrorIs(err, errNotDevnet)

	err = service.AdvanceHeight(nil, &AdvanceHeightArgs{Blocks: 5}, &GetHeightReply{})
	require.ErrorIs(err, errNotDevnet)
	require.Zero(vm.Height())
}

func TestServiceAdvanceHeight(t *testing.T) {
	require := require.New(t)

	vm := newDevnetVM(t, memdb.New())
	service := &Service{vm: vm}

	reply := GetHeightReply{}
	require.ErrorIs(service.AdvanceHeight(nil, &AdvanceHeightArgs{}, &reply), errZeroBlocks)

	require.NoError(service.AdvanceHeight(nil, &AdvanceHeightArgs{Blocks: 25}, &reply))
	require.Equal(json.Uint64(25), reply.Height)
	require.NoError(service.AdvanceHeight(nil, &AdvanceHeightArgs{Blocks: 5}, &reply))
	require.Equal(json.Uint64(30), reply.Height)

	lockedReply := GetLockedReply{}
	require.NoError(service.GetLocked(nil, &AddressArgs{Address: bob}, &lockedReply))
	require.Equal(json.Uint64(200), lockedReply.Vesting)
}

func TestServiceOverHTTP(t *testing.T) {
	require := require.New(t)

	vm := newTestVM(t, memdb.New())
	require.True(vm.SetHeight(7))

	handlers, err := vm.CreateHandlers(context.Background())
	require.NoError(err)
	require.Contains(handlers, "")

	server := httptest.NewServer(handlers[""])
	defer server.Close()

	body := `{"jsonrpc":"2.0","id":1,"method":"grants.getHeight","params":{}}`
	resp, err := http.Post(server.URL, "application/json", strings.NewReader(body))
	require.NoError(err)
	defer resp.Body.Close()

	require.Equal(http.StatusOK, resp.StatusCode)
	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(err)
	require.Contains(string(respBytes), `"height":"7"`)
}

func TestServiceAdvanceHeightOverHTTP(t *testing.T) {
	require := require.New(t)

	vm := newDevnetVM(t, memdb.New())
	handlers, err := vm.CreateHandlers(context.Background())
	require.NoError(err)

	server := httptest.NewServer(handlers[""])
	defer server.Close()

	body := `{"jsonrpc":"2.0","id":1,"method":"grants.advanceHeight","params":{"blocks":"3"}}`
	resp, err := http.Post(server.URL, "application/json", strings.NewReader(body))
	require.NoError(err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(err)
	require.Contains(string(respBytes), `"height":"3"`)
	require.Equal(uint64(3), vm.Height())
}
