// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package grantvm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/rpc/v2"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/luxfi/utils/json"
	"github.com/luxfi/version"

	"github.com/luxfi/grantvm/utils/timer/mockable"
	"github.com/luxfi/grantvm/vms/grantvm/auth"
	"github.com/luxfi/grantvm/vms/grantvm/config"
	"github.com/luxfi/grantvm/vms/grantvm/events"
	"github.com/luxfi/grantvm/vms/grantvm/genesis"
	"github.com/luxfi/grantvm/vms/grantvm/ledger"
	"github.com/luxfi/grantvm/vms/grantvm/locker"
	"github.com/luxfi/grantvm/vms/grantvm/metrics"
	"github.com/luxfi/grantvm/vms/grantvm/schedule"
	"github.com/luxfi/grantvm/vms/grantvm/state"
	"github.com/luxfi/grantvm/vms/grantvm/txs"
	"github.com/luxfi/grantvm/vms/grantvm/txs/executor"

	luxvm "github.com/luxfi/grantvm"
)

// Name is the name the JSON-RPC service is registered under.
const Name = "grants"

var (
	_ luxvm.VM = (*VM)(nil)

	Version = &version.Semantic{
		Major: 1,
		Minor: 0,
		Patch: 0,
	}

	ErrNotReady = errors.New("chain is not accepting transactions")
)

// VM runs the grants protocol over its own account ledger. Transactions are
// applied one at a time, each either fully committed or fully discarded.
type VM struct {
	config.Config
	log log.Logger

	// lock serializes tx execution and state reads
	lock   sync.Mutex
	status luxvm.State

	clk         mockable.Clock
	state       state.State
	accounts    *ledger.Accounts
	locker      *locker.Maintainer
	buffer      *events.Buffer
	backend     *executor.Backend
	metrics     metrics.Metrics
	subscribers []events.Sink
}

func (vm *VM) Initialize(_ context.Context, cfg *luxvm.Config) error {
	vm.log.Info("initializing grants chain",
		log.Stringer("version", Version),
	)

	if err := vm.Config.Verify(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	registerer := cfg.Registerer
	if registerer == nil {
		registerer = prometheus.NewRegistry()
	}
	var err error
	vm.metrics, err = metrics.New(registerer)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	vm.state, err = state.New(cfg.DB, &vm.Config)
	if err != nil {
		return fmt.Errorf("failed to open state: %w", err)
	}
	vm.accounts = ledger.NewAccounts(vm.state.LedgerDB(), vm.ExistentialDeposit)
	vm.locker = locker.NewMaintainer(vm.accounts)
	vm.buffer = &events.Buffer{}
	vm.backend = &executor.Backend{
		Clk:    &vm.clk,
		State:  vm.state,
		Ledger: vm.accounts,
		Locker: vm.locker,
		Auth:   auth.NewCancelAuthority(vm.CancelAuthorities...),
		Events: vm.buffer,
		Log:    vm.log,
	}

	vm.status = luxvm.Bootstrapping
	if err := vm.loadGenesis(cfg.GenesisBytes); err != nil {
		return err
	}

	numGrantees, err := vm.state.NumGrantees()
	if err != nil {
		return err
	}
	vm.metrics.SetNumGrantees(numGrantees)
	vm.status = luxvm.NormalOp

	vm.log.Info("initialized grants chain",
		log.Uint64("height", vm.clk.Height()),
		log.Uint64("numGrantees", numGrantees),
		log.Int("numCancelAuthorities", len(vm.CancelAuthorities)),
	)
	return nil
}

func (vm *VM) loadGenesis(genesisBytes []byte) error {
	initialized, err := vm.state.IsInitialized()
	if err != nil {
		return fmt.Errorf("failed to check if the database is initialized: %w", err)
	}
	if initialized {
		return nil
	}

	g, err := genesis.Parse(genesisBytes)
	if err != nil {
		return fmt.Errorf("failed to parse genesis bytes: %w", err)
	}
	if err := genesis.Build(g, vm.state, vm.accounts, vm.clk.Height()); err != nil {
		vm.state.Abort()
		return fmt.Errorf("failed to initialize genesis state: %w", err)
	}
	if err := vm.state.SetInitialized(); err != nil {
		vm.state.Abort()
		return err
	}
	if err := vm.state.Commit(); err != nil {
		vm.state.Abort()
		return err
	}

	vm.log.Info("loaded genesis",
		log.Int("numBalances", len(g.Balances)),
		log.Int("numGrants", len(g.Vesting)),
	)
	return nil
}

// IssueTx executes [tx] at the current height. On success every write of
// [tx] is committed and its events are delivered to the subscribers. On
// failure nothing [tx] wrote is kept.
func (vm *VM) IssueTx(tx *txs.Tx) error {
	if tx == nil {
		return fmt.Errorf("%w: %w", executor.ErrMalformed, txs.ErrNilTx)
	}

	vm.lock.Lock()
	defer vm.lock.Unlock()

	if vm.status != luxvm.NormalOp {
		return fmt.Errorf("%w: %s", ErrNotReady, vm.status)
	}

	if err := executor.Execute(vm.backend, tx); err != nil {
		vm.abort()
		category := executor.Category(err)
		vm.metrics.MarkTxRejected(category)
		vm.log.Debug("rejected tx",
			log.Stringer("txID", tx.ID()),
			log.String("category", category),
			zap.Error(err),
		)
		return err
	}
	if err := vm.state.Commit(); err != nil {
		vm.abort()
		vm.log.Error("failed to commit tx",
			log.Stringer("txID", tx.ID()),
			zap.Error(err),
		)
		return err
	}

	emitted := vm.buffer.Flush()
	if err := vm.metrics.MarkTxAccepted(tx, emitted); err != nil {
		vm.log.Warn("failed to update tx metrics",
			log.Stringer("txID", tx.ID()),
			zap.Error(err),
		)
	}
	if numGrantees, err := vm.state.NumGrantees(); err == nil {
		vm.metrics.SetNumGrantees(numGrantees)
	}
	for _, sink := range vm.subscribers {
		for _, e := range emitted {
			sink.Emit(e)
		}
	}
	return nil
}

func (vm *VM) abort() {
	vm.state.Abort()
	vm.buffer.Discard()
}

// Subscribe delivers the events of every subsequently accepted tx to [sink].
func (vm *VM) Subscribe(sink events.Sink) {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	vm.subscribers = append(vm.subscribers, sink)
}

// SetHeight moves the chain to [height]. Heights never move backwards.
func (vm *VM) SetHeight(height uint64) bool {
	return vm.clk.Set(height)
}

// AdvanceHeight moves the chain forward by [blocks] and returns the new
// height.
func (vm *VM) AdvanceHeight(blocks uint64) uint64 {
	return vm.clk.Advance(blocks)
}

func (vm *VM) Height() uint64 {
	return vm.clk.Height()
}

func (vm *VM) GetSchedules(addr ids.ShortID) ([]schedule.Schedule, error) {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	return vm.state.GetSchedules(addr)
}

func (vm *VM) IsRenounced(addr ids.ShortID) (bool, error) {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	return vm.state.IsRenounced(addr)
}

// Locked returns the amount the schedules of [addr] lock at the current
// height and the amount the ledger currently holds under the vesting lock.
// The two differ until [addr] claims.
func (vm *VM) Locked(addr ids.ShortID) (uint64, uint64, error) {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	vesting, err := vm.state.LockedAt(addr, vm.clk.Height())
	if err != nil {
		return 0, 0, err
	}
	held, err := vm.locker.Locked(addr)
	return vesting, held, err
}

// Balance returns the free balance of [addr] and the part of it that can be
// transferred.
func (vm *VM) Balance(addr ids.ShortID) (uint64, uint64, error) {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	free, err := vm.accounts.FreeBalance(addr)
	if err != nil {
		return 0, 0, err
	}
	usable, err := vm.accounts.Usable(addr, ledger.Transfer)
	return free, usable, err
}

func (vm *VM) NumGrantees() (uint64, error) {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	return vm.state.NumGrantees()
}

func (vm *VM) State() luxvm.State {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	return vm.status
}

func (vm *VM) Shutdown(context.Context) error {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	if vm.state == nil || vm.status == luxvm.Stopped {
		return nil
	}
	vm.status = luxvm.Stopped
	vm.log.Info("shutting down grants chain")
	return vm.state.Close()
}

func (*VM) Version(context.Context) (string, error) {
	return Version.String(), nil
}

func (vm *VM) CreateHandlers(context.Context) (map[string]http.Handler, error) {
	server := rpc.NewServer()
	server.RegisterCodec(json.NewCodec(), "application/json")
	server.RegisterCodec(json.NewCodec(), "application/json;charset=UTF-8")
	return map[string]http.Handler{
		"": server,
	}, server.RegisterService(&Service{vm: vm}, Name)
}
