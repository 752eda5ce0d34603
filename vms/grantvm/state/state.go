// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package state stores the vesting schedules and renunciation flags of every
// account.
package state

import (
	"errors"
	"fmt"
	"slices"

	"github.com/luxfi/cache"
	"github.com/luxfi/cache/lru"
	"github.com/luxfi/database"
	"github.com/luxfi/database/prefixdb"
	"github.com/luxfi/database/versiondb"
	"github.com/luxfi/ids"

	"github.com/luxfi/grantvm/vms/grantvm/config"
	"github.com/luxfi/grantvm/vms/grantvm/schedule"

	safemath "github.com/luxfi/grantvm/utils/math"
)

// V1 is the only schema version. It is written once when a fresh database
// is opened.
const V1 uint64 = 1

var (
	_ State = (*state)(nil)

	ErrCapacityExceeded = errors.New("too many vesting schedules")
	ErrLockedOverflow   = errors.New("aggregate locked amount overflows")

	SchedulesPrefix = []byte("schedules")
	RenouncedPrefix = []byte("renounced")
	LedgerPrefix    = []byte("ledger")
	SingletonPrefix = []byte("singleton")

	VersionKey     = []byte("version")
	InitializedKey = []byte("initialized")
	NumGranteesKey = []byte("num grantees")
)

type Registry interface {
	// GetSchedules returns the schedules of [addr] in insertion order.
	GetSchedules(addr ids.ShortID) ([]schedule.Schedule, error)

	// AddSchedule appends [s] to the schedules of [addr]. Returns
	// ErrCapacityExceeded if [addr] already holds the maximum number of
	// schedules.
	AddSchedule(addr ids.ShortID, s schedule.Schedule) error

	// DeleteSchedules removes every schedule of [addr].
	DeleteSchedules(addr ids.ShortID) error

	// LockedAt returns the sum of the amounts the schedules of [addr] still
	// lock at [height]. Returns ErrLockedOverflow if the sum overflows.
	LockedAt(addr ids.ShortID, height uint64) (uint64, error)

	// NumGrantees returns the number of accounts holding at least one
	// schedule.
	NumGrantees() (uint64, error)
}

type Renunciations interface {
	IsRenounced(addr ids.ShortID) (bool, error)

	// SetRenounced marks [addr] as renounced. It can not be undone.
	SetRenounced(addr ids.ShortID) error
}

type State interface {
	Registry
	Renunciations

	// Version returns the schema version of the database.
	Version() (uint64, error)

	IsInitialized() (bool, error)
	SetInitialized() error

	// LedgerDB returns the keyspace the balance ledger is stored in. Writes
	// to it are committed and aborted together with the rest of the state.
	LedgerDB() database.Database

	// Commit persists every write since the last Commit or Abort.
	Commit() error

	// Abort discards every write since the last Commit or Abort.
	Abort()

	Close() error
}

type schedules struct {
	Schedules []schedule.Schedule `serialize:"true"`
}

type state struct {
	maxSchedules uint32

	baseDB *versiondb.Database

	schedulesDB    database.Database
	schedulesCache cache.Cacher[ids.ShortID, []schedule.Schedule] // cache of addr -> schedules; if the entry is nil, it is not in the database

	renouncedDB    database.Database
	renouncedCache cache.Cacher[ids.ShortID, bool]

	ledgerDB    database.Database
	singletonDB database.Database
}

// New opens the grants state stored in [db], writing the schema version if
// [db] is empty.
func New(db database.Database, cfg *config.Config) (State, error) {
	baseDB := versiondb.New(db)
	s := &state{
		maxSchedules: cfg.MaxSchedules,

		baseDB: baseDB,

		schedulesDB:    prefixdb.New(SchedulesPrefix, baseDB),
		schedulesCache: lru.NewCache[ids.ShortID, []schedule.Schedule](cfg.ScheduleCacheSize),

		renouncedDB:    prefixdb.New(RenouncedPrefix, baseDB),
		renouncedCache: lru.NewCache[ids.ShortID, bool](cfg.RenouncedCacheSize),

		ledgerDB:    prefixdb.New(LedgerPrefix, baseDB),
		singletonDB: prefixdb.New(SingletonPrefix, baseDB),
	}

	hasVersion, err := s.singletonDB.Has(VersionKey)
	if err != nil {
		return nil, err
	}
	if hasVersion {
		return s, nil
	}
	if err := database.PutUInt64(s.singletonDB, VersionKey, V1); err != nil {
		return nil, err
	}
	if err := s.Commit(); err != nil {
		return nil, fmt.Errorf("failed to write schema version: %w", err)
	}
	return s, nil
}

func (s *state) GetSchedules(addr ids.ShortID) ([]schedule.Schedule, error) {
	schedules, err := s.getSchedules(addr)
	return slices.Clone(schedules), err
}

func (s *state) AddSchedule(addr ids.ShortID, sched schedule.Schedule) error {
	current, err := s.getSchedules(addr)
	if err != nil {
		return err
	}
	if uint32(len(current)) >= s.maxSchedules {
		return fmt.Errorf("%w: %s holds %d", ErrCapacityExceeded, addr, len(current))
	}

	if len(current) == 0 {
		if err := s.adjustNumGrantees(true); err != nil {
			return err
		}
	}

	updated := make([]schedule.Schedule, len(current), len(current)+1)
	copy(updated, current)
	updated = append(updated, sched)
	return s.putSchedules(addr, updated)
}

func (s *state) DeleteSchedules(addr ids.ShortID) error {
	current, err := s.getSchedules(addr)
	if err != nil {
		return err
	}
	if len(current) == 0 {
		return nil
	}
	if err := s.adjustNumGrantees(false); err != nil {
		return err
	}
	s.schedulesCache.Put(addr, nil)
	return s.schedulesDB.Delete(addr[:])
}

func (s *state) LockedAt(addr ids.ShortID, height uint64) (uint64, error) {
	schedules, err := s.getSchedules(addr)
	if err != nil {
		return 0, err
	}
	var total uint64
	for i := range schedules {
		total, err = safemath.Add(total, schedules[i].LockedAmount(height))
		if err != nil {
			return 0, fmt.Errorf("%w: %s at height %d", ErrLockedOverflow, addr, height)
		}
	}
	return total, nil
}

func (s *state) NumGrantees() (uint64, error) {
	num, err := database.GetUInt64(s.singletonDB, NumGranteesKey)
	if err == database.ErrNotFound {
		return 0, nil
	}
	return num, err
}

func (s *state) IsRenounced(addr ids.ShortID) (bool, error) {
	if renounced, ok := s.renouncedCache.Get(addr); ok {
		return renounced, nil
	}
	renounced, err := s.renouncedDB.Has(addr[:])
	if err != nil {
		return false, err
	}
	s.renouncedCache.Put(addr, renounced)
	return renounced, nil
}

func (s *state) SetRenounced(addr ids.ShortID) error {
	s.renouncedCache.Put(addr, true)
	return s.renouncedDB.Put(addr[:], nil)
}

func (s *state) Version() (uint64, error) {
	return database.GetUInt64(s.singletonDB, VersionKey)
}

func (s *state) IsInitialized() (bool, error) {
	return s.singletonDB.Has(InitializedKey)
}

func (s *state) SetInitialized() error {
	return s.singletonDB.Put(InitializedKey, nil)
}

func (s *state) LedgerDB() database.Database {
	return s.ledgerDB
}

func (s *state) Commit() error {
	return s.baseDB.Commit()
}

func (s *state) Abort() {
	s.baseDB.Abort()
	s.schedulesCache.Flush()
	s.renouncedCache.Flush()
}

// Close closes the base database only. The prefixed keyspaces forward Close
// to it.
func (s *state) Close() error {
	return s.baseDB.Close()
}

// getSchedules returns the cached schedule list of [addr]. The result must
// not be modified.
func (s *state) getSchedules(addr ids.ShortID) ([]schedule.Schedule, error) {
	if cached, ok := s.schedulesCache.Get(addr); ok {
		return cached, nil
	}

	bytes, err := s.schedulesDB.Get(addr[:])
	if err == database.ErrNotFound {
		s.schedulesCache.Put(addr, nil)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var parsed schedules
	if _, err := Codec.Unmarshal(bytes, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse schedules of %s: %w", addr, err)
	}
	s.schedulesCache.Put(addr, parsed.Schedules)
	return parsed.Schedules, nil
}

func (s *state) putSchedules(addr ids.ShortID, list []schedule.Schedule) error {
	bytes, err := Codec.Marshal(CodecVersion, &schedules{Schedules: list})
	if err != nil {
		return fmt.Errorf("failed to serialize schedules of %s: %w", addr, err)
	}
	if err := s.schedulesDB.Put(addr[:], bytes); err != nil {
		return err
	}
	s.schedulesCache.Put(addr, list)
	return nil
}

func (s *state) adjustNumGrantees(increase bool) error {
	num, err := s.NumGrantees()
	if err != nil {
		return err
	}
	if increase {
		num = safemath.SatAdd(num, 1)
	} else {
		num = safemath.SatSub(num, 1)
	}
	return database.PutUInt64(s.singletonDB, NumGranteesKey, num)
}
