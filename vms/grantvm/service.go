// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package grantvm

import (
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/luxfi/utils/json"

	"github.com/luxfi/grantvm/vms/grantvm/auth"
	"github.com/luxfi/grantvm/vms/grantvm/schedule"
	"github.com/luxfi/grantvm/vms/grantvm/txs"
	"github.com/luxfi/grantvm/vms/grantvm/txs/executor"
)

var (
	errMissingTx  = errors.New("argument 'tx' not given")
	errNotDevnet  = errors.New("method is only served on a devnet")
	errRootOrigin = errors.New("root origin cannot be submitted over the API")
	errZeroBlocks = errors.New("argument 'blocks' must be positive")
)

// Service defines the API calls that can be made to the grants chain
type Service struct {
	vm *VM
}

type GetHeightReply struct {
	Height json.Uint64 `json:"height"`
}

// GetHeight returns the height the next tx executes at
func (s *Service) GetHeight(_ *http.Request, _ *struct{}, reply *GetHeightReply) error {
	s.vm.log.Debug("API called",
		log.String("service", Name),
		log.String("method", "getHeight"),
	)

	reply.Height = json.Uint64(s.vm.Height())
	return nil
}

type AddressArgs struct {
	Address ids.ShortID `json:"address"`
}

type GetSchedulesReply struct {
	Schedules []schedule.Schedule `json:"schedules"`
	// NextRelease is the next height at which a schedule releases funds, if
	// any schedule still locks funds.
	NextRelease *json.Uint64 `json:"nextRelease,omitempty"`
}

// GetSchedules returns the vesting schedules of an address in insertion
// order
func (s *Service) GetSchedules(_ *http.Request, args *AddressArgs, reply *GetSchedulesReply) error {
	s.vm.log.Debug("API called",
		log.String("service", Name),
		log.String("method", "getSchedules"),
		log.Stringer("address", args.Address),
	)

	schedules, err := s.vm.GetSchedules(args.Address)
	if err != nil {
		return err
	}
	reply.Schedules = schedules
	if reply.Schedules == nil {
		reply.Schedules = []schedule.Schedule{}
	}

	height := s.vm.Height()
	var (
		next  uint64
		found bool
	)
	for i := range schedules {
		release, ok := schedules[i].NextRelease(height)
		if ok && (!found || release < next) {
			next = release
			found = true
		}
	}
	if found {
		nextRelease := json.Uint64(next)
		reply.NextRelease = &nextRelease
	}
	return nil
}

type GetLockedReply struct {
	// Vesting is the amount the schedules lock at the current height.
	Vesting json.Uint64 `json:"vesting"`
	// Held is the amount the ledger holds under the vesting lock. It exceeds
	// [Vesting] by the amount a claim would release.
	Held json.Uint64 `json:"held"`
}

func (s *Service) GetLocked(_ *http.Request, args *AddressArgs, reply *GetLockedReply) error {
	s.vm.log.Debug("API called",
		log.String("service", Name),
		log.String("method", "getLocked"),
		log.Stringer("address", args.Address),
	)

	vesting, held, err := s.vm.Locked(args.Address)
	reply.Vesting = json.Uint64(vesting)
	reply.Held = json.Uint64(held)
	return err
}

type GetBalanceReply struct {
	Balance  json.Uint64 `json:"balance"`
	Unlocked json.Uint64 `json:"unlocked"`
}

func (s *Service) GetBalance(_ *http.Request, args *AddressArgs, reply *GetBalanceReply) error {
	s.vm.log.Debug("API called",
		log.String("service", Name),
		log.String("method", "getBalance"),
		log.Stringer("address", args.Address),
	)

	balance, unlocked, err := s.vm.Balance(args.Address)
	reply.Balance = json.Uint64(balance)
	reply.Unlocked = json.Uint64(unlocked)
	return err
}

type IsRenouncedReply struct {
	Renounced bool `json:"renounced"`
}

func (s *Service) IsRenounced(_ *http.Request, args *AddressArgs, reply *IsRenouncedReply) error {
	s.vm.log.Debug("API called",
		log.String("service", Name),
		log.String("method", "isRenounced"),
		log.Stringer("address", args.Address),
	)

	renounced, err := s.vm.IsRenounced(args.Address)
	reply.Renounced = renounced
	return err
}

type GetNumGranteesReply struct {
	NumGrantees json.Uint64 `json:"numGrantees"`
}

func (s *Service) GetNumGrantees(_ *http.Request, _ *struct{}, reply *GetNumGranteesReply) error {
	s.vm.log.Debug("API called",
		log.String("service", Name),
		log.String("method", "getNumGrantees"),
	)

	numGrantees, err := s.vm.NumGrantees()
	reply.NumGrantees = json.Uint64(numGrantees)
	return err
}

type IssueTxArgs struct {
	// Tx is the hex encoding of the tx bytes, optionally prefixed with 0x.
	Tx string `json:"tx"`
}

type IssueTxReply struct {
	TxID ids.ID `json:"txID"`
}

// IssueTx executes a tx and returns its ID. Only served on a devnet, and never
// on behalf of root.
func (s *Service) IssueTx(_ *http.Request, args *IssueTxArgs, reply *IssueTxReply) error {
	s.vm.log.Debug("API called",
		log.String("service", Name),
		log.String("method", "issueTx"),
	)

	if !s.vm.Devnet {
		return errNotDevnet
	}
	if args.Tx == "" {
		return errMissingTx
	}
	txBytes, err := hex.DecodeString(strings.TrimPrefix(args.Tx, "0x"))
	if err != nil {
		return fmt.Errorf("problem decoding transaction: %w", err)
	}
	tx, err := txs.Parse(txBytes)
	if err != nil {
		return fmt.Errorf("couldn't parse tx: %w", err)
	}
	if tx.Origin.Kind == auth.Root {
		return fmt.Errorf("%w: %w", executor.ErrPolicy, errRootOrigin)
	}
	if err := s.vm.IssueTx(tx); err != nil {
		return fmt.Errorf("couldn't issue tx: %w", err)
	}

	reply.TxID = tx.ID()
	return nil
}

type AdvanceHeightArgs struct {
	Blocks json.Uint64 `json:"blocks"`
}

// AdvanceHeight moves a devnet forward by the given number of blocks
func (s *Service) AdvanceHeight(_ *http.Request, args *AdvanceHeightArgs, reply *GetHeightReply) error {
	s.vm.log.Debug("API called",
		log.String("service", Name),
		log.String("method", "advanceHeight"),
		log.Uint64("blocks", uint64(args.Blocks)),
	)

	if !s.vm.Devnet {
		return errNotDevnet
	}
	if args.Blocks == 0 {
		return errZeroBlocks
	}
	reply.Height = json.Uint64(s.vm.AdvanceHeight(uint64(args.Blocks)))
	return nil
}
