// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package events defines the records emitted by the grant operations.
package events

import (
	"github.com/luxfi/ids"

	"github.com/luxfi/grantvm/vms/grantvm/schedule"
)

var (
	_ Event = (*VestingScheduleAdded)(nil)
	_ Event = (*Claimed)(nil)
	_ Event = (*VestingSchedulesCanceled)(nil)
	_ Event = (*Renounced)(nil)
)

type Event interface {
	Visit(Visitor) error
}

// Visitor allows executing logic based on the concrete event type.
type Visitor interface {
	VestingScheduleAdded(*VestingScheduleAdded) error
	Claimed(*Claimed) error
	VestingSchedulesCanceled(*VestingSchedulesCanceled) error
	Renounced(*Renounced) error
}

type VestingScheduleAdded struct {
	From     ids.ShortID       `json:"from"`
	To       ids.ShortID       `json:"to"`
	Schedule schedule.Schedule `json:"schedule"`
}

func (e *VestingScheduleAdded) Visit(v Visitor) error {
	return v.VestingScheduleAdded(e)
}

// Claimed reports the amount the claim unlocked and the amount that is still
// locked afterwards.
type Claimed struct {
	Who    ids.ShortID `json:"who"`
	Amount uint64      `json:"amount"`
	Locked uint64      `json:"locked"`
}

func (e *Claimed) Visit(v Visitor) error {
	return v.Claimed(e)
}

// VestingSchedulesCanceled reports the amount moved to the collector.
type VestingSchedulesCanceled struct {
	Who       ids.ShortID `json:"who"`
	Collector ids.ShortID `json:"collector"`
	Collected uint64      `json:"collected"`
}

func (e *VestingSchedulesCanceled) Visit(v Visitor) error {
	return v.VestingSchedulesCanceled(e)
}

type Renounced struct {
	Who ids.ShortID `json:"who"`
}

func (e *Renounced) Visit(v Visitor) error {
	return v.Renounced(e)
}
