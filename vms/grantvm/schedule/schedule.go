// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package schedule implements the arithmetic of a single vesting schedule.
//
// A schedule releases [Schedule.PerPeriod] every [Schedule.Period] blocks,
// [Schedule.PeriodCount] times, with the first release one period after
// [Schedule.Start].
package schedule

import (
	"errors"

	safemath "github.com/luxfi/grantvm/utils/math"
)

var (
	ErrNilSchedule     = errors.New("nil schedule")
	ErrZeroPeriod      = errors.New("vesting period is zero")
	ErrZeroPeriodCount = errors.New("vesting period count is zero")
	ErrOverflow        = errors.New("vesting schedule overflows")
)

type Schedule struct {
	Start       uint64 `serialize:"true" json:"start"`
	Period      uint64 `serialize:"true" json:"period"`
	PeriodCount uint32 `serialize:"true" json:"periodCount"`
	PerPeriod   uint64 `serialize:"true" json:"perPeriod"`
}

// End returns the height of the last release.
func (s *Schedule) End() (uint64, error) {
	duration, err := safemath.Mul(s.Period, uint64(s.PeriodCount))
	if err != nil {
		return 0, ErrOverflow
	}
	end, err := safemath.Add(s.Start, duration)
	if err != nil {
		return 0, ErrOverflow
	}
	return end, nil
}

// TotalAmount returns the amount locked by the schedule before its first
// release.
func (s *Schedule) TotalAmount() (uint64, error) {
	total, err := safemath.Mul(s.PerPeriod, uint64(s.PeriodCount))
	if err != nil {
		return 0, ErrOverflow
	}
	return total, nil
}

// Verify checks the invariants every stored schedule must hold and returns
// the total amount the schedule locks.
func (s *Schedule) Verify() (uint64, error) {
	switch {
	case s == nil:
		return 0, ErrNilSchedule
	case s.Period == 0:
		return 0, ErrZeroPeriod
	case s.PeriodCount == 0:
		return 0, ErrZeroPeriodCount
	}
	if _, err := s.End(); err != nil {
		return 0, err
	}
	return s.TotalAmount()
}

// LockedAmount returns the amount still locked at [height].
//
// Invariant: the schedule passed Verify.
func (s *Schedule) LockedAmount(height uint64) uint64 {
	elapsed := safemath.SatSub(height, s.Start) / s.Period
	released := uint64(s.PeriodCount)
	if elapsed < released {
		released = elapsed
	}
	// PerPeriod * PeriodCount was bounded by Verify.
	return s.PerPeriod * (uint64(s.PeriodCount) - released)
}

// NextRelease returns the first height after [height] at which the locked
// amount decreases. Returns false once the schedule is fully released.
//
// Invariant: the schedule passed Verify.
func (s *Schedule) NextRelease(height uint64) (uint64, bool) {
	if height < s.Start {
		return s.Start + s.Period, true
	}
	elapsed := (height - s.Start) / s.Period
	if elapsed >= uint64(s.PeriodCount) {
		return 0, false
	}
	return s.Start + (elapsed+1)*s.Period, true
}
