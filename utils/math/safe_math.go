// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package math provides checked and saturating arithmetic over unsigned
// integers. Balances and block heights never wrap silently.
package math

import "errors"

// Unsigned is a constraint that permits any unsigned integer type.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

var (
	ErrOverflow     = errors.New("overflow")
	ErrUnderflow    = errors.New("underflow")
	ErrDivideByZero = errors.New("divide by zero")
)

// MaxUint returns the maximum value of an unsigned integer of type T.
func MaxUint[T Unsigned]() T {
	return ^T(0)
}

// Add returns:
// 1) a + b
// 2) If there is overflow, an error
func Add[T Unsigned](a, b T) (T, error) {
	if a > MaxUint[T]()-b {
		return 0, ErrOverflow
	}
	return a + b, nil
}

// Sub returns:
// 1) a - b
// 2) If there is underflow, an error
func Sub[T Unsigned](a, b T) (T, error) {
	if a < b {
		return 0, ErrUnderflow
	}
	return a - b, nil
}

// Mul returns:
// 1) a * b
// 2) If there is overflow, an error
func Mul[T Unsigned](a, b T) (T, error) {
	if b != 0 && a > MaxUint[T]()/b {
		return 0, ErrOverflow
	}
	return a * b, nil
}

// Div returns a / b, or ErrDivideByZero.
func Div[T Unsigned](a, b T) (T, error) {
	if b == 0 {
		return 0, ErrDivideByZero
	}
	return a / b, nil
}

// SatSub returns a - b, clamped to zero.
func SatSub[T Unsigned](a, b T) T {
	if a < b {
		return 0
	}
	return a - b
}

// SatAdd returns a + b, clamped to the maximum value of T.
func SatAdd[T Unsigned](a, b T) T {
	if a > MaxUint[T]()-b {
		return MaxUint[T]()
	}
	return a + b
}

// Sum adds every value in [values], failing on the first overflow.
func Sum[T Unsigned](values ...T) (T, error) {
	var total T
	for _, v := range values {
		var err error
		total, err = Add(total, v)
		if err != nil {
			return 0, err
		}
	}
	return total, nil
}

func AbsDiff[T Unsigned](a, b T) T {
	return max(a, b) - min(a, b)
}
