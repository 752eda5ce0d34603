// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package auth decides who may call which grant operation.
//
// Credentials are verified before an origin reaches this package; an Origin
// only states on whose behalf an operation runs.
package auth

import (
	"errors"
	"fmt"

	"github.com/luxfi/ids"
	"github.com/luxfi/math/set"
)

var (
	_ Authorizer = (*CancelAuthority)(nil)

	ErrBadOrigin = errors.New("bad origin")
)

type Kind uint8

const (
	None Kind = iota
	Signed
	Root
)

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Signed:
		return "signed"
	case Root:
		return "root"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// Origin is the already authenticated caller of an operation.
type Origin struct {
	Kind    Kind        `serialize:"true" json:"kind"`
	Account ids.ShortID `serialize:"true" json:"account"`
}

func SignedBy(addr ids.ShortID) Origin {
	return Origin{
		Kind:    Signed,
		Account: addr,
	}
}

func RootOrigin() Origin {
	return Origin{Kind: Root}
}

func (o Origin) String() string {
	if o.Kind == Signed {
		return fmt.Sprintf("%s(%s)", o.Kind, o.Account)
	}
	return o.Kind.String()
}

type Authorizer interface {
	// Resolve returns the account [origin] acts for. Only signed origins act
	// for an account.
	Resolve(origin Origin) (ids.ShortID, error)

	// IsCancelAuthority reports whether [origin] may cancel or renounce the
	// grants of other accounts.
	IsCancelAuthority(origin Origin) bool
}

// CancelAuthority grants the cancel capability to root and to a fixed set of
// accounts.
type CancelAuthority struct {
	authorities set.Set[ids.ShortID]
}

func NewCancelAuthority(authorities ...ids.ShortID) *CancelAuthority {
	return &CancelAuthority{
		authorities: set.Of(authorities...),
	}
}

func (*CancelAuthority) Resolve(origin Origin) (ids.ShortID, error) {
	if origin.Kind != Signed {
		return ids.ShortEmpty, fmt.Errorf("%w: expected signed origin, got %s", ErrBadOrigin, origin.Kind)
	}
	return origin.Account, nil
}

func (c *CancelAuthority) IsCancelAuthority(origin Origin) bool {
	switch origin.Kind {
	case Root:
		return true
	case Signed:
		return c.authorities.Contains(origin.Account)
	default:
		return false
	}
}
