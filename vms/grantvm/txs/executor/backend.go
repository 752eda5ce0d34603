// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package executor

import (
	"github.com/luxfi/log"

	"github.com/luxfi/grantvm/utils/timer/mockable"
	"github.com/luxfi/grantvm/vms/grantvm/auth"
	"github.com/luxfi/grantvm/vms/grantvm/events"
	"github.com/luxfi/grantvm/vms/grantvm/ledger"
	"github.com/luxfi/grantvm/vms/grantvm/locker"
	"github.com/luxfi/grantvm/vms/grantvm/state"
)

type Backend struct {
	Clk    *mockable.Clock
	State  state.State
	Ledger ledger.Ledger
	Locker *locker.Maintainer
	Auth   auth.Authorizer
	Events events.Sink
	Log    log.Logger
}
