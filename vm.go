// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package vm defines the contract between a grants chain and the node that
// hosts it.
package vm

import (
	"context"
	"net/http"

	"github.com/luxfi/database"
	"github.com/prometheus/client_golang/prometheus"
)

// VM defines the interface for a virtual machine
type VM interface {
	// Initialize opens the chain state in [cfg.DB], loading the genesis on
	// first start.
	Initialize(ctx context.Context, cfg *Config) error

	// Shutdown cleanly stops the VM
	Shutdown(context.Context) error

	// Version returns the VM version
	Version(context.Context) (string, error)

	// CreateHandlers returns the HTTP handlers of the VM keyed by the path
	// they should be served under.
	CreateHandlers(context.Context) (map[string]http.Handler, error)

	// State returns the lifecycle state of the VM.
	State() State
}

// Config is what the host provides to a VM when initializing it.
type Config struct {
	DB           database.Database
	GenesisBytes []byte
	Registerer   prometheus.Registerer
}
