// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package grantvm

import (
	"github.com/luxfi/log"

	"github.com/luxfi/grantvm/vms/grantvm/config"

	luxvm "github.com/luxfi/grantvm"
)

var _ luxvm.Factory = (*Factory)(nil)

type Factory struct {
	config.Config
}

func (f *Factory) New(logger log.Logger) (interface{}, error) {
	if err := f.Config.Verify(); err != nil {
		return nil, err
	}
	return &VM{
		Config: f.Config,
		log:    logger,
	}, nil
}
