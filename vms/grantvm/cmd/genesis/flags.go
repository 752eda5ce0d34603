// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"errors"

	"github.com/spf13/pflag"

	"github.com/luxfi/grantvm/vms/grantvm/config"
)

const (
	GenesisFileKey = "genesis-file"
	ConfigKey      = "config"
)

var errMissingGenesisFile = errors.New("--genesis-file is required")

func AddFlags(flags *pflag.FlagSet) {
	flags.String(GenesisFileKey, "", "JSON genesis to verify and encode (required)")
	flags.String(ConfigKey, "", "JSON chain config the genesis must satisfy")
}

type Config struct {
	GenesisFile string
	Chain       *config.Config
}

func ParseFlags(flags *pflag.FlagSet, args []string) (*Config, error) {
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	genesisFile, err := flags.GetString(GenesisFileKey)
	if err != nil {
		return nil, err
	}
	if genesisFile == "" {
		return nil, errMissingGenesisFile
	}

	configStr, err := flags.GetString(ConfigKey)
	if err != nil {
		return nil, err
	}
	chainConfig, err := config.GetConfig([]byte(configStr))
	if err != nil {
		return nil, err
	}

	return &Config{
		GenesisFile: genesisFile,
		Chain:       chainConfig,
	}, nil
}
