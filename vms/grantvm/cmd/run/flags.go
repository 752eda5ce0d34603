// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package run

import (
	"errors"
	"time"

	"github.com/spf13/pflag"

	"github.com/luxfi/grantvm/vms/grantvm/config"
)

const (
	HTTPHostKey           = "http-host"
	HTTPPortKey           = "http-port"
	HTTPAllowedOriginsKey = "http-allowed-origins"
	HTTPAllowedHostsKey   = "http-allowed-hosts"
	ShutdownTimeoutKey    = "http-shutdown-timeout"
	GenesisFileKey        = "genesis-file"
	ConfigKey             = "config"
)

var errMissingGenesisFile = errors.New("--genesis-file is required")

func AddFlags(flags *pflag.FlagSet) {
	flags.String(HTTPHostKey, "127.0.0.1", "Address of the HTTP server")
	flags.Uint16(HTTPPortKey, 9650, "Port of the HTTP server")
	flags.StringSlice(HTTPAllowedOriginsKey, []string{"*"}, "Origins to allow on the HTTP port")
	flags.StringSlice(HTTPAllowedHostsKey, []string{"localhost"}, "List of acceptable host names in API requests")
	flags.Duration(ShutdownTimeoutKey, 10*time.Second, "Maximum duration to wait for existing connections to complete during shutdown")
	flags.String(GenesisFileKey, "", "JSON genesis of the chain (required)")
	flags.String(ConfigKey, "", "JSON chain config")
}

type Config struct {
	HTTPHost        string
	HTTPPort        uint16
	AllowedOrigins  []string
	AllowedHosts    []string
	ShutdownTimeout time.Duration
	GenesisFile     string
	Chain           *config.Config
}

func ParseFlags(flags *pflag.FlagSet, args []string) (*Config, error) {
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	httpHost, err := flags.GetString(HTTPHostKey)
	if err != nil {
		return nil, err
	}

	httpPort, err := flags.GetUint16(HTTPPortKey)
	if err != nil {
		return nil, err
	}

	allowedOrigins, err := flags.GetStringSlice(HTTPAllowedOriginsKey)
	if err != nil {
		return nil, err
	}

	allowedHosts, err := flags.GetStringSlice(HTTPAllowedHostsKey)
	if err != nil {
		return nil, err
	}

	shutdownTimeout, err := flags.GetDuration(ShutdownTimeoutKey)
	if err != nil {
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
		HTTPHost:        httpHost,
		HTTPPort:        httpPort,
		AllowedOrigins:  allowedOrigins,
		AllowedHosts:    allowedHosts,
		ShutdownTimeout: shutdownTimeout,
		GenesisFile:     genesisFile,
		Chain:           chainConfig,
	}, nil
}
