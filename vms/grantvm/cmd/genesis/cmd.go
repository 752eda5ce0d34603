// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/luxfi/grantvm/vms/grantvm/genesis"
)

func Command() *cobra.Command {
	c := &cobra.Command{
		Use:   "genesis",
		Short: "Verifies a JSON genesis and prints its encoded bytes",
		RunE:  genesisFunc,
	}
	flags := c.Flags()
	AddFlags(flags)
	return c
}

func genesisFunc(c *cobra.Command, args []string) error {
	flags := c.Flags()
	config, err := ParseFlags(flags, args)
	if err != nil {
		return err
	}

	genesisBytes, err := Load(config.GenesisFile)
	if err != nil {
		return err
	}
	g, err := genesis.Parse(genesisBytes)
	if err != nil {
		return err
	}
	if err := genesis.Verify(g, config.Chain); err != nil {
		return fmt.Errorf("invalid genesis: %w", err)
	}

	_, err = fmt.Fprintf(c.OutOrStdout(), "0x%s\n", hex.EncodeToString(genesisBytes))
	return err
}

// Load reads the JSON genesis at [path] and returns its canonical encoding.
func Load(path string) ([]byte, error) {
	jsonBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read genesis file: %w", err)
	}
	g, err := genesis.ParseJSON(jsonBytes)
	if err != nil {
		return nil, err
	}
	return g.Bytes()
}
