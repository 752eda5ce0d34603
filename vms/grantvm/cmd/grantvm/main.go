// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/luxfi/log"
	"github.com/luxfi/utils/ulimit"

	"github.com/luxfi/grantvm/vms/grantvm"
	"github.com/luxfi/grantvm/vms/grantvm/cmd/genesis"
	"github.com/luxfi/grantvm/vms/grantvm/cmd/run"
	"github.com/luxfi/grantvm/vms/grantvm/cmd/schedule"
)

func init() {
	cobra.EnablePrefixMatching = true
}

func main() {
	cmd := &cobra.Command{
		Use:     "grantvm",
		Short:   "Runs and inspects grants chains",
		Version: grantvm.Version.String(),
	}
	cmd.AddCommand(
		run.Command(),
		genesis.Command(),
		schedule.Command(),
	)

	// Set file descriptor limit
	if err := ulimit.Set(ulimit.DefaultFDLimit, log.Root()); err != nil {
		fmt.Fprintf(os.Stderr, "failed to set fd limit: %s\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "command failed %v\n", err)
		os.Exit(1)
	}
}
