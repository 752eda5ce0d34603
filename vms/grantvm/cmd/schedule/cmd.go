// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package schedule

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/luxfi/grantvm/utils/timer"
)

func Command() *cobra.Command {
	c := &cobra.Command{
		Use:   "schedule",
		Short: "Describes how a vesting schedule releases funds",
		RunE:  scheduleFunc,
	}
	flags := c.Flags()
	AddFlags(flags)
	return c
}

func scheduleFunc(c *cobra.Command, args []string) error {
	flags := c.Flags()
	config, err := ParseFlags(flags, args)
	if err != nil {
		return err
	}

	s := config.Schedule
	total, err := s.Verify()
	if err != nil {
		return fmt.Errorf("invalid schedule: %w", err)
	}
	// Verify bounds the end height.
	end, _ := s.End()

	w := tabwriter.NewWriter(c.OutOrStdout(), 0, 8, 2, ' ', 0)
	fmt.Fprintf(w, "total:\t%d\n", total)
	fmt.Fprintf(w, "end:\t%d\n", end)
	fmt.Fprintf(w, "locked at %d:\t%d\n", config.Height, s.LockedAmount(config.Height))
	if next, ok := s.NextRelease(config.Height); ok {
		fmt.Fprintf(w, "next release:\t%d\n", next)
		fmt.Fprintf(w, "next release in:\t%s\n", timer.EstimateETA(config.Height, next, config.BlockInterval))
	}
	if config.Curve {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "height\tlocked")
		for i := uint64(0); i <= uint64(s.PeriodCount); i++ {
			height := s.Start + i*s.Period
			fmt.Fprintf(w, "%d\t%d\n", height, s.LockedAmount(height))
		}
	}
	return w.Flush()
}
