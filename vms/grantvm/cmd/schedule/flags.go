// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package schedule

import (
	"time"

	"github.com/spf13/pflag"

	"github.com/luxfi/grantvm/vms/grantvm/config"
	"github.com/luxfi/grantvm/vms/grantvm/schedule"
)

const (
	StartKey         = "start"
	PeriodKey        = "period"
	PeriodCountKey   = "period-count"
	PerPeriodKey     = "per-period"
	HeightKey        = "height"
	CurveKey         = "curve"
	BlockIntervalKey = "block-interval"
)

func AddFlags(flags *pflag.FlagSet) {
	flags.Uint64(StartKey, 0, "Height the schedule starts at")
	flags.Uint64(PeriodKey, 1, "Blocks between releases")
	flags.Uint32(PeriodCountKey, 1, "Number of releases")
	flags.Uint64(PerPeriodKey, 0, "Amount released per period")
	flags.Uint64(HeightKey, 0, "Height to report the locked amount at")
	flags.Bool(CurveKey, false, "Print the locked amount at every release")
	flags.Duration(BlockIntervalKey, config.Default.BlockInterval, "Expected time between heights")
}

type Config struct {
	Schedule schedule.Schedule
	Height   uint64
	Curve    bool

	BlockInterval time.Duration
}

func ParseFlags(flags *pflag.FlagSet, args []string) (*Config, error) {
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	start, err := flags.GetUint64(StartKey)
	if err != nil {
		return nil, err
	}

	period, err := flags.GetUint64(PeriodKey)
	if err != nil {
		return nil, err
	}

	periodCount, err := flags.GetUint32(PeriodCountKey)
	if err != nil {
		return nil, err
	}

	perPeriod, err := flags.GetUint64(PerPeriodKey)
	if err != nil {
		return nil, err
	}

	height, err := flags.GetUint64(HeightKey)
	if err != nil {
		return nil, err
	}

	curve, err := flags.GetBool(CurveKey)
	if err != nil {
		return nil, err
	}

	blockInterval, err := flags.GetDuration(BlockIntervalKey)
	if err != nil {
		return nil, err
	}

	return &Config{
		Schedule: schedule.Schedule{
			Start:       start,
			Period:      period,
			PeriodCount: periodCount,
			PerPeriod:   perPeriod,
		},
		Height:        height,
		Curve:         curve,
		BlockInterval: blockInterval,
	}, nil
}
