// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/luxfi/ids"
	"github.com/luxfi/math/set"
)

var (
	ErrZeroMaxSchedules      = errors.New("max schedules must be positive")
	ErrInvalidCacheSize      = errors.New("cache size must be positive")
	ErrNegativeBlockInterval = errors.New("block interval must not be negative")
	ErrDuplicateAuthority    = errors.New("duplicate cancel authority")
)

var Default = Config{
	MaxSchedules:       100,
	ExistentialDeposit: 1,
	ScheduleCacheSize:  2048,
	RenouncedCacheSize: 2048,
	BlockInterval:      2 * time.Second,
}

// Config holds the tunables of the grants chain.
type Config struct {
	// MaxSchedules bounds the number of schedules a single account may hold.
	MaxSchedules uint32 `json:"maxSchedules"`

	// ExistentialDeposit is the smallest balance an account may hold.
	ExistentialDeposit uint64 `json:"existentialDeposit"`

	ScheduleCacheSize  int `json:"scheduleCacheSize"`
	RenouncedCacheSize int `json:"renouncedCacheSize"`

	// CancelAuthorities may cancel or renounce the grants of any account.
	CancelAuthorities []ids.ShortID `json:"cancelAuthorities"`

	// BlockInterval is the time between heights on a devnet. Zero disables
	// the height ticker.
	BlockInterval time.Duration `json:"blockInterval"`

	// Devnet enables the issueTx and advanceHeight API methods. The origin of
	// a tx submitted over the API is taken as written, so this must stay off
	// on any chain reachable by untrusted clients.
	Devnet bool `json:"devnet"`
}

// GetConfig returns the config encoded in [configBytes], with unset fields
// taking their default values.
func GetConfig(configBytes []byte) (*Config, error) {
	cfg := Default
	if len(configBytes) == 0 {
		return &cfg, nil
	}
	if err := json.Unmarshal(configBytes, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, cfg.Verify()
}

func (c *Config) Verify() error {
	switch {
	case c.MaxSchedules == 0:
		return ErrZeroMaxSchedules
	case c.ScheduleCacheSize <= 0:
		return fmt.Errorf("%w: schedule cache size %d", ErrInvalidCacheSize, c.ScheduleCacheSize)
	case c.RenouncedCacheSize <= 0:
		return fmt.Errorf("%w: renounced cache size %d", ErrInvalidCacheSize, c.RenouncedCacheSize)
	case c.BlockInterval < 0:
		return ErrNegativeBlockInterval
	}

	seen := set.NewSet[ids.ShortID](len(c.CancelAuthorities))
	for _, authority := range c.CancelAuthorities {
		if seen.Contains(authority) {
			return fmt.Errorf("%w: %s", ErrDuplicateAuthority, authority)
		}
		seen.Add(authority)
	}
	return nil
}
