// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/luxfi/codec"
	"github.com/luxfi/codec/linearcodec"
	"github.com/luxfi/ids"

	"github.com/luxfi/grantvm/vms/grantvm/schedule"
)

const CodecVersion uint16 = 0

var (
	Codec codec.Manager

	errWrongCodecVersion = errors.New("wrong codec version")
)

func init() {
	Codec = codec.NewManager(math.MaxInt32)
	if err := Codec.RegisterCodec(CodecVersion, linearcodec.NewDefault()); err != nil {
		panic(err)
	}
}

// Genesis is the initial state of the chain.
type Genesis struct {
	Balances []Balance `serialize:"true" json:"balances"`
	Vesting  []Grant   `serialize:"true" json:"vesting"`
}

// Balance is an amount minted to an account.
type Balance struct {
	Address ids.ShortID `serialize:"true" json:"address"`
	Amount  uint64      `serialize:"true" json:"amount"`
}

// Grant is a schedule whose total is minted to, and locked on, an account.
type Grant struct {
	Address  ids.ShortID       `serialize:"true" json:"address"`
	Schedule schedule.Schedule `serialize:"true" json:"schedule"`
}

// Parse decodes the canonical genesis bytes.
func Parse(genesisBytes []byte) (*Genesis, error) {
	g := &Genesis{}
	version, err := Codec.Unmarshal(genesisBytes, g)
	if err != nil {
		return nil, fmt.Errorf("couldn't unmarshal genesis: %w", err)
	}
	if version != CodecVersion {
		return nil, errWrongCodecVersion
	}
	return g, nil
}

// ParseJSON decodes a human written genesis.
func ParseJSON(jsonBytes []byte) (*Genesis, error) {
	g := &Genesis{}
	if err := json.Unmarshal(jsonBytes, g); err != nil {
		return nil, fmt.Errorf("couldn't parse genesis JSON: %w", err)
	}
	return g, nil
}

// Bytes returns the canonical encoding of [g].
func (g *Genesis) Bytes() ([]byte, error) {
	return Codec.Marshal(CodecVersion, g)
}
