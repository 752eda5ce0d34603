// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"errors"
	"math"

	"github.com/luxfi/codec"
	"github.com/luxfi/codec/linearcodec"
)

const CodecVersion uint16 = 0

var Codec codec.Manager

func init() {
	Codec = codec.NewManager(math.MaxInt32)
	lc := linearcodec.NewDefault()

	err := errors.Join(
		lc.RegisterType(&ClaimTx{}),
		lc.RegisterType(&AddVestingScheduleTx{}),
		lc.RegisterType(&CancelAllVestingSchedulesTx{}),
		lc.RegisterType(&RenounceTx{}),
		Codec.RegisterCodec(CodecVersion, lc),
	)
	if err != nil {
		panic(err)
	}
}
