// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package events

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/ids"
)

func TestBuffer(t *testing.T) {
	require := require.New(t)

	addr := ids.GenerateTestShortID()
	b := &Buffer{}
	require.Empty(b.Flush())

	b.Emit(&Renounced{Who: addr})
	b.Emit(&Claimed{Who: addr, Amount: 5})
	require.Equal(
		[]Event{
			&Renounced{Who: addr},
			&Claimed{Who: addr, Amount: 5},
		},
		b.Flush(),
	)
	require.Empty(b.Flush())

	b.Emit(&Renounced{Who: addr})
	b.Discard()
	require.Empty(b.Flush())
}
