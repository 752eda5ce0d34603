// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"errors"
	"fmt"

	"github.com/luxfi/crypto/hash"
	"github.com/luxfi/ids"

	"github.com/luxfi/grantvm/vms/grantvm/auth"
)

var (
	ErrNilTx             = errors.New("nil tx")
	ErrNilUnsignedTx     = errors.New("nil unsigned tx")
	errWrongCodecVersion = errors.New("wrong codec version")
)

// Tx is a grant operation together with the origin it runs on behalf of.
type Tx struct {
	Unsigned UnsignedTx  `serialize:"true" json:"unsignedTx"`
	Origin   auth.Origin `serialize:"true" json:"origin"`

	id    ids.ID
	bytes []byte
}

func NewTx(unsigned UnsignedTx, origin auth.Origin) (*Tx, error) {
	tx := &Tx{
		Unsigned: unsigned,
		Origin:   origin,
	}
	return tx, tx.Initialize()
}

// Initialize sets the bytes and ID of the tx from its contents.
func (tx *Tx) Initialize() error {
	if tx.Unsigned == nil {
		return ErrNilUnsignedTx
	}
	bytes, err := Codec.Marshal(CodecVersion, tx)
	if err != nil {
		return fmt.Errorf("couldn't marshal tx: %w", err)
	}
	tx.SetBytes(bytes)
	return nil
}

func (tx *Tx) SetBytes(bytes []byte) {
	tx.bytes = bytes
	tx.id = ids.ID(hash.ComputeHash256Array(bytes))
}

func (tx *Tx) ID() ids.ID {
	return tx.id
}

func (tx *Tx) Bytes() []byte {
	return tx.bytes
}

// Parse decodes a tx from its canonical bytes.
func Parse(bytes []byte) (*Tx, error) {
	tx := &Tx{}
	version, err := Codec.Unmarshal(bytes, tx)
	if err != nil {
		return nil, fmt.Errorf("couldn't unmarshal tx: %w", err)
	}
	if version != CodecVersion {
		return nil, errWrongCodecVersion
	}
	if tx.Unsigned == nil {
		return nil, ErrNilUnsignedTx
	}
	tx.SetBytes(bytes)
	return tx, nil
}
