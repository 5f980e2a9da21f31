package store

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// Shared codecs. EncodeAll/DecodeAll are safe for concurrent use and run
// synchronously in memory.
var (
	stateEncoder = mustEncoder(zstd.WithEncoderLevel(zstd.SpeedFastest))
	stateDecoder = mustDecoder(zstd.WithDecoderConcurrency(0))
)

func mustEncoder(opts ...zstd.EOption) *zstd.Encoder {
	enc, err := zstd.NewWriter(nil, opts...)
	if err != nil {
		panic(fmt.Sprintf("store: zstd encoder: %v", err))
	}
	return enc
}

func mustDecoder(opts ...zstd.DOption) *zstd.Decoder {
	dec, err := zstd.NewReader(nil, opts...)
	if err != nil {
		panic(fmt.Sprintf("store: zstd decoder: %v", err))
	}
	return dec
}

// EncodeState serializes inv into the compressed blob kept in Stack.State.
func EncodeState(inv *Inventory) ([]byte, error) {
	var buf bytes.Buffer
	if err := inv.Snapshot(&buf); err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	return stateEncoder.EncodeAll(buf.Bytes(), nil), nil
}

// DecodeState restores an inventory from a Stack.State blob.
func DecodeState(state []byte) (*Inventory, error) {
	raw, err := stateDecoder.DecodeAll(state, nil)
	if err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}
	inv := &Inventory{}
	if err := inv.Restore(bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}
	return inv, nil
}
