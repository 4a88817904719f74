package wire

import (
	"bytes"
	"io"
	"math/big"

	"github.com/emberchain/emberd/util/address"
	"github.com/emberchain/emberd/util/binaryserializer"
	"github.com/emberchain/emberd/util/chainhash"
	"github.com/pkg/errors"
)

// MaxExtraDataSize is the maximum number of extra-data bytes a block header
// may carry.
const MaxExtraDataSize = 32

// BlockHeader defines information about a block and is used in the block
// store and the miner-data RPC results.
type BlockHeader struct {
	// Number is the height of the block in the canonical chain.
	Number uint64

	// ParentHash is the hash of the parent block header.
	ParentHash chainhash.Hash

	// Coinbase is the address credited with this block's reward.
	Coinbase address.Address

	// StateRoot is the commitment to the world state as of this block.
	StateRoot chainhash.Hash

	// ExtraData is the arbitrary blob the block producer embedded in the
	// header, at most MaxExtraDataSize bytes.
	ExtraData []byte

	// Difficulty is the proof-of-work difficulty target of this block.
	Difficulty *big.Int

	// Timestamp is the block time in seconds since the unix epoch.
	Timestamp uint64

	// Nonce is the proof-of-work nonce.
	Nonce uint64
}

// Serialize encodes the header to w using the chain encoding.
func (h *BlockHeader) Serialize(w io.Writer) error {
	if len(h.ExtraData) > MaxExtraDataSize {
		return errors.Errorf("header extra-data is %d bytes, max %d",
			len(h.ExtraData), MaxExtraDataSize)
	}

	err := binaryserializer.PutUint64(w, h.Number)
	if err != nil {
		return err
	}
	err = writeHash(w, &h.ParentHash)
	if err != nil {
		return err
	}
	_, err = w.Write(h.Coinbase[:])
	if err != nil {
		return errors.WithStack(err)
	}
	err = writeHash(w, &h.StateRoot)
	if err != nil {
		return err
	}
	err = writeVarBytes(w, h.ExtraData)
	if err != nil {
		return err
	}
	difficulty := h.Difficulty
	if difficulty == nil {
		difficulty = new(big.Int)
	}
	if difficulty.Sign() < 0 {
		return errors.Errorf("header difficulty cannot be negative: %s", difficulty)
	}
	err = writeVarBytes(w, difficulty.Bytes())
	if err != nil {
		return err
	}
	err = binaryserializer.PutUint64(w, h.Timestamp)
	if err != nil {
		return err
	}
	return binaryserializer.PutUint64(w, h.Nonce)
}

// Deserialize decodes a header from r using the chain encoding.
func (h *BlockHeader) Deserialize(r io.Reader) error {
	var err error
	h.Number, err = binaryserializer.Uint64(r)
	if err != nil {
		return err
	}
	err = readHash(r, &h.ParentHash)
	if err != nil {
		return err
	}
	_, err = io.ReadFull(r, h.Coinbase[:])
	if err != nil {
		return errors.WithStack(err)
	}
	err = readHash(r, &h.StateRoot)
	if err != nil {
		return err
	}
	h.ExtraData, err = readVarBytes(r)
	if err != nil {
		return err
	}
	if len(h.ExtraData) > MaxExtraDataSize {
		return errors.Errorf("header extra-data is %d bytes, max %d",
			len(h.ExtraData), MaxExtraDataSize)
	}
	difficultyBytes, err := readVarBytes(r)
	if err != nil {
		return err
	}
	h.Difficulty = new(big.Int).SetBytes(difficultyBytes)
	h.Timestamp, err = binaryserializer.Uint64(r)
	if err != nil {
		return err
	}
	h.Nonce, err = binaryserializer.Uint64(r)
	return err
}

// BlockHash computes the block identifier, which is the keccak of the
// serialized header.
func (h *BlockHeader) BlockHash() chainhash.Hash {
	var buf bytes.Buffer
	// Serialize cannot fail writing to a bytes.Buffer with a valid header,
	// and an invalid header here is a programming error.
	err := h.Serialize(&buf)
	if err != nil {
		panic(errors.Wrap(err, "BlockHash: failed to serialize header"))
	}
	return keccak256(buf.Bytes())
}
