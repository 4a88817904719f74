package wire

import (
	"bytes"
	"io"

	"github.com/emberchain/emberd/util/binaryserializer"
	"github.com/emberchain/emberd/util/chainhash"
	"github.com/pkg/errors"
)

const (
	// MaxTxPerBlock is the maximum number of transactions that could
	// possibly fit into a block body.
	MaxTxPerBlock = 1 << 20

	// MaxUnclesPerBlock is the maximum number of uncle headers a block
	// body may reference.
	MaxUnclesPerBlock = 8
)

// MsgBlock implements a full block: a header, the ordered list of included
// transactions and the set of uncle headers the block references.
type MsgBlock struct {
	Header       BlockHeader
	Transactions []*MsgTx
	Uncles       []*BlockHeader
}

// AddTransaction adds a transaction to the block body.
func (b *MsgBlock) AddTransaction(tx *MsgTx) {
	b.Transactions = append(b.Transactions, tx)
}

// AddUncle adds an uncle header to the block body.
func (b *MsgBlock) AddUncle(header *BlockHeader) {
	b.Uncles = append(b.Uncles, header)
}

// BlockHash computes the block identifier, which is the hash of the block's
// header.
func (b *MsgBlock) BlockHash() chainhash.Hash {
	return b.Header.BlockHash()
}

// Serialize encodes the block to w using the chain encoding.
func (b *MsgBlock) Serialize(w io.Writer) error {
	err := b.Header.Serialize(w)
	if err != nil {
		return err
	}

	if len(b.Transactions) > MaxTxPerBlock {
		return errors.Errorf("block carries %d transactions, max %d",
			len(b.Transactions), MaxTxPerBlock)
	}
	err = binaryserializer.PutUint32(w, uint32(len(b.Transactions)))
	if err != nil {
		return err
	}
	for _, tx := range b.Transactions {
		err = tx.Serialize(w)
		if err != nil {
			return err
		}
	}

	if len(b.Uncles) > MaxUnclesPerBlock {
		return errors.Errorf("block references %d uncles, max %d",
			len(b.Uncles), MaxUnclesPerBlock)
	}
	err = binaryserializer.PutUint32(w, uint32(len(b.Uncles)))
	if err != nil {
		return err
	}
	for _, uncle := range b.Uncles {
		err = uncle.Serialize(w)
		if err != nil {
			return err
		}
	}
	return nil
}

// Deserialize decodes a block from r using the chain encoding.
func (b *MsgBlock) Deserialize(r io.Reader) error {
	err := b.Header.Deserialize(r)
	if err != nil {
		return err
	}

	txCount, err := binaryserializer.Uint32(r)
	if err != nil {
		return err
	}
	if txCount > MaxTxPerBlock {
		return errors.Errorf("block carries %d transactions, max %d",
			txCount, MaxTxPerBlock)
	}
	b.Transactions = make([]*MsgTx, 0, txCount)
	for i := uint32(0); i < txCount; i++ {
		tx := new(MsgTx)
		err = tx.Deserialize(r)
		if err != nil {
			return err
		}
		b.Transactions = append(b.Transactions, tx)
	}

	uncleCount, err := binaryserializer.Uint32(r)
	if err != nil {
		return err
	}
	if uncleCount > MaxUnclesPerBlock {
		return errors.Errorf("block references %d uncles, max %d",
			uncleCount, MaxUnclesPerBlock)
	}
	b.Uncles = make([]*BlockHeader, 0, uncleCount)
	for i := uint32(0); i < uncleCount; i++ {
		uncle := new(BlockHeader)
		err = uncle.Deserialize(r)
		if err != nil {
			return err
		}
		b.Uncles = append(b.Uncles, uncle)
	}
	return nil
}

// Bytes returns the serialized block.
func (b *MsgBlock) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	err := b.Serialize(&buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// NewBlockFromBytes deserializes a block from its chain encoding.
func NewBlockFromBytes(serializedBlock []byte) (*MsgBlock, error) {
	block := new(MsgBlock)
	err := block.Deserialize(bytes.NewReader(serializedBlock))
	if err != nil {
		return nil, err
	}
	return block, nil
}
