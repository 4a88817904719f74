package wire

import (
	"bytes"
	"math/big"
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/emberchain/emberd/util/address"
	"github.com/emberchain/emberd/util/chainhash"
	"github.com/emberchain/emberd/util/wei"
)

func testBlock() *MsgBlock {
	recipient := address.Address{0x0a, 0x0b, 0x0c}
	block := &MsgBlock{
		Header: BlockHeader{
			Number:     1_920_000,
			ParentHash: chainhash.Hash{0x01, 0x02},
			Coinbase:   address.Address{0xaa, 0xbb},
			StateRoot:  chainhash.Hash{0x03, 0x04},
			ExtraData:  []byte("dao-fork-block"),
			Difficulty: big.NewInt(62413376722602),
			Timestamp:  1469020840,
			Nonce:      0xdeadbeef,
		},
	}
	block.AddTransaction(&MsgTx{
		Nonce:    7,
		GasPrice: wei.FromUint64(20_000_000_000),
		GasLimit: 21_000,
		To:       &recipient,
		Value:    wei.FromUint64(1_000_000),
		Payload:  nil,
	})
	block.AddTransaction(&MsgTx{
		Nonce:    8,
		GasPrice: wei.FromUint64(30_000_000_000),
		GasLimit: 100_000,
		To:       nil, // contract creation
		Value:    wei.Zero(),
		Payload:  []byte{0x60, 0x60, 0x60},
	})
	block.AddUncle(&BlockHeader{
		Number:     1_919_999,
		ParentHash: chainhash.Hash{0x05},
		Coinbase:   address.Address{0xcc},
		StateRoot:  chainhash.Hash{0x06},
		Difficulty: big.NewInt(62413376722601),
		Timestamp:  1469020830,
		Nonce:      0xfeedface,
	})
	return block
}

// TestBlockSerializeRoundTrip ensures a block survives a serialize and
// deserialize pass unchanged.
func TestBlockSerializeRoundTrip(t *testing.T) {
	block := testBlock()

	serializedBlock, err := block.Bytes()
	if err != nil {
		t.Fatalf("Bytes: unexpected error: %v", err)
	}

	decoded, err := NewBlockFromBytes(serializedBlock)
	if err != nil {
		t.Fatalf("NewBlockFromBytes: unexpected error: %v", err)
	}

	if !reflect.DeepEqual(decoded, block) {
		t.Errorf("round trip mismatch - got %v, want %v",
			spew.Sdump(decoded), spew.Sdump(block))
	}

	if decoded.BlockHash() != block.BlockHash() {
		t.Errorf("round trip changed block hash - got %v, want %v",
			decoded.BlockHash(), block.BlockHash())
	}
}

// TestBlockHashIsHeaderHash ensures the block hash only commits to the
// header, not the body.
func TestBlockHashIsHeaderHash(t *testing.T) {
	block := testBlock()
	headerOnly := &MsgBlock{Header: block.Header}

	if block.BlockHash() != headerOnly.BlockHash() {
		t.Errorf("block hash should commit to the header only")
	}
	if block.BlockHash() != block.Header.BlockHash() {
		t.Errorf("MsgBlock.BlockHash and BlockHeader.BlockHash diverge")
	}
}

// TestHeaderExtraDataLimit ensures oversized extra-data is rejected on both
// the serialize and deserialize paths.
func TestHeaderExtraDataLimit(t *testing.T) {
	header := testBlock().Header
	header.ExtraData = make([]byte, MaxExtraDataSize+1)

	var buf bytes.Buffer
	if err := header.Serialize(&buf); err == nil {
		t.Errorf("Serialize: expected error for oversized extra-data")
	}
}

// TestTxHashIgnoresNothing ensures distinct transactions hash differently.
func TestTxHash(t *testing.T) {
	block := testBlock()
	first := block.Transactions[0].TxHash()
	second := block.Transactions[1].TxHash()
	if first == second {
		t.Errorf("distinct transactions produced the same hash %v", first)
	}
	if first != block.Transactions[0].TxHash() {
		t.Errorf("TxHash is not deterministic")
	}
}

// TestReceiptRoundTrip ensures a receipt survives serialization unchanged.
func TestReceiptRoundTrip(t *testing.T) {
	receipt := &Receipt{
		TxHash:            chainhash.Hash{0x11, 0x22},
		Status:            ReceiptStatusSuccessful,
		GasUsed:           21_000,
		CumulativeGasUsed: 42_000,
	}

	serializedReceipt, err := receipt.Bytes()
	if err != nil {
		t.Fatalf("Bytes: unexpected error: %v", err)
	}
	decoded, err := NewReceiptFromBytes(serializedReceipt)
	if err != nil {
		t.Fatalf("NewReceiptFromBytes: unexpected error: %v", err)
	}
	if !reflect.DeepEqual(decoded, receipt) {
		t.Errorf("round trip mismatch - got %v, want %v",
			spew.Sdump(decoded), spew.Sdump(receipt))
	}
}
