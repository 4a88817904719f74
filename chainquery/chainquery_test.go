package chainquery

import (
	"math/big"
	"testing"

	"github.com/emberchain/emberd/chaincfg"
	"github.com/emberchain/emberd/dbaccess"
	"github.com/emberchain/emberd/util/address"
	"github.com/emberchain/emberd/util/chainhash"
	"github.com/emberchain/emberd/util/wei"
	"github.com/emberchain/emberd/wire"
)

func prepareQueriesForTest(t *testing.T) *Queries {
	databaseContext, err := dbaccess.New(t.TempDir())
	if err != nil {
		t.Fatalf("New unexpectedly failed: %s", err)
	}
	t.Cleanup(func() {
		err := databaseContext.Close()
		if err != nil {
			t.Fatalf("Close unexpectedly failed: %s", err)
		}
	})

	queries := New(databaseContext, &chaincfg.SimnetParams)
	err = queries.EnsureGenesis()
	if err != nil {
		t.Fatalf("EnsureGenesis unexpectedly failed: %s", err)
	}
	return queries
}

// nextBlock builds a block extending the current chain tip.
func nextBlock(t *testing.T, queries *Queries, uncles []*wire.BlockHeader,
	txs ...*wire.MsgTx) *wire.MsgBlock {

	tipHash, err := queries.BestBlockHash()
	if err != nil {
		t.Fatalf("BestBlockHash unexpectedly failed: %s", err)
	}
	blockCount, err := queries.BlockCount()
	if err != nil {
		t.Fatalf("BlockCount unexpectedly failed: %s", err)
	}

	block := &wire.MsgBlock{
		Header: wire.BlockHeader{
			Number:     blockCount,
			ParentHash: *tipHash,
			Coinbase:   address.Address{0xaa},
			StateRoot:  chainhash.Hash{byte(blockCount), 0x42},
			Difficulty: big.NewInt(100),
			Timestamp:  1_600_000_000 + blockCount,
		},
	}
	for _, tx := range txs {
		block.AddTransaction(tx)
	}
	for _, uncle := range uncles {
		block.AddUncle(uncle)
	}
	return block
}

func TestGenesisBootstrap(t *testing.T) {
	queries := prepareQueriesForTest(t)

	blockCount, err := queries.BlockCount()
	if err != nil {
		t.Fatalf("BlockCount unexpectedly failed: %s", err)
	}
	if blockCount != 1 {
		t.Errorf("BlockCount = %d after bootstrap, want 1", blockCount)
	}

	bestBlockHash, err := queries.BestBlockHash()
	if err != nil {
		t.Fatalf("BestBlockHash unexpectedly failed: %s", err)
	}
	if !bestBlockHash.IsEqual(queries.Params().GenesisHash) {
		t.Errorf("BestBlockHash = %s, want the genesis hash %s",
			bestBlockHash, queries.Params().GenesisHash)
	}

	// The genesis block's state root is retained.
	available, err := queries.IsStateAvailable(&queries.Params().GenesisBlock.Header.StateRoot)
	if err != nil {
		t.Fatalf("IsStateAvailable unexpectedly failed: %s", err)
	}
	if !available {
		t.Errorf("genesis state root is not retained after bootstrap")
	}

	// Bootstrapping again is a no-op.
	err = queries.EnsureGenesis()
	if err != nil {
		t.Errorf("repeated EnsureGenesis unexpectedly failed: %s", err)
	}
}

func TestAcceptBlockAndQueries(t *testing.T) {
	queries := prepareQueriesForTest(t)

	tx := &wire.MsgTx{GasPrice: wei.FromUint64(3)}
	txHash := tx.TxHash()
	uncle := &wire.BlockHeader{
		Number:     0,
		Coinbase:   address.Address{0xbb},
		Difficulty: big.NewInt(50),
	}
	block := nextBlock(t, queries, []*wire.BlockHeader{uncle}, tx)
	receipt := &wire.Receipt{
		TxHash:  txHash,
		Status:  wire.ReceiptStatusSuccessful,
		GasUsed: 21000,
	}

	err := queries.AcceptBlock(block, []*wire.Receipt{receipt})
	if err != nil {
		t.Fatalf("AcceptBlock unexpectedly failed: %s", err)
	}

	blockHash := block.BlockHash()
	blockWithMeta, found, err := queries.BlockByHash(&blockHash)
	if err != nil {
		t.Fatalf("BlockByHash unexpectedly failed: %s", err)
	}
	if !found {
		t.Fatalf("BlockByHash didn't find the accepted block")
	}
	if blockWithMeta.Block.Header.Number != 1 {
		t.Errorf("accepted block number is %d, want 1",
			blockWithMeta.Block.Header.Number)
	}

	// Total difficulty accumulates genesis + block difficulty.
	genesisDifficulty := queries.Params().GenesisBlock.Header.Difficulty
	expectedTotalDifficulty := new(big.Int).Add(genesisDifficulty, big.NewInt(100))
	if blockWithMeta.TotalDifficulty.Cmp(expectedTotalDifficulty) != 0 {
		t.Errorf("TotalDifficulty = %s, want %s",
			blockWithMeta.TotalDifficulty, expectedTotalDifficulty)
	}

	gasUsed, found, err := queries.GasUsedByTx(&txHash)
	if err != nil {
		t.Fatalf("GasUsedByTx unexpectedly failed: %s", err)
	}
	if !found || gasUsed != 21000 {
		t.Errorf("GasUsedByTx = %d (found=%t), want 21000", gasUsed, found)
	}

	ommers, err := queries.OmmersByNumber(1)
	if err != nil {
		t.Fatalf("OmmersByNumber unexpectedly failed: %s", err)
	}
	uncleHash := uncle.BlockHash()
	if len(ommers) != 1 || !ommers[0].Hash.IsEqual(&uncleHash) {
		t.Fatalf("OmmersByNumber returned %v, want the accepted uncle %s",
			ommers, &uncleHash)
	}
	if ommers[0].Coinbase != uncle.Coinbase {
		t.Errorf("ommer coinbase is %s, want %s", ommers[0].Coinbase,
			uncle.Coinbase)
	}

	// No canonical block at height 2 means no ommers, not an error.
	ommers, err = queries.OmmersByNumber(2)
	if err != nil {
		t.Fatalf("OmmersByNumber unexpectedly failed: %s", err)
	}
	if len(ommers) != 0 {
		t.Errorf("OmmersByNumber returned %d ommers for an empty height, want 0",
			len(ommers))
	}
}

func TestAcceptBlockRejectsNonExtendingBlocks(t *testing.T) {
	queries := prepareQueriesForTest(t)

	// Wrong number.
	block := nextBlock(t, queries, nil)
	block.Header.Number = 5
	err := queries.AcceptBlock(block, nil)
	if err == nil {
		t.Errorf("AcceptBlock unexpectedly accepted a block with a gap")
	}

	// Wrong parent.
	block = nextBlock(t, queries, nil)
	block.Header.ParentHash = chainhash.Hash{0xde, 0xad}
	err = queries.AcceptBlock(block, nil)
	if err == nil {
		t.Errorf("AcceptBlock unexpectedly accepted a block with a wrong parent")
	}
}

func TestBlockByHashUnknownHashIsNotAnError(t *testing.T) {
	queries := prepareQueriesForTest(t)

	unknownHash := chainhash.Hash{0x99}
	_, found, err := queries.BlockByHash(&unknownHash)
	if err != nil {
		t.Fatalf("BlockByHash unexpectedly failed: %s", err)
	}
	if found {
		t.Errorf("BlockByHash unexpectedly found a block for an unknown hash")
	}
}
