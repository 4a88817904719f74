package rpc

import (
	"math/big"
	"strings"
	"testing"

	"github.com/emberchain/emberd/chaincfg"
	"github.com/emberchain/emberd/chainquery"
	"github.com/emberchain/emberd/rpcmodel"
	"github.com/emberchain/emberd/util/address"
	"github.com/emberchain/emberd/util/chainhash"
	"github.com/emberchain/emberd/util/wei"
	"github.com/emberchain/emberd/wire"
)

// fakeChain implements ChainQuerier over in-memory data and records which
// lookups the handlers actually invoked.
type fakeChain struct {
	params         *chaincfg.Params
	blocks         map[chainhash.Hash]*chainquery.BlockWithMeta
	stateAvailable bool
	ommers         []chainquery.OmmerRef
	gasUsed        map[chainhash.Hash]uint64

	gasLookupCalls   int
	ommerLookupCalls int
}

func (c *fakeChain) Params() *chaincfg.Params {
	return c.params
}

func (c *fakeChain) BlockByHash(hash *chainhash.Hash) (*chainquery.BlockWithMeta, bool, error) {
	blockWithMeta, ok := c.blocks[*hash]
	return blockWithMeta, ok, nil
}

func (c *fakeChain) OmmersByNumber(blockNumber uint64) ([]chainquery.OmmerRef, error) {
	c.ommerLookupCalls++
	return c.ommers, nil
}

func (c *fakeChain) GasUsedByTx(txHash *chainhash.Hash) (uint64, bool, error) {
	c.gasLookupCalls++
	gasUsed, ok := c.gasUsed[*txHash]
	return gasUsed, ok, nil
}

func (c *fakeChain) IsStateAvailable(stateRoot *chainhash.Hash) (bool, error) {
	return c.stateAvailable, nil
}

func (c *fakeChain) BlockCount() (uint64, error) {
	return uint64(len(c.blocks)), nil
}

func (c *fakeChain) BestBlockHash() (*chainhash.Hash, error) {
	return c.params.GenesisHash, nil
}

func newTestServer(t *testing.T, chain *fakeChain) *Server {
	server, err := NewServer(&Config{Chain: chain})
	if err != nil {
		t.Fatalf("NewServer unexpectedly failed: %s", err)
	}
	return server
}

func testChainWithBlock(stateAvailable bool) (*fakeChain, *wire.MsgBlock, chainhash.Hash) {
	tx := &wire.MsgTx{GasPrice: wei.FromUint64(2)}
	block := &wire.MsgBlock{
		Header: wire.BlockHeader{
			Number:     10,
			Coinbase:   address.Address{0xaa},
			StateRoot:  chainhash.Hash{0x42},
			ExtraData:  []byte{0x01, 0x02},
			Difficulty: big.NewInt(0x500),
			Timestamp:  1_600_000_000,
		},
	}
	block.AddTransaction(tx)
	block.AddUncle(&wire.BlockHeader{Number: 9, Difficulty: big.NewInt(1)})
	block.AddUncle(&wire.BlockHeader{Number: 9, Difficulty: big.NewInt(2)})
	blockHash := block.BlockHash()

	txHash := tx.TxHash()
	chain := &fakeChain{
		params: &chaincfg.SimnetParams,
		blocks: map[chainhash.Hash]*chainquery.BlockWithMeta{
			blockHash: {Block: block, TotalDifficulty: big.NewInt(0x9000)},
		},
		stateAvailable: stateAvailable,
		gasUsed:        map[chainhash.Hash]uint64{txHash: 100},
	}
	return chain, block, blockHash
}

func TestGetMinerDataByBlockHashUnknownBlockIsNullSuccess(t *testing.T) {
	chain, _, _ := testChainWithBlock(true)
	server := newTestServer(t, chain)

	cmd := rpcmodel.NewGetMinerDataByBlockHashCmd(
		"0x" + strings.Repeat("ab", 32))
	result, err := handleGetMinerDataByBlockHash(server, cmd, nil)
	if err != nil {
		t.Fatalf("handler unexpectedly failed: %s", err)
	}
	if result != nil {
		t.Errorf("handler returned %v for an unknown block, want nil", result)
	}

	// The same request through the dispatch path serializes as a success
	// with a null result.
	body := `{"jsonRpc":"1.0","method":"getMinerDataByBlockHash",` +
		`"params":["0x` + strings.Repeat("ab", 32) + `"],"id":1}`
	reply := server.handleRequestBody([]byte(body), nil)
	expected := `{"result":null,"error":null,"id":1}`
	if string(reply) != expected {
		t.Errorf("dispatch reply is %s, want %s", reply, expected)
	}
}

func TestGetMinerDataByBlockHashStateUnavailable(t *testing.T) {
	chain, _, blockHash := testChainWithBlock(false)
	server := newTestServer(t, chain)

	cmd := rpcmodel.NewGetMinerDataByBlockHashCmd("0x" + blockHash.String())
	_, err := handleGetMinerDataByBlockHash(server, cmd, nil)
	if err == nil {
		t.Fatalf("handler unexpectedly succeeded with unavailable state")
	}
	rpcErr, ok := err.(*rpcmodel.RPCError)
	if !ok {
		t.Fatalf("handler error is %T, want *rpcmodel.RPCError", err)
	}
	if rpcErr.Code != rpcmodel.ErrRPCStateUnavailable {
		t.Errorf("error code is %d, want %d", rpcErr.Code,
			rpcmodel.ErrRPCStateUnavailable)
	}

	// The availability gate must fire before any reward computation
	// starts.
	if chain.gasLookupCalls != 0 || chain.ommerLookupCalls != 0 {
		t.Errorf("lookups were invoked despite unavailable state "+
			"(gas: %d, ommer: %d)", chain.gasLookupCalls,
			chain.ommerLookupCalls)
	}
}

func TestGetMinerDataByBlockHashResult(t *testing.T) {
	chain, _, blockHash := testChainWithBlock(true)
	ommerHash := chainhash.Hash{0x77}
	ommerCoinbase := address.Address{0xcc}
	chain.ommers = []chainquery.OmmerRef{{Hash: ommerHash, Coinbase: ommerCoinbase}}
	server := newTestServer(t, chain)

	cmd := rpcmodel.NewGetMinerDataByBlockHashCmd("0x" + blockHash.String())
	result, err := handleGetMinerDataByBlockHash(server, cmd, nil)
	if err != nil {
		t.Fatalf("handler unexpectedly failed: %s", err)
	}
	minerData, ok := result.(*rpcmodel.MinerDataResult)
	if !ok {
		t.Fatalf("handler result is %T, want *rpcmodel.MinerDataResult", result)
	}

	// Simnet static reward is 160. Fee: gasPrice 2 × gasUsed 100 = 200.
	// Uncle bonus: 160×2/32 = 10. Net: 370 = 0x172.
	if minerData.StaticBlockReward != "0xa0" {
		t.Errorf("StaticBlockReward = %s, want 0xa0", minerData.StaticBlockReward)
	}
	if minerData.TransactionFee != "0xc8" {
		t.Errorf("TransactionFee = %s, want 0xc8", minerData.TransactionFee)
	}
	if minerData.UncleInclusionReward != "0xa" {
		t.Errorf("UncleInclusionReward = %s, want 0xa", minerData.UncleInclusionReward)
	}
	if minerData.NetBlockReward != "0x172" {
		t.Errorf("NetBlockReward = %s, want 0x172", minerData.NetBlockReward)
	}
	if minerData.Difficulty != "0x500" {
		t.Errorf("Difficulty = %s, want 0x500", minerData.Difficulty)
	}
	if minerData.TotalDifficulty != "0x9000" {
		t.Errorf("TotalDifficulty = %s, want 0x9000", minerData.TotalDifficulty)
	}
	if minerData.ExtraData != "0x0102" {
		t.Errorf("ExtraData = %s, want 0x0102", minerData.ExtraData)
	}
	expectedCoinbase := (&address.Address{0xaa}).String()
	if minerData.Coinbase != expectedCoinbase {
		t.Errorf("Coinbase = %s, want %s", minerData.Coinbase, expectedCoinbase)
	}
	expectedUncleKey := "0x" + ommerHash.String()
	if len(minerData.UncleRewards) != 1 ||
		minerData.UncleRewards[expectedUncleKey] != ommerCoinbase.String() {
		t.Errorf("UncleRewards = %v, want {%s: %s}", minerData.UncleRewards,
			expectedUncleKey, ommerCoinbase.String())
	}
}

func TestGetMinerDataByBlockHashBadHash(t *testing.T) {
	chain, _, _ := testChainWithBlock(true)
	server := newTestServer(t, chain)

	cmd := rpcmodel.NewGetMinerDataByBlockHashCmd("not a hash")
	_, err := handleGetMinerDataByBlockHash(server, cmd, nil)
	rpcErr, ok := err.(*rpcmodel.RPCError)
	if !ok {
		t.Fatalf("handler error is %T, want *rpcmodel.RPCError", err)
	}
	if rpcErr.Code != rpcmodel.ErrRPCDecodeHexString {
		t.Errorf("error code is %d, want %d", rpcErr.Code,
			rpcmodel.ErrRPCDecodeHexString)
	}
}

func TestStandardCmdResultMethodNotFound(t *testing.T) {
	chain, _, _ := testChainWithBlock(true)
	server := newTestServer(t, chain)

	request := &rpcmodel.Request{JSONRPC: "1.0", Method: "bogusMethod", ID: 1}
	_, rpcErr := server.standardCmdResult(request, nil)
	if rpcErr == nil {
		t.Fatalf("standardCmdResult unexpectedly succeeded")
	}
	if rpcErr.Code != rpcmodel.ErrRPCMethodNotFound {
		t.Errorf("error code is %d, want %d", rpcErr.Code,
			rpcmodel.ErrRPCMethodNotFound)
	}
}
