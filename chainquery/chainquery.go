package chainquery

import (
	"math/big"

	"github.com/emberchain/emberd/chaincfg"
	"github.com/emberchain/emberd/dbaccess"
	"github.com/emberchain/emberd/util/address"
	"github.com/emberchain/emberd/util/chainhash"
	"github.com/emberchain/emberd/wire"
	"github.com/pkg/errors"
)

// Queries is the read-only facade over the chain database that the RPC layer
// talks to. Every method reads immutable, already-finalized data, so
// concurrent use requires no synchronization beyond the database's own.
type Queries struct {
	databaseContext *dbaccess.DatabaseContext
	params          *chaincfg.Params
}

// New returns a Queries facade over the given database for the given
// network.
func New(databaseContext *dbaccess.DatabaseContext, params *chaincfg.Params) *Queries {
	return &Queries{
		databaseContext: databaseContext,
		params:          params,
	}
}

// Params returns the network parameters this chain runs under.
func (q *Queries) Params() *chaincfg.Params {
	return q.params
}

// BlockWithMeta pairs a block with chain metadata that is not carried in the
// block itself.
type BlockWithMeta struct {
	Block *wire.MsgBlock

	// TotalDifficulty is the difficulty accumulated by the chain up to
	// and including this block.
	TotalDifficulty *big.Int
}

// OmmerRef identifies one ommer recorded in a canonical block body: its
// header hash and the address its reward was credited to.
type OmmerRef struct {
	Hash     chainhash.Hash
	Coinbase address.Address
}

// BlockByHash resolves a block identifier to the block and its total
// difficulty. A hash no canonical block carries resolves to found=false;
// asking for a nonexistent block is a well-defined query, not an error.
func (q *Queries) BlockByHash(hash *chainhash.Hash) (*BlockWithMeta, bool, error) {
	blockBytes, found, err := dbaccess.FetchBlock(q.databaseContext, hash)
	if err != nil || !found {
		return nil, false, err
	}

	block, err := wire.NewBlockFromBytes(blockBytes)
	if err != nil {
		return nil, false, errors.Wrapf(err, "corrupt block entry for hash %s", hash)
	}

	totalDifficulty, found, err := dbaccess.FetchTotalDifficulty(q.databaseContext, hash)
	if err != nil {
		return nil, false, err
	}
	if !found {
		// A stored block always has its total difficulty stored next
		// to it, so a gap here is corruption rather than absence.
		return nil, false, errors.Errorf("missing total difficulty for block %s", hash)
	}

	return &BlockWithMeta{Block: block, TotalDifficulty: totalDifficulty}, true, nil
}

// OmmersByNumber returns the ommers recorded in the canonical block body at
// the given number, in body order. When no canonical block exists at that
// number the returned list is empty; the canonical body is the authoritative
// source for ommer reward recipients.
func (q *Queries) OmmersByNumber(blockNumber uint64) ([]OmmerRef, error) {
	canonicalHash, found, err := dbaccess.FetchCanonicalHash(q.databaseContext, blockNumber)
	if err != nil || !found {
		return nil, err
	}

	blockBytes, found, err := dbaccess.FetchBlock(q.databaseContext, canonicalHash)
	if err != nil || !found {
		return nil, err
	}
	block, err := wire.NewBlockFromBytes(blockBytes)
	if err != nil {
		return nil, errors.Wrapf(err, "corrupt block entry for hash %s", canonicalHash)
	}

	ommers := make([]OmmerRef, 0, len(block.Uncles))
	for _, uncle := range block.Uncles {
		ommers = append(ommers, OmmerRef{
			Hash:     uncle.BlockHash(),
			Coinbase: uncle.Coinbase,
		})
	}
	return ommers, nil
}

// GasUsedByTx returns the gas the given transaction actually consumed,
// according to the receipt index. Returns found=false when no receipt was
// indexed for the transaction.
func (q *Queries) GasUsedByTx(txHash *chainhash.Hash) (uint64, bool, error) {
	receiptBytes, found, err := dbaccess.FetchReceipt(q.databaseContext, txHash)
	if err != nil || !found {
		return 0, false, err
	}

	receipt, err := wire.NewReceiptFromBytes(receiptBytes)
	if err != nil {
		return 0, false, errors.Wrapf(err, "corrupt receipt entry for transaction %s", txHash)
	}
	return receipt.GasUsed, true, nil
}

// IsStateAvailable reports whether the world state committed to by the given
// state root is retained by the state store.
func (q *Queries) IsStateAvailable(stateRoot *chainhash.Hash) (bool, error) {
	return dbaccess.HasStateRoot(q.databaseContext, stateRoot)
}

// BlockCount returns the number of blocks in the canonical chain.
func (q *Queries) BlockCount() (uint64, error) {
	tip, found, err := dbaccess.FetchChainTip(q.databaseContext)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, nil
	}
	return tip + 1, nil
}

// BestBlockHash returns the hash of the highest canonical block.
func (q *Queries) BestBlockHash() (*chainhash.Hash, error) {
	tip, found, err := dbaccess.FetchChainTip(q.databaseContext)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.New("chain database was never bootstrapped")
	}
	hash, found, err := dbaccess.FetchCanonicalHash(q.databaseContext, tip)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.Errorf("missing canonical entry for chain tip %d", tip)
	}
	return hash, nil
}
