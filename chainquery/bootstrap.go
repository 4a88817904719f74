package chainquery

import (
	"math/big"

	"github.com/emberchain/emberd/dbaccess"
	"github.com/emberchain/emberd/wire"
	"github.com/pkg/errors"
)

// EnsureGenesis bootstraps a fresh database with the network's genesis
// block: the block itself, its canonical entry, its total difficulty and its
// state root. Calling it on an already-bootstrapped database is a no-op.
func (q *Queries) EnsureGenesis() error {
	_, found, err := dbaccess.FetchChainTip(q.databaseContext)
	if err != nil {
		return err
	}
	if found {
		return nil
	}

	genesis := q.params.GenesisBlock
	genesisHash := q.params.GenesisHash
	log.Infof("Bootstrapping database with %s genesis block %s",
		q.params.Name, genesisHash)

	dbTx, err := q.databaseContext.NewTx()
	if err != nil {
		return err
	}
	defer dbTx.RollbackUnlessClosed()

	genesisBytes, err := genesis.Bytes()
	if err != nil {
		return err
	}
	err = dbaccess.StoreBlock(dbTx, genesisHash, genesisBytes)
	if err != nil {
		return err
	}
	err = dbaccess.StoreCanonicalHash(dbTx, genesis.Header.Number, genesisHash)
	if err != nil {
		return err
	}
	err = dbaccess.StoreTotalDifficulty(dbTx, genesisHash, genesis.Header.Difficulty)
	if err != nil {
		return err
	}
	err = dbaccess.AddStateRoot(dbTx, &genesis.Header.StateRoot)
	if err != nil {
		return err
	}
	err = dbaccess.StoreChainTip(dbTx, genesis.Header.Number)
	if err != nil {
		return err
	}
	return dbTx.Commit()
}

// AcceptBlock appends a block to the canonical chain together with its
// transaction receipts, atomically updating every index the query methods
// read. The block must extend the current chain tip.
func (q *Queries) AcceptBlock(block *wire.MsgBlock, receipts []*wire.Receipt) error {
	tip, found, err := dbaccess.FetchChainTip(q.databaseContext)
	if err != nil {
		return err
	}
	if !found {
		return errors.New("cannot accept a block into a database that " +
			"was never bootstrapped")
	}
	if block.Header.Number != tip+1 {
		return errors.Errorf("block number %d does not extend chain tip %d",
			block.Header.Number, tip)
	}
	tipHash, found, err := dbaccess.FetchCanonicalHash(q.databaseContext, tip)
	if err != nil {
		return err
	}
	if !found {
		return errors.Errorf("missing canonical entry for chain tip %d", tip)
	}
	if !block.Header.ParentHash.IsEqual(tipHash) {
		return errors.Errorf("block parent %s is not the chain tip %s",
			&block.Header.ParentHash, tipHash)
	}
	tipTotalDifficulty, found, err := dbaccess.FetchTotalDifficulty(q.databaseContext, tipHash)
	if err != nil {
		return err
	}
	if !found {
		return errors.Errorf("missing total difficulty for chain tip %s", tipHash)
	}

	blockHash := block.BlockHash()
	totalDifficulty := new(big.Int).Add(tipTotalDifficulty, block.Header.Difficulty)

	dbTx, err := q.databaseContext.NewTx()
	if err != nil {
		return err
	}
	defer dbTx.RollbackUnlessClosed()

	blockBytes, err := block.Bytes()
	if err != nil {
		return err
	}
	err = dbaccess.StoreBlock(dbTx, &blockHash, blockBytes)
	if err != nil {
		return err
	}
	err = dbaccess.StoreCanonicalHash(dbTx, block.Header.Number, &blockHash)
	if err != nil {
		return err
	}
	err = dbaccess.StoreTotalDifficulty(dbTx, &blockHash, totalDifficulty)
	if err != nil {
		return err
	}
	err = dbaccess.AddStateRoot(dbTx, &block.Header.StateRoot)
	if err != nil {
		return err
	}
	for _, receipt := range receipts {
		receiptBytes, err := receipt.Bytes()
		if err != nil {
			return err
		}
		err = dbaccess.StoreReceipt(dbTx, &receipt.TxHash, receiptBytes)
		if err != nil {
			return err
		}
	}
	err = dbaccess.StoreChainTip(dbTx, block.Header.Number)
	if err != nil {
		return err
	}

	err = dbTx.Commit()
	if err != nil {
		return err
	}

	log.Debugf("Accepted block %s at height %d (%d transactions, %d uncles)",
		&blockHash, block.Header.Number, len(block.Transactions), len(block.Uncles))
	return nil
}
