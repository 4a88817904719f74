package minerdata

import (
	"math/big"

	"github.com/emberchain/emberd/util/address"
	"github.com/emberchain/emberd/util/chainhash"
	"github.com/emberchain/emberd/util/wei"
	"github.com/emberchain/emberd/wire"
	"github.com/pkg/errors"
)

// FeeLookup resolves the gas a transaction actually consumed from the
// receipt index. found=false means no receipt was indexed for the
// transaction; such a transaction contributes nothing to the fee total. A
// partially indexed chain therefore understates transactionFee rather than
// failing the query.
type FeeLookup func(txHash *chainhash.Hash) (gasUsed uint64, found bool, err error)

// OmmerLookup returns the ommers recorded in the canonical block body at the
// given height, in body order. An empty result is valid and yields an empty
// uncle-reward map.
type OmmerLookup func(blockNumber uint64) ([]OmmerRef, error)

// OmmerRef identifies one ommer by its header hash and the address its
// reward was credited to.
type OmmerRef struct {
	Hash     chainhash.Hash
	Coinbase address.Address
}

// MinerData is the full reward decomposition for one block, alongside the
// block attributes a caller needs to attribute it.
type MinerData struct {
	// NetBlockReward is the block producer's total compensation:
	// StaticBlockReward + TransactionFee + UncleInclusionReward.
	NetBlockReward wei.Wei

	// StaticBlockReward is the protocol-defined base reward in force at
	// the block's height.
	StaticBlockReward wei.Wei

	// TransactionFee is the sum over the block's transactions of
	// gasPrice × gasUsed.
	TransactionFee wei.Wei

	// UncleInclusionReward is the bonus paid for referencing uncles,
	// derived from the header's uncle count.
	UncleInclusionReward wei.Wei

	Coinbase        address.Address
	ExtraData       []byte
	Difficulty      *big.Int
	TotalDifficulty *big.Int

	// UncleRewards maps each ommer recorded in the canonical block body
	// to the address credited for it. Built from the canonical body
	// alone, so its size may differ from the uncle count the bonus above
	// was computed from.
	UncleRewards map[chainhash.Hash]address.Address

	// UncleHashes preserves the canonical body order of the ommers in
	// UncleRewards.
	UncleHashes []chainhash.Hash
}

// Compute derives the miner data for the given block. staticReward is the
// protocol reward in force at the block's height and uncleRewardDivisor the
// protocol's fixed uncle-bonus divisor. The computation is deterministic
// given its lookups; the only failures are lookup I/O errors and 256-bit
// overflow of the checked wei arithmetic.
func Compute(block *wire.MsgBlock, totalDifficulty *big.Int, staticReward wei.Wei,
	uncleRewardDivisor uint64, feeLookup FeeLookup, ommerLookup OmmerLookup) (*MinerData, error) {

	transactionFee, err := transactionFee(block, feeLookup)
	if err != nil {
		return nil, err
	}

	uncleInclusionReward, err := uncleInclusionReward(
		staticReward, uint64(len(block.Uncles)), uncleRewardDivisor)
	if err != nil {
		return nil, err
	}

	netBlockReward, err := staticReward.Add(transactionFee)
	if err != nil {
		return nil, err
	}
	netBlockReward, err = netBlockReward.Add(uncleInclusionReward)
	if err != nil {
		return nil, err
	}

	ommers, err := ommerLookup(block.Header.Number)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to look up canonical ommers "+
			"at height %d", block.Header.Number)
	}
	uncleRewards := make(map[chainhash.Hash]address.Address, len(ommers))
	uncleHashes := make([]chainhash.Hash, 0, len(ommers))
	for _, ommer := range ommers {
		uncleRewards[ommer.Hash] = ommer.Coinbase
		uncleHashes = append(uncleHashes, ommer.Hash)
	}

	return &MinerData{
		NetBlockReward:       netBlockReward,
		StaticBlockReward:    staticReward,
		TransactionFee:       transactionFee,
		UncleInclusionReward: uncleInclusionReward,
		Coinbase:             block.Header.Coinbase,
		ExtraData:            block.Header.ExtraData,
		Difficulty:           block.Header.Difficulty,
		TotalDifficulty:      totalDifficulty,
		UncleRewards:         uncleRewards,
		UncleHashes:          uncleHashes,
	}, nil
}

// transactionFee sums gasPrice × gasUsed over the block's transactions.
// Transactions with no indexed receipt contribute zero.
func transactionFee(block *wire.MsgBlock, feeLookup FeeLookup) (wei.Wei, error) {
	total := wei.Zero()
	for _, tx := range block.Transactions {
		txHash := tx.TxHash()
		gasUsed, found, err := feeLookup(&txHash)
		if err != nil {
			return wei.Zero(), errors.Wrapf(err,
				"failed to look up gas used by transaction %s", &txHash)
		}
		if !found {
			continue
		}
		fee, err := tx.GasPrice.MulUint64(gasUsed)
		if err != nil {
			return wei.Zero(), err
		}
		total, err = total.Add(fee)
		if err != nil {
			return wei.Zero(), err
		}
	}
	return total, nil
}

// uncleInclusionReward is staticReward × uncleCount / divisor, floor-divided.
// The count comes from the block's own header, independently of what the
// canonical body at the same height records.
func uncleInclusionReward(staticReward wei.Wei, uncleCount, divisor uint64) (wei.Wei, error) {
	product, err := staticReward.MulUint64(uncleCount)
	if err != nil {
		return wei.Zero(), err
	}
	return product.DivUint64(divisor), nil
}
