package rpc

import (
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/emberchain/emberd/minerdata"
	"github.com/emberchain/emberd/rpcmodel"
	"github.com/emberchain/emberd/util/chainhash"
)

// handleGetMinerDataByBlockHash implements the getMinerDataByBlockHash
// command.
//
// Asking about a block the chain doesn't have is a well-formed question, so
// an unknown hash produces a successful response with a null result. A found
// block whose world state was pruned produces a distinguished error before
// any reward computation starts.
func handleGetMinerDataByBlockHash(s *Server, cmd interface{}, closeChan <-chan struct{}) (interface{}, error) {
	c := cmd.(*rpcmodel.GetMinerDataByBlockHashCmd)

	hash, err := chainhash.NewHashFromStr(c.BlockHash)
	if err != nil {
		return nil, rpcDecodeHexError(c.BlockHash)
	}

	blockWithMeta, found, err := s.cfg.Chain.BlockByHash(hash)
	if err != nil {
		return nil, internalRPCError(err.Error(),
			"Failed to fetch block "+hash.String())
	}
	if !found {
		return nil, nil
	}
	block := blockWithMeta.Block

	stateAvailable, err := s.cfg.Chain.IsStateAvailable(&block.Header.StateRoot)
	if err != nil {
		return nil, internalRPCError(err.Error(),
			"Failed to check state availability for block "+hash.String())
	}
	if !stateAvailable {
		return nil, rpcmodel.NewRPCError(rpcmodel.ErrRPCStateUnavailable,
			fmt.Sprintf("World state unavailable for block %s "+
				"(state root %s)", hash, &block.Header.StateRoot))
	}

	staticReward := s.cfg.Chain.Params().BlockRewardAtHeight(block.Header.Number)
	feeLookup := minerdata.FeeLookup(s.cfg.Chain.GasUsedByTx)
	ommerLookup := func(blockNumber uint64) ([]minerdata.OmmerRef, error) {
		ommers, err := s.cfg.Chain.OmmersByNumber(blockNumber)
		if err != nil {
			return nil, err
		}
		refs := make([]minerdata.OmmerRef, 0, len(ommers))
		for _, ommer := range ommers {
			refs = append(refs, minerdata.OmmerRef{
				Hash:     ommer.Hash,
				Coinbase: ommer.Coinbase,
			})
		}
		return refs, nil
	}

	data, err := minerdata.Compute(block, blockWithMeta.TotalDifficulty,
		staticReward, s.cfg.Chain.Params().UncleRewardDivisor, feeLookup,
		ommerLookup)
	if err != nil {
		return nil, internalRPCError(err.Error(),
			"Failed to compute miner data for block "+hash.String())
	}

	uncleRewards := make(map[string]string, len(data.UncleRewards))
	for uncleHash, coinbase := range data.UncleRewards {
		uncleRewards["0x"+uncleHash.String()] = coinbase.String()
	}

	return &rpcmodel.MinerDataResult{
		NetBlockReward:       data.NetBlockReward.HexString(),
		StaticBlockReward:    data.StaticBlockReward.HexString(),
		TransactionFee:       data.TransactionFee.HexString(),
		UncleInclusionReward: data.UncleInclusionReward.HexString(),
		UncleRewards:         uncleRewards,
		Coinbase:             data.Coinbase.String(),
		ExtraData:            "0x" + hex.EncodeToString(data.ExtraData),
		Difficulty:           hexQuantity(data.Difficulty),
		TotalDifficulty:      hexQuantity(data.TotalDifficulty),
	}, nil
}

// hexQuantity formats a big integer as a 0x-prefixed hexadecimal quantity.
func hexQuantity(value *big.Int) string {
	if value == nil {
		return "0x0"
	}
	return fmt.Sprintf("%#x", value)
}
