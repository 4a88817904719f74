package rpc

import (
	"bytes"
	"encoding/hex"

	"github.com/emberchain/emberd/rpcmodel"
	"github.com/emberchain/emberd/util/chainhash"
)

// handleGetBlock implements the getBlock command.
func handleGetBlock(s *Server, cmd interface{}, closeChan <-chan struct{}) (interface{}, error) {
	c := cmd.(*rpcmodel.GetBlockCmd)

	hash, err := chainhash.NewHashFromStr(c.Hash)
	if err != nil {
		return nil, rpcDecodeHexError(c.Hash)
	}

	blockWithMeta, found, err := s.cfg.Chain.BlockByHash(hash)
	if err != nil {
		return nil, internalRPCError(err.Error(),
			"Failed to fetch block "+hash.String())
	}
	if !found {
		return nil, &rpcmodel.RPCError{
			Code:    rpcmodel.ErrRPCBlockNotFound,
			Message: "Block not found",
		}
	}
	block := blockWithMeta.Block

	// When the verbose flag isn't set, simply return the serialized block
	// as a hex-encoded string.
	if c.Verbose != nil && !*c.Verbose {
		var buf bytes.Buffer
		err := block.Serialize(&buf)
		if err != nil {
			return nil, internalRPCError(err.Error(),
				"Failed to serialize block "+hash.String())
		}
		return hex.EncodeToString(buf.Bytes()), nil
	}

	blockCount, err := s.cfg.Chain.BlockCount()
	if err != nil {
		return nil, internalRPCError(err.Error(), "Failed to fetch block count")
	}
	confirmations := uint64(0)
	if blockCount > block.Header.Number {
		confirmations = blockCount - block.Header.Number
	}

	txHashes := make([]string, 0, len(block.Transactions))
	for _, tx := range block.Transactions {
		txHash := tx.TxHash()
		txHashes = append(txHashes, "0x"+txHash.String())
	}
	uncleHashes := make([]string, 0, len(block.Uncles))
	for _, uncle := range block.Uncles {
		uncleHash := uncle.BlockHash()
		uncleHashes = append(uncleHashes, "0x"+uncleHash.String())
	}

	return &rpcmodel.GetBlockVerboseResult{
		Hash:          "0x" + hash.String(),
		Number:        block.Header.Number,
		ParentHash:    "0x" + block.Header.ParentHash.String(),
		Coinbase:      block.Header.Coinbase.String(),
		StateRoot:     "0x" + block.Header.StateRoot.String(),
		ExtraData:     "0x" + hex.EncodeToString(block.Header.ExtraData),
		Difficulty:    hexQuantity(block.Header.Difficulty),
		Timestamp:     block.Header.Timestamp,
		Nonce:         block.Header.Nonce,
		TxHashes:      txHashes,
		UncleHashes:   uncleHashes,
		Confirmations: confirmations,
	}, nil
}
