// Copyright (c) 2014-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpcmodel

// MinerDataResult models the data returned by the getMinerDataByBlockHash
// command. All monetary quantities and the difficulty fields are 0x-prefixed
// hexadecimal quantity strings.
type MinerDataResult struct {
	NetBlockReward       string            `json:"netBlockReward"`
	StaticBlockReward    string            `json:"staticBlockReward"`
	TransactionFee       string            `json:"transactionFee"`
	UncleInclusionReward string            `json:"uncleInclusionReward"`
	UncleRewards         map[string]string `json:"uncleRewards"`
	Coinbase             string            `json:"coinbase"`
	ExtraData            string            `json:"extraData"`
	Difficulty           string            `json:"difficulty"`
	TotalDifficulty      string            `json:"totalDifficulty"`
}

// GetBlockVerboseResult models the data from the getBlock command when the
// verbose flag is set. When the verbose flag is not set, getBlock returns a
// hex-encoded string of the serialized block.
type GetBlockVerboseResult struct {
	Hash          string   `json:"hash"`
	Number        uint64   `json:"number"`
	ParentHash    string   `json:"parentHash"`
	Coinbase      string   `json:"coinbase"`
	StateRoot     string   `json:"stateRoot"`
	ExtraData     string   `json:"extraData"`
	Difficulty    string   `json:"difficulty"`
	Timestamp     uint64   `json:"timestamp"`
	Nonce         uint64   `json:"nonce"`
	TxHashes      []string `json:"txHashes"`
	UncleHashes   []string `json:"uncleHashes"`
	Confirmations uint64   `json:"confirmations"`
}

// GetInfoResult models the data returned by the getInfo command.
type GetInfoResult struct {
	Version string `json:"version"`
	Blocks  uint64 `json:"blocks"`
	Net     string `json:"net"`
	Testnet bool   `json:"testnet"`
	Simnet  bool   `json:"simnet"`
	Errors  string `json:"errors"`
}
