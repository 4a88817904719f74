// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"github.com/emberchain/emberd/util/chainhash"
	"github.com/emberchain/emberd/util/wei"
	"github.com/emberchain/emberd/wire"
)

// EmberNet represents which ember network a message belongs to.
type EmberNet uint32

// Constants used to indicate the network.
const (
	// Mainnet represents the main ember network.
	Mainnet EmberNet = 0xe5b7d9c3

	// Testnet represents the test network.
	Testnet EmberNet = 0x1a3f6e87

	// Simnet represents the simulation test network.
	Simnet EmberNet = 0x6a4c2f15
)

// oneEmber is the number of wei in one whole coin.
const oneEmber = 1e18

// RewardEra binds a protocol-fixed static block reward to the height at
// which it activates. Eras are ordered by ascending activation height; an
// era stays in force until a later era activates.
type RewardEra struct {
	// ActivationHeight is the first block height this era applies to.
	ActivationHeight uint64

	// StaticReward is the protocol-defined block reward during this era.
	StaticReward wei.Wei
}

// Params defines an ember network by its parameters. These parameters may be
// used by ember applications to differentiate networks as well as data meant
// for one network from data intended for another.
type Params struct {
	// Name defines a human-readable identifier for the network.
	Name string

	// Net defines the magic bytes used to identify the network.
	Net EmberNet

	// RPCPort defines the default RPC server port.
	RPCPort string

	// GenesisBlock defines the first block of the chain.
	GenesisBlock *wire.MsgBlock

	// GenesisHash is the starting block hash.
	GenesisHash *chainhash.Hash

	// RewardEras is the static block-reward schedule, ordered by
	// ascending activation height. The first era must activate at
	// height 0.
	RewardEras []RewardEra

	// UncleRewardDivisor is the protocol's fixed divisor for the
	// uncle-inclusion bonus: including n uncles pays the block producer
	// staticReward × n / UncleRewardDivisor, floor-divided.
	UncleRewardDivisor uint64
}

// BlockRewardAtHeight returns the protocol-defined static block reward for a
// block at the given height. This is the rule-table lookup the miner-data
// computation consumes; which fork applies is decided here and nowhere else.
func (p *Params) BlockRewardAtHeight(height uint64) wei.Wei {
	reward := wei.Zero()
	for _, era := range p.RewardEras {
		if height < era.ActivationHeight {
			break
		}
		reward = era.StaticReward
	}
	return reward
}

// MainnetParams defines the network parameters for the main ember network.
var MainnetParams = Params{
	Name:         "mainnet",
	Net:          Mainnet,
	RPCPort:      "8645",
	GenesisBlock: &mainnetGenesisBlock,
	GenesisHash:  &mainnetGenesisHash,
	RewardEras: []RewardEra{
		{ActivationHeight: 0, StaticReward: wei.FromUint64(5 * oneEmber)},
		{ActivationHeight: 4_370_000, StaticReward: wei.FromUint64(3 * oneEmber)},
		{ActivationHeight: 7_280_000, StaticReward: wei.FromUint64(2 * oneEmber)},
	},
	UncleRewardDivisor: 32,
}

// TestnetParams defines the network parameters for the test ember network.
var TestnetParams = Params{
	Name:         "testnet",
	Net:          Testnet,
	RPCPort:      "18645",
	GenesisBlock: &testnetGenesisBlock,
	GenesisHash:  &testnetGenesisHash,
	RewardEras: []RewardEra{
		{ActivationHeight: 0, StaticReward: wei.FromUint64(5 * oneEmber)},
		{ActivationHeight: 1_700_000, StaticReward: wei.FromUint64(3 * oneEmber)},
		{ActivationHeight: 4_230_000, StaticReward: wei.FromUint64(2 * oneEmber)},
	},
	UncleRewardDivisor: 32,
}

// SimnetParams defines the network parameters for the simulation test
// network. This network is intended for private use, so the reward schedule
// is a single era with a small round reward that keeps test arithmetic easy
// to follow.
var SimnetParams = Params{
	Name:         "simnet",
	Net:          Simnet,
	RPCPort:      "28645",
	GenesisBlock: &simnetGenesisBlock,
	GenesisHash:  &simnetGenesisHash,
	RewardEras: []RewardEra{
		{ActivationHeight: 0, StaticReward: wei.FromUint64(160)},
	},
	UncleRewardDivisor: 32,
}
