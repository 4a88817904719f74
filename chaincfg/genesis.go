// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"math/big"

	"github.com/emberchain/emberd/util/address"
	"github.com/emberchain/emberd/util/chainhash"
	"github.com/emberchain/emberd/wire"
)

// mainnetGenesisBlock defines the genesis block of the chain that serves as
// the public transaction ledger for the main network.
var mainnetGenesisBlock = wire.MsgBlock{
	Header: wire.BlockHeader{
		Number:     0,
		ParentHash: chainhash.Hash{}, // no parent
		Coinbase:   address.Address{},
		StateRoot: chainhash.Hash{
			0x3f, 0x4b, 0x9a, 0x51, 0xc2, 0x7e, 0x85, 0xd0,
			0x16, 0xa8, 0x44, 0xfd, 0x09, 0x73, 0xba, 0x2c,
			0x5e, 0x61, 0xe8, 0x3b, 0x27, 0x90, 0x4a, 0xcd,
			0xbf, 0x12, 0x58, 0x06, 0xe3, 0x7c, 0x91, 0x24,
		},
		ExtraData:  []byte("ember mainnet genesis"),
		Difficulty: big.NewInt(17179869184),
		Timestamp:  0,
		Nonce:      66,
	},
}

// mainnetGenesisHash is the hash of the first block in the block chain for
// the main network.
var mainnetGenesisHash = mainnetGenesisBlock.BlockHash()

// testnetGenesisBlock defines the genesis block of the chain that serves as
// the public transaction ledger for the test network.
var testnetGenesisBlock = wire.MsgBlock{
	Header: wire.BlockHeader{
		Number:     0,
		ParentHash: chainhash.Hash{},
		Coinbase:   address.Address{},
		StateRoot: chainhash.Hash{
			0x7d, 0x28, 0x4e, 0x0b, 0x93, 0xf1, 0x6c, 0x35,
			0xd9, 0x40, 0x1f, 0x82, 0x5a, 0xee, 0x07, 0xc8,
			0x34, 0xb6, 0x9d, 0x12, 0xf5, 0x0e, 0x88, 0x21,
			0x4f, 0xac, 0x63, 0x1a, 0xd7, 0x55, 0x0a, 0x96,
		},
		ExtraData:  []byte("ember testnet genesis"),
		Difficulty: big.NewInt(1048576),
		Timestamp:  0,
		Nonce:      66,
	},
}

// testnetGenesisHash is the hash of the first block in the block chain for
// the test network.
var testnetGenesisHash = testnetGenesisBlock.BlockHash()

// simnetGenesisBlock defines the genesis block of the chain that serves as
// the private transaction ledger for the simulation test network.
var simnetGenesisBlock = wire.MsgBlock{
	Header: wire.BlockHeader{
		Number:     0,
		ParentHash: chainhash.Hash{},
		Coinbase:   address.Address{},
		StateRoot: chainhash.Hash{
			0xc5, 0x09, 0x77, 0x3e, 0x12, 0xb8, 0x60, 0xa4,
			0xfe, 0x23, 0x8d, 0x51, 0x06, 0xcf, 0x94, 0x7b,
			0x2a, 0xe0, 0x45, 0x9c, 0x81, 0x1d, 0xf3, 0x68,
			0x30, 0xb2, 0x5f, 0xc6, 0x19, 0x84, 0xee, 0x02,
		},
		ExtraData:  []byte("ember simnet genesis"),
		Difficulty: big.NewInt(1),
		Timestamp:  0,
		Nonce:      0,
	},
}

// simnetGenesisHash is the hash of the first block in the block chain for
// the simulation test network.
var simnetGenesisHash = simnetGenesisBlock.BlockHash()
