package dbaccess

import (
	"encoding/binary"

	"github.com/emberchain/emberd/database"
	"github.com/emberchain/emberd/util/chainhash"
	"github.com/pkg/errors"
)

var (
	canonicalBucket = database.MakeBucket([]byte("canonical-hashes"))
	chainTipKey     = database.MakeBucket().Key([]byte("chain-tip"))
)

func canonicalKey(blockNumber uint64) *database.Key {
	var serializedNumber [8]byte
	binary.BigEndian.PutUint64(serializedNumber[:], blockNumber)
	return canonicalBucket.Key(serializedNumber[:])
}

// StoreCanonicalHash records the given hash as the canonical block at the
// given number, overwriting any previous entry for that number.
func StoreCanonicalHash(context Context, blockNumber uint64, hash *chainhash.Hash) error {
	accessor, err := context.accessor()
	if err != nil {
		return err
	}

	return accessor.Put(canonicalKey(blockNumber), hash[:])
}

// FetchCanonicalHash returns the hash of the canonical block at the given
// number. Returns found=false if no canonical block is recorded at that
// number.
func FetchCanonicalHash(context Context, blockNumber uint64) (*chainhash.Hash, bool, error) {
	accessor, err := context.accessor()
	if err != nil {
		return nil, false, err
	}

	hashBytes, found, err := accessor.Get(canonicalKey(blockNumber))
	if err != nil || !found {
		return nil, false, err
	}

	hash, err := chainhash.NewHash(hashBytes)
	if err != nil {
		return nil, false, errors.Wrapf(err, "corrupt canonical entry for number %d", blockNumber)
	}
	return hash, true, nil
}

// StoreChainTip records the number of the highest canonical block.
func StoreChainTip(context Context, blockNumber uint64) error {
	accessor, err := context.accessor()
	if err != nil {
		return err
	}

	var serializedNumber [8]byte
	binary.BigEndian.PutUint64(serializedNumber[:], blockNumber)
	return accessor.Put(chainTipKey, serializedNumber[:])
}

// FetchChainTip returns the number of the highest canonical block. Returns
// found=false for a database that was never bootstrapped.
func FetchChainTip(context Context) (uint64, bool, error) {
	accessor, err := context.accessor()
	if err != nil {
		return 0, false, err
	}

	serializedNumber, found, err := accessor.Get(chainTipKey)
	if err != nil || !found {
		return 0, false, err
	}
	if len(serializedNumber) != 8 {
		return 0, false, errors.Errorf("corrupt chain tip entry of length %d", len(serializedNumber))
	}
	return binary.BigEndian.Uint64(serializedNumber), true, nil
}
