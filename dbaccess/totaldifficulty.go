package dbaccess

import (
	"math/big"

	"github.com/emberchain/emberd/database"
	"github.com/emberchain/emberd/util/chainhash"
	"github.com/pkg/errors"
)

var totalDifficultyBucket = database.MakeBucket([]byte("total-difficulty"))

func totalDifficultyKey(hash *chainhash.Hash) *database.Key {
	return totalDifficultyBucket.Key(hash[:])
}

// StoreTotalDifficulty records the total difficulty accumulated by the chain
// up to and including the block of the given hash.
func StoreTotalDifficulty(context Context, hash *chainhash.Hash, totalDifficulty *big.Int) error {
	accessor, err := context.accessor()
	if err != nil {
		return err
	}
	if totalDifficulty.Sign() < 0 {
		return errors.Errorf("total difficulty cannot be negative: %s", totalDifficulty)
	}

	return accessor.Put(totalDifficultyKey(hash), totalDifficulty.Bytes())
}

// FetchTotalDifficulty returns the total difficulty recorded for the block
// of the given hash. Returns found=false if none was recorded.
func FetchTotalDifficulty(context Context, hash *chainhash.Hash) (*big.Int, bool, error) {
	accessor, err := context.accessor()
	if err != nil {
		return nil, false, err
	}

	totalDifficultyBytes, found, err := accessor.Get(totalDifficultyKey(hash))
	if err != nil || !found {
		return nil, false, err
	}

	return new(big.Int).SetBytes(totalDifficultyBytes), true, nil
}
