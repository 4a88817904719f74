package dbaccess

import (
	"github.com/emberchain/emberd/database"
	"github.com/emberchain/emberd/util/chainhash"
	"github.com/pkg/errors"
)

var blocksBucket = database.MakeBucket([]byte("blocks"))

func blockKey(hash *chainhash.Hash) *database.Key {
	return blocksBucket.Key(hash[:])
}

// StoreBlock stores the given block bytes under the given hash. An error is
// returned if a block with that hash already exists.
func StoreBlock(context Context, hash *chainhash.Hash, blockBytes []byte) error {
	accessor, err := context.accessor()
	if err != nil {
		return err
	}

	// Make sure that the block does not already exist.
	exists, err := HasBlock(context, hash)
	if err != nil {
		return err
	}
	if exists {
		return errors.Errorf("block %s already exists", hash)
	}

	return accessor.Put(blockKey(hash), blockBytes)
}

// HasBlock returns whether the block of the given hash has been previously
// inserted into the database.
func HasBlock(context Context, hash *chainhash.Hash) (bool, error) {
	accessor, err := context.accessor()
	if err != nil {
		return false, err
	}

	return accessor.Has(blockKey(hash))
}

// FetchBlock returns the block of the given hash. Returns found=false if the
// block had not been previously inserted into the database.
func FetchBlock(context Context, hash *chainhash.Hash) (block []byte, found bool, err error) {
	accessor, err := context.accessor()
	if err != nil {
		return nil, false, err
	}

	return accessor.Get(blockKey(hash))
}
