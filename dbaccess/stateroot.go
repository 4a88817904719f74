package dbaccess

import (
	"github.com/emberchain/emberd/database"
	"github.com/emberchain/emberd/util/chainhash"
)

var stateRootsBucket = database.MakeBucket([]byte("state-roots"))

func stateRootKey(stateRoot *chainhash.Hash) *database.Key {
	return stateRootsBucket.Key(stateRoot[:])
}

// AddStateRoot marks the world state committed to by the given root as
// retained, making state-dependent queries for its block servable.
func AddStateRoot(context Context, stateRoot *chainhash.Hash) error {
	accessor, err := context.accessor()
	if err != nil {
		return err
	}

	return accessor.Put(stateRootKey(stateRoot), []byte{})
}

// HasStateRoot returns whether the world state committed to by the given
// root is retained. A pruned or never-synced state returns false.
func HasStateRoot(context Context, stateRoot *chainhash.Hash) (bool, error) {
	accessor, err := context.accessor()
	if err != nil {
		return false, err
	}

	return accessor.Has(stateRootKey(stateRoot))
}

// RemoveStateRoot unmarks the world state committed to by the given root,
// as happens when the state store prunes historical data.
func RemoveStateRoot(context Context, stateRoot *chainhash.Hash) error {
	accessor, err := context.accessor()
	if err != nil {
		return err
	}

	return accessor.Delete(stateRootKey(stateRoot))
}
