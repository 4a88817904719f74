package dbaccess

import (
	"github.com/emberchain/emberd/database"
	"github.com/emberchain/emberd/util/chainhash"
)

var receiptsBucket = database.MakeBucket([]byte("receipts"))

func receiptKey(txHash *chainhash.Hash) *database.Key {
	return receiptsBucket.Key(txHash[:])
}

// StoreReceipt stores the given receipt bytes under the transaction hash
// they belong to, overwriting any previous entry.
func StoreReceipt(context Context, txHash *chainhash.Hash, receiptBytes []byte) error {
	accessor, err := context.accessor()
	if err != nil {
		return err
	}

	return accessor.Put(receiptKey(txHash), receiptBytes)
}

// FetchReceipt returns the receipt recorded for the given transaction hash.
// Returns found=false if no receipt was indexed for that transaction; a gap
// in the receipt index is a valid state, not an error.
func FetchReceipt(context Context, txHash *chainhash.Hash) (receipt []byte, found bool, err error) {
	accessor, err := context.accessor()
	if err != nil {
		return nil, false, err
	}

	return accessor.Get(receiptKey(txHash))
}
