package dbaccess

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/emberchain/emberd/util/chainhash"
)

func prepareDatabaseForTest(t *testing.T) *DatabaseContext {
	databaseContext, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New unexpectedly failed: %s", err)
	}
	t.Cleanup(func() {
		err := databaseContext.Close()
		if err != nil {
			t.Fatalf("Close unexpectedly failed: %s", err)
		}
	})
	return databaseContext
}

func TestBlockStoreAndFetch(t *testing.T) {
	databaseContext := prepareDatabaseForTest(t)

	hash := &chainhash.Hash{0x01}
	blockBytes := []byte("serialized block")

	// Fetching a block that was never stored reports found=false, not an
	// error.
	_, found, err := FetchBlock(databaseContext, hash)
	if err != nil {
		t.Fatalf("FetchBlock unexpectedly failed: %s", err)
	}
	if found {
		t.Fatalf("FetchBlock unexpectedly found a block that was never stored")
	}

	err = StoreBlock(databaseContext, hash, blockBytes)
	if err != nil {
		t.Fatalf("StoreBlock unexpectedly failed: %s", err)
	}

	fetchedBytes, found, err := FetchBlock(databaseContext, hash)
	if err != nil {
		t.Fatalf("FetchBlock unexpectedly failed: %s", err)
	}
	if !found {
		t.Fatalf("FetchBlock didn't find the stored block")
	}
	if !bytes.Equal(fetchedBytes, blockBytes) {
		t.Errorf("FetchBlock returned wrong bytes - got %x, want %x",
			fetchedBytes, blockBytes)
	}

	// Storing the same block twice is an error.
	err = StoreBlock(databaseContext, hash, blockBytes)
	if err == nil {
		t.Errorf("StoreBlock unexpectedly succeeded for a duplicate block")
	}
}

func TestCanonicalIndex(t *testing.T) {
	databaseContext := prepareDatabaseForTest(t)

	hash := &chainhash.Hash{0x02}

	_, found, err := FetchCanonicalHash(databaseContext, 42)
	if err != nil {
		t.Fatalf("FetchCanonicalHash unexpectedly failed: %s", err)
	}
	if found {
		t.Fatalf("FetchCanonicalHash unexpectedly found an entry")
	}

	err = StoreCanonicalHash(databaseContext, 42, hash)
	if err != nil {
		t.Fatalf("StoreCanonicalHash unexpectedly failed: %s", err)
	}

	fetchedHash, found, err := FetchCanonicalHash(databaseContext, 42)
	if err != nil {
		t.Fatalf("FetchCanonicalHash unexpectedly failed: %s", err)
	}
	if !found {
		t.Fatalf("FetchCanonicalHash didn't find the stored entry")
	}
	if !fetchedHash.IsEqual(hash) {
		t.Errorf("FetchCanonicalHash returned wrong hash - got %s, want %s",
			fetchedHash, hash)
	}

	_, found, err = FetchChainTip(databaseContext)
	if err != nil {
		t.Fatalf("FetchChainTip unexpectedly failed: %s", err)
	}
	if found {
		t.Fatalf("FetchChainTip unexpectedly found a tip")
	}

	err = StoreChainTip(databaseContext, 42)
	if err != nil {
		t.Fatalf("StoreChainTip unexpectedly failed: %s", err)
	}
	tip, found, err := FetchChainTip(databaseContext)
	if err != nil {
		t.Fatalf("FetchChainTip unexpectedly failed: %s", err)
	}
	if !found || tip != 42 {
		t.Errorf("FetchChainTip returned wrong tip - got %d (found=%t), want 42",
			tip, found)
	}
}

func TestReceiptIndexGapIsNotAnError(t *testing.T) {
	databaseContext := prepareDatabaseForTest(t)

	txHash := &chainhash.Hash{0x03}

	_, found, err := FetchReceipt(databaseContext, txHash)
	if err != nil {
		t.Fatalf("FetchReceipt unexpectedly failed: %s", err)
	}
	if found {
		t.Fatalf("FetchReceipt unexpectedly found a receipt")
	}

	receiptBytes := []byte("serialized receipt")
	err = StoreReceipt(databaseContext, txHash, receiptBytes)
	if err != nil {
		t.Fatalf("StoreReceipt unexpectedly failed: %s", err)
	}

	fetchedBytes, found, err := FetchReceipt(databaseContext, txHash)
	if err != nil {
		t.Fatalf("FetchReceipt unexpectedly failed: %s", err)
	}
	if !found {
		t.Fatalf("FetchReceipt didn't find the stored receipt")
	}
	if !bytes.Equal(fetchedBytes, receiptBytes) {
		t.Errorf("FetchReceipt returned wrong bytes - got %x, want %x",
			fetchedBytes, receiptBytes)
	}
}

func TestStateRootRetention(t *testing.T) {
	databaseContext := prepareDatabaseForTest(t)

	stateRoot := &chainhash.Hash{0x04}

	has, err := HasStateRoot(databaseContext, stateRoot)
	if err != nil {
		t.Fatalf("HasStateRoot unexpectedly failed: %s", err)
	}
	if has {
		t.Fatalf("HasStateRoot unexpectedly reported a retained root")
	}

	err = AddStateRoot(databaseContext, stateRoot)
	if err != nil {
		t.Fatalf("AddStateRoot unexpectedly failed: %s", err)
	}
	has, err = HasStateRoot(databaseContext, stateRoot)
	if err != nil {
		t.Fatalf("HasStateRoot unexpectedly failed: %s", err)
	}
	if !has {
		t.Fatalf("HasStateRoot didn't report the added root")
	}

	// Pruning removes the root again.
	err = RemoveStateRoot(databaseContext, stateRoot)
	if err != nil {
		t.Fatalf("RemoveStateRoot unexpectedly failed: %s", err)
	}
	has, err = HasStateRoot(databaseContext, stateRoot)
	if err != nil {
		t.Fatalf("HasStateRoot unexpectedly failed: %s", err)
	}
	if has {
		t.Errorf("HasStateRoot reported a root that was removed")
	}
}

func TestTotalDifficulty(t *testing.T) {
	databaseContext := prepareDatabaseForTest(t)

	hash := &chainhash.Hash{0x05}
	totalDifficulty := big.NewInt(1_000_000_000)

	_, found, err := FetchTotalDifficulty(databaseContext, hash)
	if err != nil {
		t.Fatalf("FetchTotalDifficulty unexpectedly failed: %s", err)
	}
	if found {
		t.Fatalf("FetchTotalDifficulty unexpectedly found an entry")
	}

	err = StoreTotalDifficulty(databaseContext, hash, totalDifficulty)
	if err != nil {
		t.Fatalf("StoreTotalDifficulty unexpectedly failed: %s", err)
	}

	fetched, found, err := FetchTotalDifficulty(databaseContext, hash)
	if err != nil {
		t.Fatalf("FetchTotalDifficulty unexpectedly failed: %s", err)
	}
	if !found {
		t.Fatalf("FetchTotalDifficulty didn't find the stored entry")
	}
	if fetched.Cmp(totalDifficulty) != 0 {
		t.Errorf("FetchTotalDifficulty returned %s, want %s",
			fetched, totalDifficulty)
	}

	err = StoreTotalDifficulty(databaseContext, hash, big.NewInt(-1))
	if err == nil {
		t.Errorf("StoreTotalDifficulty unexpectedly accepted a negative value")
	}
}

func TestTxContext(t *testing.T) {
	databaseContext := prepareDatabaseForTest(t)

	hash := &chainhash.Hash{0x06}

	dbTx, err := databaseContext.NewTx()
	if err != nil {
		t.Fatalf("NewTx unexpectedly failed: %s", err)
	}
	defer dbTx.RollbackUnlessClosed()

	err = StoreCanonicalHash(dbTx, 7, hash)
	if err != nil {
		t.Fatalf("StoreCanonicalHash unexpectedly failed: %s", err)
	}
	err = dbTx.Commit()
	if err != nil {
		t.Fatalf("Commit unexpectedly failed: %s", err)
	}

	fetchedHash, found, err := FetchCanonicalHash(databaseContext, 7)
	if err != nil {
		t.Fatalf("FetchCanonicalHash unexpectedly failed: %s", err)
	}
	if !found || !fetchedHash.IsEqual(hash) {
		t.Errorf("committed transaction data was not visible - got %v (found=%t), want %s",
			fetchedHash, found, hash)
	}
}
