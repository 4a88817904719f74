package database

// Database defines the interface of a database that can begin transactions
// and close itself.
//
// Important: this is not part of the emberd API. It is defined for internal
// use in packages that access the chain database.
type Database interface {
	DataAccessor

	// Begin begins a new database transaction.
	Begin() (Transaction, error)

	// Close closes the database.
	Close() error
}

// DataAccessor defines the common interface by which data gets accessed in a
// generic emberd database.
type DataAccessor interface {
	// Put sets the value for the given key. It overwrites any previous
	// value for that key.
	Put(key *Key, value []byte) error

	// Get gets the value for the given key. It returns found=false if
	// the given key does not exist.
	Get(key *Key) (value []byte, found bool, err error)

	// Has returns true if the database contains the given key.
	Has(key *Key) (bool, error)

	// Delete deletes the value for the given key. Will not return an
	// error if the key doesn't exist.
	Delete(key *Key) error
}

// Transaction defines the interface of a generic emberd database
// transaction.
//
// Note: transactions provide data consistency over the state of the
// database as it was when the transaction started. There is NO guarantee
// that if one puts data into the transaction then it will be available to
// get within the same transaction.
type Transaction interface {
	DataAccessor

	// Rollback rolls back whatever changes were made to the database
	// within this transaction.
	Rollback() error

	// Commit commits whatever changes were made to the database within
	// this transaction.
	Commit() error

	// RollbackUnlessClosed rolls back changes that were made to the
	// database within the transaction, unless the transaction had
	// already been closed using either Rollback or Commit.
	RollbackUnlessClosed() error
}
