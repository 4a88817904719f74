package wire

import (
	"io"

	"github.com/emberchain/emberd/util/binaryserializer"
	"github.com/emberchain/emberd/util/chainhash"
	"github.com/pkg/errors"
	"golang.org/x/crypto/sha3"
)

// maxVarBytesLength is the maximum length accepted for any variable-length
// byte field in serialized chain entities. It bounds allocations when
// deserializing untrusted bytes.
const maxVarBytesLength = 1 << 24 // 16 MB

// writeVarBytes serializes data as a length-prefixed byte slice.
func writeVarBytes(w io.Writer, data []byte) error {
	err := binaryserializer.PutUint32(w, uint32(len(data)))
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	_, err = w.Write(data)
	return errors.WithStack(err)
}

// readVarBytes deserializes a length-prefixed byte slice written by
// writeVarBytes.
func readVarBytes(r io.Reader) ([]byte, error) {
	length, err := binaryserializer.Uint32(r)
	if err != nil {
		return nil, err
	}
	if length > maxVarBytesLength {
		return nil, errors.Errorf("variable-length field is %d bytes, max %d",
			length, maxVarBytesLength)
	}
	if length == 0 {
		return nil, nil
	}
	data := make([]byte, length)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, errors.WithStack(err)
	}
	return data, nil
}

// writeHash serializes a chain hash.
func writeHash(w io.Writer, hash *chainhash.Hash) error {
	_, err := w.Write(hash[:])
	return errors.WithStack(err)
}

// readHash deserializes a chain hash.
func readHash(r io.Reader, hash *chainhash.Hash) error {
	_, err := io.ReadFull(r, hash[:])
	return errors.WithStack(err)
}

// keccak256 returns the legacy Keccak-256 digest of the given data. Chain
// entity identifiers (block hashes, transaction hashes) are keccak digests
// of the entity's serialized form.
func keccak256(data []byte) chainhash.Hash {
	var digest chainhash.Hash
	hasher := sha3.NewLegacyKeccak256()
	hasher.Write(data)
	hasher.Sum(digest[:0])
	return digest
}
