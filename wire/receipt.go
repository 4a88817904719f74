package wire

import (
	"bytes"
	"io"

	"github.com/emberchain/emberd/util/binaryserializer"
	"github.com/emberchain/emberd/util/chainhash"
)

// Receipt status codes.
const (
	ReceiptStatusFailed     uint8 = 0
	ReceiptStatusSuccessful uint8 = 1
)

// Receipt records the outcome of executing a transaction, as indexed by the
// receipt store. The fee computation reads GasUsed from here.
type Receipt struct {
	// TxHash identifies the transaction this receipt belongs to.
	TxHash chainhash.Hash

	// Status reports whether execution succeeded.
	Status uint8

	// GasUsed is the gas this transaction actually consumed.
	GasUsed uint64

	// CumulativeGasUsed is the total gas consumed in the block up to and
	// including this transaction.
	CumulativeGasUsed uint64
}

// Serialize encodes the receipt to w using the chain encoding.
func (receipt *Receipt) Serialize(w io.Writer) error {
	err := writeHash(w, &receipt.TxHash)
	if err != nil {
		return err
	}
	err = binaryserializer.PutUint8(w, receipt.Status)
	if err != nil {
		return err
	}
	err = binaryserializer.PutUint64(w, receipt.GasUsed)
	if err != nil {
		return err
	}
	return binaryserializer.PutUint64(w, receipt.CumulativeGasUsed)
}

// Deserialize decodes a receipt from r using the chain encoding.
func (receipt *Receipt) Deserialize(r io.Reader) error {
	err := readHash(r, &receipt.TxHash)
	if err != nil {
		return err
	}
	receipt.Status, err = binaryserializer.Uint8(r)
	if err != nil {
		return err
	}
	receipt.GasUsed, err = binaryserializer.Uint64(r)
	if err != nil {
		return err
	}
	receipt.CumulativeGasUsed, err = binaryserializer.Uint64(r)
	return err
}

// Bytes returns the serialized receipt.
func (receipt *Receipt) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	err := receipt.Serialize(&buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// NewReceiptFromBytes deserializes a receipt from its chain encoding.
func NewReceiptFromBytes(serializedReceipt []byte) (*Receipt, error) {
	receipt := new(Receipt)
	err := receipt.Deserialize(bytes.NewReader(serializedReceipt))
	if err != nil {
		return nil, err
	}
	return receipt, nil
}
