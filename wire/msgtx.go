package wire

import (
	"bytes"
	"io"

	"github.com/emberchain/emberd/util/address"
	"github.com/emberchain/emberd/util/binaryserializer"
	"github.com/emberchain/emberd/util/chainhash"
	"github.com/emberchain/emberd/util/wei"
	"github.com/pkg/errors"
)

// MsgTx implements a transaction included in a block body. Only the fields
// the query daemon serves are carried; signature material is not stored.
type MsgTx struct {
	// Nonce is the sender's transaction count at submission time.
	Nonce uint64

	// GasPrice is the fee, in wei, the sender declared per unit of gas.
	GasPrice wei.Wei

	// GasLimit is the maximum gas the sender allowed this transaction to
	// consume.
	GasLimit uint64

	// To is the recipient account. Nil means contract creation.
	To *address.Address

	// Value is the amount of wei transferred to the recipient.
	Value wei.Wei

	// Payload is the transaction's input data.
	Payload []byte
}

// Serialize encodes the transaction to w using the chain encoding.
func (tx *MsgTx) Serialize(w io.Writer) error {
	err := binaryserializer.PutUint64(w, tx.Nonce)
	if err != nil {
		return err
	}
	err = writeVarBytes(w, tx.GasPrice.Bytes())
	if err != nil {
		return err
	}
	err = binaryserializer.PutUint64(w, tx.GasLimit)
	if err != nil {
		return err
	}
	if tx.To == nil {
		err = binaryserializer.PutUint8(w, 0)
		if err != nil {
			return err
		}
	} else {
		err = binaryserializer.PutUint8(w, 1)
		if err != nil {
			return err
		}
		_, err = w.Write(tx.To[:])
		if err != nil {
			return errors.WithStack(err)
		}
	}
	err = writeVarBytes(w, tx.Value.Bytes())
	if err != nil {
		return err
	}
	return writeVarBytes(w, tx.Payload)
}

// Deserialize decodes a transaction from r using the chain encoding.
func (tx *MsgTx) Deserialize(r io.Reader) error {
	var err error
	tx.Nonce, err = binaryserializer.Uint64(r)
	if err != nil {
		return err
	}
	gasPriceBytes, err := readVarBytes(r)
	if err != nil {
		return err
	}
	tx.GasPrice, err = wei.SetBytes(gasPriceBytes)
	if err != nil {
		return err
	}
	tx.GasLimit, err = binaryserializer.Uint64(r)
	if err != nil {
		return err
	}
	hasRecipient, err := binaryserializer.Uint8(r)
	if err != nil {
		return err
	}
	switch hasRecipient {
	case 0:
		tx.To = nil
	case 1:
		tx.To = new(address.Address)
		_, err = io.ReadFull(r, tx.To[:])
		if err != nil {
			return errors.WithStack(err)
		}
	default:
		return errors.Errorf("invalid recipient flag %d", hasRecipient)
	}
	valueBytes, err := readVarBytes(r)
	if err != nil {
		return err
	}
	tx.Value, err = wei.SetBytes(valueBytes)
	if err != nil {
		return err
	}
	tx.Payload, err = readVarBytes(r)
	return err
}

// TxHash computes the transaction identifier, which is the keccak of the
// serialized transaction.
func (tx *MsgTx) TxHash() chainhash.Hash {
	var buf bytes.Buffer
	err := tx.Serialize(&buf)
	if err != nil {
		panic(errors.Wrap(err, "TxHash: failed to serialize transaction"))
	}
	return keccak256(buf.Bytes())
}
