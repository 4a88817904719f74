package address

import (
	"encoding/hex"

	"github.com/pkg/errors"
)

// Size of array used to store an account address.
const Size = 20

// Address is a 20-byte account address, the recipient of block and uncle
// rewards.
type Address [Size]byte

// String returns the Address as a 0x-prefixed hexadecimal string.
func (address Address) String() string {
	return "0x" + hex.EncodeToString(address[:])
}

// CloneBytes returns a copy of the bytes which represent the address as a
// byte slice.
func (address *Address) CloneBytes() []byte {
	newAddress := make([]byte, Size)
	copy(newAddress, address[:])

	return newAddress
}

// SetBytes sets the bytes which represent the address. An error is returned
// if the number of bytes passed in is not Size.
func (address *Address) SetBytes(newAddress []byte) error {
	if len(newAddress) != Size {
		return errors.Errorf("invalid address length of %d, want %d",
			len(newAddress), Size)
	}
	copy(address[:], newAddress)

	return nil
}

// IsEqual returns true if target is the same as address.
func (address *Address) IsEqual(target *Address) bool {
	if address == nil && target == nil {
		return true
	}
	if address == nil || target == nil {
		return false
	}
	return *address == *target
}

// NewAddress returns a new Address from a byte slice. An error is returned
// if the number of bytes passed in is not Size.
func NewAddress(newAddress []byte) (*Address, error) {
	var address Address
	err := address.SetBytes(newAddress)
	if err != nil {
		return nil, err
	}
	return &address, nil
}

// NewAddressFromStr creates an Address from an address string. The string
// may carry an optional 0x prefix.
func NewAddressFromStr(src string) (*Address, error) {
	if len(src) >= 2 && src[0] == '0' && (src[1] == 'x' || src[1] == 'X') {
		src = src[2:]
	}
	if len(src) != Size*2 {
		return nil, errors.Errorf("invalid address string length of %d, want %d",
			len(src), Size*2)
	}

	decoded, err := hex.DecodeString(src)
	if err != nil {
		return nil, errors.Wrap(err, "couldn't decode address hex")
	}

	return NewAddress(decoded)
}
