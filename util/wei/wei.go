package wei

import (
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// ErrOverflow is returned when a checked arithmetic operation overflows
// 256 bits. Realistic reward values never get close to the limit, but a
// clamped amount would be silently wrong money, so overflow fails loudly.
var ErrOverflow = errors.New("wei amount overflows 256 bits")

// Wei is a non-negative, fixed-width 256-bit monetary amount denominated in
// the chain's smallest unit. All arithmetic on Wei is checked: operations
// that would overflow return ErrOverflow instead of wrapping.
type Wei struct {
	n uint256.Int
}

// Zero returns the zero amount.
func Zero() Wei {
	return Wei{}
}

// FromUint64 returns a Wei amount representing the given value.
func FromUint64(value uint64) Wei {
	var w Wei
	w.n.SetUint64(value)
	return w
}

// FromBig converts a big.Int into a Wei amount. An error is returned if the
// value is negative or does not fit in 256 bits.
func FromBig(value *big.Int) (Wei, error) {
	if value.Sign() < 0 {
		return Wei{}, errors.Errorf("wei amount cannot be negative: %s", value)
	}
	var w Wei
	if overflow := w.n.SetFromBig(value); overflow {
		return Wei{}, ErrOverflow
	}
	return w, nil
}

// Add returns w + other, or ErrOverflow if the sum does not fit in 256 bits.
func (w Wei) Add(other Wei) (Wei, error) {
	var sum Wei
	if _, overflow := sum.n.AddOverflow(&w.n, &other.n); overflow {
		return Wei{}, ErrOverflow
	}
	return sum, nil
}

// MulUint64 returns w × multiplier, or ErrOverflow if the product does not
// fit in 256 bits.
func (w Wei) MulUint64(multiplier uint64) (Wei, error) {
	var product Wei
	var m uint256.Int
	m.SetUint64(multiplier)
	if _, overflow := product.n.MulOverflow(&w.n, &m); overflow {
		return Wei{}, ErrOverflow
	}
	return product, nil
}

// DivUint64 returns w / divisor, truncated toward zero. Division by zero
// returns the zero amount, matching unsigned integer division semantics of
// the underlying library.
func (w Wei) DivUint64(divisor uint64) Wei {
	var quotient Wei
	var d uint256.Int
	d.SetUint64(divisor)
	quotient.n.Div(&w.n, &d)
	return quotient
}

// Cmp compares w and other and returns -1, 0 or 1.
func (w Wei) Cmp(other Wei) int {
	return w.n.Cmp(&other.n)
}

// IsZero returns whether w is the zero amount.
func (w Wei) IsZero() bool {
	return w.n.IsZero()
}

// ToBig returns the amount as a new big.Int.
func (w Wei) ToBig() *big.Int {
	return w.n.ToBig()
}

// Bytes returns the minimal big-endian representation of the amount. The
// zero amount returns an empty slice.
func (w Wei) Bytes() []byte {
	return w.n.Bytes()
}

// SetBytes interprets the given big-endian slice as an amount. An error is
// returned for slices longer than 32 bytes.
func SetBytes(data []byte) (Wei, error) {
	if len(data) > 32 {
		return Wei{}, errors.Errorf("wei amount encoding is %d bytes, max 32", len(data))
	}
	var w Wei
	w.n.SetBytes(data)
	return w, nil
}

// String returns the amount as a decimal string.
func (w Wei) String() string {
	return w.n.ToBig().String()
}

// HexString returns the amount as a 0x-prefixed hexadecimal quantity.
func (w Wei) HexString() string {
	return fmt.Sprintf("%#x", w.n.ToBig())
}
