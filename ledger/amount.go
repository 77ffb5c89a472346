package ledger

import (
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("ledger: invalid amount")

// ParseAmount converts a Go numeric value into a decimal amount. Integers of
// any width, finite floats and decimals are accepted; nil, strings, booleans,
// NaN and infinities are rejected with ErrInvalidAmount.
func ParseAmount(v any) (decimal.Decimal, error) {
	switch n := v.(type) {
	case int:
		return decimal.NewFromInt(int64(n)), nil
	case int8:
		return decimal.NewFromInt(int64(n)), nil
	case int16:
		return decimal.NewFromInt(int64(n)), nil
	case int32:
		return decimal.NewFromInt32(n), nil
	case int64:
		return decimal.NewFromInt(n), nil
	case uint:
		return fromUint(uint64(n)), nil
	case uint8:
		return fromUint(uint64(n)), nil
	case uint16:
		return fromUint(uint64(n)), nil
	case uint32:
		return fromUint(uint64(n)), nil
	case uint64:
		return fromUint(n), nil
	case float32:
		if math.IsNaN(float64(n)) || math.IsInf(float64(n), 0) {
			return decimal.Decimal{}, fmt.Errorf("%w: %v is not finite", ErrInvalidAmount, n)
		}
		return decimal.NewFromFloat32(n), nil
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return decimal.Decimal{}, fmt.Errorf("%w: %v is not finite", ErrInvalidAmount, n)
		}
		return decimal.NewFromFloat(n), nil
	case decimal.Decimal:
		return n, nil
	case *decimal.Decimal:
		if n == nil {
			return decimal.Decimal{}, fmt.Errorf("%w: nil", ErrInvalidAmount)
		}
		return *n, nil
	case nil:
		return decimal.Decimal{}, fmt.Errorf("%w: nil", ErrInvalidAmount)
	default:
		return decimal.Decimal{}, fmt.Errorf("%w: %v (%T) is not a numerical value", ErrInvalidAmount, v, v)
	}
}

func fromUint(n uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(n), 0)
}
