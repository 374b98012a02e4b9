package decimals

import (
	"math/big"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/brc20-ledger/common/errs"
	"github.com/gaze-network/uint128"
	"github.com/shopspring/decimal"
)

// MaxDecimals is the largest number of fractional digits an amount may carry.
const MaxDecimals = 18

// FormatUint128 renders a minimal-unit amount as a fixed-point string with exactly
// `decimals` fractional digits, e.g. (150, 2) -> "1.50". No trailing zero is trimmed.
func FormatUint128(amount uint128.Uint128, decimals uint16) string {
	digits := amount.String()
	if decimals == 0 {
		return digits
	}
	d := int(decimals)
	if len(digits) <= d {
		digits = strings.Repeat("0", d-len(digits)+1) + digits
	}
	return digits[:len(digits)-d] + "." + digits[len(digits)-d:]
}

// ParseUint128 parses a positive decimal string into minimal units of a token with the given decimals.
// The string must be digits with at most one inner dot, and carry at most `decimals` fractional digits.
func ParseUint128(s string, decimals uint16) (uint128.Uint128, error) {
	if s == "" {
		return uint128.Zero, errors.Wrap(errs.InvalidArgument, "empty number")
	}
	integer, fraction, hasDot := strings.Cut(s, ".")
	if hasDot && (integer == "" || fraction == "") {
		return uint128.Zero, errors.Wrapf(errs.InvalidArgument, "invalid number %q: dot at the start or end", s)
	}
	if !isDigits(integer) || !isDigits(fraction) {
		return uint128.Zero, errors.Wrapf(errs.InvalidArgument, "invalid number %q", s)
	}
	if len(fraction) > int(decimals) {
		return uint128.Zero, errors.Wrapf(errs.InvalidArgument, "invalid number %q: more than %d decimals", s, decimals)
	}

	value, ok := new(big.Int).SetString(integer+fraction+strings.Repeat("0", int(decimals)-len(fraction)), 10)
	if !ok {
		return uint128.Zero, errors.Wrapf(errs.InvalidArgument, "invalid number %q", s)
	}
	if value.BitLen() > 128 {
		return uint128.Zero, errors.Wrapf(errs.OverflowUint128, "number %q overflows", s)
	}
	result, err := uint128.FromBig(value)
	if err != nil {
		return uint128.Zero, errors.Wrapf(errs.OverflowUint128, "number %q overflows", s)
	}
	return result, nil
}

// ToDecimal converts a minimal-unit amount to decimal.Decimal for display.
func ToDecimal(amount uint128.Uint128, decimals uint16) decimal.Decimal {
	return decimal.NewFromBigInt(amount.Big(), -int32(decimals))
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
