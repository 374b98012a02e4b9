package decimals

import (
	"fmt"
	"math/big"
	"math/rand"
	"strings"
	"testing"

	"github.com/gaze-network/brc20-ledger/common/errs"
	"github.com/gaze-network/uint128"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatUint128(t *testing.T) {
	testcases := []struct {
		amount   uint128.Uint128
		decimals uint16
		expected string
	}{
		{uint128.From64(150), 2, "1.50"},
		{uint128.From64(50000000000), 8, "500.00000000"},
		{uint128.From64(1), 18, "0.000000000000000001"},
		{uint128.From64(0), 3, "0.000"},
		{uint128.From64(0), 0, "0"},
		{uint128.From64(12345678), 0, "12345678"},
		{uint128.From64(100), 2, "1.00"},
		{uint128.From64(99), 2, "0.99"},
		{uint128.Max, 0, "340282366920938463463374607431768211455"},
		{uint128.Max, 18, "340282366920938463463.374607431768211455"},
	}
	for _, tc := range testcases {
		t.Run(fmt.Sprintf("%s_%d", tc.amount, tc.decimals), func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatUint128(tc.amount, tc.decimals))
		})
	}
}

// FormatUint128 must agree with an exact big.Int reference over the full 128-bit range.
func TestFormatUint128Exact(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	amounts := []uint128.Uint128{uint128.Zero, uint128.From64(1), uint128.Max, uint128.New(0, 1)}
	for i := 0; i < 200; i++ {
		amounts = append(amounts, uint128.New(rng.Uint64(), rng.Uint64()>>uint(rng.Intn(64))))
	}

	for decimals := uint16(0); decimals <= MaxDecimals; decimals++ {
		scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
		for _, amount := range amounts {
			quo, rem := new(big.Int).QuoRem(amount.Big(), scale, new(big.Int))
			expected := quo.String()
			if decimals > 0 {
				frac := rem.String()
				expected += "." + strings.Repeat("0", int(decimals)-len(frac)) + frac
			}
			require.Equal(t, expected, FormatUint128(amount, decimals), "amount %s decimals %d", amount, decimals)

			// rendering is reversible given the decimals value
			parsed, err := ParseUint128(expected, decimals)
			require.NoError(t, err)
			require.True(t, amount.Equals(parsed), "amount %s decimals %d", amount, decimals)
		}
	}
}

func TestParseUint128(t *testing.T) {
	testcases := []struct {
		name     string
		input    string
		decimals uint16
		expected uint128.Uint128
		err      error
	}{
		{name: "integer", input: "21000000", decimals: 8, expected: uint128.From64(2100000000000000)},
		{name: "fraction", input: "1.5", decimals: 2, expected: uint128.From64(150)},
		{name: "full_fraction", input: "500.00000000", decimals: 8, expected: uint128.From64(50000000000)},
		{name: "zero_decimals", input: "1000", decimals: 0, expected: uint128.From64(1000)},
		{name: "zero", input: "0", decimals: 18, expected: uint128.Zero},
		{name: "leading_zeros", input: "0001.10", decimals: 2, expected: uint128.From64(110)},
		{name: "empty", input: "", decimals: 8, err: errs.InvalidArgument},
		{name: "leading_dot", input: ".5", decimals: 8, err: errs.InvalidArgument},
		{name: "trailing_dot", input: "5.", decimals: 8, err: errs.InvalidArgument},
		{name: "two_dots", input: "1.2.3", decimals: 8, err: errs.InvalidArgument},
		{name: "negative", input: "-1", decimals: 8, err: errs.InvalidArgument},
		{name: "plus_sign", input: "+1", decimals: 8, err: errs.InvalidArgument},
		{name: "exponent", input: "1e5", decimals: 8, err: errs.InvalidArgument},
		{name: "space", input: " 1", decimals: 8, err: errs.InvalidArgument},
		{name: "too_many_decimals", input: "1.123", decimals: 2, err: errs.InvalidArgument},
		{name: "fraction_on_zero_decimals", input: "1.0", decimals: 0, err: errs.InvalidArgument},
		{name: "overflow", input: "340282366920938463463374607431768211456", decimals: 0, err: errs.OverflowUint128},
		{name: "max", input: "340282366920938463463374607431768211455", decimals: 0, expected: uint128.Max},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := ParseUint128(tc.input, tc.decimals)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected.String(), actual.String())
		})
	}
}

func TestToDecimal(t *testing.T) {
	assert.Equal(t, "1.5", ToDecimal(uint128.From64(150), 2).String())
	assert.Equal(t, "21000000", ToDecimal(uint128.From64(2100000000000000), 8).String())
	assert.Equal(t, "0", ToDecimal(uint128.Zero, 18).String())
}
