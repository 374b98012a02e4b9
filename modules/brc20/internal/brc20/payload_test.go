package brc20

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/brc20-ledger/common"
	"github.com/gaze-network/uint128"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTick(t *testing.T) {
	mainnet := NewRules(common.NetworkMainnet, true)
	phaseOne := mainnet.Heights.ProgPhaseOne

	testcases := []struct {
		name     string
		tick     string
		height   uint64
		expected string
		err      error
	}{
		{name: "four_bytes", tick: "ORDI", height: 800000, expected: "ordi"},
		{name: "five_bytes", tick: "PIZZA", height: 800000, expected: "pizza"},
		{name: "multibyte_four_bytes", tick: "😀", height: 800000, expected: "😀"},
		{name: "empty", tick: "", height: 800000, err: ErrEmptyTick},
		{name: "null_byte", tick: "or\x00i", height: 800000, err: ErrInvalidTick},
		{name: "three_bytes", tick: "abc", height: 800000, err: ErrInvalidTickLength},
		{name: "seven_bytes", tick: "abcdefg", height: phaseOne, err: ErrInvalidTickLength},
		{name: "six_bytes_before_phase_one", tick: "abcdef", height: phaseOne - 1, err: ErrInvalidTickLength},
		{name: "six_bytes_at_phase_one", tick: "ABC-EF", height: phaseOne, expected: "abc-ef"},
		{name: "six_bytes_with_symbol", tick: "abc_ef", height: phaseOne, err: ErrInvalidTickLength},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			tick, err := mainnet.NormalizeTick(tc.tick, tc.height)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, tick)
		})
	}
}

func TestParseDecimals(t *testing.T) {
	testcases := []struct {
		name     string
		input    string
		present  bool
		expected uint16
		err      bool
	}{
		{name: "absent", present: false, expected: DefaultDecimals},
		{name: "zero", input: "0", present: true, expected: 0},
		{name: "eight", input: "8", present: true, expected: 8},
		{name: "max", input: "18", present: true, expected: 18},
		{name: "too_large", input: "19", present: true, err: true},
		{name: "empty", input: "", present: true, err: true},
		{name: "negative", input: "-1", present: true, err: true},
		{name: "fraction", input: "8.0", present: true, err: true},
		{name: "overflow", input: "256", present: true, err: true},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			dec, err := ParseDecimals(tc.input, tc.present)
			if tc.err {
				assert.ErrorIs(t, err, ErrInvalidDec)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, dec)
		})
	}
}

func TestParseAmount(t *testing.T) {
	testcases := []struct {
		name      string
		input     string
		decimals  uint16
		allowZero bool
		expected  uint128.Uint128
		err       error
	}{
		{name: "integer", input: "1000", decimals: 0, expected: uint128.From64(1000)},
		{name: "scaled", input: "1.5", decimals: 8, expected: uint128.From64(150000000)},
		{name: "max", input: "18446744073709551615", decimals: 18, expected: MaxAmount},
		{name: "above_max", input: "18446744073709551616", decimals: 18, err: ErrNumberOverflow},
		{name: "zero_not_allowed", input: "0", decimals: 18, err: ErrZeroAmt},
		{name: "zero_allowed", input: "0", decimals: 18, allowZero: true, expected: uint128.Zero},
		{name: "too_many_decimals", input: "1.123", decimals: 2, err: ErrInvalidAmt},
		{name: "leading_dot", input: ".5", decimals: 2, err: ErrInvalidAmt},
		{name: "trailing_dot", input: "5.", decimals: 2, err: ErrInvalidAmt},
		{name: "sign", input: "+5", decimals: 2, err: ErrInvalidAmt},
		{name: "empty", input: "", decimals: 2, err: ErrInvalidAmt},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			amount, err := ParseAmount(tc.input, tc.decimals, tc.allowZero)
			if tc.err != nil {
				assert.True(t, errors.Is(err, tc.err), "expected %v, got %v", tc.err, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, amount)
		})
	}
}

func TestPredeployHash(t *testing.T) {
	const (
		tick     = "abcdef"
		salt     = "00ff"
		pkScript = "0014a1b2c3d4e5f60718293a4b5c6d7e8f90a1b2c3d4"
	)
	raw, err := hex.DecodeString(salt + pkScript)
	require.NoError(t, err)
	first := sha256.Sum256(append([]byte(tick), raw...))
	second := sha256.Sum256(first[:])

	hash, err := PredeployHash(tick, salt, pkScript)
	require.NoError(t, err)
	assert.Equal(t, hex.EncodeToString(second[:]), hash)

	other, err := PredeployHash(tick, "01ff", pkScript)
	require.NoError(t, err)
	assert.NotEqual(t, hash, other)

	_, err = PredeployHash(tick, "zz", pkScript)
	assert.Error(t, err)
	_, err = PredeployHash(tick, salt, "0")
	assert.Error(t, err)
}

func TestRules(t *testing.T) {
	t.Run("mainnet", func(t *testing.T) {
		rules := NewRules(common.NetworkMainnet, true)
		assert.False(t, rules.IsSelfMintActive(837089))
		assert.True(t, rules.IsSelfMintActive(837090))
		assert.False(t, rules.IsProgActive(912689))
		assert.True(t, rules.IsProgActive(912690))
		assert.False(t, rules.IsPredeployActive(912686))
		assert.True(t, rules.IsPredeployActive(912687))
		assert.True(t, rules.IsPredeployMature(100, 103))
		assert.False(t, rules.IsPredeployMature(100, 102))

		// only 6-byte tickers can be deposited until every ticker is allowed
		assert.False(t, rules.CanDepositToProg("ordi", 912690))
		assert.True(t, rules.CanDepositToProg("abcdef", 912690))
		assert.False(t, rules.CanDepositToProg("abcdef", 912689))
	})
	t.Run("prog_disabled", func(t *testing.T) {
		rules := NewRules(common.NetworkMainnet, false)
		assert.False(t, rules.IsProgActive(1000000))
		assert.False(t, rules.CanDepositToProg("abcdef", 1000000))
		assert.True(t, rules.IsSixByteTickActive(912690))
	})
	t.Run("signet_all_tickers", func(t *testing.T) {
		rules := NewRules(common.NetworkSignet, true)
		assert.True(t, rules.CanDepositToProg("ordi", 230000))
		assert.False(t, rules.CanDepositToProg("ordi", 229999))
	})
	t.Run("regtest", func(t *testing.T) {
		rules := NewRules(common.NetworkRegtest, true)
		assert.True(t, rules.IsSelfMintActive(0))
		assert.True(t, rules.IsProgActive(0))
		assert.True(t, rules.IsPredeployActive(0))
		assert.True(t, rules.CanDepositToProg("ordi", 0))
	})
}

func TestStartingBlockHeader(t *testing.T) {
	assert.Equal(t, int64(779831), StartingBlockHeader(common.NetworkMainnet).Height)
	assert.Equal(t, int64(-1), StartingBlockHeader(common.NetworkRegtest).Height)
	assert.Equal(t, common.ZeroHash, StartingBlockHeader(common.NetworkRegtest).Hash)
}
