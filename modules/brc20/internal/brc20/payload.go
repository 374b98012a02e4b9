package brc20

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/Cleverse/go-utilities/utils"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/brc20-ledger/pkg/decimals"
	"github.com/gaze-network/uint128"
)

const (
	// ProgPkScript is the OP_RETURN "BRC20PROG" output that deposits into the programmable module.
	ProgPkScript     = "6a09425243323050524f47"
	OpReturnPkScript = "6a"

	DefaultDecimals = decimals.MaxDecimals

	// PredeployDelay is the number of blocks a predeploy must precede its deploy.
	PredeployDelay = 3
)

// MaxAmount is the largest amount of any numeric field, (2^64-1) * 10^18.
var MaxAmount = utils.Must(uint128.FromString("18446744073709551615000000000000000000"))

var (
	ErrEmptyTick         = errors.New("empty tick")
	ErrInvalidTick       = errors.New("invalid tick: contains null byte")
	ErrInvalidTickLength = errors.New("invalid tick length: must be 4 or 5 bytes, or 6 bytes after prog phase one")
	ErrInvalidDec        = errors.New("invalid dec")
	ErrInvalidAmt        = errors.New("invalid amount")
	ErrZeroAmt           = errors.New("amount cannot be zero")
	ErrNumberOverflow    = errors.New("number overflow: max value is (2^64-1) * 10^18")
)

// NormalizeTick validates the tick of a record at height and returns its lower-cased form.
func (r Rules) NormalizeTick(originalTick string, height uint64) (string, error) {
	if originalTick == "" {
		return "", errors.WithStack(ErrEmptyTick)
	}
	tick := strings.ToLower(originalTick)
	if strings.ContainsRune(originalTick, 0) || strings.ContainsRune(tick, 0) {
		return "", errors.WithStack(ErrInvalidTick)
	}
	switch len(originalTick) {
	case 4, 5:
		return tick, nil
	case 6:
		if isAlphanumericOrDash(tick) && r.IsSixByteTickActive(height) {
			return tick, nil
		}
	}
	return "", errors.WithStack(ErrInvalidTickLength)
}

// ParseDecimals parses the dec field of a deploy. An absent field defaults to DefaultDecimals.
func ParseDecimals(s string, present bool) (uint16, error) {
	if !present {
		return DefaultDecimals, nil
	}
	if s == "" || strings.IndexFunc(s, func(c rune) bool { return c < '0' || c > '9' }) >= 0 {
		return 0, errors.Wrapf(ErrInvalidDec, "%q", s)
	}
	dec, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidDec, "%q", s)
	}
	if dec > decimals.MaxDecimals {
		return 0, errors.Wrapf(ErrInvalidDec, "%d is larger than %d", dec, decimals.MaxDecimals)
	}
	return uint16(dec), nil
}

// ParseAmount parses a numeric field into minimal units of a ticker with dec decimals.
func ParseAmount(s string, dec uint16, allowZero bool) (uint128.Uint128, error) {
	amount, err := decimals.ParseUint128(s, dec)
	if err != nil {
		return uint128.Zero, errors.Wrap(ErrInvalidAmt, err.Error())
	}
	if amount.Cmp(MaxAmount) > 0 {
		return uint128.Zero, errors.WithStack(ErrNumberOverflow)
	}
	if amount.IsZero() && !allowZero {
		return uint128.Zero, errors.WithStack(ErrZeroAmt)
	}
	return amount, nil
}

// PredeployHash returns hex(sha256(sha256(originalTick || salt || pkScript))), where salt and pkScript are hex.
func PredeployHash(originalTick string, saltHex string, pkScriptHex string) (string, error) {
	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return "", errors.Wrap(err, "invalid salt")
	}
	pkScript, err := hex.DecodeString(pkScriptHex)
	if err != nil {
		return "", errors.Wrap(err, "invalid pkscript")
	}
	data := make([]byte, 0, len(originalTick)+len(salt)+len(pkScript))
	data = append(data, originalTick...)
	data = append(data, salt...)
	data = append(data, pkScript...)
	first := sha256.Sum256(data)
	second := sha256.Sum256(first[:])
	return hex.EncodeToString(second[:]), nil
}

func isAlphanumericOrDash(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '-') {
			return false
		}
	}
	return true
}
