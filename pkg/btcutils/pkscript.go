package btcutils

import (
	"encoding/hex"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/txscript"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/brc20-ledger/common"
	"github.com/gaze-network/brc20-ledger/common/errs"
)

// ToPkScript converts a string of address or pkscript to bytes of pkscript
func ToPkScript(network common.Network, from string) ([]byte, error) {
	if from == "" {
		return nil, errors.Wrap(errs.InvalidArgument, "empty input")
	}
	if !network.IsSupported() {
		return nil, errors.Wrapf(errs.InvalidArgument, "invalid network %q", network)
	}

	// attempt to parse as address
	address, err := btcutil.DecodeAddress(from, network.ChainParams())
	if err == nil {
		pkScript, err := txscript.PayToAddrScript(address)
		if err != nil {
			return nil, errors.Wrap(err, "error converting address to pkscript")
		}
		return pkScript, nil
	}

	// attempt to parse as pkscript
	pkScript, err := hex.DecodeString(from)
	if err != nil {
		return nil, errors.Wrap(errs.InvalidArgument, "input is neither an address nor a hex pkscript")
	}

	return pkScript, nil
}

// PkScriptToAddress returns the address from the given pkScript.
// It fails if the pkScript is not a standard single-address script.
func PkScriptToAddress(pkScript []byte, network common.Network) (string, error) {
	if !network.IsSupported() {
		return "", errors.Wrapf(errs.InvalidArgument, "invalid network %q", network)
	}
	_, addrs, _, err := txscript.ExtractPkScriptAddrs(pkScript, network.ChainParams())
	if err != nil {
		return "", errors.Wrap(err, "error extracting addresses from pkscript")
	}
	if len(addrs) != 1 {
		return "", errors.Wrapf(errs.Unsupported, "invalid number of addresses extracted from pkscript: %d", len(addrs))
	}
	return addrs[0].EncodeAddress(), nil
}

// ResolveWallet returns the wallet address of pkScript, or an empty string
// if the script is not a recognized payable form. Unresolvable scripts are common
// (burns, non-standard scripts) and are not errors.
func ResolveWallet(pkScript []byte, network common.Network) string {
	address, err := PkScriptToAddress(pkScript, network)
	if err != nil {
		return ""
	}
	return address
}

// ResolveWalletHex is ResolveWallet for a hex encoded pkScript.
func ResolveWalletHex(pkScriptHex string, network common.Network) string {
	pkScript, err := hex.DecodeString(pkScriptHex)
	if err != nil || len(pkScript) == 0 {
		return ""
	}
	return ResolveWallet(pkScript, network)
}
