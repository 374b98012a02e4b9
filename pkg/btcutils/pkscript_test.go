package btcutils

import (
	"encoding/hex"
	"testing"

	"github.com/Cleverse/go-utilities/utils"
	"github.com/gaze-network/brc20-ledger/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveWallet(t *testing.T) {
	testcases := []struct {
		name     string
		network  common.Network
		pkScript string
		expected string
	}{
		{
			name:     "p2pkh_mainnet",
			network:  common.NetworkMainnet,
			pkScript: "76a914000000000000000000000000000000000000000088ac",
			expected: "1111111111111111111114oLvT2",
		},
		{
			name:     "p2wpkh_mainnet",
			network:  common.NetworkMainnet,
			pkScript: "0014751e76e8199196d454941c45d1b3a323f1433bd6",
			expected: "bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4",
		},
		{
			name:     "p2wpkh_testnet",
			network:  common.NetworkTestnet,
			pkScript: "0014751e76e8199196d454941c45d1b3a323f1433bd6",
			expected: "tb1qw508d6qejxtdg4y5r3zarvary0c5xw7kxpjzsx",
		},
		{
			name:     "p2tr_mainnet",
			network:  common.NetworkMainnet,
			pkScript: "512079be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798",
			expected: "bc1p0xlxvlhemja6c4dqv22uapctqupfhlxm9h8z3k2e72q4k9hcz7vqzk5jj0",
		},
		{
			name:     "op_return",
			network:  common.NetworkMainnet,
			pkScript: "6a09425243323050524f47",
			expected: "",
		},
		{
			name:     "empty_script",
			network:  common.NetworkMainnet,
			pkScript: "",
			expected: "",
		},
		{
			name:     "unsupported_network",
			network:  common.Network("foo"),
			pkScript: "0014751e76e8199196d454941c45d1b3a323f1433bd6",
			expected: "",
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			pkScript := utils.Must(hex.DecodeString(tc.pkScript))
			assert.Equal(t, tc.expected, ResolveWallet(pkScript, tc.network))
			assert.Equal(t, tc.expected, ResolveWalletHex(tc.pkScript, tc.network))

			// resolving is idempotent
			assert.Equal(t, ResolveWallet(pkScript, tc.network), ResolveWallet(pkScript, tc.network))
		})
	}
}

func TestToPkScript(t *testing.T) {
	t.Run("from_address", func(t *testing.T) {
		pkScript, err := ToPkScript(common.NetworkMainnet, "bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4")
		require.NoError(t, err)
		assert.Equal(t, "0014751e76e8199196d454941c45d1b3a323f1433bd6", hex.EncodeToString(pkScript))
	})
	t.Run("from_hex", func(t *testing.T) {
		pkScript, err := ToPkScript(common.NetworkMainnet, "6a09425243323050524f47")
		require.NoError(t, err)
		assert.Equal(t, "6a09425243323050524f47", hex.EncodeToString(pkScript))
	})
	t.Run("invalid", func(t *testing.T) {
		_, err := ToPkScript(common.NetworkMainnet, "not-an-address")
		assert.Error(t, err)

		_, err = ToPkScript(common.NetworkMainnet, "")
		assert.Error(t, err)
	})
}
