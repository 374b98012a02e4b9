package brc20

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/gaze-network/brc20-ledger/modules/brc20/internal/entity"
	"github.com/gaze-network/brc20-ledger/modules/brc20/internal/events"
	"github.com/gaze-network/uint128"
	"github.com/stretchr/testify/assert"
)

func TestBlockEventHash(t *testing.T) {
	empty := sha256.Sum256(nil)
	assert.Equal(t, empty[:], blockEventHash(nil))

	records := []*entity.EventRecord{
		{
			InscriptionId: inscriptionId(1),
			Event:         &events.MintInscribe{MintedPkScript: alicePkScript, Tick: "ordi", OriginalTick: "ordi", Amount: uint128.From64(100)},
		},
		{
			InscriptionId: inscriptionId(2),
			Decimals:      2,
			Event:         &events.TransferInscribe{SourcePkScript: alicePkScript, Tick: "ordi", OriginalTick: "ordi", Amount: uint128.From64(150)},
		},
	}
	expected := sha256.Sum256([]byte(
		"mint-inscribe;" + inscriptionId(1) + ";" + alicePkScript + ";ordi;ordi;100;" +
			"|" +
			"transfer-inscribe;" + inscriptionId(2) + ";" + alicePkScript + ";ordi;ordi;1.50",
	))
	assert.Equal(t, expected[:], blockEventHash(records))

	// order matters
	reversed := []*entity.EventRecord{records[1], records[0]}
	assert.NotEqual(t, blockEventHash(records), blockEventHash(reversed))
}

func TestCumulativeEventHash(t *testing.T) {
	first := blockEventHash(nil)
	assert.Equal(t, first, cumulativeEventHash(nil, first), "the first block starts the chain with its own hash")

	second := sha256.Sum256([]byte("block 2"))
	expected := sha256.Sum256([]byte(hex.EncodeToString(first) + hex.EncodeToString(second[:])))
	assert.Equal(t, expected[:], cumulativeEventHash(first, second[:]))
}
