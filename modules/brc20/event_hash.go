package brc20

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/gaze-network/brc20-ledger/modules/brc20/internal/entity"
	"github.com/samber/lo"
)

const eventHashSeparator = "|"

// blockEventHash returns sha256 of the block's canonical records joined by "|".
func blockEventHash(records []*entity.EventRecord) []byte {
	lines := lo.Map(records, func(record *entity.EventRecord, _ int) string {
		return record.Line()
	})
	hash := sha256.Sum256([]byte(strings.Join(lines, eventHashSeparator)))
	return hash[:]
}

// cumulativeEventHash returns sha256(hex(prev) || hex(eventHash)).
// The first indexed block starts the chain with its own event hash.
func cumulativeEventHash(prev []byte, eventHash []byte) []byte {
	if len(prev) == 0 {
		return eventHash
	}
	hash := sha256.Sum256([]byte(hex.EncodeToString(prev) + hex.EncodeToString(eventHash)))
	return hash[:]
}
