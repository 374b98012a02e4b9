package types

import (
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// BlockHeader is the part of a block header the indexers rely on.
// PrevBlock is the hash the data source reports for Height-1.
type BlockHeader struct {
	Hash      chainhash.Hash
	Height    int64
	PrevBlock chainhash.Hash
	Timestamp time.Time
}
