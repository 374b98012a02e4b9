package entity

import (
	"time"

	"github.com/gaze-network/uint128"
)

// Ticker is a deployed token. Supplies are minimal units of Decimals.
type Ticker struct {
	Tick         string // lower-cased tick, unique key
	OriginalTick string
	Decimals     uint16
	MaxSupply    uint128.Uint128
	LimitPerMint uint128.Uint128
	IsSelfMint   bool

	DeployInscriptionId string
	DeployBlockHeight   uint64
	DeployedAt          time.Time

	// RemainingSupply + minted amount == MaxSupply
	RemainingSupply uint128.Uint128
	BurnedSupply    uint128.Uint128

	// UpdatedAtHeight is the height of the latest supply change.
	UpdatedAtHeight uint64
}

// MintedSupply returns the amount issued so far.
func (t *Ticker) MintedSupply() uint128.Uint128 {
	return t.MaxSupply.Sub(t.RemainingSupply)
}
