package entity

import "github.com/gaze-network/uint128"

// Balance is the holding of one pkScript in one ticker.
// AvailableBalance <= OverallBalance, the difference is locked in pending transfer inscriptions.
type Balance struct {
	Tick             string
	PkScript         string // hex
	Wallet           string
	OverallBalance   uint128.Uint128
	AvailableBalance uint128.Uint128
	BlockHeight      uint64
}

// TransferableBalance returns the locked part of the balance.
func (b *Balance) TransferableBalance() uint128.Uint128 {
	return b.OverallBalance.Sub(b.AvailableBalance)
}
