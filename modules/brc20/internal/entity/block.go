package entity

import "github.com/gaze-network/brc20-ledger/core/types"

// Block is the processor input: a block header with its inscription actions.
type Block struct {
	Header    types.BlockHeader
	Transfers []*BRC20Tx
}

func (b *Block) BlockHeader() types.BlockHeader {
	return b.Header
}
