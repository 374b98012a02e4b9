package usecase

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/brc20-ledger/core/types"
	"github.com/gaze-network/brc20-ledger/modules/brc20/internal/entity"
)

func (u *Usecase) GetLatestBlock(ctx context.Context) (types.BlockHeader, error) {
	blockHeader, err := u.dg.GetLatestBlock(ctx)
	if err != nil {
		return types.BlockHeader{}, errors.Wrap(err, "failed to get latest block")
	}
	return blockHeader, nil
}

func (u *Usecase) GetIndexedBlockByHeight(ctx context.Context, height int64) (*entity.IndexedBlock, error) {
	block, err := u.dg.GetIndexedBlockByHeight(ctx, height)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get indexed block by height")
	}
	return block, nil
}
