package brc20

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/brc20-ledger/common/errs"
	"github.com/gaze-network/brc20-ledger/core/types"
	"github.com/gaze-network/brc20-ledger/modules/brc20/internal/datagateway"
	"github.com/gaze-network/brc20-ledger/modules/brc20/internal/entity"
	"github.com/gaze-network/brc20-ledger/pkg/logger"
	"github.com/gaze-network/brc20-ledger/pkg/logger/slogx"
)

// ErrReorgHalted is returned when the chain index disagrees with the local checkpoint below a block.
var ErrReorgHalted = errors.Wrap(errs.Unrecoverable, "reorg halted")

// checkCheckpoint reports whether header is already indexed. A block that is not indexed must
// directly follow the checkpoint, unless nothing is indexed yet.
func checkCheckpoint(ctx context.Context, dg datagateway.BRC20ReaderDataGateway, header types.BlockHeader) (indexed bool, err error) {
	checkpoint, err := dg.GetLatestBlock(ctx)
	if err != nil {
		if errors.Is(err, errs.NotFound) {
			return false, nil
		}
		return false, errors.Wrap(err, "failed to get latest indexed block")
	}
	if header.Height <= checkpoint.Height {
		return true, nil
	}
	if header.Height != checkpoint.Height+1 {
		return false, errors.Wrapf(errs.InternalError, "block %d does not follow checkpoint %d", header.Height, checkpoint.Height)
	}
	return false, nil
}

// checkReorg compares the checkpoint of the block below header with the hash the chain index reports for it.
// It returns the checkpoint, or nil when nothing is indexed below header.
func checkReorg(ctx context.Context, dg datagateway.BRC20ReaderDataGateway, header types.BlockHeader) (*entity.IndexedBlock, error) {
	prev, err := dg.GetIndexedBlockByHeight(ctx, header.Height-1)
	if err != nil {
		if errors.Is(err, errs.NotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to get previous indexed block")
	}
	if prev.Hash != header.PrevBlock {
		logger.ErrorContext(ctx, "Block hash mismatch with local checkpoint, reorg detected",
			slogx.Int64("height", header.Height-1),
			slogx.Stringer("localHash", prev.Hash),
			slogx.Stringer("remoteHash", header.PrevBlock),
		)
		return nil, errors.Wrapf(ErrReorgHalted, "block %d: local hash %s, remote hash %s", header.Height-1, prev.Hash, header.PrevBlock)
	}
	return prev, nil
}
