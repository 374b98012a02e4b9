package brc20

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/brc20-ledger/modules/brc20/internal/entity"
	"github.com/gaze-network/brc20-ledger/modules/brc20/internal/ledger"
	"github.com/gaze-network/brc20-ledger/pkg/logger"
	"github.com/gaze-network/brc20-ledger/pkg/logger/slogx"
)

// Process implements indexer.Processor.
// Every block is committed on its own: a failing block leaves the blocks before it indexed.
func (p *Processor) Process(ctx context.Context, blocks []*entity.Block) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, block := range blocks {
		ctx := logger.WithContext(ctx, slogx.Int64("height", block.Header.Height))
		logger.DebugContext(ctx, "Processing new block", slogx.Int("transfers", len(block.Transfers)))

		t := startBlockTimer(uint64(block.Header.Height))
		applied, err := p.processBlock(ctx, block)
		if err != nil {
			return errors.Wrapf(err, "failed to process block %d", block.Header.Height)
		}
		if !applied {
			logger.DebugContext(ctx, "Block is already indexed, skipping")
			continue
		}
		t.stop(ctx, p.brc20Dg)

		logger.DebugContext(ctx, "Inserted new block")
	}
	return nil
}

func (p *Processor) processBlock(ctx context.Context, block *entity.Block) (applied bool, err error) {
	brc20DgTx, err := p.brc20Dg.BeginBRC20Tx(ctx)
	if err != nil {
		return false, errors.Wrap(err, "failed to begin transaction")
	}
	defer func() {
		if err := brc20DgTx.Rollback(ctx); err != nil {
			logger.WarnContext(ctx, "failed to rollback transaction",
				slogx.Error(err),
				slogx.String("event", "rollback_brc20_insertion"),
			)
		}
	}()

	header := block.Header
	indexed, err := checkCheckpoint(ctx, brc20DgTx, header)
	if err != nil {
		return false, errors.WithStack(err)
	}
	if indexed {
		return false, nil
	}
	prev, err := checkReorg(ctx, brc20DgTx, header)
	if err != nil {
		return false, errors.WithStack(err)
	}

	records, err := p.generator.Generate(ctx, brc20DgTx, header, block.Transfers)
	if err != nil {
		return false, errors.Wrap(err, "failed to generate events")
	}
	l := ledger.New(brc20DgTx, uint64(header.Height), header.Timestamp)
	if err := p.processor.Apply(ctx, l, records); err != nil {
		return false, errors.Wrap(err, "failed to apply events")
	}

	// the checkpoint is written last
	eventHash := blockEventHash(records)
	var prevCumulative []byte
	if prev != nil {
		prevCumulative = prev.CumulativeEventHash
	}
	if err := brc20DgTx.CreateIndexedBlock(ctx, &entity.IndexedBlock{
		Height:              uint64(header.Height),
		Hash:                header.Hash,
		EventHash:           eventHash,
		CumulativeEventHash: cumulativeEventHash(prevCumulative, eventHash),
	}); err != nil {
		return false, errors.Wrap(err, "failed to create indexed block")
	}

	if err := brc20DgTx.Commit(ctx); err != nil {
		return false, errors.Wrap(err, "failed to commit transaction")
	}
	logger.DebugContext(ctx, "Applied block events", slogx.Int("events", len(records)))
	return true, nil
}
