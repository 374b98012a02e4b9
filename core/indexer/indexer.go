package indexer

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/brc20-ledger/common/errs"
	"github.com/gaze-network/brc20-ledger/core/datasources"
	"github.com/gaze-network/brc20-ledger/core/types"
	"github.com/gaze-network/brc20-ledger/pkg/logger"
	"github.com/gaze-network/brc20-ledger/pkg/logger/slogx"
)

// PollingInterval is the default polling interval for the indexer polling worker
var PollingInterval = 15 * time.Second

// Make sure to implement the IndexerWorker interface
var _ IndexerWorker = (*Indexer[Input])(nil)

// Indexer generic indexer for fetching and processing data.
// Blocks are handed to the processor strictly in height order, one batch at a time.
type Indexer[T Input] struct {
	Processor    Processor[T]
	Datasource   datasources.Datasource[T]
	currentBlock types.BlockHeader

	quitOnce sync.Once
	quit     chan struct{}
	done     chan struct{}
}

// New create new generic indexer
func New[T Input](processor Processor[T], datasource datasources.Datasource[T]) *Indexer[T] {
	return &Indexer[T]{
		Processor:  processor,
		Datasource: datasource,

		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
}

func (i *Indexer[T]) Shutdown() error {
	return i.ShutdownWithContext(context.Background())
}

func (i *Indexer[T]) ShutdownWithTimeout(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return i.ShutdownWithContext(ctx)
}

func (i *Indexer[T]) ShutdownWithContext(ctx context.Context) (err error) {
	i.quitOnce.Do(func() {
		close(i.quit)
		select {
		case <-i.done:
		case <-time.After(180 * time.Second):
			err = errors.Wrap(errs.Timeout, "indexer shutdown timeout")
		case <-ctx.Done():
			err = errors.Wrap(ctx.Err(), "indexer shutdown context canceled")
		}
	})
	return
}

func (i *Indexer[T]) Run(ctx context.Context) (err error) {
	defer close(i.done)

	ctx = logger.WithContext(ctx,
		slog.String("package", "indexer"),
		slog.String("processor", i.Processor.Name()),
		slog.String("datasource", i.Datasource.Name()),
	)

	i.currentBlock, err = i.Processor.CurrentBlock(ctx)
	if err != nil {
		return errors.Wrap(err, "can't init state, failed to get indexer current block")
	}
	logger.InfoContext(ctx, "Indexer started", slogx.Int64("current_block", i.currentBlock.Height))

	ticker := time.NewTicker(PollingInterval)
	defer ticker.Stop()
	for {
		if err := i.process(ctx); err != nil {
			if errors.Is(err, errs.Unrecoverable) {
				logger.ErrorContext(ctx, "Indexer halted, operator intervention required",
					slogx.String("event", "indexer_halted"),
					slogx.Int64("current_block", i.currentBlock.Height),
					slogx.Error(err),
				)
			} else {
				logger.ErrorContext(ctx, "Indexer failed while processing", slogx.Error(err))
			}
			if err := i.Processor.Shutdown(ctx); err != nil {
				logger.ErrorContext(ctx, "Failed to shutdown processor", slogx.Error(err))
			}
			return errors.Wrap(err, "process failed")
		}

		logger.DebugContext(ctx, "Waiting for next polling interval")
		select {
		case <-i.quit:
			logger.InfoContext(ctx, "Got quit signal, stopping indexer")
			if err := i.Processor.Shutdown(ctx); err != nil {
				logger.ErrorContext(ctx, "Failed to shutdown processor", slogx.Error(err))
				return errors.Wrap(err, "processor shutdown failed")
			}
			return nil
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (i *Indexer[T]) process(ctx context.Context) (err error) {
	// height range to fetch data
	from, to := i.currentBlock.Height+1, int64(-1)

	logger.InfoContext(ctx, "Start fetching input data", slogx.Int64("from", from))
	ch := make(chan []T)
	subscription, err := i.Datasource.FetchAsync(ctx, from, to, ch)
	if err != nil {
		return errors.Wrap(err, "failed to fetch input data")
	}
	defer subscription.Unsubscribe()

	for {
		select {
		case <-i.quit:
			return nil
		case inputs := <-ch:
			if len(inputs) == 0 {
				continue
			}

			startAt := time.Now()
			ctx := logger.WithContext(ctx,
				slogx.Int64("from", inputs[0].BlockHeader().Height),
				slogx.Int64("to", inputs[len(inputs)-1].BlockHeader().Height),
			)

			// blocks at or below the checkpoint were already applied
			inputs = skipIndexed(inputs, i.currentBlock.Height)
			if len(inputs) == 0 {
				continue
			}
			if next := inputs[0].BlockHeader().Height; next != i.currentBlock.Height+1 {
				return errors.Wrapf(errs.InternalError, "input is not continuous, current block: %d, next input: %d", i.currentBlock.Height, next)
			}

			// validate is input is continuous and no reorg inside the batch
			for n := 1; n < len(inputs); n++ {
				header := inputs[n].BlockHeader()
				prevHeader := inputs[n-1].BlockHeader()
				if header.Height != prevHeader.Height+1 {
					return errors.Wrapf(errs.InternalError, "input is not continuous, input[%d] height: %d, input[%d] height: %d", n-1, prevHeader.Height, n, header.Height)
				}
				if !header.PrevBlock.IsEqual(&prevHeader.Hash) {
					logger.WarnContext(ctx, "Data source chain changed in the middle of batch fetching inputs, need to try to fetch again")
					return nil
				}
			}

			ctx = logger.WithContext(ctx, slog.Int("total_inputs", len(inputs)))

			logger.InfoContext(ctx, "Processing inputs")
			if err := i.Processor.Process(ctx, inputs); err != nil {
				// the processor persists each block on its own, re-read the checkpoint it reached
				if current, cerr := i.Processor.CurrentBlock(ctx); cerr == nil {
					i.currentBlock = current
				}
				return errors.WithStack(err)
			}

			i.currentBlock = inputs[len(inputs)-1].BlockHeader()

			logger.InfoContext(ctx, "Processed inputs successfully",
				slogx.String("event", "processed_inputs"),
				slogx.Int64("current_block", i.currentBlock.Height),
				slogx.Duration("duration", time.Since(startAt)),
			)
		case <-subscription.Done():
			// end current round
			if err := ctx.Err(); err != nil {
				return errors.Wrap(err, "context done")
			}
			select {
			case err := <-subscription.Err():
				if err != nil {
					return errors.Wrap(err, "got error while fetch async")
				}
			default:
			}
			return nil
		case <-ctx.Done():
			return errors.WithStack(ctx.Err())
		case err := <-subscription.Err():
			if err != nil {
				return errors.Wrap(err, "got error while fetch async")
			}
		}
	}
}

func skipIndexed[T Input](inputs []T, checkpoint int64) []T {
	for n, input := range inputs {
		if input.BlockHeader().Height > checkpoint {
			return inputs[n:]
		}
	}
	return nil
}
