package brc20

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/brc20-ledger/common"
	"github.com/gaze-network/brc20-ledger/common/errs"
	"github.com/gaze-network/brc20-ledger/core/indexer"
	"github.com/gaze-network/brc20-ledger/core/types"
	"github.com/gaze-network/brc20-ledger/modules/brc20/internal/brc20"
	"github.com/gaze-network/brc20-ledger/modules/brc20/internal/datagateway"
	"github.com/gaze-network/brc20-ledger/modules/brc20/internal/entity"
	"github.com/gaze-network/brc20-ledger/pkg/logger"
	"github.com/gaze-network/brc20-ledger/pkg/logger/slogx"
)

// Make sure to implement the Processor interface
var _ indexer.Processor[*entity.Block] = (*Processor)(nil)

type Processor struct {
	// serializes Process against RevertData
	mu sync.Mutex

	brc20Dg       datagateway.BRC20DataGateway
	indexerInfoDg datagateway.IndexerInfoDataGateway
	network       common.Network
	generator     *EventGenerator
	processor     *EventProcessor
	cleanupFuncs  []func(context.Context) error
}

func NewProcessor(brc20Dg datagateway.BRC20DataGateway, indexerInfoDg datagateway.IndexerInfoDataGateway, network common.Network, progEnabled bool, cleanupFuncs []func(context.Context) error) *Processor {
	rules := brc20.NewRules(network, progEnabled)
	eventProcessor := NewEventProcessor(rules)
	return &Processor{
		brc20Dg:       brc20Dg,
		indexerInfoDg: indexerInfoDg,
		network:       network,
		generator:     NewEventGenerator(network, rules, eventProcessor),
		processor:     eventProcessor,
		cleanupFuncs:  cleanupFuncs,
	}
}

// VerifyStates implements indexer.Processor.
func (p *Processor) VerifyStates(ctx context.Context) error {
	indexerState, err := p.indexerInfoDg.GetLatestIndexerState(ctx)
	if err != nil && !errors.Is(err, errs.NotFound) {
		return errors.Wrap(err, "failed to get latest indexer state")
	}
	// if not found, create indexer state
	if errors.Is(err, errs.NotFound) {
		if err := p.indexerInfoDg.CreateIndexerState(ctx, entity.IndexerState{
			ClientVersion:    ClientVersion,
			DBVersion:        DBVersion,
			EventHashVersion: EventHashVersion,
			Network:          p.network,
		}); err != nil {
			return errors.Wrap(err, "failed to set indexer state")
		}
		return nil
	}

	if indexerState.DBVersion != DBVersion {
		return errors.Wrapf(errs.ConflictSetting, "db version mismatch: current version is %d. Please upgrade to version %d", indexerState.DBVersion, DBVersion)
	}
	if indexerState.EventHashVersion != EventHashVersion {
		return errors.Wrapf(errs.ConflictSetting, "event version mismatch: current version is %d. Please reset brc20's db to use version %d", indexerState.EventHashVersion, EventHashVersion)
	}
	if indexerState.Network != p.network {
		return errors.Wrapf(errs.ConflictSetting, "network mismatch: latest indexed network is %s, configured network is %s. If you want to change the network, please reset the database", indexerState.Network, p.network)
	}
	return nil
}

// CurrentBlock implements indexer.Processor.
func (p *Processor) CurrentBlock(ctx context.Context) (types.BlockHeader, error) {
	blockHeader, err := p.brc20Dg.GetLatestBlock(ctx)
	if err != nil {
		if errors.Is(err, errs.NotFound) {
			return brc20.StartingBlockHeader(p.network), nil
		}
		return types.BlockHeader{}, errors.Wrap(err, "failed to get latest block")
	}
	return blockHeader, nil
}

// Name implements indexer.Processor.
func (p *Processor) Name() string {
	return "brc20"
}

// RevertData implements indexer.Processor.
func (p *Processor) RevertData(ctx context.Context, from int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	brc20DgTx, err := p.brc20Dg.BeginBRC20Tx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer func() {
		if err := brc20DgTx.Rollback(ctx); err != nil {
			logger.WarnContext(ctx, "failed to rollback transaction",
				slogx.Error(err),
				slogx.String("event", "rollback_brc20_revert"),
			)
		}
	}()

	height := uint64(from)
	if err := brc20DgTx.DeleteIndexedBlocksSinceHeight(ctx, height); err != nil {
		return errors.Wrap(err, "failed to delete indexed blocks")
	}
	if err := brc20DgTx.DeleteEventRecordsSinceHeight(ctx, height); err != nil {
		return errors.Wrap(err, "failed to delete events")
	}
	if err := brc20DgTx.DeleteTickersSinceHeight(ctx, height); err != nil {
		return errors.Wrap(err, "failed to delete tickers")
	}
	if err := brc20DgTx.DeleteBalancesSinceHeight(ctx, height); err != nil {
		return errors.Wrap(err, "failed to delete balances")
	}
	if err := brc20DgTx.DeleteTransferValiditiesSinceHeight(ctx, height); err != nil {
		return errors.Wrap(err, "failed to delete transfer validities")
	}
	if err := brc20DgTx.DeleteTimingsSinceHeight(ctx, height); err != nil {
		return errors.Wrap(err, "failed to delete timings")
	}

	if err := brc20DgTx.Commit(ctx); err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}
	logger.InfoContext(ctx, "Reverted brc20 data", slogx.Int64("from", from))
	return nil
}

func (p *Processor) Shutdown(ctx context.Context) error {
	var errs []error
	for _, cleanup := range p.cleanupFuncs {
		if err := cleanup(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.WithStack(errors.Join(errs...))
}
