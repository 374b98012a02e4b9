package postgres

import (
	"context"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/brc20-ledger/common/errs"
	"github.com/gaze-network/brc20-ledger/core/types"
	"github.com/gaze-network/brc20-ledger/modules/brc20/internal/datagateway"
	"github.com/gaze-network/brc20-ledger/modules/brc20/internal/entity"
	"github.com/gaze-network/brc20-ledger/modules/brc20/internal/repository/postgres/gen"
	"github.com/jackc/pgx/v5"
)

var _ datagateway.BRC20DataGateway = (*Repository)(nil)

// warning: GetLatestBlock currently returns a types.BlockHeader with only Height and Hash fields populated.
// This is because it is known that all usage of this function only requires these fields.
func (r *Repository) GetLatestBlock(ctx context.Context) (types.BlockHeader, error) {
	block, err := r.queries.GetLatestIndexedBlock(ctx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return types.BlockHeader{}, errors.WithStack(errs.NotFound)
		}
		return types.BlockHeader{}, errors.Wrap(err, "error during query")
	}
	hash, err := chainhash.NewHashFromStr(block.Hash)
	if err != nil {
		return types.BlockHeader{}, errors.Wrap(err, "failed to parse block hash")
	}
	return types.BlockHeader{
		Height: int64(block.Height),
		Hash:   *hash,
	}, nil
}

// GetIndexedBlockByHeight implements datagateway.BRC20DataGateway.
func (r *Repository) GetIndexedBlockByHeight(ctx context.Context, height int64) (*entity.IndexedBlock, error) {
	model, err := r.queries.GetIndexedBlockByHeight(ctx, int32(height))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.WithStack(errs.NotFound)
		}
		return nil, errors.Wrap(err, "error during query")
	}
	indexedBlock, err := mapIndexedBlockModelToType(model)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse indexed block model")
	}
	return &indexedBlock, nil
}

func (r *Repository) GetEventRecordsByHeight(ctx context.Context, height uint64) ([]*entity.EventRecord, error) {
	models, err := r.queries.GetEventsByHeight(ctx, int32(height))
	if err != nil {
		return nil, errors.Wrap(err, "error during query")
	}
	records := make([]*entity.EventRecord, 0, len(models))
	for _, model := range models {
		record, err := mapEventModelToType(model)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse event model")
		}
		records = append(records, &record)
	}
	return records, nil
}

func (r *Repository) GetEventRecordByInscriptionId(ctx context.Context, inscriptionId string, eventId int) (*entity.EventRecord, error) {
	model, err := r.queries.GetEventByInscriptionId(ctx, gen.GetEventByInscriptionIdParams{
		InscriptionId: inscriptionId,
		EventType:     int32(eventId),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.WithStack(errs.NotFound)
		}
		return nil, errors.Wrap(err, "error during query")
	}
	record, err := mapEventModelToType(model)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse event model")
	}
	return &record, nil
}

func (r *Repository) GetTicker(ctx context.Context, tick string) (*entity.Ticker, error) {
	model, err := r.queries.GetTicker(ctx, tick)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.WithStack(errs.NotFound)
		}
		return nil, errors.Wrap(err, "error during query")
	}
	ticker, err := mapTickerModelToType(model)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse ticker model")
	}
	return &ticker, nil
}

func (r *Repository) GetTickerAtHeight(ctx context.Context, tick string, blockHeight uint64) (*entity.Ticker, error) {
	row, err := r.queries.GetTickerAtHeight(ctx, gen.GetTickerAtHeightParams{
		BlockHeight: int32(blockHeight),
		Tick:        tick,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.WithStack(errs.NotFound)
		}
		return nil, errors.Wrap(err, "error during query")
	}
	ticker, err := mapTickerModelToType(gen.Brc20Ticker(row))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse ticker model")
	}
	return &ticker, nil
}

func (r *Repository) GetBalance(ctx context.Context, tick string, pkScript string) (*entity.Balance, error) {
	model, err := r.queries.GetBalance(ctx, gen.GetBalanceParams{
		Tick:     tick,
		Pkscript: pkScript,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.WithStack(errs.NotFound)
		}
		return nil, errors.Wrap(err, "error during query")
	}
	balance, err := mapBalanceModelToType(model)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse balance model")
	}
	return &balance, nil
}

func (r *Repository) GetBalancesByPkScript(ctx context.Context, pkScript string, blockHeight uint64) ([]*entity.Balance, error) {
	rows, err := r.queries.GetBalancesByPkScript(ctx, gen.GetBalancesByPkScriptParams{
		Pkscript:    pkScript,
		BlockHeight: int32(blockHeight),
	})
	if err != nil {
		return nil, errors.Wrap(err, "error during query")
	}
	balances := make([]*entity.Balance, 0, len(rows))
	for _, row := range rows {
		balance, err := mapBalanceModelToType(gen.Brc20Balance{
			Tick:             row.Tick,
			Pkscript:         row.Pkscript,
			Wallet:           row.Wallet,
			OverallBalance:   row.OverallBalance,
			AvailableBalance: row.AvailableBalance,
			BlockHeight:      row.BlockHeight,
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse balance model")
		}
		balances = append(balances, &balance)
	}
	return balances, nil
}

func (r *Repository) GetBalancesByTick(ctx context.Context, tick string, blockHeight uint64, limit, offset int32) ([]*entity.Balance, error) {
	rows, err := r.queries.GetBalancesByTick(ctx, gen.GetBalancesByTickParams{
		Tick:        tick,
		BlockHeight: int32(blockHeight),
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		return nil, errors.Wrap(err, "error during query")
	}
	balances := make([]*entity.Balance, 0, len(rows))
	for _, row := range rows {
		balance, err := mapBalanceModelToType(gen.Brc20Balance{
			Tick:             row.Tick,
			Pkscript:         row.Pkscript,
			Wallet:           row.Wallet,
			OverallBalance:   row.OverallBalance,
			AvailableBalance: row.AvailableBalance,
			BlockHeight:      row.BlockHeight,
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse balance model")
		}
		balances = append(balances, &balance)
	}
	return balances, nil
}

func (r *Repository) GetTransferValidity(ctx context.Context, inscriptionId string) (*entity.TransferValidity, error) {
	model, err := r.queries.GetTransferValidity(ctx, inscriptionId)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.WithStack(errs.NotFound)
		}
		return nil, errors.Wrap(err, "error during query")
	}
	validity := mapTransferValidityModelToType(model)
	return &validity, nil
}

func (r *Repository) PutTicker(ctx context.Context, ticker *entity.Ticker) error {
	tickerParams, stateParams, err := mapTickerTypeToParams(*ticker)
	if err != nil {
		return errors.Wrap(err, "failed to map ticker to params")
	}
	if err := r.queries.UpsertTicker(ctx, tickerParams); err != nil {
		return errors.Wrap(err, "error during exec UpsertTicker")
	}
	if err := r.queries.UpsertTickerState(ctx, stateParams); err != nil {
		return errors.Wrap(err, "error during exec UpsertTickerState")
	}
	return nil
}

func (r *Repository) PutBalance(ctx context.Context, balance *entity.Balance) error {
	balanceParams, historyParams, err := mapBalanceTypeToParams(*balance)
	if err != nil {
		return errors.Wrap(err, "failed to map balance to params")
	}
	if err := r.queries.UpsertBalance(ctx, balanceParams); err != nil {
		return errors.Wrap(err, "error during exec UpsertBalance")
	}
	if err := r.queries.UpsertBalanceHistory(ctx, historyParams); err != nil {
		return errors.Wrap(err, "error during exec UpsertBalanceHistory")
	}
	return nil
}

func (r *Repository) PutTransferValidity(ctx context.Context, validity *entity.TransferValidity) error {
	if err := r.queries.UpsertTransferValidity(ctx, mapTransferValidityTypeToParams(*validity)); err != nil {
		return errors.Wrap(err, "error during exec")
	}
	return nil
}

func (r *Repository) CreateEventRecords(ctx context.Context, records []*entity.EventRecord) error {
	if len(records) == 0 {
		return nil
	}
	if err := r.queries.BatchCreateEvents(ctx, mapEventTypesToParams(records)); err != nil {
		return errors.Wrap(err, "error during exec")
	}
	return nil
}

func (r *Repository) CreateIndexedBlock(ctx context.Context, block *entity.IndexedBlock) error {
	if err := r.queries.CreateIndexedBlock(ctx, mapIndexedBlockTypeToParams(*block)); err != nil {
		return errors.Wrap(err, "error during exec")
	}
	return nil
}

func (r *Repository) CreateTiming(ctx context.Context, timing *entity.Timing) error {
	if err := r.queries.CreateTiming(ctx, gen.CreateTimingParams{
		Label:       timing.Label,
		BlockHeight: int32(timing.BlockHeight),
		ElapsedNs:   timing.Elapsed.Nanoseconds(),
	}); err != nil {
		return errors.Wrap(err, "error during exec")
	}
	return nil
}

func (r *Repository) DeleteIndexedBlocksSinceHeight(ctx context.Context, height uint64) error {
	if err := r.queries.DeleteIndexedBlocksSinceHeight(ctx, int32(height)); err != nil {
		return errors.Wrap(err, "error during exec")
	}
	return nil
}

func (r *Repository) DeleteEventRecordsSinceHeight(ctx context.Context, height uint64) error {
	if err := r.queries.DeleteEventsSinceHeight(ctx, int32(height)); err != nil {
		return errors.Wrap(err, "error during exec")
	}
	return nil
}

// DeleteTickersSinceHeight removes tickers deployed since height and rolls the supplies of the others back
// to their latest state before height.
func (r *Repository) DeleteTickersSinceHeight(ctx context.Context, height uint64) error {
	if err := r.queries.DeleteTickersSinceHeight(ctx, int32(height)); err != nil {
		return errors.Wrap(err, "error during exec DeleteTickersSinceHeight")
	}
	if err := r.queries.DeleteTickerStatesSinceHeight(ctx, int32(height)); err != nil {
		return errors.Wrap(err, "error during exec DeleteTickerStatesSinceHeight")
	}
	if err := r.queries.RestoreTickersSinceHeight(ctx, int32(height)); err != nil {
		return errors.Wrap(err, "error during exec RestoreTickersSinceHeight")
	}
	return nil
}

// DeleteBalancesSinceHeight rolls balances back to their latest history entry before height.
func (r *Repository) DeleteBalancesSinceHeight(ctx context.Context, height uint64) error {
	if err := r.queries.DeleteBalanceHistorySinceHeight(ctx, int32(height)); err != nil {
		return errors.Wrap(err, "error during exec DeleteBalanceHistorySinceHeight")
	}
	if err := r.queries.DeleteBalancesSinceHeight(ctx, int32(height)); err != nil {
		return errors.Wrap(err, "error during exec DeleteBalancesSinceHeight")
	}
	if err := r.queries.RestoreBalances(ctx); err != nil {
		return errors.Wrap(err, "error during exec RestoreBalances")
	}
	return nil
}

// DeleteTransferValiditiesSinceHeight removes validities inscribed since height. Validities consumed since
// height are valid again, an inscription is consumed at most once.
func (r *Repository) DeleteTransferValiditiesSinceHeight(ctx context.Context, height uint64) error {
	if err := r.queries.DeleteTransferValiditiesSinceHeight(ctx, int32(height)); err != nil {
		return errors.Wrap(err, "error during exec DeleteTransferValiditiesSinceHeight")
	}
	if err := r.queries.RestoreTransferValiditiesSinceHeight(ctx, int32(height)); err != nil {
		return errors.Wrap(err, "error during exec RestoreTransferValiditiesSinceHeight")
	}
	return nil
}

func (r *Repository) DeleteTimingsSinceHeight(ctx context.Context, height uint64) error {
	if err := r.queries.DeleteTimingsSinceHeight(ctx, int32(height)); err != nil {
		return errors.Wrap(err, "error during exec")
	}
	return nil
}
