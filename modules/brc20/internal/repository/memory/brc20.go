package memory

import (
	"context"
	"slices"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/brc20-ledger/common/errs"
	"github.com/gaze-network/brc20-ledger/core/types"
	"github.com/gaze-network/brc20-ledger/modules/brc20/internal/datagateway"
	"github.com/gaze-network/brc20-ledger/modules/brc20/internal/entity"
	"github.com/samber/lo"
)

var (
	_ datagateway.BRC20DataGateway       = (*Repository)(nil)
	_ datagateway.IndexerInfoDataGateway = (*Repository)(nil)
)

func (r *Repository) GetLatestIndexerState(ctx context.Context) (entity.IndexerState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.state.indexerStates) == 0 {
		return entity.IndexerState{}, errors.WithStack(errs.NotFound)
	}
	return r.state.indexerStates[len(r.state.indexerStates)-1], nil
}

func (r *Repository) CreateIndexerState(ctx context.Context, state entity.IndexerState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.indexerStates = append(r.state.indexerStates, state)
	return nil
}

func (r *Repository) GetLatestBlock(ctx context.Context) (types.BlockHeader, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.state.indexedBlocks) == 0 {
		return types.BlockHeader{}, errors.WithStack(errs.NotFound)
	}
	latest := lo.Max(lo.Keys(r.state.indexedBlocks))
	block := r.state.indexedBlocks[latest]
	return types.BlockHeader{
		Height: int64(block.Height),
		Hash:   block.Hash,
	}, nil
}

func (r *Repository) GetIndexedBlockByHeight(ctx context.Context, height int64) (*entity.IndexedBlock, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	block, ok := r.state.indexedBlocks[uint64(height)]
	if !ok {
		return nil, errors.WithStack(errs.NotFound)
	}
	return &block, nil
}

func (r *Repository) GetEventRecordsByHeight(ctx context.Context, height uint64) ([]*entity.EventRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	records := make([]*entity.EventRecord, 0)
	for i := range r.state.events {
		if r.state.events[i].BlockHeight == height {
			record := r.state.events[i]
			records = append(records, &record)
		}
	}
	sort.SliceStable(records, func(i, j int) bool { return records[i].Sequence < records[j].Sequence })
	return records, nil
}

func (r *Repository) GetEventRecordByInscriptionId(ctx context.Context, inscriptionId string, eventId int) (*entity.EventRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.state.events {
		if r.state.events[i].InscriptionId == inscriptionId && r.state.events[i].Event.Id() == eventId {
			record := r.state.events[i]
			return &record, nil
		}
	}
	return nil, errors.WithStack(errs.NotFound)
}

func (r *Repository) GetTicker(ctx context.Context, tick string) (*entity.Ticker, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ticker, ok := r.state.tickers[tick]
	if !ok {
		return nil, errors.WithStack(errs.NotFound)
	}
	return &ticker, nil
}

func (r *Repository) GetTickerAtHeight(ctx context.Context, tick string, blockHeight uint64) (*entity.Ticker, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ticker, ok := latestAt(r.state.tickerHistory[tick], blockHeight, func(t entity.Ticker) uint64 { return t.UpdatedAtHeight })
	if !ok {
		return nil, errors.WithStack(errs.NotFound)
	}
	return &ticker, nil
}

func (r *Repository) GetBalance(ctx context.Context, tick string, pkScript string) (*entity.Balance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	balance, ok := r.state.balances[balanceKey{Tick: tick, PkScript: pkScript}]
	if !ok {
		return nil, errors.WithStack(errs.NotFound)
	}
	return &balance, nil
}

func (r *Repository) GetBalancesByPkScript(ctx context.Context, pkScript string, blockHeight uint64) ([]*entity.Balance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	balances := r.balancesAt(blockHeight, func(key balanceKey) bool { return key.PkScript == pkScript })
	sort.Slice(balances, func(i, j int) bool { return balances[i].Tick < balances[j].Tick })
	return balances, nil
}

func (r *Repository) GetBalancesByTick(ctx context.Context, tick string, blockHeight uint64, limit, offset int32) ([]*entity.Balance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	balances := r.balancesAt(blockHeight, func(key balanceKey) bool { return key.Tick == tick })
	sort.Slice(balances, func(i, j int) bool {
		if c := balances[i].OverallBalance.Cmp(balances[j].OverallBalance); c != 0 {
			return c > 0
		}
		return balances[i].PkScript < balances[j].PkScript
	})
	if int(offset) >= len(balances) {
		return []*entity.Balance{}, nil
	}
	balances = balances[offset:]
	if int(limit) < len(balances) {
		balances = balances[:limit]
	}
	return balances, nil
}

func (r *Repository) balancesAt(blockHeight uint64, match func(balanceKey) bool) []*entity.Balance {
	balances := make([]*entity.Balance, 0)
	for key, history := range r.state.balanceHistory {
		if !match(key) {
			continue
		}
		balance, ok := latestAt(history, blockHeight, func(b entity.Balance) uint64 { return b.BlockHeight })
		if !ok || balance.OverallBalance.IsZero() {
			continue
		}
		balances = append(balances, &balance)
	}
	return balances
}

func (r *Repository) GetTransferValidity(ctx context.Context, inscriptionId string) (*entity.TransferValidity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	validity, ok := r.state.validities[inscriptionId]
	if !ok {
		return nil, errors.WithStack(errs.NotFound)
	}
	return &validity, nil
}

func (r *Repository) PutTicker(ctx context.Context, ticker *entity.Ticker) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.tickers[ticker.Tick] = *ticker
	r.state.tickerHistory[ticker.Tick] = putSnapshot(r.state.tickerHistory[ticker.Tick], *ticker, func(t entity.Ticker) uint64 { return t.UpdatedAtHeight })
	return nil
}

func (r *Repository) PutBalance(ctx context.Context, balance *entity.Balance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := balanceKey{Tick: balance.Tick, PkScript: balance.PkScript}
	r.state.balances[key] = *balance
	r.state.balanceHistory[key] = putSnapshot(r.state.balanceHistory[key], *balance, func(b entity.Balance) uint64 { return b.BlockHeight })
	return nil
}

func (r *Repository) PutTransferValidity(ctx context.Context, validity *entity.TransferValidity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.validities[validity.InscriptionId] = *validity
	return nil
}

func (r *Repository) CreateEventRecords(ctx context.Context, records []*entity.EventRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, record := range records {
		for _, existing := range r.state.events {
			if existing.BlockHeight == record.BlockHeight && existing.Sequence == record.Sequence {
				return errors.Wrapf(errs.ConflictSetting, "event %d of block %d already exists", record.Sequence, record.BlockHeight)
			}
		}
		r.state.events = append(r.state.events, *record)
	}
	return nil
}

func (r *Repository) CreateIndexedBlock(ctx context.Context, block *entity.IndexedBlock) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.state.indexedBlocks[block.Height]; ok {
		return errors.Wrapf(errs.ConflictSetting, "block %d already indexed", block.Height)
	}
	r.state.indexedBlocks[block.Height] = *block
	return nil
}

func (r *Repository) CreateTiming(ctx context.Context, timing *entity.Timing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.timings = append(r.state.timings, *timing)
	return nil
}

// Timings returns every recorded timing in insertion order.
func (r *Repository) Timings() []entity.Timing {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.state.timings)
}

func (r *Repository) DeleteIndexedBlocksSinceHeight(ctx context.Context, height uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for h := range r.state.indexedBlocks {
		if h >= height {
			delete(r.state.indexedBlocks, h)
		}
	}
	return nil
}

func (r *Repository) DeleteEventRecordsSinceHeight(ctx context.Context, height uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.events = lo.Filter(r.state.events, func(record entity.EventRecord, _ int) bool {
		return record.BlockHeight < height
	})
	return nil
}

func (r *Repository) DeleteTickersSinceHeight(ctx context.Context, height uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for tick, ticker := range r.state.tickers {
		history := trimSince(r.state.tickerHistory[tick], height, func(t entity.Ticker) uint64 { return t.UpdatedAtHeight })
		if ticker.DeployBlockHeight >= height || len(history) == 0 {
			delete(r.state.tickers, tick)
			delete(r.state.tickerHistory, tick)
			continue
		}
		r.state.tickerHistory[tick] = history
		r.state.tickers[tick] = history[len(history)-1]
	}
	return nil
}

func (r *Repository) DeleteBalancesSinceHeight(ctx context.Context, height uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, history := range r.state.balanceHistory {
		history = trimSince(history, height, func(b entity.Balance) uint64 { return b.BlockHeight })
		if len(history) == 0 {
			delete(r.state.balanceHistory, key)
			delete(r.state.balances, key)
			continue
		}
		r.state.balanceHistory[key] = history
		r.state.balances[key] = history[len(history)-1]
	}
	return nil
}

func (r *Repository) DeleteTransferValiditiesSinceHeight(ctx context.Context, height uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, validity := range r.state.validities {
		switch {
		case validity.InscribedHeight >= height:
			delete(r.state.validities, id)
		case validity.UpdatedHeight >= height:
			validity.Validity = entity.ValidityValid
			validity.UpdatedHeight = validity.InscribedHeight
			r.state.validities[id] = validity
		}
	}
	return nil
}

func (r *Repository) DeleteTimingsSinceHeight(ctx context.Context, height uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.timings = lo.Filter(r.state.timings, func(timing entity.Timing, _ int) bool {
		return timing.BlockHeight < height
	})
	return nil
}

// putSnapshot replaces the snapshot of the same height or appends a newer one.
func putSnapshot[T any](history []T, v T, heightOf func(T) uint64) []T {
	if n := len(history); n > 0 && heightOf(history[n-1]) == heightOf(v) {
		history[n-1] = v
		return history
	}
	return append(history, v)
}

// latestAt returns the last snapshot at or before height.
func latestAt[T any](history []T, height uint64, heightOf func(T) uint64) (T, bool) {
	for i := len(history) - 1; i >= 0; i-- {
		if heightOf(history[i]) <= height {
			return history[i], true
		}
	}
	var zero T
	return zero, false
}

func trimSince[T any](history []T, height uint64, heightOf func(T) uint64) []T {
	return lo.Filter(history, func(v T, _ int) bool { return heightOf(v) < height })
}
