// Package memory provides in-memory implementations of the brc20 data gateways.
// Repository is used by tests and dry runs, Overlay is the per-block scratch state of the event generator.
package memory

import (
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/brc20-ledger/modules/brc20/internal/entity"
	"github.com/samber/lo"
)

var ErrTxAlreadyExists = errors.New("Transaction already exists. Call Commit() or Rollback() first.")

type balanceKey struct {
	Tick     string
	PkScript string
}

type state struct {
	indexerStates  []entity.IndexerState
	indexedBlocks  map[uint64]entity.IndexedBlock
	tickers        map[string]entity.Ticker
	tickerHistory  map[string][]entity.Ticker // one snapshot per height the ticker changed, ascending
	balances       map[balanceKey]entity.Balance
	balanceHistory map[balanceKey][]entity.Balance // one snapshot per height the balance changed, ascending
	validities     map[string]entity.TransferValidity
	events         []entity.EventRecord
	timings        []entity.Timing
}

func newState() *state {
	return &state{
		indexedBlocks:  make(map[uint64]entity.IndexedBlock),
		tickers:        make(map[string]entity.Ticker),
		tickerHistory:  make(map[string][]entity.Ticker),
		balances:       make(map[balanceKey]entity.Balance),
		balanceHistory: make(map[balanceKey][]entity.Balance),
		validities:     make(map[string]entity.TransferValidity),
	}
}

func (s *state) clone() *state {
	c := &state{
		indexerStates:  append([]entity.IndexerState(nil), s.indexerStates...),
		indexedBlocks:  lo.Assign(s.indexedBlocks),
		tickers:        lo.Assign(s.tickers),
		tickerHistory:  make(map[string][]entity.Ticker, len(s.tickerHistory)),
		balances:       lo.Assign(s.balances),
		balanceHistory: make(map[balanceKey][]entity.Balance, len(s.balanceHistory)),
		validities:     lo.Assign(s.validities),
		events:         append([]entity.EventRecord(nil), s.events...),
		timings:        append([]entity.Timing(nil), s.timings...),
	}
	for k, v := range s.tickerHistory {
		c.tickerHistory[k] = append([]entity.Ticker(nil), v...)
	}
	for k, v := range s.balanceHistory {
		c.balanceHistory[k] = append([]entity.Balance(nil), v...)
	}
	return c
}

// Repository keeps all brc20 data in memory. The zero value is not usable, use NewRepository.
type Repository struct {
	mu     *sync.RWMutex
	state  *state
	parent *Repository
	closed bool
}

func NewRepository() *Repository {
	return &Repository{
		mu:    &sync.RWMutex{},
		state: newState(),
	}
}
