package memory

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/brc20-ledger/modules/brc20/internal/datagateway"
)

// BeginBRC20Tx returns a repository working on a copy of the current state.
// Commit replaces the state of r with the copy, Rollback discards it.
func (r *Repository) BeginBRC20Tx(ctx context.Context) (datagateway.BRC20DataGatewayWithTx, error) {
	if r.parent != nil {
		return nil, errors.WithStack(ErrTxAlreadyExists)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return &Repository{
		mu:     &sync.RWMutex{},
		state:  r.state.clone(),
		parent: r,
	}, nil
}

func (r *Repository) Commit(ctx context.Context) error {
	if r.parent == nil || r.closed {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.parent.mu.Lock()
	defer r.parent.mu.Unlock()
	r.parent.state = r.state
	r.closed = true
	return nil
}

func (r *Repository) Rollback(ctx context.Context) error {
	r.closed = true
	return nil
}
