// Package ledger applies balance-affecting operations to tickers and wallet balances.
// A Ledger is bound to one block: every write is stamped with its height.
package ledger

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/brc20-ledger/common/errs"
	"github.com/gaze-network/brc20-ledger/modules/brc20/internal/datagateway"
	"github.com/gaze-network/brc20-ledger/modules/brc20/internal/entity"
	"github.com/gaze-network/uint128"
)

var (
	ErrDuplicateTicker     = errors.Wrap(errs.InvalidArgument, "ticker already deployed")
	ErrInsufficientSupply  = errors.Wrap(errs.InvalidArgument, "insufficient remaining supply")
	ErrInsufficientBalance = errors.Wrap(errs.InvalidArgument, "insufficient balance")
)

type Ledger struct {
	store       datagateway.LedgerStore
	blockHeight uint64
	blockTime   time.Time
}

func New(store datagateway.LedgerStore, blockHeight uint64, blockTime time.Time) *Ledger {
	return &Ledger{
		store:       store,
		blockHeight: blockHeight,
		blockTime:   blockTime,
	}
}

func (l *Ledger) BlockHeight() uint64 {
	return l.blockHeight
}

// Ticker returns errs.NotFound if tick is not deployed.
func (l *Ledger) Ticker(ctx context.Context, tick string) (*entity.Ticker, error) {
	ticker, err := l.store.GetTicker(ctx, tick)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return ticker, nil
}

// IsDeployed reports whether tick has been deployed.
func (l *Ledger) IsDeployed(ctx context.Context, tick string) (bool, error) {
	_, err := l.store.GetTicker(ctx, tick)
	if err != nil {
		if errors.Is(err, errs.NotFound) {
			return false, nil
		}
		return false, errors.WithStack(err)
	}
	return true, nil
}

// Balance returns the balance of pkScript, or an empty balance if it never held tick.
func (l *Ledger) Balance(ctx context.Context, tick string, pkScript string) (*entity.Balance, error) {
	balance, err := l.store.GetBalance(ctx, tick, pkScript)
	if err != nil {
		if errors.Is(err, errs.NotFound) {
			return &entity.Balance{
				Tick:             tick,
				PkScript:         pkScript,
				OverallBalance:   uint128.Zero,
				AvailableBalance: uint128.Zero,
			}, nil
		}
		return nil, errors.WithStack(err)
	}
	return balance, nil
}

// Deploy creates ticker with its full supply remaining.
func (l *Ledger) Deploy(ctx context.Context, ticker *entity.Ticker) error {
	deployed, err := l.IsDeployed(ctx, ticker.Tick)
	if err != nil {
		return errors.Wrap(err, "failed to check ticker")
	}
	if deployed {
		return errors.Wrapf(ErrDuplicateTicker, "tick %s", ticker.Tick)
	}
	t := *ticker
	t.RemainingSupply = t.MaxSupply
	t.BurnedSupply = uint128.Zero
	t.DeployBlockHeight = l.blockHeight
	t.DeployedAt = l.blockTime
	t.UpdatedAtHeight = l.blockHeight
	if err := l.store.PutTicker(ctx, &t); err != nil {
		return errors.Wrap(err, "failed to put ticker")
	}
	return nil
}

// Credit mints amount to pkScript out of the ticker's remaining supply.
func (l *Ledger) Credit(ctx context.Context, tick string, pkScript string, wallet string, amount uint128.Uint128) error {
	ticker, err := l.Ticker(ctx, tick)
	if err != nil {
		return errors.Wrap(err, "failed to get ticker")
	}
	if ticker.RemainingSupply.Cmp(amount) < 0 {
		return errors.Wrapf(ErrInsufficientSupply, "tick %s: remaining %s, mint %s", tick, ticker.RemainingSupply, amount)
	}
	ticker.RemainingSupply = ticker.RemainingSupply.Sub(amount)
	ticker.UpdatedAtHeight = l.blockHeight
	if err := l.store.PutTicker(ctx, ticker); err != nil {
		return errors.Wrap(err, "failed to put ticker")
	}
	return errors.WithStack(l.Receive(ctx, tick, pkScript, wallet, amount))
}

// Receive adds amount to the overall and available balance of pkScript. Supply is not touched.
func (l *Ledger) Receive(ctx context.Context, tick string, pkScript string, wallet string, amount uint128.Uint128) error {
	return l.update(ctx, tick, pkScript, wallet, func(b *entity.Balance) error {
		overall, err := add(b.OverallBalance, amount)
		if err != nil {
			return errors.Wrapf(err, "tick %s: overall balance of %s", tick, pkScript)
		}
		available, err := add(b.AvailableBalance, amount)
		if err != nil {
			return errors.Wrapf(err, "tick %s: available balance of %s", tick, pkScript)
		}
		b.OverallBalance = overall
		b.AvailableBalance = available
		return nil
	})
}

// Lock moves amount from the available balance of pkScript into its locked part.
func (l *Ledger) Lock(ctx context.Context, tick string, pkScript string, wallet string, amount uint128.Uint128) error {
	return l.update(ctx, tick, pkScript, wallet, func(b *entity.Balance) error {
		if b.AvailableBalance.Cmp(amount) < 0 {
			return errors.Wrapf(ErrInsufficientBalance, "tick %s: available %s of %s, lock %s", tick, b.AvailableBalance, pkScript, amount)
		}
		b.AvailableBalance = b.AvailableBalance.Sub(amount)
		return nil
	})
}

// Unlock moves amount from the locked part of pkScript's balance back to available.
func (l *Ledger) Unlock(ctx context.Context, tick string, pkScript string, wallet string, amount uint128.Uint128) error {
	return l.update(ctx, tick, pkScript, wallet, func(b *entity.Balance) error {
		if b.TransferableBalance().Cmp(amount) < 0 {
			return errors.Wrapf(ErrInsufficientBalance, "tick %s: locked %s of %s, unlock %s", tick, b.TransferableBalance(), pkScript, amount)
		}
		b.AvailableBalance = b.AvailableBalance.Add(amount)
		return nil
	})
}

// Debit removes amount from the locked part of pkScript's balance.
func (l *Ledger) Debit(ctx context.Context, tick string, pkScript string, wallet string, amount uint128.Uint128) error {
	return l.update(ctx, tick, pkScript, wallet, func(b *entity.Balance) error {
		if b.TransferableBalance().Cmp(amount) < 0 {
			return errors.Wrapf(ErrInsufficientBalance, "tick %s: locked %s of %s, debit %s", tick, b.TransferableBalance(), pkScript, amount)
		}
		b.OverallBalance = b.OverallBalance.Sub(amount)
		return nil
	})
}

// Withdraw removes amount from the overall and available balance of pkScript.
func (l *Ledger) Withdraw(ctx context.Context, tick string, pkScript string, amount uint128.Uint128) error {
	return l.update(ctx, tick, pkScript, "", func(b *entity.Balance) error {
		if b.AvailableBalance.Cmp(amount) < 0 {
			return errors.Wrapf(ErrInsufficientBalance, "tick %s: available %s of %s, withdraw %s", tick, b.AvailableBalance, pkScript, amount)
		}
		b.OverallBalance = b.OverallBalance.Sub(amount)
		b.AvailableBalance = b.AvailableBalance.Sub(amount)
		return nil
	})
}

// Burn adds amount to the ticker's burned supply.
func (l *Ledger) Burn(ctx context.Context, tick string, amount uint128.Uint128) error {
	ticker, err := l.Ticker(ctx, tick)
	if err != nil {
		return errors.Wrap(err, "failed to get ticker")
	}
	burned, err := add(ticker.BurnedSupply, amount)
	if err != nil {
		return errors.Wrapf(err, "tick %s: burned supply", tick)
	}
	ticker.BurnedSupply = burned
	ticker.UpdatedAtHeight = l.blockHeight
	if err := l.store.PutTicker(ctx, ticker); err != nil {
		return errors.Wrap(err, "failed to put ticker")
	}
	return nil
}

// GetTransferValidity returns the validity of a transfer-like inscription. An inscription that was never
// inscribed, or was inscribed as a different event kind, is invalid.
func (l *Ledger) GetTransferValidity(ctx context.Context, inscriptionId string, inscribeEventId int) (entity.Validity, error) {
	validity, err := l.store.GetTransferValidity(ctx, inscriptionId)
	if err != nil {
		if errors.Is(err, errs.NotFound) {
			return entity.ValidityInvalid, nil
		}
		return entity.ValidityInvalid, errors.WithStack(err)
	}
	if validity.InscribeEventId != inscribeEventId {
		return entity.ValidityInvalid, nil
	}
	return validity.Validity, nil
}

func (l *Ledger) SetTransferValidity(ctx context.Context, inscriptionId string, inscribeEventId int, validity entity.Validity) error {
	current, err := l.store.GetTransferValidity(ctx, inscriptionId)
	if err != nil && !errors.Is(err, errs.NotFound) {
		return errors.Wrap(err, "failed to get transfer validity")
	}
	next := &entity.TransferValidity{
		InscriptionId:   inscriptionId,
		InscribeEventId: inscribeEventId,
		Validity:        validity,
		InscribedHeight: l.blockHeight,
		UpdatedHeight:   l.blockHeight,
	}
	if current != nil {
		next.InscribeEventId = current.InscribeEventId
		next.InscribedHeight = current.InscribedHeight
	}
	if err := l.store.PutTransferValidity(ctx, next); err != nil {
		return errors.Wrap(err, "failed to put transfer validity")
	}
	return nil
}

// EventRecord returns the record of the given event id generated from inscriptionId, errs.NotFound if none.
func (l *Ledger) EventRecord(ctx context.Context, inscriptionId string, eventId int) (*entity.EventRecord, error) {
	record, err := l.store.GetEventRecordByInscriptionId(ctx, inscriptionId, eventId)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return record, nil
}

// AppendEventRecords appends records to the event log.
func (l *Ledger) AppendEventRecords(ctx context.Context, records []*entity.EventRecord) error {
	if err := l.store.CreateEventRecords(ctx, records); err != nil {
		return errors.Wrap(err, "failed to create event records")
	}
	return nil
}

func (l *Ledger) update(ctx context.Context, tick string, pkScript string, wallet string, fn func(*entity.Balance) error) error {
	balance, err := l.Balance(ctx, tick, pkScript)
	if err != nil {
		return errors.Wrap(err, "failed to get balance")
	}
	if err := fn(balance); err != nil {
		return errors.WithStack(err)
	}
	if wallet != "" {
		balance.Wallet = wallet
	}
	balance.BlockHeight = l.blockHeight
	if err := l.store.PutBalance(ctx, balance); err != nil {
		return errors.Wrap(err, "failed to put balance")
	}
	return nil
}

func add(a, b uint128.Uint128) (uint128.Uint128, error) {
	if a.Cmp(uint128.Max.Sub(b)) > 0 {
		return uint128.Uint128{}, errors.WithStack(errs.OverflowUint128)
	}
	return a.Add(b), nil
}
