package memory

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/brc20-ledger/common/errs"
	"github.com/gaze-network/brc20-ledger/modules/brc20/internal/datagateway"
	"github.com/gaze-network/brc20-ledger/modules/brc20/internal/entity"
)

var _ datagateway.LedgerStore = (*Overlay)(nil)

// Overlay is a copy-on-read LedgerStore over base. Reads fall through to base until a key is written,
// writes never reach base.
type Overlay struct {
	base       datagateway.LedgerReader
	tickers    map[string]entity.Ticker
	balances   map[balanceKey]entity.Balance
	validities map[string]entity.TransferValidity
	events     []entity.EventRecord
}

func NewOverlay(base datagateway.LedgerReader) *Overlay {
	return &Overlay{
		base:       base,
		tickers:    make(map[string]entity.Ticker),
		balances:   make(map[balanceKey]entity.Balance),
		validities: make(map[string]entity.TransferValidity),
	}
}

func (o *Overlay) GetTicker(ctx context.Context, tick string) (*entity.Ticker, error) {
	if ticker, ok := o.tickers[tick]; ok {
		return &ticker, nil
	}
	ticker, err := o.base.GetTicker(ctx, tick)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	copied := *ticker
	return &copied, nil
}

func (o *Overlay) GetBalance(ctx context.Context, tick string, pkScript string) (*entity.Balance, error) {
	if balance, ok := o.balances[balanceKey{Tick: tick, PkScript: pkScript}]; ok {
		return &balance, nil
	}
	balance, err := o.base.GetBalance(ctx, tick, pkScript)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	copied := *balance
	return &copied, nil
}

func (o *Overlay) GetTransferValidity(ctx context.Context, inscriptionId string) (*entity.TransferValidity, error) {
	if validity, ok := o.validities[inscriptionId]; ok {
		return &validity, nil
	}
	validity, err := o.base.GetTransferValidity(ctx, inscriptionId)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	copied := *validity
	return &copied, nil
}

func (o *Overlay) GetEventRecordByInscriptionId(ctx context.Context, inscriptionId string, eventId int) (*entity.EventRecord, error) {
	record, err := o.base.GetEventRecordByInscriptionId(ctx, inscriptionId, eventId)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, errs.NotFound) {
		return nil, errors.WithStack(err)
	}
	for i := range o.events {
		if o.events[i].InscriptionId == inscriptionId && o.events[i].Event.Id() == eventId {
			record := o.events[i]
			return &record, nil
		}
	}
	return nil, errors.WithStack(errs.NotFound)
}

func (o *Overlay) PutTicker(ctx context.Context, ticker *entity.Ticker) error {
	o.tickers[ticker.Tick] = *ticker
	return nil
}

func (o *Overlay) PutBalance(ctx context.Context, balance *entity.Balance) error {
	o.balances[balanceKey{Tick: balance.Tick, PkScript: balance.PkScript}] = *balance
	return nil
}

func (o *Overlay) PutTransferValidity(ctx context.Context, validity *entity.TransferValidity) error {
	o.validities[validity.InscriptionId] = *validity
	return nil
}

func (o *Overlay) CreateEventRecords(ctx context.Context, records []*entity.EventRecord) error {
	for _, record := range records {
		o.events = append(o.events, *record)
	}
	return nil
}
