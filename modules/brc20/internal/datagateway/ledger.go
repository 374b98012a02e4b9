package datagateway

import (
	"context"

	"github.com/gaze-network/brc20-ledger/modules/brc20/internal/entity"
)

// LedgerStore is the state the event generator and processor read and mutate for one block.
type LedgerStore interface {
	LedgerReader
	LedgerWriter
}

type LedgerReader interface {
	// GetTicker returns errs.NotFound if the ticker is not deployed.
	GetTicker(ctx context.Context, tick string) (*entity.Ticker, error)
	// GetBalance returns errs.NotFound if pkScript never held the ticker.
	GetBalance(ctx context.Context, tick string, pkScript string) (*entity.Balance, error)
	// GetTransferValidity returns errs.NotFound if the inscription was never inscribed as transfer-like.
	GetTransferValidity(ctx context.Context, inscriptionId string) (*entity.TransferValidity, error)
	// GetEventRecordByInscriptionId returns the event of the given event id generated from the inscription.
	GetEventRecordByInscriptionId(ctx context.Context, inscriptionId string, eventId int) (*entity.EventRecord, error)
}

type LedgerWriter interface {
	// PutTicker creates or updates a ticker. Supply changes are kept per UpdatedAtHeight.
	PutTicker(ctx context.Context, ticker *entity.Ticker) error
	// PutBalance creates or updates a balance. Changes are kept per BlockHeight.
	PutBalance(ctx context.Context, balance *entity.Balance) error
	PutTransferValidity(ctx context.Context, validity *entity.TransferValidity) error
	CreateEventRecords(ctx context.Context, records []*entity.EventRecord) error
}
