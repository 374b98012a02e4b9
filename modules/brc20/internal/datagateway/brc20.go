package datagateway

import (
	"context"

	"github.com/gaze-network/brc20-ledger/core/types"
	"github.com/gaze-network/brc20-ledger/modules/brc20/internal/entity"
)

type BRC20DataGateway interface {
	BRC20ReaderDataGateway
	BRC20WriterDataGateway

	// BeginBRC20Tx returns a new BRC20DataGateway with transaction enabled. All write operations performed in this datagateway must be committed to persist changes.
	BeginBRC20Tx(ctx context.Context) (BRC20DataGatewayWithTx, error)
}

type BRC20DataGatewayWithTx interface {
	BRC20DataGateway
	Tx
}

type BRC20ReaderDataGateway interface {
	LedgerReader

	GetLatestBlock(ctx context.Context) (types.BlockHeader, error)
	GetIndexedBlockByHeight(ctx context.Context, height int64) (*entity.IndexedBlock, error)
	GetEventRecordsByHeight(ctx context.Context, height uint64) ([]*entity.EventRecord, error)

	// GetTickerAtHeight returns the ticker with its supplies as of the end of blockHeight.
	GetTickerAtHeight(ctx context.Context, tick string, blockHeight uint64) (*entity.Ticker, error)
	// GetBalancesByPkScript returns the non-empty balances of pkScript as of the end of blockHeight.
	GetBalancesByPkScript(ctx context.Context, pkScript string, blockHeight uint64) ([]*entity.Balance, error)
	// GetBalancesByTick returns the non-empty balances of a ticker as of the end of blockHeight, largest first.
	GetBalancesByTick(ctx context.Context, tick string, blockHeight uint64, limit, offset int32) ([]*entity.Balance, error)
}

type BRC20WriterDataGateway interface {
	LedgerWriter

	CreateIndexedBlock(ctx context.Context, block *entity.IndexedBlock) error
	CreateTiming(ctx context.Context, timing *entity.Timing) error

	// used for revert data
	DeleteIndexedBlocksSinceHeight(ctx context.Context, height uint64) error
	DeleteEventRecordsSinceHeight(ctx context.Context, height uint64) error
	DeleteTickersSinceHeight(ctx context.Context, height uint64) error
	DeleteBalancesSinceHeight(ctx context.Context, height uint64) error
	DeleteTransferValiditiesSinceHeight(ctx context.Context, height uint64) error
	DeleteTimingsSinceHeight(ctx context.Context, height uint64) error
}
