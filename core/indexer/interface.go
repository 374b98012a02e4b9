package indexer

import (
	"context"

	"github.com/gaze-network/brc20-ledger/core/types"
)

// IndexerWorker is a long-running module worker started by the run command.
type IndexerWorker interface {
	Run(ctx context.Context) error
	Shutdown() error
	ShutdownWithContext(ctx context.Context) error
}

// Input is a unit of work for a processor, one per block.
type Input interface {
	BlockHeader() types.BlockHeader
}

type Processor[T Input] interface {
	Name() string

	// Process processes the input data and indexes it.
	// Inputs are continuous and ordered by height.
	Process(ctx context.Context, inputs []T) error

	// CurrentBlock returns the latest indexed block header.
	CurrentBlock(ctx context.Context) (types.BlockHeader, error)

	// RevertData revert synced data to the specified block height for re-indexing.
	RevertData(ctx context.Context, from int64) error

	// VerifyStates verifies the stored indexer state against the running configuration.
	VerifyStates(ctx context.Context) error

	// Shutdown releases the processor's resources.
	Shutdown(ctx context.Context) error
}
