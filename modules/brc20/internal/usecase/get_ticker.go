package usecase

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/brc20-ledger/modules/brc20/internal/entity"
)

// GetTickerAtHeight accepts the tick in any case.
func (u *Usecase) GetTickerAtHeight(ctx context.Context, tick string, blockHeight uint64) (*entity.Ticker, error) {
	ticker, err := u.dg.GetTickerAtHeight(ctx, strings.ToLower(tick), blockHeight)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get ticker by tick and height")
	}
	return ticker, nil
}
