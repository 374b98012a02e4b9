package usecase

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/brc20-ledger/modules/brc20/internal/entity"
)

func (u *Usecase) GetBalancesByPkScript(ctx context.Context, pkScript string, blockHeight uint64) ([]*entity.Balance, error) {
	balances, err := u.dg.GetBalancesByPkScript(ctx, pkScript, blockHeight)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get balances by pkscript")
	}
	return balances, nil
}

func (u *Usecase) GetBalancesByTick(ctx context.Context, tick string, blockHeight uint64, limit, offset int32) ([]*entity.Balance, error) {
	balances, err := u.dg.GetBalancesByTick(ctx, strings.ToLower(tick), blockHeight, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get balances by tick")
	}
	return balances, nil
}
