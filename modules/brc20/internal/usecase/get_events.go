package usecase

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/brc20-ledger/modules/brc20/internal/entity"
)

func (u *Usecase) GetEventRecordsByHeight(ctx context.Context, height uint64) ([]*entity.EventRecord, error) {
	records, err := u.dg.GetEventRecordsByHeight(ctx, height)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get event records by height")
	}
	return records, nil
}
