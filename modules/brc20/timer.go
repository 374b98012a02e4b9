package brc20

import (
	"context"
	"fmt"
	"time"

	"github.com/gaze-network/brc20-ledger/modules/brc20/internal/datagateway"
	"github.com/gaze-network/brc20-ledger/modules/brc20/internal/entity"
	"github.com/gaze-network/brc20-ledger/pkg/logger"
	"github.com/gaze-network/brc20-ledger/pkg/logger/slogx"
)

type timer struct {
	label  string
	height uint64
	start  time.Time
}

func startBlockTimer(height uint64) *timer {
	return &timer{
		label:  fmt.Sprintf("block#%d", height),
		height: height,
		start:  time.Now(),
	}
}

// stop records the elapsed time. Failures are logged and dropped.
func (t *timer) stop(ctx context.Context, dg datagateway.BRC20WriterDataGateway) {
	elapsed := time.Since(t.start)
	if err := dg.CreateTiming(ctx, &entity.Timing{
		Label:       t.label,
		BlockHeight: t.height,
		Elapsed:     elapsed,
		CreatedAt:   time.Now(),
	}); err != nil {
		logger.WarnContext(ctx, "failed to record timing",
			slogx.Error(err),
			slogx.String("label", t.label),
			slogx.Duration("elapsed", elapsed),
		)
	}
}
