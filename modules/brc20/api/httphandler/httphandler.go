package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/brc20-ledger/common"
	"github.com/gaze-network/brc20-ledger/common/errs"
	"github.com/gaze-network/brc20-ledger/modules/brc20/internal/usecase"
	"github.com/gofiber/fiber/v2"
)

type HttpHandler struct {
	usecase *usecase.Usecase
	network common.Network
}

func New(network common.Network, usecase *usecase.Usecase) *HttpHandler {
	return &HttpHandler{
		network: network,
		usecase: usecase,
	}
}

// resolveBlockHeight defaults a zero height to the latest indexed block.
func (h *HttpHandler) resolveBlockHeight(ctx *fiber.Ctx, blockHeight uint64) (uint64, error) {
	if blockHeight != 0 {
		return blockHeight, nil
	}
	blockHeader, err := h.usecase.GetLatestBlock(ctx.UserContext())
	if err != nil {
		if errors.Is(err, errs.NotFound) {
			return 0, errs.NewPublicError("no block has been indexed yet")
		}
		return 0, errors.Wrap(err, "error during GetLatestBlock")
	}
	return uint64(blockHeader.Height), nil
}
