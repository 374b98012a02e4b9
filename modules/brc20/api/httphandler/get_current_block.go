package httphandler

import (
	"encoding/hex"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/brc20-ledger/common"
	"github.com/gaze-network/brc20-ledger/common/errs"
	"github.com/gaze-network/brc20-ledger/modules/brc20/internal/brc20"
	"github.com/gofiber/fiber/v2"
)

type getCurrentBlockResult struct {
	Hash                string `json:"hash"`
	Height              int64  `json:"height"`
	EventHash           string `json:"eventHash,omitempty"`
	CumulativeEventHash string `json:"cumulativeEventHash,omitempty"`
}

type getCurrentBlockResponse = common.HttpResponse[getCurrentBlockResult]

func (h *HttpHandler) GetCurrentBlock(ctx *fiber.Ctx) (err error) {
	blockHeader, err := h.usecase.GetLatestBlock(ctx.UserContext())
	if err != nil {
		if !errors.Is(err, errs.NotFound) {
			return errors.Wrap(err, "error during get latest block")
		}
		blockHeader = brc20.StartingBlockHeader(h.network)
		return errors.WithStack(ctx.JSON(getCurrentBlockResponse{
			Result: &getCurrentBlockResult{
				Hash:   blockHeader.Hash.String(),
				Height: blockHeader.Height,
			},
		}))
	}

	block, err := h.usecase.GetIndexedBlockByHeight(ctx.UserContext(), blockHeader.Height)
	if err != nil {
		return errors.Wrap(err, "error during GetIndexedBlockByHeight")
	}

	resp := getCurrentBlockResponse{
		Result: &getCurrentBlockResult{
			Hash:                block.Hash.String(),
			Height:              int64(block.Height),
			EventHash:           hex.EncodeToString(block.EventHash),
			CumulativeEventHash: hex.EncodeToString(block.CumulativeEventHash),
		},
	}

	return errors.WithStack(ctx.JSON(resp))
}
