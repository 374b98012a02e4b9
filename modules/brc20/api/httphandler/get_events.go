package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/brc20-ledger/common"
	"github.com/gaze-network/brc20-ledger/common/errs"
	"github.com/gaze-network/brc20-ledger/modules/brc20/internal/entity"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

type getEventsRequest struct {
	Height uint64 `params:"height"`
}

type event struct {
	Sequence          int32   `json:"sequence"`
	Name              string  `json:"name"`
	InscriptionId     string  `json:"inscriptionId"`
	InscriptionNumber int64   `json:"inscriptionNumber"`
	TxId              string  `json:"txId"`
	OldSatpoint       *string `json:"oldSatpoint"`
	NewSatpoint       string  `json:"newSatpoint"`
	Tick              string  `json:"tick,omitempty"`
	Line              string  `json:"line"`
}

type getEventsResult struct {
	BlockHeight uint64  `json:"blockHeight"`
	List        []event `json:"list"`
}

type getEventsResponse = common.HttpResponse[getEventsResult]

// GetEvents returns the event log of one block in application order.
func (h *HttpHandler) GetEvents(ctx *fiber.Ctx) (err error) {
	var req getEventsRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errs.NewPublicError("invalid block height")
	}

	records, err := h.usecase.GetEventRecordsByHeight(ctx.UserContext(), req.Height)
	if err != nil {
		return errors.Wrap(err, "error during GetEventRecordsByHeight")
	}

	resp := getEventsResponse{
		Result: &getEventsResult{
			BlockHeight: req.Height,
			List: lo.Map(records, func(r *entity.EventRecord, _ int) event {
				return event{
					Sequence:          r.Sequence,
					Name:              r.Event.Name(),
					InscriptionId:     r.InscriptionId,
					InscriptionNumber: r.InscriptionNumber,
					TxId:              r.TxId,
					OldSatpoint:       r.OldSatpoint,
					NewSatpoint:       r.NewSatpoint,
					Tick:              r.Tick,
					Line:              r.Line(),
				}
			}),
		},
	}

	return errors.WithStack(ctx.JSON(resp))
}
