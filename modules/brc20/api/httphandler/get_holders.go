package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/brc20-ledger/common"
	"github.com/gaze-network/brc20-ledger/common/errs"
	"github.com/gaze-network/brc20-ledger/modules/brc20/internal/entity"
	"github.com/gaze-network/brc20-ledger/pkg/decimals"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type getHoldersRequest struct {
	paginationRequest
	Tick        string `params:"tick"`
	BlockHeight uint64 `query:"blockHeight"`
}

func (r getHoldersRequest) Validate() error {
	var errList []error
	if err := r.paginationRequest.Validate(); err != nil {
		errList = append(errList, err)
	}
	if r.Tick == "" {
		errList = append(errList, errors.New("'tick' is required"))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type holdingBalance struct {
	Wallet              string          `json:"wallet"`
	PkScript            string          `json:"pkScript"`
	OverallBalance      decimal.Decimal `json:"overallBalance"`
	AvailableBalance    decimal.Decimal `json:"availableBalance"`
	TransferableBalance decimal.Decimal `json:"transferableBalance"`
	Percent             float64         `json:"percent"`
}

func newHoldingBalance(b *entity.Balance, ticker *entity.Ticker) holdingBalance {
	overall := decimals.ToDecimal(b.OverallBalance, ticker.Decimals)
	var percent float64
	if minted := ticker.MintedSupply(); !minted.IsZero() {
		percent = overall.Div(decimals.ToDecimal(minted, ticker.Decimals)).InexactFloat64()
	}
	return holdingBalance{
		Wallet:              b.Wallet,
		PkScript:            b.PkScript,
		OverallBalance:      overall,
		AvailableBalance:    decimals.ToDecimal(b.AvailableBalance, ticker.Decimals),
		TransferableBalance: decimals.ToDecimal(b.TransferableBalance(), ticker.Decimals),
		Percent:             percent,
	}
}

type getHoldersResult struct {
	BlockHeight uint64           `json:"blockHeight"`
	Tick        string           `json:"tick"`
	Decimals    uint16           `json:"decimals"`
	List        []holdingBalance `json:"list"`
}

type getHoldersResponse = common.HttpResponse[getHoldersResult]

func (h *HttpHandler) GetHolders(ctx *fiber.Ctx) (err error) {
	var req getHoldersRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := ctx.QueryParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}
	if err := req.ParseDefault(); err != nil {
		return errors.WithStack(err)
	}

	blockHeight, err := h.resolveBlockHeight(ctx, req.BlockHeight)
	if err != nil {
		return errors.WithStack(err)
	}

	ticker, err := h.usecase.GetTickerAtHeight(ctx.UserContext(), req.Tick, blockHeight)
	if err != nil {
		if errors.Is(err, errs.NotFound) {
			return errors.Mark(errs.NewPublicError("ticker not found"), errs.NotFound)
		}
		return errors.Wrap(err, "error during GetTickerAtHeight")
	}
	balances, err := h.usecase.GetBalancesByTick(ctx.UserContext(), req.Tick, blockHeight, req.Limit, req.Offset)
	if err != nil {
		return errors.Wrap(err, "error during GetBalancesByTick")
	}

	resp := getHoldersResponse{
		Result: &getHoldersResult{
			BlockHeight: blockHeight,
			Tick:        ticker.Tick,
			Decimals:    ticker.Decimals,
			List: lo.Map(balances, func(b *entity.Balance, _ int) holdingBalance {
				return newHoldingBalance(b, ticker)
			}),
		},
	}

	return errors.WithStack(ctx.JSON(resp))
}
