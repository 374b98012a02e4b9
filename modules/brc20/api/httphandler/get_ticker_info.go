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
	"golang.org/x/sync/errgroup"
)

const getTickerInfoTopHolders = 10

type getTickerInfoRequest struct {
	Tick        string `params:"tick"`
	BlockHeight uint64 `query:"blockHeight"`
}

func (r getTickerInfoRequest) Validate() error {
	var errList []error
	if r.Tick == "" {
		errList = append(errList, errors.New("'tick' is required"))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type getTickerInfoResult struct {
	Tick                string           `json:"tick"`
	OriginalTick        string           `json:"originalTick"`
	Decimals            uint16           `json:"decimals"`
	MaxSupply           decimal.Decimal  `json:"maxSupply"`
	LimitPerMint        decimal.Decimal  `json:"limitPerMint"`
	MintedAmount        decimal.Decimal  `json:"mintedAmount"`
	BurnedAmount        decimal.Decimal  `json:"burnedAmount"`
	CirculatingSupply   decimal.Decimal  `json:"circulatingSupply"`
	IsSelfMint          bool             `json:"isSelfMint"`
	DeployInscriptionId string           `json:"deployInscriptionId"`
	DeployedAt          int64            `json:"deployedAt"`
	DeployedAtHeight    uint64           `json:"deployedAtHeight"`
	TopHolders          []holdingBalance `json:"topHolders"`
}

type getTickerInfoResponse = common.HttpResponse[getTickerInfoResult]

func (h *HttpHandler) GetTickerInfo(ctx *fiber.Ctx) (err error) {
	var req getTickerInfoRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := ctx.QueryParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	blockHeight, err := h.resolveBlockHeight(ctx, req.BlockHeight)
	if err != nil {
		return errors.WithStack(err)
	}

	group, groupctx := errgroup.WithContext(ctx.UserContext())
	var (
		ticker   *entity.Ticker
		balances []*entity.Balance
	)
	group.Go(func() error {
		var err error
		ticker, err = h.usecase.GetTickerAtHeight(groupctx, req.Tick, blockHeight)
		if err != nil {
			if errors.Is(err, errs.NotFound) {
				return errors.Mark(errs.NewPublicError("ticker not found"), errs.NotFound)
			}
			return errors.Wrap(err, "error during GetTickerAtHeight")
		}
		return nil
	})
	group.Go(func() error {
		var err error
		balances, err = h.usecase.GetBalancesByTick(groupctx, req.Tick, blockHeight, getTickerInfoTopHolders, 0)
		if err != nil {
			return errors.Wrap(err, "error during GetBalancesByTick")
		}
		return nil
	})
	if err := group.Wait(); err != nil {
		return errors.WithStack(err)
	}

	minted := ticker.MintedSupply()
	resp := getTickerInfoResponse{
		Result: &getTickerInfoResult{
			Tick:                ticker.Tick,
			OriginalTick:        ticker.OriginalTick,
			Decimals:            ticker.Decimals,
			MaxSupply:           decimals.ToDecimal(ticker.MaxSupply, ticker.Decimals),
			LimitPerMint:        decimals.ToDecimal(ticker.LimitPerMint, ticker.Decimals),
			MintedAmount:        decimals.ToDecimal(minted, ticker.Decimals),
			BurnedAmount:        decimals.ToDecimal(ticker.BurnedSupply, ticker.Decimals),
			CirculatingSupply:   decimals.ToDecimal(minted.Sub(ticker.BurnedSupply), ticker.Decimals),
			IsSelfMint:          ticker.IsSelfMint,
			DeployInscriptionId: ticker.DeployInscriptionId,
			DeployedAt:          ticker.DeployedAt.Unix(),
			DeployedAtHeight:    ticker.DeployBlockHeight,
			TopHolders: lo.Map(balances, func(b *entity.Balance, _ int) holdingBalance {
				return newHoldingBalance(b, ticker)
			}),
		},
	}

	return errors.WithStack(ctx.JSON(resp))
}
