package httphandler

import (
	"encoding/hex"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/brc20-ledger/common"
	"github.com/gaze-network/brc20-ledger/common/errs"
	"github.com/gaze-network/brc20-ledger/modules/brc20/internal/entity"
	"github.com/gaze-network/brc20-ledger/pkg/btcutils"
	"github.com/gaze-network/brc20-ledger/pkg/decimals"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type getBalancesByAddressRequest struct {
	Wallet      string `params:"wallet"`
	Tick        string `query:"tick"`
	BlockHeight uint64 `query:"blockHeight"`
}

func (r getBalancesByAddressRequest) Validate() error {
	var errList []error
	if r.Wallet == "" {
		errList = append(errList, errors.New("'wallet' is required"))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type balance struct {
	Tick                string          `json:"tick"`
	OriginalTick        string          `json:"originalTick"`
	Decimals            uint16          `json:"decimals"`
	OverallBalance      decimal.Decimal `json:"overallBalance"`
	AvailableBalance    decimal.Decimal `json:"availableBalance"`
	TransferableBalance decimal.Decimal `json:"transferableBalance"`
}

type getBalancesByAddressResult struct {
	BlockHeight uint64    `json:"blockHeight"`
	Wallet      string    `json:"wallet"`
	PkScript    string    `json:"pkScript"`
	List        []balance `json:"list"`
}

type getBalancesByAddressResponse = common.HttpResponse[getBalancesByAddressResult]

func (h *HttpHandler) GetBalancesByAddress(ctx *fiber.Ctx) (err error) {
	var req getBalancesByAddressRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := ctx.QueryParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	pkScript, err := btcutils.ToPkScript(h.network, req.Wallet)
	if err != nil {
		return errs.NewPublicError("unable to resolve pkscript from \"wallet\"")
	}
	pkScriptHex := hex.EncodeToString(pkScript)

	blockHeight, err := h.resolveBlockHeight(ctx, req.BlockHeight)
	if err != nil {
		return errors.WithStack(err)
	}

	balances, err := h.usecase.GetBalancesByPkScript(ctx.UserContext(), pkScriptHex, blockHeight)
	if err != nil {
		return errors.Wrap(err, "error during GetBalancesByPkScript")
	}
	if req.Tick != "" {
		balances = filterBalancesByTick(balances, req.Tick)
	}

	// amounts are stored in minimal units, the ticker decimals are needed to render them
	var (
		mu      sync.Mutex
		tickers = make(map[string]*entity.Ticker, len(balances))
	)
	group, groupctx := errgroup.WithContext(ctx.UserContext())
	for _, b := range balances {
		group.Go(func() error {
			ticker, err := h.usecase.GetTickerAtHeight(groupctx, b.Tick, blockHeight)
			if err != nil {
				return errors.Wrapf(err, "error during GetTickerAtHeight for %s", b.Tick)
			}
			mu.Lock()
			defer mu.Unlock()
			tickers[b.Tick] = ticker
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return errors.WithStack(err)
	}

	list := make([]balance, 0, len(balances))
	for _, b := range balances {
		ticker := tickers[b.Tick]
		list = append(list, balance{
			Tick:                ticker.Tick,
			OriginalTick:        ticker.OriginalTick,
			Decimals:            ticker.Decimals,
			OverallBalance:      decimals.ToDecimal(b.OverallBalance, ticker.Decimals),
			AvailableBalance:    decimals.ToDecimal(b.AvailableBalance, ticker.Decimals),
			TransferableBalance: decimals.ToDecimal(b.TransferableBalance(), ticker.Decimals),
		})
	}

	resp := getBalancesByAddressResponse{
		Result: &getBalancesByAddressResult{
			BlockHeight: blockHeight,
			Wallet:      btcutils.ResolveWallet(pkScript, h.network),
			PkScript:    pkScriptHex,
			List:        list,
		},
	}

	return errors.WithStack(ctx.JSON(resp))
}

func filterBalancesByTick(balances []*entity.Balance, tick string) []*entity.Balance {
	tick = strings.ToLower(tick)
	return lo.Filter(balances, func(b *entity.Balance, _ int) bool {
		return b.Tick == tick
	})
}
