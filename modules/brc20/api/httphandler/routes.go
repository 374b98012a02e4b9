package httphandler

import (
	"github.com/gofiber/fiber/v2"
)

func (h *HttpHandler) Mount(router fiber.Router) error {
	r := router.Group("/v1/brc20")

	r.Get("/block", h.GetCurrentBlock)
	r.Get("/blocks/:height/events", h.GetEvents)
	r.Get("/tickers/:tick", h.GetTickerInfo)
	r.Get("/tickers/:tick/holders", h.GetHolders)
	r.Get("/balances/wallet/:wallet", h.GetBalancesByAddress)
	return nil
}
