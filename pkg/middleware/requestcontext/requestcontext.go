package requestcontext

import (
	"context"
	"net/http"

	"github.com/gaze-network/brc20-ledger/common"
	"github.com/gaze-network/brc20-ledger/pkg/logger"
	"github.com/gaze-network/brc20-ledger/pkg/logger/slogx"
	"github.com/gofiber/fiber/v2"
)

// Option enriches the request context before the handler runs.
type Option func(ctx context.Context, c *fiber.Ctx) (context.Context, error)

func New(opts ...Option) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var err error
		ctx := c.UserContext()
		for i, opt := range opts {
			ctx, err = opt(ctx, c)
			if err != nil {
				logger.ErrorContext(ctx, "failed to extract request context",
					slogx.Error(err),
					slogx.String("event", "requestcontext/error"),
					slogx.Int("optionIndex", i),
				)
				message := "internal server error"
				return c.Status(http.StatusInternalServerError).JSON(common.HttpResponse[any]{Error: &message})
			}
		}
		c.SetUserContext(ctx)
		return c.Next()
	}
}
