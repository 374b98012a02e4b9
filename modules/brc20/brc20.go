package brc20

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/brc20-ledger/common/errs"
	"github.com/gaze-network/brc20-ledger/core/datasources"
	"github.com/gaze-network/brc20-ledger/core/indexer"
	"github.com/gaze-network/brc20-ledger/internal/config"
	"github.com/gaze-network/brc20-ledger/internal/postgres"
	"github.com/gaze-network/brc20-ledger/modules/brc20/api/httphandler"
	"github.com/gaze-network/brc20-ledger/modules/brc20/internal/datagateway"
	brc20datasources "github.com/gaze-network/brc20-ledger/modules/brc20/internal/datasources"
	"github.com/gaze-network/brc20-ledger/modules/brc20/internal/entity"
	brc20postgres "github.com/gaze-network/brc20-ledger/modules/brc20/internal/repository/postgres"
	"github.com/gaze-network/brc20-ledger/modules/brc20/internal/usecase"
	"github.com/gaze-network/brc20-ledger/pkg/httpclient"
	"github.com/gaze-network/brc20-ledger/pkg/logger"
	"github.com/gaze-network/brc20-ledger/pkg/logger/slogx"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/do/v2"
	"github.com/samber/lo"
)

func New(injector do.Injector) (indexer.IndexerWorker, error) {
	ctx := do.MustInvoke[context.Context](injector)
	conf := do.MustInvoke[config.Config](injector)

	cleanupFuncs := make([]func(context.Context) error, 0)
	var brc20Dg datagateway.BRC20DataGateway
	var indexerInfoDg datagateway.IndexerInfoDataGateway
	switch strings.ToLower(conf.Modules.BRC20.Database) {
	case "postgresql", "postgres", "pg":
		pg, err := postgres.NewPool(ctx, conf.Modules.BRC20.Postgres)
		if err != nil {
			if errors.Is(err, errs.InvalidArgument) {
				return nil, errors.Wrap(err, "Invalid Postgres configuration for indexer")
			}
			return nil, errors.Wrap(err, "can't create Postgres connection pool")
		}
		cleanupFuncs = append(cleanupFuncs, func(ctx context.Context) error {
			pg.Close()
			return nil
		})
		brc20Repo := brc20postgres.NewRepository(pg)
		brc20Dg = brc20Repo
		indexerInfoDg = brc20Repo
	default:
		return nil, errors.Wrapf(errs.Unsupported, "%q database for indexer is not supported", conf.Modules.BRC20.Database)
	}

	var brc20Datasource datasources.Datasource[*entity.Block]
	switch strings.ToLower(conf.Modules.BRC20.Datasource) {
	case "opi", "":
		client, err := httpclient.New(conf.Modules.BRC20.OPI.URL, httpclient.Config{
			Debug: conf.Modules.BRC20.OPI.Debug,
		})
		if err != nil {
			return nil, errors.Wrap(err, "can't create OPI client")
		}
		brc20Datasource = brc20datasources.NewOPIDatasource(client, conf.Modules.BRC20.OPI.FetchConcurrency)
	default:
		return nil, errors.Wrapf(errs.Unsupported, "%q datasource is not supported", conf.Modules.BRC20.Datasource)
	}

	processor := NewProcessor(brc20Dg, indexerInfoDg, conf.Network, conf.Modules.BRC20.ProgEnabled, cleanupFuncs)
	if err := processor.VerifyStates(ctx); err != nil {
		return nil, errors.WithStack(err)
	}
	if conf.RevertTo > 0 && !conf.APIOnly {
		logger.WarnContext(ctx, "Reverting indexed data", slogx.Int64("from", conf.RevertTo))
		if err := processor.RevertData(ctx, conf.RevertTo); err != nil {
			return nil, errors.Wrap(err, "can't revert indexed data")
		}
	}

	// Mount API
	apiHandlers := lo.Uniq(conf.Modules.BRC20.APIHandlers)
	for _, handler := range apiHandlers {
		switch handler {
		case "http":
			httpServer := do.MustInvoke[*fiber.App](injector)
			uc := usecase.New(brc20Dg)
			httpHandler := httphandler.New(conf.Network, uc)
			if err := httpHandler.Mount(httpServer); err != nil {
				return nil, errors.Wrap(err, "can't mount API")
			}
			logger.InfoContext(ctx, "Mounted HTTP handler")
		default:
			return nil, errors.Wrapf(errs.Unsupported, "%q API handler is not supported", handler)
		}
	}

	indexer := indexer.New(processor, brc20Datasource)
	return indexer, nil
}
