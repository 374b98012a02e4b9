// Package datasources fetches the inscription actions of blocks from an OPI db reader.
package datasources

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/brc20-ledger/common/errs"
	"github.com/gaze-network/brc20-ledger/core/datasources"
	"github.com/gaze-network/brc20-ledger/core/types"
	"github.com/gaze-network/brc20-ledger/internal/subscription"
	"github.com/gaze-network/brc20-ledger/modules/brc20/internal/entity"
	"github.com/gaze-network/brc20-ledger/pkg/httpclient"
	"github.com/gaze-network/brc20-ledger/pkg/logger"
	"github.com/gaze-network/brc20-ledger/pkg/logger/slogx"
	cstream "github.com/planxnx/concurrent-stream"
	"github.com/samber/lo"
)

const (
	methodGetLatestBlockHeight = "getLatestBlockHeight"
	methodGetBlockHashAndTs    = "getBlockHashAndTs"
	methodGetBlockBRC20Txes    = "getBlockBRC20Txes"

	defaultFetchConcurrency = 8
	blocksPerChunk          = 20
)

// Make sure to implement the Datasource interface
var _ datasources.Datasource[*entity.Block] = (*OPIDatasource)(nil)

// OPIDatasource reads blocks from the JSON-RPC API of an OPI db reader.
type OPIDatasource struct {
	client      *httpclient.Client
	concurrency int
	requestId   atomic.Int64
}

func NewOPIDatasource(client *httpclient.Client, concurrency int) *OPIDatasource {
	if concurrency <= 0 {
		concurrency = defaultFetchConcurrency
	}
	return &OPIDatasource{
		client:      client,
		concurrency: concurrency,
	}
}

func (d *OPIDatasource) Name() string {
	return "opi"
}

func (d *OPIDatasource) Fetch(ctx context.Context, from, to int64) ([]*entity.Block, error) {
	ch := make(chan []*entity.Block)
	subscription, err := d.FetchAsync(ctx, from, to, ch)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer subscription.Unsubscribe()

	blocks := make([]*entity.Block, 0)
	for {
		select {
		case b, ok := <-ch:
			if !ok {
				return blocks, nil
			}
			blocks = append(blocks, b...)
		case <-subscription.Done():
			if err := ctx.Err(); err != nil {
				return nil, errors.Wrap(err, "context done")
			}
			// a failed chunk reports its error before the subscription is done
			select {
			case err := <-subscription.Err():
				if err != nil {
					return nil, errors.Wrap(err, "got error while fetch async")
				}
			default:
			}
			return blocks, nil
		case err := <-subscription.Err():
			if err != nil {
				return nil, errors.Wrap(err, "got error while fetch async")
			}
			return blocks, nil
		case <-ctx.Done():
			return nil, errors.Wrap(ctx.Err(), "context done")
		}
	}
}

// FetchAsync fetches blocks in parallel chunks and delivers them in height order. A negative to
// fetches up to the latest block of the db reader.
func (d *OPIDatasource) FetchAsync(ctx context.Context, from, to int64, ch chan<- []*entity.Block) (*subscription.ClientSubscription[[]*entity.Block], error) {
	from, to, skip, err := d.prepareRange(ctx, from, to)
	if err != nil {
		return nil, errors.Wrap(err, "failed to prepare fetch range")
	}

	subscription := subscription.NewSubscription(ch)
	if skip {
		if err := subscription.UnsubscribeWithContext(ctx); err != nil {
			return nil, errors.Wrap(err, "failed to unsubscribe")
		}
		return subscription.Client(), nil
	}

	// results are delivered in the order the chunks were submitted
	out := make(chan []*entity.Block)
	stream := cstream.NewStream(ctx, d.concurrency, out)

	blockHeights := make([]int64, 0, to-from+1)
	for i := from; i <= to; i++ {
		blockHeights = append(blockHeights, i)
	}

	go func() {
		defer close(out)
		_ = stream.Wait()
	}()

	go func() {
		defer subscription.Close()
		failed := false
		for {
			select {
			case data, ok := <-out:
				if !ok {
					return
				}
				// only a failed chunk is empty, blocks after it would leave a gap.
				// keep draining so in-flight chunks can finish.
				if len(data) == 0 {
					if !failed {
						failed = true
						subscription.Close()
					}
					continue
				}
				if failed {
					continue
				}
				if err := subscription.Send(ctx, data); err != nil {
					logger.ErrorContext(ctx, "failed while dispatch block",
						slogx.Error(err),
						slogx.Int64("start", data[0].Header.Height),
						slogx.Int64("end", data[len(data)-1].Header.Height),
					)
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		defer stream.Close()
		done := subscription.Done()
		for _, chunk := range lo.Chunk(blockHeights, blocksPerChunk) {
			chunk := chunk
			select {
			case <-done:
				return
			case <-ctx.Done():
				return
			default:
				stream.Go(func() []*entity.Block {
					fromHeight, toHeight := chunk[0], chunk[len(chunk)-1]
					blocks, err := d.fetchRange(ctx, fromHeight, toHeight)
					if err != nil {
						logger.ErrorContext(ctx, "failed to get blocks",
							slogx.Error(err),
							slogx.Int64("from_height", fromHeight),
							slogx.Int64("to_height", toHeight),
						)
						if err := subscription.SendError(ctx, errors.Wrapf(err, "failed to get blocks: from_height: %d, to_height: %d", fromHeight, toHeight)); err != nil {
							logger.ErrorContext(ctx, "failed to send error", slogx.Error(err))
						}
						return nil
					}
					return blocks
				})
			}
		}
	}()

	return subscription.Client(), nil
}

func (d *OPIDatasource) GetBlockHeader(ctx context.Context, height int64) (types.BlockHeader, error) {
	header, err := d.getBlockHeader(ctx, height)
	if err != nil {
		return types.BlockHeader{}, errors.WithStack(err)
	}
	if height > 0 {
		prev, err := d.getBlockHeader(ctx, height-1)
		if err != nil {
			return types.BlockHeader{}, errors.WithStack(err)
		}
		header.PrevBlock = prev.Hash
	}
	return header, nil
}

// GetLatestBlockHeight returns the latest block height the db reader has indexed.
func (d *OPIDatasource) GetLatestBlockHeight(ctx context.Context) (int64, error) {
	var height *int64
	if err := d.call(ctx, methodGetLatestBlockHeight, nil, &height); err != nil {
		return 0, errors.WithStack(err)
	}
	if height == nil {
		return 0, errors.Wrap(errs.NotFound, "latest block height not found")
	}
	return *height, nil
}

func (d *OPIDatasource) prepareRange(ctx context.Context, fromHeight, toHeight int64) (start, end int64, skip bool, err error) {
	start = fromHeight
	end = toHeight

	latestHeight, err := d.GetLatestBlockHeight(ctx)
	if err != nil {
		return -1, -1, false, errors.Wrap(err, "failed to get latest block height")
	}

	if start < 0 {
		start = 0
	}
	if end < 0 || end > latestHeight {
		end = latestHeight
	}
	if start > end {
		return -1, -1, true, nil
	}
	return start, end, false, nil
}

// fetchRange fetches the blocks of [from, to] in order, chaining PrevBlock from the hash of the block below.
func (d *OPIDatasource) fetchRange(ctx context.Context, from, to int64) ([]*entity.Block, error) {
	var prevHash chainhash.Hash
	if from > 0 {
		prev, err := d.getBlockHeader(ctx, from-1)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		prevHash = prev.Hash
	}

	blocks := make([]*entity.Block, 0, to-from+1)
	for height := from; height <= to; height++ {
		header, err := d.getBlockHeader(ctx, height)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		header.PrevBlock = prevHash
		transfers, err := d.getBlockTransfers(ctx, height)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		blocks = append(blocks, &entity.Block{
			Header:    header,
			Transfers: transfers,
		})
		prevHash = header.Hash
	}
	return blocks, nil
}

type blockInfo struct {
	BlockHash string `json:"block_hash"`
	Timestamp int64  `json:"timestamp"`
}

func (d *OPIDatasource) getBlockHeader(ctx context.Context, height int64) (types.BlockHeader, error) {
	var info *blockInfo
	if err := d.call(ctx, methodGetBlockHashAndTs, []any{height}, &info); err != nil {
		return types.BlockHeader{}, errors.WithStack(err)
	}
	if info == nil {
		return types.BlockHeader{}, errors.Wrapf(errs.NotFound, "block %d not found", height)
	}
	hash, err := chainhash.NewHashFromStr(info.BlockHash)
	if err != nil {
		return types.BlockHeader{}, errors.Wrapf(err, "invalid hash of block %d", height)
	}
	return types.BlockHeader{
		Hash:      *hash,
		Height:    height,
		Timestamp: time.Unix(info.Timestamp, 0).UTC(),
	}, nil
}

type brc20Tx struct {
	TxId              string  `json:"txid"`
	InscriptionId     string  `json:"inscription_id"`
	InscriptionNumber int64   `json:"inscription_number"`
	OldSatpoint       *string `json:"old_satpoint"`
	NewSatpoint       string  `json:"new_satpoint"`
	NewPkScript       string  `json:"new_pkscript"`
	NewWallet         string  `json:"new_wallet"`
	SentAsFee         bool    `json:"sent_as_fee"`
	ContentHex        string  `json:"content_hex"`
	ByteLen           uint32  `json:"byte_len"`
	ContentTypeHex    string  `json:"content_type_hex"`
	ParentId          *string `json:"parent_id"`
}

func (d *OPIDatasource) getBlockTransfers(ctx context.Context, height int64) ([]*entity.BRC20Tx, error) {
	var txs *[]brc20Tx
	if err := d.call(ctx, methodGetBlockBRC20Txes, []any{height}, &txs); err != nil {
		return nil, errors.WithStack(err)
	}
	if txs == nil {
		return nil, errors.Wrapf(errs.NotFound, "transfers of block %d not found", height)
	}
	return lo.Map(*txs, func(tx brc20Tx, _ int) *entity.BRC20Tx {
		return mapBRC20Tx(ctx, tx)
	}), nil
}

// mapBRC20Tx decodes the inscription content. Content that is not a JSON object is left empty,
// the event generator skips it.
func mapBRC20Tx(ctx context.Context, tx brc20Tx) *entity.BRC20Tx {
	result := &entity.BRC20Tx{
		TxId:              tx.TxId,
		InscriptionId:     tx.InscriptionId,
		InscriptionNumber: tx.InscriptionNumber,
		OldSatpoint:       tx.OldSatpoint,
		NewSatpoint:       tx.NewSatpoint,
		NewPkScript:       tx.NewPkScript,
		NewWallet:         tx.NewWallet,
		SentAsFee:         tx.SentAsFee,
		ByteLen:           tx.ByteLen,
		ParentId:          tx.ParentId,
	}
	if contentType, err := hex.DecodeString(tx.ContentTypeHex); err == nil {
		result.ContentType = string(contentType)
	}
	raw, err := hex.DecodeString(tx.ContentHex)
	if err != nil {
		logger.DebugContext(ctx, "invalid inscription content hex", slogx.String("inscriptionId", tx.InscriptionId), slogx.Error(err))
		return result
	}
	var content map[string]any
	if err := json.Unmarshal(raw, &content); err != nil {
		logger.DebugContext(ctx, "inscription content is not a json object", slogx.String("inscriptionId", tx.InscriptionId))
		return result
	}
	result.Content = content
	return result
}
