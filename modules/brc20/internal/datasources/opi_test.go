package datasources

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/gaze-network/brc20-ledger/common/errs"
	"github.com/gaze-network/brc20-ledger/pkg/httpclient"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOPI serves the db reader JSON-RPC methods for blocks 0..latest.
type fakeOPI struct {
	latest    *int64
	txs       map[int64][]brc20Tx
	failTxsAt int64
}

func fakeBlockHash(height int64) string {
	return fmt.Sprintf("%064x", height+1)
}

func (f *fakeOPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Id     int64   `json:"id"`
		Method string  `json:"method"`
		Params []int64 `json:"params"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	resp := map[string]any{"jsonrpc": "2.0", "id": req.Id}
	switch req.Method {
	case methodGetLatestBlockHeight:
		resp["result"] = f.latest
	case methodGetBlockHashAndTs:
		if height := req.Params[0]; f.latest != nil && height <= *f.latest {
			resp["result"] = blockInfo{BlockHash: fakeBlockHash(height), Timestamp: 1700000000 + height}
		} else {
			resp["result"] = nil
		}
	case methodGetBlockBRC20Txes:
		height := req.Params[0]
		if height == f.failTxsAt {
			resp["error"] = rpcError{Code: -32000, Message: "db reader is syncing"}
			break
		}
		txs := f.txs[height]
		if txs == nil {
			txs = []brc20Tx{}
		}
		resp["result"] = txs
	default:
		resp["error"] = rpcError{Code: -32601, Message: "method not found"}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func newTestDatasource(t *testing.T, opi *fakeOPI) *OPIDatasource {
	t.Helper()
	server := httptest.NewServer(opi)
	t.Cleanup(server.Close)
	client, err := httpclient.New(server.URL)
	require.NoError(t, err)
	return NewOPIDatasource(client, 2)
}

func mustHash(t *testing.T, s string) chainhash.Hash {
	t.Helper()
	hash, err := chainhash.NewHashFromStr(s)
	require.NoError(t, err)
	return *hash
}

func TestFetch(t *testing.T) {
	deploy := `{"p":"brc-20","op":"deploy","tick":"ordi","max":"21000000","lim":"1000"}`
	opi := &fakeOPI{
		latest:    lo.ToPtr(int64(45)),
		failTxsAt: -1,
		txs: map[int64][]brc20Tx{
			21: {
				{
					TxId:              "aa",
					InscriptionId:     "aai0",
					InscriptionNumber: 7,
					NewSatpoint:       "aa:0:0",
					NewPkScript:       "0014aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
					ContentHex:        hex.EncodeToString([]byte(deploy)),
					ContentTypeHex:    hex.EncodeToString([]byte("text/plain")),
					ByteLen:           uint32(len(deploy)),
				},
				{
					TxId:          "bb",
					InscriptionId: "bbi0",
					OldSatpoint:   lo.ToPtr("bb:0:0"),
					NewSatpoint:   "cc:0:0",
					SentAsFee:     true,
					ContentHex:    hex.EncodeToString([]byte("hello")),
				},
			},
		},
	}
	d := newTestDatasource(t, opi)
	ctx := context.Background()

	latest, err := d.GetLatestBlockHeight(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(45), latest)

	blocks, err := d.Fetch(ctx, 10, -1)
	require.NoError(t, err)
	require.Len(t, blocks, 36)
	for i, block := range blocks {
		height := int64(10 + i)
		assert.Equal(t, height, block.Header.Height)
		assert.Equal(t, mustHash(t, fakeBlockHash(height)), block.Header.Hash)
		assert.Equal(t, mustHash(t, fakeBlockHash(height-1)), block.Header.PrevBlock, "height %d", height)
	}

	txs := blocks[11].Transfers
	require.Len(t, txs, 2)
	assert.Equal(t, "aai0", txs[0].InscriptionId)
	assert.True(t, txs[0].IsInscribe())
	assert.Equal(t, "text/plain", txs[0].ContentType)
	tick, ok := txs[0].ContentString("tick")
	assert.True(t, ok)
	assert.Equal(t, "ordi", tick)
	assert.False(t, txs[1].IsInscribe())
	assert.True(t, txs[1].SentAsFee)
	assert.Nil(t, txs[1].Content, "non-json content is left empty")

	t.Run("range_beyond_latest", func(t *testing.T) {
		blocks, err := d.Fetch(ctx, 46, -1)
		require.NoError(t, err)
		assert.Empty(t, blocks)
	})
	t.Run("bounded_range", func(t *testing.T) {
		blocks, err := d.Fetch(ctx, 0, 2)
		require.NoError(t, err)
		require.Len(t, blocks, 3)
		assert.Equal(t, chainhash.Hash{}, blocks[0].Header.PrevBlock)
		assert.Equal(t, blocks[1].Header.Hash, blocks[2].Header.PrevBlock)
	})
}

func TestFetchError(t *testing.T) {
	d := newTestDatasource(t, &fakeOPI{latest: lo.ToPtr(int64(5)), failTxsAt: 3})
	_, err := d.Fetch(context.Background(), 0, -1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db reader is syncing")
}

func TestGetBlockHeader(t *testing.T) {
	d := newTestDatasource(t, &fakeOPI{latest: lo.ToPtr(int64(5)), failTxsAt: -1})
	ctx := context.Background()

	header, err := d.GetBlockHeader(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, mustHash(t, fakeBlockHash(3)), header.Hash)
	assert.Equal(t, mustHash(t, fakeBlockHash(2)), header.PrevBlock)
	assert.Equal(t, int64(1700000003), header.Timestamp.Unix())

	_, err = d.GetBlockHeader(ctx, 6)
	assert.ErrorIs(t, err, errs.NotFound)
}

func TestGetLatestBlockHeightNotFound(t *testing.T) {
	d := newTestDatasource(t, &fakeOPI{failTxsAt: -1})
	_, err := d.GetLatestBlockHeight(context.Background())
	assert.ErrorIs(t, err, errs.NotFound)
}
