package memory

import (
	"context"
	"testing"

	"github.com/gaze-network/brc20-ledger/common/errs"
	"github.com/gaze-network/brc20-ledger/modules/brc20/internal/entity"
	"github.com/gaze-network/brc20-ledger/modules/brc20/internal/events"
	"github.com/gaze-network/uint128"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pkScript = "0014aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"

func balanceAt(height uint64, overall uint64) *entity.Balance {
	return &entity.Balance{
		Tick:             "ordi",
		PkScript:         pkScript,
		OverallBalance:   uint128.From64(overall),
		AvailableBalance: uint128.From64(overall),
		BlockHeight:      height,
	}
}

func TestTx(t *testing.T) {
	ctx := context.Background()

	t.Run("commit", func(t *testing.T) {
		repo := NewRepository()
		tx, err := repo.BeginBRC20Tx(ctx)
		require.NoError(t, err)
		require.NoError(t, tx.PutTicker(ctx, &entity.Ticker{Tick: "ordi", UpdatedAtHeight: 1}))

		_, err = repo.GetTicker(ctx, "ordi")
		assert.ErrorIs(t, err, errs.NotFound, "uncommitted writes are not visible")

		require.NoError(t, tx.Commit(ctx))
		require.NoError(t, tx.Rollback(ctx), "rollback after commit is a no-op")
		_, err = repo.GetTicker(ctx, "ordi")
		assert.NoError(t, err)
	})
	t.Run("rollback", func(t *testing.T) {
		repo := NewRepository()
		tx, err := repo.BeginBRC20Tx(ctx)
		require.NoError(t, err)
		require.NoError(t, tx.PutBalance(ctx, balanceAt(1, 10)))
		require.NoError(t, tx.Rollback(ctx))

		_, err = repo.GetBalance(ctx, "ordi", pkScript)
		assert.ErrorIs(t, err, errs.NotFound)
	})
	t.Run("nested", func(t *testing.T) {
		repo := NewRepository()
		tx, err := repo.BeginBRC20Tx(ctx)
		require.NoError(t, err)
		_, err = tx.BeginBRC20Tx(ctx)
		assert.ErrorIs(t, err, ErrTxAlreadyExists)
	})
}

func TestBalanceHistory(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()
	require.NoError(t, repo.PutBalance(ctx, balanceAt(10, 100)))
	require.NoError(t, repo.PutBalance(ctx, balanceAt(12, 50)))
	require.NoError(t, repo.PutBalance(ctx, balanceAt(12, 70)))
	require.NoError(t, repo.PutBalance(ctx, balanceAt(15, 0)))

	testcases := []struct {
		height   uint64
		expected []uint64
	}{
		{9, nil},
		{10, []uint64{100}},
		{11, []uint64{100}},
		{12, []uint64{70}},
		{15, nil},
	}
	for _, tc := range testcases {
		balances, err := repo.GetBalancesByPkScript(ctx, pkScript, tc.height)
		require.NoError(t, err)
		overall := make([]uint64, 0)
		for _, b := range balances {
			overall = append(overall, b.OverallBalance.Lo)
		}
		if tc.expected == nil {
			assert.Empty(t, overall, "height %d", tc.height)
			continue
		}
		assert.Equal(t, tc.expected, overall, "height %d", tc.height)
	}

	require.NoError(t, repo.DeleteBalancesSinceHeight(ctx, 12))
	balance, err := repo.GetBalance(ctx, "ordi", pkScript)
	require.NoError(t, err)
	assert.Equal(t, uint128.From64(100), balance.OverallBalance)
	assert.Equal(t, uint64(10), balance.BlockHeight)
}

func TestGetBalancesByTick(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()
	for i, overall := range []uint64{30, 10, 20, 0} {
		require.NoError(t, repo.PutBalance(ctx, &entity.Balance{
			Tick:           "ordi",
			PkScript:       string(rune('a' + i)),
			OverallBalance: uint128.From64(overall),
			BlockHeight:    1,
		}))
	}

	balances, err := repo.GetBalancesByTick(ctx, "ordi", 1, 10, 0)
	require.NoError(t, err)
	require.Len(t, balances, 3)
	assert.Equal(t, []string{"a", "c", "b"}, []string{balances[0].PkScript, balances[1].PkScript, balances[2].PkScript})

	balances, err = repo.GetBalancesByTick(ctx, "ordi", 1, 1, 1)
	require.NoError(t, err)
	require.Len(t, balances, 1)
	assert.Equal(t, "c", balances[0].PkScript)

	balances, err = repo.GetBalancesByTick(ctx, "ordi", 1, 10, 5)
	require.NoError(t, err)
	assert.Empty(t, balances)
}

func TestDeleteSinceHeight(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()
	require.NoError(t, repo.PutTicker(ctx, &entity.Ticker{Tick: "ordi", DeployBlockHeight: 10, UpdatedAtHeight: 10, RemainingSupply: uint128.From64(100)}))
	require.NoError(t, repo.PutTicker(ctx, &entity.Ticker{Tick: "ordi", DeployBlockHeight: 10, UpdatedAtHeight: 11, RemainingSupply: uint128.From64(60)}))
	require.NoError(t, repo.PutTicker(ctx, &entity.Ticker{Tick: "pepe", DeployBlockHeight: 11, UpdatedAtHeight: 11}))
	require.NoError(t, repo.PutTransferValidity(ctx, &entity.TransferValidity{InscriptionId: "a", Validity: entity.ValidityUsed, InscribedHeight: 10, UpdatedHeight: 11}))
	require.NoError(t, repo.PutTransferValidity(ctx, &entity.TransferValidity{InscriptionId: "b", Validity: entity.ValidityValid, InscribedHeight: 11, UpdatedHeight: 11}))
	require.NoError(t, repo.CreateEventRecords(ctx, []*entity.EventRecord{
		{BlockHeight: 10, Sequence: 0, InscriptionId: "a", Event: &events.TransferInscribe{}},
		{BlockHeight: 11, Sequence: 0, InscriptionId: "a", Event: &events.TransferTransfer{}},
	}))
	require.NoError(t, repo.CreateIndexedBlock(ctx, &entity.IndexedBlock{Height: 10}))
	require.NoError(t, repo.CreateIndexedBlock(ctx, &entity.IndexedBlock{Height: 11}))

	require.NoError(t, repo.DeleteTickersSinceHeight(ctx, 11))
	require.NoError(t, repo.DeleteTransferValiditiesSinceHeight(ctx, 11))
	require.NoError(t, repo.DeleteEventRecordsSinceHeight(ctx, 11))
	require.NoError(t, repo.DeleteIndexedBlocksSinceHeight(ctx, 11))

	ordi, err := repo.GetTicker(ctx, "ordi")
	require.NoError(t, err)
	assert.Equal(t, uint128.From64(100), ordi.RemainingSupply)
	_, err = repo.GetTicker(ctx, "pepe")
	assert.ErrorIs(t, err, errs.NotFound)

	a, err := repo.GetTransferValidity(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, entity.ValidityValid, a.Validity)
	_, err = repo.GetTransferValidity(ctx, "b")
	assert.ErrorIs(t, err, errs.NotFound)

	_, err = repo.GetEventRecordByInscriptionId(ctx, "a", events.IdTransferTransfer)
	assert.ErrorIs(t, err, errs.NotFound)
	_, err = repo.GetEventRecordByInscriptionId(ctx, "a", events.IdTransferInscribe)
	assert.NoError(t, err)

	latest, err := repo.GetLatestBlock(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(10), latest.Height)
}

func TestCreateConflicts(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()
	require.NoError(t, repo.CreateIndexedBlock(ctx, &entity.IndexedBlock{Height: 1}))
	assert.ErrorIs(t, repo.CreateIndexedBlock(ctx, &entity.IndexedBlock{Height: 1}), errs.ConflictSetting)

	record := &entity.EventRecord{BlockHeight: 1, Sequence: 0, Event: &events.MintInscribe{}}
	require.NoError(t, repo.CreateEventRecords(ctx, []*entity.EventRecord{record}))
	assert.ErrorIs(t, repo.CreateEventRecords(ctx, []*entity.EventRecord{record}), errs.ConflictSetting)
}

func TestOverlay(t *testing.T) {
	ctx := context.Background()
	base := NewRepository()
	require.NoError(t, base.PutBalance(ctx, balanceAt(1, 100)))
	overlay := NewOverlay(base)

	balance, err := overlay.GetBalance(ctx, "ordi", pkScript)
	require.NoError(t, err)
	balance.OverallBalance = uint128.From64(1)
	require.NoError(t, overlay.PutBalance(ctx, balance))

	fromOverlay, err := overlay.GetBalance(ctx, "ordi", pkScript)
	require.NoError(t, err)
	assert.Equal(t, uint128.From64(1), fromOverlay.OverallBalance)

	fromBase, err := base.GetBalance(ctx, "ordi", pkScript)
	require.NoError(t, err)
	assert.Equal(t, uint128.From64(100), fromBase.OverallBalance, "overlay writes never reach base")

	require.NoError(t, overlay.CreateEventRecords(ctx, []*entity.EventRecord{
		{BlockHeight: 2, InscriptionId: "x", Event: &events.TransferInscribe{}},
	}))
	record, err := overlay.GetEventRecordByInscriptionId(ctx, "x", events.IdTransferInscribe)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), record.BlockHeight)
	_, err = base.GetEventRecordByInscriptionId(ctx, "x", events.IdTransferInscribe)
	assert.ErrorIs(t, err, errs.NotFound)
}
