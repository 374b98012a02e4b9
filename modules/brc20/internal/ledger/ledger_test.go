package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/gaze-network/brc20-ledger/common/errs"
	"github.com/gaze-network/brc20-ledger/modules/brc20/internal/entity"
	"github.com/gaze-network/brc20-ledger/modules/brc20/internal/events"
	"github.com/gaze-network/brc20-ledger/modules/brc20/internal/repository/memory"
	"github.com/gaze-network/uint128"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	alice = "0014aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	bob   = "0014bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
)

func deployOrdi(t *testing.T, l *Ledger, maxSupply uint64) {
	t.Helper()
	require.NoError(t, l.Deploy(context.Background(), &entity.Ticker{
		Tick:         "ordi",
		OriginalTick: "ordi",
		Decimals:     0,
		MaxSupply:    uint128.From64(maxSupply),
		LimitPerMint: uint128.From64(maxSupply),
	}))
}

func TestDeploy(t *testing.T) {
	ctx := context.Background()
	blockTime := time.Unix(1700000000, 0)
	l := New(memory.NewRepository(), 100, blockTime)
	deployOrdi(t, l, 1000)

	ticker, err := l.Ticker(ctx, "ordi")
	require.NoError(t, err)
	assert.Equal(t, uint128.From64(1000), ticker.RemainingSupply)
	assert.True(t, ticker.BurnedSupply.IsZero())
	assert.Equal(t, uint64(100), ticker.DeployBlockHeight)
	assert.Equal(t, uint64(100), ticker.UpdatedAtHeight)
	assert.Equal(t, blockTime, ticker.DeployedAt)

	err = l.Deploy(ctx, &entity.Ticker{Tick: "ordi", MaxSupply: uint128.From64(1)})
	assert.ErrorIs(t, err, ErrDuplicateTicker)
	assert.ErrorIs(t, err, errs.InvalidArgument)

	_, err = l.Ticker(ctx, "pepe")
	assert.ErrorIs(t, err, errs.NotFound)
}

func TestCredit(t *testing.T) {
	ctx := context.Background()
	l := New(memory.NewRepository(), 100, time.Time{})
	deployOrdi(t, l, 1000)

	require.NoError(t, l.Credit(ctx, "ordi", alice, "alice", uint128.From64(600)))
	require.NoError(t, l.Credit(ctx, "ordi", alice, "", uint128.From64(400)))

	err := l.Credit(ctx, "ordi", bob, "bob", uint128.From64(1))
	assert.ErrorIs(t, err, ErrInsufficientSupply)

	err = l.Credit(ctx, "pepe", bob, "bob", uint128.From64(1))
	assert.ErrorIs(t, err, errs.NotFound)

	ticker, err := l.Ticker(ctx, "ordi")
	require.NoError(t, err)
	assert.True(t, ticker.RemainingSupply.IsZero())
	assert.Equal(t, uint128.From64(1000), ticker.MintedSupply())

	balance, err := l.Balance(ctx, "ordi", alice)
	require.NoError(t, err)
	assert.Equal(t, uint128.From64(1000), balance.OverallBalance)
	assert.Equal(t, uint128.From64(1000), balance.AvailableBalance)
	assert.Equal(t, "alice", balance.Wallet, "an empty wallet keeps the known one")
	assert.Equal(t, uint64(100), balance.BlockHeight)
}

func TestLockDebitUnlock(t *testing.T) {
	ctx := context.Background()
	l := New(memory.NewRepository(), 100, time.Time{})
	deployOrdi(t, l, 1000)
	require.NoError(t, l.Credit(ctx, "ordi", alice, "alice", uint128.From64(500)))

	t.Run("lock_more_than_available", func(t *testing.T) {
		err := l.Lock(ctx, "ordi", alice, "alice", uint128.From64(501))
		assert.ErrorIs(t, err, ErrInsufficientBalance)
	})

	require.NoError(t, l.Lock(ctx, "ordi", alice, "alice", uint128.From64(200)))
	balance, err := l.Balance(ctx, "ordi", alice)
	require.NoError(t, err)
	assert.Equal(t, uint128.From64(500), balance.OverallBalance)
	assert.Equal(t, uint128.From64(300), balance.AvailableBalance)
	assert.Equal(t, uint128.From64(200), balance.TransferableBalance())

	t.Run("debit_more_than_locked", func(t *testing.T) {
		err := l.Debit(ctx, "ordi", alice, "alice", uint128.From64(201))
		assert.ErrorIs(t, err, ErrInsufficientBalance)
	})

	require.NoError(t, l.Debit(ctx, "ordi", alice, "alice", uint128.From64(150)))
	require.NoError(t, l.Receive(ctx, "ordi", bob, "bob", uint128.From64(150)))
	require.NoError(t, l.Unlock(ctx, "ordi", alice, "alice", uint128.From64(50)))

	t.Run("unlock_more_than_locked", func(t *testing.T) {
		err := l.Unlock(ctx, "ordi", alice, "alice", uint128.From64(1))
		assert.ErrorIs(t, err, ErrInsufficientBalance)
	})

	aliceBalance, err := l.Balance(ctx, "ordi", alice)
	require.NoError(t, err)
	assert.Equal(t, uint128.From64(350), aliceBalance.OverallBalance)
	assert.Equal(t, uint128.From64(350), aliceBalance.AvailableBalance)

	bobBalance, err := l.Balance(ctx, "ordi", bob)
	require.NoError(t, err)
	assert.Equal(t, uint128.From64(150), bobBalance.OverallBalance)
	assert.Equal(t, uint128.From64(150), bobBalance.AvailableBalance)

	ticker, err := l.Ticker(ctx, "ordi")
	require.NoError(t, err)
	assert.Equal(t, uint128.From64(500), ticker.RemainingSupply, "transfers do not touch supply")
}

func TestWithdraw(t *testing.T) {
	ctx := context.Background()
	l := New(memory.NewRepository(), 100, time.Time{})
	deployOrdi(t, l, 1000)
	require.NoError(t, l.Receive(ctx, "ordi", alice, "", uint128.From64(100)))

	require.ErrorIs(t, l.Withdraw(ctx, "ordi", alice, uint128.From64(101)), ErrInsufficientBalance)
	require.NoError(t, l.Withdraw(ctx, "ordi", alice, uint128.From64(40)))

	balance, err := l.Balance(ctx, "ordi", alice)
	require.NoError(t, err)
	assert.Equal(t, uint128.From64(60), balance.OverallBalance)
	assert.Equal(t, uint128.From64(60), balance.AvailableBalance)
}

func TestBurn(t *testing.T) {
	ctx := context.Background()
	l := New(memory.NewRepository(), 100, time.Time{})
	deployOrdi(t, l, 1000)

	require.NoError(t, l.Burn(ctx, "ordi", uint128.From64(10)))
	require.NoError(t, l.Burn(ctx, "ordi", uint128.From64(5)))
	ticker, err := l.Ticker(ctx, "ordi")
	require.NoError(t, err)
	assert.Equal(t, uint128.From64(15), ticker.BurnedSupply)

	err = l.Burn(ctx, "ordi", uint128.Max)
	assert.ErrorIs(t, err, errs.OverflowUint128)

	ticker, err = l.Ticker(ctx, "ordi")
	require.NoError(t, err)
	assert.Equal(t, uint128.From64(15), ticker.BurnedSupply, "failed burn leaves the supply unchanged")
}

func TestReceiveOverflow(t *testing.T) {
	ctx := context.Background()
	l := New(memory.NewRepository(), 100, time.Time{})
	deployOrdi(t, l, 1000)

	require.NoError(t, l.Receive(ctx, "ordi", alice, "", uint128.Max))
	err := l.Receive(ctx, "ordi", alice, "", uint128.From64(1))
	assert.ErrorIs(t, err, errs.OverflowUint128)
}

func TestTransferValidity(t *testing.T) {
	ctx := context.Background()
	store := memory.NewRepository()
	const inscriptionId = "b61b0172d95e266c18aea0c624db987e971a5d6d4ebc2aaed85da4642d635735i0"

	inscribed := New(store, 100, time.Time{})
	validity, err := inscribed.GetTransferValidity(ctx, inscriptionId, events.IdTransferInscribe)
	require.NoError(t, err)
	assert.Equal(t, entity.ValidityInvalid, validity, "unknown inscriptions are invalid")

	require.NoError(t, inscribed.SetTransferValidity(ctx, inscriptionId, events.IdTransferInscribe, entity.ValidityValid))
	validity, err = inscribed.GetTransferValidity(ctx, inscriptionId, events.IdTransferInscribe)
	require.NoError(t, err)
	assert.Equal(t, entity.ValidityValid, validity)

	validity, err = inscribed.GetTransferValidity(ctx, inscriptionId, events.IdProgWithdrawInscribe)
	require.NoError(t, err)
	assert.Equal(t, entity.ValidityInvalid, validity, "other event kinds see the inscription as invalid")

	transferred := New(store, 105, time.Time{})
	require.NoError(t, transferred.SetTransferValidity(ctx, inscriptionId, events.IdTransferInscribe, entity.ValidityUsed))
	stored, err := store.GetTransferValidity(ctx, inscriptionId)
	require.NoError(t, err)
	assert.Equal(t, entity.ValidityUsed, stored.Validity)
	assert.Equal(t, uint64(100), stored.InscribedHeight)
	assert.Equal(t, uint64(105), stored.UpdatedHeight)
}
