package brc20

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/brc20-ledger/common"
	"github.com/gaze-network/brc20-ledger/common/errs"
	"github.com/gaze-network/brc20-ledger/core/types"
	"github.com/gaze-network/brc20-ledger/modules/brc20/internal/brc20"
	"github.com/gaze-network/brc20-ledger/modules/brc20/internal/datagateway"
	"github.com/gaze-network/brc20-ledger/modules/brc20/internal/entity"
	"github.com/gaze-network/brc20-ledger/modules/brc20/internal/events"
	"github.com/gaze-network/brc20-ledger/modules/brc20/internal/ledger"
	"github.com/gaze-network/brc20-ledger/modules/brc20/internal/repository/memory"
	"github.com/gaze-network/uint128"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	alicePkScript = "0014aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	bobPkScript   = "0014bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
)

func blockHash(height int64) chainhash.Hash {
	return chainhash.Hash{0xbc, byte(height >> 8), byte(height)}
}

func newBlock(height int64, txs ...*entity.BRC20Tx) *entity.Block {
	return &entity.Block{
		Header: types.BlockHeader{
			Hash:      blockHash(height),
			Height:    height,
			PrevBlock: blockHash(height - 1),
			Timestamp: time.Unix(1700000000+height*600, 0).UTC(),
		},
		Transfers: txs,
	}
}

func inscriptionId(n int) string {
	return fmt.Sprintf("%064xi0", n)
}

func inscribeTx(n int, pkScript string, content map[string]any) *entity.BRC20Tx {
	id := inscriptionId(n)
	return &entity.BRC20Tx{
		TxId:              id[:64],
		InscriptionId:     id,
		InscriptionNumber: int64(n),
		NewSatpoint:       id[:64] + ":0:0",
		NewPkScript:       pkScript,
		Content:           content,
		ContentType:       "text/plain;charset=utf-8",
	}
}

// transferTx moves inscription n to pkScript. An empty pkScript means it was spent as fee.
func transferTx(n int, pkScript string, content map[string]any) *entity.BRC20Tx {
	id := inscriptionId(n)
	txId := fmt.Sprintf("%064x", 1000+n)
	return &entity.BRC20Tx{
		TxId:              txId,
		InscriptionId:     id,
		InscriptionNumber: int64(n),
		OldSatpoint:       lo.ToPtr(id[:64] + ":0:0"),
		NewSatpoint:       txId + ":0:0",
		NewPkScript:       pkScript,
		SentAsFee:         pkScript == "",
		Content:           content,
		ContentType:       "text/plain;charset=utf-8",
	}
}

func deployContent(tick, maxSupply, lim string) map[string]any {
	return map[string]any{"p": "brc-20", "op": "deploy", "tick": tick, "max": maxSupply, "lim": lim, "dec": "0"}
}

func mintContent(tick, amt string) map[string]any {
	return map[string]any{"p": "brc-20", "op": "mint", "tick": tick, "amt": amt}
}

func transferContent(tick, amt string) map[string]any {
	return map[string]any{"p": "brc-20", "op": "transfer", "tick": tick, "amt": amt}
}

func withdrawContent(tick, amt string) map[string]any {
	return map[string]any{"p": "brc20-module", "op": "withdraw", "tick": tick, "amt": amt, "module": "BRC20PROG"}
}

func newTestProcessor(dg datagateway.BRC20DataGateway, repo *memory.Repository) *Processor {
	return NewProcessor(dg, repo, common.NetworkRegtest, true, nil)
}

func assertBalance(t *testing.T, repo *memory.Repository, pkScript string, overall, available uint64) {
	t.Helper()
	balance, err := repo.GetBalance(context.Background(), "ordi", pkScript)
	if overall == 0 && errors.Is(err, errs.NotFound) {
		return
	}
	require.NoError(t, err)
	assert.Equal(t, uint128.From64(overall), balance.OverallBalance, "overall balance of %s", pkScript)
	assert.Equal(t, uint128.From64(available), balance.AvailableBalance, "available balance of %s", pkScript)
}

func eventNames(t *testing.T, repo *memory.Repository, height uint64) []string {
	t.Helper()
	records, err := repo.GetEventRecordsByHeight(context.Background(), height)
	require.NoError(t, err)
	return lo.Map(records, func(record *entity.EventRecord, _ int) string { return record.Event.Name() })
}

func TestProcessDeployMintTransfer(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository()
	p := newTestProcessor(repo, repo)

	blocks := []*entity.Block{
		newBlock(1,
			inscribeTx(1, alicePkScript, deployContent("ORDI", "1000", "100")),
			inscribeTx(2, alicePkScript, mintContent("ordi", "100")),
			inscribeTx(3, alicePkScript, mintContent("ordi", "150")), // above the limit
			inscribeTx(4, bobPkScript, deployContent("ordi", "5", "1")),
		),
		newBlock(2,
			inscribeTx(5, alicePkScript, transferContent("ordi", "60")),
			inscribeTx(6, alicePkScript, transferContent("ordi", "50")), // 40 left available
		),
		newBlock(3,
			transferTx(5, bobPkScript, transferContent("ordi", "60")),
			transferTx(5, alicePkScript, transferContent("ordi", "60")), // already used
		),
	}
	require.NoError(t, p.Process(ctx, blocks))

	assert.Equal(t, []string{events.NameDeployInscribe, events.NameMintInscribe}, eventNames(t, repo, 1))
	assert.Equal(t, []string{events.NameTransferInscribe}, eventNames(t, repo, 2))
	assert.Equal(t, []string{events.NameTransferTransfer}, eventNames(t, repo, 3))

	assertBalance(t, repo, alicePkScript, 40, 40)
	assertBalance(t, repo, bobPkScript, 60, 60)

	ticker, err := repo.GetTicker(ctx, "ordi")
	require.NoError(t, err)
	assert.Equal(t, "ORDI", ticker.OriginalTick)
	assert.Equal(t, inscriptionId(1), ticker.DeployInscriptionId)
	assert.Equal(t, uint128.From64(900), ticker.RemainingSupply)
	assert.Equal(t, uint64(1), ticker.DeployBlockHeight)

	records, err := repo.GetEventRecordsByHeight(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "mint-inscribe;"+inscriptionId(2)+";"+alicePkScript+";ordi;ordi;100;", records[1].Line())

	latest, err := p.CurrentBlock(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), latest.Height)
	assert.Equal(t, blockHash(3), latest.Hash)
	assert.Len(t, repo.Timings(), 3)
}

func TestProcessMintCapsAtRemainingSupply(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository()
	p := newTestProcessor(repo, repo)

	require.NoError(t, p.Process(ctx, []*entity.Block{
		newBlock(1,
			inscribeTx(1, alicePkScript, deployContent("ordi", "150", "100")),
			inscribeTx(2, alicePkScript, mintContent("ordi", "100")),
			inscribeTx(3, bobPkScript, mintContent("ordi", "100")),
			inscribeTx(4, bobPkScript, mintContent("ordi", "1")),
		),
	}))

	assertBalance(t, repo, alicePkScript, 100, 100)
	assertBalance(t, repo, bobPkScript, 50, 50)
	assert.Equal(t, []string{events.NameDeployInscribe, events.NameMintInscribe, events.NameMintInscribe}, eventNames(t, repo, 1))
}

func TestProcessTransferDestinations(t *testing.T) {
	testcases := []struct {
		name          string
		to            string
		aliceOverall  uint64
		burned        uint64
		progOverall   uint64
		expectedSpent *string
	}{
		{
			name:         "spent_as_fee_returns_to_sender",
			to:           "",
			aliceOverall: 100,
		},
		{
			name:          "op_return_burns",
			to:            brc20.OpReturnPkScript,
			aliceOverall:  70,
			burned:        30,
			expectedSpent: lo.ToPtr(brc20.OpReturnPkScript),
		},
		{
			name:          "prog_module_deposit",
			to:            brc20.ProgPkScript,
			aliceOverall:  70,
			progOverall:   30,
			expectedSpent: lo.ToPtr(brc20.ProgPkScript),
		},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			repo := memory.NewRepository()
			p := newTestProcessor(repo, repo)

			require.NoError(t, p.Process(ctx, []*entity.Block{
				newBlock(1,
					inscribeTx(1, alicePkScript, deployContent("ordi", "1000", "100")),
					inscribeTx(2, alicePkScript, mintContent("ordi", "100")),
					inscribeTx(3, alicePkScript, transferContent("ordi", "30")),
				),
				newBlock(2, transferTx(3, tc.to, transferContent("ordi", "30"))),
			}))

			assertBalance(t, repo, alicePkScript, tc.aliceOverall, tc.aliceOverall)
			assertBalance(t, repo, brc20.ProgPkScript, tc.progOverall, tc.progOverall)

			ticker, err := repo.GetTicker(ctx, "ordi")
			require.NoError(t, err)
			assert.Equal(t, uint128.From64(tc.burned), ticker.BurnedSupply)

			records, err := repo.GetEventRecordsByHeight(ctx, 2)
			require.NoError(t, err)
			require.Len(t, records, 1)
			transfer, ok := records[0].Event.(*events.TransferTransfer)
			require.True(t, ok)
			assert.Equal(t, tc.expectedSpent, transfer.SpentPkScript)

			validity, err := repo.GetTransferValidity(ctx, inscriptionId(3))
			require.NoError(t, err)
			assert.Equal(t, entity.ValidityUsed, validity.Validity)
		})
	}
}

func TestProcessProgWithdraw(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository()
	p := newTestProcessor(repo, repo)

	require.NoError(t, p.Process(ctx, []*entity.Block{
		newBlock(1,
			inscribeTx(1, alicePkScript, deployContent("ordi", "1000", "100")),
			inscribeTx(2, alicePkScript, mintContent("ordi", "100")),
			inscribeTx(3, alicePkScript, transferContent("ordi", "50")),
		),
		newBlock(2,
			transferTx(3, brc20.ProgPkScript, transferContent("ordi", "50")),
			inscribeTx(4, alicePkScript, withdrawContent("ordi", "20")),
			inscribeTx(5, alicePkScript, withdrawContent("ordi", "80")),
		),
		newBlock(3,
			transferTx(4, bobPkScript, withdrawContent("ordi", "20")),
			transferTx(5, bobPkScript, withdrawContent("ordi", "80")), // more than the module holds
		),
	}))

	assert.Equal(t, []string{
		events.NameTransferTransfer,
		events.NameProgWithdrawInscribe,
		events.NameProgWithdrawInscribe,
	}, eventNames(t, repo, 2))
	assert.Equal(t, []string{events.NameProgWithdrawTransfer, events.NameProgWithdrawTransfer}, eventNames(t, repo, 3))

	assertBalance(t, repo, alicePkScript, 50, 50)
	assertBalance(t, repo, brc20.ProgPkScript, 30, 30)
	assertBalance(t, repo, bobPkScript, 20, 20)

	for _, n := range []int{4, 5} {
		validity, err := repo.GetTransferValidity(ctx, inscriptionId(n))
		require.NoError(t, err)
		assert.Equal(t, entity.ValidityUsed, validity.Validity)
	}
}

func TestProcessProgDisabled(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository()
	p := NewProcessor(repo, repo, common.NetworkRegtest, false, nil)

	require.NoError(t, p.Process(ctx, []*entity.Block{
		newBlock(1,
			inscribeTx(1, alicePkScript, deployContent("ordi", "1000", "100")),
			inscribeTx(2, alicePkScript, mintContent("ordi", "100")),
			inscribeTx(3, alicePkScript, transferContent("ordi", "50")),
			inscribeTx(4, alicePkScript, withdrawContent("ordi", "20")),
			inscribeTx(5, alicePkScript, map[string]any{"p": "brc20-prog", "op": "deploy", "d": "0x6080"}),
		),
		newBlock(2, transferTx(3, brc20.ProgPkScript, transferContent("ordi", "50"))),
	}))

	assert.Equal(t, []string{events.NameDeployInscribe, events.NameMintInscribe, events.NameTransferInscribe}, eventNames(t, repo, 1))
	assertBalance(t, repo, alicePkScript, 50, 50)
	assertBalance(t, repo, brc20.ProgPkScript, 0, 0)

	ticker, err := repo.GetTicker(ctx, "ordi")
	require.NoError(t, err)
	assert.Equal(t, uint128.From64(50), ticker.BurnedSupply, "deposits burn while the module is disabled")

	validity, err := repo.GetTransferValidity(ctx, inscriptionId(3))
	require.NoError(t, err)
	assert.Equal(t, entity.ValidityValid, validity.Validity, "a burned deposit does not use up the inscription")
}

func TestProcessProgInscriptions(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository()
	p := newTestProcessor(repo, repo)

	deploy := map[string]any{"p": "brc20-prog", "op": "d", "d": "0x6080"}
	call := map[string]any{"p": "brc20-prog", "op": "call", "c": "0x1234", "b": "YWJj"}
	invalid := map[string]any{"p": "brc20-prog", "op": "transact", "d": "0x02", "b": "AQID"}

	require.NoError(t, p.Process(ctx, []*entity.Block{
		newBlock(1,
			inscribeTx(1, alicePkScript, deploy),
			inscribeTx(2, alicePkScript, call),
			inscribeTx(3, alicePkScript, invalid),
		),
		newBlock(2,
			transferTx(1, brc20.ProgPkScript, deploy),
			transferTx(2, bobPkScript, call), // not sent to the module, stays valid
		),
	}))

	assert.Equal(t, []string{events.NameProgDeployInscribe, events.NameProgCallInscribe}, eventNames(t, repo, 1))
	assert.Equal(t, []string{events.NameProgDeployTransfer}, eventNames(t, repo, 2))

	deployValidity, err := repo.GetTransferValidity(ctx, inscriptionId(1))
	require.NoError(t, err)
	assert.Equal(t, entity.ValidityUsed, deployValidity.Validity)
	callValidity, err := repo.GetTransferValidity(ctx, inscriptionId(2))
	require.NoError(t, err)
	assert.Equal(t, entity.ValidityValid, callValidity.Validity)
}

func TestProcessPredeploy(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository()
	p := newTestProcessor(repo, repo)

	const salt = "0a0b0c"
	hash, err := brc20.PredeployHash("abcdef", salt, alicePkScript)
	require.NoError(t, err)
	predeploy := inscribeTx(1, alicePkScript, map[string]any{"p": "brc-20", "op": "predeploy", "hash": hash})

	deploy := func(n int) *entity.BRC20Tx {
		content := deployContent("abcdef", "1000", "10")
		content["salt"] = salt
		tx := inscribeTx(n, alicePkScript, content)
		tx.ParentId = lo.ToPtr(inscriptionId(1))
		return tx
	}

	require.NoError(t, p.Process(ctx, []*entity.Block{
		newBlock(1, predeploy),
		newBlock(2, deploy(2)), // too early
		newBlock(3),
		newBlock(4, deploy(3)),
	}))

	assert.Equal(t, []string{events.NamePredeployInscribe}, eventNames(t, repo, 1))
	assert.Empty(t, eventNames(t, repo, 2))
	assert.Equal(t, []string{events.NameDeployInscribe}, eventNames(t, repo, 4))

	ticker, err := repo.GetTicker(ctx, "abcdef")
	require.NoError(t, err)
	assert.Equal(t, inscriptionId(3), ticker.DeployInscriptionId)
}

// failingIndexedBlockDg fails the last write of every block transaction.
type failingIndexedBlockDg struct {
	*memory.Repository
}

func (d failingIndexedBlockDg) BeginBRC20Tx(ctx context.Context) (datagateway.BRC20DataGatewayWithTx, error) {
	tx, err := d.Repository.BeginBRC20Tx(ctx)
	if err != nil {
		return nil, err
	}
	return failingIndexedBlockTx{tx}, nil
}

type failingIndexedBlockTx struct {
	datagateway.BRC20DataGatewayWithTx
}

func (failingIndexedBlockTx) CreateIndexedBlock(context.Context, *entity.IndexedBlock) error {
	return errors.New("connection reset")
}

func TestProcessAtomicity(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository()
	require.NoError(t, newTestProcessor(repo, repo).Process(ctx, []*entity.Block{
		newBlock(1,
			inscribeTx(1, alicePkScript, deployContent("ordi", "1000", "100")),
			inscribeTx(2, alicePkScript, mintContent("ordi", "100")),
		),
	}))

	failing := newTestProcessor(failingIndexedBlockDg{repo}, repo)
	err := failing.Process(ctx, []*entity.Block{
		newBlock(2,
			inscribeTx(3, bobPkScript, mintContent("ordi", "100")),
			inscribeTx(4, alicePkScript, transferContent("ordi", "10")),
		),
	})
	require.Error(t, err)

	assertBalance(t, repo, alicePkScript, 100, 100)
	assertBalance(t, repo, bobPkScript, 0, 0)
	assert.Empty(t, eventNames(t, repo, 2))
	_, err = repo.GetTransferValidity(ctx, inscriptionId(4))
	assert.ErrorIs(t, err, errs.NotFound)

	latest, err := repo.GetLatestBlock(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), latest.Height)
}

func TestProcessReorgHalts(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository()
	p := newTestProcessor(repo, repo)
	require.NoError(t, p.Process(ctx, []*entity.Block{newBlock(1)}))

	forked := newBlock(2, inscribeTx(1, alicePkScript, deployContent("ordi", "1000", "100")))
	forked.Header.PrevBlock = chainhash.Hash{0xff}
	err := p.Process(ctx, []*entity.Block{forked})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrReorgHalted)
	assert.ErrorIs(t, err, errs.Unrecoverable)

	_, err = repo.GetTicker(ctx, "ordi")
	assert.ErrorIs(t, err, errs.NotFound)
	latest, err := p.CurrentBlock(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), latest.Height)
}

func TestRevertAndReplay(t *testing.T) {
	ctx := context.Background()
	blocks := []*entity.Block{
		newBlock(1,
			inscribeTx(1, alicePkScript, deployContent("ordi", "1000", "100")),
			inscribeTx(2, alicePkScript, mintContent("ordi", "100")),
		),
		newBlock(2,
			inscribeTx(3, bobPkScript, mintContent("ordi", "100")),
			inscribeTx(4, alicePkScript, transferContent("ordi", "40")),
		),
		newBlock(3, transferTx(4, bobPkScript, transferContent("ordi", "40"))),
	}

	repo := memory.NewRepository()
	p := newTestProcessor(repo, repo)
	require.NoError(t, p.Process(ctx, blocks))
	head, err := repo.GetIndexedBlockByHeight(ctx, 3)
	require.NoError(t, err)

	require.NoError(t, p.RevertData(ctx, 2))
	latest, err := p.CurrentBlock(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), latest.Height)
	assertBalance(t, repo, alicePkScript, 100, 100)
	assertBalance(t, repo, bobPkScript, 0, 0)
	ticker, err := repo.GetTicker(ctx, "ordi")
	require.NoError(t, err)
	assert.Equal(t, uint128.From64(900), ticker.RemainingSupply)
	_, err = repo.GetTransferValidity(ctx, inscriptionId(4))
	assert.ErrorIs(t, err, errs.NotFound)

	require.NoError(t, p.Process(ctx, blocks[1:]))
	replayed, err := repo.GetIndexedBlockByHeight(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, head.EventHash, replayed.EventHash)
	assert.Equal(t, head.CumulativeEventHash, replayed.CumulativeEventHash)
	assertBalance(t, repo, alicePkScript, 60, 60)
	assertBalance(t, repo, bobPkScript, 140, 140)

	// a fresh replay of the same blocks reaches the same checkpoint
	fresh := memory.NewRepository()
	require.NoError(t, newTestProcessor(fresh, fresh).Process(ctx, blocks))
	freshHead, err := fresh.GetIndexedBlockByHeight(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, head.CumulativeEventHash, freshHead.CumulativeEventHash)
}

func TestVerifyStates(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository()

	require.NoError(t, newTestProcessor(repo, repo).VerifyStates(ctx))
	state, err := repo.GetLatestIndexerState(ctx)
	require.NoError(t, err)
	assert.Equal(t, common.NetworkRegtest, state.Network)
	assert.Equal(t, int32(DBVersion), state.DBVersion)

	require.NoError(t, newTestProcessor(repo, repo).VerifyStates(ctx))

	err = NewProcessor(repo, repo, common.NetworkMainnet, true, nil).VerifyStates(ctx)
	assert.ErrorIs(t, err, errs.ConflictSetting)

	require.NoError(t, repo.CreateIndexerState(ctx, entity.IndexerState{
		DBVersion:        DBVersion,
		EventHashVersion: EventHashVersion + 1,
		Network:          common.NetworkRegtest,
	}))
	err = newTestProcessor(repo, repo).VerifyStates(ctx)
	assert.ErrorIs(t, err, errs.ConflictSetting)
}

func TestCurrentBlockBeforeFirstBlock(t *testing.T) {
	repo := memory.NewRepository()
	header, err := newTestProcessor(repo, repo).CurrentBlock(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(-1), header.Height)
}

func TestProcessCheckpoint(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository()
	p := newTestProcessor(repo, repo)

	first := newBlock(1,
		inscribeTx(1, alicePkScript, deployContent("ordi", "1000", "100")),
		inscribeTx(2, alicePkScript, mintContent("ordi", "100")),
	)
	require.NoError(t, p.Process(ctx, []*entity.Block{first}))

	t.Run("indexed_block_is_skipped", func(t *testing.T) {
		require.NoError(t, p.Process(ctx, []*entity.Block{first}))
		assertBalance(t, repo, alicePkScript, 100, 100)
		assert.Len(t, eventNames(t, repo, 1), 2)
		assert.Len(t, repo.Timings(), 1)
	})
	t.Run("replay_overlapping_checkpoint", func(t *testing.T) {
		second := newBlock(2, inscribeTx(3, bobPkScript, mintContent("ordi", "100")))
		require.NoError(t, p.Process(ctx, []*entity.Block{first, second}))
		assertBalance(t, repo, alicePkScript, 100, 100)
		assertBalance(t, repo, bobPkScript, 100, 100)

		latest, err := p.CurrentBlock(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), latest.Height)
	})
	t.Run("gap_after_checkpoint", func(t *testing.T) {
		err := p.Process(ctx, []*entity.Block{newBlock(4, inscribeTx(4, bobPkScript, mintContent("ordi", "100")))})
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.InternalError)

		assertBalance(t, repo, bobPkScript, 100, 100)
		latest, err := p.CurrentBlock(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), latest.Height)
	})
}

func TestApplyLedgerErrorOnLastEvent(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository()
	p := newTestProcessor(repo, repo)
	require.NoError(t, p.Process(ctx, []*entity.Block{
		newBlock(1,
			inscribeTx(1, alicePkScript, deployContent("ordi", "1000", "100")),
			inscribeTx(2, alicePkScript, mintContent("ordi", "100")),
			inscribeTx(3, alicePkScript, transferContent("ordi", "30")),
			inscribeTx(4, alicePkScript, transferContent("ordi", "20")),
		),
	}))
	assertBalance(t, repo, alicePkScript, 100, 50)
	tickerBefore, err := repo.GetTicker(ctx, "ordi")
	require.NoError(t, err)

	// both transfers spend the same wallet, the second debits more than is still locked
	transfer := func(sequence int32, n int, amount uint64) *entity.EventRecord {
		return &entity.EventRecord{
			BlockHeight:   2,
			Sequence:      sequence,
			InscriptionId: inscriptionId(n),
			Tick:          "ordi",
			Event: &events.TransferTransfer{
				SourcePkScript: alicePkScript,
				SpentPkScript:  lo.ToPtr(bobPkScript),
				Tick:           "ordi",
				OriginalTick:   "ordi",
				Amount:         uint128.From64(amount),
			},
		}
	}
	tx, err := repo.BeginBRC20Tx(ctx)
	require.NoError(t, err)
	l := ledger.New(tx, 2, time.Unix(1700001200, 0))
	err = p.processor.Apply(ctx, l, []*entity.EventRecord{transfer(0, 3, 30), transfer(1, 4, 40)})
	require.Error(t, err)
	assert.ErrorIs(t, err, ledger.ErrInsufficientBalance)
	require.NoError(t, tx.Rollback(ctx))

	assertBalance(t, repo, alicePkScript, 100, 50)
	assertBalance(t, repo, bobPkScript, 0, 0)
	tickerAfter, err := repo.GetTicker(ctx, "ordi")
	require.NoError(t, err)
	assert.Equal(t, tickerBefore, tickerAfter)
	for _, n := range []int{3, 4} {
		validity, err := repo.GetTransferValidity(ctx, inscriptionId(n))
		require.NoError(t, err)
		assert.Equal(t, entity.ValidityValid, validity.Validity)
	}
	assert.Empty(t, eventNames(t, repo, 2))

	latest, err := p.CurrentBlock(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), latest.Height)
	require.NoError(t, p.Process(ctx, []*entity.Block{newBlock(2)}), "the next block still applies on the unchanged checkpoint")
}

// failingTimingDg rejects every timing row.
type failingTimingDg struct {
	*memory.Repository
}

func (failingTimingDg) CreateTiming(context.Context, *entity.Timing) error {
	return errors.New("timings table is locked")
}

func TestProcessTimingFailure(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository()
	p := newTestProcessor(failingTimingDg{repo}, repo)

	require.NoError(t, p.Process(ctx, []*entity.Block{
		newBlock(1, inscribeTx(1, alicePkScript, deployContent("ordi", "1000", "100"))),
		newBlock(2, inscribeTx(2, alicePkScript, mintContent("ordi", "100"))),
	}))

	latest, err := p.CurrentBlock(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), latest.Height)
	assertBalance(t, repo, alicePkScript, 100, 100)
	assert.Empty(t, repo.Timings())
}
