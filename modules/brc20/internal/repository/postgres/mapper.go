package postgres

import (
	"encoding/hex"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/brc20-ledger/common"
	"github.com/gaze-network/brc20-ledger/modules/brc20/internal/entity"
	"github.com/gaze-network/brc20-ledger/modules/brc20/internal/events"
	"github.com/gaze-network/brc20-ledger/modules/brc20/internal/repository/postgres/gen"
	"github.com/gaze-network/uint128"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/samber/lo"
)

func uint128FromNumeric(src pgtype.Numeric) (uint128.Uint128, error) {
	if !src.Valid {
		return uint128.Zero, nil
	}
	bytes, err := src.MarshalJSON()
	if err != nil {
		return uint128.Uint128{}, errors.WithStack(err)
	}
	result, err := uint128.FromString(string(bytes))
	if err != nil {
		return uint128.Uint128{}, errors.WithStack(err)
	}
	return result, nil
}

func numericFromUint128(src uint128.Uint128) (pgtype.Numeric, error) {
	var result pgtype.Numeric
	if err := result.UnmarshalJSON([]byte(src.String())); err != nil {
		return pgtype.Numeric{}, errors.WithStack(err)
	}
	return result, nil
}

func mapIndexerStateModelToType(src gen.Brc20IndexerState) entity.IndexerState {
	var createdAt time.Time
	if src.CreatedAt.Valid {
		createdAt = src.CreatedAt.Time.UTC()
	}
	return entity.IndexerState{
		ClientVersion:    src.ClientVersion,
		Network:          common.Network(src.Network),
		DBVersion:        src.DbVersion,
		EventHashVersion: src.EventHashVersion,
		CreatedAt:        createdAt,
	}
}

func mapIndexerStateTypeToParams(src entity.IndexerState) gen.CreateIndexerStateParams {
	return gen.CreateIndexerStateParams{
		ClientVersion:    src.ClientVersion,
		Network:          string(src.Network),
		DbVersion:        src.DBVersion,
		EventHashVersion: src.EventHashVersion,
	}
}

func mapIndexedBlockModelToType(src gen.Brc20IndexedBlock) (entity.IndexedBlock, error) {
	hash, err := chainhash.NewHashFromStr(src.Hash)
	if err != nil {
		return entity.IndexedBlock{}, errors.Wrap(err, "invalid block hash")
	}
	eventHash, err := hex.DecodeString(src.EventHash)
	if err != nil {
		return entity.IndexedBlock{}, errors.Wrap(err, "invalid event hash")
	}
	cumulativeEventHash, err := hex.DecodeString(src.CumulativeEventHash)
	if err != nil {
		return entity.IndexedBlock{}, errors.Wrap(err, "invalid cumulative event hash")
	}
	return entity.IndexedBlock{
		Height:              uint64(src.Height),
		Hash:                *hash,
		EventHash:           eventHash,
		CumulativeEventHash: cumulativeEventHash,
	}, nil
}

func mapIndexedBlockTypeToParams(src entity.IndexedBlock) gen.CreateIndexedBlockParams {
	return gen.CreateIndexedBlockParams{
		Height:              int32(src.Height),
		Hash:                src.Hash.String(),
		EventHash:           hex.EncodeToString(src.EventHash),
		CumulativeEventHash: hex.EncodeToString(src.CumulativeEventHash),
	}
}

func mapTickerModelToType(src gen.Brc20Ticker) (entity.Ticker, error) {
	maxSupply, err := uint128FromNumeric(src.MaxSupply)
	if err != nil {
		return entity.Ticker{}, errors.Wrap(err, "invalid max supply")
	}
	limitPerMint, err := uint128FromNumeric(src.LimitPerMint)
	if err != nil {
		return entity.Ticker{}, errors.Wrap(err, "invalid limit per mint")
	}
	remainingSupply, err := uint128FromNumeric(src.RemainingSupply)
	if err != nil {
		return entity.Ticker{}, errors.Wrap(err, "invalid remaining supply")
	}
	burnedSupply, err := uint128FromNumeric(src.BurnedSupply)
	if err != nil {
		return entity.Ticker{}, errors.Wrap(err, "invalid burned supply")
	}
	var deployedAt time.Time
	if src.DeployedAt.Valid {
		deployedAt = src.DeployedAt.Time
	}
	return entity.Ticker{
		Tick:                src.Tick,
		OriginalTick:        src.OriginalTick,
		Decimals:            uint16(src.Decimals),
		MaxSupply:           maxSupply,
		LimitPerMint:        limitPerMint,
		IsSelfMint:          src.IsSelfMint,
		DeployInscriptionId: src.DeployInscriptionId,
		DeployBlockHeight:   uint64(src.DeployBlockHeight),
		DeployedAt:          deployedAt,
		RemainingSupply:     remainingSupply,
		BurnedSupply:        burnedSupply,
		UpdatedAtHeight:     uint64(src.UpdatedAtHeight),
	}, nil
}

func mapTickerTypeToParams(src entity.Ticker) (gen.UpsertTickerParams, gen.UpsertTickerStateParams, error) {
	maxSupply, err := numericFromUint128(src.MaxSupply)
	if err != nil {
		return gen.UpsertTickerParams{}, gen.UpsertTickerStateParams{}, errors.Wrap(err, "invalid max supply")
	}
	limitPerMint, err := numericFromUint128(src.LimitPerMint)
	if err != nil {
		return gen.UpsertTickerParams{}, gen.UpsertTickerStateParams{}, errors.Wrap(err, "invalid limit per mint")
	}
	remainingSupply, err := numericFromUint128(src.RemainingSupply)
	if err != nil {
		return gen.UpsertTickerParams{}, gen.UpsertTickerStateParams{}, errors.Wrap(err, "invalid remaining supply")
	}
	burnedSupply, err := numericFromUint128(src.BurnedSupply)
	if err != nil {
		return gen.UpsertTickerParams{}, gen.UpsertTickerStateParams{}, errors.Wrap(err, "invalid burned supply")
	}
	return gen.UpsertTickerParams{
			Tick:                src.Tick,
			OriginalTick:        src.OriginalTick,
			Decimals:            int16(src.Decimals),
			MaxSupply:           maxSupply,
			LimitPerMint:        limitPerMint,
			IsSelfMint:          src.IsSelfMint,
			DeployInscriptionId: src.DeployInscriptionId,
			DeployBlockHeight:   int32(src.DeployBlockHeight),
			DeployedAt:          pgtype.Timestamp{Time: src.DeployedAt, Valid: true},
			RemainingSupply:     remainingSupply,
			BurnedSupply:        burnedSupply,
			UpdatedAtHeight:     int32(src.UpdatedAtHeight),
		}, gen.UpsertTickerStateParams{
			Tick:            src.Tick,
			BlockHeight:     int32(src.UpdatedAtHeight),
			RemainingSupply: remainingSupply,
			BurnedSupply:    burnedSupply,
		}, nil
}

func mapBalanceModelToType(src gen.Brc20Balance) (entity.Balance, error) {
	overall, err := uint128FromNumeric(src.OverallBalance)
	if err != nil {
		return entity.Balance{}, errors.Wrap(err, "invalid overall balance")
	}
	available, err := uint128FromNumeric(src.AvailableBalance)
	if err != nil {
		return entity.Balance{}, errors.Wrap(err, "invalid available balance")
	}
	return entity.Balance{
		Tick:             src.Tick,
		PkScript:         src.Pkscript,
		Wallet:           src.Wallet,
		OverallBalance:   overall,
		AvailableBalance: available,
		BlockHeight:      uint64(src.BlockHeight),
	}, nil
}

func mapBalanceTypeToParams(src entity.Balance) (gen.UpsertBalanceParams, gen.UpsertBalanceHistoryParams, error) {
	overall, err := numericFromUint128(src.OverallBalance)
	if err != nil {
		return gen.UpsertBalanceParams{}, gen.UpsertBalanceHistoryParams{}, errors.Wrap(err, "invalid overall balance")
	}
	available, err := numericFromUint128(src.AvailableBalance)
	if err != nil {
		return gen.UpsertBalanceParams{}, gen.UpsertBalanceHistoryParams{}, errors.Wrap(err, "invalid available balance")
	}
	return gen.UpsertBalanceParams{
			Tick:             src.Tick,
			Pkscript:         src.PkScript,
			Wallet:           src.Wallet,
			OverallBalance:   overall,
			AvailableBalance: available,
			BlockHeight:      int32(src.BlockHeight),
		}, gen.UpsertBalanceHistoryParams{
			Tick:             src.Tick,
			Pkscript:         src.PkScript,
			BlockHeight:      int32(src.BlockHeight),
			Wallet:           src.Wallet,
			OverallBalance:   overall,
			AvailableBalance: available,
		}, nil
}

func mapTransferValidityModelToType(src gen.Brc20TransferValidity) entity.TransferValidity {
	return entity.TransferValidity{
		InscriptionId:   src.InscriptionId,
		InscribeEventId: int(src.InscribeEventId),
		Validity:        entity.Validity(src.Validity),
		InscribedHeight: uint64(src.InscribedHeight),
		UpdatedHeight:   uint64(src.UpdatedHeight),
	}
}

func mapTransferValidityTypeToParams(src entity.TransferValidity) gen.UpsertTransferValidityParams {
	return gen.UpsertTransferValidityParams{
		InscriptionId:   src.InscriptionId,
		InscribeEventId: int32(src.InscribeEventId),
		Validity:        int16(src.Validity),
		InscribedHeight: int32(src.InscribedHeight),
		UpdatedHeight:   int32(src.UpdatedHeight),
	}
}

func mapEventModelToType(src gen.Brc20Event) (entity.EventRecord, error) {
	event, err := events.Decode(src.Payload, uint16(src.Decimals))
	if err != nil {
		return entity.EventRecord{}, errors.Wrapf(err, "invalid event payload at height %d sequence %d", src.BlockHeight, src.Sequence)
	}
	return entity.EventRecord{
		BlockHeight:       uint64(src.BlockHeight),
		Sequence:          src.Sequence,
		InscriptionId:     src.InscriptionId,
		InscriptionNumber: src.InscriptionNumber,
		OldSatpoint:       lo.Ternary(src.OldSatpoint.Valid, &src.OldSatpoint.String, nil),
		NewSatpoint:       src.NewSatpoint,
		TxId:              src.Txid,
		Tick:              src.Tick,
		Decimals:          uint16(src.Decimals),
		Event:             event,
	}, nil
}

func mapEventTypesToParams(src []*entity.EventRecord) gen.BatchCreateEventsParams {
	params := gen.BatchCreateEventsParams{
		BlockHeightArr:       make([]int32, 0, len(src)),
		SequenceArr:          make([]int32, 0, len(src)),
		EventTypeArr:         make([]int32, 0, len(src)),
		EventNameArr:         make([]string, 0, len(src)),
		InscriptionIdArr:     make([]string, 0, len(src)),
		InscriptionNumberArr: make([]int64, 0, len(src)),
		OldSatpointArr:       make([]pgtype.Text, 0, len(src)),
		NewSatpointArr:       make([]string, 0, len(src)),
		TxidArr:              make([]string, 0, len(src)),
		TickArr:              make([]string, 0, len(src)),
		DecimalsArr:          make([]int16, 0, len(src)),
		PayloadArr:           make([]string, 0, len(src)),
	}
	for _, record := range src {
		params.BlockHeightArr = append(params.BlockHeightArr, int32(record.BlockHeight))
		params.SequenceArr = append(params.SequenceArr, record.Sequence)
		params.EventTypeArr = append(params.EventTypeArr, int32(record.Event.Id()))
		params.EventNameArr = append(params.EventNameArr, record.Event.Name())
		params.InscriptionIdArr = append(params.InscriptionIdArr, record.InscriptionId)
		params.InscriptionNumberArr = append(params.InscriptionNumberArr, record.InscriptionNumber)
		params.OldSatpointArr = append(params.OldSatpointArr, pgtype.Text{String: lo.FromPtr(record.OldSatpoint), Valid: record.OldSatpoint != nil})
		params.NewSatpointArr = append(params.NewSatpointArr, record.NewSatpoint)
		params.TxidArr = append(params.TxidArr, record.TxId)
		params.TickArr = append(params.TickArr, record.Tick)
		params.DecimalsArr = append(params.DecimalsArr, int16(record.Decimals))
		params.PayloadArr = append(params.PayloadArr, record.Line())
	}
	return params
}
