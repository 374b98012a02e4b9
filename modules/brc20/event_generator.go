package brc20

import (
	"context"

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
	"github.com/gaze-network/brc20-ledger/pkg/logger"
	"github.com/gaze-network/brc20-ledger/pkg/logger/slogx"
	"github.com/gaze-network/uint128"
	"github.com/samber/lo"
)

// EventGenerator recognizes the balance-affecting events of a block's inscription actions.
type EventGenerator struct {
	network   common.Network
	rules     brc20.Rules
	processor *EventProcessor
}

func NewEventGenerator(network common.Network, rules brc20.Rules, processor *EventProcessor) *EventGenerator {
	return &EventGenerator{
		network:   network,
		rules:     rules,
		processor: processor,
	}
}

// candidate is a recognized event with the ticker its amounts are denominated in.
type candidate struct {
	event  events.Event
	ticker *entity.Ticker // nil for events without a ticker
}

// Generate returns the events of txs in order. Each event is applied to an overlay of store as soon as
// it is recognized, so later actions of the same block observe it. store itself is never written.
func (g *EventGenerator) Generate(ctx context.Context, store datagateway.LedgerReader, header types.BlockHeader, txs []*entity.BRC20Tx) ([]*entity.EventRecord, error) {
	height := uint64(header.Height)
	l := ledger.New(memory.NewOverlay(store), height, header.Timestamp)

	records := make([]*entity.EventRecord, 0)
	for _, tx := range txs {
		ctx := logger.WithContext(ctx, slogx.String("inscriptionId", tx.InscriptionId))
		c, err := g.classify(ctx, l, tx)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to classify inscription %s", tx.InscriptionId)
		}
		if c == nil {
			continue
		}
		c.event.CalculateWallets(g.network)

		record := &entity.EventRecord{
			BlockHeight:       height,
			Sequence:          int32(len(records)),
			InscriptionId:     tx.InscriptionId,
			InscriptionNumber: tx.InscriptionNumber,
			OldSatpoint:       tx.OldSatpoint,
			NewSatpoint:       tx.NewSatpoint,
			TxId:              tx.TxId,
			Event:             c.event,
		}
		if c.ticker != nil {
			record.Tick = c.ticker.Tick
			record.Decimals = c.ticker.Decimals
		}
		if err := g.processor.Apply(ctx, l, []*entity.EventRecord{record}); err != nil {
			return nil, errors.Wrap(err, "failed to apply event to block overlay")
		}
		records = append(records, record)
	}
	return records, nil
}

func skip(ctx context.Context, reason string, args ...any) (*candidate, error) {
	logger.DebugContext(ctx, reason+", skipping", args...)
	return nil, nil
}

func (g *EventGenerator) classify(ctx context.Context, l *ledger.Ledger, tx *entity.BRC20Tx) (*candidate, error) {
	height := l.BlockHeight()
	if tx.SentAsFee && tx.IsInscribe() {
		return skip(ctx, "inscription is sent as fee in its inscribing transaction")
	}

	protocol, ok := tx.ContentString(brc20.KeyProtocol)
	if !ok {
		return skip(ctx, "protocol is not present")
	}
	if protocol != brc20.ProtocolBRC20 && protocol != brc20.ProtocolBRC20Prog && protocol != brc20.ProtocolBRC20Module {
		return skip(ctx, "unknown protocol", slogx.String("protocol", protocol))
	}
	opString, ok := tx.ContentString(brc20.KeyOperation)
	if !ok {
		return skip(ctx, "operation is not present")
	}
	op := brc20.Operation(opString)

	if protocol == brc20.ProtocolBRC20Prog {
		if !g.rules.IsProgActive(height) {
			return skip(ctx, "programmable module is not active")
		}
		return g.classifyProg(ctx, l, tx, op)
	}

	if op == brc20.OperationPredeploy && tx.IsInscribe() {
		if !g.rules.IsPredeployActive(height) {
			return skip(ctx, "predeploy is not active yet")
		}
		hash, ok := tx.ContentString(brc20.KeyHash)
		if !ok {
			return skip(ctx, "predeploy hash is not present")
		}
		return &candidate{event: &events.PredeployInscribe{
			PredeployerPkScript: tx.NewPkScript,
			Hash:                hash,
			BlockHeight:         height,
		}}, nil
	}

	originalTick, ok := tx.ContentString(brc20.KeyTick)
	if !ok {
		return skip(ctx, "tick is not present")
	}
	tick, err := g.rules.NormalizeTick(originalTick, height)
	if err != nil {
		return skip(ctx, "invalid tick", slogx.String("tick", originalTick), slogx.Error(err))
	}

	if protocol == brc20.ProtocolBRC20Module {
		return g.classifyWithdraw(ctx, l, tx, op, tick, originalTick)
	}

	switch {
	case op == brc20.OperationDeploy && tx.IsInscribe():
		return g.classifyDeploy(ctx, l, tx, tick, originalTick)
	case op == brc20.OperationMint && tx.IsInscribe():
		return g.classifyMint(ctx, l, tx, tick, originalTick)
	case op == brc20.OperationTransfer:
		return g.classifyTransfer(ctx, l, tx, tick, originalTick)
	}
	return skip(ctx, "unknown operation", slogx.Stringer("op", op))
}

// deployedTicker returns nil if tick is not deployed.
func deployedTicker(ctx context.Context, l *ledger.Ledger, tick string) (*entity.Ticker, error) {
	ticker, err := l.Ticker(ctx, tick)
	if err != nil {
		if errors.Is(err, errs.NotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to get ticker")
	}
	return ticker, nil
}

func (g *EventGenerator) classifyDeploy(ctx context.Context, l *ledger.Ledger, tx *entity.BRC20Tx, tick, originalTick string) (*candidate, error) {
	height := l.BlockHeight()
	deployed, err := l.IsDeployed(ctx, tick)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check ticker")
	}
	if deployed {
		return skip(ctx, "ticker is already deployed", slogx.String("tick", tick))
	}

	decString, hasDec := tx.ContentString(brc20.KeyDecimals)
	dec, err := brc20.ParseDecimals(decString, hasDec)
	if err != nil {
		return skip(ctx, "invalid decimals", slogx.Error(err))
	}
	maxString, ok := tx.ContentString(brc20.KeyMax)
	if !ok {
		return skip(ctx, "max supply is not present")
	}
	maxSupply, err := brc20.ParseAmount(maxString, dec, true)
	if err != nil {
		return skip(ctx, "invalid max supply", slogx.Uint16("decimals", dec), slogx.Error(err))
	}
	var limitPerMint uint128.Uint128
	limString, ok := tx.ContentString(brc20.KeyLimit)
	if limit, err := brc20.ParseAmount(limString, dec, false); ok && err == nil {
		limitPerMint = limit
	} else if !tx.HasContent(brc20.KeyLimit) {
		limitPerMint = maxSupply
	} else {
		return skip(ctx, "invalid limit per mint")
	}

	isSelfMint := false
	switch len(originalTick) {
	case 5:
		if !g.rules.IsSelfMintActive(height) {
			return skip(ctx, "self mint is not active yet")
		}
		if selfMint, _ := tx.ContentString(brc20.KeySelfMint); selfMint != "true" {
			return skip(ctx, "5-byte ticker is not self mint")
		}
		isSelfMint = true
	case 6:
		valid, err := g.verifyPredeploy(ctx, l, tx, originalTick)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		if !valid {
			return nil, nil
		}
		selfMint, _ := tx.ContentString(brc20.KeySelfMint)
		isSelfMint = selfMint == "true"
	}
	if isSelfMint && maxSupply.IsZero() {
		maxSupply = brc20.MaxAmount
		if limitPerMint.IsZero() {
			limitPerMint = brc20.MaxAmount
		}
	}
	if maxSupply.IsZero() {
		return skip(ctx, "max supply is zero")
	}

	return &candidate{
		event: &events.DeployInscribe{
			DeployerPkScript: tx.NewPkScript,
			Tick:             tick,
			OriginalTick:     originalTick,
			MaxSupply:        maxSupply,
			Decimals:         dec,
			LimitPerMint:     limitPerMint,
			IsSelfMint:       isSelfMint,
		},
		ticker: &entity.Ticker{Tick: tick, Decimals: dec},
	}, nil
}

// verifyPredeploy checks that a 6-byte deploy reveals the commitment of the predeploy it is a child of.
func (g *EventGenerator) verifyPredeploy(ctx context.Context, l *ledger.Ledger, tx *entity.BRC20Tx, originalTick string) (bool, error) {
	height := l.BlockHeight()
	if !g.rules.IsSixByteTickActive(height) {
		logger.DebugContext(ctx, "6-byte tickers are not active yet, skipping")
		return false, nil
	}
	salt, ok := tx.ContentString(brc20.KeySalt)
	if !ok {
		logger.DebugContext(ctx, "salt is not present, skipping")
		return false, nil
	}
	if tx.ParentId == nil {
		logger.DebugContext(ctx, "parent id is not present, skipping")
		return false, nil
	}
	record, err := l.EventRecord(ctx, *tx.ParentId, events.IdPredeployInscribe)
	if err != nil {
		if errors.Is(err, errs.NotFound) {
			logger.DebugContext(ctx, "predeploy event is not present, skipping", slogx.String("parentId", *tx.ParentId))
			return false, nil
		}
		return false, errors.Wrap(err, "failed to get predeploy event")
	}
	predeploy, ok := record.Event.(*events.PredeployInscribe)
	if !ok {
		return false, errors.Wrapf(errs.InternalError, "event of %s is %T, not predeploy", *tx.ParentId, record.Event)
	}
	if !g.rules.IsPredeployMature(predeploy.BlockHeight, height) {
		logger.DebugContext(ctx, "predeploy is too recent, skipping", slogx.Uint64("predeployHeight", predeploy.BlockHeight))
		return false, nil
	}
	hash, err := brc20.PredeployHash(originalTick, salt, tx.NewPkScript)
	if err != nil {
		logger.DebugContext(ctx, "invalid predeploy reveal, skipping", slogx.Error(err))
		return false, nil
	}
	if hash != predeploy.Hash {
		logger.DebugContext(ctx, "ticker hash does not match predeploy hash, skipping")
		return false, nil
	}
	return true, nil
}

func (g *EventGenerator) classifyMint(ctx context.Context, l *ledger.Ledger, tx *entity.BRC20Tx, tick, originalTick string) (*candidate, error) {
	ticker, err := deployedTicker(ctx, l, tick)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if ticker == nil {
		return skip(ctx, "ticker is not deployed", slogx.String("tick", tick))
	}
	amount, ok := parseAmount(ctx, tx, ticker.Decimals)
	if !ok {
		return nil, nil
	}
	if ticker.IsSelfMint && lo.FromPtr(tx.ParentId) != ticker.DeployInscriptionId {
		return skip(ctx, "self mint is not a child of the deploy inscription")
	}
	if ticker.RemainingSupply.IsZero() {
		return skip(ctx, "ticker is fully minted", slogx.String("tick", tick))
	}
	if amount.Cmp(ticker.LimitPerMint) > 0 {
		return skip(ctx, "amount exceeds limit per mint", slogx.Uint128("amount", amount), slogx.Uint128("limit", ticker.LimitPerMint))
	}
	if amount.Cmp(ticker.RemainingSupply) > 0 {
		amount = ticker.RemainingSupply
	}
	return &candidate{
		event: &events.MintInscribe{
			MintedPkScript: tx.NewPkScript,
			Tick:           tick,
			OriginalTick:   originalTick,
			Amount:         amount,
			ParentId:       tx.ParentId,
		},
		ticker: ticker,
	}, nil
}

func (g *EventGenerator) classifyTransfer(ctx context.Context, l *ledger.Ledger, tx *entity.BRC20Tx, tick, originalTick string) (*candidate, error) {
	ticker, err := deployedTicker(ctx, l, tick)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if ticker == nil {
		return skip(ctx, "ticker is not deployed", slogx.String("tick", tick))
	}
	amount, ok := parseAmount(ctx, tx, ticker.Decimals)
	if !ok {
		return nil, nil
	}

	if tx.IsInscribe() {
		balance, err := l.Balance(ctx, tick, tx.NewPkScript)
		if err != nil {
			return nil, errors.Wrap(err, "failed to get balance")
		}
		if balance.AvailableBalance.Cmp(amount) < 0 {
			return skip(ctx, "available balance is not enough", slogx.Uint128("available", balance.AvailableBalance), slogx.Uint128("amount", amount))
		}
		return &candidate{
			event: &events.TransferInscribe{
				SourcePkScript: tx.NewPkScript,
				Tick:           tick,
				OriginalTick:   originalTick,
				Amount:         amount,
			},
			ticker: ticker,
		}, nil
	}

	inscribe, ok, err := g.validInscribeEvent(ctx, l, tx, events.IdTransferInscribe)
	if err != nil || !ok {
		return nil, errors.WithStack(err)
	}
	source := inscribe.Event.(*events.TransferInscribe)
	return &candidate{
		event: &events.TransferTransfer{
			SourcePkScript: source.SourcePkScript,
			SpentPkScript:  spentPkScript(tx),
			Tick:           tick,
			OriginalTick:   originalTick,
			Amount:         amount,
		},
		ticker: ticker,
	}, nil
}

func (g *EventGenerator) classifyWithdraw(ctx context.Context, l *ledger.Ledger, tx *entity.BRC20Tx, op brc20.Operation, tick, originalTick string) (*candidate, error) {
	ticker, err := deployedTicker(ctx, l, tick)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if ticker == nil {
		return skip(ctx, "ticker is not deployed", slogx.String("tick", tick))
	}
	module, ok := tx.ContentString(brc20.KeyModule)
	if !ok {
		return skip(ctx, "module is not present")
	}
	if module != brc20.ModuleBRC20Prog || !g.rules.ProgEnabled || op != brc20.OperationWithdraw {
		return skip(ctx, "not a programmable module withdrawal", slogx.String("module", module), slogx.Stringer("op", op))
	}
	amount, ok := parseAmount(ctx, tx, ticker.Decimals)
	if !ok {
		return nil, nil
	}

	if tx.IsInscribe() {
		return &candidate{
			event: &events.ProgWithdrawInscribe{
				SourcePkScript: tx.NewPkScript,
				Tick:           tick,
				OriginalTick:   originalTick,
				Amount:         amount,
			},
			ticker: ticker,
		}, nil
	}

	inscribe, ok, err := g.validInscribeEvent(ctx, l, tx, events.IdProgWithdrawInscribe)
	if err != nil || !ok {
		return nil, errors.WithStack(err)
	}
	source := inscribe.Event.(*events.ProgWithdrawInscribe)
	return &candidate{
		event: &events.ProgWithdrawTransfer{
			SourcePkScript: source.SourcePkScript,
			SpentPkScript:  spentPkScript(tx),
			Tick:           tick,
			OriginalTick:   originalTick,
			Amount:         amount,
		},
		ticker: ticker,
	}, nil
}

func (g *EventGenerator) classifyProg(ctx context.Context, l *ledger.Ledger, tx *entity.BRC20Tx, op brc20.Operation) (*candidate, error) {
	data, hasData := tx.ContentString(brc20.KeyData)
	base64Data, hasBase64Data := tx.ContentString(brc20.KeyBase64Data)
	if hasData == hasBase64Data {
		return skip(ctx, "exactly one of data and base64 data must be present")
	}
	dataPtr := optional(data, hasData)
	base64DataPtr := optional(base64Data, hasBase64Data)

	switch {
	case op.IsProgDeploy():
		if tx.IsInscribe() {
			return &candidate{event: &events.ProgDeployInscribe{
				SourcePkScript: tx.NewPkScript,
				Data:           dataPtr,
				Base64Data:     base64DataPtr,
			}}, nil
		}
		source, ok, err := g.progTransferSource(ctx, l, tx, events.IdProgDeployInscribe)
		if err != nil || !ok {
			return nil, errors.WithStack(err)
		}
		return &candidate{event: &events.ProgDeployTransfer{
			SourcePkScript: source,
			SpentPkScript:  tx.NewPkScript,
			Data:           dataPtr,
			Base64Data:     base64DataPtr,
			ByteLen:        tx.ByteLen,
		}}, nil
	case op.IsProgCall():
		if !tx.HasContent(brc20.KeyContract) && !tx.HasContent(brc20.KeyInscription) {
			return skip(ctx, "contract address or inscription id is not present")
		}
		contractAddress, hasContractAddress := tx.ContentString(brc20.KeyContract)
		contractInscriptionId, hasContractInscriptionId := tx.ContentString(brc20.KeyInscription)
		if tx.IsInscribe() {
			return &candidate{event: &events.ProgCallInscribe{
				SourcePkScript:        tx.NewPkScript,
				ContractAddress:       contractAddress,
				ContractInscriptionId: contractInscriptionId,
				Data:                  dataPtr,
				Base64Data:            base64DataPtr,
			}}, nil
		}
		source, ok, err := g.progTransferSource(ctx, l, tx, events.IdProgCallInscribe)
		if err != nil || !ok {
			return nil, errors.WithStack(err)
		}
		return &candidate{event: &events.ProgCallTransfer{
			SourcePkScript:        source,
			SpentPkScript:         tx.NewPkScript,
			ContractAddress:       optional(contractAddress, hasContractAddress),
			ContractInscriptionId: optional(contractInscriptionId, hasContractInscriptionId),
			Data:                  dataPtr,
			Base64Data:            base64DataPtr,
			ByteLen:               tx.ByteLen,
		}}, nil
	case op.IsProgTransact():
		if tx.IsInscribe() {
			return &candidate{event: &events.ProgTransactInscribe{
				SourcePkScript: tx.NewPkScript,
				Data:           dataPtr,
				Base64Data:     base64DataPtr,
			}}, nil
		}
		source, ok, err := g.progTransferSource(ctx, l, tx, events.IdProgTransactInscribe)
		if err != nil || !ok {
			return nil, errors.WithStack(err)
		}
		return &candidate{event: &events.ProgTransactTransfer{
			SourcePkScript: source,
			SpentPkScript:  tx.NewPkScript,
			Data:           dataPtr,
			Base64Data:     base64DataPtr,
			ByteLen:        tx.ByteLen,
		}}, nil
	}
	return skip(ctx, "unknown programmable module operation", slogx.Stringer("op", op))
}

// progTransferSource returns the source pkScript of a programmable module transfer. Only transfers
// into the module are accepted, others leave the inscription valid.
func (g *EventGenerator) progTransferSource(ctx context.Context, l *ledger.Ledger, tx *entity.BRC20Tx, inscribeEventId int) (string, bool, error) {
	inscribe, ok, err := g.validInscribeEvent(ctx, l, tx, inscribeEventId)
	if err != nil || !ok {
		return "", false, errors.WithStack(err)
	}
	if tx.NewPkScript != brc20.ProgPkScript {
		logger.DebugContext(ctx, "transfer is not sent to the programmable module, skipping", slogx.String("pkScript", tx.NewPkScript))
		return "", false, nil
	}
	switch e := inscribe.Event.(type) {
	case *events.ProgDeployInscribe:
		return e.SourcePkScript, true, nil
	case *events.ProgCallInscribe:
		return e.SourcePkScript, true, nil
	case *events.ProgTransactInscribe:
		return e.SourcePkScript, true, nil
	}
	return "", false, errors.Wrapf(errs.InternalError, "event of %s is %T, not a programmable module inscribe", tx.InscriptionId, inscribe.Event)
}

// validInscribeEvent returns the inscribe event of a transferred inscription, if the inscription can
// still be transferred.
func (g *EventGenerator) validInscribeEvent(ctx context.Context, l *ledger.Ledger, tx *entity.BRC20Tx, inscribeEventId int) (*entity.EventRecord, bool, error) {
	validity, err := l.GetTransferValidity(ctx, tx.InscriptionId, inscribeEventId)
	if err != nil {
		return nil, false, errors.Wrap(err, "failed to get transfer validity")
	}
	if validity != entity.ValidityValid {
		logger.DebugContext(ctx, "inscription is not transferable, skipping", slogx.Stringer("validity", validity))
		return nil, false, nil
	}
	record, err := l.EventRecord(ctx, tx.InscriptionId, inscribeEventId)
	if err != nil {
		if errors.Is(err, errs.NotFound) {
			logger.DebugContext(ctx, "inscribe event is not present, skipping")
			return nil, false, nil
		}
		return nil, false, errors.Wrap(err, "failed to get inscribe event")
	}
	return record, true, nil
}

func parseAmount(ctx context.Context, tx *entity.BRC20Tx, dec uint16) (uint128.Uint128, bool) {
	amt, ok := tx.ContentString(brc20.KeyAmount)
	if !ok {
		logger.DebugContext(ctx, "amount is not present, skipping")
		return uint128.Zero, false
	}
	amount, err := brc20.ParseAmount(amt, dec, false)
	if err != nil {
		logger.DebugContext(ctx, "invalid amount, skipping", slogx.String("amt", amt), slogx.Error(err))
		return uint128.Zero, false
	}
	return amount, true
}

// spentPkScript returns nil when the inscription was spent as fee.
func spentPkScript(tx *entity.BRC20Tx) *string {
	if tx.SentAsFee {
		return nil
	}
	return lo.ToPtr(tx.NewPkScript)
}

func optional(s string, ok bool) *string {
	if !ok {
		return nil
	}
	return &s
}
