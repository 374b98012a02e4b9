package brc20

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/brc20-ledger/common/errs"
	"github.com/gaze-network/brc20-ledger/modules/brc20/internal/brc20"
	"github.com/gaze-network/brc20-ledger/modules/brc20/internal/entity"
	"github.com/gaze-network/brc20-ledger/modules/brc20/internal/events"
	"github.com/gaze-network/brc20-ledger/modules/brc20/internal/ledger"
	"github.com/gaze-network/brc20-ledger/pkg/logger"
	"github.com/gaze-network/brc20-ledger/pkg/logger/slogx"
)

// EventProcessor applies generated events to the ledger of their block.
type EventProcessor struct {
	rules brc20.Rules
}

func NewEventProcessor(rules brc20.Rules) *EventProcessor {
	return &EventProcessor{rules: rules}
}

// Apply applies records in order and appends them to the event log. Any error leaves the ledger
// partially mutated, callers must discard it.
func (p *EventProcessor) Apply(ctx context.Context, l *ledger.Ledger, records []*entity.EventRecord) error {
	for _, record := range records {
		if err := p.apply(ctx, l, record); err != nil {
			return errors.Wrapf(err, "failed to apply %s event of %s", record.Event.Name(), record.InscriptionId)
		}
	}
	if len(records) == 0 {
		return nil
	}
	return errors.WithStack(l.AppendEventRecords(ctx, records))
}

func (p *EventProcessor) apply(ctx context.Context, l *ledger.Ledger, record *entity.EventRecord) error {
	switch e := record.Event.(type) {
	case *events.DeployInscribe:
		return errors.WithStack(l.Deploy(ctx, &entity.Ticker{
			Tick:                e.Tick,
			OriginalTick:        e.OriginalTick,
			Decimals:            e.Decimals,
			MaxSupply:           e.MaxSupply,
			LimitPerMint:        e.LimitPerMint,
			IsSelfMint:          e.IsSelfMint,
			DeployInscriptionId: record.InscriptionId,
		}))
	case *events.MintInscribe:
		return errors.WithStack(l.Credit(ctx, e.Tick, e.MintedPkScript, e.MintedWallet, e.Amount))
	case *events.TransferInscribe:
		if err := l.Lock(ctx, e.Tick, e.SourcePkScript, e.SourceWallet, e.Amount); err != nil {
			return errors.WithStack(err)
		}
		return errors.WithStack(l.SetTransferValidity(ctx, record.InscriptionId, e.Id(), entity.ValidityValid))
	case *events.TransferTransfer:
		return errors.WithStack(p.applyTransferTransfer(ctx, l, record.InscriptionId, e))
	case *events.ProgWithdrawInscribe:
		return errors.WithStack(l.SetTransferValidity(ctx, record.InscriptionId, e.Id(), entity.ValidityValid))
	case *events.ProgWithdrawTransfer:
		return errors.WithStack(p.applyWithdrawTransfer(ctx, l, record.InscriptionId, e))
	case *events.ProgDeployInscribe, *events.ProgCallInscribe, *events.ProgTransactInscribe:
		return errors.WithStack(l.SetTransferValidity(ctx, record.InscriptionId, e.Id(), entity.ValidityValid))
	case *events.ProgDeployTransfer:
		return errors.WithStack(l.SetTransferValidity(ctx, record.InscriptionId, events.IdProgDeployInscribe, entity.ValidityUsed))
	case *events.ProgCallTransfer:
		return errors.WithStack(l.SetTransferValidity(ctx, record.InscriptionId, events.IdProgCallInscribe, entity.ValidityUsed))
	case *events.ProgTransactTransfer:
		return errors.WithStack(l.SetTransferValidity(ctx, record.InscriptionId, events.IdProgTransactInscribe, entity.ValidityUsed))
	case *events.PredeployInscribe:
		return nil
	default:
		return errors.Wrapf(errs.InternalError, "unknown event type %T", e)
	}
}

func (p *EventProcessor) applyTransferTransfer(ctx context.Context, l *ledger.Ledger, inscriptionId string, e *events.TransferTransfer) error {
	validity, err := l.GetTransferValidity(ctx, inscriptionId, events.IdTransferInscribe)
	if err != nil {
		return errors.Wrap(err, "failed to get transfer validity")
	}
	if validity != entity.ValidityValid {
		logger.DebugContext(ctx, "transfer inscription is not valid anymore, skipping",
			slogx.String("inscriptionId", inscriptionId),
			slogx.Stringer("validity", validity),
		)
		return nil
	}

	switch {
	case e.SpentPkScript == nil:
		// spent as fee, the amount returns to the sender
		if err := l.Unlock(ctx, e.Tick, e.SourcePkScript, e.SourceWallet, e.Amount); err != nil {
			return errors.WithStack(err)
		}
	case *e.SpentPkScript == brc20.ProgPkScript:
		if err := l.Debit(ctx, e.Tick, e.SourcePkScript, e.SourceWallet, e.Amount); err != nil {
			return errors.WithStack(err)
		}
		if !p.rules.CanDepositToProg(e.OriginalTick, l.BlockHeight()) {
			// the module is not open to this ticker yet: the deposit burns and the inscription stays valid
			return errors.WithStack(l.Burn(ctx, e.Tick, e.Amount))
		}
		if err := l.Receive(ctx, e.Tick, brc20.ProgPkScript, "", e.Amount); err != nil {
			return errors.WithStack(err)
		}
	case *e.SpentPkScript == brc20.OpReturnPkScript:
		if err := l.Debit(ctx, e.Tick, e.SourcePkScript, e.SourceWallet, e.Amount); err != nil {
			return errors.WithStack(err)
		}
		if err := l.Burn(ctx, e.Tick, e.Amount); err != nil {
			return errors.WithStack(err)
		}
	default:
		if err := l.Debit(ctx, e.Tick, e.SourcePkScript, e.SourceWallet, e.Amount); err != nil {
			return errors.WithStack(err)
		}
		if err := l.Receive(ctx, e.Tick, *e.SpentPkScript, optWallet(e.SpentWallet), e.Amount); err != nil {
			return errors.WithStack(err)
		}
	}
	return errors.WithStack(l.SetTransferValidity(ctx, inscriptionId, events.IdTransferInscribe, entity.ValidityUsed))
}

func (p *EventProcessor) applyWithdrawTransfer(ctx context.Context, l *ledger.Ledger, inscriptionId string, e *events.ProgWithdrawTransfer) error {
	if e.SpentPkScript != nil && strings.HasPrefix(*e.SpentPkScript, brc20.OpReturnPkScript) {
		return errors.WithStack(l.SetTransferValidity(ctx, inscriptionId, events.IdProgWithdrawInscribe, entity.ValidityInvalid))
	}
	if err := l.SetTransferValidity(ctx, inscriptionId, events.IdProgWithdrawInscribe, entity.ValidityUsed); err != nil {
		return errors.WithStack(err)
	}

	prog, err := l.Balance(ctx, e.Tick, brc20.ProgPkScript)
	if err != nil {
		return errors.Wrap(err, "failed to get module balance")
	}
	if prog.AvailableBalance.Cmp(e.Amount) < 0 {
		logger.DebugContext(ctx, "module balance is not enough for withdrawal, skipping",
			slogx.String("inscriptionId", inscriptionId),
			slogx.String("tick", e.Tick),
			slogx.Uint128("available", prog.AvailableBalance),
			slogx.Uint128("amount", e.Amount),
		)
		return nil
	}

	target, targetWallet := e.SourcePkScript, e.SourceWallet
	if e.SpentPkScript != nil {
		target, targetWallet = *e.SpentPkScript, optWallet(e.SpentWallet)
	}
	if err := l.Withdraw(ctx, e.Tick, brc20.ProgPkScript, e.Amount); err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(l.Receive(ctx, e.Tick, target, targetWallet, e.Amount))
}

func optWallet(wallet *string) string {
	if wallet == nil {
		return ""
	}
	return *wallet
}
