package events

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/brc20-ledger/common"
	"github.com/gaze-network/brc20-ledger/common/errs"
	"github.com/gaze-network/brc20-ledger/pkg/btcutils"
	"github.com/gaze-network/brc20-ledger/pkg/decimals"
	"github.com/gaze-network/uint128"
)

// Event is a balance-affecting operation recognized from an inscription action.
// The set of implementations is closed, see the Id constants.
type Event interface {
	// Name is the stable event name used in the canonical record.
	Name() string

	// Id is the stable numeric event id.
	Id() int

	// Encode returns the canonical record of the event:
	// name;inscription_id;field1;...;fieldN
	// Amount fields are rendered with the given decimals, variants without amounts ignore it.
	Encode(inscriptionId string, decimals uint16) string

	// CalculateWallets fills the wallet fields from the script fields.
	CalculateWallets(network common.Network)
}

const (
	IdDeployInscribe = iota
	IdMintInscribe
	IdTransferInscribe
	IdTransferTransfer
	IdProgDeployInscribe
	IdProgDeployTransfer
	IdProgCallInscribe
	IdProgCallTransfer
	IdProgWithdrawInscribe
	IdProgWithdrawTransfer
	IdProgTransactInscribe
	IdProgTransactTransfer
	IdPredeployInscribe
)

const (
	NameDeployInscribe       = "deploy-inscribe"
	NameMintInscribe         = "mint-inscribe"
	NameTransferInscribe     = "transfer-inscribe"
	NameTransferTransfer     = "transfer-transfer"
	NameProgDeployInscribe   = "brc20prog-deploy-inscribe"
	NameProgDeployTransfer   = "brc20prog-deploy-transfer"
	NameProgCallInscribe     = "brc20prog-call-inscribe"
	NameProgCallTransfer     = "brc20prog-call-transfer"
	NameProgWithdrawInscribe = "brc20prog-withdraw-inscribe"
	NameProgWithdrawTransfer = "brc20prog-withdraw-transfer"
	NameProgTransactInscribe = "brc20prog-transact-inscribe"
	NameProgTransactTransfer = "brc20prog-transact-transfer"
	NamePredeployInscribe    = "predeploy-inscribe"
)

const (
	fieldSeparator  = ";"
	unknownEventId  = -1
	fixedFieldCount = 2 // name and inscription id
)

type kind struct {
	id    int
	arity int
}

// kinds maps every event name to its id and the number of variant fields after the inscription id.
var kinds = map[string]kind{
	NameDeployInscribe:       {IdDeployInscribe, 7},
	NameMintInscribe:         {IdMintInscribe, 5},
	NameTransferInscribe:     {IdTransferInscribe, 4},
	NameTransferTransfer:     {IdTransferTransfer, 5},
	NameProgDeployInscribe:   {IdProgDeployInscribe, 3},
	NameProgDeployTransfer:   {IdProgDeployTransfer, 5},
	NameProgCallInscribe:     {IdProgCallInscribe, 5},
	NameProgCallTransfer:     {IdProgCallTransfer, 7},
	NameProgWithdrawInscribe: {IdProgWithdrawInscribe, 4},
	NameProgWithdrawTransfer: {IdProgWithdrawTransfer, 5},
	NameProgTransactInscribe: {IdProgTransactInscribe, 3},
	NameProgTransactTransfer: {IdProgTransactTransfer, 5},
	NamePredeployInscribe:    {IdPredeployInscribe, 3},
}

// IdOf returns the event id of the given event name, or -1 if the name is unknown.
func IdOf(name string) int {
	k, ok := kinds[name]
	if !ok {
		return unknownEventId
	}
	return k.id
}

// Fields is a canonical record split into its parts.
type Fields struct {
	Name          string
	Id            int
	InscriptionId string
	Values        []string
}

// Parse splits a canonical record and checks the field count of its event name.
func Parse(line string) (Fields, error) {
	parts := strings.Split(line, fieldSeparator)
	if len(parts) < fixedFieldCount {
		return Fields{}, errors.Wrapf(errs.InvalidArgument, "malformed event record %q", line)
	}
	k, ok := kinds[parts[0]]
	if !ok {
		return Fields{}, errors.Wrapf(errs.InvalidArgument, "unknown event name %q", parts[0])
	}
	if got := len(parts) - fixedFieldCount; got != k.arity {
		return Fields{}, errors.Wrapf(errs.InvalidArgument, "event %s expects %d fields, got %d", parts[0], k.arity, got)
	}
	return Fields{
		Name:          parts[0],
		Id:            k.id,
		InscriptionId: parts[1],
		Values:        parts[fixedFieldCount:],
	}, nil
}

// Decode parses a canonical record back into its typed event.
// dec must be the decimals the record was encoded with. Wallet fields are left empty.
func Decode(line string, dec uint16) (Event, error) {
	f, err := Parse(line)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	d := &fieldDecoder{values: f.Values, decimals: dec}
	var event Event
	switch f.Id {
	case IdDeployInscribe:
		event = &DeployInscribe{
			DeployerPkScript: d.string(),
			Tick:             d.string(),
			OriginalTick:     d.string(),
			MaxSupply:        d.rawAmount(),
			Decimals:         d.uint16(),
			LimitPerMint:     d.rawAmount(),
			IsSelfMint:       d.bool(),
		}
	case IdMintInscribe:
		event = &MintInscribe{
			MintedPkScript: d.string(),
			Tick:           d.string(),
			OriginalTick:   d.string(),
			Amount:         d.amount(),
			ParentId:       d.optional(),
		}
	case IdTransferInscribe:
		event = &TransferInscribe{
			SourcePkScript: d.string(),
			Tick:           d.string(),
			OriginalTick:   d.string(),
			Amount:         d.amount(),
		}
	case IdTransferTransfer:
		event = &TransferTransfer{
			SourcePkScript: d.string(),
			SpentPkScript:  d.optional(),
			Tick:           d.string(),
			OriginalTick:   d.string(),
			Amount:         d.amount(),
		}
	case IdProgDeployInscribe:
		event = &ProgDeployInscribe{
			SourcePkScript: d.string(),
			Data:           d.optional(),
			Base64Data:     d.optional(),
		}
	case IdProgDeployTransfer:
		event = &ProgDeployTransfer{
			SourcePkScript: d.string(),
			SpentPkScript:  d.string(),
			Data:           d.optional(),
			Base64Data:     d.optional(),
			ByteLen:        d.uint32(),
		}
	case IdProgCallInscribe:
		event = &ProgCallInscribe{
			SourcePkScript:        d.string(),
			ContractAddress:       d.string(),
			ContractInscriptionId: d.string(),
			Data:                  d.optional(),
			Base64Data:            d.optional(),
		}
	case IdProgCallTransfer:
		event = &ProgCallTransfer{
			SourcePkScript:        d.string(),
			SpentPkScript:         d.string(),
			ContractAddress:       d.optional(),
			ContractInscriptionId: d.optional(),
			Data:                  d.optional(),
			Base64Data:            d.optional(),
			ByteLen:               d.uint32(),
		}
	case IdProgWithdrawInscribe:
		event = &ProgWithdrawInscribe{
			SourcePkScript: d.string(),
			Tick:           d.string(),
			OriginalTick:   d.string(),
			Amount:         d.amount(),
		}
	case IdProgWithdrawTransfer:
		event = &ProgWithdrawTransfer{
			SourcePkScript: d.string(),
			SpentPkScript:  d.optional(),
			Tick:           d.string(),
			OriginalTick:   d.string(),
			Amount:         d.amount(),
		}
	case IdProgTransactInscribe:
		event = &ProgTransactInscribe{
			SourcePkScript: d.string(),
			Data:           d.optional(),
			Base64Data:     d.optional(),
		}
	case IdProgTransactTransfer:
		event = &ProgTransactTransfer{
			SourcePkScript: d.string(),
			SpentPkScript:  d.string(),
			Data:           d.optional(),
			Base64Data:     d.optional(),
			ByteLen:        d.uint32(),
		}
	case IdPredeployInscribe:
		event = &PredeployInscribe{
			PredeployerPkScript: d.string(),
			Hash:                d.string(),
			BlockHeight:         d.uint64(),
		}
	default:
		return nil, errors.Wrapf(errs.InternalError, "no decoder for event %s", f.Name)
	}
	if d.err != nil {
		return nil, errors.Wrapf(d.err, "can't decode %s event of %s", f.Name, f.InscriptionId)
	}
	return event, nil
}

// fieldDecoder reads variant fields in order, keeping the first error.
type fieldDecoder struct {
	values   []string
	pos      int
	decimals uint16
	err      error
}

func (d *fieldDecoder) string() string {
	v := d.values[d.pos]
	d.pos++
	return v
}

func (d *fieldDecoder) optional() *string {
	v := d.string()
	if v == "" {
		return nil
	}
	return &v
}

func (d *fieldDecoder) fail(err error) {
	if d.err == nil {
		d.err = err
	}
}

func (d *fieldDecoder) amount() uint128.Uint128 {
	v, err := decimals.ParseUint128(d.string(), d.decimals)
	if err != nil {
		d.fail(errors.Wrapf(err, "field %d", d.pos))
	}
	return v
}

func (d *fieldDecoder) rawAmount() uint128.Uint128 {
	v, err := decimals.ParseUint128(d.string(), 0)
	if err != nil {
		d.fail(errors.Wrapf(err, "field %d", d.pos))
	}
	return v
}

func (d *fieldDecoder) uint64() uint64 {
	v, err := strconv.ParseUint(d.string(), 10, 64)
	if err != nil {
		d.fail(errors.Wrapf(errs.InvalidArgument, "field %d: %v", d.pos, err))
	}
	return v
}

func (d *fieldDecoder) uint32() uint32 {
	v, err := strconv.ParseUint(d.string(), 10, 32)
	if err != nil {
		d.fail(errors.Wrapf(errs.InvalidArgument, "field %d: %v", d.pos, err))
	}
	return uint32(v)
}

func (d *fieldDecoder) uint16() uint16 {
	v, err := strconv.ParseUint(d.string(), 10, 16)
	if err != nil {
		d.fail(errors.Wrapf(errs.InvalidArgument, "field %d: %v", d.pos, err))
	}
	return uint16(v)
}

func (d *fieldDecoder) bool() bool {
	switch v := d.string(); v {
	case "true":
		return true
	case "false":
		return false
	default:
		d.fail(errors.Wrapf(errs.InvalidArgument, "field %d: invalid boolean %q", d.pos, v))
		return false
	}
}

func join(name, inscriptionId string, fields ...string) string {
	var sb strings.Builder
	sb.WriteString(name)
	sb.WriteString(fieldSeparator)
	sb.WriteString(inscriptionId)
	for _, field := range fields {
		sb.WriteString(fieldSeparator)
		sb.WriteString(field)
	}
	return sb.String()
}

func opt(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatBool(b bool) string {
	return strconv.FormatBool(b)
}

func wallet(pkScript string, network common.Network) string {
	return btcutils.ResolveWalletHex(pkScript, network)
}

func optionalWallet(pkScript *string, network common.Network) *string {
	if pkScript == nil {
		return nil
	}
	w := wallet(*pkScript, network)
	return &w
}
