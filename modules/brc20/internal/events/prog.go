package events

import (
	"strconv"

	"github.com/gaze-network/brc20-ledger/common"
	"github.com/gaze-network/brc20-ledger/pkg/decimals"
	"github.com/gaze-network/uint128"
)

var (
	_ Event = (*ProgDeployInscribe)(nil)
	_ Event = (*ProgDeployTransfer)(nil)
	_ Event = (*ProgCallInscribe)(nil)
	_ Event = (*ProgCallTransfer)(nil)
	_ Event = (*ProgWithdrawInscribe)(nil)
	_ Event = (*ProgWithdrawTransfer)(nil)
	_ Event = (*ProgTransactInscribe)(nil)
	_ Event = (*ProgTransactTransfer)(nil)
)

// ProgDeployInscribe inscribes a contract deployment for the programmable module.
// Exactly one of Data and Base64Data is set.
type ProgDeployInscribe struct {
	SourcePkScript string
	SourceWallet   string
	Data           *string
	Base64Data     *string
}

func (e *ProgDeployInscribe) Name() string { return NameProgDeployInscribe }
func (e *ProgDeployInscribe) Id() int      { return IdProgDeployInscribe }

func (e *ProgDeployInscribe) Encode(inscriptionId string, _ uint16) string {
	return join(NameProgDeployInscribe, inscriptionId, e.SourcePkScript, opt(e.Data), opt(e.Base64Data))
}

func (e *ProgDeployInscribe) CalculateWallets(network common.Network) {
	e.SourceWallet = wallet(e.SourcePkScript, network)
}

type ProgDeployTransfer struct {
	SourcePkScript string
	SourceWallet   string
	SpentPkScript  string
	Data           *string
	Base64Data     *string
	ByteLen        uint32
}

func (e *ProgDeployTransfer) Name() string { return NameProgDeployTransfer }
func (e *ProgDeployTransfer) Id() int      { return IdProgDeployTransfer }

func (e *ProgDeployTransfer) Encode(inscriptionId string, _ uint16) string {
	return join(NameProgDeployTransfer, inscriptionId,
		e.SourcePkScript,
		e.SpentPkScript,
		opt(e.Data),
		opt(e.Base64Data),
		strconv.FormatUint(uint64(e.ByteLen), 10),
	)
}

func (e *ProgDeployTransfer) CalculateWallets(network common.Network) {
	e.SourceWallet = wallet(e.SourcePkScript, network)
}

// ProgCallInscribe inscribes a contract call. The contract is addressed by its address or by its deploy inscription id.
type ProgCallInscribe struct {
	SourcePkScript        string
	SourceWallet          string
	ContractAddress       string
	ContractInscriptionId string
	Data                  *string
	Base64Data            *string
}

func (e *ProgCallInscribe) Name() string { return NameProgCallInscribe }
func (e *ProgCallInscribe) Id() int      { return IdProgCallInscribe }

func (e *ProgCallInscribe) Encode(inscriptionId string, _ uint16) string {
	return join(NameProgCallInscribe, inscriptionId,
		e.SourcePkScript,
		e.ContractAddress,
		e.ContractInscriptionId,
		opt(e.Data),
		opt(e.Base64Data),
	)
}

func (e *ProgCallInscribe) CalculateWallets(network common.Network) {
	e.SourceWallet = wallet(e.SourcePkScript, network)
}

type ProgCallTransfer struct {
	SourcePkScript        string
	SourceWallet          string
	SpentPkScript         string
	ContractAddress       *string
	ContractInscriptionId *string
	Data                  *string
	Base64Data            *string
	ByteLen               uint32
}

func (e *ProgCallTransfer) Name() string { return NameProgCallTransfer }
func (e *ProgCallTransfer) Id() int      { return IdProgCallTransfer }

func (e *ProgCallTransfer) Encode(inscriptionId string, _ uint16) string {
	return join(NameProgCallTransfer, inscriptionId,
		e.SourcePkScript,
		e.SpentPkScript,
		opt(e.ContractAddress),
		opt(e.ContractInscriptionId),
		opt(e.Data),
		opt(e.Base64Data),
		strconv.FormatUint(uint64(e.ByteLen), 10),
	)
}

func (e *ProgCallTransfer) CalculateWallets(network common.Network) {
	e.SourceWallet = wallet(e.SourcePkScript, network)
}

// ProgWithdrawInscribe requests Amount back from the programmable module's balance.
type ProgWithdrawInscribe struct {
	SourcePkScript string
	SourceWallet   string
	Tick           string
	OriginalTick   string
	Amount         uint128.Uint128
}

func (e *ProgWithdrawInscribe) Name() string { return NameProgWithdrawInscribe }
func (e *ProgWithdrawInscribe) Id() int      { return IdProgWithdrawInscribe }

func (e *ProgWithdrawInscribe) Encode(inscriptionId string, dec uint16) string {
	return join(NameProgWithdrawInscribe, inscriptionId,
		e.SourcePkScript,
		e.Tick,
		e.OriginalTick,
		decimals.FormatUint128(e.Amount, dec),
	)
}

func (e *ProgWithdrawInscribe) CalculateWallets(network common.Network) {
	e.SourceWallet = wallet(e.SourcePkScript, network)
}

// ProgWithdrawTransfer pays a withdrawal out of the programmable module to SpentPkScript,
// or back to the source when the inscription was spent as fee.
type ProgWithdrawTransfer struct {
	SourcePkScript string
	SourceWallet   string
	SpentPkScript  *string
	SpentWallet    *string
	Tick           string
	OriginalTick   string
	Amount         uint128.Uint128
}

func (e *ProgWithdrawTransfer) Name() string { return NameProgWithdrawTransfer }
func (e *ProgWithdrawTransfer) Id() int      { return IdProgWithdrawTransfer }

func (e *ProgWithdrawTransfer) Encode(inscriptionId string, dec uint16) string {
	return join(NameProgWithdrawTransfer, inscriptionId,
		e.SourcePkScript,
		opt(e.SpentPkScript),
		e.Tick,
		e.OriginalTick,
		decimals.FormatUint128(e.Amount, dec),
	)
}

func (e *ProgWithdrawTransfer) CalculateWallets(network common.Network) {
	e.SourceWallet = wallet(e.SourcePkScript, network)
	e.SpentWallet = optionalWallet(e.SpentPkScript, network)
}

// ProgTransactInscribe inscribes a raw signed transaction for the programmable module.
type ProgTransactInscribe struct {
	SourcePkScript string
	SourceWallet   string
	Data           *string
	Base64Data     *string
}

func (e *ProgTransactInscribe) Name() string { return NameProgTransactInscribe }
func (e *ProgTransactInscribe) Id() int      { return IdProgTransactInscribe }

func (e *ProgTransactInscribe) Encode(inscriptionId string, _ uint16) string {
	return join(NameProgTransactInscribe, inscriptionId, e.SourcePkScript, opt(e.Data), opt(e.Base64Data))
}

func (e *ProgTransactInscribe) CalculateWallets(network common.Network) {
	e.SourceWallet = wallet(e.SourcePkScript, network)
}

type ProgTransactTransfer struct {
	SourcePkScript string
	SourceWallet   string
	SpentPkScript  string
	Data           *string
	Base64Data     *string
	ByteLen        uint32
}

func (e *ProgTransactTransfer) Name() string { return NameProgTransactTransfer }
func (e *ProgTransactTransfer) Id() int      { return IdProgTransactTransfer }

func (e *ProgTransactTransfer) Encode(inscriptionId string, _ uint16) string {
	return join(NameProgTransactTransfer, inscriptionId,
		e.SourcePkScript,
		e.SpentPkScript,
		opt(e.Data),
		opt(e.Base64Data),
		strconv.FormatUint(uint64(e.ByteLen), 10),
	)
}

func (e *ProgTransactTransfer) CalculateWallets(network common.Network) {
	e.SourceWallet = wallet(e.SourcePkScript, network)
}
