package events

import (
	"strconv"

	"github.com/gaze-network/brc20-ledger/common"
	"github.com/gaze-network/brc20-ledger/pkg/decimals"
	"github.com/gaze-network/uint128"
)

var (
	_ Event = (*DeployInscribe)(nil)
	_ Event = (*MintInscribe)(nil)
	_ Event = (*TransferInscribe)(nil)
	_ Event = (*TransferTransfer)(nil)
)

// DeployInscribe creates a new ticker.
// MaxSupply and LimitPerMint are minimal units and are always encoded without decimal shift.
type DeployInscribe struct {
	DeployerPkScript string
	DeployerWallet   string
	Tick             string
	OriginalTick     string
	MaxSupply        uint128.Uint128
	Decimals         uint16
	LimitPerMint     uint128.Uint128
	IsSelfMint       bool
}

func (e *DeployInscribe) Name() string { return NameDeployInscribe }
func (e *DeployInscribe) Id() int      { return IdDeployInscribe }

func (e *DeployInscribe) Encode(inscriptionId string, _ uint16) string {
	return join(NameDeployInscribe, inscriptionId,
		e.DeployerPkScript,
		e.Tick,
		e.OriginalTick,
		decimals.FormatUint128(e.MaxSupply, 0),
		strconv.FormatUint(uint64(e.Decimals), 10),
		decimals.FormatUint128(e.LimitPerMint, 0),
		formatBool(e.IsSelfMint),
	)
}

func (e *DeployInscribe) CalculateWallets(network common.Network) {
	e.DeployerWallet = wallet(e.DeployerPkScript, network)
}

// MintInscribe credits Amount to the minter and reduces the ticker's remaining supply.
type MintInscribe struct {
	MintedPkScript string
	MintedWallet   string
	Tick           string
	OriginalTick   string
	Amount         uint128.Uint128
	ParentId       *string
}

func (e *MintInscribe) Name() string { return NameMintInscribe }
func (e *MintInscribe) Id() int      { return IdMintInscribe }

func (e *MintInscribe) Encode(inscriptionId string, dec uint16) string {
	return join(NameMintInscribe, inscriptionId,
		e.MintedPkScript,
		e.Tick,
		e.OriginalTick,
		decimals.FormatUint128(e.Amount, dec),
		opt(e.ParentId),
	)
}

func (e *MintInscribe) CalculateWallets(network common.Network) {
	e.MintedWallet = wallet(e.MintedPkScript, network)
}

// TransferInscribe locks Amount of the source's available balance until the inscription is transferred.
type TransferInscribe struct {
	SourcePkScript string
	SourceWallet   string
	Tick           string
	OriginalTick   string
	Amount         uint128.Uint128
}

func (e *TransferInscribe) Name() string { return NameTransferInscribe }
func (e *TransferInscribe) Id() int      { return IdTransferInscribe }

func (e *TransferInscribe) Encode(inscriptionId string, dec uint16) string {
	return join(NameTransferInscribe, inscriptionId,
		e.SourcePkScript,
		e.Tick,
		e.OriginalTick,
		decimals.FormatUint128(e.Amount, dec),
	)
}

func (e *TransferInscribe) CalculateWallets(network common.Network) {
	e.SourceWallet = wallet(e.SourcePkScript, network)
}

// TransferTransfer moves a locked amount to the receiver of the transfer inscription.
// SpentPkScript is nil when the inscription was spent as fee.
type TransferTransfer struct {
	SourcePkScript string
	SourceWallet   string
	SpentPkScript  *string
	SpentWallet    *string
	Tick           string
	OriginalTick   string
	Amount         uint128.Uint128
}

func (e *TransferTransfer) Name() string { return NameTransferTransfer }
func (e *TransferTransfer) Id() int      { return IdTransferTransfer }

func (e *TransferTransfer) Encode(inscriptionId string, dec uint16) string {
	return join(NameTransferTransfer, inscriptionId,
		e.SourcePkScript,
		opt(e.SpentPkScript),
		e.Tick,
		e.OriginalTick,
		decimals.FormatUint128(e.Amount, dec),
	)
}

func (e *TransferTransfer) CalculateWallets(network common.Network) {
	e.SourceWallet = wallet(e.SourcePkScript, network)
	e.SpentWallet = optionalWallet(e.SpentPkScript, network)
}
