package brc20

import (
	"github.com/gaze-network/brc20-ledger/common"
	"github.com/gaze-network/brc20-ledger/core/types"
)

// Heights are the activation heights of the protocol upgrades on one network.
type Heights struct {
	FirstBRC20 uint64
	SelfMint   uint64

	// ProgPhaseOne enables the programmable module and 6-byte tickers. Until ProgAllTickers,
	// only 6-byte tickers can be deposited into the module.
	ProgPhaseOne   uint64
	ProgAllTickers uint64
}

var networkHeights = map[common.Network]Heights{
	common.NetworkMainnet: {
		FirstBRC20:     779832,
		SelfMint:       837090,
		ProgPhaseOne:   912690,
		ProgAllTickers: 9999999, // not finalized
	},
	common.NetworkTestnet: {
		FirstBRC20: 2413343,
		SelfMint:   2413343,
	},
	common.NetworkSignet: {
		FirstBRC20:     112402,
		ProgPhaseOne:   230000,
		ProgAllTickers: 230000,
	},
	common.NetworkRegtest: {},
}

// HeightsOf returns the activation heights of network. Unknown networks activate everything from genesis.
func HeightsOf(network common.Network) Heights {
	return networkHeights[network]
}

// StartingBlockHeader returns the virtual checkpoint below the first BRC20 block of network.
func StartingBlockHeader(network common.Network) types.BlockHeader {
	first := HeightsOf(network).FirstBRC20
	if first == 0 {
		return types.BlockHeader{Height: -1, Hash: common.ZeroHash}
	}
	return types.BlockHeader{Height: int64(first) - 1, Hash: common.ZeroHash}
}

// Rules answers the height-dependent protocol questions of one network.
type Rules struct {
	Heights     Heights
	ProgEnabled bool
}

func NewRules(network common.Network, progEnabled bool) Rules {
	return Rules{
		Heights:     HeightsOf(network),
		ProgEnabled: progEnabled,
	}
}

func (r Rules) IsSelfMintActive(height uint64) bool {
	return height >= r.Heights.SelfMint
}

func (r Rules) IsProgActive(height uint64) bool {
	return r.ProgEnabled && height >= r.Heights.ProgPhaseOne
}

// IsSixByteTickActive reports whether 6-byte tickers can be deployed and used.
func (r Rules) IsSixByteTickActive(height uint64) bool {
	return height >= r.Heights.ProgPhaseOne
}

// IsPredeployActive reports whether predeploy commitments are accepted. They open PredeployDelay blocks
// before 6-byte tickers so that the first deploys can land at phase one.
func (r Rules) IsPredeployActive(height uint64) bool {
	return height+PredeployDelay >= r.Heights.ProgPhaseOne
}

// IsPredeployMature reports whether a predeploy inscribed at predeployHeight can back a deploy at height.
func (r Rules) IsPredeployMature(predeployHeight, height uint64) bool {
	return predeployHeight+PredeployDelay <= height
}

// CanDepositToProg reports whether a transfer of originalTick sent to the programmable module is credited
// to the module. Otherwise the amount is burned.
func (r Rules) CanDepositToProg(originalTick string, height uint64) bool {
	if !r.IsProgActive(height) {
		return false
	}
	if height < r.Heights.ProgAllTickers && len(originalTick) < 6 {
		return false
	}
	return true
}
