package events

import (
	"strconv"

	"github.com/gaze-network/brc20-ledger/common"
)

var _ Event = (*PredeployInscribe)(nil)

// PredeployInscribe commits to a 6-byte ticker before it is deployed.
// Hash is hex(sha256(sha256(original_tick || salt || deployer_pkscript))).
type PredeployInscribe struct {
	PredeployerPkScript string
	PredeployerWallet   string
	Hash                string
	BlockHeight         uint64
}

func (e *PredeployInscribe) Name() string { return NamePredeployInscribe }
func (e *PredeployInscribe) Id() int      { return IdPredeployInscribe }

func (e *PredeployInscribe) Encode(inscriptionId string, _ uint16) string {
	return join(NamePredeployInscribe, inscriptionId,
		e.PredeployerPkScript,
		e.Hash,
		strconv.FormatUint(e.BlockHeight, 10),
	)
}

func (e *PredeployInscribe) CalculateWallets(network common.Network) {
	e.PredeployerWallet = wallet(e.PredeployerPkScript, network)
}
