package usecase

import (
	"github.com/gaze-network/brc20-ledger/modules/brc20/internal/datagateway"
)

// Usecase serves read-only queries over indexed BRC20 state.
type Usecase struct {
	dg datagateway.BRC20ReaderDataGateway
}

func New(dg datagateway.BRC20ReaderDataGateway) *Usecase {
	return &Usecase{
		dg: dg,
	}
}
