package brc20

const (
	ProtocolBRC20       = "brc-20"
	ProtocolBRC20Prog   = "brc20-prog"
	ProtocolBRC20Module = "brc20-module"

	ModuleBRC20Prog = "BRC20PROG"
)

type Operation string

const (
	OperationDeploy    Operation = "deploy"
	OperationPredeploy Operation = "predeploy"
	OperationMint      Operation = "mint"
	OperationTransfer  Operation = "transfer"
	OperationWithdraw  Operation = "withdraw"

	// brc20-prog operations, each with its short form
	OperationProgDeploy        Operation = "deploy"
	OperationProgDeployShort   Operation = "d"
	OperationProgCall          Operation = "call"
	OperationProgCallShort     Operation = "c"
	OperationProgTransact      Operation = "transact"
	OperationProgTransactShort Operation = "t"
)

func (o Operation) IsProgDeploy() bool {
	return o == OperationProgDeploy || o == OperationProgDeployShort
}

func (o Operation) IsProgCall() bool {
	return o == OperationProgCall || o == OperationProgCallShort
}

func (o Operation) IsProgTransact() bool {
	return o == OperationProgTransact || o == OperationProgTransactShort
}

func (o Operation) String() string {
	return string(o)
}

// content keys
const (
	KeyProtocol    = "p"
	KeyOperation   = "op"
	KeyModule      = "module"
	KeyTick        = "tick"
	KeyMax         = "max"
	KeyLimit       = "lim"
	KeyDecimals    = "dec"
	KeyAmount      = "amt"
	KeySelfMint    = "self_mint"
	KeySalt        = "salt"
	KeyHash        = "hash"
	KeyData        = "d"
	KeyBase64Data  = "b"
	KeyContract    = "c"
	KeyInscription = "i"
)
