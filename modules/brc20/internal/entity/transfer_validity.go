package entity

// Validity is the state of a transfer-like inscription.
type Validity int

const (
	ValidityInvalid Validity = iota
	ValidityValid
	ValidityUsed
)

func (v Validity) String() string {
	switch v {
	case ValidityValid:
		return "valid"
	case ValidityUsed:
		return "used"
	default:
		return "invalid"
	}
}

// TransferValidity tracks whether the transfer of an inscription can still move balances.
// InscribeEventId is the event id that made it valid, transfers of a different kind see it as invalid.
type TransferValidity struct {
	InscriptionId   string
	InscribeEventId int
	Validity        Validity
	InscribedHeight uint64
	UpdatedHeight   uint64
}
