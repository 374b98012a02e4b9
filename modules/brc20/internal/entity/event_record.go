package entity

import "github.com/gaze-network/brc20-ledger/modules/brc20/internal/events"

// EventRecord is an event with the inscription action it was generated from.
// Sequence is the position of the event in its block.
type EventRecord struct {
	BlockHeight       uint64
	Sequence          int32
	InscriptionId     string
	InscriptionNumber int64
	OldSatpoint       *string
	NewSatpoint       string
	TxId              string
	Tick              string // empty for events without a ticker
	Decimals          uint16 // decimals Line is encoded with
	Event             events.Event
}

// Line returns the canonical record of the event.
func (r *EventRecord) Line() string {
	return r.Event.Encode(r.InscriptionId, r.Decimals)
}
