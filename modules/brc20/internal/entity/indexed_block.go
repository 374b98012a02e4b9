package entity

import "github.com/btcsuite/btcd/chaincfg/chainhash"

// IndexedBlock is the checkpoint written last in every block transaction.
type IndexedBlock struct {
	Height              uint64
	Hash                chainhash.Hash
	EventHash           []byte
	CumulativeEventHash []byte
}
