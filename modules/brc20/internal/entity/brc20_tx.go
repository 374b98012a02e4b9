package entity

// BRC20Tx is one inscription action reported by the chain index, in block order.
type BRC20Tx struct {
	TxId              string
	InscriptionId     string
	InscriptionNumber int64
	OldSatpoint       *string // nil for the inscribing transaction
	NewSatpoint       string
	NewPkScript       string // hex
	NewWallet         string
	SentAsFee         bool
	Content           map[string]any
	ContentType       string
	ByteLen           uint32
	ParentId          *string
}

// IsInscribe reports whether the record is the inscription's creation rather than a transfer of it.
func (t *BRC20Tx) IsInscribe() bool {
	return t.OldSatpoint == nil || *t.OldSatpoint == ""
}

// ContentString returns a top-level content value only when it is a JSON string.
func (t *BRC20Tx) ContentString(key string) (string, bool) {
	v, ok := t.Content[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// HasContent reports whether key is present in the content, whatever its type.
func (t *BRC20Tx) HasContent(key string) bool {
	_, ok := t.Content[key]
	return ok
}
