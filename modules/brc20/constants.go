package brc20

const (
	ClientVersion    = "v0.1.0"
	DBVersion        = 7
	EventHashVersion = 2
)
