// Package slogx provides typed constructors for log attributes used across the indexer.
package slogx

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gaze-network/uint128"
)

// ErrorKey is the attribute key of logged errors.
const ErrorKey = "error"

// Any returns an slog.Attr for the supplied value.
func Any(key string, value any) slog.Attr {
	return slog.Any(key, value)
}

// Error returns an slog.Attr for an error value.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any(ErrorKey, err)
}

func String(key, value string) slog.Attr {
	return slog.String(key, value)
}

// Stringer returns an slog.Attr for a fmt.Stringer value.
func Stringer(key string, value fmt.Stringer) slog.Attr {
	return slog.String(key, value.String())
}

// Uint128 returns an slog.Attr holding the decimal representation of value.
func Uint128(key string, value uint128.Uint128) slog.Attr {
	return slog.String(key, value.String())
}

func Int64(key string, value int64) slog.Attr {
	return slog.Int64(key, value)
}

func Int(key string, value int) slog.Attr {
	return slog.Int64(key, int64(value))
}

func Uint64(key string, v uint64) slog.Attr {
	return slog.Uint64(key, v)
}

func Uint16(key string, v uint16) slog.Attr {
	return slog.Uint64(key, uint64(v))
}

func Bool(key string, v bool) slog.Attr {
	return slog.Bool(key, v)
}

func Duration(key string, v time.Duration) slog.Attr {
	return slog.Duration(key, v)
}
