package provider

import (
	"math/rand/v2"
	"time"
)

const (
	traceIDLayout   = "2006-01-02-15:04:05"
	traceIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	traceIDSuffix   = 5
)

// NewTraceID returns "<timestamp>-<5 random [A-Z0-9]>". It is only used for
// upstream correlation.
func NewTraceID(now time.Time) string {
	suffix := make([]byte, traceIDSuffix)
	for i := range suffix {
		suffix[i] = traceIDAlphabet[rand.IntN(len(traceIDAlphabet))]
	}
	return now.Format(traceIDLayout) + "-" + string(suffix)
}
