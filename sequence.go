package shardtail

import (
	"math/big"
	"strings"
)

// Sequence numbers are arbitrary-precision decimal strings. Comparing them
// as strings goes wrong as soon as digit counts differ ("99" > "100"), so
// all ordering goes through big.Int.

// CompareSequences orders two decimal sequence numbers numerically. The
// empty string sorts before everything; it is the "nothing consumed yet"
// sentinel.
func CompareSequences(a, b string) int {
	if a == b {
		return 0
	}
	if a == "" {
		return -1
	}
	if b == "" {
		return 1
	}
	var x, y big.Int
	_, okA := x.SetString(a, 10)
	_, okB := y.SetString(b, 10)
	if !okA || !okB {
		// A malformed value never outranks a well-formed one, so it
		// cannot displace the tracked maximum. Two malformed values
		// fall back to byte order to keep the ordering total.
		if okA {
			return 1
		}
		if okB {
			return -1
		}
		return strings.Compare(a, b)
	}
	return x.Cmp(&y)
}

// MaxSequence returns the numerically larger of two sequence numbers.
func MaxSequence(a, b string) string {
	if CompareSequences(a, b) >= 0 {
		return a
	}
	return b
}

func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
