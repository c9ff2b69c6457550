// Package numeric carries the overflow-checked integer helpers the engine
// and CLI use wherever a value comes from outside the fixed record layout:
// parsing a seed or block count from a flag or config file, and guarding
// the handful of aggregate sums that are not bounded by the 256-byte record
// width the way balances and counts are.
package numeric

import (
	"math/bits"
	"strconv"
)

// ParseUint64 parses s as a decimal or 0x-prefixed hexadecimal integer.
// Leading zeros are accepted. The empty string parses as zero.
func ParseUint64(s string) (uint64, bool) {
	if s == "" {
		return 0, true
	}
	if len(s) >= 2 && (s[:2] == "0x" || s[:2] == "0X") {
		v, err := strconv.ParseUint(s[2:], 16, 64)
		return v, err == nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	return v, err == nil
}

// MustParseUint64 parses s and panics if it isn't a valid integer — for
// flag defaults supplied as Go string literals, never from untrusted input.
func MustParseUint64(s string) uint64 {
	v, ok := ParseUint64(s)
	if !ok {
		panic("numeric: invalid unsigned 64 bit integer: " + s)
	}
	return v
}

// SafeAdd returns x+y and whether the addition overflowed a uint64.
func SafeAdd(x, y uint64) (uint64, bool) {
	sum, carryOut := bits.Add64(x, y, 0)
	return sum, carryOut != 0
}

// SafeMul returns x*y and whether the multiplication overflowed a uint64.
func SafeMul(x, y uint64) (uint64, bool) {
	hi, lo := bits.Mul64(x, y)
	return lo, hi != 0
}

// CeilDiv returns ceil(x/y), or 0 if y is 0.
func CeilDiv(x, y int) int {
	if y == 0 {
		return 0
	}
	return (x + y - 1) / y
}
