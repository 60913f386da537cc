package jolt

import (
	"math"
	"strconv"
)

// The sigil table. A sigil is a reserved key that, when it is the sole
// entry of a JSON object, marks the object as a typed value rather than a
// plain map.
const (
	sigilInt      = "Z"
	sigilFloat    = "R"
	sigilTemporal = "T"
	sigilBytes    = "#"
	sigilMap      = "{}"
	sigilGraph    = "G"
	sigilPoint    = "@" // prefix; the full key is "@" followed by the SRID
)

// The safe band: the integer range guaranteed to survive a JSON parser
// with no 64-bit integer type. Ints outside it are wrapped in the Z sigil.
const (
	SafeBandMin = -(1 << 31)
	SafeBandMax = (1 << 31) - 1
)

// reservedSigils are keys held for future value forms. Their meaning is
// deliberately unspecified, so the decoder rejects them until a successor
// format defines them.
var reservedSigils = map[string]bool{
	"()": true,
	"->": true,
	"--": true,
}

// inSafeBand reports whether n can appear as a bare JSON number.
func inSafeBand(n int64) bool {
	return n >= SafeBandMin && n <= SafeBandMax
}

// floatNeedsSigil reports whether f must be wrapped in the R sigil: the
// non-finite values always, and whole-valued floats within the safe band
// because their bare form would read back as an Int.
func floatNeedsSigil(f float64) bool {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return true
	}

	return f == math.Trunc(f) && f >= SafeBandMin && f <= SafeBandMax
}

// parseSRID extracts the SRID from a point sigil key such as "@4326". The
// key must be "@" followed by one or more decimal digits.
func parseSRID(key string) (int, bool) {
	digits := key[len(sigilPoint):]
	if digits == "" {
		return 0, false
	}

	for _, c := range digits {
		if c < '0' || c > '9' {
			return 0, false
		}
	}

	srid, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}

	return srid, true
}
