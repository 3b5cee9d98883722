package format

import (
	"math"
	"strconv"
)

const (
	doublePositiveInfinity uint64 = 0x7ff0000000000000
	doubleNegativeInfinity uint64 = 0xfff0000000000000
	doubleMantissaMask     uint64 = 0x000fffffffffffff
	doubleImplicitBit      uint64 = 0x0010000000000000
)

type doubleClass int

const (
	doubleNormal doubleClass = iota
	doublePosInf
	doubleNegInf
	doubleNaN
)

// classifyDouble sorts a raw Double constant by bit pattern. The NaN ranges
// are open intervals, so 0x7fffffffffffffff, 0xfff0000000000001 and
// 0xffffffffffffffff fall through to doubleNormal.
func classifyDouble(v uint64) doubleClass {
	switch {
	case v == doublePositiveInfinity:
		return doublePosInf
	case v == doubleNegativeInfinity:
		return doubleNegInf
	case v > doublePositiveInfinity && v < 0x7fffffffffffffff,
		v > 0xfff0000000000001 && v < 0xffffffffffffffff:
		return doubleNaN
	}
	return doubleNormal
}

// doubleFromBits computes s * m * 2^(e-1075) from the sign, exponent and
// mantissa fields of v. A zero exponent field marks a subnormal, whose
// mantissa is shifted left by one instead of gaining the implicit bit.
func doubleFromBits(v uint64) float64 {
	sign := 1.0
	if v>>63 != 0 {
		sign = -1.0
	}
	exponent := int((v >> 52) & 0x7ff)
	if exponent == 0x7ff {
		if v&doubleMantissaMask == 0 {
			return math.Inf(int(sign))
		}
		return math.NaN()
	}

	var mantissa uint64
	if exponent == 0 {
		mantissa = (v & doubleMantissaMask) << 1
	} else {
		mantissa = (v & doubleMantissaMask) | doubleImplicitBit
	}
	return sign * math.Ldexp(float64(mantissa), exponent-1075)
}

// fixed renders f with six decimals, spelling infinities and NaN the way
// javap does, followed by suffix.
func fixed(f float64, suffix string) string {
	switch {
	case math.IsNaN(f):
		return "NaN" + suffix
	case math.IsInf(f, 1):
		return "Infinity" + suffix
	case math.IsInf(f, -1):
		return "-Infinity" + suffix
	}
	return strconv.FormatFloat(f, 'f', 6, 64) + suffix
}

func formatDouble(bits uint64) string {
	switch classifyDouble(bits) {
	case doublePosInf:
		return "Infinityd"
	case doubleNegInf:
		return "-Infinityd"
	case doubleNaN:
		return "NaNd"
	}
	return fixed(doubleFromBits(bits), "d")
}

func formatFloat(bits uint32) string {
	return fixed(float64(math.Float32frombits(bits)), "")
}
