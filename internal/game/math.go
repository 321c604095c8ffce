package game

// SafeIntDiv divides truncating toward zero and treats a zero divisor as a
// neutral result instead of panicking. Go's integer division already
// truncates toward zero (-4/3 == -1), which is the rule every percentage
// formula in the engine depends on.
func SafeIntDiv(a, b int) int {
	if b == 0 {
		return 0
	}
	return a / b
}

// GetModdedValue applies a flat+percent modifier pair to a base value:
// (base+flat)*(1+pct/100), truncating toward zero. This is the single
// percentage formula used everywhere a Modifier exists.
func GetModdedValue(base, flat, pct int) int {
	return SafeIntDiv((base+flat)*(100+pct), 100)
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
