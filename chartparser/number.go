package chartparser

import "strconv"

// parseNumber accepts -?[0-9]+(\.[0-9]+)? and nothing else.
func parseNumber(lit string) (float64, bool) {
	i := 0
	if i < len(lit) && lit[i] == '-' {
		i++
	}
	digits := func() int {
		n := 0
		for i < len(lit) && '0' <= lit[i] && lit[i] <= '9' {
			i++
			n++
		}
		return n
	}
	if digits() == 0 {
		return 0, false
	}
	if i < len(lit) && lit[i] == '.' {
		i++
		if digits() == 0 {
			return 0, false
		}
	}
	if i != len(lit) {
		return 0, false
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
