package round

// LenientAtoi parses the leading integer of s the way a permissive scorecard
// reader does: leading whitespace is skipped, an optional sign is accepted and
// the longest run of decimal digits is used. Anything after the digits is
// ignored. Input without leading digits yields 0 instead of an error, so a
// malformed entry contributes nothing to a sum.
func LenientAtoi(s string) int {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}

	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}

	n := 0
	digits := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		n = n*10 + int(s[i]-'0')
		i++
		digits++
	}

	if digits == 0 {
		return 0
	}
	if neg {
		return -n
	}
	return n
}

// IsNumeric reports whether s starts with an integer LenientAtoi can read
func IsNumeric(s string) bool {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	return i < len(s) && s[i] >= '0' && s[i] <= '9'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}
