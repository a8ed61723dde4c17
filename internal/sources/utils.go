package sources

import (
	"math"
	"strconv"
	"strings"
)

const upperHex = "0123456789ABCDEF"

// ParsePage reads the page query value, falling back to DefaultPage.
func ParsePage(raw string) int {
	return parseIntOr(raw, DefaultPage)
}

// ParsePageSize reads the pageSize query value, falling back to DefaultPageSize.
func ParsePageSize(raw string) int {
	return parseIntOr(raw, DefaultPageSize)
}

// parseIntOr reads the leading integer of raw, so "12abc" is 12 and "0x10"
// is 16. Empty input, input without leading digits and zero all yield
// fallback. Negative and oversized values pass through; values beyond the int
// range saturate.
func parseIntOr(raw string, fallback int) int {
	s := strings.TrimLeft(raw, " \t\n\r")

	negative := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		negative = s[0] == '-'
		s = s[1:]
	}

	base, isDigit := 10, isDecimal
	if len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		base, isDigit = 16, isHex
		s = s[2:]
	}

	end := 0
	for end < len(s) && isDigit(s[end]) {
		end++
	}
	if end == 0 {
		return fallback
	}

	u, err := strconv.ParseUint(s[:end], base, 64)
	if err != nil || u > math.MaxInt {
		if negative {
			return math.MinInt
		}
		return math.MaxInt
	}

	n := int(u)
	if n == 0 {
		return fallback
	}
	if negative {
		return -n
	}
	return n
}

func isDecimal(b byte) bool {
	return b >= '0' && b <= '9'
}

func isHex(b byte) bool {
	return isDecimal(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

// escapeQueryValue percent-encodes the bytes a browser would encode in a URL
// query: controls, space, '"', '#', '<', '>' and non-ASCII. Everything else,
// '&' and '=' included, is left as given.
func escapeQueryValue(v string) string {
	var b strings.Builder
	for i := 0; i < len(v); i++ {
		c := v[i]
		if c <= ' ' || c >= 0x7f || c == '"' || c == '#' || c == '<' || c == '>' {
			b.WriteByte('%')
			b.WriteByte(upperHex[c>>4])
			b.WriteByte(upperHex[c&0x0f])
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
