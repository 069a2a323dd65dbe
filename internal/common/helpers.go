package common

import (
	"strings"
)

// Has0xPrefix reports whether s starts with "0x" or "0X"
func Has0xPrefix(s string) bool {
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

// Strip0x removes a leading "0x"/"0X" and surrounding whitespace
// Example: Strip0x(" 0xAbC ") = "AbC"
func Strip0x(s string) string {
	s = strings.TrimSpace(s)
	if Has0xPrefix(s) {
		return s[2:]
	}
	return s
}

// IsHex reports whether s is non-empty and made only of hex digits (either case)
func IsHex(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isHexChar(s[i]) {
			return false
		}
	}
	return true
}

// EqualHexFold compares two hex strings ignoring case and an optional 0x prefix
// Example: EqualHexFold("0xABcd", "abcd") = true
func EqualHexFold(a, b string) bool {
	return strings.EqualFold(Strip0x(a), Strip0x(b))
}

// ShortHex shortens a long hex string for display, keeping both ends
// Example: ShortHex("0x7e5f4552091a69125d5dfcb7b8c2659029395bdf", 6) = "0x7e5f45...395bdf"
func ShortHex(s string, keep int) string {
	prefix := ""
	if Has0xPrefix(s) {
		prefix, s = s[:2], s[2:]
	}
	if keep <= 0 || len(s) <= 2*keep {
		return prefix + s
	}
	return prefix + s[:keep] + "..." + s[len(s)-keep:]
}

func isHexChar(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
