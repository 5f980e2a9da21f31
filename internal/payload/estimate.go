// Package payload computes the serialized byte cost of book pages.
//
// Pages are written as modified UTF-8 over UTF-16 code units, prefixed by a
// var-int carrying the content length. Estimate reproduces that arithmetic
// exactly without encoding anything.
package payload

// Var-int prefix thresholds: 2^7, 2^14, 2^21.
const (
	prefix1Max = 128
	prefix2Max = 16_384
	prefix3Max = 2_097_152
)

// Estimate returns the number of bytes needed to serialize pages, including
// the leading length prefix.
func Estimate(pages []string) int {
	byteCount := 0
	for _, page := range pages {
		for _, r := range page {
			byteCount += RuneSize(r)
		}
	}
	return byteCount + PrefixSize(byteCount)
}

// RuneSize returns the encoded size of r. NUL costs two bytes, and runes
// outside the BMP are two surrogate units of three bytes each.
func RuneSize(r rune) int {
	switch {
	case r >= 0x0001 && r <= 0x007F:
		return 1
	case r > 0xFFFF:
		return 6
	case r > 0x07FF:
		return 3
	default:
		return 2
	}
}

// PrefixSize returns the size of the var-int that encodes byteCount.
func PrefixSize(byteCount int) int {
	switch {
	case byteCount < prefix1Max:
		return 1
	case byteCount < prefix2Max:
		return 2
	case byteCount < prefix3Max:
		return 3
	default:
		return 4
	}
}
