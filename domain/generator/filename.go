package generator

import (
	"strings"
	"unicode"

	"github.com/prasetyowira/qrgen/constant"
)

// synthesizeFilename derives a safe filename from QR data. Every character
// that is not alphanumeric, '-' or '_' is replaced with '_', and the
// sanitized part is truncated to a fixed bound so pathological inputs
// (very long URLs) can never exceed filesystem path limits.
func synthesizeFilename(data, extension string) string {
	var b strings.Builder
	for _, r := range data {
		if r == '-' || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}

	sanitized := []rune(b.String())
	if len(sanitized) > constant.FilenameMaxDataLen {
		sanitized = sanitized[:constant.FilenameMaxDataLen]
	}

	return constant.FilenamePrefix + string(sanitized) + "." + extension
}
